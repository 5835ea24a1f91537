package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/wancost/pkg/audit"
	"github.com/newtron-network/wancost/pkg/cli"
)

type historyOptions struct {
	auditLog string
	site     string
	last     string
	limit    int
	failed   bool
	json     bool
}

func newHistoryCmd(g *globalOptions) *cobra.Command {
	o := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded cost changes",
		Long: `Show cost changes recorded in the audit log.

Each attempted update is logged with:
  - Timestamp and user
  - Site and circuit
  - Old and new cost
  - Success/failure status

Examples:
  wancost history
  wancost history --site "Branch A"
  wancost history --failed --last 24h
  wancost history --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := o.auditLog
			if path == "" {
				path = g.loadSettings().GetAuditLog()
			}
			return showHistory(cmd.OutOrStdout(), path, o)
		},
	}

	cmd.Flags().StringVar(&o.auditLog, "audit-log", "", "Audit log file (default ~/.wancost/audit.log)")
	cmd.Flags().StringVar(&o.site, "site", "", "Filter by site id or name")
	cmd.Flags().StringVar(&o.last, "last", "", "Show events from last duration (e.g., 24h)")
	cmd.Flags().IntVar(&o.limit, "limit", 100, "Maximum events to show")
	cmd.Flags().BoolVar(&o.failed, "failed", false, "Show only failed updates")
	cmd.Flags().BoolVar(&o.json, "json", false, "Output as JSON")

	return cmd
}

func showHistory(out io.Writer, path string, o *historyOptions) error {
	filter := audit.Filter{
		SiteID:      o.site,
		Limit:       o.limit,
		FailureOnly: o.failed,
	}

	if o.last != "" {
		d, err := time.ParseDuration(o.last)
		if err != nil {
			return fmt.Errorf("invalid duration: %s", o.last)
		}
		filter.StartTime = time.Now().Add(-d)
	}

	events, err := audit.QueryFile(path, filter)
	if err != nil {
		return fmt.Errorf("querying audit log: %w", err)
	}

	if o.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(out, "No cost changes recorded")
		return nil
	}

	t := cli.NewTable(out, "TIME", "USER", "SITE", "CIRCUIT", "OLD", "NEW", "RESULT")
	for _, e := range events {
		site := e.SiteName
		if site == "" {
			site = e.SiteID
		}
		result := cli.Green("ok")
		if !e.Success {
			result = cli.Red("failed")
		}
		t.Row(
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.User,
			site,
			e.Circuit,
			cli.Dash(e.OldCost),
			e.NewCost,
			result,
		)
	}
	t.Flush()
	return nil
}
