// Wancost - SD-WAN circuit cost bulk editor
//
// Finds every WAN interface on the branch sites of a controller tenant whose
// circuit name contains a given text, shows the matches, and after operator
// confirmation rewrites each interface record with a new cost.
//
// Credentials are taken from the first available source:
//
//	-t, --token           Auth token on the command line
//	-f, --authtokenfile   File holding the auth token
//	X_AUTH_TOKEN          Environment variable
//	AUTH_TOKEN            Environment variable
//	(none)                Interactive email/password login
//
// Examples:
//
//	wancost -m lte -c 200                         # Interactive login
//	wancost -f ~/.cgx-token -m "LTE" -c 50         # Token from file
//	X_AUTH_TOKEN=... wancost -m backup -c 10
//	wancost history --failed                      # Past cost changes
//	wancost settings set controller https://api.example.net
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/newtron-network/wancost/pkg/audit"
	"github.com/newtron-network/wancost/pkg/auth"
	"github.com/newtron-network/wancost/pkg/cli"
	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/settings"
	"github.com/newtron-network/wancost/pkg/util"
	"github.com/newtron-network/wancost/pkg/version"
	"github.com/newtron-network/wancost/pkg/wancost"
)

// globalOptions are flags shared by every command.
type globalOptions struct {
	settingsPath string
	envFile      string
	verbose      bool
	logJSON      bool
}

// runOptions are the flags of the cost-change workflow.
type runOptions struct {
	token      string
	tokenFile  string
	matchText  string
	cost       string
	controller string
	auditLog   string
	noAudit    bool
	timeout    time.Duration
	insecure   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(util.ExitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}
	o := &runOptions{}

	rootCmd := &cobra.Command{
		Use:               "wancost -m <matchtext> -c <cost>",
		Short:             "Change the cost of matching SD-WAN circuits",
		Version:           version.Info(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Long: `Wancost changes the cost of WAN circuits across all branch sites of a tenant.

Every WAN interface whose circuit name contains the match text (case-insensitive)
on a non-hub site is listed. After confirmation each one is updated with the new
cost. Hub sites are never changed.

  wancost -m <matchtext> -c <cost> [-t <token> | -f <tokenfile>]`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCost(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), g, o)
		},
	}

	addGlobalFlags(rootCmd.PersistentFlags(), g)
	addRunFlags(rootCmd.Flags(), o)
	_ = rootCmd.MarkFlagRequired("matchtext")
	_ = rootCmd.MarkFlagRequired("cost")

	rootCmd.AddGroup(&cobra.Group{ID: "meta", Title: "Configuration & Meta:"})
	for _, cmd := range []*cobra.Command{newHistoryCmd(g), newSettingsCmd(g), newVersionCmd()} {
		cmd.GroupID = "meta"
		rootCmd.AddCommand(cmd)
	}

	return rootCmd
}

func addGlobalFlags(fs *pflag.FlagSet, g *globalOptions) {
	fs.StringVar(&g.settingsPath, "settings", "", "Settings file (default ~/.wancost/settings.yaml)")
	fs.StringVar(&g.envFile, "env-file", "", "Load environment variables from a dotenv file")
	fs.BoolVarP(&g.verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVar(&g.logJSON, "log-json", false, "Emit diagnostics as JSON")
}

func addRunFlags(fs *pflag.FlagSet, o *runOptions) {
	fs.StringVarP(&o.token, "token", "t", "", "Auth token (overrides other credential sources)")
	fs.StringVarP(&o.tokenFile, "authtokenfile", "f", "", "File containing the auth token")
	fs.StringVarP(&o.matchText, "matchtext", "m", "", "Case-insensitive text to match in circuit names")
	fs.StringVarP(&o.cost, "cost", "c", "", "New cost for matching circuits")
	fs.StringVar(&o.controller, "controller", "", "Controller API base URL (default "+controller.DefaultBaseURL+")")
	fs.StringVar(&o.auditLog, "audit-log", "", "Audit log file (default ~/.wancost/audit.log)")
	fs.BoolVar(&o.noAudit, "no-audit", false, "Do not record changes in the audit log")
	fs.DurationVar(&o.timeout, "timeout", 0, "Timeout per controller API call (default 1m0s)")
	fs.BoolVar(&o.insecure, "insecure", false, "Skip TLS certificate verification")
}

// setup applies logging flags and loads dotenv files. Variables already in
// the environment are never overridden.
func (g *globalOptions) setup() error {
	if g.verbose {
		util.SetLogLevel("debug")
	} else {
		util.SetLogLevel("warn")
	}
	if g.logJSON {
		util.SetJSONFormat()
	}

	if g.envFile != "" {
		if err := godotenv.Load(g.envFile); err != nil {
			return fmt.Errorf("loading env file: %w", err)
		}
		util.Debugf("loaded environment from %s", g.envFile)
	}
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			util.Warnf("Could not load .env: %v", err)
		}
	}
	return nil
}

func (g *globalOptions) loadSettings() *settings.Settings {
	path := g.settingsFile()
	s, err := settings.LoadFrom(path)
	if err != nil {
		util.Warnf("Could not load settings: %v", err)
		return &settings.Settings{}
	}
	return s
}

func (g *globalOptions) settingsFile() string {
	if g.settingsPath != "" {
		return g.settingsPath
	}
	return settings.DefaultSettingsPath()
}

func runCost(ctx context.Context, in io.Reader, out io.Writer, g *globalOptions, o *runOptions) error {
	if o.cost == "" {
		return fmt.Errorf("--cost must not be empty")
	}

	s := g.loadSettings()

	cfg := controller.Config{
		BaseURL:            firstNonEmpty(o.controller, s.Controller),
		Timeout:            o.timeout,
		InsecureSkipVerify: o.insecure || s.InsecureSkipVerify,
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = s.Timeout
	}
	client, err := controller.NewClient(cfg)
	if err != nil {
		return err
	}
	util.WithField("controller", client.BaseURL()).Debug("controller client ready")

	cred, err := auth.Resolve(auth.Options{Token: o.token, TokenFile: o.tokenFile})
	if err != nil {
		return err
	}

	auditLogger, closeAudit := openAudit(o, s)
	defer closeAudit()

	return wancost.Run(ctx, client, wancost.Options{
		MatchText:  o.matchText,
		Cost:       o.cost,
		MatchOn:    wancost.MatchCircuitName,
		Credential: cred,
		Prompter:   cli.NewPrompter(in, out),
		Audit:      auditLogger,
		Out:        out,
	})
}

// openAudit returns the audit logger for this run. An audit log that cannot
// be opened disables auditing with a warning.
func openAudit(o *runOptions, s *settings.Settings) (audit.Logger, func()) {
	if o.noAudit {
		return audit.NopLogger{}, func() {}
	}
	path := firstNonEmpty(o.auditLog, s.GetAuditLog())
	logger, err := audit.NewFileLogger(path, audit.DefaultRotation)
	if err != nil {
		util.Warnf("Could not initialize audit logging: %v", err)
		return audit.NopLogger{}, func() {}
	}
	return logger, func() { logger.Close() }
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(cmd.OutOrStdout())
		},
	}
}

func printVersion(out io.Writer) {
	if version.Version == "dev" {
		fmt.Fprintln(out, "wancost dev build (set version via -ldflags for release info)")
	} else {
		fmt.Fprintf(out, "wancost %s (%s)\n", version.Version, version.GitCommit)
	}
}
