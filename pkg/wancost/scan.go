package wancost

import (
	"context"
	"fmt"
	"io"

	"github.com/newtron-network/wancost/pkg/cli"
	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/util"
)

const reportWidth = 19

// Inventory enumerates sites and their WAN interfaces.
type Inventory interface {
	Sites(ctx context.Context) ([]controller.Site, error)
	WANInterfaces(ctx context.Context, siteID string) ([]*controller.WANInterface, error)
}

// SitesError is a failure to list the sites of the tenant.
type SitesError struct {
	Err error
}

func (e *SitesError) Error() string {
	return "enumerating sites: " + e.Err.Error()
}

func (e *SitesError) Unwrap() error {
	return e.Err
}

// FindMatches walks every non-hub site and collects the WAN interfaces m
// selects, printing a report entry for each. Interfaces whose label is not
// in labels are skipped with a warning. A site whose interfaces cannot be
// read is skipped; failing to list sites is fatal.
func FindMatches(ctx context.Context, inv Inventory, m Matcher, labels LabelCatalog, out io.Writer) (*MatchSet, error) {
	sites, err := inv.Sites(ctx)
	if err != nil {
		return nil, &SitesError{Err: err}
	}

	set := NewMatchSet()
	for _, site := range sites {
		if site.IsHub() {
			util.WithSite(site.ID).Debug("skipping hub site")
			continue
		}

		wans, err := inv.WANInterfaces(ctx, site.ID)
		if err != nil {
			util.WithSite(site.ID).Warnf("could not list WAN interfaces of %s: %v", site.Name, err)
			continue
		}

		for _, wan := range wans {
			if !m.Match(wan) {
				continue
			}
			label, err := labels.Lookup(wan.LabelID)
			if err != nil {
				util.WithSite(site.ID).WithField("interface", wan.ID).Warnf("skipping circuit: %v", err)
				fmt.Fprintf(out, "%s circuit %q at SITE %s: %v\n\n", cli.Yellow("Skipping"), wan.Name, site.Name, err)
				continue
			}

			match := &Match{SiteID: site.ID, SiteName: site.Name, Label: label, Interface: wan}
			set.Add(match)
			printMatch(out, match)
		}
	}

	util.WithField("matches", set.Len()).Debugf("scanned %d sites for %s", len(sites), m)
	return set, nil
}

func printMatch(out io.Writer, m *Match) {
	fmt.Fprintln(out, "Found Circuit Match at SITE:", m.SiteName)
	fmt.Fprintln(out, "  "+cli.Field("Circuit Name", m.Interface.Name, reportWidth))
	fmt.Fprintln(out, "  "+cli.Field("Circuit Category", m.Label.Name, reportWidth))
	fmt.Fprintln(out, "  "+cli.Field("Circuit Label", m.Label.Label, reportWidth))
	fmt.Fprintln(out, "  "+cli.Field("Circuit Description", m.Label.Description, reportWidth))
	fmt.Fprintln(out, "  "+cli.Field("Circuit COST", m.Interface.Cost(), reportWidth))
	fmt.Fprintln(out)
}
