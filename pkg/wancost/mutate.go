package wancost

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/newtron-network/wancost/pkg/audit"
	"github.com/newtron-network/wancost/pkg/cli"
	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/util"
)

// Updater writes a complete WAN interface record.
type Updater interface {
	UpdateWANInterface(ctx context.Context, siteID, interfaceID string, rec *controller.WANInterface) (*controller.WANInterface, error)
}

// Result is the outcome of one update.
type Result struct {
	Match   *Match
	OldCost string
	Err     error
}

// Summary collects the results of a batch in match order.
type Summary struct {
	Results   []Result
	Succeeded int
	Failed    int
}

// Mutator applies a cost to a match set. Updates are independent: a
// failure is reported and the next match is still attempted.
type Mutator struct {
	Updater Updater
	Audit   audit.Logger
	Tenant  string
	User    string
	Out     io.Writer
}

// ApplyCost sends one full-record update per match, in match order, with
// only the cost changed.
func (mu *Mutator) ApplyCost(ctx context.Context, set *MatchSet, cost string) Summary {
	var sum Summary
	for _, m := range set.All() {
		res := mu.apply(ctx, m, cost)
		if res.Err != nil {
			sum.Failed++
		} else {
			sum.Succeeded++
		}
		sum.Results = append(sum.Results, res)
	}
	return sum
}

func (mu *Mutator) apply(ctx context.Context, m *Match, cost string) Result {
	oldCost := m.Interface.Cost()
	fmt.Fprintln(mu.Out, "Site ID:", m.SiteID, "Current COST", oldCost, "changing to", cost)

	rec := m.Interface.Clone()
	rec.SetCost(cost)

	start := time.Now()
	_, err := mu.Updater.UpdateWANInterface(ctx, m.SiteID, m.InterfaceID(), rec)
	elapsed := time.Since(start)

	event := audit.NewEvent(audit.OperationSetCost, m.SiteID, m.InterfaceID()).
		WithUser(mu.User).
		WithTenant(mu.Tenant).
		WithNames(m.SiteName, m.Interface.Name).
		WithCosts(oldCost, cost).
		WithDuration(elapsed)

	if err != nil {
		event.WithError(err)
		util.WithSite(m.SiteID).WithField("interface", m.InterfaceID()).Debugf("cost update failed: %v", err)
		fmt.Fprintln(mu.Out, " "+cli.Red("Failed to make change:"), err)
	} else {
		event.WithSuccess()
		fmt.Fprintln(mu.Out, " "+cli.Green("Success,"), "cost now", cost)
	}
	fmt.Fprintln(mu.Out)

	if mu.Audit != nil {
		if aerr := mu.Audit.Log(event); aerr != nil {
			util.Warnf("could not write audit event: %v", aerr)
		}
	}

	return Result{Match: m, OldCost: oldCost, Err: err}
}
