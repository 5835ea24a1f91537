package wancost

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/newtron-network/wancost/pkg/audit"
	"github.com/newtron-network/wancost/pkg/auth"
	"github.com/newtron-network/wancost/pkg/util"
)

// Controller is everything the workflow needs from a controller session.
type Controller interface {
	auth.Session
	ReferenceSource
	Inventory
	Updater
	Email() string
	TenantID() string
	Logout(ctx context.Context) error
}

// Prompter asks the operator for login credentials and confirmation.
type Prompter interface {
	auth.Prompter
	Confirm(ctx context.Context, question string) (bool, error)
}

// Options configure one run of the workflow.
type Options struct {
	MatchText  string
	Cost       string
	MatchOn    MatchOn
	Credential auth.Credential
	Prompter   Prompter
	Audit      audit.Logger
	Out        io.Writer
}

// Run authenticates, finds matching circuits, asks for confirmation, and
// applies the new cost. Logout is attempted on every return path once a
// login has been tried. Per-item update failures are reported as an
// *util.ExitError with util.ExitPartialUpdate.
func Run(ctx context.Context, api Controller, opts Options) error {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	matcher, err := NewMatcher(opts.MatchOn, opts.MatchText)
	if err != nil {
		return err
	}

	defer logout(ctx, api, out)

	if err := auth.Authenticate(ctx, api, opts.Credential, opts.Prompter, out); err != nil {
		return err
	}
	util.WithFields(map[string]interface{}{"user": api.Email(), "tenant": api.TenantID()}).Debug("session established")

	ref, err := LoadReferenceData(ctx, api)
	if err != nil {
		fmt.Fprintln(out, "ERROR: API Call failure when enumerating TENANT Name! Exiting!")
		return err
	}
	fmt.Fprintln(out, "======== TENANT NAME", ref.Tenant.Name, "========")

	set, err := FindMatches(ctx, api, matcher, ref.Labels, out)
	if err != nil {
		fmt.Fprintln(out, "ERROR: API Call failure when enumerating SITES in tenant! Exiting!")
		return err
	}

	if set.Len() == 0 {
		fmt.Fprintln(out, "No matching circuits found.")
		return nil
	}

	question := fmt.Sprintf("This will change all %d circuits found above to a cost of %s, are you sure", set.Len(), opts.Cost)
	ok, err := opts.Prompter.Confirm(ctx, question)
	if err != nil {
		if errors.Is(err, util.ErrNoInput) || ctx.Err() != nil {
			fmt.Fprintln(out, "CHANGES ABORTED!")
		}
		return fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, "CHANGES ABORTED!")
		return nil
	}

	fmt.Fprintln(out, "Changing Sites:")
	fmt.Fprintln(out)

	mu := &Mutator{Updater: api, Audit: opts.Audit, Tenant: ref.Tenant.Name, User: api.Email(), Out: out}
	sum := mu.ApplyCost(ctx, set, opts.Cost)
	if sum.Failed > 0 {
		return util.NewExitError(util.ExitPartialUpdate, &util.UpdateFailedError{Failed: sum.Failed, Total: len(sum.Results)})
	}
	return nil
}

// logout ends the session even when ctx has been canceled.
func logout(ctx context.Context, api Controller, out io.Writer) {
	fmt.Fprintln(out, "Logging out")
	if err := api.Logout(context.WithoutCancel(ctx)); err != nil {
		util.Debugf("logout failed: %v", err)
	}
}
