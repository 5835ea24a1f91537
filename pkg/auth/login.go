package auth

import (
	"context"
	"fmt"
	"io"

	"github.com/newtron-network/wancost/pkg/util"
)

// Session is the part of the controller client used to log in.
type Session interface {
	LoginWithToken(ctx context.Context, token string) error
	Login(ctx context.Context, email, password string) error
}

// Prompter supplies interactive login credentials.
type Prompter interface {
	Credentials(ctx context.Context) (email, password string, err error)
}

// Authenticate logs s in with cred. Token credentials get exactly one
// attempt. Interactive login asks for fresh credentials after every failure
// until it succeeds, the prompter runs out of input, or ctx ends.
func Authenticate(ctx context.Context, s Session, cred Credential, p Prompter, out io.Writer) error {
	fmt.Fprintln(out, "AUTHENTICATING...")
	fmt.Fprintln(out, "    ", "Authenticating using", cred.Describe())
	util.WithField("source", cred.Source.String()).Debug("resolved credential")

	if !cred.Interactive() {
		if err := s.LoginWithToken(ctx, cred.Token); err != nil {
			fmt.Fprintln(out, "    ", "ERROR: AUTH_TOKEN login failure, please check token.")
			return err
		}
		fmt.Fprintln(out, "    ", "SUCCESS: Authentication Complete")
		return nil
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		email, password, err := p.Credentials(ctx)
		if err != nil {
			return fmt.Errorf("interactive login: %w", err)
		}
		err = s.Login(ctx, email, password)
		if err == nil {
			break
		}
		util.WithField("attempt", attempt).Debugf("interactive login failed: %v", err)
		fmt.Fprintln(out, "    ", "Login failed, please try again.")
	}

	fmt.Fprintln(out, "    ", "SUCCESS: Authentication Complete")
	return nil
}
