package controller

import (
	"context"
	"fmt"
	"net/http"

	"github.com/newtron-network/wancost/pkg/util"
)

const (
	pathLogin   = "/v2.0/api/login"
	pathLogout  = "/v2.0/api/logout"
	pathProfile = "/v2.1/api/profile"
)

// LoginWithToken authenticates with a static auth token. The token is
// accepted only if the controller returns a profile with a tenant.
func (c *Client) LoginWithToken(ctx context.Context, token string) error {
	c.token = token
	if err := c.loadProfile(ctx); err != nil {
		c.token = ""
		return authError("token rejected", err)
	}
	return nil
}

// Login authenticates with an email and password.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp struct {
		XAuthToken string `json:"x_auth_token"`
	}
	req := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, pathLogin, req, &resp); err != nil {
		return authError("invalid email or password", err)
	}
	// Without an explicit token the session rides on the login cookies.
	if resp.XAuthToken != "" {
		c.token = resp.XAuthToken
	}
	if err := c.loadProfile(ctx); err != nil {
		c.token = ""
		return authError("session rejected", err)
	}
	return nil
}

// authError wraps err in util.ErrAuthFailed. Controller rejections get
// reason; transport and other failures are reported as they are.
func authError(reason string, err error) error {
	if IsUnauthorized(err) {
		return fmt.Errorf("%w: %s: %w", util.ErrAuthFailed, reason, err)
	}
	return fmt.Errorf("%w: %w", util.ErrAuthFailed, err)
}

func (c *Client) loadProfile(ctx context.Context) error {
	var p Profile
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, &p); err != nil {
		return err
	}
	if p.TenantID == "" {
		return util.ErrNoTenant
	}
	c.tenantID = p.TenantID
	c.email = p.Email
	return nil
}

// TenantID returns the tenant of the authenticated session, or "".
func (c *Client) TenantID() string {
	return c.tenantID
}

// Email returns the operator email of the session, when known.
func (c *Client) Email() string {
	return c.email
}

// Logout ends the session. Local session state is cleared even when the
// call fails.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, pathLogout, nil, nil)
	c.token = ""
	c.tenantID = ""
	c.email = ""
	return err
}
