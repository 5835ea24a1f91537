package controller

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/newtron-network/wancost/pkg/util"
)

// API versions of the tenant-scoped resources.
const (
	versionTenants      = "v2.0"
	versionWANLabels    = "v2.0"
	versionSites        = "v4.5"
	versionWANInterface = "v2.5"
)

func (c *Client) tenantPath(apiVersion string, segments ...string) (string, error) {
	if c.tenantID == "" {
		return "", util.ErrNoTenant
	}
	p := "/" + apiVersion + "/api/tenants/" + url.PathEscape(c.tenantID)
	for _, s := range segments {
		p += "/" + url.PathEscape(s)
	}
	return p, nil
}

// Tenant returns the tenant of the session.
func (c *Client) Tenant(ctx context.Context) (*Tenant, error) {
	path, err := c.tenantPath(versionTenants)
	if err != nil {
		return nil, err
	}
	var t Tenant
	if err := c.do(ctx, http.MethodGet, path, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// WANInterfaceLabels returns the label catalog of the tenant.
func (c *Client) WANInterfaceLabels(ctx context.Context) ([]WANInterfaceLabel, error) {
	path, err := c.tenantPath(versionWANLabels, "waninterfacelabels")
	if err != nil {
		return nil, err
	}
	var resp itemsResponse[WANInterfaceLabel]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Sites returns every site of the tenant in controller order.
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	path, err := c.tenantPath(versionSites, "sites")
	if err != nil {
		return nil, err
	}
	var resp itemsResponse[Site]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// WANInterfaces returns the WAN interfaces of one site.
func (c *Client) WANInterfaces(ctx context.Context, siteID string) ([]*WANInterface, error) {
	path, err := c.tenantPath(versionWANInterface, "sites", siteID, "waninterfaces")
	if err != nil {
		return nil, err
	}
	var resp itemsResponse[*WANInterface]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// UpdateWANInterface replaces a WAN interface with rec. The whole record is
// sent; the controller does not support partial updates.
func (c *Client) UpdateWANInterface(ctx context.Context, siteID, interfaceID string, rec *WANInterface) (*WANInterface, error) {
	if rec == nil {
		return nil, fmt.Errorf("update of WAN interface %s: nil record", interfaceID)
	}
	path, err := c.tenantPath(versionWANInterface, "sites", siteID, "waninterfaces", interfaceID)
	if err != nil {
		return nil, err
	}
	updated := &WANInterface{}
	if err := c.do(ctx, http.MethodPut, path, rec, updated); err != nil {
		return nil, err
	}
	if updated.fields == nil {
		return rec, nil
	}
	return updated, nil
}
