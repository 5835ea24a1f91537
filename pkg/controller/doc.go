// Package controller is a small REST client for the SD-WAN controller API.
//
// It covers the calls the cost workflow needs: token and interactive login,
// profile lookup, tenant, WAN interface labels, sites, WAN interface read
// and full-record update, and logout. Responses are decoded into typed
// values; non-2xx responses become *APIError carrying the raw body.
//
// WAN interface records are round-tripped without loss: every field the
// controller returns is written back on update, so callers change only what
// they mean to change.
package controller
