// Package wancost implements the bulk WAN cost workflow: load reference
// data, find WAN interfaces whose circuit name matches, confirm with the
// operator, then write the new cost to every match.
//
// The workflow runs against a single authenticated controller session and
// always attempts to log out before Run returns.
package wancost
