// Package audit records WAN interface cost changes as a JSON-lines trail.
package audit

import (
	"fmt"
	"os/user"
	"time"
)

// Operations recorded in the trail
const (
	OperationSetCost = "waninterface.set-cost"
)

// Event is one attempted change to a WAN interface.
type Event struct {
	ID          string        `json:"id"`
	Timestamp   time.Time     `json:"timestamp"`
	User        string        `json:"user"`
	Tenant      string        `json:"tenant,omitempty"`
	Operation   string        `json:"operation"`
	SiteID      string        `json:"site_id"`
	SiteName    string        `json:"site_name,omitempty"`
	InterfaceID string        `json:"interface_id"`
	Circuit     string        `json:"circuit,omitempty"`
	OldCost     string        `json:"old_cost"`
	NewCost     string        `json:"new_cost"`
	Success     bool          `json:"success"`
	Error       string        `json:"error,omitempty"`
	Duration    time.Duration `json:"duration"`
}

// Filter defines criteria for querying audit events
type Filter struct {
	SiteID      string
	InterfaceID string
	Operation   string
	StartTime   time.Time
	EndTime     time.Time
	SuccessOnly bool
	FailureOnly bool
	Limit       int
	Offset      int
}

// NewEvent creates a new audit event for the current OS user
func NewEvent(operation, siteID, interfaceID string) *Event {
	return &Event{
		ID:          generateID(),
		Timestamp:   time.Now(),
		User:        currentUser(),
		Operation:   operation,
		SiteID:      siteID,
		InterfaceID: interfaceID,
	}
}

// WithUser records the controller account that made the change. An empty
// user keeps the OS user.
func (e *Event) WithUser(u string) *Event {
	if u != "" {
		e.User = u
	}
	return e
}

// WithTenant sets the tenant name
func (e *Event) WithTenant(tenant string) *Event {
	e.Tenant = tenant
	return e
}

// WithNames sets the human-readable site and circuit names
func (e *Event) WithNames(site, circuit string) *Event {
	e.SiteName = site
	e.Circuit = circuit
	return e
}

// WithCosts sets the cost before and after the change
func (e *Event) WithCosts(oldCost, newCost string) *Event {
	e.OldCost = oldCost
	e.NewCost = newCost
	return e
}

// WithSuccess marks the event as successful
func (e *Event) WithSuccess() *Event {
	e.Success = true
	e.Error = ""
	return e
}

// WithError marks the event as failed
func (e *Event) WithError(err error) *Event {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

// WithDuration sets the operation duration
func (e *Event) WithDuration(d time.Duration) *Event {
	e.Duration = d
	return e
}

func generateID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
