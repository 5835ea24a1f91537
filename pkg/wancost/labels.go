package wancost

import (
	"context"
	"fmt"

	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/util"
)

// LabelCatalog maps a label id to its label.
type LabelCatalog map[string]controller.WANInterfaceLabel

// NewLabelCatalog indexes labels by id.
func NewLabelCatalog(labels []controller.WANInterfaceLabel) LabelCatalog {
	c := make(LabelCatalog, len(labels))
	for _, l := range labels {
		c[l.ID] = l
	}
	return c
}

// Lookup returns the label for id, or an error wrapping util.ErrUnknownLabel.
func (c LabelCatalog) Lookup(id string) (controller.WANInterfaceLabel, error) {
	l, ok := c[id]
	if !ok {
		return controller.WANInterfaceLabel{}, fmt.Errorf("%w %q", util.ErrUnknownLabel, id)
	}
	return l, nil
}

// ReferenceSource supplies the tenant and its label catalog.
type ReferenceSource interface {
	Tenant(ctx context.Context) (*controller.Tenant, error)
	WANInterfaceLabels(ctx context.Context) ([]controller.WANInterfaceLabel, error)
}

// ReferenceData is loaded once per run.
type ReferenceData struct {
	Tenant controller.Tenant
	Labels LabelCatalog
}

// TenantError is a failure to read the tenant. The underlying error keeps
// the raw controller response.
type TenantError struct {
	Err error
}

func (e *TenantError) Error() string {
	return "enumerating tenant: " + e.Err.Error()
}

func (e *TenantError) Unwrap() error {
	return e.Err
}

// LoadReferenceData reads the tenant and the label catalog. A tenant
// failure is fatal. A label catalog failure leaves the catalog empty, so
// every match is later skipped as having an unknown label.
func LoadReferenceData(ctx context.Context, src ReferenceSource) (*ReferenceData, error) {
	tenant, err := src.Tenant(ctx)
	if err != nil {
		return nil, &TenantError{Err: err}
	}

	labels, err := src.WANInterfaceLabels(ctx)
	if err != nil {
		util.Warnf("could not load WAN interface labels: %v", err)
		labels = nil
	}
	util.WithField("labels", len(labels)).Debug("loaded label catalog")

	return &ReferenceData{Tenant: *tenant, Labels: NewLabelCatalog(labels)}, nil
}
