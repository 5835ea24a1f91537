package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ClusterRoleHub marks a data-center hub site.
const ClusterRoleHub = "HUB"

// Profile is the authenticated operator as returned by the profile call.
type Profile struct {
	TenantID  string `json:"tenant_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Tenant is the customer account scope of a session.
type Tenant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WANInterfaceLabel is a circuit category such as "Broadband" or "LTE".
type WANInterfaceLabel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Site is a branch or hub location.
type Site struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ElementClusterRole string `json:"element_cluster_role"`
}

// IsHub reports whether the site is a hub.
func (s Site) IsHub() bool {
	return s.ElementClusterRole == ClusterRoleHub
}

type itemsResponse[T any] struct {
	Items []T `json:"items"`
}

// WANInterface is a circuit record attached to a site. The decoded fields
// are read-only views; the complete record, including fields this package
// does not know about, is kept and written back by MarshalJSON.
type WANInterface struct {
	ID      string
	Name    string
	LabelID string

	fields map[string]json.RawMessage
}

// NewWANInterface builds a record from arbitrary fields.
func NewWANInterface(fields map[string]interface{}) (*WANInterface, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	w := &WANInterface{}
	if err := json.Unmarshal(data, w); err != nil {
		return nil, err
	}
	return w, nil
}

// UnmarshalJSON keeps every field of the record.
func (w *WANInterface) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding WAN interface: %w", err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	w.fields = fields
	w.ID = stringField(fields, "id")
	w.Name = stringField(fields, "name")
	w.LabelID = stringField(fields, "label_id")
	return nil
}

// MarshalJSON writes the complete record.
func (w *WANInterface) MarshalJSON() ([]byte, error) {
	if w.fields == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(w.fields)
}

// Cost returns the current cost as text. A missing or null cost is "".
func (w *WANInterface) Cost() string {
	raw, ok := w.fields["cost"]
	if !ok || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// SetCost replaces the cost, passing the text through unvalidated. The
// field keeps the JSON type the record was read with: the controller
// returns cost as an integer, so numeric text goes back as a JSON number on
// a record with a numeric (or absent) cost. A record whose cost is already a
// string, and any text that is not a JSON number, gets a JSON string.
func (w *WANInterface) SetCost(cost string) {
	if w.fields == nil {
		w.fields = map[string]json.RawMessage{}
	}
	if isJSONNumber(cost) && !w.costIsString() {
		w.fields["cost"] = json.RawMessage(cost)
		return
	}
	data, _ := json.Marshal(cost)
	w.fields["cost"] = data
}

func (w *WANInterface) costIsString() bool {
	raw := bytes.TrimSpace(w.fields["cost"])
	return len(raw) > 0 && raw[0] == '"'
}

// Field returns the raw JSON of one field, or nil when absent.
func (w *WANInterface) Field(name string) json.RawMessage {
	return w.fields[name]
}

// Clone returns an independent copy of the record.
func (w *WANInterface) Clone() *WANInterface {
	c := &WANInterface{ID: w.ID, Name: w.Name, LabelID: w.LabelID}
	c.fields = make(map[string]json.RawMessage, len(w.fields))
	for k, v := range w.fields {
		c.fields[k] = append(json.RawMessage(nil), v...)
	}
	return c
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isJSONNumber(s string) bool {
	if s == "" || s != strings.TrimSpace(s) {
		return false
	}
	if s[0] != '-' && (s[0] < '0' || s[0] > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
