package wancost

import (
	"github.com/newtron-network/wancost/pkg/controller"
)

// Match is one selected WAN interface with the context needed to report
// and update it.
type Match struct {
	SiteID   string
	SiteName string
	Label    controller.WANInterfaceLabel

	// Interface is the record as read from the controller.
	Interface *controller.WANInterface
}

// InterfaceID returns the id of the matched interface.
func (m *Match) InterfaceID() string {
	return m.Interface.ID
}

// MatchSet holds at most one Match per interface id, in discovery order.
type MatchSet struct {
	matches []*Match
	index   map[string]int
}

// NewMatchSet creates an empty set.
func NewMatchSet() *MatchSet {
	return &MatchSet{index: map[string]int{}}
}

// Add records m. A second match for the same interface id replaces the
// first one in its original position.
func (s *MatchSet) Add(m *Match) {
	id := m.InterfaceID()
	if i, ok := s.index[id]; ok {
		s.matches[i] = m
		return
	}
	s.index[id] = len(s.matches)
	s.matches = append(s.matches, m)
}

// Len returns the number of matches.
func (s *MatchSet) Len() int {
	return len(s.matches)
}

// All returns the matches in discovery order.
func (s *MatchSet) All() []*Match {
	return append([]*Match(nil), s.matches...)
}
