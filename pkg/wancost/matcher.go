package wancost

import (
	"fmt"
	"strings"

	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/util"
)

// MatchOn selects which attribute of a WAN interface is matched.
type MatchOn string

// MatchCircuitName matches the circuit (interface) name.
const MatchCircuitName MatchOn = "circuit_name"

// Matcher decides whether a WAN interface is selected.
type Matcher interface {
	Match(wan *controller.WANInterface) bool
	String() string
}

// NewMatcher returns the matcher for on. Only MatchCircuitName exists; an
// empty on selects it.
func NewMatcher(on MatchOn, text string) (Matcher, error) {
	switch on {
	case MatchCircuitName, "":
		return circuitNameMatcher{text: strings.ToLower(text)}, nil
	}
	return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedMatch, string(on))
}

// circuitNameMatcher selects interfaces whose name contains text,
// ignoring case. An empty text matches every interface.
type circuitNameMatcher struct {
	text string
}

func (m circuitNameMatcher) Match(wan *controller.WANInterface) bool {
	return strings.Contains(strings.ToLower(wan.Name), m.text)
}

func (m circuitNameMatcher) String() string {
	return fmt.Sprintf("circuit name contains %q", m.text)
}
