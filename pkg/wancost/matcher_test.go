package wancost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newtron-network/wancost/pkg/controller"
	"github.com/newtron-network/wancost/pkg/util"
)

func wan(t *testing.T, fields map[string]interface{}) *controller.WANInterface {
	t.Helper()
	w, err := controller.NewWANInterface(fields)
	require.NoError(t, err)
	return w
}

func TestCircuitNameMatcher(t *testing.T) {
	tests := []struct {
		text    string
		circuit string
		want    bool
	}{
		{"lte", "LTE-Backup", true},
		{"LTE", "verizon lte", true},
		{"LtE", "Primary-lTe-2", true},
		{"", "anything", true},
		{"", "", true},
		{"lte", "Comcast Business", false},
		{"backup-lte", "LTE-Backup", false},
		{"lte", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text+"/"+tt.circuit, func(t *testing.T) {
			m, err := NewMatcher(MatchCircuitName, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Match(wan(t, map[string]interface{}{"id": "w", "name": tt.circuit})))
		})
	}
}

func TestNewMatcher(t *testing.T) {
	m, err := NewMatcher("", "lte")
	require.NoError(t, err)
	assert.Contains(t, m.String(), "circuit name")

	_, err = NewMatcher("label_name", "lte")
	assert.True(t, errors.Is(err, util.ErrUnsupportedMatch))
}
