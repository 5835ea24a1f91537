package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfo(t *testing.T) {
	assert.Equal(t, "dev", Version)
	assert.Equal(t, "dev (unknown) built unknown", Info())
}
