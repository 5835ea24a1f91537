package util

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveLoggerState saves the current logger state for restoration
func saveLoggerState() (io.Writer, logrus.Level, logrus.Formatter) {
	return Logger.Out, Logger.Level, Logger.Formatter
}

// restoreLoggerState restores the logger to its previous state
func restoreLoggerState(out io.Writer, level logrus.Level, formatter logrus.Formatter) {
	Logger.SetOutput(out)
	Logger.SetLevel(level)
	Logger.SetFormatter(formatter)
}

func TestSetLogLevel(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"warning", false},
		{"error", false},
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			err := SetLogLevel(tt.level)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultLevelSuppressesInfo(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	require.NoError(t, SetLogLevel("warn"))

	Infof("hidden %d", 1)
	Debugf("hidden %d", 2)
	assert.Zero(t, buf.Len())

	Warnf("shown %d", 3)
	assert.Contains(t, buf.String(), "shown 3")
}

func TestSetJSONFormat(t *testing.T) {
	out, level, formatter := saveLoggerState()
	defer restoreLoggerState(out, level, formatter)

	var buf bytes.Buffer
	SetLogOutput(&buf)
	SetJSONFormat()

	WithSite("site-1").Warn("json entry")

	output := buf.String()
	require.NotEmpty(t, output)
	assert.True(t, strings.HasPrefix(output, "{"), "expected JSON output, got %s", output)
	assert.Contains(t, output, `"site":"site-1"`)
}

func TestWithCall(t *testing.T) {
	entry := WithCall("GET", "/v2.0/api/profile")
	require.NotNil(t, entry)
	assert.Equal(t, "GET", entry.Data["method"])
	assert.Equal(t, "/v2.0/api/profile", entry.Data["path"])
}

func TestWithFields(t *testing.T) {
	entry := WithFields(map[string]interface{}{
		"key1": "value1",
		"key2": 123,
	})
	require.NotNil(t, entry)
	assert.Len(t, entry.Data, 2)
	assert.Equal(t, "value1", WithField("key1", "value1").Data["key1"])
}
