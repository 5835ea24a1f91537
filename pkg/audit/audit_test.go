package audit

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvent_Chaining(t *testing.T) {
	event := NewEvent(OperationSetCost, "site-a", "wan-1").
		WithTenant("Example Corp").
		WithNames("Branch A", "LTE-Backup").
		WithCosts("500", "200").
		WithSuccess().
		WithDuration(time.Second)

	assert.NotEmpty(t, event.ID)
	assert.False(t, event.Timestamp.IsZero())
	assert.NotEmpty(t, event.User)
	assert.Equal(t, OperationSetCost, event.Operation)
	assert.Equal(t, "site-a", event.SiteID)
	assert.Equal(t, "wan-1", event.InterfaceID)
	assert.Equal(t, "Example Corp", event.Tenant)
	assert.Equal(t, "Branch A", event.SiteName)
	assert.Equal(t, "LTE-Backup", event.Circuit)
	assert.Equal(t, "500", event.OldCost)
	assert.Equal(t, "200", event.NewCost)
	assert.True(t, event.Success)
	assert.Equal(t, time.Second, event.Duration)
}

func TestEvent_WithUser(t *testing.T) {
	osUser := NewEvent(OperationSetCost, "s", "w").User

	event := NewEvent(OperationSetCost, "s", "w").WithUser("operator@example.com")
	assert.Equal(t, "operator@example.com", event.User)

	event = NewEvent(OperationSetCost, "s", "w").WithUser("")
	assert.Equal(t, osUser, event.User)
}

func TestEvent_WithError(t *testing.T) {
	event := NewEvent(OperationSetCost, "s", "w").WithError(errors.New("update rejected"))
	assert.False(t, event.Success)
	assert.Equal(t, "update rejected", event.Error)

	event = NewEvent(OperationSetCost, "s", "w").WithError(nil)
	assert.False(t, event.Success)
	assert.Empty(t, event.Error)
}

func newTestLogger(t *testing.T, rotation RotationConfig) *FileLogger {
	t.Helper()
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "audit", "audit.log"), rotation)
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger
}

func TestFileLogger_Basic(t *testing.T) {
	logger := newTestLogger(t, RotationConfig{})

	event := NewEvent(OperationSetCost, "site-a", "wan-1").WithCosts("500", "200").WithSuccess()
	require.NoError(t, logger.Log(event))

	events, err := logger.Query(Filter{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "site-a", events[0].SiteID)
	assert.Equal(t, "200", events[0].NewCost)
}

func TestFileLogger_QueryFilters(t *testing.T) {
	logger := newTestLogger(t, RotationConfig{})

	events := []*Event{
		NewEvent(OperationSetCost, "site-a", "wan-1").WithNames("Branch A", "LTE").WithSuccess(),
		NewEvent(OperationSetCost, "site-a", "wan-2").WithNames("Branch A", "BB").WithError(errors.New("failed")),
		NewEvent(OperationSetCost, "site-c", "wan-3").WithNames("Branch C", "LTE").WithSuccess(),
		NewEvent("other.op", "site-c", "wan-4").WithSuccess(),
	}
	for _, e := range events {
		require.NoError(t, logger.Log(e))
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by site id", Filter{SiteID: "site-a"}, 2},
		{"by site name", Filter{SiteID: "Branch C"}, 1},
		{"by interface", Filter{InterfaceID: "wan-3"}, 1},
		{"by operation", Filter{Operation: OperationSetCost}, 3},
		{"success only", Filter{SuccessOnly: true}, 3},
		{"failure only", Filter{FailureOnly: true}, 1},
		{"limit", Filter{Limit: 2}, 2},
		{"offset", Filter{Offset: 3}, 1},
		{"offset past end", Filter{Offset: 10}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := logger.Query(tt.filter)
			require.NoError(t, err)
			assert.Len(t, results, tt.want)
		})
	}
}

func TestFileLogger_QueryTimeFilter(t *testing.T) {
	logger := newTestLogger(t, RotationConfig{})

	old := NewEvent(OperationSetCost, "s", "w1")
	old.Timestamp = time.Now().Add(-2 * time.Hour)
	recent := NewEvent(OperationSetCost, "s", "w2")
	require.NoError(t, logger.Log(old))
	require.NoError(t, logger.Log(recent))

	results, err := logger.Query(Filter{StartTime: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "w2", results[0].InterfaceID)

	results, err = logger.Query(Filter{EndTime: time.Now().Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "w1", results[0].InterfaceID)
}

func TestQueryFile(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		events, err := QueryFile(filepath.Join(t.TempDir(), "absent.log"), Filter{})
		require.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("malformed lines skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "audit.log")
		data := `{"id":"1","site_id":"s","interface_id":"w","success":true}
not json
{"id":"2","site_id":"s","interface_id":"w2","success":false}
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		events, err := QueryFile(path, Filter{})
		require.NoError(t, err)
		assert.Len(t, events, 2)
	})
}

func TestFileLogger_LogRotation(t *testing.T) {
	logger := newTestLogger(t, RotationConfig{MaxSize: 100, MaxBackups: 2})

	for i := 0; i < 6; i++ {
		require.NoError(t, logger.Log(NewEvent(OperationSetCost, "site-a", "wan-1").WithCosts("1", "2")))
	}

	backups, err := filepath.Glob(logger.Path() + ".*")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(backups), 2)
	assert.NotEmpty(t, backups)

	info, err := os.Stat(logger.Path())
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	assert.NoError(t, l.Log(NewEvent(OperationSetCost, "s", "w")))
	events, err := l.Query(Filter{})
	assert.NoError(t, err)
	assert.Empty(t, events)
	assert.NoError(t, l.Close())
}
