package dto

import (
	"testing"
	"time"

	"golang-stock-scanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeStart(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		rng  string
		want time.Time
	}{
		{"max", earliestHistory},
		{"", earliestHistory},
		{"ytd", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"6mo", time.Date(2023, 12, 15, 12, 0, 0, 0, time.UTC)},
		{"1y", time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)},
		{"5d", time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)},
		{"2wk", time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.rng, func(t *testing.T) {
			got, err := RangeStart(now, tt.rng)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"mo", "0y", "3h", "abc"} {
		_, err := RangeStart(now, bad)
		assert.Error(t, err, bad)
	}
}

func TestNewScanRunResponse(t *testing.T) {
	idle := NewScanRunResponse(nil, false)
	assert.Equal(t, entity.RunStatusIdle, idle.Status)
	assert.Equal(t, MessageNotRun, idle.Message)
	assert.NotNil(t, idle.Results)

	empty := NewScanRunResponse(&entity.ScanRun{ID: "r1", Status: entity.RunStatusCompleted}, false)
	assert.Equal(t, MessageNoCandidates, empty.Message)
	assert.Equal(t, 1.0, empty.Progress)
	assert.NotNil(t, empty.Results)

	running := NewScanRunResponse(&entity.ScanRun{ID: "r2", Status: entity.RunStatusRunning, Total: 4, Processed: 1}, false)
	assert.Equal(t, MessageRunning, running.Message)
	assert.Equal(t, 0.25, running.Progress)

	done := NewScanRunResponse(&entity.ScanRun{
		ID:       "r3",
		Status:   entity.RunStatusCompleted,
		Results:  []entity.ScanResult{{Ticker: "A"}},
		Outcomes: []entity.OutcomeSummary{{Ticker: "A"}},
	}, true)
	assert.Empty(t, done.Message)
	assert.Len(t, done.Outcomes, 1)

	failed := NewScanRunResponse(&entity.ScanRun{Status: entity.RunStatusFailed, Error: "boom"}, false)
	assert.Equal(t, MessageFailed+" boom", failed.Message)
}
