package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"golang-stock-scanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderTime = time.Date(2024, 6, 14, 19, 30, 0, 0, time.UTC)

func TestRenderResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	run := &entity.ScanRun{Profile: "default", Status: entity.RunStatusCompleted, Total: 3, Skipped: 3}

	require.NoError(t, RenderResults(&buf, run, renderTime))
	out := buf.String()
	assert.Contains(t, out, "Nightly analysis | 14/06/2024 19:30 | profile default")
	assert.Contains(t, out, "3 tickers: 0 qualified, 3 skipped, 0 failed")
	assert.Contains(t, out, "No ticker broke out today.")
}

func TestRenderResults_Interrupted(t *testing.T) {
	tests := []struct {
		name string
		run  *entity.ScanRun
		want []string
	}{
		{
			name: "failed",
			run:  &entity.ScanRun{Profile: "default", Status: entity.RunStatusFailed, Error: "load universe: file not found"},
			want: []string{"The last scan did not complete. load universe: file not found", "(0 of 0 tickers processed)"},
		},
		{
			name: "canceled",
			run:  &entity.ScanRun{Profile: "default", Status: entity.RunStatusCanceled, Error: "context canceled", Total: 178, Processed: 3, Skipped: 3},
			want: []string{"The last scan did not complete. context canceled", "(3 of 178 tickers processed)"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, RenderResults(&buf, tt.run, renderTime))
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			assert.NotContains(t, out, "No ticker broke out today.")
		})
	}
}

func TestRenderResults_CanceledWithPartialResults(t *testing.T) {
	var buf bytes.Buffer
	run := &entity.ScanRun{
		Profile:   "default",
		Status:    entity.RunStatusCanceled,
		Total:     178,
		Processed: 5,
		Qualified: 1,
		Results:   []entity.ScanResult{{DisplayName: "PETR4", Probability: 40, RiskRewardLabel: entity.RiskRewardGood}},
	}

	require.NoError(t, RenderResults(&buf, run, renderTime))
	out := buf.String()
	assert.Contains(t, out, "(5 of 178 tickers processed)")
	assert.Contains(t, out, "PETR4")
	assert.NotContains(t, out, "No ticker broke out today.")
}

func TestRenderResults(t *testing.T) {
	var buf bytes.Buffer
	run := &entity.ScanRun{
		Profile:   "default",
		Total:     2,
		Qualified: 2,
		Results: []entity.ScanResult{
			{DisplayName: "PETR4", Probability: 55.5, EntryPrice: 38.51, StopLossPrice: 37.2, RiskRewardRatio: 1.6, RiskRewardLabel: entity.RiskRewardGood},
			{DisplayName: "VALE3", Probability: 12.25, RiskRewardLabel: entity.RiskRewardPoor},
		},
	}

	require.NoError(t, RenderResults(&buf, run, renderTime))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[3], "Ticker")
	assert.Contains(t, lines[4], "PETR4")
	assert.Contains(t, lines[4], "55.50")
	assert.Contains(t, lines[4], "38.51")
	assert.Contains(t, lines[5], "VALE3")
	assert.Contains(t, lines[5], "poor")
}

func TestRenderFailures(t *testing.T) {
	var buf bytes.Buffer
	run := &entity.ScanRun{Failed: 1, Outcomes: []entity.OutcomeSummary{
		{Ticker: "A", Status: entity.OutcomeSkipped},
		{Ticker: "B", Status: entity.OutcomeFailed, Error: "symbol not found"},
	}}
	require.NoError(t, RenderFailures(&buf, run))
	assert.Contains(t, buf.String(), "B: symbol not found")
	assert.NotContains(t, buf.String(), "A:")

	buf.Reset()
	require.NoError(t, RenderFailures(&buf, &entity.ScanRun{}))
	assert.Empty(t, buf.String())
}

func TestProgressPrinter(t *testing.T) {
	var buf bytes.Buffer
	printer := ProgressPrinter(&buf)
	printer(entity.Progress{Processed: 1, Total: 4, Fraction: 0.25, Ticker: "PETR4.SA"})
	printer(entity.Progress{Processed: 4, Total: 4, Fraction: 1, Done: true})

	assert.Contains(t, buf.String(), "[ 25%] 1/4 PETR4.SA")
	assert.True(t, strings.HasSuffix(buf.String(), "[100%] 4/4 done\n"))
}
