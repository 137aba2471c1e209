package entity

import "time"

// RunStatus is the lifecycle state of a scan run.
type RunStatus string

const (
	RunStatusIdle      RunStatus = "idle"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusCanceled  RunStatus = "canceled"
)

// ScanRun is one pass of the screener over the universe. It lives in memory only.
type ScanRun struct {
	ID          string           `json:"id"`
	Profile     string           `json:"profile"`
	Status      RunStatus        `json:"status"`
	StartedAt   time.Time        `json:"started_at"`
	CompletedAt *time.Time       `json:"completed_at,omitempty"`
	Total       int              `json:"total"`
	Processed   int              `json:"processed"`
	Qualified   int              `json:"qualified"`
	Skipped     int              `json:"skipped"`
	Failed      int              `json:"failed"`
	Error       string           `json:"error,omitempty"`
	Results     []ScanResult     `json:"results"`
	Outcomes    []OutcomeSummary `json:"outcomes,omitempty"`
}

// Fraction returns the completed share of the universe in [0, 1].
func (r *ScanRun) Fraction() float64 {
	if r.Total == 0 {
		if r.Status == RunStatusRunning {
			return 0
		}
		return 1
	}
	return float64(r.Processed) / float64(r.Total)
}

// IsEmpty reports a completed run without candidates.
func (r *ScanRun) IsEmpty() bool {
	return r.Status == RunStatusCompleted && len(r.Results) == 0
}

// Record applies one ticker outcome to the run counters.
func (r *ScanRun) Record(o TickerOutcome) {
	r.Processed++
	switch o.Status {
	case OutcomeQualified:
		r.Qualified++
		r.Results = append(r.Results, *o.Result)
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
	r.Outcomes = append(r.Outcomes, o.Summary())
}

// Progress is emitted after each ticker completes.
type Progress struct {
	RunID     string        `json:"run_id"`
	Processed int           `json:"processed"`
	Total     int           `json:"total"`
	Fraction  float64       `json:"fraction"`
	Ticker    string        `json:"ticker,omitempty"`
	Status    OutcomeStatus `json:"status,omitempty"`
	Done      bool          `json:"done"`
}
