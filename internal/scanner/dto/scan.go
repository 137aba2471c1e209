package dto

import (
	"time"

	"golang-stock-scanner/internal/entity"
)

const (
	MessageNotRun       = "No scan has been run yet."
	MessageRunning      = "Scanning tickers..."
	MessageNoCandidates = "No ticker broke out today."
	MessageFailed       = "The last scan did not complete."
)

// TriggerScanRequest is the body of POST /scans.
type TriggerScanRequest struct {
	Profile string `json:"profile" example:"default"`
	Notify  bool   `json:"notify"`
}

// ScanRunResponse is the presentation view of the latest run.
type ScanRunResponse struct {
	ID          string                  `json:"id,omitempty"`
	Profile     string                  `json:"profile,omitempty"`
	Status      entity.RunStatus        `json:"status"`
	Message     string                  `json:"message,omitempty"`
	Progress    float64                 `json:"progress"`
	Processed   int                     `json:"processed"`
	Total       int                     `json:"total"`
	Qualified   int                     `json:"qualified"`
	Skipped     int                     `json:"skipped"`
	Failed      int                     `json:"failed"`
	StartedAt   *time.Time              `json:"started_at,omitempty"`
	CompletedAt *time.Time              `json:"completed_at,omitempty"`
	Results     []entity.ScanResult     `json:"results"`
	Outcomes    []entity.OutcomeSummary `json:"outcomes,omitempty"`
}

// NewScanRunResponse maps a run (nil before the first run) to its view.
func NewScanRunResponse(run *entity.ScanRun, withOutcomes bool) *ScanRunResponse {
	if run == nil {
		return &ScanRunResponse{
			Status:  entity.RunStatusIdle,
			Message: MessageNotRun,
			Results: []entity.ScanResult{},
		}
	}

	resp := &ScanRunResponse{
		ID:          run.ID,
		Profile:     run.Profile,
		Status:      run.Status,
		Progress:    run.Fraction(),
		Processed:   run.Processed,
		Total:       run.Total,
		Qualified:   run.Qualified,
		Skipped:     run.Skipped,
		Failed:      run.Failed,
		CompletedAt: run.CompletedAt,
		Results:     run.Results,
	}
	if !run.StartedAt.IsZero() {
		startedAt := run.StartedAt
		resp.StartedAt = &startedAt
	}
	if resp.Results == nil {
		resp.Results = []entity.ScanResult{}
	}
	if withOutcomes {
		resp.Outcomes = run.Outcomes
	}

	switch {
	case run.Status == entity.RunStatusRunning:
		resp.Message = MessageRunning
	case run.IsEmpty():
		resp.Message = MessageNoCandidates
	case run.Status == entity.RunStatusFailed, run.Status == entity.RunStatusCanceled:
		resp.Message = MessageFailed
		if run.Error != "" {
			resp.Message += " " + run.Error
		}
	}
	return resp
}

// UniverseResponse lists the configured tickers.
type UniverseResponse struct {
	Count   int      `json:"count"`
	Tickers []string `json:"tickers"`
}
