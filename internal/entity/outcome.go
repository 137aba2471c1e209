package entity

// OutcomeStatus is the result of processing one ticker.
type OutcomeStatus string

const (
	OutcomeQualified OutcomeStatus = "qualified"
	OutcomeSkipped   OutcomeStatus = "skipped"
	OutcomeFailed    OutcomeStatus = "failed"
)

// SkipReason explains why a ticker produced no result without failing.
type SkipReason string

const (
	SkipInsufficientHistory SkipReason = "insufficient_history"
	SkipCriteriaNotMet      SkipReason = "criteria_not_met"
	SkipBelowCutoff         SkipReason = "below_probability_cutoff"
)

// TickerOutcome is Ok(Result), Skipped(Reason) or Failed(Err) for one ticker.
type TickerOutcome struct {
	Ticker string
	Status OutcomeStatus
	Result *ScanResult
	Reason SkipReason
	Err    error
}

func Qualified(result ScanResult) TickerOutcome {
	return TickerOutcome{Ticker: result.Ticker, Status: OutcomeQualified, Result: &result}
}

func Skipped(ticker string, reason SkipReason) TickerOutcome {
	return TickerOutcome{Ticker: ticker, Status: OutcomeSkipped, Reason: reason}
}

func Failed(ticker string, err error) TickerOutcome {
	return TickerOutcome{Ticker: ticker, Status: OutcomeFailed, Err: err}
}

// OutcomeSummary is the serializable form of a TickerOutcome.
type OutcomeSummary struct {
	Ticker string        `json:"ticker"`
	Status OutcomeStatus `json:"status"`
	Reason SkipReason    `json:"reason,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Summary converts the outcome for reporting.
func (o TickerOutcome) Summary() OutcomeSummary {
	s := OutcomeSummary{Ticker: o.Ticker, Status: o.Status, Reason: o.Reason}
	if o.Err != nil {
		s.Error = o.Err.Error()
	}
	return s
}
