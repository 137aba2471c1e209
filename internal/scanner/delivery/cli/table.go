package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/internal/scanner/dto"
	"golang-stock-scanner/pkg/utils"
)

// RenderResults writes the run as a ranked table, or the empty-state message.
func RenderResults(w io.Writer, run *entity.ScanRun, now time.Time) error {
	if _, err := fmt.Fprintf(w, "Nightly analysis | %s | profile %s\n", utils.PrettyDate(now), run.Profile); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%d tickers: %d qualified, %d skipped, %d failed\n\n",
		run.Total, run.Qualified, run.Skipped, run.Failed); err != nil {
		return err
	}

	switch run.Status {
	case entity.RunStatusFailed, entity.RunStatusCanceled:
		msg := dto.MessageFailed
		if run.Error != "" {
			msg += " " + run.Error
		}
		if _, err := fmt.Fprintf(w, "%s (%d of %d tickers processed)\n", msg, run.Processed, run.Total); err != nil {
			return err
		}
		if len(run.Results) == 0 {
			return nil
		}
		// Partial results from an interrupted run still get listed.
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if len(run.Results) == 0 {
		if run.IsEmpty() {
			_, err := fmt.Fprintln(w, dto.MessageNoCandidates)
			return err
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tTicker\tProb %\tGain %\tRisk %\tEntry\tStop\tR/R\tLabel\t")
	for i, r := range run.Results {
		fmt.Fprintf(tw, "%d\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%s\t\n",
			i+1, r.DisplayName, r.Probability, r.EstimatedGainPct, r.RiskLossPct,
			r.EntryPrice, r.StopLossPrice, r.RiskRewardRatio, r.RiskRewardLabel)
	}
	return tw.Flush()
}

// RenderFailures lists the tickers that could not be processed.
func RenderFailures(w io.Writer, run *entity.ScanRun) error {
	if run.Failed == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "\nFailed tickers (%d):\n", run.Failed); err != nil {
		return err
	}
	for _, o := range run.Outcomes {
		if o.Status != entity.OutcomeFailed {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %s: %s\n", o.Ticker, o.Error); err != nil {
			return err
		}
	}
	return nil
}

// ProgressPrinter returns a progress callback that rewrites one status line.
func ProgressPrinter(w io.Writer) func(entity.Progress) {
	return func(p entity.Progress) {
		if p.Done {
			fmt.Fprintf(w, "\r[%3.0f%%] %d/%d done\n", p.Fraction*100, p.Processed, p.Total)
			return
		}
		fmt.Fprintf(w, "\r[%3.0f%%] %d/%d %-12s", p.Fraction*100, p.Processed, p.Total, p.Ticker)
	}
}
