package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-scanner/internal/entity"
	"golang-stock-scanner/pkg/utils"
)

const (
	maxMessageLen  = 4090
	noBreakoutText = "No ticker broke out today."
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// FormatScanResultsForTelegram formats a completed run into Markdown messages,
// splitting into parts so that no message exceeds the Telegram limit.
// topN limits the number of candidates listed; zero lists all of them.
func FormatScanResultsForTelegram(run *entity.ScanRun, topN int, now time.Time) []string {
	header := fmt.Sprintf("🌙 *Nightly analysis* | %s\n", utils.PrettyDate(now))
	if run == nil || len(run.Results) == 0 {
		return []string{header + "\n" + noBreakoutText}
	}

	results := run.Results
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString(header)
			currentMessage.WriteString(fmt.Sprintf("📋 Profile: `%s` | %d of %d tickers qualified\n\n",
				run.Profile, run.Qualified, run.Total))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Nightly analysis Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for i, r := range results {
		entry := formatScanResult(i+1, r)
		if currentMessage.Len()+len(entry) > maxMessageLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entry)
	}

	if len(run.Results) > len(results) {
		currentMessage.WriteString(fmt.Sprintf("_+%d more candidates_\n", len(run.Results)-len(results)))
	}

	messages = append(messages, currentMessage.String())
	return messages
}

func formatScanResult(rank int, r entity.ScanResult) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d. 📈 *%s* %s\n", rank, markdownEscaper.Replace(r.DisplayName), riskRewardIcon(r.RiskRewardLabel)))
	sb.WriteString(fmt.Sprintf("🎯 Probability: %.2f%%\n", r.Probability))
	sb.WriteString(fmt.Sprintf("💰 Entry: %.2f | 🛑 Stop: %.2f\n", r.EntryPrice, r.StopLossPrice))
	sb.WriteString(fmt.Sprintf("📊 Gain: %.2f%% | Risk: %.2f%% | R/R: %.2f\n\n", r.EstimatedGainPct, r.RiskLossPct, r.RiskRewardRatio))

	return sb.String()
}

func riskRewardIcon(label entity.RiskRewardLabel) string {
	switch label {
	case entity.RiskRewardGood:
		return "🟢"
	case entity.RiskRewardCaution:
		return "🟡"
	default:
		return "🔴"
	}
}

// FormatErrorAlertMessage formats a failed run notification.
func FormatErrorAlertMessage(time time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf(`📛 \[ERROR ALERT]
%s
🔧 %s
⚠️ %s

📄 Data: %s
`, utils.PrettyDate(time), markdownEscaper.Replace(errType), markdownEscaper.Replace(errMsg), markdownEscaper.Replace(data))
}
