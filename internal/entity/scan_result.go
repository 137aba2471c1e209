package entity

import "time"

// RiskRewardLabel is a qualitative bucket of the risk/reward ratio.
type RiskRewardLabel string

const (
	RiskRewardGood    RiskRewardLabel = "good"
	RiskRewardCaution RiskRewardLabel = "caution"
	RiskRewardPoor    RiskRewardLabel = "poor"
)

// ScanResult is one breakout candidate. Probability is a dimensionless
// momentum/volatility heuristic bounded to [0, 100], not a calibrated probability.
type ScanResult struct {
	Ticker           string          `json:"ticker"`
	DisplayName      string          `json:"display_name"`
	Probability      float64         `json:"probability"`
	EstimatedGainPct float64         `json:"estimated_gain_pct"`
	RiskLossPct      float64         `json:"risk_loss_pct"`
	EntryPrice       float64         `json:"entry_price"`
	StopLossPrice    float64         `json:"stop_loss_price"`
	RiskRewardRatio  float64         `json:"risk_reward_ratio"`
	RiskRewardLabel  RiskRewardLabel `json:"risk_reward_label"`
	Volatility       float64         `json:"volatility"`
	Momentum         float64         `json:"momentum"`
	LastClose        float64         `json:"last_close"`
	LastVolume       float64         `json:"last_volume"`
	BarTime          time.Time       `json:"bar_time"`
}
