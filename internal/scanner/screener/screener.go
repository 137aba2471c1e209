package screener

import (
	"strings"

	"golang-stock-scanner/internal/entity"

	"github.com/shopspring/decimal"
)

// Screener evaluates bar series against one profile.
type Screener struct {
	profile       Profile
	displaySuffix string
}

// Option configures a Screener.
type Option func(*Screener)

// WithDisplaySuffix strips suffix (e.g. ".SA") from tickers in DisplayName.
func WithDisplaySuffix(suffix string) Option {
	return func(s *Screener) {
		s.displaySuffix = suffix
	}
}

// New validates profile and returns a Screener for it.
func New(profile Profile, opts ...Option) (*Screener, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	s := &Screener{profile: profile}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Profile returns the profile the screener was built with.
func (s *Screener) Profile() Profile {
	return s.profile
}

// Evaluate decides whether series is a breakout candidate and scores it.
func (s *Screener) Evaluate(series entity.BarSeries) entity.TickerOutcome {
	if err := series.Validate(); err != nil {
		return entity.Failed(series.Ticker, err)
	}
	if series.Len() < s.minBars() {
		return entity.Skipped(series.Ticker, entity.SkipInsufficientHistory)
	}
	if !s.qualifies(series) {
		return entity.Skipped(series.Ticker, entity.SkipCriteriaNotMet)
	}

	result := s.score(series)
	if s.profile.MinProbability > 0 && result.Probability <= s.profile.MinProbability {
		return entity.Skipped(series.Ticker, entity.SkipBelowCutoff)
	}
	return entity.Qualified(result)
}

// Qualifies applies the enabled predicates to a validated series of sufficient length.
func (s *Screener) Qualifies(series entity.BarSeries) (bool, error) {
	if err := series.Validate(); err != nil {
		return false, err
	}
	if series.Len() < s.minBars() {
		return false, nil
	}
	return s.qualifies(series), nil
}

// Score computes the result record without applying the predicates.
// The series must hold at least two bars.
func (s *Screener) Score(series entity.BarSeries) entity.ScanResult {
	return s.score(series)
}

func (s *Screener) minBars() int {
	if s.profile.MinBars < 2 {
		return 2
	}
	return s.profile.MinBars
}

func (s *Screener) qualifies(series entity.BarSeries) bool {
	p := s.profile
	last := series.Last()
	prev := series.Bars[series.Len()-2]

	if p.RequireBreakout && last.Close < prev.High {
		return false
	}

	if p.RequireNearHigh {
		periodHigh := maxOf(tail(series.Closes(), p.NearHighLookback))
		if last.Close < periodHigh*p.NearHighMargin {
			return false
		}
	}

	if p.RequireVolume && !s.volumeConfirmed(series) {
		return false
	}
	return true
}

func (s *Screener) volumeConfirmed(series entity.BarSeries) bool {
	rule := s.profile.Volume
	last := series.Last()
	avg := mean(tail(series.Volumes(), rule.Period))

	aboveAverage := last.Volume > avg
	turnover := last.Close*last.Volume > rule.TurnoverFloor

	switch rule.Mode {
	case VolumeRatio:
		return last.Volume >= avg*rule.Ratio
	case VolumeTurnover:
		return turnover
	case VolumeAverageOrTurnover:
		return aboveAverage || turnover
	default:
		return aboveAverage
	}
}

func (s *Screener) score(series entity.BarSeries) entity.ScanResult {
	p := s.profile
	last := series.Last()
	returns := pctChange(series.Closes())

	volatility := sampleStdDev(tail(returns, p.VolatilityPeriod))
	momentum := finiteOrZero(sum(tail(returns, p.MomentumPeriod)))

	rawScore := 0.0
	if volatility > 0 {
		rawScore = finiteOrZero(momentum / volatility)
	}
	probability := round(clamp(rawScore*p.ProbabilityScale, 0, 100), 2)

	gainPct := volatility * p.GainMultiplier * 100

	tick := decimal.NewFromFloat(p.TickOffset)
	entry := decimal.NewFromFloat(last.High).Add(tick)
	stop := decimal.NewFromFloat(last.Low).Sub(tick)

	riskPct := 0.0
	if entry.IsPositive() {
		riskPct = entry.Sub(stop).Div(entry).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	ratio := 0.0
	if riskPct > 0 {
		ratio = gainPct / riskPct
	}

	return entity.ScanResult{
		Ticker:           series.Ticker,
		DisplayName:      s.displayName(series.Ticker),
		Probability:      probability,
		EstimatedGainPct: gainPct,
		RiskLossPct:      riskPct,
		EntryPrice:       entry.InexactFloat64(),
		StopLossPrice:    stop.InexactFloat64(),
		RiskRewardRatio:  ratio,
		RiskRewardLabel:  Label(ratio, p.RiskReward),
		Volatility:       volatility,
		Momentum:         momentum,
		LastClose:        last.Close,
		LastVolume:       last.Volume,
		BarTime:          last.Time,
	}
}

func (s *Screener) displayName(ticker string) string {
	if s.displaySuffix == "" {
		return ticker
	}
	return strings.TrimSuffix(ticker, strings.ToUpper(s.displaySuffix))
}

// Label buckets a risk/reward ratio.
func Label(ratio float64, buckets RiskRewardBuckets) entity.RiskRewardLabel {
	switch {
	case ratio >= buckets.Good:
		return entity.RiskRewardGood
	case ratio >= buckets.Caution:
		return entity.RiskRewardCaution
	default:
		return entity.RiskRewardPoor
	}
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
