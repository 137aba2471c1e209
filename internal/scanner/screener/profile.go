package screener

import (
	"fmt"
	"sort"

	"golang-stock-scanner/internal/entity"
)

// VolumeMode selects how the volume confirmation predicate is evaluated.
type VolumeMode string

const (
	// VolumeAverage requires latest volume > trailing average volume.
	VolumeAverage VolumeMode = "average"
	// VolumeRatio requires latest volume >= trailing average volume * Ratio.
	VolumeRatio VolumeMode = "ratio"
	// VolumeTurnover requires close * volume > TurnoverFloor.
	VolumeTurnover VolumeMode = "turnover"
	// VolumeAverageOrTurnover accepts either the average or the turnover rule.
	VolumeAverageOrTurnover VolumeMode = "average_or_turnover"
)

// VolumeRule configures predicate (c).
type VolumeRule struct {
	Mode          VolumeMode `mapstructure:"mode" json:"mode" yaml:"mode"`
	Period        int        `mapstructure:"period" json:"period" yaml:"period"`
	Ratio         float64    `mapstructure:"ratio" json:"ratio" yaml:"ratio"`
	TurnoverFloor float64    `mapstructure:"turnover_floor" json:"turnover_floor" yaml:"turnover_floor"`
}

// RiskRewardBuckets are the lower bounds of the good and caution labels.
type RiskRewardBuckets struct {
	Good    float64 `mapstructure:"good" json:"good" yaml:"good"`
	Caution float64 `mapstructure:"caution" json:"caution" yaml:"caution"`
}

// Profile holds every tunable of the breakout screen.
type Profile struct {
	Name             string            `mapstructure:"name" json:"name" yaml:"name"`
	Range            string            `mapstructure:"range" json:"range" yaml:"range"`
	MinBars          int               `mapstructure:"min_bars" json:"min_bars" yaml:"min_bars"`
	RequireBreakout  bool              `mapstructure:"require_breakout" json:"require_breakout" yaml:"require_breakout"`
	RequireNearHigh  bool              `mapstructure:"require_near_high" json:"require_near_high" yaml:"require_near_high"`
	NearHighMargin   float64           `mapstructure:"near_high_margin" json:"near_high_margin" yaml:"near_high_margin"`
	NearHighLookback int               `mapstructure:"near_high_lookback" json:"near_high_lookback" yaml:"near_high_lookback"`
	RequireVolume    bool              `mapstructure:"require_volume" json:"require_volume" yaml:"require_volume"`
	Volume           VolumeRule        `mapstructure:"volume" json:"volume" yaml:"volume"`
	VolatilityPeriod int               `mapstructure:"volatility_period" json:"volatility_period" yaml:"volatility_period"`
	MomentumPeriod   int               `mapstructure:"momentum_period" json:"momentum_period" yaml:"momentum_period"`
	ProbabilityScale float64           `mapstructure:"probability_scale" json:"probability_scale" yaml:"probability_scale"`
	GainMultiplier   float64           `mapstructure:"gain_multiplier" json:"gain_multiplier" yaml:"gain_multiplier"`
	TickOffset       float64           `mapstructure:"tick_offset" json:"tick_offset" yaml:"tick_offset"`
	MinProbability   float64           `mapstructure:"min_probability" json:"min_probability" yaml:"min_probability"`
	RiskReward       RiskRewardBuckets `mapstructure:"risk_reward" json:"risk_reward" yaml:"risk_reward"`
}

// DefaultProfile returns the canonical profile. The values are one arbitrary
// pick among the historical variants: max history, 100 bars, 0.99 margin,
// volume above the 20 day mean, k = 2.0 and no probability cutoff.
func DefaultProfile() Profile {
	return Profile{
		Name:             "default",
		Range:            "max",
		MinBars:          100,
		RequireBreakout:  true,
		RequireNearHigh:  true,
		NearHighMargin:   0.99,
		RequireVolume:    true,
		Volume:           VolumeRule{Mode: VolumeAverage, Period: 20, Ratio: 1},
		VolatilityPeriod: 20,
		MomentumPeriod:   5,
		ProbabilityScale: 10,
		GainMultiplier:   2.0,
		TickOffset:       0.01,
		RiskReward:       RiskRewardBuckets{Good: 1.5, Caution: 1.0},
	}
}

// Profiles returns the built-in profiles keyed by name.
func Profiles() map[string]Profile {
	def := DefaultProfile()

	conservative := def
	conservative.Name = "conservative"
	conservative.NearHighMargin = 0.98
	conservative.GainMultiplier = 2.5
	conservative.MinProbability = 10

	sixMonths := def
	sixMonths.Name = "six_months"
	sixMonths.Range = "6mo"
	sixMonths.MinBars = 50
	sixMonths.NearHighMargin = 0.97
	sixMonths.GainMultiplier = 2.5
	sixMonths.MinProbability = 1

	turnover := def
	turnover.Name = "turnover"
	turnover.Range = "6mo"
	turnover.MinBars = 30
	turnover.RequireBreakout = false
	turnover.NearHighMargin = 0.98
	turnover.Volume = VolumeRule{Mode: VolumeAverageOrTurnover, Period: 20, Ratio: 1, TurnoverFloor: 5_000_000}

	ratio := def
	ratio.Name = "ratio"
	ratio.MinBars = 20
	ratio.NearHighMargin = 0.97
	ratio.RequireNearHigh = true
	ratio.Volume = VolumeRule{Mode: VolumeRatio, Period: 20, Ratio: 0.8}
	ratio.GainMultiplier = 2.2

	return map[string]Profile{
		def.Name:          def,
		conservative.Name: conservative,
		sixMonths.Name:    sixMonths,
		turnover.Name:     turnover,
		ratio.Name:        ratio,
	}
}

// ProfileNames returns the sorted keys of profiles.
func ProfileNames(profiles map[string]Profile) []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a profile for values the engine cannot work with.
func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("profile name is required")
	case p.MinBars < 2:
		return fmt.Errorf("profile %s: min_bars must be at least 2", p.Name)
	case p.RequireNearHigh && (p.NearHighMargin <= 0 || p.NearHighMargin > 1):
		return fmt.Errorf("profile %s: near_high_margin must be in (0, 1]", p.Name)
	case p.NearHighLookback < 0:
		return fmt.Errorf("profile %s: near_high_lookback must not be negative", p.Name)
	case p.VolatilityPeriod < 2:
		return fmt.Errorf("profile %s: volatility_period must be at least 2", p.Name)
	case p.MomentumPeriod < 1:
		return fmt.Errorf("profile %s: momentum_period must be positive", p.Name)
	case p.ProbabilityScale <= 0:
		return fmt.Errorf("profile %s: probability_scale must be positive", p.Name)
	case p.GainMultiplier <= 0:
		return fmt.Errorf("profile %s: gain_multiplier must be positive", p.Name)
	case p.TickOffset < 0:
		return fmt.Errorf("profile %s: tick_offset must not be negative", p.Name)
	case p.MinProbability < 0 || p.MinProbability >= 100:
		return fmt.Errorf("profile %s: min_probability must be in [0, 100)", p.Name)
	}

	if p.RequireVolume {
		switch p.Volume.Mode {
		case VolumeAverage, VolumeRatio, VolumeTurnover, VolumeAverageOrTurnover:
		default:
			return fmt.Errorf("profile %s: unknown volume mode %q", p.Name, p.Volume.Mode)
		}
		if p.Volume.Mode != VolumeTurnover && p.Volume.Period < 1 {
			return fmt.Errorf("profile %s: volume period must be positive", p.Name)
		}
		if p.Volume.Mode == VolumeRatio && p.Volume.Ratio <= 0 {
			return fmt.Errorf("profile %s: volume ratio must be positive", p.Name)
		}
		if p.Volume.Mode != VolumeRatio && p.Volume.Ratio != 0 && p.Volume.Ratio != 1 {
			return fmt.Errorf("profile %s: volume ratio %g is ignored by mode %q", p.Name, p.Volume.Ratio, p.Volume.Mode)
		}
	}
	return nil
}

// Lookup resolves a profile by name, defaulting to "default" when name is empty.
func Lookup(profiles map[string]Profile, name string) (Profile, error) {
	if name == "" {
		name = "default"
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", entity.ErrUnknownProfile, name)
	}
	return p, nil
}
