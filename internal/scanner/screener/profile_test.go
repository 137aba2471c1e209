package screener

import (
	"errors"
	"testing"

	"golang-stock-scanner/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinProfilesAreValid(t *testing.T) {
	for name, p := range Profiles() {
		assert.Equal(t, name, p.Name)
		assert.NoError(t, p.Validate(), name)
	}
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profile)
	}{
		{"min bars", func(p *Profile) { p.MinBars = 1 }},
		{"margin above one", func(p *Profile) { p.NearHighMargin = 1.2 }},
		{"margin zero", func(p *Profile) { p.NearHighMargin = 0 }},
		{"volatility period", func(p *Profile) { p.VolatilityPeriod = 1 }},
		{"gain multiplier", func(p *Profile) { p.GainMultiplier = 0 }},
		{"negative tick", func(p *Profile) { p.TickOffset = -0.01 }},
		{"volume mode", func(p *Profile) { p.Volume.Mode = "magic" }},
		{"ratio", func(p *Profile) { p.Volume = VolumeRule{Mode: VolumeRatio, Period: 20} }},
		{"ratio ignored by mode", func(p *Profile) { p.Volume.Ratio = 1.5 }},
		{"cutoff", func(p *Profile) { p.MinProbability = 100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultProfile()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
			_, err := New(p)
			assert.Error(t, err)
		})
	}
}

func TestLookup(t *testing.T) {
	profiles := Profiles()

	p, err := Lookup(profiles, "")
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)

	_, err = Lookup(profiles, "nope")
	assert.True(t, errors.Is(err, entity.ErrUnknownProfile))
}

func TestResolveProfiles(t *testing.T) {
	profiles, err := ResolveProfiles(map[string]map[string]interface{}{
		"default": {"gain_multiplier": 2.5},
		"nightly": {
			"base":            "six_months",
			"min_bars":        "60",
			"min_probability": 5,
			"volume":          map[string]interface{}{"mode": "ratio", "ratio": 0.9},
		},
	})
	require.NoError(t, err)

	def := profiles["default"]
	assert.Equal(t, 2.5, def.GainMultiplier)
	assert.Equal(t, 0.99, def.NearHighMargin)
	assert.True(t, def.RequireBreakout)

	nightly := profiles["nightly"]
	assert.Equal(t, "nightly", nightly.Name)
	assert.Equal(t, "6mo", nightly.Range)
	assert.Equal(t, 60, nightly.MinBars)
	assert.Equal(t, 5.0, nightly.MinProbability)
	assert.Equal(t, VolumeRatio, nightly.Volume.Mode)
	assert.Equal(t, 0.9, nightly.Volume.Ratio)
	assert.Equal(t, 20, nightly.Volume.Period)

	assert.Contains(t, ProfileNames(profiles), "conservative")
}

func TestResolveProfiles_Invalid(t *testing.T) {
	_, err := ResolveProfiles(map[string]map[string]interface{}{
		"broken": {"near_high_margin": 1.5},
	})
	assert.Error(t, err)

	_, err = ResolveProfiles(map[string]map[string]interface{}{
		"typo": {"gain_multipler": 2},
	})
	assert.Error(t, err)

	_, err = ResolveProfiles(map[string]map[string]interface{}{
		"nightly": {
			"base":   "six_months",
			"volume": map[string]interface{}{"ratio": 1.5},
		},
	})
	assert.Error(t, err)
}
