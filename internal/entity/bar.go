package entity

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Bar is one trading day of OHLCV data.
type Bar struct {
	Time   time.Time `json:"time" msgpack:"t"`
	Open   float64   `json:"open" msgpack:"o"`
	High   float64   `json:"high" msgpack:"h"`
	Low    float64   `json:"low" msgpack:"l"`
	Close  float64   `json:"close" msgpack:"c"`
	Volume float64   `json:"volume" msgpack:"v"`
}

// BarSeries is an oldest-first sequence of daily bars for one ticker.
type BarSeries struct {
	Ticker string `json:"ticker" msgpack:"ticker"`
	Bars   []Bar  `json:"bars" msgpack:"bars"`
}

// Len returns the number of bars.
func (s BarSeries) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar. It panics on an empty series.
func (s BarSeries) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Closes returns the close prices in order.
func (s BarSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Volumes returns the volumes in order.
func (s BarSeries) Volumes() []float64 {
	volumes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		volumes[i] = b.Volume
	}
	return volumes
}

// Validate checks that timestamps strictly increase and that prices are usable.
func (s BarSeries) Validate() error {
	for i, b := range s.Bars {
		for _, v := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: bar %d has invalid value %v", ErrMalformedSeries, i, v)
			}
		}
		if b.Close == 0 {
			return fmt.Errorf("%w: bar %d has zero close", ErrMalformedSeries, i)
		}
		if b.Low > b.High {
			return fmt.Errorf("%w: bar %d low %.4f above high %.4f", ErrMalformedSeries, i, b.Low, b.High)
		}
		if i > 0 && !b.Time.After(s.Bars[i-1].Time) {
			return fmt.Errorf("%w: bar %d timestamp %s not after %s", ErrMalformedSeries, i, b.Time, s.Bars[i-1].Time)
		}
	}
	return nil
}

// NormalizeTickers trims, deduplicates and lexically sorts a ticker list.
func NormalizeTickers(tickers []string) []string {
	seen := make(map[string]struct{}, len(tickers))
	out := make([]string, 0, len(tickers))
	for _, t := range tickers {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
