package entity

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedSeries = errors.New("malformed bar series")
	ErrSymbolNotFound  = errors.New("symbol not found")
	ErrEmptySeries     = errors.New("empty bar series")
	ErrRunInProgress   = errors.New("a scan is already running")
	ErrUnknownProfile  = errors.New("unknown screening profile")
)

// FetchError is returned by bar providers when history for a ticker cannot be obtained.
type FetchError struct {
	Ticker   string
	Provider string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Ticker, e.Provider, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
