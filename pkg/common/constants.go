package common

const (
	// RedisKeyBarSeries is the cache key for a fetched bar series: provider, ticker, range.
	RedisKeyBarSeries = "bars:%s:%s:%s"

	UniverseSourceFile     = "file"
	UniverseSourceConfig   = "config"
	UniverseSourceDatabase = "database"

	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"

	DefaultProfile = "default"
)
