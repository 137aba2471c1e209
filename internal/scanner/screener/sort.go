package screener

import (
	"sort"

	"golang-stock-scanner/internal/entity"
)

// SortResults orders results by probability descending, ticker ascending on ties.
func SortResults(results []entity.ScanResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Probability != results[j].Probability {
			return results[i].Probability > results[j].Probability
		}
		return results[i].Ticker < results[j].Ticker
	})
}
