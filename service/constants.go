package service

import "time"

const (
	MaxLoanAmount   = 1_000_000_000.0 // 1 billion
	MaxInterestRate = 1000.0          // 1000% a year
	MaxTermMonths   = 1200            // 100 years
	MinTermMonths   = 1

	DefaultCacheTTL = 24 * time.Hour

	// bump when the result layout changes so stale cache entries are skipped
	cacheKeyVersion = "v1"
)
