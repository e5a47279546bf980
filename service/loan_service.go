package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"loan-amortization/domain"
	"loan-amortization/repository"
)

// Limits are the upper bounds the service accepts before calling the engine.
type Limits struct {
	MaxPrincipal         float64
	MaxAnnualRatePercent float64
	MaxTermMonths        int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPrincipal:         MaxLoanAmount,
		MaxAnnualRatePercent: MaxInterestRate,
		MaxTermMonths:        MaxTermMonths,
	}
}

func (l Limits) check(params domain.LoanParameters) error {
	if l.MaxPrincipal > 0 && params.Principal > l.MaxPrincipal {
		return domain.NewInvalidParameter(domain.FieldPrincipal, "exceeds the maximum of %.2f", l.MaxPrincipal)
	}
	if l.MaxAnnualRatePercent > 0 && params.AnnualRatePercent > l.MaxAnnualRatePercent {
		return domain.NewInvalidParameter(domain.FieldAnnualRatePercent, "exceeds the maximum of %.2f%%", l.MaxAnnualRatePercent)
	}
	if l.MaxTermMonths > 0 && params.TermMonths > l.MaxTermMonths {
		return domain.NewInvalidParameter(domain.FieldTermMonths, "exceeds the maximum of %d months", l.MaxTermMonths)
	}
	return nil
}

type LoanService struct {
	cache    repository.CacheRepository
	limits   Limits
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewLoanService creates a LoanService. A nil cache disables caching and a
// nil logger falls back to slog.Default.
func NewLoanService(
	cache repository.CacheRepository,
	limits Limits,
	logger *slog.Logger,
) *LoanService {
	if cache == nil {
		cache = repository.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LoanService{
		cache:    cache,
		limits:   limits,
		cacheTTL: DefaultCacheTTL,
		logger:   logger.With("component", "loan_service"),
	}
}

// WithCacheTTL sets how long cached results live. Zero keeps them forever.
func (s *LoanService) WithCacheTTL(ttl time.Duration) *LoanService {
	s.cacheTTL = ttl
	return s
}

// Calculate validates the parameters, then serves the amortization from
// the cache or computes and stores it.
func (s *LoanService) Calculate(
	ctx context.Context,
	params domain.LoanParameters,
) (domain.Amortization, error) {

	if err := Validate(params); err != nil {
		return domain.Amortization{}, err
	}
	if err := s.limits.check(params); err != nil {
		return domain.Amortization{}, err
	}

	key := cacheKey(params)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var result domain.Amortization
		err := json.Unmarshal([]byte(cached), &result)
		if err == nil {
			s.logger.DebugContext(ctx, "amortization cache hit", "key", key)
			return result, nil
		}
		s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key, "error", err)
	}

	result, err := ComputeAmortization(params)
	if err != nil {
		return domain.Amortization{}, err
	}

	// Cache failures are not critical
	if encoded, err := json.Marshal(result); err != nil {
		s.logger.WarnContext(ctx, "failed to encode amortization", "key", key, "error", err)
	} else if err := s.cache.Set(ctx, key, string(encoded), s.cacheTTL); err != nil {
		s.logger.WarnContext(ctx, "failed to cache amortization", "key", key, "error", err)
	}

	s.logger.InfoContext(ctx, "amortization calculated",
		"principal", params.Principal,
		"annual_rate_percent", params.AnnualRatePercent,
		"term_months", params.TermMonths,
		"monthly_payment", result.Summary.MonthlyPayment,
	)

	return result, nil
}

// Summary is Calculate without the schedule.
func (s *LoanService) Summary(
	ctx context.Context,
	params domain.LoanParameters,
) (domain.PaymentSummary, error) {
	result, err := s.Calculate(ctx, params)
	if err != nil {
		return domain.PaymentSummary{}, err
	}
	return result.Summary, nil
}

func cacheKey(params domain.LoanParameters) string {
	return fmt.Sprintf("amortization:%s:%s:%s:%d",
		cacheKeyVersion,
		strconv.FormatFloat(params.Principal, 'g', -1, 64),
		strconv.FormatFloat(params.AnnualRatePercent, 'g', -1, 64),
		params.TermMonths,
	)
}
