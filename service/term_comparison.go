package service

import (
	"context"
	"fmt"
	"sort"

	"loan-amortization/domain"
)

// MaxComparedTerms caps how many terms one comparison may evaluate.
const MaxComparedTerms = 24

// CompareTerms summarises the same loan over several terms, shortest first.
// Duplicate terms are evaluated once.
func (s *LoanService) CompareTerms(
	ctx context.Context,
	principal float64,
	annualRatePercent float64,
	terms []int,
) (domain.TermComparison, error) {

	if len(terms) == 0 {
		return domain.TermComparison{}, domain.NewInvalidParameter(domain.FieldTermMonths, "at least one term is required")
	}

	unique := make([]int, 0, len(terms))
	seen := make(map[int]bool, len(terms))
	for _, term := range terms {
		if !seen[term] {
			seen[term] = true
			unique = append(unique, term)
		}
	}
	if len(unique) > MaxComparedTerms {
		return domain.TermComparison{}, domain.NewInvalidParameter(domain.FieldTermMonths, "at most %d terms can be compared", MaxComparedTerms)
	}
	sort.Ints(unique)

	comparison := domain.TermComparison{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		Options:           make([]domain.TermOption, 0, len(unique)),
	}

	for _, term := range unique {
		summary, err := s.Summary(ctx, domain.LoanParameters{
			Principal:         principal,
			AnnualRatePercent: annualRatePercent,
			TermMonths:        term,
		})
		if err != nil {
			return domain.TermComparison{}, fmt.Errorf("term %d: %w", term, err)
		}
		comparison.Options = append(comparison.Options, domain.TermOption{TermMonths: term, Summary: summary})
	}

	lowestPayment := comparison.Options[0]
	lowestInterest := comparison.Options[0]
	for _, opt := range comparison.Options[1:] {
		if opt.Summary.MonthlyPayment < lowestPayment.Summary.MonthlyPayment {
			lowestPayment = opt
		}
		if opt.Summary.TotalInterest < lowestInterest.Summary.TotalInterest {
			lowestInterest = opt
		}
	}
	comparison.LowestPayment = lowestPayment.TermMonths
	comparison.LowestInterest = lowestInterest.TermMonths

	return comparison, nil
}
