package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-amortization/domain"
)

func TestCompareTerms(t *testing.T) {
	svc := NewLoanService(nil, DefaultLimits(), quietLogger())

	cmp, err := svc.CompareTerms(context.Background(), 10000, 5, []int{60, 36, 60, 12})
	require.NoError(t, err)

	require.Len(t, cmp.Options, 3)
	assert.Equal(t, 12, cmp.Options[0].TermMonths)
	assert.Equal(t, 36, cmp.Options[1].TermMonths)
	assert.Equal(t, 60, cmp.Options[2].TermMonths)
	assert.Equal(t, 188.71, cmp.Options[2].Summary.MonthlyPayment)

	assert.Equal(t, 60, cmp.LowestPayment)
	assert.Equal(t, 12, cmp.LowestInterest)
}

func TestCompareTerms_ZeroRateTiesKeepShortest(t *testing.T) {
	svc := NewLoanService(nil, DefaultLimits(), quietLogger())

	cmp, err := svc.CompareTerms(context.Background(), 1200, 0, []int{24, 12})
	require.NoError(t, err)
	assert.Equal(t, 12, cmp.LowestInterest)
	assert.Equal(t, 24, cmp.LowestPayment)
}

func TestCompareTerms_Invalid(t *testing.T) {
	svc := NewLoanService(nil, DefaultLimits(), quietLogger())
	ctx := context.Background()

	_, err := svc.CompareTerms(ctx, 10000, 5, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = svc.CompareTerms(ctx, 10000, 5, []int{12, 0})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = svc.CompareTerms(ctx, 0, 5, []int{12})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	many := make([]int, MaxComparedTerms+1)
	for i := range many {
		many[i] = i + 1
	}
	_, err = svc.CompareTerms(ctx, 10000, 5, many)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
