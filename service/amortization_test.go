package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-amortization/domain"
)

func TestComputeAmortization_ReferenceLoan(t *testing.T) {
	result, err := ComputeAmortization(domain.LoanParameters{
		Principal:         10000,
		AnnualRatePercent: 5,
		TermMonths:        60,
	})
	require.NoError(t, err)

	assert.Equal(t, 188.71, result.Summary.MonthlyPayment)
	assert.Equal(t, 1322.60, result.Summary.TotalInterest)
	assert.Equal(t, 11322.60, result.Summary.TotalPaid)
	require.Len(t, result.Schedule, 60)

	first := result.Schedule[0]
	assert.Equal(t, 1, first.Month)
	assert.Equal(t, 188.71, first.Payment)
	assert.Equal(t, 41.67, first.Interest)
	assert.Equal(t, 147.05, first.Principal)
	assert.Equal(t, 9852.95, first.Balance)

	last, ok := result.Schedule.Last()
	require.True(t, ok)
	assert.Equal(t, 60, last.Month)
	assert.Equal(t, 0.0, last.Balance)
	assert.False(t, math.Signbit(last.Balance), "balance should not render as -0.00")
}

func TestComputeAmortization_Properties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params domain.LoanParameters
	}{
		{"single month", domain.LoanParameters{Principal: 500, AnnualRatePercent: 12, TermMonths: 1}},
		{"car loan", domain.LoanParameters{Principal: 25000, AnnualRatePercent: 6.9, TermMonths: 72}},
		{"mortgage", domain.LoanParameters{Principal: 200000, AnnualRatePercent: 6.5, TermMonths: 360}},
		{"tiny rate", domain.LoanParameters{Principal: 1000, AnnualRatePercent: 0.001, TermMonths: 24}},
		{"high rate", domain.LoanParameters{Principal: 3000, AnnualRatePercent: 99, TermMonths: 18}},
		{"odd principal", domain.LoanParameters{Principal: 1234.56, AnnualRatePercent: 3.25, TermMonths: 7}},
		{"near-zero rate 1e-12", domain.LoanParameters{Principal: 12000, AnnualRatePercent: 1e-12, TermMonths: 12}},
		{"near-zero rate 1e-15", domain.LoanParameters{Principal: 12000, AnnualRatePercent: 1e-15, TermMonths: 12}},
		{"uneven near-zero rate", domain.LoanParameters{Principal: 1000, AnnualRatePercent: 1e-12, TermMonths: 3}},
		{"uneven zero rate", domain.LoanParameters{Principal: 1000, AnnualRatePercent: 0, TermMonths: 3}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ComputeAmortization(tt.params)
			require.NoError(t, err)

			tolerance := float64(tt.params.TermMonths) * 0.01
			require.Len(t, result.Schedule, tt.params.TermMonths)

			var principalSum float64
			for i, entry := range result.Schedule {
				assert.Equal(t, i+1, entry.Month)
				assert.Equal(t, result.Summary.MonthlyPayment, entry.Payment)
				principalSum += entry.Principal
			}
			assert.InDelta(t, tt.params.Principal, principalSum, tolerance)

			last, _ := result.Schedule.Last()
			assert.InDelta(t, 0, last.Balance, tolerance)

			s := result.Summary
			assert.False(t, math.IsInf(s.MonthlyPayment, 0) || math.IsNaN(s.MonthlyPayment))
			assert.GreaterOrEqual(t, s.TotalInterest, 0.0)
			assert.Equal(t, roundTo2Decimals(s.MonthlyPayment*float64(tt.params.TermMonths)), s.TotalPaid)
			assert.InDelta(t, s.TotalPaid-tt.params.Principal, s.TotalInterest, tolerance)
		})
	}
}

func TestComputeAmortization_ZeroInterest(t *testing.T) {
	result, err := ComputeAmortization(domain.LoanParameters{
		Principal:         1200,
		AnnualRatePercent: 0,
		TermMonths:        12,
	})
	require.NoError(t, err)

	assert.Equal(t, 100.0, result.Summary.MonthlyPayment)
	assert.Equal(t, 0.0, result.Summary.TotalInterest)
	assert.Equal(t, 1200.0, result.Summary.TotalPaid)
	for _, entry := range result.Schedule {
		assert.Equal(t, 0.0, entry.Interest)
		assert.Equal(t, 100.0, entry.Principal)
	}
	last, _ := result.Schedule.Last()
	assert.Equal(t, 0.0, last.Balance)
}

func TestComputeAmortization_ZeroInterestUnevenSplit(t *testing.T) {
	result, err := ComputeAmortization(domain.LoanParameters{
		Principal:  1000,
		TermMonths: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, 333.33, result.Summary.MonthlyPayment)
	assert.Equal(t, 999.99, result.Summary.TotalPaid)
	assert.Equal(t, 0.0, result.Summary.TotalInterest, "interest-free loans never report negative interest")
	assert.Equal(t, 666.67, result.Schedule[0].Balance)
	assert.Equal(t, 0.0, result.Schedule[2].Balance)
}

func TestComputeAmortization_InvalidParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params domain.LoanParameters
		field  string
	}{
		{"zero principal", domain.LoanParameters{Principal: 0, AnnualRatePercent: 5, TermMonths: 60}, domain.FieldPrincipal},
		{"negative principal", domain.LoanParameters{Principal: -100, AnnualRatePercent: 5, TermMonths: 60}, domain.FieldPrincipal},
		{"NaN principal", domain.LoanParameters{Principal: math.NaN(), AnnualRatePercent: 5, TermMonths: 60}, domain.FieldPrincipal},
		{"infinite principal", domain.LoanParameters{Principal: math.Inf(1), AnnualRatePercent: 5, TermMonths: 60}, domain.FieldPrincipal},
		{"zero term", domain.LoanParameters{Principal: 10000, AnnualRatePercent: 5, TermMonths: 0}, domain.FieldTermMonths},
		{"negative term", domain.LoanParameters{Principal: 10000, AnnualRatePercent: 5, TermMonths: -12}, domain.FieldTermMonths},
		{"negative rate", domain.LoanParameters{Principal: 10000, AnnualRatePercent: -1, TermMonths: 60}, domain.FieldAnnualRatePercent},
		{"NaN rate", domain.LoanParameters{Principal: 10000, AnnualRatePercent: math.NaN(), TermMonths: 60}, domain.FieldAnnualRatePercent},
		{"infinite rate", domain.LoanParameters{Principal: 10000, AnnualRatePercent: math.Inf(1), TermMonths: 60}, domain.FieldAnnualRatePercent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := ComputeAmortization(tt.params)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter))

			var invalid *domain.InvalidParameterError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.field, invalid.Field)
			assert.Empty(t, result.Schedule)
		})
	}
}

func TestComputeAmortization_Idempotent(t *testing.T) {
	params := domain.LoanParameters{Principal: 87654.32, AnnualRatePercent: 4.75, TermMonths: 180}

	first, err := ComputeAmortization(params)
	require.NoError(t, err)
	second, err := ComputeAmortization(params)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMonthlyPayment(t *testing.T) {
	assert.InDelta(t, 188.71233644, MonthlyPayment(10000, 0.05/12, 60), 1e-6)
	assert.InDelta(t, 1264.13604699, MonthlyPayment(200000, 0.065/12, 360), 1e-6)
	assert.Equal(t, 50.0, MonthlyPayment(600, 0, 12))
}

func TestMonthlyPayment_NearZeroRate(t *testing.T) {
	for _, rate := range []float64{1e-10, 1e-12, 1e-15, 1e-18} {
		got := MonthlyPayment(12000, rate, 12)
		assert.InDelta(t, 1000.0, got, 1e-6, "rate %g", rate)
	}
}

func TestComputeAmortization_NearZeroRateMatchesInterestFree(t *testing.T) {
	result, err := ComputeAmortization(domain.LoanParameters{
		Principal:         12000,
		AnnualRatePercent: 1e-15,
		TermMonths:        12,
	})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, result.Summary.MonthlyPayment)
	assert.Equal(t, 12000.0, result.Summary.TotalPaid)
	assert.Equal(t, 0.0, result.Summary.TotalInterest)
	last, _ := result.Schedule.Last()
	assert.Equal(t, 0.0, last.Balance)
}

func TestRoundTo2Decimals(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.005, 1.0}, // 1.005 is stored as 1.00499...
		{2.675, 2.68},
		{-2.5e-11, 0},
		{0.125, 0.13},
		{-0.125, -0.13},
		{41.666666, 41.67},
		{1e307, 1e307},
		{-1e20, -1e20},
	}
	for _, tt := range tests {
		got := roundTo2Decimals(tt.in)
		assert.Equal(t, tt.want, got, "round(%v)", tt.in)
		if tt.want == 0 {
			assert.False(t, math.Signbit(got))
		}
	}
}
