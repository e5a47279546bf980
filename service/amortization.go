package service

import (
	"math"

	"loan-amortization/domain"
)

// centResolutionLimit is the magnitude above which float64 no longer
// resolves whole cents.
const centResolutionLimit = 1 << 53 / 100

// roundTo2Decimals rounds half away from zero and folds -0 into 0.
func roundTo2Decimals(value float64) float64 {
	if math.Abs(value) >= centResolutionLimit {
		return value
	}
	rounded := math.Round(value*100) / 100
	if rounded == 0 {
		return 0
	}
	return rounded
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the loan parameters against the engine's domain.
func Validate(params domain.LoanParameters) error {
	if !isFinite(params.Principal) {
		return domain.NewInvalidParameter(domain.FieldPrincipal, "must be a finite number")
	}
	if params.Principal <= 0 {
		return domain.NewInvalidParameter(domain.FieldPrincipal, "must be greater than zero, got %g", params.Principal)
	}
	if !isFinite(params.AnnualRatePercent) {
		return domain.NewInvalidParameter(domain.FieldAnnualRatePercent, "must be a finite number")
	}
	if params.AnnualRatePercent < 0 {
		return domain.NewInvalidParameter(domain.FieldAnnualRatePercent, "must not be negative, got %g", params.AnnualRatePercent)
	}
	if params.TermMonths < 1 {
		return domain.NewInvalidParameter(domain.FieldTermMonths, "must be at least 1, got %d", params.TermMonths)
	}
	return nil
}

// MonthlyPayment returns the unrounded level payment for the loan.
func MonthlyPayment(principal, monthlyRate float64, termMonths int) float64 {
	n := float64(termMonths)
	if monthlyRate == 0 {
		return principal / n
	}
	// 1 - (1+r)^-n, computed without cancellation for rates near zero.
	discount := -math.Expm1(-n * math.Log1p(monthlyRate))
	if discount == 0 {
		return principal / n
	}
	return principal * monthlyRate / discount
}

// ComputeAmortization derives the payment summary and month-by-month
// schedule of a fixed-rate loan. Iteration runs on unrounded values;
// only the returned figures are rounded to cents.
func ComputeAmortization(params domain.LoanParameters) (domain.Amortization, error) {
	if err := Validate(params); err != nil {
		return domain.Amortization{}, err
	}

	rate := (params.AnnualRatePercent / 100) / 12
	payment := MonthlyPayment(params.Principal, rate, params.TermMonths)

	monthly := roundTo2Decimals(payment)
	totalPaid := roundTo2Decimals(monthly * float64(params.TermMonths))
	summary := domain.PaymentSummary{
		MonthlyPayment: monthly,
		TotalInterest:  roundTo2Decimals(totalPaid - params.Principal),
		TotalPaid:      totalPaid,
	}
	// Interest is never negative, even when the rounded payment leaves a
	// cent short over the term; an interest-free loan charges none at all.
	if rate == 0 || summary.TotalInterest < 0 {
		summary.TotalInterest = 0
	}

	schedule := make(domain.AmortizationSchedule, 0, params.TermMonths)
	balance := params.Principal
	for month := 1; month <= params.TermMonths; month++ {
		interest := balance * rate
		principal := payment - interest
		balance -= principal

		schedule = append(schedule, domain.ScheduleEntry{
			Month:     month,
			Payment:   monthly,
			Interest:  roundTo2Decimals(interest),
			Principal: roundTo2Decimals(principal),
			Balance:   roundTo2Decimals(balance),
		})
	}

	return domain.Amortization{Summary: summary, Schedule: schedule}, nil
}
