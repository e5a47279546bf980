package domain

// LoanParameters are the three inputs of a fixed-rate loan.
// AnnualRatePercent is nominal: 5 means 5% per year.
type LoanParameters struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermMonths        int     `json:"term_months"`
}

type PaymentSummary struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPaid      float64 `json:"total_paid"`
}

// ScheduleEntry is one month of the repayment plan. Balance is the
// principal still owed after this month's payment.
type ScheduleEntry struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

// AmortizationSchedule is ordered by month, starting at 1.
type AmortizationSchedule []ScheduleEntry

// Amortization is the full result of one calculation.
type Amortization struct {
	Summary  PaymentSummary       `json:"summary"`
	Schedule AmortizationSchedule `json:"schedule,omitempty"`
}

// Last returns the final entry of the schedule, or false when it is empty.
func (s AmortizationSchedule) Last() (ScheduleEntry, bool) {
	if len(s) == 0 {
		return ScheduleEntry{}, false
	}
	return s[len(s)-1], true
}
