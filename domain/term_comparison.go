package domain

// TermOption is the payment summary of one candidate term.
type TermOption struct {
	TermMonths int            `json:"term_months"`
	Summary    PaymentSummary `json:"summary"`
}

type TermComparison struct {
	Principal         float64      `json:"principal"`
	AnnualRatePercent float64      `json:"annual_rate_percent"`
	Options           []TermOption `json:"options"`
	// LowestPayment and LowestInterest are term lengths in months.
	LowestPayment  int `json:"lowest_payment_term"`
	LowestInterest int `json:"lowest_interest_term"`
}
