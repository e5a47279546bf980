// Package input turns raw user text into loan parameters.
//
// Form fields and CLI flags arrive as strings that may carry thousands
// separators ("10,000"), a currency symbol ("$250,000") or a percent sign
// ("5.5%"). Parsing strips that formatting and hands the numbers to the
// engine's validation, so callers get the same InvalidParameterError the
// engine would report.
package input

import (
	"strconv"
	"strings"
	"unicode"

	"loan-amortization/domain"
	"loan-amortization/service"
)

// ParseLoanParameters parses and validates the three raw loan inputs.
func ParseLoanParameters(principal, rate, term string) (domain.LoanParameters, error) {
	p, err := ParseAmount(principal)
	if err != nil {
		return domain.LoanParameters{}, err
	}
	r, err := ParseRate(rate)
	if err != nil {
		return domain.LoanParameters{}, err
	}
	n, err := ParseTerm(term)
	if err != nil {
		return domain.LoanParameters{}, err
	}

	params := domain.LoanParameters{Principal: p, AnnualRatePercent: r, TermMonths: n}
	if err := service.Validate(params); err != nil {
		return domain.LoanParameters{}, err
	}
	return params, nil
}

// ParseAmount parses a principal such as "10,000", "$ 2 500.75" or "1_000".
func ParseAmount(raw string) (float64, error) {
	s := stripGrouping(strings.TrimLeftFunc(strings.TrimSpace(raw), isCurrencySymbol))
	if s == "" {
		return 0, domain.NewInvalidParameter(domain.FieldPrincipal, "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.NewInvalidParameter(domain.FieldPrincipal, "%q is not a number", raw)
	}
	return v, nil
}

// ParseRate parses an annual percentage such as "5", "5.25" or "5.25%".
func ParseRate(raw string) (float64, error) {
	s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "%"))
	if s == "" {
		return 0, domain.NewInvalidParameter(domain.FieldAnnualRatePercent, "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.NewInvalidParameter(domain.FieldAnnualRatePercent, "%q is not a number", raw)
	}
	return v, nil
}

// ParseTerm parses a whole number of months. "60.0" is accepted, "60.5" is not.
func ParseTerm(raw string) (int, error) {
	s := stripGrouping(strings.TrimSpace(raw))
	if s == "" {
		return 0, domain.NewInvalidParameter(domain.FieldTermMonths, "is required")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, domain.NewInvalidParameter(domain.FieldTermMonths, "%q is not a number", raw)
	}
	if f != float64(int(f)) {
		return 0, domain.NewInvalidParameter(domain.FieldTermMonths, "must be a whole number of months, got %s", s)
	}
	return int(f), nil
}

// FormatThousands regroups the digits typed so far, e.g. "1234567" -> "1,234,567".
// Existing commas are dropped first; a fractional part is kept as typed.
func FormatThousands(raw string) string {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String()
	if hasFrac {
		out += "." + frac
	}
	return out
}

func stripGrouping(s string) string {
	return strings.Map(func(r rune) rune {
		if r == ',' || r == '_' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isCurrencySymbol(r rune) bool {
	return unicode.Is(unicode.Sc, r) || unicode.IsSpace(r)
}
