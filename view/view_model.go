// Package view holds presentation state for a loan calculator screen.
package view

import (
	"strconv"

	"loan-amortization/domain"
)

// ViewModel keeps the last computed result and whether the schedule is shown.
type ViewModel struct {
	Params          domain.LoanParameters
	Summary         domain.PaymentSummary
	Schedule        domain.AmortizationSchedule
	ScheduleVisible bool
	hasResult       bool
}

// Show replaces the displayed result. Visibility is left as it was.
func (vm *ViewModel) Show(params domain.LoanParameters, result domain.Amortization) {
	vm.Params = params
	vm.Summary = result.Summary
	vm.Schedule = result.Schedule
	vm.hasResult = true
}

func (vm *ViewModel) HasResult() bool {
	return vm.hasResult
}

// ToggleSchedule flips schedule visibility and returns the new state.
func (vm *ViewModel) ToggleSchedule() bool {
	vm.ScheduleVisible = !vm.ScheduleVisible
	return vm.ScheduleVisible
}

// ToggleLabel is the caption of the show/hide button.
func (vm *ViewModel) ToggleLabel() string {
	if vm.ScheduleVisible {
		return "Hide Amortization Schedule"
	}
	return "Show Amortization Schedule"
}

// SummaryLines returns label/value pairs for the payment summary.
func (vm *ViewModel) SummaryLines(f Formatter) [][2]string {
	if !vm.hasResult {
		return nil
	}
	return [][2]string{
		{"Monthly Payment", f.Money(vm.Summary.MonthlyPayment)},
		{"Total Interest", f.Money(vm.Summary.TotalInterest)},
		{"Total Paid", f.Money(vm.Summary.TotalPaid)},
	}
}

// ScheduleHeader lists the schedule column titles.
var ScheduleHeader = []string{"Month", "Payment", "Interest", "Principal", "Balance"}

// Rows returns the formatted schedule, or nil while it is hidden.
func (vm *ViewModel) Rows(f Formatter) [][]string {
	if !vm.ScheduleVisible || !vm.hasResult {
		return nil
	}
	return FormatSchedule(vm.Schedule, f)
}

// FormatSchedule renders every entry as display strings in ScheduleHeader order.
func FormatSchedule(schedule domain.AmortizationSchedule, f Formatter) [][]string {
	rows := make([][]string, 0, len(schedule))
	for _, e := range schedule {
		rows = append(rows, []string{
			strconv.Itoa(e.Month),
			f.Money(e.Payment),
			f.Money(e.Interest),
			f.Money(e.Principal),
			f.Money(e.Balance),
		})
	}
	return rows
}
