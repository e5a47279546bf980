package cli

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"loan-amortization/config"
	"loan-amortization/input"
	"loan-amortization/service"
	"loan-amortization/view"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Width(18)
	valueStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
)

type calculateOptions struct {
	principal string
	rate      string
	term      string
	schedule  bool
	symbol    string
	asJSON    bool
	envFile   string
}

func newCalculateCmd() *cobra.Command {
	opts := &calculateOptions{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate the payment summary and schedule of a loan",
		Example: `  amortize calculate --principal 10,000 --rate 5 --term 60
  amortize calculate -p 250000 -r 6.5 -t 360 --schedule
  amortize calculate -p 10000 -r 5 -t 60 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), slog.LevelWarn)
			return runCalculate(cmd.Context(), cmd.OutOrStdout(), opts, logger)
		},
	}

	cmd.Flags().StringVarP(&opts.principal, "principal", "p", "10,000", "loan amount; thousands separators allowed")
	cmd.Flags().StringVarP(&opts.rate, "rate", "r", "5", "annual interest rate in percent")
	cmd.Flags().StringVarP(&opts.term, "term", "t", "60", "loan term in months")
	cmd.Flags().BoolVarP(&opts.schedule, "schedule", "s", false, "print the month-by-month schedule")
	cmd.Flags().StringVar(&opts.symbol, "symbol", "", "currency symbol used for display (default CURRENCY_SYMBOL or $)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")

	return cmd
}

func runCalculate(ctx context.Context, out io.Writer, opts *calculateOptions, logger *slog.Logger) error {
	cfg := config.Load(opts.envFile)

	params, err := input.ParseLoanParameters(opts.principal, opts.rate, opts.term)
	if err != nil {
		return err
	}

	loans := service.NewLoanService(nil, limitsFromConfig(cfg), logger)
	result, err := loans.Calculate(ctx, params)
	if err != nil {
		return err
	}

	if opts.asJSON {
		if !opts.schedule {
			result.Schedule = nil
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	vm := &view.ViewModel{}
	vm.Show(params, result)
	if opts.schedule {
		vm.ToggleSchedule()
	}

	symbol := opts.symbol
	if symbol == "" {
		symbol = cfg.CurrencySymbol
	}
	f := view.NewFormatter(symbol, language.English)
	_, err = io.WriteString(out, render(vm, f))
	return err
}

func render(vm *view.ViewModel, f view.Formatter) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Loan Calculator"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Loan Amount") + valueStyle.Render(loanAmount(vm.Params.Principal, f)) + "\n")
	b.WriteString(labelStyle.Render("Interest Rate") + valueStyle.Render(f.Percent(vm.Params.AnnualRatePercent)) + "\n")
	b.WriteString(labelStyle.Render("Term") + valueStyle.Render(pluralMonths(vm.Params.TermMonths)) + "\n\n")

	for _, line := range vm.SummaryLines(f) {
		b.WriteString(labelStyle.Render(line[0]) + valueStyle.Render(line[1]) + "\n")
	}

	rows := vm.Rows(f)
	if rows == nil {
		b.WriteString("\n" + hintStyle.Render(vm.ToggleLabel()+" with --schedule") + "\n")
		return b.String()
	}

	widths := columnWidths(view.ScheduleHeader, rows)
	b.WriteString("\n")
	b.WriteString(renderRow(view.ScheduleHeader, widths, headerStyle))
	for _, row := range rows {
		b.WriteString(renderRow(row, widths, lipgloss.NewStyle()))
	}
	return b.String()
}

// loanAmount echoes the principal the way it was entered, regrouped.
func loanAmount(principal float64, f view.Formatter) string {
	return f.Symbol + input.FormatThousands(strconv.FormatFloat(principal, 'f', -1, 64))
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func renderRow(cells []string, widths []int, style lipgloss.Style) string {
	rendered := make([]string, len(cells))
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		rendered[i] = pad + style.Render(cell)
	}
	return strings.Join(rendered, "  ") + "\n"
}

func pluralMonths(n int) string {
	if n == 1 {
		return "1 month"
	}
	return view.DefaultFormatter().Count(n) + " months"
}
