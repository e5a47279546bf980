package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X loan-amortization/cli.Version=..."
var Version = "dev"

// NewRootCmd builds the amortize command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "amortize",
		Short: "Fixed-rate loan amortization calculator",
		Long: `amortize computes the level monthly payment, total interest and
month-by-month repayment schedule of a fixed-rate loan.

Use "calculate" for a one-off answer in the terminal or "serve" to expose
the calculator as a JSON API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newCalculateCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command with os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("amortize %s\n", Version)
		},
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
