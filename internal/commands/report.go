package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sneakypoke/Budget/internal/config"
	"github.com/Sneakypoke/Budget/internal/export"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [directory]",
		Short: "Print category statistics from the last processed run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runReport(absDir, cmd)
		},
	}
	return cmd
}

func runReport(dir string, cmd *cobra.Command) error {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return err
	}

	path := resolve(dir, cfg.Output.Transactions)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s (run `budget process` first): %w", path, err)
	}
	defer f.Close()

	txns, err := export.ReadTransactions(f)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	return printReport(cmd.OutOrStdout(), txns)
}
