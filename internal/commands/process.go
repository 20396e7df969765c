package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Sneakypoke/Budget/internal/classify"
	"github.com/Sneakypoke/Budget/internal/config"
	"github.com/Sneakypoke/Budget/internal/export"
	"github.com/Sneakypoke/Budget/internal/importer"
	"github.com/Sneakypoke/Budget/internal/merge"
	"github.com/Sneakypoke/Budget/internal/model"
	"github.com/Sneakypoke/Budget/internal/report"
	"github.com/Sneakypoke/Budget/internal/rules"
	"github.com/Sneakypoke/Budget/internal/runlog"
)

func newProcessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process [directory]",
		Short: "Import, classify and export all bank transactions",
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

			return runProcess(absDir, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runProcess(dir string, out io.Writer) error {
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		return err
	}

	// A missing or invalid rule table is fatal before any source file
	// is read.
	table, err := rules.Load(resolve(dir, cfg.Rules))
	if err != nil {
		return err
	}
	classifier := classify.FromTable(table)

	registry := importer.DefaultRegistry()
	now := time.Now()

	var sets [][]model.Transaction
	var audit []runlog.Entry
	for _, src := range cfg.Sources {
		p := registry.Get(src.Format)
		if p == nil {
			return fmt.Errorf("source %s: unknown format %q", src.Name, src.Format)
		}

		txns, results := importer.ImportFolder(p, resolve(dir, src.Folder))
		for _, res := range results {
			entry := runlog.Entry{
				Timestamp: now,
				Source:    src.Name,
				File:      res.Path,
				Records:   res.Records,
				Status:    runlog.StatusOK,
			}
			if res.Err != nil {
				entry.Status = runlog.StatusFailed
				entry.Error = res.Err.Error()
				logrus.WithField("source", src.Name).Warnf("skipping %s: %v", res.Path, res.Err)
			}
			audit = append(audit, entry)
		}
		sets = append(sets, txns)
	}

	merged := merge.Merge(sets...)
	classified := classify.Apply(merged, classifier)

	if err := writeSink(resolve(dir, cfg.Output.Transactions), func(w io.Writer) error {
		return export.WriteTransactions(w, classified, classifier.HasPayment())
	}); err != nil {
		return err
	}
	if err := writeSink(resolve(dir, cfg.Output.Budget), func(w io.Writer) error {
		return export.WriteBudget(w, classified)
	}); err != nil {
		return err
	}

	if len(audit) > 0 {
		if err := runlog.Append(dir, audit); err != nil {
			return fmt.Errorf("writing import log: %w", err)
		}
	}

	fmt.Fprintf(out, "Processed %d transactions from %d sources\n\n", len(classified), len(cfg.Sources))
	return printReport(out, classified)
}

func printReport(out io.Writer, txns []model.Transaction) error {
	if err := report.WriteStatistics(out, report.Statistics(txns)); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Unresolved transactions:")
	return report.WriteUnresolved(out, report.Unresolved(txns))
}

func writeSink(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// resolve joins a configured path to the project directory unless it is
// already absolute.
func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, filepath.FromSlash(path))
}
