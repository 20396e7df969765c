package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sneakypoke/Budget/internal/config"
)

// starterRules is the rule table scaffolded for a new project: the nested
// shape with the Payments bucket and the special-cased types filled in
// with placeholder rules to edit.
const starterRules = `Transaction Map:
  Payments:
    Groceries:
      Woolworths:
        - WOOLWORTHS
    Eating Out:
      Coffee:
        - SEATTLE COFFEE
  EFT:
    Housing:
      Rent:
        - rent
  Transfer:
    Transfer:
      Transfer:
        - transfer
  Fee:
    Bank Charges:
      Monthly Account Fee:
        - fee
`

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budget project",
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

			return runInit(absDir, cmd.OutOrStdout())
		},
	}
	return cmd
}

func runInit(dir string, out io.Writer) error {
	cfg := config.Default()

	// One folder per source dialect, plus the run log directory.
	dirs := []string{"logs"}
	for _, s := range cfg.Sources {
		dirs = append(dirs, s.Folder)
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	rulesPath := filepath.Join(dir, filepath.FromSlash(cfg.Rules))
	if err := os.WriteFile(rulesPath, []byte(starterRules), 0o644); err != nil {
		return fmt.Errorf("writing starter rules: %w", err)
	}

	fmt.Fprintf(out, "Initialized budget project at %s\n", dir)
	return nil
}
