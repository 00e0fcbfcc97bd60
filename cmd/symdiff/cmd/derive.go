package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff"
)

var deriveCmd = &cobra.Command{
	Use:   "derive [expression]",
	Short: "Print the simplified partial derivatives of an expression",
	Long: `Prints one "name: derivative" line per variable, ordered by name.
An expression without variables prints a warning line instead.

Examples:
  symdiff derive "x^2"
  symdiff derive --rules calculus "sin(x)*y"
  echo "log(x,y)" | symdiff derive -o json`,
	Args: cobra.ArbitraryArgs,
	RunE: runDerive,
}

func init() {
	rootCmd.AddCommand(deriveCmd)
}

func runDerive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := readExpression(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	logger := newLogger(cmd, cfg)
	opts := cfg.Options()
	opts.Logger = &logger

	res, err := symdiff.Derive(src, opts)
	if err != nil {
		logger.Debug().Err(err).Str("input", src).Msg("derive failed")
		return err
	}
	defer res.Release()

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "json", "yaml":
		return writeReport(out, cfg.Output.Format, newReport(res, cfg.Output.LaTeX))
	}

	st := newStyles(cfg.Output.Color)
	if !res.HasVariables() {
		fmt.Fprintln(out, st.warning.Render(res.Warning()))
		return nil
	}
	for _, d := range res.Derivatives {
		line := st.name.Render(d.Var) + ": " + res.String(d.Tree)
		if cfg.Output.LaTeX {
			line += "  " + st.muted.Render(symdiff.LaTeX(d.Tree, res.Symbols))
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
