package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [expression]",
	Short: "Print the simplified form of an expression",
	Args:  cobra.ArbitraryArgs,
	RunE:  runSimplify,
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	src, err := readExpression(args, cmd.InOrStdin())
	if err != nil {
		return err
	}

	syms := symdiff.NewSymbolTable()
	n, err := symdiff.Parse(src, syms)
	if err != nil {
		return err
	}
	s := symdiff.Simplifier{MaxExponent: cfg.Engine.MaxFoldExponent}
	out := s.Simplify(n)
	if cfg.Engine.UntilStable {
		out = s.UntilStable(n)
	}

	w := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case "json", "yaml":
		tree, err := symdiff.TreeMap(out, syms)
		if err != nil {
			return err
		}
		r := map[string]interface{}{
			"input":      src,
			"expression": symdiff.String(out, syms),
			"tree":       tree,
		}
		if cfg.Output.LaTeX {
			r["latex"] = symdiff.LaTeX(out, syms)
		}
		return writeReport(w, cfg.Output.Format, r)
	}
	fmt.Fprintln(w, symdiff.String(out, syms))
	if cfg.Output.LaTeX {
		fmt.Fprintln(w, symdiff.LaTeX(out, syms))
	}
	return nil
}
