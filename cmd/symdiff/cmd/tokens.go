package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [expression]",
	Short: "Dump the token stream of an expression",
	Args:  cobra.ArbitraryArgs,
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readExpression(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	syms := symdiff.NewSymbolTable()
	toks, err := symdiff.Tokenize(src, syms)
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	for _, t := range toks {
		fmt.Fprintf(w, "%3d  %s\n", t.Pos, symdiff.DescribeToken(t, syms))
	}
	return nil
}
