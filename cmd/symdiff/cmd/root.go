package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/njchilds90/symdiff/internal/config"
	"github.com/njchilds90/symdiff/internal/logging"
)

var (
	cfgFile     string
	verbose     bool
	rules       string
	format      string
	color       bool
	latex       bool
	untilStable bool
)

var rootCmd = &cobra.Command{
	Use:   "symdiff [expression]",
	Short: "Symbolic partial derivatives of integer expressions",
	Long: `symdiff reads one expression (from the arguments or the first line of
stdin), simplifies it and prints its simplified partial derivative with
respect to every variable, in alphabetical order.

Supported: integer constants, lowercase variables, + - * / ^, parentheses,
ln cos sin tan exp (one argument) and log pow (two arguments).`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDerive,
}

// Execute runs the CLI and reports the error, if any, on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: $SYMDIFF_CONFIG or ./symdiff.toml)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "trace intermediate trees on stderr")
	pf.StringVar(&rules, "rules", "", "derivative rule set: legacy or calculus")
	pf.StringVarP(&format, "output", "o", "", "output format: text, json or yaml")
	pf.BoolVar(&color, "color", false, "colour variable names in text output")
	pf.BoolVar(&latex, "latex", false, "include LaTeX renderings")
	pf.BoolVar(&untilStable, "until-stable", false, "simplify until the tree stops changing")
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("rules") {
		cfg.Engine.Rules = rules
	}
	if flags.Changed("output") {
		cfg.Output.Format = format
	}
	if flags.Changed("color") {
		cfg.Output.Color = color
	}
	if flags.Changed("latex") {
		cfg.Output.LaTeX = latex
	}
	if flags.Changed("until-stable") {
		cfg.Engine.UntilStable = untilStable
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.Config) zerolog.Logger {
	logger := logging.New(cmd.ErrOrStderr(), "symdiff", cfg.Log.Level)
	logger, _ = logging.WithRunID(logger, "run_id")
	return logger
}

// readExpression joins the arguments, or reads one line from in.
func readExpression(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read expression: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
}
