package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SYMDIFF_CONFIG", "")
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestDeriveText(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"x+1"}, "x: 1\n"},
		{[]string{"derive", "x*y"}, "x: y\ny: x\n"},
		{[]string{"x^2"}, "x: x^2*(2/x)\n"},
		{[]string{"5"}, "[warning] No variable in original expression: 5\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			out, _, err := run(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestDeriveReadsStdin(t *testing.T) {
	out, _, err := run(t, "y*x\nignored\n")
	require.NoError(t, err)
	assert.Equal(t, "x: y\ny: x\n", out)
}

func TestDeriveError(t *testing.T) {
	_, _, err := run(t, "", "x+")
	require.Error(t, err)

	_, _, err = run(t, "", "X")
	require.Error(t, err)
}

func TestDeriveJSON(t *testing.T) {
	out, _, err := run(t, "", "-o", "json", "--latex", "x*y")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "x*y", r.Input)
	require.Len(t, r.Derivatives, 2)
	assert.Equal(t, "x", r.Derivatives[0].Var)
	assert.Equal(t, "y", r.Derivatives[0].Derivative)
	assert.NotEmpty(t, r.Derivatives[0].LaTeX)
	assert.Empty(t, r.Warning)
}

func TestDeriveYAMLWarning(t *testing.T) {
	out, _, err := run(t, "", "--output", "yaml", "2*3")
	require.NoError(t, err)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, "6", r.Expression)
	assert.Equal(t, "[warning] No variable in original expression: 6", r.Warning)
	assert.Empty(t, r.Derivatives)
}

func TestCalculusRulesFlag(t *testing.T) {
	out, _, err := run(t, "", "--rules", "calculus", "sin(x)")
	require.NoError(t, err)
	assert.Equal(t, "x: cos(x)\n", out)

	_, _, err = run(t, "", "--rules", "nope", "x")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symdiff.toml")
	require.NoError(t, os.WriteFile(path, []byte("[engine]\nrules = \"calculus\"\n"), 0o644))

	out, _, err := run(t, "", "--config", path, "ln(x)")
	require.NoError(t, err)
	assert.Equal(t, "x: 1/x\n", out)
}

func TestVerboseTracesToStderr(t *testing.T) {
	out, errOut, err := run(t, "", "-v", "x+0")
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", out)
	assert.Contains(t, errOut, "optimized expression")
	assert.Contains(t, errOut, "run_id")
}

func TestSimplifyAndTokens(t *testing.T) {
	out, _, err := run(t, "", "simplify", "(x+0)*1")
	require.NoError(t, err)
	assert.Equal(t, "x\n", out)

	out, _, err = run(t, "", "tokens", "ln(x)")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "function1 ln")
	assert.Contains(t, lines[2], "variable x")
}
