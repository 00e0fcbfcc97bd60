package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/symdiff"
)

type styles struct {
	name    lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

// newStyles returns plain styles unless color is set.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{name: plain, warning: plain, muted: plain}
	}
	return styles{
		name:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

type report struct {
	Input       string             `json:"input" yaml:"input"`
	Expression  string             `json:"expression" yaml:"expression"`
	Warning     string             `json:"warning,omitempty" yaml:"warning,omitempty"`
	Derivatives []derivativeReport `json:"derivatives" yaml:"derivatives"`
}

type derivativeReport struct {
	Var        string `json:"var" yaml:"var"`
	Derivative string `json:"derivative" yaml:"derivative"`
	LaTeX      string `json:"latex,omitempty" yaml:"latex,omitempty"`
}

func newReport(res *symdiff.Result, latex bool) report {
	r := report{
		Input:       res.Input,
		Expression:  res.String(res.Expr),
		Derivatives: []derivativeReport{},
	}
	if !res.HasVariables() {
		r.Warning = res.Warning()
	}
	for _, d := range res.Derivatives {
		dr := derivativeReport{Var: d.Var, Derivative: res.String(d.Tree)}
		if latex {
			dr.LaTeX = symdiff.LaTeX(d.Tree, res.Symbols)
		}
		r.Derivatives = append(r.Derivatives, dr)
	}
	return r
}

func writeReport(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format: %s", format)
}
