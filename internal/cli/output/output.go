// SPDX-License-Identifier: MIT

// Package output renders command reports as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Mode is an output format.
type Mode string

// Supported modes.
const (
	ModeTable Mode = "table"
	ModeJSON  Mode = "json"
	ModeYAML  Mode = "yaml"
)

// Report is the result of one command.
// Columns and Rows drive the table view; Data is what JSON and YAML encode.
type Report struct {
	RunID   string         `json:"run_id" yaml:"run_id"`
	Command string         `json:"command" yaml:"command"`
	Meta    map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
	Data    any            `json:"data" yaml:"data"`

	Columns []string `json:"-" yaml:"-"`
	Rows    [][]any  `json:"-" yaml:"-"`
	Footer  string   `json:"-" yaml:"-"`
}

// NewReport starts a report with a fresh run id.
func NewReport(command string) *Report {
	return &Report{RunID: uuid.NewString(), Command: command, Meta: map[string]any{}}
}

// Renderer writes reports in one mode.
type Renderer struct {
	w    io.Writer
	mode Mode
}

// NewRenderer builds a renderer; unknown modes fall back to tables.
func NewRenderer(w io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeJSON, ModeYAML:
	default:
		mode = ModeTable
	}

	return &Renderer{w: w, mode: mode}
}

// Mode returns the effective mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Render writes rep.
func (r *Renderer) Render(rep *Report) error {
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	case ModeYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}

		return enc.Close()
	default:
		return r.renderTable(rep)
	}
}

func (r *Renderer) renderTable(rep *Report) error {
	_, _ = fmt.Fprintf(r.w, "%s  run %s\n", rep.Command, rep.RunID)
	keys := make([]string, 0, len(rep.Meta))
	for k := range rep.Meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(r.w, "  %s: %s\n", k, FormatValue(rep.Meta[k]))
	}
	if len(rep.Columns) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)
	header := make(table.Row, len(rep.Columns))
	for i, c := range rep.Columns {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range rep.Rows {
		tr := make(table.Row, len(row))
		for i, v := range row {
			tr[i] = FormatValue(v)
		}
		t.AppendRow(tr)
	}
	if rep.Footer != "" {
		t.AppendFooter(table.Row{rep.Footer})
	}
	t.Render()

	return nil
}

// FormatValue renders floats compactly and everything else with %v.
func FormatValue(v any) string {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) {
			return "undefined"
		}

		return fmt.Sprintf("%.6g", x)
	case float32:
		return fmt.Sprintf("%.6g", x)
	case nil:
		return "-"
	default:
		return fmt.Sprintf("%v", x)
	}
}
