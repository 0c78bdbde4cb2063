// Package output renders command results as tables, JSON or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// Align is a column alignment.
type Align int

const (
	AlignDefault Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// Data represents data formatted for table output.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align
}

// Tabular is implemented by results that have a table rendering. Other
// formats encode the value itself.
type Tabular interface {
	Table() Data
}

// Formatter writes one result.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the formatter for format. Unknown formats render
// as tables.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements Formatter.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(unwrap(data))
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format implements Formatter.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(unwrap(data),
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter outputs table format. Values without a table rendering
// fall back to indented JSON.
type TableFormatter struct{}

// Format implements Formatter.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return renderTable(w, v)
	case Tabular:
		return renderTable(w, v.Table())
	default:
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func renderTable(w io.Writer, data Data) error {
	config := tablewriter.Config{}
	if len(data.ColumnAlignment) > 0 {
		align := make([]tw.Align, len(data.ColumnAlignment))
		for i, a := range data.ColumnAlignment {
			switch a {
			case AlignLeft:
				align[i] = tw.AlignLeft
			case AlignCenter:
				align[i] = tw.AlignCenter
			case AlignRight:
				align[i] = tw.AlignRight
			default:
				align[i] = tw.Skip
			}
		}
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}

	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	if len(data.Headers) > 0 {
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range data.Rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// DetectFormat returns the explicit format, or table on a terminal and
// JSON when stdout is piped.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat converts s to a Format. Empty means auto-detect.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: %s", s, strings.Join(Formats, ", "))
	}
}

// Write renders data to w. An empty format is auto-detected.
func Write(w io.Writer, format string, data any) error {
	return NewFormatter(DetectFormat(format)).Format(w, data)
}
