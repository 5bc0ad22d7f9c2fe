// Package printer renders parsed documents as an indented tree, JSON or YAML.
package printer

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/redmark/pkg/config"
	"github.com/yaklabco/redmark/pkg/mdast"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures printing.
type Options struct {
	// Format selects text, json or yaml output.
	Format config.OutputFormat

	// ShowRanges includes the byte range of every node.
	ShowRanges bool

	// Width truncates quoted text in the text format so lines fit.
	// Zero disables truncation.
	Width int

	// Compact uses minified JSON.
	Compact bool

	// Theme styles the text format. The zero Theme prints plain text.
	Theme Theme
}

// Output is the top-level structure of the json and yaml formats.
type Output struct {
	Document    *Tree        `json:"document" yaml:"document"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Diagnostic is a parse diagnostic with its resolved position.
type Diagnostic struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Offset  int    `json:"offset" yaml:"offset"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
}

// Print writes doc to w in the format chosen by opts.
func Print(w io.Writer, doc *mdast.Document, opts Options) (err error) {
	bw := bufio.NewWriterSize(w, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	switch opts.Format {
	case config.FormatText, "":
		return writeText(bw, doc, opts)
	case config.FormatJSON:
		encoder := json.NewEncoder(bw)
		if !opts.Compact {
			encoder.SetIndent("", "  ")
		}
		if err := encoder.Encode(NewOutput(doc, opts.ShowRanges)); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
		return nil
	case config.FormatYAML:
		encoder := yaml.NewEncoder(bw)
		encoder.SetIndent(2)
		if err := encoder.Encode(NewOutput(doc, opts.ShowRanges)); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("close YAML encoder: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q; valid formats: text, json, yaml", opts.Format)
	}
}

// NewOutput builds the serializable form of doc.
func NewOutput(doc *mdast.Document, withRanges bool) *Output {
	out := &Output{Document: Build(doc, withRanges)}
	for _, d := range doc.Diagnostics {
		line, col := doc.LineAt(d.Offset)
		out.Diagnostics = append(out.Diagnostics, Diagnostic{
			Code:    d.Code,
			Message: d.Message,
			Offset:  d.Offset,
			Line:    line,
			Column:  col,
		})
	}
	return out
}
