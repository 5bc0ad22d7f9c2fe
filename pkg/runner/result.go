package runner

import (
	"github.com/yaklabco/redmark/pkg/mdast"
	"github.com/yaklabco/redmark/pkg/printer"
)

// FileOutcome is the result of parsing one file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Document is the parsed tree. Nil when Error is set.
	Document *mdast.Document

	// Error is set if the file could not be read.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files found during discovery.
	FilesDiscovered int

	// FilesParsed is the number of files read and parsed.
	FilesParsed int

	// FilesErrored is the number of files that could not be read.
	FilesErrored int

	// FilesWithDiagnostics is the number of parsed files with at least one
	// diagnostic.
	FilesWithDiagnostics int

	// Totals sums the per-document statistics of every parsed file.
	Totals printer.Stats
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, sorted by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasDiagnostics reports whether any parsed file produced diagnostics.
func (r *Result) HasDiagnostics() bool {
	if r == nil {
		return false
	}
	return r.Stats.Totals.Diagnostics > 0
}

// HasErrors reports whether any file could not be read.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

func newStats() Stats {
	return Stats{Totals: printer.Stats{ByKind: make(map[string]int)}}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Document == nil {
		return
	}

	r.Stats.FilesParsed++

	doc := printer.Summarize(outcome.Document)
	if doc.Diagnostics > 0 {
		r.Stats.FilesWithDiagnostics++
	}

	totals := &r.Stats.Totals
	totals.Bytes += doc.Bytes
	totals.Lines += doc.Lines
	totals.Blocks += doc.Blocks
	totals.Nodes += doc.Nodes
	totals.Diagnostics += doc.Diagnostics
	for kind, n := range doc.ByKind {
		totals.ByKind[kind] += n
	}
}
