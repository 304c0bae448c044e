// Package gridcell evaluates spreadsheet cells: it addresses cells by A1-style
// labels and computes display values from raw values, which may be literals
// or arithmetic formulas over other cells.
package gridcell

import (
	"io"
	"log/slog"
)

// Mode represents which cells are reported.
type Mode string

const (
	// ModeAll reports every non-empty cell.
	ModeAll Mode = "all"
	// ModeFormulas reports formula cells only.
	ModeFormulas Mode = "formulas"
)

// Options configures evaluation behavior.
type Options struct {
	// Mode specifies which cells are reported (all, formulas).
	Mode Mode
	// Sheets restricts evaluation to the named sheets. Empty means all sheets.
	Sheets []string
	// Range restricts reported cells to a range such as "A1:D10". Cells
	// outside it are still read when a formula refers to them.
	Range string
	// IncludeReferences specifies whether to list the cells each formula refers to.
	// If nil, defaults to true for formulas mode, false otherwise.
	IncludeReferences *bool
	// DisableCache turns off display value memoization.
	DisableCache bool
	// Logger receives warnings about sheets that could not be read.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default evaluation options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeAll,
	}
}

// ShouldIncludeReferences returns whether to list formula references.
func (o Options) ShouldIncludeReferences() bool {
	if o.IncludeReferences != nil {
		return *o.IncludeReferences
	}
	return o.Mode == ModeFormulas
}

// ShouldInclude returns whether a cell with the given raw value is reported.
func (o Options) ShouldInclude(raw string) bool {
	if raw == "" {
		return false
	}
	if o.Mode == ModeFormulas {
		return raw[0] == '='
	}
	return true
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
