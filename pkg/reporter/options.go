package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/adocblocks/pkg/analysis"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// ShowContext echoes the offending source line under each diagnostic.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// IncludeDocuments adds the block tree of each file to json and yaml
	// output. The parse command sets it; check leaves it off.
	IncludeDocuments bool

	// Compact uses minified output where applicable.
	Compact bool

	// Width truncates tree lines. 0 means the terminal width of Writer.
	Width int

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		SortBy:      analysis.SortByCount,
	}
}

func (o Options) analysisOptions() analysis.Options {
	opts := analysis.DefaultOptions()
	if o.SortBy.IsValid() {
		opts.SortBy = o.SortBy
	}
	opts.WorkingDir = o.WorkingDir
	return opts
}
