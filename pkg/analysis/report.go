package analysis

// Report contains pre-computed views of a run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Diagnostics is the flat list for detailed output.
	Diagnostics []DiagnosticEntry `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	// ByFile groups diagnostics by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty" yaml:"by_file,omitempty"`

	// ByKind groups diagnostics by kind.
	ByKind []KindAnalysis `json:"byKind,omitempty" yaml:"by_kind,omitempty"`

	// Blocks counts recognized blocks by context.
	Blocks []BlockCount `json:"blocks,omitempty" yaml:"blocks,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary" yaml:"summary"`

	// Version is the report format version.
	Version string `json:"version" yaml:"version"`
}

// DiagnosticEntry represents a single diagnostic in the report.
type DiagnosticEntry struct {
	FilePath string `json:"filePath" yaml:"file_path"`
	Kind     string `json:"kind" yaml:"kind"`
	Severity string `json:"severity" yaml:"severity"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line" yaml:"line"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesParsed" yaml:"files_parsed"`
	FilesErrored    int `json:"filesErrored" yaml:"files_errored"`
	FilesWithIssues int `json:"filesWithIssues" yaml:"files_with_issues"`
	Blocks          int `json:"blocks" yaml:"blocks"`
	Issues          int `json:"totalIssues" yaml:"total_issues"`
	Errors          int `json:"errors" yaml:"errors"`
	Warnings        int `json:"warnings" yaml:"warnings"`
	Infos           int `json:"infos" yaml:"infos"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors or unreadable files.
func (t Totals) HasErrors() bool {
	return t.Errors > 0 || t.FilesErrored > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path" yaml:"path"`
	Issues   int      `json:"issues" yaml:"issues"`
	Errors   int      `json:"errors" yaml:"errors"`
	Warnings int      `json:"warnings" yaml:"warnings"`
	Infos    int      `json:"infos" yaml:"infos"`
	Kinds    []string `json:"kinds,omitempty" yaml:"kinds,omitempty"`
}

// KindAnalysis contains aggregated data for a single diagnostic kind.
type KindAnalysis struct {
	Kind     string   `json:"kind" yaml:"kind"`
	Issues   int      `json:"issues" yaml:"issues"`
	Errors   int      `json:"errors" yaml:"errors"`
	Warnings int      `json:"warnings" yaml:"warnings"`
	Infos    int      `json:"infos" yaml:"infos"`
	Files    []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// BlockCount is the number of blocks with one context.
type BlockCount struct {
	Context string `json:"context" yaml:"context"`
	Count   int    `json:"count" yaml:"count"`
}
