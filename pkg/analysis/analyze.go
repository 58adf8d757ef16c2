// Package analysis aggregates a run into per-file, per-kind and per-block
// views shared by the reporters.
package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/adocblocks/pkg/adast"
	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/diag"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// MakeRelativePath converts an absolute path to a path relative to workDir.
// If workDir is empty or the conversion fails, returns the original path.
func MakeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// severityCounts points at the error, warning and info counters of one row.
type severityCounts struct {
	errors, warnings, infos *int
}

func (c severityCounts) add(sev config.Severity) {
	switch sev {
	case config.SeverityError:
		*c.errors++
	case config.SeverityWarning:
		*c.warnings++
	case config.SeverityInfo:
		*c.infos++
	}
}

type analysisContext struct {
	kindMap   map[diag.Kind]*KindAnalysis
	fileMap   map[string]*FileAnalysis
	kindFiles map[diag.Kind]map[string]bool
	fileKinds map[string]map[diag.Kind]bool
	blocks    map[string]int
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		kindMap:   make(map[diag.Kind]*KindAnalysis),
		fileMap:   make(map[string]*FileAnalysis),
		kindFiles: make(map[diag.Kind]map[string]bool),
		fileKinds: make(map[string]map[diag.Kind]bool),
		blocks:    make(map[string]int),
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileKinds[path] = make(map[diag.Kind]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) kind(kind diag.Kind) *KindAnalysis {
	if _, ok := ctx.kindMap[kind]; !ok {
		ctx.kindMap[kind] = &KindAnalysis{Kind: string(kind)}
		ctx.kindFiles[kind] = make(map[string]bool)
	}
	return ctx.kindMap[kind]
}

// Analyze processes a runner result into a report.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion}
	if result == nil {
		return report
	}

	ctx := newAnalysisContext()

	for _, file := range result.Files {
		if file.Error != nil {
			report.Totals.FilesErrored++
			continue
		}
		report.Totals.Files++
		if len(file.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		//nolint:errcheck // The counting walk never fails.
		_ = adast.Walk(file.Document, func(blk *adast.Block) error {
			if blk != file.Document {
				report.Totals.Blocks++
				ctx.blocks[blk.Context]++
			}
			return nil
		})

		displayPath := MakeRelativePath(file.Path, opts.WorkingDir)

		for _, d := range file.Diagnostics {
			severity := d.Severity
			if severity == "" {
				severity = config.SeverityWarning
			}

			report.Totals.Issues++
			severityCounts{&report.Totals.Errors, &report.Totals.Warnings, &report.Totals.Infos}.add(severity)

			fa := ctx.file(displayPath)
			fa.Issues++
			severityCounts{&fa.Errors, &fa.Warnings, &fa.Infos}.add(severity)
			ctx.fileKinds[displayPath][d.Kind] = true

			ka := ctx.kind(d.Kind)
			ka.Issues++
			severityCounts{&ka.Errors, &ka.Warnings, &ka.Infos}.add(severity)
			ctx.kindFiles[d.Kind][displayPath] = true

			if opts.IncludeDiagnostics {
				report.Diagnostics = append(report.Diagnostics, DiagnosticEntry{
					FilePath: displayPath,
					Kind:     string(d.Kind),
					Severity: string(severity),
					Message:  d.Message,
					Line:     d.Line,
				})
			}
		}
	}

	if opts.IncludeByKind {
		report.ByKind = ctx.buildByKind(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile(opts)
	}
	if opts.IncludeBlocks {
		report.Blocks = ctx.buildBlocks()
	}

	return report
}

func (ctx *analysisContext) buildByKind(opts Options) []KindAnalysis {
	result := make([]KindAnalysis, 0, len(ctx.kindMap))
	for kind, ka := range ctx.kindMap {
		for f := range ctx.kindFiles[kind] {
			ka.Files = append(ka.Files, f)
		}
		slices.Sort(ka.Files)
		result = append(result, *ka)
	}
	slices.SortFunc(result, func(left, right KindAnalysis) int {
		return compareCounts(opts, left.Kind, right.Kind,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		for k := range ctx.fileKinds[path] {
			fa.Kinds = append(fa.Kinds, string(k))
		}
		slices.Sort(fa.Kinds)
		result = append(result, *fa)
	}
	slices.SortFunc(result, func(left, right FileAnalysis) int {
		return compareCounts(opts, left.Path, right.Path,
			[3]int{left.Errors, left.Warnings, left.Issues},
			[3]int{right.Errors, right.Warnings, right.Issues})
	})
	return result
}

func (ctx *analysisContext) buildBlocks() []BlockCount {
	result := make([]BlockCount, 0, len(ctx.blocks))
	for context, count := range ctx.blocks {
		result = append(result, BlockCount{Context: context, Count: count})
	}
	slices.SortFunc(result, func(left, right BlockCount) int {
		if c := cmp.Compare(right.Count, left.Count); c != 0 {
			return c
		}
		return cmp.Compare(left.Context, right.Context)
	})
	return result
}

// compareCounts orders two rows by opts. counts holds errors, warnings and
// issues. Ties fall back to the name so output is deterministic.
func compareCounts(opts Options, leftName, rightName string, left, right [3]int) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
		return cmp.Compare(leftName, rightName)
	case SortBySeverity:
		result = cmp.Compare(right[0], left[0])
		if result == 0 {
			result = cmp.Compare(right[1], left[1])
		}
		if result == 0 {
			result = cmp.Compare(right[2], left[2])
		}
	default: // SortByCount
		result = cmp.Compare(left[2], right[2])
		if opts.SortDesc {
			result = -result
		}
	}
	if result == 0 {
		result = cmp.Compare(leftName, rightName)
	}
	return result
}
