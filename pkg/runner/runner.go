package runner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/adocblocks/pkg/fsutil"
	"github.com/yaklabco/adocblocks/pkg/parser"
)

// Runner parses many files with one Parser.
type Runner struct {
	parser *parser.Parser
	logger *log.Logger
}

// New creates a Runner. The parser must not carry a shared Host, Registrar
// or Sink since files are parsed concurrently.
func New(p *parser.Parser, logger *log.Logger) *Runner {
	return &Runner{parser: p, logger: logger}
}

// Run discovers files under opts.Paths and parses them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	if r.logger != nil {
		r.logger.Debug("parsing files", "files", len(files), "jobs", jobs)
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = r.ParseFile(groupCtx, path)
			done[i] = true
			return nil
		})
	}

	waitErr := group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	if waitErr != nil {
		return result, fmt.Errorf("run: %w", waitErr)
	}

	return result, nil
}

// ParseFile reads and parses a single file. Read failures are recorded on
// the outcome rather than returned.
func (r *Runner) ParseFile(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	content, info, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Encoding = info.Encoding

	return r.parse(ctx, outcome, content)
}

// ParseSource parses content that did not come from disk, such as stdin.
// name labels the outcome and its diagnostics.
func (r *Runner) ParseSource(ctx context.Context, name string, raw []byte) FileOutcome {
	outcome := FileOutcome{Path: name}

	content, encoding, err := fsutil.Decode(raw)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Encoding = encoding

	return r.parse(ctx, outcome, content)
}

func (r *Runner) parse(ctx context.Context, outcome FileOutcome, content []byte) FileOutcome {
	res, err := r.parser.Parse(ctx, outcome.Path, content)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Source = content
	outcome.Document = res.Document
	outcome.Diagnostics = res.Diagnostics

	if r.logger != nil && len(res.Diagnostics) > 0 {
		r.logger.Debug("file has diagnostics", "path", outcome.Path, "count", len(res.Diagnostics))
	}
	return outcome
}

// Collect builds a Result from outcomes gathered outside Run, such as a
// single stdin parse.
func Collect(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes)), Stats: newStats()}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}
