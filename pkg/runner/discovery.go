package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// patternSet is a compiled list of path globs. "**" crosses directory
// separators; "*" does not. A pattern without a slash also matches the base
// name of a path.
type patternSet struct {
	globs []glob.Glob
}

func compilePatterns(patterns []string) (*patternSet, error) {
	set := &patternSet{}
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		variants := []string{pattern}
		if prefix, ok := strings.CutSuffix(pattern, "/**"); ok && prefix != "" {
			variants = append(variants, prefix)
		}
		if suffix, ok := strings.CutPrefix(pattern, "**/"); ok && suffix != "" {
			variants = append(variants, suffix)
		}
		for _, variant := range variants {
			g, err := glob.Compile(variant, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			set.globs = append(set.globs, g)
		}
	}
	return set, nil
}

func (s *patternSet) empty() bool {
	return s == nil || len(s.globs) == 0
}

// match reports whether relPath or its base name matches any pattern.
func (s *patternSet) match(relPath string) bool {
	if s.empty() {
		return false
	}
	relPath = filepath.ToSlash(relPath)
	base := filepath.Base(relPath)
	for _, g := range s.globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}

// discoverer holds the compiled state of one discovery.
type discoverer struct {
	workDir    string
	extensions []string
	include    *patternSet
	exclude    *patternSet
	follow     bool
}

// Discover finds AsciiDoc files under opts.Paths. It returns a sorted,
// deduplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include: %w", err)
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		follow:     opts.FollowSymlinks,
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := input
		if !filepath.IsAbs(input) {
			absPath = filepath.Join(workDir, input)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if d.accepts(absPath) {
				add(absPath)
			}
			continue
		}

		found, err := d.walk(ctx, absPath)
		if err != nil {
			return nil, err
		}
		for _, path := range found {
			add(path)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walk collects matching files under root. Hidden entries and excluded
// directories are skipped; permission errors are ignored.
func (d *discoverer) walk(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path != root && (strings.HasPrefix(entry.Name(), ".") || d.exclude.match(d.rel(path))) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !d.follow {
					return nil
				}
				// Walk the target: WalkDir does not descend into a symlinked root.
				sub, err := d.walk(ctx, target)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if d.accepts(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}

// accepts applies the extension, exclude and include filters to a file.
func (d *discoverer) accepts(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	rel := d.rel(path)
	if d.exclude.match(rel) {
		return false
	}
	return d.include.empty() || d.include.match(rel)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}
