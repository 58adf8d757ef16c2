package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adocblocks/internal/configloader"
	"github.com/yaklabco/adocblocks/internal/logging"
	"github.com/yaklabco/adocblocks/pkg/config"
	"github.com/yaklabco/adocblocks/pkg/parser"
	"github.com/yaklabco/adocblocks/pkg/runner"
)

// stdinPath is the path argument that reads a document from stdin.
const stdinPath = "-"

// runFlags are the input and configuration flags shared by parse and check.
type runFlags struct {
	jobs            int
	safeMode        string
	attributes      []string
	ignore          []string
	include         []string
	followSymlinks  bool
	noAttributeFile bool
	detectLanguage  bool
}

func addRunFlags(cmd *cobra.Command, flags *runFlags) {
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "number of files parsed at once (0 = auto)")
	cmd.Flags().StringVar(&flags.safeMode, "safe-mode", "", "safe mode: unsafe, safe, server, secure")
	cmd.Flags().StringArrayVarP(&flags.attributes, "attribute", "a", nil,
		"set a document attribute (name=value or name)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only parse files matching these glob patterns")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
	cmd.Flags().BoolVar(&flags.noAttributeFile, "no-asciidoctorconfig", false,
		"do not import attributes from .asciidoctorconfig")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"detect the language of [source] blocks that name none")
}

// cliConfig converts the flags that were set into a config overlay.
func (f *runFlags) cliConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := &config.Config{Jobs: f.jobs, Ignore: f.ignore}

	if cmd.Flags().Changed("safe-mode") {
		mode, err := config.ParseSafeMode(f.safeMode)
		if err != nil {
			return nil, err
		}
		cfg.SafeMode = mode
	}
	if f.detectLanguage {
		cfg.Source.DetectLanguage = true
	}

	if len(f.attributes) > 0 {
		cfg.Attributes = make(map[string]string, len(f.attributes))
		for _, attr := range f.attributes {
			name, value, _ := strings.Cut(attr, "=")
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("invalid attribute %q: missing name", attr)
			}
			cfg.Attributes[name] = value
		}
	}

	return cfg, nil
}

// loadConfig resolves the configuration for a run. The explicit path comes
// from the root command's persistent --config flag.
func loadConfig(cmd *cobra.Command, flags *runFlags, workDir string) (*config.Config, error) {
	logger := logging.FromContext(cmd.Context())

	overlay, err := flags.cliConfig(cmd)
	if err != nil {
		return nil, withExitCode(ExitInvalidUsage, err)
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	loadResult, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        configPath,
		IgnoreAttributeFile: flags.noAttributeFile,
		CLIConfig:           overlay,
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	return loadResult.Config, nil
}

// execute parses the documents named by args. A single "-" argument reads
// one document from stdin.
func execute(
	ctx context.Context,
	cfg *config.Config,
	flags *runFlags,
	args []string,
	workDir string,
	stdin io.Reader,
) (*runner.Result, error) {
	logger := logging.FromContext(ctx)

	r := runner.New(parser.New(parser.Options{Config: cfg, Logger: logger}), logger)

	if len(args) == 1 && args[0] == stdinPath {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, withExitCode(ExitIOError, fmt.Errorf("read stdin: %w", err))
		}
		return runner.Collect(r.ParseSource(ctx, "", raw)), nil
	}

	opts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     runner.DefaultExtensions(),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   cfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
		logging.FieldSafeMode, cfg.SafeMode,
	)

	result, err := r.Run(ctx, opts)
	if err != nil {
		return nil, withExitCode(ExitIOError, fmt.Errorf("run failed: %w", err))
	}

	logger.Debug("run finished",
		logging.FieldFilesParsed, result.Stats.FilesParsed,
		logging.FieldFilesErrored, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
	)

	return result, nil
}

func workingDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", withExitCode(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}
	return wd, nil
}
