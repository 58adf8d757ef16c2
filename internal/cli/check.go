package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adocblocks/internal/logging"
	"github.com/yaklabco/adocblocks/pkg/analysis"
	"github.com/yaklabco/adocblocks/pkg/reporter"
)

type checkFlags struct {
	runFlags

	format    string
	strict    bool
	noContext bool
	compact   bool
	sortBy    string
}

const checkLongDescription = `Check AsciiDoc files and report structural problems.

Problems such as out-of-sequence list numbering, table cells that do not
fill the last row, missing callouts or unterminated delimited blocks are
reported as diagnostics. The exit code is 1 when any diagnostic has error
severity and, with --strict, 2 when warnings were found.

Examples:
  adocblocks check                     # Check the current directory
  adocblocks check docs/ README.adoc   # Check specific paths
  adocblocks check --format summary    # Tables by kind and file
  adocblocks check --format json       # Machine-readable output for CI
  adocblocks check --strict            # Fail on warnings too`

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report diagnostics for AsciiDoc files",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, tree, json, yaml, summary")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "exit non-zero on warnings")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.sortBy, "sort", "count", "order of summary tables: count, alpha, severity")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, &flags.runFlags, workDir)
	if err != nil {
		return err
	}

	formatName := flags.format
	if !cmd.Flags().Changed("format") && cfg.Format != "" {
		formatName = string(cfg.Format)
	}
	format, err := reporter.ParseFormat(formatName)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("unknown sort field %q (valid: count, alpha, severity)", flags.sortBy))
	}

	strict := flags.strict || cfg.Strict

	result, err := execute(ctx, cfg, &flags.runFlags, args, workDir, cmd.InOrStdin())
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		SortBy:      sortBy,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result, strict); code != ExitSuccess {
		return withExitCode(code, ErrDiagnosticsFound)
	}
	return nil
}
