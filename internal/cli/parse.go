package cli

import (
	"bytes"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/adocblocks/internal/logging"
	"github.com/yaklabco/adocblocks/pkg/fsutil"
	"github.com/yaklabco/adocblocks/pkg/reporter"
)

type parseFlags struct {
	runFlags

	format  string
	output  string
	compact bool
	width   int
}

const parseLongDescription = `Parse AsciiDoc files and print their block tree.

By default, parses all .adoc, .asciidoc, .asc and .ad files under the current
directory. Pass "-" to read a single document from stdin.

Examples:
  adocblocks parse                       # Outline every document
  adocblocks parse guide.adoc            # Outline one document
  adocblocks parse --format json docs/   # Dump the trees as JSON
  adocblocks parse -o tree.yaml --format yaml guide.adoc
  cat guide.adoc | adocblocks parse -`

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [paths...]",
		Short: "Print the block tree of AsciiDoc files",
		Long:  parseLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	addRunFlags(cmd, &flags.runFlags)
	cmd.Flags().StringVarP(&flags.format, "format", "f", "tree", "output format: tree, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write the dump to a file instead of stdout")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json output")
	cmd.Flags().IntVar(&flags.width, "width", 0, "truncate tree lines to this width (0 = terminal width)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return withExitCode(ExitInvalidUsage, err)
	}
	if format != reporter.FormatTree && format != reporter.FormatJSON && format != reporter.FormatYAML {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("parse supports tree, json and yaml, not %s", format))
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd, &flags.runFlags, workDir)
	if err != nil {
		return err
	}

	result, err := execute(ctx, cfg, &flags.runFlags, args, workDir, cmd.InOrStdin())
	if err != nil {
		return err
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	var out io.Writer = cmd.OutOrStdout()
	var buf bytes.Buffer
	if flags.output != "" {
		out = &buf
		colorMode = "never"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:           out,
		ErrorWriter:      cmd.ErrOrStderr(),
		Format:           format,
		Color:            colorMode,
		IncludeDocuments: true,
		Compact:          flags.compact,
		Width:            flags.width,
		WorkingDir:       workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if flags.output != "" {
		if err := fsutil.WriteAtomic(ctx, flags.output, buf.Bytes(), 0); err != nil {
			return withExitCode(ExitIOError, err)
		}
		logger.Info("wrote parse dump", logging.FieldOutput, flags.output, logging.FieldFiles, len(result.Files))
	}

	if result.Stats.FilesErrored > 0 {
		return withExitCode(ExitIOError, fmt.Errorf("%d file(s) could not be read", result.Stats.FilesErrored))
	}
	return nil
}
