package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/simonhull/tagverify"
	"github.com/simonhull/tagverify/internal/log"
	"github.com/simonhull/tagverify/internal/report"
	"github.com/simonhull/tagverify/internal/resolve"
	"github.com/simonhull/tagverify/internal/rules"
	"github.com/simonhull/tagverify/internal/types"
	"github.com/simonhull/tagverify/internal/verify"
)

// resultFileLayout names the report copy written by --output-file.
const resultFileLayout = "tagverify_results_20060102_150405.txt"

var errMissingFlag = errors.New("required flag not set")

type RunArgs struct {
	*RootArgs

	TagFile     string
	Folder      string
	Output      string
	AliasesPath string
	Jobs        int
	OutputFile  bool
	NoColor     bool
	WAV         bool
}

func NewRunArgs(rootArgs *RootArgs) *RunArgs {
	return &RunArgs{
		RootArgs: rootArgs,
	}
}

func (ra *RunArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ra.TagFile, "tag-file", "t", "", "Path to the CSV/TSV file containing expected tags")
	cmd.Flags().StringVarP(&ra.Folder, "folder", "f", "", "Path to the folder containing audio files to check")
	cmd.Flags().BoolVarP(&ra.OutputFile, "output-file", "o", false,
		"Save the results to a plain text file in the audio folder")
	cmd.Flags().StringVar(&ra.Output, "output", string(report.FormatText),
		fmt.Sprintf("Output format, one of: %v", report.Formats))
	cmd.Flags().BoolVar(&ra.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&ra.WAV, "wav", false, "Also check WAV files")
	cmd.Flags().IntVar(&ra.Jobs, "jobs", 1, "Number of files to read ahead in parallel")
	cmd.Flags().StringVar(&ra.AliasesPath, "aliases", "", "Path to a YAML alias table merged over the built-in one")

	formats := make([]string, 0, len(report.Formats))
	for _, f := range report.Formats {
		formats = append(formats, string(f))
	}

	err := cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(formats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	must(cmd.MarkFlagFilename("tag-file", "csv", "tsv", "txt"))
	must(cmd.MarkFlagDirname("folder"))
	must(cmd.MarkFlagFilename("aliases", "yaml", "yml"))
}

func run(cmd *cobra.Command, ra *RunArgs) error {
	if ra.TagFile == "" {
		return fmt.Errorf("%w: --tag-file", errMissingFlag)
	}
	if ra.Folder == "" {
		return fmt.Errorf("%w: --folder", errMissingFlag)
	}

	format, err := report.ParseFormat(ra.Output)
	if err != nil {
		return fmt.Errorf("invalid argument %q for \"--output\" flag: %w", ra.Output, err)
	}

	stdout := cmd.OutOrStdout()
	// Progress messages stay off stdout when it carries a document.
	status := stdout
	if format != report.FormatText {
		status = cmd.ErrOrStderr()
	}

	logger := log.WithContext(cmd.Context())
	logger.Debug("parsed args",
		slog.String("tag_file", ra.TagFile),
		slog.String("folder", ra.Folder),
		slog.String("output", string(format)),
		slog.Bool("wav", ra.WAV),
		slog.Int("jobs", ra.Jobs),
	)

	set, err := rules.Parse(ra.TagFile)
	if err != nil {
		return fmt.Errorf("load expected tags: %w", err)
	}
	mustN(fmt.Fprintf(status, "Successfully loaded %d expected tags from '%s'\n", set.Len(), ra.TagFile))

	resolver, err := newResolver(ra.AliasesPath)
	if err != nil {
		return err
	}

	formats := []types.Format{types.FormatMP3}
	if ra.WAV {
		formats = append(formats, types.FormatWAV)
	}

	v := verify.New(set, tagverify.Reader{},
		verify.WithFormats(formats...),
		verify.WithJobs(ra.Jobs),
		verify.WithResolver(resolver),
	)

	mustN(fmt.Fprintln(status, "\nProcessing files..."))

	rep, err := v.VerifyDir(cmd.Context(), ra.Folder)
	if err != nil {
		return fmt.Errorf("verify %s: %w", ra.Folder, err)
	}

	if err := report.Write(stdout, rep, format, colorize(stdout, ra.NoColor)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if ra.OutputFile {
		path, err := saveResults(ra.Folder, rep, time.Now())
		if err != nil {
			return err
		}
		mustN(fmt.Fprintf(status, "\nResults have been saved to: %s\n", path))
	}

	return nil
}

func newResolver(aliasesPath string) (*resolve.Resolver, error) {
	if aliasesPath == "" {
		return resolve.New(nil), nil
	}

	aliases, err := resolve.LoadAliases(aliasesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: load aliases: %w", types.ErrSetup, err)
	}

	return resolve.New(aliases), nil
}

// saveResults writes the uncolored text report next to the audio files.
func saveResults(dir string, rep *verify.Report, now time.Time) (string, error) {
	path := filepath.Join(dir, now.Format(resultFileLayout))

	if err := os.WriteFile(path, []byte(report.RenderText(rep, false)), 0o644); err != nil { //nolint:gosec // Report is meant to be shared.
		return "", fmt.Errorf("save results: %w", err)
	}

	return path, nil
}

// colorize reports whether w is a terminal that accepts color.
func colorize(w io.Writer, noColor bool) bool {
	if noColor {
		return false
	}
	return termenv.NewOutput(w).EnvColorProfile() != termenv.Ascii
}
