package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/simonhull/tagverify"
	"github.com/simonhull/tagverify/internal/log"
)

type DumpArgs struct {
	Frames bool
}

func (da *DumpArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&da.Frames, "frames", false, "Also list the raw ID3 frames")
}

// NewDumpCmd lists every tag the verifier can see in the given files.
func NewDumpCmd() *cobra.Command {
	da := &DumpArgs{}

	cmd := &cobra.Command{
		Use:   "dump <file>...",
		Short: "Print the tags found in audio files",
		Example: `  # Show the keys available to a rule file:
  tagverify dump ./album/01.mp3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := log.WithContext(cmd.Context())
			for i, path := range args {
				ts, err := tagverify.ReadTags(path)
				if err != nil {
					return readError(err)
				}
				if i > 0 {
					mustN(fmt.Fprintln(cmd.OutOrStdout(), "---"))
				}
				if err := dumpTagSet(logger, cmd.OutOrStdout(), ts, da.Frames); err != nil {
					return err
				}
			}
			return nil
		},
	}

	da.AddFlags(cmd)
	bindEnvVars(cmd)

	return cmd
}

type frameDoc struct {
	Key         string `yaml:"key"`
	Description string `yaml:"description,omitempty"`
	Language    string `yaml:"language,omitempty"`
	Value       string `yaml:"value"`
}

type tagSetDoc struct {
	Path     string            `yaml:"path"`
	Format   tagverify.Format  `yaml:"format"`
	Tags     map[string]string `yaml:"tags"`
	Frames   []frameDoc        `yaml:"frames,omitempty"`
	Warnings []string          `yaml:"warnings,omitempty"`
}

// readError names the supported formats when a file is not one of them.
func readError(err error) error {
	var unsupported *tagverify.UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		return fmt.Errorf("read tags: %w", err)
	}

	names := make([]string, 0, 2)
	for _, f := range tagverify.SupportedFormats() {
		names = append(names, f.String())
	}
	return fmt.Errorf("read tags: %w (supported formats: %s)", err, strings.Join(names, ", "))
}

func dumpTagSet(logger *slog.Logger, w io.Writer, ts *tagverify.TagSet, frames bool) error {
	doc := tagSetDoc{
		Path:   ts.Path,
		Format: ts.Format,
		Tags:   make(map[string]string, len(ts.Fields)),
	}
	for k, v := range ts.All() {
		doc.Tags[k] = v
	}
	if frames {
		for key, f := range ts.RawFrames() {
			value, err := f.RawText()
			if err != nil {
				logger.Debug("frame value", slog.String("key", key), slog.Any("err", err))
				value = f.Value()
			}
			doc.Frames = append(doc.Frames, frameDoc{
				Key:         key,
				Description: f.Description,
				Language:    f.Language,
				Value:       value,
			})
		}
	}
	for _, warning := range ts.Warnings {
		doc.Warnings = append(doc.Warnings, warning.String())
	}

	enc := yaml.NewEncoder(w, yaml.Indent(2), yaml.IndentSequence(true))
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}
	return enc.Close() //nolint:wrapcheck // Return the original error.
}
