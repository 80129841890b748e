// Package cli implements the tagverify command.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/simonhull/tagverify/internal/config"
	"github.com/simonhull/tagverify/internal/log"
)

const (
	cmdName = "tagverify"
	cmdDesc = `Verify the metadata tags of audio files against a rule file.`

	cmdExamples = `  # Check every MP3 below ./album against rules.csv:
  tagverify -t rules.csv -f ./album

  # Include WAV files and save a plain text copy of the report in ./album:
  tagverify -t rules.tsv -f ./album --wav -o

  # Machine readable output:
  tagverify -t rules.csv -f ./album --output json

  # Show which tags were found while checking:
  tagverify -t rules.csv -f ./album -v`
)

type RootArgs struct {
	LogLevel   string
	LogFormat  string
	ConfigPath string
	Verbose    bool
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "warn", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))
	cmd.PersistentFlags().
		BoolVarP(&ra.Verbose, "verbose", "v", false, "Show detailed debug output, same as --log-level=debug")
	cmd.PersistentFlags().
		StringVar(&ra.ConfigPath, "config", "", "Path to the configuration file (default "+config.GetPath()+")")

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.MarkPersistentFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	runArgs := NewRunArgs(args)

	cmd := &cobra.Command{
		Use:               cmdName + " -t <tag-file> -f <folder>",
		Short:             cmdDesc,
		Example:           cmdExamples,
		Args:              cobra.NoArgs,
		PersistentPreRunE: setup(args),
		SilenceUsage:      true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, runArgs)
		},
	}

	args.AddFlags(cmd)
	runArgs.AddFlags(cmd)
	cmd.AddCommand(NewDumpCmd())

	bindEnvVars(cmd)

	return cmd
}

// setup applies the configuration file and installs the logger.
func setup(ra *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := applyConfig(cmd, ra.ConfigPath); err != nil {
			return err
		}

		level := ra.LogLevel
		if ra.Verbose {
			level = string(log.LevelDebug)
		}

		logHandler, err := log.CreateHandlerWithStrings(cmd.ErrOrStderr(), level, ra.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		logger := slog.New(logHandler)
		slog.SetDefault(logger)
		cmd.SetContext(log.NewContext(cmd.Context(), logger))

		return nil
	}
}

// applyConfig fills every flag that was set neither on the command line
// nor in the environment from the configuration file.
func applyConfig(cmd *cobra.Command, path string) error {
	required := path != ""
	if !required {
		path = config.GetPath()
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err //nolint:wrapcheck // Already carries the path.
	}

	for name, value := range cfg.FlagValues() {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		if err := cmd.Flags().Set(name, value); err != nil {
			return fmt.Errorf("%w: %s: %s: %w", config.ErrInvalidConfig, path, name, err)
		}
	}

	return nil
}
