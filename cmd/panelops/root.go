package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fsops/panelops/ioengine"
)

var (
	errConfigMissing   = stderrors.New("--config yaml file does not exist")
	errConfigMalformed = stderrors.New("--config yaml file is malformed")
	errUnknownCRS      = stderrors.New("--crs has a not recognized value")
	errUnknownLogLevel = stderrors.New("--log-level has a not recognized value")
)

// globalOptions holds every flag shared across subcommands, mergeable with
// a YAML configuration file. Per-path positional arguments (source,
// destination, mode bits, and the like) stay local to each subcommand.
type globalOptions struct {
	ConfigFile string   `yaml:"-"`
	Excludes   []string `yaml:"exclude"`
	CRS        string   `yaml:"crs"`
	Recursive  bool     `yaml:"recursive"`
	Verify     bool     `yaml:"verify"`
	SkipFailed bool     `yaml:"skip-failed"`
	Yes        bool     `yaml:"yes"`
	DryRun     bool     `yaml:"dry-run"`
	LogLevel   string   `yaml:"log-level"`
	JSON       bool     `yaml:"json"`
}

type appState struct {
	fsys    afero.Fs
	opts    *globalOptions
	log     *slog.Logger
	errored bool
	skipped bool
}

func newRootCommand() (*cobra.Command, *appState) {
	state := &appState{fsys: afero.NewOsFs(), opts: &globalOptions{}}

	root := &cobra.Command{
		Use:           "panelops",
		Short:         "copy, move, remove, link, and permission-change operations over files and subtrees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(cmd, state.opts); err != nil {
				return err
			}

			state.log = slog.New(logHandler(state.opts))

			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.SortFlags = false
	flags.StringVar(&state.opts.ConfigFile, "config", "", "path to a YAML configuration file merged with command-line flags")
	flags.StringSliceVar(&state.opts.Excludes, "exclude", nil, "glob pattern to exclude from a recursive operation; can be repeated")
	flags.StringVar(&state.opts.CRS, "crs", "fail", "conflict resolution strategy when the destination exists: fail, replace-all, replace-files, append-to-files")
	flags.BoolVarP(&state.opts.Recursive, "recursive", "r", false, "operate on a whole subtree instead of a single entry")
	flags.BoolVar(&state.opts.Verify, "verify", false, "re-read and checksum a copy's destination before finalizing it")
	flags.BoolVar(&state.opts.SkipFailed, "skip-failed", false, "do not stop on a recoverable failure; skip the entry and continue")
	flags.BoolVarP(&state.opts.Yes, "yes", "y", false, "answer yes to every destination-exists confirmation prompt")
	flags.BoolVar(&state.opts.DryRun, "dry-run", false, "preview only; no filesystem changes are made")
	flags.StringVar(&state.opts.LogLevel, "log-level", "info", "log verbosity: debug, info, warn, error")
	flags.BoolVar(&state.opts.JSON, "json", false, "emit structured JSON logs to stderr instead of colored text")

	root.AddCommand(
		newCpCommand(state),
		newMvCommand(state),
		newRmCommand(state),
		newMkdirCommand(state),
		newMkfileCommand(state),
		newLnCommand(state),
		newChmodCommand(state),
		newChownCommand(state),
		newChgrpCommand(state),
	)

	return root, state
}

// executeRoot runs the command tree under ctx and translates the outcome
// into a process exit code.
func executeRoot(root *cobra.Command, state *appState, ctx context.Context) int {
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)

		return exitCodeConfigFailure
	}

	if state.errored {
		return exitCodeFailure
	}

	if state.skipped {
		return exitCodePartialFailure
	}

	return exitCodeSuccess
}

// loadConfig merges a --config YAML file into opts for every flag the user
// did not set directly on the command line; direct flags always win.
func loadConfig(cmd *cobra.Command, opts *globalOptions) error {
	flags := cmd.Flags()

	var yamlOpts globalOptions

	if opts.ConfigFile != "" {
		data, err := os.ReadFile(opts.ConfigFile)
		if err != nil {
			return errors.Wrap(errConfigMissing, err.Error())
		}

		dec := yaml.NewDecoder(strings.NewReader(string(data)))
		dec.KnownFields(true)

		if err := dec.Decode(&yamlOpts); err != nil {
			return errors.Wrap(errConfigMalformed, err.Error())
		}
	}

	if !flags.Changed("exclude") && len(yamlOpts.Excludes) > 0 {
		opts.Excludes = yamlOpts.Excludes
	}
	if !flags.Changed("crs") && yamlOpts.CRS != "" {
		opts.CRS = yamlOpts.CRS
	}
	if !flags.Changed("recursive") {
		opts.Recursive = opts.Recursive || yamlOpts.Recursive
	}
	if !flags.Changed("verify") {
		opts.Verify = opts.Verify || yamlOpts.Verify
	}
	if !flags.Changed("skip-failed") {
		opts.SkipFailed = opts.SkipFailed || yamlOpts.SkipFailed
	}
	if !flags.Changed("yes") {
		opts.Yes = opts.Yes || yamlOpts.Yes
	}
	if !flags.Changed("dry-run") {
		opts.DryRun = opts.DryRun || yamlOpts.DryRun
	}
	if !flags.Changed("log-level") && yamlOpts.LogLevel != "" {
		opts.LogLevel = yamlOpts.LogLevel
	}
	if !flags.Changed("json") {
		opts.JSON = opts.JSON || yamlOpts.JSON
	}

	return nil
}

func parseCRS(s string) (ioengine.CRS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fail", "":
		return ioengine.CRSFail, nil
	case "replace-all":
		return ioengine.CRSReplaceAll, nil
	case "replace-files":
		return ioengine.CRSReplaceFiles, nil
	case "append-to-files":
		return ioengine.CRSAppendToFiles, nil
	default:
		return ioengine.CRSFail, fmt.Errorf("%w: %q", errUnknownCRS, s)
	}
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", errUnknownLogLevel, s)
	}
}

func logHandler(opts *globalOptions) slog.Handler {
	level, _ := parseLogLevel(opts.LogLevel)

	if opts.JSON {
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.TimeOnly})
}

func absClean(path string) string {
	if !filepath.IsAbs(path) {
		if wd, err := os.Getwd(); err == nil {
			path = filepath.Join(wd, path)
		}
	}

	return filepath.Clean(path)
}
