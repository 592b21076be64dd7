package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/quanta/internal/asset"
	"github.com/roach88/quanta/internal/config"
	"github.com/roach88/quanta/internal/harness"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string

	// Config is loaded before any subcommand runs.
	Config config.Config
	// Logger is built from Config and the verbose flag.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the quanta CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "quanta",
		Short: "quanta - frame-driven app runtime",
		Long: `Tools for the quanta runtime: run scripted scenarios against the state
machine on a headless host, inspect persisted storage and check config files.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.load(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a CUE config file (default: built-in defaults)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewStorageCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// load reads the config and installs the logger it describes.
func (o *RootOptions) load(w io.Writer) error {
	var err error
	if o.ConfigPath == "" {
		o.Config, err = config.Default()
	} else {
		o.Config, err = config.Load(o.ConfigPath)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	o.Logger = NewLogger(w, o.Config.Log, o.Verbose)
	slog.SetDefault(o.Logger)
	return nil
}

// logger returns the configured logger, or the default one when a
// subcommand runs without the root's pre-run hook (tests).
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// harnessOptions maps the config onto scenario runs: relative asset URLs
// resolve under assets.root, http(s) URLs go over the network.
func (o *RootOptions) harnessOptions() []harness.Option {
	root := o.Config.Assets.Root
	if root == "" {
		root = "."
	}
	fetcher := asset.Router{
		Local:  asset.DirFetcher{FS: os.DirFS(root)},
		Remote: asset.NewHTTPFetcher(o.Config.Assets.HTTPTimeout()),
	}
	hz := o.Config.Driver.RefreshHz
	if hz <= 0 {
		hz = 60
	}
	return []harness.Option{
		harness.WithLogger(o.logger()),
		harness.WithStorageKey(o.Config.Storage.Key),
		harness.WithDisplay(harness.Display{
			FontSizePx:       o.Config.Display.FontSizePx,
			DevicePixelRatio: o.Config.Display.DevicePixelRatio,
		}),
		harness.WithChainWarn(o.Config.Driver.ChainWarn),
		harness.WithFetcher(fetcher),
		harness.WithFrameInterval(1 / float64(hz)),
	}
}

// NewLogger builds the handler the config asks for. Verbose forces Debug.
func NewLogger(w io.Writer, cfg config.Log, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, handlerOpts)
	} else {
		handler = slog.NewTextHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
