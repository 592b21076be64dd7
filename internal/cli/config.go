package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/quanta/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Validate and print configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a CUE config file against the schema",
		Long: `Validate a CUE config file against the built-in #Config schema.

Exit codes:
  0 - Valid
  1 - The file does not satisfy the schema
  2 - The file could not be read

Example:
  quanta config check ./quanta.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConfig(rootOpts, args[0], cmd)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the effective configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			if rootOpts.Format == "json" {
				return f.Success(rootOpts.Config)
			}
			return f.Success(formatConfig(rootOpts.Config))
		},
	})

	return cmd
}

func checkConfig(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "failed to read config", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		if outErr := f.Error("E_CONFIG_INVALID", err.Error(), nil); outErr != nil {
			return outErr
		}
		return WrapExitError(ExitFailure, "config invalid", err)
	}

	if opts.Format == "json" {
		return f.Success(cfg)
	}
	return f.Success(fmt.Sprintf("✓ %s is valid\n%s", path, formatConfig(cfg)))
}

func formatConfig(c config.Config) string {
	return fmt.Sprintf(`log.level:                  %s
log.format:                 %s
storage.backend:            %s
storage.path:               %s
storage.key:                %s
display.font_size_px:       %g
display.device_pixel_ratio: %g
driver.refresh_hz:          %d
driver.chain_warn:          %d
assets.root:                %s
assets.http_timeout_ms:     %d`,
		c.Log.Level, c.Log.Format,
		c.Storage.Backend, c.Storage.Path, c.Storage.Key,
		c.Display.FontSizePx, c.Display.DevicePixelRatio,
		c.Driver.RefreshHz, c.Driver.ChainWarn,
		c.Assets.Root, c.Assets.HTTPTimeoutMs)
}
