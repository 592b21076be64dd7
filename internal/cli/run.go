package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quanta/internal/harness"
	"github.com/roach88/quanta/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// RunReport is the JSON payload of the run command.
type RunReport struct {
	Name   string          `json:"name"`
	Pass   bool            `json:"pass"`
	Frames int64           `json:"frames"`
	Stack  []string        `json:"stack"`
	Fatal  string          `json:"fatal,omitempty"`
	Failed []string        `json:"failed_assets,omitempty"`
	Errors []string        `json:"errors,omitempty"`
	Trace  json.RawMessage `json:"trace"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run one scenario and print its trace",
		Long: `Run a scripted scenario on the headless host and print every hook call.

Storage lives in memory unless --db names a SQLite database, or the config
sets storage.backend to "sqlite" (the database is then storage.path). The
value is read and written under storage.key.

Exit codes:
  0 - Every expectation held
  1 - An expectation failed
  2 - Command error (unreadable scenario, database error)

Examples:
  quanta run ./scenarios/pause_menu.yaml
  quanta run ./scenarios/pause_menu.yaml --db ./quanta.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to a SQLite database for persisted storage")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	logger := opts.logger()

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	runOpts := opts.harnessOptions()
	dbPath := opts.Database
	if dbPath == "" && opts.Config.Storage.Backend == "sqlite" {
		dbPath = opts.Config.Storage.Path
	}
	if dbPath != "" {
		st, err := store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		runID := scenario.RunID
		if runID == "" {
			runID = harness.DefaultRunID
		}
		runOpts = append(runOpts, harness.WithBackend(st.Backend(runID)))
	}

	logger.Debug("running scenario", "name", scenario.Name, "frames", len(scenario.Frames))
	result, err := harness.Run(scenario, runOpts...)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		trace, err := result.Trace.MarshalCanonical()
		if err != nil {
			return fmt.Errorf("failed to encode trace: %w", err)
		}
		resp := CLIResponse{
			Status: "ok",
			Data: RunReport{
				Name:   result.Name,
				Pass:   result.Pass,
				Frames: result.Frames,
				Stack:  result.Stack,
				Fatal:  result.Fatal,
				Failed: result.AssetFailures,
				Errors: result.Errors,
				Trace:  trace,
			},
		}
		if !result.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_SCENARIO_FAILED", Message: fmt.Sprintf("%d expectation(s) failed", len(result.Errors))}
		}
		// The trace is canonical JSON; indenting would rewrite it.
		if err := (&OutputFormatter{Format: opts.Format, Writer: w, Compact: true}).JSON(resp); err != nil {
			return err
		}
	} else {
		fmt.Fprint(w, result.Trace.Text())
		fmt.Fprintln(w)
		if result.Assets > 0 {
			fmt.Fprintf(w, "assets: %d loaded, %d failed\n",
				result.Assets-len(result.AssetFailures), len(result.AssetFailures))
		}
		printScenarioLine(w, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", result.Name))
	}
	return nil
}
