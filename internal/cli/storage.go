package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/quanta/internal/store"
)

// StorageOptions holds flags shared by the storage subcommands.
type StorageOptions struct {
	*RootOptions
	Database string
	Key      string
}

// StoredValue is the JSON payload of storage show.
type StoredValue struct {
	Key      string          `json:"key"`
	Revision int64           `json:"revision"`
	RunID    string          `json:"run_id"`
	Value    json.RawMessage `json:"value"`
}

// NewStorageCommand creates the storage command group.
func NewStorageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StorageOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Inspect or reset the persisted value",
		Long: `Inspect or reset the single persisted value in a SQLite database.

The key defaults to storage.key from the config.

Examples:
  quanta storage show --db ./quanta.db
  quanta storage reset --db ./quanta.db`,
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default: storage.path from config)")
	cmd.PersistentFlags().StringVar(&opts.Key, "key", "", "storage key (default: storage.key from config)")

	cmd.AddCommand(&cobra.Command{
		Use:           "show",
		Short:         "Print the persisted value",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStorage(opts, cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "reset",
		Short:         "Delete the persisted value so the next run starts from defaults",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return resetStorage(opts, cmd)
		},
	})

	return cmd
}

func (o *StorageOptions) open() (*store.Store, string, error) {
	path := o.Database
	if path == "" {
		path = o.Config.Storage.Path
	}
	if path == "" {
		return nil, "", NewExitError(ExitCommandError, "no database: pass --db or set storage.path")
	}
	key := o.Key
	if key == "" {
		key = o.Config.Storage.Key
	}
	if key == "" {
		return nil, "", NewExitError(ExitCommandError, "no storage key: pass --key or set storage.key")
	}

	st, err := store.Open(path)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, key, nil
}

func showStorage(opts *StorageOptions, cmd *cobra.Command) error {
	st, key, err := opts.open()
	if err != nil {
		return err
	}
	defer st.Close()

	entry, ok, err := st.Get(cmd.Context(), key)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read storage", err)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if !ok {
		msg := fmt.Sprintf("no value stored under %q", key)
		if err := f.Error("E_NOT_FOUND", msg, nil); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}

	if opts.Format == "json" {
		value := json.RawMessage(entry.Value)
		if !json.Valid(entry.Value) {
			// Show corrupt data as a string rather than breaking the response.
			b, _ := json.Marshal(string(entry.Value))
			value = b
		}
		return f.Success(StoredValue{Key: entry.Key, Revision: entry.Revision, RunID: entry.RunID, Value: value})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "key:      %s\n", entry.Key)
	fmt.Fprintf(w, "revision: %d\n", entry.Revision)
	fmt.Fprintf(w, "run_id:   %s\n", entry.RunID)
	fmt.Fprintf(w, "value:    %s\n", entry.Value)
	return nil
}

func resetStorage(opts *StorageOptions, cmd *cobra.Command) error {
	st, key, err := opts.open()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), key); err != nil {
		return WrapExitError(ExitCommandError, "failed to reset storage", err)
	}
	opts.logger().Info("storage reset", "key", key)

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return f.Success(map[string]string{"key": key, "status": "reset"})
	}
	return f.Success(fmt.Sprintf("✓ reset %q", key))
}
