package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/maloquacious/arrowtower/internal/config"
	"github.com/maloquacious/arrowtower/internal/logger"
	"github.com/maloquacious/arrowtower/internal/model"
	"github.com/maloquacious/arrowtower/internal/store"
	"github.com/maloquacious/arrowtower/internal/store/sqlite"
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

var (
	version       = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}
	schemaVersion = "0.1"
)

var (
	configFile string
	dbPath     string
	debug      bool
	seed       bool
	adminAddr  string
	adminType  string

	cfg   *config.Config
	enums *model.Enums
	log   logger.Logger = logger.Default
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Config is loaded only for commands
// that touch the datastore.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "arrowtower",
		Short:         "Check-in datastore initializer",
		Long:          "With no subcommand, creates and seeds the datastore (same as `db create --seed`).",
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed = true
			return runDBCreate(cmd, args)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./arrowtower.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", store.GetDBPath(store.GetStorePath()), "database file, or a directory holding "+store.DefaultDBFile)
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// db command group
	dbCmd := &cobra.Command{
		Use:               "db",
		Short:             "Database management commands",
		PersistentPreRunE: loadConfig,
	}

	dbCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create and initialize the datastore",
		RunE:  runDBCreate,
	}
	dbCreateCmd.Flags().BoolVar(&seed, "seed", false, "insert the baseline route and POI when no routes exist (default from store.seed)")

	dbUpgradeCmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Re-apply the schema and record the current schema version",
		RunE:  runDBUpgrade,
	}
	dbVerifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema integrity and version",
		RunE:  runDBVerify,
	}
	dbResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all rows, keeping the schema",
		RunE:  runDBReset,
	}
	dbAdminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Create the admin user or move it to a new wallet address",
		RunE:  runDBAdmin,
	}
	dbAdminCmd.Flags().StringVar(&adminAddr, "wallet", "", "admin wallet address")
	dbAdminCmd.Flags().StringVar(&adminType, "wallet-type", string(model.WalletPolkaVM), "admin wallet type")
	_ = dbAdminCmd.MarkFlagRequired("wallet")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "arrowtower %s (schema %s)\n", version.String(), schemaVersion)
		},
	}

	dbCmd.AddCommand(dbCreateCmd, dbUpgradeCmd, dbVerifyCmd, dbResetCmd, dbAdminCmd)
	rootCmd.AddCommand(dbCmd, versionCmd)
	return rootCmd
}

// loadConfig reads the config file; flags set on the command line win.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfg, err = config.Load(configFile); err != nil {
		return err
	}
	if !cmd.Flags().Changed("db") {
		dbPath = cfg.Store.Path
	}
	if !cmd.Flags().Changed("debug") {
		debug = cfg.Debug
	}
	if cmd.Name() == "create" && !cmd.Flags().Changed("seed") {
		seed = cfg.Store.Seed
	}
	dbPath = store.ResolveDBPath(dbPath)
	log = logger.New(cmd.ErrOrStderr(), debug)

	if enums, err = cfg.BuildEnums(); err != nil {
		return err
	}
	return nil
}

// withStore opens the store, runs fn and always closes it.
func withStore(ctx context.Context, fn func(s *sqlite.SQLiteStore) error) (err error) {
	s := sqlite.New(dbPath, schemaVersion, sqlite.WithEnums(enums), sqlite.WithLogger(log))
	if err := s.Open(ctx); err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close database: %w", cerr)
		}
	}()
	return fn(s)
}

// requireStore fails unless the database file already exists.
func requireStore() error {
	ok, err := store.CheckExists(dbPath)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("datastore %s does not exist; run `arrowtower db create` first", dbPath)
	}
	return nil
}

// --- DB commands ---

func runDBCreate(cmd *cobra.Command, args []string) error {
	err := withStore(cmd.Context(), func(s *sqlite.SQLiteStore) error {
		return s.InitSchema(cmd.Context(), store.InitOptions{Version: schemaVersion, Seed: seed})
	})
	if err != nil {
		return fmt.Errorf("db create: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "SQLite database '%s' created successfully\n", dbPath)
	return nil
}

func runDBUpgrade(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}
	return withStore(cmd.Context(), func(s *sqlite.SQLiteStore) error {
		before, err := s.CheckState(cmd.Context())
		if err != nil {
			return err
		}
		if before == store.StateReady {
			log.Info("schema already at version %s", schemaVersion)
		}
		if err := s.InitSchema(cmd.Context(), store.InitOptions{Version: schemaVersion}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "schema at version %s\n", schemaVersion)
		return nil
	})
}

func runDBVerify(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}
	return withStore(cmd.Context(), func(s *sqlite.SQLiteStore) error {
		report, err := s.Verify(cmd.Context())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
		if !report.OK {
			return errors.New("schema verification failed")
		}
		return nil
	})
}

func runDBReset(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}
	return withStore(cmd.Context(), func(s *sqlite.SQLiteStore) error {
		if err := s.Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "all rows deleted")
		return nil
	})
}

func runDBAdmin(cmd *cobra.Command, args []string) error {
	if err := requireStore(); err != nil {
		return err
	}
	return withStore(cmd.Context(), func(s *sqlite.SQLiteStore) error {
		id, err := s.EnsureAdmin(cmd.Context(), adminAddr, model.WalletType(adminType))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin user %s\n", id)
		return nil
	})
}
