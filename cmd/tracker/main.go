// Command tracker is a stopwatch for logging time against tasks. It shares
// the tally database: pick a project and task, run the clock, then review
// and save the entry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joe5h/tally/internal/config"
	"github.com/joe5h/tally/internal/storage"
	"github.com/joe5h/tally/internal/tracker"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "tracker",
		Short: "Interactive time tracking stopwatch",
		RunE:  runTracker,
	}
)

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/tally/config.yaml)")
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runTracker(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	ctx := cmd.Context()

	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = filepath.Join(config.DataDir(), "tally.db")
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return tracker.Run(ctx, store)
}

func loadConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "tally"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TALLY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}
