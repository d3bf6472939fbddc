// Package cmd provides the command-line interface for padbind.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rmrfslashbin/padbind/internal/catalog"
	"github.com/rmrfslashbin/padbind/internal/identify"
	"github.com/rmrfslashbin/padbind/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Version information (set by main)
	version   string
	gitCommit string
	buildTime string

	// Global flags
	cfgFile     string
	logLevel    string
	logFormat   string
	logOutput   string
	dataDirFlag string
	catalogPath string
	vendorsPath string
	histPath    string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "padbind",
	Short: "Controller identification and binding profiles",
	Long: `padbind resolves raw gamepad hardware descriptors into canonical
controller identities and manages the binding profiles that map
(state, button) pairs to application actions.

Features:
  - Vendor/product and free-text heuristic identification
  - Layered binding inheritance (all -> review -> concrete state)
  - Profile templates, matching, and legacy-format conversion
  - SQLite-backed detection history`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logger for all commands
		return setupLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information from main.
func SetVersionInfo(ver, commit, build string) {
	version = ver
	gitCommit = commit
	buildTime = build
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.padbind.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")
	rootCmd.PersistentFlags().StringVar(&logOutput, "log-output", "stderr", "log output (stderr or /path/to/file)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "profile data directory (default is $HOME/.padbind)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "controller catalog file (default is built-in)")
	rootCmd.PersistentFlags().StringVar(&vendorsPath, "vendors", "", "vendor/product database file (default is built-in)")
	rootCmd.PersistentFlags().StringVar(&histPath, "history-path", "", "detection history database (default is <data-dir>/history.db)")

	// Bind flags to viper
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log.output", rootCmd.PersistentFlags().Lookup("log-output"))
	viper.BindPFlag("data.dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("catalog.path", rootCmd.PersistentFlags().Lookup("catalog"))
	viper.BindPFlag("vendors.path", rootCmd.PersistentFlags().Lookup("vendors"))
	viper.BindPFlag("history.path", rootCmd.PersistentFlags().Lookup("history-path"))

	// Set environment variable prefix
	viper.SetEnvPrefix("PADBIND")
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".padbind" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".padbind")
	}

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "file", viper.ConfigFileUsed())
	}
}

// dataDir resolves the profile data directory.
func dataDir() (string, error) {
	if dir := viper.GetString("data.dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to find home directory: %w", err)
	}
	return filepath.Join(home, ".padbind"), nil
}

// historyPath resolves the detection history database path.
func historyPath() (string, error) {
	if path := viper.GetString("history.path"); path != "" {
		return path, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// openCatalog loads the controller catalog, preferring a configured
// on-disk document over the built-in one. The catalog is required for
// everything, so failures here end the command.
func openCatalog() (*catalog.Catalog, error) {
	if path := viper.GetString("catalog.path"); path != "" {
		return catalog.Load(path)
	}
	return catalog.LoadBuiltin()
}

// openVendorDB loads the vendor/product database the same way.
func openVendorDB() (*identify.VendorDB, error) {
	if path := viper.GetString("vendors.path"); path != "" {
		return identify.LoadVendorDB(path)
	}
	return identify.LoadBuiltinVendorDB()
}

// openStore opens the profile store over the data directory.
func openStore(cat *catalog.Catalog) (*store.Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, err
	}
	return store.New(dir, cat, slog.Default())
}
