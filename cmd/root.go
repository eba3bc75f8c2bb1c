package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theirongolddev/salestable/internal/config"
	"github.com/theirongolddev/salestable/internal/logging"
	"github.com/theirongolddev/salestable/internal/model"
	"github.com/theirongolddev/salestable/internal/source"
)

var (
	flagData    string
	flagQuiet   bool
	flagLogFile string
	flagDebug   bool
)

var rootCmd = &cobra.Command{
	Use:   "salestable",
	Short: "Hierarchical sales allocation table",
	Long:  "Allocate percentages or absolute values to sales categories and watch subtotals follow.",
	RunE:  runTUI,

	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "Data file (.json, .yaml, .db); default from config, empty means sample data")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
}

// loadConfigOrDefault loads config, returning defaults on error.
func loadConfigOrDefault(cmd *cobra.Command) config.Config {
	cfg, err := config.Load()
	if err != nil {
		if !flagQuiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "  Config unreadable, using defaults: %v\n", err)
		}
		return config.DefaultConfig()
	}
	return cfg
}

// dataPinned reports whether --data or the env var chose the data file, so
// config changes made during setup do not override it.
func dataPinned() bool {
	return flagData != "" || os.Getenv(config.DataFileEnv) != ""
}

// dataFile resolves the data file: --data, then the env var, then config.
func dataFile(cfg config.Config) string {
	if flagData != "" {
		return flagData
	}
	return config.DataFile(cfg)
}

// newLogger builds the logger from flags, falling back to the config file.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	path := flagLogFile
	if path == "" {
		path = cfg.Log.File
	}
	return logging.New(path, flagDebug || cfg.Log.Debug)
}

// loadTree is the shared data loading path used by all commands.
func loadTree(cmd *cobra.Command, path string, logger *zap.Logger) (model.Tree, error) {
	if !flagQuiet && path != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "  Loading %s...\n", path)
	}

	tree, err := source.Load(path)
	if err != nil {
		logger.Error("loading tree failed", zap.String("file", path), zap.Error(err))
		return nil, err
	}

	logger.Debug("tree loaded", zap.String("file", path), zap.Int("nodes", tree.Len()))
	return tree, nil
}
