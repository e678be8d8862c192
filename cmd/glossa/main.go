package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"glossa/internal/config"
	"glossa/internal/generation"
	"glossa/internal/logging"
	"glossa/internal/store"
)

var (
	// Global flags
	verbose    bool
	apiKey     string
	configPath string
	timeout    time.Duration

	// Logger
	logger *zap.Logger

	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glossa",
	Short: "glossa - constructed language builder",
	Long: `glossa builds constructed languages: pick a phoneme inventory from
the IPA catalog, describe the aesthetic you want, and generate a
description, grammar rules, and a starter vocabulary. Grow the lexicon,
translate text, and ask a language assistant questions, then save,
export, or share the result.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = filepath.Join(config.DefaultDataDir(), "config.yaml")
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiKey != "" {
			cfg.LLM.APIKey = apiKey
		}
		if timeout > 0 {
			cfg.LLM.Timeout = timeout.String()
		}

		if err := logging.Initialize(config.DefaultDataDir(), verbose || cfg.Logging.Debug, cfg.Logging.Level); err != nil {
			fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
		}

		// Skip zap init for interactive mode (it has its own UI)
		if cmd.Use == "glossa" && cmd.CalledAs() == "glossa" {
			return nil
		}
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive builder
		return runInteractive()
	},
}

// logInfo and logError guard the CLI logger, which interactive mode
// leaves nil.
func logInfo(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Info(msg, fields...)
	}
}

func logError(msg string, fields ...zap.Field) {
	if logger != nil {
		logger.Error(msg, fields...)
	}
}

// openStore opens the configured SQLite collection.
func openStore() (store.Store, error) {
	return store.NewSQLiteStore(cfg.Storage.DatabasePath)
}

// newService builds the generation service from the loaded config.
func newService() *generation.Service {
	gc := generation.DefaultGeminiConfig(cfg.LLM.APIKey)
	if cfg.LLM.Model != "" {
		gc.Model = cfg.LLM.Model
	}
	if cfg.LLM.BaseURL != "" {
		gc.BaseURL = cfg.LLM.BaseURL
	}
	gc.Timeout = cfg.RequestTimeout()
	return generation.NewService(generation.NewGeminiClientWithConfig(gc))
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Gemini API key (or set GLOSSA_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.glossa/config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "Request timeout (default from config)")

	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(expandCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(phonemesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
