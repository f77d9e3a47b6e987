// Package main provides the entry point for the student profile CLI and HTTP API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/jonathan/student-profile/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath  string
	profileURL  string
	autofillURL string
	timeoutSecs int
	verbose     bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "profile_agent",
	Short: "Student profile wizard and API server",
	Long: `profile_agent collects a student profile in three steps (personal details, education, skills),
can pre-fill the draft from a PDF resume, and submits the finished profile to the profile API.
The serve command runs that API.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = resolveConfig()
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to a JSON config file")
	flags.StringVar(&profileURL, "profile-url", "", "Profile API endpoint (env PROFILE_API_URL)")
	flags.StringVar(&autofillURL, "autofill-url", "", "Resume parsing endpoint (env AUTOFILL_URL)")
	flags.IntVar(&timeoutSecs, "timeout", 0, "HTTP client timeout in seconds")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose output and debug logging")
}

// resolveConfig layers flags over environment over the config file over built-in defaults.
func resolveConfig() (config.Config, error) {
	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		file = *loaded
	}

	flagCfg := config.Config{
		ProfileAPIURL:  profileURL,
		AutofillURL:    autofillURL,
		TimeoutSeconds: timeoutSecs,
	}
	env := config.FromEnv()
	fileLayer := file.MergeWithDefaults(config.Defaults())
	envLayer := env.MergeWithDefaults(fileLayer)
	merged := flagCfg.MergeWithDefaults(envLayer)
	merged.Verbose = verbose || file.Verbose

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if debug {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
