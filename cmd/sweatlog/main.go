package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"sweatlog/cmd/sweatlog/tui"
	"sweatlog/internal/api"
	"sweatlog/internal/auth"
	"sweatlog/internal/config"
	"sweatlog/internal/store"
)

var (
	// Global flags
	verbose    bool
	apiURL     string
	loginURL   string
	configPath string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command. Running it without a subcommand
// launches the interactive interface.
var rootCmd = &cobra.Command{
	Use:   "sweatlog",
	Short: "sweatlog - terminal workout tracker",
	Long: `sweatlog is a terminal client for the workout tracking service.

It lists, creates, edits and deletes workout logs and the workout type
categories they reference. Sign-in is handled by the service itself: when the
identity check is rejected, sweatlog opens the hosted login page in your
browser.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive interface owns the terminal; keep the logger
		// quiet there unless asked for.
		if cmd.CalledAs() == "sweatlog" && !verbose {
			logger = zap.NewNop()
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
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
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := api.New(cfg.APIBaseURL, logger)
	redirect := &auth.BrowserRedirector{URL: cfg.LoginURL, Log: logger}
	session := auth.NewSession(client, redirect, logger)
	st := store.New(client, logger)

	p := tea.NewProgram(tui.New(cfg, client, session, st, logger), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// loadConfig resolves the configuration chain: defaults, file, environment,
// then explicit flags.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if loginURL != "" {
		cfg.LoginURL = loginURL
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "base URL of the workout service API")
	rootCmd.PersistentFlags().StringVar(&loginURL, "login-url", "", "URL of the hosted login page")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file (default ~/.sweatlog.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func main() {
	// .env is optional; absence is the normal case outside development.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
