package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/NotMugil/profile-tui/internal/app"
	"github.com/NotMugil/profile-tui/internal/config"
	"github.com/NotMugil/profile-tui/internal/keystore"
	"github.com/NotMugil/profile-tui/internal/logging"
	"github.com/NotMugil/profile-tui/internal/notify"
)

var version = "dev"

var (
	configPath string
	endpoint   string
	debug      bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "profile-tui",
	Short:         "View and edit your profile from the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v := config.New(configPath)
		if err := bindFlags(cmd, v); err != nil {
			return err
		}
		if debug {
			v.Set("log.level", "debug")
		}

		var err error
		cfg, err = config.Load(v)
		if err != nil {
			return err
		}

		logger, err = logging.New(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return err
		}
		logger.Debug("config loaded",
			zap.String("config", v.ConfigFileUsed()),
			zap.String("endpoint", cfg.API.Endpoint))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keystore.New(cfg.Keyring.Service).Delete(); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		logger.Info("token removed", zap.String("service", cfg.Keyring.Service))
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "profile-tui", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "profile API endpoint")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(logoutCmd, versionCmd)
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	if f := cmd.Flags().Lookup("endpoint"); f != nil && f.Changed {
		if err := v.BindPFlag("api.endpoint", f); err != nil {
			return fmt.Errorf("bind endpoint flag: %w", err)
		}
	}
	return nil
}

func runTUI() error {
	zone.NewGlobal()
	defer zone.Close()

	m := app.New(app.Options{
		Config: cfg,
		Keys:   keystore.New(cfg.Keyring.Service),
		Store:  notify.New(),
		Logger: logger,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
