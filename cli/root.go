package cli

import (
	"fmt"
	"os"

	"bimber/config"
	"bimber/services/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "bimber",
	Short: "Hotel discovery and room booking API",
	Long: `bimber serves the hotel booking HTTP API.

Without a subcommand it behaves like "bimber serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(config.LoadEnv)

	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// Execute chạy command gốc, thoát với mã 1 khi lỗi
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig đọc cấu hình và tạo logger, flag --log-level ghi đè LOG_LEVEL
func loadConfig(cmd *cobra.Command) (*config.Config, *logger.ZapLogger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	log, err := logger.New(logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}
