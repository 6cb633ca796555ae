package main

import (
	"context"

	"github.com/aevon-lab/playstats/internal/core/config"
	"github.com/aevon-lab/playstats/internal/core/storage/sqlstore"
	"github.com/aevon-lab/playstats/internal/logging"
	"github.com/aevon-lab/playstats/internal/stats"
	"github.com/spf13/cobra"
)

var (
	configPath string
	dsnFlag    string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "playstats",
	Short:         "playstats - monthly play counts for a music library",
	Long:          "playstats records track plays in a local journal and reports monthly and yearly play counts with year-over-year deltas.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// config init must work without a valid config.
		if cmd.Annotations["skipConfig"] == "true" {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dsnFlag != "" {
			loaded.Database.DSN = dsnFlag
		}
		cfg = loaded
		logging.Setup(cfg.Logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file (default: $XDG_CONFIG_HOME/playstats/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "db", "", "Override database.dsn")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRecordCmd())
	rootCmd.AddCommand(newMonthCmd())
	rootCmd.AddCommand(newYearCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newRecomputeCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// openManager opens the configured store. Callers must Close it.
func openManager(ctx context.Context) (*stats.Manager, error) {
	m := stats.NewManager(sqlstore.Options{
		Dialect:      cfg.Database.Type,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		AutoMigrate:  cfg.Database.AutoMigrate,
	})
	if err := m.Open(ctx, ""); err != nil {
		return nil, err
	}
	return m, nil
}
