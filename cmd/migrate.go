package cmd

import (
	"fmt"

	"github.com/jmehdipour/email-tracker/internal/config"
	"github.com/jmehdipour/email-tracker/internal/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tracking table and its (customer_id, tenant_id) unique key",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if cfg.Store.Driver != config.DriverMySQL {
			fmt.Fprintf(cmd.OutOrStdout(), ">> store driver %q needs no migration\n", cfg.Store.Driver)
			return nil
		}

		sqlDB, err := db.NewMySQLConnection(cmd.Context(), cfg.MySQL.DSN, cfg.MySQL.MySQLOpts())
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer sqlDB.Close()

		applied, err := db.Migrate(cmd.Context(), sqlDB, cfg.MySQL.Table)
		if err != nil {
			return err
		}

		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), ">> applied %s\n", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), ">> Migration complete (table %s)\n", cfg.MySQL.Table)
		return nil
	},
}
