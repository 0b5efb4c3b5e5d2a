package migrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/infrastructure/config"
	"github.com/bizcompare/bizcompare/internal/infrastructure/database"
	"github.com/bizcompare/bizcompare/internal/infrastructure/migration"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and inspect status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServiceDB(func(db *gorm.DB, log logger.Interface) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return migration.Up(sqlDB, log)
			})
		},
	}
}

func newDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServiceDB(func(db *gorm.DB, log logger.Interface) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return migration.Down(sqlDB, log)
			})
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServiceDB(func(db *gorm.DB, log logger.Interface) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return migration.Status(sqlDB)
			})
		},
	}
}

// withServiceDB loads config, connects with the service credentials
// (migrations need DDL rights the read account lacks), and cleans up.
func withServiceDB(fn func(db *gorm.DB, log logger.Interface) error) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	db, err := database.ConnectService(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect service database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Errorw("failed to close database", "error", err)
		}
	}()

	return fn(db, log)
}
