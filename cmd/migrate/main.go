package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func main() {
	var limit int

	root := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the summaries schema in Postgres",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(db *gorm.DB, logger *zap.Logger) error {
				n, err := database.Migrate(db, migrate.Up, limit, logger)
				if err != nil {
					return err
				}
				log.Printf("✅ Successfully applied %d migration(s)!", n)
				return nil
			})
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations, one by default",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit == 0 {
				limit = 1
			}
			return withDB(func(db *gorm.DB, logger *zap.Logger) error {
				n, err := database.Migrate(db, migrate.Down, limit, logger)
				if err != nil {
					return err
				}
				log.Printf("✅ Rolled back %d migration(s)", n)
				return nil
			})
		},
	}

	for _, c := range []*cobra.Command{up, down} {
		c.Flags().IntVar(&limit, "limit", 0, "maximum number of migrations to run, 0 for all")
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the embedded migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrations, err := database.MigrationSource().FindMigrations()
			if err != nil {
				return err
			}
			for _, m := range migrations {
				fmt.Fprintln(cmd.OutOrStdout(), m.Id)
			}
			return nil
		},
	}

	root.AddCommand(up, down, list)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func withDB(fn func(db *gorm.DB, logger *zap.Logger) error) error {
	cfg, err := config.LoadStore()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.ConnectTimeout+5*time.Second)
	defer cancel()

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(db, logger)

	return fn(db, logger)
}
