package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/shopapp/config"
	"github.com/shashiranjanraj/shopapp/database/seeders"
	"github.com/shashiranjanraj/shopapp/internal/kernel"
	"github.com/shashiranjanraj/shopapp/pkg/docstore/sqlstore"
	"github.com/shashiranjanraj/shopapp/pkg/migration"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/shopapp/database/migrations"
)

// bootSQL loads config and opens the SQL document store. Migrations only
// apply to the SQL drivers.
func bootSQL() (*sqlstore.Store, error) {
	if err := config.Load(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	driver := config.StoreDriver()
	switch driver {
	case "mongo", "memory":
		return nil, fmt.Errorf("migrations need a SQL store driver, STORE_DRIVER is %q", driver)
	}
	return sqlstore.Open(driver, config.DatabaseDSN())
}

// shop migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootSQL()
		if err != nil {
			return err
		}
		defer s.Close(context.Background())
		fmt.Println("Running migrations…")
		return migration.New(s.DB(), os.Stdout).Run()
	},
}

// shop migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootSQL()
		if err != nil {
			return err
		}
		defer s.Close(context.Background())
		fmt.Println("Rolling back last batch…")
		return migration.New(s.DB(), os.Stdout).Rollback()
	},
}

// shop migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootSQL()
		if err != nil {
			return err
		}
		defer s.Close(context.Background())
		_, err = migration.New(s.DB(), os.Stdout).Status()
		return err
	},
}

// shop seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the configured store with a sample catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		app, err := kernel.Boot(ctx)
		if err != nil {
			return err
		}
		defer app.Close(context.Background())

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, app.Catalog, os.Stdout)
	},
}
