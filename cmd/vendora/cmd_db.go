package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"vendora/config"
	"vendora/database/indexes"
	"vendora/database/seeders"
	"vendora/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// vendora db:index
var dbIndexCmd = &cobra.Command{
	Use:   "db:index",
	Short: "Create the MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Println("Ensuring indexes…")
		if err := indexes.EnsureAll(ctx, database.DB()); err != nil {
			return err
		}
		fmt.Println("Indexes are in place.")
		return database.Disconnect(ctx)
	},
}

// vendora db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		fmt.Println("Running seeders…")
		if err := seeders.RunAll(ctx, database.DB()); err != nil {
			return err
		}
		return database.Disconnect(ctx)
	},
}
