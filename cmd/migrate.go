package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		// InitDB runs migrations as part of opening the database
		db, err := database.InitDB(cmd.Context(), cfg.Database.Path)
		if err != nil {
			return err
		}
		if err := db.Close(); err != nil {
			slog.Error("error closing db", "error", err)
		}

		fmt.Printf("database ready at %s\n", cfg.Database.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
