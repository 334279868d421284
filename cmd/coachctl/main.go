package main

import (
	"fmt"
	"os"

	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/spf13/cobra"
)

var (
	dbFlag  string
	rootCmd = &cobra.Command{
		Use:   "coachctl",
		Short: "Administer the coachboard database",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&dbFlag, "db", "d", envOr("COACHBOARD_DB_PATH", "coachboard.db"), "SQLite database path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openDB opens path and applies pending migrations.
func openDB(path string) (*sqlite.DB, error) {
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
