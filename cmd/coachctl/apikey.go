package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/spf13/cobra"
)

func init() {
	apikeyCmd := &cobra.Command{Use: "apikey", Short: "API key operations"}

	var label, token string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an API key and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if label == "" {
				return fmt.Errorf("--label required")
			}
			return runCreateAPIKey(cmd.Context(), dbFlag, label, token, cmd.OutOrStdout())
		},
	}
	createCmd.Flags().StringVarP(&label, "label", "l", "", "Client label (required)")
	createCmd.Flags().StringVarP(&token, "token", "t", "", "Token to store (generated when empty)")
	_ = createCmd.MarkFlagRequired("label")
	apikeyCmd.AddCommand(createCmd)

	rootCmd.AddCommand(apikeyCmd)
}

// runCreateAPIKey stores the hash of token and prints the token once.
func runCreateAPIKey(ctx context.Context, dbPath, label, token string, out io.Writer) error {
	if token == "" {
		token = "cb_" + uuid.NewString()
	}
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.NewAPIKeyRepository(db).Create(ctx, token, label); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, token)
	return nil
}
