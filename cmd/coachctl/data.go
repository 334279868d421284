package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/domain/store"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbFlag)
			if err != nil {
				return err
			}
			defer db.Close()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "migrated %s\n", dbFlag)
			return nil
		},
	}
	rootCmd.AddCommand(migrateCmd)

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load a JSON dataset (as written by export) keeping record ids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			return runImport(cmd.Context(), dbFlag, f, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(importCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection as JSON to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), dbFlag, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(exportCmd)
}

func runImport(ctx context.Context, dbPath string, r io.Reader, out io.Writer) error {
	var c store.Collections
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return fmt.Errorf("decode dataset: %w", err)
	}
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := sqlite.NewSource(db).Import(ctx, c); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "imported %d weeks, %d students, %d assignments\n",
		len(c.Weeks), len(c.Students), len(c.Assignments))
	return nil
}

func runExport(ctx context.Context, dbPath string, out io.Writer) error {
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	src := sqlite.NewSource(db)
	var c store.Collections
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { c.Weeks, err = src.Weeks(ctx, refdate.Range{}); return })
	g.Go(func() (err error) { c.Memberships, err = src.Memberships(ctx); return })
	g.Go(func() (err error) { c.Students, err = src.Students(ctx); return })
	g.Go(func() (err error) { c.Coaches, err = src.Coaches(ctx); return })
	g.Go(func() (err error) { c.Courses, err = src.Courses(ctx); return })
	g.Go(func() (err error) { c.Assignments, err = src.Assignments(ctx); return })
	g.Go(func() (err error) { c.PrivateCalls, err = src.PrivateCalls(ctx); return })
	g.Go(func() (err error) { c.GroupSessions, err = src.GroupSessions(ctx); return })
	g.Go(func() (err error) { c.GroupAttendees, err = src.GroupAttendees(ctx); return })
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
