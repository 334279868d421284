package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/rpggio/coachboard/internal/domain/dashboard"
	"github.com/rpggio/coachboard/internal/domain/refdate"
	"github.com/rpggio/coachboard/internal/sqlite"
	"github.com/rpggio/coachboard/internal/transport"
	"github.com/spf13/cobra"
)

// filterFlags are passed through as query parameters, so the CLI and the
// HTTP API accept the same values.
var filterFlags = []struct {
	name, usage string
}{
	{"coachless", "hide weeks without a coach (true|false)"},
	{"range", "week start: all, thisWeek, lastWeek, twoWeeksAgo, nextWeek or YYYY-MM-DD"},
	{"one_month_challenge", "hide one-month-challenge weeks (true|false)"},
	{"course", "course record id"},
	{"hold_weeks", "hide hold weeks (true|false)"},
	{"completion", "incompleteOnly, completeOnly or allRecords"},
	{"coach", "coach record id"},
	{"q", "search student name, email or notes"},
}

func init() {
	var weeksBack int
	weeksCmd := &cobra.Command{
		Use:   "weeks",
		Short: "Print the filtered weeks table",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := map[string][]string{}
			for _, f := range filterFlags {
				if cmd.Flags().Changed(f.name) {
					v, _ := cmd.Flags().GetString(f.name)
					q[f.name] = []string{v}
				}
			}
			return runWeeks(cmd.Context(), dbFlag, weeksBack, time.Now, q, cmd.OutOrStdout())
		},
	}
	for _, f := range filterFlags {
		weeksCmd.Flags().String(f.name, "", f.usage)
	}
	weeksCmd.Flags().IntVarP(&weeksBack, "weeks-back", "w", 8, "Sundays of history to load")
	rootCmd.AddCommand(weeksCmd)

	var recent int
	var at string
	datesCmd := &cobra.Command{
		Use:   "dates",
		Short: "Print the reference week-start dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if at != "" {
				t, err := time.Parse(refdate.Layout, at)
				if err != nil {
					return fmt.Errorf("--now: %w", err)
				}
				now = t
			}
			return runDates(now, recent, cmd.OutOrStdout())
		},
	}
	datesCmd.Flags().IntVarP(&recent, "weeks", "n", 4, "number of recent Sundays")
	datesCmd.Flags().StringVar(&at, "now", "", "compute as of this date (YYYY-MM-DD)")
	rootCmd.AddCommand(datesCmd)
}

func runWeeks(ctx context.Context, dbPath string, weeksBack int, now func() time.Time, q map[string][]string, out io.Writer) error {
	db, err := openDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	src := sqlite.NewSource(db)
	svc := dashboard.NewService(src, nil, dashboard.Config{WeeksBack: weeksBack, Now: now}, nil, nil)
	if err := svc.Refresh(ctx); err != nil {
		return err
	}

	st, err := transport.ParseState(q, svc.DefaultState(), svc.ReferenceDates(0))
	if err != nil {
		return err
	}
	res, err := svc.Weeks(ctx, st)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tWEEK\tSTARTS\tLEVEL\tSTUDENT\tCOACH\tCOURSE\tDONE\tA/PC/GS")
	for _, r := range res.Rows {
		student, coach, course := "Unknown", "Unknown", "Unknown"
		if r.Student != nil {
			student = r.Student.FullName
		}
		if r.Coach != nil {
			coach = r.Coach.User.Name
		}
		if r.Course != nil {
			course = r.Course.Name
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d/%d/%d\n",
			r.Week.RecordID, r.Week.WeekName, r.Week.WeekStarts, r.Week.Level,
			student, coach, course, strconv.FormatBool(r.Week.RecordsComplete),
			r.Assignments, r.PrivateCalls, r.GroupSessions)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%d weeks\n", res.Total)
	return nil
}

func runDates(now time.Time, weeks int, out io.Writer) error {
	d := refdate.Compute(now, weeks)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "thisWeek\t%s\n", d.ThisWeek)
	_, _ = fmt.Fprintf(tw, "lastWeek\t%s\n", d.LastWeek)
	_, _ = fmt.Fprintf(tw, "twoWeeksAgo\t%s\n", d.TwoWeeksAgo)
	_, _ = fmt.Fprintf(tw, "nextWeek\t%s\n", d.NextWeek)
	for i, s := range d.Recent {
		_, _ = fmt.Fprintf(tw, "recent[%d]\t%s\n", i, s)
	}
	return tw.Flush()
}
