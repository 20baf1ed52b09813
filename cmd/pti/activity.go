package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pti/internal/bootstrap"
	activitydto "pti/internal/modules/activity/dto"
	timespentdto "pti/internal/modules/timespent/dto"
	"pti/internal/platform/config"
	"pti/internal/ui/theme"
)

func newActivityCmd(opts *rootOptions) *cobra.Command {
	activity := &cobra.Command{Use: "activity", Short: "Log and browse activities"}

	var name, categoryID, start, end, date, notes string
	add := &cobra.Command{
		Use:   "add --name <name> --start <time> --end <time>",
		Short: "Log a finished activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, cfg config.Config, userID string) error {
				loc, err := cfg.Location()
				if err != nil {
					return err
				}
				input := activitydto.AddActivityInput{UserID: userID, Name: name, CategoryID: categoryID, Notes: notes}
				if input.StartTime, err = parseTime(start, loc); err != nil {
					return err
				}
				if input.EndTime, err = parseTime(end, loc); err != nil {
					return err
				}
				if input.Date, err = parseTime(date, loc); err != nil {
					return err
				}
				out, err := app.ActivityCLI.Add(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "activity logged: %s (%s) %s\n", out.Name, out.ID, theme.Hours(out.DurationHours))
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "activity name")
	add.Flags().StringVar(&categoryID, "category", "", "category label")
	add.Flags().StringVar(&start, "start", "", "start time (YYYY-MM-DD HH:MM)")
	add.Flags().StringVar(&end, "end", "", "end time (YYYY-MM-DD HH:MM)")
	add.Flags().StringVar(&date, "date", "", "calendar date (defaults to start)")
	add.Flags().StringVar(&notes, "notes", "", "notes")

	var cursor string
	var pageSize int
	list := &cobra.Command{
		Use:   "list",
		Short: "List activities newest first, grouped by day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				page, err := app.ActivityCLI.List(ctx, activitydto.ListActivitiesInput{UserID: userID, Cursor: cursor, PageSize: pageSize})
				if err != nil {
					return err
				}
				printPage(cmd.OutOrStdout(), page)
				return nil
			})
		},
	}
	list.Flags().StringVar(&cursor, "cursor", "", "cursor printed by the previous page")
	list.Flags().IntVar(&pageSize, "page-size", 0, "activities per page (defaults to config)")

	var timerName, timerCategory, timerNotes string
	startCmd := &cobra.Command{
		Use:   "start --name <name>",
		Short: "Start a live timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.ActivityCLI.Start(ctx, activitydto.StartTimerInput{UserID: userID, Name: timerName, CategoryID: timerCategory, Notes: timerNotes})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "timer started: %s at=%s\n", out.Name, out.StartedAt.Format("2006-01-02T15:04:05Z07:00"))
				return nil
			})
		},
	}
	startCmd.Flags().StringVar(&timerName, "name", "", "activity name")
	startCmd.Flags().StringVar(&timerCategory, "category", "", "category label")
	startCmd.Flags().StringVar(&timerNotes, "notes", "", "notes")

	stop := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer and log it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.ActivityCLI.Stop(ctx, userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "activity logged: %s (%s) %s\n", out.Name, out.ID, theme.Hours(out.DurationHours))
				return nil
			})
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the running timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.ActivityCLI.Status(ctx, userID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "running: %s since=%s elapsed=%s\n", out.Name, out.StartedAt.Format("15:04"), theme.Hours(out.ElapsedHours))
				return nil
			})
		},
	}

	activity.AddCommand(add, list, startCmd, stop, status)
	return activity
}

func newCategoryCmd(opts *rootOptions) *cobra.Command {
	category := &cobra.Command{Use: "category", Short: "Manage activity categories"}

	var name string
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("name", name); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.ActivityCLI.AddCategory(ctx, activitydto.AddCategoryInput{UserID: userID, Name: name})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category created: %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "category name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				categories, err := app.ActivityCLI.Categories(ctx, userID)
				if err != nil {
					return err
				}
				if len(categories) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no categories")
					return nil
				}
				for _, c := range categories {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID, c.Name)
				}
				return nil
			})
		},
	}

	category.AddCommand(add, list)
	return category
}

func newReportCmd(opts *rootOptions) *cobra.Command {
	var refresh, export bool
	report := &cobra.Command{
		Use:   "report",
		Short: "Hours per category over the trailing window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				input := activitydto.ReportInput{UserID: userID, Refresh: refresh}
				w := cmd.OutOrStdout()
				if export {
					out, err := app.ActivityCLI.Export(ctx, input)
					if err != nil {
						return err
					}
					printReport(w, out.Report)
					if out.Path != "" {
						_, _ = fmt.Fprintf(w, "exported: %s\n", out.Path)
					}
					return nil
				}
				out, err := app.ActivityCLI.Report(ctx, input)
				if err != nil {
					return err
				}
				printReport(w, out)
				return nil
			})
		},
	}
	report.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached report")
	report.Flags().BoolVar(&export, "export", false, "write the report to a markdown note")
	return report
}

func newTimeSpentCmd(opts *rootOptions) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "timespent",
		Short: "Hours completed today, since yesterday, this week and this month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.TimeSpentCLI.Snapshot(ctx, timespentdto.SnapshotInput{UserID: userID, Refresh: refresh})
				if err != nil {
					return err
				}
				printSnapshot(cmd.OutOrStdout(), out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute instead of using today's cached snapshot")
	return cmd
}

func printPage(w io.Writer, page activitydto.ActivityPage) {
	if len(page.Activities) == 0 {
		_, _ = fmt.Fprintln(w, "no activities")
		return
	}
	for _, day := range page.Days {
		_, _ = fmt.Fprintf(w, "%s %s\n", theme.Title.Render(day.Date), theme.Muted.Render(theme.Hours(day.TotalHours)))
		for _, a := range day.Activities {
			category := ""
			if a.CategoryID != "" {
				category = theme.Muted.Render(" [" + a.CategoryID + "]")
			}
			span := ""
			if a.StartTime != nil && a.EndTime != nil {
				span = a.StartTime.Format("15:04") + "-" + a.EndTime.Format("15:04") + " "
			}
			_, _ = fmt.Fprintf(w, "  %s%s%s %s\n", span, a.Name, category, theme.Hours(a.DurationHours))
			if notes := strings.TrimSpace(a.Notes); notes != "" {
				_, _ = fmt.Fprintf(w, "    %s\n", theme.Muted.Render(notes))
			}
		}
	}
	if page.NextCursor != "" {
		_, _ = fmt.Fprintf(w, "next: --cursor %s\n", page.NextCursor)
	}
}

func printReport(w io.Writer, r activitydto.ReportOutput) {
	if r.Empty {
		_, _ = fmt.Fprintf(w, "no activity in the last %d days\n", r.WindowDays)
		return
	}
	source := "computed"
	if r.FromCache {
		source = "cached"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", theme.Title.Render(fmt.Sprintf("Last %d days", r.WindowDays)), theme.Muted.Render(source))
	var total float64
	for _, label := range r.Categories {
		total += r.Hours[label]
	}
	for _, label := range r.Categories {
		hours := r.Hours[label]
		share := 0
		if total > 0 {
			share = int(hours / total * 100)
		}
		_, _ = fmt.Fprintf(w, "  %-20s %8s %s\n", label, theme.Hours(hours), theme.ProgressBar(share, 20))
	}
}

func printSnapshot(w io.Writer, s timespentdto.SnapshotOutput) {
	source := "computed"
	if s.FromCache {
		source = "cached"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", theme.Title.Render("Time spent "+s.ComputedOn), theme.Muted.Render(source))
	for _, b := range s.Buckets {
		share := 0
		if b.Capacity > 0 {
			share = int(b.Hours / b.Capacity * 100)
		}
		_, _ = fmt.Fprintf(w, "  %-10s %8s of %-8s unused=%s %s\n", b.Label, theme.Hours(b.Hours), theme.Hours(b.Capacity), theme.Hours(b.Unused), theme.ProgressBar(share, 20))
	}
	if s.Skipped > 0 {
		_, _ = fmt.Fprintln(w, theme.Hot.Render(fmt.Sprintf("skipped %d completed tasks with a missing date or unusable hours", s.Skipped)))
	}
}
