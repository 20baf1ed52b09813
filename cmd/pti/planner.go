package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"pti/internal/bootstrap"
	plannerdto "pti/internal/modules/planner/dto"
	"pti/internal/platform/config"
	"pti/internal/ui/theme"
)

func newDomainCmd(opts *rootOptions) *cobra.Command {
	domain := &cobra.Command{Use: "domain", Short: "Manage domains"}

	var name, color string
	add := &cobra.Command{
		Use:   "add --name <name>",
		Short: "Create a domain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("name", name); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.PlannerCLI.AddDomain(ctx, plannerdto.CreateDomainInput{UserID: userID, Name: name, Color: color})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "domain created: %s (%s)\n", theme.Domain(out.Name, out.Color), out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&name, "name", "", "domain name")
	add.Flags().StringVar(&color, "color", "", "display color, e.g. #a6e3a1")

	list := &cobra.Command{
		Use:   "list",
		Short: "List domains with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				domains, err := app.PlannerCLI.Domains(ctx, userID)
				if err != nil {
					return err
				}
				if len(domains) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no domains")
					return nil
				}
				for _, d := range domains {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s pending=%s\n", d.ID, theme.Domain(d.Name, d.Color), theme.ProgressBar(d.Progress, 20), theme.Hours(d.TotalPending))
				}
				return nil
			})
		},
	}

	var showID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show a domain with its targets and tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", showID); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				d, err := app.PlannerCLI.Domain(ctx, userID, showID)
				if err != nil {
					return err
				}
				printDomain(cmd.OutOrStdout(), d)
				return nil
			})
		},
	}
	show.Flags().StringVar(&showID, "id", "", "domain id")

	var editID, editName, editColor string
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Rename or recolor a domain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", editID); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.PlannerCLI.EditDomain(ctx, plannerdto.UpdateDomainInput{UserID: userID, DomainID: editID, Name: editName, Color: editColor})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "domain updated: %s (%s)\n", theme.Domain(out.Name, out.Color), out.ID)
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "domain id")
	edit.Flags().StringVar(&editName, "name", "", "new name (unchanged when empty)")
	edit.Flags().StringVar(&editColor, "color", "", "new color (unchanged when empty)")

	var rmID string
	rm := &cobra.Command{
		Use:   "rm --id <id>",
		Short: "Delete a domain with its targets and tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", rmID); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				if err := app.PlannerCLI.RemoveDomain(ctx, userID, rmID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "domain removed: %s\n", rmID)
				return nil
			})
		},
	}
	rm.Flags().StringVar(&rmID, "id", "", "domain id")

	var recomputeID string
	recompute := &cobra.Command{
		Use:   "recompute --id <id>",
		Short: "Recompute stored totals for a domain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", recomputeID); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				d, err := app.PlannerCLI.Recompute(ctx, userID, recomputeID)
				if err != nil {
					return err
				}
				printDomain(cmd.OutOrStdout(), d)
				return nil
			})
		},
	}
	recompute.Flags().StringVar(&recomputeID, "id", "", "domain id")

	domain.AddCommand(add, list, show, edit, rm, recompute)
	return domain
}

func newTargetCmd(opts *rootOptions) *cobra.Command {
	target := &cobra.Command{Use: "target", Short: "Manage targets"}

	var domainID, name, deadline string
	add := &cobra.Command{
		Use:   "add --domain-id <id> --name <name> --deadline <date>",
		Short: "Add a target to a domain",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("domain-id", domainID); err != nil {
				return err
			}
			if err := requireFlag("name", name); err != nil {
				return err
			}
			if err := requireFlag("deadline", deadline); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.PlannerCLI.AddTarget(ctx, plannerdto.AddTargetInput{UserID: userID, DomainID: domainID, Name: name, Deadline: deadline})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target created: %s (%s)\n", out.Name, out.ID)
				return nil
			})
		},
	}
	add.Flags().StringVar(&domainID, "domain-id", "", "domain id")
	add.Flags().StringVar(&name, "name", "", "target name")
	add.Flags().StringVar(&deadline, "deadline", "", "deadline (YYYY-MM-DD)")

	target.AddCommand(add)
	return target
}

func newTaskCmd(opts *rootOptions) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Manage tasks"}

	var targetID, name string
	var estimate float64
	add := &cobra.Command{
		Use:   "add --target-id <id> --name <name> --estimate <hours>",
		Short: "Add a task to a target",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("target-id", targetID); err != nil {
				return err
			}
			if err := requireFlag("name", name); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				out, err := app.PlannerCLI.AddTask(ctx, plannerdto.AddTaskInput{UserID: userID, TargetID: targetID, Name: name, EstimatedTime: estimate})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task created: %s (%s) estimate=%s\n", out.Name, out.ID, theme.Hours(out.EstimatedTime))
				return nil
			})
		},
	}
	add.Flags().StringVar(&targetID, "target-id", "", "target id")
	add.Flags().StringVar(&name, "name", "", "task name")
	add.Flags().Float64Var(&estimate, "estimate", 0, "estimated hours")

	var editID, editName string
	var editEstimate float64
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Rename a task or change its estimate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", editID); err != nil {
				return err
			}
			input := plannerdto.EditTaskInput{TaskID: editID}
			if cmd.Flags().Changed("name") {
				input.Name = &editName
			}
			if cmd.Flags().Changed("estimate") {
				input.EstimatedTime = &editEstimate
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				input.UserID = userID
				out, err := app.PlannerCLI.EditTask(ctx, input)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task updated: %s (%s) estimate=%s\n", out.Name, out.ID, theme.Hours(out.EstimatedTime))
				return nil
			})
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "task id")
	edit.Flags().StringVar(&editName, "name", "", "new name")
	edit.Flags().Float64Var(&editEstimate, "estimate", 0, "new estimated hours")

	var rmID string
	rm := &cobra.Command{
		Use:   "rm --id <id>",
		Short: "Delete a task",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", rmID); err != nil {
				return err
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				if err := app.PlannerCLI.RemoveTask(ctx, plannerdto.DeleteTaskInput{UserID: userID, TaskID: rmID}); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task removed: %s\n", rmID)
				return nil
			})
		},
	}
	rm.Flags().StringVar(&rmID, "id", "", "task id")

	var completeID string
	var hours float64
	complete := &cobra.Command{
		Use:   "complete --id <id>",
		Short: "Mark a task completed and log it as an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireFlag("id", completeID); err != nil {
				return err
			}
			input := plannerdto.CompleteTaskInput{TaskID: completeID}
			if cmd.Flags().Changed("hours") {
				input.CompletedTime = &hours
			}
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				input.UserID = userID
				out, err := app.PlannerCLI.CompleteTask(ctx, input)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "task completed: %s spent=%s\n", out.Task.Name, theme.Hours(out.Task.CompletedTime))
				_, _ = fmt.Fprintf(w, "%s %s pending=%s\n", theme.Domain(out.Domain.Name, out.Domain.Color), theme.ProgressBar(out.Domain.Progress, 20), theme.Hours(out.Domain.TotalPending))
				if !out.ActivityLogged {
					_, _ = fmt.Fprintln(w, theme.Hot.Render("warning: completion saved but the activity log entry failed"))
				}
				return nil
			})
		},
	}
	complete.Flags().StringVar(&completeID, "id", "", "task id")
	complete.Flags().Float64Var(&hours, "hours", 0, "hours actually spent (defaults to the estimate)")

	task.AddCommand(add, edit, rm, complete)
	return task
}

func printDomain(w io.Writer, d plannerdto.DomainOutput) {
	_, _ = fmt.Fprintf(w, "%s (%s)\n", theme.Domain(d.Name, d.Color), d.ID)
	_, _ = fmt.Fprintf(w, "  %s estimated=%s completed=%s pending=%s\n", theme.ProgressBar(d.Progress, 20), theme.Hours(d.TotalEstimated), theme.Hours(d.TotalCompleted), theme.Hours(d.TotalPending))
	for _, t := range d.Targets {
		deadline := ""
		if t.Deadline != "" {
			deadline = theme.Muted.Render(" due " + t.Deadline)
		}
		_, _ = fmt.Fprintf(w, "  %s (%s)%s\n", theme.Title.Render(t.Name), t.ID, deadline)
		_, _ = fmt.Fprintf(w, "    %s %s/%s\n", theme.ProgressBar(t.Progress, 16), theme.Hours(t.TotalCompleted), theme.Hours(t.TotalEstimated))
		for _, task := range t.Tasks {
			mark := "[ ]"
			if task.Completed {
				mark = theme.Good.Render("[x]")
			}
			_, _ = fmt.Fprintf(w, "    %s %s (%s) %s\n", mark, task.Name, task.ID, theme.Muted.Render(theme.Hours(task.EstimatedTime)))
		}
	}
}
