package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pti/internal/bootstrap"
	"pti/internal/platform/config"
	"pti/internal/platform/metrics"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	dataDir    string
	configPath string
	// textfile is set once config loads so the post-run hook can flush metrics.
	textfile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "pti",
		Short:         "Personal time investment tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			if opts.textfile == "" {
				return nil
			}
			return metrics.WriteTextfile(opts.textfile)
		},
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "data directory (env PTI_DATA_DIR)")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (defaults to <data-dir>/config.yaml)")

	root.AddCommand(newLoginCmd(opts), newLogoutCmd(opts), newWhoAmICmd(opts))
	root.AddCommand(newDomainCmd(opts), newTargetCmd(opts), newTaskCmd(opts))
	root.AddCommand(newActivityCmd(opts), newCategoryCmd(opts), newReportCmd(opts))
	root.AddCommand(newTimeSpentCmd(opts), newCacheCmd(opts))
	return root
}

func defaultDataDir() string {
	if dir := strings.TrimSpace(os.Getenv("PTI_DATA_DIR")); dir != "" {
		return dir
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return ".pti"
	}
	return filepath.Join(base, "pti")
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, config.Config, error) {
	cfg, err := config.New(opts.dataDir, opts.configPath)
	if err != nil {
		return nil, config.Config{}, err
	}
	opts.textfile = cfg.Metrics.Textfile
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Logger: log.New(os.Stderr, "[pti] ", log.LstdFlags),
		Prompt: os.Stderr,
	})
	if err != nil {
		return nil, config.Config{}, err
	}
	return app, cfg, nil
}

// withUser loads the app, resolves the signed-in user and runs fn.
func withUser(cmd *cobra.Command, opts *rootOptions, fn func(ctx context.Context, app *bootstrap.App, cfg config.Config, userID string) error) error {
	ctx := cmd.Context()
	app, cfg, err := loadApp(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	userID, err := app.IdentityCLI.UserID(ctx)
	if err != nil {
		return fmt.Errorf("%w (run `pti login` or set PTI_USER_ID)", err)
	}
	return fn(ctx, app, cfg, userID)
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in with Google",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, _, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			p, err := app.IdentityCLI.Login(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", p.Label, p.UserID)
			return nil
		},
	}
}

func newLogoutCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove stored credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, _, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.IdentityCLI.Logout(ctx); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoAmICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, _, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			p, err := app.IdentityCLI.WhoAmI(ctx)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user: %s\nlabel: %s\nemail: %s\nsource: %s\n", p.UserID, p.Label, p.Email, p.Source)
			return nil
		},
	}
}

func newCacheCmd(opts *rootOptions) *cobra.Command {
	cache := &cobra.Command{Use: "cache", Short: "Local cache operations"}
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop cached progress, snapshots and reports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withUser(cmd, opts, func(ctx context.Context, app *bootstrap.App, _ config.Config, userID string) error {
				if err := app.CacheCLI.Clear(ctx, userID); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
				return nil
			})
		},
	})
	return cache
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

// parseTime reads value in loc; an empty value yields nil.
func parseTime(value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid time %q (use YYYY-MM-DD HH:MM)", value)
}
