package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	activityinadapter "pti/internal/modules/activity/adapter/in"
	activityoutadapter "pti/internal/modules/activity/adapter/out"
	activityservice "pti/internal/modules/activity/service"
	activityusecase "pti/internal/modules/activity/usecase"
	cacheinadapter "pti/internal/modules/cache/adapter/in"
	cacheoutadapter "pti/internal/modules/cache/adapter/out"
	cacheout "pti/internal/modules/cache/port/out"
	cacheservice "pti/internal/modules/cache/service"
	cacheusecase "pti/internal/modules/cache/usecase"
	identityinadapter "pti/internal/modules/identity/adapter/in"
	identityoutadapter "pti/internal/modules/identity/adapter/out"
	identityservice "pti/internal/modules/identity/service"
	identityusecase "pti/internal/modules/identity/usecase"
	plannerinadapter "pti/internal/modules/planner/adapter/in"
	planneroutadapter "pti/internal/modules/planner/adapter/out"
	plannerservice "pti/internal/modules/planner/service"
	plannerusecase "pti/internal/modules/planner/usecase"
	timespentinadapter "pti/internal/modules/timespent/adapter/in"
	timespentoutadapter "pti/internal/modules/timespent/adapter/out"
	timespentservice "pti/internal/modules/timespent/service"
	timespentusecase "pti/internal/modules/timespent/usecase"
	"pti/internal/platform/clock"
	"pti/internal/platform/config"
	"pti/internal/platform/id"
	"pti/internal/platform/sqldb"
)

type App struct {
	IdentityCLI  identityinadapter.CLIHandler
	PlannerCLI   plannerinadapter.CLIHandler
	ActivityCLI  activityinadapter.CLIHandler
	TimeSpentCLI timespentinadapter.CLIHandler
	CacheCLI     cacheinadapter.CLIHandler

	closers []io.Closer
}

// Options carries process-level dependencies the config file does not.
type Options struct {
	Logger *log.Logger
	// Prompt receives interactive login instructions.
	Prompt io.Writer
	Clock  clock.Clock
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[pti] ", log.LstdFlags)
	}
	if opts.Prompt == nil {
		opts.Prompt = os.Stderr
	}
	if opts.Clock == nil {
		opts.Clock = clock.SystemClock{}
	}
	logger := opts.Logger
	clk := opts.Clock
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := sqldb.Open(ctx, cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	app := &App{closers: []io.Closer{db}}

	localStore, err := newLocalStore(ctx, cfg.Cache)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if closer, ok := localStore.(io.Closer); ok {
		app.closers = append(app.closers, closer)
	}
	cacheUC := cacheusecase.NewInteractor(cacheservice.NewCacheService(localStore, clk, loc, logger))

	identityUC := identityusecase.NewInteractor(identityservice.NewIdentityService(
		clk,
		identityoutadapter.NewFileCredentialStore(cfg.Identity.CredentialsFile),
		identityoutadapter.NewGoogleAuthenticator(cfg.Identity.ClientSecretsFile, cfg.Identity.RedirectPort, opts.Prompt, logger),
		identityoutadapter.NewSQLUserDirectory(db),
		cfg.Identity.UserID,
	))

	activityUC := activityusecase.NewInteractor(
		activityservice.NewActivityService(
			clk,
			activityoutadapter.NewSQLActivityStore(db, id.UUID{}),
			activityoutadapter.NewFileTimerStore(cfg.DataDir),
			logger,
			activityservice.Options{WindowDays: cfg.Report.WindowDays, PageSize: cfg.Report.PageSize, Location: loc},
		),
		cacheUC,
		activityoutadapter.NewMarkdownReportExporter(cfg.Report.ExportDir, loc),
		logger,
	)

	plannerUC := plannerusecase.NewInteractor(
		plannerservice.NewPlannerService(clk, planneroutadapter.NewSQLPlannerStore(db, id.UUID{}), db),
		planneroutadapter.NewActivityRecorder(activityUC),
		cacheUC,
		logger,
	)

	timeSpentUC := timespentusecase.NewInteractor(
		timespentservice.NewTimeSpentService(clk, loc, timespentoutadapter.NewPlannerTaskSource(plannerUC), logger),
		cacheUC,
		logger,
	)

	app.IdentityCLI = identityinadapter.NewCLIHandler(identityUC)
	app.PlannerCLI = plannerinadapter.NewCLIHandler(plannerUC)
	app.ActivityCLI = activityinadapter.NewCLIHandler(activityUC)
	app.TimeSpentCLI = timespentinadapter.NewCLIHandler(timeSpentUC)
	app.CacheCLI = cacheinadapter.NewCLIHandler(cacheUC)
	return app, nil
}

func newLocalStore(ctx context.Context, cfg config.CacheConfig) (cacheout.LocalStore, error) {
	switch cfg.Backend {
	case config.CacheBackendRedis:
		store, err := cacheoutadapter.NewRedisLocalStore(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, fmt.Errorf("open redis cache: %w", err)
		}
		return store, nil
	default:
		return cacheoutadapter.NewFileLocalStore(cfg.Path), nil
	}
}

func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
