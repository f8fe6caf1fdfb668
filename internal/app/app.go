package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"fittrack-go/internal/config"
	"fittrack-go/internal/db"
	logdomain "fittrack-go/internal/domain/dailylog"
	nutritiondomain "fittrack-go/internal/domain/nutrition"
	profiledomain "fittrack-go/internal/domain/profile"
	summarydomain "fittrack-go/internal/domain/summary"
	workoutdomain "fittrack-go/internal/domain/workout"
	"fittrack-go/internal/integrations/gemini"
	"fittrack-go/internal/observability"
	firestorerepo "fittrack-go/internal/repository/firestore"
	"fittrack-go/internal/repository/inmemory"
	dailylogrepo "fittrack-go/internal/repository/postgres/dailylogs"
	profilerepo "fittrack-go/internal/repository/postgres/profiles"
	workoutrepo "fittrack-go/internal/repository/postgres/workouts"
	"fittrack-go/internal/scheduler"
	"fittrack-go/internal/transport/httpserver"
	"fittrack-go/internal/transport/httpserver/handler"
	authmw "fittrack-go/internal/transport/httpserver/middleware"
	"fittrack-go/migrations"
	"fittrack-go/pkg/logger"
	"gorm.io/gorm"
)

const draftPurgeSpec = "@every 10m"

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	db         *gorm.DB
	firestore  *firestorerepo.Client
	analyzer   *gemini.FoodAnalyzer
	refresher  *summarydomain.Refresher
	watcher    *firestorerepo.LogWatcher
	scheduler  *scheduler.Scheduler
	sentry     bool
	wg         sync.WaitGroup
}

type repositories struct {
	workouts workoutdomain.Repository
	logs     logdomain.Repository
	profiles profiledomain.Repository
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	a.sentry, err = observability.Init(cfg.Sentry, log)
	if err != nil {
		log.InternalError("app: sentry init failed, continuing without it", err)
	}
	if a.sentry {
		log = logger.WithReporter(log, observability.NewReporter())
	}
	a.log = log

	repos, err := a.initStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	log.Info("app: initializing services")
	profiles := profiledomain.NewService(repos.profiles)
	// Reads for scoring go through a service without a notifier so the
	// refresher can depend on it.
	stats := logdomain.NewService(repos.logs, nil)
	summaryCache := inmemory.NewSummaryCache()
	summaries := summarydomain.NewService(profiles, stats, summaryCache, summarydomain.Config{CacheTTL: cfg.Summary.CacheTTL})
	a.refresher = summarydomain.NewRefresher(summaries, cfg.Summary.RefreshQueue, log)
	a.refresher.OnRefresh(func(s summarydomain.Summary) {
		log.Debug("summary: refreshed", "user_id", s.UserID, "period", s.Period, "score", s.Score, "badge", s.Badge)
	})

	logs := logdomain.NewService(repos.logs, a.refresher)
	drafts := inmemory.NewDraftStore(0)
	workouts := workoutdomain.NewService(repos.workouts, drafts, a.refresher)
	nutrition := nutritiondomain.NewService(a.initAnalyzer(ctx), cfg.Nutrition.MaxImageBytes)

	if a.firestore != nil && cfg.Summary.WatchSnapshots {
		a.watcher = firestorerepo.NewLogWatcher(a.firestore, a.refresher, log)
	}

	if err := a.initScheduler(summaries, drafts); err != nil {
		a.Close()
		return nil, err
	}

	log.Info("app: initializing auth", "provider", cfg.Auth.Provider, "skip", cfg.Auth.SkipAuth)
	verifier, err := newVerifier(ctx, cfg.Auth)
	if err != nil {
		a.Close()
		return nil, err
	}
	auth := authmw.NewAuth(cfg.Auth, verifier, profiles, log)

	log.Info("app: initializing router")
	handlers := handler.New(workouts, logs, profiles, summaries, nutrition, log)
	router := httpserver.NewRouter(cfg, handlers, auth)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) initStorage(ctx context.Context) (repositories, error) {
	switch a.cfg.Storage.Backend {
	case config.StorageBackendFirestore:
		a.log.Info("app: initializing firestore", "project", a.cfg.Storage.FirestoreProjectID)
		client, err := firestorerepo.NewClient(ctx, a.cfg.Storage.FirestoreProjectID)
		if err != nil {
			return repositories{}, err
		}
		a.firestore = client
		return repositories{
			workouts: client.Workouts(),
			logs:     client.DailyLogs(),
			profiles: client.Profiles(),
		}, nil
	default:
		a.log.Info("app: initializing database")
		dbConn, err := db.NewPostgres(a.cfg.DB, a.log)
		if err != nil {
			return repositories{}, err
		}
		a.db = dbConn
		if err := db.Migrate(dbConn, migrations.FS, a.log); err != nil {
			return repositories{}, fmt.Errorf("migrate: %w", err)
		}
		return repositories{
			workouts: workoutrepo.NewPostgres(dbConn),
			logs:     dailylogrepo.NewPostgres(dbConn),
			profiles: profilerepo.NewPostgres(dbConn),
		}, nil
	}
}

// initAnalyzer returns nil when meal analysis is not configured.
func (a *App) initAnalyzer(ctx context.Context) nutritiondomain.Analyzer {
	analyzer, err := gemini.NewFoodAnalyzer(ctx, a.cfg.Nutrition.GeminiAPIKey, a.cfg.Nutrition.GeminiModel)
	if errors.Is(err, nutritiondomain.ErrAnalyzerDisabled) {
		a.log.Info("app: GEMINI_API_KEY not set, meal analysis disabled")
		return nil
	}
	if err != nil {
		a.log.InternalError("app: gemini init failed, meal analysis disabled", err)
		return nil
	}
	a.analyzer = analyzer
	return analyzer
}

func (a *App) initScheduler(summaries *summarydomain.Service, drafts *inmemory.DraftStore) error {
	a.scheduler = scheduler.New(a.log)

	if a.cfg.Summary.RolloverEnabled {
		err := a.scheduler.Add("summary-rollover", "@midnight", func() {
			summaries.Reset()
			a.log.Info("summary: period rollover, cache cleared")
		})
		if err != nil {
			return err
		}
	}

	return a.scheduler.Add("draft-purge", draftPurgeSpec, func() {
		if n := drafts.PurgeExpired(); n > 0 {
			a.log.Info("workout: purged abandoned drafts", "count", n)
		}
	})
}

func newVerifier(ctx context.Context, cfg config.AuthConfig) (authmw.TokenVerifier, error) {
	if cfg.SkipAuth {
		return nil, nil
	}
	switch cfg.Provider {
	case config.AuthProviderSupabase:
		return authmw.NewSupabaseVerifier(cfg)
	default:
		return authmw.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
	}
}

// Start launches the background workers. They stop when ctx is done.
func (a *App) Start(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.refresher.Run(ctx)
	}()

	if a.watcher != nil {
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.watcher.Run(ctx)
		}()
	}

	a.scheduler.Start()
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Close stops the scheduler and releases clients. Call it after the context
// passed to Start is cancelled.
func (a *App) Close() error {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.wg.Wait()

	var errs []error
	if a.analyzer != nil {
		errs = append(errs, a.analyzer.Close())
	}
	if a.firestore != nil {
		errs = append(errs, a.firestore.Close())
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}
	if a.sentry {
		observability.Flush()
	}
	return errors.Join(errs...)
}
