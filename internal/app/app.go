package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/astorrey/TackleHogs/external/jobqueue"
	"github.com/astorrey/TackleHogs/external/scraper"
	"github.com/astorrey/TackleHogs/external/weatherapi"
	"github.com/astorrey/TackleHogs/internal/config"
	"github.com/astorrey/TackleHogs/internal/domain/competition"
	"github.com/astorrey/TackleHogs/internal/domain/leaderboard"
	"github.com/astorrey/TackleHogs/internal/domain/species"
	"github.com/astorrey/TackleHogs/internal/domain/tackle"
	"github.com/astorrey/TackleHogs/internal/domain/weather"
	"github.com/astorrey/TackleHogs/internal/infrastructure/account/accounts"
	cacherepo "github.com/astorrey/TackleHogs/internal/infrastructure/repository/cache"
	"github.com/astorrey/TackleHogs/internal/infrastructure/repository/memory"
	"github.com/astorrey/TackleHogs/internal/infrastructure/repository/postgres"
	redisrepo "github.com/astorrey/TackleHogs/internal/infrastructure/repository/redis"
	"github.com/astorrey/TackleHogs/internal/interfaces/httpapi"
	"github.com/astorrey/TackleHogs/internal/observability"
	basecache "github.com/astorrey/TackleHogs/internal/platform/cache"
	idgen "github.com/astorrey/TackleHogs/internal/platform/id"
	"github.com/astorrey/TackleHogs/internal/platform/logging"
	"github.com/astorrey/TackleHogs/internal/platform/resilience"
	"github.com/astorrey/TackleHogs/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

type weatherSource interface {
	Current(ctx context.Context, lat, lon float64) (weather.Data, error)
}

type pageScraper interface {
	Scrape(ctx context.Context, pageURL string) (tackle.ScrapedItem, error)
}

// App owns every long-lived component: the HTTP server, the background job
// scheduler, storage clients, and the observability pipeline.
type App struct {
	Server *http.Server

	cfg       config.Config
	logger    *slog.Logger
	appLogger *logging.Logger
	db        *sqlx.DB
	redis     *redis.Client
	pprofSrv  *http.Server
	scheduler *jobScheduler
	shutdowns []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{cfg: cfg, logger: logger}

	appLogger, flushLogs, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logging.SetDefault(appLogger)
	a.appLogger = appLogger
	a.shutdowns = append(a.shutdowns, flushLogs)

	uptraceShutdown, err := observability.InitUptrace(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	a.shutdowns = append(a.shutdowns, uptraceShutdown)

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}
	if stopProfiler != nil {
		a.shutdowns = append(a.shutdowns, func(context.Context) error { return stopProfiler() })
	}

	a.pprofSrv, err = observability.StartPprofServer(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("start pprof server: %w", err)
	}

	if err := a.connectPostgres(ctx); err != nil {
		return nil, err
	}
	if err := a.connectRedis(ctx); err != nil {
		return nil, err
	}

	a.buildServer()
	return a, nil
}

func (a *App) connectPostgres(ctx context.Context) error {
	db, err := otelsqlx.Connect("postgres", normalizeDBURL(a.cfg.DBURL, a.cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(a.cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("bootstrap seed: %w", err)
	}

	a.db = db
	return nil
}

func (a *App) connectRedis(ctx context.Context) error {
	if !a.cfg.RedisEnabled {
		return nil
	}

	opts, err := redis.ParseURL(a.cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("ping redis: %w", err)
	}

	a.redis = client
	return nil
}

func (a *App) buildServer() {
	cfg := a.cfg
	idGenerator := idgen.NewUUIDGenerator()
	store := basecache.NewStore(cfg.CacheTTL)

	catchRepo := postgres.NewCatchRepository(a.db)
	friendRepo := postgres.NewFriendshipRepository(a.db)
	tackleRepo := postgres.NewTackleRepository(a.db)
	jobDispatchRepo := postgres.NewJobDispatchRepository(a.db)

	var speciesRepo species.Repository = postgres.NewSpeciesRepository(a.db)
	compRepo := competitionRepository(a.db, store, cfg.CacheEnabled)
	if cfg.CacheEnabled {
		speciesRepo = cacherepo.NewSpeciesRepository(speciesRepo, store)
	}

	var lbRepo leaderboard.Repository
	if a.redis != nil {
		lbRepo = redisrepo.NewLeaderboardRepository(a.redis)
	} else {
		a.logger.Warn("redis disabled, leaderboard cache is in-process only")
		lbRepo = memory.NewLeaderboardRepository()
	}

	var weatherClient weatherSource
	if cfg.WeatherEnabled {
		weatherClient = weatherapi.NewClient(weatherapi.ClientConfig{
			BaseURL:       cfg.WeatherBaseURL,
			APIKey:        cfg.WeatherAPIKey,
			Timeout:       cfg.WeatherTimeout,
			RatePerSecond: cfg.WeatherRatePerSecond,
			Logger:        a.appLogger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WeatherCircuitEnabled,
				FailureThreshold: cfg.WeatherCircuitFailureCount,
				OpenTimeout:      cfg.WeatherCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WeatherCircuitHalfOpenMaxReq,
			},
		})
	}

	var tackleScraper pageScraper
	if cfg.ScraperEnabled {
		tackleScraper = scraper.New(scraper.Config{
			Timeout: cfg.ScraperTimeout,
			Logger:  a.appLogger,
		})
	}

	standingSvc := usecase.NewStandingService(compRepo, catchRepo, &resilience.SingleFlight{}, a.appLogger)
	leaderboardSvc := usecase.NewLeaderboardService(lbRepo, catchRepo, friendRepo, a.appLogger)
	competitionSvc := usecase.NewCompetitionService(compRepo, speciesRepo, standingSvc, idGenerator, a.appLogger)
	competitionSvc.SetSweepWorkers(cfg.SweepWorkers)
	catchSvc := usecase.NewCatchService(catchRepo, speciesRepo, compRepo, weatherClient, leaderboardSvc, standingSvc, idGenerator, a.appLogger)
	speciesSvc := usecase.NewSpeciesService(speciesRepo, store)
	tackleSvc := usecase.NewTackleService(tackleRepo, tackleScraper, idGenerator, a.appLogger)
	friendshipSvc := usecase.NewFriendshipService(friendRepo, idGenerator)

	verifier := accounts.NewClient(
		&http.Client{Timeout: cfg.AccountsTimeout},
		cfg.AccountsBaseURL,
		cfg.AccountsIntrospectPath,
		a.logger,
	)

	handler := httpapi.NewHandler(
		catchSvc,
		competitionSvc,
		standingSvc,
		leaderboardSvc,
		speciesSvc,
		tackleSvc,
		friendshipSvc,
		jobDispatchRepo,
		a.logger,
	)
	router := httpapi.NewRouter(handler, verifier, a.logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	var publisher *jobqueue.QStashPublisher
	if cfg.QStashEnabled {
		publisher = jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, a.logger)
	}
	a.scheduler = newJobScheduler(
		publisher,
		competitionSvc,
		leaderboardSvc,
		cfg.JobSweepInterval,
		cfg.JobRebuildInterval,
		a.logger,
	)
}

func competitionRepository(db *sqlx.DB, store *basecache.Store, cacheEnabled bool) competition.Repository {
	repo := postgres.NewCompetitionRepository(db)
	if !cacheEnabled {
		return repo
	}
	return cacherepo.NewCompetitionRepository(repo, store)
}

// StartJobs launches the background sweeps. They stop when ctx is cancelled.
func (a *App) StartJobs(ctx context.Context) {
	go a.scheduler.Run(ctx)
}

// Shutdown releases everything except the HTTP server, which the caller
// drains first.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if a.pprofSrv != nil {
		if err := observability.StopPprofServer(a.pprofSrv, a.logger, 5*time.Second); err != nil {
			errs = append(errs, fmt.Errorf("stop pprof server: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		if err := a.shutdowns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.appLogger != nil {
		_ = a.appLogger.Sync()
	}

	return errors.Join(errs...)
}
