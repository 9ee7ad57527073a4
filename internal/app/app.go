package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/touchline/external/webhook"
	"github.com/riskibarqy/touchline/internal/config"
	"github.com/riskibarqy/touchline/internal/domain/fixture"
	"github.com/riskibarqy/touchline/internal/domain/formation"
	"github.com/riskibarqy/touchline/internal/domain/lineup"
	"github.com/riskibarqy/touchline/internal/domain/period"
	"github.com/riskibarqy/touchline/internal/domain/player"
	"github.com/riskibarqy/touchline/internal/domain/squad"
	"github.com/riskibarqy/touchline/internal/infrastructure/notify"
	cacherepo "github.com/riskibarqy/touchline/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/touchline/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/touchline/internal/interfaces/httpapi"
	"github.com/riskibarqy/touchline/internal/platform/cache"
	"github.com/riskibarqy/touchline/internal/platform/logging"
	"github.com/riskibarqy/touchline/internal/platform/metrics"
	"github.com/riskibarqy/touchline/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbPingTimeout       = 5 * time.Second
	defaultDrainTimeout = 5 * time.Second
	minDrainTimeout     = 500 * time.Millisecond
)

// App is the wired API process.
type App struct {
	Server     *http.Server
	dispatcher *notify.Dispatcher
	db         *sqlx.DB
	logger     *logging.Logger
}

type repositories struct {
	fixtures   fixture.Repository
	players    player.Repository
	selections lineup.Repository
	periods    period.Repository
	squads     squad.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	catalog, err := formation.Load(cfg.FormationsFile)
	if err != nil {
		return nil, fmt.Errorf("load formations: %w", err)
	}

	a := &App{logger: logger}
	repos, err := a.openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	publisher, err := a.newPublisher(cfg, m)
	if err != nil {
		_ = a.closeDB()
		return nil, err
	}

	boards := usecase.NewBoardService(
		repos.fixtures,
		repos.players,
		repos.selections,
		repos.periods,
		repos.squads,
		usecase.BoardOptions{
			Publisher:   publisher,
			Recorder:    m,
			Logger:      logger,
			SaveWorkers: cfg.SaveWorkers,
		},
	)

	handler := httpapi.NewHandler(
		boards,
		usecase.NewSelectionService(boards),
		usecase.NewPeriodService(boards),
		usecase.NewSquadService(boards),
		usecase.NewFormationService(catalog),
		logger,
	)
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		Logger:             logger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Metrics:            m,
		MetricsHandler:     m.Handler(),
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Shutdown stops the HTTP server, drains pending deliveries and closes storage.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.dispatcher != nil {
		if err := a.dispatcher.Close(remaining(ctx)); err != nil {
			errs = append(errs, fmt.Errorf("drain change dispatcher: %w", err))
		}
	}
	if err := a.closeDB(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) openStorage(ctx context.Context, cfg config.Config) (repositories, error) {
	var repos repositories
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.db = db
		if cfg.DBSeedDemo {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = a.closeDB()
				return repositories{}, fmt.Errorf("seed demo data: %w", err)
			}
		}
		repos = repositories{
			fixtures:   postgres.NewFixtureRepository(db),
			players:    postgres.NewPlayerRepository(db),
			selections: postgres.NewSelectionRepository(db),
			periods:    postgres.NewPeriodRepository(db),
			squads:     postgres.NewSquadRepository(db),
		}
	default:
		var (
			fixtures []fixture.Fixture
			players  []player.Player
		)
		if cfg.DBSeedDemo {
			fixtures = memory.SeedFixtures()
			players = memory.SeedPlayers()
		}
		repos = repositories{
			fixtures:   memory.NewFixtureRepository(fixtures),
			players:    memory.NewPlayerRepository(players),
			selections: memory.NewSelectionRepository(),
			periods:    memory.NewPeriodRepository(),
			squads:     memory.NewSquadRepository(),
		}
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.fixtures = cacherepo.NewFixtureRepository(repos.fixtures, store)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
	}

	a.logger.InfoContext(ctx, "storage ready",
		"driver", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"seeded", cfg.DBSeedDemo,
	)
	return repos, nil
}

func (a *App) newPublisher(cfg config.Config, m *metrics.Metrics) (lineup.ChangePublisher, error) {
	var next lineup.ChangePublisher = notify.NewLogPublisher(a.logger)
	if cfg.WebhookEnabled() {
		hook, err := webhook.NewPublisher(webhook.Config{
			URL:            cfg.WebhookURL,
			Secret:         cfg.WebhookSecret,
			Timeout:        cfg.WebhookTimeout,
			MaxRetries:     cfg.WebhookMaxRetries,
			RetryBackoff:   cfg.WebhookRetryBackoff,
			CircuitBreaker: cfg.WebhookCircuit,
			Recorder:       m,
			Logger:         a.logger,
		})
		if err != nil {
			return nil, err
		}
		next = hook
	}

	dispatcher, err := notify.NewDispatcher(next, notify.DispatcherConfig{
		Workers:         cfg.DispatchWorkers,
		DeliveryTimeout: cfg.DispatchTimeout,
		Rejects:         m,
		Logger:          a.logger,
	})
	if err != nil {
		return nil, err
	}
	a.dispatcher = dispatcher
	return dispatcher, nil
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// remaining is the drain budget left before the shutdown deadline. In-flight
// deliveries always get at least minDrainTimeout.
func remaining(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return defaultDrainTimeout
	}
	return max(time.Until(deadline), minDrainTimeout)
}
