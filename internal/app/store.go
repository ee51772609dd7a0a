package app

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/roadto100k/internal/config"
	"github.com/riskibarqy/roadto100k/internal/domain/challenge"
	"github.com/riskibarqy/roadto100k/internal/domain/participant"
	"github.com/riskibarqy/roadto100k/internal/domain/profit"
	cacherepo "github.com/riskibarqy/roadto100k/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/roadto100k/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/roadto100k/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/roadto100k/internal/platform/cache"
	"github.com/riskibarqy/roadto100k/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

type repositories struct {
	participants participant.Repository
	entries      profit.Repository
	acceptances  challenge.AcceptanceRepository
}

func openRepositories(cfg config.Config, policy challenge.Policy, now time.Time, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos       repositories
		closeStores = func() error { return nil }
	)

	switch cfg.StoreBackend {
	case config.StoreMemory:
		var demo memory.DemoData
		if cfg.StoreSeedDemo {
			demo = memory.SeedDemo(policy.Window(now), now)
			logger.Info("memory store seeded with demo data",
				"participants", len(demo.Participants),
				"entries", len(demo.Entries),
			)
		}
		repos = repositories{
			participants: memory.NewParticipantRepository(demo.Participants),
			entries:      memory.NewProfitRepository(demo.Entries),
			acceptances:  memory.NewAcceptanceRepository(demo.Acceptances),
		}
	case config.StorePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		repos = repositories{
			participants: postgres.NewParticipantRepository(db),
			entries:      postgres.NewProfitRepository(db),
			acceptances:  postgres.NewAcceptanceRepository(db),
		}
		closeStores = db.Close
		logger.Info("postgres store connected", "db_name", dbNameFromURL(cfg.DBURL))
	default:
		return repositories{}, nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos = repositories{
			participants: cacherepo.NewParticipantRepository(repos.participants, store),
			entries:      cacherepo.NewProfitRepository(repos.entries, store),
			acceptances:  cacherepo.NewAcceptanceRepository(repos.acceptances, store),
		}
	}

	return repos, closeStores, nil
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
