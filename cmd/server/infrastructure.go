package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/config"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/kafka"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/postgres"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/redis"
	httptransport "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/transport/http"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/publisher"
	volunteerService "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/store"
	audit "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit"
	auditmemory "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/store/memory"
	auditpostgres "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/store/postgres"
	txcontext "github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/tx"
)

const txTimeout = 5 * time.Second

// infrastructure holds the backend connections selected by configuration.
type infrastructure struct {
	volunteerStore volunteerService.Store
	auditStore     audit.Store
	txRunner       txcontext.Runner
	promotions     volunteerService.PromotionPublisher
	checks         map[string]httptransport.HealthCheck
	closers        []func()
}

func (i *infrastructure) Close() {
	for n := len(i.closers) - 1; n >= 0; n-- {
		i.closers[n]()
	}
}

// openInfrastructure connects the configured store backend and, when brokers
// are set, the promotion topic. The audit trail lives in Postgres whenever a
// database is configured so training writes and their audit rows commit together.
func openInfrastructure(ctx context.Context, cfg config.Config, log *slog.Logger) (*infrastructure, error) {
	infra := &infrastructure{
		txRunner: txcontext.NoopRunner{},
		checks:   map[string]httptransport.HealthCheck{},
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if db != nil {
		infra.closers = append(infra.closers, func() { _ = db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			infra.Close()
			return nil, err
		}
		infra.auditStore = auditpostgres.New(db)
		infra.checks["postgres"] = db.PingContext
	} else {
		infra.auditStore = auditmemory.NewInMemoryStore()
	}

	switch cfg.Server.StoreBackend {
	case config.BackendPostgres:
		infra.volunteerStore = store.NewPostgres(db)
		infra.txRunner = txcontext.NewSQLRunner(db, txTimeout)
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			infra.Close()
			return nil, err
		}
		infra.closers = append(infra.closers, func() { _ = client.Close() })
		infra.volunteerStore = store.NewRedis(client.Client)
		infra.checks["redis"] = client.Health
	default:
		infra.volunteerStore = store.NewInMemory()
		if db != nil {
			log.Warn("database configured but volunteer store is in memory; profiles will not persist")
		}
	}

	if err := openPromotions(ctx, cfg.Kafka, log, infra); err != nil {
		infra.Close()
		return nil, err
	}
	return infra, nil
}

func openPromotions(ctx context.Context, cfg config.Kafka, log *slog.Logger, infra *infrastructure) error {
	client, err := kafka.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client == nil {
		log.Info("kafka not configured; promotion events are audit-only")
		return nil
	}
	infra.closers = append(infra.closers, client.Close)
	if err := kafka.EnsureTopics(ctx, client, cfg); err != nil {
		return fmt.Errorf("kafka topics: %w", err)
	}
	infra.promotions = publisher.NewKafka(client, cfg.PromotionTopic, publisher.WithLogger(log))
	infra.checks["kafka"] = client.Ping
	return nil
}
