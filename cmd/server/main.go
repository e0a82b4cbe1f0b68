package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	jwttoken "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/jwt_token"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/config"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/httpserver"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/logger"
	httpmetrics "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/platform/otel"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration"
	registrationAdapters "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/adapters"
	registrationHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/handler"
	registrationMetrics "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/registration/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/catalog"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/completion"
	trainingMetrics "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/metrics"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/training/progression"
	httptransport "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/transport/http"
	volunteerHandler "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/handler"
	volunteerMetrics "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/metrics"
	volunteerService "github.com/TEAMHMC/hmc-volunteer-portal-sub005/internal/volunteer/service"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/publishers/compliance"
	"github.com/TEAMHMC/hmc-volunteer-portal-sub005/pkg/platform/audit/publishers/ops"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal service packages.
func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.LogLevel, cfg.Server.LogFormat)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, cfg.Tracing)
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	cat, err := loadCatalog(cfg.Server.CatalogPath)
	if err != nil {
		return err
	}
	log.Info("training catalog loaded",
		"version", cat.Version(),
		"path", cfg.Server.CatalogPath,
	)

	infra, err := openInfrastructure(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	tm := trainingMetrics.New()
	resolver := completion.New(cat, completion.WithLogger(log), completion.WithMetrics(tm))
	machine := progression.New(resolver, progression.WithLogger(log), progression.WithMetrics(tm))

	auditor := compliance.New(infra.auditStore,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics()),
	)
	tracker := ops.NewTracker(infra.auditStore,
		ops.WithLogger(log),
		ops.WithMetrics(ops.NewMetrics()),
	)
	defer func() {
		if err := tracker.Close(); err != nil {
			log.Warn("ops tracker close failed", "error", err)
		}
	}()

	volunteerOpts := []volunteerService.Option{
		volunteerService.WithLogger(log),
		volunteerService.WithMetrics(volunteerMetrics.New()),
		volunteerService.WithAuditPublisher(auditor),
		volunteerService.WithTxRunner(infra.txRunner),
		volunteerService.WithImportWorkers(cfg.Server.ImportWorkers),
	}
	if infra.promotions != nil {
		volunteerOpts = append(volunteerOpts, volunteerService.WithPromotionPublisher(infra.promotions))
	}
	volunteers := volunteerService.New(infra.volunteerStore, machine, volunteerOpts...)

	registrations := registration.NewService(
		registration.NewValidator(resolver, machine),
		registrationAdapters.NewVolunteerAdapter(volunteers),
		registration.WithLogger(log),
		registration.WithMetrics(registrationMetrics.New()),
		registration.WithOpsTracker(tracker),
	)

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.Issuer, cfg.Auth.Audience)
	router := httptransport.NewRouter(httptransport.Dependencies{
		Logger:       log,
		Observer:     httpmetrics.New(),
		Validator:    jwttoken.NewMiddlewareValidator(jwtService),
		Registration: registrationHandler.New(registrations, log),
		Volunteers:   volunteerHandler.New(volunteers, log),
		Checks:       infra.checks,
	})

	srv := httpserver.New(cfg.Server, router)
	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting hmc clearance engine",
			"addr", cfg.Server.Addr,
			"store_backend", cfg.Server.StoreBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", "error", err)
	}
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		cat, err := catalog.LoadDefault()
		if err != nil {
			return nil, fmt.Errorf("load embedded catalog: %w", err)
		}
		return cat, nil
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}
