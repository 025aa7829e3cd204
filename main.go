package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	apiadapter "rejectconsole/adapters/api"
	"rejectconsole/adapters/export"
	pgadapter "rejectconsole/adapters/postgres"
	"rejectconsole/app"
	"rejectconsole/internal/config"
	"rejectconsole/internal/migration"
	"rejectconsole/internal/scheduler"
	"rejectconsole/internal/session"
	"rejectconsole/internal/testkit"
	"rejectconsole/ports"
	"rejectconsole/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[main] no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := buildBackend(ctx, cfg)
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	metrics := app.NewMetricsService(backend)
	reports := app.NewReportService(backend, cfg.Reporting.CostPerPiece)
	cars := app.NewCARService(backend)
	analytics := app.NewAnalyticsService(backend)

	webApp, err := ui.NewApp(ui.Config{
		Metrics:   metrics,
		Reports:   reports,
		CARs:      cars,
		Analytics: analytics,
		Sessions:  session.NewStore(cfg.Auth.SessionTTL),
		Username:  cfg.Auth.Username,
		Password:  cfg.Auth.Password,
	})
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	var exporter *export.Exporter
	if cfg.Export.Dir != "" {
		exporter = export.NewExporter(export.NewDirSink(cfg.Export.Dir))
	}
	sched := scheduler.New(reports, exporter)
	if err := sched.Start(cfg.Reporting.Schedule); err != nil {
		log.Fatalf("[main] invalid REPORT_SCHEDULE: %v", err)
	}
	defer sched.Stop()

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           webApp.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("[main] console listening on :%s (backend: %s)", cfg.Server.Port, cfg.Backend.Mode)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[main] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[main] shutdown error: %v", err)
	}
}

// buildBackend wires the configured data backend: the remote RPC surface
// in api mode, or a local database with migrations (and optional demo
// seed) in postgres mode.
func buildBackend(ctx context.Context, cfg *config.Config) (ports.Backend, error) {
	switch cfg.Backend.Mode {
	case config.BackendModeAPI:
		client := apiadapter.NewClient(cfg.Backend.URL, cfg.Backend.APIKey, cfg.Backend.APISecret, cfg.Backend.Timeout)
		return apiadapter.NewBackend(client), nil

	case config.BackendModePostgres:
		db, err := pgadapter.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := migration.NewRunner().Run(ctx, db); err != nil {
			return nil, err
		}
		if cfg.Database.SeedDemo {
			if err := testkit.SeedDemoData(ctx, db, 30, 12); err != nil {
				log.Printf("[main] demo seed failed: %v", err)
			}
		}
		return pgadapter.New(db), nil
	}
	return nil, errors.New("unknown backend mode")
}
