package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apiserver "github.com/watchair/watchair/internal/api_server"
	"github.com/watchair/watchair/internal/filestore"
	handlers "github.com/watchair/watchair/internal/handlers/v1"
	"github.com/watchair/watchair/internal/ingestion"
	"github.com/watchair/watchair/internal/jobs"
	"github.com/watchair/watchair/internal/metric"
	"github.com/watchair/watchair/internal/service"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/migrations"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the watchair api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cleanup, err := setup()
		if err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		defer cleanup()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			return fmt.Errorf("initializing data store: %w", err)
		}

		if err := migrations.MigrateStore(db, cfg.Service.MigrationFolder); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		files, err := filestore.New(cfg.Service.Storage)
		if err != nil {
			return fmt.Errorf("initializing file store: %w", err)
		}
		zap.S().Infof("Storing uploads in %s storage", files.Type())

		scheduler := jobs.NewGoScheduler(cfg.Service.Jobs.MaxConcurrent)
		orchestrator := jobs.NewOrchestrator(s, scheduler)
		pipeline := ingestion.NewPipeline(s, files, orchestrator,
			ingestion.WithTransactionalIngestion(cfg.Service.Jobs.TransactionalIngestion),
			ingestion.WithMetricRunner(metric.NewPipeline(s, orchestrator)),
		)
		orchestrator.Register(model.JobTypeFile, pipeline)

		h := handlers.NewServiceHandler(
			service.NewDomainService(s),
			service.NewJobService(s, orchestrator, files),
			service.NewMetricService(s),
		)

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				return fmt.Errorf("creating listener: %w", err)
			}
			return apiserver.New(cfg, h, listener).Run(gctx)
		})
		g.Go(func() error {
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				return fmt.Errorf("creating metrics listener: %w", err)
			}
			return apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, s).Run(gctx)
		})

		err = g.Wait()

		// let the running pipelines end their jobs before the store closes
		zap.S().Info("Waiting for running jobs")
		scheduler.Wait()

		return err
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}
