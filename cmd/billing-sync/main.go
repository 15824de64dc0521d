package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/billing-status-sync/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-status-sync/infrastructure/historical"
	"github.com/vfg2006/billing-status-sync/infrastructure/objectstore"
	"github.com/vfg2006/billing-status-sync/infrastructure/repository"
	"github.com/vfg2006/billing-status-sync/internal/config"
	"github.com/vfg2006/billing-status-sync/internal/domain"
	"github.com/vfg2006/billing-status-sync/internal/usecases/syncing"
	"github.com/vfg2006/billing-status-sync/internal/usecases/transforming"
	"github.com/vfg2006/billing-status-sync/pkg/log"
	"github.com/vfg2006/billing-status-sync/pkg/metrics"
)

const metricsPushTimeout = 10 * time.Second

func main() {
	dryRun := flag.Bool("dry-run", false, "executa extração, transformação e merge sem gravar o histórico")
	flag.Parse()

	// Inicializa configuração de logs
	log.Configure("info", "text", os.Stderr)

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if !log.Configure(cfg.App.LogLevel, cfg.App.LogFormat, nil) {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}

	if err := run(cfg, *dryRun); err != nil {
		logrus.WithError(err).Fatal("Sincronização do billing_status_summary falhou")
	}
}

func run(cfg *config.Config, dryRun bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, _ = log.WithRunID(ctx)
	logger := log.ForContext(ctx)
	logger.WithFields(log.Fields{
		"driver":   cfg.Source.Driver,
		"location": cfg.Store.URI,
		"dry_run":  dryRun,
	}).Info("Iniciando sincronização do billing_status_summary")

	conn, err := sourceConn(ctx, cfg.Source)
	if err != nil {
		return err
	}
	defer conn.Close()

	invoiceRepo, err := repository.NewInvoiceRepository(conn, cfg.Source.Driver, cfg.Source.Schema, cfg.Source.Location)
	if err != nil {
		return err
	}

	bucket, err := objectstore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer bucket.Close()

	store, err := historical.NewStore(bucket, cfg.Store.Pattern, cfg.Store.ObjectName)
	if err != nil {
		return err
	}

	recorder := metrics.NewRecorder(cfg.Metrics)

	pipeline, err := syncing.NewPipeline(
		invoiceRepo,
		transforming.NewTransformer(cfg.Source.Location),
		store,
		syncing.WithDryRun(dryRun),
		syncing.WithObserver(recorder),
	)
	if err != nil {
		return err
	}

	report, runErr := pipeline.Run(ctx)

	if err := publishReport(cfg.App.ReportPath, report); err != nil {
		logger.WithError(err).Warn("Não foi possível gravar o relatório da execução")
	}

	// o contexto da execução pode já estar cancelado
	pushCtx, cancel := context.WithTimeout(context.Background(), metricsPushTimeout)
	defer cancel()
	if err := recorder.Push(pushCtx); err != nil {
		logger.WithError(err).Warn("Não foi possível enviar as métricas")
	}

	return runErr
}

// sourceConn cria a conexão com a base de origem
func sourceConn(ctx context.Context, source config.Source) (*sqldb.Connection, error) {
	conn, err := sqldb.NewConnection(ctx, source)
	if err != nil {
		return nil, err
	}

	logrus.WithField("driver", source.Driver).Info("Conexão com a base de origem estabelecida com sucesso")
	return conn, nil
}

func publishReport(path string, report *domain.RunReport) error {
	if report == nil {
		return nil
	}
	if path == "" {
		return syncing.WriteReport(os.Stdout, *report)
	}
	return syncing.SaveReport(path, *report)
}
