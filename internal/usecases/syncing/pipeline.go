package syncing

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/billing-status-sync/internal/domain"
	"github.com/vfg2006/billing-status-sync/internal/usecases/merging"
	"github.com/vfg2006/billing-status-sync/internal/usecases/transforming"
	"github.com/vfg2006/billing-status-sync/pkg/log"
)

// Pipeline executa uma sincronização completa:
// watermark, extração, transformação, merge e gravação, nessa ordem.
type Pipeline struct {
	resolver    *WatermarkResolver
	extractor   DeltaExtractor
	transformer *transforming.Transformer
	store       HistoricalStore
	observer    RunObserver
	dryRun      bool
	now         func() time.Time
}

type Option func(*Pipeline)

// WithDryRun interrompe a execução antes da gravação
func WithDryRun(dryRun bool) Option {
	return func(p *Pipeline) {
		p.dryRun = dryRun
	}
}

func WithObserver(observer RunObserver) Option {
	return func(p *Pipeline) {
		p.observer = observer
	}
}

func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		p.now = now
	}
}

func NewPipeline(
	extractor DeltaExtractor,
	transformer *transforming.Transformer,
	store HistoricalStore,
	opts ...Option,
) (*Pipeline, error) {
	if extractor == nil || transformer == nil || store == nil {
		return nil, ErrInvalidPipeline
	}

	p := &Pipeline{
		resolver:    NewWatermarkResolver(store),
		extractor:   extractor,
		transformer: transformer,
		store:       store,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run executa uma vez. O relatório é devolvido mesmo em caso de erro.
// Qualquer falha antes da gravação deixa o histórico como estava.
func (p *Pipeline) Run(ctx context.Context) (*domain.RunReport, error) {
	runID := log.GetRunID(ctx)
	if runID == "" {
		ctx, runID = log.WithRunID(ctx)
	}

	report := &domain.RunReport{
		RunID:     runID,
		StartedAt: p.now().UTC(),
	}

	err := p.run(ctx, report)

	report.FinishedAt = p.now().UTC()
	if err != nil {
		report.Status = domain.RunStatusFailed
		report.Error = err.Error()
	}

	if p.observer != nil {
		p.observer.ObserveRun(*report)
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"status":         report.Status,
		"rows_extracted": report.RowsExtracted,
		"rows_updated":   report.RowsUpdated,
		"rows_inserted":  report.RowsInserted,
		"store_rows":     report.StoreRows,
		"duration":       report.Duration().String(),
	})
	if err != nil {
		logger.WithError(err).WithField("stage", StageOf(err)).Error("Sincronização falhou")
		return report, err
	}
	logger.Info("Sincronização finalizada")

	return report, nil
}

func (p *Pipeline) run(ctx context.Context, report *domain.RunReport) error {
	logger := log.ForContext(ctx)
	runAt := report.StartedAt

	watermark, err := p.resolver.Resolve(ctx)
	if err != nil {
		return newSyncError(StageWatermark, errors.Wrap(err, "erro ao resolver watermark"))
	}
	report.Watermark = watermark
	report.Bootstrap = watermark == nil

	rows, err := p.extractor.ListModifiedSince(ctx, watermark)
	if err != nil {
		return newSyncError(StageExtract, errors.Wrap(err, "erro ao extrair faturas alteradas"))
	}
	report.RowsExtracted = len(rows)
	logger.WithField("rows", len(rows)).Info("Faturas alteradas extraídas")

	if len(rows) == 0 {
		report.Status = domain.RunStatusNoChanges
		report.NextWatermark = watermark
		logger.Info("Nenhuma alteração desde o último watermark")
		return nil
	}

	delta, err := p.transformer.TransformBatch(rows, runAt)
	if err != nil {
		return newSyncError(StageTransform, errors.Wrap(err, "erro ao transformar faturas"))
	}

	snapshot, err := p.store.Load(ctx)
	if err != nil {
		return newSyncError(StageLoad, errors.Wrap(err, "erro ao carregar histórico"))
	}
	report.ArtifactsRead = snapshot.Artifacts

	result, err := merging.Merge(snapshot.Records, delta)
	if err != nil {
		return newSyncError(StageMerge, errors.Wrap(err, "erro ao aplicar alterações"))
	}
	report.RowsUpdated = result.Updated
	report.RowsInserted = result.Inserted
	report.RowsUnchanged = result.Unchanged
	report.StoreRows = len(result.Records)
	report.NextWatermark = (&domain.HistoricalSnapshot{Records: result.Records}).MaxUpdatedAt()

	if p.dryRun {
		report.Status = domain.RunStatusDryRun
		logger.Info("Dry run: histórico não foi gravado")
		return nil
	}

	written, err := p.store.Write(ctx, result.Records, snapshot.Artifacts)
	if err != nil {
		return newSyncError(StageWrite, errors.Wrap(err, "erro ao gravar histórico"))
	}
	report.ArtifactWritten = written
	report.Status = domain.RunStatusSucceeded

	return nil
}
