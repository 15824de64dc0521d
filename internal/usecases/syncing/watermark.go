package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/billing-status-sync/pkg/log"
)

type WatermarkResolver struct {
	store HistoricalStore
}

func NewWatermarkResolver(store HistoricalStore) *WatermarkResolver {
	return &WatermarkResolver{store: store}
}

// Resolve devolve o maior updated_at do histórico inteiro.
// nil significa primeira carga: sem artefatos ou artefatos sem linhas.
func (w *WatermarkResolver) Resolve(ctx context.Context) (*time.Time, error) {
	snapshot, err := w.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("location", w.store.Location())

	if snapshot.IsEmpty() {
		logger.Info("Histórico inexistente, executando carga inicial")
		return nil, nil
	}

	watermark := snapshot.MaxUpdatedAt()
	if watermark == nil {
		logger.Info("Histórico sem registros, executando carga inicial")
		return nil, nil
	}

	logger.WithField("watermark", watermark.Format(time.RFC3339Nano)).Info("Watermark resolvido")
	return watermark, nil
}
