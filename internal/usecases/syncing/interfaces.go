package syncing

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

import (
	"context"
	"time"

	"github.com/vfg2006/billing-status-sync/internal/domain"
)

// DeltaExtractor lê da origem as faturas alteradas depois do watermark
type DeltaExtractor interface {
	ListModifiedSince(ctx context.Context, since *time.Time) ([]domain.RawInvoiceRow, error)
}

// HistoricalStore é a tabela histórica no armazenamento colunar
type HistoricalStore interface {
	Load(ctx context.Context) (*domain.HistoricalSnapshot, error)
	// Write regrava o histórico completo e remove os artefatos substituídos
	Write(ctx context.Context, records []domain.InvoiceRecord, replaces []string) (string, error)
	Location() string
}

// RunObserver recebe o relatório ao final de cada execução
type RunObserver interface {
	ObserveRun(report domain.RunReport)
}
