package merging

import (
	"errors"
	"fmt"

	"github.com/vfg2006/billing-status-sync/internal/domain"
)

var ErrDuplicateDeltaKey = errors.New("invoice_id duplicado no lote de alterações")

// Result é o histórico após o merge e o que mudou nele
type Result struct {
	Records   []domain.InvoiceRecord
	Updated   int
	Inserted  int
	Unchanged int
}

// Merge aplica o lote de alterações sobre o histórico por invoice_id.
//
// Atualização e inserção consultam o mesmo índice, construído a partir do
// histórico antes do merge: uma inserção nunca é vista como chave existente.
// O histórico recebido não é alterado.
func Merge(historical, delta []domain.InvoiceRecord) (Result, error) {
	if len(delta) == 0 {
		return Result{Records: historical, Unchanged: len(historical)}, nil
	}

	deltaByID := make(map[string]int, len(delta))
	for i, record := range delta {
		if _, exists := deltaByID[record.InvoiceID]; exists {
			return Result{}, fmt.Errorf("%w: %s", ErrDuplicateDeltaKey, record.InvoiceID)
		}
		deltaByID[record.InvoiceID] = i
	}

	snapshotIDs := make(map[string]struct{}, len(historical))
	for _, record := range historical {
		snapshotIDs[record.InvoiceID] = struct{}{}
	}

	result := Result{
		Records: make([]domain.InvoiceRecord, 0, len(historical)+len(delta)),
	}

	// Fase 1: atualização
	for _, stored := range historical {
		i, matched := deltaByID[stored.InvoiceID]
		if !matched {
			result.Records = append(result.Records, stored)
			result.Unchanged++
			continue
		}
		result.Records = append(result.Records, overwrite(stored, delta[i]))
		result.Updated++
	}

	// Fase 2: inserção
	for _, incoming := range delta {
		if _, exists := snapshotIDs[incoming.InvoiceID]; exists {
			continue
		}
		result.Records = append(result.Records, incoming)
		result.Inserted++
	}

	return result, nil
}

// overwrite copia os campos mutáveis; invoice_id e inserted_at permanecem
func overwrite(stored, incoming domain.InvoiceRecord) domain.InvoiceRecord {
	updated := incoming
	updated.InvoiceID = stored.InvoiceID
	updated.InsertedAt = stored.InsertedAt
	return updated
}
