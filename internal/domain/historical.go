package domain

import "time"

// StoredTimestampPrecision é a precisão das colunas de data do histórico
const StoredTimestampPrecision = time.Microsecond

// TruncateToStored devolve o instante em UTC na precisão gravada no histórico
func TruncateToStored(t time.Time) time.Time {
	return t.UTC().Truncate(StoredTimestampPrecision)
}

// HistoricalSnapshot é o conteúdo do histórico lido de uma só vez,
// junto com os artefatos de onde ele veio.
type HistoricalSnapshot struct {
	Records   []InvoiceRecord
	Artifacts []string
}

func (s *HistoricalSnapshot) IsEmpty() bool {
	return s == nil || len(s.Artifacts) == 0
}

// MaxUpdatedAt percorre todos os registros e devolve o maior updated_at na precisão
// gravada no histórico. Retorna nil quando não há registros.
func (s *HistoricalSnapshot) MaxUpdatedAt() *time.Time {
	if s == nil || len(s.Records) == 0 {
		return nil
	}

	latest := s.Records[0].UpdatedAt
	for _, record := range s.Records[1:] {
		if record.UpdatedAt.After(latest) {
			latest = record.UpdatedAt
		}
	}

	latest = TruncateToStored(latest)
	return &latest
}
