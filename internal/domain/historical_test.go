package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoricalSnapshot_MaxUpdatedAt(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	snapshot := &HistoricalSnapshot{
		Records: []InvoiceRecord{
			{InvoiceID: "a", UpdatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{InvoiceID: "b", UpdatedAt: time.Date(2024, 2, 3, 7, 0, 0, 123456789, saoPaulo)},
			{InvoiceID: "c", UpdatedAt: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)},
		},
	}

	latest := snapshot.MaxUpdatedAt()
	require.NotNil(t, latest)
	assert.Equal(t, time.Date(2024, 2, 3, 10, 0, 0, 123456000, time.UTC), *latest)
}

func TestHistoricalSnapshot_MaxUpdatedAtEmpty(t *testing.T) {
	var nilSnapshot *HistoricalSnapshot
	assert.Nil(t, nilSnapshot.MaxUpdatedAt())
	assert.Nil(t, (&HistoricalSnapshot{Artifacts: []string{"x.parquet"}}).MaxUpdatedAt())
}
