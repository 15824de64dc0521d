package repository

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/billing-status-sync/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-status-sync/internal/config"
)

var invoiceColumns = []string{
	"invoice_id", "company_id", "company_name", "invoice_generation", "due_date", "payment_date",
	"description", "status_invoice", "status_process", "amount", "payment_type", "updated_at",
}

func expectedSelect(textType string) string {
	cast := func(column, alias string) string {
		return "CAST(" + column + " AS " + textType + ") AS " + alias
	}

	return "SELECT " + strings.Join([]string{
		"pi.id AS invoice_id",
		cast("c.id", "company_id"),
		"c.nome AS company_name",
		cast("pi.created_at", "invoice_generation"),
		cast("pi.due_date", "due_date"),
		cast("pi.updated_at", "payment_date"),
		"pi.description",
		"pi.status AS status_invoice",
		"pi.process AS status_process",
		cast("pi.amount", "amount"),
		"pi.type AS payment_type",
		cast("pi.updated_at", "updated_at"),
	}, ", ") +
		" FROM onfly.payment_invoice pi LEFT JOIN onfly.companies c ON pi.company_id = c.id" +
		" WHERE pi.deleted_at IS NULL"
}

func newMockRepository(t *testing.T, driver string, loc *time.Location) (InvoiceRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewInvoiceRepository(sqldb.Wrap(db, driver), driver, "onfly", loc)
	require.NoError(t, err)

	return repo, mock
}

func TestBuildQuery(t *testing.T) {
	since := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name         string
		driver       string
		location     *time.Location
		since        *time.Time
		expectedSQL  string
		expectedArgs []interface{}
	}{
		{
			name:        "mysql sem watermark",
			driver:      config.DriverMySQL,
			expectedSQL: expectedSelect("CHAR") + " ORDER BY pi.due_date, pi.id",
		},
		{
			name:         "mysql com watermark",
			driver:       config.DriverMySQL,
			since:        &since,
			expectedSQL:  expectedSelect("CHAR") + " AND pi.updated_at > ? ORDER BY pi.due_date, pi.id",
			expectedArgs: []interface{}{"2024-03-01 12:00:00"},
		},
		{
			name:         "postgres com watermark no fuso da origem",
			driver:       config.DriverPostgres,
			location:     saoPaulo,
			since:        &since,
			expectedSQL:  expectedSelect("TEXT") + " AND pi.updated_at > $1 ORDER BY pi.due_date, pi.id",
			expectedArgs: []interface{}{"2024-03-01 09:00:00-03:00"},
		},
		{
			name:         "postgres com watermark em utc",
			driver:       config.DriverPostgres,
			since:        &since,
			expectedSQL:  expectedSelect("TEXT") + " AND pi.updated_at > $1 ORDER BY pi.due_date, pi.id",
			expectedArgs: []interface{}{"2024-03-01 12:00:00+00:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewInvoiceRepository(nil, tt.driver, "onfly", tt.location)
			require.NoError(t, err)

			query, args, err := repo.(*invoiceRepository).buildQuery(tt.since)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSQL, query)
			if len(tt.expectedArgs) == 0 {
				assert.Empty(t, args)
				return
			}
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestBuildQuery_KeepsFractionalSeconds(t *testing.T) {
	since := time.Date(2024, 3, 1, 12, 0, 0, 250000000, time.UTC)

	repo, err := NewInvoiceRepository(nil, config.DriverMySQL, "onfly", time.UTC)
	require.NoError(t, err)

	_, args, err := repo.(*invoiceRepository).buildQuery(&since)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"2024-03-01 12:00:00.25"}, args)
}

func TestNewInvoiceRepository_UnsupportedDriver(t *testing.T) {
	_, err := NewInvoiceRepository(nil, "sqlite3", "onfly", nil)
	assert.ErrorIs(t, err, config.ErrUnsupportedDriver)
}

func TestListModifiedSince_ScansRows(t *testing.T) {
	repo, mock := newMockRepository(t, config.DriverMySQL, time.UTC)

	rows := sqlmock.NewRows(invoiceColumns).
		AddRow("inv-1", "42", "Açaí Viagens", "2024-01-31 10:00:00", "2024-02-10 00:00:00", "2024-02-09 14:30:15",
			"Fatura 01/01/2024 a 31/01/2024", "paid", "finished", "123456", int64(2), "2024-02-09 14:30:15").
		AddRow("inv-2", nil, nil, nil, nil, "2024-02-11 08:00:00",
			nil, "pending", nil, "1,000", nil, "2024-02-11 08:00:00")

	mock.ExpectQuery(regexp.QuoteMeta(expectedSelect("CHAR") + " ORDER BY pi.due_date, pi.id")).
		WillReturnRows(rows)

	invoices, err := repo.ListModifiedSince(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	first := invoices[0]
	assert.Equal(t, "inv-1", first.InvoiceID)
	require.NotNil(t, first.CompanyID)
	assert.Equal(t, "42", *first.CompanyID)
	assert.Equal(t, "Açaí Viagens", *first.CompanyName)
	assert.Equal(t, "2024-02-10 00:00:00", *first.DueDate)
	assert.Equal(t, "123456", *first.Amount)
	require.NotNil(t, first.PaymentTypeCode)
	assert.Equal(t, int64(2), *first.PaymentTypeCode)

	second := invoices[1]
	assert.Nil(t, second.CompanyID)
	assert.Nil(t, second.CompanyName)
	assert.Nil(t, second.InvoiceGeneration)
	assert.Nil(t, second.StatusProcess)
	assert.Nil(t, second.PaymentTypeCode)
	assert.Equal(t, "1,000", *second.Amount)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListModifiedSince_PassesWatermark(t *testing.T) {
	repo, mock := newMockRepository(t, config.DriverPostgres, time.UTC)
	since := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("pi.updated_at > $1")).
		WithArgs("2024-03-01 12:00:00+00:00").
		WillReturnRows(sqlmock.NewRows(invoiceColumns))

	invoices, err := repo.ListModifiedSince(context.Background(), &since)
	require.NoError(t, err)
	assert.Empty(t, invoices)
	assert.NotNil(t, invoices)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListModifiedSince_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t, config.DriverMySQL, time.UTC)
	dbErr := errors.New("conexão recusada")

	mock.ExpectQuery("SELECT").WillReturnError(dbErr)

	_, err := repo.ListModifiedSince(context.Background(), nil)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListModifiedSince_RowError(t *testing.T) {
	repo, mock := newMockRepository(t, config.DriverMySQL, time.UTC)
	rowErr := errors.New("conexão perdida")

	rows := sqlmock.NewRows(invoiceColumns).
		AddRow("inv-1", "42", "Onfly", nil, nil, "2024-02-09 14:30:15", nil, "pending", nil, "100", int64(1), "2024-02-09 14:30:15").
		RowError(0, rowErr)
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err := repo.ListModifiedSince(context.Background(), nil)
	assert.ErrorIs(t, err, rowErr)
}

func TestListModifiedSince_ScanError(t *testing.T) {
	repo, mock := newMockRepository(t, config.DriverMySQL, time.UTC)

	rows := sqlmock.NewRows(invoiceColumns).
		AddRow("inv-1", "42", "Onfly", nil, nil, "2024-02-09 14:30:15", nil, "pending", nil, "100", "cartão", "2024-02-09 14:30:15")
	mock.ExpectQuery("SELECT").WillReturnRows(rows)

	_, err := repo.ListModifiedSince(context.Background(), nil)
	assert.ErrorContains(t, err, "erro ao escanear fatura")
}
