//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/vfg2006/billing-status-sync/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-status-sync/internal/config"
)

const sourceFixture = `
CREATE SCHEMA onfly;

CREATE TABLE onfly.companies (
	id   INTEGER PRIMARY KEY,
	nome TEXT NOT NULL
);

CREATE TABLE onfly.payment_invoice (
	id          VARCHAR(36) PRIMARY KEY,
	company_id  INTEGER,
	created_at  TIMESTAMP,
	due_date    TIMESTAMP,
	updated_at  TIMESTAMP NOT NULL,
	deleted_at  TIMESTAMP,
	description TEXT,
	status      VARCHAR(32),
	process     VARCHAR(32),
	amount      BIGINT,
	type        INTEGER
);

INSERT INTO onfly.companies (id, nome) VALUES (1, 'Onfly Tecnologia');

INSERT INTO onfly.payment_invoice
	(id, company_id, created_at, due_date, updated_at, deleted_at, description, status, process, amount, type)
VALUES
	('inv-1', 1, '2024-01-31 10:00:00', '2024-02-10 00:00:00', '2024-02-09 14:30:15', NULL,
	 'Fatura 01/01/2024 a 31/01/2024', 'paid', 'finished', 123456, 2),
	('inv-2', 99, '2024-02-01 10:00:00', '2024-02-20 00:00:00', '2024-02-15 08:00:00', NULL,
	 NULL, 'pending', NULL, 5000, 1),
	('inv-3', 1, '2024-02-01 10:00:00', '2024-02-25 00:00:00', '2024-02-16 08:00:00', '2024-02-17 00:00:00',
	 NULL, 'pending', NULL, 700, 1);

CREATE SCHEMA zoned;

CREATE TABLE zoned.companies (LIKE onfly.companies INCLUDING ALL);

CREATE TABLE zoned.payment_invoice (LIKE onfly.payment_invoice INCLUDING ALL);
ALTER TABLE zoned.payment_invoice ALTER COLUMN updated_at TYPE TIMESTAMPTZ;

INSERT INTO zoned.payment_invoice (id, updated_at, status, amount)
VALUES ('inv-z', '2024-02-09 14:30:15+00', 'pending', 100);
`

func startSource(t *testing.T) (*sqldb.Connection, *tcpostgres.PostgresContainer) {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("onfly"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("root"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "falha ao subir o PostgreSQL")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := sqldb.NewConnection(ctx, config.Source{Driver: config.DriverPostgres, DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = conn.ExecContext(ctx, sourceFixture)
	require.NoError(t, err)

	return conn, container
}

func TestInvoiceRepository_Postgres(t *testing.T) {
	conn, container := startSource(t)
	ctx := context.Background()

	repo, err := NewInvoiceRepository(conn, config.DriverPostgres, "onfly", time.UTC)
	require.NoError(t, err)

	t.Run("primeira execução traz todas as faturas ativas", func(t *testing.T) {
		invoices, err := repo.ListModifiedSince(ctx, nil)
		require.NoError(t, err)
		require.Len(t, invoices, 2)

		first := invoices[0]
		assert.Equal(t, "inv-1", first.InvoiceID)
		assert.Equal(t, "1", *first.CompanyID)
		assert.Equal(t, "Onfly Tecnologia", *first.CompanyName)
		assert.Equal(t, "2024-02-09 14:30:15", *first.UpdatedAt)
		assert.Equal(t, "123456", *first.Amount)
		assert.Equal(t, int64(2), *first.PaymentTypeCode)

		second := invoices[1]
		assert.Equal(t, "inv-2", second.InvoiceID)
		assert.Nil(t, second.CompanyID)
		assert.Nil(t, second.CompanyName)
		assert.Nil(t, second.Description)
	})

	t.Run("watermark filtra alterações anteriores", func(t *testing.T) {
		since := time.Date(2024, 2, 9, 14, 30, 15, 0, time.UTC)

		invoices, err := repo.ListModifiedSince(ctx, &since)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "inv-2", invoices[0].InvoiceID)
	})

	t.Run("watermark respeita o fuso da sessão em colunas timestamptz", func(t *testing.T) {
		dsn, err := container.ConnectionString(ctx, "sslmode=disable", "timezone=America/Sao_Paulo")
		require.NoError(t, err)

		zonedConn, err := sqldb.NewConnection(ctx, config.Source{Driver: config.DriverPostgres, DSN: dsn})
		require.NoError(t, err)
		t.Cleanup(func() { _ = zonedConn.Close() })

		zonedRepo, err := NewInvoiceRepository(zonedConn, config.DriverPostgres, "zoned", time.UTC)
		require.NoError(t, err)

		since := time.Date(2024, 2, 9, 14, 0, 0, 0, time.UTC)
		invoices, err := zonedRepo.ListModifiedSince(ctx, &since)
		require.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "inv-z", invoices[0].InvoiceID)
		assert.Equal(t, "2024-02-09 11:30:15-03", *invoices[0].UpdatedAt)
	})
}
