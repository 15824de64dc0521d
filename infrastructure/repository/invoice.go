package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/vfg2006/billing-status-sync/infrastructure/database/sqldb"
	"github.com/vfg2006/billing-status-sync/internal/config"
	"github.com/vfg2006/billing-status-sync/internal/domain"
)

const (
	paymentInvoiceTable = "payment_invoice pi"
	companiesTable      = "companies c"

	// formato naive usado para comparar com colunas sem fuso da origem
	sourceTimestampLayout = "2006-01-02 15:04:05.999999"
	// com offset explícito: TIMESTAMPTZ usa o offset e TIMESTAMP o ignora
	zonedTimestampLayout = "2006-01-02 15:04:05.999999-07:00"
)

type InvoiceRepository interface {
	ListModifiedSince(ctx context.Context, since *time.Time) ([]domain.RawInvoiceRow, error)
}

type invoiceRepository struct {
	conn     sqldb.Queryer
	schema   string
	location *time.Location
	dialect  dialect
}

// dialect reúne o que muda na query entre MySQL e PostgreSQL
type dialect struct {
	placeholder     squirrel.PlaceholderFormat
	textType        string
	timestampLayout string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return dialect{placeholder: squirrel.Question, textType: "CHAR", timestampLayout: sourceTimestampLayout}, nil
	case config.DriverPostgres:
		return dialect{placeholder: squirrel.Dollar, textType: "TEXT", timestampLayout: zonedTimestampLayout}, nil
	}
	return dialect{}, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
}

func NewInvoiceRepository(conn sqldb.Queryer, driver, schema string, location *time.Location) (InvoiceRepository, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}

	if location == nil {
		location = time.UTC
	}

	return &invoiceRepository{
		conn:     conn,
		schema:   schema,
		location: location,
		dialect:  d,
	}, nil
}

func (r *invoiceRepository) table(name string) string {
	if r.schema == "" {
		return name
	}
	return r.schema + "." + name
}

// asText converte a coluna para texto na própria origem; o transformer interpreta o valor
func (r *invoiceRepository) asText(column, alias string) string {
	return fmt.Sprintf("CAST(%s AS %s) AS %s", column, r.dialect.textType, alias)
}

func (r *invoiceRepository) buildQuery(since *time.Time) (string, []interface{}, error) {
	query := squirrel.
		Select(
			"pi.id AS invoice_id",
			r.asText("c.id", "company_id"),
			"c.nome AS company_name",
			r.asText("pi.created_at", "invoice_generation"),
			r.asText("pi.due_date", "due_date"),
			r.asText("pi.updated_at", "payment_date"),
			"pi.description",
			"pi.status AS status_invoice",
			"pi.process AS status_process",
			r.asText("pi.amount", "amount"),
			"pi.type AS payment_type",
			r.asText("pi.updated_at", "updated_at"),
		).
		From(r.table(paymentInvoiceTable)).
		LeftJoin(r.table(companiesTable) + " ON pi.company_id = c.id").
		Where(squirrel.Eq{"pi.deleted_at": nil})

	if since != nil {
		// a origem guarda horários sem fuso no fuso configurado
		watermark := since.In(r.location).Format(r.dialect.timestampLayout)
		query = query.Where(squirrel.Gt{"pi.updated_at": watermark})
	}

	sqlQuery, args, err := query.
		OrderBy("pi.due_date", "pi.id").
		PlaceholderFormat(r.dialect.placeholder).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return sqlQuery, args, nil
}

// ListModifiedSince devolve as faturas não removidas alteradas depois de since.
// since nil devolve todas.
func (r *invoiceRepository) ListModifiedSince(ctx context.Context, since *time.Time) ([]domain.RawInvoiceRow, error) {
	query, args, err := r.buildQuery(since)
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", describeDriverError(err))
	}
	defer rows.Close()

	invoices := make([]domain.RawInvoiceRow, 0)
	for rows.Next() {
		invoice, err := r.scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear fatura: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return invoices, nil
}

func (r *invoiceRepository) scanInvoice(rows *sql.Rows) (domain.RawInvoiceRow, error) {
	var (
		invoiceID         string
		companyID         sql.NullString
		companyName       sql.NullString
		invoiceGeneration sql.NullString
		dueDate           sql.NullString
		paymentDate       sql.NullString
		description       sql.NullString
		statusInvoice     sql.NullString
		statusProcess     sql.NullString
		amount            sql.NullString
		paymentType       sql.NullInt64
		updatedAt         sql.NullString
	)

	err := rows.Scan(
		&invoiceID,
		&companyID,
		&companyName,
		&invoiceGeneration,
		&dueDate,
		&paymentDate,
		&description,
		&statusInvoice,
		&statusProcess,
		&amount,
		&paymentType,
		&updatedAt,
	)
	if err != nil {
		return domain.RawInvoiceRow{}, err
	}

	row := domain.RawInvoiceRow{
		InvoiceID:         invoiceID,
		CompanyID:         nullableString(companyID),
		CompanyName:       nullableString(companyName),
		InvoiceGeneration: nullableString(invoiceGeneration),
		DueDate:           nullableString(dueDate),
		PaymentDate:       nullableString(paymentDate),
		Description:       nullableString(description),
		StatusInvoice:     nullableString(statusInvoice),
		StatusProcess:     nullableString(statusProcess),
		Amount:            nullableString(amount),
		UpdatedAt:         nullableString(updatedAt),
	}
	if paymentType.Valid {
		code := paymentType.Int64
		row.PaymentTypeCode = &code
	}

	return row, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// describeDriverError acrescenta o código nativo do banco à mensagem
func describeDriverError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
	}
	if myErr, ok := err.(*mysql.MySQLError); ok {
		return fmt.Errorf("erro no banco de dados: %w (código: %d)", myErr, myErr.Number)
	}
	return err
}
