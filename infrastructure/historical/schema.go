package historical

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/billing-status-sync/internal/domain"
)

// invoiceRow é o layout da tabela billing_status_summary em Parquet.
// Campos ponteiro viram colunas opcionais e nil é gravado como nulo.
type invoiceRow struct {
	InvoiceID         string     `parquet:"invoice_id"`
	CompanyID         string     `parquet:"company_id"`
	CompanyName       string     `parquet:"company_name"`
	BillingPeriod     string     `parquet:"billing_period"`
	InvoiceGeneration *time.Time `parquet:"invoice_generation,timestamp(microsecond)"`
	DueDate           *time.Time `parquet:"due_date,timestamp(microsecond)"`
	PaymentDate       *time.Time `parquet:"payment_date,timestamp(microsecond)"`
	StatusInvoice     string     `parquet:"status_invoice"`
	StatusProcess     string     `parquet:"status_process"`
	PaymentType       string     `parquet:"payment_type"`
	Amount            float64    `parquet:"amount"`
	UpdatedAt         time.Time  `parquet:"updated_at,timestamp(microsecond)"`
	InsertedAt        time.Time  `parquet:"inserted_at,timestamp(microsecond)"`
}

func toRow(r domain.InvoiceRecord) invoiceRow {
	return invoiceRow{
		InvoiceID:         r.InvoiceID,
		CompanyID:         r.CompanyID,
		CompanyName:       r.CompanyName,
		BillingPeriod:     r.BillingPeriod,
		InvoiceGeneration: microPtr(r.InvoiceGeneration),
		DueDate:           microPtr(r.DueDate),
		PaymentDate:       microPtr(r.PaymentDate),
		StatusInvoice:     r.StatusInvoice,
		StatusProcess:     r.StatusProcess,
		PaymentType:       string(r.PaymentType),
		Amount:            r.Amount.InexactFloat64(),
		UpdatedAt:         micro(r.UpdatedAt),
		InsertedAt:        micro(r.InsertedAt),
	}
}

func fromRow(row invoiceRow) domain.InvoiceRecord {
	return domain.InvoiceRecord{
		InvoiceID:         row.InvoiceID,
		CompanyID:         row.CompanyID,
		CompanyName:       row.CompanyName,
		BillingPeriod:     row.BillingPeriod,
		InvoiceGeneration: microPtr(row.InvoiceGeneration),
		DueDate:           microPtr(row.DueDate),
		PaymentDate:       microPtr(row.PaymentDate),
		StatusInvoice:     row.StatusInvoice,
		StatusProcess:     row.StatusProcess,
		PaymentType:       domain.PaymentType(row.PaymentType),
		Amount:            decimal.NewFromFloat(row.Amount).Round(2),
		UpdatedAt:         micro(row.UpdatedAt),
		InsertedAt:        micro(row.InsertedAt),
	}
}

// micro alinha o instante à precisão gravada no arquivo
func micro(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return domain.TruncateToStored(t)
}

func microPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := micro(*t)
	return &v
}
