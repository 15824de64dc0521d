package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPaid = "paid"
)

type PaymentType string

const (
	PaymentTypeNone       PaymentType = ""
	PaymentTypeBoleto     PaymentType = "Boleto"
	PaymentTypeCreditCard PaymentType = "Cartão de Crédito"
)

// RawInvoiceRow é a linha como sai da fonte relacional, sem conversões.
// Timestamps chegam como texto do driver, códigos e valores em unidades mínimas.
type RawInvoiceRow struct {
	InvoiceID         string
	CompanyID         *string
	CompanyName       *string
	InvoiceGeneration *string
	DueDate           *string
	PaymentDate       *string
	Description       *string
	StatusInvoice     *string
	StatusProcess     *string
	Amount            *string
	PaymentTypeCode   *int64
	UpdatedAt         *string
}

// InvoiceRecord é o registro canônico do histórico de faturas.
type InvoiceRecord struct {
	InvoiceID         string          `json:"invoice_id"`
	CompanyID         string          `json:"company_id"`
	CompanyName       string          `json:"company_name"`
	BillingPeriod     string          `json:"billing_period"`
	InvoiceGeneration *time.Time      `json:"invoice_generation"`
	DueDate           *time.Time      `json:"due_date"`
	PaymentDate       *time.Time      `json:"payment_date"`
	StatusInvoice     string          `json:"status_invoice"`
	StatusProcess     string          `json:"status_process"`
	PaymentType       PaymentType     `json:"payment_type"`
	Amount            decimal.Decimal `json:"amount"`
	UpdatedAt         time.Time       `json:"updated_at"`
	InsertedAt        time.Time       `json:"inserted_at"`
}

// IsPaid indica se a fatura está paga
func (r InvoiceRecord) IsPaid() bool {
	return r.StatusInvoice == InvoiceStatusPaid
}
