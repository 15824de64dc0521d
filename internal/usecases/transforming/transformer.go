package transforming

import (
	"strings"
	"time"

	"github.com/vfg2006/billing-status-sync/internal/domain"
)

// Transformer normaliza as linhas brutas da origem no formato canônico do histórico
type Transformer struct {
	sourceLocation *time.Location
}

// NewTransformer cria um transformer. sourceLocation é o fuso dos timestamps sem fuso da origem.
func NewTransformer(sourceLocation *time.Location) *Transformer {
	if sourceLocation == nil {
		sourceLocation = time.UTC
	}
	return &Transformer{sourceLocation: sourceLocation}
}

// TransformBatch converte todas as linhas com o mesmo inserted_at.
// Qualquer linha inválida aborta o lote inteiro.
func (t *Transformer) TransformBatch(rows []domain.RawInvoiceRow, runAt time.Time) ([]domain.InvoiceRecord, error) {
	records := make([]domain.InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		record, err := t.Transform(row, runAt)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (t *Transformer) Transform(row domain.RawInvoiceRow, runAt time.Time) (domain.InvoiceRecord, error) {
	invoiceID := strings.TrimSpace(row.InvoiceID)
	if invoiceID == "" {
		return domain.InvoiceRecord{}, newTransformError(ErrMissingInvoiceID, row.InvoiceID, "invoice_id", nil)
	}

	if row.UpdatedAt == nil {
		return domain.InvoiceRecord{}, newTransformError(ErrMissingTimestamp, invoiceID, "updated_at", nil)
	}
	updatedAt, err := ParseTimestamp(*row.UpdatedAt, t.sourceLocation)
	if err != nil {
		return domain.InvoiceRecord{}, newTransformError(err, invoiceID, "updated_at", row.UpdatedAt)
	}

	invoiceGeneration, err := t.optionalTimestamp(row.InvoiceGeneration)
	if err != nil {
		return domain.InvoiceRecord{}, newTransformError(err, invoiceID, "invoice_generation", row.InvoiceGeneration)
	}

	dueDate, err := t.optionalTimestamp(row.DueDate)
	if err != nil {
		return domain.InvoiceRecord{}, newTransformError(err, invoiceID, "due_date", row.DueDate)
	}

	amount, err := ParseAmount(row.Amount)
	if err != nil {
		return domain.InvoiceRecord{}, newTransformError(err, invoiceID, "amount", row.Amount)
	}

	record := domain.InvoiceRecord{
		InvoiceID:         invoiceID,
		CompanyID:         stringOrEmpty(row.CompanyID),
		CompanyName:       CleanCompanyName(stringOrEmpty(row.CompanyName)),
		BillingPeriod:     BillingPeriod(stringOrEmpty(row.Description)),
		InvoiceGeneration: invoiceGeneration,
		DueDate:           dueDate,
		StatusInvoice:     stringOrEmpty(row.StatusInvoice),
		StatusProcess:     stringOrEmpty(row.StatusProcess),
		PaymentType:       PaymentTypeFromCode(row.PaymentTypeCode),
		Amount:            amount,
		UpdatedAt:         updatedAt,
		InsertedAt:        runAt.UTC(),
	}

	// Data de pagamento só existe para faturas pagas, mesmo que a origem traga valor
	if record.IsPaid() {
		record.PaymentDate, err = t.optionalTimestamp(row.PaymentDate)
		if err != nil {
			return domain.InvoiceRecord{}, newTransformError(err, invoiceID, "payment_date", row.PaymentDate)
		}
	}

	return record, nil
}

func (t *Transformer) optionalTimestamp(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}

	parsed, err := ParseTimestamp(*raw, t.sourceLocation)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
