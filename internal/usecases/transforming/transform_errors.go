package transforming

import (
	"errors"
	"fmt"
)

var (
	ErrMissingInvoiceID = errors.New("invoice_id ausente")
	ErrMissingTimestamp = errors.New("timestamp obrigatório ausente")
	ErrInvalidTimestamp = errors.New("timestamp inválido")
	ErrMissingAmount    = errors.New("valor ausente")
	ErrInvalidAmount    = errors.New("valor não numérico")
)

// TransformError identifica a fatura e o campo que impediram a conversão
type TransformError struct {
	Err       error
	InvoiceID string
	Field     string
	Value     string
}

func (e *TransformError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("fatura %q, campo %s (%q): %s", e.InvoiceID, e.Field, e.Value, e.Err.Error())
	}
	return fmt.Sprintf("fatura %q, campo %s: %s", e.InvoiceID, e.Field, e.Err.Error())
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

func newTransformError(err error, invoiceID, field string, value *string) *TransformError {
	transformErr := &TransformError{
		Err:       err,
		InvoiceID: invoiceID,
		Field:     field,
	}
	if value != nil {
		transformErr.Value = *value
	}
	return transformErr
}
