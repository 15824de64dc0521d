package transforming

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/billing-status-sync/internal/domain"
	"github.com/vfg2006/billing-status-sync/pkg/utils"
)

var (
	minorUnitsPerMajor = decimal.NewFromInt(100)

	paymentTypesByCode = map[int64]domain.PaymentType{
		1: domain.PaymentTypeBoleto,
		2: domain.PaymentTypeCreditCard,
	}

	// layouts com fuso explícito
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999Z07",
		"2006-01-02 15:04:05.999999999 -0700 MST",
	}

	// layouts sem fuso, interpretados no fuso da origem
	naiveLayouts = []string{
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
		time.DateOnly,
	}
)

// PaymentTypeFromCode resolve o código da origem. Códigos desconhecidos viram vazio.
func PaymentTypeFromCode(code *int64) domain.PaymentType {
	if code == nil {
		return domain.PaymentTypeNone
	}
	if paymentType, ok := paymentTypesByCode[*code]; ok {
		return paymentType
	}
	return domain.PaymentTypeNone
}

// ParseAmount converte o valor em centavos para reais com duas casas
func ParseAmount(raw *string) (decimal.Decimal, error) {
	if raw == nil {
		return decimal.Zero, ErrMissingAmount
	}

	cleaned := utils.StripThousandsSeparators(*raw)
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	minorUnits, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}

	return minorUnits.Div(minorUnitsPerMajor).Round(2), nil
}

// ParseTimestamp converte o texto do driver para UTC.
// Valores sem fuso são interpretados em loc.
func ParseTimestamp(raw string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}

	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range naiveLayouts {
		if parsed, err := time.ParseInLocation(layout, value, loc); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, ErrInvalidTimestamp
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
