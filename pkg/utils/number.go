package utils

import "strings"

var thousandsSeparators = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "")

// StripThousandsSeparators remove separadores de milhar de uma representação numérica.
// O ponto é preservado como separador decimal.
func StripThousandsSeparators(s string) string {
	return thousandsSeparators.Replace(strings.TrimSpace(s))
}
