package transforming

import (
	"regexp"

	"github.com/vfg2006/billing-status-sync/pkg/utils"
	"golang.org/x/text/unicode/norm"
)

const billingPeriodSeparator = " - "

var (
	datePattern = regexp.MustCompile(`\d{2}/\d{2}/\d{4}`)

	// letras latinas (com acentos do Latin-1, sem × e ÷) e espaço
	nonNameChars = regexp.MustCompile(`[^A-Za-zÀ-ÖØ-öø-ÿ ]+`)
)

// BillingPeriod extrai as duas primeiras datas DD/MM/AAAA da descrição.
// Com menos de duas datas o período fica vazio.
func BillingPeriod(description string) string {
	cleaned := utils.CollapseWhitespace(description)

	dates := datePattern.FindAllString(cleaned, 2)
	if len(dates) < 2 {
		return ""
	}

	return dates[0] + billingPeriodSeparator + dates[1]
}

// CleanCompanyName mantém apenas letras e espaços, colapsando e aparando os espaços
func CleanCompanyName(name string) string {
	name = norm.NFC.String(name)
	name = nonNameChars.ReplaceAllString(name, "")
	return utils.CollapseAndTrim(name)
}
