package utils

import (
	"regexp"
	"strings"
)

// inclui espaços Unicode (NBSP etc.) e \v, que \s não cobre
var whitespaceRun = regexp.MustCompile(`[\s\p{Z}\v]+`)

// CollapseWhitespace troca qualquer sequência de espaços por um único espaço
func CollapseWhitespace(s string) string {
	return whitespaceRun.ReplaceAllString(s, " ")
}

// CollapseAndTrim colapsa espaços e remove os das pontas
func CollapseAndTrim(s string) string {
	return strings.TrimSpace(CollapseWhitespace(s))
}
