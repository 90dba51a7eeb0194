// Package document assembles the verification report for the submitted
// identity document. The checks themselves are a pending integration: no
// authoritative registry is consulted yet, so every check contributes a
// placeholder line. The line-per-check shape is the contract — a real
// registry client can replace any single line without touching callers.
package document

import (
	"context"
	"fmt"
	"strings"
)

// Checker produces the document verification report.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// Report builds one line per applicable check plus the credit-history line.
// Exactly one of snils/passport is expected to be non-empty; an empty pair
// still yields the credit-history line.
func (c *Checker) Report(ctx context.Context, snils, passport string) string {
	_ = ctx // reserved for the real registry clients

	var lines []string
	if snils != "" {
		lines = append(lines, fmt.Sprintf("Проверка СНИЛС: %s - (данные из госбаз не реализованы)", snils))
	}
	if passport != "" {
		lines = append(lines, fmt.Sprintf("Проверка паспорта: %s - (данные из госбаз не реализованы)", passport))
	}
	lines = append(lines, "Кредитная история: (данные не реализованы)")

	return strings.Join(lines, "\n")
}
