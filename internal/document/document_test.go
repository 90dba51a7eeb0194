package document

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportSNILS(t *testing.T) {
	report := NewChecker().Report(context.Background(), "11223344595", "")
	lines := strings.Split(report, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Проверка СНИЛС: 11223344595 - (данные из госбаз не реализованы)", lines[0])
	assert.Equal(t, "Кредитная история: (данные не реализованы)", lines[1])
}

func TestReportPassport(t *testing.T) {
	report := NewChecker().Report(context.Background(), "", "1234567890")
	lines := strings.Split(report, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Проверка паспорта: 1234567890 - (данные из госбаз не реализованы)", lines[0])
	assert.Equal(t, "Кредитная история: (данные не реализованы)", lines[1])
}

func TestReportAlwaysHasCreditLine(t *testing.T) {
	report := NewChecker().Report(context.Background(), "", "")
	assert.Equal(t, "Кредитная история: (данные не реализованы)", report)
}
