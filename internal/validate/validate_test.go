package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullName(t *testing.T) {
	valid := []string{
		"Иван Иванов",
		"Иванов Иван Иванович",
		"  Анна-Мария Петрова  ",
	}
	for _, name := range valid {
		assert.True(t, FullName(name), "expected %q to be accepted", name)
	}

	invalid := []string{
		"",
		"   ",
		"Иван",
		"John Smith",
		"Иван Smith",
		"Иван 123",
		"Иван Иванов!",
	}
	for _, name := range invalid {
		assert.False(t, FullName(name), "expected %q to be rejected", name)
	}
}

func TestSNILS(t *testing.T) {
	// 112-233-445 95 is the canonical example: weighted sum 95.
	assert.True(t, SNILS("11223344595"))
	assert.True(t, SNILS(" 112 233 445 95 "))
	// Weighted sum 165 -> 165 mod 101 = 64.
	assert.True(t, SNILS("12345678964"))
	// Weighted sum exactly 100 maps to control 00.
	assert.True(t, SNILS("92000000300"))

	assert.False(t, SNILS("12345678901"), "checksum mismatch must be rejected")
	assert.False(t, SNILS("1122334459"), "too short")
	assert.False(t, SNILS("112233445951"), "too long")
	assert.False(t, SNILS("1122334459a"))
	assert.False(t, SNILS(""))
}

// Changing a single digit of a valid number must not always pass: the
// checksum has to reject at least some one-digit mutations.
func TestSNILSRejectsMutations(t *testing.T) {
	const valid = "11223344595"
	rejected := 0
	for i := 0; i < 9; i++ {
		mutated := []byte(valid)
		mutated[i] = '0' + (valid[i]-'0'+1)%10
		if !SNILS(string(mutated)) {
			rejected++
		}
	}
	assert.Greater(t, rejected, 0)
}

func TestPassportNumber(t *testing.T) {
	assert.True(t, PassportNumber("123456789"))
	assert.True(t, PassportNumber("1234567890"))
	assert.True(t, PassportNumber("123456789012"))
	assert.True(t, PassportNumber("12345678901234"))

	assert.False(t, PassportNumber("12345678"), "length 8 not accepted")
	assert.False(t, PassportNumber("12345678901"), "length 11 routes to SNILS")
	assert.False(t, PassportNumber("1234567890123"), "length 13 not accepted")
	assert.False(t, PassportNumber("12345abcd"))
	assert.False(t, PassportNumber(""))
}
