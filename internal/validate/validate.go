// Package validate holds the pure classifiers for user-supplied intake
// fields. All functions are total: they never fail, they only answer whether
// the input is well-formed.
package validate

import (
	"strings"
	"unicode"
)

// FullName reports whether text looks like a Cyrillic full name: at least
// two whitespace-separated tokens, each made of Cyrillic letters and
// hyphens only.
func FullName(text string) bool {
	tokens := strings.Fields(strings.TrimSpace(text))
	if len(tokens) < 2 {
		return false
	}
	for _, token := range tokens {
		for _, r := range token {
			if r == '-' {
				continue
			}
			if !unicode.Is(unicode.Cyrillic, r) {
				return false
			}
		}
	}
	return true
}

// snilsWeights are applied to the first nine digits, left to right.
var snilsWeights = [9]int{9, 8, 7, 6, 5, 4, 3, 2, 1}

// SNILS reports whether text is a valid insurance account number: eleven
// digits after stripping internal spaces, with the last two digits matching
// the weighted checksum of the first nine. The control value is the weighted
// sum modulo 101, with 100 mapped to 00.
func SNILS(text string) bool {
	digits := strings.ReplaceAll(strings.TrimSpace(text), " ", "")
	if len(digits) != 11 || !allDigits(digits) {
		return false
	}

	sum := 0
	for i, w := range snilsWeights {
		sum += int(digits[i]-'0') * w
	}
	control := sum % 101
	if control == 100 {
		control = 0
	}

	got := int(digits[9]-'0')*10 + int(digits[10]-'0')
	return got == control
}

// passportLengths are the accepted series+number combinations.
var passportLengths = map[int]bool{9: true, 10: true, 12: true, 14: true}

// PassportNumber reports whether text has the shape of a passport
// series+number: all digits, length 9, 10, 12 or 14. No checksum exists for
// these documents.
func PassportNumber(text string) bool {
	text = strings.TrimSpace(text)
	return passportLengths[len(text)] && allDigits(text)
}

// Digits reports whether s is non-empty and contains only ASCII digits.
// The conversation engine uses it to route document input by shape before
// running the real classifiers.
func Digits(s string) bool {
	return allDigits(s)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
