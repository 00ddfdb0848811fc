package credentials

import (
	"strings"
	"unicode/utf8"
)

const (
	MinPasswordLength = 8

	// PasswordSymbols is the closed set of characters accepted for the symbol rule.
	PasswordSymbols = `!@#$%^&*(),.?":{}|<>`
)

const (
	ReasonTooShort         = "too short"
	ReasonMissingUppercase = "missing uppercase"
	ReasonMissingLowercase = "missing lowercase"
	ReasonMissingDigit     = "missing digit"
	ReasonMissingSymbol    = "missing symbol"
)

type passwordRule struct {
	reason string
	ok     func(string) bool
}

// Order matters: only the first violated rule is reported.
var passwordRules = []passwordRule{
	{ReasonTooShort, func(p string) bool { return utf8.RuneCountInString(p) >= MinPasswordLength }},
	{ReasonMissingUppercase, func(p string) bool { return containsByte(p, isASCIIUpper) }},
	{ReasonMissingLowercase, func(p string) bool { return containsByte(p, isASCIILower) }},
	{ReasonMissingDigit, func(p string) bool { return containsByte(p, isASCIIDigit) }},
	{ReasonMissingSymbol, func(p string) bool { return strings.ContainsAny(p, PasswordSymbols) }},
}

// ValidatePassword checks password against the registration policy.
func ValidatePassword(password string) ValidationResult {
	for _, rule := range passwordRules {
		if !rule.ok(password) {
			return ValidationResult{Valid: false, Reason: rule.reason}
		}
	}
	return ValidationResult{Valid: true}
}

func containsByte(s string, pred func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if pred(s[i]) {
			return true
		}
	}
	return false
}

func isASCIIUpper(b byte) bool { return 'A' <= b && b <= 'Z' }
func isASCIILower(b byte) bool { return 'a' <= b && b <= 'z' }
func isASCIIDigit(b byte) bool { return '0' <= b && b <= '9' }
