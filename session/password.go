// ABOUTME: Password strength scoring and client-side hashing for staff auth
// ABOUTME: Passwords only ever leave the process as SHA-256 hex digests
package session

import (
	"crypto/sha256"
	"encoding/hex"
)

// MinPasswordLength is the shortest password that can score at all.
const MinPasswordLength = 8

// Strength labels.
const (
	StrengthTooShort = "too short"
	StrengthWeak     = "weak"
	StrengthModerate = "moderate"
	StrengthStrong   = "strong"
)

// Strength is a 0 to 5 password score with a label.
type Strength struct {
	Score int
	Label string
}

// Acceptable reports whether the password is strong enough for signup.
func (s Strength) Acceptable() bool {
	return s.Score > 2
}

// PasswordStrength scores pw: one point each for at least 8 characters,
// at least 12 characters, mixed case, a digit, and a symbol. Anything
// shorter than 8 characters scores 0.
func PasswordStrength(pw string) Strength {
	if len([]rune(pw)) < MinPasswordLength {
		return Strength{Score: 0, Label: StrengthTooShort}
	}

	score := 1
	if len([]rune(pw)) >= 12 {
		score++
	}

	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			symbol = true
		}
	}
	if lower && upper {
		score++
	}
	if digit {
		score++
	}
	if symbol {
		score++
	}

	switch {
	case score <= 2:
		return Strength{Score: score, Label: StrengthWeak}
	case score == 3:
		return Strength{Score: score, Label: StrengthModerate}
	}
	return Strength{Score: score, Label: StrengthStrong}
}

// HashPassword returns the lowercase hex SHA-256 of pw.
func HashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}
