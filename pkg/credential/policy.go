package credential

import (
	"regexp"
	"strings"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

var (
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
	lowercaseRegex   = regexp.MustCompile(`[a-z]`)
	digitRegex       = regexp.MustCompile(`[0-9]`)
	specialCharRegex = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?~` + "`" + `]`)

	// Frequently compromised passwords that satisfy the character-class rules
	// but are still trivially guessable.
	commonPasswords = map[string]bool{
		"password":     true,
		"password1":    true,
		"password123":  true,
		"password123!": true,
		"password1!":   true,
		"password!":    true,
		"p@ssword1":    true,
		"p@ssw0rd":     true,
		"welcome123!":  true,
		"qwerty123!":   true,
		"qwerty123":    true,
		"letmein":      true,
		"welcome1":     true,
		"admin123":     true,
		"trustno1":     true,
		"iloveyou":     true,
		"sunshine1":    true,
		"master123":    true,
	}
)

// PolicyCheck validates a password against the account password policy.
// Rules are checked in a fixed order and the first violation is returned:
// length, uppercase, lowercase, digit, special character. A nil result means
// the password meets all requirements.
func PolicyCheck(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if !uppercaseRegex.MatchString(password) {
		return ErrPasswordNoUppercase
	}
	if !lowercaseRegex.MatchString(password) {
		return ErrPasswordNoLowercase
	}
	if !digitRegex.MatchString(password) {
		return ErrPasswordNoDigit
	}
	if !specialCharRegex.MatchString(password) {
		return ErrPasswordNoSpecialChar
	}
	return nil
}

// IsCommonPassword reports whether the password appears on the list of
// frequently compromised passwords. Checked case-insensitively and separately
// from PolicyCheck so the policy rule ordering stays deterministic.
func IsCommonPassword(password string) bool {
	return commonPasswords[strings.ToLower(password)]
}
