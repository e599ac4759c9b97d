package otp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"encoding/base32"
	"errors"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Digits is the code length. The login flow rejects anything else before
	// validation is attempted.
	Digits = 6
	// Period is the TOTP time step in seconds (RFC 6238 standard).
	Period = 30
	// SecretBytes is the raw secret size: 160 bits per RFC 4226, which
	// base32-encodes to a 32-character key.
	SecretBytes = 20
)

var (
	// SecretKeyRegex ensures Base32 format: uppercase A-Z, digits 2-7, optional padding
	SecretKeyRegex = regexp.MustCompile("^[A-Z2-7]+=*$")

	codeRegex = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, Digits))
)

// GenerateSecretKey generates a new Base32-encoded secret key for TOTP.
func GenerateSecretKey() (string, error) {
	secret := make([]byte, SecretBytes)
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecretKey, err)
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// ProvisioningURI creates an otpauth:// URI for enrolling the secret in an
// authenticator app. The URI format follows the Key Uri Format specification:
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
//
// Rendering the URI to a scannable image is the caller's concern; see the
// qrcode package.
func ProvisioningURI(secret, accountName, issuer string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	if !SecretKeyRegex.MatchString(secret) {
		return "", ErrInvalidSecret
	}
	if accountName == "" {
		return "", ErrMissingAccountName
	}
	if issuer == "" {
		return "", ErrMissingIssuer
	}

	label := fmt.Sprintf("%s:%s",
		url.PathEscape(issuer),
		url.PathEscape(accountName),
	)

	query := url.Values{}
	query.Set("secret", secret)
	query.Set("issuer", issuer)

	return fmt.Sprintf("otpauth://totp/%s?%s", label, query.Encode()), nil
}

// ValidateCode validates the code provided by the user against the current
// time. Codes from the previous and next 30-second windows are accepted to
// tolerate clock drift between the server and the authenticator device.
func ValidateCode(secret, code string) (bool, error) {
	return ValidateCodeAt(secret, code, time.Now())
}

// ValidateCodeAt is ValidateCode evaluated at an arbitrary instant. Exposed
// so the acceptance window can be tested deterministically.
func ValidateCodeAt(secret, code string, t time.Time) (bool, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return false, err
	}

	code = strings.TrimSpace(code)
	if !codeRegex.MatchString(code) {
		return false, ErrInvalidCode
	}

	counter := t.Unix() / Period

	// ±1 window: previous, current, and next time step.
	for i := int64(-1); i <= 1; i++ {
		if fmt.Sprintf("%06d", hotp(key, counter+i, Digits)) == code {
			return true, nil
		}
	}

	return false, nil
}

// GenerateCode generates the code for the current 30-second window. This is
// for operator display and enrollment verification only; it is never a
// substitute for ValidateCode.
func GenerateCode(secret string) (string, error) {
	return GenerateCodeAt(secret, time.Now())
}

// GenerateCodeAt generates the code for the window containing t.
func GenerateCodeAt(secret string, t time.Time) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", hotp(key, t.Unix()/Period, Digits)), nil
}

func decodeSecret(secret string) ([]byte, error) {
	secret = strings.TrimSpace(strings.ToUpper(secret))
	if !SecretKeyRegex.MatchString(secret) {
		return nil, ErrInvalidSecret
	}
	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.TrimRight(secret, "="))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	return key, nil
}

// hotp implements the RFC 4226 HMAC-based One-Time Password algorithm,
// converting a counter value into a numeric code using HMAC-SHA1.
func hotp(key []byte, counter int64, digits int) int {
	// Counter as big-endian 8-byte array (RFC 4226 requirement).
	counterBytes := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		counterBytes[i] = byte(counter & 0xff)
		counter = counter >> 8
	}

	hmacHash := hmac.New(sha1.New, key)
	hmacHash.Write(counterBytes)
	hash := hmacHash.Sum(nil)

	// Dynamic truncation (RFC 4226): last 4 bits select the offset.
	offset := hash[len(hash)-1] & 0x0f
	code := (int(hash[offset]&0x7f) << 24) |
		(int(hash[offset+1]&0xff) << 16) |
		(int(hash[offset+2]&0xff) << 8) |
		(int(hash[offset+3] & 0xff))

	return code % int(math.Pow10(digits))
}
