// Package qrcode renders TOTP provisioning URIs as scannable PNG images.
// It is a thin wrapper over github.com/skip2/go-qrcode kept separate from the
// otp package so the second-factor engine itself stays presentation-free.
package qrcode
