package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when content string is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrGenerationFailed is returned when QR code encoding fails.
	ErrGenerationFailed = errors.New("failed to generate QR code")
)

// defaultSize is the size in pixels used when no size is specified
const defaultSize = 256

// Generate creates a QR code image in PNG format with the given content,
// typically an otpauth:// provisioning URI. Returns the image as a byte
// slice or an error if generation fails.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerationFailed, err)
	}
	return png, nil
}

// GenerateBase64Image creates a data-URI string representation of a QR code
// image with the given content, suitable for direct embedding in an <img>
// tag by whatever presentation layer renders the enrollment screen.
func GenerateBase64Image(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
