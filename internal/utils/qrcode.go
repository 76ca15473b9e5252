package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRToken creates the opaque token behind certificate verification URLs
func GenerateQRToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// GenerateQRCodePNG renders a QR code to PNG bytes
func GenerateQRCodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

// GenerateQRCodeImage renders a QR code as an in-memory image for compositing
// onto a raster canvas. Size is clamped to a sane range.
func GenerateQRCodeImage(content string, size int) (image.Image, error) {
	if size < 64 {
		size = 64
	}
	if size > 1000 {
		size = 1000
	}

	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return qr.Image(size), nil
}
