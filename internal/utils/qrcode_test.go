package utils

import (
	"regexp"
	"testing"
)

func TestGenerateQRToken(t *testing.T) {
	token, err := GenerateQRToken()
	if err != nil {
		t.Fatalf("GenerateQRToken: %v", err)
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(token) {
		t.Fatalf("token = %q, want 32 hex chars", token)
	}

	other, err := GenerateQRToken()
	if err != nil {
		t.Fatalf("GenerateQRToken: %v", err)
	}
	if token == other {
		t.Fatal("two tokens should not collide")
	}
}

func TestGenerateQRCodeImage_SizeClamp(t *testing.T) {
	img, err := GenerateQRCodeImage("https://app.ploggingethiopia.org/badge/BDG-1", 10)
	if err != nil {
		t.Fatalf("GenerateQRCodeImage: %v", err)
	}
	if img.Bounds().Dx() < 64 {
		t.Fatalf("image width = %d, want >= 64", img.Bounds().Dx())
	}

	img, err = GenerateQRCodeImage("https://app.ploggingethiopia.org/badge/BDG-1", 120)
	if err != nil {
		t.Fatalf("GenerateQRCodeImage: %v", err)
	}
	if img.Bounds().Dx() != 120 {
		t.Fatalf("image width = %d, want 120", img.Bounds().Dx())
	}
}
