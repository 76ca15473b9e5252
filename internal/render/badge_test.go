package render

import (
	"bytes"
	"context"
	"image/png"
	"strings"
	"testing"
)

func testBadgeRenderer() *BadgeRenderer {
	return NewBadgeRenderer("Plogging Ethiopia", "https://app.ploggingethiopia.org", nil, NewFontSet(nil))
}

func TestBadgePNG_Dimensions(t *testing.T) {
	data := BadgeData{
		VolunteerName: "Abebe Kebede",
		TotalHours:    42.5,
		BadgeID:       "BDG-ABC123-DEF456",
	}

	pngBytes, err := testBadgeRenderer().PNG(context.Background(), data)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("decode badge PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 500 {
		t.Fatalf("badge dimensions = %dx%d, want 320x500", bounds.Dx(), bounds.Dy())
	}
}

func TestBadgeDataURL_Prefix(t *testing.T) {
	data := BadgeData{VolunteerName: "Sara Tesfaye", BadgeID: "BDG-X-Y"}

	url, err := testBadgeRenderer().DataURL(context.Background(), data)
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Fatalf("DataURL prefix = %q", url[:30])
	}
}

func TestBadgePNG_Deterministic(t *testing.T) {
	data := BadgeData{
		VolunteerName: "Abebe Kebede",
		TotalHours:    12.25,
		BadgeID:       "BDG-ABC123-DEF456",
	}
	r := testBadgeRenderer()

	first, err := r.PNG(context.Background(), data)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	second, err := r.PNG(context.Background(), data)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("two renders of the same badge produced different output")
	}
}

// An unreachable profile image URL must degrade to the initials avatar, not
// fail the badge.
func TestBadgePNG_UnreachableImageFallsBack(t *testing.T) {
	fetcher := NewImageFetcher("", nil)
	r := NewBadgeRenderer("Plogging Ethiopia", "https://app.ploggingethiopia.org", fetcher, NewFontSet(nil))

	data := BadgeData{
		VolunteerName:   "Sara Tesfaye",
		TotalHours:      8,
		BadgeID:         "BDG-X-Y",
		ProfileImageURL: "http://127.0.0.1:1/nowhere.png",
	}

	pngBytes, err := r.PNG(context.Background(), data)
	if err != nil {
		t.Fatalf("PNG with unreachable image: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(pngBytes))
	if err != nil {
		t.Fatalf("decode badge PNG: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 500 {
		t.Fatalf("badge dimensions = %dx%d, want 320x500", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestQRTarget(t *testing.T) {
	r := testBadgeRenderer()
	got := r.QRTarget("BDG-ABC-DEF")
	want := "https://app.ploggingethiopia.org/badge/BDG-ABC-DEF"
	if got != want {
		t.Fatalf("QRTarget = %q, want %q", got, want)
	}
}

func TestQRTarget_TrailingSlashTrimmed(t *testing.T) {
	r := NewBadgeRenderer("Plogging Ethiopia", "https://example.org/", nil, NewFontSet(nil))
	if got := r.QRTarget("BDG-1"); got != "https://example.org/badge/BDG-1" {
		t.Fatalf("QRTarget = %q", got)
	}
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Jane Doe":        "JD",
		"Jane":            "J",
		"jane doe":        "JD",
		"Jane Ann Doe":    "JA",
		"":                "",
		"  Jane   Doe  ":  "JD",
	}
	for in, want := range cases {
		if got := initials(in); got != want {
			t.Fatalf("initials(%q) = %q, want %q", in, got, want)
		}
	}
}
