package utils

import (
	"regexp"
	"strings"
	"testing"
)

var artifactIDPattern = regexp.MustCompile(`^CERT-[0-9A-Z]+-[0-9A-Z]{6}$`)

func TestNewArtifactID_Format(t *testing.T) {
	id := NewArtifactID("CERT")
	if !artifactIDPattern.MatchString(id) {
		t.Fatalf("NewArtifactID = %q, want match for %s", id, artifactIDPattern)
	}
}

func TestNewArtifactID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewArtifactID("BDG")
		if seen[id] {
			t.Fatalf("duplicate artifact id after %d iterations: %q", i, id)
		}
		seen[id] = true
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Abebe Kebede":     "abebe-kebede",
		"  Sara  Tesfaye ": "sara-tesfaye",
		"Dawit's Cleanup!": "dawit-s-cleanup",
		"":                 "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Fatalf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCertificateFilename(t *testing.T) {
	name := CertificateFilename("Abebe Kebede")
	if !strings.HasPrefix(name, "certificate-abebe-kebede-") || !strings.HasSuffix(name, ".pdf") {
		t.Fatalf("CertificateFilename = %q", name)
	}
}

func TestBadgeFilename(t *testing.T) {
	if got := BadgeFilename("Abebe Kebede"); got != "badge-abebe-kebede.png" {
		t.Fatalf("BadgeFilename = %q", got)
	}
}
