package utils

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// NewArtifactID builds a printable artifact identifier of the form
// PREFIX-{base36 timestamp}-{base36 random}, upper-cased. Used for the
// certificate id printed on PDFs and the badge id embedded in QR targets.
func NewArtifactID(prefix string) string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)

	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand only fails when the OS entropy source is broken;
		// fall back to the clock rather than returning an error nobody handles
		binary.BigEndian.PutUint64(b[:], uint64(time.Now().UnixNano()))
	}
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(b[:])%(36*36*36*36*36*36), 36)
	for len(suffix) < 6 {
		suffix = "0" + suffix
	}

	return strings.ToUpper(fmt.Sprintf("%s-%s-%s", prefix, ts, suffix))
}

var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases a display name and collapses everything that is not a
// letter or digit into single dashes, for use in download filenames.
func Slugify(s string) string {
	s = slugRegex.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "-")
	return strings.Trim(s, "-")
}

// CertificateFilename derives the download filename for a certificate PDF.
func CertificateFilename(volunteerName string) string {
	return fmt.Sprintf("certificate-%s-%d.pdf", Slugify(volunteerName), time.Now().Unix())
}

// BadgeFilename derives the download filename for a badge PNG.
func BadgeFilename(volunteerName string) string {
	return fmt.Sprintf("badge-%s.png", Slugify(volunteerName))
}
