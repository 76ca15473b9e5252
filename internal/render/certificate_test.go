package render

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
)

func testRenderer() *CertificateRenderer {
	return NewCertificateRenderer("Plogging Ethiopia", "Keep Moving, Keep Cleaning", "https://app.ploggingethiopia.org/")
}

func testData() CertificateData {
	return CertificateData{
		VolunteerName:    "Abebe Kebede",
		EventName:        "Entoto Park Cleanup",
		EventDate:        "March 14, 2026",
		Location:         "Addis Ababa",
		HoursContributed: 3.5,
		CertificateID:    "CERT-ABC123-DEF456",
		IssueDate:        "March 15, 2026",
	}
}

func TestGenerate_ProducesPDF(t *testing.T) {
	for _, tpl := range Templates() {
		pdfBytes, err := testRenderer().Generate(testData(), tpl)
		if err != nil {
			t.Fatalf("Generate(%s): %v", tpl.ID, err)
		}
		if len(pdfBytes) == 0 {
			t.Fatalf("Generate(%s) returned empty output", tpl.ID)
		}
		if !strings.HasPrefix(string(pdfBytes[:5]), "%PDF-") {
			t.Fatalf("Generate(%s) output missing PDF header, got %q", tpl.ID, pdfBytes[:5])
		}
	}
}

// pdfCreationDate matches the only part of the output that varies between
// renders of identical data.
var pdfCreationDate = regexp.MustCompile(`D:\d{14}`)

func TestGenerate_Deterministic(t *testing.T) {
	r := testRenderer()
	tpl := TemplateByID("standard-participation")
	data := testData()

	first, err := r.Generate(data, tpl)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	second, err := r.Generate(data, tpl)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	a := pdfCreationDate.ReplaceAll(first, []byte("D:00000000000000"))
	b := pdfCreationDate.ReplaceAll(second, []byte("D:00000000000000"))
	if !bytes.Equal(a, b) {
		t.Fatal("two renders of the same data produced different output")
	}
}

func TestDataURL_Prefix(t *testing.T) {
	url, err := testRenderer().DataURL(testData(), TemplateByID("standard-participation"))
	if err != nil {
		t.Fatalf("DataURL: %v", err)
	}
	if !strings.HasPrefix(url, "data:application/pdf;base64,") {
		t.Fatalf("DataURL prefix = %q", url[:40])
	}
}

func TestVerifyURL(t *testing.T) {
	got := testRenderer().VerifyURL("CERT-X-Y")
	want := "https://app.ploggingethiopia.org/verify/CERT-X-Y"
	if got != want {
		t.Fatalf("VerifyURL = %q, want %q", got, want)
	}
}

func TestTemplateByID_FallsBackToDefault(t *testing.T) {
	tpl := TemplateByID("no-such-template")
	if tpl.ID != "standard-participation" {
		t.Fatalf("fallback template = %q, want standard-participation", tpl.ID)
	}
	if TemplateByID("").ID != "standard-participation" {
		t.Fatalf("empty id should fall back to the default template")
	}
	if TemplateByID("green-achievement").ID != "green-achievement" {
		t.Fatalf("known id should resolve to itself")
	}
}

func TestAchievementSentence(t *testing.T) {
	data := testData()
	data.BadgeType = "Green Warrior"
	data.TotalHours = 25

	cases := []struct {
		templateID string
		want       string
	}{
		{"standard-participation", "for active participation in Entoto Park Cleanup"},
		{"green-achievement", "for earning the Green Warrior badge through dedicated environmental volunteering"},
		{"leadership-excellence", "for demonstrating exceptional leadership and inspiring volunteers in community environmental action"},
		{"milestone-hours", "for reaching the remarkable milestone of 25 hours of community service"},
	}
	for _, tc := range cases {
		got := achievementSentence(TemplateByID(tc.templateID), data)
		if got != tc.want {
			t.Fatalf("achievementSentence(%s) = %q, want %q", tc.templateID, got, tc.want)
		}
	}
}

func TestAchievementSentence_BadgeDefault(t *testing.T) {
	data := testData()
	data.BadgeType = ""
	got := achievementSentence(TemplateByID("green-achievement"), data)
	if !strings.Contains(got, "the Volunteer badge") {
		t.Fatalf("achievementSentence without badge type = %q", got)
	}
}

func TestFormatHours(t *testing.T) {
	cases := map[float64]string{
		3:    "3",
		3.5:  "3.5",
		0.25: "0.25",
	}
	for in, want := range cases {
		if got := formatHours(in); got != want {
			t.Fatalf("formatHours(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestMonogram(t *testing.T) {
	cases := map[string]string{
		"Plogging Ethiopia": "PE",
		"Plogging":          "P",
		"":                  "PE",
	}
	for in, want := range cases {
		if got := monogram(in); got != want {
			t.Fatalf("monogram(%q) = %q, want %q", in, got, want)
		}
	}
}
