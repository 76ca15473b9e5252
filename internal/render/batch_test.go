package render

import (
	"strings"
	"testing"
)

func TestGenerateBatch(t *testing.T) {
	records := []CertificateData{
		{VolunteerName: "Abebe Kebede", EventName: "Entoto Park Cleanup", HoursContributed: 3},
		{VolunteerName: "Sara Tesfaye", EventName: "Entoto Park Cleanup", HoursContributed: 2.5},
		{VolunteerName: "Dawit Alemu", EventName: "Entoto Park Cleanup", HoursContributed: 4},
	}

	items := testRenderer().GenerateBatch(records, TemplateByID("standard-participation"))
	if len(items) != len(records) {
		t.Fatalf("GenerateBatch returned %d items, want %d", len(items), len(records))
	}

	seen := map[string]bool{}
	for i, item := range items {
		if item.Index != i {
			t.Fatalf("item %d has index %d", i, item.Index)
		}
		if item.Err != nil {
			t.Fatalf("item %d failed: %v", i, item.Err)
		}
		if !strings.HasPrefix(item.CertificateID, "CERT-") {
			t.Fatalf("item %d certificate id = %q", i, item.CertificateID)
		}
		if seen[item.CertificateID] {
			t.Fatalf("duplicate certificate id %q", item.CertificateID)
		}
		seen[item.CertificateID] = true
		if len(item.PDF) == 0 || !strings.HasPrefix(string(item.PDF[:5]), "%PDF-") {
			t.Fatalf("item %d has invalid PDF output", i)
		}
	}
}

func TestGenerateBatch_Empty(t *testing.T) {
	items := testRenderer().GenerateBatch(nil, TemplateByID("standard-participation"))
	if len(items) != 0 {
		t.Fatalf("GenerateBatch(nil) = %d items, want 0", len(items))
	}
}
