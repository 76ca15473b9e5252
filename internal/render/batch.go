package render

import (
	"time"

	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

// BatchItem is the outcome of rendering one record of a batch. Successful
// items carry the PDF bytes and the fresh certificate id assigned to them.
type BatchItem struct {
	Index         int
	CertificateID string
	PDF           []byte
	Err           error
}

// GenerateBatch renders one certificate per record against a shared template,
// assigning each record a fresh certificate id and issue date. Rendering is
// strictly sequential, which bounds memory for the expected batch sizes
// (tens of records). A failed record is reported in its result item and
// never aborts the remainder.
func (r *CertificateRenderer) GenerateBatch(records []CertificateData, tpl CertificateTemplate) []BatchItem {
	items := make([]BatchItem, len(records))
	issueDate := time.Now().Format("January 2, 2006")

	for i, rec := range records {
		rec.CertificateID = utils.NewArtifactID("CERT")
		rec.IssueDate = issueDate

		pdfBytes, err := r.Generate(rec, tpl)
		items[i] = BatchItem{
			Index:         i,
			CertificateID: rec.CertificateID,
			PDF:           pdfBytes,
			Err:           err,
		}
	}
	return items
}
