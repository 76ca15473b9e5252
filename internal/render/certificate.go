package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Landscape A4 in millimeters.
const (
	pageW = 297.0
	pageH = 210.0
)

// CertificateData is one certificate instance to render. Constructed fresh
// per render call and treated as immutable by the renderer.
type CertificateData struct {
	VolunteerName string
	EventName     string
	EventDate     string
	Location      string
	OrganizerName string

	HoursContributed float64

	CertificateID string // e.g. CERT-XXXX-XXXX, generated at issue time
	IssueDate     string // human formatted, set at generation time

	// Used only by certain template variants
	BadgeType  string
	TotalHours int
	Rank       string
}

// CertificateRenderer lays out a fixed landscape page from a template and a
// data record. Configuration is injected so tests can use deterministic
// values.
type CertificateRenderer struct {
	orgName    string
	orgTagline string
	verifyBase string // frontend base URL for the printed verification link
}

func NewCertificateRenderer(orgName, orgTagline, frontendURL string) *CertificateRenderer {
	return &CertificateRenderer{
		orgName:    orgName,
		orgTagline: orgTagline,
		verifyBase: strings.TrimRight(frontendURL, "/"),
	}
}

// VerifyURL is the human-readable verification link printed in the footer.
// The QR box on the certificate is cosmetic; the badge carries the only
// scannable code.
func (r *CertificateRenderer) VerifyURL(certificateID string) string {
	return fmt.Sprintf("%s/verify/%s", r.verifyBase, certificateID)
}

// Generate renders one certificate to PDF bytes.
func (r *CertificateRenderer) Generate(data CertificateData, tpl CertificateTemplate) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	// ─────────────────────────────────────────
	// BACKGROUND & BORDERS
	// ─────────────────────────────────────────
	pdf.SetFillColor(tpl.Background.R, tpl.Background.G, tpl.Background.B)
	pdf.Rect(0, 0, pageW, pageH, "F")

	pdf.SetDrawColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetLineWidth(1.2)
	pdf.Rect(8, 8, pageW-16, pageH-16, "D")

	pdf.SetDrawColor(tpl.Secondary.R, tpl.Secondary.G, tpl.Secondary.B)
	pdf.SetLineWidth(0.4)
	pdf.Rect(12, 12, pageW-24, pageH-24, "D")

	r.drawCornerOrnaments(pdf, tpl)

	// ─────────────────────────────────────────
	// LOGO MEDALLION & ORGANIZATION NAME
	// ─────────────────────────────────────────
	logo := tpl.LogoPosition
	pdf.SetFillColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.Circle(logo.X, logo.Y, 11, "F")
	pdf.SetFillColor(tpl.Background.R, tpl.Background.G, tpl.Background.B)
	pdf.Circle(logo.X, logo.Y, 9.2, "F")
	pdf.SetFillColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.Circle(logo.X, logo.Y, 8, "F")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(logo.X-10, logo.Y-3)
	pdf.CellFormat(20, 6, monogram(r.orgName), "", 0, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetXY(0, logo.Y+13)
	pdf.CellFormat(pageW, 6, r.orgName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(tpl.Secondary.R, tpl.Secondary.G, tpl.Secondary.B)
	pdf.CellFormat(pageW, 5, r.orgTagline, "", 1, "C", false, 0, "")

	// ─────────────────────────────────────────
	// TITLE & UNDERLINE
	// ─────────────────────────────────────────
	title := "CERTIFICATE OF " + strings.ToUpper(string(tpl.Type))
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetXY(0, tpl.TitlePosition.Y-8)
	pdf.CellFormat(pageW, 12, title, "", 1, "C", false, 0, "")

	titleW := pdf.GetStringWidth(title)
	pdf.SetDrawColor(tpl.Secondary.R, tpl.Secondary.G, tpl.Secondary.B)
	pdf.SetLineWidth(0.8)
	pdf.Line(tpl.TitlePosition.X-titleW/2, tpl.TitlePosition.Y+6, tpl.TitlePosition.X+titleW/2, tpl.TitlePosition.Y+6)

	// ─────────────────────────────────────────
	// BODY
	// ─────────────────────────────────────────
	y := tpl.TitlePosition.Y + 18

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, 6, "This certificate is proudly presented to", "", 1, "C", false, 0, "")
	y += 10

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, 10, data.VolunteerName, "", 1, "C", false, 0, "")
	y += 14

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(60, 60, 60)
	for _, line := range WrapLines(achievementSentence(tpl, data), 190, pdf.GetStringWidth) {
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, 6, line, "", 1, "C", false, 0, "")
		y += 7
	}

	if data.EventName != "" && tpl.Type != TemplateAchievement {
		detail := data.EventName
		if data.EventDate != "" {
			detail += " on " + data.EventDate
		}
		if data.Location != "" {
			detail += " at " + data.Location
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(tpl.Secondary.R, tpl.Secondary.G, tpl.Secondary.B)
		for _, line := range WrapLines(detail, 190, pdf.GetStringWidth) {
			pdf.SetXY(0, y)
			pdf.CellFormat(pageW, 6, line, "", 1, "C", false, 0, "")
			y += 7
		}
	}

	if data.HoursContributed > 0 {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetTextColor(60, 60, 60)
		pdf.SetXY(0, y)
		pdf.CellFormat(pageW, 6,
			fmt.Sprintf("having contributed %s volunteer hours", formatHours(data.HoursContributed)),
			"", 1, "C", false, 0, "")
		y += 9
	}

	pdf.SetFont("Helvetica", "I", 10)
	pdf.SetTextColor(90, 90, 90)
	pdf.SetXY(0, y)
	pdf.CellFormat(pageW, 6,
		"We recognize this outstanding commitment to a cleaner and greener Ethiopia.",
		"", 1, "C", false, 0, "")

	// ─────────────────────────────────────────
	// SIGNATURES
	// ─────────────────────────────────────────
	signY := 168.0
	organizer := data.OrganizerName
	if organizer == "" {
		organizer = r.orgName
	}
	r.drawSignature(pdf, tpl, 58, signY, organizer, "Event Organizer")
	r.drawSignature(pdf, tpl, 178, signY, r.orgName, "Volunteer Program Team")

	// ─────────────────────────────────────────
	// FOOTER & QR PLACEHOLDER
	// ─────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetXY(16, 188)
	pdf.CellFormat(120, 4, fmt.Sprintf("Certificate ID: %s", data.CertificateID), "", 1, "L", false, 0, "")
	pdf.SetX(16)
	pdf.CellFormat(120, 4, fmt.Sprintf("Issued on %s", data.IssueDate), "", 1, "L", false, 0, "")
	pdf.SetX(16)
	pdf.CellFormat(120, 4, fmt.Sprintf("Verify at %s", r.VerifyURL(data.CertificateID)), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetXY(16, 201)
	pdf.CellFormat(pageW-32, 4,
		fmt.Sprintf("Issued digitally by %s - %s", r.orgName, r.orgTagline),
		"", 0, "L", false, 0, "")

	// Cosmetic placeholder only; the scannable QR lives on the badge.
	qrX, qrY, qrSize := 258.0, 168.0, 22.0
	pdf.SetDrawColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetLineWidth(0.5)
	pdf.Rect(qrX, qrY, qrSize, qrSize, "D")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetXY(qrX, qrY+qrSize/2-3)
	pdf.CellFormat(qrSize, 6, "QR", "", 0, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(qrX, qrY+qrSize+1)
	pdf.CellFormat(qrSize, 4, "VERIFY", "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL renders the certificate and wraps it for in-page preview.
func (r *CertificateRenderer) DataURL(data CertificateData, tpl CertificateTemplate) (string, error) {
	pdfBytes, err := r.Generate(data, tpl)
	if err != nil {
		return "", err
	}
	return "data:application/pdf;base64," + base64.StdEncoding.EncodeToString(pdfBytes), nil
}

func (r *CertificateRenderer) drawCornerOrnaments(pdf *gofpdf.Fpdf, tpl CertificateTemplate) {
	pdf.SetDrawColor(tpl.Secondary.R, tpl.Secondary.G, tpl.Secondary.B)
	pdf.SetLineWidth(0.7)

	const inset, arm = 15.0, 14.0
	corners := []struct {
		x, y, dx, dy float64
	}{
		{inset, inset, 1, 1},
		{pageW - inset, inset, -1, 1},
		{inset, pageH - inset, 1, -1},
		{pageW - inset, pageH - inset, -1, -1},
	}
	for _, c := range corners {
		pdf.Line(c.x, c.y, c.x+c.dx*arm, c.y)
		pdf.Line(c.x, c.y, c.x, c.y+c.dy*arm)
		pdf.Line(c.x+c.dx*3, c.y+c.dy*3, c.x+c.dx*(arm-4), c.y+c.dy*3)
		pdf.Line(c.x+c.dx*3, c.y+c.dy*3, c.x+c.dx*3, c.y+c.dy*(arm-4))
	}
}

func (r *CertificateRenderer) drawSignature(pdf *gofpdf.Fpdf, tpl CertificateTemplate, centerX, y float64, name, role string) {
	const half = 32.0
	pdf.SetDrawColor(tpl.Primary.R, tpl.Primary.G, tpl.Primary.B)
	pdf.SetLineWidth(0.4)
	pdf.Line(centerX-half, y, centerX+half, y)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(40, 40, 40)
	pdf.SetXY(centerX-half, y+2)
	pdf.CellFormat(half*2, 5, name, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(110, 110, 110)
	pdf.SetX(centerX - half)
	pdf.CellFormat(half*2, 4, role, "", 1, "C", false, 0, "")
}

// achievementSentence composes the template-type-specific body sentence.
func achievementSentence(tpl CertificateTemplate, data CertificateData) string {
	switch tpl.Type {
	case TemplateAchievement:
		badge := data.BadgeType
		if badge == "" {
			badge = "Volunteer"
		}
		return fmt.Sprintf("for earning the %s badge through dedicated environmental volunteering", badge)
	case TemplateLeadership:
		return "for demonstrating exceptional leadership and inspiring volunteers in community environmental action"
	case TemplateMilestone:
		return fmt.Sprintf("for reaching the remarkable milestone of %d hours of community service", data.TotalHours)
	default: // participation
		return fmt.Sprintf("for active participation in %s", data.EventName)
	}
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// monogram builds the two-letter medallion text from the organization name.
func monogram(orgName string) string {
	var b strings.Builder
	for _, word := range strings.Fields(orgName) {
		b.WriteString(strings.ToUpper(string([]rune(word)[0])))
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "PE"
	}
	return b.String()
}
