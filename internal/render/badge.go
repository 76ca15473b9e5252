package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/plogging-ethiopia/volunteer-ledger/internal/utils"
)

// Fixed portrait canvas in pixels.
const (
	badgeW = 320
	badgeH = 500
)

// Badge layout constants. Coordinates are implementation details, not a
// contract; only the overall draw order matters.
const (
	badgeCornerRadius = 16.0
	headerHeight      = 110.0
	footerHeight      = 64.0
	photoCenterY      = 210.0
	photoRadius       = 55.0
	qrPanelSize       = 142.0
	qrImageSize       = 120
)

// BadgeData is one badge instance. BadgeID must be set before rendering; it
// is embedded in the QR target URL and stays fixed for the instance.
type BadgeData struct {
	VolunteerName   string
	TotalHours      float64
	VolunteerID     string
	AchievementDate string
	BadgeID         string
	ProfileImageURL string

	// Display-only extras
	TotalEvents   int
	BadgeName     string
	TotalDistance float64
}

// BadgeRenderer composes the layered 320x500 badge raster. Best-effort
// contract: a badge is always producible from a name and an hours count;
// image and QR failures only degrade the output.
type BadgeRenderer struct {
	fetcher     *ImageFetcher
	fonts       *FontSet
	orgName     string
	frontendURL string

	// Logf receives non-fatal rendering problems (QR failures). Defaults to
	// log.Printf.
	Logf func(format string, args ...interface{})
}

func NewBadgeRenderer(orgName, frontendURL string, fetcher *ImageFetcher, fonts *FontSet) *BadgeRenderer {
	if fonts == nil {
		fonts = NewFontSet(nil)
	}
	return &BadgeRenderer{
		fetcher:     fetcher,
		fonts:       fonts,
		orgName:     orgName,
		frontendURL: strings.TrimRight(frontendURL, "/"),
		Logf:        log.Printf,
	}
}

// QRTarget is the public verification URL embedded in the badge QR code.
func (r *BadgeRenderer) QRTarget(badgeID string) string {
	return fmt.Sprintf("%s/badge/%s", r.frontendURL, badgeID)
}

// Generate renders the badge, waiting for image acquisition and QR
// generation before returning the finished canvas.
func (r *BadgeRenderer) Generate(ctx context.Context, data BadgeData) (image.Image, error) {
	dc := gg.NewContext(badgeW, badgeH)

	// ── Background with rounded page corners ─────────
	dc.SetRGB255(250, 250, 245)
	dc.DrawRoundedRectangle(0, 0, badgeW, badgeH, badgeCornerRadius)
	dc.Fill()

	r.drawHeader(dc)
	r.drawFooter(dc, data)
	r.drawProfile(ctx, dc, data)
	r.drawNameBlock(dc, data)
	r.drawQRPanel(dc, data)

	return dc.Image(), nil
}

// PNG renders the badge and encodes it.
func (r *BadgeRenderer) PNG(ctx context.Context, data BadgeData) ([]byte, error) {
	img, err := r.Generate(ctx, data)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode badge PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURL renders the badge and wraps it for in-page preview or sharing.
func (r *BadgeRenderer) DataURL(ctx context.Context, data BadgeData) (string, error) {
	pngBytes, err := r.PNG(ctx, data)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes), nil
}

func (r *BadgeRenderer) drawHeader(dc *gg.Context) {
	// Bar with rounded top corners, squared at the bottom
	dc.SetRGB255(22, 101, 52)
	dc.DrawRoundedRectangle(0, 0, badgeW, headerHeight, badgeCornerRadius)
	dc.Fill()
	dc.DrawRectangle(0, badgeCornerRadius, badgeW, headerHeight-badgeCornerRadius)
	dc.Fill()

	// Decorative teardrop, left
	dc.SetRGBA255(255, 255, 255, 70)
	drawTeardrop(dc, 44, 58, 14, true)

	// Centered circular monogram
	dc.SetRGB255(255, 255, 255)
	dc.DrawCircle(badgeW/2, 52, 30)
	dc.Fill()
	dc.SetFontFace(r.fonts.Face(26))
	dc.SetRGB255(22, 101, 52)
	dc.DrawStringAnchored(monogram(r.orgName), badgeW/2, 52, 0.5, 0.5)

	// Striped accent circle, right
	drawStripedCircle(dc, 276, 62, 22, 255, 255, 255, 60)

	// Organization name just below the header
	dc.SetFontFace(r.fonts.Face(14))
	dc.SetRGB255(22, 101, 52)
	dc.DrawStringAnchored(r.orgName, badgeW/2, headerHeight+18, 0.5, 0.5)
}

func (r *BadgeRenderer) drawFooter(dc *gg.Context, data BadgeData) {
	top := float64(badgeH) - footerHeight
	dc.SetRGB255(22, 101, 52)
	dc.DrawRoundedRectangle(0, top, badgeW, footerHeight, badgeCornerRadius)
	dc.Fill()
	dc.DrawRectangle(0, top, badgeW, footerHeight-badgeCornerRadius)
	dc.Fill()

	// Mirrored decorations
	dc.SetRGBA255(255, 255, 255, 70)
	drawTeardrop(dc, badgeW-44, top+34, 12, false)
	drawStripedCircle(dc, 44, top+32, 18, 255, 255, 255, 60)

	label := data.BadgeName
	if label == "" {
		label = fmt.Sprintf("%s VOLUNTEER HOURS", formatHours(data.TotalHours))
	}
	dc.SetFontFace(r.fonts.Face(12))
	dc.SetRGB255(255, 255, 255)
	dc.DrawStringAnchored(strings.ToUpper(label), badgeW/2, top+footerHeight/2, 0.5, 0.5)
}

func (r *BadgeRenderer) drawProfile(ctx context.Context, dc *gg.Context, data BadgeData) {
	cx, cy := float64(badgeW)/2, photoCenterY

	// Two concentric framing rings
	dc.SetRGB255(202, 138, 4)
	dc.DrawCircle(cx, cy, photoRadius+6)
	dc.Fill()
	dc.SetRGB255(255, 255, 255)
	dc.DrawCircle(cx, cy, photoRadius+3)
	dc.Fill()

	var img image.Image
	if r.fetcher != nil && data.ProfileImageURL != "" {
		fetched, err := r.fetcher.Fetch(ctx, data.ProfileImageURL)
		if err == nil {
			img = fetched
		}
		// a fetch failure is the expected degradation path, not an error
	}

	if img == nil {
		r.drawInitialsAvatar(dc, cx, cy, data.VolunteerName)
		return
	}

	d := int(photoRadius * 2)
	fitted := imaging.Fill(img, d, d, imaging.Center, imaging.Lanczos)

	dc.Push()
	dc.DrawCircle(cx, cy, photoRadius)
	dc.Clip()
	dc.DrawImageAnchored(fitted, int(cx), int(cy), 0.5, 0.5)
	dc.Pop()
}

// drawInitialsAvatar is the terminal fallback of the image acquisition
// chain: a colored disc with the volunteer's initials, slightly rotated.
func (r *BadgeRenderer) drawInitialsAvatar(dc *gg.Context, cx, cy float64, name string) {
	dc.SetRGB255(187, 221, 198)
	dc.DrawCircle(cx, cy, photoRadius)
	dc.Fill()

	dc.Push()
	dc.RotateAbout(gg.Radians(-6), cx, cy)
	dc.SetFontFace(r.fonts.Face(36))
	dc.SetRGB255(22, 101, 52)
	dc.DrawStringAnchored(initials(name), cx, cy, 0.5, 0.5)
	dc.Pop()
}

func (r *BadgeRenderer) drawNameBlock(dc *gg.Context, data BadgeData) {
	y := photoCenterY + photoRadius + 30

	dc.SetFontFace(r.fonts.Face(18))
	dc.SetRGB255(30, 30, 30)
	dc.DrawStringAnchored(strings.ToUpper(data.VolunteerName), badgeW/2, y, 0.5, 0.5)

	dc.SetFontFace(r.fonts.Face(12))
	dc.SetRGB255(120, 120, 120)
	dc.DrawStringAnchored("Volunteer", badgeW/2, y+20, 0.5, 0.5)
}

func (r *BadgeRenderer) drawQRPanel(dc *gg.Context, data BadgeData) {
	cx := float64(badgeW) / 2
	top := float64(badgeH) - footerHeight - qrPanelSize - 18
	left := cx - qrPanelSize/2

	// Drop shadow, then bordered rounded container
	dc.SetRGBA255(0, 0, 0, 40)
	dc.DrawRoundedRectangle(left+3, top+3, qrPanelSize, qrPanelSize, 10)
	dc.Fill()
	dc.SetRGB255(255, 255, 255)
	dc.DrawRoundedRectangle(left, top, qrPanelSize, qrPanelSize, 10)
	dc.Fill()
	dc.SetRGB255(22, 101, 52)
	dc.SetLineWidth(2)
	dc.DrawRoundedRectangle(left, top, qrPanelSize, qrPanelSize, 10)
	dc.Stroke()

	qrImg, err := utils.GenerateQRCodeImage(r.QRTarget(data.BadgeID), qrImageSize)
	if err != nil {
		// best-effort: the badge ships without a QR rather than failing
		r.Logf("badge %s: QR generation failed: %v", data.BadgeID, err)
		return
	}
	dc.DrawImageAnchored(qrImg, int(cx), int(top+qrPanelSize/2), 0.5, 0.5)
}

// drawTeardrop draws a closed drop shape; up mirrors the tip vertically.
func drawTeardrop(dc *gg.Context, x, y, size float64, up bool) {
	dir := 1.0
	if up {
		dir = -1.0
	}
	tipY := y + dir*size*1.5

	dc.MoveTo(x, tipY)
	dc.QuadraticTo(x+size, y-dir*size*0.4, x, y-dir*size)
	dc.QuadraticTo(x-size, y-dir*size*0.4, x, tipY)
	dc.ClosePath()
	dc.Fill()
}

// drawStripedCircle fills a translucent circle and overlays fixed-width
// diagonal strokes clipped to it. Pure texture; the stripe count carries no
// meaning.
func drawStripedCircle(dc *gg.Context, x, y, radius float64, cr, cg, cb, alpha int) {
	dc.SetRGBA255(cr, cg, cb, alpha)
	dc.DrawCircle(x, y, radius)
	dc.Fill()

	dc.Push()
	dc.DrawCircle(x, y, radius)
	dc.Clip()
	dc.SetRGBA255(cr, cg, cb, alpha+40)
	dc.SetLineWidth(1.5)
	for off := -2 * radius; off <= 2*radius; off += 6 {
		dc.DrawLine(x-radius+off, y+radius, x+radius+off, y-radius)
		dc.Stroke()
	}
	dc.Pop()
}

// initials derives up to two upper-cased initials from a display name:
// "Jane Doe" -> "JD", "Jane" -> "J".
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
