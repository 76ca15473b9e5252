package render

// TemplateType selects which achievement sentence the certificate body uses.
type TemplateType string

const (
	TemplateParticipation TemplateType = "participation"
	TemplateAchievement   TemplateType = "achievement"
	TemplateLeadership    TemplateType = "leadership"
	TemplateMilestone     TemplateType = "milestone"
)

// RGB color for gofpdf, which takes 0-255 channel ints.
type RGB struct {
	R, G, B int
}

// Point in page millimeters.
type Point struct {
	X, Y float64
}

// CertificateTemplate is a named visual style. LogoPosition and TitlePosition
// are used unconditionally by the renderer; a template without them is a
// programming error, not a recoverable condition.
type CertificateTemplate struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Type          TemplateType `json:"type"`
	Background    RGB          `json:"background_color"`
	Primary       RGB          `json:"primary_color"`
	Secondary     RGB          `json:"secondary_color"`
	LogoPosition  Point        `json:"logo_position"`
	TitlePosition Point        `json:"title_position"`
	ContentLayout string       `json:"content_layout"` // cosmetic only
}

// The built-in catalog. The first entry is the default for unknown ids.
var builtinTemplates = []CertificateTemplate{
	{
		ID:            "standard-participation",
		Name:          "Standard Participation",
		Type:          TemplateParticipation,
		Background:    RGB{253, 252, 247},
		Primary:       RGB{22, 101, 52},
		Secondary:     RGB{202, 138, 4},
		LogoPosition:  Point{X: 148.5, Y: 34},
		TitlePosition: Point{X: 148.5, Y: 72},
		ContentLayout: "centered",
	},
	{
		ID:            "green-achievement",
		Name:          "Green Achievement",
		Type:          TemplateAchievement,
		Background:    RGB{247, 254, 231},
		Primary:       RGB{21, 128, 61},
		Secondary:     RGB{161, 98, 7},
		LogoPosition:  Point{X: 148.5, Y: 34},
		TitlePosition: Point{X: 148.5, Y: 72},
		ContentLayout: "centered",
	},
	{
		ID:            "leadership-excellence",
		Name:          "Leadership Excellence",
		Type:          TemplateLeadership,
		Background:    RGB{254, 252, 232},
		Primary:       RGB{120, 53, 15},
		Secondary:     RGB{202, 138, 4},
		LogoPosition:  Point{X: 148.5, Y: 34},
		TitlePosition: Point{X: 148.5, Y: 72},
		ContentLayout: "formal",
	},
	{
		ID:            "milestone-hours",
		Name:          "Milestone Hours",
		Type:          TemplateMilestone,
		Background:    RGB{240, 253, 250},
		Primary:       RGB{17, 94, 89},
		Secondary:     RGB{202, 138, 4},
		LogoPosition:  Point{X: 148.5, Y: 34},
		TitlePosition: Point{X: 148.5, Y: 72},
		ContentLayout: "centered",
	},
}

// Templates returns a copy of the built-in template catalog.
func Templates() []CertificateTemplate {
	out := make([]CertificateTemplate, len(builtinTemplates))
	copy(out, builtinTemplates)
	return out
}

// TemplateByID looks up a template, falling back to the first built-in for
// unknown ids.
func TemplateByID(id string) CertificateTemplate {
	for _, t := range builtinTemplates {
		if t.ID == id {
			return t
		}
	}
	return builtinTemplates[0]
}
