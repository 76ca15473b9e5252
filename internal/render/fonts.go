package render

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Candidate sans-serif fonts checked in order inside each search directory.
var fontFileNames = []string{
	"DejaVuSans.ttf",
	"DejaVuSans-Bold.ttf",
	"LiberationSans-Regular.ttf",
	"Arial.ttf",
}

var systemFontDirs = []string{
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/truetype/liberation",
	"/usr/share/fonts/TTF",
	"/Library/Fonts",
	"C:\\Windows\\Fonts",
}

// FontSet resolves font faces for badge rendering. Faces are cached per size.
// When no TTF can be found the fixed-size basicfont face is used so rendering
// never depends on the host having fonts installed (tests rely on this).
type FontSet struct {
	path string

	mu    sync.Mutex
	cache map[float64]font.Face
}

// NewFontSet searches extraDirs then the usual system font directories for a
// usable sans-serif TTF.
func NewFontSet(extraDirs []string) *FontSet {
	fs := &FontSet{cache: make(map[float64]font.Face)}

	dirs := append(append([]string{}, extraDirs...), systemFontDirs...)
	for _, dir := range dirs {
		for _, name := range fontFileNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				fs.path = p
				return fs
			}
		}
	}
	return fs
}

// Face returns a font face at the given point size.
func (fs *FontSet) Face(points float64) font.Face {
	if fs.path == "" {
		return basicfont.Face7x13
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if face, ok := fs.cache[points]; ok {
		return face
	}

	face, err := gg.LoadFontFace(fs.path, points)
	if err != nil {
		return basicfont.Face7x13
	}
	fs.cache[points] = face
	return face
}
