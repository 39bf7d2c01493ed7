package card

import (
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// fontSet holds every face the renderer draws with.
type fontSet struct {
	cost  font.Face
	title font.Face
	kind  font.Face
	body  font.Face
	label font.Face
	name  font.Face
	badge font.Face
}

var (
	fontOnce sync.Once
	fonts    fontSet
)

// fontPath optionally points at a decorative TTF tried before the
// embedded fallbacks. Set once at startup, before the first render.
var fontPath string

// SetFontPath configures the decorative font file. Has no effect after
// the first render: fonts are loaded at most once per process.
func SetFontPath(path string) {
	fontPath = path
}

// loadFonts resolves the face set once per process. Tiers: the
// configured decorative TTF, then the embedded Go fonts, then a basic
// bitmap face. Failures are silent; the card always renders.
func loadFonts() fontSet {
	fontOnce.Do(func() {
		fonts = buildFonts()
	})
	return fonts
}

func buildFonts() fontSet {
	if fontPath != "" {
		if data, err := os.ReadFile(fontPath); err == nil {
			if set, ok := facesFrom(data, data); ok {
				return set
			}
		}
	}
	if set, ok := facesFrom(goregular.TTF, gobold.TTF); ok {
		return set
	}
	basic := basicfont.Face7x13
	return fontSet{
		cost:  basic,
		title: basic,
		kind:  basic,
		body:  basic,
		label: basic,
		name:  basic,
		badge: basic,
	}
}

// facesFrom builds the face set from regular and bold TTF data.
func facesFrom(regularTTF, boldTTF []byte) (fontSet, bool) {
	regular, err := opentype.Parse(regularTTF)
	if err != nil {
		return fontSet{}, false
	}
	bold, err := opentype.Parse(boldTTF)
	if err != nil {
		return fontSet{}, false
	}

	newFace := func(f *opentype.Font, size float64) (font.Face, error) {
		return opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	var set fontSet
	faces := []struct {
		dst  *font.Face
		src  *opentype.Font
		size float64
	}{
		{&set.cost, bold, 28},
		{&set.title, bold, 22},
		{&set.kind, regular, 17},
		{&set.body, regular, 15},
		{&set.label, regular, 12},
		{&set.name, bold, 14},
		{&set.badge, bold, 20},
	}
	for _, f := range faces {
		face, err := newFace(f.src, f.size)
		if err != nil {
			return fontSet{}, false
		}
		*f.dst = face
	}
	return set, true
}
