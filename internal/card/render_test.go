package card

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func creatureSpec() RenderSpec {
	return RenderSpec{
		Title:       "Dragón de Fuego",
		TypeLabel:   "creature",
		Cost:        5,
		Description: "Una criatura legendaria que escupe fuego sobre sus enemigos.",
		FrameColor:  "#b91c1c",
		CreatorName: "marta",
		Attack:      intPtr(8),
		Defense:     intPtr(10),
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	first := RenderImage(creatureSpec())
	second := RenderImage(creatureSpec())

	a, ok := first.(*image.RGBA)
	require.True(t, ok)
	b, ok := second.(*image.RGBA)
	require.True(t, ok)

	require.Equal(t, a.Rect, b.Rect)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestRenderSurfaceDimensions(t *testing.T) {
	img := RenderImage(creatureSpec())

	bounds := img.Bounds()
	assert.Equal(t, Width, bounds.Dx())
	assert.Equal(t, Height, bounds.Dy())
}

func TestRenderNeverPanics(t *testing.T) {
	cases := map[string]RenderSpec{
		"zero value":       {},
		"bad frame color":  {FrameColor: "not-a-color"},
		"huge description": {Description: strings.Repeat("x", 500)},
		"nil stats creature": {
			TypeLabel: "creature",
		},
		"negative cost": {Cost: -3},
	}

	for name, spec := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				Render(gg.NewContext(Width, Height), spec)
			})
		})
	}
}

func TestRenderArtworkCoverFits(t *testing.T) {
	// A solid green artwork should show through inside the art box.
	art := image.NewRGBA(image.Rect(0, 0, 50, 50))
	green := color.RGBA{G: 0xff, A: 0xff}
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			art.SetRGBA(x, y, green)
		}
	}
	spec := creatureSpec()
	spec.Artwork = art

	img := RenderImage(spec).(*image.RGBA)

	center := img.RGBAAt(Width/2, artY+artH/2)
	assert.Equal(t, green, center)
}

func TestRenderPlaceholderWhenNoArtwork(t *testing.T) {
	spec := creatureSpec()
	spec.Artwork = nil

	img := RenderImage(spec).(*image.RGBA)

	center := img.RGBAAt(Width/2, artY+artH/2)
	assert.Equal(t, artFill, center)
}

func TestRenderStatBadgeOnlyForCreatures(t *testing.T) {
	creature := creatureSpec()
	spell := creatureSpec()
	spell.TypeLabel = "spell"
	spell.Attack = nil
	spell.Defense = nil

	withBadge := RenderImage(creature).(*image.RGBA)
	without := RenderImage(spell).(*image.RGBA)

	// The badge region darkens the off-white inner face for creatures.
	x := Width - artX - badgeW/2
	y := Height - artX - badgeH/2
	assert.NotEqual(t, withBadge.RGBAAt(x, y), without.RGBAAt(x, y))
	assert.Equal(t, offWhite, without.RGBAAt(x, y))
}

func TestStatLineFormat(t *testing.T) {
	assert.Equal(t, "8 / 10", StatLine(8, 10))
	assert.Equal(t, "0 / 0", StatLine(0, 0))
}

func TestCornerCutsExposeBackground(t *testing.T) {
	img := RenderImage(creatureSpec()).(*image.RGBA)

	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	// Pixels outside the cut corners stay on the white base.
	assert.Equal(t, white, img.RGBAAt(2, 2))
	assert.Equal(t, white, img.RGBAAt(Width-3, Height-3))
	// Pixels inside the silhouette carry the frame color.
	frame := ParseFrameColor("#b91c1c")
	assert.Equal(t, frame, img.RGBAAt(Width/2, 2))
}
