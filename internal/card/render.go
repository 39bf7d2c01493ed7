package card

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
)

// Layout constants, in logical units.
const (
	border   = 10
	outerCut = 32
	// The inner silhouette repeats the corner cut, one border narrower.
	innerCut = outerCut - border

	artX, artY = 18, 18
	artW, artH = Width - 2*artX, 270
	artCut     = 24

	titleBarH = 44
	typeBarH  = 32

	lineHeight   = 22
	footerHeight = 48
	footerGap    = 4

	badgeW, badgeH = 96, 34
)

var (
	offWhite  = color.RGBA{R: 0xf8, G: 0xf5, B: 0xec, A: 0xff}
	artFill   = color.RGBA{R: 0xe5, G: 0xe5, B: 0xe5, A: 0xff}
	inkDark   = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	badgeTint = color.RGBA{A: 0x8c}
	badgeText = color.White
)

// Render paints a full card face onto the surface. The surface pixels are
// completely overwritten; rendering the same spec twice produces identical
// output. No failure escapes: a bad color, missing artwork, or font
// trouble degrades the visuals but never aborts.
func Render(dc *gg.Context, spec RenderSpec) {
	defer func() { _ = recover() }()

	set := loadFonts()
	frame := ParseFrameColor(spec.FrameColor)

	dc.SetColor(color.White)
	dc.Clear()

	addCornerCutPath(dc, 0, 0, Width, Height, outerCut)
	dc.SetColor(frame)
	dc.Fill()

	addCornerCutPath(dc, border, border, Width-2*border, Height-2*border, innerCut)
	dc.SetColor(offWhite)
	dc.Fill()

	drawArtwork(dc, spec.Artwork)
	drawCostBadge(dc, set, spec.Cost)
	drawTitleBar(dc, set, spec.Title, frame)
	drawTypeBar(dc, set, spec.TypeLabel, frame)
	drawDescription(dc, set, spec.Description)
	drawFooter(dc, set, spec.CreatorName)

	if spec.IsCreature() {
		attack, defense := 0, 0
		if spec.Attack != nil {
			attack = *spec.Attack
		}
		if spec.Defense != nil {
			defense = *spec.Defense
		}
		drawStatBadge(dc, set, attack, defense)
	}
}

// RenderImage renders the spec onto a fresh 400x600 surface.
func RenderImage(spec RenderSpec) image.Image {
	dc := gg.NewContext(Width, Height)
	Render(dc, spec)
	return dc.Image()
}

// addCornerCutPath traces a rectangle whose top-left and bottom-right
// corners are replaced by 45-degree cuts.
func addCornerCutPath(dc *gg.Context, x, y, w, h, cut float64) {
	dc.NewSubPath()
	dc.MoveTo(x+cut, y)
	dc.LineTo(x+w, y)
	dc.LineTo(x+w, y+h-cut)
	dc.LineTo(x+w-cut, y+h)
	dc.LineTo(x, y+h)
	dc.LineTo(x, y+cut)
	dc.ClosePath()
}

// drawArtwork cover-fits the artwork into the clipped art box; with no
// artwork the box gets a flat neutral fill.
func drawArtwork(dc *gg.Context, artwork image.Image) {
	dc.Push()
	addCornerCutPath(dc, artX, artY, artW, artH, artCut)
	dc.Clip()

	if artwork == nil || artwork.Bounds().Dx() <= 0 || artwork.Bounds().Dy() <= 0 {
		dc.SetColor(artFill)
		dc.DrawRectangle(artX, artY, artW, artH)
		dc.Fill()
		dc.Pop()
		return
	}

	iw := float64(artwork.Bounds().Dx())
	ih := float64(artwork.Bounds().Dy())
	// Cover-fit: fill the box, preserve aspect, crop overflow.
	scale := math.Max(artW/iw, artH/ih)
	dc.Translate(artX+artW/2, artY+artH/2)
	dc.Scale(scale, scale)
	dc.DrawImageAnchored(artwork, 0, 0, 0.5, 0.5)
	dc.Pop()
}

func drawCostBadge(dc *gg.Context, set fontSet, cost int) {
	cx := float64(artX + 30)
	cy := float64(artY + 30)
	dc.SetColor(badgeTint)
	dc.DrawCircle(cx, cy, 26)
	dc.Fill()

	dc.SetFontFace(set.cost)
	dc.SetColor(badgeText)
	dc.DrawStringAnchored(strconv.Itoa(cost), cx, cy, 0.5, 0.35)
}

func drawTitleBar(dc *gg.Context, set fontSet, title string, frame color.RGBA) {
	y := float64(artY + artH)
	dc.SetColor(frame)
	dc.DrawRectangle(artX, y, artW, titleBarH)
	dc.Fill()

	dc.SetFontFace(set.title)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(title, Width/2, y+titleBarH/2, 0.5, 0.35)
}

func drawTypeBar(dc *gg.Context, set fontSet, label string, frame color.RGBA) {
	y := float64(artY + artH + titleBarH)
	dc.SetColor(lighten(frame, 0.55))
	dc.DrawRectangle(artX, y, artW, typeBarH)
	dc.Fill()

	dc.SetFontFace(set.kind)
	dc.SetColor(inkDark)
	dc.DrawStringAnchored(strings.ToUpper(LocalizedTypeLabel(label)), Width/2, y+typeBarH/2, 0.5, 0.35)
}

// drawDescription word-wraps the text into the remaining box above the
// footer. Overflow lines are dropped and leftover vertical slack is split
// evenly above and below the block.
func drawDescription(dc *gg.Context, set fontSet, text string) {
	boxTop := float64(artY + artH + titleBarH + typeBarH + 10)
	boxBottom := float64(Height - border - footerHeight - 6)
	boxH := boxBottom - boxTop
	boxW := float64(artW - 24)
	if boxH < lineHeight {
		return
	}

	dc.SetFontFace(set.body)
	lines := Wrap(text, boxW, func(s string) float64 {
		w, _ := dc.MeasureString(s)
		return w
	})
	maxLines := int(boxH / lineHeight)
	lines = ClampLines(lines, maxLines)
	if len(lines) == 0 {
		return
	}

	slack := boxH - float64(len(lines))*lineHeight
	y := boxTop + slack/2 + lineHeight/2
	dc.SetColor(inkDark)
	for _, line := range lines {
		dc.DrawStringAnchored(line, Width/2, y, 0.5, 0.35)
		y += lineHeight
	}
}

// drawFooter centers the "Created by:" label and the creator name as one
// measured unit.
func drawFooter(dc *gg.Context, set fontSet, creator string) {
	name := DisplayCreator(creator)
	const label = "Created by:"

	dc.SetFontFace(set.label)
	labelW, _ := dc.MeasureString(label)
	dc.SetFontFace(set.name)
	nameW, _ := dc.MeasureString(name)

	total := labelW + footerGap + nameW
	startX := (Width - total) / 2
	y := float64(Height - border - footerHeight/2 - 4)

	dc.SetFontFace(set.label)
	dc.SetColor(inkDark)
	dc.DrawStringAnchored(label, startX+labelW/2, y, 0.5, 0.35)

	dc.SetFontFace(set.name)
	dc.DrawStringAnchored(name, startX+labelW+footerGap+nameW/2, y, 0.5, 0.35)
}

func drawStatBadge(dc *gg.Context, set fontSet, attack, defense int) {
	x := float64(Width - artX - badgeW)
	y := float64(Height - artX - badgeH)
	dc.SetColor(badgeTint)
	dc.DrawRoundedRectangle(x, y, badgeW, badgeH, 8)
	dc.Fill()

	dc.SetFontFace(set.badge)
	dc.SetColor(badgeText)
	dc.DrawStringAnchored(StatLine(attack, defense), x+badgeW/2, y+badgeH/2, 0.5, 0.35)
}

// lighten mixes a color toward white by factor f in [0, 1].
func lighten(c color.RGBA, f float64) color.RGBA {
	mix := func(v uint8) uint8 {
		return uint8(float64(v) + (255-float64(v))*f)
	}
	return color.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: 0xff}
}
