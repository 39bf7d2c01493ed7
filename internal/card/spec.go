// Package card composites trading-card faces onto a fixed 400x600 surface.
package card

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Surface dimensions in logical units.
const (
	Width  = 400
	Height = 600
)

// RenderSpec describes one card face. Immutable per render call.
type RenderSpec struct {
	Title       string `json:"title"`
	TypeLabel   string `json:"type"`
	Cost        int    `json:"cost"`
	Description string `json:"description"`
	FrameColor  string `json:"frameColor"`
	CreatorName string `json:"creator"`
	// Attack and Defense are present only for creatures.
	Attack  *int `json:"attack,omitempty"`
	Defense *int `json:"defense,omitempty"`
	// Artwork is an optional decoded image, cover-fitted into the art box.
	Artwork image.Image `json:"-"`
}

// IsCreature reports whether the card carries an attack/defense badge.
func (s RenderSpec) IsCreature() bool {
	return strings.EqualFold(s.TypeLabel, "creature") || strings.EqualFold(s.TypeLabel, "criatura")
}

// LocalizedTypeLabel maps the canonical card types to their Spanish
// display names; unknown labels pass through unchanged.
func LocalizedTypeLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "creature", "criatura":
		return "Criatura"
	case "artifact", "artefacto":
		return "Artefacto"
	case "spell", "hechizo":
		return "Hechizo"
	default:
		return label
	}
}

// DisplayCreator resolves the footer creator name. The literal string
// "undefined" leaks out of some older card records and is treated as absent.
func DisplayCreator(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == "undefined" {
		return "Anónimo"
	}
	return trimmed
}

// StatLine formats the attack/defense badge text.
func StatLine(attack, defense int) string {
	return fmt.Sprintf("%d / %d", attack, defense)
}

// neutralGray is the frame fallback for unparseable colors.
var neutralGray = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}

// ParseFrameColor parses a #rgb or #rrggbb hex color. Anything else
// falls back to a neutral gray; the card still renders, just uncolored.
func ParseFrameColor(s string) color.RGBA {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		return neutralGray
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return neutralGray
		}
		r, g, b = r*17, g*17, b*17
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return neutralGray
		}
	default:
		return neutralGray
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
