package component

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/width"
)

// Sprite is a block of terminal cells drawn with one style. It is the visual
// surface a Graphic points at; sprites are shared between payloads.
type Sprite struct {
	Name  string
	Rows  []string
	Style tcell.Style
}

// CellWidth is the number of terminal columns r occupies.
func CellWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// StringWidth sums CellWidth over s.
func StringWidth(s string) int {
	n := 0
	for _, r := range s {
		n += CellWidth(r)
	}
	return n
}

func (s *Sprite) Width() int {
	w := 0
	for _, row := range s.Rows {
		w = max(w, StringWidth(row))
	}
	return w
}

func (s *Sprite) Height() int { return len(s.Rows) }

var mirrored = strings.NewReplacer(
	"/", `\`, `\`, "/",
	"(", ")", ")", "(",
	"<", ">", ">", "<",
	"[", "]", "]", "[",
	"{", "}", "}", "{",
)

// Mirror returns s flipped horizontally.
func Mirror(s *Sprite) *Sprite {
	out := &Sprite{Name: s.Name + "_mirrored", Style: s.Style, Rows: make([]string, len(s.Rows))}
	for i, row := range s.Rows {
		runes := []rune(mirrored.Replace(row))
		for l, r := 0, len(runes)-1; l < r; l, r = l+1, r-1 {
			runes[l], runes[r] = runes[r], runes[l]
		}
		out.Rows[i] = string(runes)
	}
	return out
}

// TextSprite renders one line of text as a sprite.
func TextSprite(text string, style tcell.Style) *Sprite {
	return &Sprite{Name: "text", Rows: []string{text}, Style: style}
}
