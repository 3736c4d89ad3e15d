package zpl

import (
	"math"
	"strings"

	"github.com/printfab/zplrender/label"
)

// paragraphEscape is the ZPL line separator inside field data.
const paragraphEscape = `\&`

// wrapFieldBlock breaks ^FD data into positioned text lines for an armed
// field block. Line capacity is estimated from a fixed per-character
// width of 0.6 em scaled by the face compression factor; the constants
// are part of the observable contract of the renderer and must not be
// tuned.
func wrapFieldBlock(data string, fb FieldBlock, f Font, pos Point) []*label.Text {
	charWidth := float64(f.Height) * 0.6 * label.TextScaleX(f.Name, f.Height, f.Width)
	maxChars := 0
	if fb.Width > 0 && charWidth > 0 {
		maxChars = int(math.Floor(float64(fb.Width) / charWidth))
	}

	var lines []string
	for _, para := range strings.Split(data, paragraphEscape) {
		lines = append(lines, wrapParagraph(para, maxChars)...)
	}
	if fb.Lines > 0 && len(lines) > fb.Lines {
		lines = lines[:fb.Lines]
	}

	step := f.Height + fb.LineSpacing
	offsetY := 0
	if fb.Lines > len(lines) {
		allowed := fb.Lines*step - fb.LineSpacing
		produced := len(lines)*step - fb.LineSpacing
		offsetY = (allowed - produced) / 2
	}

	out := make([]*label.Text, 0, len(lines))
	for i, line := range lines {
		x := pos.X
		if i > 0 {
			x += fb.Indent
		}
		out = append(out, &label.Text{
			Common: label.Common{
				X: x,
				Y: pos.Y + offsetY + i*step,
			},
			Text:       line,
			FontName:   f.Name,
			Height:     f.Height,
			Width:      f.Width,
			BlockWidth: fb.Width,
			BlockAlign: fb.Align,
		})
	}
	return out
}

// wrapParagraph greedily packs whitespace separated words into lines of at
// most maxChars characters. A word that would overflow begins a new line
// unless the current line is empty, in which case it stands alone even
// when over the limit. maxChars <= 0 means unbounded.
func wrapParagraph(para string, maxChars int) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		switch {
		case current == "":
			if maxChars > 0 && len(word) > maxChars {
				lines = append(lines, word)
				continue
			}
			current = word
		case maxChars > 0 && len(current)+1+len(word) > maxChars:
			lines = append(lines, current)
			if len(word) > maxChars {
				lines = append(lines, word)
				current = ""
			} else {
				current = word
			}
		default:
			current += " " + word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
