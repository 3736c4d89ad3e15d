package rasterrenderer

import (
	"math"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"go.uber.org/zap"

	"github.com/printfab/zplrender/label"
)

// Code 39 is generated natively: each character maps to nine modules over
// {n,w}, bars at even indices, spaces at odd. Characters outside the
// alphabet fall back to '-'.
var code39Patterns = map[rune]string{
	'0': "nnnwwnwnn", '1': "wnnwnnnnw", '2': "nnwwnnnnw", '3': "wnwwnnnnn",
	'4': "nnnwwnnnw", '5': "wnnwwnnnn", '6': "nnwwwnnnn", '7': "nnnwnnwnw",
	'8': "wnnwnnwnn", '9': "nnwwnnwnn",
	'A': "wnnnnwnnw", 'B': "nnwnnwnnw", 'C': "wnwnnwnnn", 'D': "nnnnwwnnw",
	'E': "wnnnwwnnn", 'F': "nnwnwwnnn", 'G': "nnnnnwwnw", 'H': "wnnnnwwnn",
	'I': "nnwnnwwnn", 'J': "nnnnwwwnn", 'K': "wnnnnnnww", 'L': "nnwnnnnww",
	'M': "wnwnnnnwn", 'N': "nnnnwnnww", 'O': "wnnnwnnwn", 'P': "nnwnwnnwn",
	'Q': "nnnnnnwww", 'R': "wnnnnnwwn", 'S': "nnwnnnwwn", 'T': "nnnnwnwwn",
	'U': "wwnnnnnnw", 'V': "nwwnnnnnw", 'W': "wwwnnnnnn", 'X': "nwnnwnnnw",
	'Y': "wwnnwnnnn", 'Z': "nwwnwnnnn",
	'-': "nwnnnnwnw", '.': "wwnnnnwnn", ' ': "nwwnnnwnn", '$': "nwnwnwnnn",
	'/': "nwnwnnnwn", '+': "nwnnnwnwn", '%': "nnnwnwnwn", '*': "nwnnwnwnn",
}

// code39QuietModules is the quiet zone on each side, in narrow modules.
const code39QuietModules = 10

func code39Pattern(ch rune) string {
	if p, ok := code39Patterns[ch]; ok {
		return p
	}
	return code39Patterns['-']
}

// code39Modules returns the symbol width in narrow modules for an already
// wrapped payload (start/stop asterisks included): both quiet zones, nine
// modules per character with wide elements counted at the ratio, and a
// single-module gap between characters.
func code39Modules(wrapped string, ratio int) int {
	total := 2 * code39QuietModules
	for i, ch := range wrapped {
		if i > 0 {
			total++
		}
		for _, m := range code39Pattern(ch) {
			if m == 'w' {
				total += ratio
			} else {
				total++
			}
		}
	}
	return total
}

// prepareCode39 rasters the symbol onto its own canvas and attaches it as
// the element bitmap.
func (r *Renderer) prepareCode39(e *label.Barcode) {
	narrow := e.ModuleWidth
	if narrow <= 0 {
		narrow = 2
	}
	ratio := e.Ratio
	if ratio <= 0 {
		ratio = 2
	}
	height := e.Height
	if height <= 0 {
		height = 50
	}

	wrapped := "*" + strings.ToUpper(e.Text) + "*"
	widthPx := int(math.Ceil(float64(code39Modules(wrapped, ratio) * narrow)))

	textArea := 0
	barHeight := height
	if e.PrintInterpretation {
		textArea = int(float64(height)*0.2) + 4
		barHeight = height - textArea
		if barHeight < 1 {
			barHeight = 1
		}
	}
	barTop := 0
	if e.PrintInterpretation && e.PrintAbove {
		barTop = textArea
	}

	c := canvas.New(float64(widthPx), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(float64(widthPx), float64(height)))

	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(canvas.Transparent)
	x := code39QuietModules * narrow
	for i, ch := range wrapped {
		if i > 0 {
			x += narrow // inter-character gap
		}
		for j, m := range code39Pattern(ch) {
			w := narrow
			if m == 'w' {
				w = narrow * ratio
			}
			if j%2 == 0 {
				ctx.DrawPath(float64(x), float64(barTop), canvas.Rectangle(float64(w), float64(barHeight)))
			}
			x += w
		}
	}

	if e.PrintInterpretation {
		r.drawCode39Text(ctx, wrapped, widthPx, height, textArea, e.PrintAbove)
	}

	e.Bitmap = rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
	e.RenderWidth = float64(widthPx)
	e.RenderHeight = float64(height)
}

// drawCode39Text centers the wrapped payload (asterisks included) in the
// reserved text band. A missing face only drops the interpretation line.
func (r *Renderer) drawCode39Text(ctx *canvas.Context, wrapped string, widthPx, height, textArea int, above bool) {
	size := float64(textArea - 4)
	if size < 4 {
		size = 4
	}
	face, err := r.fonts.Face("A", size, canvas.Black)
	if err != nil {
		r.log.Debug("code39 interpretation face unavailable", zap.Error(err))
		return
	}
	tx := (float64(widthPx) - face.TextWidth(wrapped)) / 2
	baseline := float64(height) - 2
	if above {
		baseline = float64(textArea) - 2
	}
	ctx.DrawText(tx, baseline, canvas.NewTextLine(face, wrapped, canvas.Left))
}
