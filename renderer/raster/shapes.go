package rasterrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"

	"github.com/printfab/zplrender/label"
)

// inkColor resolves the paint color: reversed elements and explicit 'W'
// shapes knock out in white, everything else prints black.
func inkColor(reverse bool, c label.Color) color.Color {
	if reverse || c == label.ColorWhite {
		return canvas.White
	}
	return canvas.Black
}

// drawBox paints a ^GB rectangle. The box fills when the color is 'F' or
// when the border is at least as thick as both dimensions; otherwise the
// border strokes inside the w×h cell.
func drawBox(ctx *canvas.Context, e *label.Box) {
	w, h := float64(e.Width), float64(e.Height)
	t := float64(e.Thickness)
	if t <= 0 {
		t = 1
	}
	col := inkColor(e.Reverse, e.Color)
	x, y := float64(e.X), float64(e.Y)

	if e.Color == label.ColorFill || (float64(e.Thickness) >= w && float64(e.Thickness) >= h) {
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetStrokeWidth(0)
		ctx.DrawPath(x, y, canvas.Rectangle(w, h))
		return
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(t)
	// The stroke is centered on the path; inset by half the thickness so
	// the outline stays inside the declared cell.
	ctx.DrawPath(x+t/2, y+t/2, canvas.Rectangle(w-t, h-t))
}

// drawCircle paints a ^GC circle centered in its bounding square. A zero
// thickness or color 'F' fills the disc.
func drawCircle(ctx *canvas.Context, e *label.Circle) {
	d := float64(e.Diameter)
	rad := d / 2
	col := inkColor(e.Reverse, e.Color)
	cx, cy := float64(e.X)+rad, float64(e.Y)+rad

	if e.Thickness == 0 || e.Color == label.ColorFill {
		ctx.SetFillColor(col)
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.SetStrokeWidth(0)
		ctx.DrawPath(cx, cy, canvas.Circle(rad)) // circle paths are origin-centered
		return
	}

	t := float64(e.Thickness)
	inset := rad - t/2
	if inset < 0 {
		inset = 0
	}
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(col)
	ctx.SetStrokeWidth(t)
	ctx.DrawPath(cx, cy, canvas.Circle(inset))
}

// drawDiagonal strokes a ^GD line across its cell: top-left to
// bottom-right by default, bottom-left to top-right when rising.
func drawDiagonal(ctx *canvas.Context, e *label.Diagonal) {
	t := float64(e.Thickness)
	if t <= 0 {
		t = 1
	}
	w, h := float64(e.Width), float64(e.Height)

	p := &canvas.Path{}
	if e.Rising {
		p.MoveTo(0, h)
		p.LineTo(w, 0)
	} else {
		p.MoveTo(0, 0)
		p.LineTo(w, h)
	}

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(inkColor(e.Reverse, e.Color))
	ctx.SetStrokeWidth(t)
	ctx.DrawPath(float64(e.X), float64(e.Y), p)
}
