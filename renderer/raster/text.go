package rasterrenderer

import (
	"image/color"

	"github.com/tdewolff/canvas"
	"go.uber.org/zap"

	"github.com/printfab/zplrender/label"
)

// prepareText measures the line and attaches its render dimensions. The
// measured advance is compressed by the face scale factor; the render
// height is the requested em height in dots.
func (r *Renderer) prepareText(e *label.Text) error {
	face, err := r.fonts.Face(e.FontName, float64(e.Height), canvas.Black)
	if err != nil {
		return err
	}
	e.RenderWidth = face.TextWidth(e.Text) * e.ScaleX()
	e.RenderHeight = float64(e.Height)
	return nil
}

// drawText paints one text line. The baseline anchor derives from the
// origin type (^FO positions the glyph top, ^FT the baseline), block
// alignment shifts the anchor inside the field block, and orientation
// rotates about the anchor before the horizontal compression is applied.
func (r *Renderer) drawText(ctx *canvas.Context, e *label.Text) {
	var col color.Color = canvas.Black
	if e.Reverse {
		col = canvas.White
	}
	face, err := r.fonts.Face(e.FontName, float64(e.Height), col)
	if err != nil {
		r.log.Debug("text face unavailable", zap.String("font", e.FontName), zap.Error(err))
		return
	}

	scaleX := e.ScaleX()
	baseX, baseY := float64(e.X), float64(e.Y)
	if e.Origin != label.OriginBaseline {
		baseY += float64(e.Height)
	}
	if e.BlockWidth > 0 {
		actual := face.TextWidth(e.Text) * scaleX
		switch e.BlockAlign {
		case label.AlignCenter:
			baseX += (float64(e.BlockWidth) - actual) / 2
		case label.AlignRight:
			baseX += float64(e.BlockWidth) - actual
		}
		// L keeps the left edge; J is treated as L.
	}

	m := canvas.Identity
	if deg := rotationDeg(e.Orientation); deg != 0 {
		m = m.RotateAbout(deg, baseX, baseY)
	}
	m = m.Translate(baseX, baseY).Scale(scaleX, 1)

	ctx.Push()
	ctx.ComposeView(m)
	line := canvas.NewTextLine(face, e.Text, canvas.Left)
	ctx.DrawText(0, 0, line)
	if e.FontName == "0" {
		// Triple strike thickens the substitute face toward Zebra's
		// font 0 stroke weight.
		ctx.DrawText(1, 0, line)
		ctx.DrawText(0, 1, line)
	}
	ctx.Pop()
}
