package rasterrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"go.uber.org/zap"

	"github.com/printfab/zplrender/fonts"
	"github.com/printfab/zplrender/label"
	"github.com/printfab/zplrender/renderer"
	"github.com/printfab/zplrender/zpl"
)

// canvasMargin is the white border added around the union of element
// bounds, in dots.
const canvasMargin = 4

// Renderer rasterizes analyzed labels into PNG images via
// github.com/tdewolff/canvas. One dot maps to one output pixel.
type Renderer struct {
	fonts  *fonts.Registry
	engine Engine
	log    *zap.Logger
}

var _ renderer.Renderer = (*Renderer)(nil)

// Options configures the raster renderer; zero values pick the process
// defaults.
type Options struct {
	Fonts  *fonts.Registry
	Engine Engine
	Logger *zap.Logger
}

// NewRenderer creates a renderer on the process-wide font registry and
// the built-in symbology engine.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected collaborators.
func NewRendererWithOptions(opts Options) *Renderer {
	r := &Renderer{fonts: opts.Fonts, engine: opts.Engine, log: opts.Logger}
	if r.fonts == nil {
		r.fonts = fonts.Default
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	if r.engine == nil {
		r.engine = &SymbologyEngine{Fonts: r.fonts, Log: r.log}
	}
	return r
}

// Render is the convenience entry: analyze a document and rasterize its
// first label. It fails when the document yields no labels; callers
// needing every label pair zpl.Analyze with Renderer.Render themselves.
func Render(src string) ([]byte, error) {
	labels := zpl.Analyze(src)
	if len(labels) == 0 {
		return nil, fmt.Errorf("zpl document produced no labels")
	}
	return NewRenderer().Render(labels[0])
}

// Render rasterizes one label and encodes it as an RGBA PNG with a white
// background.
func (r *Renderer) Render(lab label.Label) ([]byte, error) {
	img, err := r.Draw(lab)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Draw prepares every element in emission order, sizes the canvas to the
// union of their bounds, and paints them in that same order so later
// elements overlay earlier ones.
func (r *Renderer) Draw(lab label.Label) (*image.RGBA, error) {
	for _, el := range lab.Elements {
		if err := r.prepare(el); err != nil {
			return nil, err
		}
	}

	w, h := canvasSize(lab.Elements)
	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV) // origin top-left, y down, like the analyzer
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))

	for _, el := range lab.Elements {
		r.draw(ctx, el)
	}
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}

// prepare dispatches the sizing pass. Only text propagates an error (a
// missing regular face is an environment failure); barcode and image
// preparation recover locally and leave the element without a bitmap.
func (r *Renderer) prepare(el label.Element) error {
	switch e := el.(type) {
	case *label.Text:
		return r.prepareText(e)
	case *label.Barcode:
		r.prepareBarcode(e)
	case *label.Image:
		r.prepareImage(e)
	}
	return nil
}

// draw dispatches the paint pass; unknown element types are skipped.
func (r *Renderer) draw(ctx *canvas.Context, el label.Element) {
	switch e := el.(type) {
	case *label.Text:
		r.drawText(ctx, e)
	case *label.Barcode:
		drawBitmap(ctx, &e.Common, e.Bitmap)
	case *label.Image:
		drawBitmap(ctx, &e.Common, e.Bitmap)
	case *label.Box:
		drawBox(ctx, e)
	case *label.Circle:
		drawCircle(ctx, e)
	case *label.Diagonal:
		drawDiagonal(ctx, e)
	}
}

// canvasSize computes the output dimensions: the union of element
// extents (swapped for the quarter-turn orientations), a minimum extent
// of one dot, and the margin on the far edges.
func canvasSize(els []label.Element) (float64, float64) {
	var maxX, maxY float64
	for _, el := range els {
		c := el.Base()
		w, h := extent(el)
		if c.Orientation == label.OrientRotated || c.Orientation == label.OrientBottomUp {
			w, h = h, w
		}
		maxX = math.Max(maxX, float64(c.X)+w)
		maxY = math.Max(maxY, float64(c.Y)+h)
	}
	if maxX < 1 {
		maxX = 1
	}
	if maxY < 1 {
		maxY = 1
	}
	return math.Ceil(maxX + canvasMargin), math.Ceil(maxY + canvasMargin)
}

// extent returns an element's unrotated size: prepared render dimensions
// when attached, else the element's own declared dimensions, else zero.
func extent(el label.Element) (float64, float64) {
	c := el.Base()
	if c.RenderWidth > 0 || c.RenderHeight > 0 {
		return c.RenderWidth, c.RenderHeight
	}
	switch e := el.(type) {
	case *label.Box:
		return float64(e.Width), float64(e.Height)
	case *label.Circle:
		return float64(e.Diameter), float64(e.Diameter)
	case *label.Diagonal:
		return float64(e.Width), float64(e.Height)
	}
	return 0, 0
}

// rotationDeg maps a field orientation to a rotation about the element
// anchor in the label's y-down coordinate space.
func rotationDeg(o label.Orientation) float64 {
	switch o {
	case label.OrientRotated:
		return -90
	case label.OrientInverted:
		return 180
	case label.OrientBottomUp:
		return 90
	}
	return 0
}

// drawBitmap blits a prepared bitmap scaled to the element's render
// dimensions, rotated about the element anchor. A nil bitmap is a no-op.
func drawBitmap(ctx *canvas.Context, c *label.Common, img image.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	w, h := c.RenderWidth, c.RenderHeight
	if w <= 0 {
		w = float64(b.Dx())
	}
	if h <= 0 {
		h = float64(b.Dy())
	}

	x, y := float64(c.X), float64(c.Y)
	m := canvas.Identity
	if deg := rotationDeg(c.Orientation); deg != 0 {
		m = m.RotateAbout(deg, x, y)
	}
	m = m.Translate(x, y).Scale(w/float64(b.Dx()), h/float64(b.Dy()))

	ctx.Push()
	ctx.ComposeView(m)
	ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))
	ctx.Pop()
}
