package rasterrenderer

import (
	"fmt"
	"image"
	"math"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/pdf417"
	"github.com/boombuler/barcode/qr"
	"github.com/boombuler/barcode/twooffive"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/printfab/zplrender/fonts"
)

// Request carries the options handed to the delegated barcode engine.
// Knobs the default engine cannot honor (bar/space ratio, pdf417 row and
// column constraints, truncation, rotation) are still carried so an
// alternative engine can use them; rotation in particular is applied as a
// canvas transform at draw time, not by the engine.
type Request struct {
	BCID string
	Text string

	ScaleX, ScaleY int     // non-matrix: pixels per module
	Scale          int     // matrix: pixels per module
	HeightMM       float64 // non-matrix: bar height in millimeters

	BarRatio   float64
	SpaceRatio float64

	Rotate      string // N, R, L, I
	IncludeText bool
	TextXAlign  string

	NoChecksum  bool
	NoStartStop bool

	ECC           string // qrcode: L/M/Q/H
	SecurityLevel int    // pdf417
	Columns       int    // pdf417
	Rows          int    // pdf417
	RowHeight     int    // pdf417
	Truncated     bool   // pdf417
}

// Engine renders a symbology request into a bitmap.
type Engine interface {
	Generate(req Request) (image.Image, error)
}

// SymbologyEngine implements Engine on github.com/boombuler/barcode.
type SymbologyEngine struct {
	Fonts *fonts.Registry
	Log   *zap.Logger
}

var _ Engine = (*SymbologyEngine)(nil)

// Generate encodes the payload, scales the symbol to its pixel size with
// a nearest-neighbour filter to keep module edges crisp, and composes the
// human-readable line when requested.
func (s *SymbologyEngine) Generate(req Request) (image.Image, error) {
	bc, err := s.encode(req)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", req.BCID, err)
	}

	img := scaleSymbol(bc, req)
	if req.IncludeText {
		img = s.composeText(img, req)
	}
	return img, nil
}

func (s *SymbologyEngine) encode(req Request) (barcode.Barcode, error) {
	switch req.BCID {
	case "code128":
		return code128.Encode(req.Text)
	case "ean13":
		return ean.Encode(req.Text)
	case "code93":
		return code93.Encode(req.Text, !req.NoChecksum, false)
	case "interleaved2of5":
		return twooffive.Encode(req.Text, true)
	case "qrcode":
		return qr.Encode(req.Text, eccLevel(req.ECC), qr.Auto)
	case "datamatrix":
		return datamatrix.Encode(req.Text)
	case "pdf417":
		level := req.SecurityLevel
		if level < 0 {
			level = 0
		}
		if level > 8 {
			level = 8
		}
		return pdf417.Encode(req.Text, byte(level))
	}
	return nil, fmt.Errorf("unsupported symbology %q", req.BCID)
}

func eccLevel(ecc string) qr.ErrorCorrectionLevel {
	switch ecc {
	case "L":
		return qr.L
	case "Q":
		return qr.Q
	case "H":
		return qr.H
	default:
		return qr.M
	}
}

// scaleSymbol maps the encoded symbol onto its target pixel size: matrix
// codes multiply both axes by the scale, linear codes stretch each module
// to ScaleX pixels and the height to the requested millimeters rendered
// at 72 dpi times ScaleY.
func scaleSymbol(bc barcode.Barcode, req Request) image.Image {
	b := bc.Bounds()
	var w, h int
	if req.Scale > 0 {
		w, h = b.Dx()*req.Scale, b.Dy()*req.Scale
	} else {
		sx, sy := req.ScaleX, req.ScaleY
		if sx <= 0 {
			sx = 1
		}
		if sy <= 0 {
			sy = 1
		}
		w = b.Dx() * sx
		h = int(math.Round(req.HeightMM / 25.4 * 72.0 * float64(sy)))
		if h <= 0 {
			h = b.Dy() * sy
		}
	}
	if w <= 0 || h <= 0 {
		return bc
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), bc, b, xdraw.Src, nil)
	return dst
}

// composeText appends the interpretation line under the symbol, centered
// when TextXAlign is "center" and left-aligned otherwise.
// Best-effort: without a usable face the bare symbol is returned.
func (s *SymbologyEngine) composeText(img image.Image, req Request) image.Image {
	size := 10.0
	if req.ScaleX > 1 {
		size *= float64(req.ScaleX)
	}
	reg := s.Fonts
	if reg == nil {
		reg = fonts.Default
	}
	face, err := reg.Face("A", size, canvas.Black)
	if err != nil {
		if s.Log != nil {
			s.Log.Debug("interpretation face unavailable", zap.Error(err))
		}
		return img
	}

	b := img.Bounds()
	textBand := size + 4
	w, h := float64(b.Dx()), float64(b.Dy())+textBand

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	ctx.SetFillColor(canvas.White)
	ctx.DrawPath(0, 0, canvas.Rectangle(w, h))
	ctx.DrawImage(0, 0, img, canvas.DPMM(1.0))

	tx := 0.0
	if req.TextXAlign == "center" {
		tx = (w - face.TextWidth(req.Text)) / 2
	}
	ctx.DrawText(tx, h-2, canvas.NewTextLine(face, req.Text, canvas.Left))
	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace)
}
