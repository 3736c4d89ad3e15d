package rasterrenderer

import (
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/printfab/zplrender/label"
)

// prepareBarcode sizes and rasters a barcode element. Code 39 is handled
// by the native generator; every other symbology delegates to the engine.
// Engine failure is recovered locally: the element keeps placeholder
// dimensions and no bitmap, so draw becomes a no-op.
func (r *Renderer) prepareBarcode(e *label.Barcode) {
	if e.Code == label.CodeCode39 {
		r.prepareCode39(e)
		return
	}

	req := engineRequest(e)
	img, err := r.engine.Generate(req)
	if err != nil {
		r.log.Debug("barcode engine failed",
			zap.String("bcid", req.BCID), zap.String("text", req.Text), zap.Error(err))
		moduleWidth := e.ModuleWidth
		if moduleWidth <= 0 {
			moduleWidth = 2
		}
		height := e.Height
		if height <= 0 {
			height = 50
		}
		e.RenderWidth = float64(len(e.Text) * moduleWidth * 10)
		e.RenderHeight = float64(height)
		return
	}

	b := img.Bounds()
	e.RenderWidth = float64(b.Dx())
	e.RenderHeight = float64(b.Dy())
	if e.Height > 0 && !e.Code.Matrix() {
		if top, bottom, ok := inkRows(img); ok {
			scale := float64(e.Height) / float64(bottom-top+1)
			e.RenderWidth = math.Round(float64(b.Dx()) * scale)
			e.RenderHeight = math.Round(float64(b.Dy()) * scale)
		}
	}
	e.Bitmap = img
}

// engineRequest maps an element onto the delegated engine's option set.
// Non-matrix codes scale by module width and convert the dot height into
// the engine's millimeter unit; matrix codes pass a plain scale.
func engineRequest(e *label.Barcode) Request {
	moduleWidth := e.ModuleWidth
	if moduleWidth <= 0 {
		moduleWidth = 2
	}
	req := Request{
		BCID:   string(e.Code),
		Text:   e.Text,
		Rotate: rotateCode(e.Orientation),
	}

	if e.Code.Matrix() {
		req.Scale = e.Options.Scale
		if req.Scale <= 0 {
			req.Scale = moduleWidth
		}
		req.ECC = e.Options.ECC
	} else {
		req.ScaleX, req.ScaleY = moduleWidth, moduleWidth
		height := e.Height
		if height <= 0 {
			height = 50
		}
		req.HeightMM = float64(height) * 25.4 / (72.0 * float64(moduleWidth))
		if e.Code == label.CodeInterleaved2of5 && e.Ratio > 1 {
			ratio := float64(e.Ratio - 1)
			req.BarRatio, req.SpaceRatio = ratio, ratio
		}
	}

	if e.Code == label.CodeCode93 {
		// The engine's start/stop and checksum handling would double up
		// what the symbology already encodes for ZPL payloads.
		req.NoChecksum = true
		req.NoStartStop = true
	}
	if e.Code == label.CodePDF417 {
		req.SecurityLevel = e.Options.SecurityLevel
		req.Columns = e.Options.Columns
		req.Rows = e.Options.Rows
		req.RowHeight = e.Options.RowHeight
		req.Truncated = e.Options.Truncated
	}
	if e.PrintInterpretation {
		req.IncludeText = true
		req.TextXAlign = "center"
	}
	return req
}

// rotateCode maps field orientation onto the engine's rotation letters.
func rotateCode(o label.Orientation) string {
	switch o {
	case label.OrientRotated:
		return "R"
	case label.OrientBottomUp:
		return "L"
	case label.OrientInverted:
		return "I"
	}
	return "N"
}

// ink thresholds: a pixel is ink when it is not transparent and at least
// one channel is darker than 200 of 255.
const inkThreshold = 200 * 0x101

// inkRows returns the first and last bitmap rows containing ink.
func inkRows(img image.Image) (top, bottom int, ok bool) {
	b := img.Bounds()
	top, bottom = -1, -1
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			if ca == 0 {
				continue
			}
			if cr < inkThreshold || cg < inkThreshold || cb < inkThreshold {
				if top < 0 {
					top = y - b.Min.Y
				}
				bottom = y - b.Min.Y
				break
			}
		}
	}
	if top < 0 {
		return 0, 0, false
	}
	return top, bottom, true
}
