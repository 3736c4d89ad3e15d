package rasterrenderer

import (
	"bytes"
	"encoding/hex"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"go.uber.org/zap"

	"github.com/printfab/zplrender/label"
)

// prepareImage decodes the recalled graphic and attaches the bitmap plus
// its scaled render dimensions. Decode failure is recovered locally: the
// element stays without a bitmap and draw is a no-op.
func (r *Renderer) prepareImage(e *label.Image) {
	if e.Graphic == nil {
		return
	}
	img := r.decodeGraphic(e.Graphic)
	if img == nil {
		return
	}
	sx, sy := e.ScaleX, e.ScaleY
	if sx <= 0 {
		sx = 1
	}
	if sy <= 0 {
		sy = 1
	}
	e.Bitmap = img
	e.RenderWidth = float64(img.Bounds().Dx()) * sx
	e.RenderHeight = float64(img.Bounds().Dy()) * sy
}

// decodeGraphic turns a stored graphic into a bitmap: registered image
// formats for ~DY payloads (attempted even when the type is unknown),
// 1-bit hex rows for ~DG downloads.
func (r *Renderer) decodeGraphic(g *label.Graphic) image.Image {
	if g.Type == "grf" {
		return decodeGRF(g)
	}
	if len(g.Data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(g.Data))
	if err != nil {
		r.log.Debug("graphic decode failed", zap.String("name", g.Name), zap.Error(err))
		return nil
	}
	return img
}

// decodeGRF expands ~DG ASCII hex rows into a bitmap: each byte is eight
// dots, set bits print black, clear bits stay transparent. Compressed
// downloads (run-length letters) are not expanded and yield no bitmap.
func decodeGRF(g *label.Graphic) image.Image {
	if g.BytesPerRow <= 0 {
		return nil
	}
	data, err := hex.DecodeString(strings.TrimSpace(g.Raw))
	if err != nil {
		return nil
	}
	rows := len(data) / g.BytesPerRow
	if rows == 0 {
		return nil
	}

	black := color.RGBA{A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, g.BytesPerRow*8, rows))
	for y := 0; y < rows; y++ {
		for bx := 0; bx < g.BytesPerRow; bx++ {
			b := data[y*g.BytesPerRow+bx]
			for bit := 0; bit < 8; bit++ {
				if b&(0x80>>bit) != 0 {
					img.SetRGBA(bx*8+bit, y, black)
				}
			}
		}
	}
	return img
}
