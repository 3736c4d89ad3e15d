package rasterrenderer

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printfab/zplrender/label"
)

type stubEngine struct {
	img  image.Image
	err  error
	last Request
}

func (s *stubEngine) Generate(req Request) (image.Image, error) {
	s.last = req
	return s.img, s.err
}

func TestEngineRequestMapping(t *testing.T) {
	tests := []struct {
		name  string
		el    *label.Barcode
		check func(t *testing.T, req Request)
	}{
		{
			name: "code128 module scaling",
			el:   &label.Barcode{Code: label.CodeCode128, Text: "X", Height: 72, ModuleWidth: 2},
			check: func(t *testing.T, req Request) {
				require.Equal(t, "code128", req.BCID)
				require.Equal(t, 2, req.ScaleX)
				require.Equal(t, 2, req.ScaleY)
				require.InDelta(t, 72*25.4/(72.0*2), req.HeightMM, 1e-9)
				require.Zero(t, req.Scale)
			},
		},
		{
			name: "interleaved ratio",
			el:   &label.Barcode{Code: label.CodeInterleaved2of5, Text: "12", Height: 50, ModuleWidth: 2, Ratio: 3},
			check: func(t *testing.T, req Request) {
				require.Equal(t, 2.0, req.BarRatio)
				require.Equal(t, 2.0, req.SpaceRatio)
			},
		},
		{
			name: "qr scale from options",
			el: &label.Barcode{Code: label.CodeQR, Text: "X", ModuleWidth: 2,
				Options: label.BarcodeOptions{Scale: 6, ECC: "H"}},
			check: func(t *testing.T, req Request) {
				require.Equal(t, 6, req.Scale)
				require.Equal(t, "H", req.ECC)
				require.Zero(t, req.ScaleX)
			},
		},
		{
			name: "matrix scale falls back to module width",
			el:   &label.Barcode{Code: label.CodeDataMatrix, Text: "X", ModuleWidth: 5},
			check: func(t *testing.T, req Request) {
				require.Equal(t, 5, req.Scale)
			},
		},
		{
			name: "code93 disables engine framing",
			el:   &label.Barcode{Code: label.CodeCode93, Text: "X", Height: 50, ModuleWidth: 2},
			check: func(t *testing.T, req Request) {
				require.True(t, req.NoChecksum)
				require.True(t, req.NoStartStop)
			},
		},
		{
			name: "interpretation requests centered text",
			el: &label.Barcode{Code: label.CodeCode128, Text: "X", Height: 50, ModuleWidth: 2,
				PrintInterpretation: true},
			check: func(t *testing.T, req Request) {
				require.True(t, req.IncludeText)
				require.Equal(t, "center", req.TextXAlign)
			},
		},
		{
			name: "pdf417 options",
			el: &label.Barcode{Code: label.CodePDF417, Text: "X", Height: 50, ModuleWidth: 3,
				Options: label.BarcodeOptions{SecurityLevel: 4, Columns: 10, Rows: 20, RowHeight: 9, Truncated: true}},
			check: func(t *testing.T, req Request) {
				require.Equal(t, 4, req.SecurityLevel)
				require.Equal(t, 10, req.Columns)
				require.Equal(t, 20, req.Rows)
				require.Equal(t, 9, req.RowHeight)
				require.True(t, req.Truncated)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, engineRequest(tt.el))
		})
	}
}

func TestRotateCode(t *testing.T) {
	require.Equal(t, "N", rotateCode(label.OrientNormal))
	require.Equal(t, "R", rotateCode(label.OrientRotated))
	require.Equal(t, "L", rotateCode(label.OrientBottomUp))
	require.Equal(t, "I", rotateCode(label.OrientInverted))
}

func TestInkRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	_, _, ok := inkRows(img)
	require.False(t, ok, "all-white image has no ink")

	for x := 0; x < 10; x++ {
		img.SetRGBA(x, 2, color.RGBA{A: 255})
		img.SetRGBA(x, 7, color.RGBA{A: 255})
	}
	top, bottom, ok := inkRows(img)
	require.True(t, ok)
	require.Equal(t, 2, top)
	require.Equal(t, 7, bottom)
}

func TestPrepareBarcodeRescalesToInkHeight(t *testing.T) {
	// 10×10 source with ink rows 2..7 (6 rows). A requested height of 30
	// scales everything by 5.
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 2; y <= 7; y++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}
	stub := &stubEngine{img: img}
	r := NewRendererWithOptions(Options{Engine: stub})

	e := &label.Barcode{Code: label.CodeCode128, Text: "X", Height: 30, ModuleWidth: 2}
	r.prepareBarcode(e)

	require.Equal(t, 50.0, e.RenderWidth)
	require.Equal(t, 50.0, e.RenderHeight)
	require.NotNil(t, e.Bitmap)
}

func TestPrepareBarcodeMatrixKeepsImageSize(t *testing.T) {
	stub := &stubEngine{img: image.NewRGBA(image.Rect(0, 0, 42, 42))}
	r := NewRendererWithOptions(Options{Engine: stub})

	e := &label.Barcode{Code: label.CodeQR, Text: "X", Height: 30, ModuleWidth: 2}
	r.prepareBarcode(e)

	require.Equal(t, 42.0, e.RenderWidth, "matrix codes ignore the height rescale")
	require.Equal(t, 42.0, e.RenderHeight)
}

func TestPrepareBarcodeEngineFailureFallback(t *testing.T) {
	stub := &stubEngine{err: fmt.Errorf("boom")}
	r := NewRendererWithOptions(Options{Engine: stub})

	e := &label.Barcode{Code: label.CodeCode128, Text: "ABCD", Height: 60, ModuleWidth: 3}
	r.prepareBarcode(e)

	require.Nil(t, e.Bitmap, "draw must become a no-op")
	require.Equal(t, float64(4*3*10), e.RenderWidth)
	require.Equal(t, 60.0, e.RenderHeight)
}

func TestPrepareBarcodeEngineFailureDefaults(t *testing.T) {
	stub := &stubEngine{err: fmt.Errorf("boom")}
	r := NewRendererWithOptions(Options{Engine: stub})

	e := &label.Barcode{Code: label.CodeCode128, Text: "AB"}
	r.prepareBarcode(e)

	require.Equal(t, float64(2*2*10), e.RenderWidth)
	require.Equal(t, 50.0, e.RenderHeight)
}

func TestSymbologyEngineUnknownBCID(t *testing.T) {
	engine := &SymbologyEngine{}
	_, err := engine.Generate(Request{BCID: "plessey", Text: "1"})
	require.Error(t, err)
}

func TestSymbologyEngineCode128(t *testing.T) {
	engine := &SymbologyEngine{}
	img, err := engine.Generate(Request{
		BCID:     "code128",
		Text:     "HELLO",
		ScaleX:   2,
		ScaleY:   2,
		HeightMM: 50 * 25.4 / (72.0 * 2),
	})
	require.NoError(t, err)
	require.NotNil(t, img)
	require.InDelta(t, 50, img.Bounds().Dy(), 1)
	require.Greater(t, img.Bounds().Dx(), 0)
}

func TestSymbologyEngineQRScale(t *testing.T) {
	engine := &SymbologyEngine{}
	one, err := engine.Generate(Request{BCID: "qrcode", Text: "HELLO", Scale: 1})
	require.NoError(t, err)
	four, err := engine.Generate(Request{BCID: "qrcode", Text: "HELLO", Scale: 4})
	require.NoError(t, err)
	require.Equal(t, 4*one.Bounds().Dx(), four.Bounds().Dx())
}
