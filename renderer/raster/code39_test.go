package rasterrenderer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printfab/zplrender/label"
)

func TestCode39PatternTable(t *testing.T) {
	for ch, pattern := range code39Patterns {
		require.Len(t, pattern, 9, "pattern for %q", ch)
		wides := 0
		for _, m := range pattern {
			require.Contains(t, []rune{'n', 'w'}, m)
			if m == 'w' {
				wides++
			}
		}
		require.Equal(t, 3, wides, "code 39 is three-of-nine: %q", ch)
	}
	require.Equal(t, code39Patterns['-'], code39Pattern('?'), "unknown characters fall back to '-'")
}

func TestCode39Modules(t *testing.T) {
	// Each character is 6 narrow + 3 wide modules. With ratio 2 that is
	// 12 modules; "*123*" has 5 characters, 4 gaps and two quiet zones:
	// 5*12 + 4 + 20 = 84.
	require.Equal(t, 84, code39Modules("*123*", 2))

	// Ratio 3 widens each character to 6+9=15 modules: 75+4+20 = 99.
	require.Equal(t, 99, code39Modules("*123*", 3))
}

func TestPrepareCode39Dimensions(t *testing.T) {
	r := NewRenderer()
	e := &label.Barcode{
		Code:        label.CodeCode39,
		Text:        "123",
		Height:      50,
		ModuleWidth: 2,
		Ratio:       2,
	}
	r.prepareCode39(e)

	require.Equal(t, 168.0, e.RenderWidth, "84 modules at narrow=2")
	require.Equal(t, 50.0, e.RenderHeight)
	require.NotNil(t, e.Bitmap)
	require.Equal(t, 168, e.Bitmap.Bounds().Dx())
	require.Equal(t, 50, e.Bitmap.Bounds().Dy())
}

func TestPrepareCode39QuietZone(t *testing.T) {
	r := NewRenderer()
	e := &label.Barcode{Code: label.CodeCode39, Text: "123", Height: 50, ModuleWidth: 2, Ratio: 2}
	r.prepareCode39(e)
	require.NotNil(t, e.Bitmap)

	// Ten narrow modules of quiet zone on each side stay white; the
	// first bar begins right after.
	top, bottom, ok := inkRows(e.Bitmap)
	require.True(t, ok)
	require.LessOrEqual(t, top, 1)
	require.GreaterOrEqual(t, bottom, 48)

	white := func(x int) bool {
		cr, cg, cb, ca := e.Bitmap.At(x, 25).RGBA()
		return ca == 0 || (cr >= inkThreshold && cg >= inkThreshold && cb >= inkThreshold)
	}
	for x := 0; x < 19; x++ {
		require.True(t, white(x), "quiet zone pixel %d", x)
	}
	require.False(t, white(21), "first bar after the quiet zone")
}

func TestPrepareCode39AppliesDefaults(t *testing.T) {
	r := NewRenderer()
	e := &label.Barcode{Code: label.CodeCode39, Text: "A"}
	r.prepareCode39(e)
	// narrow=2, ratio=2, height=50: "*A*" = 3*12+2+20 = 58 modules.
	require.Equal(t, 116.0, e.RenderWidth)
	require.Equal(t, 50.0, e.RenderHeight)
}
