package zpl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/printfab/zplrender/label"
)

func TestPrinterResetDefaults(t *testing.T) {
	p := NewPrinter()
	require.Equal(t, Font{Name: "0", Orientation: label.OrientNormal, Height: 10}, p.font)
	require.Equal(t, BarcodeDefaults{ModuleWidth: 2, Ratio: 3, Height: 50}, p.barcodeDefaults)
	require.Equal(t, Point{}, p.labelHome)
	require.Nil(t, p.nextPosition)
	require.Nil(t, p.pendingBarcode)
	require.Nil(t, p.fieldBlock)
	require.False(t, p.reverseNext)
}

func TestTakeHelpersConsumeAndClear(t *testing.T) {
	p := NewPrinter()

	p.nextPosition = &Position{Point: Point{X: 3, Y: 4}, Origin: label.OriginTopLeft}
	pos, ok := p.TakePosition()
	require.True(t, ok)
	require.Equal(t, Point{X: 3, Y: 4}, pos.Point)
	_, ok = p.TakePosition()
	require.False(t, ok, "position is consumed by exactly one take")

	p.reverseNext = true
	require.True(t, p.TakeReverse())
	require.False(t, p.TakeReverse(), "reverse is one-shot")

	p.fieldBlock = &FieldBlock{Width: 60, Align: label.AlignCenter}
	fb, ok := p.TakeFieldBlock()
	require.True(t, ok)
	require.Equal(t, 60, fb.Width)
	_, ok = p.TakeFieldBlock()
	require.False(t, ok)

	p.pendingBarcode = &PendingBarcode{Code: label.CodeCode39}
	pb, ok := p.TakePendingBarcode()
	require.True(t, ok)
	require.Equal(t, label.CodeCode39, pb.Code)
	_, ok = p.TakePendingBarcode()
	require.False(t, ok)
}

// Downloads live in printer memory: a ^XA reset must not drop them.
func TestResetKeepsGraphicStore(t *testing.T) {
	p := NewPrinter()
	p.StoreGraphic(&label.Graphic{Name: "R:LOGO.PNG", Type: "png", Data: []byte{1, 2}})
	p.labelHome = Point{X: 9, Y: 9}

	p.Reset()

	require.Equal(t, Point{}, p.labelHome)
	require.NotNil(t, p.Graphic("R:LOGO.PNG"))
	require.Nil(t, p.Graphic("R:OTHER.PNG"))
}
