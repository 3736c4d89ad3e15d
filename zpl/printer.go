package zpl

import "github.com/printfab/zplrender/label"

// Point is a coordinate in dots.
type Point struct {
	X int
	Y int
}

// Position is an armed ^FO/^FT origin awaiting the next element.
type Position struct {
	Point
	Bottom bool
	Origin label.Origin
}

// Font is the current default font state.
type Font struct {
	Name        string
	Orientation label.Orientation
	Height      int
	Width       int
}

// BarcodeDefaults are the ^BY module defaults inherited by barcode
// commands with missing parameters.
type BarcodeDefaults struct {
	ModuleWidth int
	Ratio       int
	Height      int
}

// FieldBlock is an armed ^FB spec consumed by the next ^FD text.
type FieldBlock struct {
	Width       int
	Lines       int
	LineSpacing int
	Align       label.Align
	Indent      int
}

// PendingBarcode is the last barcode-type command, awaiting ^FD.
type PendingBarcode struct {
	Code                label.CodeType
	Orientation         label.Orientation
	Height              int // 0 inherits BarcodeDefaults.Height
	ModuleWidth         int // 0 inherits BarcodeDefaults.ModuleWidth
	PrintInterpretation bool
	PrintAbove          bool
	Options             label.BarcodeOptions
}

// Printer is the mutable evaluator state — the "virtual printer" that
// disambiguates sequential commands. One instance serves one document;
// Reset restores power-on defaults on every ^XA.
//
// The one-shot fields (position, reverse, field block, pending barcode)
// are consumed through the Take helpers, which clear them so the
// consume-exactly-once invariant is explicit.
type Printer struct {
	nextPosition     *Position
	labelHome        Point
	font             Font
	fieldOrientation label.Orientation // "" when unset
	barcodeDefaults  BarcodeDefaults
	pendingBarcode   *PendingBarcode
	fieldBlock       *FieldBlock
	reverseNext      bool
	graphics         map[string]*label.Graphic
}

// NewPrinter returns a printer at power-on defaults.
func NewPrinter() *Printer {
	p := &Printer{graphics: map[string]*label.Graphic{}}
	p.Reset()
	return p
}

// Reset restores every default. Stored graphics survive: downloads live
// in printer memory and outlast label boundaries within a document.
func (p *Printer) Reset() {
	p.nextPosition = nil
	p.labelHome = Point{}
	p.font = Font{Name: "0", Orientation: label.OrientNormal, Height: 10, Width: 0}
	p.fieldOrientation = ""
	p.barcodeDefaults = BarcodeDefaults{ModuleWidth: 2, Ratio: 3, Height: 50}
	p.pendingBarcode = nil
	p.fieldBlock = nil
	p.reverseNext = false
}

// TakePosition consumes the armed position, if any.
func (p *Printer) TakePosition() (Position, bool) {
	if p.nextPosition == nil {
		return Position{}, false
	}
	pos := *p.nextPosition
	p.nextPosition = nil
	return pos, true
}

// TakeReverse consumes the one-shot reverse flag.
func (p *Printer) TakeReverse() bool {
	r := p.reverseNext
	p.reverseNext = false
	return r
}

// TakeFieldBlock consumes the armed field block, if any.
func (p *Printer) TakeFieldBlock() (FieldBlock, bool) {
	if p.fieldBlock == nil {
		return FieldBlock{}, false
	}
	fb := *p.fieldBlock
	p.fieldBlock = nil
	return fb, true
}

// TakePendingBarcode consumes the armed barcode spec, if any.
func (p *Printer) TakePendingBarcode() (PendingBarcode, bool) {
	if p.pendingBarcode == nil {
		return PendingBarcode{}, false
	}
	pb := *p.pendingBarcode
	p.pendingBarcode = nil
	return pb, true
}

// Graphic looks up a stored graphic by its device-qualified name.
func (p *Printer) Graphic(name string) *label.Graphic {
	return p.graphics[name]
}

// StoreGraphic records a downloaded graphic under its name.
func (p *Printer) StoreGraphic(g *label.Graphic) {
	p.graphics[g.Name] = g
}
