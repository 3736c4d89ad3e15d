package label

// This file defines the element model shared by the analyzer, the drawers
// and the debug JSON dump.

import "image"

// Orientation is a ZPL field orientation letter.
type Orientation string

const (
	OrientNormal   Orientation = "N" // no rotation
	OrientRotated  Orientation = "R" // rotated 90° clockwise
	OrientInverted Orientation = "I" // rotated 180°
	OrientBottomUp Orientation = "B" // rotated 90° counter-clockwise
)

// ParseOrientation returns the orientation for a command letter and whether
// the letter named one.
func ParseOrientation(b byte) (Orientation, bool) {
	switch b {
	case 'N', 'n':
		return OrientNormal, true
	case 'R', 'r':
		return OrientRotated, true
	case 'I', 'i':
		return OrientInverted, true
	case 'B', 'b':
		return OrientBottomUp, true
	}
	return OrientNormal, false
}

// Origin describes how a text element's y coordinate is interpreted.
type Origin string

const (
	OriginTopLeft  Origin = "top-left" // y is the top of the glyph box (^FO)
	OriginBaseline Origin = "baseline" // y is the baseline (^FT)
)

// Color is a ZPL draw color letter.
type Color string

const (
	ColorBlack Color = "B"
	ColorWhite Color = "W"
	ColorFill  Color = "F"
)

// Align is a field-block alignment letter.
type Align string

const (
	AlignLeft    Align = "L"
	AlignCenter  Align = "C"
	AlignRight   Align = "R"
	AlignJustify Align = "J"
)

// CodeType names a barcode symbology.
type CodeType string

const (
	CodeCode39          CodeType = "code39"
	CodeCode128         CodeType = "code128"
	CodeEAN13           CodeType = "ean13"
	CodeCode93          CodeType = "code93"
	CodeInterleaved2of5 CodeType = "interleaved2of5"
	CodeQR              CodeType = "qrcode"
	CodeDataMatrix      CodeType = "datamatrix"
	CodePDF417          CodeType = "pdf417"
)

// Matrix reports whether the symbology uses scale semantics rather than
// module-width/height semantics.
func (t CodeType) Matrix() bool {
	return t == CodeQR || t == CodeDataMatrix
}

// Common holds the fields every element shares. Coordinates are integer
// dots from the canvas origin (top-left, y down). RenderWidth and
// RenderHeight are attached by the prepare pass and stay zero until then.
type Common struct {
	X            int         `json:"x"`
	Y            int         `json:"y"`
	Orientation  Orientation `json:"orientation"`
	Reverse      bool        `json:"reverse,omitempty"`
	RenderWidth  float64     `json:"renderWidth,omitempty"`
	RenderHeight float64     `json:"renderHeight,omitempty"`
}

// Base returns the shared fields; it makes every variant an Element.
func (c *Common) Base() *Common { return c }

// Element is a positioned drawable primitive produced by the analyzer and
// consumed by the rasterizer. Elements are never mutated after emission
// except to attach prepared dimensions and decoded bitmaps.
type Element interface {
	Base() *Common
}

// Text is a single line of text. BlockWidth and BlockAlign are set when
// the line came out of a ^FB field block and drive draw-time alignment.
type Text struct {
	Common
	Text       string `json:"text"`
	FontName   string `json:"fontName"`
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Origin     Origin `json:"originType"`
	BlockWidth int    `json:"blockWidth,omitempty"`
	BlockAlign Align  `json:"blockAlign,omitempty"`
}

// ScaleX returns the horizontal compression factor for the element's face.
func (t *Text) ScaleX() float64 { return TextScaleX(t.FontName, t.Height, t.Width) }

// TextScaleX implements the shared compression rule: 0.65 for font '0'
// with unspecified width, width/height when both are set, else 1.
func TextScaleX(fontName string, height, width int) float64 {
	switch {
	case fontName == "0" && width == 0:
		return 0.65
	case width > 0 && height > 0:
		return float64(width) / float64(height)
	default:
		return 1.0
	}
}

// BarcodeOptions carries the code-specific parameters that only some
// symbologies use.
type BarcodeOptions struct {
	Scale         int    `json:"scale,omitempty"`         // matrix codes
	ECC           string `json:"ecc,omitempty"`           // qrcode: L/M/Q/H
	Mode          string `json:"mode,omitempty"`          // code128
	SecurityLevel int    `json:"securityLevel,omitempty"` // pdf417
	Columns       int    `json:"columns,omitempty"`       // pdf417
	Rows          int    `json:"rows,omitempty"`          // pdf417
	RowHeight     int    `json:"rowHeight,omitempty"`     // pdf417
	Truncated     bool   `json:"truncated,omitempty"`     // pdf417
}

// Barcode is an armed barcode spec combined with its ^FD payload. Bitmap
// is attached during prepare; a nil bitmap makes draw a no-op.
type Barcode struct {
	Common
	Code                CodeType       `json:"codeType"`
	Text                string         `json:"text"`
	Height              int            `json:"height"`
	ModuleWidth         int            `json:"moduleWidth"`
	Ratio               int            `json:"ratio"`
	Options             BarcodeOptions `json:"options"`
	PrintInterpretation bool           `json:"printInterpretation"`
	PrintAbove          bool           `json:"printAbove"`
	Bitmap              image.Image    `json:"-"`
}

// Box is a ^GB rectangle.
type Box struct {
	Common
	Width     int   `json:"width"`
	Height    int   `json:"height"`
	Thickness int   `json:"thickness"`
	Color     Color `json:"color"`
}

// Circle is a ^GC circle; X/Y is the top-left of its bounding square.
type Circle struct {
	Common
	Diameter  int   `json:"diameter"`
	Thickness int   `json:"thickness"`
	Color     Color `json:"color"`
}

// Diagonal is a ^GD line across a w×h cell. Rising draws the stroke from
// the bottom-left corner to the top-right one.
type Diagonal struct {
	Common
	Width     int   `json:"width"`
	Height    int   `json:"height"`
	Thickness int   `json:"thickness"`
	Color     Color `json:"color"`
	Rising    bool  `json:"rising,omitempty"`
}

// Image recalls a stored graphic. Graphic may be nil when the name was
// never downloaded; Bitmap is attached during prepare when decoding
// succeeds.
type Image struct {
	Common
	ScaleX  float64     `json:"scaleX"`
	ScaleY  float64     `json:"scaleY"`
	Graphic *Graphic    `json:"graphic,omitempty"`
	Bitmap  image.Image `json:"-"`
}

// Graphic is an entry of the virtual printer's graphic store, keyed by its
// device-qualified name (e.g. "R:LOGO.PNG").
type Graphic struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"` // "png" (~DY, hex decoded), "grf" (~DG), "" unknown
	Data        []byte `json:"-"`              // decoded ~DY bytes
	Raw         string `json:"-"`              // raw payload when hex decode failed, or ~DG rows
	TotalBytes  int    `json:"totalBytes,omitempty"`
	BytesPerRow int    `json:"bytesPerRow,omitempty"`
}

// Label is one ^XA…^XZ section: the ordered elements to paint, earlier
// ones first.
type Label struct {
	Elements []Element `json:"elements"`
}
