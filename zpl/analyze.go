package zpl

import (
	"encoding/hex"
	"strings"

	"github.com/printfab/zplrender/label"
)

// Analyze evaluates a ZPL document into labels of positioned elements.
// It never fails on user input: unknown designators and malformed
// parameters are ignored and evaluation continues, so unsupported ZPL
// cannot abort a label.
func Analyze(src string) []label.Label {
	a := &analyzer{printer: NewPrinter()}
	for _, tok := range Tokenize(src) {
		a.eval(tok)
	}
	if len(a.elements) > 0 {
		a.push()
	}
	return a.labels
}

type analyzer struct {
	printer  *Printer
	labels   []label.Label
	elements []label.Element
}

func (a *analyzer) push() {
	a.labels = append(a.labels, label.Label{Elements: a.elements})
	a.elements = nil
}

func (a *analyzer) emit(el label.Element) {
	a.elements = append(a.elements, el)
}

func (a *analyzer) eval(tok string) {
	if len(tok) < 3 {
		return
	}
	body := tok[3:]

	// ^A takes the font designator as its second command character, so
	// it dispatches on one letter where everything else uses two.
	if tok[0] == '^' && tok[1] == 'A' {
		a.evalFont(string(tok[2]), body)
		return
	}
	if tok[0] == '^' && tok[1] == 'B' && tok[2] != 'Y' {
		a.evalBarcodeType(tok[2], body)
		return
	}

	switch tok[1:3] {
	case "XA":
		a.printer.Reset()
	case "XZ":
		a.endLabel()
	case "FO":
		a.armPosition(body, label.OriginTopLeft)
	case "FT":
		a.armPosition(body, label.OriginBaseline)
	case "LH":
		params := splitParams(body)
		a.printer.labelHome = Point{X: intAt(params, 0, 0), Y: intAt(params, 1, 0)}
	case "CF":
		a.evalChangeFont(body)
	case "FW":
		if body != "" {
			if o, ok := label.ParseOrientation(body[0]); ok {
				a.printer.fieldOrientation = o
			}
		}
	case "FB":
		a.evalFieldBlock(body)
	case "FR":
		a.printer.reverseNext = true
	case "GB":
		a.evalGraphicBox(body)
	case "GC":
		a.evalGraphicCircle(body)
	case "GD":
		a.evalGraphicDiagonal(body)
	case "BY":
		a.evalBarcodeDefaults(body)
	case "FD":
		a.evalFieldData(body)
	case "FS":
		a.printer.nextPosition = nil
		a.printer.pendingBarcode = nil
	case "IM", "XG":
		a.evalImageRecall(body)
	case "DG":
		a.evalDownloadGraphic(body)
	case "DY":
		a.evalDownloadData(body)
	}
}

func (a *analyzer) endLabel() {
	a.push()
	a.printer.nextPosition = nil
	a.printer.pendingBarcode = nil
	a.printer.fieldBlock = nil
}

func (a *analyzer) armPosition(body string, origin label.Origin) {
	params := splitParams(body)
	home := a.printer.labelHome
	a.printer.nextPosition = &Position{
		Point:  Point{X: home.X + intAt(params, 0, 0), Y: home.Y + intAt(params, 1, 0)},
		Bottom: intAt(params, 2, 0) != 0,
		Origin: origin,
	}
}

// evalFont handles ^Aa[o][,h[,w]]. An armed ^FW orientation overrides the
// command's own orientation letter; absent height/width leave the state
// unchanged.
func (a *analyzer) evalFont(name, rest string) {
	f := &a.printer.font
	f.Name = name
	orient, rest := splitOrientation(rest)
	if a.printer.fieldOrientation != "" {
		orient = a.printer.fieldOrientation
	}
	f.Orientation = orient
	params := tailParams(rest)
	f.Height = intAt(params, 0, f.Height)
	f.Width = intAt(params, 1, f.Width)
}

// evalChangeFont handles ^CF[a][,h[,w]]; absent fields leave state as-is.
func (a *analyzer) evalChangeFont(body string) {
	f := &a.printer.font
	rest := body
	if rest != "" && rest[0] != ',' {
		f.Name = string(rest[0])
		rest = rest[1:]
	}
	params := tailParams(rest)
	f.Height = intAt(params, 0, f.Height)
	f.Width = intAt(params, 1, f.Width)
}

func (a *analyzer) evalFieldBlock(body string) {
	params := splitParams(body)
	align := label.AlignLeft
	switch strings.ToUpper(strAt(params, 3)) {
	case "C":
		align = label.AlignCenter
	case "R":
		align = label.AlignRight
	case "J":
		align = label.AlignJustify
	}
	a.printer.fieldBlock = &FieldBlock{
		Width:       intAt(params, 0, 0),
		Lines:       intAt(params, 1, 0),
		LineSpacing: intAt(params, 2, 0),
		Align:       align,
		Indent:      intAt(params, 4, 0),
	}
}

// shapePosition consumes the armed position, falling back to the canvas
// origin for shapes.
func (a *analyzer) shapePosition() Point {
	if pos, ok := a.printer.TakePosition(); ok {
		return pos.Point
	}
	return Point{}
}

func colorParam(params []string, i int) label.Color {
	switch strings.ToUpper(strAt(params, i)) {
	case "W":
		return label.ColorWhite
	case "F":
		return label.ColorFill
	}
	return label.ColorBlack
}

func (a *analyzer) evalGraphicBox(body string) {
	params := splitParams(body)
	pos := a.shapePosition()
	a.emit(&label.Box{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: label.OrientNormal,
			Reverse:     a.printer.TakeReverse(),
		},
		Width:     intAt(params, 0, 0),
		Height:    intAt(params, 1, 0),
		Thickness: intAt(params, 2, 1),
		Color:     colorParam(params, 3),
	})
}

func (a *analyzer) evalGraphicCircle(body string) {
	params := splitParams(body)
	pos := a.shapePosition()
	a.emit(&label.Circle{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: label.OrientNormal,
			Reverse:     a.printer.TakeReverse(),
		},
		Diameter:  intAt(params, 0, 0),
		Thickness: intAt(params, 1, 0),
		Color:     colorParam(params, 2),
	})
}

func (a *analyzer) evalGraphicDiagonal(body string) {
	params := splitParams(body)
	pos := a.shapePosition()
	a.emit(&label.Diagonal{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: label.OrientNormal,
			Reverse:     a.printer.TakeReverse(),
		},
		Width:     intAt(params, 0, 0),
		Height:    intAt(params, 1, 0),
		Thickness: intAt(params, 2, 1),
		Color:     colorParam(params, 3),
		Rising:    strings.EqualFold(strAt(params, 4), "R"),
	})
}

func (a *analyzer) evalBarcodeDefaults(body string) {
	params := splitParams(body)
	d := &a.printer.barcodeDefaults
	d.ModuleWidth = intAt(params, 0, d.ModuleWidth)
	d.Ratio = intAt(params, 1, d.Ratio)
	d.Height = intAt(params, 2, d.Height)
}

// evalBarcodeType arms pendingBarcode for ^Bx. The orientation letter, when
// present, precedes the code-specific parameters. Unknown type letters are
// ignored like any other unsupported command.
func (a *analyzer) evalBarcodeType(x byte, body string) {
	orient, rest := splitOrientation(body)
	params := tailParams(rest)
	pb := &PendingBarcode{Orientation: orient, PrintInterpretation: true}

	switch x {
	case 'C', 'D':
		pb.Code = label.CodeCode128
		pb.Height = intAt(params, 0, 0)
		pb.PrintInterpretation = ynAt(params, 1, true)
		pb.PrintAbove = ynAt(params, 2, false)
		pb.Options.Mode = strings.ToUpper(strAt(params, 3))
	case '3':
		pb.Code = label.CodeCode39
		// params[0] is the mod-43 check digit flag; not rendered.
		pb.Height = intAt(params, 1, 0)
		pb.PrintInterpretation = ynAt(params, 2, true)
		pb.PrintAbove = ynAt(params, 3, false)
	case 'E', '8':
		pb.Code = label.CodeEAN13
		pb.Height = intAt(params, 0, 0)
		pb.PrintInterpretation = ynAt(params, 1, true)
		pb.PrintAbove = ynAt(params, 2, false)
	case '9', 'A':
		pb.Code = label.CodeCode93
		pb.Height = intAt(params, 0, 0)
		pb.PrintInterpretation = ynAt(params, 1, true)
		pb.PrintAbove = ynAt(params, 2, false)
	case '2':
		pb.Code = label.CodeInterleaved2of5
		pb.Height = intAt(params, 0, 0)
		pb.PrintInterpretation = ynAt(params, 1, true)
		pb.PrintAbove = ynAt(params, 2, false)
	case 'Q':
		pb.Code = label.CodeQR
		pb.PrintInterpretation = false
		pb.Options.Scale = intAt(params, 0, 0)
		if ecc := strings.ToUpper(strAt(params, 1)); ecc == "L" || ecc == "M" || ecc == "Q" || ecc == "H" {
			pb.Options.ECC = ecc
		}
	case 'X':
		pb.Code = label.CodeDataMatrix
		pb.PrintInterpretation = false
		pb.Options.Scale = intAt(params, 0, 0)
	case '7':
		pb.Code = label.CodePDF417
		pb.PrintInterpretation = false
		pb.ModuleWidth = intAt(params, 0, 0)
		pb.Options.SecurityLevel = intAt(params, 1, 0)
		pb.Options.Columns = intAt(params, 2, 0)
		pb.Options.Rows = intAt(params, 3, 0)
		pb.Options.RowHeight = intAt(params, 4, 0)
		pb.Options.Truncated = ynAt(params, 5, false)
	default:
		return
	}
	a.printer.pendingBarcode = pb
}

// evalFieldData is ^FD — the terminal command whose meaning depends on
// which state is armed: barcode spec, field block, or neither.
func (a *analyzer) evalFieldData(data string) {
	p := a.printer
	if pb, ok := p.TakePendingBarcode(); ok {
		a.emitBarcode(pb, data)
		return
	}
	if fb, ok := p.TakeFieldBlock(); ok {
		a.emitFieldBlock(fb, data)
		return
	}

	pos, _ := p.TakePosition()
	origin := pos.Origin
	if origin == "" {
		origin = label.OriginTopLeft
	}
	a.emit(&label.Text{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: p.font.Orientation,
			Reverse:     p.TakeReverse(),
		},
		Text:     data,
		FontName: p.font.Name,
		Height:   p.font.Height,
		Width:    p.font.Width,
		Origin:   origin,
	})
}

func (a *analyzer) emitBarcode(pb PendingBarcode, data string) {
	p := a.printer
	pos, _ := p.TakePosition()
	d := p.barcodeDefaults
	moduleWidth := pb.ModuleWidth
	if moduleWidth <= 0 {
		moduleWidth = d.ModuleWidth
	}
	height := pb.Height
	if height <= 0 {
		height = d.Height
	}
	a.emit(&label.Barcode{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: pb.Orientation,
			Reverse:     p.TakeReverse(),
		},
		Code:                pb.Code,
		Text:                data,
		Height:              height,
		ModuleWidth:         moduleWidth,
		Ratio:               d.Ratio,
		Options:             pb.Options,
		PrintInterpretation: pb.PrintInterpretation,
		PrintAbove:          pb.PrintAbove,
	})
}

func (a *analyzer) emitFieldBlock(fb FieldBlock, data string) {
	p := a.printer
	pos, _ := p.TakePosition()
	origin := pos.Origin
	if origin == "" {
		origin = label.OriginTopLeft
	}
	reverse := p.TakeReverse()
	for _, line := range wrapFieldBlock(data, fb, p.font, pos.Point) {
		line.Orientation = p.font.Orientation
		line.Reverse = reverse
		line.Origin = origin
		a.emit(line)
	}
}

// evalImageRecall handles ^IM and ^XG: both emit an Image element for a
// stored graphic, and both clear any armed field block.
func (a *analyzer) evalImageRecall(body string) {
	p := a.printer
	params := splitParams(body)
	name := strAt(params, 0)
	pos, ok := p.TakePosition()
	if !ok {
		pos.Point = p.labelHome
	}
	orient := p.fieldOrientation
	if orient == "" {
		orient = label.OrientNormal
	}
	p.fieldBlock = nil
	a.emit(&label.Image{
		Common: label.Common{
			X:           pos.X,
			Y:           pos.Y,
			Orientation: orient,
			Reverse:     p.TakeReverse(),
		},
		ScaleX:  floatAt(params, 1, 1),
		ScaleY:  floatAt(params, 2, 1),
		Graphic: p.Graphic(name),
	})
}

// evalDownloadGraphic stores a ~DG raster download: ASCII hex rows with a
// declared byte total and row stride.
func (a *analyzer) evalDownloadGraphic(body string) {
	parts := strings.SplitN(body, ",", 4)
	if len(parts) < 4 {
		return
	}
	a.printer.StoreGraphic(&label.Graphic{
		Name:        strings.TrimSpace(parts[0]),
		Type:        "grf",
		Raw:         parts[3],
		TotalBytes:  intAt(parts, 1, 0),
		BytesPerRow: intAt(parts, 2, 0),
	})
}

// evalDownloadData stores a ~DY object download. The payload is
// case-insensitive hex; when decoding fails the raw string is kept so the
// image drawer treats the graphic as unavailable.
func (a *analyzer) evalDownloadData(body string) {
	parts := strings.SplitN(body, ",", 7)
	if len(parts) < 7 {
		return
	}
	g := &label.Graphic{Name: strings.TrimSpace(parts[0])}
	if data, err := hex.DecodeString(strings.TrimSpace(parts[6])); err == nil {
		g.Data = data
		g.Type = "png"
	} else {
		g.Raw = parts[6]
	}
	a.printer.StoreGraphic(g)
}
