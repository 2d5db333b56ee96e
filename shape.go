package gopresentation

import "fmt"

// Shape is an element placed on a slide.
//
// The set of shape kinds is closed: every kind implements accept, and every
// writer pass is a shapeVisitor with one method per kind.
type Shape interface {
	GetType() ShapeType
	GetOffsetX() int64
	GetOffsetY() int64
	GetWidth() int64
	GetHeight() int64
	GetName() string
	GetRotation() int
	GetHyperlink() *Hyperlink
	base() *BaseShape
	accept(v shapeVisitor) error
}

// ShapeType identifies the kind of a shape.
type ShapeType int

const (
	ShapeTypeRichText ShapeType = iota
	ShapeTypeDrawing
	ShapeTypeTable
	ShapeTypeAutoShape
	ShapeTypeLine
	ShapeTypeChart
	ShapeTypeMemoryDrawing
	ShapeTypeGroup
)

var shapeTypeNames = [...]string{"richtext", "drawing", "table", "autoshape", "line", "chart", "memorydrawing", "group"}

func (t ShapeType) String() string {
	if t < 0 || int(t) >= len(shapeTypeNames) {
		return fmt.Sprintf("ShapeType(%d)", int(t))
	}
	return shapeTypeNames[t]
}

// BaseShape holds the geometry and decoration every shape kind shares.
// Lengths are EMU.
type BaseShape struct {
	name        string
	description string
	offsetX     int64
	offsetY     int64
	width       int64
	height      int64
	rotation    int // degrees, 0-359
	flipH       bool
	flipV       bool
	fill        *Fill
	border      *Border
	shadow      *Shadow
	hyperlink   *Hyperlink
}

func (b *BaseShape) GetOffsetX() int64 { return b.offsetX }
func (b *BaseShape) GetOffsetY() int64 { return b.offsetY }
func (b *BaseShape) GetWidth() int64   { return b.width }
func (b *BaseShape) GetHeight() int64  { return b.height }
func (b *BaseShape) GetName() string   { return b.name }
func (b *BaseShape) GetRotation() int  { return b.rotation }
func (b *BaseShape) base() *BaseShape  { return b }

func (b *BaseShape) SetOffsetX(x int64) *BaseShape { b.offsetX = x; return b }
func (b *BaseShape) SetOffsetY(y int64) *BaseShape { b.offsetY = y; return b }
func (b *BaseShape) SetWidth(w int64) *BaseShape   { b.width = w; return b }
func (b *BaseShape) SetHeight(h int64) *BaseShape  { b.height = h; return b }
func (b *BaseShape) SetName(n string) *BaseShape   { b.name = n; return b }

// SetRotation sets the clockwise rotation, normalised to 0-359 degrees.
func (b *BaseShape) SetRotation(r int) *BaseShape {
	b.rotation = normalizeDegrees(r)
	return b
}

// SetPosition sets the top-left corner.
func (b *BaseShape) SetPosition(x, y int64) *BaseShape {
	b.offsetX, b.offsetY = x, y
	return b
}

// SetSize sets the extent.
func (b *BaseShape) SetSize(w, h int64) *BaseShape {
	b.width, b.height = w, h
	return b
}

func (b *BaseShape) SetFlipHorizontal(flip bool) *BaseShape { b.flipH = flip; return b }
func (b *BaseShape) GetFlipHorizontal() bool                { return b.flipH }
func (b *BaseShape) SetFlipVertical(flip bool) *BaseShape   { b.flipV = flip; return b }
func (b *BaseShape) GetFlipVertical() bool                  { return b.flipV }

// GetDescription returns the alternative text.
func (b *BaseShape) GetDescription() string  { return b.description }
func (b *BaseShape) SetDescription(d string) { b.description = d }

// orNew returns *p, storing mk() there first when it is nil.
func orNew[T any](p **T, mk func() *T) *T {
	if *p == nil {
		*p = mk()
	}
	return *p
}

// GetFill, GetBorder and GetShadow create an empty fill, a hidden border
// and a hidden shadow on first use.
func (b *BaseShape) GetFill() *Fill      { return orNew(&b.fill, NewFill) }
func (b *BaseShape) GetBorder() *Border  { return orNew(&b.border, NewBorder) }
func (b *BaseShape) GetShadow() *Shadow  { return orNew(&b.shadow, NewShadow) }
func (b *BaseShape) SetFill(f *Fill)     { b.fill = f }
func (b *BaseShape) SetBorder(v *Border) { b.border = v }
func (b *BaseShape) SetShadow(s *Shadow) { b.shadow = s }

func (b *BaseShape) GetHyperlink() *Hyperlink  { return b.hyperlink }
func (b *BaseShape) SetHyperlink(h *Hyperlink) { b.hyperlink = h }

// Arrowheads are the decorations at the two ends of an open path.
type Arrowheads struct {
	Head *LineEnd
	Tail *LineEnd
}

func (a Arrowheads) empty() bool {
	return lineEndNone(a.Head) && lineEndNone(a.Tail)
}

func lineEndNone(e *LineEnd) bool {
	return e == nil || e.Type == "" || e.Type == ArrowNone
}

// AutoShape is a preset geometry such as a rectangle or an arrow, with
// optional single-run text.
type AutoShape struct {
	BaseShape
	shapeType AutoShapeType
	text      string
	frame     TextFrame
	// adjust holds avLst guides, e.g. "adj" -> 16667 for a rounded rectangle.
	adjust map[string]int
	ends   Arrowheads
}

// AutoShapeType is a DrawingML preset geometry name.
type AutoShapeType string

const (
	AutoShapeRectangle            AutoShapeType = "rect"
	AutoShapeRoundedRect          AutoShapeType = "roundRect"
	AutoShapeEllipse              AutoShapeType = "ellipse"
	AutoShapeTriangle             AutoShapeType = "triangle"
	AutoShapeDiamond              AutoShapeType = "diamond"
	AutoShapeParallelogram        AutoShapeType = "parallelogram"
	AutoShapeTrapezoid            AutoShapeType = "trapezoid"
	AutoShapePentagon             AutoShapeType = "pentagon"
	AutoShapeHexagon              AutoShapeType = "hexagon"
	AutoShapeArrowRight           AutoShapeType = "rightArrow"
	AutoShapeArrowLeft            AutoShapeType = "leftArrow"
	AutoShapeArrowUp              AutoShapeType = "upArrow"
	AutoShapeArrowDown            AutoShapeType = "downArrow"
	AutoShapeStar5                AutoShapeType = "star5"
	AutoShapeHeart                AutoShapeType = "heart"
	AutoShapeChevron              AutoShapeType = "chevron"
	AutoShapeCloud                AutoShapeType = "cloud"
	AutoShapePlus                 AutoShapeType = "mathPlus"
	AutoShapeFlowchartProcess     AutoShapeType = "flowChartProcess"
	AutoShapeFlowchartDecision    AutoShapeType = "flowChartDecision"
	AutoShapeFlowchartPreparation AutoShapeType = "flowChartPreparation"
	AutoShapeCallout1             AutoShapeType = "wedgeRoundRectCallout"
	AutoShapeDonut                AutoShapeType = "donut"
	AutoShapeCube                 AutoShapeType = "cube"
	AutoShapeCan                  AutoShapeType = "can"
	AutoShapeFrame                AutoShapeType = "frame"
	AutoShapeHomePlate            AutoShapeType = "homePlate"
	AutoShapeArc                  AutoShapeType = "arc"
)

func (a *AutoShape) GetType() ShapeType          { return ShapeTypeAutoShape }
func (a *AutoShape) accept(v shapeVisitor) error { return v.visitAutoShape(a) }

// NewAutoShape creates a rectangle.
func NewAutoShape() *AutoShape {
	return &AutoShape{shapeType: AutoShapeRectangle}
}

func (a *AutoShape) SetAutoShapeType(t AutoShapeType) *AutoShape { a.shapeType = t; return a }
func (a *AutoShape) GetAutoShapeType() AutoShapeType             { return a.shapeType }

// SetSolidFill fills the shape with one color.
func (a *AutoShape) SetSolidFill(c Color) *AutoShape {
	a.GetFill().SetSolid(c)
	return a
}

func (a *AutoShape) SetText(text string) *AutoShape { a.text = text; return a }
func (a *AutoShape) GetText() string                { return a.text }

// GetTextFrame returns the text layout for modification.
func (a *AutoShape) GetTextFrame() *TextFrame { return &a.frame }

// SetAdjustValue sets one avLst guide.
func (a *AutoShape) SetAdjustValue(name string, value int) *AutoShape {
	if a.adjust == nil {
		a.adjust = make(map[string]int)
	}
	a.adjust[name] = value
	return a
}

func (a *AutoShape) GetAdjustValues() map[string]int { return a.adjust }

// GetArrowheads returns the line ends drawn on open presets such as arcs.
func (a *AutoShape) GetArrowheads() *Arrowheads { return &a.ends }

// LineShape is a straight line or a connector.
type LineShape struct {
	BaseShape
	stroke Border
	ends   Arrowheads
	// connector is the prstGeom name, "line" when empty.
	connector string
}

func (l *LineShape) GetType() ShapeType          { return ShapeTypeLine }
func (l *LineShape) accept(v shapeVisitor) error { return v.visitLine(l) }

// NewLineShape creates a solid black 1pt line.
func NewLineShape() *LineShape {
	return &LineShape{stroke: Border{Style: BorderSolid, Width: emuPerPoint, Color: ColorBlack}}
}

func (l *LineShape) SetLineStyle(s BorderStyle) *LineShape { l.stroke.Style = s; return l }
func (l *LineShape) GetLineStyle() BorderStyle             { return l.stroke.Style }
func (l *LineShape) SetLineColor(c Color) *LineShape       { l.stroke.Color = c; return l }
func (l *LineShape) GetLineColor() Color                   { return l.stroke.Color }

// SetLineWidth sets the width in points.
func (l *LineShape) SetLineWidth(pt int) *LineShape {
	l.stroke.Width = pt * emuPerPoint
	return l
}

// GetLineWidthEMU returns the width in EMU.
func (l *LineShape) GetLineWidthEMU() int64 { return int64(l.stroke.Width) }

// GetArrowheads returns the line ends for modification.
func (l *LineShape) GetArrowheads() *Arrowheads { return &l.ends }

// SetConnectorType sets the preset connector geometry, e.g.
// "straightConnector1" or "bentConnector3".
func (l *LineShape) SetConnectorType(t string) *LineShape { l.connector = t; return l }
func (l *LineShape) GetConnectorType() string             { return l.connector }
