package gopresentation

import "fmt"

// ChartShape is a chart frame on a slide. The plot and its data live in a
// separate chart part; an embedded workbook is optional.
type ChartShape struct {
	BaseShape
	title    *ChartTitle
	plotArea *PlotArea
	legend   *ChartLegend
	view3D   *View3D
	blanks   BlankMode
	// withWorkbook embeds an XLSX (PPTX) or a local table reference (ODP)
	// and makes the series point at its cells.
	withWorkbook bool
}

// BlankMode is how a chart draws categories a series has no value for.
type BlankMode string

const (
	BlankAsGap  BlankMode = "gap"
	BlankAsZero BlankMode = "zero"
	BlankAsSpan BlankMode = "span"
)

func (c *ChartShape) GetType() ShapeType          { return ShapeTypeChart }
func (c *ChartShape) accept(v shapeVisitor) error { return v.visitChart(c) }

// NewChartShape creates a chart with a visible title and bottom legend and
// no plot type. A plot type must be set before export.
func NewChartShape() *ChartShape {
	return &ChartShape{
		title:    &ChartTitle{Visible: true, Font: NewFont()},
		plotArea: &PlotArea{axisX: NewChartAxis(), axisY: NewChartAxis()},
		legend:   &ChartLegend{Visible: true, Position: LegendBottom},
		view3D:   NewView3D(),
		blanks:   BlankAsZero,
	}
}

func (c *ChartShape) GetTitle() *ChartTitle   { return c.title }
func (c *ChartShape) GetPlotArea() *PlotArea  { return c.plotArea }
func (c *ChartShape) GetLegend() *ChartLegend { return c.legend }
func (c *ChartShape) GetView3D() *View3D      { return c.view3D }

func (c *ChartShape) SetDisplayBlankAs(mode BlankMode) { c.blanks = mode }
func (c *ChartShape) GetDisplayBlankAs() BlankMode     { return c.blanks }

// SetIncludeSpreadsheet controls whether the chart carries a workbook
// snapshot of its data. With it the series reference cell ranges; without
// it the values are written inline.
func (c *ChartShape) SetIncludeSpreadsheet(v bool) *ChartShape {
	c.withWorkbook = v
	return c
}

func (c *ChartShape) IsIncludeSpreadsheet() bool { return c.withWorkbook }

// ChartTitle is the text above the plot. An empty or hidden title is
// written as deleted so that applications do not invent one.
type ChartTitle struct {
	Text    string
	Visible bool
	Font    *Font
}

func (ct *ChartTitle) SetText(text string) *ChartTitle { ct.Text = text; return ct }
func (ct *ChartTitle) SetVisible(v bool) *ChartTitle   { ct.Visible = v; return ct }

// PlotArea holds the plot type and the two primary axes.
type PlotArea struct {
	chartType ChartType
	axisX     *ChartAxis
	axisY     *ChartAxis
}

func (pa *PlotArea) SetType(ct ChartType) { pa.chartType = ct }
func (pa *PlotArea) GetType() ChartType   { return pa.chartType }
func (pa *PlotArea) GetAxisX() *ChartAxis { return pa.axisX }
func (pa *PlotArea) GetAxisY() *ChartAxis { return pa.axisY }

// ChartAxis configures one axis. Nil bounds and units are automatic.
type ChartAxis struct {
	Title string
	// TitleRotation is in degrees.
	TitleRotation  int
	Visible        bool
	Min, Max       *float64
	MajorUnit      *float64
	MinorUnit      *float64
	Crosses        AxisCrossing
	Reversed       bool
	MajorGridlines *Gridlines
	MinorGridlines *Gridlines
	MajorTick      TickMark
	MinorTick      TickMark
	Labels         TickLabelPosition
}

// AxisCrossing is where the other axis crosses this one.
type AxisCrossing string

const (
	AxisCrossesAuto AxisCrossing = "autoZero"
	AxisCrossesMin  AxisCrossing = "min"
	AxisCrossesMax  AxisCrossing = "max"
)

// TickMark is the DrawingML tick mark style.
type TickMark string

const (
	TickMarkNone    TickMark = "none"
	TickMarkInside  TickMark = "in"
	TickMarkOutside TickMark = "out"
	TickMarkCross   TickMark = "cross"
)

// TickLabelPosition places the tick labels relative to the plot.
type TickLabelPosition string

const (
	TickLabelsNextTo TickLabelPosition = "nextTo"
	TickLabelsHigh   TickLabelPosition = "high"
	TickLabelsLow    TickLabelPosition = "low"
)

// NewChartAxis returns a visible axis with automatic scaling, no tick
// marks and labels next to the axis.
func NewChartAxis() *ChartAxis {
	return &ChartAxis{
		Visible:   true,
		Crosses:   AxisCrossesAuto,
		MajorTick: TickMarkNone,
		MinorTick: TickMarkNone,
		Labels:    TickLabelsNextTo,
	}
}

func (a *ChartAxis) SetTitle(title string) *ChartAxis { a.Title = title; return a }

// SetBounds fixes the axis range.
func (a *ChartAxis) SetBounds(lo, hi float64) *ChartAxis {
	a.Min, a.Max = &lo, &hi
	return a
}

// checkValues rejects a bound or unit that is NaN or infinite.
func (a *ChartAxis) checkValues(name string) error {
	if a == nil {
		return nil
	}
	for _, f := range []struct {
		what string
		v    *float64
	}{{"minimum", a.Min}, {"maximum", a.Max}, {"major unit", a.MajorUnit}, {"minor unit", a.MinorUnit}} {
		if f.v != nil && !isFinite(*f.v) {
			return fmt.Errorf("%w: %s axis %s is %v", ErrInvalidChartValue, name, f.what, *f.v)
		}
	}
	return nil
}

// checkAxes checks both axes of the plot area.
func (pa *PlotArea) checkAxes() error {
	if err := pa.axisX.checkValues("x"); err != nil {
		return err
	}
	return pa.axisY.checkValues("y")
}

// ClearBounds returns the range to automatic.
func (a *ChartAxis) ClearBounds() *ChartAxis {
	a.Min, a.Max = nil, nil
	return a
}

// SetUnits fixes the major and minor gridline spacing. A minor unit of 0
// leaves it automatic.
func (a *ChartAxis) SetUnits(major, minor float64) *ChartAxis {
	a.MajorUnit = &major
	a.MinorUnit = nil
	if minor > 0 {
		a.MinorUnit = &minor
	}
	return a
}

func (a *ChartAxis) orientation() string {
	if a.Reversed {
		return "maxMin"
	}
	return "minMax"
}

// Gridlines is the stroke of a set of gridlines. Width is in points.
type Gridlines struct {
	Width int
	Color Color
}

// NewGridlines returns thin black gridlines.
func NewGridlines() *Gridlines { return &Gridlines{Width: 1, Color: ColorBlack} }

// ChartLegend is the series key.
type ChartLegend struct {
	Visible  bool
	Position LegendPosition
}

// LegendPosition is the DrawingML legendPos value.
type LegendPosition string

const (
	LegendBottom   LegendPosition = "b"
	LegendTop      LegendPosition = "t"
	LegendLeft     LegendPosition = "l"
	LegendRight    LegendPosition = "r"
	LegendTopRight LegendPosition = "tr"
)

// View3D is the camera of the 3-D plot types. A nil HeightPercent lets the
// application scale the height.
type View3D struct {
	RotX           int
	RotY           int
	DepthPercent   int
	HeightPercent  *int
	RightAngleAxes bool
}

// NewView3D returns PowerPoint's default camera.
func NewView3D() *View3D {
	hp := 100
	return &View3D{RotX: 15, RotY: 20, DepthPercent: 100, HeightPercent: &hp, RightAngleAxes: true}
}
