package gopresentation

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// ChartType is a plot type. The writers know the types in this file; any
// other implementation is rejected at export with ErrUnsupportedChartType.
type ChartType interface {
	GetChartTypeName() string
	GetSeries() []*ChartSeries
}

// ChartSeries is one named row of values keyed by category.
type ChartSeries struct {
	Title string
	// Values maps a category to its value. Categories without a value are
	// plotted as 0.
	Values map[string]float64
	// Categories is the category order of this series.
	Categories []string
	FillColor  Color
	// PointFills overrides the fill of single points, keyed by category index.
	PointFills map[int]*Fill
	Labels     DataLabels
	Font       *Font
	Outline    *SeriesOutline
	Marker     *SeriesMarker
}

// DataLabels selects what is printed next to each point.
type DataLabels struct {
	Value       bool
	Percentage  bool
	Category    bool
	SeriesName  bool
	LegendKey   bool
	LeaderLines bool
	// Separator joins the parts of one label; "" and "," are the default.
	Separator string
	Position  LabelPosition
}

func (l DataLabels) any() bool {
	return l.Value || l.Percentage || l.Category || l.SeriesName || l.LegendKey
}

// LabelPosition is the DrawingML dLblPos value.
type LabelPosition string

const (
	LabelInsideEnd  LabelPosition = "inEnd"
	LabelOutsideEnd LabelPosition = "outEnd"
	LabelCenter     LabelPosition = "ctr"
	LabelInsideBase LabelPosition = "inBase"
	LabelBestFit    LabelPosition = "bestFit"
)

// SeriesOutline is the stroke around bars and slices. Width is in points.
type SeriesOutline struct {
	Width int
	Color Color
}

// SeriesMarker is the point symbol of line, scatter and radar plots.
type SeriesMarker struct {
	Symbol MarkerSymbol
	Size   int
}

// MarkerSymbol is the DrawingML marker symbol name.
type MarkerSymbol string

const (
	MarkerCircle   MarkerSymbol = "circle"
	MarkerDash     MarkerSymbol = "dash"
	MarkerDiamond  MarkerSymbol = "diamond"
	MarkerDot      MarkerSymbol = "dot"
	MarkerPlus     MarkerSymbol = "plus"
	MarkerSquare   MarkerSymbol = "square"
	MarkerStar     MarkerSymbol = "star"
	MarkerTriangle MarkerSymbol = "triangle"
	MarkerX        MarkerSymbol = "x"
	MarkerNone     MarkerSymbol = "none"
)

// NewChartSeries creates a series from a map. Categories are sorted, since
// a map carries no order.
func NewChartSeries(title string, data map[string]float64) *ChartSeries {
	return &ChartSeries{
		Title:      title,
		Values:     data,
		Categories: slices.Sorted(maps.Keys(data)),
		Font:       NewFont(),
	}
}

// NewChartSeriesOrdered creates a series in category order. Missing values
// are 0 and extra values are dropped.
func NewChartSeriesOrdered(title string, categories []string, values []float64) *ChartSeries {
	data := make(map[string]float64, len(categories))
	for i, cat := range categories {
		if i < len(values) {
			data[cat] = values[i]
		} else {
			data[cat] = 0
		}
	}
	return &ChartSeries{
		Title:      title,
		Values:     data,
		Categories: slices.Clone(categories),
		Font:       NewFont(),
	}
}

func (s *ChartSeries) SetFillColor(c Color) *ChartSeries { s.FillColor = c; return s }

// SetPointFill overrides the fill of the point at category index idx.
func (s *ChartSeries) SetPointFill(idx int, f *Fill) *ChartSeries {
	if s.PointFills == nil {
		s.PointFills = make(map[int]*Fill)
	}
	s.PointFills[idx] = f
	return s
}

// pointFillIndexes returns the overridden point indexes in ascending order.
func (s *ChartSeries) pointFillIndexes() []int {
	return slices.Sorted(maps.Keys(s.PointFills))
}

// seriesList is the series slice every plot type embeds.
type seriesList struct {
	Series []*ChartSeries
}

func (l *seriesList) GetSeries() []*ChartSeries { return l.Series }

// AppendSeries adds series in plot order.
func (l *seriesList) AppendSeries(s ...*ChartSeries) { l.Series = append(l.Series, s...) }

// BarGrouping is how the bars of several series share a category.
type BarGrouping string

const (
	BarGroupingClustered      BarGrouping = "clustered"
	BarGroupingStacked        BarGrouping = "stacked"
	BarGroupingPercentStacked BarGrouping = "percentStacked"
)

// BarDirection is "col" for vertical bars and "bar" for horizontal ones.
type BarDirection string

const (
	BarDirectionVertical   BarDirection = "col"
	BarDirectionHorizontal BarDirection = "bar"
)

// BarChart is a bar or column plot.
type BarChart struct {
	seriesList
	Grouping  BarGrouping
	Direction BarDirection
	// GapWidth is the space between categories, 0-500 percent of a bar.
	GapWidth int
	// Overlap is how far bars of one category overlap, -100 to 100 percent.
	Overlap int
}

func (b *BarChart) GetChartTypeName() string { return "bar" }

// NewBarChart creates clustered vertical bars.
func NewBarChart() *BarChart {
	return &BarChart{Grouping: BarGroupingClustered, Direction: BarDirectionVertical, GapWidth: 150}
}

func (b *BarChart) AddSeries(s ...*ChartSeries) *BarChart { b.AppendSeries(s...); return b }

// SetBarGrouping sets the grouping. Stacked groupings overlap fully.
func (b *BarChart) SetBarGrouping(g BarGrouping) *BarChart {
	b.Grouping = g
	b.Overlap = 0
	if g == BarGroupingStacked || g == BarGroupingPercentStacked {
		b.Overlap = 100
	}
	return b
}

// SetGapWidthPercent sets the gap, clamped to 0-500.
func (b *BarChart) SetGapWidthPercent(v int) *BarChart {
	b.GapWidth = min(max(v, 0), 500)
	return b
}

// SetOverlapPercent sets the overlap, clamped to -100-100.
func (b *BarChart) SetOverlapPercent(v int) *BarChart {
	b.Overlap = min(max(v, -100), 100)
	return b
}

// Bar3DChart is a bar plot drawn with depth.
type Bar3DChart struct {
	BarChart
}

func (b *Bar3DChart) GetChartTypeName() string                { return "bar3D" }
func (b *Bar3DChart) AddSeries(s ...*ChartSeries) *Bar3DChart { b.AppendSeries(s...); return b }

func NewBar3DChart() *Bar3DChart { return &Bar3DChart{BarChart: *NewBarChart()} }

// LineChart is a line plot with markers.
type LineChart struct {
	seriesList
	Smooth bool
}

func (l *LineChart) GetChartTypeName() string               { return "line" }
func (l *LineChart) AddSeries(s ...*ChartSeries) *LineChart { l.AppendSeries(s...); return l }

func NewLineChart() *LineChart { return &LineChart{} }

// AreaChart is a filled line plot.
type AreaChart struct {
	seriesList
}

func (a *AreaChart) GetChartTypeName() string               { return "area" }
func (a *AreaChart) AddSeries(s ...*ChartSeries) *AreaChart { a.AppendSeries(s...); return a }

func NewAreaChart() *AreaChart { return &AreaChart{} }

// PieChart plots the first series as slices; each point gets its own color.
type PieChart struct {
	seriesList
}

func (p *PieChart) GetChartTypeName() string              { return "pie" }
func (p *PieChart) AddSeries(s ...*ChartSeries) *PieChart { p.AppendSeries(s...); return p }

func NewPieChart() *PieChart { return &PieChart{} }

// Pie3DChart is a tilted pie.
type Pie3DChart struct {
	PieChart
}

func (p *Pie3DChart) GetChartTypeName() string                { return "pie3D" }
func (p *Pie3DChart) AddSeries(s ...*ChartSeries) *Pie3DChart { p.AppendSeries(s...); return p }

func NewPie3DChart() *Pie3DChart { return &Pie3DChart{} }

// DoughnutChart is a pie with a hole of HoleSize percent, 10-90.
type DoughnutChart struct {
	seriesList
	HoleSize int
}

func (d *DoughnutChart) GetChartTypeName() string                   { return "doughnut" }
func (d *DoughnutChart) AddSeries(s ...*ChartSeries) *DoughnutChart { d.AppendSeries(s...); return d }

func NewDoughnutChart() *DoughnutChart { return &DoughnutChart{HoleSize: 50} }

// ScatterChart plots values against the categories read as x values.
type ScatterChart struct {
	seriesList
	Smooth bool
}

func (s *ScatterChart) GetChartTypeName() string                   { return "scatter" }
func (s *ScatterChart) AddSeries(ss ...*ChartSeries) *ScatterChart { s.AppendSeries(ss...); return s }

func NewScatterChart() *ScatterChart { return &ScatterChart{} }

// RadarChart is a spider plot.
type RadarChart struct {
	seriesList
}

func (r *RadarChart) GetChartTypeName() string                { return "radar" }
func (r *RadarChart) AddSeries(s ...*ChartSeries) *RadarChart { r.AppendSeries(s...); return r }

func NewRadarChart() *RadarChart { return &RadarChart{} }

// chartSeries returns the series of a plot type. A plot without series has
// nothing to draw and is rejected.
func chartSeries(ct ChartType) ([]*ChartSeries, error) {
	if ct == nil {
		return nil, fmt.Errorf("%w: no plot type", ErrMissingChartData)
	}
	series := ct.GetSeries()
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: %s chart has no series", ErrMissingChartData, ct.GetChartTypeName())
	}
	if i := slices.Index(series, nil); i >= 0 {
		return nil, fmt.Errorf("%w: series %d is nil", ErrMissingChartData, i+1)
	}
	for _, s := range series {
		for _, cat := range slices.Sorted(maps.Keys(s.Values)) {
			if v := s.Values[cat]; !isFinite(v) {
				return nil, fmt.Errorf("%w: series %q category %q is %v", ErrInvalidChartValue, s.Title, cat, v)
			}
		}
	}
	return series, nil
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// chartCategories returns the category axis shared by all series: the
// first series' order, extended by categories only later series carry.
func chartCategories(series []*ChartSeries) []string {
	seen := make(map[string]bool)
	var cats []string
	for _, s := range series {
		for _, c := range s.Categories {
			if !seen[c] {
				seen[c] = true
				cats = append(cats, c)
			}
		}
	}
	return cats
}
