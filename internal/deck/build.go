package deck

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	gp "github.com/VantageDataChat/GoDeck"
)

// ErrEmptyDeck is returned by Build for a deck without slides.
var ErrEmptyDeck = errors.New("deck has no slides")

// Default placement of the generated title and body boxes, in inches.
var (
	titleBox = Box{X: 0.5, Y: 0.3, W: 9, H: 1.2}
	bodyBox  = Box{X: 0.5, Y: 1.6, W: 9, H: 5}
)

const (
	titleFontSize = 32
	bodyFontSize  = 20
	linkFontSize  = 14
	headerFill    = "FF4472C4"
	headerText    = "FFFFFFFF"
)

// Build creates a presentation from the deck. Slide numbers in links count
// the slides of the result, copies included.
func (d *Deck) Build() (*gp.Presentation, error) {
	if len(d.Slides) == 0 {
		return nil, ErrEmptyDeck
	}
	p := gp.New()

	props := p.GetDocumentProperties()
	props.Title = d.Title
	props.Subject = d.Subject
	props.Company = d.Company
	props.Keywords = d.Keywords
	props.Language = d.Language
	if d.Author != "" {
		props.Creator = d.Author
		props.LastModifiedBy = d.Author
	}
	if d.Size != "" {
		if err := setSize(p.GetLayout(), d.Size); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(d.Properties)) {
		if err := props.SetCustomProperty(name, d.Properties[name]); err != nil {
			return nil, err
		}
	}
	if d.View != nil {
		if err := d.View.apply(p.GetPresentationProperties()); err != nil {
			return nil, err
		}
	}

	for i, s := range d.Slides {
		slide := p.GetActiveSlide()
		if i > 0 {
			slide = p.CreateSlide()
		}
		if err := d.buildSlide(slide, s); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		index := p.GetSlideCount() - 1
		for range s.Copies {
			if _, err := p.CopySlide(index); err != nil {
				return nil, err
			}
		}
	}
	return p, nil
}

var sizes = map[string]string{
	"4:3":   gp.LayoutScreen4x3,
	"16:9":  gp.LayoutScreen16x9,
	"16:10": gp.LayoutScreen16x10,
}

func setSize(layout *gp.DocumentLayout, size string) error {
	if name, ok := sizes[size]; ok {
		size = name
	}
	if !gp.IsKnownLayout(size) {
		return fmt.Errorf("unknown slide size %q", size)
	}
	layout.SetLayout(size)
	return nil
}

var views = map[string]gp.ViewType{
	"slide":   gp.ViewSlide,
	"notes":   gp.ViewNotes,
	"handout": gp.ViewHandout,
	"outline": gp.ViewOutline,
	"master":  gp.ViewSlideMaster,
	"sorter":  gp.ViewSlideSorter,
}

func (v *View) apply(pp *gp.PresentationProperties) error {
	if v.Zoom != 0 {
		pp.Zoom = v.Zoom / 100
	}
	if v.Open != "" {
		view, ok := views[v.Open]
		if !ok {
			var err error
			if view, err = gp.ParseViewType(v.Open); err != nil {
				return err
			}
		}
		pp.LastView = view
	}
	if v.Slideshow != "" {
		show, err := gp.ParseSlideshowType(v.Slideshow)
		if err != nil {
			return err
		}
		pp.Slideshow = show
	}
	pp.ShowComments = v.Comments
	pp.Final = v.Final
	return nil
}

func (d *Deck) buildSlide(slide *gp.Slide, s Slide) error {
	slide.SetName(s.Name)
	if s.Layout != "" {
		slide.SetLayoutName(s.Layout)
	}
	slide.SetHidden(s.Hidden)
	if s.Background != "" {
		color, err := gp.ParseColor(s.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		slide.SetBackground(gp.NewFill().SetSolid(color))
	}

	if s.Title != "" {
		title := slide.CreateRichTextShape()
		place(&title.BaseShape, titleBox)
		title.SetName("Title")
		title.GetTextFrame().Anchor = gp.TextAnchorBottom
		title.CreateTextRun(s.Title).SetFont(gp.NewFont().SetSize(titleFontSize).SetBold(true))
	}
	if len(s.Text) > 0 {
		body := slide.CreateRichTextShape()
		place(&body.BaseShape, bodyBox)
		body.SetName("Body")
		body.GetTextFrame().AutoFit = gp.AutoFitNormal
		for i, line := range s.Text {
			para := body.GetActiveParagraph()
			if i > 0 {
				para = body.CreateParagraph()
			}
			if s.Bullets {
				para.SetBullet(gp.NewBullet())
			}
			para.CreateTextRun(line).SetFont(gp.NewFont().SetSize(bodyFontSize))
		}
	}

	for _, img := range s.Images {
		if err := d.image(slide, img); err != nil {
			return err
		}
	}
	for i, t := range s.Tables {
		if err := table(slide, t); err != nil {
			return fmt.Errorf("table %d: %w", i+1, err)
		}
	}
	for i, c := range s.Charts {
		if err := chart(slide, c); err != nil {
			return fmt.Errorf("chart %d: %w", i+1, err)
		}
	}
	for i, sh := range s.Shapes {
		if err := autoShape(slide, sh); err != nil {
			return fmt.Errorf("shape %d: %w", i+1, err)
		}
	}
	links(slide, s.Links)

	if s.Notes != "" {
		slide.SetNotes(s.Notes)
	}
	return nil
}

// place positions a shape. A zero box leaves the shape where it is.
func place(b *gp.BaseShape, box Box) {
	if box == (Box{}) {
		return
	}
	b.SetPosition(gp.Inch(box.X), gp.Inch(box.Y))
	b.SetSize(gp.Inch(box.W), gp.Inch(box.H))
}

func hyperlink(l *LinkSpec) *gp.Hyperlink {
	if l == nil {
		return nil
	}
	var h *gp.Hyperlink
	if l.Slide > 0 {
		h = gp.NewInternalHyperlink(l.Slide)
	} else {
		h = gp.NewHyperlink(l.URL)
	}
	if l.Tooltip != "" {
		h.SetTooltip(l.Tooltip)
	}
	return h
}

func (d *Deck) image(slide *gp.Slide, img Image) error {
	path := img.Path
	if !filepath.IsAbs(path) && d.dir != "" {
		path = filepath.Join(d.dir, path)
	}
	pic := slide.CreateDrawingShape()
	if err := pic.SetImageFromFile(path); err != nil {
		return err
	}
	place(&pic.BaseShape, img.Box)
	if img.Name != "" {
		pic.SetName(img.Name)
	} else {
		pic.SetName(filepath.Base(img.Path))
	}
	pic.SetHyperlink(hyperlink(img.Link))
	return nil
}

func table(slide *gp.Slide, t Table) error {
	rows := len(t.Rows)
	cols := 0
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	if rows == 0 || cols == 0 {
		return errors.New("table has no cells")
	}
	tbl := slide.CreateTableShape(rows, cols)
	place(&tbl.BaseShape, t.Box)
	for r, row := range t.Rows {
		for c, text := range row {
			cell := tbl.GetCell(r, c)
			run := cell.CreateTextRun(text)
			if t.Header && r == 0 {
				cell.SetFill(gp.NewFill().SetSolid(gp.NewColor(headerFill)))
				run.SetFont(gp.NewFont().SetBold(true).SetColor(gp.NewColor(headerText)))
			}
		}
	}
	return nil
}

// plotType is a chart type that accepts series.
type plotType interface {
	gp.ChartType
	AppendSeries(...*gp.ChartSeries)
}

var chartTypes = map[string]func() plotType{
	"bar":      func() plotType { return gp.NewBarChart() },
	"column":   func() plotType { return gp.NewBarChart() },
	"hbar":     horizontalBars,
	"stacked":  func() plotType { return gp.NewBarChart().SetBarGrouping(gp.BarGroupingStacked) },
	"percent":  func() plotType { return gp.NewBarChart().SetBarGrouping(gp.BarGroupingPercentStacked) },
	"bar3d":    func() plotType { return gp.NewBar3DChart() },
	"line":     func() plotType { return gp.NewLineChart() },
	"smooth":   smoothLines,
	"area":     func() plotType { return gp.NewAreaChart() },
	"pie":      func() plotType { return gp.NewPieChart() },
	"pie3d":    func() plotType { return gp.NewPie3DChart() },
	"doughnut": func() plotType { return gp.NewDoughnutChart() },
	"scatter":  func() plotType { return gp.NewScatterChart() },
	"radar":    func() plotType { return gp.NewRadarChart() },
}

func horizontalBars() plotType {
	c := gp.NewBarChart()
	c.Direction = gp.BarDirectionHorizontal
	return c
}

func smoothLines() plotType {
	c := gp.NewLineChart()
	c.Smooth = true
	return c
}

var legendPositions = map[string]gp.LegendPosition{
	"bottom":    gp.LegendBottom,
	"top":       gp.LegendTop,
	"left":      gp.LegendLeft,
	"right":     gp.LegendRight,
	"top-right": gp.LegendTopRight,
}

func chart(slide *gp.Slide, c Chart) error {
	newPlot, ok := chartTypes[strings.ToLower(c.Type)]
	if !ok {
		return fmt.Errorf("%w: %q", gp.ErrUnsupportedChartType, c.Type)
	}
	ct := newPlot()
	for _, s := range c.Series {
		series := gp.NewChartSeriesOrdered(s.Name, c.Categories, s.Values)
		if s.Color != "" {
			color, err := gp.ParseColor(s.Color)
			if err != nil {
				return fmt.Errorf("series %q: %w", s.Name, err)
			}
			series.SetFillColor(color)
		}
		series.Labels.Value = s.Labels
		ct.AppendSeries(series)
	}

	shape := slide.CreateChartShape()
	place(&shape.BaseShape, c.Box)
	shape.GetPlotArea().SetType(ct)
	shape.SetIncludeSpreadsheet(c.Spreadsheet)
	if c.Title != "" {
		shape.GetTitle().SetText(c.Title)
	} else {
		shape.GetTitle().SetVisible(false)
	}
	if a := c.Axes; a != nil {
		plot := shape.GetPlotArea()
		plot.GetAxisX().SetTitle(a.X)
		y := plot.GetAxisY().SetTitle(a.Y)
		y.Min, y.Max = a.Min, a.Max
		if a.Grid {
			y.MajorGridlines = gp.NewGridlines()
		}
	}
	legend := shape.GetLegend()
	switch c.Legend {
	case "", "none":
		legend.Visible = c.Legend == "" && len(c.Series) > 1
	default:
		pos, ok := legendPositions[c.Legend]
		if !ok {
			return fmt.Errorf("unknown legend position %q", c.Legend)
		}
		legend.Visible = true
		legend.Position = pos
	}
	switch mode := gp.BlankMode(c.Blanks); mode {
	case "":
	case gp.BlankAsGap, gp.BlankAsZero, gp.BlankAsSpan:
		shape.SetDisplayBlankAs(mode)
	default:
		return fmt.Errorf("unknown blanks mode %q", c.Blanks)
	}
	return nil
}

var shapeKinds = map[string]gp.AutoShapeType{
	"rect":      gp.AutoShapeRectangle,
	"rectangle": gp.AutoShapeRectangle,
	"rounded":   gp.AutoShapeRoundedRect,
	"ellipse":   gp.AutoShapeEllipse,
	"triangle":  gp.AutoShapeTriangle,
	"diamond":   gp.AutoShapeDiamond,
	"arrow":     gp.AutoShapeArrowRight,
	"star":      gp.AutoShapeStar5,
	"chevron":   gp.AutoShapeChevron,
	"cloud":     gp.AutoShapeCloud,
	"callout":   gp.AutoShapeCallout1,
}

func autoShape(slide *gp.Slide, s Shape) error {
	kind, ok := shapeKinds[strings.ToLower(s.Kind)]
	if !ok {
		return fmt.Errorf("unknown shape kind %q", s.Kind)
	}
	a := slide.CreateAutoShape().SetAutoShapeType(kind)
	place(&a.BaseShape, s.Box)
	if s.Fill != "" {
		color, err := gp.ParseColor(s.Fill)
		if err != nil {
			return err
		}
		a.SetSolidFill(color)
	}
	if s.Text != "" {
		a.SetText(s.Text)
		a.GetTextFrame().Anchor = gp.TextAnchorMiddle
	}
	a.SetHyperlink(hyperlink(s.Link))
	return nil
}

// links stacks the slide's links in one text box, one paragraph each, or
// gives a link its own box when it has one.
func links(slide *gp.Slide, ls []Link) {
	var shared *gp.RichTextShape
	for _, l := range ls {
		var para *gp.Paragraph
		if l.Box != nil {
			box := slide.CreateRichTextShape()
			place(&box.BaseShape, *l.Box)
			para = box.GetActiveParagraph()
		} else if shared == nil {
			shared = slide.CreateRichTextShape()
			place(&shared.BaseShape, Box{X: 0.5, Y: 6.6, W: 9, H: 0.6})
			para = shared.GetActiveParagraph()
		} else {
			para = shared.CreateParagraph()
		}
		run := para.CreateTextRun(l.Text)
		run.SetFont(gp.NewFont().SetSize(linkFontSize).SetUnderline(gp.UnderlineSingle))
		run.SetHyperlink(hyperlink(l.target()))
	}
}
