package deck_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gp "github.com/VantageDataChat/GoDeck"
	"github.com/VantageDataChat/GoDeck/internal/deck"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const tomlDeck = `
title = "Review"
author = "Ops"
language = "de-DE"
size = "16:9"

[[slides]]
layout = "Title Slide"
title = "Review"
text = ["one", "two"]
bullets = true
notes = "say hello"

[[slides]]
name = "numbers"
layout = "Title Only"
title = "Numbers"
copies = 1

[[slides.charts]]
type = "line"
categories = ["a", "b"]
series = [{ name = "s1", values = [1, 2] }, { name = "s2", values = [3, 4] }]
spreadsheet = true

[[slides.tables]]
rows = [["h1", "h2"], ["x", "y"], ["z"]]
header = true

[[slides.links]]
text = "home"
slide = 1

[[slides.links]]
text = "site"
url = "https://example.com"
`

const yamlDeck = `
title: Review
author: Ops
language: de-DE
size: "16:9"
slides:
  - layout: Title Slide
    title: Review
    text: [one, two]
    bullets: true
    notes: say hello
  - name: numbers
    layout: Title Only
    title: Numbers
    copies: 1
    charts:
      - type: line
        categories: [a, b]
        series:
          - {name: s1, values: [1, 2]}
          - {name: s2, values: [3, 4]}
        spreadsheet: true
    tables:
      - rows: [[h1, h2], [x, y], [z]]
        header: true
    links:
      - {text: home, slide: 1}
      - {text: site, url: "https://example.com"}
`

func TestParseFormatsAgree(t *testing.T) {
	fromTOML, err := deck.Parse([]byte(tomlDeck), "toml")
	test.Ok(t, err)
	fromYAML, err := deck.Parse([]byte(yamlDeck), "yaml")
	test.Ok(t, err)

	test.Equal(t, fromTOML.Title, fromYAML.Title)
	test.Equal(t, len(fromTOML.Slides), 2)
	test.Equal(t, len(fromYAML.Slides), 2)
	test.Equal(t, fromTOML.Slides[1].Charts[0].Series[1].Values[1], 4.0)
	test.Equal(t, fromYAML.Slides[1].Charts[0].Series[1].Values[1], 4.0)
	test.Equal(t, fromTOML.Slides[1].Links[0].Slide, fromYAML.Slides[1].Links[0].Slide)
	test.Equal(t, fromTOML.Slides[1].Links[1].URL, fromYAML.Slides[1].Links[1].URL)
	test.Equal(t, fromTOML.Slides[1].Tables[0].Rows[2][0], "z")
}

func TestParseUnknownFormat(t *testing.T) {
	_, err := deck.Parse([]byte("{}"), "json")
	test.WantErr(t, err, true)
	test.True(t, strings.Contains(err.Error(), deck.ErrUnknownFormat.Error()))
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "deck.toml", want: "toml"},
		{path: "deck.YAML", want: "yaml"},
		{path: "dir/deck.yml", want: "yaml"},
		{path: "deck.json", want: "json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			test.Equal(t, deck.FormatOf(tt.path), tt.want)
		})
	}
}

func TestBuild(t *testing.T) {
	d, err := deck.Parse([]byte(tomlDeck), "toml")
	test.Ok(t, err)

	p, err := d.Build()
	test.Ok(t, err)

	test.Equal(t, p.GetSlideCount(), 3, test.Context("two slides plus one copy"))
	test.Equal(t, p.GetLayout().Name, gp.LayoutScreen16x9)
	test.Equal(t, p.GetDocumentProperties().Creator, "Ops")
	test.Equal(t, p.GetDocumentProperties().Language, "de-DE")

	first, err := p.GetSlide(0)
	test.Ok(t, err)
	test.Equal(t, first.GetLayoutName(), "Title Slide")
	test.Equal(t, first.GetNotes(), "say hello")
	test.True(t, strings.Contains(first.ExtractText(), "two"))

	second, err := p.GetSlide(1)
	test.Ok(t, err)
	test.Equal(t, second.GetName(), "numbers")
	// title, chart, table, links box
	test.Equal(t, second.GetShapeCount(), 4)

	third, err := p.GetSlide(2)
	test.Ok(t, err)
	test.Equal(t, third.GetShapeCount(), second.GetShapeCount())

	test.Ok(t, p.Validate())
}

func TestBuildViewAndProperties(t *testing.T) {
	src := `
title = "Board pack"

[view]
zoom = 75
open = "notes"
slideshow = "kiosk"
final = true

[properties]
client = "ACME"
budget = 1200
ratio = 0.5
approved = true
signed = 2025-01-02T03:04:05Z

[[slides]]
title = "Agenda"
`
	d, err := deck.Parse([]byte(src), "toml")
	test.Ok(t, err)
	p, err := d.Build()
	test.Ok(t, err)

	pp := p.GetPresentationProperties()
	test.Equal(t, pp.Zoom, 0.75)
	test.Equal(t, pp.LastView, gp.ViewNotes)
	test.Equal(t, pp.Slideshow, gp.SlideshowTypeKiosk)
	test.True(t, pp.Final)

	props := p.GetDocumentProperties()
	var names []string
	for _, cp := range props.CustomProperties() {
		names = append(names, cp.Name)
	}
	test.Equal(t, strings.Join(names, ","), "approved,budget,client,ratio,signed")
	budget, _ := props.CustomProperty("budget")
	test.Equal(t, budget.Type, gp.PropertyTypeInteger)
	signed, _ := props.CustomProperty("signed")
	test.Equal(t, signed.Type, gp.PropertyTypeDate)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		deck string
		want string
	}{
		{
			name: "empty",
			deck: `title = "x"`,
			want: deck.ErrEmptyDeck.Error(),
		},
		{
			name: "unknown chart",
			deck: "[[slides]]\n[[slides.charts]]\ntype = \"funnel\"\n",
			want: gp.ErrUnsupportedChartType.Error(),
		},
		{
			name: "unknown size",
			deck: "size = \"huge\"\n[[slides]]\ntitle = \"x\"\n",
			want: "unknown slide size",
		},
		{
			name: "empty table",
			deck: "[[slides]]\n[[slides.tables]]\nrows = []\n",
			want: "table has no cells",
		},
		{
			name: "unknown view",
			deck: "[view]\nopen = \"gallery\"\n[[slides]]\n",
			want: `unknown view "gallery"`,
		},
		{
			name: "unknown slideshow",
			deck: "[view]\nslideshow = \"loop\"\n[[slides]]\n",
			want: "unknown slideshow type",
		},
		{
			name: "list property",
			deck: "[properties]\ntags = [\"a\"]\n[[slides]]\n",
			want: gp.ErrInvalidProperty.Error(),
		},
		{
			name: "unknown shape",
			deck: "[[slides]]\n[[slides.shapes]]\nkind = \"blob\"\n",
			want: "unknown shape kind",
		},
		{
			name: "bad background",
			deck: "[[slides]]\nbackground = \"teal\"\n",
			want: `background: invalid color "teal"`,
		},
		{
			name: "bad series color",
			deck: "[[slides]]\n[[slides.charts]]\ntype = \"bar\"\ncategories = [\"a\"]\n[[slides.charts.series]]\nname = \"s\"\nvalues = [1.0]\ncolor = \"12345\"\n",
			want: `series "s": invalid color "12345"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := deck.Parse([]byte(tt.deck), "toml")
			test.Ok(t, err)
			_, err = d.Build()
			test.Err(t, err)
			test.True(t, strings.Contains(err.Error(), tt.want), test.Context("got %v", err))
		})
	}
}

func TestLoadResolvesImagesAgainstDeckDir(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	test.Ok(t, png.Encode(&buf, img))
	test.Ok(t, os.WriteFile(filepath.Join(dir, "dot.png"), buf.Bytes(), 0o644))

	src := `
[[slides]]
title = "Picture"

[[slides.images]]
path = "dot.png"
box = { x = 1, y = 1, w = 2, h = 1.5 }
link = { url = "https://example.com/dot" }
`
	path := filepath.Join(dir, "deck.toml")
	test.Ok(t, os.WriteFile(path, []byte(src), 0o644))

	d, err := deck.Load(path)
	test.Ok(t, err)
	p, err := d.Build()
	test.Ok(t, err)

	slide := p.GetActiveSlide()
	shapes := slide.GetShapes()
	test.Equal(t, len(shapes), 2)
	pic, ok := shapes[1].(*gp.DrawingShape)
	test.True(t, ok, test.Context("second shape is %T", shapes[1]))
	test.Equal(t, pic.GetPath(), filepath.Join(dir, "dot.png"))
	test.Equal(t, pic.GetWidth(), gp.Inch(2))
	test.Equal(t, pic.GetHyperlink().URL, "https://example.com/dot")
}

func TestSampleEncodes(t *testing.T) {
	for _, format := range []string{"toml", "yaml"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			test.Ok(t, deck.Sample().Encode(&buf, format))

			d, err := deck.Parse(buf.Bytes(), format)
			test.Ok(t, err)
			test.Equal(t, d.Title, deck.Sample().Title)

			p, err := d.Build()
			test.Ok(t, err)
			test.Ok(t, p.Validate())
		})
	}
}

func TestBuildChartOptions(t *testing.T) {
	src := `
[[slides]]
[[slides.charts]]
type = "hbar"
categories = ["north", "south"]
series = [{ name = "units", values = [4, 7], labels = true }]
blanks = "gap"
axes = { x = "Region", y = "Units", min = 0.0, max = 10.0, grid = true }
`
	d, err := deck.Parse([]byte(src), "toml")
	test.Ok(t, err)
	p, err := d.Build()
	test.Ok(t, err)

	slide, err := p.GetSlide(0)
	test.Ok(t, err)
	chart, ok := slide.GetShapes()[0].(*gp.ChartShape)
	test.True(t, ok, test.Context("first shape is %T", slide.GetShapes()[0]))
	test.Equal(t, chart.GetDisplayBlankAs(), gp.BlankAsGap)

	bars, ok := chart.GetPlotArea().GetType().(*gp.BarChart)
	test.True(t, ok)
	test.Equal(t, bars.Direction, gp.BarDirectionHorizontal)
	test.True(t, bars.GetSeries()[0].Labels.Value)

	x, y := chart.GetPlotArea().GetAxisX(), chart.GetPlotArea().GetAxisY()
	test.Equal(t, x.Title, "Region")
	test.Equal(t, y.Title, "Units")
	test.Equal(t, *y.Max, 10.0)
	test.True(t, y.MajorGridlines != nil)
	test.True(t, x.Min == nil)
}
