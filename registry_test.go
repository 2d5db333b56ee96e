package gopresentation

import (
	"errors"
	"math"
	"path"
	"testing"

	"go.followtheprocess.codes/test"
)

func TestRelationshipSetAllocatesInOrder(t *testing.T) {
	var rs relationshipSet
	test.Equal(t, rs.allocate(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", false), "rId1")
	test.Equal(t, rs.allocate(relTypeHyperlink, "https://example.com", true), "rId2")
	test.Equal(t, rs.allocate(relTypeImage, "../media/image1.png", false), "rId3")
	test.Equal(t, rs.len(), 3)

	all := rs.all()
	test.Equal(t, all[1].External, true)
	test.Equal(t, all[2].Target, "../media/image1.png")
}

// relSummary is the type and target of one relationship, for comparing
// whole scopes.
type relSummary struct {
	typ    string
	target string
}

func summarize(rs *relationshipSet) []relSummary {
	var out []relSummary
	for _, r := range rs.all() {
		out = append(out, relSummary{typ: path.Base(r.Type), target: r.Target})
	}
	return out
}

func TestPrepareSlideOrderWithGroupsTablesAndNotes(t *testing.T) {
	p := New()
	slide := p.GetActiveSlide()
	p.CreateSlide()

	pic := slide.CreateDrawingShape()
	pic.SetImageData(testPNG(), "image/png")
	pic.SetHyperlink(NewHyperlink("https://example.com/pic"))

	group := slide.CreateGroup()
	text := NewRichTextShape()
	text.CreateTextRun("in group").SetHyperlink(NewHyperlink("https://example.com/run"))
	group.AddShape(text)
	chart := NewChartShape()
	chart.GetPlotArea().SetType(NewBarChart().AddSeries(NewChartSeriesOrdered("s", []string{"a"}, []float64{1})))
	group.AddShape(chart)

	table := slide.CreateTableShape(1, 2)
	table.GetCell(0, 1).CreateTextRun("cell").SetHyperlink(NewInternalHyperlink(2))

	auto := slide.CreateAutoShape()
	auto.SetHyperlink(NewInternalHyperlink(2))

	note := slide.CreateNote()
	noteText := note.CreateRichTextShape()
	noteText.CreateTextRun("see").SetHyperlink(NewHyperlink("https://example.com/note"))

	b, err := Prepare(p)
	test.Ok(t, err)

	sb := b.slides[0]
	want := []relSummary{
		{typ: "slideLayout", target: "../slideLayouts/slideLayout4.xml"},
		{typ: "image", target: "../media/image1.png"},
		{typ: "hyperlink", target: "https://example.com/pic"},
		{typ: "hyperlink", target: "https://example.com/run"},
		{typ: "chart", target: "../charts/chart1.xml"},
		{typ: "slide", target: "../slides/slide2.xml"},
		{typ: "slide", target: "../slides/slide2.xml"},
		{typ: "notesSlide", target: "../notesSlides/notesSlide1.xml"},
	}
	got := summarize(&sb.rels)
	test.Equal(t, len(got), len(want))
	for i := range want {
		test.Equal(t, got[i], want[i], test.Context("relationship %d", i+1))
	}

	test.Equal(t, sb.shapeRel[pic], "rId2")
	test.Equal(t, sb.shapeLink[pic], "rId3")
	test.Equal(t, sb.runLink[text.paragraphs[0].elements[0].(*TextRun)], "rId4")
	test.Equal(t, sb.shapeRel[chart], "rId5")
	test.Equal(t, sb.shapeLink[auto], "rId7")
	test.Equal(t, sb.notesRel, "rId8")

	notes := summarize(&sb.notes.rels)
	test.Equal(t, len(notes), 3)
	test.Equal(t, notes[0].typ, "notesMaster")
	test.Equal(t, notes[1], relSummary{typ: "slide", target: "../slides/slide1.xml"})
	test.Equal(t, notes[2], relSummary{typ: "hyperlink", target: "https://example.com/note"})

	test.Equal(t, b.SlideRelationships(1)[7], "rId8")
	test.True(t, b.SlideRelationships(3) == nil)
	test.True(t, b.hasNotes())
}

func TestPrepareBackgroundImageComesAfterLayout(t *testing.T) {
	p := New()
	bg := NewDrawingShape()
	bg.SetImageData(testPNG(), "")
	p.GetActiveSlide().SetBackgroundImage(bg)

	b, err := Prepare(p)
	test.Ok(t, err)
	sb := b.slides[0]
	test.Equal(t, sb.backgroundRel, "rId2")
	test.Equal(t, b.MediaPaths()[0], "ppt/media/image1.png")
}

func TestPreparePackageScopes(t *testing.T) {
	p := New()
	p.CreateSlide()
	p.GetActiveSlide().SetNotes("n")

	b, err := Prepare(p)
	test.Ok(t, err)

	root := summarize(&b.root)
	test.Equal(t, root[0], relSummary{typ: "officeDocument", target: "ppt/presentation.xml"})

	pres := summarize(&b.pres)
	want := []string{"slideMaster", "notesMaster", "slide", "slide", "presProps", "viewProps", "theme", "tableStyles"}
	test.Equal(t, len(pres), len(want))
	for i, typ := range want {
		test.Equal(t, pres[i].typ, typ, test.Context("presentation relationship %d", i+1))
	}
	test.Equal(t, b.slideRels[1], "rId4")

	master := b.masters[0]
	test.Equal(t, len(master.layoutRels), 4)
	test.Equal(t, master.themeRel, "rId5")
	test.Equal(t, len(b.layoutRels), 4)
}

func TestPrepareWithoutNotesHasNoNotesMaster(t *testing.T) {
	b, err := Prepare(New())
	test.Ok(t, err)
	test.True(t, !b.hasNotes())
	test.Equal(t, b.notesMasterRel, "")
}

func TestPrepareDedupPolicies(t *testing.T) {
	dir := t.TempDir()
	imgPath := writeTempFile(t, dir, "logo.png", testPNG())

	build := func() *Presentation {
		p := New()
		s := p.GetActiveSlide()
		a := s.CreateDrawingShape()
		test.Ok(t, a.SetImageFromFile(imgPath))
		b := s.CreateDrawingShape()
		test.Ok(t, b.SetImageFromFile(imgPath))
		m1 := s.CreateMemoryDrawingShape()
		m1.SetImageData(testGIF(), "image/gif")
		m2 := s.CreateMemoryDrawingShape()
		m2.SetImageData(testGIF(), "image/gif")
		_, err := p.CopySlide(0)
		test.Ok(t, err)
		return p
	}

	t.Run("pptx keeps one file per shape", func(t *testing.T) {
		p := build()
		b, err := Prepare(p, WithFormat(WriterPowerPoint2007))
		test.Ok(t, err)
		test.Equal(t, len(b.MediaPaths()), 4, test.Context("shared shapes on the copied slide reuse their file"))
		test.Equal(t, b.MediaPaths()[2], "ppt/media/image3.gif")
		test.Equal(t, len(b.SlideRelationships(2)), 5, test.Context("copy has its own relationships"))
	})

	t.Run("odp shares files loaded from one path", func(t *testing.T) {
		p := build()
		b, err := Prepare(p, WithFormat(WriterODPresentation))
		test.Ok(t, err)
		paths := b.MediaPaths()
		test.Equal(t, len(paths), 3)
		test.Equal(t, path.Ext(paths[0]), ".png")
		test.Equal(t, paths[1], "Pictures/memory1.gif")
		test.Equal(t, paths[2], "Pictures/memory2.gif")
		test.Equal(t, len(b.SlideRelationships(1)), 0, test.Context("odp has no relationship parts"))
	})
}

func TestPrepareChartIndexesAndWorkbooks(t *testing.T) {
	p := New()
	first := p.GetActiveSlide().CreateChartShape()
	first.GetPlotArea().SetType(NewPieChart().AddSeries(NewChartSeriesOrdered("s", []string{"a", "b"}, []float64{1, 2})))
	first.SetIncludeSpreadsheet(true)

	second := p.CreateSlide().CreateChartShape()
	second.GetPlotArea().SetType(NewLineChart().AddSeries(NewChartSeriesOrdered("s", []string{"a"}, []float64{1})))

	b, err := Prepare(p)
	test.Ok(t, err)
	test.Equal(t, b.ChartCount(), 2)
	test.Equal(t, b.charts[0].workbookPath, "ppt/embeddings/Microsoft_Excel_Worksheet1.xlsx")
	test.Equal(t, b.charts[0].workbookRel, "rId1")
	test.True(t, b.charts[0].snapshot != nil)
	test.Equal(t, b.charts[1].workbookPath, "")
	test.True(t, b.charts[1].snapshot == nil, test.Context("literal data without a workbook"))
	test.True(t, b.hasWorkbooks())

	odp, err := Prepare(p, WithFormat(WriterODPresentation))
	test.Ok(t, err)
	test.True(t, odp.charts[1].snapshot != nil, test.Context("odp charts always carry a local table"))
}

func TestPrepareErrors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Presentation
		want  error
	}{
		{
			name:  "nil",
			build: func() *Presentation { return nil },
			want:  ErrNilPresentation,
		},
		{
			name: "no slides",
			build: func() *Presentation {
				p := New()
				p.slides = nil
				return p
			},
			want: ErrNoSlides,
		},
		{
			name: "layout",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().SetLayoutName("Two Content")
				return p
			},
			want: ErrLayoutNotFound,
		},
		{
			name: "link past the end",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().CreateAutoShape().SetHyperlink(NewInternalHyperlink(4))
				return p
			},
			want: ErrInvalidHyperlink,
		},
		{
			name: "unsupported chart",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().CreateChartShape().GetPlotArea().SetType(&funnelChart{})
				return p
			},
			want: ErrUnsupportedChartType,
		},
		{
			name: "chart without series",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().CreateChartShape().GetPlotArea().SetType(NewBarChart())
				return p
			},
			want: ErrMissingChartData,
		},
		{
			name: "not an image",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().CreateDrawingShape().SetImageData([]byte("plain text, not pixels"), "")
				return p
			},
			want: ErrUnsupportedImage,
		},
		{
			name: "no image source",
			build: func() *Presentation {
				p := New()
				p.GetActiveSlide().CreateDrawingShape()
				return p
			},
			want: ErrImageSource,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Prepare(tt.build())
			test.True(t, errors.Is(err, tt.want), test.Context("got %v, want %v", err, tt.want))
		})
	}
}

func TestPrepareNotesNeedANotesMaster(t *testing.T) {
	p := New()
	p.GetActiveSlide().SetNotes("hello")
	pack := DefaultLayoutPack()
	pack.NotesMaster = nil

	_, err := Prepare(p, WithLayoutPack(pack))
	test.True(t, errors.Is(err, ErrLayoutNotFound))

	_, err = Prepare(p, WithLayoutPack(pack), WithFormat(WriterODPresentation))
	test.Ok(t, err, test.Context("odp has no notes master part"))
}

func TestRenderRejectsForeignBindings(t *testing.T) {
	p := New()
	b, err := Prepare(p)
	test.Ok(t, err)

	_, err = Render(New(), b)
	test.True(t, errors.Is(err, ErrBindingsMismatch))

	p.CreateSlide()
	_, err = Render(p, b)
	test.True(t, errors.Is(err, ErrBindingsMismatch))

	_, err = Render(nil, b)
	test.True(t, errors.Is(err, ErrNilPresentation))
}

func TestRenderRejectsHyperlinksChangedAfterPrepare(t *testing.T) {
	tests := []struct {
		name   string
		change func(txt *RichTextShape, run *TextRun, linked *TextRun)
	}{
		{
			name:   "shape link added",
			change: func(txt *RichTextShape, _, _ *TextRun) { txt.SetHyperlink(NewHyperlink("https://example.com")) },
		},
		{
			name:   "run link added",
			change: func(_ *RichTextShape, run, _ *TextRun) { run.SetHyperlink(NewHyperlink("https://example.com")) },
		},
		{
			name:   "run link cleared",
			change: func(_ *RichTextShape, _, linked *TextRun) { linked.SetHyperlink(nil) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			txt := p.GetActiveSlide().CreateRichTextShape()
			run := txt.CreateTextRun("plain")
			linked := txt.CreateTextRun("linked")
			linked.SetHyperlink(NewHyperlink("https://example.org"))

			b, err := Prepare(p)
			test.Ok(t, err)
			tt.change(txt, run, linked)

			_, err = Render(p, b)
			test.True(t, errors.Is(err, ErrBindingsMismatch), test.Context("got %v", err))
		})
	}
}

func TestGroupCycles(t *testing.T) {
	p := New()
	outer := p.GetActiveSlide().CreateGroup()
	inner := NewGroupShape()
	inner.AddShape(NewAutoShape().SetText("inside"))
	outer.AddShape(inner)

	// A group shared by two parents is not a cycle.
	p.GetActiveSlide().CreateGroup().AddShape(inner)
	b, err := Prepare(p)
	test.Ok(t, err)

	inner.AddShape(outer)
	_, err = Render(p, b)
	test.True(t, errors.Is(err, ErrBindingsMismatch), test.Context("got %v", err))
	test.True(t, errors.Is(err, ErrGroupCycle))

	_, err = Prepare(p)
	test.True(t, errors.Is(err, ErrGroupCycle), test.Context("got %v", err))
	test.True(t, errors.Is(err, ErrInvalidPresentation))
	test.Equal(t, p.ExtractText(), "inside\ninside")
}

func TestPrepareRejectsNonFiniteChartValues(t *testing.T) {
	p := New()
	s := NewChartSeriesOrdered("s", []string{"a"}, []float64{math.Inf(-1)})
	p.GetActiveSlide().CreateChartShape().GetPlotArea().SetType(NewBarChart().AddSeries(s))
	_, err := Prepare(p)
	test.True(t, errors.Is(err, ErrInvalidChartValue), test.Context("got %v", err))
}

// funnelChart is a chart type no writer knows.
type funnelChart struct{}

func (*funnelChart) GetChartTypeName() string { return "funnel" }
func (*funnelChart) GetSeries() []*ChartSeries {
	return []*ChartSeries{NewChartSeriesOrdered("s", []string{"a"}, []float64{1})}
}
