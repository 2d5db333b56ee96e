package gopresentation

import (
	"strings"
	"testing"

	"go.followtheprocess.codes/test"
)

func TestTextBody(t *testing.T) {
	r := NewRichTextShape()
	r.CreateTextRun("one")
	r.CreateBreak()
	r.CreateTextRun("two")
	r.CreateParagraph().CreateTextRun("three")
	test.Equal(t, len(r.GetParagraphs()), 2)
	test.Equal(t, r.text(), "one\ntwo\nthree")

	// An emptied body grows a paragraph on demand.
	r.paragraphs = nil
	r.CreateTextRun("again")
	test.Equal(t, r.text(), "again")

	cell := NewTableCell()
	cell.SetText("a").SetText("b")
	cell.CreateParagraph().CreateTextRun("c")
	test.Equal(t, cell.text(), "ab\nc")
}

func TestTextFrameDrawingML(t *testing.T) {
	tests := []struct {
		name  string
		frame TextFrame
		want  string
	}{
		{name: "zero", frame: TextFrame{}, want: `<a:bodyPr wrap="square"/>`},
		{name: "no wrap", frame: TextFrame{NoWrap: true}, want: `<a:bodyPr wrap="none"/>`},
		{
			name:  "columns and anchor",
			frame: TextFrame{Columns: 2, Anchor: TextAnchorMiddle},
			want:  `<a:bodyPr wrap="square" numCol="2" anchor="ctr"/>`,
		},
		{
			name:  "insets",
			frame: TextFrame{Insets: Insets{Left: 1, Bottom: 4}},
			want:  `<a:bodyPr wrap="square" lIns="1" bIns="4"/>`,
		},
		{name: "shrink", frame: TextFrame{AutoFit: AutoFitNormal}, want: `<a:bodyPr wrap="square"><a:normAutofit/></a:bodyPr>`},
		{
			name:  "font scale wins",
			frame: TextFrame{AutoFit: AutoFitShape, FontScale: 62500},
			want:  `<a:bodyPr wrap="square"><a:normAutofit fontScale="62500"/></a:bodyPr>`,
		},
		{name: "grow", frame: TextFrame{AutoFit: AutoFitShape}, want: `<a:bodyPr wrap="square"><a:spAutoFit/></a:bodyPr>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, bodyPrXML(&tt.frame), tt.want)
		})
	}
}

func TestTextFrameExport(t *testing.T) {
	p := New()
	s := p.GetActiveSlide()
	box := s.CreateRichTextShape()
	box.CreateTextRun("boxed")
	f := box.GetTextFrame()
	f.Anchor = TextAnchorBottom
	f.NoWrap = true
	f.Insets = Insets{Top: Centimeter(1)}

	shape := s.CreateAutoShape().SetText("badge")
	shape.GetTextFrame().Anchor = TextAnchorMiddle

	a := export(t, p, WriterPowerPoint2007)
	checkWellFormed(t, a)
	slide := a.text("ppt/slides/slide1.xml")
	test.True(t, strings.Contains(slide, `<a:bodyPr wrap="none" tIns="360000" anchor="b"/>`))
	test.True(t, strings.Contains(slide, `<a:bodyPr wrap="square" anchor="ctr"/>`))

	odp := export(t, p, WriterODPresentation)
	content := odp.text("content.xml")
	test.True(t, strings.Contains(content, `draw:textarea-vertical-align="bottom"`))
	test.True(t, strings.Contains(content, `fo:padding-top="1.000cm"`))
	test.True(t, strings.Contains(content, `fo:wrap-option="no-wrap"`))
	test.True(t, strings.Contains(content, `draw:textarea-vertical-align="middle"`))
}

func TestNegativeColumnsAreInvalid(t *testing.T) {
	p := New()
	p.GetActiveSlide().CreateRichTextShape().GetTextFrame().Columns = -1
	err := p.Validate()
	test.Err(t, err)
	test.True(t, strings.Contains(err.Error(), "text columns"))
}

func TestArrowheadsAndCrop(t *testing.T) {
	p := New()
	s := p.GetActiveSlide()

	arc := s.CreateAutoShape().SetAutoShapeType(AutoShapeArc)
	arc.GetArrowheads().Tail = &LineEnd{Type: ArrowTriangle, Width: ArrowSizeMed, Length: ArrowSizeMed}

	line := s.CreateLineShape().SetLineWidth(2).SetConnectorType("straightConnector1")
	line.GetArrowheads().Head = &LineEnd{Type: ArrowNone}
	test.Equal(t, line.GetLineWidthEMU(), int64(2*emuPerPoint))
	test.True(t, line.GetArrowheads().empty())

	pic := s.CreateDrawingShape().SetImageData(testPNG(), "").SetCrop(Crop{Left: 10000, Right: 5000})
	pic.SetSize(Inch(1), Inch(1))

	a := export(t, p, WriterPowerPoint2007)
	slide := a.text("ppt/slides/slide1.xml")
	test.True(t, strings.Contains(slide, `<a:tailEnd type="triangle" w="med" len="med"/>`))
	test.True(t, !strings.Contains(slide, "<a:headEnd"))
	test.True(t, strings.Contains(slide, `prst="straightConnector1"`))
	test.True(t, strings.Contains(slide, `<a:ln w="25400">`))
	test.True(t, strings.Contains(slide, `<a:srcRect l="10000" t="0" r="5000" b="0"/>`))
}

func TestParagraphProperties(t *testing.T) {
	p := New()
	box := p.GetActiveSlide().CreateRichTextShape()
	para := box.GetActiveParagraph()
	para.GetAlignment().SetHorizontal(HorizontalCenter).SetLevel(12).MarginLeft = Centimeter(1)
	para.SetBullet(NewBullet().SetNumericBullet("arabicPeriod", 0))
	para.SetLineSpacing(-150000)
	para.CreateTextRun("x").SetFont(NewFont().SetBold(true).SetSuperscript(true).SetSubscript(true))

	slide := export(t, p, WriterPowerPoint2007).text("ppt/slides/slide1.xml")
	test.True(t, strings.Contains(slide,
		`<a:pPr marL="360000" lvl="8" algn="ctr"><a:lnSpc><a:spcPct val="150000"/></a:lnSpc><a:buAutoNum type="arabicPeriod" startAt="1"/></a:pPr>`))
	test.True(t, strings.Contains(slide, `sz="1000" b="1" baseline="-25000" dirty="0"`))
}
