package gopresentation

import "strings"

// TextFrame is the layout of the text inside a shape. The zero value is a
// single wrapped column with the application's default insets.
type TextFrame struct {
	AutoFit AutoFitType
	// FontScale is the normAutofit font scale in 1/1000 of a percent.
	// 0 and 100000 both mean unscaled.
	FontScale int
	NoWrap    bool
	Anchor    TextAnchorType
	// Columns is the number of text columns; 0 means one.
	Columns int
	// Insets are the distances from the shape edges to the text, in EMU.
	// A zero inset keeps the default.
	Insets Insets
}

// Insets are four edge distances in EMU.
type Insets struct {
	Left, Top, Right, Bottom int64
}

// TextAnchorType is the vertical position of text within its shape.
type TextAnchorType string

const (
	TextAnchorNone   TextAnchorType = ""
	TextAnchorTop    TextAnchorType = "t"
	TextAnchorMiddle TextAnchorType = "ctr"
	TextAnchorBottom TextAnchorType = "b"
)

// AutoFitType is what happens when text overflows its shape: nothing,
// shrink the text (AutoFitNormal) or grow the shape (AutoFitShape).
type AutoFitType int

const (
	AutoFitNone AutoFitType = iota
	AutoFitNormal
	AutoFitShape
)

func (f *TextFrame) columns() int { return max(f.Columns, 1) }

// textBody is an ordered list of paragraphs with a current paragraph that
// new runs are added to. Text boxes and table cells embed it.
type textBody struct {
	paragraphs []*Paragraph
	active     int
}

func newTextBody() textBody {
	return textBody{paragraphs: []*Paragraph{NewParagraph()}}
}

// GetActiveParagraph returns the paragraph new runs go to, creating one if
// the body is empty.
func (t *textBody) GetActiveParagraph() *Paragraph {
	if len(t.paragraphs) == 0 {
		t.paragraphs = append(t.paragraphs, NewParagraph())
		t.active = 0
	}
	return t.paragraphs[t.active]
}

// CreateParagraph appends a paragraph and makes it active.
func (t *textBody) CreateParagraph() *Paragraph {
	p := NewParagraph()
	t.paragraphs = append(t.paragraphs, p)
	t.active = len(t.paragraphs) - 1
	return p
}

// GetParagraphs returns the paragraphs in order.
func (t *textBody) GetParagraphs() []*Paragraph { return t.paragraphs }

// CreateTextRun adds a run to the active paragraph.
func (t *textBody) CreateTextRun(text string) *TextRun {
	return t.GetActiveParagraph().CreateTextRun(text)
}

// CreateBreak adds a line break to the active paragraph.
func (t *textBody) CreateBreak() *BreakElement {
	return t.GetActiveParagraph().CreateBreak()
}

// text returns the body text, one line per paragraph.
func (t *textBody) text() string {
	lines := make([]string, 0, len(t.paragraphs))
	for _, p := range t.paragraphs {
		if p != nil {
			lines = append(lines, p.text())
		}
	}
	return strings.Join(lines, "\n")
}

// RichTextShape is a text box.
type RichTextShape struct {
	BaseShape
	textBody
	frame TextFrame
}

func (r *RichTextShape) GetType() ShapeType          { return ShapeTypeRichText }
func (r *RichTextShape) accept(v shapeVisitor) error { return v.visitRichText(r) }

// NewRichTextShape creates a text box with one empty paragraph.
func NewRichTextShape() *RichTextShape {
	return &RichTextShape{textBody: newTextBody()}
}

// GetTextFrame returns the text layout for modification.
func (r *RichTextShape) GetTextFrame() *TextFrame { return &r.frame }

// Paragraph is a run of inline elements sharing alignment, bullet and spacing.
type Paragraph struct {
	elements  []ParagraphElement
	alignment *Alignment
	bullet    *Bullet
	// lineSpacing is points*100 when positive, percent*1000 when negative.
	lineSpacing int
	spaceBefore int // points*100
	spaceAfter  int // points*100
}

// ParagraphElement is a TextRun or a BreakElement.
type ParagraphElement interface {
	GetElementType() string
}

// NewParagraph creates an empty left-aligned paragraph.
func NewParagraph() *Paragraph {
	return &Paragraph{alignment: NewAlignment()}
}

func (p *Paragraph) GetAlignment() *Alignment        { return p.alignment }
func (p *Paragraph) SetAlignment(a *Alignment)       { p.alignment = a }
func (p *Paragraph) GetBullet() *Bullet              { return p.bullet }
func (p *Paragraph) SetBullet(b *Bullet)             { p.bullet = b }
func (p *Paragraph) GetLineSpacing() int             { return p.lineSpacing }
func (p *Paragraph) SetLineSpacing(spacing int)      { p.lineSpacing = spacing }
func (p *Paragraph) GetSpaceBefore() int             { return p.spaceBefore }
func (p *Paragraph) SetSpaceBefore(v int)            { p.spaceBefore = v }
func (p *Paragraph) GetSpaceAfter() int              { return p.spaceAfter }
func (p *Paragraph) SetSpaceAfter(v int)             { p.spaceAfter = v }
func (p *Paragraph) GetElements() []ParagraphElement { return p.elements }

// CreateTextRun appends a run in the default font.
func (p *Paragraph) CreateTextRun(text string) *TextRun {
	tr := &TextRun{text: text, font: NewFont()}
	p.elements = append(p.elements, tr)
	return tr
}

// CreateBreak appends a line break.
func (p *Paragraph) CreateBreak() *BreakElement {
	br := &BreakElement{}
	p.elements = append(p.elements, br)
	return br
}

// text returns the run text with breaks as newlines.
func (p *Paragraph) text() string {
	var sb strings.Builder
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case *TextRun:
			sb.WriteString(e.text)
		case *BreakElement:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// TextRun is text in one font, optionally linked.
type TextRun struct {
	text      string
	font      *Font
	hyperlink *Hyperlink
}

func (tr *TextRun) GetElementType() string    { return "textrun" }
func (tr *TextRun) GetText() string           { return tr.text }
func (tr *TextRun) SetText(text string)       { tr.text = text }
func (tr *TextRun) GetFont() *Font            { return tr.font }
func (tr *TextRun) SetFont(f *Font)           { tr.font = f }
func (tr *TextRun) GetHyperlink() *Hyperlink  { return tr.hyperlink }
func (tr *TextRun) SetHyperlink(h *Hyperlink) { tr.hyperlink = h }

// BreakElement is a line break inside a paragraph.
type BreakElement struct{}

func (br *BreakElement) GetElementType() string { return "break" }
