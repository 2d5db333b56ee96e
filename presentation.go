// Package gopresentation writes in-memory presentation documents to
// PowerPoint (.pptx, Office Open XML) and OpenDocument (.odp) packages.
//
// A document is built with New, CreateSlide and the shape factories on
// Slide. Export runs in two phases: Prepare walks the model once and
// freezes every relationship id, media file name and chart part index into
// Bindings; Render then produces the archive parts from the model and those
// bindings. NewWriter wraps both phases and the ZIP assembly.
//
// See the Version variable for the current library version.
package gopresentation

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Presentation is a document: its slides in order, the slide size, the
// layout pack the masters come from and two property sets.
type Presentation struct {
	properties *DocumentProperties
	settings   *PresentationProperties
	slides     []*Slide
	active     int
	layout     *DocumentLayout
	layoutPack *LayoutPack
}

// New returns a 4:3 presentation with one blank slide and the default
// layout pack.
func New() *Presentation {
	p := &Presentation{
		properties: NewDocumentProperties(),
		settings:   NewPresentationProperties(),
		layout:     NewDocumentLayout(),
		layoutPack: DefaultLayoutPack(),
	}
	p.CreateSlide()
	return p
}

func (p *Presentation) GetDocumentProperties() *DocumentProperties         { return p.properties }
func (p *Presentation) SetDocumentProperties(props *DocumentProperties)    { p.properties = props }
func (p *Presentation) GetPresentationProperties() *PresentationProperties { return p.settings }
func (p *Presentation) GetLayout() *DocumentLayout                         { return p.layout }
func (p *Presentation) SetLayout(layout *DocumentLayout)                   { p.layout = layout }

// GetLayoutPack returns the master, layout and theme templates used on export.
func (p *Presentation) GetLayoutPack() *LayoutPack { return p.layoutPack }

// SetLayoutPack replaces the layout pack. The pack is read-only during export
// and may be shared by several presentations.
func (p *Presentation) SetLayoutPack(pack *LayoutPack) { p.layoutPack = pack }

// slideIndex checks that i addresses an existing slide.
func (p *Presentation) slideIndex(what string, i int) error {
	if i < 0 || i >= len(p.slides) {
		return fmt.Errorf("%s %d of %d: %w", what, i, len(p.slides), errOutOfRange)
	}
	return nil
}

// CreateSlide appends a blank slide.
func (p *Presentation) CreateSlide() *Slide { return p.AddSlide(newSlide()) }

// AddSlide appends an existing slide. Adding the same slide twice exports
// it twice.
func (p *Presentation) AddSlide(slide *Slide) *Slide {
	p.slides = append(p.slides, slide)
	return slide
}

// GetActiveSlide returns the slide the shape helpers work on, or nil for a
// presentation without slides.
func (p *Presentation) GetActiveSlide() *Slide {
	if len(p.slides) == 0 {
		return nil
	}
	if p.active >= len(p.slides) {
		p.active = 0
	}
	return p.slides[p.active]
}

func (p *Presentation) SetActiveSlideIndex(i int) error {
	if err := p.slideIndex("slide", i); err != nil {
		return err
	}
	p.active = i
	return nil
}

func (p *Presentation) GetActiveSlideIndex() int { return p.active }
func (p *Presentation) GetAllSlides() []*Slide   { return p.slides }
func (p *Presentation) GetSlideCount() int       { return len(p.slides) }

func (p *Presentation) GetSlide(i int) (*Slide, error) {
	if err := p.slideIndex("slide", i); err != nil {
		return nil, err
	}
	return p.slides[i], nil
}

// RemoveSlideByIndex deletes a slide. The last slide cannot be removed:
// an empty presentation cannot be exported.
func (p *Presentation) RemoveSlideByIndex(i int) error {
	if err := p.slideIndex("slide", i); err != nil {
		return err
	}
	if len(p.slides) == 1 {
		return ErrNoSlides
	}
	p.slides = slices.Delete(p.slides, i, i+1)
	p.active = min(p.active, len(p.slides)-1)
	return nil
}

// MoveSlide moves the slide at from so that it ends up at index to.
func (p *Presentation) MoveSlide(from, to int) error {
	if err := p.slideIndex("from", from); err != nil {
		return err
	}
	if err := p.slideIndex("to", to); err != nil {
		return err
	}
	slide := p.slides[from]
	p.slides = slices.Insert(slices.Delete(p.slides, from, from+1), to, slide)
	return nil
}

// CopySlide appends a copy of the slide at index and returns it. The copy
// has its own shape list but shares the shape values: a picture or chart
// that appears on both slides is exported once and referenced twice.
func (p *Presentation) CopySlide(index int) (*Slide, error) {
	src, err := p.GetSlide(index)
	if err != nil {
		return nil, err
	}
	dst := newSlide()
	dst.name, dst.layoutName, dst.hidden = src.name, src.layoutName, src.hidden
	dst.backgroundImage = src.backgroundImage
	if src.background != nil {
		bg := *src.background
		dst.background = &bg
	}
	dst.shapes = slices.Clone(src.shapes)
	if src.note != nil {
		dst.note = newNote()
		dst.note.shapes = slices.Clone(src.note.shapes)
	}
	return p.AddSlide(dst), nil
}

// ExtractText returns the text of every slide, one block per slide, in
// document order. Notes are not included.
func (p *Presentation) ExtractText() string {
	blocks := make([]string, len(p.slides))
	for i, slide := range p.slides {
		blocks[i] = slide.ExtractText()
	}
	return strings.Join(blocks, "\n\n")
}

// Save writes a PPTX file.
func (p *Presentation) Save(path string, opts ...Option) error {
	return p.SaveAs(path, WriterPowerPoint2007, opts...)
}

// SaveAs writes the presentation to path in the given format.
func (p *Presentation) SaveAs(path string, format WriterType, opts ...Option) error {
	writer, err := NewWriter(p, format, opts...)
	if err != nil {
		return err
	}
	return writer.Save(path)
}

// Write streams the package in the given format to w.
func (p *Presentation) Write(w io.Writer, format WriterType, opts ...Option) error {
	writer, err := NewWriter(p, format, opts...)
	if err != nil {
		return err
	}
	return writer.WriteTo(w)
}
