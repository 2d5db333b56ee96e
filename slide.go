package gopresentation

import "strings"

// Default layout names of the built-in layout pack.
const (
	LayoutTitleSlide      = "Title Slide"
	LayoutTitleAndContent = "Title and Content"
	LayoutTitleOnly       = "Title Only"
	LayoutBlank           = "Blank"
)

// Slide is one page of a presentation. Shapes are kept in insertion order,
// which is also their z-order and the order every export pass visits them in.
type Slide struct {
	name            string
	shapes          []Shape
	note            *Note
	layoutName      string
	background      *Fill
	backgroundImage *DrawingShape
	hidden          bool
}

func newSlide() *Slide {
	return &Slide{
		shapes:     make([]Shape, 0),
		layoutName: LayoutBlank,
	}
}

// GetName returns the slide name.
func (s *Slide) GetName() string { return s.name }

// SetName sets the slide name.
func (s *Slide) SetName(name string) { s.name = name }

// GetLayoutName returns the name of the layout this slide is based on.
func (s *Slide) GetLayoutName() string { return s.layoutName }

// SetLayoutName selects the slide layout by name. The name is resolved
// against the presentation's layout pack at export time.
func (s *Slide) SetLayoutName(name string) { s.layoutName = name }

// IsHidden reports whether the slide is skipped in slide shows.
func (s *Slide) IsHidden() bool { return s.hidden }

// SetHidden hides or shows the slide in slide shows.
func (s *Slide) SetHidden(hidden bool) { s.hidden = hidden }

// GetBackground returns the background fill, nil when the master's is used.
func (s *Slide) GetBackground() *Fill { return s.background }

// SetBackground sets a solid or gradient background fill.
func (s *Slide) SetBackground(f *Fill) {
	s.background = f
	s.backgroundImage = nil
}

// SetBackgroundImage uses a picture as the slide background. The picture is
// not part of the shape tree.
func (s *Slide) SetBackgroundImage(img *DrawingShape) {
	s.backgroundImage = img
	s.background = nil
}

// GetBackgroundImage returns the background picture, if any.
func (s *Slide) GetBackgroundImage() *DrawingShape { return s.backgroundImage }

// GetShapes returns the shapes in z-order.
func (s *Slide) GetShapes() []Shape { return s.shapes }

// GetShapeCount returns the number of top-level shapes.
func (s *Slide) GetShapeCount() int { return len(s.shapes) }

// AddShape appends a shape on top of the existing ones.
func (s *Slide) AddShape(shape Shape) {
	s.shapes = append(s.shapes, shape)
}

// RemoveShape removes a top-level shape by index.
func (s *Slide) RemoveShape(index int) error {
	if index < 0 || index >= len(s.shapes) {
		return errOutOfRange
	}
	s.shapes = append(s.shapes[:index], s.shapes[index+1:]...)
	return nil
}

// RemoveShapeByPointer removes the given top-level shape.
// Returns true if it was found.
func (s *Slide) RemoveShapeByPointer(shape Shape) bool {
	for i, sh := range s.shapes {
		if sh == shape {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			return true
		}
	}
	return false
}

// CreateRichTextShape creates a text box on the slide.
func (s *Slide) CreateRichTextShape() *RichTextShape {
	shape := NewRichTextShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateAutoShape creates a preset geometry shape on the slide.
func (s *Slide) CreateAutoShape() *AutoShape {
	shape := NewAutoShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateDrawingShape creates a file-backed picture on the slide.
func (s *Slide) CreateDrawingShape() *DrawingShape {
	shape := NewDrawingShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateMemoryDrawingShape creates an in-memory picture on the slide.
func (s *Slide) CreateMemoryDrawingShape() *MemoryDrawingShape {
	shape := NewMemoryDrawingShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateChartShape creates a chart on the slide.
func (s *Slide) CreateChartShape() *ChartShape {
	shape := NewChartShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateTableShape creates a table on the slide.
func (s *Slide) CreateTableShape(rows, cols int) *TableShape {
	shape := NewTableShape(rows, cols)
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateLineShape creates a line on the slide.
func (s *Slide) CreateLineShape() *LineShape {
	shape := NewLineShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// CreateGroup creates an empty group on the slide.
func (s *Slide) CreateGroup() *GroupShape {
	shape := NewGroupShape()
	s.shapes = append(s.shapes, shape)
	return shape
}

// GetNote returns the speaker notes, nil if the slide has none.
func (s *Slide) GetNote() *Note { return s.note }

// CreateNote returns the slide's notes page, creating it on first use.
func (s *Slide) CreateNote() *Note { return orNew(&s.note, newNote) }

// SetNotes replaces the speaker notes with a single text box holding text.
// An empty string removes the notes page.
func (s *Slide) SetNotes(text string) {
	if text == "" {
		s.note = nil
		return
	}
	s.note = newNote()
	s.note.SetText(text)
}

// GetNotes returns the plain text of the speaker notes.
func (s *Slide) GetNotes() string {
	if s.note == nil {
		return ""
	}
	return s.note.ExtractText()
}

// ExtractText returns the text of all shapes on the slide, one line per paragraph.
func (s *Slide) ExtractText() string {
	return shapesText(s.shapes)
}

// Note is the speaker notes page of a slide. Like a slide it is a shape
// container; its shapes are exported to the notes slide part.
type Note struct {
	shapes []Shape
}

func newNote() *Note {
	return &Note{shapes: make([]Shape, 0)}
}

// GetShapes returns the notes shapes.
func (n *Note) GetShapes() []Shape { return n.shapes }

// AddShape appends a shape to the notes page.
func (n *Note) AddShape(shape Shape) { n.shapes = append(n.shapes, shape) }

// CreateRichTextShape creates a text box on the notes page.
func (n *Note) CreateRichTextShape() *RichTextShape {
	shape := NewRichTextShape()
	n.shapes = append(n.shapes, shape)
	return shape
}

// SetText replaces the notes content with one text box.
func (n *Note) SetText(text string) {
	rt := NewRichTextShape()
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			rt.CreateParagraph()
		}
		rt.CreateTextRun(line)
	}
	n.shapes = []Shape{rt}
}

// ExtractText returns the text of the notes page.
func (n *Note) ExtractText() string {
	return shapesText(n.shapes)
}

// shapesText collects paragraph text from text-bearing shapes, descending
// into groups and table cells. A group is not entered again from inside itself.
func shapesText(shapes []Shape) string {
	var lines []string
	seen := make(map[*GroupShape]bool)
	var walk func([]Shape)
	walk = func(shapes []Shape) {
		for _, shape := range shapes {
			switch sh := shape.(type) {
			case *RichTextShape:
				if len(sh.paragraphs) > 0 {
					lines = append(lines, sh.text())
				}
			case *AutoShape:
				if sh.text != "" {
					lines = append(lines, sh.text)
				}
			case *TableShape:
				for _, row := range sh.rows {
					var cells []string
					for _, cell := range row {
						var parts []string
						for _, para := range cell.paragraphs {
							parts = append(parts, para.text())
						}
						cells = append(cells, strings.Join(parts, " "))
					}
					lines = append(lines, strings.Join(cells, "\t"))
				}
			case *GroupShape:
				if !seen[sh] {
					seen[sh] = true
					walk(sh.shapes)
					delete(seen, sh)
				}
			}
		}
	}
	walk(shapes)
	return strings.Join(lines, "\n")
}
