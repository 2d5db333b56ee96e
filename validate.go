package gopresentation

import (
	"fmt"
	"strings"
)

// Validate checks the presentation for structural issues and returns an error
// describing all problems found, or nil if the presentation is valid. The
// error wraps ErrInvalidPresentation.
//
// Validate only looks at the model. Layout names are resolved against the
// pack chosen at export time, and problems that depend on external
// resources, such as unreadable picture files, surface during export.
func (p *Presentation) Validate() error {
	var errs []string
	var causes []error

	if p.layout != nil {
		if p.layout.CX <= 0 {
			errs = append(errs, "layout width (CX) must be positive")
		}
		if p.layout.CY <= 0 {
			errs = append(errs, "layout height (CY) must be positive")
		}
	}
	if len(p.slides) == 0 {
		errs = append(errs, "presentation must have at least one slide")
	}
	if p.properties != nil && p.properties.Language != "" {
		if _, err := documentLanguage(p.properties); err != nil {
			errs = append(errs, err.Error())
			causes = append(causes, err)
		}
	}

	for i, slide := range p.slides {
		prefix := fmt.Sprintf("slide %d", i+1)
		if slide == nil {
			errs = append(errs, prefix+": slide is nil")
			continue
		}
		v := &validator{slides: len(p.slides), prefix: prefix}
		if slide.backgroundImage != nil {
			v.picture("background", slide.backgroundImage.data, slide.backgroundImage.path, slide.backgroundImage.mimeType)
		}
		v.walkChecked(slide.shapes)
		if slide.note != nil {
			v.prefix = prefix + " notes"
			v.walkChecked(slide.note.shapes)
		}
		errs = append(errs, v.errs...)
		causes = append(causes, v.causes...)
	}

	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Problems: errs, causes: causes}
}

// ValidationError lists every problem Validate found. It matches
// ErrInvalidPresentation and the sentinel of each problem that has one, such
// as ErrInvalidHyperlink or ErrUnsupportedChartType.
type ValidationError struct {
	Problems []string
	causes   []error
}

func (e *ValidationError) Error() string {
	return ErrInvalidPresentation.Error() + ":\n  " + strings.Join(e.Problems, "\n  ")
}

func (e *ValidationError) Unwrap() []error {
	return append([]error{ErrInvalidPresentation}, e.causes...)
}

// validator is the validation pass over one shape container.
type validator struct {
	slides int
	prefix string
	path   []int
	errs   []string
	causes []error
}

// walkChecked walks a shape tree unless one of its groups contains itself.
func (v *validator) walkChecked(shapes []Shape) {
	if err := checkGroups(shapes); err != nil {
		v.fail(err)
		return
	}
	v.walk(shapes)
}

func (v *validator) walk(shapes []Shape) {
	for j, shape := range shapes {
		v.path = append(v.path, j+1)
		if shape == nil {
			v.addf("shape is nil")
		} else {
			if shape.GetWidth() < 0 {
				v.addf("width is negative")
			}
			if shape.GetHeight() < 0 {
				v.addf("height is negative")
			}
			v.hyperlink("hyperlink", shape.GetHyperlink())
			// Visitors below only collect problems and never fail.
			_ = shape.accept(v)
		}
		v.path = v.path[:len(v.path)-1]
	}
}

// addf records a problem at the current shape.
func (v *validator) addf(format string, args ...any) {
	parts := make([]string, len(v.path))
	for i, n := range v.path {
		parts[i] = fmt.Sprint(n)
	}
	where := v.prefix
	if len(parts) > 0 {
		where += " shape " + strings.Join(parts, ".")
	}
	v.errs = append(v.errs, where+": "+fmt.Sprintf(format, args...))
}

// fail records a problem caused by err.
func (v *validator) fail(err error) {
	v.causes = append(v.causes, err)
	v.addf("%v", err)
}

func (v *validator) hyperlink(what string, h *Hyperlink) {
	if h == nil {
		return
	}
	switch {
	case h.IsInternal && (h.SlideNumber < 1 || h.SlideNumber > v.slides):
		v.fail(fmt.Errorf("%s: %w: slide %d of %d", what, ErrInvalidHyperlink, h.SlideNumber, v.slides))
	case !h.IsInternal && h.URL == "":
		v.fail(fmt.Errorf("%s: %w: empty URL", what, ErrInvalidHyperlink))
	}
}

func (v *validator) paragraphs(paras []*Paragraph) {
	for i, para := range paras {
		if para == nil {
			v.addf("paragraph %d is nil", i+1)
			continue
		}
		for k, elem := range para.elements {
			if elem == nil {
				v.addf("paragraph %d element %d is nil", i+1, k+1)
				continue
			}
			if tr, ok := elem.(*TextRun); ok {
				v.hyperlink(fmt.Sprintf("paragraph %d run %d hyperlink", i+1, k+1), tr.hyperlink)
			}
		}
	}
}

func (v *validator) picture(what string, data []byte, path, mime string) {
	if len(data) == 0 && path == "" {
		v.fail(fmt.Errorf("%s: %w", what, ErrImageSource))
	}
	if mime != "" && !isValidImageMime(mime) {
		v.fail(fmt.Errorf("%w: MIME type %s", ErrUnsupportedImage, mime))
	}
}

func (v *validator) visitRichText(s *RichTextShape) error {
	if len(s.paragraphs) == 0 {
		v.addf("rich text shape has no paragraphs")
	}
	if s.frame.Columns < 0 {
		v.addf("text columns must not be negative")
	}
	v.paragraphs(s.paragraphs)
	return nil
}

func (v *validator) visitDrawing(s *DrawingShape) error {
	v.picture("drawing shape", s.data, s.path, s.mimeType)
	return nil
}

func (v *validator) visitMemoryDrawing(s *MemoryDrawingShape) error {
	if len(s.data) == 0 && s.render == nil {
		v.fail(fmt.Errorf("memory drawing: %w", ErrImageSource))
	}
	if s.mimeType != "" && !isValidImageMime(s.mimeType) {
		v.fail(fmt.Errorf("%w: MIME type %s", ErrUnsupportedImage, s.mimeType))
	}
	return nil
}

func (v *validator) visitAutoShape(*AutoShape) error { return nil }

func (v *validator) visitLine(s *LineShape) error {
	if !isValidARGB(s.stroke.Color.ARGB) {
		v.addf("line color is invalid ARGB")
	}
	return nil
}

func (v *validator) visitTable(s *TableShape) error {
	if s.numRows <= 0 || s.numCols <= 0 {
		v.addf("table must have at least 1 row and 1 column")
	}
	if s.numRows > 0 && s.numCols > 0 && len(s.rows) != s.numRows {
		v.addf("table row count mismatch")
	}
	for _, row := range s.rows {
		for _, cell := range row {
			if cell != nil {
				v.paragraphs(cell.paragraphs)
			}
		}
	}
	return nil
}

func (v *validator) visitChart(s *ChartShape) error {
	ct := s.plotArea.chartType
	if ct == nil {
		v.addf("chart shape has no chart type set")
		return nil
	}
	if _, err := plotFor(ct); err != nil {
		v.fail(err)
	}
	if _, err := chartSeries(ct); err != nil {
		v.fail(err)
	}
	if err := s.plotArea.checkAxes(); err != nil {
		v.fail(err)
	}
	return nil
}

func (v *validator) visitGroup(g *GroupShape) error {
	v.walk(g.shapes)
	return nil
}

// isValidImageMime checks if a MIME type is a supported image format.
func isValidImageMime(mime string) bool {
	for _, f := range supportedImages {
		if f.mime == mime {
			return true
		}
	}
	return false
}
