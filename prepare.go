package gopresentation

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Prepare walks the presentation once and freezes every identifier the
// writers need: relationship ids per part, media file names, chart indexes
// and layout resolutions. Nothing is rendered. The presentation must not be
// modified between Prepare and Render.
func Prepare(p *Presentation, opts ...Option) (*Bindings, error) {
	return prepare(p, newConfig(opts))
}

func prepare(p *Presentation, cfg *config) (*Bindings, error) {
	if p == nil {
		return nil, ErrNilPresentation
	}
	if len(p.slides) == 0 {
		return nil, ErrNoSlides
	}
	if cfg.format != WriterPowerPoint2007 && cfg.format != WriterODPresentation {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, cfg.format)
	}
	pack := cfg.pack
	if pack == nil {
		pack = p.layoutPack
	}
	if pack == nil {
		pack = DefaultLayoutPack()
	}
	if err := pack.check(); err != nil {
		return nil, err
	}
	lang, err := documentLanguage(p.properties)
	if err != nil {
		return nil, err
	}

	b := &Bindings{
		presentation: p,
		format:       cfg.format,
		cfg:          cfg,
		pack:         pack,
		lang:         lang,
		identifier:   documentIdentifier(p.properties),
		mediaByShape: make(map[Shape]*mediaEntry),
		chartByShape: make(map[*ChartShape]*chartEntry),
	}
	c := &relCollector{b: b, ooxml: cfg.format == WriterPowerPoint2007, odpByHash: make(map[string]*mediaEntry)}

	if c.ooxml {
		b.bindPackage()
	}
	for i, slide := range p.slides {
		if slide == nil {
			return nil, fmt.Errorf("slide %d: %w: nil slide", i+1, ErrInvalidPresentation)
		}
		if err := c.bindSlide(slide, i+1); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
	}

	cfg.logger.Debug("prepared bindings",
		"format", b.format,
		"slides", len(b.slides),
		"media", len(b.media),
		"charts", len(b.charts),
		"notes", b.hasNotes())
	return b, nil
}

// bindPackage allocates the package, presentation, master and layout scopes.
// Their shape depends only on the slide count and the pack, so it is done
// before the slides are walked.
func (b *Bindings) bindPackage() {
	b.root.allocate(relTypeOfficeDoc, "ppt/presentation.xml", false)
	b.root.allocate(relTypeCoreProps, "docProps/core.xml", false)
	b.root.allocate(relTypeExtProps, "docProps/app.xml", false)
	if b.custom = packageCustomProperties(b.presentation); len(b.custom) > 0 {
		b.root.allocate(relTypeCustomProps, "docProps/custom.xml", false)
	}

	id := uint32(2147483648)
	layoutNum := 0
	for mi, m := range b.pack.Masters {
		mb := &masterBinding{firstID: id}
		id += uint32(len(m.Layouts)) + 1
		for range m.Layouts {
			layoutNum++
			mb.layoutRels = append(mb.layoutRels,
				mb.rels.allocate(relTypeSlideLayout, fmt.Sprintf("../slideLayouts/slideLayout%d.xml", layoutNum), false))
			var lr relationshipSet
			lr.allocate(relTypeSlideMaster, fmt.Sprintf("../slideMasters/slideMaster%d.xml", mi+1), false)
			b.layoutRels = append(b.layoutRels, lr)
		}
		mb.themeRel = mb.rels.allocate(relTypeTheme, fmt.Sprintf("../theme/theme%d.xml", mi+1), false)
		b.masters = append(b.masters, mb)
		b.masterRels = append(b.masterRels,
			b.pres.allocate(relTypeSlideMaster, fmt.Sprintf("slideMasters/slideMaster%d.xml", mi+1), false))
	}

	if b.pack.NotesMaster != nil && presentationHasNotes(b.presentation) {
		b.notesMasterRel = b.pres.allocate(relTypeNotesMaster, "notesMasters/notesMaster1.xml", false)
		var nr relationshipSet
		nr.allocate(relTypeTheme, fmt.Sprintf("../theme/theme%d.xml", len(b.pack.Masters)+1), false)
		b.notesMaster = &nr
	}
	for i := range b.presentation.slides {
		b.slideRels = append(b.slideRels,
			b.pres.allocate(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1), false))
	}
	b.pres.allocate(relTypePresProps, "presProps.xml", false)
	b.pres.allocate(relTypeViewProps, "viewProps.xml", false)
	b.themeRel = b.pres.allocate(relTypeTheme, "theme/theme1.xml", false)
	b.pres.allocate(relTypeTableStyles, "tableStyles.xml", false)
}

func presentationHasNotes(p *Presentation) bool {
	for _, s := range p.slides {
		if s != nil && s.note != nil {
			return true
		}
	}
	return false
}

// relCollector is the registry pass. It visits shapes in exactly the order
// the slide emitters do and records every id in the current part binding.
type relCollector struct {
	b         *Bindings
	ooxml     bool
	part      *partBinding
	odpByHash map[string]*mediaEntry
	memoryN   int
	drawingN  int
}

func (c *relCollector) bindSlide(slide *Slide, n int) error {
	layout, err := c.b.pack.resolve(slide.layoutName)
	if err != nil {
		return err
	}
	sb := &slideBinding{partBinding: newPartBinding(), number: n, slide: slide, layout: layout}
	c.b.slides = append(c.b.slides, sb)
	c.part = &sb.partBinding

	if c.ooxml {
		sb.layoutRel = sb.rels.allocate(relTypeSlideLayout,
			fmt.Sprintf("../slideLayouts/slideLayout%d.xml", layout.layout+1), false)
	}
	if slide.backgroundImage != nil {
		m, err := c.registerDrawing(slide.backgroundImage)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		if c.ooxml {
			sb.backgroundRel = sb.rels.allocate(relTypeImage, "../"+trimPPT(m.path), false)
		}
	}
	if err := checkGroups(slide.shapes); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPresentation, err)
	}
	if err := walkShapes(slide.shapes, c); err != nil {
		return err
	}
	if slide.note == nil {
		return nil
	}

	nb := &notesBinding{partBinding: newPartBinding()}
	if c.ooxml {
		if c.b.notesMaster == nil {
			return fmt.Errorf("%w: pack %q has no notes master", ErrLayoutNotFound, c.b.pack.Name)
		}
		sb.notesRel = sb.rels.allocate(relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", n), false)
		nb.masterRel = nb.rels.allocate(relTypeNotesMaster, "../notesMasters/notesMaster1.xml", false)
		nb.slideRel = nb.rels.allocate(relTypeSlide, fmt.Sprintf("../slides/slide%d.xml", n), false)
	}
	sb.notes = nb
	c.part = &nb.partBinding
	if err := checkGroups(slide.note.shapes); err != nil {
		return fmt.Errorf("%w: notes: %w", ErrInvalidPresentation, err)
	}
	if err := walkShapes(slide.note.shapes, c); err != nil {
		return fmt.Errorf("notes: %w", err)
	}
	return nil
}

// trimPPT turns a package path under ppt/ into a path relative to ppt/.
func trimPPT(path string) string {
	const prefix = "ppt/"
	if len(path) > len(prefix) && path[:len(prefix)] == prefix {
		return path[len(prefix):]
	}
	return path
}

// link binds the hyperlink h and returns its id. ODP writes links inline, so
// only the target is checked there.
func (c *relCollector) link(h *Hyperlink) (string, error) {
	if h.IsInternal {
		if h.SlideNumber < 1 || h.SlideNumber > len(c.b.presentation.slides) {
			return "", fmt.Errorf("%w: slide %d of %d", ErrInvalidHyperlink, h.SlideNumber, len(c.b.presentation.slides))
		}
		if !c.ooxml {
			return "", nil
		}
		return c.part.rels.allocate(relTypeSlide, fmt.Sprintf("../slides/slide%d.xml", h.SlideNumber), false), nil
	}
	if h.URL == "" {
		return "", fmt.Errorf("%w: empty URL", ErrInvalidHyperlink)
	}
	if !c.ooxml {
		return "", nil
	}
	return c.part.rels.allocate(relTypeHyperlink, h.URL, true), nil
}

// shapeLinks binds the shape's own hyperlink, then the hyperlinks of its
// runs in paragraph order.
func (c *relCollector) shapeLinks(s Shape) error {
	if h := s.GetHyperlink(); h != nil {
		if _, done := c.part.shapeLink[s]; !done {
			id, err := c.link(h)
			if err != nil {
				return fmt.Errorf("shape %q: %w", s.GetName(), err)
			}
			c.part.shapeLink[s] = id
		}
	}
	for _, tr := range linkedRuns(shapeParagraphs(s)) {
		if _, done := c.part.runLink[tr]; done {
			continue
		}
		id, err := c.link(tr.hyperlink)
		if err != nil {
			return fmt.Errorf("shape %q run %q: %w", s.GetName(), tr.text, err)
		}
		c.part.runLink[tr] = id
	}
	return nil
}

func (c *relCollector) visitRichText(s *RichTextShape) error { return c.shapeLinks(s) }
func (c *relCollector) visitAutoShape(s *AutoShape) error    { return c.shapeLinks(s) }
func (c *relCollector) visitLine(s *LineShape) error         { return c.shapeLinks(s) }
func (c *relCollector) visitTable(s *TableShape) error       { return c.shapeLinks(s) }

func (c *relCollector) visitDrawing(s *DrawingShape) error {
	m, err := c.registerDrawing(s)
	if err != nil {
		return err
	}
	c.bindPicture(s, m)
	return c.shapeLinks(s)
}

func (c *relCollector) visitMemoryDrawing(s *MemoryDrawingShape) error {
	m, err := c.registerMemoryDrawing(s)
	if err != nil {
		return err
	}
	c.bindPicture(s, m)
	return c.shapeLinks(s)
}

func (c *relCollector) bindPicture(s Shape, m *mediaEntry) {
	if !c.ooxml {
		return
	}
	if _, done := c.part.shapeRel[s]; done {
		return
	}
	c.part.shapeRel[s] = c.part.rels.allocate(relTypeImage, "../"+trimPPT(m.path), false)
}

func (c *relCollector) visitChart(s *ChartShape) error {
	entry, err := c.registerChart(s)
	if err != nil {
		return err
	}
	if c.ooxml {
		if _, done := c.part.shapeRel[s]; !done {
			c.part.shapeRel[s] = c.part.rels.allocate(relTypeChart, fmt.Sprintf("../charts/chart%d.xml", entry.index), false)
		}
	}
	return c.shapeLinks(s)
}

func (c *relCollector) visitGroup(g *GroupShape) error {
	if err := c.shapeLinks(g); err != nil {
		return err
	}
	return walkShapes(g.shapes, c)
}

// registerDrawing returns the media entry of a file backed picture.
// OOXML keeps one file per shape instance. ODP shares one file between all
// pictures loaded from the same path.
func (c *relCollector) registerDrawing(d *DrawingShape) (*mediaEntry, error) {
	if m, ok := c.b.mediaByShape[d]; ok {
		return m, nil
	}
	var hash string
	if !c.ooxml && d.path != "" {
		sum := sha256.Sum256([]byte(d.path))
		hash = hex.EncodeToString(sum[:])
		if m, ok := c.odpByHash[hash]; ok {
			c.b.mediaByShape[d] = m
			return m, nil
		}
	}
	data, err := drawingBytes(d)
	if err != nil {
		return nil, err
	}
	m, err := c.addMedia(d, data, d.mimeType)
	if err != nil {
		return nil, fmt.Errorf("picture %q: %w", d.name, err)
	}
	switch {
	case c.ooxml:
		m.path = fmt.Sprintf("ppt/media/image%d.%s", m.index, m.info.Extension)
	case hash != "":
		m.path = fmt.Sprintf("Pictures/%s.%s", hash, m.info.Extension)
		c.odpByHash[hash] = m
	default:
		c.drawingN++
		m.path = fmt.Sprintf("Pictures/drawing%d.%s", c.drawingN, m.info.Extension)
	}
	return m, nil
}

// registerMemoryDrawing returns the media entry of an in-memory picture.
// Memory pictures are never shared by content in either format.
func (c *relCollector) registerMemoryDrawing(s *MemoryDrawingShape) (*mediaEntry, error) {
	if m, ok := c.b.mediaByShape[s]; ok {
		return m, nil
	}
	data, err := memoryDrawingBytes(s)
	if err != nil {
		return nil, err
	}
	m, err := c.addMedia(s, data, s.mimeType)
	if err != nil {
		return nil, fmt.Errorf("picture %q: %w", s.name, err)
	}
	if c.ooxml {
		m.path = fmt.Sprintf("ppt/media/image%d.%s", m.index, m.info.Extension)
	} else {
		c.memoryN++
		m.path = fmt.Sprintf("Pictures/memory%d.%s", c.memoryN, m.info.Extension)
	}
	return m, nil
}

func (c *relCollector) addMedia(s Shape, data []byte, hint string) (*mediaEntry, error) {
	info, err := c.b.cfg.sniffer.Sniff(data)
	if err != nil {
		return nil, err
	}
	if hint != "" && hint != info.MIME {
		c.b.cfg.logger.Debug("image type hint ignored", "hint", hint, "sniffed", info.MIME)
	}
	m := &mediaEntry{index: len(c.b.media) + 1, data: data, info: info}
	c.b.media = append(c.b.media, m)
	c.b.mediaByShape[s] = m
	return m, nil
}

// registerChart returns the chart entry of a chart shape, creating it on
// first sight. The plot type and series are checked here so an unsupported
// chart fails before anything is rendered.
func (c *relCollector) registerChart(s *ChartShape) (*chartEntry, error) {
	if e, ok := c.b.chartByShape[s]; ok {
		return e, nil
	}
	ct := s.plotArea.chartType
	series, err := chartSeries(ct)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", s.name, err)
	}
	plot, err := plotFor(ct)
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", s.name, err)
	}
	if err := s.plotArea.checkAxes(); err != nil {
		return nil, fmt.Errorf("chart %q: %w", s.name, err)
	}
	e := &chartEntry{
		index:  len(c.b.charts) + 1,
		shape:  s,
		plot:   plot,
		series: series,
	}
	switch {
	case !c.ooxml:
		e.snapshot = newChartSnapshot(series)
	case s.withWorkbook:
		e.snapshot = newChartSnapshot(series)
		e.workbookPath = fmt.Sprintf("ppt/embeddings/Microsoft_Excel_Worksheet%d.xlsx", e.index)
		e.workbookRel = e.rels.allocate(relTypePackage, "../"+trimPPT(e.workbookPath), false)
	}
	c.b.charts = append(c.b.charts, e)
	c.b.chartByShape[s] = e
	return e, nil
}
