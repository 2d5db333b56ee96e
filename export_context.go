package gopresentation

import (
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// exportContext is everything a part renderer may read. It is built once
// per Render from frozen bindings and shared read-only by all part jobs.
type exportContext struct {
	b       *Bindings
	p       *Presentation
	pack    *LayoutPack
	logger  *log.Logger
	lang    language.Tag
	encoder SpreadsheetEncoder
}

func newExportContext(b *Bindings) *exportContext {
	return &exportContext{
		b:       b,
		p:       b.presentation,
		pack:    b.pack,
		logger:  b.cfg.logger,
		lang:    b.lang,
		encoder: b.cfg.encoder,
	}
}

// props returns the document properties, or empty ones when unset.
func (ec *exportContext) props() *DocumentProperties {
	if ec.p.properties == nil {
		return &DocumentProperties{}
	}
	return ec.p.properties
}

// slideSize returns the page size in EMU.
func (ec *exportContext) slideSize() (cx, cy int64) {
	if ec.p.layout == nil {
		l := NewDocumentLayout()
		return l.CX, l.CY
	}
	return ec.p.layout.CX, ec.p.layout.CY
}

// pptxPlan accumulates part jobs and their content types in archive order.
type pptxPlan struct {
	jobs  []partJob
	types *contentTypes
}

func (pl *pptxPlan) add(path, contentType string, render func() ([]byte, error)) {
	if contentType != "" {
		pl.types.addOverride(path, contentType)
	}
	pl.jobs = append(pl.jobs, partJob{path: path, render: render})
}

func (pl *pptxPlan) addRels(part string, rs *relationshipSet) {
	pl.jobs = append(pl.jobs, relsJob(relsPath(part), rs))
}

// pptxJobs lists every part of a PresentationML package. [Content_Types].xml
// comes first and is rendered from the types declared by the other parts.
func (ec *exportContext) pptxJobs() []partJob {
	b := ec.b
	pl := &pptxPlan{types: newContentTypes()}
	pl.types.addDefault("rels", ctRels)
	pl.types.addDefault("xml", ctXML)

	pl.jobs = append(pl.jobs, relsJob("_rels/.rels", &b.root))
	pl.add("docProps/app.xml", ctExtProps, ec.appProps)
	pl.add("docProps/core.xml", ctCoreProps, ec.coreProps)
	if len(b.custom) > 0 {
		pl.add("docProps/custom.xml", ctCustomProps, ec.customProps)
	}
	pl.add("ppt/presentation.xml", ctPresentation, ec.presentationXML)
	pl.addRels("ppt/presentation.xml", &b.pres)
	pl.add("ppt/presProps.xml", ctPresProps, ec.presPropsXML)
	pl.add("ppt/viewProps.xml", ctViewProps, ec.viewPropsXML)
	pl.add("ppt/tableStyles.xml", ctTableStyles, ec.tableStylesXML)

	layoutNum := 0
	for mi, m := range ec.pack.Masters {
		mb := b.masters[mi]
		path := fmt.Sprintf("ppt/slideMasters/slideMaster%d.xml", mi+1)
		pl.add(path, ctSlideMaster, func() ([]byte, error) { return ec.masterXML(m, mb) })
		pl.addRels(path, &mb.rels)
		for _, l := range m.Layouts {
			layoutNum++
			path := fmt.Sprintf("ppt/slideLayouts/slideLayout%d.xml", layoutNum)
			pl.add(path, ctSlideLayout, func() ([]byte, error) { return ec.layoutXML(l) })
			pl.addRels(path, &b.layoutRels[layoutNum-1])
		}
		pl.add(fmt.Sprintf("ppt/theme/theme%d.xml", mi+1), ctTheme, func() ([]byte, error) { return themeXML(m.Theme) })
	}
	if b.hasNotes() {
		const path = "ppt/notesMasters/notesMaster1.xml"
		pl.add(path, ctNotesMaster, ec.notesMasterXML)
		pl.addRels(path, b.notesMaster)
		theme := ec.pack.NotesMaster.Theme
		if theme == nil {
			theme = ec.pack.Masters[0].Theme
		}
		pl.add(fmt.Sprintf("ppt/theme/theme%d.xml", len(ec.pack.Masters)+1), ctTheme,
			func() ([]byte, error) { return themeXML(theme) })
	}

	for _, sb := range b.slides {
		path := fmt.Sprintf("ppt/slides/slide%d.xml", sb.number)
		pl.add(path, ctSlide, func() ([]byte, error) { return ec.slideXML(sb) })
		pl.addRels(path, &sb.rels)
		if sb.notes != nil {
			path := fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", sb.number)
			pl.add(path, ctNotesSlide, func() ([]byte, error) { return ec.notesSlideXML(sb) })
			pl.addRels(path, &sb.notes.rels)
		}
	}

	for _, m := range b.media {
		pl.types.addDefault(m.info.Extension, m.info.MIME)
		pl.jobs = append(pl.jobs, static(m.path, m.data))
	}

	for _, c := range b.charts {
		path := fmt.Sprintf("ppt/charts/chart%d.xml", c.index)
		pl.add(path, ctChart, func() ([]byte, error) { return ec.chartXML(c) })
		if c.rels.len() > 0 {
			pl.addRels(path, &c.rels)
		}
		if c.workbookPath != "" {
			pl.types.addDefault("xlsx", ctXlsx)
			pl.jobs = append(pl.jobs, partJob{path: c.workbookPath, render: func() ([]byte, error) { return ec.workbook(c) }})
		}
	}

	for _, j := range pl.jobs {
		pl.types.require(j.path)
	}
	return append([]partJob{{path: "[Content_Types].xml", render: pl.types.render}}, pl.jobs...)
}

// workbook encodes the embedded spreadsheet of a chart.
func (ec *exportContext) workbook(c *chartEntry) ([]byte, error) {
	data, err := ec.encoder.Encode(c.snapshot)
	if err != nil {
		return nil, fmt.Errorf("chart %d: %w: %v", c.index, ErrMissingSpreadsheet, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("chart %d: %w", c.index, ErrMissingSpreadsheet)
	}
	return data, nil
}
