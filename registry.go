package gopresentation

import (
	"strconv"

	"golang.org/x/text/language"
)

// relationship is one entry of a .rels part.
type relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// relationshipSet is the id scope of one .rels part. Ids are handed out in
// allocation order starting at rId1 and never reused.
type relationshipSet struct {
	rels []relationship
}

// allocate appends a relationship and returns its id.
func (rs *relationshipSet) allocate(relType, target string, external bool) string {
	id := "rId" + strconv.Itoa(len(rs.rels)+1)
	rs.rels = append(rs.rels, relationship{ID: id, Type: relType, Target: target, External: external})
	return id
}

func (rs *relationshipSet) all() []relationship { return rs.rels }

func (rs *relationshipSet) len() int { return len(rs.rels) }

// partBinding holds the ids a slide or notes slide refers to. The model is
// never written to; every id lives here keyed by the model object.
type partBinding struct {
	rels relationshipSet
	// shapeRel is the picture or chart relationship of a shape.
	shapeRel map[Shape]string
	// shapeLink is the click hyperlink of a shape.
	shapeLink map[Shape]string
	// runLink is the hyperlink of a text run.
	runLink map[*TextRun]string
}

func newPartBinding() partBinding {
	return partBinding{
		shapeRel:  make(map[Shape]string),
		shapeLink: make(map[Shape]string),
		runLink:   make(map[*TextRun]string),
	}
}

// slideBinding is everything frozen for one slide.
type slideBinding struct {
	partBinding
	number        int // 1-based
	slide         *Slide
	layout        layoutRef
	layoutRel     string
	backgroundRel string
	notesRel      string
	notes         *notesBinding
}

// notesBinding is everything frozen for one notes slide.
type notesBinding struct {
	partBinding
	masterRel string
	slideRel  string
}

// mediaEntry is one picture file in the package.
type mediaEntry struct {
	index int // 1-based, in first-seen order
	path  string
	data  []byte
	info  ImageInfo
}

// chartEntry is one chart part and its optional embedded workbook.
type chartEntry struct {
	index        int // 1-based
	shape        *ChartShape
	plot         chartPlot
	series       []*ChartSeries
	snapshot     *ChartSnapshot
	rels         relationshipSet
	workbookRel  string
	workbookPath string
}

// masterBinding holds the relationship scope of one slide master.
type masterBinding struct {
	rels       relationshipSet
	layoutRels []string // per layout of the master, in template order
	themeRel   string
	firstID    uint32 // p:sldMasterId id; its layouts follow
}

// Bindings is the frozen result of Prepare: every relationship id, media
// file name, chart index and layout resolution an export needs. It is
// immutable after Prepare returns and only valid for the presentation and
// format it was prepared for.
type Bindings struct {
	presentation *Presentation
	format       WriterType
	cfg          *config
	pack         *LayoutPack
	lang         language.Tag
	identifier   string
	custom       []CustomProperty // docProps/custom.xml entries

	root    relationshipSet
	pres    relationshipSet
	masters []*masterBinding
	// presentation scope ids
	masterRels     []string
	notesMasterRel string
	slideRels      []string
	themeRel       string

	layoutRels   []relationshipSet // package-wide layout index
	notesMaster  *relationshipSet
	slides       []*slideBinding
	media        []*mediaEntry
	mediaByShape map[Shape]*mediaEntry
	charts       []*chartEntry
	chartByShape map[*ChartShape]*chartEntry
}

// Format returns the package format the bindings were prepared for.
func (b *Bindings) Format() WriterType { return b.format }

// SlideCount returns the number of bound slides.
func (b *Bindings) SlideCount() int { return len(b.slides) }

// ChartCount returns the number of chart parts.
func (b *Bindings) ChartCount() int { return len(b.charts) }

// MediaPaths returns the archive paths of all picture files in index order.
func (b *Bindings) MediaPaths() []string {
	paths := make([]string, len(b.media))
	for i, m := range b.media {
		paths[i] = m.path
	}
	return paths
}

// SlideRelationships returns the relationship ids of slide n (1-based) in
// allocation order, or nil if n is out of range.
func (b *Bindings) SlideRelationships(n int) []string {
	if n < 1 || n > len(b.slides) {
		return nil
	}
	rels := b.slides[n-1].rels.all()
	ids := make([]string, len(rels))
	for i, r := range rels {
		ids[i] = r.ID
	}
	return ids
}

// hasNotes reports whether any slide has a notes page.
func (b *Bindings) hasNotes() bool { return b.notesMaster != nil }

// hasWorkbooks reports whether any chart embeds a workbook.
func (b *Bindings) hasWorkbooks() bool {
	for _, c := range b.charts {
		if c.workbookPath != "" {
			return true
		}
	}
	return false
}
