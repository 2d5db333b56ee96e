package gopresentation

import "fmt"

// LayoutPack is the set of slide masters, layouts and themes copied into
// every exported package. It is supplied whole and only read during export,
// so one pack may be shared by many presentations.
//
// Master and layout templates carry the inner XML of their p:cSld element;
// the writer adds the surrounding part, the layout id lists and the
// relationships, which are numbered at export time.
type LayoutPack struct {
	Name        string
	Masters     []*MasterTemplate
	NotesMaster *NotesMasterTemplate
	// DefaultLayout is used for slides without a layout name.
	DefaultLayout string
}

// MasterTemplate is one slide master with its layouts and theme.
type MasterTemplate struct {
	Name       string
	Theme      *ThemeTemplate
	CommonData string // inner XML of p:cSld
	TextStyles string // p:txStyles element, may be empty
	Layouts    []*LayoutTemplate
}

// LayoutTemplate is one slide layout.
type LayoutTemplate struct {
	Name       string
	Type       string // ST_SlideLayoutType, e.g. "title", "obj", "blank"
	CommonData string // inner XML of p:cSld
}

// ThemeTemplate is a complete a:theme part.
type ThemeTemplate struct {
	Name string
	XML  string
	// ODP font and colour defaults written to styles.xml.
	MajorFont string
	MinorFont string
}

// NotesMasterTemplate is the notes master used by every notes slide.
type NotesMasterTemplate struct {
	Theme      *ThemeTemplate
	CommonData string
}

// layoutRef locates a layout inside a pack. Indexes are 0-based; layout is
// the package-wide layout index (slideLayout{layout+1}.xml).
type layoutRef struct {
	master int
	layout int
	tmpl   *LayoutTemplate
}

// resolve finds a layout by name. An empty name selects DefaultLayout.
func (lp *LayoutPack) resolve(name string) (layoutRef, error) {
	if name == "" {
		name = lp.DefaultLayout
	}
	n := 0
	for mi, m := range lp.Masters {
		for _, l := range m.Layouts {
			if l.Name == name {
				return layoutRef{master: mi, layout: n, tmpl: l}, nil
			}
			n++
		}
	}
	return layoutRef{}, fmt.Errorf("%w: %q in pack %q", ErrLayoutNotFound, name, lp.Name)
}

// LayoutNames returns every layout name in package order.
func (lp *LayoutPack) LayoutNames() []string {
	var names []string
	for _, m := range lp.Masters {
		for _, l := range m.Layouts {
			names = append(names, l.Name)
		}
	}
	return names
}

// layoutCount returns the number of layouts across all masters.
func (lp *LayoutPack) layoutCount() int {
	n := 0
	for _, m := range lp.Masters {
		n += len(m.Layouts)
	}
	return n
}

// check reports structural problems that make the pack unusable.
func (lp *LayoutPack) check() error {
	if lp == nil {
		return fmt.Errorf("%w: no layout pack", ErrInvalidPresentation)
	}
	if len(lp.Masters) == 0 {
		return fmt.Errorf("%w: layout pack %q has no slide master", ErrInvalidPresentation, lp.Name)
	}
	seen := make(map[string]bool)
	for i, m := range lp.Masters {
		if m == nil || m.Theme == nil {
			return fmt.Errorf("%w: layout pack %q master %d has no theme", ErrInvalidPresentation, lp.Name, i+1)
		}
		if len(m.Layouts) == 0 {
			return fmt.Errorf("%w: layout pack %q master %q has no layouts", ErrInvalidPresentation, lp.Name, m.Name)
		}
		for _, l := range m.Layouts {
			if seen[l.Name] {
				return fmt.Errorf("%w: layout pack %q repeats layout %q", ErrInvalidPresentation, lp.Name, l.Name)
			}
			seen[l.Name] = true
		}
	}
	return nil
}
