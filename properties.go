package gopresentation

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// DocumentProperties are the core, extended and custom properties of a
// document: docProps/*.xml in a PPTX package, meta.xml in an ODP one.
type DocumentProperties struct {
	Creator        string
	LastModifiedBy string
	Created        time.Time
	Modified       time.Time
	Title          string
	Description    string
	Subject        string
	Keywords       string
	Category       string
	Company        string
	Status         string
	Revision       string
	// Language is a BCP 47 tag such as "en-US". Empty means "en-US".
	Language string
	// Identifier overrides the generated dc:identifier.
	Identifier string

	custom map[string]CustomProperty
}

// NewDocumentProperties returns properties stamped with the current time.
// Callers that need reproducible archives set Created and Modified.
func NewDocumentProperties() *DocumentProperties {
	now := time.Now().UTC().Truncate(time.Second)
	return &DocumentProperties{
		Creator:        "GoDeck",
		LastModifiedBy: "GoDeck",
		Created:        now,
		Modified:       now,
	}
}

// PropertyType is the value type of a custom property.
type PropertyType int

const (
	PropertyTypeString PropertyType = iota
	PropertyTypeBoolean
	PropertyTypeInteger
	PropertyTypeFloat
	PropertyTypeDate
)

// CustomProperty is one user-defined document property. Value holds a
// string, bool, int64, float64 or time.Time matching Type.
type CustomProperty struct {
	Name  string
	Type  PropertyType
	Value any
}

// SetCustomProperty stores a custom property. The type follows the Go value:
// strings, bools, signed integers, floats and time.Time are accepted.
func (dp *DocumentProperties) SetCustomProperty(name string, value any) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidProperty)
	}
	cp := CustomProperty{Name: name}
	switch v := value.(type) {
	case string:
		cp.Type, cp.Value = PropertyTypeString, v
	case bool:
		cp.Type, cp.Value = PropertyTypeBoolean, v
	case int:
		cp.Type, cp.Value = PropertyTypeInteger, int64(v)
	case int32:
		cp.Type, cp.Value = PropertyTypeInteger, int64(v)
	case int64:
		cp.Type, cp.Value = PropertyTypeInteger, v
	case float32:
		cp.Type, cp.Value = PropertyTypeFloat, float64(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidProperty, name)
		}
		cp.Type, cp.Value = PropertyTypeFloat, v
	case time.Time:
		cp.Type, cp.Value = PropertyTypeDate, v.UTC()
	default:
		return fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidProperty, name, value)
	}
	if dp.custom == nil {
		dp.custom = make(map[string]CustomProperty)
	}
	dp.custom[name] = cp
	return nil
}

// CustomProperty returns the named custom property.
func (dp *DocumentProperties) CustomProperty(name string) (CustomProperty, bool) {
	cp, ok := dp.custom[name]
	return cp, ok
}

// RemoveCustomProperty deletes a custom property if present.
func (dp *DocumentProperties) RemoveCustomProperty(name string) { delete(dp.custom, name) }

// CustomProperties returns every custom property sorted by name, the order
// both writers emit them in.
func (dp *DocumentProperties) CustomProperties() []CustomProperty {
	out := make([]CustomProperty, 0, len(dp.custom))
	for _, cp := range dp.custom {
		out = append(out, cp)
	}
	slices.SortFunc(out, func(a, b CustomProperty) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

// PresentationProperties are viewer settings. They only affect how an
// application opens the file.
type PresentationProperties struct {
	// Zoom is the slide view scale, 1 for 100%. It is clamped to
	// 0.1 to 4 on export; 0 means 1.
	Zoom      float64
	LastView  ViewType
	Slideshow SlideshowType
	// ShowComments turns on the comment pane in PowerPoint.
	ShowComments bool
	// Final marks the document as final, which opens it read-only.
	Final bool
}

// NewPresentationProperties returns the defaults: 100% slide view,
// presenter slideshow.
func NewPresentationProperties() *PresentationProperties {
	return &PresentationProperties{Zoom: 1}
}

// zoomPercent returns the clamped zoom as a percentage.
func (pp *PresentationProperties) zoomPercent() int {
	z := pp.Zoom
	switch {
	case z == 0 || math.IsNaN(z):
		z = 1
	case z < 0.1:
		z = 0.1
	case z > 4:
		z = 4
	}
	return int(math.Round(z * 100))
}

// ViewType is the view PowerPoint opens the document in.
type ViewType int

const (
	ViewSlide ViewType = iota
	ViewNotes
	ViewHandout
	ViewOutline
	ViewSlideMaster
	ViewSlideSorter
)

var viewNames = [...]string{"sldView", "notesView", "handoutView", "outlineView", "sldMasterView", "sldSorterView"}

// String returns the PresentationML lastView value.
func (v ViewType) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return viewNames[ViewSlide]
	}
	return viewNames[v]
}

// ParseViewType parses a PresentationML lastView value such as "notesView".
func ParseViewType(s string) (ViewType, error) {
	if i := slices.Index(viewNames[:], s); i >= 0 {
		return ViewType(i), nil
	}
	return ViewSlide, fmt.Errorf("unknown view %q", s)
}

// SlideshowType selects how the slideshow runs.
type SlideshowType int

const (
	SlideshowTypePresent SlideshowType = iota
	SlideshowTypeBrowse
	SlideshowTypeKiosk
)

var slideshowNames = [...]string{"present", "browse", "kiosk"}

func (s SlideshowType) String() string {
	if s < 0 || int(s) >= len(slideshowNames) {
		return slideshowNames[SlideshowTypePresent]
	}
	return slideshowNames[s]
}

// ParseSlideshowType parses "present", "browse" or "kiosk".
func ParseSlideshowType(s string) (SlideshowType, error) {
	if i := slices.Index(slideshowNames[:], s); i >= 0 {
		return SlideshowType(i), nil
	}
	return SlideshowTypePresent, fmt.Errorf("unknown slideshow type %q", s)
}

// DocumentLayout is the slide size.
type DocumentLayout struct {
	CX   int64 // width in EMU
	CY   int64 // height in EMU
	Name string
}

// Named slide sizes.
const (
	LayoutScreen4x3   = "screen4x3"
	LayoutScreen16x9  = "screen16x9"
	LayoutScreen16x10 = "screen16x10"
	LayoutA4          = "A4"
	LayoutLetter      = "letter"
	LayoutCustom      = "custom"
)

type slideSize struct {
	cx, cy int64
	// sldSz type attribute and the app.xml PresentationFormat.
	ooxml, format string
}

var slideSizes = map[string]slideSize{
	LayoutScreen4x3:   {cx: 9144000, cy: 6858000, ooxml: "screen4x3", format: "On-screen Show (4:3)"},
	LayoutScreen16x9:  {cx: 12192000, cy: 6858000, ooxml: "custom", format: "On-screen Show (16:9)"},
	LayoutScreen16x10: {cx: 10972800, cy: 6858000, ooxml: "screen16x10", format: "On-screen Show (16:10)"},
	LayoutA4:          {cx: 9906000, cy: 6858000, ooxml: "A4", format: "A4 Paper (210x297 mm)"},
	LayoutLetter:      {cx: 9144000, cy: 6858000, ooxml: "letter", format: "Letter Paper (8.5x11 in)"},
}

var customSize = slideSize{ooxml: "custom", format: "Custom"}

// NewDocumentLayout returns the default 4:3 layout, 10 x 7.5 inches.
func NewDocumentLayout() *DocumentLayout {
	l := &DocumentLayout{}
	l.SetLayout(LayoutScreen4x3)
	return l
}

// IsKnownLayout reports whether name is one of the named slide sizes.
func IsKnownLayout(name string) bool {
	_, ok := slideSizes[name]
	return ok
}

// SetLayout selects a named slide size. Unknown names only change Name.
func (dl *DocumentLayout) SetLayout(name string) {
	dl.Name = name
	if s, ok := slideSizes[name]; ok {
		dl.CX, dl.CY = s.cx, s.cy
	}
}

// SetCustomLayout sets the size in EMU. Values that are not positive fall
// back to the 4:3 size.
func (dl *DocumentLayout) SetCustomLayout(cx, cy int64) {
	def := slideSizes[LayoutScreen4x3]
	if cx <= 0 {
		cx = def.cx
	}
	if cy <= 0 {
		cy = def.cy
	}
	dl.CX, dl.CY, dl.Name = cx, cy, LayoutCustom
}

func (dl *DocumentLayout) size() slideSize {
	if dl == nil {
		return customSize
	}
	if s, ok := slideSizes[dl.Name]; ok {
		return s
	}
	return customSize
}
