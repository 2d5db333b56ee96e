package gopresentation

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"go.followtheprocess.codes/test"
)

func TestCustomProperties(t *testing.T) {
	props := NewDocumentProperties()
	when := time.Date(2025, 3, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600))

	test.Ok(t, props.SetCustomProperty("Project", "Apollo"))
	test.Ok(t, props.SetCustomProperty("Approved", true))
	test.Ok(t, props.SetCustomProperty("Budget", 1250000))
	test.Ok(t, props.SetCustomProperty("Ratio", 0.25))
	test.Ok(t, props.SetCustomProperty("Due", when))

	var names []string
	for _, cp := range props.CustomProperties() {
		names = append(names, cp.Name)
	}
	test.Equal(t, strings.Join(names, ","), "Approved,Budget,Due,Project,Ratio")

	budget, ok := props.CustomProperty("Budget")
	test.True(t, ok)
	test.Equal(t, budget.Type, PropertyTypeInteger)
	test.Equal(t, budget.Value.(int64), int64(1250000))

	due, _ := props.CustomProperty("Due")
	test.Equal(t, due.Value.(time.Time).Hour(), 8, test.Context("dates are stored in UTC"))

	props.RemoveCustomProperty("Ratio")
	_, ok = props.CustomProperty("Ratio")
	test.True(t, !ok)

	for _, bad := range []struct {
		name  string
		value any
	}{
		{name: "", value: "x"},
		{name: "Nested", value: []string{"a"}},
		{name: "Inf", value: math.Inf(1)},
	} {
		err := props.SetCustomProperty(bad.name, bad.value)
		test.True(t, errors.Is(err, ErrInvalidProperty), test.Context("%q: got %v", bad.name, err))
	}
}

func TestCustomPropertiesPart(t *testing.T) {
	p := New()
	props := p.GetDocumentProperties()
	test.Ok(t, props.SetCustomProperty("Client", "ACME & Sons"))
	test.Ok(t, props.SetCustomProperty("Seats", 42))
	test.Ok(t, props.SetCustomProperty("Big", int64(1)<<40))
	test.Ok(t, props.SetCustomProperty("Score", 9.5))
	test.Ok(t, props.SetCustomProperty("Signed", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)))
	p.GetPresentationProperties().Final = true

	a := export(t, p, WriterPowerPoint2007)
	checkContentTypes(t, a)
	checkReferentialIntegrity(t, a)
	checkWellFormed(t, a)

	test.True(t, strings.Contains(a.text("_rels/.rels"), `Target="docProps/custom.xml"`))
	custom := a.text("docProps/custom.xml")
	for _, want := range []string{
		`pid="2" name="Big"><vt:i8>1099511627776</vt:i8>`,
		`name="Client"><vt:lpwstr>ACME &amp; Sons</vt:lpwstr>`,
		`name="Score"><vt:r8>9.5</vt:r8>`,
		`name="Seats"><vt:i4>42</vt:i4>`,
		`name="Signed"><vt:filetime>2025-01-02T03:04:05Z</vt:filetime>`,
		`pid="7" name="_MarkAsFinal"><vt:bool>true</vt:bool>`,
	} {
		test.True(t, strings.Contains(custom, want), test.Context("custom.xml lacks %s", want))
	}

	odp := export(t, p, WriterODPresentation)
	meta := odp.text("meta.xml")
	test.True(t, strings.Contains(meta, `meta:name="Seats" meta:value-type="float">42<`))
	test.True(t, strings.Contains(meta, `meta:name="Signed" meta:value-type="date">2025-01-02T03:04:05Z<`))
	test.True(t, !strings.Contains(meta, markAsFinal))
	test.True(t, strings.Contains(odp.text("settings.xml"), `"LoadReadonly" config:type="boolean">true<`))
}

func TestNoCustomPropertiesPart(t *testing.T) {
	a := export(t, New(), WriterPowerPoint2007)
	test.True(t, !a.has("docProps/custom.xml"))
	test.True(t, !strings.Contains(a.text("_rels/.rels"), "custom-properties"))
}

func TestViewProperties(t *testing.T) {
	p := New()
	pp := p.GetPresentationProperties()
	pp.Zoom = 9
	pp.LastView = ViewNotes
	pp.Slideshow = SlideshowTypeKiosk
	pp.ShowComments = true

	a := export(t, p, WriterPowerPoint2007)
	view := a.text("ppt/viewProps.xml")
	test.True(t, strings.Contains(view, `lastView="notesView" showComments="1"`))
	test.True(t, strings.Contains(view, `<a:sx n="400" d="100"/>`), test.Context("zoom is clamped"))
	test.True(t, strings.Contains(a.text("ppt/presProps.xml"), "<p:kiosk/>"))
}

func TestParseViewSettings(t *testing.T) {
	v, err := ParseViewType("sldSorterView")
	test.Ok(t, err)
	test.Equal(t, v, ViewSlideSorter)
	test.Equal(t, ViewType(99).String(), "sldView")
	_, err = ParseViewType("galleryView")
	test.Err(t, err)

	s, err := ParseSlideshowType("browse")
	test.Ok(t, err)
	test.Equal(t, s, SlideshowTypeBrowse)
	test.Equal(t, s.String(), "browse")
	_, err = ParseSlideshowType("loop")
	test.Err(t, err)
}

func TestZoomPercent(t *testing.T) {
	tests := []struct {
		zoom float64
		want int
	}{
		{zoom: 0, want: 100},
		{zoom: 0.01, want: 10},
		{zoom: 0.5, want: 50},
		{zoom: 1.5, want: 150},
		{zoom: 12, want: 400},
		{zoom: math.NaN(), want: 100},
	}
	for _, tt := range tests {
		pp := &PresentationProperties{Zoom: tt.zoom}
		test.Equal(t, pp.zoomPercent(), tt.want, test.Context("zoom %v", tt.zoom))
	}
}

func TestSlideSizes(t *testing.T) {
	test.True(t, IsKnownLayout(LayoutLetter))
	test.True(t, !IsKnownLayout(LayoutCustom))

	p := New()
	p.GetLayout().SetLayout(LayoutScreen16x10)
	a := export(t, p, WriterPowerPoint2007)
	test.True(t, strings.Contains(a.text("ppt/presentation.xml"), `cx="10972800" cy="6858000" type="screen16x10"`))
	test.True(t, strings.Contains(a.text("docProps/app.xml"), "On-screen Show (16:10)"))

	p.GetLayout().SetCustomLayout(Inch(13.333), Inch(7.5))
	a = export(t, p, WriterPowerPoint2007)
	test.True(t, strings.Contains(a.text("ppt/presentation.xml"), `type="custom"`))
	test.True(t, strings.Contains(a.text("docProps/app.xml"), "<PresentationFormat>Custom</PresentationFormat>"))
}
