package gopresentation

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// XML namespace constants
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsChartML        = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsTableML        = "http://schemas.openxmlformats.org/drawingml/2006/table"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsCustomProps    = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	nsDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeCustomProps = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHyperlink   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeChart       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	relTypePackage     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/package"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctCustomProps  = "application/vnd.openxmlformats-officedocument.custom-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML          = "application/xml"
	ctChart        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster  = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	ctXlsx         = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// marshalXML encodes v with the XML header, indented like the hand-written
// templates.
func marshalXML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode: %w", err)
	}
	return buf.Bytes(), nil
}

// --- Relationships ---

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// renderRels writes a .rels part from a frozen relationship scope.
func renderRels(rs *relationshipSet) ([]byte, error) {
	out := xmlRelationships{Xmlns: nsRelationships}
	for _, r := range rs.all() {
		x := xmlRelationship{ID: r.ID, Type: r.Type, Target: r.Target}
		if r.External {
			x.TargetMode = "External"
		}
		out.Relationships = append(out.Relationships, x)
	}
	return marshalXML(out)
}

func relsJob(path string, rs *relationshipSet) partJob {
	return partJob{path: path, render: func() ([]byte, error) { return renderRels(rs) }}
}

// relsPath returns the .rels part that belongs to a package part.
func relsPath(part string) string {
	dir, file := "", part
	if i := strings.LastIndex(part, "/"); i >= 0 {
		dir, file = part[:i+1], part[i+1:]
	}
	return dir + "_rels/" + file + ".rels"
}

// --- App Properties ---

func (ec *exportContext) appProps() ([]byte, error) {
	props := ec.props()
	notes := 0
	hidden := 0
	for _, sb := range ec.b.slides {
		if sb.notes != nil {
			notes++
		}
		if sb.slide.hidden {
			hidden++
		}
	}
	content := fmt.Sprintf(xmlDecl+`<Properties xmlns="%s" xmlns:vt="%s">
  <Application>GoDeck</Application>
  <PresentationFormat>%s</PresentationFormat>
  <Slides>%d</Slides>
  <Notes>%d</Notes>
  <HiddenSlides>%d</HiddenSlides>
  <Company>%s</Company>
  <AppVersion>%d.%04d</AppVersion>
</Properties>`, nsExtProperties, nsDocPropsVTypes, xmlEscape(ec.p.layout.size().format), len(ec.b.slides), notes, hidden,
		xmlEscape(props.Company), VersionMajor, VersionMinor)
	return []byte(content), nil
}

// --- Core Properties ---

func (ec *exportContext) coreProps() ([]byte, error) {
	props := ec.props()
	content := fmt.Sprintf(xmlDecl+`<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:identifier>%s</dc:identifier>
  <dc:language>%s</dc:language>
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <dc:title>%s</dc:title>
  <dc:description>%s</dc:description>
  <dc:subject>%s</dc:subject>
  <cp:keywords>%s</cp:keywords>
  <cp:category>%s</cp:category>
  <cp:contentStatus>%s</cp:contentStatus>
  <cp:revision>%s</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(ec.b.identifier),
		xmlEscape(ec.lang.String()),
		xmlEscape(props.Creator),
		xmlEscape(props.LastModifiedBy),
		xmlEscape(props.Title),
		xmlEscape(props.Description),
		xmlEscape(props.Subject),
		xmlEscape(props.Keywords),
		xmlEscape(props.Category),
		xmlEscape(props.Status),
		xmlEscape(props.Revision),
		w3cdtf(props.Created),
		w3cdtf(props.Modified),
	)
	return []byte(content), nil
}

// --- Custom Properties ---

// fmtidUserDefined is the property set id of user defined properties.
const fmtidUserDefined = "{D5CDD505-2E9C-101B-9397-08002B2CF9AE}"

func (ec *exportContext) customProps() ([]byte, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, xmlDecl+"<Properties xmlns=\"%s\" xmlns:vt=\"%s\">\n", nsCustomProps, nsDocPropsVTypes)
	// pid 0 and 1 are reserved.
	for i, cp := range ec.b.custom {
		fmt.Fprintf(&sb, "  <property fmtid=\"%s\" pid=\"%d\" name=\"%s\">%s</property>\n",
			fmtidUserDefined, i+2, xmlEscape(cp.Name), vtValue(cp))
	}
	sb.WriteString("</Properties>")
	return []byte(sb.String()), nil
}

// vtValue renders a custom property value as a docPropsVTypes element.
func vtValue(cp CustomProperty) string {
	switch v := cp.Value.(type) {
	case bool:
		return fmt.Sprintf("<vt:bool>%t</vt:bool>", v)
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return fmt.Sprintf("<vt:i4>%d</vt:i4>", v)
		}
		return fmt.Sprintf("<vt:i8>%d</vt:i8>", v)
	case float64:
		return "<vt:r8>" + strconv.FormatFloat(v, 'g', -1, 64) + "</vt:r8>"
	case time.Time:
		return "<vt:filetime>" + w3cdtf(v) + "</vt:filetime>"
	}
	return "<vt:lpwstr>" + xmlEscape(fmt.Sprint(cp.Value)) + "</vt:lpwstr>"
}

// xmlEscape escapes special XML characters using the standard library.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

// colorRGB safely extracts the 6-character RGB portion from an 8-character ARGB string.
// Returns "000000" if the input is invalid.
func colorRGB(c Color) string {
	if len(c.ARGB) >= 8 {
		return c.ARGB[2:]
	}
	if len(c.ARGB) == 6 {
		return c.ARGB
	}
	return "000000"
}

// xmlAttrs collects attributes as ` name="value"` in the order they are
// added. Values are formatted with %v and must already be escaped.
type xmlAttrs struct {
	sb strings.Builder
}

func (a *xmlAttrs) add(name string, v any) *xmlAttrs {
	fmt.Fprintf(&a.sb, ` %s="%v"`, name, v)
	return a
}

// when adds the attribute only if cond holds.
func (a *xmlAttrs) when(cond bool, name string, v any) *xmlAttrs {
	if cond {
		a.add(name, v)
	}
	return a
}

func (a *xmlAttrs) String() string { return a.sb.String() }

func boolToXML(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
