package gopresentation

import (
	"fmt"
	"strings"
)

// odfStyleName encodes a display name the way office suites do for
// style:name, which must be an NCName.
func odfStyleName(display string) string {
	var sb strings.Builder
	for i, r := range display {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			sb.WriteRune(r)
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "_%x_", r)
		}
	}
	if sb.Len() == 0 {
		return "Default"
	}
	return sb.String()
}

// odpMasterName returns the master page style name of pack master mi.
func (ec *exportContext) odpMasterName(mi int) string {
	return odfStyleName(ec.pack.Masters[mi].Name)
}

func (ec *exportContext) odpStylesXML() ([]byte, error) {
	cx, cy := ec.slideSize()
	orientation := "landscape"
	if cy > cx {
		orientation = "portrait"
	}
	lang, country := languageParts(ec.lang)
	theme := ec.pack.Masters[0].Theme
	minor := theme.MinorFont
	if minor == "" {
		minor = "Calibri"
	}
	major := theme.MajorFont
	if major == "" {
		major = minor
	}

	var masters strings.Builder
	for mi, m := range ec.pack.Masters {
		fmt.Fprintf(&masters, "    <style:master-page style:name=\"%s\" style:display-name=\"%s\" style:page-layout-name=\"PM1\" draw:style-name=\"Mdp1\"/>\n",
			ec.odpMasterName(mi), xmlEscape(m.Name))
	}

	content := fmt.Sprintf(xmlDecl+`<office:document-styles %s office:version="%s">
  <office:font-face-decls>
    <style:font-face style:name="%s" svg:font-family="%s"/>
    <style:font-face style:name="%s" svg:font-family="%s"/>
  </office:font-face-decls>
  <office:styles>
    <style:default-style style:family="graphic">
      <style:graphic-properties draw:fill-color="#4472C4" svg:stroke-color="#2F528F"/>
      <style:text-properties style:font-name="%s" fo:font-size="18pt" fo:language="%s" fo:country="%s"/>
    </style:default-style>
    <style:style style:name="title" style:family="presentation">
      <style:text-properties style:font-name="%s" fo:font-size="44pt"/>
    </style:style>
  </office:styles>
  <office:automatic-styles>
    <style:page-layout style:name="PM1">
      <style:page-layout-properties fo:margin-top="0cm" fo:margin-bottom="0cm" fo:margin-left="0cm" fo:margin-right="0cm" fo:page-width="%s" fo:page-height="%s" style:print-orientation="%s"/>
    </style:page-layout>
    <style:style style:name="Mdp1" style:family="drawing-page">
      <style:drawing-page-properties draw:background-size="border" draw:fill="none"/>
    </style:style>
  </office:automatic-styles>
  <office:master-styles>
%s  </office:master-styles>
</office:document-styles>`, odfNamespaces, odfVersion,
		xmlEscape(minor), xmlEscape(minor), xmlEscape(major), xmlEscape(major),
		xmlEscape(minor), lang, country,
		xmlEscape(major),
		odfLength(cx), odfLength(cy), orientation,
		masters.String())
	return []byte(content), nil
}

// odpChartStylesXML is the styles.xml of an embedded chart object. Chart
// formatting lives in the object's automatic styles.
func (ec *exportContext) odpChartStylesXML() ([]byte, error) {
	content := fmt.Sprintf(xmlDecl+`<office:document-styles %s office:version="%s">
  <office:styles/>
</office:document-styles>`, odfNamespaces, odfVersion)
	return []byte(content), nil
}

// odfStyles accumulates the automatic styles of one content.xml. Identical
// property sets share a style name.
type odfStyles struct {
	prefix  map[string]string // family -> name prefix
	byKey   map[string]string
	counter map[string]int
	out     strings.Builder
}

func newODFStyles() *odfStyles {
	return &odfStyles{
		prefix: map[string]string{
			"graphic":      "gr",
			"paragraph":    "P",
			"text":         "T",
			"drawing-page": "dp",
			"table-cell":   "ce",
			"chart":        "ch",
		},
		byKey:   make(map[string]string),
		counter: make(map[string]int),
	}
}

// name returns the style name for family with the given property elements,
// declaring the style on first use.
func (s *odfStyles) name(family, props string) string {
	key := family + "\x00" + props
	if n, ok := s.byKey[key]; ok {
		return n
	}
	s.counter[family]++
	n := fmt.Sprintf("%s%d", s.prefix[family], s.counter[family])
	s.byKey[key] = n
	fmt.Fprintf(&s.out, "    <style:style style:name=\"%s\" style:family=\"%s\">%s</style:style>\n", n, family, props)
	return n
}

func (s *odfStyles) String() string { return s.out.String() }

// odfGraphicProps returns the style:graphic-properties of a shape frame.
func odfGraphicProps(fill *Fill, border *Border, shadow *Shadow, extra string) string {
	var sb strings.Builder
	sb.WriteString("<style:graphic-properties")
	sb.WriteString(odfFillAttrs(fill))
	if border == nil || border.Style == "" || border.Style == BorderNone {
		sb.WriteString(` draw:stroke="none"`)
	} else {
		stroke := "solid"
		if border.Style == BorderDash || border.Style == BorderDot {
			stroke = "dash"
		}
		fmt.Fprintf(&sb, ` draw:stroke="%s" svg:stroke-color="%s" svg:stroke-width="%s"`,
			stroke, odfColor(border.Color), odfLength(int64(border.Width)))
	}
	if shadow != nil && shadow.Visible {
		fmt.Fprintf(&sb, ` draw:shadow="visible" draw:shadow-color="%s"`, odfColor(shadow.Color))
	}
	sb.WriteString(extra)
	sb.WriteString("/>")
	return sb.String()
}

// odfFillAttrs returns the draw:fill attributes of a fill. Gradients keep
// their start colour.
func odfFillAttrs(f *Fill) string {
	if f == nil || f.Type == FillNone {
		return ` draw:fill="none"`
	}
	return fmt.Sprintf(` draw:fill="solid" draw:fill-color="%s"`, odfColor(f.Color))
}
