package gopresentation

import (
	"fmt"
	"strings"
	"time"
)

// OpenDocument namespaces.
const (
	nsOffice       = "urn:oasis:names:tc:opendocument:xmlns:office:1.0"
	nsStyle        = "urn:oasis:names:tc:opendocument:xmlns:style:1.0"
	nsText         = "urn:oasis:names:tc:opendocument:xmlns:text:1.0"
	nsTable        = "urn:oasis:names:tc:opendocument:xmlns:table:1.0"
	nsDraw         = "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
	nsFO           = "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0"
	nsXLink        = "http://www.w3.org/1999/xlink"
	nsMeta         = "urn:oasis:names:tc:opendocument:xmlns:meta:1.0"
	nsPresentation = "urn:oasis:names:tc:opendocument:xmlns:presentation:1.0"
	nsSVG          = "urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"
	nsChart        = "urn:oasis:names:tc:opendocument:xmlns:chart:1.0"
	nsScript       = "urn:oasis:names:tc:opendocument:xmlns:script:1.0"
	nsConfig       = "urn:oasis:names:tc:opendocument:xmlns:config:1.0"
	nsOOo          = "http://openoffice.org/2004/office"
	nsManifest     = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"

	odfVersion = "1.2"
)

// odfNamespaces is the xmlns attribute list shared by content.xml and
// styles.xml of both the presentation and its chart objects.
var odfNamespaces = strings.Join([]string{
	`xmlns:office="` + nsOffice + `"`,
	`xmlns:style="` + nsStyle + `"`,
	`xmlns:text="` + nsText + `"`,
	`xmlns:table="` + nsTable + `"`,
	`xmlns:draw="` + nsDraw + `"`,
	`xmlns:fo="` + nsFO + `"`,
	`xmlns:xlink="` + nsXLink + `"`,
	`xmlns:dc="` + nsDC + `"`,
	`xmlns:meta="` + nsMeta + `"`,
	`xmlns:presentation="` + nsPresentation + `"`,
	`xmlns:svg="` + nsSVG + `"`,
	`xmlns:chart="` + nsChart + `"`,
	`xmlns:script="` + nsScript + `"`,
}, " ")

// odpJobs lists every part of an OpenDocument presentation. The mimetype
// entry is first and stored, as ODF consumers sniff it at a fixed offset.
// The manifest is rendered last from the entries the other parts declared.
func (ec *exportContext) odpJobs() []partJob {
	b := ec.b
	mf := newManifest()
	jobs := []partJob{{path: "mimetype", store: true, render: func() ([]byte, error) { return []byte(mimeODP), nil }}}

	add := func(path, mediaType string, render func() ([]byte, error)) {
		mf.add(path, mediaType)
		jobs = append(jobs, partJob{path: path, render: render})
	}
	add("content.xml", mimeXML, ec.odpContentXML)
	add("styles.xml", mimeXML, ec.odpStylesXML)
	add("meta.xml", mimeXML, ec.odpMetaXML)
	add("settings.xml", mimeXML, ec.odpSettingsXML)

	for _, m := range b.media {
		add(m.path, m.info.MIME, static(m.path, m.data).render)
	}
	for _, c := range b.charts {
		dir := odpObjectDir(c)
		mf.add(dir+"/", mimeChart)
		add(dir+"/content.xml", mimeXML, func() ([]byte, error) { return ec.odpChartXML(c) })
		add(dir+"/styles.xml", mimeXML, ec.odpChartStylesXML)
	}

	for _, j := range jobs {
		mf.require(j.path)
	}
	return append(jobs, partJob{path: "META-INF/manifest.xml", render: mf.render})
}

// odpObjectDir is the package directory of an embedded chart object.
func odpObjectDir(c *chartEntry) string {
	return fmt.Sprintf("Object %d", c.index)
}

// odpPageName is the draw:name of slide n, also the target of links to it.
func odpPageName(p *Presentation, n int) string {
	if n >= 1 && n <= len(p.slides) && p.slides[n-1] != nil && p.slides[n-1].name != "" {
		return p.slides[n-1].name
	}
	return fmt.Sprintf("page%d", n)
}

// odpHref returns the xlink:href of a hyperlink.
func (ec *exportContext) odpHref(h *Hyperlink) string {
	if h.IsInternal {
		return "#" + odpPageName(ec.p, h.SlideNumber)
	}
	return h.URL
}

func (ec *exportContext) odpMetaXML() ([]byte, error) {
	props := ec.props()
	var sb strings.Builder
	fmt.Fprintf(&sb, "    <meta:generator>GoDeck/%s</meta:generator>\n", Version)
	element := func(tag, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "    <%s>%s</%s>\n", tag, xmlEscape(value), tag)
		}
	}
	element("dc:title", props.Title)
	element("dc:description", props.Description)
	element("dc:subject", props.Subject)
	for _, kw := range strings.Split(props.Keywords, ",") {
		element("meta:keyword", strings.TrimSpace(kw))
	}
	element("meta:initial-creator", props.Creator)
	element("dc:creator", props.LastModifiedBy)
	if !props.Created.IsZero() {
		element("meta:creation-date", w3cdtf(props.Created))
	}
	if !props.Modified.IsZero() {
		element("dc:date", w3cdtf(props.Modified))
	}
	element("dc:language", ec.lang.String())
	if props.Revision != "" {
		element("meta:editing-cycles", props.Revision)
	}
	fmt.Fprintf(&sb, "    <meta:document-statistic meta:object-count=\"%d\" meta:image-count=\"%d\"/>\n",
		len(ec.b.charts), len(ec.b.media))

	userDefined := func(name, valueType, value string) {
		typ := ""
		if valueType != "" {
			typ = fmt.Sprintf(` meta:value-type="%s"`, valueType)
		}
		fmt.Fprintf(&sb, "    <meta:user-defined meta:name=\"%s\"%s>%s</meta:user-defined>\n",
			xmlEscape(name), typ, xmlEscape(value))
	}
	if ec.b.identifier != "" {
		userDefined("Identifier", "", ec.b.identifier)
	}
	if props.Category != "" {
		userDefined("Category", "", props.Category)
	}
	if props.Company != "" {
		userDefined("Company", "", props.Company)
	}
	if props.Status != "" {
		userDefined("Status", "", props.Status)
	}
	for _, cp := range props.CustomProperties() {
		valueType, value := odfUserValue(cp)
		userDefined(cp.Name, valueType, value)
	}

	content := fmt.Sprintf(xmlDecl+`<office:document-meta xmlns:office="%s" xmlns:meta="%s" xmlns:dc="%s" xmlns:xlink="%s" office:version="%s">
  <office:meta>
%s  </office:meta>
</office:document-meta>`, nsOffice, nsMeta, nsDC, nsXLink, odfVersion, sb.String())
	return []byte(content), nil
}

// odfUserValue maps a custom property to a meta:value-type and its text.
func odfUserValue(cp CustomProperty) (string, string) {
	switch cp.Type {
	case PropertyTypeBoolean:
		return "boolean", fmt.Sprint(cp.Value)
	case PropertyTypeInteger, PropertyTypeFloat:
		return "float", fmt.Sprint(cp.Value)
	case PropertyTypeDate:
		return "date", w3cdtf(cp.Value.(time.Time))
	default:
		return "string", fmt.Sprint(cp.Value)
	}
}

func (ec *exportContext) odpSettingsXML() ([]byte, error) {
	cx, cy := ec.slideSize()
	pp := ec.p.settings
	if pp == nil {
		pp = NewPresentationProperties()
	}
	content := fmt.Sprintf(xmlDecl+`<office:document-settings xmlns:office="%s" xmlns:config="%s" xmlns:ooo="%s" office:version="%s">
  <office:settings>
    <config:config-item-set config:name="ooo:view-settings">
      <config:config-item config:name="VisibleAreaTop" config:type="int">0</config:config-item>
      <config:config-item config:name="VisibleAreaLeft" config:type="int">0</config:config-item>
      <config:config-item config:name="VisibleAreaWidth" config:type="int">%d</config:config-item>
      <config:config-item config:name="VisibleAreaHeight" config:type="int">%d</config:config-item>
      <config:config-item-map-indexed config:name="Views">
        <config:config-item-map-entry>
          <config:config-item config:name="ViewId" config:type="string">view1</config:config-item>
          <config:config-item config:name="ZoomOnPage" config:type="boolean">%s</config:config-item>
        </config:config-item-map-entry>
      </config:config-item-map-indexed>
    </config:config-item-set>
    <config:config-item-set config:name="ooo:configuration-settings">
      <config:config-item config:name="LoadReadonly" config:type="boolean">%s</config:config-item>
    </config:config-item-set>
  </office:settings>
</office:document-settings>`, nsOffice, nsConfig, nsOOo, odfVersion,
		emuToHundredthMM(cx), emuToHundredthMM(cy),
		boolText(pp.zoomPercent() == 100), boolText(pp.Final))
	return []byte(content), nil
}

func boolText(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// odfColor formats a colour as #RRGGBB.
func odfColor(c Color) string { return "#" + colorRGB(c) }
