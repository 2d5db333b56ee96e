package gopresentation

import (
	"fmt"
	"strings"
)

// odpEmitter writes the draw:page children of one slide or notes page. It
// visits shapes in the same order as the relationship collector; pictures
// and charts are looked up in the bindings, hyperlinks are written inline.
type odpEmitter struct {
	ec     *exportContext
	styles *odfStyles
	out    strings.Builder
	indent string
}

func (ec *exportContext) odpContentXML() ([]byte, error) {
	styles := newODFStyles()
	var pages strings.Builder
	for _, sb := range ec.b.slides {
		if err := ec.odpPage(&pages, styles, sb); err != nil {
			return nil, fmt.Errorf("slide %d: %w", sb.number, err)
		}
	}
	content := fmt.Sprintf(xmlDecl+`<office:document-content %s office:version="%s">
  <office:automatic-styles>
%s  </office:automatic-styles>
  <office:body>
    <office:presentation>
%s    </office:presentation>
  </office:body>
</office:document-content>`, odfNamespaces, odfVersion, styles.String(), pages.String())
	return []byte(content), nil
}

func (ec *exportContext) odpPage(out *strings.Builder, styles *odfStyles, sb *slideBinding) error {
	e := &odpEmitter{ec: ec, styles: styles, indent: "        "}
	if sb.slide.backgroundImage != nil {
		m := ec.b.mediaByShape[sb.slide.backgroundImage]
		if m == nil {
			return fmt.Errorf("background picture was not prepared")
		}
		cx, cy := ec.slideSize()
		fmt.Fprintf(&e.out, "%s<draw:frame draw:name=\"Background\" svg:x=\"0cm\" svg:y=\"0cm\" svg:width=\"%s\" svg:height=\"%s\">%s</draw:frame>\n",
			e.indent, odfLength(cx), odfLength(cy), odfImage(m))
	}
	if err := walkShapes(sb.slide.shapes, e); err != nil {
		return err
	}

	pageProps := `<style:drawing-page-properties draw:background-size="border"` + odfFillAttrs(sb.slide.background)
	if sb.slide.hidden {
		pageProps += ` presentation:visibility="hidden"`
	}
	pageProps += "/>"
	pageStyle := styles.name("drawing-page", pageProps)

	fmt.Fprintf(out, "      <draw:page draw:name=\"%s\" draw:style-name=\"%s\" draw:master-page-name=\"%s\">\n",
		xmlEscape(odpPageName(ec.p, sb.number)), pageStyle, ec.odpMasterName(sb.layout.master))
	out.WriteString(e.out.String())
	if sb.notes != nil {
		n := &odpEmitter{ec: ec, styles: styles, indent: "          "}
		if err := walkShapes(sb.slide.note.shapes, n); err != nil {
			return fmt.Errorf("notes: %w", err)
		}
		fmt.Fprintf(out, "        <presentation:notes>\n          <draw:page-thumbnail draw:page-number=\"%d\" presentation:class=\"page\" svg:x=\"2cm\" svg:y=\"2cm\" svg:width=\"14cm\" svg:height=\"10.5cm\"/>\n%s        </presentation:notes>\n",
			sb.number, n.out.String())
	}
	out.WriteString("      </draw:page>\n")
	return nil
}

// frameAttrs returns the position, size and rotation attributes of a shape.
func frameAttrs(b *BaseShape, cx, cy int64) string {
	attrs := fmt.Sprintf(`svg:x="%s" svg:y="%s" svg:width="%s" svg:height="%s"`,
		odfLength(b.offsetX), odfLength(b.offsetY), odfLength(cx), odfLength(cy))
	if b.rotation != 0 {
		// ODF rotates counter-clockwise about the origin, so the frame is
		// moved back to its centre after the rotation.
		attrs = fmt.Sprintf(`svg:width="%s" svg:height="%s" draw:transform="rotate(%s) translate(%s %s)"`,
			odfLength(cx), odfLength(cy), odfRadians(b.rotation), odfLength(b.offsetX), odfLength(b.offsetY))
	}
	if b.name != "" {
		attrs = fmt.Sprintf(`draw:name="%s" `, xmlEscape(b.name)) + attrs
	}
	return attrs
}

func odfRadians(deg int) string {
	return fmt.Sprintf("%.6f", -float64(deg)*3.141592653589793/180)
}

// clickXML returns the office:event-listeners of a shape hyperlink.
func (e *odpEmitter) clickXML(h *Hyperlink) string {
	if h == nil {
		return ""
	}
	return fmt.Sprintf(`<office:event-listeners><presentation:event-listener script:event-name="dom:click" presentation:action="show" xlink:href="%s" xlink:type="simple"/></office:event-listeners>`,
		xmlEscape(e.ec.odpHref(h)))
}

func (e *odpEmitter) graphicStyle(b *BaseShape, extra string) string {
	return e.styles.name("graphic", odfGraphicProps(b.fill, b.border, b.shadow, extra))
}

// --- Text ---

func (e *odpEmitter) paragraphsXML(paras []*Paragraph) string {
	var sb strings.Builder
	for _, p := range paras {
		if p != nil {
			sb.WriteString(e.paragraphXML(p))
		}
	}
	return sb.String()
}

func (e *odpEmitter) paragraphXML(p *Paragraph) string {
	var props strings.Builder
	props.WriteString("<style:paragraph-properties")
	if p.alignment != nil {
		if align := odfTextAlign(p.alignment.Horizontal); align != "" {
			fmt.Fprintf(&props, ` fo:text-align="%s"`, align)
		}
		if p.alignment.MarginLeft > 0 {
			fmt.Fprintf(&props, ` fo:margin-left="%s"`, odfLength(p.alignment.MarginLeft))
		}
		if p.alignment.Indent != 0 {
			fmt.Fprintf(&props, ` fo:text-indent="%s"`, odfLength(p.alignment.Indent))
		}
	}
	switch {
	case p.lineSpacing < 0:
		fmt.Fprintf(&props, ` fo:line-height="%d%%"`, -p.lineSpacing/1000)
	case p.lineSpacing > 0:
		fmt.Fprintf(&props, ` style:line-spacing="%.2fpt"`, float64(p.lineSpacing)/100)
	}
	if p.spaceBefore > 0 {
		fmt.Fprintf(&props, ` fo:margin-top="%.2fpt"`, float64(p.spaceBefore)/100)
	}
	if p.spaceAfter > 0 {
		fmt.Fprintf(&props, ` fo:margin-bottom="%.2fpt"`, float64(p.spaceAfter)/100)
	}
	props.WriteString("/>")
	style := e.styles.name("paragraph", props.String())

	var runs strings.Builder
	for _, elem := range p.elements {
		switch el := elem.(type) {
		case *TextRun:
			runs.WriteString(e.runXML(el))
		case *BreakElement:
			runs.WriteString("<text:line-break/>")
		}
	}
	body := fmt.Sprintf(`<text:p text:style-name="%s">%s</text:p>`, style, runs.String())
	if p.bullet != nil && p.bullet.Type != BulletTypeNone {
		level := 0
		if p.alignment != nil {
			level = p.alignment.Level
		}
		body = "<text:list><text:list-item>" + body + "</text:list-item></text:list>"
		for ; level > 0; level-- {
			body = "<text:list><text:list-item>" + body + "</text:list-item></text:list>"
		}
	}
	return e.indent + "  " + body + "\n"
}

func odfTextAlign(h HorizontalAlignment) string {
	switch h {
	case HorizontalLeft:
		return "start"
	case HorizontalCenter:
		return "center"
	case HorizontalRight:
		return "end"
	case HorizontalJustify, HorizontalDistributed:
		return "justify"
	}
	return ""
}

func (e *odpEmitter) runXML(tr *TextRun) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	lang, country := languageParts(e.ec.lang)
	var props strings.Builder
	fmt.Fprintf(&props, `<style:text-properties fo:font-size="%dpt" fo:language="%s" fo:country="%s"`, font.Size, lang, country)
	if font.Name != "" {
		fmt.Fprintf(&props, ` fo:font-family="%s"`, xmlEscape(font.Name))
	}
	if font.NameEA != "" {
		fmt.Fprintf(&props, ` style:font-family-asian="%s"`, xmlEscape(font.NameEA))
	}
	if font.Bold {
		props.WriteString(` fo:font-weight="bold"`)
	}
	if font.Italic {
		props.WriteString(` fo:font-style="italic"`)
	}
	if font.Underline != UnderlineNone && font.Underline != "" {
		props.WriteString(` style:text-underline-style="solid" style:text-underline-width="auto" style:text-underline-color="font-color"`)
	}
	if font.Strikethrough {
		props.WriteString(` style:text-line-through-style="solid"`)
	}
	switch {
	case font.Superscript:
		props.WriteString(` style:text-position="super 58%"`)
	case font.Subscript:
		props.WriteString(` style:text-position="sub 58%"`)
	}
	if font.Color.ARGB != "" {
		fmt.Fprintf(&props, ` fo:color="%s"`, odfColor(font.Color))
	}
	props.WriteString("/>")
	style := e.styles.name("text", props.String())

	span := fmt.Sprintf(`<text:span text:style-name="%s">%s</text:span>`, style, odfText(tr.text))
	if tr.hyperlink != nil {
		span = fmt.Sprintf(`<text:a xlink:type="simple" xlink:href="%s">%s</text:a>`, xmlEscape(e.ec.odpHref(tr.hyperlink)), span)
	}
	return span
}

// odfText escapes text and encodes tabs and runs of spaces, which ODF
// otherwise collapses.
func odfText(s string) string {
	var sb strings.Builder
	spaces := 0
	flush := func() {
		if spaces == 0 {
			return
		}
		sb.WriteByte(' ')
		if spaces > 1 {
			fmt.Fprintf(&sb, `<text:s text:c="%d"/>`, spaces-1)
		}
		spaces = 0
	}
	for _, r := range s {
		switch r {
		case ' ':
			spaces++
			continue
		case '\t':
			flush()
			sb.WriteString("<text:tab/>")
			continue
		}
		flush()
		sb.WriteString(xmlEscape(string(r)))
	}
	flush()
	return sb.String()
}

// --- Visitor ---

func (e *odpEmitter) visitRichText(s *RichTextShape) error {
	extra := odfFrameAttrs(&s.frame)
	fmt.Fprintf(&e.out, "%s<draw:frame draw:style-name=\"%s\" %s>\n%s  <draw:text-box>\n%s%s  </draw:text-box>%s\n%s</draw:frame>\n",
		e.indent, e.graphicStyle(&s.BaseShape, extra), frameAttrs(&s.BaseShape, s.width, s.height),
		e.indent, e.paragraphsXML(s.paragraphs), e.indent, e.clickXML(s.hyperlink), e.indent)
	return nil
}

// odfFrameAttrs renders a text frame as graphic style attributes.
func odfFrameAttrs(f *TextFrame) string {
	var sb strings.Builder
	switch f.Anchor {
	case TextAnchorTop:
		sb.WriteString(` draw:textarea-vertical-align="top"`)
	case TextAnchorMiddle:
		sb.WriteString(` draw:textarea-vertical-align="middle"`)
	case TextAnchorBottom:
		sb.WriteString(` draw:textarea-vertical-align="bottom"`)
	}
	if f.AutoFit == AutoFitShape {
		sb.WriteString(` draw:auto-grow-height="true"`)
	}
	for _, in := range [...]struct {
		attr string
		v    int64
	}{{"fo:padding-left", f.Insets.Left}, {"fo:padding-top", f.Insets.Top}, {"fo:padding-right", f.Insets.Right}, {"fo:padding-bottom", f.Insets.Bottom}} {
		if in.v > 0 {
			fmt.Fprintf(&sb, ` %s="%s"`, in.attr, odfLength(in.v))
		}
	}
	if f.NoWrap {
		sb.WriteString(` fo:wrap-option="no-wrap"`)
	}
	return sb.String()
}

func (e *odpEmitter) visitDrawing(s *DrawingShape) error { return e.picture(s, &s.BaseShape) }

func (e *odpEmitter) visitMemoryDrawing(s *MemoryDrawingShape) error {
	return e.picture(s, &s.BaseShape)
}

func (e *odpEmitter) picture(s Shape, b *BaseShape) error {
	m := e.ec.b.mediaByShape[s]
	if m == nil {
		return fmt.Errorf("picture %q was not prepared", b.name)
	}
	cx, cy := pictureExtent(b, m.info)
	fmt.Fprintf(&e.out, "%s<draw:frame draw:style-name=\"%s\" %s>%s%s</draw:frame>\n",
		e.indent, e.graphicStyle(b, ""), frameAttrs(b, cx, cy), odfImage(m), e.clickXML(b.hyperlink))
	return nil
}

func odfImage(m *mediaEntry) string {
	return fmt.Sprintf(`<draw:image xlink:href="%s" xlink:type="simple" xlink:show="embed" xlink:actuate="onLoad"/>`, m.path)
}

func (e *odpEmitter) visitAutoShape(s *AutoShape) error {
	text := ""
	if s.text != "" {
		text = fmt.Sprintf("%s  <text:p>%s</text:p>\n", e.indent, odfText(s.text))
	}
	fmt.Fprintf(&e.out, "%s<draw:custom-shape draw:style-name=\"%s\" %s>\n%s%s  <draw:enhanced-geometry svg:viewBox=\"0 0 21600 21600\" draw:type=\"%s\"/>%s\n%s</draw:custom-shape>\n",
		e.indent, e.graphicStyle(&s.BaseShape, odfFrameAttrs(&s.frame)), frameAttrs(&s.BaseShape, s.width, s.height),
		text, e.indent, odfGeometry(s.shapeType), e.clickXML(s.hyperlink), e.indent)
	return nil
}

// odfGeometry maps a DrawingML preset to a draw:type. Presets without an
// ODF name use the ooxml- prefixed form office suites understand.
func odfGeometry(t AutoShapeType) string {
	switch t {
	case AutoShapeRectangle, "":
		return "rectangle"
	case AutoShapeRoundedRect:
		return "round-rectangle"
	case AutoShapeEllipse:
		return "ellipse"
	case AutoShapeTriangle:
		return "isosceles-triangle"
	case AutoShapeDiamond:
		return "diamond"
	case AutoShapeParallelogram:
		return "parallelogram"
	case AutoShapeTrapezoid:
		return "trapezoid"
	case AutoShapePentagon:
		return "pentagon"
	case AutoShapeHexagon:
		return "hexagon"
	}
	return "ooxml-" + string(t)
}

func (e *odpEmitter) visitLine(s *LineShape) error {
	x1, y1 := s.offsetX, s.offsetY
	x2, y2 := s.offsetX+s.width, s.offsetY+s.height
	if s.flipH {
		x1, x2 = x2, x1
	}
	if s.flipV {
		y1, y2 = y2, y1
	}
	stroke := "solid"
	if s.stroke.Style == BorderDash || s.stroke.Style == BorderDot {
		stroke = "dash"
	}
	props := fmt.Sprintf(`<style:graphic-properties draw:stroke="%s" svg:stroke-color="%s" svg:stroke-width="%s"/>`,
		stroke, odfColor(s.stroke.Color), odfLength(s.GetLineWidthEMU()))
	name := ""
	if s.name != "" {
		name = fmt.Sprintf(` draw:name="%s"`, xmlEscape(s.name))
	}
	fmt.Fprintf(&e.out, "%s<draw:line draw:style-name=\"%s\"%s svg:x1=\"%s\" svg:y1=\"%s\" svg:x2=\"%s\" svg:y2=\"%s\">%s</draw:line>\n",
		e.indent, e.styles.name("graphic", props), name,
		odfLength(x1), odfLength(y1), odfLength(x2), odfLength(y2), e.clickXML(s.hyperlink))
	return nil
}

func (e *odpEmitter) visitTable(s *TableShape) error {
	var rows strings.Builder
	for _, row := range s.rows {
		rows.WriteString(e.indent + "    <table:table-row>")
		for _, cell := range row {
			rows.WriteString(e.cellXML(cell))
		}
		rows.WriteString("</table:table-row>\n")
	}
	fmt.Fprintf(&e.out, "%s<draw:frame %s>\n%s  <table:table>\n%s    <table:table-column table:number-columns-repeated=\"%d\"/>\n%s%s  </table:table>%s\n%s</draw:frame>\n",
		e.indent, frameAttrs(&s.BaseShape, s.width, s.height),
		e.indent, e.indent, max(s.numCols, 1), rows.String(), e.indent, e.clickXML(s.hyperlink), e.indent)
	return nil
}

func (e *odpEmitter) cellXML(cell *TableCell) string {
	if cell == nil {
		return "<table:table-cell/>"
	}
	var attrs strings.Builder
	if cell.colSpan > 1 {
		fmt.Fprintf(&attrs, ` table:number-columns-spanned="%d"`, cell.colSpan)
	}
	if cell.rowSpan > 1 {
		fmt.Fprintf(&attrs, ` table:number-rows-spanned="%d"`, cell.rowSpan)
	}
	var props strings.Builder
	props.WriteString("<style:graphic-properties")
	props.WriteString(odfFillAttrs(cell.fill))
	props.WriteString("/>")
	if cb := cell.border; cb != nil {
		props.WriteString("<style:table-cell-properties")
		for _, side := range []struct {
			attr string
			b    *Border
		}{{"fo:border-top", cb.Top}, {"fo:border-bottom", cb.Bottom}, {"fo:border-left", cb.Left}, {"fo:border-right", cb.Right}} {
			if side.b != nil && side.b.Style != "" && side.b.Style != BorderNone {
				fmt.Fprintf(&props, ` %s="%s solid %s"`, side.attr, odfLength(int64(side.b.Width)), odfColor(side.b.Color))
			}
		}
		props.WriteString("/>")
	}
	style := e.styles.name("table-cell", props.String())

	var text strings.Builder
	for _, p := range cell.paragraphs {
		if p != nil {
			text.WriteString(strings.TrimSpace(e.paragraphXML(p)))
		}
	}
	return fmt.Sprintf(`<table:table-cell table:style-name="%s"%s>%s</table:table-cell>`, style, attrs.String(), text.String())
}

func (e *odpEmitter) visitChart(s *ChartShape) error {
	c := e.ec.b.chartByShape[s]
	if c == nil {
		return fmt.Errorf("chart %q was not prepared", s.name)
	}
	fmt.Fprintf(&e.out, "%s<draw:frame %s><draw:object xlink:href=\"./%s\" xlink:type=\"simple\" xlink:show=\"embed\" xlink:actuate=\"onLoad\"/>%s</draw:frame>\n",
		e.indent, frameAttrs(&s.BaseShape, s.width, s.height), odpObjectDir(c), e.clickXML(s.hyperlink))
	return nil
}

func (e *odpEmitter) visitGroup(g *GroupShape) error {
	name := ""
	if g.name != "" {
		name = fmt.Sprintf(` draw:name="%s"`, xmlEscape(g.name))
	}
	fmt.Fprintf(&e.out, "%s<draw:g%s>\n", e.indent, name)
	outer := e.indent
	e.indent += "  "
	if err := walkShapes(g.shapes, e); err != nil {
		return err
	}
	e.indent = outer
	fmt.Fprintf(&e.out, "%s</draw:g>\n", e.indent)
	return nil
}
