package gopresentation

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// slideEmitter writes the p:spTree children of one slide or notes slide.
// It visits shapes in the same order as the relationship collector and
// reads every id from the part binding.
type slideEmitter struct {
	ec     *exportContext
	part   *partBinding
	out    strings.Builder
	nextID int
	// err is the first hyperlink whose binding disagrees with the model.
	err error
}

func newSlideEmitter(ec *exportContext, part *partBinding) *slideEmitter {
	return &slideEmitter{ec: ec, part: part, nextID: 2} // 1 is the spTree group
}

// emit writes the shapes and reports the first failure of the walk or of
// the text helpers.
func (e *slideEmitter) emit(shapes []Shape) error {
	if err := walkShapes(shapes, e); err != nil {
		return err
	}
	return e.err
}

// checkLink records a hyperlink set or cleared after Prepare.
func (e *slideEmitter) checkLink(linked, bound bool, what string) {
	if linked == bound || e.err != nil {
		return
	}
	if linked {
		e.err = fmt.Errorf("%w: hyperlink of %s has no relationship", ErrBindingsMismatch, what)
	} else {
		e.err = fmt.Errorf("%w: %s has a relationship but no hyperlink", ErrBindingsMismatch, what)
	}
}

func (e *slideEmitter) id() int {
	id := e.nextID
	e.nextID++
	return id
}

func (ec *exportContext) slideXML(sb *slideBinding) ([]byte, error) {
	e := newSlideEmitter(ec, &sb.partBinding)
	if err := e.emit(sb.slide.shapes); err != nil {
		return nil, err
	}

	bgXML := ""
	switch {
	case sb.backgroundRel != "":
		bgXML = fmt.Sprintf(`    <p:bg>
      <p:bgPr>
        <a:blipFill dpi="0" rotWithShape="1"><a:blip r:embed="%s"/><a:srcRect/><a:stretch><a:fillRect/></a:stretch></a:blipFill>
        <a:effectLst/>
      </p:bgPr>
    </p:bg>
`, sb.backgroundRel)
	case sb.slide.background != nil && sb.slide.background.Type != FillNone:
		bgXML = "    <p:bg><p:bgPr>" + fillXML(sb.slide.background) + "<a:effectLst/></p:bgPr></p:bg>\n"
	}

	show := ""
	if sb.slide.hidden {
		show = ` show="0"`
	}
	name := ""
	if sb.slide.name != "" {
		name = fmt.Sprintf(` name="%s"`, xmlEscape(sb.slide.name))
	}

	content := fmt.Sprintf(xmlDecl+`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s"%s>
  <p:cSld%s>
%s    <p:spTree>
%s%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, show, name, bgXML, spTreeHeader, e.out.String())
	return []byte(content), nil
}

const spTreeHeader = `      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
`

// --- Notes Slide ---

func (ec *exportContext) notesSlideXML(sb *slideBinding) ([]byte, error) {
	e := newSlideEmitter(ec, &sb.notes.partBinding)
	// The slide image placeholder comes first, as PowerPoint writes it.
	e.id()
	if err := e.emit(sb.slide.note.shapes); err != nil {
		return nil, err
	}
	content := fmt.Sprintf(xmlDecl+`<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
%s      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Slide Image Placeholder 1"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1" noRot="1" noChangeAspect="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="sldImg"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
      </p:sp>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:notes>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, spTreeHeader, e.out.String())
	return []byte(content), nil
}

// --- Shape properties ---

// xfrmXML writes the transform of a shape at the given extent. tag is
// a:xfrm inside spPr and p:xfrm on graphic frames; child carries the
// chOff and chExt of groups.
func xfrmXML(tag string, b *BaseShape, cx, cy int64, child string) string {
	var a xmlAttrs
	a.when(b.rotation != 0, "rot", b.rotation*60000).
		when(b.flipH, "flipH", 1).
		when(b.flipV, "flipV", 1)
	return fmt.Sprintf(`<%s%s><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/>%s</%s>`,
		tag, a.String(), b.offsetX, b.offsetY, cx, cy, child, tag)
}

// spPrXML writes shape properties. The parts must come in schema order:
// fill, line, effects.
func spPrXML(xfrm, geometry string, parts ...string) string {
	return "        <p:spPr>" + xfrm + geometry + strings.Join(parts, "") + "</p:spPr>\n"
}

// prstGeomXML writes a preset geometry with its adjust values in name order.
func prstGeomXML(prst string, adjust map[string]int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<a:prstGeom prst="%s"><a:avLst>`, prst)
	for _, name := range slices.Sorted(maps.Keys(adjust)) {
		fmt.Fprintf(&sb, `<a:gd name="%s" fmla="val %d"/>`, xmlEscape(name), adjust[name])
	}
	sb.WriteString("</a:avLst></a:prstGeom>")
	return sb.String()
}

// cNvPr writes the non-visual properties element, with the click hyperlink
// of the shape when it has one.
func (e *slideEmitter) cNvPr(s Shape, id int, name string) string {
	b := s.base()
	var a xmlAttrs
	a.add("id", id).add("name", xmlEscape(name)).
		when(b.description != "", "descr", xmlEscape(b.description))
	rid, bound := e.part.shapeLink[s]
	e.checkLink(b.hyperlink != nil, bound, fmt.Sprintf("shape %q", name))
	if b.hyperlink == nil || !bound {
		return "<p:cNvPr" + a.String() + "/>"
	}
	return "<p:cNvPr" + a.String() + ">" + hlinkClickXML(rid, b.hyperlink) + "</p:cNvPr>"
}

func hlinkClickXML(rid string, h *Hyperlink) string {
	var a xmlAttrs
	a.add("r:id", rid).
		when(h.IsInternal, "action", "ppaction://hlinksldjump").
		when(h.Tooltip != "", "tooltip", xmlEscape(h.Tooltip))
	return "<a:hlinkClick" + a.String() + "/>"
}

func shapeName(b *BaseShape, kind string, id int) string {
	if b.name != "" {
		return b.name
	}
	return fmt.Sprintf("%s %d", kind, id)
}

func shadowXML(s *Shadow) string {
	if s == nil || !s.Visible {
		return ""
	}
	var a xmlAttrs
	a.add("blurRad", int64(s.BlurRadius)*emuPerPoint).
		add("dist", int64(s.Distance)*emuPerPoint).
		add("dir", s.Direction*60000).
		add("algn", "bl").
		add("rotWithShape", 0)
	return fmt.Sprintf(`<a:effectLst><a:outerShdw%s><a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr></a:outerShdw></a:effectLst>`,
		a.String(), colorRGB(s.Color), s.Alpha*1000)
}

// --- Text ---

func (e *slideEmitter) visitRichText(s *RichTextShape) error {
	id := e.id()
	fmt.Fprintf(&e.out, "      <p:sp>\n        <p:nvSpPr>%s<p:cNvSpPr txBox=\"1\"/><p:nvPr/></p:nvSpPr>\n%s%s      </p:sp>\n",
		e.cNvPr(s, id, shapeName(&s.BaseShape, "TextBox", id)),
		spPrXML(xfrmXML("a:xfrm", &s.BaseShape, s.width, s.height, ""), prstGeomXML("rect", nil),
			fillXML(s.fill), borderXML(s.border), shadowXML(s.shadow)),
		e.txBodyXML("p:txBody", bodyPrXML(&s.frame), s.paragraphs))
	return nil
}

// txBodyXML writes a text body: p:txBody in shapes, a:txBody in table
// cells. An empty body still gets the one paragraph the schema requires.
func (e *slideEmitter) txBodyXML(tag, bodyPr string, paragraphs []*Paragraph) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "        <%s>%s<a:lstStyle/>\n", tag, bodyPr)
	for _, para := range paragraphs {
		sb.WriteString(e.paragraphXML(para))
	}
	if len(paragraphs) == 0 {
		sb.WriteString("          <a:p/>\n")
	}
	fmt.Fprintf(&sb, "        </%s>\n", tag)
	return sb.String()
}

// bodyPrXML renders a text frame as <a:bodyPr>. Zero insets are left to
// the application default.
func bodyPrXML(f *TextFrame) string {
	var a xmlAttrs
	if f.NoWrap {
		a.add("wrap", "none")
	} else {
		a.add("wrap", "square")
	}
	a.when(f.Insets.Left > 0, "lIns", f.Insets.Left).
		when(f.Insets.Top > 0, "tIns", f.Insets.Top).
		when(f.Insets.Right > 0, "rIns", f.Insets.Right).
		when(f.Insets.Bottom > 0, "bIns", f.Insets.Bottom).
		when(f.columns() > 1, "numCol", f.columns()).
		when(f.Anchor != TextAnchorNone, "anchor", f.Anchor)

	var fit string
	switch {
	case f.FontScale > 0 && f.FontScale != 100000:
		fit = fmt.Sprintf(`<a:normAutofit fontScale="%d"/>`, f.FontScale)
	case f.AutoFit == AutoFitNormal:
		fit = `<a:normAutofit/>`
	case f.AutoFit == AutoFitShape:
		fit = `<a:spAutoFit/>`
	}
	if fit == "" {
		return "<a:bodyPr" + a.String() + "/>"
	}
	return "<a:bodyPr" + a.String() + ">" + fit + "</a:bodyPr>"
}

func (e *slideEmitter) paragraphXML(para *Paragraph) string {
	if para == nil {
		return ""
	}
	var a xmlAttrs
	if al := para.alignment; al != nil {
		a.when(al.MarginLeft > 0, "marL", al.MarginLeft).
			when(al.Indent != 0, "indent", al.Indent).
			when(al.Level > 0, "lvl", al.Level).
			when(al.Horizontal != "", "algn", al.Horizontal)
	}

	var props strings.Builder
	switch {
	case para.lineSpacing < 0:
		fmt.Fprintf(&props, `<a:lnSpc><a:spcPct val="%d"/></a:lnSpc>`, -para.lineSpacing)
	case para.lineSpacing > 0:
		fmt.Fprintf(&props, `<a:lnSpc><a:spcPts val="%d"/></a:lnSpc>`, para.lineSpacing)
	}
	if para.spaceBefore > 0 {
		fmt.Fprintf(&props, `<a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore)
	}
	if para.spaceAfter > 0 {
		fmt.Fprintf(&props, `<a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter)
	}
	if para.bullet != nil {
		props.WriteString(bulletXML(para.bullet))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "          <a:p><a:pPr%s>%s</a:pPr>\n", a.String(), props.String())
	for _, elem := range para.elements {
		switch el := elem.(type) {
		case *TextRun:
			sb.WriteString(e.textRunXML(el))
		case *BreakElement:
			sb.WriteString("            <a:br/>\n")
		}
	}
	sb.WriteString("          </a:p>\n")
	return sb.String()
}

func (e *slideEmitter) textRunXML(tr *TextRun) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	var a xmlAttrs
	a.add("lang", e.ec.lang.String()).
		add("sz", font.Size*100).
		when(font.Bold, "b", 1).
		when(font.Italic, "i", 1).
		when(font.Underline != UnderlineNone && font.Underline != "", "u", font.Underline).
		when(font.Strikethrough, "strike", "sngStrike").
		when(font.Superscript, "baseline", 30000).
		when(font.Subscript && !font.Superscript, "baseline", -25000).
		add("dirty", 0)

	var props strings.Builder
	if font.Color.ARGB != "" {
		props.WriteString(solidFillXML(font.Color))
	}
	if font.Name != "" {
		fmt.Fprintf(&props, `<a:latin typeface="%s"/>`, xmlEscape(font.Name))
	}
	if font.NameEA != "" {
		fmt.Fprintf(&props, `<a:ea typeface="%s"/>`, xmlEscape(font.NameEA))
	}
	rid, bound := e.part.runLink[tr]
	e.checkLink(tr.hyperlink != nil, bound, fmt.Sprintf("run %q", tr.text))
	if bound && tr.hyperlink != nil {
		props.WriteString(hlinkClickXML(rid, tr.hyperlink))
	}
	return fmt.Sprintf("            <a:r><a:rPr%s>%s</a:rPr><a:t>%s</a:t></a:r>\n",
		a.String(), props.String(), xmlEscape(tr.text))
}

// --- Pictures ---

func (e *slideEmitter) visitDrawing(s *DrawingShape) error {
	return e.picture(s, &s.BaseShape, s.alpha, s.crop, s.lockAspect)
}

func (e *slideEmitter) visitMemoryDrawing(s *MemoryDrawingShape) error {
	return e.picture(s, &s.BaseShape, 0, Crop{}, true)
}

func (e *slideEmitter) picture(s Shape, b *BaseShape, alpha int, crop Crop, lockAspect bool) error {
	rid, ok := e.part.shapeRel[s]
	m := e.ec.b.mediaByShape[s]
	if !ok || m == nil {
		return fmt.Errorf("picture %q was not prepared", b.name)
	}
	id := e.id()
	cx, cy := pictureExtent(b, m.info)

	blip := ""
	if alpha > 0 && alpha < 100000 {
		blip = fmt.Sprintf(`<a:alphaModFix amt="%d"/>`, alpha)
	}
	srcRect := "<a:srcRect/>"
	if crop != (Crop{}) {
		srcRect = fmt.Sprintf(`<a:srcRect l="%d" t="%d" r="%d" b="%d"/>`, crop.Left, crop.Top, crop.Right, crop.Bottom)
	}

	fmt.Fprintf(&e.out, `      <p:pic>
        <p:nvPicPr>%s<p:cNvPicPr><a:picLocks noChangeAspect="%s"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>
        <p:blipFill><a:blip r:embed="%s">%s</a:blip>%s<a:stretch><a:fillRect/></a:stretch></p:blipFill>
%s      </p:pic>
`, e.cNvPr(s, id, shapeName(b, "Picture", id)), boolToXML(lockAspect),
		rid, blip, srcRect,
		spPrXML(xfrmXML("a:xfrm", b, cx, cy, ""), prstGeomXML("rect", nil), borderXML(b.border), shadowXML(b.shadow)))
	return nil
}

// --- Auto shapes and lines ---

func (e *slideEmitter) visitAutoShape(s *AutoShape) error {
	id := e.id()
	text := ""
	if s.text != "" {
		text = fmt.Sprintf("        <p:txBody>%s<a:lstStyle/><a:p><a:r><a:rPr lang=\"%s\" dirty=\"0\"/><a:t>%s</a:t></a:r></a:p></p:txBody>\n",
			bodyPrXML(&s.frame), e.ec.lang.String(), xmlEscape(s.text))
	}
	prst := cmp.Or(s.shapeType, AutoShapeRectangle)
	fmt.Fprintf(&e.out, "      <p:sp>\n        <p:nvSpPr>%s<p:cNvSpPr/><p:nvPr/></p:nvSpPr>\n%s%s      </p:sp>\n",
		e.cNvPr(s, id, shapeName(&s.BaseShape, "Shape", id)),
		spPrXML(xfrmXML("a:xfrm", &s.BaseShape, s.width, s.height, ""), prstGeomXML(string(prst), s.adjust),
			fillXML(s.fill), autoShapeLineXML(s), shadowXML(s.shadow)),
		text)
	return nil
}

// autoShapeLineXML merges the border with the arrowheads of open shapes.
// Arrowheads on a shape without a border get a thin black line.
func autoShapeLineXML(s *AutoShape) string {
	if s.ends.empty() {
		return borderXML(s.border)
	}
	b := s.border
	if b == nil || b.Style == BorderNone {
		b = &Border{Style: BorderSolid, Width: int(emuPerPoint), Color: ColorBlack}
	}
	return lnXML("a:ln", int64(b.Width), b.Color, b.Style, arrowheadsXML(s.ends))
}

func arrowheadsXML(ends Arrowheads) string {
	return lineEndXML("a:headEnd", ends.Head) + lineEndXML("a:tailEnd", ends.Tail)
}

func lineEndXML(tag string, end *LineEnd) string {
	if lineEndNone(end) {
		return ""
	}
	return fmt.Sprintf(`<%s type="%s" w="%s" len="%s"/>`, tag, end.Type, end.Width, end.Length)
}

func (e *slideEmitter) visitLine(s *LineShape) error {
	id := e.id()
	fmt.Fprintf(&e.out, "      <p:cxnSp>\n        <p:nvCxnSpPr>%s<p:cNvCxnSpPr/><p:nvPr/></p:nvCxnSpPr>\n%s      </p:cxnSp>\n",
		e.cNvPr(s, id, shapeName(&s.BaseShape, "Line", id)),
		spPrXML(xfrmXML("a:xfrm", &s.BaseShape, s.width, s.height, ""), prstGeomXML(cmp.Or(s.connector, "line"), nil),
			lnXML("a:ln", s.GetLineWidthEMU(), s.stroke.Color, s.stroke.Style, arrowheadsXML(s.ends)),
			shadowXML(s.shadow)))
	return nil
}

// --- Graphic frames ---

// graphicFrame writes a table or chart frame around its graphic data.
func (e *slideEmitter) graphicFrame(s Shape, kind, uri, data string) {
	b := s.base()
	id := e.id()
	fmt.Fprintf(&e.out, `      <p:graphicFrame>
        <p:nvGraphicFramePr>%s<p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>
        %s
        <a:graphic>
          <a:graphicData uri="%s">
%s          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, e.cNvPr(s, id, shapeName(b, kind, id)), xfrmXML("p:xfrm", b, b.width, b.height, ""), uri, data)
}

// visitTable splits the frame evenly into columns and rows.
func (e *slideEmitter) visitTable(s *TableShape) error {
	var colW, rowH int64
	if s.numCols > 0 {
		colW = s.width / int64(s.numCols)
	}
	if s.numRows > 0 {
		rowH = s.height / int64(s.numRows)
	}

	var tbl strings.Builder
	tbl.WriteString("            <a:tbl>\n              <a:tblPr firstRow=\"1\" bandRow=\"1\"/>\n              <a:tblGrid>")
	tbl.WriteString(strings.Repeat(fmt.Sprintf(`<a:gridCol w="%d"/>`, colW), s.numCols))
	tbl.WriteString("</a:tblGrid>\n")
	for _, row := range s.rows {
		fmt.Fprintf(&tbl, "              <a:tr h=\"%d\">\n", rowH)
		for _, cell := range row {
			tbl.WriteString(e.cellXML(cell))
		}
		tbl.WriteString("              </a:tr>\n")
	}
	tbl.WriteString("            </a:tbl>\n")
	e.graphicFrame(s, "Table", nsTableML, tbl.String())
	return nil
}

func (e *slideEmitter) cellXML(cell *TableCell) string {
	if cell == nil {
		return "                <a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p/></a:txBody><a:tcPr/></a:tc>\n"
	}
	var span xmlAttrs
	span.when(cell.colSpan > 1, "gridSpan", cell.colSpan).
		when(cell.rowSpan > 1, "rowSpan", cell.rowSpan)

	var props strings.Builder
	if cb := cell.border; cb != nil {
		props.WriteString(lineXML("a:lnL", cb.Left))
		props.WriteString(lineXML("a:lnR", cb.Right))
		props.WriteString(lineXML("a:lnT", cb.Top))
		props.WriteString(lineXML("a:lnB", cb.Bottom))
	}
	if cell.fill != nil && cell.fill.Type != FillNone {
		props.WriteString(fillXML(cell.fill))
	}
	return fmt.Sprintf("                <a:tc%s>\n%s                <a:tcPr>%s</a:tcPr></a:tc>\n",
		span.String(), e.txBodyXML("a:txBody", "<a:bodyPr/>", cell.paragraphs), props.String())
}

func (e *slideEmitter) visitChart(s *ChartShape) error {
	rid, ok := e.part.shapeRel[s]
	if !ok {
		return fmt.Errorf("chart %q was not prepared", s.name)
	}
	e.graphicFrame(s, "Chart", nsChartML,
		fmt.Sprintf("            <c:chart xmlns:c=\"%s\" r:id=\"%s\"/>\n", nsChartML, rid))
	return nil
}

// --- Groups ---

func (e *slideEmitter) visitGroup(g *GroupShape) error {
	id := e.id()
	chX, chY, chCX, chCY := g.childBounds()
	child := fmt.Sprintf(`<a:chOff x="%d" y="%d"/><a:chExt cx="%d" cy="%d"/>`, chX, chY, chCX, chCY)
	fmt.Fprintf(&e.out, "      <p:grpSp>\n        <p:nvGrpSpPr>%s<p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>\n        <p:grpSpPr>%s</p:grpSpPr>\n",
		e.cNvPr(g, id, shapeName(&g.BaseShape, "Group", id)),
		xfrmXML("a:xfrm", &g.BaseShape, g.width, g.height, child))
	if err := walkShapes(g.shapes, e); err != nil {
		return fmt.Errorf("group %q: %w", g.name, err)
	}
	e.out.WriteString("      </p:grpSp>\n")
	return nil
}

// --- Fills, lines and bullets ---

func solidFillXML(c Color) string {
	return `<a:solidFill><a:srgbClr val="` + colorRGB(c) + `"/></a:solidFill>`
}

func fillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	stops := fmt.Sprintf(`<a:gsLst><a:gs pos="0"><a:srgbClr val="%s"/></a:gs><a:gs pos="100000"><a:srgbClr val="%s"/></a:gs></a:gsLst>`,
		colorRGB(f.Color), colorRGB(f.EndColor))
	switch f.Type {
	case FillSolid:
		return solidFillXML(f.Color)
	case FillGradientLinear:
		return fmt.Sprintf(`<a:gradFill>%s<a:lin ang="%d" scaled="1"/></a:gradFill>`, stops, f.Rotation*60000)
	case FillGradientPath:
		return `<a:gradFill>` + stops + `<a:path path="circle"><a:fillToRect l="50000" t="50000" r="50000" b="50000"/></a:path></a:gradFill>`
	}
	return ""
}

func dashXML(style BorderStyle) string {
	if style == BorderDash || style == BorderDot {
		return `<a:prstDash val="` + string(style) + `"/>`
	}
	return ""
}

// lnXML writes a line element; tag is a:ln on shapes and a:lnL, a:lnR,
// a:lnT or a:lnB on table cells. ends goes after the dash pattern.
func lnXML(tag string, width int64, c Color, style BorderStyle, ends string) string {
	return fmt.Sprintf(`<%s w="%d">%s%s%s</%s>`, tag, width, solidFillXML(c), dashXML(style), ends, tag)
}

// lineXML writes a border as tag, or nothing for a hidden border.
func lineXML(tag string, b *Border) string {
	if b == nil || b.Style == BorderNone || b.Style == "" {
		return ""
	}
	return lnXML(tag, int64(b.Width), b.Color, b.Style, "")
}

func borderXML(b *Border) string { return lineXML("a:ln", b) }

func bulletXML(b *Bullet) string {
	if b.Type == BulletTypeNone {
		return "<a:buNone/>"
	}
	var sb strings.Builder
	if b.Color != nil {
		fmt.Fprintf(&sb, `<a:buClr><a:srgbClr val="%s"/></a:buClr>`, colorRGB(*b.Color))
	}
	if b.Size > 0 && b.Size != 100 {
		fmt.Fprintf(&sb, `<a:buSzPct val="%d"/>`, b.Size*1000)
	}
	switch b.Type {
	case BulletTypeChar:
		if b.Font != "" {
			fmt.Fprintf(&sb, `<a:buFont typeface="%s"/>`, xmlEscape(b.Font))
		}
		fmt.Fprintf(&sb, `<a:buChar char="%s"/>`, xmlEscape(b.Style))
	case BulletTypeNumeric:
		fmt.Fprintf(&sb, `<a:buAutoNum type="%s" startAt="%d"/>`, b.NumFormat, b.StartAt)
	}
	return sb.String()
}
