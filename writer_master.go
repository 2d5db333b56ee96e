package gopresentation

import (
	"fmt"
	"strings"
)

// --- Presentation ---

func (ec *exportContext) presentationXML() ([]byte, error) {
	b := ec.b
	var masters strings.Builder
	for i, mb := range b.masters {
		fmt.Fprintf(&masters, "    <p:sldMasterId id=\"%d\" r:id=\"%s\"/>\n", mb.firstID, b.masterRels[i])
	}
	notesMaster := ""
	if b.notesMasterRel != "" {
		notesMaster = fmt.Sprintf("  <p:notesMasterIdLst>\n    <p:notesMasterId r:id=\"%s\"/>\n  </p:notesMasterIdLst>\n", b.notesMasterRel)
	}
	var slides strings.Builder
	for i, rid := range b.slideRels {
		fmt.Fprintf(&slides, "    <p:sldId id=\"%d\" r:id=\"%s\"/>\n", 256+i, rid)
	}
	cx, cy := ec.slideSize()
	sizeType := ec.p.layout.size().ooxml
	nx, ny := notesSize()

	content := fmt.Sprintf(xmlDecl+`<p:presentation xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" saveSubsetFonts="1">
  <p:sldMasterIdLst>
%s  </p:sldMasterIdLst>
%s  <p:sldIdLst>
%s  </p:sldIdLst>
  <p:sldSz cx="%d" cy="%d" type="%s"/>
  <p:notesSz cx="%d" cy="%d"/>
  <p:defaultTextStyle>
    <a:defPPr><a:defRPr lang="%s"/></a:defPPr>
  </p:defaultTextStyle>
</p:presentation>`, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		masters.String(), notesMaster, slides.String(),
		cx, cy, sizeType, nx, ny, ec.lang.String())
	return []byte(content), nil
}

// notesSize is the portrait notes page, 7.5 x 10 inches.
func notesSize() (cx, cy int64) { return 6858000, 9144000 }

func (ec *exportContext) presPropsXML() ([]byte, error) {
	pp := ec.p.settings
	if pp == nil {
		pp = NewPresentationProperties()
	}
	show := ""
	switch pp.Slideshow {
	case SlideshowTypeBrowse:
		show = "\n  <p:showPr><p:browse/></p:showPr>"
	case SlideshowTypeKiosk:
		show = "\n  <p:showPr><p:kiosk/></p:showPr>"
	}
	content := fmt.Sprintf(xmlDecl+`<p:presentationPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">%s
</p:presentationPr>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, show)
	return []byte(content), nil
}

func (ec *exportContext) viewPropsXML() ([]byte, error) {
	pp := ec.p.settings
	if pp == nil {
		pp = NewPresentationProperties()
	}
	zoom := pp.zoomPercent()
	content := fmt.Sprintf(xmlDecl+`<p:viewPr xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" lastView="%s"%s>
  <p:slideViewPr>
    <p:cSldViewPr>
      <p:cViewPr>
        <p:scale><a:sx n="%d" d="100"/><a:sy n="%d" d="100"/></p:scale>
        <p:origin x="0" y="0"/>
      </p:cViewPr>
    </p:cSldViewPr>
  </p:slideViewPr>
</p:viewPr>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, pp.LastView,
		commentsAttr(pp.ShowComments), zoom, zoom)
	return []byte(content), nil
}

func commentsAttr(visible bool) string {
	if visible {
		return ` showComments="1"`
	}
	return ` showComments="0"`
}

func (ec *exportContext) tableStylesXML() ([]byte, error) {
	content := fmt.Sprintf(xmlDecl+`<a:tblStyleLst xmlns:a="%s" def="{5C22544A-7EE6-4342-B048-85BDC9FD1C3A}"/>`, nsDrawingML)
	return []byte(content), nil
}

// --- Masters, layouts, themes ---

func (ec *exportContext) masterXML(m *MasterTemplate, mb *masterBinding) ([]byte, error) {
	var ids strings.Builder
	for i, rid := range mb.layoutRels {
		fmt.Fprintf(&ids, "    <p:sldLayoutId id=\"%d\" r:id=\"%s\"/>\n", mb.firstID+uint32(i)+1, rid)
	}
	content := fmt.Sprintf(xmlDecl+`<p:sldMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld name="%s">%s</p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
  <p:sldLayoutIdLst>
%s  </p:sldLayoutIdLst>
  %s
</p:sldMaster>`, nsDrawingML, nsOfficeDocRels, nsPresentationML,
		xmlEscape(m.Name), m.CommonData, ids.String(), m.TextStyles)
	return []byte(content), nil
}

func (ec *exportContext) layoutXML(l *LayoutTemplate) ([]byte, error) {
	typ := l.Type
	if typ == "" {
		typ = "cust"
	}
	content := fmt.Sprintf(xmlDecl+`<p:sldLayout xmlns:a="%s" xmlns:r="%s" xmlns:p="%s" type="%s" preserve="1">
  <p:cSld name="%s">%s</p:cSld>
  <p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sldLayout>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, typ, xmlEscape(l.Name), l.CommonData)
	return []byte(content), nil
}

func themeXML(t *ThemeTemplate) ([]byte, error) {
	if t == nil || strings.TrimSpace(t.XML) == "" {
		return nil, fmt.Errorf("%w: empty theme", ErrInvalidPresentation)
	}
	if strings.HasPrefix(t.XML, "<?xml") {
		return []byte(t.XML), nil
	}
	return []byte(xmlDecl + t.XML), nil
}

func (ec *exportContext) notesMasterXML() ([]byte, error) {
	content := fmt.Sprintf(xmlDecl+`<p:notesMaster xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>%s</p:cSld>
  <p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
</p:notesMaster>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, ec.pack.NotesMaster.CommonData)
	return []byte(content), nil
}
