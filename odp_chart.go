package gopresentation

import (
	"fmt"
	"strings"
)

// odpChartXML renders Object N/content.xml: a chart:chart whose series
// point at cell ranges of the local-table embedded in the same document.
func (ec *exportContext) odpChartXML(c *chartEntry) ([]byte, error) {
	chart := c.shape
	snap := c.snapshot
	if snap == nil {
		snap = newChartSnapshot(c.series)
	}
	styles := newODFStyles()

	title := ""
	if t := chart.title; t != nil && t.Visible && t.Text != "" {
		title = fmt.Sprintf("      <chart:title><text:p>%s</text:p></chart:title>\n", odfText(t.Text))
	}
	legend := ""
	if l := chart.legend; l != nil && l.Visible {
		legend = fmt.Sprintf("      <chart:legend chart:legend-position=\"%s\"/>\n", odfLegendPosition(l.Position))
	}

	plotProps := "<style:chart-properties" + c.plot.odfProps()
	switch chart.blanks {
	case BlankAsGap:
		plotProps += ` chart:treat-empty-cells="leave-gap"`
	case BlankAsSpan:
		plotProps += ` chart:treat-empty-cells="ignore"`
	default:
		plotProps += ` chart:treat-empty-cells="use-zero"`
	}
	plotProps += "/>"
	if c.plot.threeD && chart.view3D != nil {
		v := chart.view3D
		plotProps += fmt.Sprintf(`<style:graphic-properties dr3d:projection="%s"/>`, odfProjection(v.RightAngleAxes))
	}
	plotStyle := styles.name("chart", plotProps)

	catRange, err := snap.tableRange(0)
	if err != nil {
		return nil, err
	}
	extent, err := odfTableExtent(snap)
	if err != nil {
		return nil, err
	}

	var axes strings.Builder
	if c.plot.axes {
		axes.WriteString(ec.odfAxisXML(styles, "x", chart.plotArea.axisX, snap, catRange, !c.plot.scatter))
		axes.WriteString(ec.odfAxisXML(styles, "y", chart.plotArea.axisY, snap, catRange, false))
	}

	// Scatter series share the category column as their x values.
	domain := ""
	if c.plot.scatter && len(snap.Categories) > 0 {
		domain = fmt.Sprintf("<chart:domain table:cell-range-address=\"%s\"/>", catRange)
	}
	var series strings.Builder
	for i := range c.series {
		ser, err := odfSeriesXML(styles, c, snap, i, domain)
		if err != nil {
			return nil, err
		}
		series.WriteString(ser)
	}

	cx, cy := chart.width, chart.height
	content := fmt.Sprintf(xmlDecl+`<office:document-content %s xmlns:dr3d="urn:oasis:names:tc:opendocument:xmlns:dr3d:1.0" office:version="%s">
  <office:automatic-styles>
%s  </office:automatic-styles>
  <office:body>
    <office:chart>
      <chart:chart svg:width="%s" svg:height="%s" chart:class="%s">
%s%s      <chart:plot-area chart:style-name="%s" table:cell-range-address="%s" chart:data-source-has-labels="both">
%s%s        <chart:wall/>
        <chart:floor/>
      </chart:plot-area>
      </chart:chart>
%s    </office:chart>
  </office:body>
</office:document-content>`, odfNamespaces, odfVersion,
		styles.String(),
		odfLength(cx), odfLength(cy), c.plot.odpClass,
		title, legend, plotStyle, extent,
		axes.String(), series.String(),
		odfLocalTable(snap))
	return []byte(content), nil
}

func odfSeriesXML(styles *odfStyles, c *chartEntry, snap *ChartSnapshot, i int, domain string) (string, error) {
	s := c.series[i]
	props := "<style:chart-properties"
	if l := s.Labels; l.any() {
		switch {
		case l.Value && l.Percentage:
			props += ` chart:data-label-number="value-and-percentage"`
		case l.Value:
			props += ` chart:data-label-number="value"`
		case l.Percentage:
			props += ` chart:data-label-number="percentage"`
		}
		if l.Category {
			props += ` chart:data-label-text="true"`
		}
		if l.LegendKey {
			props += ` chart:data-label-symbol="true"`
		}
	}
	if c.plot.markers && s.Marker != nil {
		if s.Marker.Symbol == MarkerNone {
			props += ` chart:symbol-type="none"`
		} else {
			props += ` chart:symbol-type="automatic"`
		}
	}
	props += "/>"
	graphic := ""
	if s.FillColor.ARGB != "" {
		graphic += fmt.Sprintf(` draw:fill="solid" draw:fill-color="%s"`, odfColor(s.FillColor))
	}
	if s.Outline != nil {
		graphic += fmt.Sprintf(` svg:stroke-color="%s" svg:stroke-width="%s"`,
			odfColor(s.Outline.Color), odfLength(int64(s.Outline.Width)*emuPerPoint))
	} else if s.FillColor.ARGB != "" && !c.plot.axes {
		graphic += fmt.Sprintf(` svg:stroke-color="%s"`, odfColor(s.FillColor))
	}
	if graphic != "" {
		props += "<style:graphic-properties" + graphic + "/>"
	}
	style := styles.name("chart", props)

	var points strings.Builder
	n := len(snap.Categories)
	next := 0
	for _, idx := range s.pointFillIndexes() {
		f := s.PointFills[idx]
		if idx < next || idx >= n || f == nil || f.Type == FillNone {
			continue
		}
		if idx > next {
			fmt.Fprintf(&points, "          <chart:data-point chart:repeated=\"%d\"/>\n", idx-next)
		}
		pt := styles.name("chart", fmt.Sprintf(`<style:graphic-properties draw:fill="solid" draw:fill-color="%s"/>`, odfColor(f.Color)))
		fmt.Fprintf(&points, "          <chart:data-point chart:style-name=\"%s\"/>\n", pt)
		next = idx + 1
	}
	if next < n {
		fmt.Fprintf(&points, "          <chart:data-point chart:repeated=\"%d\"/>\n", n-next)
	}

	values, err := snap.tableRange(i + 1)
	if err != nil {
		return "", err
	}
	label, err := snap.tableCell(0, i+1)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("        <chart:series chart:style-name=\"%s\" chart:values-cell-range-address=\"%s\" chart:label-cell-address=\"%s\" chart:class=\"%s\">%s\n%s        </chart:series>\n",
		style, values, label, c.plot.odpClass, domain, points.String()), nil
}

func (ec *exportContext) odfAxisXML(styles *odfStyles, dim string, ax *ChartAxis, snap *ChartSnapshot, catRange string, categories bool) string {
	if ax == nil {
		ax = NewChartAxis()
	}
	props := "<style:chart-properties"
	props += fmt.Sprintf(` chart:display-label="%s"`, boolText(ax.Visible))
	if ax.Reversed {
		props += ` chart:reverse-direction="true"`
	}
	if ax.Min != nil {
		props += ` chart:minimum="` + formatNumber(*ax.Min) + `"`
	}
	if ax.Max != nil {
		props += ` chart:maximum="` + formatNumber(*ax.Max) + `"`
	}
	if ax.MajorUnit != nil {
		props += ` chart:interval-major="` + formatNumber(*ax.MajorUnit) + `"`
	}
	if ax.MinorUnit != nil && ax.MajorUnit != nil && *ax.MinorUnit > 0 {
		props += fmt.Sprintf(` chart:interval-minor-divisor="%d"`, int(*ax.MajorUnit / *ax.MinorUnit))
	}
	if ax.TitleRotation != 0 {
		props += fmt.Sprintf(` style:rotation-angle="%d"`, ax.TitleRotation)
	}
	props += "/>"
	style := styles.name("chart", props)

	var sb strings.Builder
	fmt.Fprintf(&sb, "        <chart:axis chart:dimension=\"%s\" chart:name=\"primary-%s\" chart:style-name=\"%s\">\n", dim, dim, style)
	if ax.Title != "" {
		fmt.Fprintf(&sb, "          <chart:title><text:p>%s</text:p></chart:title>\n", odfText(ax.Title))
	}
	if categories && len(snap.Categories) > 0 {
		fmt.Fprintf(&sb, "          <chart:categories table:cell-range-address=\"%s\"/>\n", catRange)
	}
	if gl := ax.MajorGridlines; gl != nil {
		fmt.Fprintf(&sb, "          <chart:grid chart:class=\"major\" chart:style-name=\"%s\"/>\n", gridStyle(styles, gl))
	}
	if gl := ax.MinorGridlines; gl != nil {
		fmt.Fprintf(&sb, "          <chart:grid chart:class=\"minor\" chart:style-name=\"%s\"/>\n", gridStyle(styles, gl))
	}
	sb.WriteString("        </chart:axis>\n")
	return sb.String()
}

func gridStyle(styles *odfStyles, gl *Gridlines) string {
	return styles.name("chart", fmt.Sprintf(`<style:graphic-properties svg:stroke-color="%s" svg:stroke-width="%s"/>`,
		odfColor(gl.Color), odfLength(int64(gl.Width)*emuPerPoint)))
}

func odfLegendPosition(p LegendPosition) string {
	switch p {
	case LegendTop:
		return "top"
	case LegendLeft:
		return "start"
	case LegendRight:
		return "end"
	case LegendTopRight:
		return "top-end"
	}
	return "bottom"
}

func odfProjection(rightAngles bool) string {
	if rightAngles {
		return "parallel"
	}
	return "perspective"
}

// odfTableExtent is the address of the whole local table, header row and
// category column included.
func odfTableExtent(snap *ChartSnapshot) (string, error) {
	first, err := snap.tableCell(0, 0)
	if err != nil {
		return "", err
	}
	last, err := absCell(max(len(snap.Categories), 1), len(snap.Titles))
	if err != nil {
		return "", err
	}
	return first + ":." + last, nil
}

// odfLocalTable writes the snapshot as the chart's embedded data table.
func odfLocalTable(snap *ChartSnapshot) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "      <table:table table:name=\"%s\">\n", localTable)
	sb.WriteString("        <table:table-header-columns><table:table-column/></table:table-header-columns>\n")
	fmt.Fprintf(&sb, "        <table:table-columns><table:table-column table:number-columns-repeated=\"%d\"/></table:table-columns>\n", max(len(snap.Titles), 1))
	sb.WriteString("        <table:table-header-rows>\n          <table:table-row>\n            <table:table-cell><text:p/></table:table-cell>\n")
	for _, t := range snap.Titles {
		fmt.Fprintf(&sb, "            <table:table-cell office:value-type=\"string\"><text:p>%s</text:p></table:table-cell>\n", odfText(t))
	}
	sb.WriteString("          </table:table-row>\n        </table:table-header-rows>\n        <table:table-rows>\n")
	for j, cat := range snap.Categories {
		sb.WriteString("          <table:table-row>\n")
		fmt.Fprintf(&sb, "            <table:table-cell office:value-type=\"string\"><text:p>%s</text:p></table:table-cell>\n", odfText(cat))
		for i := range snap.Titles {
			v := formatNumber(snap.Values[i][j])
			fmt.Fprintf(&sb, "            <table:table-cell office:value-type=\"float\" office:value=\"%s\"><text:p>%s</text:p></table:table-cell>\n", v, v)
		}
		sb.WriteString("          </table:table-row>\n")
	}
	sb.WriteString("        </table:table-rows>\n      </table:table>\n")
	return sb.String()
}
