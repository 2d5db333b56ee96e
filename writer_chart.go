package gopresentation

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// chartPlot is the writer strategy of one chart type: the plot element, the
// parts around the series list, and what the series and axes look like.
type chartPlot struct {
	element  string // c:* plot element
	odpClass string // chart:class in ODF
	axes     bool
	threeD   bool
	scatter  bool
	markers  bool
	// header is written after the opening element, footer before the
	// closing one. serTail closes each c:ser.
	header  func() string
	footer  func() string
	serTail func() string
	// odfProps are the chart-properties attributes of the ODF plot area.
	odfProps func() string
}

const axisIDs = "        <c:axId val=\"1\"/>\n        <c:axId val=\"2\"/>\n"

func noXML() string { return "" }

// plotFor returns the strategy for a chart type. Types defined outside this
// package have none.
func plotFor(ct ChartType) (chartPlot, error) {
	switch c := ct.(type) {
	case *Bar3DChart:
		return chartPlot{
			element: "c:bar3DChart", odpClass: "chart:bar", axes: true, threeD: true,
			header: func() string { return barHeader(&c.BarChart) },
			footer: func() string {
				return fmt.Sprintf("        <c:gapWidth val=\"%d\"/>\n%s", c.GapWidth, axisIDs)
			},
			serTail:  noXML,
			odfProps: func() string { return barODF(&c.BarChart) + ` chart:three-dimensional="true"` },
		}, nil
	case *BarChart:
		return chartPlot{
			element: "c:barChart", odpClass: "chart:bar", axes: true,
			header: func() string { return barHeader(c) },
			footer: func() string {
				return fmt.Sprintf("        <c:gapWidth val=\"%d\"/>\n        <c:overlap val=\"%d\"/>\n%s",
					c.GapWidth, c.Overlap, axisIDs)
			},
			serTail:  noXML,
			odfProps: func() string { return barODF(c) },
		}, nil
	case *LineChart:
		return chartPlot{
			element: "c:lineChart", odpClass: "chart:line", axes: true, markers: true,
			header:   func() string { return "        <c:grouping val=\"standard\"/>\n        <c:varyColors val=\"0\"/>\n" },
			footer:   func() string { return "        <c:marker val=\"1\"/>\n" + axisIDs },
			serTail:  func() string { return smoothXML(c.Smooth) },
			odfProps: func() string { return interpolationODF(c.Smooth) },
		}, nil
	case *AreaChart:
		return chartPlot{
			element: "c:areaChart", odpClass: "chart:area", axes: true,
			header:   func() string { return "        <c:grouping val=\"standard\"/>\n        <c:varyColors val=\"0\"/>\n" },
			footer:   func() string { return axisIDs },
			serTail:  noXML,
			odfProps: noXML,
		}, nil
	case *Pie3DChart:
		return chartPlot{
			element: "c:pie3DChart", odpClass: "chart:circle", threeD: true,
			header:   func() string { return "        <c:varyColors val=\"1\"/>\n" },
			footer:   noXML,
			serTail:  noXML,
			odfProps: func() string { return ` chart:three-dimensional="true"` },
		}, nil
	case *PieChart:
		return chartPlot{
			element: "c:pieChart", odpClass: "chart:circle",
			header:   func() string { return "        <c:varyColors val=\"1\"/>\n" },
			footer:   func() string { return "        <c:firstSliceAng val=\"0\"/>\n" },
			serTail:  noXML,
			odfProps: noXML,
		}, nil
	case *DoughnutChart:
		return chartPlot{
			element: "c:doughnutChart", odpClass: "chart:ring",
			header: func() string { return "        <c:varyColors val=\"1\"/>\n" },
			footer: func() string {
				return fmt.Sprintf("        <c:firstSliceAng val=\"0\"/>\n        <c:holeSize val=\"%d\"/>\n", c.HoleSize)
			},
			serTail:  noXML,
			odfProps: noXML,
		}, nil
	case *ScatterChart:
		return chartPlot{
			element: "c:scatterChart", odpClass: "chart:scatter", axes: true, scatter: true, markers: true,
			header:   func() string { return "        <c:scatterStyle val=\"lineMarker\"/>\n        <c:varyColors val=\"0\"/>\n" },
			footer:   func() string { return axisIDs },
			serTail:  func() string { return smoothXML(c.Smooth) },
			odfProps: func() string { return interpolationODF(c.Smooth) },
		}, nil
	case *RadarChart:
		return chartPlot{
			element: "c:radarChart", odpClass: "chart:radar", axes: true, markers: true,
			header:   func() string { return "        <c:radarStyle val=\"marker\"/>\n        <c:varyColors val=\"0\"/>\n" },
			footer:   func() string { return axisIDs },
			serTail:  noXML,
			odfProps: noXML,
		}, nil
	default:
		return chartPlot{}, fmt.Errorf("%w: %T", ErrUnsupportedChartType, ct)
	}
}

func barHeader(c *BarChart) string {
	return fmt.Sprintf("        <c:barDir val=\"%s\"/>\n        <c:grouping val=\"%s\"/>\n        <c:varyColors val=\"0\"/>\n",
		c.Direction, c.Grouping)
}

func barODF(c *BarChart) string {
	attrs := ""
	if c.Direction == BarDirectionHorizontal {
		attrs += ` chart:vertical="true"`
	}
	switch c.Grouping {
	case BarGroupingStacked:
		attrs += ` chart:stacked="true"`
	case BarGroupingPercentStacked:
		attrs += ` chart:percentage="true"`
	}
	return attrs + fmt.Sprintf(` chart:gap-width="%d" chart:overlap="%d"`, c.GapWidth, c.Overlap)
}

func interpolationODF(smooth bool) string {
	if smooth {
		return ` chart:interpolation="cubic-spline"`
	}
	return ""
}

func smoothXML(smooth bool) string {
	return fmt.Sprintf("          <c:smooth val=\"%s\"/>\n", boolToXML(smooth))
}

// chartXML renders ppt/charts/chart{N}.xml.
func (ec *exportContext) chartXML(c *chartEntry) ([]byte, error) {
	chart := c.shape
	snap := c.snapshot
	if snap == nil {
		snap = newChartSnapshot(c.series)
	}

	var plot strings.Builder
	fmt.Fprintf(&plot, "      <%s>\n", c.plot.element)
	plot.WriteString(c.plot.header())
	series, err := ec.seriesXML(c, snap)
	if err != nil {
		return nil, err
	}
	plot.WriteString(series)
	plot.WriteString(c.plot.footer())
	fmt.Fprintf(&plot, "      </%s>\n", c.plot.element)

	axes := ""
	if c.plot.axes {
		axes = ec.axesXML(chart, c.plot.scatter)
	}

	view3D := ""
	if c.plot.threeD && chart.view3D != nil {
		v := chart.view3D
		hp := ""
		if v.HeightPercent != nil {
			hp = fmt.Sprintf(`<c:hPercent val="%d"/>`, *v.HeightPercent)
		} else {
			hp = `<c:autoscale val="1"/>`
		}
		view3D = fmt.Sprintf("    <c:view3D><c:rotX val=\"%d\"/>%s<c:rotY val=\"%d\"/><c:depthPercent val=\"%d\"/><c:rAngAx val=\"%s\"/></c:view3D>\n",
			v.RotX, hp, v.RotY, v.DepthPercent, boolToXML(v.RightAngleAxes))
	}

	external := ""
	if c.workbookRel != "" {
		external = fmt.Sprintf("  <c:externalData r:id=\"%s\"><c:autoUpdate val=\"0\"/></c:externalData>\n", c.workbookRel)
	}

	blanks := chart.blanks
	if blanks == "" {
		blanks = BlankAsZero
	}

	content := fmt.Sprintf(xmlDecl+`<c:chartSpace xmlns:c="%s" xmlns:a="%s" xmlns:r="%s">
  <c:lang val="%s"/>
  <c:roundedCorners val="0"/>
  <c:chart>
%s%s    <c:plotArea>
      <c:layout/>
%s%s    </c:plotArea>
%s    <c:plotVisOnly val="1"/>
    <c:dispBlanksAs val="%s"/>
  </c:chart>
%s</c:chartSpace>`,
		nsChartML, nsDrawingML, nsOfficeDocRels,
		ec.lang.String(),
		ec.chartTitleXML(chart.title), view3D,
		plot.String(), axes,
		legendXML(chart.legend),
		blanks,
		external)
	return []byte(content), nil
}

func (ec *exportContext) chartTitleXML(t *ChartTitle) string {
	if t == nil {
		return ""
	}
	if !t.Visible || t.Text == "" {
		return "    <c:autoTitleDeleted val=\"1\"/>\n"
	}
	font := t.Font
	if font == nil {
		font = NewFont()
	}
	return fmt.Sprintf(`    <c:title>
      <c:tx>
        <c:rich>
          <a:bodyPr/>
          <a:lstStyle/>
          <a:p>
            <a:r>
              <a:rPr lang="%s" sz="%d" b="%s"/>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
        </c:rich>
      </c:tx>
      <c:overlay val="0"/>
    </c:title>
    <c:autoTitleDeleted val="0"/>
`, ec.lang.String(), font.Size*100, boolToXML(font.Bold), xmlEscape(t.Text))
}

func legendXML(l *ChartLegend) string {
	if l == nil || !l.Visible {
		return ""
	}
	pos := l.Position
	if pos == "" {
		pos = LegendBottom
	}
	return fmt.Sprintf("    <c:legend>\n      <c:legendPos val=\"%s\"/>\n      <c:overlay val=\"0\"/>\n    </c:legend>\n", pos)
}

// --- Series ---

// seriesXML writes every c:ser of the plot. Chart data comes from the
// snapshot; with an embedded workbook each value list also carries the
// formula of its cell range, otherwise values are inline literals.
func (ec *exportContext) seriesXML(c *chartEntry, snap *ChartSnapshot) (string, error) {
	withRefs := c.snapshot != nil
	var catRef string
	if withRefs {
		var err error
		if catRef, err = snap.CategoryRef(); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	for i, s := range c.series {
		fmt.Fprintf(&sb, "        <c:ser>\n          <c:idx val=\"%d\"/>\n          <c:order val=\"%d\"/>\n", i, i)

		var titleRef, valRef string
		if withRefs {
			var err error
			if titleRef, err = snap.SeriesTitleRef(i); err != nil {
				return "", err
			}
			if valRef, err = snap.ValueRef(i); err != nil {
				return "", err
			}
			fmt.Fprintf(&sb, "          <c:tx><c:strRef><c:f>%s</c:f><c:strCache><c:ptCount val=\"1\"/><c:pt idx=\"0\"><c:v>%s</c:v></c:pt></c:strCache></c:strRef></c:tx>\n",
				titleRef, xmlEscape(s.Title))
		} else {
			fmt.Fprintf(&sb, "          <c:tx><c:v>%s</c:v></c:tx>\n", xmlEscape(s.Title))
		}

		sb.WriteString(seriesShapeXML(s))
		if c.plot.markers && s.Marker != nil {
			fmt.Fprintf(&sb, "          <c:marker><c:symbol val=\"%s\"/><c:size val=\"%d\"/></c:marker>\n",
				s.Marker.Symbol, s.Marker.Size)
		}
		for _, idx := range s.pointFillIndexes() {
			f := fillXML(s.PointFills[idx])
			if f == "" {
				continue
			}
			fmt.Fprintf(&sb, "          <c:dPt><c:idx val=\"%d\"/><c:spPr>%s</c:spPr></c:dPt>\n", idx, f)
		}
		if s.Labels.any() {
			sb.WriteString(dataLabelsXML(s.Labels))
		}

		catTag, valTag := "c:cat", "c:val"
		if c.plot.scatter {
			catTag, valTag = "c:xVal", "c:yVal"
		}
		if len(snap.Categories) > 0 {
			fmt.Fprintf(&sb, "          <%s>\n", catTag)
			sb.WriteString(strDataXML(snap.Categories, withRefs, catRef))
			fmt.Fprintf(&sb, "          </%s>\n", catTag)
		}
		fmt.Fprintf(&sb, "          <%s>\n", valTag)
		sb.WriteString(numDataXML(snap.Values[i], withRefs, valRef))
		fmt.Fprintf(&sb, "          </%s>\n", valTag)

		sb.WriteString(c.plot.serTail())
		sb.WriteString("        </c:ser>\n")
	}
	return sb.String(), nil
}

func seriesShapeXML(s *ChartSeries) string {
	fill := ""
	if s.FillColor.ARGB != "" {
		fill = solidFillXML(s.FillColor)
	}
	line := ""
	if s.Outline != nil {
		line = lnXML("a:ln", int64(s.Outline.Width)*emuPerPoint, s.Outline.Color, BorderSolid, "")
	}
	if fill == "" && line == "" {
		return ""
	}
	return "          <c:spPr>" + fill + line + "</c:spPr>\n"
}

func dataLabelsXML(l DataLabels) string {
	var sb strings.Builder
	sb.WriteString("          <c:dLbls>\n")
	if l.Position != "" {
		fmt.Fprintf(&sb, "            <c:dLblPos val=\"%s\"/>\n", l.Position)
	}
	for _, flag := range [...]struct {
		tag string
		on  bool
	}{
		{"c:showLegendKey", l.LegendKey},
		{"c:showVal", l.Value},
		{"c:showCatName", l.Category},
		{"c:showSerName", l.SeriesName},
		{"c:showPercent", l.Percentage},
		{"c:showBubbleSize", false},
	} {
		fmt.Fprintf(&sb, "            <%s val=\"%s\"/>\n", flag.tag, boolToXML(flag.on))
	}
	if l.Separator != "" && l.Separator != "," {
		fmt.Fprintf(&sb, "            <c:separator>%s</c:separator>\n", xmlEscape(l.Separator))
	}
	if l.LeaderLines {
		sb.WriteString("            <c:showLeaderLines val=\"1\"/>\n")
	}
	sb.WriteString("          </c:dLbls>\n")
	return sb.String()
}

func strDataXML(values []string, withRef bool, ref string) string {
	var pts strings.Builder
	fmt.Fprintf(&pts, "              <c:ptCount val=\"%d\"/>\n", len(values))
	for i, v := range values {
		fmt.Fprintf(&pts, "              <c:pt idx=\"%d\"><c:v>%s</c:v></c:pt>\n", i, xmlEscape(v))
	}
	if withRef {
		return fmt.Sprintf("            <c:strRef><c:f>%s</c:f><c:strCache>\n%s            </c:strCache></c:strRef>\n", ref, pts.String())
	}
	return "            <c:strLit>\n" + pts.String() + "            </c:strLit>\n"
}

func numDataXML(values []float64, withRef bool, ref string) string {
	var pts strings.Builder
	fmt.Fprintf(&pts, "              <c:formatCode>General</c:formatCode>\n              <c:ptCount val=\"%d\"/>\n", len(values))
	for i, v := range values {
		fmt.Fprintf(&pts, "              <c:pt idx=\"%d\"><c:v>%s</c:v></c:pt>\n", i, formatNumber(v))
	}
	if withRef {
		return fmt.Sprintf("            <c:numRef><c:f>%s</c:f><c:numCache>\n%s            </c:numCache></c:numRef>\n", ref, pts.String())
	}
	return "            <c:numLit>\n" + pts.String() + "            </c:numLit>\n"
}

// --- Axes ---

func (ec *exportContext) axesXML(chart *ChartShape, scatter bool) string {
	axX := chart.plotArea.axisX
	axY := chart.plotArea.axisY
	if axX == nil {
		axX = NewChartAxis()
	}
	if axY == nil {
		axY = NewChartAxis()
	}
	first := "c:catAx"
	if scatter {
		first = "c:valAx"
	}
	return ec.axisXML(first, 1, 2, "b", axX, false) + ec.axisXML("c:valAx", 2, 1, "l", axY, true)
}

func (ec *exportContext) axisXML(tag string, id, cross int, pos string, ax *ChartAxis, values bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "      <%s>\n        <c:axId val=\"%d\"/>\n", tag, id)
	fmt.Fprintf(&sb, "        <c:scaling>\n          <c:orientation val=\"%s\"/>\n", ax.orientation())
	if ax.Max != nil {
		fmt.Fprintf(&sb, "          <c:max val=\"%s\"/>\n", formatNumber(*ax.Max))
	}
	if ax.Min != nil {
		fmt.Fprintf(&sb, "          <c:min val=\"%s\"/>\n", formatNumber(*ax.Min))
	}
	sb.WriteString("        </c:scaling>\n")
	fmt.Fprintf(&sb, "        <c:delete val=\"%s\"/>\n        <c:axPos val=\"%s\"/>\n", boolToXML(!ax.Visible), pos)
	if ax.MajorGridlines != nil {
		sb.WriteString(gridlinesXML("c:majorGridlines", ax.MajorGridlines))
	}
	if ax.MinorGridlines != nil {
		sb.WriteString(gridlinesXML("c:minorGridlines", ax.MinorGridlines))
	}
	if ax.Title != "" {
		rot := ""
		if ax.TitleRotation != 0 {
			rot = fmt.Sprintf(` rot="%d"`, ax.TitleRotation*60000)
		}
		fmt.Fprintf(&sb, "        <c:title><c:tx><c:rich><a:bodyPr%s/><a:lstStyle/><a:p><a:r><a:rPr lang=\"%s\"/><a:t>%s</a:t></a:r></a:p></c:rich></c:tx><c:overlay val=\"0\"/></c:title>\n",
			rot, ec.lang.String(), xmlEscape(ax.Title))
	}
	fmt.Fprintf(&sb, "        <c:majorTickMark val=\"%s\"/>\n        <c:minorTickMark val=\"%s\"/>\n        <c:tickLblPos val=\"%s\"/>\n",
		cmp.Or(ax.MajorTick, TickMarkNone), cmp.Or(ax.MinorTick, TickMarkNone), cmp.Or(ax.Labels, TickLabelsNextTo))
	fmt.Fprintf(&sb, "        <c:crossAx val=\"%d\"/>\n", cross)
	fmt.Fprintf(&sb, "        <c:crosses val=\"%s\"/>\n", cmp.Or(ax.Crosses, AxisCrossesAuto))
	switch {
	case values:
		sb.WriteString("        <c:crossBetween val=\"between\"/>\n")
		if ax.MajorUnit != nil {
			fmt.Fprintf(&sb, "        <c:majorUnit val=\"%s\"/>\n", formatNumber(*ax.MajorUnit))
		}
		if ax.MinorUnit != nil {
			fmt.Fprintf(&sb, "        <c:minorUnit val=\"%s\"/>\n", formatNumber(*ax.MinorUnit))
		}
	case tag == "c:catAx":
		sb.WriteString("        <c:auto val=\"1\"/>\n        <c:lblAlgn val=\"ctr\"/>\n        <c:lblOffset val=\"100\"/>\n")
	default:
		sb.WriteString("        <c:crossBetween val=\"midCat\"/>\n")
	}
	fmt.Fprintf(&sb, "      </%s>\n", tag)
	return sb.String()
}

// formatNumber writes a float in the shortest form that reads back exactly.
func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func gridlinesXML(tag string, gl *Gridlines) string {
	return fmt.Sprintf(`        <%s>
          <c:spPr>
            <a:ln w="%d">
              <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
            </a:ln>
          </c:spPr>
        </%s>
`, tag, int64(gl.Width)*emuPerPoint, colorRGB(gl.Color), tag)
}
