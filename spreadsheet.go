package gopresentation

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"

	gospreadsheet "github.com/VantageDataChat/GoExcel"
)

const snapshotSheet = "Sheet1"

// ChartSnapshot is the tabular form of a chart's data. Row 1 holds the series
// titles from column B on, column A holds the categories from row 2 on. The
// embedded workbook and every cell reference a chart part writes come from
// the same snapshot, so they cannot disagree.
type ChartSnapshot struct {
	SheetName  string
	Categories []string
	Titles     []string
	// Values is indexed [series][category]. A category a series does not
	// define is 0.
	Values [][]float64
}

func newChartSnapshot(series []*ChartSeries) *ChartSnapshot {
	cats := chartCategories(series)
	snap := &ChartSnapshot{
		SheetName:  snapshotSheet,
		Categories: cats,
		Titles:     make([]string, len(series)),
		Values:     make([][]float64, len(series)),
	}
	for i, s := range series {
		snap.Titles[i] = s.Title
		row := make([]float64, len(cats))
		for j, c := range cats {
			row[j] = s.Values[c]
		}
		snap.Values[i] = row
	}
	return snap
}

const localTable = "local-table"

// absCell turns a 0-based row and column into an absolute A1 reference
// such as $B$2.
func absCell(row, col int) (string, error) {
	if row < 0 {
		return "", fmt.Errorf("cell row %d is negative", row)
	}
	name, err := gospreadsheet.CellName(row, col)
	if err != nil {
		return "", fmt.Errorf("cell %d,%d: %w", row, col, err)
	}
	i := strings.IndexAny(name, "0123456789")
	return "$" + name[:i] + "$" + name[i:], nil
}

// columnRange returns the first and last data cell of a column: row 2 down
// to the last category, or just row 2 without categories.
func (s *ChartSnapshot) columnRange(col int) (first, last string, err error) {
	if first, err = absCell(1, col); err != nil {
		return "", "", err
	}
	if last, err = absCell(max(len(s.Categories), 1), col); err != nil {
		return "", "", err
	}
	return first, last, nil
}

// SeriesTitleRef returns the formula of the title cell of series i.
func (s *ChartSnapshot) SeriesTitleRef(i int) (string, error) {
	cell, err := absCell(0, i+1)
	if err != nil {
		return "", err
	}
	return s.SheetName + "!" + cell, nil
}

// CategoryRef returns the formula of the category column.
func (s *ChartSnapshot) CategoryRef() (string, error) {
	return s.rangeRef(0)
}

// ValueRef returns the formula of the value column of series i.
func (s *ChartSnapshot) ValueRef(i int) (string, error) {
	return s.rangeRef(i + 1)
}

func (s *ChartSnapshot) rangeRef(col int) (string, error) {
	first, last, err := s.columnRange(col)
	if err != nil {
		return "", err
	}
	return s.SheetName + "!" + first + ":" + last, nil
}

// tableRange returns the ODF cell range address of a column of the embedded
// local table, e.g. local-table.$B$2:.$B$4. The empty sheet after the colon
// repeats the first one.
func (s *ChartSnapshot) tableRange(col int) (string, error) {
	first, last, err := s.columnRange(col)
	if err != nil {
		return "", err
	}
	return localTable + "." + first + ":." + last, nil
}

// tableCell returns the ODF address of one cell of the local table.
func (s *ChartSnapshot) tableCell(row, col int) (string, error) {
	cell, err := absCell(row, col)
	if err != nil {
		return "", err
	}
	return localTable + "." + cell, nil
}

// SpreadsheetEncoder turns a chart snapshot into workbook bytes.
type SpreadsheetEncoder interface {
	Encode(snap *ChartSnapshot) ([]byte, error)
}

// DefaultSpreadsheetEncoder returns the XLSX encoder used for embedded
// chart workbooks.
func DefaultSpreadsheetEncoder() SpreadsheetEncoder { return xlsxEncoder{} }

type xlsxEncoder struct{}

func (xlsxEncoder) Encode(snap *ChartSnapshot) ([]byte, error) {
	wb := gospreadsheet.New()
	ws := wb.GetActiveSheet()
	ws.SetTitle(snap.SheetName)

	header := gospreadsheet.NewStyle().SetFont(&gospreadsheet.Font{Bold: true})
	for i, title := range snap.Titles {
		cell, err := gospreadsheet.CellName(0, i+1)
		if err != nil {
			return nil, err
		}
		ws.SetCellValue(cell, title)
		ws.SetCellStyle(cell, header)
	}
	for j, cat := range snap.Categories {
		cell, err := gospreadsheet.CellName(j+1, 0)
		if err != nil {
			return nil, err
		}
		ws.SetCellValue(cell, cat)
		for i := range snap.Titles {
			cell, err := gospreadsheet.CellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			ws.SetCellValue(cell, snap.Values[i][j])
		}
	}
	wb.Properties.Title = snap.SheetName
	wb.Properties.Creator = "GoDeck"

	var buf bytes.Buffer
	if err := gospreadsheet.NewXLSXWriter().Write(wb, &buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return canonicalWorkbook(buf.Bytes())
}

const sharedStringsPart = "xl/sharedStrings.xml"

// sharedStringCell matches a shared string cell as GoExcel writes it.
var sharedStringCell = regexp.MustCompile(`(<c r="[A-Z]+[0-9]+" t="s"><v>)([0-9]+)(</v>)`)

// canonicalWorkbook renumbers the shared strings of an XLSX package in
// order of first use, sheet by sheet. GoExcel collects the table from a
// map, so without this two encodings of one snapshot differ. Every other
// entry is copied unchanged.
func canonicalWorkbook(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	var sheets []*zip.File
	var table *zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == sharedStringsPart:
			table = f
		case strings.HasPrefix(f.Name, "xl/worksheets/sheet"):
			sheets = append(sheets, f)
		}
	}
	if table == nil {
		return data, nil
	}

	raw, err := readZipEntry(table)
	if err != nil {
		return nil, err
	}
	var sst struct {
		Items []struct {
			Text string `xml:"t"`
		} `xml:"si"`
	}
	if err := xml.Unmarshal(raw, &sst); err != nil {
		return nil, fmt.Errorf("read %s: %w", sharedStringsPart, err)
	}

	remap := make(map[int]int, len(sst.Items))
	var order []int
	rewritten := make(map[string][]byte, len(sheets)+1)
	for _, f := range sheets {
		body, err := readZipEntry(f)
		if err != nil {
			return nil, err
		}
		var bad error
		rewritten[f.Name] = sharedStringCell.ReplaceAllFunc(body, func(m []byte) []byte {
			sub := sharedStringCell.FindSubmatch(m)
			old, err := strconv.Atoi(string(sub[2]))
			if err != nil || old >= len(sst.Items) {
				bad = fmt.Errorf("%s: shared string %s out of range", f.Name, sub[2])
				return m
			}
			idx, ok := remap[old]
			if !ok {
				idx = len(order)
				remap[old] = idx
				order = append(order, old)
			}
			return slices.Concat(sub[1], []byte(strconv.Itoa(idx)), sub[3])
		})
		if bad != nil {
			return nil, bad
		}
	}
	// Strings no cell uses keep a stable place at the end.
	var unused []int
	for i := range sst.Items {
		if _, ok := remap[i]; !ok {
			unused = append(unused, i)
		}
	}
	slices.SortFunc(unused, func(a, b int) int { return strings.Compare(sst.Items[a].Text, sst.Items[b].Text) })
	order = append(order, unused...)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	fmt.Fprintf(&sb, `<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main" count="%d" uniqueCount="%d">`, len(order), len(order))
	for _, old := range order {
		sb.WriteString("<si><t>" + xmlEscape(sst.Items[old].Text) + "</t></si>")
	}
	sb.WriteString("</sst>")
	rewritten[sharedStringsPart] = []byte(sb.String())

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, f := range zr.File {
		body, ok := rewritten[f.Name]
		if !ok {
			if err := zw.Copy(f); err != nil {
				return nil, fmt.Errorf("copy %s: %w", f.Name, err)
			}
			continue
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(body); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return body, nil
}
