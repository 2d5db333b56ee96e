package gopresentation

// TableShape is a grid of cells. The grid is fixed at creation; merged
// cells are expressed with spans on the top-left cell.
type TableShape struct {
	BaseShape
	rows    [][]*TableCell
	numRows int
	numCols int
}

func (t *TableShape) GetType() ShapeType          { return ShapeTypeTable }
func (t *TableShape) accept(v shapeVisitor) error { return v.visitTable(t) }

// NewTableShape creates a rows x cols table of empty cells. Negative
// dimensions are treated as zero.
func NewTableShape(rows, cols int) *TableShape {
	rows, cols = max(rows, 0), max(cols, 0)
	t := &TableShape{numRows: rows, numCols: cols, rows: make([][]*TableCell, rows)}
	for r := range t.rows {
		t.rows[r] = make([]*TableCell, cols)
		for c := range t.rows[r] {
			t.rows[r][c] = NewTableCell()
		}
	}
	return t
}

// GetCell returns the cell at row, col or nil when out of range.
func (t *TableShape) GetCell(row, col int) *TableCell {
	if row < 0 || row >= t.numRows || col < 0 || col >= t.numCols {
		return nil
	}
	return t.rows[row][col]
}

func (t *TableShape) GetRows() [][]*TableCell { return t.rows }
func (t *TableShape) GetNumRows() int         { return t.numRows }
func (t *TableShape) GetNumCols() int         { return t.numCols }

// TableCell is one cell: paragraphs plus fill, borders and spans.
type TableCell struct {
	textBody
	fill    *Fill
	border  *CellBorders
	colSpan int
	rowSpan int
}

// CellBorders are the four edges of a cell.
type CellBorders struct {
	Top    *Border
	Bottom *Border
	Left   *Border
	Right  *Border
}

// NewTableCell creates an empty cell without borders spanning one row and
// one column.
func NewTableCell() *TableCell {
	return &TableCell{
		textBody: newTextBody(),
		fill:     NewFill(),
		border:   &CellBorders{Top: NewBorder(), Bottom: NewBorder(), Left: NewBorder(), Right: NewBorder()},
		colSpan:  1,
		rowSpan:  1,
	}
}

// SetText appends text to the active paragraph.
func (tc *TableCell) SetText(text string) *TableCell {
	tc.CreateTextRun(text)
	return tc
}

func (tc *TableCell) GetFill() *Fill           { return tc.fill }
func (tc *TableCell) SetFill(f *Fill)          { tc.fill = f }
func (tc *TableCell) GetBorders() *CellBorders { return tc.border }
func (tc *TableCell) SetColSpan(span int)      { tc.colSpan = span }
func (tc *TableCell) GetColSpan() int          { return tc.colSpan }
func (tc *TableCell) SetRowSpan(span int)      { tc.rowSpan = span }
func (tc *TableCell) GetRowSpan() int          { return tc.rowSpan }
