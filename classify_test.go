package gopresentation

import (
	"errors"
	"testing"

	"go.followtheprocess.codes/test"
)

func TestClassifyShape(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  ShapeClass
	}{
		{
			name:  "text",
			shape: NewRichTextShape(),
			want:  ShapeClass{Kind: ShapeTypeRichText, Element: "p:sp", ODPElement: "draw:frame"},
		},
		{
			name:  "picture",
			shape: NewDrawingShape(),
			want:  ShapeClass{Kind: ShapeTypeDrawing, Element: "p:pic", ODPElement: "draw:frame", Relationship: true},
		},
		{
			name:  "memory picture",
			shape: NewMemoryDrawingShape(),
			want:  ShapeClass{Kind: ShapeTypeMemoryDrawing, Element: "p:pic", ODPElement: "draw:frame", Relationship: true},
		},
		{
			name:  "auto shape",
			shape: NewAutoShape(),
			want:  ShapeClass{Kind: ShapeTypeAutoShape, Element: "p:sp", ODPElement: "draw:custom-shape"},
		},
		{
			name:  "line",
			shape: NewLineShape(),
			want:  ShapeClass{Kind: ShapeTypeLine, Element: "p:cxnSp", ODPElement: "draw:line"},
		},
		{
			name:  "table",
			shape: NewTableShape(2, 2),
			want:  ShapeClass{Kind: ShapeTypeTable, Element: "p:graphicFrame", ODPElement: "draw:frame"},
		},
		{
			name:  "chart",
			shape: NewChartShape(),
			want:  ShapeClass{Kind: ShapeTypeChart, Element: "p:graphicFrame", ODPElement: "draw:frame", Relationship: true},
		},
		{
			name:  "group",
			shape: NewGroupShape(),
			want:  ShapeClass{Kind: ShapeTypeGroup, Element: "p:grpSp", ODPElement: "draw:g", Recurses: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ClassifyShape(tt.shape)
			test.Ok(t, err)
			test.Equal(t, got, tt.want)
		})
	}
}

func TestClassifyNilShape(t *testing.T) {
	_, err := ClassifyShape(nil)
	test.True(t, errors.Is(err, errNilShape))
}

func TestWalkShapesStopsAtNil(t *testing.T) {
	var c classifier
	err := walkShapes([]Shape{NewRichTextShape(), nil}, &c)
	test.True(t, errors.Is(err, errNilShape))
	test.Equal(t, c.class.Kind, ShapeTypeRichText)
}

func TestShapeParagraphsAndLinkedRuns(t *testing.T) {
	table := NewTableShape(2, 2)
	table.GetCell(0, 0).CreateTextRun("plain")
	a := table.GetCell(0, 1).CreateTextRun("a")
	a.SetHyperlink(NewHyperlink("https://a.example"))
	b := table.GetCell(1, 0).CreateTextRun("b")
	b.SetHyperlink(NewInternalHyperlink(1))

	paras := shapeParagraphs(table)
	test.Equal(t, len(paras), 4)
	runs := linkedRuns(paras)
	test.Equal(t, len(runs), 2)
	test.True(t, runs[0] == a, test.Context("row-major order"))
	test.True(t, runs[1] == b)

	test.Equal(t, len(shapeParagraphs(NewAutoShape())), 0)
}
