package gopresentation

import (
	"errors"
	"fmt"
)

// shapeVisitor is one pass over the shape tree. The relationship collector,
// both slide emitters and validation each implement it, so a new shape kind
// does not compile until every pass handles it.
type shapeVisitor interface {
	visitRichText(s *RichTextShape) error
	visitDrawing(s *DrawingShape) error
	visitMemoryDrawing(s *MemoryDrawingShape) error
	visitAutoShape(s *AutoShape) error
	visitLine(s *LineShape) error
	visitTable(s *TableShape) error
	visitChart(s *ChartShape) error
	visitGroup(s *GroupShape) error
}

var errNilShape = errors.New("nil shape")

// walkShapes visits shapes in z-order. Groups are not entered; a visitor
// recurses from visitGroup so it can wrap the children.
func walkShapes(shapes []Shape, v shapeVisitor) error {
	for i, s := range shapes {
		if s == nil {
			return fmt.Errorf("shape %d: %w", i+1, errNilShape)
		}
		if err := s.accept(v); err != nil {
			return err
		}
	}
	return nil
}

// findGroupCycle returns a group that contains itself, or nil. A group
// shared by several parents is only searched once.
func findGroupCycle(shapes []Shape) *GroupShape {
	const (
		open = iota + 1
		done
	)
	state := make(map[*GroupShape]int)
	var visit func([]Shape) *GroupShape
	visit = func(shapes []Shape) *GroupShape {
		for _, s := range shapes {
			g, ok := s.(*GroupShape)
			if !ok || g == nil {
				continue
			}
			switch state[g] {
			case open:
				return g
			case done:
				continue
			}
			state[g] = open
			if c := visit(g.shapes); c != nil {
				return c
			}
			state[g] = done
		}
		return nil
	}
	return visit(shapes)
}

// checkGroups fails with ErrGroupCycle when a group in shapes contains
// itself. Every recursive walk over groups runs after it.
func checkGroups(shapes []Shape) error {
	if g := findGroupCycle(shapes); g != nil {
		return fmt.Errorf("group %q: %w", g.name, ErrGroupCycle)
	}
	return nil
}

// ShapeClass describes how the writers treat one shape.
type ShapeClass struct {
	Kind ShapeType
	// Element is the PresentationML element the shape is written as.
	Element string
	// ODPElement is the draw:* element used in content.xml.
	ODPElement string
	// Relationship is set when the shape owns a slide relationship of its
	// own (pictures and charts). Hyperlinks are counted separately.
	Relationship bool
	// Recurses is set for containers whose children are visited in turn.
	Recurses bool
}

// ClassifyShape reports the writer routine, relationship need and recursion
// for a shape.
func ClassifyShape(s Shape) (ShapeClass, error) {
	if s == nil {
		return ShapeClass{}, errNilShape
	}
	var c classifier
	if err := s.accept(&c); err != nil {
		return ShapeClass{}, err
	}
	return c.class, nil
}

type classifier struct {
	class ShapeClass
}

func (c *classifier) visitRichText(*RichTextShape) error {
	c.class = ShapeClass{Kind: ShapeTypeRichText, Element: "p:sp", ODPElement: "draw:frame"}
	return nil
}

func (c *classifier) visitDrawing(*DrawingShape) error {
	c.class = ShapeClass{Kind: ShapeTypeDrawing, Element: "p:pic", ODPElement: "draw:frame", Relationship: true}
	return nil
}

func (c *classifier) visitMemoryDrawing(*MemoryDrawingShape) error {
	c.class = ShapeClass{Kind: ShapeTypeMemoryDrawing, Element: "p:pic", ODPElement: "draw:frame", Relationship: true}
	return nil
}

func (c *classifier) visitAutoShape(*AutoShape) error {
	c.class = ShapeClass{Kind: ShapeTypeAutoShape, Element: "p:sp", ODPElement: "draw:custom-shape"}
	return nil
}

func (c *classifier) visitLine(*LineShape) error {
	c.class = ShapeClass{Kind: ShapeTypeLine, Element: "p:cxnSp", ODPElement: "draw:line"}
	return nil
}

func (c *classifier) visitTable(*TableShape) error {
	c.class = ShapeClass{Kind: ShapeTypeTable, Element: "p:graphicFrame", ODPElement: "draw:frame"}
	return nil
}

func (c *classifier) visitChart(*ChartShape) error {
	c.class = ShapeClass{Kind: ShapeTypeChart, Element: "p:graphicFrame", ODPElement: "draw:frame", Relationship: true}
	return nil
}

func (c *classifier) visitGroup(*GroupShape) error {
	c.class = ShapeClass{Kind: ShapeTypeGroup, Element: "p:grpSp", ODPElement: "draw:g", Recurses: true}
	return nil
}

// shapeParagraphs returns the paragraphs whose runs may carry hyperlinks, in
// emission order. Table cells are returned row-major.
func shapeParagraphs(s Shape) []*Paragraph {
	switch sh := s.(type) {
	case *RichTextShape:
		return sh.paragraphs
	case *TableShape:
		var paras []*Paragraph
		for _, row := range sh.rows {
			for _, cell := range row {
				if cell != nil {
					paras = append(paras, cell.paragraphs...)
				}
			}
		}
		return paras
	}
	return nil
}

// linkedRuns returns the runs of paras that carry a hyperlink.
func linkedRuns(paras []*Paragraph) []*TextRun {
	var runs []*TextRun
	for _, p := range paras {
		for _, elem := range p.elements {
			if tr, ok := elem.(*TextRun); ok && tr.hyperlink != nil {
				runs = append(runs, tr)
			}
		}
	}
	return runs
}
