package gopresentation

import (
	"fmt"
	"slices"
)

// GroupShape gathers shapes that move together. Children keep slide
// coordinates and may be groups themselves.
type GroupShape struct {
	BaseShape
	shapes []Shape
}

func (g *GroupShape) GetType() ShapeType          { return ShapeTypeGroup }
func (g *GroupShape) accept(v shapeVisitor) error { return v.visitGroup(g) }

func NewGroupShape() *GroupShape { return &GroupShape{} }

func (g *GroupShape) AddShape(s Shape) *GroupShape { g.shapes = append(g.shapes, s); return g }
func (g *GroupShape) GetShapes() []Shape           { return g.shapes }
func (g *GroupShape) GetShapeCount() int           { return len(g.shapes) }

func (g *GroupShape) RemoveShape(index int) error {
	if index < 0 || index >= len(g.shapes) {
		return fmt.Errorf("group child %d: %w", index, errOutOfRange)
	}
	g.shapes = slices.Delete(g.shapes, index, index+1)
	return nil
}

// childBounds returns the bounding box of the children, used as the group's
// child coordinate space. An empty group uses its own frame.
func (g *GroupShape) childBounds() (x, y, cx, cy int64) {
	if len(g.shapes) == 0 {
		return g.offsetX, g.offsetY, g.width, g.height
	}
	minX, minY := int64(maxEMU), int64(maxEMU)
	maxX, maxY := int64(-maxEMU), int64(-maxEMU)
	for _, s := range g.shapes {
		if s == nil {
			continue
		}
		minX = min(minX, s.GetOffsetX())
		minY = min(minY, s.GetOffsetY())
		maxX = max(maxX, s.GetOffsetX()+s.GetWidth())
		maxY = max(maxY, s.GetOffsetY()+s.GetHeight())
	}
	if minX > maxX {
		return g.offsetX, g.offsetY, g.width, g.height
	}
	return minX, minY, maxX - minX, maxY - minY
}
