package grid

import "fmt"

// Point is a cell coordinate, comparable and usable directly as a map key
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction indexes into Directions
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
	DirCount
)

// Directions holds orthogonal offsets in expansion order: up, right, down, left
var Directions = [DirCount]Point{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
}

// Offset returns the unit vector for d, zero Point for unknown values
func (d Direction) Offset() Point {
	if d < 0 || d >= DirCount {
		return Point{}
	}
	return Directions[d]
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "none"
	}
}

// InBounds reports whether p lies inside a cols×rows grid
func InBounds(p Point, cols, rows int) bool {
	return p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows
}
