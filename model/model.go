package model

import "errors"

const (
	NoTarget = -1
	NoPoint  = -1
)

var (
	ErrBoardSize      = errors.New("board size must be at least 1")
	ErrEmptyBoard     = errors.New("invalid path: board has no nodes")
	ErrStartIndex     = errors.New("start index outside board")
	ErrTargetIndex    = errors.New("node target outside board")
	ErrEmptyPath      = errors.New("invalid path: no points")
	ErrNoActiveCursor = errors.New("no active cursor")
)

// Node is one square of the board.
type Node struct {
	Index     int
	Col, Row  int
	Position  Vec3
	Direction Direction
	Target    int
}

func (n Node) HasTarget() bool {
	return n.Target != NoTarget
}

// Layout places squares in world space.
type Layout struct {
	SquareSize float64
	Height     float64
}

type Board struct {
	Size   int
	Layout Layout
	Nodes  []Node
}

// PathPoint references its node by index. Prev and Next index into the
// owning Path's Points.
type PathPoint struct {
	Node      int
	Position  Vec3
	Direction Direction
	Prev      int
	Next      int
}

func (p PathPoint) HasNext() bool {
	return p.Next != NoPoint
}

func (p PathPoint) HasPrev() bool {
	return p.Prev != NoPoint
}

type Path struct {
	Points []PathPoint
	IsLoop bool
}

func (p *Path) Len() int {
	return len(p.Points)
}

func (p *Path) First() PathPoint {
	return p.Points[0]
}

func (p *Path) Last() PathPoint {
	return p.Points[len(p.Points)-1]
}

// Segment is one requested hop between two path points.
type Segment struct {
	From, To   int
	Start, End Vec3
}
