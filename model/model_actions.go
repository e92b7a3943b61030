package model

import (
	"fmt"
	"math/rand"
)

// Generate builds a size x size board with a random direction on every square.
func Generate(size int, layout Layout, r *rand.Rand) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, size)
	}
	dirs := make([]Direction, size*size)
	for i := range dirs {
		dirs[i] = RandomDirection(r)
	}
	return NewBoard(size, dirs, layout)
}

// NewBoard builds a board from row-major directions, row 0 first.
func NewBoard(size int, dirs []Direction, layout Layout) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBoardSize, size)
	}
	if len(dirs) != size*size {
		return nil, fmt.Errorf("%w: %d directions for size %d", ErrBoardSize, len(dirs), size)
	}
	half := float64(size) * layout.SquareSize / 2
	halfSquare := layout.SquareSize / 2

	// create
	nodes := make([]Node, 0, size*size)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			nodes = append(nodes, Node{
				Index: len(nodes),
				Col:   col,
				Row:   row,
				Position: Vec3{
					X: float64(col)*layout.SquareSize - half + halfSquare,
					Y: layout.Height,
					Z: -float64(row)*layout.SquareSize + half - halfSquare,
				},
				Direction: dirs[len(nodes)],
				Target:    NoTarget,
			})
		}
	}
	// connect
	for i := range nodes {
		nodes[i].Target = targetIndex(size, nodes[i].Col, nodes[i].Row, nodes[i].Direction)
	}
	return &Board{Size: size, Layout: layout, Nodes: nodes}, nil
}

func targetIndex(size, col, row int, d Direction) int {
	dc, dr := d.Delta()
	c, r := col+dc, row+dr
	if c < 0 || c >= size || r < 0 || r >= size {
		return NoTarget
	}
	return r*size + c
}

func (b *Board) Node(col, row int) *Node {
	return &b.Nodes[row*b.Size+col]
}

// Resolve follows targets from start until the walk leaves the board or
// returns to a position already on the path.
func Resolve(nodes []Node, start int) (*Path, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptyBoard
	}
	if start < 0 || start >= len(nodes) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStartIndex, start, len(nodes))
	}
	path := &Path{Points: make([]PathPoint, 0, len(nodes))}
	visited := make(map[Vec3]int, len(nodes))

	index := start
	for index != NoTarget {
		if index < 0 || index >= len(nodes) {
			return nil, fmt.Errorf("%w: %d", ErrTargetIndex, index)
		}
		node := &nodes[index]
		if first, found := visited[node.Position]; found {
			path.Points[len(path.Points)-1].Next = first
			path.IsLoop = true
			break
		}
		path.add(index, node)
		visited[node.Position] = len(path.Points) - 1
		index = node.Target
	}
	return path, nil
}

func (p *Path) add(index int, node *Node) {
	point := PathPoint{
		Node:      index,
		Position:  node.Position,
		Direction: node.Direction,
		Prev:      NoPoint,
		Next:      NoPoint,
	}
	curr := len(p.Points)
	if curr > 0 {
		point.Prev = curr - 1
		p.Points[curr-1].Next = curr
	}
	p.Points = append(p.Points, point)
}
