// Package view holds the viewer's drawing math and input rules. It does not
// import ebiten so it can be tested headless.
package view

import (
	"github.com/zucenko/checkers/model"
)

// Projection maps board space (x right, z toward the viewer) onto screen
// pixels, top down.
type Projection struct {
	Left, Top float64
	// Scale is pixels per board unit.
	Scale float64
	half  float64
}

// Fit scales a board so it fills a square of side pixels at left, top.
func Fit(board *model.Board, left, top, side float64) Projection {
	extent := float64(board.Size) * board.Layout.SquareSize
	return Projection{
		Left:  left,
		Top:   top,
		Scale: side / extent,
		half:  extent / 2,
	}
}

func (p Projection) Point(v model.Vec3) (x, y float64) {
	return p.Left + (v.X+p.half)*p.Scale, p.Top + (v.Z+p.half)*p.Scale
}

// Square returns the screen rectangle of a node.
func (p Projection) Square(board *model.Board, n model.Node) (x, y, side float64) {
	side = board.Layout.SquareSize * p.Scale
	cx, cy := p.Point(n.Position)
	return cx - side/2, cy - side/2, side
}

// Arrow returns the shaft and both head strokes of a direction glyph centered
// at cx, cy.
func Arrow(d model.Direction, cx, cy, length float64) [3][4]float64 {
	dCol, dRow := d.Delta()
	// rows grow upward, screen y grows downward
	dx, dy := float64(dCol), -float64(dRow)
	tipX, tipY := cx+dx*length/2, cy+dy*length/2
	tailX, tailY := cx-dx*length/2, cy-dy*length/2
	head := length / 3
	// perpendicular
	px, py := -dy, dx
	return [3][4]float64{
		{tailX, tailY, tipX, tipY},
		{tipX, tipY, tipX - dx*head + px*head/2, tipY - dy*head + py*head/2},
		{tipX, tipY, tipX - dx*head - px*head/2, tipY - dy*head - py*head/2},
	}
}
