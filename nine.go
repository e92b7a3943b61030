package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
)

// Nine draws a nine-slice frame: corners keep their size, edges and the
// center stretch.
type Nine struct {
	image          *ebiten.Image
	alpha          float64
	R, G, B, Scale float64
	// positions are the slice cuts in the source image, both axes alike
	positions       [4]int
	x, y            float64
	width, height   float64
	targetPositions [4][2]float64
	scales          [3][2]float64
}

// NewFrameNine builds the frame image procedurally: a rounded border of
// border pixels around a transparent center.
func NewFrameNine(border int, scale float64) (*Nine, error) {
	side := border*2 + 2
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			inner := x >= border && x < side-border && y >= border && y < side-border
			corner := (x == 0 || x == side-1) && (y == 0 || y == side-1)
			if inner || corner {
				continue
			}
			img.Set(x, y, color.White)
		}
	}
	eimg, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	return &Nine{
		image:     eimg,
		alpha:     1,
		R:         .8, G: .65, B: .45,
		Scale:     scale,
		positions: [4]int{0, border, side - border, side},
	}, nil
}

func (n *Nine) SetPosition(x, y float64) {
	n.x = x
	n.y = y
	n.SetSize(n.width, n.height)
}

func (n *Nine) SetSize(width, height float64) {
	n.width = width
	n.height = height
	p := n.positions
	n.targetPositions[0] = [2]float64{n.x, n.y}
	n.targetPositions[1] = [2]float64{n.x + n.Scale*float64(p[1]), n.y + n.Scale*float64(p[1])}
	n.targetPositions[2] = [2]float64{n.x + width - n.Scale*float64(p[3]-p[2]), n.y + height - n.Scale*float64(p[3]-p[2])}
	n.targetPositions[3] = [2]float64{n.x + width, n.y + height}

	center := float64(p[2] - p[1])
	n.scales[0] = [2]float64{n.Scale, n.Scale}
	n.scales[1] = [2]float64{
		(n.targetPositions[2][0] - n.targetPositions[1][0]) / center,
		(n.targetPositions[2][1] - n.targetPositions[1][1]) / center,
	}
	n.scales[2] = n.scales[0]
}

func (n *Nine) Draw(screen *ebiten.Image) {
	p := n.positions
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(n.scales[col][0], n.scales[row][1])
			op.GeoM.Translate(n.targetPositions[col][0], n.targetPositions[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			src := image.Rect(p[col], p[row], p[col+1], p[row+1])
			screen.DrawImage(n.image.SubImage(src).(*ebiten.Image), op)
		}
	}
}
