package model

import (
	"fmt"
	"math/rand"
)

type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var Directions = [4]Direction{Up, Right, Down, Left}

func RandomDirection(r *rand.Rand) Direction {
	return Directions[r.Intn(len(Directions))]
}

func (d Direction) Name() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}

// Delta returns the column and row step. Rows grow upwards.
func (d Direction) Delta() (dCol, dRow int) {
	switch d {
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

func (d Direction) Rune() rune {
	switch d {
	case Up:
		return '^'
	case Right:
		return '>'
	case Down:
		return 'v'
	case Left:
		return '<'
	default:
		return '?'
	}
}

func ParseDirection(r rune) (Direction, bool) {
	switch r {
	case '^':
		return Up, true
	case '>':
		return Right, true
	case 'v', 'V':
		return Down, true
	case '<':
		return Left, true
	default:
		return 0, false
	}
}
