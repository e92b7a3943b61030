package model

// ServerMessage is what spectators receive. Empty slices mean nothing of that
// kind in this message.
type ServerMessage struct {
	Setup  []Setup
	Frames []Frame
	Errors []string
}

// Setup describes the board a spectator should draw.
type Setup struct {
	Size       int
	SquareSize float64
	Squares    []Square
}

type Square struct {
	Col, Row  int
	Direction Direction
	Position  Vec3
	Target    int
}

// Frame is the simulation state after one tick.
type Frame struct {
	Run         string
	Time        float64
	Checker     Vec3
	Moving      bool
	Playing     bool
	Path        []int
	IsLoop      bool
	LoopTo      int
	Front       int
	PathOpacity float64
}

type ClientMessage struct {
	Command string
	Size    int
}
