package sim

import (
	"github.com/google/uuid"

	"github.com/zucenko/checkers/model"
)

func (s *Simulation) Setup() model.Setup {
	if s.board == nil {
		return model.Setup{}
	}
	squares := make([]model.Square, 0, len(s.board.Nodes))
	for _, n := range s.board.Nodes {
		squares = append(squares, model.Square{
			Col:       n.Col,
			Row:       n.Row,
			Direction: n.Direction,
			Position:  n.Position,
			Target:    n.Target,
		})
	}
	return model.Setup{
		Size:       s.board.Size,
		SquareSize: s.board.Layout.SquareSize,
		Squares:    squares,
	}
}

func (s *Simulation) Frame() model.Frame {
	f := model.Frame{
		Time:        s.clock.Elapsed(),
		Checker:     s.scene.Position(Checker),
		Moving:      s.moving(),
		Playing:     s.playing,
		LoopTo:      model.NoPoint,
		Front:       s.cursor.FrontIndex(),
		PathOpacity: s.scene.Opacity(PathMarker),
	}
	if s.run != uuid.Nil {
		f.Run = s.run.String()
	}
	if s.path == nil {
		return f
	}
	f.IsLoop = s.path.IsLoop
	f.Path = make([]int, 0, s.path.Len())
	for _, p := range s.path.Points {
		f.Path = append(f.Path, p.Node)
	}
	if s.path.IsLoop {
		f.LoopTo = s.path.Last().Next
	}
	return f
}

// Snapshot is Setup and Frame taken together.
func (s *Simulation) Snapshot() (model.Setup, model.Frame) {
	return s.Setup(), s.Frame()
}
