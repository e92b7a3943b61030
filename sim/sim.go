// Package sim runs one checker over one board: it builds boards, resolves
// paths and turns step/play/stop/jump requests into queued movements.
package sim

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/anim"
	"github.com/zucenko/checkers/model"
)

var (
	ErrNoBoard      = errors.New("no board")
	ErrNoSimulation = errors.New("no simulation")
)

const (
	CueMove anim.CueID = "checker-move"
	CueStop anim.CueID = "checker-stop"
)

type Settings struct {
	Layout model.Layout
	// SpeedSq is squared distance per second.
	SpeedSq float64
	// SnapDistanceSq: a resting checker this close to its next point counts
	// as already there.
	SnapDistanceSq float64
	MinDistanceSq  float64
	FadeDuration   float64
	Gain           float64
}

func DefaultSettings() Settings {
	square := 80.0
	return Settings{
		Layout:         model.Layout{SquareSize: square, Height: 10},
		SpeedSq:        square * square,
		SnapDistanceSq: 10,
		MinDistanceSq:  anim.DefaultMinDistanceSq,
		FadeDuration:   0.5,
		Gain:           0.5,
	}
}

type Simulation struct {
	settings Settings
	clock    *anim.ManualClock
	ctx      *anim.Context
	scene    *Scene
	cues     anim.CuePlayer
	rng      *rand.Rand
	log      *log.Entry

	board   *model.Board
	path    *model.Path
	cursor  *model.Cursor
	checker *anim.Queue
	marker  *anim.Queue
	playing bool
	run     uuid.UUID
}

// New creates an empty simulation. cues may be nil.
func New(settings Settings, cues anim.CuePlayer, rng *rand.Rand, logger *log.Entry) *Simulation {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	clock := &anim.ManualClock{}
	scene := NewScene()
	ctx := &anim.Context{
		Clock: clock,
		Cues:  cues,
		Scene: scene,
		Gain:  settings.Gain,
		Log:   logger,
	}
	return &Simulation{
		settings: settings,
		clock:    clock,
		ctx:      ctx,
		scene:    scene,
		cues:     cues,
		rng:      rng,
		log:      logger,
		cursor:   model.NewCursor(),
		checker:  anim.NewQueue(ctx),
		marker:   anim.NewQueue(ctx),
	}
}

// NewBoard drops the current simulation and generates a random board.
func (s *Simulation) NewBoard(size int) error {
	board, err := model.Generate(size, s.settings.Layout, s.rng)
	if err != nil {
		return err
	}
	s.SetBoard(board)
	return nil
}

func (s *Simulation) SetBoard(board *model.Board) {
	s.Stop()
	s.cursor.Reset()
	s.path = nil
	s.run = uuid.Nil
	s.checker.Clear()
	s.marker.Clear()
	s.scene.SetOpacity(PathMarker, 0)
	s.board = board
	s.log.WithField("size", board.Size).Info("board ready")
}

// NewSimulation starts a run from a random square.
func (s *Simulation) NewSimulation() error {
	if s.board == nil || len(s.board.Nodes) == 0 {
		return ErrNoBoard
	}
	return s.StartAt(s.rng.Intn(len(s.board.Nodes)))
}

func (s *Simulation) StartAt(index int) error {
	if s.board == nil {
		return ErrNoBoard
	}
	s.Stop()
	s.cursor.Reset()
	s.path = nil

	path, err := model.Resolve(s.board.Nodes, index)
	if err != nil {
		return fmt.Errorf("resolve from %d: %w", index, err)
	}
	point, err := s.cursor.JumpTo(path, false)
	if err != nil {
		return err
	}
	s.path = path
	s.run = uuid.New()
	s.checker.Clear()
	s.scene.SetPosition(Checker, point.Position)
	if err := s.marker.Add(anim.NewFade(PathMarker, 0, 1, s.settings.FadeDuration, nil)); err != nil {
		return err
	}
	s.log.WithFields(log.Fields{
		"run":    s.run,
		"start":  index,
		"points": path.Len(),
		"loop":   path.IsLoop,
	}).Info("simulation started")
	return nil
}

// Step queues one movement. It reports false when the path has nothing more
// in that direction.
func (s *Simulation) Step(backward bool) (bool, error) {
	if s.path == nil {
		return false, ErrNoSimulation
	}
	seg, ok, err := s.cursor.RequestSegment(backward)
	if err != nil {
		return false, err
	}
	start := seg.Start
	if ok && !s.moving() {
		start = s.scene.Position(Checker)
		if start.DistanceSq(seg.End) < s.settings.SnapDistanceSq {
			s.cursor.Advance()
			seg, ok, err = s.cursor.RequestSegment(backward)
			if err != nil {
				return false, err
			}
			start = seg.Start
		}
	}

	if !ok {
		if !s.moving() {
			s.playCue(CueStop)
		}
		return false, nil
	}
	m := anim.NewMovement(Checker, start, seg.End, s.settings.SpeedSq, CueMove, s.movementComplete).
		WithMinDistanceSq(s.settings.MinDistanceSq)
	if err := s.checker.Add(m); err != nil {
		return false, err
	}
	s.log.WithFields(log.Fields{
		"run":      s.run,
		"from":     seg.From,
		"to":       seg.To,
		"backward": backward,
	}).Debug("segment queued")
	return true, nil
}

func (s *Simulation) movementComplete() {
	s.cursor.Advance()
	if !s.playing {
		return
	}
	moved, err := s.Step(false)
	if err != nil {
		s.log.WithError(err).Error("play step")
	}
	s.playing = moved && err == nil
}

func (s *Simulation) Play() error {
	if s.path == nil {
		return ErrNoSimulation
	}
	s.playing = true
	moved, err := s.Step(false)
	s.playing = moved && err == nil
	return err
}

// Stop cancels any movement in flight. The checker stays where it is.
func (s *Simulation) Stop() {
	if s.path == nil {
		return
	}
	s.playing = false
	s.checker.RemoveOfType(anim.KindMovement)
	s.cursor.Truncate()
}

func (s *Simulation) Jump(toEnd bool) error {
	if s.path == nil {
		return ErrNoSimulation
	}
	s.Stop()
	point, err := s.cursor.JumpTo(s.path, toEnd)
	if err != nil {
		return err
	}
	s.scene.SetPosition(Checker, point.Position)
	s.playCue(CueStop)
	return nil
}

// Tick advances the clock by dt seconds and runs one scheduling pass.
func (s *Simulation) Tick(dt float64) {
	s.clock.Advance(dt)
	s.checker.Step()
	s.marker.Step()
}

func (s *Simulation) moving() bool {
	return s.checker.IsMoving() || s.checker.Pending(anim.KindMovement)
}

func (s *Simulation) playCue(id anim.CueID) {
	if s.cues == nil {
		return
	}
	s.cues.PlayCue(id, 0, s.settings.Gain)
}

func (s *Simulation) Board() *model.Board { return s.board }
func (s *Simulation) Path() *model.Path { return s.path }
func (s *Simulation) Scene() *Scene { return s.scene }
func (s *Simulation) Playing() bool { return s.playing }
func (s *Simulation) Moving() bool { return s.moving() }
func (s *Simulation) Run() uuid.UUID { return s.run }
func (s *Simulation) Settings() Settings { return s.settings }
func (s *Simulation) CheckerQueue() *anim.Queue { return s.checker }
