package sim

import (
	"github.com/zucenko/checkers/anim"
	"github.com/zucenko/checkers/model"
)

const (
	Checker anim.ObjectID = iota + 1
	PathMarker
)

type Object struct {
	Position model.Vec3
	Opacity  float64
}

// Scene is the table of objects animations write to. Renderers read it.
type Scene struct {
	objects map[anim.ObjectID]*Object
}

func NewScene() *Scene {
	return &Scene{objects: map[anim.ObjectID]*Object{
		Checker:    {Opacity: 1},
		PathMarker: {Opacity: 0},
	}}
}

func (s *Scene) object(id anim.ObjectID) *Object {
	o, found := s.objects[id]
	if !found {
		o = &Object{Opacity: 1}
		s.objects[id] = o
	}
	return o
}

func (s *Scene) SetPosition(id anim.ObjectID, p model.Vec3) {
	s.object(id).Position = p
}

func (s *Scene) SetOpacity(id anim.ObjectID, alpha float64) {
	s.object(id).Opacity = alpha
}

func (s *Scene) Position(id anim.ObjectID) model.Vec3 {
	return s.object(id).Position
}

func (s *Scene) Opacity(id anim.ObjectID) float64 {
	return s.object(id).Opacity
}
