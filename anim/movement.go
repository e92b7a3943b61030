package anim

import (
	"github.com/tanema/gween/ease"

	"github.com/zucenko/checkers/model"
)

// DefaultMinDistanceSq is the squared distance below which a movement is
// treated as already done.
const DefaultMinDistanceSq = 10

// Movement moves its target from start to end at speedSq squared units per
// second.
type Movement struct {
	base
	start, end    model.Vec3
	speedSq       float64
	distanceSq    float64
	minDistanceSq float64
	easing        ease.TweenFunc
	cue           CueID
	playing       PlayHandle
}

func NewMovement(target ObjectID, start, end model.Vec3, speedSq float64, cue CueID, onComplete func()) *Movement {
	return &Movement{
		base: base{
			kind:       KindMovement,
			policy:     PolicySingle,
			target:     target,
			onComplete: onComplete,
		},
		start:         start,
		end:           end,
		speedSq:       speedSq,
		distanceSq:    start.DistanceSq(end),
		minDistanceSq: DefaultMinDistanceSq,
		easing:        ease.Linear,
		cue:           cue,
	}
}

func (m *Movement) WithMinDistanceSq(d float64) *Movement {
	m.minDistanceSq = d
	return m
}

func (m *Movement) WithEasing(f ease.TweenFunc) *Movement {
	if f != nil {
		m.easing = f
	}
	return m
}

func (m *Movement) Start() model.Vec3 { return m.start }
func (m *Movement) End() model.Vec3 { return m.end }

func (m *Movement) Step(ctx *Context) {
	if m.state == Complete {
		return
	}
	if m.begin(ctx) {
		m.playing = ctx.playCue(m.cue)
	}
	if m.distanceSq <= 0 || m.distanceSq < m.minDistanceSq {
		m.arrive(ctx)
		return
	}
	alpha := m.speedSq * (ctx.now() - m.startTime) / m.distanceSq
	if alpha >= 1 {
		m.arrive(ctx)
		return
	}
	e := float64(m.easing(float32(alpha), 0, 1, 1))
	ctx.Scene.SetPosition(m.target, m.start.Lerp(m.end, e))
}

func (m *Movement) arrive(ctx *Context) {
	ctx.Scene.SetPosition(m.target, m.end)
	m.Finish(ctx, true)
}

func (m *Movement) Finish(ctx *Context, notify bool) {
	if m.state == Complete {
		return
	}
	ctx.stopCue(m.playing)
	m.playing = NoPlay
	m.complete(notify)
}
