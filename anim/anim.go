// Package anim schedules time based animations of scene objects.
//
// Each animated object owns one Queue. The host advances a Clock and calls
// Queue.Step once per frame; animations interpolate from the clock and report
// completion through their callback.
package anim

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/zucenko/checkers/model"
)

var ErrNilAnimation = errors.New("anim must be an animation")

type Kind int

const (
	KindUndefined Kind = iota
	KindMovement
	KindFade
)

func (k Kind) Name() string {
	switch k {
	case KindUndefined:
		return "Undefined"
	case KindMovement:
		return "Movement"
	case KindFade:
		return "Fade"
	default:
		return fmt.Sprintf("n/a:%d", k)
	}
}

// Policy decides how animations of the same kind share a queue.
type Policy int

const (
	PolicyUndefined Policy = iota
	PolicyKeepNewest
	PolicySingle
)

func (p Policy) Name() string {
	switch p {
	case PolicyUndefined:
		return "Undefined"
	case PolicyKeepNewest:
		return "KeepNewest"
	case PolicySingle:
		return "Single"
	default:
		return fmt.Sprintf("n/a:%d", p)
	}
}

type State int

const (
	NotStarted State = iota
	Underway
	Complete
)

func (s State) Name() string {
	switch s {
	case NotStarted:
		return "NOT_STARTED"
	case Underway:
		return "UNDERWAY"
	case Complete:
		return "COMPLETE"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

// ObjectID names an object in the host's scene. Animations never own it.
type ObjectID int

type Scene interface {
	SetPosition(id ObjectID, p model.Vec3)
	SetOpacity(id ObjectID, alpha float64)
}

type CueID string

type PlayHandle int

const NoPlay PlayHandle = 0

type CuePlayer interface {
	PlayCue(id CueID, offset, gain float64) PlayHandle
	StopCue(h PlayHandle)
}

type Clock interface {
	Elapsed() float64
}

// ManualClock only moves when the host advances it.
type ManualClock struct {
	now float64
}

func (c *ManualClock) Elapsed() float64 {
	return c.now
}

func (c *ManualClock) Advance(dt float64) {
	c.now += dt
}

func (c *ManualClock) Set(now float64) {
	c.now = now
}

// Context carries what animations need from the host.
type Context struct {
	Clock Clock
	Cues  CuePlayer
	Scene Scene
	Gain  float64
	Log   *log.Entry
}

func (ctx *Context) now() float64 {
	if ctx.Clock == nil {
		return 0
	}
	return ctx.Clock.Elapsed()
}

func (ctx *Context) playCue(id CueID) PlayHandle {
	if ctx.Cues == nil || id == "" {
		return NoPlay
	}
	h := ctx.Cues.PlayCue(id, 0, ctx.Gain)
	ctx.logger().WithField("cue", id).Debug("cue started")
	return h
}

func (ctx *Context) stopCue(h PlayHandle) {
	if ctx.Cues == nil || h == NoPlay {
		return
	}
	ctx.Cues.StopCue(h)
}

func (ctx *Context) logger() *log.Entry {
	if ctx.Log == nil {
		return log.NewEntry(log.StandardLogger())
	}
	return ctx.Log
}

type Animation interface {
	Kind() Kind
	Policy() Policy
	State() State
	Target() ObjectID
	Step(ctx *Context)
	// Finish completes the animation. The completion callback only runs
	// when notify is true.
	Finish(ctx *Context, notify bool)
}

type base struct {
	kind       Kind
	policy     Policy
	state      State
	target     ObjectID
	startTime  float64
	onComplete func()
}

func (b *base) Kind() Kind { return b.kind }
func (b *base) Policy() Policy { return b.policy }
func (b *base) State() State { return b.state }
func (b *base) Target() ObjectID { return b.target }

// begin moves NotStarted to Underway and reports whether it did.
func (b *base) begin(ctx *Context) bool {
	if b.state != NotStarted {
		return false
	}
	b.state = Underway
	b.startTime = ctx.now()
	return true
}

func (b *base) complete(notify bool) {
	b.state = Complete
	if notify && b.onComplete != nil {
		b.onComplete()
	}
}
