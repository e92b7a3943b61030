package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zucenko/checkers/model"
)

type fakeScene struct {
	positions map[ObjectID]model.Vec3
	opacity   map[ObjectID]float64
}

func newFakeScene() *fakeScene {
	return &fakeScene{positions: map[ObjectID]model.Vec3{}, opacity: map[ObjectID]float64{}}
}

func (s *fakeScene) SetPosition(id ObjectID, p model.Vec3) { s.positions[id] = p }
func (s *fakeScene) SetOpacity(id ObjectID, a float64)     { s.opacity[id] = a }

type fakeCues struct {
	next    PlayHandle
	played  []CueID
	gains   []float64
	stopped []PlayHandle
}

func (c *fakeCues) PlayCue(id CueID, offset, gain float64) PlayHandle {
	c.next++
	c.played = append(c.played, id)
	c.gains = append(c.gains, gain)
	return c.next
}

func (c *fakeCues) StopCue(h PlayHandle) { c.stopped = append(c.stopped, h) }

func newTestContext() (*Context, *ManualClock, *fakeScene, *fakeCues) {
	clock := &ManualClock{}
	scene := newFakeScene()
	cues := &fakeCues{}
	return &Context{Clock: clock, Cues: cues, Scene: scene, Gain: 0.5}, clock, scene, cues
}

func TestMovement_CompletesExactlyAtAlphaOne(t *testing.T) {
	ctx, clock, scene, cues := newTestContext()
	start := model.Vec3{X: 0}
	end := model.Vec3{X: 10}
	calls := 0
	// distanceSq 100, speedSq 50: alpha reaches 1 after 2 seconds
	m := NewMovement(1, start, end, 50, "move", func() { calls++ })

	m.Step(ctx)
	assert.Equal(t, Underway, m.State())
	assert.Equal(t, []CueID{"move"}, cues.played)
	assert.Equal(t, []float64{0.5}, cues.gains)

	clock.Advance(1)
	m.Step(ctx)
	assert.Equal(t, Underway, m.State())
	assert.InDelta(t, 5, scene.positions[1].X, 1e-4)

	clock.Advance(1)
	m.Step(ctx)
	assert.Equal(t, Complete, m.State())
	assert.Equal(t, end, scene.positions[1])
	assert.Equal(t, 1, calls)
	assert.Equal(t, []PlayHandle{1}, cues.stopped)

	m.Step(ctx)
	m.Finish(ctx, true)
	assert.Equal(t, 1, calls)
}

func TestMovement_NegligibleDistance(t *testing.T) {
	ctx, _, scene, _ := newTestContext()
	calls := 0
	m := NewMovement(2, model.Vec3{X: 1}, model.Vec3{X: 2}, 100, "", func() { calls++ })
	m.Step(ctx)
	assert.Equal(t, Complete, m.State())
	assert.Equal(t, model.Vec3{X: 2}, scene.positions[2])
	assert.Equal(t, 1, calls)

	m = NewMovement(2, model.Vec3{X: 1}, model.Vec3{X: 2}, 100, "", nil).WithMinDistanceSq(0.5)
	m.Step(ctx)
	assert.Equal(t, Underway, m.State())
}

func TestMovement_ZeroLengthArrivesWithoutThreshold(t *testing.T) {
	ctx, _, scene, cues := newTestContext()
	calls := 0
	p := model.Vec3{X: 3, Y: 10, Z: -40}
	m := NewMovement(1, p, p, 6400, "move", func() { calls++ }).WithMinDistanceSq(0)
	m.Step(ctx)
	assert.Equal(t, Complete, m.State())
	assert.Equal(t, p, scene.positions[1])
	assert.Equal(t, 1, calls)
	assert.Equal(t, []PlayHandle{1}, cues.stopped)
}

func TestMovement_FinishWithoutNotify(t *testing.T) {
	ctx, _, _, cues := newTestContext()
	calls := 0
	m := NewMovement(1, model.Vec3{}, model.Vec3{X: 100}, 1, "move", func() { calls++ })
	m.Step(ctx)
	m.Finish(ctx, false)
	assert.Equal(t, Complete, m.State())
	assert.Zero(t, calls)
	assert.Equal(t, []PlayHandle{1}, cues.stopped)
}

func TestQueue_RejectsNil(t *testing.T) {
	ctx, _, _, _ := newTestContext()
	q := NewQueue(ctx)
	assert.ErrorIs(t, q.Add(nil), ErrNilAnimation)
	var m *Movement
	assert.ErrorIs(t, q.Add(m), ErrNilAnimation)
	assert.Zero(t, q.Len())
}

func TestQueue_KeepNewest(t *testing.T) {
	ctx, _, _, _ := newTestContext()
	q := NewQueue(ctx)
	first := NewFade(1, 0, 1, 1, nil)
	second := NewFade(1, 1, 0, 1, nil)
	require.NoError(t, q.Add(first))
	require.NoError(t, q.Add(NewMovement(1, model.Vec3{}, model.Vec3{X: 100}, 1, "", nil)))
	require.NoError(t, q.Add(second))

	anims := q.Animations()
	require.Len(t, anims, 2)
	assert.Equal(t, KindMovement, anims[0].Kind())
	assert.Same(t, second, anims[1])
}

func TestQueue_SingleStepsOnePerPass(t *testing.T) {
	ctx, clock, scene, _ := newTestContext()
	q := NewQueue(ctx)
	a := NewMovement(1, model.Vec3{}, model.Vec3{X: 100}, 100, "", nil)
	b := NewMovement(1, model.Vec3{X: 100}, model.Vec3{X: 200}, 100, "", nil)
	require.NoError(t, q.Add(a))
	require.NoError(t, q.Add(b))

	q.Step()
	assert.Equal(t, Underway, a.State())
	assert.Equal(t, NotStarted, b.State())
	assert.True(t, q.IsMoving())

	clock.Advance(50)
	q.Step()
	assert.Equal(t, NotStarted, b.State())
	assert.InDelta(t, 50, scene.positions[1].X, 1e-3)

	clock.Advance(50)
	q.Step()
	assert.Equal(t, Complete, a.State())
	assert.Equal(t, NotStarted, b.State())
	assert.Equal(t, 2, q.Len())

	q.Step()
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, Underway, b.State())
}

func TestQueue_UndefinedAlwaysSteps(t *testing.T) {
	ctx, _, _, _ := newTestContext()
	q := NewQueue(ctx)
	x := &countingAnim{}
	y := &countingAnim{}
	require.NoError(t, q.Add(x))
	require.NoError(t, q.Add(y))
	q.Step()
	q.Step()
	assert.Equal(t, 2, x.steps)
	assert.Equal(t, 2, y.steps)
	assert.False(t, q.IsMoving())
}

func TestQueue_RemoveOfType(t *testing.T) {
	ctx, _, _, cues := newTestContext()
	q := NewQueue(ctx)
	calls := 0
	m := NewMovement(1, model.Vec3{}, model.Vec3{X: 100}, 1, "move", func() { calls++ })
	f := NewFade(1, 0, 1, 1, nil)
	require.NoError(t, q.Add(m))
	require.NoError(t, q.Add(f))
	q.Step()
	require.True(t, q.IsMoving())

	q.RemoveOfType(KindMovement)
	assert.False(t, q.IsMoving())
	assert.Equal(t, Complete, m.State())
	assert.Zero(t, calls)
	assert.Equal(t, []PlayHandle{1}, cues.stopped)
	require.Equal(t, 1, q.Len())
	assert.Same(t, f, q.Animations()[0])
}

func TestQueue_CallbackChainsNextMovement(t *testing.T) {
	ctx, clock, scene, _ := newTestContext()
	q := NewQueue(ctx)
	var second *Movement
	first := NewMovement(1, model.Vec3{}, model.Vec3{X: 10}, 100, "", func() {
		second = NewMovement(1, model.Vec3{X: 10}, model.Vec3{X: 20}, 100, "", nil)
		require.NoError(t, q.Add(second))
	})
	require.NoError(t, q.Add(first))

	q.Step()
	clock.Advance(1)
	q.Step()
	require.NotNil(t, second)
	assert.Equal(t, NotStarted, second.State())
	assert.True(t, q.IsMoving())

	q.Step()
	assert.Equal(t, 1, q.Len())
	assert.Equal(t, Underway, second.State())
	assert.Equal(t, model.Vec3{X: 10}, scene.positions[1])
}

func TestFade_TweensOpacity(t *testing.T) {
	ctx, clock, scene, _ := newTestContext()
	done := false
	f := NewFade(3, 0, 1, 1, func() { done = true })
	f.Step(ctx)
	assert.InDelta(t, 0, scene.opacity[3], 1e-6)

	clock.Advance(0.5)
	f.Step(ctx)
	assert.Greater(t, scene.opacity[3], 0.0)
	assert.Less(t, scene.opacity[3], 1.0)

	clock.Advance(0.5)
	f.Step(ctx)
	assert.Equal(t, Complete, f.State())
	assert.Equal(t, 1.0, scene.opacity[3])
	assert.True(t, done)
}

func TestFade_ZeroDuration(t *testing.T) {
	ctx, _, scene, _ := newTestContext()
	f := NewFade(3, 1, 0.25, 0, nil)
	f.Step(ctx)
	assert.Equal(t, Complete, f.State())
	assert.Equal(t, 0.25, scene.opacity[3])
}

func TestNames(t *testing.T) {
	assert.Equal(t, "Movement", KindMovement.Name())
	assert.Equal(t, "KeepNewest", PolicyKeepNewest.Name())
	assert.Equal(t, "COMPLETE", Complete.Name())
}

type countingAnim struct {
	base
	steps int
}

func (c *countingAnim) Step(ctx *Context) {
	c.begin(ctx)
	c.steps++
}

func (c *countingAnim) Finish(ctx *Context, notify bool) {
	c.complete(notify)
}
