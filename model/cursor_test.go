package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linePath(t *testing.T, n int) *Path {
	t.Helper()
	nodes := make([]Node, n)
	for i := range nodes {
		nodes[i] = Node{Position: Vec3{X: float64(i * 10)}, Target: i + 1}
	}
	nodes[n-1].Target = NoTarget
	path, err := Resolve(nodes, 0)
	require.NoError(t, err)
	return path
}

func TestCursor_NoActiveCursor(t *testing.T) {
	c := NewCursor()
	_, _, err := c.RequestSegment(false)
	assert.ErrorIs(t, err, ErrNoActiveCursor)
	assert.False(t, c.Advance())
	c.Truncate()
	assert.False(t, c.Dirty())

	_, err = c.JumpTo(&Path{}, false)
	assert.ErrorIs(t, err, ErrEmptyPath)
}

func TestCursor_ForwardVisitsEveryPoint(t *testing.T) {
	path := linePath(t, 5)
	c := NewCursor()
	first, err := c.JumpTo(path, false)
	require.NoError(t, err)

	visited := []Vec3{first.Position}
	for {
		seg, ok, err := c.RequestSegment(false)
		require.NoError(t, err)
		if !ok {
			break
		}
		assert.Equal(t, visited[len(visited)-1], seg.Start)
		visited = append(visited, seg.End)
		assert.False(t, c.Advance())
	}
	require.Len(t, visited, path.Len())
	for i, p := range path.Points {
		assert.Equal(t, p.Position, visited[i])
	}
}

func TestCursor_JumpToEndThenBackward(t *testing.T) {
	path := linePath(t, 3)
	c := NewCursor()
	last, err := c.JumpTo(path, true)
	require.NoError(t, err)
	assert.Equal(t, path.Last().Position, last.Position)

	_, ok, err := c.RequestSegment(false)
	require.NoError(t, err)
	assert.False(t, ok)

	seg, ok, err := c.RequestSegment(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path.Points[2].Position, seg.Start)
	assert.Equal(t, path.Points[1].Position, seg.End)
}

func TestCursor_LookaheadAndAdvance(t *testing.T) {
	path := linePath(t, 4)
	c := NewCursor()
	_, err := c.JumpTo(path, false)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, ok, err := c.RequestSegment(false)
		require.NoError(t, err)
		require.True(t, ok)
	}
	assert.Equal(t, 3, c.Pending())
	assert.True(t, c.Advance())
	assert.True(t, c.Advance())
	assert.False(t, c.Advance())
	front, ok := c.Front()
	require.True(t, ok)
	assert.Equal(t, path.Last().Position, front.Position)
	assert.False(t, c.Advance())
}

func TestCursor_TruncateIdempotent(t *testing.T) {
	path := linePath(t, 4)
	once, twice := NewCursor(), NewCursor()
	for _, c := range []*Cursor{once, twice} {
		_, err := c.JumpTo(path, false)
		require.NoError(t, err)
		_, _, err = c.RequestSegment(false)
		require.NoError(t, err)
		_, _, err = c.RequestSegment(false)
		require.NoError(t, err)
	}
	once.Truncate()
	twice.Truncate()
	twice.Truncate()

	assert.Equal(t, once.Dirty(), twice.Dirty())
	assert.Equal(t, once.Pending(), twice.Pending())
	assert.Equal(t, once.FrontIndex(), twice.FrontIndex())

	a, okA, errA := once.RequestSegment(true)
	b, okB, errB := twice.RequestSegment(true)
	assert.Equal(t, a, b)
	assert.Equal(t, okA, okB)
	assert.Equal(t, errA, errB)
}

func TestCursor_TruncateWithoutPendingIsNoop(t *testing.T) {
	path := linePath(t, 3)
	c := NewCursor()
	_, err := c.JumpTo(path, false)
	require.NoError(t, err)
	c.Truncate()
	assert.False(t, c.Dirty())
}

func TestCursor_DirtyReoffersTruncatedPoint(t *testing.T) {
	path := linePath(t, 3)
	c := NewCursor()
	_, err := c.JumpTo(path, false)
	require.NoError(t, err)
	_, ok, err := c.RequestSegment(false)
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, c.Advance())

	// now at point 1, heading to 2
	_, ok, err = c.RequestSegment(false)
	require.NoError(t, err)
	require.True(t, ok)
	c.Truncate()
	require.True(t, c.Dirty())

	seg, ok, err := c.RequestSegment(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path.Points[1].Position, seg.End)
	assert.False(t, c.Dirty())

	c.Advance()
	seg, ok, err = c.RequestSegment(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, path.Points[0].Position, seg.End)
}

func TestCursor_ForwardAfterTruncateClearsDirty(t *testing.T) {
	path := linePath(t, 3)
	c := NewCursor()
	_, err := c.JumpTo(path, false)
	require.NoError(t, err)
	_, ok, err := c.RequestSegment(false)
	require.NoError(t, err)
	require.True(t, ok)
	c.Truncate()
	require.True(t, c.Dirty())

	// head off again before turning back
	seg, ok, err := c.RequestSegment(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, seg.To)
	assert.False(t, c.Dirty())
	require.False(t, c.Advance())

	seg, ok, err = c.RequestSegment(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, seg.From)
	assert.Equal(t, 0, seg.To)
	assert.Equal(t, path.Points[0].Position, seg.End)
}

func TestCursor_LoopNeverExhaustsForward(t *testing.T) {
	nodes := []Node{
		{Position: Vec3{X: 0}, Target: 1},
		{Position: Vec3{X: 1}, Target: 0},
	}
	path, err := Resolve(nodes, 0)
	require.NoError(t, err)
	c := NewCursor()
	_, err = c.JumpTo(path, false)
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		seg, ok, err := c.RequestSegment(false)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, path.Points[(i+1)%2].Position, seg.End)
		c.Advance()
	}
}

func TestCursor_Reset(t *testing.T) {
	path := linePath(t, 2)
	c := NewCursor()
	_, err := c.JumpTo(path, false)
	require.NoError(t, err)
	c.Reset()
	assert.False(t, c.Active())
	_, _, err = c.RequestSegment(false)
	assert.ErrorIs(t, err, ErrNoActiveCursor)
}
