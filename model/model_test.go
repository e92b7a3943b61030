package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = Layout{SquareSize: 80, Height: 10}

func TestGenerate_TargetsFollowDirection(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for size := 1; size <= 9; size++ {
		board, err := Generate(size, testLayout, r)
		require.NoError(t, err)
		require.Len(t, board.Nodes, size*size)

		for i, n := range board.Nodes {
			assert.Equal(t, i, n.Index)
			assert.Equal(t, i, n.Row*size+n.Col)
			dc, dr := n.Direction.Delta()
			c, rr := n.Col+dc, n.Row+dr
			if c < 0 || c >= size || rr < 0 || rr >= size {
				assert.Equal(t, NoTarget, n.Target, "node %d", i)
				continue
			}
			require.True(t, n.HasTarget(), "node %d", i)
			assert.GreaterOrEqual(t, n.Target, 0)
			assert.Less(t, n.Target, size*size)
			assert.Equal(t, rr*size+c, n.Target)
		}
	}
}

func TestGenerate_RejectsSize(t *testing.T) {
	_, err := Generate(0, testLayout, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrBoardSize)

	_, err = NewBoard(2, []Direction{Up}, testLayout)
	assert.ErrorIs(t, err, ErrBoardSize)
}

func TestNewBoard_Positions(t *testing.T) {
	board, err := NewBoard(2, []Direction{Up, Up, Down, Up}, testLayout)
	require.NoError(t, err)

	assert.Equal(t, Vec3{-40, 10, 40}, board.Node(0, 0).Position)
	assert.Equal(t, Vec3{40, 10, 40}, board.Node(1, 0).Position)
	assert.Equal(t, Vec3{-40, 10, -40}, board.Node(0, 1).Position)
	assert.Equal(t, 2, board.Node(0, 0).Target)
	assert.Equal(t, NoTarget, board.Node(1, 1).Target)
}

func TestRandomDirection_CoversAll(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	seen := map[Direction]int{}
	for i := 0; i < 400; i++ {
		seen[RandomDirection(r)]++
	}
	for _, d := range Directions {
		assert.NotZero(t, seen[d], d.Name())
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.Rune())
		require.True(t, ok)
		assert.Equal(t, d, got)
	}
	_, ok := ParseDirection('x')
	assert.False(t, ok)
}

func TestResolve_OpenRow(t *testing.T) {
	dirs := []Direction{
		Right, Right, Right,
		Up, Up, Up,
		Up, Up, Up,
	}
	board, err := NewBoard(3, dirs, testLayout)
	require.NoError(t, err)
	assert.Equal(t, 1, board.Nodes[0].Target)
	assert.Equal(t, 2, board.Nodes[1].Target)
	assert.Equal(t, NoTarget, board.Nodes[2].Target)

	path, err := Resolve(board.Nodes, 0)
	require.NoError(t, err)
	assert.False(t, path.IsLoop)
	require.Equal(t, 3, path.Len())
	assert.False(t, path.Last().HasNext())
	assert.False(t, path.First().HasPrev())
	for i, p := range path.Points {
		assert.Equal(t, i, p.Node)
		if i > 0 {
			assert.Equal(t, i-1, p.Prev)
			assert.Equal(t, i, path.Points[i-1].Next)
		}
	}

	c := NewCursor()
	_, err = c.JumpTo(path, false)
	require.NoError(t, err)
	seg, ok, err := c.RequestSegment(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, board.Nodes[0].Position, seg.Start)
	assert.Equal(t, board.Nodes[1].Position, seg.End)
}

func TestResolve_TwoNodeLoop(t *testing.T) {
	nodes := []Node{
		{Position: Vec3{X: 0}, Direction: Right, Target: 1},
		{Position: Vec3{X: 1}, Direction: Left, Target: 0},
	}
	path, err := Resolve(nodes, 0)
	require.NoError(t, err)
	assert.True(t, path.IsLoop)
	require.Equal(t, 2, path.Len())
	assert.Equal(t, 1, path.Points[0].Next)
	assert.Equal(t, 0, path.Points[1].Prev)
	assert.Equal(t, 0, path.Points[1].Next)
}

func TestResolve_SelfLoop(t *testing.T) {
	nodes := []Node{{Position: Vec3{X: 5}, Target: 0}}
	path, err := Resolve(nodes, 0)
	require.NoError(t, err)
	assert.True(t, path.IsLoop)
	require.Equal(t, 1, path.Len())
	assert.Equal(t, 0, path.Points[0].Next)
	assert.Equal(t, NoPoint, path.Points[0].Prev)
}

func TestResolve_Lollipop(t *testing.T) {
	// 0 -> 1 -> 2 -> 3 -> 1
	nodes := []Node{
		{Position: Vec3{X: 0}, Target: 1},
		{Position: Vec3{X: 1}, Target: 2},
		{Position: Vec3{X: 2}, Target: 3},
		{Position: Vec3{X: 3}, Target: 1},
	}
	path, err := Resolve(nodes, 0)
	require.NoError(t, err)
	assert.True(t, path.IsLoop)
	require.Equal(t, 4, path.Len())
	assert.Equal(t, 1, path.Last().Next)
	assert.Equal(t, 0, path.Points[1].Prev)
}

func TestResolve_Errors(t *testing.T) {
	_, err := Resolve(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyBoard)

	nodes := []Node{{Target: NoTarget}}
	_, err = Resolve(nodes, 3)
	assert.ErrorIs(t, err, ErrStartIndex)

	nodes = []Node{{Target: 4}}
	_, err = Resolve(nodes, 0)
	assert.ErrorIs(t, err, ErrTargetIndex)
}

func TestResolve_GeneratedBoardsTerminate(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		board, err := Generate(1+i%8, testLayout, r)
		require.NoError(t, err)
		start := r.Intn(len(board.Nodes))
		path, err := Resolve(board.Nodes, start)
		require.NoError(t, err)
		require.LessOrEqual(t, path.Len(), len(board.Nodes))

		seen := map[Vec3]bool{}
		for _, p := range path.Points {
			assert.False(t, seen[p.Position], "position repeats on path")
			seen[p.Position] = true
		}
		if path.IsLoop {
			assert.True(t, path.Last().HasNext())
			assert.True(t, seen[path.Points[path.Last().Next].Position])
		} else {
			assert.False(t, path.Last().HasNext())
			assert.False(t, board.Nodes[path.Last().Node].HasTarget())
		}
	}
}
