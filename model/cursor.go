package model

type frame struct {
	point int
	child *frame
}

// Cursor tracks where the checker stands on a Path (front) and the travel
// that has been requested beyond it (front.child ... back).
type Cursor struct {
	path  *Path
	front *frame
	back  *frame
	dirty bool
}

func NewCursor() *Cursor {
	return &Cursor{}
}

// JumpTo drops any existing chain and anchors the cursor at the first or last
// point of path.
func (c *Cursor) JumpTo(path *Path, toEnd bool) (PathPoint, error) {
	if path == nil || len(path.Points) == 0 {
		return PathPoint{}, ErrEmptyPath
	}
	index := 0
	if toEnd {
		index = len(path.Points) - 1
	}
	c.path = path
	c.front = &frame{point: index}
	c.back = c.front
	c.dirty = false
	return path.Points[index], nil
}

// RequestSegment appends the next point in the given direction to the chain.
// ok is false when the path has no more points that way.
func (c *Cursor) RequestSegment(backward bool) (seg Segment, ok bool, err error) {
	if !c.Active() {
		return Segment{}, false, ErrNoActiveCursor
	}
	tail := c.path.Points[c.back.point]
	var target int
	switch {
	case backward && c.dirty:
		target = c.back.point
		c.dirty = false
	case backward:
		if !tail.HasPrev() {
			return Segment{}, false, nil
		}
		target = tail.Prev
	default:
		if !tail.HasNext() {
			return Segment{}, false, nil
		}
		// the cut frontier is behind us now
		target = tail.Next
		c.dirty = false
	}
	from := c.back.point
	c.back.child = &frame{point: target}
	c.back = c.back.child
	return Segment{
		From:  from,
		To:    target,
		Start: tail.Position,
		End:   c.path.Points[target].Position,
	}, true, nil
}

// Advance confirms arrival at the next requested point. It reports whether
// more travel is still pending after the new front.
func (c *Cursor) Advance() bool {
	if c.front == nil || c.front.child == nil {
		return false
	}
	c.front = c.front.child
	return c.front.child != nil
}

// Truncate cancels the pending travel. The occupied point stays and is
// offered again by the next backward request.
func (c *Cursor) Truncate() {
	if c.front == nil || c.front.child == nil {
		return
	}
	c.front.child = nil
	c.back = c.front
	c.dirty = true
}

// Reset forgets the path. Call it before the path is replaced.
func (c *Cursor) Reset() {
	c.path = nil
	c.front = nil
	c.back = nil
	c.dirty = false
}

func (c *Cursor) Active() bool {
	return c.path != nil && c.front != nil
}

func (c *Cursor) Front() (PathPoint, bool) {
	if !c.Active() {
		return PathPoint{}, false
	}
	return c.path.Points[c.front.point], true
}

func (c *Cursor) FrontIndex() int {
	if !c.Active() {
		return NoPoint
	}
	return c.front.point
}

// Pending counts requested frames beyond the front.
func (c *Cursor) Pending() int {
	n := 0
	if c.front == nil {
		return n
	}
	for f := c.front.child; f != nil; f = f.child {
		n++
	}
	return n
}

func (c *Cursor) Dirty() bool {
	return c.dirty
}
