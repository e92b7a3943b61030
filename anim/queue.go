package anim

import "reflect"

type entry struct {
	anim   Animation
	culled bool
}

// Queue holds the pending animations of one object, in insertion order.
type Queue struct {
	ctx    *Context
	items  []*entry
	moving bool
}

func NewQueue(ctx *Context) *Queue {
	return &Queue{ctx: ctx, items: make([]*entry, 0)}
}

func (q *Queue) Len() int {
	return len(q.items)
}

func (q *Queue) IsMoving() bool {
	return q.moving
}

func (q *Queue) Clear() {
	q.items = q.items[:0]
	q.moving = false
}

func (q *Queue) Add(a Animation) error {
	if a == nil {
		return ErrNilAnimation
	}
	if v := reflect.ValueOf(a); v.Kind() == reflect.Ptr && v.IsNil() {
		return ErrNilAnimation
	}
	switch a.Policy() {
	case PolicyKeepNewest:
		q.filter(func(e *entry) bool { return e.anim.Kind() != a.Kind() })
	case PolicySingle, PolicyUndefined:
	}
	q.items = append(q.items, &entry{anim: a})
	return nil
}

// RemoveOfType completes every queued animation of kind k without running
// callbacks and drops it.
func (q *Queue) RemoveOfType(k Kind) {
	q.filter(func(e *entry) bool {
		if e.anim.Kind() != k {
			return true
		}
		e.anim.Finish(q.ctx, false)
		return false
	})
	if k == KindMovement {
		q.moving = false
	}
}

// Step runs one scheduling pass. Animations already complete when the pass
// reaches them are dropped at its end.
func (q *Queue) Step() {
	q.moving = false
	if len(q.items) == 0 {
		return
	}
	stepped := make(map[Kind]bool)

	// callbacks may append while we iterate
	for i := 0; i < len(q.items); i++ {
		e := q.items[i]
		a := e.anim
		if a.State() == Complete {
			e.culled = true
			continue
		}
		switch a.Policy() {
		case PolicySingle:
			if stepped[a.Kind()] {
				continue
			}
		case PolicyKeepNewest, PolicyUndefined:
		}
		a.Step(q.ctx)
		stepped[a.Kind()] = true
		if a.Kind() == KindMovement {
			q.moving = true
		}
	}
	q.filter(func(e *entry) bool { return !e.culled })
}

func (q *Queue) filter(keep func(e *entry) bool) {
	kept := make([]*entry, 0, len(q.items))
	for _, e := range q.items {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	q.items = kept
}

// Animations returns the queued animations in order.
func (q *Queue) Animations() []Animation {
	out := make([]Animation, 0, len(q.items))
	for _, e := range q.items {
		out = append(out, e.anim)
	}
	return out
}

// Pending reports whether an unfinished animation of kind k is queued.
func (q *Queue) Pending(k Kind) bool {
	for _, e := range q.items {
		if e.anim.Kind() == k && e.anim.State() != Complete {
			return true
		}
	}
	return false
}
