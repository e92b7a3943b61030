package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Fade tweens the opacity of its target. A newer fade replaces older ones.
type Fade struct {
	base
	from, to float64
	duration float64
	easing   ease.TweenFunc
	tween    *gween.Tween
	last     float64
}

func NewFade(target ObjectID, from, to, duration float64, onComplete func()) *Fade {
	return &Fade{
		base: base{
			kind:       KindFade,
			policy:     PolicyKeepNewest,
			target:     target,
			onComplete: onComplete,
		},
		from:     from,
		to:       to,
		duration: duration,
		easing:   ease.OutQuad,
	}
}

func (f *Fade) WithEasing(e ease.TweenFunc) *Fade {
	if e != nil {
		f.easing = e
	}
	return f
}

func (f *Fade) Step(ctx *Context) {
	if f.state == Complete {
		return
	}
	if f.begin(ctx) {
		f.last = f.startTime
		if f.duration <= 0 {
			ctx.Scene.SetOpacity(f.target, f.to)
			f.complete(true)
			return
		}
		f.tween = gween.New(float32(f.from), float32(f.to), float32(f.duration), f.easing)
	}
	now := ctx.now()
	curr, finished := f.tween.Update(float32(now - f.last))
	f.last = now
	if finished {
		ctx.Scene.SetOpacity(f.target, f.to)
		f.complete(true)
		return
	}
	ctx.Scene.SetOpacity(f.target, float64(curr))
}

func (f *Fade) Finish(ctx *Context, notify bool) {
	if f.state == Complete {
		return
	}
	f.complete(notify)
}
