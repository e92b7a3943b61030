package main

import "github.com/tanema/gween"

// Action is what happens while a tween runs and after it finishes.
type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

// next chains t after the tween this action belongs to.
func (a *Action) next(t *gween.Tween, onChange func(float32)) *Action {
	action := &Action{onChange: onChange}
	a.nexts = append(a.nexts, func(g *Game) {
		g.Tweens[t] = action
	})
	return action
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
