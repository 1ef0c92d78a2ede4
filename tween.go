package main

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const glideSeconds = 0.15

type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = action
		})
	return action
}

// glide moves the user marker from its drawn position to cell (col, row).
func (g *Game) glide(col, row int) {
	fromX, fromY := g.markerX, g.markerY
	toX, toY := float32(col), float32(row)
	g.Tweens = make(map[*gween.Tween]*Action)
	g.Tweens[gween.New(0, 1, glideSeconds, ease.OutQuad)] = &Action{
		onChange: func(f float32) {
			g.markerX = fromX + (toX-fromX)*f
			g.markerY = fromY + (toY-fromY)*f
		},
		onFinish: []func(){func() {
			g.markerX, g.markerY = toX, toY
		}},
	}
}

// bump shakes the marker in place when a move is blocked.
func (g *Game) bump() {
	shake := &Action{onChange: func(f float32) { g.shake = f }}
	t := gween.New(0, 4, glideSeconds/2, ease.OutQuad)
	back := shake.next(gween.New(4, 0, glideSeconds/2, ease.InQuad))
	back.onChange = func(f float32) { g.shake = f }
	back.addOnFinish(func() { g.shake = 0 })
	g.Tweens[t] = shake
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
