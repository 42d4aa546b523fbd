package paperdoll

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FadeDuration is the default fade-in length in seconds after a layer
// changes.
const FadeDuration float32 = 0.25

// LayerFades animates the opacity of individual layers, e.g. fading a part
// in after it was equipped or recolored. Layers without a running fade are
// fully opaque.
//
// There is no global animation manager; callers call Update themselves.
type LayerFades struct {
	tweens map[LayerCode]*gween.Tween
	alpha  map[LayerCode]float32
}

// NewLayerFades returns an idle fade set.
func NewLayerFades() *LayerFades {
	return &LayerFades{
		tweens: make(map[LayerCode]*gween.Tween),
		alpha:  make(map[LayerCode]float32),
	}
}

// FadeIn starts layer l at zero opacity and eases it to opaque over
// duration seconds. A nil fn means ease.OutQuad.
func (f *LayerFades) FadeIn(l LayerCode, duration float32, fn ease.TweenFunc) {
	f.start(l, 0, 1, duration, fn)
}

// FadeOut eases layer l from its current opacity to transparent.
func (f *LayerFades) FadeOut(l LayerCode, duration float32, fn ease.TweenFunc) {
	f.start(l, f.Alpha(l), 0, duration, fn)
}

func (f *LayerFades) start(l LayerCode, from, to, duration float32, fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.OutQuad
	}
	if duration <= 0 {
		delete(f.tweens, l)
		f.settle(l, to)
		return
	}
	f.tweens[l] = gween.New(from, to, duration, fn)
	f.alpha[l] = from
}

func (f *LayerFades) settle(l LayerCode, alpha float32) {
	if alpha >= 1 {
		delete(f.alpha, l)
		return
	}
	f.alpha[l] = alpha
}

// Update advances every running fade by dt seconds.
func (f *LayerFades) Update(dt float32) {
	for l, tw := range f.tweens {
		val, finished := tw.Update(dt)
		if finished {
			delete(f.tweens, l)
			f.settle(l, val)
			continue
		}
		f.alpha[l] = val
	}
}

// Alpha returns the current opacity of layer l in [0, 1].
func (f *LayerFades) Alpha(l LayerCode) float32 {
	if a, ok := f.alpha[l]; ok {
		return min(max(a, 0), 1)
	}
	return 1
}

// Active reports whether any fade is still running.
func (f *LayerFades) Active() bool {
	return len(f.tweens) > 0
}

// Reset drops every fade, leaving all layers opaque.
func (f *LayerFades) Reset() {
	clear(f.tweens)
	clear(f.alpha)
}
