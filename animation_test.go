package paperdoll

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestLayerFades_IdleIsOpaque(t *testing.T) {
	f := NewLayerFades()
	if got := f.Alpha(Hair13); got != 1 {
		t.Errorf("Alpha = %f, want 1", got)
	}
	if f.Active() {
		t.Error("expected no active fades")
	}
}

func TestLayerFades_FadeInReachesOpaque(t *testing.T) {
	f := NewLayerFades()
	f.FadeIn(Hair13, 1.0, ease.Linear)

	if got := f.Alpha(Hair13); got != 0 {
		t.Fatalf("Alpha at start = %f, want 0", got)
	}

	f.Update(0.5)
	if got := f.Alpha(Hair13); math.Abs(float64(got)-0.5) > 0.01 {
		t.Errorf("Alpha at half = %f, want ~0.5", got)
	}
	if !f.Active() {
		t.Error("expected fade still active at half duration")
	}

	f.Update(0.5)
	if got := f.Alpha(Hair13); got != 1 {
		t.Errorf("Alpha at end = %f, want 1", got)
	}
	if f.Active() {
		t.Error("expected fade finished")
	}
}

func TestLayerFades_OtherLayersUnaffected(t *testing.T) {
	f := NewLayerFades()
	f.FadeIn(Head14, 1.0, ease.Linear)
	if got := f.Alpha(Body01); got != 1 {
		t.Errorf("Body01 Alpha = %f, want 1", got)
	}
}

func TestLayerFades_FadeOutStaysTransparent(t *testing.T) {
	f := NewLayerFades()
	f.FadeOut(Over15, 0.5, ease.Linear)
	f.Update(0.25)
	f.Update(0.25)
	if got := f.Alpha(Over15); got != 0 {
		t.Errorf("Alpha = %f, want 0", got)
	}
}

func TestLayerFades_ZeroDurationSnaps(t *testing.T) {
	f := NewLayerFades()
	f.FadeIn(Shrt05, 0, nil)
	if f.Active() {
		t.Error("zero-duration fade should not run")
	}
	if got := f.Alpha(Shrt05); got != 1 {
		t.Errorf("Alpha = %f, want 1", got)
	}
}

func TestLayerFades_Reset(t *testing.T) {
	f := NewLayerFades()
	f.FadeIn(Hair13, 1.0, ease.Linear)
	f.Reset()
	if f.Active() || f.Alpha(Hair13) != 1 {
		t.Error("Reset should leave every layer opaque and idle")
	}
}
