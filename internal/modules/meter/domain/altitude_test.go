package domain_test

import (
	"math"
	"testing"

	"airtime/internal/modules/meter/domain"
)

func TestEquivalentAltitudeAnchors(t *testing.T) {
	t.Parallel()
	if h := domain.EquivalentAltitude(0.209); h != 0 {
		t.Fatalf("fresh air should be sea level, got %.3f", h)
	}
	for _, f := range []float64{0, -0.1, math.NaN()} {
		if h := domain.EquivalentAltitude(f); h != domain.SummitAltitudeM {
			t.Fatalf("fraction %v should map to the summit, got %.3f", f, h)
		}
	}
	if h := domain.EquivalentAltitude(0.01); h != domain.SummitAltitudeM {
		t.Fatalf("the 1%% floor is above the summit and must clamp, got %.3f", h)
	}
	if h := domain.EquivalentAltitude(0.3); h != 0 {
		t.Fatalf("richer than fresh air clamps to sea level, got %.3f", h)
	}
}

func TestEquivalentAltitudeMatchesBarometricFormula(t *testing.T) {
	t.Parallel()
	f := 0.209 * math.Exp(-1000.0/7000.0)
	if h := domain.EquivalentAltitude(f); math.Abs(h-1000) > 1e-6 {
		t.Fatalf("expected 1000 m, got %.6f", h)
	}
}

func TestEquivalentAltitudeIsNonIncreasing(t *testing.T) {
	t.Parallel()
	prev := math.Inf(1)
	for f := -0.01; f <= 0.25; f += 0.0005 {
		h := domain.EquivalentAltitude(f)
		if h < 0 || h > domain.SummitAltitudeM {
			t.Fatalf("altitude out of range at %.4f: %.3f", f, h)
		}
		if h > prev {
			t.Fatalf("altitude rose with more oxygen at %.4f: %.3f > %.3f", f, h, prev)
		}
		prev = h
	}
}

func TestIsDeadZone(t *testing.T) {
	t.Parallel()
	if domain.IsDeadZone(7999.9) {
		t.Fatalf("below 8000 m is not the dead zone")
	}
	if !domain.IsDeadZone(8000) || !domain.IsDeadZone(domain.SummitAltitudeM) {
		t.Fatalf("8000 m and above is the dead zone")
	}
}
