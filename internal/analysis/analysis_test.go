package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/dynstep/internal/dynamo"
	"github.com/san-kum/dynstep/internal/integrators"
	"github.com/san-kum/dynstep/internal/models"
)

func TestDominantFrequency(t *testing.T) {
	dt := 0.01
	data := make([]float64, 1000)
	for i := range data {
		data[i] = 3 + math.Sin(2*math.Pi*2*float64(i)*dt)
	}

	f, err := DominantFrequency(data, dt)
	if err != nil {
		t.Fatalf("dominant frequency: %v", err)
	}
	if math.Abs(f-2) > 0.1 {
		t.Errorf("expected ~2 Hz, got %v", f)
	}
}

func TestPowerSpectrumRejectsShortSeries(t *testing.T) {
	if _, _, err := PowerSpectrum([]float64{1}); !errors.Is(err, ErrTooShort) {
		t.Errorf("expected ErrTooShort, got %v", err)
	}
	if _, err := DominantFrequency([]float64{1, 2, 3}, 0); err == nil {
		t.Error("expected error for zero spacing")
	}
}

func TestPhasePortrait(t *testing.T) {
	n := 200
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i := range xs {
		a := 2 * math.Pi * float64(i) / float64(n)
		xs[i], ys[i] = math.Cos(a), math.Sin(a)
	}
	ys[5] = math.NaN()

	out, err := PhasePortrait(xs, ys, 40, 12)
	if err != nil {
		t.Fatalf("portrait: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 12 {
		t.Fatalf("expected 12 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 40 {
			t.Fatalf("expected 40 columns, got %d", n)
		}
	}
	for _, want := range []string{"•", "│", "─"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in portrait", want)
		}
	}

	if _, err := PhasePortrait(xs, ys[:10], 40, 12); err == nil {
		t.Error("expected error for mismatched series")
	}
}

func TestLyapunovDecay(t *testing.T) {
	k := 1.0
	f := func(du, u dynamo.State, _ float64) { du[0] = -k * u[0] }

	l, err := NewLyapunov(f, 1, 1e-8, 10)
	if err != nil {
		t.Fatal(err)
	}
	grid, _ := dynamo.Linspace(0, 10, 1001)
	lambda, err := l.Estimate(dynamo.State{1}, grid, integrators.NewRK4())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if math.Abs(lambda+k) > 1e-3 {
		t.Errorf("expected exponent %v, got %v", -k, lambda)
	}
}

func TestLyapunovLorenzIsChaotic(t *testing.T) {
	m := models.NewLorenz()
	l, err := NewLyapunov(m.Derive, m.StateDim(), 1e-8, 10)
	if err != nil {
		t.Fatal(err)
	}
	grid, _ := dynamo.Linspace(0, 100, 10001)
	lambda, err := l.Estimate(m.DefaultState(), grid, integrators.NewRK4())
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if lambda < 0.3 || lambda > 1.5 {
		t.Errorf("expected a positive exponent near 0.9, got %v", lambda)
	}
}

func TestNewLyapunovRejects(t *testing.T) {
	f := func(du, u dynamo.State, _ float64) {}
	tests := []struct {
		name   string
		f      dynamo.Func
		dim    int
		d0     float64
		period int
	}{
		{"nil func", nil, 1, 1e-8, 1},
		{"zero dim", f, 0, 1e-8, 1},
		{"zero perturbation", f, 1, 0, 1},
		{"nan perturbation", f, 1, math.NaN(), 1},
		{"zero period", f, 1, 1e-8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLyapunov(tt.f, tt.dim, tt.d0, tt.period)
			if !errors.Is(err, dynamo.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
