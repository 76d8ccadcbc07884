package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Norm(t *testing.T) {
	tests := []struct {
		state    State
		expected float64
	}{
		{State{3, 4}, 5.0},
		{State{1, 0}, 1.0},
		{State{0, 0}, 0.0},
		{State{1, 1, 1, 1}, 2.0},
	}

	for _, tt := range tests {
		if got := tt.state.Norm(); math.Abs(got-tt.expected) > 1e-10 {
			t.Errorf("Norm(%v) = %v, want %v", tt.state, got, tt.expected)
		}
	}
}

func TestState_Clone(t *testing.T) {
	src := State{1, 2, 3}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestNewIntegrator(t *testing.T) {
	grid, err := Linspace(0, 1, 11)
	if err != nil {
		t.Fatalf("linspace: %v", err)
	}

	u0 := State{1, 2}
	in, err := NewIntegrator(u0, grid)
	if err != nil {
		t.Fatalf("new integrator: %v", err)
	}

	if in.Dim() != 2 {
		t.Errorf("expected dim 2, got %d", in.Dim())
	}
	for name, buf := range map[string]State{"K1": in.K1, "K2": in.K2, "K3": in.K3, "K4": in.K4, "Tmp": in.Tmp} {
		if len(buf) != 2 {
			t.Errorf("%s: expected len 2, got %d", name, len(buf))
		}
	}
	if in.T != 0 || in.Iter != 0 {
		t.Errorf("expected t=0 iter=0, got t=%v iter=%d", in.T, in.Iter)
	}
	if math.Abs(in.Dt-0.1) > 1e-12 {
		t.Errorf("expected dt 0.1, got %v", in.Dt)
	}

	in.U[0] = 42
	if u0[0] == 42 {
		t.Error("integrator aliases the caller's initial state")
	}
}

func TestNewIntegrator_Invalid(t *testing.T) {
	grid, _ := Linspace(0, 1, 11)

	if _, err := NewIntegrator(State{}, grid); !errors.Is(err, ErrConfiguration) {
		t.Errorf("empty state: expected ErrConfiguration, got %v", err)
	}
	if _, err := NewIntegrator(State{1}, Grid{}); !errors.Is(err, ErrConfiguration) {
		t.Errorf("zero grid: expected ErrConfiguration, got %v", err)
	}
}

func TestConfigError(t *testing.T) {
	err := NewConfigError("period", 0, "must be positive")
	expected := "dynamo: invalid period 0: must be positive"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatal("expected *ConfigError")
	}
	if ce.Field != "period" {
		t.Errorf("expected field period, got %s", ce.Field)
	}
}
