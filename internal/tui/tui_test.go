package tui

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dynstep/internal/sweep"
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestSweepModelProgress(t *testing.T) {
	m := NewSweepModel("decay k", "k", "x0", false, 4, nil)

	next, cmd := m.Update(ProgressMsg{Done: 2, Total: 4})
	m = next.(SweepModel)
	if cmd != nil {
		t.Error("progress should not schedule a command")
	}
	if !strings.Contains(m.View(), "2/4 runs") {
		t.Errorf("expected progress count in view:\n%s", m.View())
	}

	// Progress messages can arrive out of order from the workers.
	next, _ = m.Update(ProgressMsg{Done: 1, Total: 4})
	m = next.(SweepModel)
	if !strings.Contains(m.View(), "2/4 runs") {
		t.Error("progress went backwards")
	}
}

func TestSweepModelDone(t *testing.T) {
	m := NewSweepModel("decay k", "k", "x0", false, 3, nil)
	outcomes := []sweep.Outcome{
		{Index: 0, Value: 1, Metric: 0.3},
		{Index: 1, Value: 2, Metric: 0.1},
		{Index: 2, Value: 3, Metric: math.NaN()},
	}

	next, cmd := m.Update(DoneMsg{Outcomes: outcomes})
	m = next.(SweepModel)
	if !isQuit(cmd) {
		t.Error("expected quit after the sweep finishes")
	}

	view := m.View()
	for _, want := range []string{"3/3 runs", "done", "▸ 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view:\n%s", want, view)
		}
	}
	if len(m.Outcomes()) != 3 || m.Err() != nil || m.Canceled() {
		t.Errorf("unexpected final model: %+v", m)
	}
}

func TestSweepModelMaximize(t *testing.T) {
	outcomes := []sweep.Outcome{
		{Index: 0, Value: 1, Metric: 0.3},
		{Index: 1, Value: 2, Metric: 0.9},
		{Index: 2, Value: 3, Metric: 0.1},
	}

	tests := []struct {
		name     string
		maximize bool
		want     string
	}{
		{"minimize", false, "▸ 3"},
		{"maximize", true, "▸ 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewSweepModel("decay k", "k", "x0", tt.maximize, 3, nil)
			next, _ := m.Update(DoneMsg{Outcomes: outcomes})
			view := next.(SweepModel).View()
			if !strings.Contains(view, tt.want) {
				t.Errorf("expected %q in view:\n%s", tt.want, view)
			}
			if strings.Count(view, "▸") != 1 {
				t.Errorf("expected exactly one highlighted row:\n%s", view)
			}
		})
	}
}

func TestSweepModelError(t *testing.T) {
	m := NewSweepModel("decay k", "k", "x0", false, 3, nil)
	next, _ := m.Update(DoneMsg{Err: errors.New("run 1 failed")})
	m = next.(SweepModel)

	if !strings.Contains(m.View(), "run 1 failed") {
		t.Errorf("expected error in view:\n%s", m.View())
	}
	if m.Err() == nil {
		t.Error("expected error to be kept")
	}
}

func TestSweepModelQuitCancels(t *testing.T) {
	canceled := false
	m := NewSweepModel("decay k", "k", "x0", false, 3, func() { canceled = true })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(SweepModel)
	if !isQuit(cmd) {
		t.Error("expected quit on q")
	}
	if !canceled || !m.Canceled() {
		t.Error("expected quitting a running sweep to cancel it")
	}
}

func TestSparkline(t *testing.T) {
	tests := []struct {
		name  string
		data  []float64
		width int
		want  string
	}{
		{"empty", nil, 10, ""},
		{"rising", []float64{0, 1, 2, 3, 4, 5, 6, 7}, 8, "▁▂▃▄▅▆▇█"},
		{"flat", []float64{2, 2, 2}, 3, "▁▁▁"},
		{"nan gap", []float64{0, math.NaN(), 7}, 3, "▁ █"},
		{"squeezed", []float64{0, 0, 7, 7}, 2, "▁█"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sparkline(tt.data, tt.width); got != tt.want {
				t.Errorf("Sparkline(%v, %d) = %q, want %q", tt.data, tt.width, got, tt.want)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	out := Summary("run", F("model", "%s", "decay"), F("steps", "%d", 99))
	for _, want := range []string{"run", "model", "decay", "steps", "99"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in summary:\n%s", want, out)
		}
	}
}
