// Package tui renders parameter sweeps in the terminal with bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/dynstep/internal/sweep"
)

// ProgressMsg reports that done of total runs have finished.
type ProgressMsg struct {
	Done, Total int
}

// DoneMsg carries the sweep result.
type DoneMsg struct {
	Outcomes []sweep.Outcome
	Err      error
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

const barWidth = 36

type SweepModel struct {
	title    string
	param    string
	metric   string
	maximize bool

	done, total int
	started     time.Time
	elapsed     time.Duration

	outcomes []sweep.Outcome
	err      error
	finished bool
	canceled bool
	cancel   context.CancelFunc
}

// NewSweepModel builds the view for a sweep of total runs. maximize marks
// the largest metric as best instead of the smallest. cancel, if set, is
// called when the user quits early.
func NewSweepModel(title, param, metric string, maximize bool, total int, cancel context.CancelFunc) SweepModel {
	return SweepModel{
		title:    title,
		param:    param,
		metric:   metric,
		maximize: maximize,
		total:    total,
		started:  time.Now(),
		cancel:   cancel,
	}
}

func (m SweepModel) Init() tea.Cmd { return tick() }

func (m SweepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if !m.finished && m.cancel != nil {
				m.cancel()
			}
			m.canceled = !m.finished
			return m, tea.Quit
		}
	case ProgressMsg:
		if msg.Done > m.done {
			m.done = msg.Done
		}
		m.total = msg.Total
	case DoneMsg:
		m.outcomes = msg.Outcomes
		m.err = msg.Err
		m.finished = true
		m.elapsed = time.Since(m.started)
		if msg.Err == nil {
			m.done = m.total
		}
		return m, tea.Quit
	case tickMsg:
		if m.finished {
			return m, nil
		}
		m.elapsed = time.Since(m.started)
		return m, tick()
	}
	return m, nil
}

func (m SweepModel) View() string {
	var b strings.Builder

	status := green.Render("●") + " " + green.Render("running")
	switch {
	case m.err != nil:
		status = red.Render("✕") + " " + red.Render("failed")
	case m.canceled:
		status = yellow.Render("○") + " " + yellow.Render("canceled")
	case m.finished:
		status = cyan.Render("✓") + " " + cyan.Render("done")
	}
	fmt.Fprintf(&b, "\n   %s  %s\n", cyan.Render(m.title), status)

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	counts := fmt.Sprintf("%d/%d runs", m.done, m.total)
	fmt.Fprintf(&b, "   %s %s  %s\n", ProgressBar(frac, barWidth), dim.Render(counts), dim.Render(m.elapsed.Round(time.Millisecond).String()))

	if m.err != nil {
		fmt.Fprintf(&b, "\n   %s\n", red.Render(m.err.Error()))
	}

	if m.finished && len(m.outcomes) > 0 {
		b.WriteString("\n")
		fmt.Fprintf(&b, "   %s %s\n", dim.Render(fmt.Sprintf("%-12s", m.param)), dim.Render(m.metric))
		best, ok := sweep.Best(m.outcomes, m.maximize)
		for _, o := range m.outcomes {
			line := fmt.Sprintf("%-12.4g %.6g", o.Value, o.Metric)
			if ok && o.Index == best.Index {
				b.WriteString("   " + cyan.Render("▸ "+line) + "\n")
			} else {
				b.WriteString("     " + white.Render(line) + "\n")
			}
		}

		metrics := make([]float64, len(m.outcomes))
		for i, o := range m.outcomes {
			metrics[i] = o.Metric
		}
		fmt.Fprintf(&b, "\n   %s %s\n", dim.Render(m.metric), cyan.Render(Sparkline(metrics, 24)))
	}

	if !m.finished {
		b.WriteString("\n" + dim.Render("   q quit") + "\n")
	}
	return b.String()
}

func (m SweepModel) Outcomes() []sweep.Outcome { return m.outcomes }
func (m SweepModel) Err() error                { return m.err }
func (m SweepModel) Canceled() bool            { return m.canceled }

// RunSweep shows progress while run executes in the background. run gets a
// progress function suitable for sweep.WithProgress.
func RunSweep(ctx context.Context, title, param, metric string, maximize bool, total int,
	run func(ctx context.Context, progress func(done, total int)) ([]sweep.Outcome, error),
) ([]sweep.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewSweepModel(title, param, metric, maximize, total, cancel))
	go func() {
		outcomes, err := run(ctx, func(done, total int) {
			p.Send(ProgressMsg{Done: done, Total: total})
		})
		p.Send(DoneMsg{Outcomes: outcomes, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(SweepModel)
	if m.Canceled() {
		return nil, context.Canceled
	}
	return m.Outcomes(), m.Err()
}
