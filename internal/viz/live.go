// Package viz renders a live terminal view of a running reactor
// integration: temperature and fuel traces with run statistics.
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/md3387/NonIdealReactor/internal/config"
	"github.com/md3387/NonIdealReactor/internal/kinetics"
)

const (
	graphWidth   = 60
	graphHeight  = 8
	displayCap   = 600
	frameRate    = 30
	stepsPerTick = 20
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives a reactor network step by step and plots its history.
type Model struct {
	net     kinetics.Network
	cfg     *config.Config
	step    int
	steps   int
	running bool
	done    bool
	err     error

	temps []float64
	fuel  []float64
}

// NewModel wraps a configured reactor network for live display.
func NewModel(net kinetics.Network, cfg *config.Config) Model {
	return Model{
		net:     net,
		cfg:     cfg,
		steps:   cfg.Steps(),
		running: true,
		temps:   make([]float64, 0, displayCap),
		fuel:    make([]float64, 0, displayCap),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input and advances the integration one batch per frame.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		}
	case TickMsg:
		if m.running && !m.done {
			m.advance()
		}
		if m.done {
			return m, nil
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) advance() {
	for i := 0; i < stepsPerTick && m.step < m.steps; i++ {
		m.step++
		target := float64(m.step) * m.cfg.Step
		if err := m.net.Advance(context.Background(), target); err != nil {
			m.err = err
			m.done = true
			m.running = false
			return
		}
		m.record()
	}
	if m.step >= m.steps {
		m.done = true
		m.running = false
	}
}

func (m *Model) record() {
	m.temps = append(m.temps, m.net.Temperature())
	if len(m.temps) > displayCap {
		m.temps = m.temps[1:]
	}
	m.fuel = append(m.fuel, m.net.MoleFraction(m.cfg.Fuel))
	if len(m.fuel) > displayCap {
		m.fuel = m.fuel[1:]
	}
}

// View renders the traces and run statistics.
func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("SHOCK TUBE REACTOR") + "\n")

	switch {
	case m.err != nil:
		s.WriteString(doneStyle.Render(fmt.Sprintf("FAILED: %v", m.err)) + "\n")
	case m.done:
		s.WriteString(doneStyle.Render("COMPLETE") + "\n")
	case !m.running:
		s.WriteString("PAUSED\n")
	default:
		s.WriteString("RUNNING\n")
	}

	if len(m.temps) > 1 {
		chart := asciigraph.Plot(m.temps,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("Temperature [K]"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	if len(m.fuel) > 1 {
		chart := asciigraph.Plot(m.fuel,
			asciigraph.Height(graphHeight/2),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("X "+m.cfg.Fuel))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.6e s", m.net.Time())) + "\n")
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d / %d", m.step, m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Temperature") + valueStyle.Render(fmt.Sprintf("%.1f K", m.net.Temperature())) + "\n")
	s.WriteString(labelStyle.Render("X "+m.cfg.Fuel) + valueStyle.Render(fmt.Sprintf("%.6f", m.net.MoleFraction(m.cfg.Fuel))) + "\n")

	s.WriteString(helpStyle.Render("SP:Pause Q:Quit"))
	return s.String()
}
