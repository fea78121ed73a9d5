package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"asciigen/internal/monitor"
)

const barWidth = 60

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model for the progress screen.
type Model struct {
	ctrl    *Control
	total   int
	showArt bool
	stats   Stats
	paused  bool
	cpuPct  float64
	memPct  float64
}

func NewModel(ctrl *Control, total int, showArt bool) Model {
	return Model{ctrl: ctrl, total: total, showArt: showArt}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.ctrl.RequestStop()
			return m, tea.Quit
		case "p":
			m.ctrl.TogglePause()
			m.paused = m.ctrl.Paused()
		}

	case tickMsg:
	drain:
		for {
			select {
			case s := <-m.ctrl.stats:
				m.stats = s
			default:
				break drain
			}
		}
		m.cpuPct, m.memPct = monitor.Stats()
		if m.ctrl.finished() {
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("ASCIIGen - Genetic Algorithm ASCII Art Generator"))
	b.WriteByte('\n')
	b.WriteString(headerStyle.Render("================================================"))
	b.WriteString("\n\n")

	s := m.stats
	continuous := m.total == 0

	if continuous {
		b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Generation:"),
			goodStyle.Render(fmt.Sprintf("%d (continuous)", s.Generation)),
			labelStyle.Render("Fitness:"),
			fitnessStyle(s.BestFitness).Render(fmt.Sprintf("%.1f%%", s.BestFitness*100))))
	} else {
		progress := ratio(s.Generation, m.total)
		b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
			labelStyle.Render("Generation:"),
			goodStyle.Render(fmt.Sprintf("%d/%d", s.Generation, m.total)),
			labelStyle.Render("Progress:"),
			progressStyle(progress).Render(fmt.Sprintf("%.1f%%", progress*100))))
	}

	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render("Best Fitness:"),
		fitnessStyle(s.BestFitness).Render(fmt.Sprintf("%.2f%%", s.BestFitness*100)),
		labelStyle.Render("Population:"),
		goodStyle.Render(fmt.Sprintf("%d", s.Population))))

	gps := gensPerSec(s.Generation, s.Elapsed)
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		labelStyle.Render("Elapsed Time:"),
		goodStyle.Render(fmt.Sprintf("%.1fs", s.Elapsed.Seconds())),
		labelStyle.Render("Workers:"),
		goodStyle.Render(fmt.Sprintf("%d", s.Workers)),
		labelStyle.Render("Gen/s:"),
		goodStyle.Render(fmt.Sprintf("%.2f", gps))))

	b.WriteString(fmt.Sprintf("%s %s   ",
		labelStyle.Render("ASCII Size:"),
		goodStyle.Render(fmt.Sprintf("%dx%d chars", s.Cols, s.Rows))))
	if continuous {
		b.WriteString(hintStyle.Render("Press 'q' to stop"))
	} else if s.Generation > 0 && gps > 0 {
		eta := float64(m.total-s.Generation) / gps
		b.WriteString(fmt.Sprintf("%s %s",
			labelStyle.Render("ETA:"),
			warnStyle.Render(fmt.Sprintf("%.1fs", eta))))
	}
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("%s %s   %s %s\n",
		labelStyle.Render("CPU:"),
		goodStyle.Render(fmt.Sprintf("%.1f%%", m.cpuPct)),
		labelStyle.Render("Memory:"),
		goodStyle.Render(fmt.Sprintf("%.1f%%", m.memPct))))

	b.WriteByte('\n')
	if continuous {
		b.WriteString(labelStyle.Render("Fitness:  ["))
		b.WriteString(fitnessStyle(s.BestFitness).Render(bar('=', '.', s.BestFitness)))
	} else {
		progress := ratio(s.Generation, m.total)
		b.WriteString(labelStyle.Render("Progress: ["))
		b.WriteString(goodStyle.Render(bar('#', '-', progress)))
	}
	b.WriteString(labelStyle.Render("]"))
	b.WriteByte('\n')

	if m.showArt && s.Art != "" {
		b.WriteByte('\n')
		b.WriteString(hintStyle.Render("Current Best ASCII Art:"))
		b.WriteString("\n\n")
		b.WriteString(s.Art)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	footer := "Controls: 'q' to quit, 'p' to pause/resume"
	if m.paused {
		footer += "   [paused]"
	}
	b.WriteString(hintStyle.Render(footer))
	b.WriteByte('\n')

	return b.String()
}

// Run blocks until the engine finishes or the user quits.
func Run(ctrl *Control, total int, showArt bool) error {
	_, err := tea.NewProgram(NewModel(ctrl, total, showArt)).Run()
	return err
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}

func gensPerSec(generation int, elapsed time.Duration) float64 {
	if generation == 0 || elapsed <= 0 {
		return 0
	}
	return float64(generation) / elapsed.Seconds()
}

func bar(filled, empty rune, progress float64) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	n := int(barWidth * progress)
	return strings.Repeat(string(filled), n) + strings.Repeat(string(empty), barWidth-n)
}

func fitnessStyle(f float64) lipgloss.Style {
	switch {
	case f < 0.3:
		return badStyle
	case f < 0.7:
		return warnStyle
	default:
		return goodStyle
	}
}

func progressStyle(p float64) lipgloss.Style {
	switch {
	case p < 0.25:
		return badStyle
	case p < 0.75:
		return warnStyle
	default:
		return goodStyle
	}
}
