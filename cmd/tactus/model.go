package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tactus-audio/tactus/pkg/engine"
	"github.com/tactus-audio/tactus/pkg/looper"
)

// noteLength is how long a keypress sustains before its voice releases;
// terminals report no key-up events.
const noteLength = 300 * time.Millisecond

// refreshRate drives the phase meter and voice counter redraw.
const refreshRate = 80 * time.Millisecond

var paramOrder = []string{
	engine.ParamGrime,
	engine.ParamFlow,
	engine.ParamShimmer,
	engine.ParamDepth,
	engine.ParamOctave,
}

type model struct {
	eng  *engine.Engine
	loop *looper.Looper

	selected   int // index into paramOrder
	complexity float64
	quitting   bool
}

type tickMsg time.Time

// noteOffMsg releases a key-triggered voice from the update loop, keeping
// all engine calls on one goroutine.
type noteOffMsg struct {
	touchID int
}

func newModel(eng *engine.Engine, loop *looper.Looper) model {
	return model{
		eng:        eng,
		loop:       loop,
		complexity: 1.0,
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func noteOff(id int) tea.Cmd {
	return tea.Tick(noteLength, func(time.Time) tea.Msg {
		return noteOffMsg{touchID: id}
	})
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case noteOffMsg:
		m.eng.TouchEnd(msg.touchID)

	case tickMsg:
		return m, tick()
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "1", "2", "3", "4", "5":
		m.selected = int(key[0] - '1')

	case "up":
		name := paramOrder[m.selected]
		m.eng.SetParameter(name, m.eng.GetParameter(name)+0.05)

	case "down":
		name := paramOrder[m.selected]
		m.eng.SetParameter(name, m.eng.GetParameter(name)-0.05)

	case "[":
		m.complexity -= 0.2
		if m.complexity < 0 {
			m.complexity = 0
		}
		m.eng.SetComplexity(m.complexity)

	case "]":
		m.complexity += 0.2
		if m.complexity > 1 {
			m.complexity = 1
		}
		m.eng.SetComplexity(m.complexity)

	case "r":
		st := m.loop.GetState()
		if st.IsRecording {
			m.loop.StopRecording()
		} else {
			m.loop.StartRecording()
		}

	case " ":
		m.loop.TogglePlayback()

	case "backspace":
		m.loop.Clear()

	case "-", "_":
		m.loop.SetVolume(m.loop.Volume() - 0.1)

	case "+", "=":
		m.loop.SetVolume(m.loop.Volume() + 0.1)

	default:
		if x, y, ok := keyToTouch(key); ok {
			id := keyTouchID(key)
			m.eng.TouchStart(id, x, y, 0.9)
			return m, noteOff(id)
		}
	}
	return m, nil
}

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	recStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render("tactus"))
	out.WriteString(dimStyle.Render(fmt.Sprintf("  voices:%d/%d", m.eng.ActiveVoices(), engine.MaxVoices)))
	out.WriteString("\n\n")

	for i, name := range paramOrder {
		style := labelStyle
		marker := "  "
		if i == m.selected {
			style = selectedStyle
			marker = "> "
		}
		v := m.eng.GetParameter(name)
		line := fmt.Sprintf("%s%-8s %s %4.2f", marker, name, slider(v, 20), v)
		out.WriteString(style.Render(line))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(m.loopLine())
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render("zxcvb/asdfg:play  1-5:param  up/down:adjust  [/]:complexity"))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("r:record  space:play/pause  backspace:clear  +/-:loop vol  q:quit"))
	out.WriteString("\n")
	return out.String()
}

func (m model) loopLine() string {
	st := m.loop.GetState()
	switch {
	case st.IsRecording && !st.HasLoop:
		return recStyle.Render("  ● REC")
	case st.IsRecording:
		return recStyle.Render("  ● OVERDUB ") + labelStyle.Render(phaseMeter(m.loop.PlaybackPosition(), 20))
	case st.IsPlaying:
		return labelStyle.Render(fmt.Sprintf("  ▶ %4.1fs %s vol %3.1f",
			st.Duration, phaseMeter(m.loop.PlaybackPosition(), 20), st.Volume))
	case st.HasLoop:
		return dimStyle.Render(fmt.Sprintf("  ‖ %4.1fs paused", st.Duration))
	default:
		return dimStyle.Render("  no loop")
	}
}

// phaseMeter renders the loop phase as a moving cursor.
func phaseMeter(phase float64, width int) string {
	pos := int(phase * float64(width))
	if pos >= width {
		pos = width - 1
	}
	bar := make([]rune, width)
	for i := range bar {
		if i == pos {
			bar[i] = '●'
		} else {
			bar[i] = '─'
		}
	}
	return string(bar)
}
