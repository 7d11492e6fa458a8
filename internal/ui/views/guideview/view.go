package guideview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "senscal/internal/modules/session/dto"
	"senscal/internal/ui/theme"
)

// mapCells is the edge of the downscaled grid map shown as the press target.
const (
	gridSize = 64
	mapCells = 16
)

// Model renders the measurement guide. It is a pure projection of session
// state: the app model feeds it summaries and owns all key handling.
type Model struct {
	summary  sessiondto.SummaryOutput
	position sessiondto.PositionOutput
	hasPos   bool
	lastSeen sessiondto.FrameOutput
	hasFrame bool
	blink    bool
	width    int
	height   int
}

func New() Model {
	return Model{}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m *Model) SetSummary(summary sessiondto.SummaryOutput) {
	m.summary = summary
}

func (m *Model) SetPosition(pos sessiondto.PositionOutput, ok bool) {
	m.position = pos
	m.hasPos = ok
}

func (m *Model) SetLastFrame(frame sessiondto.FrameOutput) {
	m.lastSeen = frame
	m.hasFrame = true
}

func (m *Model) SetBlink(on bool) {
	m.blink = on
}

func (m Model) View() string {
	if !m.summary.WindowOpen {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render(m.idleHint()))
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Measurement guide") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s%d / %d positions sealed\n",
		theme.Muted.Render("progress: "), m.summary.Recorded, m.summary.Total))
	if m.hasPos {
		sb.WriteString(fmt.Sprintf("%s%s at (%d, %d), %.2f from base\n",
			theme.Muted.Render("target:   "), m.position.ID, m.position.X, m.position.Y, m.position.Distance))
		sb.WriteString(fmt.Sprintf("%s%d recorded for this position\n",
			theme.Muted.Render("frames:   "), m.summary.PendingFrames))
	}
	if m.hasFrame {
		sb.WriteString(fmt.Sprintf("%s%.2f at %s\n",
			theme.Muted.Render("last:     "), m.lastSeen.Pressure, m.lastSeen.PositionID))
	}
	sb.WriteString("\n")
	if m.blink {
		sb.WriteString(theme.Prompt.Render("▶ PRESS NOW") + "\n\n")
	} else {
		sb.WriteString("\n\n")
	}
	sb.WriteString(m.renderMap())
	sb.WriteString("\n" + theme.Muted.Render("space: record  n: next  p: previous  esc: close guide"))

	pane := theme.Pane.Width(max(m.width-4, 20))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		pane.Render(sb.String()))
}

func (m Model) idleHint() string {
	switch m.summary.Status {
	case "stopped":
		return "Run stopped. Results are on the Results tab; press s to start again."
	case "completed":
		return "Run completed. Results are on the Results tab; press s to start again."
	default:
		return "No active run. Generate a plan on the Plan tab, then press s to start."
	}
}

// renderMap draws the sensor grid downscaled to mapCells per edge with the
// current target marked.
func (m Model) renderMap() string {
	if !m.hasPos {
		return ""
	}
	scale := gridSize / mapCells
	tx := m.position.X / scale
	ty := m.position.Y / scale
	if tx >= mapCells {
		tx = mapCells - 1
	}
	if ty >= mapCells {
		ty = mapCells - 1
	}
	var sb strings.Builder
	for y := 0; y < mapCells; y++ {
		for x := 0; x < mapCells; x++ {
			if x == tx && y == ty {
				sb.WriteString(theme.Hot.Render("◉ "))
			} else {
				sb.WriteString(theme.Muted.Render("· "))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
