package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"senscal/internal/ui/theme"
)

// ConfirmResultMsg is emitted when the operator answers the dialog.
type ConfirmResultMsg struct{ Confirmed bool }

var confirmStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.RoundedBorder()).
	BorderForeground(theme.Peach).
	Background(theme.Mantle).
	Foreground(theme.Text).
	Padding(1, 2)

// Confirm is a modal yes/no overlay. While visible it swallows all input.
type Confirm struct {
	question string
	visible  bool
}

func NewConfirm() Confirm {
	return Confirm{}
}

func (c Confirm) Visible() bool { return c.visible }

func (c *Confirm) Open(question string) {
	c.question = question
	c.visible = true
}

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.visible {
		return c, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "y", "Y", "enter":
			c.visible = false
			return c, func() tea.Msg { return ConfirmResultMsg{Confirmed: true} }
		case "n", "N", "esc":
			c.visible = false
			return c, func() tea.Msg { return ConfirmResultMsg{Confirmed: false} }
		}
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.visible {
		return ""
	}
	body := theme.Title.Render(c.question) + "\n\n" +
		theme.Muted.Render("y: yes    n: no")
	return confirmStyle.Render(body)
}
