package planview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	plandto "senscal/internal/modules/plan/dto"
	regiondto "senscal/internal/modules/region/dto"
	"senscal/internal/ui/theme"
)

// Default generation parameters used when the operator presses g.
const (
	defaultCount  = 5
	defaultJitter = 2
	defaultFrames = 10
)

type PlanPort interface {
	Generate(ctx context.Context, regionID string, count, jitter, frames int) (plandto.PlanOutput, error)
	Get(ctx context.Context) (plandto.PlanOutput, error)
}

type RegionPort interface {
	List(ctx context.Context) ([]regiondto.RegionOutput, error)
}

type RegionsLoadedMsg struct {
	Regions []regiondto.RegionOutput
	Err     error
}

type PlanLoadedMsg struct {
	Plan plandto.PlanOutput
	Err  error
}

// GeneratedMsg bubbles to the app so it can refresh run affordances.
type GeneratedMsg struct {
	Plan plandto.PlanOutput
	Err  error
}

type regionItem struct {
	region regiondto.RegionOutput
}

func (i regionItem) Title() string { return i.region.Name }
func (i regionItem) Description() string {
	return fmt.Sprintf("(%d, %d)  %s", i.region.X, i.region.Y, i.region.Description)
}
func (i regionItem) FilterValue() string { return i.region.Name }

type Model struct {
	plans   PlanPort
	regions RegionPort
	list    list.Model
	plan    plandto.PlanOutput
	hasPlan bool
	preview viewport.Model
	width   int
	height  int
}

func New(plans PlanPort, regions RegionPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Regions"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{plans: plans, regions: regions, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadRegionsCmd(), m.loadPlanCmd())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RegionsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Regions — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Regions))
		for i, r := range msg.Regions {
			items[i] = regionItem{region: r}
		}
		cmds = append(cmds, m.list.SetItems(items))

	case PlanLoadedMsg:
		if msg.Err == nil {
			m.plan = msg.Plan
			m.hasPlan = true
		}
		m.preview.SetContent(m.renderPlan())

	case GeneratedMsg:
		if msg.Err == nil {
			m.plan = msg.Plan
			m.hasPlan = true
		}
		m.preview.SetContent(m.renderPlan())

	case tea.KeyMsg:
		if msg.String() == "g" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(regionItem); ok {
				return m, m.generateCmd(item.region.ID)
			}
		}
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) SelectedRegionID() (string, bool) {
	if item, ok := m.list.SelectedItem().(regionItem); ok {
		return item.region.ID, true
	}
	return "", false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderPlan() string {
	if !m.hasPlan {
		return theme.Muted.Render("No plan yet. Select a region and press g to generate one.")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Position plan") + "\n\n")
	sb.WriteString(theme.Muted.Render("region: ") + m.plan.RegionID + "\n")
	sb.WriteString(fmt.Sprintf("%s(%d, %d)\n", theme.Muted.Render("base:   "), m.plan.BaseX, m.plan.BaseY))
	sb.WriteString(fmt.Sprintf("%s±%d\n", theme.Muted.Render("jitter: "), m.plan.Jitter))
	sb.WriteString(fmt.Sprintf("%s%d per position\n\n", theme.Muted.Render("frames: "), m.plan.FramesPerPosition))
	sb.WriteString(fmt.Sprintf("%-8s %4s %4s %8s\n", "id", "x", "y", "dist"))
	for _, p := range m.plan.Positions {
		sb.WriteString(fmt.Sprintf("%-8s %4d %4d %8.2f\n", p.ID, p.X, p.Y, p.Distance))
	}
	sb.WriteString("\n" + theme.Muted.Render("s: start run (Guide tab)"))
	return sb.String()
}

func (m Model) loadRegionsCmd() tea.Cmd {
	return func() tea.Msg {
		regions, err := m.regions.List(context.Background())
		return RegionsLoadedMsg{Regions: regions, Err: err}
	}
}

func (m Model) loadPlanCmd() tea.Cmd {
	return func() tea.Msg {
		plan, err := m.plans.Get(context.Background())
		return PlanLoadedMsg{Plan: plan, Err: err}
	}
}

func (m Model) generateCmd(regionID string) tea.Cmd {
	return func() tea.Msg {
		plan, err := m.plans.Generate(context.Background(), regionID, defaultCount, defaultJitter, defaultFrames)
		return GeneratedMsg{Plan: plan, Err: err}
	}
}
