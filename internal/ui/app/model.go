package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "senscal/internal/modules/session/dto"
	"senscal/internal/ui/components"
	"senscal/internal/ui/theme"
	"senscal/internal/ui/views/guideview"
	"senscal/internal/ui/views/planview"
	"senscal/internal/ui/views/resultsview"
)

// guideInterval drives the press-now blink while a run is active.
const guideInterval = 500 * time.Millisecond

// defaultWeightID tags runs started from the TUI, where no weight selector
// exists yet. The CLI accepts an explicit weight id.
const defaultWeightID = "default"

// sessionPort is the measurement surface this orchestration layer drives.
// Session calls are in-process state transitions, so they run synchronously
// inside Update instead of as async commands.
type sessionPort interface {
	Start(ctx context.Context, weightID string) (sessiondto.SummaryOutput, error)
	RecordFrame(ctx context.Context) (sessiondto.FrameOutput, error)
	Next(ctx context.Context) (sessiondto.SummaryOutput, error)
	Previous(ctx context.Context) (sessiondto.SummaryOutput, error)
	Stop(ctx context.Context) (sessiondto.SummaryOutput, error)
	WindowClosed(ctx context.Context) (sessiondto.CloseOutput, error)
	Summary(ctx context.Context) (sessiondto.SummaryOutput, error)
	Affordances(ctx context.Context) (map[string]bool, error)
	CurrentPosition(ctx context.Context) (sessiondto.PositionOutput, bool, error)
	RefreshPlan(ctx context.Context) error
}

type tabID int

const (
	tabPlan tabID = iota
	tabGuide
	tabResults
	tabCount
)

var tabLabels = [tabCount]string{"Plan", "Guide", "Results"}

// confirmIntent records why the confirm overlay is open.
type confirmIntent int

const (
	confirmNone confirmIntent = iota
	confirmCloseGuide
	confirmQuit
)

type guideTickMsg struct{}

// planReadyMsg reports that plan availability was pushed to the controller,
// so affordances need re-reading.
type planReadyMsg struct{}

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Quit     key.Binding
	Start    key.Binding
	Record   key.Binding
	Next     key.Binding
	Previous key.Binding
	Close    key.Binding
	Generate key.Binding
	Export   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start run")),
		Record:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "record frame")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next position")),
		Previous: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous position")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close guide")),
		Generate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate plan")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e/t", "export report")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Start, k.Record, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Generate, k.Start},
		{k.Record, k.Next, k.Previous, k.Close},
		{k.Export, k.Help, k.Quit},
	}
}

// Model is the root Bubble Tea model. It owns tab routing, the guide blink
// chain, and the stop-confirmation overlay; measurement semantics live
// behind the session port.
type Model struct {
	workspacePath string

	session     sessionPort
	setDecision func(stop bool)

	planView    planview.Model
	guideView   guideview.Model
	resultsView resultsview.Model

	activeTab   tabID
	keys        keyMap
	help        help.Model
	showHelp    bool
	confirm     components.Confirm
	intent      confirmIntent
	blink       bool
	ticking     bool
	affordances map[string]bool
	status      string
	width       int
	height      int
}

func NewModel(
	workspacePath string,
	session sessionPort,
	setDecision func(stop bool),
	plans planview.PlanPort,
	regions planview.RegionPort,
	analysis resultsview.AnalysisPort,
) Model {
	return Model{
		workspacePath: workspacePath,
		session:       session,
		setDecision:   setDecision,
		planView:      planview.New(plans, regions),
		guideView:     guideview.New(),
		resultsView:   resultsview.New(analysis),
		activeTab:     tabPlan,
		keys:          defaultKeys(),
		help:          help.New(),
		confirm:       components.NewConfirm(),
		affordances:   map[string]bool{},
		status:        "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.planView.Init(),
		m.resultsView.Init(),
		m.refreshPlanCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The confirm overlay swallows all input while open.
	if m.confirm.Visible() {
		var cmd tea.Cmd
		m.confirm, cmd = m.confirm.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.width
		m.propagateSize()

	case guideTickMsg:
		summary, err := m.session.Summary(context.Background())
		if err != nil || summary.Status != "active" {
			m.ticking = false
			m.blink = false
			m.guideView.SetBlink(false)
			return m, nil
		}
		m.blink = !m.blink
		m.guideView.SetBlink(m.blink)
		return m, m.tickCmd()

	case planReadyMsg:
		m.refreshSession()

	case components.ConfirmResultMsg:
		return m.handleConfirm(msg.Confirmed)

	case planview.GeneratedMsg:
		if msg.Err != nil {
			m.status = "plan: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("plan generated: %d positions in %s", len(msg.Plan.Positions), msg.Plan.RegionID)
			cmds = append(cmds, m.refreshPlanCmd())
		}
		var cmd tea.Cmd
		m.planView, cmd = m.planView.Update(msg)
		cmds = append(cmds, cmd)
		m.refreshSession()
		return m, tea.Batch(cmds...)

	case resultsview.ExportedMsg:
		if msg.Err != nil {
			m.status = "export: " + msg.Err.Error()
		} else {
			m.status = "exported " + msg.Path
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.runActive() {
				m.intent = confirmQuit
				m.confirm.Open("Stop the active run and quit?")
				return m, nil
			}
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
		case "?":
			m.showHelp = !m.showHelp
		case "s":
			return m.startRun()
		case " ":
			return m.recordFrame()
		case "n":
			return m.nextPosition()
		case "p":
			return m.previousPosition()
		case "esc":
			if m.activeTab == tabGuide && m.runActive() {
				m.intent = confirmCloseGuide
				m.confirm.Open("Measurement in progress. Stop the run?")
				return m, nil
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabPlan:
		m.planView, tabCmd = m.planView.Update(msg)
	case tabGuide:
		m.guideView, tabCmd = m.guideView.Update(msg)
	case tabResults:
		m.resultsView, tabCmd = m.resultsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

// startRun begins a run and switches to the guide tab.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	if !m.affordances["start_run"] {
		m.status = "no plan to run; generate one first"
		return m, nil
	}
	summary, err := m.session.Start(context.Background(), defaultWeightID)
	if err != nil {
		m.status = "start failed: " + err.Error()
		return m, nil
	}
	m.activeTab = tabGuide
	m.status = fmt.Sprintf("run started: %d positions", summary.Total)
	m.refreshSession()
	if !m.ticking {
		m.ticking = true
		return m, m.tickCmd()
	}
	return m, nil
}

func (m Model) recordFrame() (tea.Model, tea.Cmd) {
	if !m.affordances["record_frame"] {
		return m, nil
	}
	frame, err := m.session.RecordFrame(context.Background())
	if err != nil {
		m.status = "record failed: " + err.Error()
		return m, nil
	}
	m.guideView.SetLastFrame(frame)
	if frame.Sealed {
		m.status = fmt.Sprintf("%s sealed (%d/%d)", frame.PositionID, frame.Summary.Recorded, frame.Summary.Total)
	}
	m.refreshSession()
	return m.afterTransition(frame.Summary)
}

func (m Model) nextPosition() (tea.Model, tea.Cmd) {
	if !m.affordances["next_position"] {
		return m, nil
	}
	summary, err := m.session.Next(context.Background())
	if err != nil {
		m.status = "next: " + err.Error()
		return m, nil
	}
	m.refreshSession()
	return m.afterTransition(summary)
}

func (m Model) previousPosition() (tea.Model, tea.Cmd) {
	if !m.affordances["previous_position"] {
		return m, nil
	}
	summary, err := m.session.Previous(context.Background())
	if err != nil {
		m.status = "previous: " + err.Error()
		return m, nil
	}
	m.status = fmt.Sprintf("reopened position %d", summary.CurrentIndex+1)
	m.refreshSession()
	return m, nil
}

// handleConfirm resolves the overlay answer for whichever intent opened it.
// Both intents route through WindowClosed so the controller owns the
// stop-versus-resume outcome.
func (m Model) handleConfirm(confirmed bool) (tea.Model, tea.Cmd) {
	intent := m.intent
	m.intent = confirmNone
	m.setDecision(confirmed)
	out, err := m.session.WindowClosed(context.Background())
	if err != nil {
		m.status = "stop: " + err.Error()
	}
	m.refreshSession()
	switch {
	case intent == confirmQuit && confirmed:
		return m, tea.Quit
	case confirmed:
		m.ticking = false
		m.status = fmt.Sprintf("run stopped with %d samples", out.Summary.Recorded)
		return m, m.resultsView.Reload()
	default:
		m.status = "run resumed"
		// The overlay swallowed any pending tick, so the blink chain must
		// be restarted for the run to keep prompting.
		if m.runActive() {
			m.ticking = true
			return m, m.tickCmd()
		}
		m.ticking = false
		return m, nil
	}
}

// afterTransition reacts to a summary that may have reached a terminal
// state: refresh the results index view and report how the run ended.
func (m Model) afterTransition(summary sessiondto.SummaryOutput) (tea.Model, tea.Cmd) {
	switch summary.Status {
	case "completed":
		m.status = fmt.Sprintf("run completed: %d samples", summary.Recorded)
		return m, m.resultsView.Reload()
	case "stopped":
		m.status = fmt.Sprintf("run stopped: %d samples", summary.Recorded)
		return m, m.resultsView.Reload()
	}
	return m, nil
}

// refreshSession pulls the controller state the guide view renders from.
func (m *Model) refreshSession() {
	ctx := context.Background()
	if summary, err := m.session.Summary(ctx); err == nil {
		m.guideView.SetSummary(summary)
	}
	pos, ok, err := m.session.CurrentPosition(ctx)
	if err == nil {
		m.guideView.SetPosition(pos, ok)
	}
	if affordances, err := m.session.Affordances(ctx); err == nil {
		m.affordances = affordances
	}
}

func (m Model) runActive() bool {
	summary, err := m.session.Summary(context.Background())
	return err == nil && summary.Status == "active"
}

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabPlan:
		return m.planView.Filtering()
	case tabResults:
		return m.resultsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.planView, _ = m.planView.Update(sz)
	m.guideView, _ = m.guideView.Update(sz)
	m.resultsView, _ = m.resultsView.Update(sz)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "senscal  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.runActive() {
		left = theme.Hot.Render("● measuring") + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabPlan:
		return m.planView.View()
	case tabGuide:
		return m.guideView.View()
	case tabResults:
		return m.resultsView.View()
	}
	return ""
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(guideInterval, func(time.Time) tea.Msg {
		return guideTickMsg{}
	})
}

func (m Model) refreshPlanCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.session.RefreshPlan(context.Background())
		return planReadyMsg{}
	}
}
