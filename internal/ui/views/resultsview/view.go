package resultsview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analysisdto "senscal/internal/modules/analysis/dto"
	"senscal/internal/ui/theme"
)

type AnalysisPort interface {
	List(ctx context.Context) ([]analysisdto.RunRecordOutput, error)
	Analyze(ctx context.Context, runID string) (analysisdto.ReportOutput, error)
	Export(ctx context.Context, runID, format string) (string, error)
}

type RecordsLoadedMsg struct {
	Records []analysisdto.RunRecordOutput
	Err     error
}

type ReportLoadedMsg struct {
	Report analysisdto.ReportOutput
	Err    error
}

type ExportedMsg struct {
	Path string
	Err  error
}

type runItem struct {
	record analysisdto.RunRecordOutput
}

func (i runItem) Title() string {
	return fmt.Sprintf("%s  %s", i.record.StartedAt.Format("2006-01-02 15:04"), i.record.RegionID)
}

func (i runItem) Description() string {
	return fmt.Sprintf("%s  %d samples  cv %.4f  %s",
		i.record.Status, i.record.Samples, i.record.CV, i.record.Grade)
}

func (i runItem) FilterValue() string { return i.record.RegionID + " " + i.record.WeightID }

type Model struct {
	port    AnalysisPort
	list    list.Model
	report  analysisdto.ReportOutput
	preview viewport.Model
	width   int
	height  int
}

func New(port AnalysisPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Runs"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the run index; the app calls this when a run finishes.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case RecordsLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Runs — " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Records))
		for i, r := range msg.Records {
			items[i] = runItem{record: r}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Records) > 0 {
			cmds = append(cmds, m.loadReportCmd(msg.Records[len(msg.Records)-1].ID))
		}

	case ReportLoadedMsg:
		if msg.Err == nil {
			m.report = msg.Report
		}
		m.preview.SetContent(m.renderReport(msg.Err))

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch msg.String() {
		case "e":
			if id, ok := m.SelectedRunID(); ok {
				return m, m.exportCmd(id, "json")
			}
		case "t":
			if id, ok := m.SelectedRunID(); ok {
				return m, m.exportCmd(id, "text")
			}
		}
	}

	var lCmd tea.Cmd
	prevIdx := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if item, ok := m.list.SelectedItem().(runItem); ok {
			cmds = append(cmds, m.loadReportCmd(item.record.ID))
		}
	}

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

func (m Model) SelectedRunID() (string, bool) {
	if item, ok := m.list.SelectedItem().(runItem); ok {
		return item.record.ID, true
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

func (m Model) renderReport(loadErr error) string {
	if loadErr != nil {
		return theme.Muted.Render("analysis failed: " + loadErr.Error())
	}
	r := m.report
	if r.RunID == "" {
		return theme.Muted.Render("Select a run to see its sensitivity report")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Sensitivity report") + "\n\n")
	sb.WriteString(theme.Muted.Render("run:    ") + r.RunID + "\n")
	sb.WriteString(theme.Muted.Render("region: ") + r.RegionID + "\n")
	sb.WriteString(theme.Muted.Render("weight: ") + r.WeightID + "\n")
	sb.WriteString(theme.Muted.Render("status: ") + r.Status + "\n\n")
	sb.WriteString(fmt.Sprintf("%-8s %4s %4s %10s %8s %-9s\n", "pos", "x", "y", "mean", "cv", "grade"))
	for _, p := range r.Positions {
		sb.WriteString(fmt.Sprintf("%-8s %4d %4d %10.2f %8.4f %s\n",
			p.PositionID, p.X, p.Y, p.Mean, p.CV, theme.GradeStyle(p.Grade).Render(p.Grade)))
	}
	sb.WriteString(fmt.Sprintf("\noverall: mean %.2f  cv %.4f  %s\n",
		r.Overall.MeanOfMeans, r.Overall.CV, theme.GradeStyle(r.Overall.Grade).Render(r.Overall.Grade)))
	sb.WriteString(fmt.Sprintf("frames:  %d recorded  mean %.2f  cv %.4f\n",
		r.Overall.Frames, r.Overall.FrameMean, r.Overall.FrameCV))
	sb.WriteString(r.Recommendation + "\n")
	sb.WriteString("\n" + theme.Muted.Render("e: export json  t: export text"))
	return sb.String()
}

func (m Model) loadReportCmd(runID string) tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Analyze(context.Background(), runID)
		return ReportLoadedMsg{Report: report, Err: err}
	}
}

func (m Model) exportCmd(runID, format string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.port.Export(context.Background(), runID, format)
		return ExportedMsg{Path: path, Err: err}
	}
}
