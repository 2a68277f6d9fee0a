// Package tui renders the trainer plan view in the terminal: a table of plans
// and a detail overlay with exercises grouped by day.
package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/meltforce/planview/internal/models"
	"github.com/meltforce/planview/internal/planclient"
	"github.com/meltforce/planview/internal/planview"
)

// collectionMsg is the result of a collection fetch.
type collectionMsg struct {
	trainerID string
	plans     []models.WorkoutSummary
	err       error
}

// detailMsg is the result of a detail fetch.
type detailMsg struct {
	token  uint64
	planID string
	detail *models.WorkoutDetail
	err    error
}

// Model is the Bubble Tea model. All view state lives in state and changes
// only through planview.Reduce.
type Model struct {
	ctx context.Context
	src planclient.Source
	log *slog.Logger

	state     planview.State
	lastToken uint64

	table          table.Model
	input          textinput.Model
	editingTrainer bool

	width  int
	height int
}

var _ tea.Model = Model{}

// New creates a model for trainerID. The plan collection is requested by Init.
func New(ctx context.Context, src planclient.Source, trainerID string, log *slog.Logger) Model {
	t := table.New(
		table.WithColumns(planColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	t.SetStyles(tableStyles())

	ti := textinput.New()
	ti.Placeholder = "trainer id"
	ti.CharLimit = 64
	ti.Prompt = "Trainer: "

	return Model{
		ctx:   ctx,
		src:   src,
		log:   log,
		state: planview.Reduce(planview.State{}, planview.TrainerSelected{TrainerID: trainerID}),
		table: t,
		input: ti,
	}
}

// State returns the current view state.
func (m Model) State() planview.State { return m.state }

func (m Model) Init() tea.Cmd {
	return m.loadCollection(m.state.TrainerID)
}

func (m Model) loadCollection(trainerID string) tea.Cmd {
	if trainerID == "" {
		return nil
	}
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		plans, err := src.ListWorkoutPlans(ctx, trainerID)
		return collectionMsg{trainerID: trainerID, plans: plans, err: err}
	}
}

func (m Model) loadDetail(token uint64, planID string) tea.Cmd {
	ctx, src := m.ctx, m.src
	return func() tea.Msg {
		detail, err := src.GetWorkoutPlan(ctx, planID)
		return detailMsg{token: token, planID: planID, detail: detail, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetColumns(planColumns(m.width))
		m.table.SetHeight(max(5, m.height-6))
		return m, nil

	case collectionMsg:
		if msg.err != nil {
			m.log.Error("fetching workout plans failed",
				"trainer_id", msg.trainerID,
				"kind", planclient.Kind(msg.err),
				"error", msg.err,
			)
			m.state = planview.Reduce(m.state, planview.CollectionLoadFailed{TrainerID: msg.trainerID, Err: msg.err})
			return m, nil
		}
		m.state = planview.Reduce(m.state, planview.CollectionLoaded{TrainerID: msg.trainerID, Plans: msg.plans})
		m.refreshRows()
		return m, nil

	case detailMsg:
		if msg.err != nil {
			m.log.Error("fetching workout detail failed",
				"plan_id", msg.planID,
				"kind", planclient.Kind(msg.err),
				"error", msg.err,
			)
			m.state = planview.Reduce(m.state, planview.DetailLoadFailed{Token: msg.token, Err: msg.err})
			return m, nil
		}
		m.state = planview.Reduce(m.state, planview.DetailLoaded{Token: msg.token, Detail: msg.detail})
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.editingTrainer {
		switch msg.String() {
		case "enter":
			m.editingTrainer = false
			m.input.Blur()
			return m.selectTrainer(m.input.Value())
		case "esc":
			m.editingTrainer = false
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.overlayVisible() {
		switch msg.String() {
		case "esc", "q", "enter", "backspace":
			m.state = planview.Reduce(m.state, planview.OverlayClosed{})
		}
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter":
		return m.selectPlan()
	case "t":
		m.editingTrainer = true
		m.input.SetValue(m.state.TrainerID)
		m.input.CursorEnd()
		return m, m.input.Focus()
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	// A click outside the panel dismisses the overlay.
	if m.overlayVisible() && !m.overlayContains(msg.X, msg.Y) {
		m.state = planview.Reduce(m.state, planview.OverlayClosed{})
	}
	return m, nil
}

func (m Model) selectTrainer(trainerID string) (tea.Model, tea.Cmd) {
	if trainerID == "" || trainerID == m.state.TrainerID {
		return m, nil
	}
	m.state = planview.Reduce(m.state, planview.TrainerSelected{TrainerID: trainerID})
	return m, m.loadCollection(trainerID)
}

func (m Model) selectPlan() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.state.Plans) {
		return m, nil
	}
	planID := m.state.Plans[idx].ID.String()

	m.lastToken++
	m.state = planview.Reduce(m.state, planview.DetailLoadRequested{Token: m.lastToken, PlanID: planID})
	return m, m.loadDetail(m.lastToken, planID)
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, 0, len(m.state.Plans))
	for _, p := range m.state.Plans {
		rows = append(rows, table.Row{p.Name, p.Description, p.FromDate.String(), p.ToDate.String()})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(0, len(rows)-1))
	}
}

func (m Model) overlayVisible() bool {
	return m.state.OverlayOpen && m.state.Selected != nil
}
