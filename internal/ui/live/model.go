package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultRefresh = 200 * time.Millisecond

// Model is the Bubble Tea model behind the live run view: a task table
// under a run header, refreshed on a timer so elapsed times move even
// when no events arrive.
type Model struct {
	state   State
	table   table.Model
	events  <-chan Event
	refresh time.Duration
	now     time.Time
	noColor bool
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
}

func NewModel(events <-chan Event, opts Options) Model {
	refresh := opts.TickInterval
	if refresh <= 0 {
		refresh = defaultRefresh
	}
	t := table.New(
		table.WithColumns(defaultColumns()),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		table:   t,
		events:  events,
		refresh: refresh,
		now:     time.Now(),
		noColor: opts.NoColor,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(nextEvent(m.events), refreshEvery(m.refresh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		switch typed.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.table.SetWidth(typed.Width)
		height := typed.Height - 4
		if height < 1 {
			height = 1
		}
		m.table.SetHeight(height)
	case EventMsg:
		m = m.applyEvent(typed.Event)
		return m, nextEvent(m.events)
	case refreshMsg:
		m.now = time.Time(typed)
		m.table.SetRows(rowsForState(m.state, m.now))
		return m, refreshEvery(m.refresh)
	}
	return m, nil
}

func (m Model) View() string {
	header := renderHeader(m.state, m.now, m.noColor)
	summary := renderSummary(m.state, m.noColor)
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, m.table.View(), footer)
}

// EventMsg delivers one run event to the model.
type EventMsg struct {
	Event Event
}

type refreshMsg time.Time

// nextEvent blocks on the event channel; a closed channel ends the
// program.
func nextEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func refreshEvery(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) applyEvent(event Event) Model {
	switch event.Kind {
	case EventRunStart:
		m.state.RunID = event.RunID
		m.state.TotalTasks = event.TotalTasks
		if m.state.StartedAt.IsZero() {
			m.state.StartedAt = time.Now()
		}
	case EventTask:
		m.state = Reduce(m.state, event.Task)
	case EventDocument:
		m.state.LastEvent = "document " + event.DocID + " aggregated"
	case EventRunEnd:
		m.state.Finished = true
	}
	m.table.SetRows(rowsForState(m.state, m.now))
	return m
}
