package modals

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
)

// NewSquadShape has a non-empty, all-optional contract: callers must pass a
// payload (possibly {}), and origin records where the flow started from.
var NewSquadShape = modal.Shape{
	{Name: "origin", Required: false},
	{Name: modal.FieldVisible, Required: true},
	{Name: modal.FieldClose, Required: true},
}

func loadNewSquad(deps Deps) modal.LoadFunc {
	return func(ctx context.Context) (modal.Renderer, error) {
		if deps.Squads == nil {
			return nil, fmt.Errorf("squad store not configured")
		}
		return &newSquadRenderer{deps: deps}, nil
	}
}

type newSquadRenderer struct {
	deps Deps
}

func (r *newSquadRenderer) Mount(props modal.Props) (tea.Model, error) {
	return &newSquadModel{
		deps:    r.deps,
		origin:  propString(props, "origin"),
		visible: propVisible(props),
		close:   closeCmd(props),
	}, nil
}

// newSquadModel is a two-field form: handle then name, tab to switch.
type newSquadModel struct {
	deps    Deps
	origin  string
	visible bool
	close   tea.Cmd

	handle   string
	name     string
	focusIdx int
	status   string
}

func (m *newSquadModel) Init() tea.Cmd { return nil }

func (m *newSquadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, m.close
		case tea.KeyTab, tea.KeyDown, tea.KeyUp:
			m.focusIdx = (m.focusIdx + 1) % 2
		case tea.KeyEnter:
			return m, m.submitCmd()
		case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
			field := m.focused()
			*field = trimLastRune(*field)
		case tea.KeySpace:
			if m.focusIdx == 1 { // handles have no spaces
				m.name += " "
			}
		case tea.KeyRunes:
			*m.focused() += string(msg.Runes)
		}
	case squadCreatedMsg:
		return m, m.close
	case squadCreateFailedMsg:
		m.status = "error: " + msg.err.Error()
	}
	return m, nil
}

func (m *newSquadModel) focused() *string {
	if m.focusIdx == 0 {
		return &m.handle
	}
	return &m.name
}

func (m *newSquadModel) submitCmd() tea.Cmd {
	handle := strings.ToLower(strings.TrimSpace(m.handle))
	name := strings.TrimSpace(m.name)
	if handle == "" {
		m.status = "enter a handle"
		return nil
	}
	if name == "" {
		name = handle
	}
	return func() tea.Msg {
		squad := repository.Squad{ID: uuid.NewString(), Handle: handle, Name: name}
		if err := m.deps.Squads.Upsert(context.Background(), squad); err != nil {
			return squadCreateFailedMsg{err: err}
		}
		if m.deps.Username != "" {
			member := repository.SquadMember{
				ID:       uuid.NewString(),
				SquadID:  squad.ID,
				Username: m.deps.Username,
				Role:     "admin",
			}
			if err := m.deps.Squads.AddMember(context.Background(), member); err != nil {
				return squadCreateFailedMsg{err: err}
			}
		}
		return squadCreatedMsg{}
	}
}

func (m *newSquadModel) View() string {
	if !m.visible {
		return ""
	}
	out := titleStyle.Render("New squad") + "\n"
	markers := []string{" ", " "}
	markers[m.focusIdx] = cursorGlyph
	out += fmt.Sprintf("%s Handle: %s\n", markers[0], m.handle)
	out += fmt.Sprintf("%s Name:   %s\n", markers[1], m.name)
	out += dimStyle.Render("[tab] Switch  [enter] Create  [esc] Cancel")
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

type squadCreatedMsg struct{}

type squadCreateFailedMsg struct{ err error }
