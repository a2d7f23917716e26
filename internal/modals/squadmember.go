package modals

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
)

// SquadMemberShape is the declared input shape of the squad-members modal.
// memberId preselects a row when given.
var SquadMemberShape = modal.Shape{
	{Name: "squadId", Required: true},
	{Name: "memberId", Required: false},
	{Name: modal.FieldVisible, Required: true},
	{Name: modal.FieldClose, Required: true},
}

func loadSquadMember(deps Deps) modal.LoadFunc {
	return func(ctx context.Context) (modal.Renderer, error) {
		if deps.Squads == nil {
			return nil, fmt.Errorf("squad store not configured")
		}
		return &squadMemberRenderer{deps: deps}, nil
	}
}

type squadMemberRenderer struct {
	deps Deps
}

func (r *squadMemberRenderer) Mount(props modal.Props) (tea.Model, error) {
	squadID := propString(props, "squadId")
	if squadID == "" {
		return nil, fmt.Errorf("squad members: squadId prop is not a string")
	}
	return &squadMemberModel{
		deps:     r.deps,
		squadID:  squadID,
		memberID: propString(props, "memberId"),
		visible:  propVisible(props),
		close:    closeCmd(props),
	}, nil
}

type squadMemberModel struct {
	deps     Deps
	squadID  string
	memberID string
	visible  bool
	close    tea.Cmd

	squadName string
	members   []repository.SquadMember
	cursor    int
	status    string
}

func (m *squadMemberModel) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		squad, err := m.deps.Squads.Get(ctx, m.squadID)
		if err != nil {
			return membersFailedMsg{err: err}
		}
		name := m.squadID
		if squad != nil {
			name = squad.Name
		}
		members, err := m.deps.Squads.Members(ctx, m.squadID)
		if err != nil {
			return membersFailedMsg{err: err}
		}
		return membersLoadedMsg{squadName: name, members: members}
	}
}

func (m *squadMemberModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, m.close
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.members)-1 {
				m.cursor++
			}
		}
	case membersLoadedMsg:
		m.squadName = msg.squadName
		m.members = msg.members
		for i, member := range m.members {
			if m.memberID != "" && member.ID == m.memberID {
				m.cursor = i
			}
		}
	case membersFailedMsg:
		m.status = "error: " + msg.err.Error()
	}
	return m, nil
}

func (m *squadMemberModel) View() string {
	if !m.visible {
		return ""
	}
	title := m.squadName
	if title == "" {
		title = "Squad"
	}
	out := titleStyle.Render(title+" members") + "\n"
	if len(m.members) == 0 {
		out += dimStyle.Render("(loading...)") + "\n"
	}
	for i, member := range m.members {
		marker := " "
		if i == m.cursor {
			marker = cursorGlyph
		}
		out += fmt.Sprintf("%s %-16s %s\n", marker, member.Username, dimStyle.Render(member.Role))
	}
	out += dimStyle.Render("[esc] Close")
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

type membersLoadedMsg struct {
	squadName string
	members   []repository.SquadMember
}

type membersFailedMsg struct{ err error }
