package modals

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
)

// UpvotedPopupShape is the declared input shape of the upvoters popup.
var UpvotedPopupShape = modal.Shape{
	{Name: "postId", Required: true},
	{Name: modal.FieldVisible, Required: true},
	{Name: modal.FieldClose, Required: true},
}

func loadUpvotedPopup(deps Deps) modal.LoadFunc {
	return func(ctx context.Context) (modal.Renderer, error) {
		if deps.Upvotes == nil {
			return nil, fmt.Errorf("upvote store not configured")
		}
		return &upvotedRenderer{deps: deps}, nil
	}
}

type upvotedRenderer struct {
	deps Deps
}

func (r *upvotedRenderer) Mount(props modal.Props) (tea.Model, error) {
	postID := propString(props, "postId")
	if postID == "" {
		return nil, fmt.Errorf("upvoted popup: postId prop is not a string")
	}
	return &upvotedModel{
		deps:    r.deps,
		postID:  postID,
		visible: propVisible(props),
		close:   closeCmd(props),
	}, nil
}

type upvotedModel struct {
	deps    Deps
	postID  string
	visible bool
	close   tea.Cmd

	upvotes []repository.Upvote
	loaded  bool
	status  string
}

func (m *upvotedModel) Init() tea.Cmd {
	return func() tea.Msg {
		ups, err := m.deps.Upvotes.ByPost(context.Background(), m.postID)
		if err != nil {
			return upvotesFailedMsg{err: err}
		}
		return upvotesLoadedMsg{upvotes: ups}
	}
}

func (m *upvotedModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "enter":
			return m, m.close
		}
	case upvotesLoadedMsg:
		m.upvotes = msg.upvotes
		m.loaded = true
	case upvotesFailedMsg:
		m.status = "error: " + msg.err.Error()
	}
	return m, nil
}

func (m *upvotedModel) View() string {
	if !m.visible {
		return ""
	}
	out := titleStyle.Render(fmt.Sprintf("Upvoted by (%d)", len(m.upvotes))) + "\n"
	switch {
	case !m.loaded:
		out += dimStyle.Render("(loading...)") + "\n"
	case len(m.upvotes) == 0:
		out += "No upvotes yet.\n"
	default:
		for _, u := range m.upvotes {
			out += "  " + u.Username + "\n"
		}
	}
	out += dimStyle.Render("[esc] Close")
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

type upvotesLoadedMsg struct{ upvotes []repository.Upvote }

type upvotesFailedMsg struct{ err error }
