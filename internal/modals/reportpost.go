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

// ReportPostShape is the declared input shape of the report-post modal.
var ReportPostShape = modal.Shape{
	{Name: "postId", Required: true},
	{Name: "comment", Required: false},
	{Name: modal.FieldVisible, Required: true},
	{Name: modal.FieldClose, Required: true},
}

// reportReasons is the fixed reason list offered by the form.
var reportReasons = []string{
	"Broken link",
	"Spam or low quality",
	"Off topic for this squad",
	"NSFW content",
	"Other",
}

func loadReportPost(deps Deps) modal.LoadFunc {
	return func(ctx context.Context) (modal.Renderer, error) {
		if deps.Reports == nil {
			return nil, fmt.Errorf("report store not configured")
		}
		return &reportPostRenderer{deps: deps}, nil
	}
}

type reportPostRenderer struct {
	deps Deps
}

func (r *reportPostRenderer) Mount(props modal.Props) (tea.Model, error) {
	postID := propString(props, "postId")
	if postID == "" {
		return nil, fmt.Errorf("report post: postId prop is not a string")
	}
	return &reportPostModel{
		deps:    r.deps,
		postID:  postID,
		comment: propString(props, "comment"),
		visible: propVisible(props),
		close:   closeCmd(props),
	}, nil
}

type reportPostModel struct {
	deps    Deps
	postID  string
	comment string
	visible bool
	close   tea.Cmd

	cursor  int
	editing bool
	status  string
}

func (m *reportPostModel) Init() tea.Cmd { return nil }

func (m *reportPostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleCommentKey(msg)
		}
		switch msg.String() {
		case "esc":
			return m, m.close
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(reportReasons)-1 {
				m.cursor++
			}
		case "c":
			m.editing = true
		case "enter":
			return m, m.submitCmd()
		}
	case reportSavedMsg:
		return m, m.close
	case reportFailedMsg:
		m.status = "error: " + msg.err.Error()
	}
	return m, nil
}

func (m *reportPostModel) handleCommentKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.editing = false
	case tea.KeyBackspace, tea.KeyCtrlH, tea.KeyDelete:
		m.comment = trimLastRune(m.comment)
	case tea.KeySpace:
		m.comment += " "
	case tea.KeyRunes:
		m.comment += string(msg.Runes)
	}
	return m, nil
}

func (m *reportPostModel) submitCmd() tea.Cmd {
	reason := reportReasons[m.cursor]
	var comment *string
	if c := strings.TrimSpace(m.comment); c != "" {
		comment = &c
	}
	return func() tea.Msg {
		rep := repository.Report{
			ID:      uuid.NewString(),
			PostID:  m.postID,
			Reason:  reason,
			Comment: comment,
		}
		if err := m.deps.Reports.Insert(context.Background(), rep); err != nil {
			return reportFailedMsg{err: err}
		}
		return reportSavedMsg{}
	}
}

func (m *reportPostModel) View() string {
	if !m.visible {
		return ""
	}
	out := titleStyle.Render("Report post") + "\n"
	for i, reason := range reportReasons {
		marker := " "
		if i == m.cursor {
			marker = cursorGlyph
		}
		out += fmt.Sprintf("%s %s\n", marker, reason)
	}
	if m.editing {
		out += fmt.Sprintf("Comment: %s▌\n", m.comment)
	} else if m.comment != "" {
		out += fmt.Sprintf("Comment: %s\n", m.comment)
	}
	out += dimStyle.Render("[enter] Submit  [c] Comment  [esc] Cancel")
	if m.status != "" {
		out += "\n" + m.status
	}
	return out
}

type reportSavedMsg struct{}

type reportFailedMsg struct{ err error }
