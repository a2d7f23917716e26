package modals

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squadhq/squadtui/internal/modal"
)

// SquadTourShape declares only the lifecycle fields: the tour takes no
// caller payload, so its derived contract is empty and the payload optional.
var SquadTourShape = modal.Shape{
	{Name: modal.FieldVisible, Required: true},
	{Name: modal.FieldClose, Required: true},
}

// tourStep is one page of the squad tour.
type tourStep struct {
	title string
	body  string
}

func loadSquadTour() modal.LoadFunc {
	return func(ctx context.Context) (modal.Renderer, error) {
		steps := []tourStep{
			{title: "Welcome to squads", body: "Squads are focused groups around a topic.\nJoin one to see its posts in your feed."},
			{title: "Share and discuss", body: "Post links with [p], upvote with [u].\nThe squad decides what rises."},
			{title: "Keep it healthy", body: "See something off? Report it with [R].\nAdmins review every report."},
		}
		return &squadTourRenderer{steps: steps}, nil
	}
}

type squadTourRenderer struct {
	steps []tourStep
}

func (r *squadTourRenderer) Mount(props modal.Props) (tea.Model, error) {
	return &squadTourModel{
		steps:   r.steps,
		visible: propVisible(props),
		close:   closeCmd(props),
	}, nil
}

type squadTourModel struct {
	steps   []tourStep
	step    int
	visible bool
	close   tea.Cmd
}

func (m *squadTourModel) Init() tea.Cmd { return nil }

func (m *squadTourModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return m, m.close
		case "left", "h":
			if m.step > 0 {
				m.step--
			}
		case "right", "l", "enter", " ":
			if m.step < len(m.steps)-1 {
				m.step++
			} else {
				return m, m.close
			}
		}
	}
	return m, nil
}

func (m *squadTourModel) View() string {
	if !m.visible || len(m.steps) == 0 {
		return ""
	}
	step := m.steps[m.step]
	out := titleStyle.Render(step.title) + "\n"
	out += step.body + "\n"
	out += dimStyle.Render(fmt.Sprintf("Step %d of %d", m.step+1, len(m.steps))) + "\n"
	if m.step < len(m.steps)-1 {
		out += dimStyle.Render("[enter] Next  [esc] Skip")
	} else {
		out += dimStyle.Render("[enter] Done")
	}
	return out
}
