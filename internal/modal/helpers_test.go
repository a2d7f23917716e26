package modal

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// lifecycleOnly is the minimal well-formed shape: nothing for the caller to
// supply beyond what the Host injects.
func lifecycleOnly() Shape {
	return Shape{
		{Name: FieldVisible, Required: true},
		{Name: FieldClose, Required: true},
	}
}

// withLifecycle appends the lifecycle fields to caller-facing fields.
func withLifecycle(fields ...Field) Shape {
	return append(Shape(fields), lifecycleOnly()...)
}

// stubModel is a renderable placeholder capturing the props it was mounted with.
type stubModel struct {
	props Props
}

func (m stubModel) Init() tea.Cmd                       { return nil }
func (m stubModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m stubModel) View() string                        { return "stub" }

type stubRenderer struct{}

func (stubRenderer) Mount(props Props) (tea.Model, error) {
	return stubModel{props: props}, nil
}

func stubLoad(context.Context) (Renderer, error) {
	return stubRenderer{}, nil
}

// stubEntries registers every variant with a lifecycle-only shape and a stub
// load. Tests overwrite individual entries before construction.
func stubEntries() map[Variant]Entry {
	entries := make(map[Variant]Entry, len(AllVariants()))
	for _, v := range AllVariants() {
		entries[v] = Entry{Shape: lifecycleOnly(), Load: stubLoad}
	}
	return entries
}

func mustRegistry(t *testing.T, entries map[Variant]Entry) *Registry {
	t.Helper()
	r, err := NewRegistry(entries)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return r
}
