package modal

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Props is what the Host mounts a renderer with: the validated payload plus
// the injected lifecycle fields. Props[FieldVisible] is a bool and
// Props[FieldClose] is a CloseFunc.
type Props map[string]any

// CloseFunc is the Host-injected close callback. Renderers return it as a
// tea.Cmd when the user dismisses the modal; the resulting message tells the
// Host to tear the overlay down.
type CloseFunc func() tea.Msg

// Renderer draws one variant's content. Implementations are obtained through
// the Loader; Mount binds a validated request's props to a fresh model.
type Renderer interface {
	Mount(props Props) (tea.Model, error)
}

// LoadFunc fetches and initializes a variant's renderer. It runs at most
// once per successful load (see Loader); failed attempts may run again.
type LoadFunc func(ctx context.Context) (Renderer, error)
