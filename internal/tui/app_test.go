package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/squadhq/squadtui/internal/config"
	"github.com/squadhq/squadtui/internal/modal"
)

type stubModal struct {
	props modal.Props
}

func (m *stubModal) Init() tea.Cmd                       { return nil }
func (m *stubModal) Update(tea.Msg) (tea.Model, tea.Cmd) { return m, nil }
func (m *stubModal) View() string                        { return "stub" }

type stubRenderer struct{}

func (stubRenderer) Mount(props modal.Props) (tea.Model, error) {
	return &stubModal{props: props}, nil
}

func lifecycleOnly() modal.Shape {
	return modal.Shape{
		{Name: modal.FieldVisible, Required: true},
		{Name: modal.FieldClose, Required: true},
	}
}

// testApp builds an App over stub entries. The report variant requires a
// postId so violation paths can be exercised; the tour variant's load fails
// until *failures drains to zero.
func testApp(t *testing.T, failures *int) *App {
	t.Helper()
	entries := map[modal.Variant]modal.Entry{
		modal.VariantReportPost: {
			Shape: modal.Shape{
				{Name: "postId", Required: true},
				{Name: modal.FieldVisible, Required: true},
				{Name: modal.FieldClose, Required: true},
			},
			Load: func(ctx context.Context) (modal.Renderer, error) { return stubRenderer{}, nil },
		},
		modal.VariantSquadMember: {Shape: lifecycleOnly(), Load: func(ctx context.Context) (modal.Renderer, error) { return stubRenderer{}, nil }},
		modal.VariantSquadTour: {Shape: lifecycleOnly(), Load: func(ctx context.Context) (modal.Renderer, error) {
			if failures != nil && *failures > 0 {
				*failures--
				return nil, errors.New("chunk fetch failed")
			}
			return stubRenderer{}, nil
		}},
		modal.VariantUpvotedPopup: {Shape: lifecycleOnly(), Load: func(ctx context.Context) (modal.Renderer, error) { return stubRenderer{}, nil }},
		modal.VariantNewSquad:     {Shape: lifecycleOnly(), Load: func(ctx context.Context) (modal.Renderer, error) { return stubRenderer{}, nil }},
	}
	registry, err := modal.NewRegistry(entries)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return New(context.Background(), config.Config{}, registry, modal.NewLoader(registry), Repos{})
}

func TestOpenModalMountsOverlay(t *testing.T) {
	app := testApp(t, nil)

	cmd := app.openModal(modal.VariantSquadTour, nil)
	if cmd == nil {
		t.Fatal("openModal returned nil cmd")
	}
	msg := cmd()
	ready, ok := msg.(modalReadyMsg)
	if !ok {
		t.Fatalf("resolve produced %T, want modalReadyMsg", msg)
	}
	app.Update(ready)

	if app.activeVariant() != modal.VariantSquadTour {
		t.Errorf("activeVariant = %q, want %q", app.activeVariant(), modal.VariantSquadTour)
	}
	mounted, ok := app.overlay.(*stubModal)
	if !ok {
		t.Fatalf("overlay is %T", app.overlay)
	}
	if mounted.props[modal.FieldVisible] != true {
		t.Error("mounted props missing visible=true")
	}
	if _, ok := mounted.props[modal.FieldClose].(modal.CloseFunc); !ok {
		t.Error("mounted props missing close function")
	}
}

func TestOpenModalPassesPayloadThrough(t *testing.T) {
	app := testApp(t, nil)

	cmd := app.openModal(modal.VariantReportPost, modal.Payload{"postId": "p-42"})
	ready := cmd().(modalReadyMsg)
	app.Update(ready)

	mounted := app.overlay.(*stubModal)
	if mounted.props["postId"] != "p-42" {
		t.Errorf("postId prop = %v, want p-42", mounted.props["postId"])
	}
}

func TestOpenModalViolationNeverLoads(t *testing.T) {
	app := testApp(t, nil)

	cmd := app.openModal(modal.VariantReportPost, nil)
	if cmd != nil {
		t.Fatal("violation still produced a load cmd")
	}
	if !strings.Contains(app.status, "bug:") {
		t.Errorf("status = %q, want caller-error marker", app.status)
	}
	if app.activeVariant() != "" {
		t.Error("modal mounted despite violation")
	}
}

func TestCloseMessageClearsOverlay(t *testing.T) {
	app := testApp(t, nil)
	app.Update(app.openModal(modal.VariantNewSquad, modal.Payload{})())
	if app.activeVariant() == "" {
		t.Fatal("modal did not mount")
	}

	closeFn := app.overlay.(*stubModal).props[modal.FieldClose].(modal.CloseFunc)
	app.Update(closeFn())

	if app.overlay != nil || app.activeVariant() != "" {
		t.Error("overlay not cleared after close")
	}
}

func TestLoadFailureOffersRetry(t *testing.T) {
	failures := 1
	app := testApp(t, &failures)

	msg := app.openModal(modal.VariantSquadTour, nil)()
	failed, ok := msg.(modalLoadFailedMsg)
	if !ok {
		t.Fatalf("resolve produced %T, want modalLoadFailedMsg", msg)
	}
	app.Update(failed)
	if app.retryReq == nil {
		t.Fatal("no retry request retained after load failure")
	}
	if !strings.Contains(app.status, "retry") {
		t.Errorf("status = %q, want retry hint", app.status)
	}

	// The retained request is re-resolved, not re-validated.
	_, cmd := app.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if cmd == nil {
		t.Fatal("retry key produced no cmd")
	}
	ready, ok := cmd().(modalReadyMsg)
	if !ok {
		t.Fatal("retry did not produce a fresh renderer")
	}
	if ready.req.ID() != failed.req.ID() {
		t.Error("retry rebuilt the request instead of reusing it")
	}
	app.Update(ready)
	if app.activeVariant() != modal.VariantSquadTour {
		t.Error("modal not mounted after successful retry")
	}
	if app.retryReq != nil {
		t.Error("retry request not cleared after mount")
	}
}

func typeString(app *App, s string) {
	for _, r := range s {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestOpenByNamePromptMountsVariant(t *testing.T) {
	app := testApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	if !app.prompting {
		t.Fatal("':' did not enter the prompt")
	}
	typeString(app, "squadTour")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if app.prompting {
		t.Error("prompt still open after enter")
	}
	if cmd == nil {
		t.Fatal("known name produced no load cmd")
	}
	app.Update(cmd())
	if app.activeVariant() != modal.VariantSquadTour {
		t.Errorf("activeVariant = %q, want %q", app.activeVariant(), modal.VariantSquadTour)
	}
}

func TestOpenByNameTypoSuggests(t *testing.T) {
	app := testApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	typeString(app, "squadTuor")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("typo still produced a load cmd")
	}
	if !strings.Contains(app.status, "squadTour") {
		t.Errorf("status = %q, want nearest-match hint naming squadTour", app.status)
	}
	if app.activeVariant() != "" {
		t.Error("modal mounted from a typo")
	}
}

func TestOpenByNameWithoutSelectionRefuses(t *testing.T) {
	app := testApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	typeString(app, "reportPost")
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("reportPost loaded with nothing selected")
	}
	if !strings.Contains(app.status, "select a post") {
		t.Errorf("status = %q, want selection hint", app.status)
	}
}

func TestPromptEscCancels(t *testing.T) {
	app := testApp(t, nil)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	typeString(app, "squad")
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if app.prompting || app.prompt != "" {
		t.Error("esc did not clear the prompt")
	}
}

func TestStaleLoadResultIsDropped(t *testing.T) {
	app := testApp(t, nil)

	slow := app.openModal(modal.VariantSquadTour, nil)()
	fresh := app.openModal(modal.VariantNewSquad, modal.Payload{})()

	app.Update(fresh)
	if app.activeVariant() != modal.VariantNewSquad {
		t.Fatal("latest open intent did not mount")
	}
	// The earlier load settling late must not replace the newer modal.
	app.Update(slow)
	if app.activeVariant() != modal.VariantNewSquad {
		t.Errorf("stale renderer replaced the active modal with %q", app.activeVariant())
	}
}

func TestStaleLoadFailureIsDropped(t *testing.T) {
	failures := 1
	app := testApp(t, &failures)

	slow := app.openModal(modal.VariantSquadTour, nil)()
	if _, ok := slow.(modalLoadFailedMsg); !ok {
		t.Fatalf("resolve produced %T, want modalLoadFailedMsg", slow)
	}
	app.Update(app.openModal(modal.VariantNewSquad, modal.Payload{})())

	app.Update(slow)
	if app.retryReq != nil {
		t.Error("stale failure installed a retry request")
	}
	if strings.Contains(app.status, "retry") {
		t.Errorf("status = %q, stale failure reached the status line", app.status)
	}
}

func TestKeysRouteToOverlayWhileOpen(t *testing.T) {
	app := testApp(t, nil)
	app.Update(app.openModal(modal.VariantSquadTour, nil)())

	// "q" quits the app when no modal is open; with one open it belongs to
	// the overlay.
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		t.Error("quit fired while a modal was open")
	}
	if app.activeVariant() != modal.VariantSquadTour {
		t.Error("overlay dropped by routed key")
	}
}
