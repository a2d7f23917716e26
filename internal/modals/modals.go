// Package modals holds the renderer implementations behind the modal
// registry. Each variant lives in its own file and contributes two things:
// a declared input shape (readable without loading anything) and a deferred
// load function producing the renderer.
package modals

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/squadhq/squadtui/internal/database/repository"
	"github.com/squadhq/squadtui/internal/modal"
)

// Deps are the data collaborators renderers draw from.
type Deps struct {
	Posts   *repository.PostRepo
	Squads  *repository.SquadRepo
	Upvotes *repository.UpvoteRepo
	Reports *repository.ReportRepo
	// Username attributes actions (upvotes, new squads) to the local user.
	Username string
}

// Entries binds every variant in the closed set to its shape and loader.
// Handed to modal.NewRegistry at startup, which verifies totality.
func Entries(deps Deps) map[modal.Variant]modal.Entry {
	return map[modal.Variant]modal.Entry{
		modal.VariantReportPost:   {Shape: ReportPostShape, Load: loadReportPost(deps)},
		modal.VariantSquadMember:  {Shape: SquadMemberShape, Load: loadSquadMember(deps)},
		modal.VariantSquadTour:    {Shape: SquadTourShape, Load: loadSquadTour()},
		modal.VariantUpvotedPopup: {Shape: UpvotedPopupShape, Load: loadUpvotedPopup(deps)},
		modal.VariantNewSquad:     {Shape: NewSquadShape, Load: loadNewSquad(deps)},
	}
}

// styles shared across modal renderers
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
	cursorGlyph = "▶"
)

// closeCmd turns the Host-injected close callback into a tea.Cmd.
func closeCmd(props modal.Props) tea.Cmd {
	if fn, ok := props[modal.FieldClose].(modal.CloseFunc); ok {
		return tea.Cmd(fn)
	}
	return nil
}

// propString reads an optional string prop, tolerating absence.
func propString(props modal.Props, key string) string {
	s, _ := props[key].(string)
	return s
}

// propVisible reads the injected visible flag.
func propVisible(props modal.Props) bool {
	v, _ := props[modal.FieldVisible].(bool)
	return v
}

// trimLastRune removes the final rune of a text field, not the final byte,
// so backspacing over multibyte input never leaves a broken sequence.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
