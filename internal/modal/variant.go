package modal

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// Variant identifies one kind of modal overlay. The set is closed: adding a
// constant here without registering an entry for it makes NewRegistry fail,
// and vice versa.
type Variant string

const (
	VariantReportPost   Variant = "reportPost"
	VariantSquadMember  Variant = "squadMember"
	VariantSquadTour    Variant = "squadTour"
	VariantUpvotedPopup Variant = "upvotedPopup"
	VariantNewSquad     Variant = "newSquad"
)

// AllVariants returns the closed identifier set in a stable order.
func AllVariants() []Variant {
	return []Variant{
		VariantReportPost,
		VariantSquadMember,
		VariantSquadTour,
		VariantUpvotedPopup,
		VariantNewSquad,
	}
}

// Valid reports whether v is a member of the closed set.
func (v Variant) Valid() bool {
	for _, known := range AllVariants() {
		if v == known {
			return true
		}
	}
	return false
}

func (v Variant) String() string { return string(v) }

// UnknownVariantError is returned when a name does not resolve to a variant.
// Suggestion carries the nearest known identifier when one is close enough.
type UnknownVariantError struct {
	Name       string
	Suggestion Variant
}

func (e *UnknownVariantError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown modal variant %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown modal variant %q", e.Name)
}

// maxSuggestDistance bounds how far a typo may be from a known identifier
// before we stop suggesting anything.
const maxSuggestDistance = 3

// ParseVariant resolves a user-entered name (command palette, config) to a
// member of the closed set. Unknown names fail with a nearest-match hint.
func ParseVariant(name string) (Variant, error) {
	if v := Variant(name); v.Valid() {
		return v, nil
	}
	best := Variant("")
	bestDist := maxSuggestDistance + 1
	for _, known := range AllVariants() {
		if d := levenshtein.ComputeDistance(name, string(known)); d < bestDist {
			best, bestDist = known, d
		}
	}
	return "", &UnknownVariantError{Name: name, Suggestion: best}
}
