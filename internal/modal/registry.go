package modal

import (
	"fmt"
	"strings"
)

// Entry pairs a variant's declared input shape with its deferred load
// function. The shape is readable without ever invoking Load.
type Entry struct {
	Shape Shape
	Load  LoadFunc
}

// Registry is the fixed variant → entry mapping. It is built once at startup
// and immutable afterwards, so concurrent reads need no synchronization.
type Registry struct {
	entries map[Variant]Entry
}

// NewRegistry builds the registry and checks it against the closed variant
// set: every variant must have exactly one entry, no entry may name an
// unknown variant, and every shape must declare both lifecycle fields. Any
// mismatch is a construction-time error; Resolve never fails at runtime.
func NewRegistry(entries map[Variant]Entry) (*Registry, error) {
	var errs []string
	for _, v := range AllVariants() {
		entry, ok := entries[v]
		if !ok {
			errs = append(errs, fmt.Sprintf("variant %q has no registry entry", v))
			continue
		}
		if entry.Load == nil {
			errs = append(errs, fmt.Sprintf("variant %q: entry has nil load function", v))
		}
		if err := checkShape(v, entry.Shape); err != "" {
			errs = append(errs, err)
		}
	}
	for v := range entries {
		if !v.Valid() {
			errs = append(errs, fmt.Sprintf("entry registered for unknown variant %q", v))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("modal registry construction failed:\n- %s", strings.Join(errs, "\n- "))
	}
	own := make(map[Variant]Entry, len(entries))
	for v, e := range entries {
		own[v] = e
	}
	return &Registry{entries: own}, nil
}

// checkShape verifies the lifecycle fields are declared and field names are
// unique. Returns "" when the shape is well formed.
func checkShape(v Variant, s Shape) string {
	seen := make(map[string]struct{}, len(s))
	for _, f := range s {
		if _, dup := seen[f.Name]; dup {
			return fmt.Sprintf("variant %q: duplicate field %q in shape", v, f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	if _, ok := seen[FieldVisible]; !ok {
		return fmt.Sprintf("variant %q: shape missing lifecycle field %q", v, FieldVisible)
	}
	if _, ok := seen[FieldClose]; !ok {
		return fmt.Sprintf("variant %q: shape missing lifecycle field %q", v, FieldClose)
	}
	return ""
}

// Resolve returns the entry for id. Total over the closed set; calling it
// with a value outside the set is a programming error and panics, since
// NewRegistry already proved every valid identifier resolves.
func (r *Registry) Resolve(id Variant) Entry {
	entry, ok := r.entries[id]
	if !ok {
		panic(fmt.Sprintf("modal: Resolve called with unregistered variant %q", id))
	}
	return entry
}

// Contract derives the payload contract for id from its declared shape.
func (r *Registry) Contract(id Variant) Contract {
	return r.Resolve(id).Shape.Contract()
}

// PayloadRequired reports whether a caller must supply a payload for id,
// true iff the derived contract is non-empty.
func (r *Registry) PayloadRequired(id Variant) bool {
	return !r.Contract(id).Empty()
}
