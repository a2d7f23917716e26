package modal

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Payload is the caller-supplied data for a variant, keyed by contract field
// name. A nil Payload means "no payload given".
type Payload map[string]any

// ViolationKind classifies a contract violation.
type ViolationKind string

const (
	// MissingPayload: the variant's contract is non-empty but no payload was given.
	MissingPayload ViolationKind = "missingPayload"
	// MissingField: a field the contract marks required is absent from the payload.
	MissingField ViolationKind = "missingField"
	// UnknownField: the payload carries a field outside the contract.
	UnknownField ViolationKind = "unknownField"
)

// ContractViolation is a caller error raised synchronously by BuildRequest.
// It signals a programming mistake at the call site, not a user-facing
// condition, and is never retried.
type ContractViolation struct {
	Kind    ViolationKind
	Variant Variant
	Field   string // set for MissingField and UnknownField
}

func (e *ContractViolation) Error() string {
	switch e.Kind {
	case MissingPayload:
		return fmt.Sprintf("modal %q: payload required but none given", e.Variant)
	case MissingField:
		return fmt.Sprintf("modal %q: payload missing required field %q", e.Variant, e.Field)
	case UnknownField:
		return fmt.Sprintf("modal %q: payload has unknown field %q", e.Variant, e.Field)
	default:
		return fmt.Sprintf("modal %q: contract violation", e.Variant)
	}
}

// Request is a validated, immutable modal request ready to hand to the Host.
// It is built once, dispatched once, and not retained by the core.
type Request struct {
	id      string
	variant Variant
	payload Payload
}

// ID returns the request's unique id, stamped at build time.
func (r Request) ID() string { return r.id }

// Variant returns the requested variant.
func (r Request) Variant() Variant { return r.variant }

// Payload returns a copy of the validated payload; mutating it does not
// affect the request.
func (r Request) Payload() Payload {
	if r.payload == nil {
		return nil
	}
	out := make(Payload, len(r.payload))
	for k, v := range r.payload {
		out[k] = v
	}
	return out
}

// BuildRequest validates payload against the contract for id and returns a
// dispatchable request. Pure and synchronous; it never touches the Loader.
// Failures are *ContractViolation (or *UnknownVariantError for a value
// outside the closed set, which NewRegistry discipline should make
// unreachable from real call sites).
func (r *Registry) BuildRequest(id Variant, payload Payload) (Request, error) {
	if !id.Valid() {
		return Request{}, &UnknownVariantError{Name: string(id)}
	}
	contract := r.Contract(id)

	if !contract.Empty() && payload == nil {
		return Request{}, &ContractViolation{Kind: MissingPayload, Variant: id}
	}
	for _, f := range contract {
		if !f.Required {
			continue
		}
		if _, ok := payload[f.Name]; !ok {
			return Request{}, &ContractViolation{Kind: MissingField, Variant: id, Field: f.Name}
		}
	}
	// Closed-shape discipline: reject drift between caller and renderer.
	// Sorted so the reported field is deterministic.
	names := make([]string, 0, len(payload))
	for name := range payload {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, ok := contract.Field(name); !ok {
			return Request{}, &ContractViolation{Kind: UnknownField, Variant: id, Field: name}
		}
	}

	var own Payload
	if payload != nil {
		own = make(Payload, len(payload))
		for k, v := range payload {
			own[k] = v
		}
	}
	return Request{id: uuid.NewString(), variant: id, payload: own}, nil
}
