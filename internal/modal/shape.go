package modal

// Lifecycle field names. Every renderer input shape declares both; the Host
// injects them at mount time and callers never supply them.
const (
	FieldVisible = "visible"
	FieldClose   = "close"
)

// Field is one named input a renderer accepts. Required/optional marking is
// owned by the renderer's declaration and inherited by the derived contract.
type Field struct {
	Name     string
	Required bool
}

// Shape is the full declared input set of a renderer, lifecycle fields
// included. It is declared next to the renderer's load function so the
// contract is known before the implementation has ever been loaded.
type Shape []Field

// field returns the declared field with the given name.
func (s Shape) field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func isLifecycleField(name string) bool {
	return name == FieldVisible || name == FieldClose
}

// Contract is the caller-facing payload shape of a variant: its renderer's
// declared shape minus the two lifecycle fields.
type Contract []Field

// Contract derives the payload contract from the shape. It is a pure
// function of the declaration; callers must re-derive rather than cache it
// apart from the shape.
func (s Shape) Contract() Contract {
	var c Contract
	for _, f := range s {
		if isLifecycleField(f.Name) {
			continue
		}
		c = append(c, f)
	}
	return c
}

// Empty reports whether no caller-supplied fields remain. An empty contract
// makes the payload optional on the request.
func (c Contract) Empty() bool { return len(c) == 0 }

// Field returns the contract field with the given name.
func (c Contract) Field(name string) (Field, bool) {
	for _, f := range c {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}
