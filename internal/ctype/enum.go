package ctype

// Enumerator is one named integer constant inside an Enum.
type Enumerator struct {
	Name  string
	Value int64
}

// Enum is an enumerated type: an underlying integer type plus its
// named integer constants.
type Enum struct {
	Name        string
	Underlying  *Arithmetic
	Enumerators []Enumerator
	qual        Qualifiers
}

func (e *Enum) String() string {
	if e.Name != "" {
		return "enum " + e.Name
	}
	return "enum <anonymous>"
}

func (e *Enum) Equal(other Type) bool {
	o, ok := other.(*Enum)
	return ok && o == e
}

// Compatible: an enum type is only compatible with itself or its
// underlying integer type (the latter a common GCC/Clang extension
// useful for interop with plain-int APIs); spec.md leaves enum
// compatibility unspecified beyond "an integer type constant", so this
// follows the original's treatment of enumerators as plain integer
// constants of the underlying type.
func (e *Enum) Compatible(other Type) bool {
	if o, ok := other.(*Enum); ok {
		return o == e
	}
	return e.Underlying.Compatible(other)
}

func (e *Enum) Width() int { return e.Underlying.Width() }

func (e *Enum) Align() int { return e.Underlying.Align() }

func (e *Enum) IsComplete() bool { return true }

func (e *Enum) Qual() Qualifiers { return e.qual }

func (e *Enum) SetQual(q Qualifiers) { e.qual = q }

func (e *Enum) ToPointer() *Pointer { return nil }

func (e *Enum) isType() {}

// Lookup finds an enumerator by name.
func (e *Enum) Lookup(name string) (Enumerator, bool) {
	for _, m := range e.Enumerators {
		if m.Name == name {
			return m, true
		}
	}
	return Enumerator{}, false
}
