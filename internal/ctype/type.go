// Package ctype is the Type Registry: the C type system's constructors,
// interning, and the equality/compatibility relations, grounded on
// original_source/type.h (the SCC compiler this spec was distilled
// from) and shaped after the teacher's internal/types package.
package ctype

// Type is the closed interface every type variant implements. Per
// spec.md §9's design note and the REDESIGN FLAG on Array/Pointer,
// this is a flat sibling set, not a class hierarchy: Array does not
// embed or extend Pointer, it merely knows how to decay to one.
type Type interface {
	// String returns a debug/diagnostic rendering of the type.
	String() string

	// Equal is strict structural identity, including qualifiers.
	Equal(other Type) bool

	// Compatible is C's looser compatible-type relation, used for
	// redeclaration, assignment checks, and function-pointer interop.
	Compatible(other Type) bool

	// Width is the storage size in bytes. Must not be consulted on an
	// incomplete type outside of IsComplete() == true contexts.
	Width() int

	// Align is the required alignment in bytes.
	Align() int

	// IsComplete reports whether Width()/Align() are currently valid.
	IsComplete() bool

	// Qual returns the qualifier set attached to this type.
	Qual() Qualifiers

	// SetQual replaces the qualifier set (qualifiers are mutable;
	// e.g. a typedef's qualifiers merge with a later use-site const).
	SetQual(Qualifiers)

	// ToPointer returns the type as a pointer, decaying an Array via
	// its element type, or nil if this type is neither a pointer nor
	// an array. This is the Go analogue of the original's
	// Type::ToPointerType, kept as an explicit decay method instead of
	// inheritance per the REDESIGN FLAG.
	ToPointer() *Pointer

	isType()
}

// AlignTo rounds offset up (or, for negative offsets, down in
// magnitude) to a multiple of align, matching
// original_source/type.h's Type::MakeAlign exactly, including its
// distinct negative-offset branch.
func AlignTo(offset, align int) int {
	if offset%align == 0 {
		return offset
	}
	if offset >= 0 {
		return offset + align - (offset % align)
	}
	return offset - align - (offset % align)
}
