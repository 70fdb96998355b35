package ctype

import "fmt"

// Array is an array-of-T type. Per the REDESIGN FLAG in spec.md §9
// (the original's ArrayType subclassed PointerType; a
// reimplementation should keep them siblings), Array does not embed
// Pointer — it only knows how to decay to one via ToPointer.
//
// Length -1 means unspecified (incomplete); SetLen completes the type,
// matching original_source/type.h's ArrayType::SetLen.
type Array struct {
	Element Type
	Len     int
	qual    Qualifiers
}

func (a *Array) String() string {
	if a.Len < 0 {
		return a.Element.String() + "[]"
	}
	return fmt.Sprintf("%s[%d]", a.Element.String(), a.Len)
}

func (a *Array) Equal(other Type) bool {
	o, ok := other.(*Array)
	return ok && a.Len == o.Len && a.Element.Equal(o.Element)
}

// Compatible: two array types are compatible iff element types are
// compatible and either both lengths are unspecified or equal
// (spec.md §4.1).
func (a *Array) Compatible(other Type) bool {
	o, ok := other.(*Array)
	if !ok {
		return false
	}
	if !a.Element.Compatible(o.Element) {
		return false
	}
	if a.Len < 0 || o.Len < 0 {
		return true
	}
	return a.Len == o.Len
}

func (a *Array) Width() int {
	if a.Len < 0 {
		return 0
	}
	return a.Element.Width() * a.Len
}

func (a *Array) Align() int { return a.Element.Align() }

func (a *Array) IsComplete() bool { return a.Len >= 0 }

func (a *Array) Qual() Qualifiers { return a.qual }

func (a *Array) SetQual(q Qualifiers) { a.qual = q }

// ToPointer implements array-to-pointer decay: Array-of-T is
// assignable to Pointer-to-T via decay, but per spec.md §3.1's
// invariant, Array is never Equal to a Pointer.
func (a *Array) ToPointer() *Pointer {
	return &Pointer{Pointee: a.Element}
}

func (a *Array) isType() {}

// HasLen reports whether the array's length has been fixed.
func (a *Array) HasLen() bool { return a.Len >= 0 }

// SetLen completes an incomplete array, per original_source/type.h's
// ArrayType::SetLen (which also calls SetComplete(true)).
func (a *Array) SetLen(n int) { a.Len = n }

// ElementOffset returns the byte offset of element idx, matching
// original_source/type.h's ArrayType::GetElementOffset.
func (a *Array) ElementOffset(idx int) int { return a.Element.Width() * idx }
