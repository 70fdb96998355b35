package ctype

// Void is the sole incomplete scalar type. Per spec.md's Open
// Question (and original_source/type.h:231-233) its Width is 1, not
// 0, so that `void*` pointer arithmetic — a GNU extension standard C
// forbids — has a well-defined step. DESIGN.md records the decision
// to additionally surface a warning diagnostic when that extension is
// actually exercised, rather than silently accepting it.
type Void struct {
	qual Qualifiers
}

func (v *Void) String() string { return "void" }

func (v *Void) Equal(other Type) bool {
	_, ok := other.(*Void)
	return ok && v.qual == other.Qual()
}

func (v *Void) Compatible(other Type) bool {
	_, ok := other.(*Void)
	return ok
}

func (v *Void) Width() int { return 1 }

func (v *Void) Align() int { return 1 }

func (v *Void) IsComplete() bool { return false }

func (v *Void) Qual() Qualifiers { return v.qual }

func (v *Void) SetQual(q Qualifiers) { v.qual = q }

func (v *Void) ToPointer() *Pointer { return nil }

func (v *Void) isType() {}
