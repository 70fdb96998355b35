package ctype

// Pointer is a pointer-to-T type. Width/align are fixed at 8 for the
// 64-bit target (spec.md §3.1).
type Pointer struct {
	Pointee Type
	qual    Qualifiers
}

func (p *Pointer) String() string { return p.Pointee.String() + "*" }

func (p *Pointer) Equal(other Type) bool {
	o, ok := other.(*Pointer)
	return ok && p.qual == o.qual && p.Pointee.Equal(o.Pointee)
}

// Compatible: two pointer types are compatible iff their pointees are
// compatible and the pointees' qualifier sets are equal (spec.md
// §4.1).
func (p *Pointer) Compatible(other Type) bool {
	o := other.ToPointer()
	if o == nil {
		return false
	}
	return p.Pointee.Qual() == o.Pointee.Qual() && p.Pointee.Compatible(o.Pointee)
}

func (p *Pointer) Width() int { return 8 }

func (p *Pointer) Align() int { return 8 }

func (p *Pointer) IsComplete() bool { return true }

func (p *Pointer) Qual() Qualifiers { return p.qual }

func (p *Pointer) SetQual(q Qualifiers) { p.qual = q }

func (p *Pointer) ToPointer() *Pointer { return p }

func (p *Pointer) isType() {}
