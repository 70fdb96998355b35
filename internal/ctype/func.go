package ctype

// Func is a function type: return type, ordered parameter types, a
// variadic flag, and the inline/noreturn function specifiers. Width
// is undefined for functions (spec.md §3.1).
type Func struct {
	Return    Type
	Params    []Type
	Variadic  bool
	Inline    bool
	NoReturn  bool
	qual      Qualifiers
}

func (f *Func) String() string {
	s := f.Return.String() + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			s += ", "
		}
		s += "..."
	}
	return s + ")"
}

func (f *Func) Equal(other Type) bool {
	o, ok := other.(*Func)
	if !ok || f.Variadic != o.Variadic || len(f.Params) != len(o.Params) {
		return false
	}
	if !f.Return.Equal(o.Return) {
		return false
	}
	for i := range f.Params {
		if !f.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

// Compatible: two function types are compatible iff return types are
// compatible, variadic flags match, and parameter lists are pointwise
// compatible after array/function parameter adjustment (spec.md
// §4.1). Array/function-typed parameters adjust to pointer, matching
// C's parameter-adjustment rule.
func (f *Func) Compatible(other Type) bool {
	o, ok := other.(*Func)
	if !ok || f.Variadic != o.Variadic || len(f.Params) != len(o.Params) {
		return false
	}
	if !f.Return.Compatible(o.Return) {
		return false
	}
	for i := range f.Params {
		if !adjustParam(f.Params[i]).Compatible(adjustParam(o.Params[i])) {
			return false
		}
	}
	return true
}

// adjustParam applies the C parameter-type adjustment: array and
// function parameter types decay to a pointer for compatibility
// purposes.
func adjustParam(t Type) Type {
	if a, ok := t.(*Array); ok {
		return a.ToPointer()
	}
	if _, ok := t.(*Func); ok {
		return &Pointer{Pointee: t}
	}
	return t
}

func (f *Func) Width() int { return -1 }

func (f *Func) Align() int { return 1 }

func (f *Func) IsComplete() bool { return false }

func (f *Func) Qual() Qualifiers { return f.qual }

func (f *Func) SetQual(q Qualifiers) { f.qual = q }

func (f *Func) ToPointer() *Pointer { return nil }

func (f *Func) isType() {}
