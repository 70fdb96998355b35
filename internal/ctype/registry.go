package ctype

import (
	"github.com/HugoDaniel/gocc/internal/diag"
	"github.com/HugoDaniel/gocc/internal/symtab"
	"github.com/HugoDaniel/gocc/internal/token"
)

// Registry owns every Type value for one translation unit (spec.md
// §5: "the Type Registry is a per-translation-unit owned singleton").
// It interns arithmetic, pointer, and void types on structural
// identity; array, function, and struct/union types are never
// interned, each getting its own fresh identity per spec.md §4.1.
type Registry struct {
	voidType *Void

	arithCache map[Kind]*Arithmetic
	ptrCache   map[Type]*Pointer
}

// NewRegistry creates an empty, per-translation-unit registry.
func NewRegistry() *Registry {
	return &Registry{
		arithCache: make(map[Kind]*Arithmetic),
		ptrCache:   make(map[Type]*Pointer),
	}
}

// Void returns the single interned void type.
func (r *Registry) Void() *Void {
	if r.voidType == nil {
		r.voidType = &Void{}
	}
	return r.voidType
}

// NewArithmetic canonicalizes spec and returns the interned handle for
// the resulting Kind, per spec.md §4.1.
func (r *Registry) NewArithmetic(spec TagSpec) (*Arithmetic, error) {
	kind, err := canonicalize(spec)
	if err != nil {
		return nil, diag.CodedError(diag.InvalidTypeSpec, token.Location{}, "%s", err.Error())
	}
	if t, ok := r.arithCache[kind]; ok {
		return t, nil
	}
	t := &Arithmetic{kind: kind}
	r.arithCache[kind] = t
	return t, nil
}

// MustArithmetic is NewArithmetic without error handling, for the
// handful of call sites (e.g. the evaluator's ptrdiff_t production)
// that construct a known-valid spec.
func (r *Registry) MustArithmetic(spec TagSpec) *Arithmetic {
	t, err := r.NewArithmetic(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// NewPointer interns pointer types on pointee identity, matching
// spec.md §4.1: "newPointer(pointee) → Pointer: interned on identity
// of pointee."
func (r *Registry) NewPointer(pointee Type) *Pointer {
	if t, ok := r.ptrCache[pointee]; ok {
		return t
	}
	t := &Pointer{Pointee: pointee}
	r.ptrCache[pointee] = t
	return t
}

// NewArray creates a fresh (never interned) array type. length < 0
// means unspecified (incomplete), matching
// original_source/type.h's ArrayType constructor.
func (r *Registry) NewArray(element Type, length int) *Array {
	return &Array{Element: element, Len: length, qual: Const}
}

// NewFunc creates a fresh (never interned) function type.
func (r *Registry) NewFunc(ret Type, params []Type, variadic bool, inline, noreturn bool) *Func {
	return &Func{Return: ret, Params: params, Variadic: variadic, Inline: inline, NoReturn: noreturn}
}

// NewStructUnion creates a fresh incomplete struct/union type with its
// own member scope, parented under parentScope for nested-tag
// visibility (spec.md §4.1).
func (r *Registry) NewStructUnion(isStruct, hasTag bool, parentScope *symtab.Scope) *StructUnion {
	return &StructUnion{
		IsStruct: isStruct,
		HasTag:   hasTag,
		members:  symtab.New(parentScope),
	}
}

// NewEnum creates a fresh enum type over the given underlying integer
// type (commonly `int`, per C's default).
func (r *Registry) NewEnum(name string, underlying *Arithmetic) *Enum {
	return &Enum{Name: name, Underlying: underlying}
}

// IntType is a small convenience wrapper over NewArithmetic for the
// plain `int`, used pervasively (enumerator values, evaluator
// scratch types, ptrdiff_t's signed-pointer-width companion).
func (r *Registry) IntType() *Arithmetic {
	return r.MustArithmetic(TagSpec{Int: true})
}

// PtrdiffType returns the signed integer type of pointer width (8
// bytes on this target), used for `p + i` integer operands per
// spec.md §4.3.
func (r *Registry) PtrdiffType() *Arithmetic {
	return r.MustArithmetic(TagSpec{LongCount: 1})
}
