package ctype

import "fmt"

// Kind is the canonicalized arithmetic type after newArithm has
// resolved default signedness and collapsed repeated `long`, per
// spec.md §4.1. This replaces the original C++ tag bitset
// (original_source/type.h's T_SIGNED/T_UNSIGNED/T_CHAR/... flags) with
// one closed enum, since canonicalization means only these
// combinations ever reach a live Arithmetic value.
type Kind uint8

const (
	Bool Kind = iota
	Char         // plain char: sign is implementation-defined (spec.md invariant)
	SignedChar
	UnsignedChar
	Short
	UnsignedShort
	Int
	UnsignedInt
	Long
	UnsignedLong
	LongLong
	UnsignedLongLong
	Float
	Double
	LongDouble
	FloatComplex
	DoubleComplex
)

var kindNames = [...]string{
	Bool: "_Bool", Char: "char", SignedChar: "signed char",
	UnsignedChar: "unsigned char", Short: "short", UnsignedShort: "unsigned short",
	Int: "int", UnsignedInt: "unsigned int", Long: "long",
	UnsignedLong: "unsigned long", LongLong: "long long",
	UnsignedLongLong: "unsigned long long", Float: "float", Double: "double",
	LongDouble: "long double", FloatComplex: "float _Complex",
	DoubleComplex: "double _Complex",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// IsInteger reports whether k is one of the integer kinds (including
// _Bool, matching original_source/type.h's ArithmType::IsInteger,
// which ORs T_BOOL into the integer test).
func (k Kind) IsInteger() bool {
	switch k {
	case Bool, Char, SignedChar, UnsignedChar, Short, UnsignedShort,
		Int, UnsignedInt, Long, UnsignedLong, LongLong, UnsignedLongLong:
		return true
	}
	return false
}

// IsFloat reports whether k is a (non-complex) floating kind.
func (k Kind) IsFloat() bool {
	switch k {
	case Float, Double, LongDouble:
		return true
	}
	return false
}

// IsComplex reports whether k is a complex kind (stubbed per spec.md
// Non-goals: complex types exist for type formation but the evaluator
// never folds them).
func (k Kind) IsComplex() bool {
	return k == FloatComplex || k == DoubleComplex
}

// IsUnsigned reports whether k is an unsigned integer kind.
func (k Kind) IsUnsigned() bool {
	switch k {
	case Bool, UnsignedChar, UnsignedShort, UnsignedInt, UnsignedLong, UnsignedLongLong:
		return true
	}
	return false
}

func (k Kind) width() int {
	switch k {
	case Bool, Char, SignedChar, UnsignedChar:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt, Float:
		return 4
	case Long, UnsignedLong, LongLong, UnsignedLongLong, Double, FloatComplex:
		return 8
	case LongDouble, DoubleComplex:
		return 16
	}
	return 0
}

// rank orders integer kinds for the usual arithmetic conversions (the
// "wider of the two" rule implemented by original_source/type.h's free
// function MaxType).
func (k Kind) rank() int {
	switch k {
	case Bool:
		return 0
	case Char, SignedChar, UnsignedChar:
		return 1
	case Short, UnsignedShort:
		return 2
	case Int, UnsignedInt:
		return 3
	case Long, UnsignedLong:
		return 4
	case LongLong, UnsignedLongLong:
		return 5
	}
	return -1
}

// TagSpec is the raw, possibly-redundant specifier combination a
// parser collects from declaration-specifier tokens, before
// canonicalization — e.g. two `long` keywords, or `unsigned` with no
// size keyword at all. NewArithmetic resolves it into a single Kind.
type TagSpec struct {
	Signed, Unsigned bool
	Char             bool
	Short            bool
	LongCount        int // number of `long` keywords seen (0, 1, or 2)
	Int              bool
	Bool             bool
	Float            bool
	Double           bool
	Complex          bool
}

// Arithmetic is a scalar numeric type: integer, floating, or complex.
type Arithmetic struct {
	kind Kind
	qual Qualifiers
}

func (a *Arithmetic) String() string { return a.kind.String() }

func (a *Arithmetic) Equal(other Type) bool {
	o, ok := other.(*Arithmetic)
	return ok && a.kind == o.kind && a.qual == o.qual
}

// Compatible: two arithmetic types are compatible iff both are
// arithmetic — looser than Equal by design (spec.md §4.1): assignment
// conversions cover narrowing, compatibility does not require it.
func (a *Arithmetic) Compatible(other Type) bool {
	_, ok := other.(*Arithmetic)
	return ok
}

func (a *Arithmetic) Width() int { return a.kind.width() }

func (a *Arithmetic) Align() int { return a.kind.width() }

func (a *Arithmetic) IsComplete() bool { return true }

func (a *Arithmetic) Qual() Qualifiers { return a.qual }

func (a *Arithmetic) SetQual(q Qualifiers) { a.qual = q }

func (a *Arithmetic) ToPointer() *Pointer { return nil }

func (a *Arithmetic) isType() {}

// Kind returns the canonicalized arithmetic kind.
func (a *Arithmetic) Kind() Kind { return a.kind }

func (a *Arithmetic) IsInteger() bool { return a.kind.IsInteger() }
func (a *Arithmetic) IsFloat() bool   { return a.kind.IsFloat() }
func (a *Arithmetic) IsComplex() bool { return a.kind.IsComplex() }
func (a *Arithmetic) IsBool() bool    { return a.kind == Bool }

// canonicalize resolves a raw TagSpec into a single Kind, or reports
// InvalidTypeSpec per spec.md §4.1: "Fails with InvalidTypeSpec if the
// spec combines incompatible tokens (e.g. float int, two sign
// specifiers)."
func canonicalize(spec TagSpec) (Kind, error) {
	if spec.Signed && spec.Unsigned {
		return 0, fmt.Errorf("both signed and unsigned specified")
	}
	numericFloat := spec.Float || spec.Double
	numericInt := spec.Char || spec.Short || spec.LongCount > 0 || spec.Int || spec.Bool
	if numericFloat && numericInt {
		return 0, fmt.Errorf("both floating and integer specifiers given")
	}
	if spec.Bool && (spec.Signed || spec.Unsigned || spec.Char || spec.Short || spec.LongCount > 0 || spec.Int) {
		return 0, fmt.Errorf("_Bool combined with another specifier")
	}
	if spec.LongCount > 2 {
		return 0, fmt.Errorf("too many long specifiers")
	}
	if spec.Char && (spec.Short || spec.LongCount > 0) {
		return 0, fmt.Errorf("char combined with short/long")
	}
	if spec.Short && spec.LongCount > 0 {
		return 0, fmt.Errorf("both short and long specified")
	}

	if spec.Bool {
		return Bool, nil
	}
	if numericFloat {
		if spec.Complex {
			if spec.Double || spec.LongCount > 0 {
				return DoubleComplex, nil
			}
			return FloatComplex, nil
		}
		if spec.Double {
			if spec.LongCount > 0 {
				return LongDouble, nil
			}
			return Double, nil
		}
		return Float, nil
	}

	// Integer family. A lone `signed`/`unsigned` with no size keyword
	// defaults to int (spec.md §4.1: "defaulting signed/unsigned alone
	// to int"), resolving the Open Question on a lone `unsigned`.
	if spec.Char {
		if spec.Signed {
			return SignedChar, nil
		}
		if spec.Unsigned {
			return UnsignedChar, nil
		}
		return Char, nil // implementation-defined signedness, per spec.md invariant
	}
	if spec.Short {
		if spec.Unsigned {
			return UnsignedShort, nil
		}
		return Short, nil
	}
	if spec.LongCount == 2 { // collapsing long long (spec.md §4.1)
		if spec.Unsigned {
			return UnsignedLongLong, nil
		}
		return LongLong, nil
	}
	if spec.LongCount == 1 {
		if spec.Unsigned {
			return UnsignedLong, nil
		}
		return Long, nil
	}
	if spec.Unsigned {
		return UnsignedInt, nil
	}
	return Int, nil // bare `int`, bare `signed`, or no specifier at all
}

// UsualArithmeticConversion implements C's usual arithmetic
// conversions for a binary operand pair, grounded on
// original_source/type.h's free function `MaxType`: the operand with
// higher rank wins; equal rank with mismatched signedness promotes to
// unsigned; any float operand dominates any integer operand, with
// Double beating Float and LongDouble beating both.
func UsualArithmeticConversion(a, b *Arithmetic) *Arithmetic {
	if a.kind.IsFloat() || b.kind.IsFloat() {
		return floatWinner(a, b)
	}
	// Integer promotion: anything narrower than int promotes to int.
	ap, bp := promote(a), promote(b)
	if ap.kind.rank() == bp.kind.rank() {
		if ap.kind.IsUnsigned() {
			return ap
		}
		return bp
	}
	if ap.kind.rank() > bp.kind.rank() {
		if bp.kind.IsUnsigned() && !ap.kind.IsUnsigned() {
			return &Arithmetic{kind: unsignedOf(ap.kind)}
		}
		return ap
	}
	if ap.kind.IsUnsigned() && !bp.kind.IsUnsigned() {
		return &Arithmetic{kind: unsignedOf(bp.kind)}
	}
	return bp
}

func floatWinner(a, b *Arithmetic) *Arithmetic {
	rank := func(k Kind) int {
		switch k {
		case LongDouble:
			return 3
		case Double:
			return 2
		case Float:
			return 1
		}
		return 0
	}
	if !a.kind.IsFloat() {
		return b
	}
	if !b.kind.IsFloat() {
		return a
	}
	if rank(a.kind) >= rank(b.kind) {
		return a
	}
	return b
}

// promote applies integer promotion: every integer kind narrower than
// int becomes int (spec.md §4.3's "usual arithmetic conversions").
func promote(a *Arithmetic) *Arithmetic {
	switch a.kind {
	case Bool, Char, SignedChar, UnsignedChar, Short, UnsignedShort:
		return &Arithmetic{kind: Int}
	}
	return a
}

func unsignedOf(k Kind) Kind {
	switch k {
	case Int:
		return UnsignedInt
	case Long:
		return UnsignedLong
	case LongLong:
		return UnsignedLongLong
	}
	return k
}
