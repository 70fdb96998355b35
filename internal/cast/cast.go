// Package cast defines the typed Abstract Syntax Tree the constant
// evaluator and visitor dispatch operate over: the same closed
// Expr/Stmt variant set as spec.md §3.2, carried on Go interfaces with
// unexported marker methods — the same shape as the teacher's
// ast.Expr/ast.Stmt/ast.Decl interfaces in internal/ast.
//
// Per spec.md's invariant, every expression's Type field already
// reflects its semantic type *after* checking and implicit
// conversions: implicit conversions are materialized as explicit
// UnaryOp("cast") nodes rather than inferred later by the evaluator.
package cast

import (
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/token"
)

// ValueCategory distinguishes lvalues (named storage, dereferences,
// member access) from rvalues, needed by the evaluator to decide
// whether addr-of is legal (spec.md §4.3's address-constant rules).
type ValueCategory uint8

const (
	RValue ValueCategory = iota
	LValue
)

// Expr is the closed set of expression node kinds, matching spec.md
// §3.2: BinaryOp, UnaryOp, ConditionalOp, FuncCall, Identifier, Object,
// Enumerator, Constant, TempVar.
type Expr interface {
	isExpr()
	ExprType() ctype.Type
	Category() ValueCategory
	Location() token.Location
}

// ExprBase carries what every expression node needs regardless of
// variant: its checked type, value category, and source location —
// matching the teacher's practice of attaching ast.Loc and purity
// flags directly on each concrete node rather than via a side-table.
// Every concrete Expr embeds ExprBase.
type ExprBase struct {
	Typ ctype.Type
	Cat ValueCategory
	Loc token.Location
}

func (h ExprBase) ExprType() ctype.Type     { return h.Typ }
func (h ExprBase) Category() ValueCategory  { return h.Cat }
func (h ExprBase) Location() token.Location { return h.Loc }

// BinaryOpKind enumerates the binary operators spec.md §4.2/§4.3 name
// explicitly: arithmetic, relational, logical short-circuit, shift,
// comma, member-access (used by the evaluator's address-constant
// folding for aggregate field offsets), and pointer-arithmetic forms.
type BinaryOpKind uint8

const (
	BinAdd BinaryOpKind = iota
	BinSub
	BinMul
	BinDiv
	BinMod
	BinAnd
	BinOr
	BinXor
	BinShl
	BinShr
	BinLogicalAnd
	BinLogicalOr
	BinEq
	BinNe
	BinLt
	BinLe
	BinGt
	BinGe
	BinComma
	BinMemberAccess
)

func (k BinaryOpKind) String() string {
	switch k {
	case BinAdd:
		return "+"
	case BinSub:
		return "-"
	case BinMul:
		return "*"
	case BinDiv:
		return "/"
	case BinMod:
		return "%"
	case BinAnd:
		return "&"
	case BinOr:
		return "|"
	case BinXor:
		return "^"
	case BinShl:
		return "<<"
	case BinShr:
		return ">>"
	case BinLogicalAnd:
		return "&&"
	case BinLogicalOr:
		return "||"
	case BinEq:
		return "=="
	case BinNe:
		return "!="
	case BinLt:
		return "<"
	case BinLe:
		return "<="
	case BinGt:
		return ">"
	case BinGe:
		return ">="
	case BinComma:
		return ","
	case BinMemberAccess:
		return "member-access"
	}
	return "?"
}

// BinaryOp is `left <op> right`.
type BinaryOp struct {
	ExprBase
	Op    BinaryOpKind
	Left  Expr
	Right Expr
}

func (*BinaryOp) isExpr() {}

// UnaryOpKind enumerates spec.md §4.2's supported unary operators:
// arithmetic negation, bitwise complement (integer only), logical
// negation, an explicit cast, and the address-of/dereference pair
// (legal in constant context only when producing an Address kind).
type UnaryOpKind uint8

const (
	UnaryNeg UnaryOpKind = iota
	UnaryNot
	UnaryBitNot
	UnaryCast
	UnaryAddrOf
	UnaryDeref
)

func (k UnaryOpKind) String() string {
	switch k {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	case UnaryBitNot:
		return "~"
	case UnaryCast:
		return "cast"
	case UnaryAddrOf:
		return "addr-of"
	case UnaryDeref:
		return "deref"
	}
	return "?"
}

// UnaryOp is `<op> operand`.
type UnaryOp struct {
	ExprBase
	Op      UnaryOpKind
	Operand Expr
}

func (*UnaryOp) isExpr() {}

// ConditionalOp is `cond ? then : els`. The constant evaluator folds
// the condition eagerly and discards the non-taken branch, so the
// non-taken branch need not itself be constant (spec.md §4.2).
type ConditionalOp struct {
	ExprBase
	Cond Expr
	Then Expr
	Else Expr
}

func (*ConditionalOp) isExpr() {}

// FuncCall is a function call; forbidden in constant-expression
// context (spec.md §4.2's "Forbidden nodes").
type FuncCall struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func (*FuncCall) isExpr() {}

// Identifier references a declared name. Whether it is legal in a
// constant address context depends on what the referenced symbol's
// storage class is (spec.md §4.3): a global or function identifier
// yields (label=name, offset=0); anything else is NotConstant.
type Identifier struct {
	ExprBase
	Name   string
	Symbol SymbolRef
}

func (*Identifier) isExpr() {}

// SymbolRef is the minimal surface the evaluator needs from a resolved
// symbol without importing internal/symtab directly (cast sits below
// symtab in the dependency graph the same way ctype sits below
// symtab — cast only needs to ask "is this static storage?").
type SymbolRef interface {
	IsStaticStorage() bool
	IsFunction() bool
}

// Object is a reference to named storage (as opposed to a temporary).
// Constant-foldable only when it names static storage (spec.md §4.2).
type Object struct {
	ExprBase
	Name   string
	Symbol SymbolRef
}

func (*Object) isExpr() {}

// Enumerator is a reference to a named enum constant; always
// constant-foldable to its integer value (spec.md §4.2/§4.3).
type Enumerator struct {
	ExprBase
	Name  string
	Value int64
}

func (*Enumerator) isExpr() {}

// ConstantKind distinguishes how a Constant's literal text should be
// interpreted.
type ConstantKind uint8

const (
	ConstInt ConstantKind = iota
	ConstFloat
	ConstString
)

// Constant is an integer, float, or string literal.
type Constant struct {
	ExprBase
	Kind  ConstantKind
	Int   int64
	Float float64
	Str   string
}

func (*Constant) isExpr() {}

// TempVar is a compiler-introduced temporary (e.g. for a subexpression
// materialized during lowering). Never constant-foldable (spec.md
// §4.2's "Forbidden nodes").
type TempVar struct {
	ExprBase
	Label string
}

func (*TempVar) isExpr() {}

// NewExprBase is a convenience constructor for embedding into a
// concrete node literal.
func NewExprBase(typ ctype.Type, cat ValueCategory, loc token.Location) ExprBase {
	return ExprBase{Typ: typ, Cat: cat, Loc: loc}
}
