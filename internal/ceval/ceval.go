// Package ceval is the constant evaluator: it walks a cast.Expr
// subtree and folds it to a value of a caller-chosen target kind, or
// reports NotConstant/ConstantArithmetic with the offending node's
// location. Grounded directly on original_source/evaluator.h's
// Evaluator<T> template (one instantiation per scalar kind) and its
// Evaluator<Addr> specialization for address constants — reimplemented
// here as a single Go type parameterized by a Kind value rather than a
// template, since Go has no per-scalar-type code generation need: the
// fold logic is identical across integer widths, only the final
// truncation differs.
package ceval

import (
	"go.uber.org/zap"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/clog"
	"github.com/HugoDaniel/gocc/internal/diag"
)

// log is the package-wide fold tracer, silent by default. cmd/gocc
// points it at its real *zap.Logger in verbose mode via SetLogger; the
// evaluator itself stays a pure function of its inputs otherwise.
var log = clog.Nop()

// SetLogger installs the logger used for verbose constant-folding
// traces. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = clog.Nop()
	}
	log = l
}

// Kind is the evaluator's result kind, spec.md §4.2: "parameterized by
// a result kind: one of {int8, int16, int32, int64, uint*, float,
// double, Address}."
type Kind uint8

const (
	Int8 Kind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32Kind
	Float64Kind
)

func (k Kind) isFloat() bool { return k == Float32Kind || k == Float64Kind }

func (k Kind) isUnsigned() bool {
	switch k {
	case Uint8, Uint16, Uint32, Uint64:
		return true
	}
	return false
}

func (k Kind) bits() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32:
		return 32
	case Int64, Uint64:
		return 64
	}
	return 64
}

// Addr is an address constant: a symbolic label plus a byte offset,
// matching original_source/evaluator.h's `struct Addr { std::string
// _label; int _offset; }`, with an explicit HasLabel flag replacing
// "empty string means no label" — an empty label is a valid Go zero
// value and must not be confused with "no label present".
type Addr struct {
	Label    string
	HasLabel bool
	Offset   int64
}

// Evaluator folds cast.Expr subtrees to a single target Kind.
type Evaluator struct {
	Kind Kind
}

// New creates an evaluator for the given target kind.
func New(kind Kind) *Evaluator {
	return &Evaluator{Kind: kind}
}

// EvalInt folds e to an integer of the evaluator's Kind, truncated and
// wrapped to the target width following two's-complement semantics
// (spec.md §4.2: "documented as an implementation choice").
func (ev *Evaluator) EvalInt(e cast.Expr) (int64, error) {
	v, err := ev.eval(e)
	if err != nil {
		log.Debug("fold int failed", zap.Error(err))
		return 0, err
	}
	result := ev.truncate(v)
	log.Debug("fold int", zap.Int64("value", result))
	return result, nil
}

// EvalFloat folds e to a float64 of the evaluator's Kind.
func (ev *Evaluator) EvalFloat(e cast.Expr) (float64, error) {
	v, err := ev.evalFloat(e)
	if err != nil {
		log.Debug("fold float failed", zap.Error(err))
		return 0, err
	}
	if ev.Kind == Float32Kind {
		v = float64(float32(v))
	}
	log.Debug("fold float", zap.Float64("value", v))
	return v, nil
}

// truncate wraps v to the target integer width, two's-complement.
func (ev *Evaluator) truncate(v int64) int64 {
	bits := ev.Kind.bits()
	if bits >= 64 {
		return v
	}
	mask := int64(1)<<uint(bits) - 1
	wrapped := v & mask
	if !ev.Kind.isUnsigned() {
		signBit := int64(1) << uint(bits-1)
		if wrapped&signBit != 0 {
			wrapped -= int64(1) << uint(bits)
		}
	}
	return wrapped
}

// eval implements the integer-fold side of spec.md §4.2's "Permitted
// nodes for integer/float kinds".
func (ev *Evaluator) eval(e cast.Expr) (int64, error) {
	switch n := e.(type) {
	case *cast.Constant:
		switch n.Kind {
		case cast.ConstInt:
			return n.Int, nil
		case cast.ConstFloat:
			return int64(n.Float), nil
		default:
			return 0, notConstant(e, "constant is not integer or floating")
		}
	case *cast.Enumerator:
		return n.Value, nil
	case *cast.UnaryOp:
		return ev.evalUnary(n)
	case *cast.BinaryOp:
		return ev.evalBinary(n)
	case *cast.ConditionalOp:
		cond, err := ev.eval(n.Cond)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return ev.eval(n.Then)
		}
		return ev.eval(n.Else)
	case *cast.FuncCall:
		return 0, notConstant(e, "expect constant expression")
	case *cast.Identifier:
		return 0, notConstant(e, "expect constant expression")
	case *cast.Object:
		if n.Symbol == nil || !n.Symbol.IsStaticStorage() {
			return 0, notConstant(e, "expect constant expression")
		}
		return 0, notConstant(e, "object reference has no constant integer value")
	case *cast.TempVar:
		return 0, notConstant(e, "expect constant expression")
	default:
		return 0, notConstant(e, "unsupported node in constant expression")
	}
}

func (ev *Evaluator) evalFloat(e cast.Expr) (float64, error) {
	switch n := e.(type) {
	case *cast.Constant:
		switch n.Kind {
		case cast.ConstFloat:
			return n.Float, nil
		case cast.ConstInt:
			return float64(n.Int), nil
		default:
			return 0, notConstant(e, "constant is not integer or floating")
		}
	case *cast.Enumerator:
		return float64(n.Value), nil
	case *cast.UnaryOp:
		switch n.Op {
		case cast.UnaryNeg:
			v, err := ev.evalFloat(n.Operand)
			return -v, err
		case cast.UnaryCast:
			return ev.evalFloat(n.Operand)
		}
		return 0, notConstant(e, "unsupported unary operator in floating constant expression")
	case *cast.BinaryOp:
		l, err := ev.evalFloat(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := ev.evalFloat(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case cast.BinAdd:
			return l + r, nil
		case cast.BinSub:
			return l - r, nil
		case cast.BinMul:
			return l * r, nil
		case cast.BinDiv:
			if r == 0 {
				return 0, diag.CodedError(diag.ConstantArithmetic, e.Location(), "division by zero")
			}
			return l / r, nil
		case cast.BinComma:
			return r, nil
		}
		return 0, notConstant(e, "unsupported binary operator in floating constant expression")
	case *cast.ConditionalOp:
		cond, err := ev.eval(n.Cond)
		if err != nil {
			return 0, err
		}
		if cond != 0 {
			return ev.evalFloat(n.Then)
		}
		return ev.evalFloat(n.Else)
	default:
		return 0, notConstant(e, "unsupported node in floating constant expression")
	}
}

func (ev *Evaluator) evalUnary(n *cast.UnaryOp) (int64, error) {
	if n.Op == cast.UnaryNeg || n.Op == cast.UnaryNot || n.Op == cast.UnaryBitNot || n.Op == cast.UnaryCast {
		if n.ExprType() != nil && n.ExprType().IsComplete() {
			if isFloatType(n.Operand) {
				v, err := ev.evalFloat(n.Operand)
				if err != nil {
					return 0, err
				}
				switch n.Op {
				case cast.UnaryNeg:
					return int64(-v), nil
				case cast.UnaryCast:
					return int64(v), nil
				}
			}
		}
	}
	v, err := ev.eval(n.Operand)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case cast.UnaryNeg:
		return -v, nil
	case cast.UnaryBitNot:
		return ^v, nil
	case cast.UnaryNot:
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	case cast.UnaryCast:
		return v, nil
	default:
		return 0, notConstant(n, "addr-of/deref are only valid when evaluating an Address constant")
	}
}

func (ev *Evaluator) evalBinary(n *cast.BinaryOp) (int64, error) {
	switch n.Op {
	case cast.BinLogicalAnd:
		l, err := ev.eval(n.Left)
		if err != nil {
			return 0, err
		}
		if l == 0 {
			return 0, nil
		}
		r, err := ev.eval(n.Right)
		if err != nil {
			return 0, err
		}
		if r != 0 {
			return 1, nil
		}
		return 0, nil
	case cast.BinLogicalOr:
		l, err := ev.eval(n.Left)
		if err != nil {
			return 0, err
		}
		if l != 0 {
			return 1, nil
		}
		r, err := ev.eval(n.Right)
		if err != nil {
			return 0, err
		}
		if r != 0 {
			return 1, nil
		}
		return 0, nil
	case cast.BinComma:
		if _, err := ev.eval(n.Left); err != nil {
			return 0, err
		}
		return ev.eval(n.Right)
	}

	if isFloatType(n.Left) || isFloatType(n.Right) {
		l, err := ev.evalFloat(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := ev.evalFloat(n.Right)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case cast.BinLt:
			return boolInt(l < r), nil
		case cast.BinLe:
			return boolInt(l <= r), nil
		case cast.BinGt:
			return boolInt(l > r), nil
		case cast.BinGe:
			return boolInt(l >= r), nil
		case cast.BinEq:
			return boolInt(l == r), nil
		case cast.BinNe:
			return boolInt(l != r), nil
		}
		return 0, notConstant(n, "non-comparison operator between floating operands in integer context")
	}

	l, err := ev.eval(n.Left)
	if err != nil {
		return 0, err
	}
	r, err := ev.eval(n.Right)
	if err != nil {
		return 0, err
	}
	switch n.Op {
	case cast.BinAdd:
		return l + r, nil
	case cast.BinSub:
		return l - r, nil
	case cast.BinMul:
		return l * r, nil
	case cast.BinDiv:
		if r == 0 {
			return 0, diag.CodedError(diag.ConstantArithmetic, n.Location(), "division by zero")
		}
		return l / r, nil
	case cast.BinMod:
		if r == 0 {
			return 0, diag.CodedError(diag.ConstantArithmetic, n.Location(), "modulus by zero")
		}
		return l % r, nil
	case cast.BinAnd:
		return l & r, nil
	case cast.BinOr:
		return l | r, nil
	case cast.BinXor:
		return l ^ r, nil
	case cast.BinShl:
		if r < 0 || r >= int64(ev.Kind.bits()) {
			return 0, diag.CodedError(diag.ConstantArithmetic, n.Location(), "shift amount %d out of range for %d-bit target", r, ev.Kind.bits())
		}
		return l << uint(r), nil
	case cast.BinShr:
		if r < 0 || r >= int64(ev.Kind.bits()) {
			return 0, diag.CodedError(diag.ConstantArithmetic, n.Location(), "shift amount %d out of range for %d-bit target", r, ev.Kind.bits())
		}
		return l >> uint(r), nil
	case cast.BinLt:
		return boolInt(l < r), nil
	case cast.BinLe:
		return boolInt(l <= r), nil
	case cast.BinGt:
		return boolInt(l > r), nil
	case cast.BinGe:
		return boolInt(l >= r), nil
	case cast.BinEq:
		return boolInt(l == r), nil
	case cast.BinNe:
		return boolInt(l != r), nil
	default:
		return 0, notConstant(n, "unsupported binary operator in constant expression")
	}
}

func isFloatType(e cast.Expr) bool {
	t := e.ExprType()
	if t == nil {
		return false
	}
	type floatTyper interface{ IsFloat() bool }
	ft, ok := t.(floatTyper)
	return ok && ft.IsFloat()
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func notConstant(e cast.Expr, msg string) error {
	return diag.CodedError(diag.NotConstant, e.Location(), "%s", msg)
}
