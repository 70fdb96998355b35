package ceval

import (
	"go.uber.org/zap"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/diag"
)

// EvalAddr folds e to an address constant, grounded on
// original_source/evaluator.h's Evaluator<Addr> specialization —
// spec.md §4.2's "Address kind — the important variant", used for
// address-constant initializers (&var, arr + k, &s.field, string
// literals).
func EvalAddr(e cast.Expr) (Addr, error) {
	addr, err := evalAddr(e)
	if err != nil {
		log.Debug("fold addr failed", zap.Error(err))
		return addr, err
	}
	log.Debug("fold addr", zap.String("label", addr.Label), zap.Bool("hasLabel", addr.HasLabel), zap.Int64("offset", addr.Offset))
	return addr, nil
}

func evalAddr(e cast.Expr) (Addr, error) {
	switch n := e.(type) {
	case *cast.Identifier:
		if n.Symbol != nil && !n.Symbol.IsStaticStorage() && !n.Symbol.IsFunction() {
			return Addr{}, notConstant(e, "expect constant expression")
		}
		return Addr{Label: n.Name, HasLabel: true, Offset: 0}, nil

	case *cast.Object:
		if n.Symbol == nil || !n.Symbol.IsStaticStorage() {
			return Addr{}, diag.CodedError(diag.NotConstant, e.Location(), "expect static object")
		}
		return Addr{Label: ObjectLabel(n), HasLabel: true, Offset: 0}, nil

	case *cast.Enumerator:
		return Addr{Offset: n.Value}, nil

	case *cast.Constant:
		switch n.Kind {
		case cast.ConstInt:
			return Addr{Offset: n.Int}, nil
		case cast.ConstString:
			return Addr{Label: ConstantLabel(n), HasLabel: true, Offset: 0}, nil
		default:
			return Addr{}, notConstant(e, "constant is neither integer nor a pointer-producing literal")
		}

	case *cast.UnaryOp:
		switch n.Op {
		case cast.UnaryAddrOf, cast.UnaryDeref, cast.UnaryCast:
			return evalAddr(n.Operand)
		default:
			return Addr{}, notConstant(e, "unsupported unary operator in address constant")
		}

	case *cast.BinaryOp:
		return evalAddrBinary(n)

	case *cast.ConditionalOp:
		cond, err := New(Int64).EvalInt(n.Cond)
		if err != nil {
			return Addr{}, err
		}
		if cond != 0 {
			return evalAddr(n.Then)
		}
		return evalAddr(n.Else)

	case *cast.FuncCall, *cast.TempVar:
		return Addr{}, notConstant(e, "expect constant expression")

	default:
		return Addr{}, notConstant(e, "unsupported node in address constant expression")
	}
}

func evalAddrBinary(n *cast.BinaryOp) (Addr, error) {
	if n.Op == cast.BinMemberAccess {
		base, err := evalAddr(n.Left)
		if err != nil {
			return Addr{}, err
		}
		fieldOffset, err := memberOffset(n)
		if err != nil {
			return Addr{}, err
		}
		base.Offset += fieldOffset
		return base, nil
	}

	if n.Op == cast.BinAdd || n.Op == cast.BinSub {
		ptrSide, intSide := n.Left, n.Right
		if !isPointerLike(ptrSide) && isPointerLike(intSide) {
			ptrSide, intSide = n.Right, n.Left
		}
		base, err := evalAddr(ptrSide)
		if err != nil {
			return Addr{}, err
		}
		idx, err := New(Int64).EvalInt(intSide)
		if err != nil {
			return Addr{}, err
		}
		step := int64(1)
		if ptr, ok := ptrSide.ExprType().(*ctype.Pointer); ok {
			step = int64(ptr.Pointee.Width())
		}
		delta := idx * step
		if n.Op == cast.BinSub {
			delta = -delta
		}
		base.Offset += delta
		return base, nil
	}

	return Addr{}, notConstant(n, "unsupported binary operator in address constant expression")
}

func isPointerLike(e cast.Expr) bool {
	t := e.ExprType()
	if t == nil {
		return false
	}
	_, ok := t.(*ctype.Pointer)
	return ok
}

// memberOffset resolves the byte offset of a member-access's field
// name inside its aggregate operand's type, per spec.md §4.2's
// `BinaryOp("member-access", agg, field)` rule. The field name is
// carried in a cast.Object right operand by construction, matching how
// the parser materializes member access for the evaluator.
func memberOffset(n *cast.BinaryOp) (int64, error) {
	obj, ok := n.Right.(*cast.Object)
	if !ok {
		return 0, notConstant(n, "member-access right operand must name a field")
	}
	su, ok := n.Left.ExprType().(*ctype.StructUnion)
	if !ok {
		return 0, notConstant(n, "member-access left operand is not an aggregate")
	}
	member, ok := su.GetMember(obj.Name)
	if !ok {
		return 0, notConstant(n, "no such member "+obj.Name)
	}
	return int64(member.Offset), nil
}

// ObjectLabel returns the symbolic label the code generator will emit
// for a static object (spec.md §6's objectLabel(object) → string),
// grounded on original_source/evaluator.h's `ObjectLabel(Object*)` free
// function. The object's own source name is already unique per
// translation unit, so it is used directly.
func ObjectLabel(obj *cast.Object) string {
	return obj.Name
}

// ConstantLabel returns the symbolic label for a string-literal pool
// entry (spec.md §6's constantLabel(constant) → string), grounded on
// original_source/evaluator.h's `ConstantLabel(Constant*)` free
// function. The literal's own text is unsuitable as a direct label (it
// may contain arbitrary bytes), so this keys on the Constant node's
// text field under a pool prefix — label uniqueness across the pool
// when multiple identical literals should share storage is the
// caller's responsibility.
func ConstantLabel(c *cast.Constant) string {
	return ".LC." + c.Str
}
