package cparse

import (
	"fmt"
	"strconv"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ceval"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/token"
)

// ParseExpr lexes and parses a single standalone expression — the
// convenience entry point for the ternary/shift scenarios that don't
// need a surrounding declaration.
func ParseExpr(src string, reg *ctype.Registry) (cast.Expr, error) {
	toks := NewLexer(src, "<expr>").Tokenize()
	p := New(toks, reg)
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.resolveIdentifierStorage(e)
}

// parseExpr is the grammar's entry point: the comma operator binds
// loosest, then the ternary, then each binary precedence level down to
// unary/primary.
func (p *Parser) parseExpr() (cast.Expr, error) {
	return p.parseComma()
}

func (p *Parser) parseComma() (cast.Expr, error) {
	left, err := p.parseAssignOrTernary()
	if err != nil {
		return nil, err
	}
	for p.at(token.Comma) {
		p.advance()
		right, err := p.parseAssignOrTernary()
		if err != nil {
			return nil, err
		}
		left = &cast.BinaryOp{
			ExprBase: cast.NewExprBase(right.ExprType(), cast.RValue, left.Location()),
			Op:       cast.BinComma,
			Left:     left,
			Right:    right,
		}
	}
	return left, nil
}

// parseAssignOrTernary only implements the ternary form; assignment
// expressions don't appear in any constant-expression scenario this
// parser targets.
func (p *Parser) parseAssignOrTernary() (cast.Expr, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Question) {
		return cond, nil
	}
	loc := p.loc()
	p.advance()
	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	els, err := p.parseAssignOrTernary()
	if err != nil {
		return nil, err
	}
	resultType := then.ExprType()
	if resultType == nil {
		resultType = els.ExprType()
	}
	return &cast.ConditionalOp{
		ExprBase: cast.NewExprBase(resultType, cast.RValue, loc),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}, nil
}

// binaryLevel describes one left-associative binary-operator
// precedence level: the tokens it accepts and the cast.BinaryOpKind
// each maps to.
type binaryLevel struct {
	next func(p *Parser) (cast.Expr, error)
	ops  map[token.Kind]cast.BinaryOpKind
}

func (p *Parser) parseBinaryLevel(lvl binaryLevel) (cast.Expr, error) {
	left, err := lvl.next(p)
	if err != nil {
		return nil, err
	}
	for {
		op, ok := lvl.ops[p.cur().Kind]
		if !ok {
			return left, nil
		}
		loc := p.loc()
		p.advance()
		right, err := lvl.next(p)
		if err != nil {
			return nil, err
		}
		resultType, err := p.binaryResultType(op, left, right)
		if err != nil {
			return nil, err
		}
		left = &cast.BinaryOp{
			ExprBase: cast.NewExprBase(resultType, cast.RValue, loc),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
}

// binaryResultType picks the BinaryOp's checked result type, matching
// spec.md §4.1's usual-arithmetic-conversion rule for arithmetic
// operands and leaving pointer-arithmetic/member-access/comparison
// results at the pointer or int type involved — just enough typing for
// the evaluator's pointer-vs-int dispatch in EvalAddr to work.
func (p *Parser) binaryResultType(op cast.BinaryOpKind, left, right cast.Expr) (ctype.Type, error) {
	switch op {
	case cast.BinLogicalAnd, cast.BinLogicalOr, cast.BinEq, cast.BinNe,
		cast.BinLt, cast.BinLe, cast.BinGt, cast.BinGe:
		return p.reg.IntType(), nil
	case cast.BinAdd, cast.BinSub:
		if lp, ok := left.ExprType().(*ctype.Pointer); ok {
			return lp, nil
		}
		if rp, ok := right.ExprType().(*ctype.Pointer); ok {
			return rp, nil
		}
	}
	lArith, lok := left.ExprType().(*ctype.Arithmetic)
	rArith, rok := right.ExprType().(*ctype.Arithmetic)
	if lok && rok {
		return ctype.UsualArithmeticConversion(lArith, rArith), nil
	}
	if lok {
		return lArith, nil
	}
	if rok {
		return rArith, nil
	}
	return left.ExprType(), nil
}

func (p *Parser) parseLogicalOr() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseLogicalAnd, map[token.Kind]cast.BinaryOpKind{token.OrOr: cast.BinLogicalOr}})
}

func (p *Parser) parseLogicalAnd() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseBitOr, map[token.Kind]cast.BinaryOpKind{token.AndAnd: cast.BinLogicalAnd}})
}

func (p *Parser) parseBitOr() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseBitXor, map[token.Kind]cast.BinaryOpKind{token.Pipe: cast.BinOr}})
}

func (p *Parser) parseBitXor() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseBitAnd, map[token.Kind]cast.BinaryOpKind{token.Caret: cast.BinXor}})
}

func (p *Parser) parseBitAnd() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseEquality, map[token.Kind]cast.BinaryOpKind{token.Amp: cast.BinAnd}})
}

func (p *Parser) parseEquality() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseRelational, map[token.Kind]cast.BinaryOpKind{
		token.Eq: cast.BinEq, token.Ne: cast.BinNe,
	}})
}

func (p *Parser) parseRelational() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseShift, map[token.Kind]cast.BinaryOpKind{
		token.Lt: cast.BinLt, token.Le: cast.BinLe, token.Gt: cast.BinGt, token.Ge: cast.BinGe,
	}})
}

func (p *Parser) parseShift() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseAdditive, map[token.Kind]cast.BinaryOpKind{
		token.Shl: cast.BinShl, token.Shr: cast.BinShr,
	}})
}

func (p *Parser) parseAdditive() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseMultiplicative, map[token.Kind]cast.BinaryOpKind{
		token.Plus: cast.BinAdd, token.Minus: cast.BinSub,
	}})
}

func (p *Parser) parseMultiplicative() (cast.Expr, error) {
	return p.parseBinaryLevel(binaryLevel{p.parseUnary, map[token.Kind]cast.BinaryOpKind{
		token.Star: cast.BinMul, token.Slash: cast.BinDiv, token.Percent: cast.BinMod,
	}})
}

func (p *Parser) parseUnary() (cast.Expr, error) {
	loc := p.loc()
	var op cast.UnaryOpKind
	switch p.cur().Kind {
	case token.Minus:
		op = cast.UnaryNeg
	case token.Bang:
		op = cast.UnaryNot
	case token.Tilde:
		op = cast.UnaryBitNot
	case token.Amp:
		op = cast.UnaryAddrOf
	case token.Star:
		op = cast.UnaryDeref
	default:
		return p.parsePostfix()
	}
	p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	resultType := operand.ExprType()
	if op == cast.UnaryAddrOf {
		resultType = p.reg.NewPointer(operand.ExprType())
	}
	if op == cast.UnaryDeref {
		if ptr, ok := operand.ExprType().(*ctype.Pointer); ok {
			resultType = ptr.Pointee
		}
	}
	cat := cast.RValue
	if op == cast.UnaryDeref {
		cat = cast.LValue
	}
	return &cast.UnaryOp{
		ExprBase: cast.NewExprBase(resultType, cat, loc),
		Op:       op,
		Operand:  operand,
	}, nil
}

func (p *Parser) parsePostfix() (cast.Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur().Kind {
		case token.Dot:
			loc := p.loc()
			p.advance()
			memberTok, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			su, ok := expr.ExprType().(*ctype.StructUnion)
			memberType := ctype.Type(nil)
			if ok {
				if sym, ok := su.GetMember(memberTok.Lexeme); ok {
					memberType = sym.Type
				}
			}
			member := &cast.Object{
				ExprBase: cast.NewExprBase(memberType, cast.LValue, memberTok.Loc),
				Name:     memberTok.Lexeme,
			}
			expr = &cast.BinaryOp{
				ExprBase: cast.NewExprBase(memberType, cast.LValue, loc),
				Op:       cast.BinMemberAccess,
				Left:     expr,
				Right:    member,
			}
		case token.LParen:
			loc := p.loc()
			p.advance()
			var args []cast.Expr
			for !p.at(token.RParen) {
				arg, err := p.parseAssignOrTernary()
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			expr = &cast.FuncCall{
				ExprBase: cast.NewExprBase(nil, cast.RValue, loc),
				Callee:   expr,
				Args:     args,
			}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (cast.Expr, error) {
	loc := p.loc()
	switch p.cur().Kind {
	case token.IntLiteral:
		lit := p.advance().Lexeme
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid integer literal %q: %w", loc, lit, err)
		}
		return &cast.Constant{
			ExprBase: cast.NewExprBase(p.reg.IntType(), cast.RValue, loc),
			Kind:     cast.ConstInt,
			Int:      v,
		}, nil
	case token.FloatLiteral:
		lit := p.advance().Lexeme
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid float literal %q: %w", loc, lit, err)
		}
		doubleType, err := p.reg.NewArithmetic(ctype.TagSpec{Double: true})
		if err != nil {
			return nil, err
		}
		return &cast.Constant{
			ExprBase: cast.NewExprBase(doubleType, cast.RValue, loc),
			Kind:     cast.ConstFloat,
			Float:    v,
		}, nil
	case token.StringLiteral:
		lit := p.advance().Lexeme
		charType, err := p.reg.NewArithmetic(ctype.TagSpec{Char: true})
		if err != nil {
			return nil, err
		}
		strType := p.reg.NewPointer(charType)
		return &cast.Constant{
			ExprBase: cast.NewExprBase(strType, cast.RValue, loc),
			Kind:     cast.ConstString,
			Str:      lit,
		}, nil
	case token.Ident:
		name := p.advance().Lexeme
		return &cast.Identifier{
			ExprBase: cast.NewExprBase(nil, cast.LValue, loc),
			Name:     name,
		}, nil
	case token.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%s: unexpected token %s in expression", loc, p.cur().Kind)
	}
}

// evalIntExpr folds e to an int64 using the plain-int evaluator, the
// width enumerator initializers and top-level `int` declarations are
// checked against (spec.md §8 scenarios 1 and 6).
func evalIntExpr(e cast.Expr) (int64, error) {
	return ceval.New(ceval.Int32).EvalInt(e)
}
