package cparse

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/clog"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/diag"
	"github.com/HugoDaniel/gocc/internal/token"
)

// log is the package-wide parse tracer, silent by default. cmd/gocc
// points it at its real *zap.Logger in verbose mode via SetLogger.
var log = clog.Nop()

// SetLogger installs the logger used for verbose parse traces. Passing
// nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = clog.Nop()
	}
	log = l
}

// symbolRef is the parser's concrete cast.SymbolRef: just enough to
// answer the evaluator's two questions ("is this static storage?",
// "is this a function?") without the parser depending on
// internal/symtab's full Symbol shape.
type symbolRef struct {
	static   bool
	function bool
}

func (s *symbolRef) IsStaticStorage() bool { return s.static }
func (s *symbolRef) IsFunction() bool      { return s.function }

// declInfo is what the parser remembers about a declared name, so a
// later reference (e.g. `a` in `a + 3`) can be resolved to its type
// and storage class.
type declInfo struct {
	typ    ctype.Type
	static bool
}

// Parser is a recursive-descent reader over a token stream, producing
// internal/cast nodes typed against an internal/ctype Registry. It
// implements exactly the declaration and expression grammar needed to
// drive the constant evaluator end to end (spec.md §8's scenarios),
// not the whole of C.
type Parser struct {
	toks  []token.Token
	pos   int
	reg   *ctype.Registry
	diags *diag.Reporter
	decls map[string]declInfo
}

// New creates a parser over toks (normally the output of Lexer.Tokenize).
func New(toks []token.Token, reg *ctype.Registry) *Parser {
	return &Parser{toks: toks, reg: reg, diags: diag.NewReporter(), decls: make(map[string]declInfo)}
}

// Diagnostics returns every diagnostic collected while parsing.
func (p *Parser) Diagnostics() *diag.Reporter { return p.diags }

func (p *Parser) cur() token.Token  { return p.toks[p.pos] }
func (p *Parser) loc() token.Location { return p.cur().Loc }

func (p *Parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) peekAt(off int) token.Token {
	idx := p.pos + off
	if idx >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[idx]
}

func (p *Parser) advance() token.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if !p.at(k) {
		return token.Token{}, fmt.Errorf("expected %s, got %s at %s", k, p.cur().Kind, p.loc())
	}
	return p.advance(), nil
}

// ParseTranslationUnit parses a sequence of top-level declarations
// until EOF.
func (p *Parser) ParseTranslationUnit() (*cast.TranslationUnit, error) {
	tu := &cast.TranslationUnit{StmtBase: cast.StmtBase{Loc: p.loc()}}
	for !p.at(token.EOF) {
		decl, err := p.parseTopLevelDecl()
		if err != nil {
			log.Debug("top-level declaration failed", zap.Error(err))
			return nil, err
		}
		if decl != nil {
			tu.Decls = append(tu.Decls, decl)
		}
	}
	log.Debug("parsed translation unit", zap.Int("decls", len(tu.Decls)))
	return tu, nil
}

// parseTopLevelDecl parses one of: a bare enum declaration, a bare
// struct declaration, or a storage-class + type-specifier + declarator
// (+ initializer) declaration — spec.md §8's scenario shapes.
func (p *Parser) parseTopLevelDecl() (cast.Stmt, error) {
	isStatic := false
	isConst := false
	for p.at(token.KwStatic) || p.at(token.KwConst) || p.at(token.KwExtern) {
		switch p.cur().Kind {
		case token.KwStatic:
			isStatic = true
		case token.KwConst:
			isConst = true
		}
		p.advance()
	}

	switch {
	case p.at(token.KwEnum):
		return p.parseEnumDecl(isStatic)
	case p.at(token.KwStruct):
		return p.parseStructDecl(isStatic)
	default:
		return p.parseVarDecl(isStatic, isConst)
	}
}

// parseEnumDecl parses `enum [tag] { NAME [= expr] , ... } ;`.
func (p *Parser) parseEnumDecl(isStatic bool) (cast.Stmt, error) {
	loc := p.loc()
	if _, err := p.expect(token.KwEnum); err != nil {
		return nil, err
	}
	name := ""
	if p.at(token.Ident) {
		name = p.advance().Lexeme
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	underlying := p.reg.IntType()
	enumType := p.reg.NewEnum(name, underlying)

	var next int64 = 0
	for !p.at(token.RBrace) {
		enumName, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		value := next
		if p.at(token.Assign) {
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			v, err := p.evalEnumeratorExpr(expr)
			if err != nil {
				return nil, err
			}
			value = v
		}
		enumType.Enumerators = append(enumType.Enumerators, ctype.Enumerator{Name: enumName.Lexeme, Value: value})
		p.decls[enumName.Lexeme] = declInfo{typ: enumType, static: true}
		next = value + 1
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, err
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	if name != "" {
		p.decls[name] = declInfo{typ: enumType, static: isStatic}
	}
	return &cast.Declaration{StmtBase: cast.StmtBase{Loc: loc}}, nil
}

// evalEnumeratorExpr folds an enumerator's initializer using the
// enumerators declared so far — spec.md §8 scenario 1's `B = A + 2`.
func (p *Parser) evalEnumeratorExpr(e cast.Expr) (int64, error) {
	resolved, err := p.resolveEnumeratorRefs(e)
	if err != nil {
		return 0, err
	}
	return evalIntExpr(resolved)
}

// resolveEnumeratorRefs rewrites bare cast.Identifier leaves that name
// an already-declared enumerator into cast.Enumerator nodes, since the
// evaluator only folds Enumerator, not Identifier (spec.md §4.2's
// "Forbidden nodes" list includes plain Identifier).
func (p *Parser) resolveEnumeratorRefs(e cast.Expr) (cast.Expr, error) {
	switch n := e.(type) {
	case *cast.Identifier:
		if info, ok := p.decls[n.Name]; ok {
			if enumType, ok := info.typ.(*ctype.Enum); ok {
				if enumr, ok := enumType.Lookup(n.Name); ok {
					return &cast.Enumerator{ExprBase: n.ExprBase, Name: enumr.Name, Value: enumr.Value}, nil
				}
			}
		}
		return nil, fmt.Errorf("%s: %q is not a known enumerator", n.Location(), n.Name)
	case *cast.BinaryOp:
		l, err := p.resolveEnumeratorRefs(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := p.resolveEnumeratorRefs(n.Right)
		if err != nil {
			return nil, err
		}
		return &cast.BinaryOp{ExprBase: n.ExprBase, Op: n.Op, Left: l, Right: r}, nil
	case *cast.UnaryOp:
		operand, err := p.resolveEnumeratorRefs(n.Operand)
		if err != nil {
			return nil, err
		}
		return &cast.UnaryOp{ExprBase: n.ExprBase, Op: n.Op, Operand: operand}, nil
	case *cast.ConditionalOp:
		c, err := p.resolveEnumeratorRefs(n.Cond)
		if err != nil {
			return nil, err
		}
		th, err := p.resolveEnumeratorRefs(n.Then)
		if err != nil {
			return nil, err
		}
		el, err := p.resolveEnumeratorRefs(n.Else)
		if err != nil {
			return nil, err
		}
		return &cast.ConditionalOp{ExprBase: n.ExprBase, Cond: c, Then: th, Else: el}, nil
	default:
		return e, nil
	}
}

// parseStructDecl parses `struct [tag] { member-decl* } ;` and
// completes the resulting aggregate's layout.
func (p *Parser) parseStructDecl(isStatic bool) (cast.Stmt, error) {
	loc := p.loc()
	su, name, err := p.parseStructSpecifier()
	if err != nil {
		return nil, err
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	if name != "" {
		p.decls["struct "+name] = declInfo{typ: su, static: isStatic}
	}
	return &cast.Declaration{StmtBase: cast.StmtBase{Loc: loc}}, nil
}

// parseStructSpecifier parses `struct [tag] { member-decl* }` (no
// trailing semicolon) and returns the completed aggregate type, shared
// by both the top-level struct-declaration form and the inline
// `struct S { ... } var;` type-specifier form.
func (p *Parser) parseStructSpecifier() (*ctype.StructUnion, string, error) {
	if _, err := p.expect(token.KwStruct); err != nil {
		return nil, "", err
	}
	name := ""
	if p.at(token.Ident) {
		name = p.advance().Lexeme
	}
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, "", err
	}

	su := p.reg.NewStructUnion(true, name != "", nil)
	su.Name = name

	for !p.at(token.RBrace) {
		memberType, err := p.parseTypeSpecifier()
		if err != nil {
			return nil, "", err
		}
		for p.at(token.Star) {
			p.advance()
			memberType = p.reg.NewPointer(memberType)
		}
		memberName, err := p.expect(token.Ident)
		if err != nil {
			return nil, "", err
		}
		if err := su.AddMember(memberName.Lexeme, memberType, memberName.Loc); err != nil {
			return nil, "", diag.CodedError(diag.DuplicateMember, memberName.Loc, "%s", err.Error())
		}
		if _, err := p.expect(token.Semicolon); err != nil {
			return nil, "", err
		}
	}
	if _, err := p.expect(token.RBrace); err != nil {
		return nil, "", err
	}
	su.Complete()
	return su, name, nil
}

// StructOf looks up a previously declared struct type by tag name.
func (p *Parser) StructOf(name string) (*ctype.StructUnion, bool) {
	info, ok := p.decls["struct "+name]
	if !ok {
		return nil, false
	}
	su, ok := info.typ.(*ctype.StructUnion)
	return su, ok
}

// parseVarDecl parses `type-specifier '*'* name ('[' int? ']')? ('='
// initializer)? ';'`.
func (p *Parser) parseVarDecl(isStatic, isConst bool) (cast.Stmt, error) {
	loc := p.loc()
	baseType, err := p.parseTypeSpecifier()
	if err != nil {
		return nil, err
	}

	var declarators []cast.Declarator
	for {
		declType := baseType
		for p.at(token.Star) {
			p.advance()
			declType = p.reg.NewPointer(declType)
		}
		nameTok, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		if p.at(token.LBracket) {
			p.advance()
			length := -1
			if p.at(token.IntLiteral) {
				length = parseIntLiteral(p.advance().Lexeme)
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			declType = p.reg.NewArray(declType, length)
		}

		var initExpr cast.Expr
		if p.at(token.Assign) {
			p.advance()
			initExpr, err = p.parseInitializer(declType)
			if err != nil {
				return nil, err
			}
		}

		p.decls[nameTok.Lexeme] = declInfo{typ: declType, static: isStatic}
		declarators = append(declarators, cast.Declarator{Name: nameTok.Lexeme, Type: declType, Init: initExpr})

		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.Semicolon); err != nil {
		return nil, err
	}
	_ = isConst
	return &cast.Declaration{StmtBase: cast.StmtBase{Loc: loc}, Declarators: declarators}, nil
}

// parseInitializer parses an initializer expression, resolving any
// identifier leaves that refer to previously declared static storage.
func (p *Parser) parseInitializer(declType ctype.Type) (cast.Expr, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.resolveIdentifierStorage(e)
}

// resolveIdentifierStorage attaches a symbolRef (and, for arrays, an
// explicit decay cast per spec.md §4.3) to every Identifier leaf that
// names a previously declared variable.
func (p *Parser) resolveIdentifierStorage(e cast.Expr) (cast.Expr, error) {
	switch n := e.(type) {
	case *cast.Identifier:
		info, ok := p.decls[n.Name]
		if !ok {
			return e, nil
		}
		n.Symbol = &symbolRef{static: info.static}
		n.Typ = info.typ
		if arr, ok := info.typ.(*ctype.Array); ok {
			ptr := arr.ToPointer()
			return &cast.UnaryOp{
				ExprBase: cast.NewExprBase(ptr, cast.RValue, n.Location()),
				Op:       cast.UnaryCast,
				Operand:  n,
			}, nil
		}
		return n, nil
	case *cast.BinaryOp:
		l, err := p.resolveIdentifierStorage(n.Left)
		if err != nil {
			return nil, err
		}
		r, err := p.resolveIdentifierStorage(n.Right)
		if err != nil {
			return nil, err
		}
		n.Left, n.Right = l, r
		return n, nil
	case *cast.UnaryOp:
		operand, err := p.resolveIdentifierStorage(n.Operand)
		if err != nil {
			return nil, err
		}
		n.Operand = operand
		return n, nil
	case *cast.ConditionalOp:
		c, err := p.resolveIdentifierStorage(n.Cond)
		if err != nil {
			return nil, err
		}
		th, err := p.resolveIdentifierStorage(n.Then)
		if err != nil {
			return nil, err
		}
		el, err := p.resolveIdentifierStorage(n.Else)
		if err != nil {
			return nil, err
		}
		n.Cond, n.Then, n.Else = c, th, el
		return n, nil
	default:
		return e, nil
	}
}

// parseTypeSpecifier parses a minimal type-specifier sequence: the
// arithmetic keyword combinations canonicalize handles (e.g. `int`,
// `unsigned long`, `char`), plus `void` and an inline `struct { ... }`.
func (p *Parser) parseTypeSpecifier() (ctype.Type, error) {
	if p.at(token.KwVoid) {
		p.advance()
		return p.reg.Void(), nil
	}
	if p.at(token.KwStruct) {
		// `struct Tag var;` referencing an already-declared tag, vs.
		// `struct [Tag] { ... } var;` defining one inline.
		if p.peekAt(1).Kind == token.Ident && p.peekAt(2).Kind != token.LBrace {
			p.advance()
			tagTok, err := p.expect(token.Ident)
			if err != nil {
				return nil, err
			}
			su, ok := p.StructOf(tagTok.Lexeme)
			if !ok {
				return nil, fmt.Errorf("%s: unknown struct tag %q", tagTok.Loc, tagTok.Lexeme)
			}
			return su, nil
		}
		su, name, err := p.parseStructSpecifier()
		if err != nil {
			return nil, err
		}
		if name != "" {
			p.decls["struct "+name] = declInfo{typ: su, static: false}
		}
		return su, nil
	}

	var spec ctype.TagSpec
	sawAny := false
	for {
		switch p.cur().Kind {
		case token.KwConst, token.KwVolatile, token.KwRestrict:
			p.advance()
			continue
		case token.KwVoid:
			if sawAny {
				return p.finishArithmetic(spec)
			}
		case token.KwChar:
			spec.Char = true
		case token.KwShort:
			spec.Short = true
		case token.KwInt:
			spec.Int = true
		case token.KwLong:
			spec.LongCount++
		case token.KwFloat:
			spec.Float = true
		case token.KwDouble:
			spec.Double = true
		case token.KwSigned:
			spec.Signed = true
		case token.KwUnsigned:
			spec.Unsigned = true
		case token.KwBool:
			spec.Bool = true
		default:
			return p.finishArithmetic(spec)
		}
		sawAny = true
		p.advance()
	}
}

func (p *Parser) finishArithmetic(spec ctype.TagSpec) (ctype.Type, error) {
	t, err := p.reg.NewArithmetic(spec)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func parseIntLiteral(lexeme string) int {
	n := 0
	for _, r := range lexeme {
		n = n*10 + int(r-'0')
	}
	return n
}
