// Package cparse is a small hand-written recursive-descent reader that
// turns a token stream into internal/cast nodes backed by
// internal/ctype, enough to drive the core end to end — it is
// intentionally not a generated or general-purpose C parser (spec.md
// places grammar/parsing out of the core's scope; a real build would
// sit this behind an actual preprocessor/lexer per §6). Where the
// teacher has a hand-written internal/lexer, this package's lexer.go
// mirrors that shape (a Lexer struct walking a byte slice, producing
// token.Token values) scaled down to exactly the token classes the
// parser below consumes.
package cparse

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/HugoDaniel/gocc/internal/token"
)

// Lexer scans source text into a token.Token slice.
type Lexer struct {
	src  []rune
	pos  int
	line int
	col  int
	file string
}

// NewLexer creates a lexer over src, attributing positions to file
// (used only for diagnostics).
func NewLexer(src, file string) *Lexer {
	return &Lexer{src: []rune(src), line: 1, col: 1, file: file}
}

// Tokenize scans the entire input and returns its tokens, terminated
// by an EOF token.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		t := l.next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			log.Debug("tokenized", zap.String("file", l.file), zap.Int("tokens", len(toks)))
			return toks
		}
	}
}

func (l *Lexer) peek() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekAt(off int) rune {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) advance() rune {
	r := l.src[l.pos]
	l.pos++
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

func (l *Lexer) loc() token.Location {
	return token.Location{File: l.file, Line: l.line, Col: l.col}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		r := l.peek()
		if unicode.IsSpace(r) {
			l.advance()
			continue
		}
		if r == '/' && l.peekAt(1) == '/' {
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
			continue
		}
		if r == '/' && l.peekAt(1) == '*' {
			l.advance()
			l.advance()
			for l.pos < len(l.src) && !(l.peek() == '*' && l.peekAt(1) == '/') {
				l.advance()
			}
			if l.pos < len(l.src) {
				l.advance()
				l.advance()
			}
			continue
		}
		return
	}
}

func (l *Lexer) next() token.Token {
	l.skipSpaceAndComments()
	loc := l.loc()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Loc: loc}
	}

	r := l.peek()
	switch {
	case unicode.IsLetter(r) || r == '_':
		return l.scanIdent(loc)
	case unicode.IsDigit(r):
		return l.scanNumber(loc)
	case r == '"':
		return l.scanString(loc)
	default:
		return l.scanPunct(loc)
	}
}

func (l *Lexer) scanIdent(loc token.Location) token.Token {
	var sb strings.Builder
	for l.pos < len(l.src) && (unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_') {
		sb.WriteRune(l.advance())
	}
	name := sb.String()
	if kind, ok := token.Lookup(name); ok {
		return token.Token{Kind: kind, Lexeme: name, Loc: loc}
	}
	return token.Token{Kind: token.Ident, Lexeme: name, Loc: loc}
}

func (l *Lexer) scanNumber(loc token.Location) token.Token {
	var sb strings.Builder
	isFloat := false
	for l.pos < len(l.src) && (unicode.IsDigit(l.peek()) || l.peek() == '.') {
		if l.peek() == '.' {
			isFloat = true
		}
		sb.WriteRune(l.advance())
	}
	kind := token.IntLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	return token.Token{Kind: kind, Lexeme: sb.String(), Loc: loc}
}

func (l *Lexer) scanString(loc token.Location) token.Token {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) && l.peek() != '"' {
		r := l.advance()
		if r == '\\' && l.pos < len(l.src) {
			sb.WriteRune(l.advance())
			continue
		}
		sb.WriteRune(r)
	}
	if l.pos < len(l.src) {
		l.advance() // closing quote
	}
	return token.Token{Kind: token.StringLiteral, Lexeme: sb.String(), Loc: loc}
}

func (l *Lexer) scanPunct(loc token.Location) token.Token {
	two := func(second rune, kind token.Kind, single token.Kind) token.Token {
		l.advance()
		if l.peek() == second {
			l.advance()
			return token.Token{Kind: kind, Loc: loc}
		}
		return token.Token{Kind: single, Loc: loc}
	}

	switch l.peek() {
	case '(':
		l.advance()
		return token.Token{Kind: token.LParen, Loc: loc}
	case ')':
		l.advance()
		return token.Token{Kind: token.RParen, Loc: loc}
	case '{':
		l.advance()
		return token.Token{Kind: token.LBrace, Loc: loc}
	case '}':
		l.advance()
		return token.Token{Kind: token.RBrace, Loc: loc}
	case '[':
		l.advance()
		return token.Token{Kind: token.LBracket, Loc: loc}
	case ']':
		l.advance()
		return token.Token{Kind: token.RBracket, Loc: loc}
	case ';':
		l.advance()
		return token.Token{Kind: token.Semicolon, Loc: loc}
	case ',':
		l.advance()
		return token.Token{Kind: token.Comma, Loc: loc}
	case ':':
		l.advance()
		return token.Token{Kind: token.Colon, Loc: loc}
	case '?':
		l.advance()
		return token.Token{Kind: token.Question, Loc: loc}
	case '.':
		l.advance()
		return token.Token{Kind: token.Dot, Loc: loc}
	case '~':
		l.advance()
		return token.Token{Kind: token.Tilde, Loc: loc}
	case '+':
		l.advance()
		return token.Token{Kind: token.Plus, Loc: loc}
	case '-':
		if l.peekAt(1) == '>' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Arrow, Loc: loc}
		}
		l.advance()
		return token.Token{Kind: token.Minus, Loc: loc}
	case '*':
		l.advance()
		return token.Token{Kind: token.Star, Loc: loc}
	case '/':
		l.advance()
		return token.Token{Kind: token.Slash, Loc: loc}
	case '%':
		l.advance()
		return token.Token{Kind: token.Percent, Loc: loc}
	case '^':
		l.advance()
		return token.Token{Kind: token.Caret, Loc: loc}
	case '=':
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Eq, Loc: loc}
		}
		l.advance()
		return token.Token{Kind: token.Assign, Loc: loc}
	case '!':
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Ne, Loc: loc}
		}
		l.advance()
		return token.Token{Kind: token.Bang, Loc: loc}
	case '<':
		if l.peekAt(1) == '<' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Shl, Loc: loc}
		}
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Le, Loc: loc}
		}
		l.advance()
		return token.Token{Kind: token.Lt, Loc: loc}
	case '>':
		if l.peekAt(1) == '>' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Shr, Loc: loc}
		}
		if l.peekAt(1) == '=' {
			l.advance()
			l.advance()
			return token.Token{Kind: token.Ge, Loc: loc}
		}
		l.advance()
		return token.Token{Kind: token.Gt, Loc: loc}
	case '&':
		return two('&', token.AndAnd, token.Amp)
	case '|':
		return two('|', token.OrOr, token.Pipe)
	default:
		l.advance()
		return token.Token{Kind: token.Invalid, Lexeme: string(r2(l)), Loc: loc}
	}
}

func r2(l *Lexer) rune {
	if l.pos > 0 {
		return l.src[l.pos-1]
	}
	return 0
}
