// Package token defines the token stream shape the preprocessor hands
// the parser: kinds, lexemes, and source locations.
//
// The preprocessor itself is an external collaborator (see spec §6);
// this package only fixes the interface the rest of the compiler
// depends on.
package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind uint8

const (
	Invalid Kind = iota

	EOF

	Ident
	IntLiteral
	FloatLiteral
	CharLiteral
	StringLiteral

	// Keywords
	KwAuto
	KwBreak
	KwCase
	KwChar
	KwConst
	KwContinue
	KwDefault
	KwDo
	KwDouble
	KwElse
	KwEnum
	KwExtern
	KwFloat
	KwFor
	KwGoto
	KwIf
	KwInline
	KwInt
	KwLong
	KwRegister
	KwRestrict
	KwReturn
	KwShort
	KwSigned
	KwSizeof
	KwStatic
	KwStruct
	KwSwitch
	KwTypedef
	KwUnion
	KwUnsigned
	KwVoid
	KwVolatile
	KwWhile
	KwBool
	KwComplex
	KwAtomic
	KwNoreturn
	KwThreadLocal

	// Punctuators
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
	Colon
	Question
	Dot
	Arrow
	Ellipsis

	Assign
	Plus
	Minus
	Star
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	Shl
	Shr

	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	AndAnd
	OrOr

	PlusPlus
	MinusMinus

	PlusAssign
	MinusAssign
	StarAssign
	SlashAssign
	PercentAssign
	AmpAssign
	PipeAssign
	CaretAssign
	ShlAssign
	ShrAssign
)

var keywords = map[string]Kind{
	"auto": KwAuto, "break": KwBreak, "case": KwCase, "char": KwChar,
	"const": KwConst, "continue": KwContinue, "default": KwDefault,
	"do": KwDo, "double": KwDouble, "else": KwElse, "enum": KwEnum,
	"extern": KwExtern, "float": KwFloat, "for": KwFor, "goto": KwGoto,
	"if": KwIf, "inline": KwInline, "int": KwInt, "long": KwLong,
	"register": KwRegister, "restrict": KwRestrict, "return": KwReturn,
	"short": KwShort, "signed": KwSigned, "sizeof": KwSizeof,
	"static": KwStatic, "struct": KwStruct, "switch": KwSwitch,
	"typedef": KwTypedef, "union": KwUnion, "unsigned": KwUnsigned,
	"void": KwVoid, "volatile": KwVolatile, "while": KwWhile,
	"_Bool": KwBool, "_Complex": KwComplex, "_Atomic": KwAtomic,
	"_Noreturn": KwNoreturn, "_Thread_local": KwThreadLocal,
}

// Lookup returns the keyword kind for name, or (Ident, false) if name
// is an ordinary identifier.
func Lookup(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}

// IsKeyword reports whether k is one of the reserved C keywords.
func (k Kind) IsKeyword() bool {
	return k >= KwAuto && k <= KwThreadLocal
}

// Location is a position in a translation unit's source text.
type Location struct {
	File string
	Line int
	Col  int
}

func (l Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// IsValid reports whether l carries real source coordinates.
func (l Location) IsValid() bool {
	return l.Line > 0
}

// Token is a single lexical unit delivered by the preprocessor.
type Token struct {
	Kind   Kind
	Lexeme string
	Loc    Location
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Lexeme, t.Loc)
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

var kindNames = map[Kind]string{
	Invalid: "INVALID", EOF: "EOF", Ident: "IDENT",
	IntLiteral: "INT_LITERAL", FloatLiteral: "FLOAT_LITERAL",
	CharLiteral: "CHAR_LITERAL", StringLiteral: "STRING_LITERAL",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	LBracket: "[", RBracket: "]", Semicolon: ";", Comma: ",",
	Colon: ":", Question: "?", Dot: ".", Arrow: "->", Ellipsis: "...",
	Assign: "=", Plus: "+", Minus: "-", Star: "*", Slash: "/",
	Percent: "%", Amp: "&", Pipe: "|", Caret: "^", Tilde: "~",
	Bang: "!", Shl: "<<", Shr: ">>", Eq: "==", Ne: "!=",
	Lt: "<", Le: "<=", Gt: ">", Ge: ">=", AndAnd: "&&", OrOr: "||",
	PlusPlus: "++", MinusMinus: "--",
	PlusAssign: "+=", MinusAssign: "-=", StarAssign: "*=",
	SlashAssign: "/=", PercentAssign: "%=", AmpAssign: "&=",
	PipeAssign: "|=", CaretAssign: "^=", ShlAssign: "<<=", ShrAssign: ">>=",
}

func init() {
	for name, k := range keywords {
		kindNames[k] = name
	}
}
