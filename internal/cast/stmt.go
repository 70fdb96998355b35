package cast

import (
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/token"
)

// Stmt is the closed set of statement node kinds, matching spec.md
// §3.2: Declaration, IfStmt, JumpStmt, ReturnStmt, LabelStmt,
// EmptyStmt, CompoundStmt, FuncDef, TranslationUnit.
type Stmt interface {
	isStmt()
	Location() token.Location
}

// StmtBase carries the source location every statement node needs.
type StmtBase struct {
	Loc token.Location
}

func (b StmtBase) Location() token.Location { return b.Loc }

// Declaration introduces one or more names with an optional
// initializer each.
type Declaration struct {
	StmtBase
	Declarators []Declarator
}

func (*Declaration) isStmt() {}

// Declarator is one name introduced by a Declaration.
type Declarator struct {
	Name string
	Type ctype.Type
	Init Expr // nil if uninitialized
}

// JumpKind enumerates the unconditional control transfers a JumpStmt
// can perform.
type JumpKind uint8

const (
	JumpGoto JumpKind = iota
	JumpBreak
	JumpContinue
)

// JumpStmt is goto/break/continue.
type JumpStmt struct {
	StmtBase
	Kind  JumpKind
	Label string // set when Kind == JumpGoto
}

func (*JumpStmt) isStmt() {}

// IfStmt is `if (Cond) Then [else Else]`.
type IfStmt struct {
	StmtBase
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

func (*IfStmt) isStmt() {}

// ReturnStmt is `return [Value];`.
type ReturnStmt struct {
	StmtBase
	Value Expr // nil for a bare `return;`
}

func (*ReturnStmt) isStmt() {}

// LabelStmt attaches Name as a goto target to Stmt.
type LabelStmt struct {
	StmtBase
	Name string
	Stmt Stmt
}

func (*LabelStmt) isStmt() {}

// EmptyStmt is a bare `;`.
type EmptyStmt struct {
	StmtBase
}

func (*EmptyStmt) isStmt() {}

// CompoundStmt is `{ ... }`, a sequence of statements sharing a scope.
type CompoundStmt struct {
	StmtBase
	Stmts []Stmt
}

func (*CompoundStmt) isStmt() {}

// FuncDef is a function definition: signature plus body.
type FuncDef struct {
	StmtBase
	Name   string
	Type   *ctype.Func
	Params []string // parameter names, parallel to Type.Params
	Body   *CompoundStmt
}

func (*FuncDef) isStmt() {}

// TranslationUnit is the root node: the ordered sequence of top-level
// declarations and function definitions in one source file.
type TranslationUnit struct {
	StmtBase
	Decls []Stmt
}

func (*TranslationUnit) isStmt() {}
