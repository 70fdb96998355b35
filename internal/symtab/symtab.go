// Package symtab is the Symbol & Scope Model: lexical scopes mapping
// identifiers to declarations, used both for ordinary block scoping
// and — via a Scope embedded in a struct/union type — for aggregate
// member lookup (spec.md §2 item 2).
//
// This package intentionally does not import internal/ctype: the
// dependency runs the other way (a struct/union Type owns a Scope),
// matching original_source/type.h including "scope.h", never the
// reverse. Symbol.Type is declared against a minimal structural
// TypeHandle interface that ctype.Type satisfies automatically.
package symtab

import (
	"fmt"

	"github.com/HugoDaniel/gocc/internal/token"
)

// TypeHandle is the minimal surface Symbol needs from a type; ctype.Type
// satisfies it structurally without symtab importing ctype.
type TypeHandle interface {
	String() string
	Width() int
	Align() int
}

// StorageClass canonicalizes the storage-class specifiers from
// original_source/type.h's S_TYPEDEF/S_EXTERN/S_STATIC/S_AUTO/
// S_REGISTER bitset into a single enum (a declaration names at most
// one storage class in valid C).
type StorageClass uint8

const (
	Auto StorageClass = iota
	Static
	Extern
	Register
	Typedef
)

func (s StorageClass) String() string {
	switch s {
	case Static:
		return "static"
	case Extern:
		return "extern"
	case Register:
		return "register"
	case Typedef:
		return "typedef"
	default:
		return "auto"
	}
}

// Kind distinguishes what a Symbol names.
type Kind uint8

const (
	KindObject Kind = iota
	KindFunction
	KindEnumerator
	KindTypedefName
	KindTag // struct/union/enum tag
)

// Symbol is a declared name within a Scope.
type Symbol struct {
	Name    string
	Kind    Kind
	Type    TypeHandle
	Storage StorageClass
	Loc     token.Location

	// Offset is the member's byte offset when this Symbol is an
	// aggregate member; meaningless otherwise.
	Offset int

	// EnumValue holds the constant value when Kind == KindEnumerator.
	EnumValue int64
}

// Scope is one lexical scope, parent-linked, matching the teacher's
// ast.Scope (parent pointer, children, name->member map).
type Scope struct {
	Parent   *Scope
	Children []*Scope
	Members  map[string]*Symbol

	// Order preserves declaration order, needed for aggregate layout
	// (spec.md §4.1's "walk members in declaration order").
	Order []string
}

// New creates a new scope with the given parent (nil for the
// translation-unit's file scope).
func New(parent *Scope) *Scope {
	s := &Scope{Parent: parent, Members: make(map[string]*Symbol)}
	if parent != nil {
		parent.Children = append(parent.Children, s)
	}
	return s
}

// Declare adds sym to the scope. Redeclaring a name already present in
// THIS scope (not an enclosing one) is a DuplicateMember error; C
// allows shadowing across scopes, so parents are not checked.
func (s *Scope) Declare(sym *Symbol) error {
	if _, exists := s.Members[sym.Name]; exists {
		return fmt.Errorf("duplicate member %q", sym.Name)
	}
	s.Members[sym.Name] = sym
	s.Order = append(s.Order, sym.Name)
	return nil
}

// Lookup searches this scope and its ancestors for name.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if sym, ok := sc.Members[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal searches only this scope, not its ancestors — used for
// aggregate member lookup, where member names never leak to an
// enclosing block scope.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.Members[name]
	return sym, ok
}

// OrderedMembers returns the scope's members in declaration order.
func (s *Scope) OrderedMembers() []*Symbol {
	out := make([]*Symbol, 0, len(s.Order))
	for _, name := range s.Order {
		out = append(out, s.Members[name])
	}
	return out
}

// MergeAnonymous promotes every member of anon into s, adjusting each
// promoted member's Offset by baseOffset (the anonymous member's own
// offset within s's aggregate) — spec.md §4.1's "Anonymous
// struct/union merging". A name collision is a DuplicateMember error,
// reported for the first colliding name encountered.
func (s *Scope) MergeAnonymous(anon *Scope, baseOffset int) error {
	for _, name := range anon.Order {
		member := anon.Members[name]
		promoted := &Symbol{
			Name:    member.Name,
			Kind:    member.Kind,
			Type:    member.Type,
			Storage: member.Storage,
			Loc:     member.Loc,
			Offset:  member.Offset + baseOffset,
		}
		if err := s.Declare(promoted); err != nil {
			return err
		}
	}
	return nil
}
