package ctype

import (
	"github.com/HugoDaniel/gocc/internal/symtab"
	"github.com/HugoDaniel/gocc/internal/token"
)

// StructUnion is a struct or union type. It starts incomplete and is
// completed by the parser after members are added, matching
// original_source/type.h's StructUnionType (default incomplete,
// completed at the closing brace).
//
// Each declared struct/union gets a fresh identity (never interned),
// per spec.md §4.1.
type StructUnion struct {
	IsStruct bool
	HasTag   bool
	Name     string // "" for an untagged aggregate

	members *symtab.Scope // member name -> *symtab.Symbol, offsets computed at completion

	width    int
	align    int
	complete bool
	qual     Qualifiers
}

func (s *StructUnion) String() string {
	kw := "union"
	if s.IsStruct {
		kw = "struct"
	}
	if s.Name != "" {
		return kw + " " + s.Name
	}
	return kw + " <anonymous>"
}

// Equal is identity: two StructUnion types are the same Go value or
// not equal at all — aggregates are never structurally compared.
func (s *StructUnion) Equal(other Type) bool {
	o, ok := other.(*StructUnion)
	return ok && o == s
}

// Compatible: two struct/union types are compatible iff they are the
// same type object (name equivalence within a translation unit),
// spec.md §4.1.
func (s *StructUnion) Compatible(other Type) bool {
	o, ok := other.(*StructUnion)
	return ok && o == s
}

func (s *StructUnion) Width() int { return s.width }

func (s *StructUnion) Align() int { return s.align }

func (s *StructUnion) IsComplete() bool { return s.complete }

func (s *StructUnion) Qual() Qualifiers { return s.qual }

func (s *StructUnion) SetQual(q Qualifiers) { s.qual = q }

func (s *StructUnion) ToPointer() *Pointer { return nil }

func (s *StructUnion) isType() {}

// MemberScope exposes the member-name scope directly, matching
// original_source/type.h's StructUnionType::MemberMap.
func (s *StructUnion) MemberScope() *symtab.Scope { return s.members }

// AddMember appends a member in declaration order, matching
// original_source/type.h's StructUnionType::AddMember. The
// struct/union must still be incomplete; call Complete afterward to
// compute offsets.
func (s *StructUnion) AddMember(name string, memberType Type, loc token.Location) error {
	return s.members.Declare(&symtab.Symbol{
		Name: name,
		Kind: symtab.KindObject,
		Type: memberType,
		Loc:  loc,
	})
}

// GetMember looks up a member by name, matching
// original_source/type.h's StructUnionType::GetMember.
func (s *StructUnion) GetMember(name string) (*symtab.Symbol, bool) {
	return s.members.LookupLocal(name)
}

// MergeAnonymous promotes anon's members into s's member scope with
// offsets adjusted by anonBaseOffset (anon's own offset within s),
// per spec.md §4.1's "Anonymous struct/union merging". Call before
// Complete if the anonymous member itself still needs an offset
// computed by the enclosing walk; in practice the parser adds the
// anonymous member to s first (so Complete assigns it a real offset),
// then merges once that offset is known.
func (s *StructUnion) MergeAnonymous(anon *StructUnion, anonBaseOffset int) error {
	return s.members.MergeAnonymous(anon.members, anonBaseOffset)
}

// Complete walks members in declaration order, assigns offsets, and
// computes the aggregate's width/alignment, per spec.md §4.1:
//
//	"Walk members in declaration order; for each member, advance
//	offset to alignTo(offset, member.align); assign that as the
//	member's offset; advance offset by member.width. After all
//	members, aggregate width is alignTo(offset, aggregateAlign) where
//	aggregateAlign is the max of member aligns. Unions instead set
//	every member offset to 0, width = max member width rounded up to
//	max align."
func (s *StructUnion) Complete() {
	offset := 0
	maxAlign := 1
	for _, sym := range s.members.OrderedMembers() {
		memberAlign := sym.Type.Align()
		if memberAlign > maxAlign {
			maxAlign = memberAlign
		}
		if s.IsStruct {
			offset = AlignTo(offset, memberAlign)
			sym.Offset = offset
			offset += sym.Type.Width()
		} else {
			sym.Offset = 0
			if sym.Type.Width() > offset {
				offset = sym.Type.Width()
			}
		}
	}
	if maxAlign == 0 {
		maxAlign = 1
	}
	s.align = maxAlign
	s.width = AlignTo(offset, maxAlign)
	s.complete = true
}
