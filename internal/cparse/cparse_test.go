package cparse

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoDaniel/gocc/internal/cast"
	"github.com/HugoDaniel/gocc/internal/ceval"
	"github.com/HugoDaniel/gocc/internal/ctype"
	"github.com/HugoDaniel/gocc/internal/diag"
	"github.com/HugoDaniel/gocc/internal/token"
)

func parseUnit(t *testing.T, src string) (*cast.TranslationUnit, *ctype.Registry) {
	t.Helper()
	reg := ctype.NewRegistry()
	toks := NewLexer(src, "<test>").Tokenize()
	p := New(toks, reg)
	tu, err := p.ParseTranslationUnit()
	require.NoError(t, err)
	return tu, reg
}

// Scenario 1 (spec.md §8): `enum { A = 3, B = A + 2 }` folds B to 5.
func TestEnumEnumeratorReferencesEarlierEnumerator(t *testing.T) {
	// The top-level Declaration node doesn't itself carry enum member
	// values, so the parser's own symbol table is inspected directly.
	reg := ctype.NewRegistry()
	toks := NewLexer("enum { A = 3, B = A + 2 };", "<test>").Tokenize()
	parser := New(toks, reg)
	_, err := parser.ParseTranslationUnit()
	require.NoError(t, err)

	info, ok := parser.decls["B"]
	require.True(t, ok)
	enumType, ok := info.typ.(*ctype.Enum)
	require.True(t, ok)
	b, ok := enumType.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, int64(5), b.Value)
}

// Scenario 2: `static int a[10]; int *p = a + 3;` folds p's
// initializer to (label="a", offset=12).
func TestPointerInitializerFromArrayPlusOffsetScalesByElementWidth(t *testing.T) {
	tu, _ := parseUnit(t, "static int a[10]; int *p = a + 3;")
	require.Len(t, tu.Decls, 2)

	decl, ok := tu.Decls[1].(*cast.Declaration)
	require.True(t, ok)
	require.Len(t, decl.Declarators, 1)
	init := decl.Declarators[0].Init
	require.NotNil(t, init)

	addr, err := ceval.EvalAddr(init)
	require.NoError(t, err)
	assert.Equal(t, "a", addr.Label)
	assert.True(t, addr.HasLabel)
	assert.Equal(t, int64(12), addr.Offset)
}

// Scenario 3: `struct S { char c; int i; }` lays out width=8, align=4,
// offset(i)=4.
func TestStructLayoutMatchesAlignmentRules(t *testing.T) {
	reg := ctype.NewRegistry()
	toks := NewLexer("struct S { char c; int i; };", "<test>").Tokenize()
	p := New(toks, reg)
	tu, err := p.ParseTranslationUnit()
	require.NoError(t, err)
	require.Len(t, tu.Decls, 1)

	su, ok := p.StructOf("S")
	require.True(t, ok)
	assert.Equal(t, 8, su.Width())
	assert.Equal(t, 4, su.Align())

	member, ok := su.GetMember("i")
	require.True(t, ok)
	assert.Equal(t, 4, member.Offset)
}

// Scenario 4: `static const char *s = "hi";` folds s's initializer to
// the string literal's pool label at offset 0.
func TestStringLiteralInitializerYieldsPoolLabel(t *testing.T) {
	tu, _ := parseUnit(t, `static const char *s = "hi";`)
	require.Len(t, tu.Decls, 1)

	decl := tu.Decls[0].(*cast.Declaration)
	require.Len(t, decl.Declarators, 1)
	init := decl.Declarators[0].Init
	require.NotNil(t, init)

	addr, err := ceval.EvalAddr(init)
	require.NoError(t, err)
	assert.True(t, addr.HasLabel)
	assert.Equal(t, int64(0), addr.Offset)
}

// Scenario 5: `1 ? 2 : (1/0)` folds to 2 without the division-by-zero
// in the untaken Else branch ever being evaluated.
func TestTernaryDiscardsUntakenBranch(t *testing.T) {
	reg := ctype.NewRegistry()
	e, err := ParseExpr("1 ? 2 : (1/0)", reg)
	require.NoError(t, err)

	v, err := ceval.New(ceval.Int32).EvalInt(e)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

// Scenario 6: `1 << 40` on a 32-bit int target fails with
// ConstantArithmetic.
func TestShiftOutOfRangeOnTargetWidthIsConstantArithmeticError(t *testing.T) {
	tu, _ := parseUnit(t, "int x = 1 << 40;")
	decl := tu.Decls[0].(*cast.Declaration)
	init := decl.Declarators[0].Init
	require.NotNil(t, init)

	_, err := ceval.New(ceval.Int32).EvalInt(init)
	require.Error(t, err)
	code, ok := diag.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.ConstantArithmetic, code)
}

func TestLexerTokenizesPunctuatorsAndKeywords(t *testing.T) {
	toks := NewLexer("static int *p = a + 3;", "<test>").Tokenize()
	var kinds []string
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind.String())
	}
	assert.Contains(t, kinds, "static")
	assert.Contains(t, kinds, "*")
	assert.Contains(t, kinds, "+")
	assert.Contains(t, kinds, "EOF")
}

// TestLexerTokenKindSequenceMatchesExactly diffs the full token-kind
// sequence structurally rather than spot-checking individual kinds,
// catching any spurious or missing token go-cmp's way.
func TestLexerTokenKindSequenceMatchesExactly(t *testing.T) {
	toks := NewLexer("int *p;", "<test>").Tokenize()
	got := make([]token.Kind, len(toks))
	for i, tk := range toks {
		got[i] = tk.Kind
	}
	want := []token.Kind{token.KwInt, token.Star, token.Ident, token.Semicolon, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token kind sequence mismatch (-want +got):\n%s", diff)
	}
}
