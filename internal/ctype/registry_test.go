package ctype

import (
	"testing"

	"github.com/HugoDaniel/gocc/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmeticCanonicalization(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		spec TagSpec
		want Kind
	}{
		{"bare int", TagSpec{Int: true}, Int},
		{"bare signed", TagSpec{Signed: true}, Int},
		{"bare unsigned defaults to unsigned int", TagSpec{Unsigned: true}, UnsignedInt},
		{"short alone implies short int signed", TagSpec{Short: true}, Short},
		{"long long collapses", TagSpec{LongCount: 2}, LongLong},
		{"unsigned long long", TagSpec{Unsigned: true, LongCount: 2}, UnsignedLongLong},
		{"plain char is separate from signed/unsigned char", TagSpec{Char: true}, Char},
		{"signed char", TagSpec{Char: true, Signed: true}, SignedChar},
		{"double", TagSpec{Double: true}, Double},
		{"float", TagSpec{Float: true}, Float},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := r.NewArithmetic(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.Kind())
		})
	}
}

func TestArithmeticInvalidSpec(t *testing.T) {
	r := NewRegistry()

	_, err := r.NewArithmetic(TagSpec{Signed: true, Unsigned: true})
	assert.Error(t, err)

	_, err = r.NewArithmetic(TagSpec{Float: true, Int: true})
	assert.Error(t, err)

	_, err = r.NewArithmetic(TagSpec{Bool: true, Unsigned: true})
	assert.Error(t, err)
}

func TestArithmeticInterning(t *testing.T) {
	r := NewRegistry()

	a, err := r.NewArithmetic(TagSpec{Int: true})
	require.NoError(t, err)
	b, err := r.NewArithmetic(TagSpec{Signed: true, Int: true})
	require.NoError(t, err)

	assert.Same(t, a, b, "two independent constructions of int must intern to the same handle")
}

func TestPointerInterning(t *testing.T) {
	r := NewRegistry()
	intType := r.IntType()

	p1 := r.NewPointer(intType)
	p2 := r.NewPointer(intType)
	assert.Same(t, p1, p2, "two independent constructions of int* must return identical handles")
}

func TestReflexiveEqualityAndCompatibility(t *testing.T) {
	r := NewRegistry()
	types := []Type{
		r.Void(),
		r.IntType(),
		r.NewPointer(r.IntType()),
		r.NewArray(r.IntType(), 4),
	}
	for _, typ := range types {
		assert.True(t, typ.Equal(typ), "%s must equal itself", typ)
		assert.True(t, typ.Compatible(typ), "%s must be compatible with itself", typ)
	}
}

func TestArrayPointerDecayNotEquality(t *testing.T) {
	r := NewRegistry()
	arr := r.NewArray(r.IntType(), 4)
	ptr := r.NewPointer(r.IntType())

	assert.NotNil(t, arr.ToPointer(), "array must decay to a pointer")
	assert.False(t, arr.Equal(ptr), "array must never equal its decayed pointer")
	assert.True(t, arr.ToPointer().Equal(ptr), "decayed array pointer must equal int*")
}

func TestPointerCompatibilityRequiresPointeeCompatibility(t *testing.T) {
	r := NewRegistry()
	intPtr := r.NewPointer(r.IntType())

	// Two distinct struct types are each compatible only with themselves
	// (identity comparison), so pointers to them must not be compatible.
	sA := r.NewStructUnion(true, true, nil)
	sB := r.NewStructUnion(true, true, nil)
	ptrA := r.NewPointer(sA)
	ptrB := r.NewPointer(sB)

	assert.False(t, ptrA.Compatible(ptrB))
	assert.True(t, intPtr.Compatible(r.NewPointer(r.IntType())))
}

func TestAlignTo(t *testing.T) {
	assert.Equal(t, 8, AlignTo(5, 8))
	assert.Equal(t, 8, AlignTo(8, 8))
	assert.Equal(t, 0, AlignTo(0, 8))
	assert.Equal(t, -8, AlignTo(-5, 8))

	// Idempotence: align(alignTo(x, a), a) == alignTo(x, a).
	for _, x := range []int{-17, -8, -1, 0, 1, 7, 8, 9, 100} {
		aligned := AlignTo(x, 8)
		assert.Equal(t, aligned, AlignTo(aligned, 8))
		assert.GreaterOrEqual(t, aligned, x)
	}
}

func TestArrayIncompleteUntilLengthSet(t *testing.T) {
	r := NewRegistry()
	arr := r.NewArray(r.IntType(), -1)
	assert.False(t, arr.IsComplete())

	arr.SetLen(10)
	assert.True(t, arr.IsComplete())
	assert.Equal(t, 40, arr.Width())
}

func TestStructLayout(t *testing.T) {
	// struct S { char c; int i; }; width == 8, align == 4, offset(i) == 4.
	r := NewRegistry()
	su := r.NewStructUnion(true, false, nil)
	require.NoError(t, su.AddMember("c", r.MustArithmetic(TagSpec{Char: true}), token.Location{}))
	require.NoError(t, su.AddMember("i", r.IntType(), token.Location{}))
	su.Complete()

	assert.Equal(t, 8, su.Width())
	assert.Equal(t, 4, su.Align())

	member, ok := su.GetMember("i")
	require.True(t, ok)
	assert.Equal(t, 4, member.Offset)
}

func TestUnionLayout(t *testing.T) {
	r := NewRegistry()
	su := r.NewStructUnion(false, false, nil)
	require.NoError(t, su.AddMember("c", r.MustArithmetic(TagSpec{Char: true}), token.Location{}))
	require.NoError(t, su.AddMember("i", r.IntType(), token.Location{}))
	su.Complete()

	assert.Equal(t, 4, su.Width())
	assert.Equal(t, 4, su.Align())

	c, _ := su.GetMember("c")
	i, _ := su.GetMember("i")
	assert.Equal(t, 0, c.Offset)
	assert.Equal(t, 0, i.Offset)
}

func TestDuplicateMemberRejected(t *testing.T) {
	r := NewRegistry()
	su := r.NewStructUnion(true, false, nil)
	require.NoError(t, su.AddMember("x", r.IntType(), token.Location{}))
	err := su.AddMember("x", r.IntType(), token.Location{})
	assert.Error(t, err)
}

func TestAnonymousUnionMerge(t *testing.T) {
	r := NewRegistry()
	outer := r.NewStructUnion(true, false, nil)
	require.NoError(t, outer.AddMember("tag", r.IntType(), token.Location{}))

	anon := r.NewStructUnion(false, false, nil)
	require.NoError(t, anon.AddMember("asInt", r.IntType(), token.Location{}))
	require.NoError(t, anon.AddMember("asFloat", r.MustArithmetic(TagSpec{Float: true}), token.Location{}))
	anon.Complete()

	require.NoError(t, outer.AddMember("", anon, token.Location{}))
	outer.Complete()

	anonMember, ok := outer.GetMember("")
	require.True(t, ok)

	require.NoError(t, outer.MergeAnonymous(anon, anonMember.Offset))

	asInt, ok := outer.GetMember("asInt")
	require.True(t, ok)
	assert.Equal(t, anonMember.Offset, asInt.Offset)
}

func TestUsualArithmeticConversions(t *testing.T) {
	r := NewRegistry()
	intT := r.IntType()
	longT := r.MustArithmetic(TagSpec{LongCount: 1})
	uintT := r.MustArithmetic(TagSpec{Unsigned: true})
	doubleT := r.MustArithmetic(TagSpec{Double: true})
	charT := r.MustArithmetic(TagSpec{Char: true})

	assert.Equal(t, Long, UsualArithmeticConversion(intT, longT).Kind())
	assert.Equal(t, Long, UsualArithmeticConversion(longT, intT).Kind())
	assert.Equal(t, UnsignedInt, UsualArithmeticConversion(intT, uintT).Kind())
	assert.Equal(t, Double, UsualArithmeticConversion(intT, doubleT).Kind())
	// char promotes to int before conversion.
	assert.Equal(t, Int, UsualArithmeticConversion(charT, charT).Kind())
}

