package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAnyScalars(t *testing.T) {
	v, err := FromAny(1.5)
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())
	assert.Equal(t, []float32{1.5}, v.Floats())

	v, err = FromAny(float32(0.25))
	require.NoError(t, err)
	assert.Equal(t, KindFloat, v.Kind())

	v, err = FromAny(7)
	require.NoError(t, err)
	assert.Equal(t, KindInt, v.Kind())
	assert.Equal(t, []int32{7}, v.Ints())

	v, err = FromAny(int64(-3))
	require.NoError(t, err)
	assert.Equal(t, []int32{-3}, v.Ints())
}

func TestFromAnyVectors(t *testing.T) {
	cases := []struct {
		in   any
		kind Kind
	}{
		{[]float64{1, 2}, KindVec2},
		{[]float64{1, 2, 3}, KindVec3},
		{[]float64{1, 2, 3, 4}, KindVec4},
		{[]float32{0.5, 0.5}, KindVec2},
		{[]int{1, 2}, KindIVec2},
		{[]int32{1, 2, 3}, KindIVec3},
		{[]int64{1, 2, 3, 4}, KindIVec4},
	}
	for _, c := range cases {
		v, err := FromAny(c.in)
		require.NoError(t, err, "input %v", c.in)
		assert.Equal(t, c.kind, v.Kind(), "input %v", c.in)
	}
}

func TestFromAnyUntypedSlice(t *testing.T) {
	v, err := FromAny([]any{1.0, 2.0, 3.0})
	require.NoError(t, err)
	assert.Equal(t, KindVec3, v.Kind())
	assert.Equal(t, []float32{1, 2, 3}, v.Floats())

	v, err = FromAny([]any{1, 2})
	require.NoError(t, err)
	assert.Equal(t, KindIVec2, v.Kind())

	// Mixed int/float classifies as a float vector.
	v, err = FromAny([]any{1, 2.5})
	require.NoError(t, err)
	assert.Equal(t, KindVec2, v.Kind())
	assert.Equal(t, []float32{1, 2.5}, v.Floats())
}

func TestFromAnyRejectsBadInput(t *testing.T) {
	var ive *InvalidValueError

	_, err := FromAny([]float64{1, 2, 3, 4, 5})
	require.ErrorAs(t, err, &ive)

	_, err = FromAny([]float64{1})
	require.ErrorAs(t, err, &ive)

	_, err = FromAny("not a number")
	require.ErrorAs(t, err, &ive)

	_, err = FromAny([]any{"a", "b"})
	require.ErrorAs(t, err, &ive)

	_, err = FromAny(nil)
	require.ErrorAs(t, err, &ive)
}

func TestFromAnyPassesValuesThrough(t *testing.T) {
	v, err := FromAny(Vec4(1, 2, 3, 4))
	require.NoError(t, err)
	assert.True(t, v.Equal(Vec4(1, 2, 3, 4)))
}

func TestFromMapSkipsInvalidEntries(t *testing.T) {
	got := FromMap(map[string]any{
		"time":  0.0,
		"color": []float64{1, 1, 1, 1},
		"bad":   []float64{1, 2, 3, 4, 5},
		"worse": struct{}{},
		"count": 3,
	})

	require.Len(t, got, 3)
	assert.True(t, got["time"].Equal(Float(0)))
	assert.True(t, got["color"].Equal(Vec4(1, 1, 1, 1)))
	assert.True(t, got["count"].Equal(Int(3)))
	_, ok := got["bad"]
	assert.False(t, ok)
}

func TestValueEqualByValue(t *testing.T) {
	assert.True(t, Vec2(1, 2).Equal(Vec2(1, 2)))
	assert.False(t, Vec2(1, 2).Equal(Vec2(2, 1)))
	assert.False(t, Float(1).Equal(Int(1)))
	assert.True(t, IVec3(1, 2, 3).Equal(IVec3(1, 2, 3)))
}
