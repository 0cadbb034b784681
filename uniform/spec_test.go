package uniform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpec(t *testing.T) {
	got, err := ParseSpec("time:f:0.0;color:v4:1.0,1.0,1.0,1.0")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got["time"].Equal(Float(0)))
	assert.True(t, got["color"].Equal(Vec4(1, 1, 1, 1)))
}

func TestParseSpecAllTags(t *testing.T) {
	got, err := ParseSpec("a:f:1.5;b:v2:1,2;c:v3:1,2,3;d:v4:1,2,3,4;e:i:7;f:i2:1,2;g:i3:1,2,3;h:i4:1,2,3,4")
	require.NoError(t, err)
	assert.True(t, got["a"].Equal(Float(1.5)))
	assert.True(t, got["b"].Equal(Vec2(1, 2)))
	assert.True(t, got["c"].Equal(Vec3(1, 2, 3)))
	assert.True(t, got["d"].Equal(Vec4(1, 2, 3, 4)))
	assert.True(t, got["e"].Equal(Int(7)))
	assert.True(t, got["f"].Equal(IVec2(1, 2)))
	assert.True(t, got["g"].Equal(IVec3(1, 2, 3)))
	assert.True(t, got["h"].Equal(IVec4(1, 2, 3, 4)))
}

func TestParseSpecEmpty(t *testing.T) {
	got, err := ParseSpec("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseSpecMalformedSegmentFailsWholeParse(t *testing.T) {
	cases := []string{
		"time:f:0.0;bad",
		"time:f",
		":f:1.0",
		"time:x:1.0",
		"v:v2:1.0",
		"v:v2:1.0,2.0,3.0",
		"n:i:1.5",
		"n:i2:1,nope",
		"time:f:abc",
	}
	for _, spec := range cases {
		got, err := ParseSpec(spec)
		require.Error(t, err, "spec %q", spec)
		assert.Nil(t, got, "spec %q", spec)

		var se *SpecError
		require.ErrorAs(t, err, &se, "spec %q", spec)
		assert.NotEmpty(t, se.Segment)
	}
}

func TestParseSpecNamesOffendingSegment(t *testing.T) {
	_, err := ParseSpec("time:f:0.0;bad")
	var se *SpecError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "bad", se.Segment)
}
