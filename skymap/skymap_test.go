package skymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpxgo/buffer"
)

func TestDepthOf(t *testing.T) {
	for n, want := range map[int]uint8{12: 0, 48: 1, 192: 2, 12 << 20: 10} {
		d, err := DepthOf(n)
		require.NoError(t, err, n)
		assert.Equal(t, want, d, n)
	}

	for _, n := range []int{-1, 0, 1, 13, 24, 96} {
		_, err := DepthOf(n)
		assert.ErrorIs(t, err, ErrInvalidLength, n)
	}
}

func TestNew(t *testing.T) {
	m, err := New(make([]float32, 48))
	require.NoError(t, err)
	assert.Equal(t, F32, m.Kind())
	assert.Equal(t, uint8(1), m.Depth())
	assert.Equal(t, 48, m.Len())
	assert.Equal(t, buffer.Float32, m.View().Kind())

	m.Values()[7] = 3.5
	assert.Equal(t, float32(3.5), m.At(7))
	assert.Equal(t, 3.5, m.Value(7))

	_, err = New(make([]int64, 47))
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind Kind
		size int
		name string
	}{
		{U8, 1, "uint8"},
		{I16, 2, "int16"},
		{I32, 4, "int32"},
		{I64, 8, "int64"},
		{F32, 4, "float32"},
		{F64, 8, "float64"},
	}
	for _, tt := range tests {
		assert.True(t, tt.kind.Valid())
		assert.Equal(t, tt.size, tt.kind.Size())
		assert.Equal(t, tt.name, tt.kind.String())
	}

	assert.False(t, Kind(0).Valid())
	assert.False(t, Kind(7).Valid())
	assert.Equal(t, "kind(7)", Kind(7).String())

	assert.Equal(t, U8, KindOf[uint8]())
	assert.Equal(t, F64, KindOf[float64]())
}

func TestFromView(t *testing.T) {
	values := make([]int16, 192)
	values[5] = -4

	s, err := FromView(buffer.Of(values))
	require.NoError(t, err)
	assert.Equal(t, I16, s.Kind())
	assert.Equal(t, uint8(2), s.Depth())
	assert.Equal(t, -4.0, s.Value(5))

	m, ok := s.(*Map[int16])
	require.True(t, ok)
	assert.Same(t, &values[0], &m.Values()[0])

	_, err = FromView(buffer.Of(make([]uint64, 12)))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = FromView(buffer.Of(make([]float64, 13)))
	assert.ErrorIs(t, err, ErrInvalidLength)
}
