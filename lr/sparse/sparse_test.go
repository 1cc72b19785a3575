package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixSetValue(t *testing.T) {
	M := NewIntMatrix(10, 10, DefaultNullValue)
	M.Set(2, 3, 4711)
	M.Set(0, 9, 1)
	M.Set(9, 0, 2)
	M.Set(2, 2, 3)
	assert.Equal(t, int32(4711), M.Value(2, 3))
	assert.Equal(t, int32(3), M.Value(2, 2))
	assert.Equal(t, int32(DefaultNullValue), M.Value(5, 5))
	assert.Equal(t, 4, M.ValueCount())
	M.Set(2, 3, 123)
	assert.Equal(t, int32(123), M.Value(2, 3))
	assert.Equal(t, 4, M.ValueCount())
}

func TestMatrixRowMajorOrder(t *testing.T) {
	M := NewIntMatrix(3, 3, -1)
	M.Set(2, 1, 21)
	M.Set(0, 2, 2)
	M.Set(1, 0, 10)
	M.Set(0, 0, 0)
	var got []int32
	M.Each(func(i, j int, v int32) {
		got = append(got, v)
	})
	assert.Equal(t, []int32{0, 2, 10, 21}, got)
}

func TestMatrixOutOfRange(t *testing.T) {
	M := NewIntMatrix(2, 2, -1)
	assert.Panics(t, func() { M.Set(2, 0, 1) })
}
