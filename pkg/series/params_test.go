package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveLength(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected int
	}{
		{name: "unset", in: nil, expected: 50},
		{name: "zero", in: 0, expected: 50},
		{name: "negative", in: -3, expected: 50},
		{name: "int", in: 20, expected: 20},
		{name: "float", in: 14.0, expected: 14},
		{name: "string", in: "10", expected: 10},
		{name: "garbage", in: "ten", expected: 50},
		{name: "unsupported type", in: []int{1}, expected: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveLength(tt.in, 50))
		})
	}
}

func TestResolveDrift(t *testing.T) {
	assert.Equal(t, 1, ResolveDrift(nil))
	assert.Equal(t, 1, ResolveDrift(0))
	assert.Equal(t, 1, ResolveDrift(-2))
	assert.Equal(t, 1, ResolveDrift(math.NaN()))
	assert.Equal(t, 3, ResolveDrift(3))
	assert.Equal(t, 2, ResolveDrift("2"))
	assert.Equal(t, 4, ResolveDrift(uint8(4)))
}

func TestResolveOffset(t *testing.T) {
	assert.Equal(t, 0, ResolveOffset(nil))
	assert.Equal(t, -2, ResolveOffset(-2))
	assert.Equal(t, 3, ResolveOffset(" 3 "))
	assert.Equal(t, 0, ResolveOffset(true))
	v := 5
	assert.Equal(t, 5, ResolveOffset(&v))
}
