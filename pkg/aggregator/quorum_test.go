package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinResponses(t *testing.T) {
	expected := []int{1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9}

	got := make([]int, 0, len(expected))
	for n := int64(1); n <= 16; n++ {
		got = append(got, MinResponses(n))
	}

	assert.Equal(t, expected, got)
}

func TestMinResponses_Monotonic(t *testing.T) {
	prev := MinResponses(1)
	for n := int64(2); n <= 200; n++ {
		cur := MinResponses(n)
		assert.GreaterOrEqual(t, cur, prev, "min count %d", n)
		assert.Greater(t, 2*cur, int(n), "min count %d must require a strict majority", n)
		prev = cur
	}
}
