package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApply_ConjunctionAndOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}
	even := func(n int) bool { return n%2 == 0 }
	big := func(n int) bool { return n > 2 }

	assert.Equal(t, []int{4, 6}, Apply(items, even, big))
	assert.Equal(t, []int{4, 6}, Apply(items, big, even))
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, items)
}

func TestApply_NoPredicatesReturnsCopy(t *testing.T) {
	items := []string{"a", "b"}
	got := Apply(items)
	assert.Equal(t, items, got)

	got[0] = "z"
	assert.Equal(t, "a", items[0])
}

func TestApply_ShortCircuits(t *testing.T) {
	calls := 0
	never := func(int) bool { return false }
	counting := func(int) bool { calls++; return true }

	got := Apply([]int{1, 2, 3}, never, counting)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, calls)
}
