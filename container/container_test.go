package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultComparatorOrdersByPointerIdentity(t *testing.T) {
	a, b := new(int), new(int)
	x := DefaultComparator(a, a)
	assert.Equal(t, 0, x)

	// Whichever of a, b sorts first, comparing the other direction
	// must return the negated result.
	ab := DefaultComparator(a, b)
	ba := DefaultComparator(b, a)
	assert.Equal(t, -ab, ba)
}

func TestDefaultComparatorPanicsOnNonPointerKey(t *testing.T) {
	assert.Panics(t, func() {
		DefaultComparator(1, 2)
	})
}

func TestResolveSubstitutesDefault(t *testing.T) {
	cmp := Resolve(nil)
	assert.NotNil(t, cmp)

	custom := func(a, b any) int { return 0 }
	assert.NotNil(t, Resolve(custom))
}
