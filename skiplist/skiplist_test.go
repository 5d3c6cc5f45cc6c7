package skiplist

import (
	"math/rand"
	"testing"

	"github.com/danswartzendruber/libdict/container"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intCmp(a, b any) int {
	x, y := a.(int), b.(int)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}

func newIntList(opts ...Option) *List {
	return New(append([]Option{WithComparator(intCmp)}, opts...)...)
}

func inorderKeys(l *List) []int {
	keys := make([]int, 0, l.Count())
	l.Traverse(func(k, v any) bool {
		keys = append(keys, k.(int))
		return true
	})
	return keys
}

func TestInsertSearchRemove(t *testing.T) {
	l := newIntList()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		res := l.Insert(k, k*10, false)
		require.Equal(t, container.Inserted, res)
	}

	got := inorderKeys(l)
	want := []int{1, 3, 4, 5, 7, 8, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("traversal mismatch (-want +got):\n%s", diff)
	}

	for _, k := range want {
		v, ok := l.Search(k)
		require.True(t, ok)
		assert.Equal(t, k*10, v)
	}

	require.NoError(t, l.Remove(5))
	_, ok := l.Search(5)
	assert.False(t, ok)
	assert.Equal(t, len(want)-1, l.Count())
	require.NoError(t, l.Verify())
}

func TestInsertDuplicateWithoutOverwrite(t *testing.T) {
	l := newIntList()
	l.Insert(1, "first", false)
	res := l.Insert(1, "second", false)
	assert.Equal(t, container.AlreadyPresent, res)
	v, _ := l.Search(1)
	assert.Equal(t, "first", v)
}

func TestInsertDuplicateWithOverwrite(t *testing.T) {
	var destroyed [][2]any
	l := newIntList(WithDestructor(func(k, v any) {
		destroyed = append(destroyed, [2]any{k, v})
	}))
	l.Insert(1, "first", false)
	res := l.Insert(1, "second", true)
	assert.Equal(t, container.InsertedEquivalent, res)
	v, _ := l.Search(1)
	assert.Equal(t, "second", v)
	require.Len(t, destroyed, 1)
	assert.Equal(t, [2]any{1, "first"}, destroyed[0])
}

func TestProbeGetOrInsert(t *testing.T) {
	l := newIntList()

	var slot any = "inserted-value"
	res := l.Probe(42, &slot)
	assert.Equal(t, container.ProbeInserted, res)

	slot = "should-not-stick"
	res = l.Probe(42, &slot)
	assert.Equal(t, container.Existed, res)
	assert.Equal(t, "inserted-value", slot)
}

func TestRemoveNotPresent(t *testing.T) {
	l := newIntList()
	l.Insert(1, 1, false)
	err := l.Remove(2)
	assert.ErrorIs(t, err, container.ErrNotPresent)
}

func TestClearInvokesDestructorOncePerPair(t *testing.T) {
	var destroyedCount int
	l := newIntList(WithDestructor(func(k, v any) {
		destroyedCount++
	}))
	for i := 0; i < 200; i++ {
		l.Insert(i, i, false)
	}
	n := l.Clear()
	assert.Equal(t, 200, n)
	assert.Equal(t, 200, destroyedCount)
	assert.Equal(t, 0, l.Count())
	assert.Equal(t, 0, l.topLink)
}

func TestTraverseStopsEarly(t *testing.T) {
	l := newIntList()
	for i := 0; i < 10; i++ {
		l.Insert(i, i, false)
	}
	visited := l.Traverse(func(k, v any) bool {
		return k.(int) < 4
	})
	assert.Equal(t, 5, visited)
}

func TestLargePopulationVerifiesTopLinkBound(t *testing.T) {
	l := newIntList(WithMaxLink(8))
	r := rand.New(rand.NewSource(7))
	keys := r.Perm(1000)
	for _, k := range keys {
		l.Insert(k, k, false)
	}
	require.NoError(t, l.Verify())
	assert.LessOrEqual(t, l.topLink, 7)
	assert.Equal(t, 1000, l.Count())

	got := inorderKeys(l)
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i])
	}
}

func TestMaxLinkClampedToCap(t *testing.T) {
	l := newIntList(WithMaxLink(1000))
	assert.Equal(t, MaxLinkCap, l.maxLink)
}

func TestInsertionExtendingTopLink(t *testing.T) {
	l := newIntList(WithMaxLink(4), WithSeed(1))
	for i := 0; i < 50; i++ {
		l.Insert(i, i, false)
		require.NoError(t, l.Verify())
	}
}

func TestRemovingTopLevelNodeShrinksTopLink(t *testing.T) {
	l := newIntList(WithMaxLink(8), WithSeed(99))
	for i := 0; i < 30; i++ {
		l.Insert(i, i, false)
	}
	require.NoError(t, l.Verify())
	require.Greater(t, l.topLink, 0)

	top := l.topLink
	for l.topLink == top {
		n := l.head.next[top-1]
		require.NotNil(t, n, "no node occupies the reported top level")
		require.NoError(t, l.Remove(n.key.(int)))
	}

	require.NoError(t, l.Verify())
	assert.Less(t, l.topLink, top)
}

func TestMinMaxKey(t *testing.T) {
	l := newIntList()
	_, ok := l.MinKey()
	assert.False(t, ok)
	_, ok = l.MaxKey()
	assert.False(t, ok)

	for _, k := range []int{5, 3, 8, 1, 9} {
		l.Insert(k, k, false)
	}
	mn, ok := l.MinKey()
	require.True(t, ok)
	assert.Equal(t, 1, mn)
	mx, ok := l.MaxKey()
	require.True(t, ok)
	assert.Equal(t, 9, mx)
}

func TestRandomizedInsertRemoveMaintainsInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	l := newIntList(WithMaxLink(12))
	present := map[int]bool{}

	const n = 2000
	for i := 0; i < n; i++ {
		k := r.Intn(n / 2)
		if r.Intn(3) == 0 && present[k] {
			require.NoError(t, l.Remove(k))
			delete(present, k)
		} else {
			l.Insert(k, k, true)
			present[k] = true
		}
	}

	require.NoError(t, l.Verify())
	assert.Equal(t, len(present), l.Count())
	for k := range present {
		_, ok := l.Search(k)
		assert.True(t, ok, "expected %d present", k)
	}
}
