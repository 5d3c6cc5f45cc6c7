package balanced

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func populatedTree(keys []int) *Tree {
	tr := newIntTree()
	for _, k := range keys {
		tr.Insert(k, k, false)
	}
	return tr
}

func TestIteratorForwardOrder(t *testing.T) {
	tr := populatedTree([]int{5, 3, 8, 1, 4, 7, 9})

	it := tr.Iterator()
	var got []int
	for it.Next() {
		got = append(got, it.Key().(int))
	}
	want := []int{1, 3, 4, 5, 7, 8, 9}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("forward order mismatch (-want +got):\n%s", diff)
	}
}

func TestIteratorBackwardIsReverseOfForward(t *testing.T) {
	tr := populatedTree([]int{5, 3, 8, 1, 4, 7, 9})

	it := tr.Iterator()
	var forward []int
	for it.Next() {
		forward = append(forward, it.Key().(int))
	}

	it.Invalidate()
	var backward []int
	for it.Prev() {
		backward = append(backward, it.Key().(int))
	}

	reversed := make([]int, len(backward))
	for i, v := range backward {
		reversed[len(backward)-1-i] = v
	}

	if diff := cmp.Diff(forward, reversed); diff != "" {
		t.Fatalf("reverse(backward) != forward (-forward +reversed):\n%s", diff)
	}
}

func TestIteratorNextPrevIdentityAtInteriorPosition(t *testing.T) {
	tr := populatedTree([]int{5, 3, 8, 1, 4, 7, 9})

	it := tr.Iterator()
	require.True(t, it.SeekKey(5))
	require.True(t, it.Next())
	assert.Equal(t, 7, it.Key())
	require.True(t, it.Prev())
	assert.Equal(t, 5, it.Key())
}

func TestIteratorNextOnInvalidatedActsAsFirst(t *testing.T) {
	tr := populatedTree([]int{5, 3, 8})
	it := tr.Iterator()
	assert.False(t, it.Valid())
	require.True(t, it.Next())
	assert.Equal(t, 3, it.Key())
}

func TestIteratorPrevOnInvalidatedActsAsLast(t *testing.T) {
	tr := populatedTree([]int{5, 3, 8})
	it := tr.Iterator()
	require.True(t, it.Prev())
	assert.Equal(t, 8, it.Key())
}

func TestIteratorNextNStopsAtEnd(t *testing.T) {
	tr := populatedTree([]int{1, 2, 3})
	it := tr.Iterator()
	it.First()
	assert.False(t, it.NextN(5))
	assert.False(t, it.Valid())
}

func TestIteratorSetValueDoesNotInvokeDestructor(t *testing.T) {
	var destroyed int
	tr := New(WithComparator(intCmp), WithDestructor(func(k, v any) {
		destroyed++
	}))
	tr.Insert(1, "a", false)

	it := tr.Iterator()
	require.True(t, it.SeekKey(1))
	prior, ok := it.SetValue("b")
	require.True(t, ok)
	assert.Equal(t, "a", prior)
	assert.Equal(t, 0, destroyed)

	v, _ := tr.Search(1)
	assert.Equal(t, "b", v)
}

func TestIteratorKeyValueOnInvalidatedCursor(t *testing.T) {
	tr := populatedTree([]int{1})
	it := tr.Iterator()
	assert.Nil(t, it.Key())
	assert.Nil(t, it.Value())
	_, ok := it.SetValue("x")
	assert.False(t, ok)
}
