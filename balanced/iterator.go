package balanced

// Iterator is a bidirectional cursor over a Tree's keys in ascending
// comparator order. It holds a non-owning reference to a single node
// and must not outlive a mutation that could free the node it
// references.
type Iterator struct {
	tree *Tree
	cur  *node
}

// Iterator returns a new, invalidated cursor over t.
func (t *Tree) Iterator() *Iterator {
	return &Iterator{tree: t}
}

// Valid reports whether the cursor currently references a live node.
func (it *Iterator) Valid() bool { return it.cur != nil }

// Invalidate discards the cursor's current position.
func (it *Iterator) Invalidate() { it.cur = nil }

// First positions the cursor at the smallest key, or invalidates it if
// the tree is empty.
func (it *Iterator) First() bool {
	it.cur = firstOrLastInOrder(it.tree.root, -1)
	return it.cur != nil
}

// Last positions the cursor at the largest key, or invalidates it if
// the tree is empty.
func (it *Iterator) Last() bool {
	it.cur = firstOrLastInOrder(it.tree.root, +1)
	return it.cur != nil
}

// Next advances to the in-order successor. Calling Next on an
// invalidated cursor behaves as First.
func (it *Iterator) Next() bool {
	if it.cur == nil {
		return it.First()
	}
	it.cur = nextOrPrevInOrder(it.cur, +1)
	return it.cur != nil
}

// Prev moves to the in-order predecessor. Calling Prev on an
// invalidated cursor behaves as Last.
func (it *Iterator) Prev() bool {
	if it.cur == nil {
		return it.Last()
	}
	it.cur = nextOrPrevInOrder(it.cur, -1)
	return it.cur != nil
}

// NextN advances k steps forward, stopping (and invalidating) if it
// runs past the end of the range before completing all k steps.
func (it *Iterator) NextN(k int) bool {
	for i := 0; i < k; i++ {
		if !it.Next() {
			return false
		}
	}
	return true
}

// PrevN moves k steps backward, stopping (and invalidating) if it runs
// past the start of the range before completing all k steps.
func (it *Iterator) PrevN(k int) bool {
	for i := 0; i < k; i++ {
		if !it.Prev() {
			return false
		}
	}
	return true
}

// SeekKey positions the cursor on the node with an equal key, or
// invalidates it if no such node exists.
func (it *Iterator) SeekKey(key any) bool {
	it.cur = it.tree.search(key)
	return it.cur != nil
}

// Key returns the current node's key, or nil if the cursor is
// invalidated.
func (it *Iterator) Key() any {
	if it.cur == nil {
		return nil
	}
	return it.cur.key
}

// Value returns the current node's value, or nil if the cursor is
// invalidated.
func (it *Iterator) Value() any {
	if it.cur == nil {
		return nil
	}
	return it.cur.value
}

// SetValue replaces the current node's value, returning the prior
// value and true, or (nil, false) on an invalidated cursor. Unlike
// container-level overwrite, this never invokes the destructor hook.
func (it *Iterator) SetValue(value any) (prior any, ok bool) {
	if it.cur == nil {
		return nil, false
	}
	prior = it.cur.value
	it.cur.value = value
	return prior, true
}
