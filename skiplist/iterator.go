package skiplist

// Iterator is a bidirectional cursor over a List's keys in ascending
// comparator order. It holds a non-owning reference to a single node
// and must not outlive a mutation that could free the node it
// references.
type Iterator struct {
	list *List
	cur  *node
}

// Iterator returns a new, invalidated cursor over l.
func (l *List) Iterator() *Iterator {
	return &Iterator{list: l}
}

// Valid reports whether the cursor currently references a live node.
func (it *Iterator) Valid() bool { return it.cur != nil }

// Invalidate discards the cursor's current position.
func (it *Iterator) Invalidate() { it.cur = nil }

// First positions the cursor at the smallest key, or invalidates it if
// the list is empty.
func (it *Iterator) First() bool {
	it.cur = it.list.head.next[0]
	return it.cur != nil
}

// Last positions the cursor at the largest key, or invalidates it if
// the list is empty.
func (it *Iterator) Last() bool {
	it.cur = it.list.last()
	return it.cur != nil
}

// Next follows the level-0 forward link. Calling Next on an
// invalidated cursor behaves as First.
func (it *Iterator) Next() bool {
	if it.cur == nil {
		return it.First()
	}
	it.cur = it.cur.next[0]
	return it.cur != nil
}

// Prev follows the level-0 prev back-link. Calling Prev on an
// invalidated cursor behaves as Last. If the back-link arrives at the
// sentinel head, the cursor becomes invalid.
func (it *Iterator) Prev() bool {
	if it.cur == nil {
		return it.Last()
	}
	prev := it.cur.prev
	if prev == it.list.head {
		it.cur = nil
		return false
	}
	it.cur = prev
	return it.cur != nil
}

// NextN genuinely advances k steps forward, stopping (and
// invalidating) if it runs past the end of the range before completing
// all k steps.
//
// The C original this package's algorithms trace to has a known bug
// where its nextn/prevn step the predecessor link inside a loop
// nominally advancing forward; this implementation does not reproduce
// that bug.
func (it *Iterator) NextN(k int) bool {
	for i := 0; i < k; i++ {
		if !it.Next() {
			return false
		}
	}
	return true
}

// PrevN genuinely moves k steps backward, stopping (and invalidating)
// if it runs past the start of the range before completing all k
// steps.
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
	it.cur = it.list.search(key)
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
