// Package skiplist implements a probabilistic skip list mapping
// opaque keys to opaque values under a caller-supplied total order.
//
// The structural discipline — sentinel head, per-level forward
// pointers, the search-and-update vector protocol that drives both
// insert and remove — follows the classic array-of-towers skip list
// (as in niceyeti-GoKata/lists/skiplist), generalized to opaque
// key/value pairs and extended with a doubly-linked level-0 base layer
// so backward iteration (package skiplist's Iterator) doesn't need to
// re-walk from the head.
package skiplist

import (
	"fmt"

	"github.com/danswartzendruber/libdict/container"
)

// MaxLinkCap is the hard ceiling on tower height; WithMaxLink values
// above this are clamped.
const MaxLinkCap = 32

const defaultMaxLink = 16
const defaultSeed = uint32(0x2545f491)

type node struct {
	key, value any
	next       []*node
	prev       *node
}

// List is a randomized multi-level linked ordered container.
type List struct {
	head       *node
	topLink    int // count of currently active levels; valid indices are [0, topLink)
	maxLink    int
	count      int
	cmp        container.Comparator
	destructor container.Destructor
	rng        uint32
}

// Option configures a List at construction.
type Option func(*List)

// WithComparator supplies the total order over keys. If omitted,
// container.DefaultComparator is used.
func WithComparator(cmp container.Comparator) Option {
	return func(l *List) { l.cmp = cmp }
}

// WithDestructor supplies a cleanup hook invoked on every (key, value)
// pair that leaves the list.
func WithDestructor(d container.Destructor) Option {
	return func(l *List) { l.destructor = d }
}

// WithMaxLink sets the maximum tower height, clamped to [1, MaxLinkCap].
func WithMaxLink(n int) Option {
	return func(l *List) {
		if n < 1 {
			n = 1
		}
		if n > MaxLinkCap {
			n = MaxLinkCap
		}
		l.maxLink = n
	}
}

// WithSeed sets the initial state of the per-list linear-congruential
// generator used to draw tower heights. Exposed for reproducible
// tests; production callers can typically omit it.
func WithSeed(seed uint32) Option {
	return func(l *List) { l.rng = seed }
}

// New constructs an empty skip list.
func New(opts ...Option) *List {
	l := &List{maxLink: defaultMaxLink, rng: defaultSeed}
	for _, opt := range opts {
		opt(l)
	}
	l.cmp = container.Resolve(l.cmp)
	l.head = &node{next: make([]*node, l.maxLink)}
	return l
}

func (l *List) destroy(key, value any) {
	if l.destructor != nil {
		l.destructor(key, value)
	}
}

// Count returns the number of distinct keys stored, in O(1).
func (l *List) Count() int { return l.count }

// nextLevel draws a tower height using a per-list 32-bit linear
// congruential generator: r <- r*1664525 + 1013904223 (natural uint32
// overflow). Starting from i = 1, it increments i while i+1 < max_link
// and r exceeds 2^(32-i), and returns i. Because the threshold halves
// as i grows, the test can only fail at i = 1: the result is
// max_link-1 when r > 2^31 and 1 otherwise (always 1 when
// max_link <= 2). This reproduces the C
// original's biased threshold test literally, rather than an
// independent fair-coin geometric distribution, for observational
// equivalence with the original tower-height distribution.
func (l *List) nextLevel() int {
	l.rng = l.rng*1664525 + 1013904223
	r := l.rng
	i := 1
	for i+1 < l.maxLink && r > uint32(1)<<uint(32-i) {
		i++
	}
	return i
}

// searchUpdate runs the defining search path: starting at the
// sentinel head on the top live level, descend level by level,
// advancing forward while the next node's key compares strictly less
// than key. Returns the update vector (size maxLink; entries at and
// above topLink point at the sentinel, ready to be spliced in if an
// insert needs to raise topLink) and the level-0 successor (either the
// matching node or the insertion point, possibly nil).
func (l *List) searchUpdate(key any) ([]*node, *node) {
	update := make([]*node, l.maxLink)
	x := l.head
	for k := l.topLink - 1; k >= 0; k-- {
		for x.next[k] != nil && l.cmp(x.next[k].key, key) < 0 {
			x = x.next[k]
		}
		update[k] = x
	}
	for k := l.topLink; k < l.maxLink; k++ {
		update[k] = l.head
	}
	return update, x.next[0]
}

func (l *List) search(key any) *node {
	x := l.head
	for k := l.topLink - 1; k >= 0; k-- {
		for x.next[k] != nil && l.cmp(x.next[k].key, key) < 0 {
			x = x.next[k]
		}
	}
	succ := x.next[0]
	if succ != nil && l.cmp(succ.key, key) == 0 {
		return succ
	}
	return nil
}

// Search returns the value stored for key, and whether it was found.
func (l *List) Search(key any) (value any, ok bool) {
	n := l.search(key)
	if n == nil {
		return nil, false
	}
	return n.value, true
}

// MinKey returns the smallest key in the list, and whether the list is
// non-empty.
func (l *List) MinKey() (key any, ok bool) {
	x := l.head.next[0]
	if x == nil {
		return nil, false
	}
	return x.key, true
}

// last descends the sentinel from top to bottom always taking the
// forward pointer when it exists, landing on the rightmost node in
// O(log n) expected time. Returns nil if the list is empty.
func (l *List) last() *node {
	x := l.head
	for k := l.topLink - 1; k >= 0; k-- {
		for x.next[k] != nil {
			x = x.next[k]
		}
	}
	if x == l.head {
		return nil
	}
	return x
}

// MaxKey returns the largest key in the list, and whether the list is
// non-empty.
func (l *List) MaxKey() (key any, ok bool) {
	n := l.last()
	if n == nil {
		return nil, false
	}
	return n.key, true
}

func (l *List) splice(update []*node, h int, n *node) {
	n.next = make([]*node, h)
	for k := 0; k < h; k++ {
		n.next[k] = update[k].next[k]
		update[k].next[k] = n
	}
	n.prev = update[0]
	if n.next[0] != nil {
		n.next[0].prev = n
	}
}

// Insert inserts key/value. If a node with an equal key already
// exists: when overwrite is true, the prior pair is replaced (the
// destructor hook, if any, is invoked on the prior pair) and
// InsertedEquivalent is reported; otherwise AlreadyPresent is reported
// and the list is left unchanged.
func (l *List) Insert(key, value any, overwrite bool) container.InsertResult {
	update, succ := l.searchUpdate(key)
	if succ != nil && l.cmp(succ.key, key) == 0 {
		if !overwrite {
			return container.AlreadyPresent
		}
		oldKey, oldValue := succ.key, succ.value
		succ.key, succ.value = key, value
		l.destroy(oldKey, oldValue)
		return container.InsertedEquivalent
	}

	h := l.nextLevel()
	if h > l.topLink {
		for k := l.topLink; k < h; k++ {
			update[k] = l.head
		}
		l.topLink = h
	}

	n := &node{key: key, value: value}
	l.splice(update, h, n)
	l.count++

	return container.Inserted
}

// Probe is the get-or-insert primitive: if a matching key exists,
// *valueSlot is overwritten with its current value and Existed is
// reported; otherwise a new node is inserted using *valueSlot as the
// stored value and ProbeInserted is reported.
func (l *List) Probe(key any, valueSlot *any) container.ProbeResult {
	update, succ := l.searchUpdate(key)
	if succ != nil && l.cmp(succ.key, key) == 0 {
		*valueSlot = succ.value
		return container.Existed
	}

	h := l.nextLevel()
	if h > l.topLink {
		for k := l.topLink; k < h; k++ {
			update[k] = l.head
		}
		l.topLink = h
	}

	n := &node{key: key, value: *valueSlot}
	l.splice(update, h, n)
	l.count++

	return container.ProbeInserted
}

// Remove deletes the node with the given key, invoking the destructor
// hook (if any) on the removed pair before freeing the node.
func (l *List) Remove(key any) error {
	update, succ := l.searchUpdate(key)
	if succ == nil || l.cmp(succ.key, key) != 0 {
		return container.ErrNotPresent
	}

	for k := 0; k < len(succ.next); k++ {
		if update[k].next[k] != succ {
			break
		}
		update[k].next[k] = succ.next[k]
	}

	if succ.next[0] != nil {
		succ.next[0].prev = update[0]
	}

	l.destroy(succ.key, succ.value)
	l.count--

	for l.topLink > 0 && l.head.next[l.topLink-1] == nil {
		l.topLink--
	}

	return nil
}

// Clear removes every pair, invoking the destructor hook (if any) on
// each, and returns the count removed.
func (l *List) Clear() int {
	n := l.count
	x := l.head.next[0]
	for x != nil {
		next := x.next[0]
		l.destroy(x.key, x.value)
		x = next
	}
	for k := range l.head.next {
		l.head.next[k] = nil
	}
	l.topLink = 0
	l.count = 0
	return n
}

// Free clears the list and releases its storage, returning the count
// cleared.
func (l *List) Free() int {
	return l.Clear()
}

// Traverse walks entries in ascending key order, calling visit for
// each. It returns the count visited; if visit returns false the walk
// stops early, and the count includes the node just visited.
func (l *List) Traverse(visit container.Visitor) int {
	visited := 0
	x := l.head.next[0]
	for x != nil {
		visited++
		if !visit(x.key, x.value) {
			break
		}
		x = x.next[0]
	}
	return visited
}

// Verify checks the structural invariants a skip list must hold: the
// level-0 chain is strictly ascending, every level k>=1 is a
// subsequence of level k-1, every node's tower height is in
// [1, maxLink), and topLink is the maximum level with a live tower.
// Intended as a diagnostic for tests, not a hot-path operation.
func (l *List) Verify() error {
	if l.topLink < 0 || l.topLink >= l.maxLink {
		return fmt.Errorf("skiplist: topLink %d out of range [0, %d)", l.topLink, l.maxLink)
	}
	for k := l.topLink; k < l.maxLink; k++ {
		if l.head.next[k] != nil {
			return fmt.Errorf("skiplist: level %d non-empty but >= topLink %d", k, l.topLink)
		}
	}
	if l.topLink > 0 && l.head.next[l.topLink-1] == nil {
		return fmt.Errorf("skiplist: topLink %d claims a live level with no tower", l.topLink)
	}

	// Level 0: strict ascending order, correct count, consistent prev
	// back-links.
	count := 0
	var prevKey any
	have := false
	x := l.head.next[0]
	var lastNode *node
	for x != nil {
		if have && l.cmp(prevKey, x.key) >= 0 {
			return fmt.Errorf("skiplist: level 0 not strictly ascending at key %v", x.key)
		}
		if len(x.next) < 1 || len(x.next) >= l.maxLink {
			return fmt.Errorf("skiplist: node %v has link_count %d out of [1,%d)", x.key, len(x.next), l.maxLink)
		}
		wantPrev := l.head
		if lastNode != nil {
			wantPrev = lastNode
		}
		if x.prev != wantPrev {
			return fmt.Errorf("skiplist: node %v has inconsistent prev back-link", x.key)
		}
		prevKey = x.key
		have = true
		lastNode = x
		count++
		x = x.next[0]
	}
	if count != l.count {
		return fmt.Errorf("skiplist: level 0 visits %d nodes, count is %d", count, l.count)
	}

	// Every level k >= 1 must be a subsequence of level k-1: walk each
	// level directly and confirm strictly ascending order (since all
	// towers originate from the same node set, ascending order at
	// level k implies the subsequence property given level 0 is
	// already verified ascending and complete).
	for k := 1; k < l.topLink; k++ {
		var prev any
		seen := false
		y := l.head.next[k]
		for y != nil {
			if seen && l.cmp(prev, y.key) >= 0 {
				return fmt.Errorf("skiplist: level %d not strictly ascending at key %v", k, y.key)
			}
			if len(y.next) <= k {
				return fmt.Errorf("skiplist: node %v present at level %d but link_count is %d", y.key, k, len(y.next))
			}
			prev = y.key
			seen = true
			y = y.next[k]
		}
	}

	return nil
}
