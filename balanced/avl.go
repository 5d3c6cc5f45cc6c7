// Package balanced implements a height-balanced (AVL) binary search
// tree mapping opaque keys to opaque values under a caller-supplied
// total order.
//
// The rebalancing state machine — balance-factor bookkeeping, single
// and double rotations driven by post-insert and post-delete
// invariants — follows the non-recursive formulation popularized by
// Eric Biggers' C AVL tree: rotations update only the two or three
// nodes directly involved, using closed-form balance-factor updates
// rather than recomputing subtree heights.
package balanced

import "github.com/danswartzendruber/libdict/container"

type node struct {
	left, right, parent *node
	key, value          any
	balance             int8 // height(right) - height(left) + 1, i.e. in {0,1,2} while linked
}

// Tree is a standalone (non-intrusive) AVL tree: keys and values are
// stored verbatim in the tree's own nodes, not embedded in
// caller-owned structures.
type Tree struct {
	root       *node
	count      int
	cmp        container.Comparator
	destructor container.Destructor
}

// Option configures a Tree at construction.
type Option func(*Tree)

// WithComparator supplies the total order over keys. If omitted,
// container.DefaultComparator is used.
func WithComparator(cmp container.Comparator) Option {
	return func(t *Tree) { t.cmp = cmp }
}

// WithDestructor supplies a cleanup hook invoked on every (key, value)
// pair that leaves the tree.
func WithDestructor(d container.Destructor) Option {
	return func(t *Tree) { t.destructor = d }
}

// New constructs an empty AVL tree.
func New(opts ...Option) *Tree {
	t := &Tree{}
	for _, opt := range opts {
		opt(t)
	}
	t.cmp = container.Resolve(t.cmp)
	return t
}

func (t *Tree) destroy(key, value any) {
	if t.destructor != nil {
		t.destructor(key, value)
	}
}

// Count returns the number of distinct keys stored, in O(1).
func (t *Tree) Count() int { return t.count }

func getChild(parent *node, sign int) *node {
	if sign < 0 {
		return parent.left
	}
	return parent.right
}

func setChild(parent *node, sign int, child *node) {
	if sign < 0 {
		parent.left = child
	} else {
		parent.right = child
	}
}

func balanceFactor(n *node) int { return int(n.balance) - 1 }

func adjustBalance(n *node, amount int) { n.balance += int8(amount) }

func setParentBalance(n, parent *node, balance int) {
	n.parent = parent
	n.balance = int8(balance + 1)
}

func replaceChild(root **node, parent, oldChild, newChild *node) {
	if parent != nil {
		if oldChild == parent.left {
			parent.left = newChild
		} else {
			parent.right = newChild
		}
	} else {
		*root = newChild
	}
}

// rotate performs a single rotation rooted at A. sign > 0 rotates
// clockwise (right), sign < 0 rotates counterclockwise (left). Updates
// pointers only, not balance factors.
func rotate(root **node, A *node, sign int) {
	B := getChild(A, -sign)
	E := getChild(B, sign)
	P := A.parent

	setChild(A, -sign, E)
	A.parent = B

	setChild(B, sign, A)
	B.parent = P

	if E != nil {
		E.parent = A
	}

	replaceChild(root, P, A, B)
}

// doubleRotate performs the two-rotation maneuver B-then-A (sign > 0:
// left at B then right at A; sign < 0: mirrored) and recomputes the
// three balance factors in closed form from E's pre-rotation balance.
// Returns E, the new subtree root.
func doubleRotate(root **node, B, A *node, sign int) *node {
	E := getChild(B, sign)
	F := getChild(E, -sign)
	G := getChild(E, sign)
	P := A.parent
	e := balanceFactor(E)

	setChild(A, -sign, G)
	if sign*e >= 0 {
		setParentBalance(A, E, 0)
	} else {
		setParentBalance(A, E, -e)
	}

	setChild(B, sign, F)
	if sign*e <= 0 {
		setParentBalance(B, E, 0)
	} else {
		setParentBalance(B, E, -e)
	}

	setChild(E, sign, A)
	setChild(E, -sign, B)
	setParentBalance(E, P, 0)

	if G != nil {
		G.parent = A
	}
	if F != nil {
		F.parent = B
	}

	replaceChild(root, P, A, E)

	return E
}

// handleSubtreeGrowth adjusts parent's balance factor after the
// subtree rooted at node (a child of parent on the side sign) grew by
// one, rotating if necessary. Returns true once the tree is adequately
// balanced, false if propagation must continue upward.
func handleSubtreeGrowth(root **node, nd, parent *node, sign int) bool {
	old := balanceFactor(parent)

	if old == 0 {
		adjustBalance(parent, sign)
		return false
	}

	newBal := old + sign
	if newBal == 0 {
		adjustBalance(parent, sign)
		return true
	}

	if sign*balanceFactor(nd) > 0 {
		rotate(root, parent, -sign)
		adjustBalance(parent, -sign)
		adjustBalance(nd, -sign)
	} else {
		doubleRotate(root, nd, parent, -sign)
	}

	return true
}

func rebalanceAfterInsert(root **node, inserted *node) {
	inserted.left = nil
	inserted.right = nil

	n := inserted
	parent := n.parent
	if parent == nil {
		return
	}

	if n == parent.left {
		adjustBalance(parent, -1)
	} else {
		adjustBalance(parent, +1)
	}

	if balanceFactor(parent) == 0 {
		return
	}

	for {
		n = parent
		parent = n.parent
		if parent == nil {
			return
		}

		var done bool
		if n == parent.left {
			done = handleSubtreeGrowth(root, n, parent, -1)
		} else {
			done = handleSubtreeGrowth(root, n, parent, +1)
		}
		if done {
			return
		}
	}
}

// handleSubtreeShrink mirrors handleSubtreeGrowth for deletion. sign
// is +1 if parent's left subtree shrank, -1 if its right subtree
// shrank. Returns the next ancestor to continue propagation at (with
// *leftDeleted set), or nil once the tree is adequately balanced.
func handleSubtreeShrink(root **node, parent *node, sign int, leftDeleted *bool) *node {
	var n *node

	old := balanceFactor(parent)

	if old == 0 {
		adjustBalance(parent, sign)
		return nil
	}

	newBal := old + sign
	if newBal == 0 {
		adjustBalance(parent, sign)
		n = parent
	} else {
		n = getChild(parent, sign)

		if sign*balanceFactor(n) >= 0 {
			rotate(root, parent, -sign)

			if balanceFactor(n) == 0 {
				adjustBalance(n, -sign)
				return nil
			}
			adjustBalance(parent, -sign)
			adjustBalance(n, -sign)
		} else {
			n = doubleRotate(root, n, parent, -sign)
		}
	}

	parent = n.parent
	if parent != nil {
		*leftDeleted = n == parent.left
	}

	return parent
}

// swapWithSuccessor moves X's in-order successor Y (leftmost node of
// X's right subtree) into X's place in the tree: Y takes over X's
// parent link, children and balance factor, and X is left unlinked
// with its own key/value intact. Returns the node whose subtree lost a
// level (Y itself when Y was X's right child, else Y's former parent),
// balance factor not yet updated, and sets *leftDeleted to whether
// that loss was on the node's left side.
func swapWithSuccessor(root **node, X *node, leftDeleted *bool) *node {
	var ret, Q *node

	Y := X.right
	if Y.left == nil {
		ret = Y
		*leftDeleted = false
	} else {
		for {
			Q = Y
			Y = Y.left
			if Y.left == nil {
				break
			}
		}

		Q.left = Y.right
		if Q.left != nil {
			Q.left.parent = Q
		}
		Y.right = X.right
		X.right.parent = Y
		ret = Q
		*leftDeleted = true
	}

	Y.left = X.left
	X.left.parent = Y

	Y.parent = X.parent
	Y.balance = X.balance
	replaceChild(root, X.parent, X, Y)

	return ret
}

func nextOrPrevInOrder(n *node, sign int) *node {
	var next *node

	if getChild(n, sign) != nil {
		for next = getChild(n, sign); getChild(next, -sign) != nil; {
			next = getChild(next, -sign)
		}
	} else {
		for next = n.parent; next != nil && n == getChild(next, sign); {
			n = next
			next = next.parent
		}
	}

	return next
}

func firstOrLastInOrder(root *node, sign int) *node {
	first := root
	if first != nil {
		for getChild(first, sign) != nil {
			first = getChild(first, sign)
		}
	}
	return first
}

func (t *Tree) search(key any) *node {
	cur := t.root
	for cur != nil {
		res := t.cmp(key, cur.key)
		switch {
		case res < 0:
			cur = cur.left
		case res > 0:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

// Search returns the value stored for key, and whether it was found.
func (t *Tree) Search(key any) (value any, ok bool) {
	n := t.search(key)
	if n == nil {
		return nil, false
	}
	return n.value, true
}

// MinKey returns the smallest key in the tree, and whether the tree is
// non-empty.
func (t *Tree) MinKey() (key any, ok bool) {
	n := firstOrLastInOrder(t.root, -1)
	if n == nil {
		return nil, false
	}
	return n.key, true
}

// MaxKey returns the largest key in the tree, and whether the tree is
// non-empty.
func (t *Tree) MaxKey() (key any, ok bool) {
	n := firstOrLastInOrder(t.root, +1)
	if n == nil {
		return nil, false
	}
	return n.key, true
}

// Insert inserts key/value. If a node with an equal key already
// exists: when overwrite is true, the prior pair is replaced (the
// destructor hook, if any, is invoked on the prior pair) and
// InsertedEquivalent is reported; otherwise AlreadyPresent is reported
// and the tree is left unchanged.
func (t *Tree) Insert(key, value any, overwrite bool) container.InsertResult {
	curPtr := &t.root
	var cur *node

	for *curPtr != nil {
		cur = *curPtr
		res := t.cmp(key, cur.key)
		switch {
		case res < 0:
			curPtr = &cur.left
		case res > 0:
			curPtr = &cur.right
		default:
			if !overwrite {
				return container.AlreadyPresent
			}
			oldKey, oldValue := cur.key, cur.value
			cur.key, cur.value = key, value
			t.destroy(oldKey, oldValue)
			return container.InsertedEquivalent
		}
	}

	item := &node{key: key, value: value, parent: cur}
	*curPtr = item
	item.balance = 1

	rebalanceAfterInsert(&t.root, item)
	t.count++

	return container.Inserted
}

// Probe is the get-or-insert primitive: if a matching key exists,
// *valueSlot is overwritten with its current value and Existed is
// reported; otherwise a new node is inserted using *valueSlot as the
// stored value and ProbeInserted is reported.
func (t *Tree) Probe(key any, valueSlot *any) container.ProbeResult {
	curPtr := &t.root
	var cur *node

	for *curPtr != nil {
		cur = *curPtr
		res := t.cmp(key, cur.key)
		switch {
		case res < 0:
			curPtr = &cur.left
		case res > 0:
			curPtr = &cur.right
		default:
			*valueSlot = cur.value
			return container.Existed
		}
	}

	item := &node{key: key, value: *valueSlot, parent: cur}
	*curPtr = item
	item.balance = 1

	rebalanceAfterInsert(&t.root, item)
	t.count++

	return container.ProbeInserted
}

// Remove deletes the node with the given key, invoking the destructor
// hook (if any) on the removed pair before freeing the node.
func (t *Tree) Remove(key any) error {
	n := t.search(key)
	if n == nil {
		return container.ErrNotPresent
	}
	t.removeNode(n)
	t.destroy(n.key, n.value)
	t.count--
	return nil
}

func (t *Tree) removeNode(n *node) {
	var parent *node
	leftDeleted := false

	if n.left != nil && n.right != nil {
		parent = swapWithSuccessor(&t.root, n, &leftDeleted)
	} else {
		var child *node
		if n.left != nil {
			child = n.left
		} else {
			child = n.right
		}
		parent = n.parent
		if parent != nil {
			if n == parent.left {
				parent.left = child
				leftDeleted = true
			} else {
				parent.right = child
				leftDeleted = false
			}
			if child != nil {
				child.parent = parent
			}
		} else {
			if child != nil {
				child.parent = nil
			}
			t.root = child
			return
		}
	}

	for {
		if leftDeleted {
			parent = handleSubtreeShrink(&t.root, parent, +1, &leftDeleted)
		} else {
			parent = handleSubtreeShrink(&t.root, parent, -1, &leftDeleted)
		}
		if parent == nil {
			break
		}
	}
}

// Clear removes every pair, invoking the destructor hook (if any) on
// each, and returns the count removed.
func (t *Tree) Clear() int {
	n := t.count
	var walk func(*node)
	walk = func(x *node) {
		if x == nil {
			return
		}
		walk(x.left)
		walk(x.right)
		t.destroy(x.key, x.value)
	}
	walk(t.root)
	t.root = nil
	t.count = 0
	return n
}

// Free clears the tree and releases its storage, returning the count
// cleared.
func (t *Tree) Free() int {
	return t.Clear()
}

// Traverse walks entries in ascending key order, calling visit for
// each. It returns the count visited; if visit returns false the walk
// stops early, and the count includes the node just visited.
func (t *Tree) Traverse(visit container.Visitor) int {
	n := firstOrLastInOrder(t.root, -1)
	visited := 0
	for n != nil {
		visited++
		if !visit(n.key, n.value) {
			break
		}
		n = nextOrPrevInOrder(n, +1)
	}
	return visited
}
