// Package dict is the polymorphic wrapping layer: the boundary a
// larger library would use to treat an AVL tree and a skip list as
// drop-in substitutes for one another. Each concrete container is
// adapted to the same Dictionary interface, playing the role the C
// original's function-table "dictionary" handle plays in an
// interface-typed target.
package dict

import (
	"github.com/danswartzendruber/libdict/balanced"
	"github.com/danswartzendruber/libdict/container"
	"github.com/danswartzendruber/libdict/skiplist"
)

// Cursor is the common shape both container iterators satisfy, and the
// type Dictionary's IteratorNew returns. balanced.Iterator and
// skiplist.Iterator are distinct concrete types with no shared base —
// the two containers' internal layouts differ enough that only the
// operation names are shared, not a common struct — so Cursor is the
// interface that unifies them for callers that only need the common
// operations.
type Cursor interface {
	First() bool
	Last() bool
	Next() bool
	Prev() bool
	NextN(k int) bool
	PrevN(k int) bool
	SeekKey(key any) bool
	Valid() bool
	Invalidate()
	Key() any
	Value() any
	SetValue(value any) (prior any, ok bool)
}

// Dictionary is the capability set a caller-facing container wrapper
// needs: insert, probe, search, remove, clear, traverse, count, plus
// an iterator constructor. Both *balanced.Tree and *skiplist.List are
// adapted to this interface below.
type Dictionary interface {
	Insert(key, value any, overwrite bool) container.InsertResult
	Probe(key any, valueSlot *any) container.ProbeResult
	Search(key any) (value any, ok bool)
	Remove(key any) error
	Clear() int
	Traverse(visit container.Visitor) int
	Count() int
	Free() int
	MinKey() (key any, ok bool)
	MaxKey() (key any, ok bool)
	IteratorNew() Cursor
}

type balancedDict struct{ *balanced.Tree }

func (b balancedDict) IteratorNew() Cursor { return b.Tree.Iterator() }

// NewBalanced returns a Dictionary backed by an AVL tree.
func NewBalanced(opts ...balanced.Option) Dictionary {
	return balancedDict{balanced.New(opts...)}
}

type skipListDict struct{ *skiplist.List }

func (s skipListDict) IteratorNew() Cursor { return s.List.Iterator() }

// NewSkipList returns a Dictionary backed by a skip list.
func NewSkipList(opts ...skiplist.Option) Dictionary {
	return skipListDict{skiplist.New(opts...)}
}
