package qptrie

import (
	"bytes"
	"fmt"
	"strings"
)

// KV represents a key-value pair.
type KV struct {
	Key []byte
	Val any
}

// Trie is an ordered map from byte-string keys to arbitrary values.
//
// Keys handed to Set, Extend or Entry are owned by the trie from then on and
// must not be mutated by the caller afterwards. Lookup keys are only read.
type Trie struct {
	root *twig
	size int
}

// New returns a new Trie optionally initialized with the given key-value pairs.
func New(init ...KV) *Trie {
	qp := &Trie{}

	for _, kv := range init {
		qp.Set(kv.Key, kv.Val)
	}

	return qp
}

// NewWithCapacity returns a new Trie expecting about hint entries. The hint
// is advisory only: the trie allocates per node, so there is nothing useful
// to reserve up front.
func NewWithCapacity(hint int) *Trie {
	_ = hint

	return New()
}

// Len returns the number of keys in the trie.
func (qp *Trie) Len() int {
	return qp.size
}

// Empty reports whether the trie has no keys.
func (qp *Trie) Empty() bool {
	return qp.root == nil
}

// Clear removes all entries, leaving the trie empty.
func (qp *Trie) Clear() {
	qp.root = nil
	qp.size = 0
}

// Get returns a value associated with the given key.
func (qp *Trie) Get(key []byte) (any, bool) {
	if leaf := qp.leafFor(key); leaf != nil {
		return leaf.val, true
	}

	return nil, false
}

// Contains reports whether the trie has an entry for the given key.
func (qp *Trie) Contains(key []byte) bool {
	return qp.leafFor(key) != nil
}

// MustGet returns the value for the given key and panics when it is absent.
func (qp *Trie) MustGet(key []byte) any {
	leaf := qp.leafFor(key)
	if leaf == nil {
		panic(fmt.Sprintf("qptrie: key %q is absent", key))
	}

	return leaf.val
}

// MustUpdate rewrites the value for an existing key in place and returns the
// new value. It panics when the key is absent.
func (qp *Trie) MustUpdate(key []byte, fn func(prev any) any) any {
	leaf := qp.leafFor(key)
	if leaf == nil {
		panic(fmt.Sprintf("qptrie: key %q is absent", key))
	}

	leaf.val = fn(leaf.val)

	return leaf.val
}

// leafFor walks branches by the key's nibbles without comparing any bytes;
// the terminal leaf is verified with a single full comparison.
func (qp *Trie) leafFor(key []byte) *twig {
	cur := qp.root
	if cur == nil {
		return nil
	}

	for !cur.isLeaf() {
		slot := nibbleSlot(key, cur.choice)

		if !cur.hasSlot(slot) {
			return nil
		}

		cur = cur.childAt(slot)
	}

	if bytes.Equal(cur.key, key) {
		return cur
	}

	return nil
}

// Set assigns a value to a key. It returns the previous value and whether
// the key was already present.
func (qp *Trie) Set(key []byte, val any) (any, bool) {
	if qp.root == nil {
		leaf := newLeaf(key, val)
		qp.root = &leaf
		qp.size++

		return nil, false
	}

	ex := qp.root.exemplar(key)

	at, ok := nibbleMismatch(ex.key, key)
	if !ok {
		// the leaf has the same key - replace the value
		prev := ex.val
		ex.val = val

		return prev, true
	}

	qp.root.graft(at, nibbleSlot(ex.key, at), key, val)
	qp.size++

	return nil, false
}

// graft inserts a new leaf for key at the branch discriminating on nibble
// index at, creating that branch when it does not exist yet. exSlot is the
// slot the existing subtree occupies at the graft point. Returns the new leaf.
func (t *twig) graft(at, exSlot int, key []byte, val any) *twig {
	for !t.isLeaf() && t.choice <= at {
		slot := nibbleSlot(key, t.choice)

		if !t.hasSlot(slot) {
			// the key diverges at a choice point an existing branch
			// already discriminates on - no split needed
			return t.insertChild(slot, newLeaf(key, val))
		}

		t = t.childAt(slot)
	}

	// push the current node down under a new branch at the graft point
	old := *t
	*t = newBranch(at)
	t.insertChild(exSlot, old)

	return t.insertChild(nibbleSlot(key, at), newLeaf(key, val))
}

// Del removes a key from the trie and returns its value, if any.
func (qp *Trie) Del(key []byte) (any, bool) {
	switch {
	case qp.root == nil:
		return nil, false

	case qp.root.isLeaf():
		if !bytes.Equal(qp.root.key, key) {
			return nil, false
		}

		val := qp.root.val
		qp.root = nil
		qp.size--

		return val, true
	}

	val, ok := qp.root.del(key)
	if ok {
		qp.size--
	}

	return val, ok
}

// del removes a key below a branch, collapsing the branch into its sole
// remaining child when its fan-out drops to one.
func (t *twig) del(key []byte) (any, bool) {
	slot := nibbleSlot(key, t.choice)

	if !t.hasSlot(slot) {
		return nil, false
	}

	child := t.childAt(slot)

	if !child.isLeaf() {
		return child.del(key)
	}

	if !bytes.Equal(child.key, key) {
		return nil, false
	}

	leaf := t.removeChild(slot)

	if len(t.twigs) == 1 {
		*t = t.twigs[0]
	}

	return leaf.val, true
}

// Update passes the current value for a key (with its presence) to fn and
// stores the result back, inserting the key when absent. It returns the
// stored value.
func (qp *Trie) Update(key []byte, fn func(prev any, ok bool) any) any {
	ent := qp.Entry(key)

	prev, ok := ent.Get()
	val := fn(prev, ok)
	ent.Set(val)

	return val
}

// Extend inserts the given key-value pairs in order.
func (qp *Trie) Extend(items ...KV) {
	for _, kv := range items {
		qp.Set(kv.Key, kv.Val)
	}
}

// Merge inserts every entry of another trie and returns the receiver.
func (qp *Trie) Merge(other *Trie) *Trie {
	if other != nil && other != qp {
		other.Iter(nil, func(key []byte, val any) bool {
			qp.Set(key, val)
			return true
		})
	}

	return qp
}

// LongestCommonPrefix returns the longest byte prefix the given key shares
// with some stored key along its descent path.
func (qp *Trie) LongestCommonPrefix(key []byte) []byte {
	if qp.root == nil {
		return nil
	}

	ex := qp.root.exemplar(key)

	at, ok := nibbleMismatch(ex.key, key)
	if !ok {
		return ex.key
	}

	return ex.key[:at/2]
}

// DelPrefix detaches every entry whose key begins with prefix - in one
// structural cut - and returns the detached entries as a new trie.
func (qp *Trie) DelPrefix(prefix []byte) *Trie {
	root := qp.root

	var detached *twig

	switch {
	case root == nil:

	case root.isLeaf():
		if bytes.HasPrefix(root.key, prefix) {
			detached, qp.root = root, nil
		}

	case bytes.HasPrefix(root.exemplar(prefix).key, prefix):
		if root.choice >= 2*len(prefix) {
			detached, qp.root = root, nil
		} else {
			detached = root.delPrefix(prefix)
		}
	}

	if detached == nil {
		return New()
	}

	count := detached.count()
	qp.size -= count

	return &Trie{root: detached, size: count}
}

// delPrefix cuts out the subtree holding exactly the prefixed keys below a
// branch, collapsing the branch when its fan-out drops to one. The caller
// has verified the prefix is present below t and t.choice < 2*len(prefix).
func (t *twig) delPrefix(prefix []byte) *twig {
	slot := nibbleSlot(prefix, t.choice)
	child := t.childAt(slot)

	if !child.isLeaf() && child.choice < 2*len(prefix) {
		return child.delPrefix(prefix)
	}

	node := t.removeChild(slot)

	if len(t.twigs) == 1 {
		*t = t.twigs[0]
	}

	return &node
}

// prefixRoot returns the node whose subtree holds exactly the keys beginning
// with prefix, or nil when there are none. Branch decisions only examine one
// nibble each, so the exemplar comparison is what validates the positions
// skipped on the way down.
func (t *twig) prefixRoot(prefix []byte) *twig {
	if t.isLeaf() {
		if bytes.HasPrefix(t.key, prefix) {
			return t
		}

		return nil
	}

	if !bytes.HasPrefix(t.exemplar(prefix).key, prefix) {
		return nil
	}

	for !t.isLeaf() && t.choice < 2*len(prefix) {
		t = t.childAt(nibbleSlot(prefix, t.choice))
	}

	return t
}

func (qp *Trie) String() string {
	if qp.root == nil {
		return "<qptrie|empty>"
	}

	var b strings.Builder

	b.WriteString("<qptrie>\n")
	qp.root.dump(&b, "  ")

	return strings.TrimRight(b.String(), "\n")
}
