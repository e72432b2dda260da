package qptrie

import "bytes"

// SubTrie is a read-only view of the entries of a Trie whose keys share a
// byte prefix. A view stays valid only as long as the underlying trie is
// not mutated.
type SubTrie struct {
	root   *twig
	prefix []byte
}

// SubTrie returns a view of all entries whose keys begin with prefix. An
// empty prefix views the whole trie.
func (qp *Trie) SubTrie(prefix []byte) *SubTrie {
	return &SubTrie{root: qp.top(prefix), prefix: prefix}
}

// Empty reports whether the view holds no entries.
func (st *SubTrie) Empty() bool {
	return st.root == nil
}

// Len counts the entries in the view by walking its subtree.
func (st *SubTrie) Len() int {
	if st.root == nil {
		return 0
	}

	return st.root.count()
}

// Get returns a value associated with the given full key.
func (st *SubTrie) Get(key []byte) (any, bool) {
	leaf := st.leafFor(key)
	if leaf == nil {
		return nil, false
	}

	return leaf.val, true
}

// Contains reports whether the view has an entry for the given full key.
func (st *SubTrie) Contains(key []byte) bool {
	return st.leafFor(key) != nil
}

func (st *SubTrie) leafFor(key []byte) *twig {
	cur := st.root

	if cur == nil || !bytes.HasPrefix(key, st.prefix) {
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

// Iter calls a handler for every pair in the view, in lexicographic key
// order, until the handler returns false. It reports whether the walk ran
// to completion.
func (st *SubTrie) Iter(handler func(key []byte, val any) bool) bool {
	if st.root == nil {
		return true
	}

	return st.root.walk(handler)
}

// Items returns the view's key-value pairs in iteration order.
func (st *SubTrie) Items() []KV {
	if st.root == nil {
		return nil
	}

	items := make([]KV, 0, 2*slotCount)

	st.root.walk(func(key []byte, val any) bool {
		items = append(items, KV{key, val})
		return true
	})

	return items
}

// Keys returns the view's keys in iteration order.
func (st *SubTrie) Keys() [][]byte {
	if st.root == nil {
		return nil
	}

	keys := make([][]byte, 0, 2*slotCount)

	st.root.walk(func(key []byte, _ any) bool {
		keys = append(keys, key)
		return true
	})

	return keys
}

// Sub narrows the view to the keys that additionally continue with next
// after the current prefix.
func (st *SubTrie) Sub(next []byte) *SubTrie {
	prefix := make([]byte, 0, len(st.prefix)+len(next))
	prefix = append(prefix, st.prefix...)
	prefix = append(prefix, next...)

	sub := &SubTrie{prefix: prefix}

	if st.root == nil || len(next) == 0 {
		sub.root = st.root
		return sub
	}

	sub.root = st.root.prefixRoot(prefix)

	return sub
}
