package qptrie

// Iter calls a handler for every key-value pair whose key begins with the
// given prefix, in lexicographic key order with shorter keys before their
// extensions. A nil or empty prefix walks the whole trie. The handler can
// continue the walk by returning true or abort it with false; Iter reports
// whether the walk ran to completion. The trie must not be mutated while a
// walk is in progress.
func (qp *Trie) Iter(prefix []byte, handler func(key []byte, val any) bool) bool {
	top := qp.top(prefix)
	if top == nil {
		return true
	}

	return top.walk(handler)
}

// IterMut is Iter with the value mutable in place through the pointer.
func (qp *Trie) IterMut(prefix []byte, handler func(key []byte, val *any) bool) bool {
	top := qp.top(prefix)
	if top == nil {
		return true
	}

	return top.walkMut(handler)
}

// top locates the subtree holding exactly the prefixed keys.
func (qp *Trie) top(prefix []byte) *twig {
	switch {
	case qp.root == nil:
		return nil
	case len(prefix) == 0:
		return qp.root
	}

	return qp.root.prefixRoot(prefix)
}

func (t *twig) walk(handler func(key []byte, val any) bool) bool {
	if t.isLeaf() {
		return handler(t.key, t.val)
	}

	for i := range t.twigs {
		if !t.twigs[i].walk(handler) {
			return false
		}
	}

	return true
}

func (t *twig) walkMut(handler func(key []byte, val *any) bool) bool {
	if t.isLeaf() {
		return handler(t.key, &t.val)
	}

	for i := range t.twigs {
		if !t.twigs[i].walkMut(handler) {
			return false
		}
	}

	return true
}

// Items returns the prefixed key-value pairs in iteration order.
func (qp *Trie) Items(prefix []byte) []KV {
	top := qp.top(prefix)
	if top == nil {
		return nil
	}

	items := make([]KV, 0, qp.size)

	// walk the subtree without function recursion
	toVisit := make([]*twig, 1, 2*slotCount)
	toVisit[0] = top

	for l := len(toVisit); l > 0; l = len(toVisit) {
		t := toVisit[l-1]
		toVisit = toVisit[:l-1]

		if t.isLeaf() {
			items = append(items, KV{t.key, t.val})
			continue
		}

		// push the children in reverse so the lowest slot pops first
		for i := len(t.twigs) - 1; i >= 0; i-- {
			toVisit = append(toVisit, &t.twigs[i])
		}
	}

	return items
}

// Keys returns the prefixed keys in iteration order.
func (qp *Trie) Keys(prefix []byte) [][]byte {
	keys := make([][]byte, 0, qp.size)

	qp.Iter(prefix, func(key []byte, _ any) bool {
		keys = append(keys, key)
		return true
	})

	if len(keys) == 0 {
		return nil
	}

	return keys
}

// Values returns the prefixed values in iteration order.
func (qp *Trie) Values(prefix []byte) []any {
	vals := make([]any, 0, qp.size)

	qp.Iter(prefix, func(_ []byte, val any) bool {
		vals = append(vals, val)
		return true
	})

	if len(vals) == 0 {
		return nil
	}

	return vals
}
