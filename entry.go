package qptrie

// Entry is a handle to the location a key occupies - or would occupy - in a
// Trie, computed with a single descent. An occupied handle reads, replaces
// and removes the stored value; a vacant handle remembers the graft point
// found during the descent, so installing a value does not repeat the search.
//
// A handle needs exclusive access to its trie and is invalidated by any
// mutation it did not perform itself.
type Entry struct {
	qp  *Trie
	key []byte

	leaf *twig // set iff the entry is occupied

	// graft point captured during the descent, for a vacant entry
	at     int
	exSlot int

	stale bool // the cached graft point was invalidated by Del
}

// Entry returns a handle for the given key.
func (qp *Trie) Entry(key []byte) *Entry {
	ent := &Entry{qp: qp, key: key}

	if qp.root == nil {
		return ent
	}

	ex := qp.root.exemplar(key)

	at, ok := nibbleMismatch(ex.key, key)
	if !ok {
		ent.leaf = ex
		return ent
	}

	ent.at = at
	ent.exSlot = nibbleSlot(ex.key, at)

	return ent
}

// Exists reports whether the entry is occupied.
func (ent *Entry) Exists() bool {
	return ent.leaf != nil
}

// Key returns the key the handle was created for.
func (ent *Entry) Key() []byte {
	return ent.key
}

// Get returns the stored value, if the entry is occupied.
func (ent *Entry) Get() (any, bool) {
	if ent.leaf == nil {
		return nil, false
	}

	return ent.leaf.val, true
}

// Set stores a value at the entry, completing the insertion recorded during
// the descent when the entry is vacant. It returns the previous value and
// whether the entry was occupied.
func (ent *Entry) Set(val any) (any, bool) {
	if ent.leaf != nil {
		prev := ent.leaf.val
		ent.leaf.val = val

		return prev, true
	}

	ent.leaf = ent.install(val)

	return nil, false
}

// OrInsert installs the given value when the entry is vacant and returns
// the stored value.
func (ent *Entry) OrInsert(val any) any {
	if ent.leaf == nil {
		ent.leaf = ent.install(val)
	}

	return ent.leaf.val
}

// OrInsertWith is OrInsert constructing the value only when it is needed.
func (ent *Entry) OrInsertWith(fn func() any) any {
	if ent.leaf == nil {
		ent.leaf = ent.install(fn())
	}

	return ent.leaf.val
}

// Del removes an occupied entry from the trie and returns its value. The
// handle becomes vacant; the removal restructures the trie, so a subsequent
// install runs a fresh descent instead of reusing the cached graft point.
func (ent *Entry) Del() (any, bool) {
	if ent.leaf == nil {
		return nil, false
	}

	ent.leaf = nil
	ent.stale = true

	return ent.qp.Del(ent.key)
}

func (ent *Entry) install(val any) *twig {
	qp := ent.qp

	if ent.stale {
		qp.Set(ent.key, val)
		return qp.leafFor(ent.key)
	}

	qp.size++

	if qp.root == nil {
		leaf := newLeaf(ent.key, val)
		qp.root = &leaf

		return qp.root
	}

	return qp.root.graft(ent.at, ent.exSlot, ent.key, val)
}
