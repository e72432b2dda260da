package qptrie

import (
	"fmt"
	"strings"

	"github.com/hideo55/go-popcount"
)

// twig is a uniform element of a QP-Trie - either a leaf holding a key-value
// pair or a branch discriminating on a single nibble index.
//
// A branch keeps its children densely packed in ascending slot order: bit s
// of the bitmap is set iff a child exists for slot s, and that child lives at
// position popcount(bitmap & (1<<s - 1)) of the twigs slice.
type twig struct {
	choice int    // branch: nibble index this branch discriminates on
	bitmap uint32 // branch: occupancy of the 17 child slots
	twigs  []twig // branch: dense children, ascending slot order

	key []byte // leaf: the full key, owned by the trie
	val any    // leaf: the associated value
}

func newLeaf(key []byte, val any) twig {
	return twig{key: key, val: val}
}

func newBranch(choice int) twig {
	return twig{choice: choice, twigs: make([]twig, 0, 2)}
}

func (t *twig) isLeaf() bool {
	return t.twigs == nil
}

func (t *twig) hasSlot(slot int) bool {
	return t.bitmap&(1<<slot) != 0
}

// slotIndex converts a slot into a position in the dense child slice.
func (t *twig) slotIndex(slot int) int {
	return int(popcount.Count(uint64(t.bitmap & (1<<slot - 1))))
}

// childAt returns the child for a slot the bitmap has.
func (t *twig) childAt(slot int) *twig {
	return &t.twigs[t.slotIndex(slot)]
}

// anyChild returns the child for the slot when present and an arbitrary
// child otherwise. The arbitrary child is enough to reach an exemplar leaf.
func (t *twig) anyChild(slot int) *twig {
	if t.hasSlot(slot) {
		return t.childAt(slot)
	}

	return &t.twigs[0]
}

// insertChild adds a child at a vacant slot, shifting the tail of the dense
// slice right by one, and returns its location.
func (t *twig) insertChild(slot int, child twig) *twig {
	idx := t.slotIndex(slot)

	t.bitmap |= 1 << slot
	t.twigs = append(t.twigs, twig{})
	copy(t.twigs[idx+1:], t.twigs[idx:])
	t.twigs[idx] = child

	return &t.twigs[idx]
}

// removeChild removes and returns the child at an occupied slot, shifting
// the tail of the dense slice left by one.
func (t *twig) removeChild(slot int) twig {
	idx := t.slotIndex(slot)
	child := t.twigs[idx]

	t.bitmap &^= 1 << slot
	copy(t.twigs[idx:], t.twigs[idx+1:])
	t.twigs[len(t.twigs)-1] = twig{}
	t.twigs = t.twigs[:len(t.twigs)-1]

	return child
}

// exemplar descends to some leaf of the subtree the key belongs under,
// preferring the key's own path. The critical nibble between the key and
// the exemplar decides where a new branch has to be grafted.
func (t *twig) exemplar(key []byte) *twig {
	for !t.isLeaf() {
		t = t.anyChild(nibbleSlot(key, t.choice))
	}

	return t
}

// count walks the subtree and counts its leaves.
func (t *twig) count() int {
	if t.isLeaf() {
		return 1
	}

	var total int

	for i := range t.twigs {
		total += t.twigs[i].count()
	}

	return total
}

func (t *twig) dump(b *strings.Builder, indent string) {
	if t.isLeaf() {
		fmt.Fprintf(b, "%s<leaf|%q|%v>\n", indent, t.key, t.val)
		return
	}

	fmt.Fprintf(b, "%s<branch|ch:%d|bmp:%017b>\n", indent, t.choice, t.bitmap)

	for i := range t.twigs {
		t.twigs[i].dump(b, indent+"  ")
	}
}
