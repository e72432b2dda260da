package qptrie

import (
	"bytes"
	"sort"
	"testing"

	"github.com/hideo55/go-popcount"

	"github.com/stretchr/testify/require"
)

// validate checks the structural invariants of the trie:
//
//   - every branch fans out to at least two children;
//   - the bitmap always agrees with the dense child slice;
//   - choice points strictly increase with depth;
//   - every leaf is reachable only through the slots its key dictates;
//   - the stored size equals the number of leaves.
func validate(t *testing.T, qp *Trie) {
	t.Helper()

	if qp.root == nil {
		require.Equal(t, 0, qp.size, "an empty trie must have size 0")
		return
	}

	total := validateTwig(t, qp.root, -1)

	require.Equal(t, qp.size, total, "size must equal the number of leaves")
}

func validateTwig(t *testing.T, tw *twig, minChoice int) int {
	t.Helper()

	if tw.isLeaf() {
		return 1
	}

	require.Greater(t, len(tw.twigs), 1, "branch fan-out must be at least 2")
	require.Greater(t, tw.choice, minChoice, "choices must strictly increase")
	require.Equal(t,
		len(tw.twigs), int(popcount.Count(uint64(tw.bitmap))),
		"the bitmap must agree with the child count",
	)

	var total int

	for slot := 0; slot < slotCount; slot++ {
		if !tw.hasSlot(slot) {
			continue
		}

		child := tw.childAt(slot)

		child.walk(func(key []byte, _ any) bool {
			require.Equal(t, slot, nibbleSlot(key, tw.choice),
				"leaf %q reached through the wrong slot", key)
			return true
		})

		total += validateTwig(t, child, tw.choice)
	}

	return total
}

// sortedKeys returns the keys of a reference state map in byte order.
func sortedKeys(state map[string]any) []string {
	keys := make([]string, 0, len(state))

	for key := range state {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// requireSameAsMap checks that the trie and a reference map hold exactly the
// same pairs and that Iter yields them in byte order.
func requireSameAsMap(t *testing.T, qp *Trie, state map[string]any) {
	t.Helper()

	require.Equal(t, len(state), qp.Len())

	for key, val := range state {
		actual, ok := qp.Get([]byte(key))

		require.True(t, ok, "key %q must be present", key)
		require.Equal(t, val, actual, "key %q", key)
	}

	var (
		keys = sortedKeys(state)
		idx  int
	)

	qp.Iter(nil, func(key []byte, val any) bool {
		require.Less(t, idx, len(keys))
		require.Equal(t, []byte(keys[idx]), key, "iteration order mismatch at %d", idx)
		require.Equal(t, state[keys[idx]], val)
		idx++

		return true
	})

	require.Equal(t, len(keys), idx, "Iter must yield every pair")
}

func collect(qp *Trie, prefix []byte) (keys [][]byte, vals []any) {
	qp.Iter(prefix, func(key []byte, val any) bool {
		keys = append(keys, key)
		vals = append(vals, val)
		return true
	})

	return keys, vals
}

func hasPrefix(key, prefix []byte) bool {
	return bytes.HasPrefix(key, prefix)
}
