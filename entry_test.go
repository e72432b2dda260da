package qptrie

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntry_Vacant(t *testing.T) {
	t.Parallel()

	qp := New()
	ent := qp.Entry([]byte("one"))

	assert.False(t, ent.Exists())
	assert.Equal(t, []byte("one"), ent.Key())

	_, ok := ent.Get()
	assert.False(t, ok)

	prev, replaced := ent.Set(1)

	assert.Nil(t, prev)
	assert.False(t, replaced)
	assert.True(t, ent.Exists())
	assert.Equal(t, 1, qp.Len())
	assert.Equal(t, 1, qp.MustGet([]byte("one")))
}

func TestEntry_Occupied(t *testing.T) {
	t.Parallel()

	qp := New(KV{[]byte("one"), 1})
	ent := qp.Entry([]byte("one"))

	require.True(t, ent.Exists())

	val, ok := ent.Get()

	assert.True(t, ok)
	assert.Equal(t, 1, val)

	prev, replaced := ent.Set(11)

	assert.Equal(t, 1, prev)
	assert.True(t, replaced)
	assert.Equal(t, 11, qp.MustGet([]byte("one")))
	assert.Equal(t, 1, qp.Len())
}

func TestEntry_OrInsert(t *testing.T) {
	t.Parallel()

	qp := New(KV{[]byte("have"), 1})

	assert.Equal(t, 1, qp.Entry([]byte("have")).OrInsert(99))
	assert.Equal(t, 99, qp.Entry([]byte("miss")).OrInsert(99))
	assert.Equal(t, 2, qp.Len())

	called := false
	val := qp.Entry([]byte("have")).OrInsertWith(func() any {
		called = true
		return 0
	})

	assert.Equal(t, 1, val)
	assert.False(t, called, "the constructor must not run for an occupied entry")

	val = qp.Entry([]byte("lazy")).OrInsertWith(func() any { return 7 })

	assert.Equal(t, 7, val)
	assert.Equal(t, 3, qp.Len())
}

func TestEntry_Del(t *testing.T) {
	t.Parallel()

	qp := New(KV{[]byte("one"), 1}, KV{[]byte("two"), 2})
	ent := qp.Entry([]byte("one"))

	val, ok := ent.Del()

	assert.True(t, ok)
	assert.Equal(t, 1, val)
	assert.False(t, ent.Exists())
	assert.Equal(t, 1, qp.Len())

	_, ok = ent.Del()
	assert.False(t, ok)

	// setting through the stale handle still works via a fresh descent
	prev, replaced := ent.Set(10)

	assert.Nil(t, prev)
	assert.False(t, replaced)
	assert.Equal(t, 10, qp.MustGet([]byte("one")))
	assert.Equal(t, 2, qp.Len())

	validate(t, qp)
}

// a vacant insert through an entry must keep Len in sync
func TestEntry_CountAfterVacantInsert(t *testing.T) {
	t.Parallel()

	qp := New()

	qp.Set([]byte("one"), 1)
	require.Equal(t, 1, qp.Len())

	ent := qp.Entry([]byte("two"))

	require.False(t, ent.Exists())
	ent.Set(2)

	assert.Equal(t, 2, qp.Len())
	validate(t, qp)
}

// graft-point caching is easy to get wrong when one key is a strict
// prefix of another; in each triple the third key then diverges from the
// first in the high nibble of the first byte, above the existing branch
func TestEntry_Regressions(t *testing.T) {
	t.Parallel()

	for _, tcase := range [][][]byte{
		{{83}, {83, 0}, {35}},
		{{30}, {30, 0}, {13}},
	} {
		tcase := tcase
		name := fmt.Sprintf("%v", tcase)

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var (
				qp    = New()
				state = map[string]any{}
			)

			for _, key := range tcase {
				ent := qp.Entry(key)
				ent.Set(0)
				state[string(key)] = 0

				requireSameAsMap(t, qp, state)
				validate(t, qp)
			}
		})
	}
}

func TestEntry_RandomOps(t *testing.T) {
	t.Parallel()

	const (
		total = 10_000
		seed  = 314
	)

	var (
		qp    = New()
		state = map[string]any{}
		fake  = gofakeit.New(seed)
	)

	randomKey := func() []byte {
		key := make([]byte, fake.Number(0, 5))

		for i := range key {
			key[i] = byte(fake.Number(0, 4))
		}

		return key
	}

	for i := 0; i < total; i++ {
		key := randomKey()

		if fake.Number(0, 2) != 0 {
			val := fake.Number(0, 1<<30)
			qp.Entry(key).Set(val)
			state[string(key)] = val

			continue
		}

		var (
			_, expOK = state[string(key)]
			_, ok    = qp.Entry(key).Del()
		)

		require.Equal(t, expOK, ok, "Entry(%v).Del", key)
		delete(state, string(key))
	}

	requireSameAsMap(t, qp, state)
	validate(t, qp)
}
