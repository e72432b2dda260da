package qptrie

import "encoding/json"

// trie contents travel as an ordered list of pairs; keys are raw bytes and
// survive the round-trip byte-for-byte (encoding/json base64-encodes them).
type kvJSON struct {
	Key []byte `json:"k"`
	Val any    `json:"v"`
}

// MarshalJSON encodes the trie structurally: the pairs are collected in
// iteration order by walking the trie. Values must be JSON-marshalable.
func (qp *Trie) MarshalJSON() ([]byte, error) {
	items := make([]kvJSON, 0, qp.size)

	qp.Iter(nil, func(key []byte, val any) bool {
		items = append(items, kvJSON{Key: key, Val: val})
		return true
	})

	return json.Marshal(items)
}

// UnmarshalJSON replaces the trie's contents with the pairs encoded by
// MarshalJSON, reconstituting the structure through repeated Set. Values
// decode with the default json mapping (numbers become float64).
func (qp *Trie) UnmarshalJSON(data []byte) error {
	var items []kvJSON

	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	qp.Clear()

	for _, kv := range items {
		qp.Set(kv.Key, kv.Val)
	}

	return nil
}
