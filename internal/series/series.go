// Package series turns raw readings payloads into named numeric series.
//
// The data endpoint is schema-light: a payload is a JSON object mapping a
// series name ("time", "plato", "temperature", "voltage") to an object
// whose keys are opaque record ids and whose values are the samples.
package series

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors classifying non-data payloads.
var (
	// ErrEmptyPayload indicates a valid but empty dataset.
	ErrEmptyPayload = errors.New("empty payload")

	// ErrMalformedPayload indicates a non-empty payload that is not a
	// well-formed JSON object. Transient truncated reads land here.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrRemote indicates the server reported an error on the data
	// endpoint (e.g. permission denied).
	ErrRemote = errors.New("remote data error")
)

// Set maps a series name to its ordered samples. All series in one Set
// are aligned by index position: the i-th element of every series
// belongs to the same reading. The remote producer is trusted to keep
// lengths equal; consumers must treat shorter series defensively.
type Set map[string][]float64

// Len returns the length of the shortest non-empty series, which is the
// number of index positions a consumer can safely address across the
// whole set. Returns 0 for an empty set.
func (s Set) Len() int {
	n := -1
	for _, values := range s {
		if n < 0 || len(values) < n {
			n = len(values)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

// Last returns the final sample of the named series, reporting false
// when the series is absent or empty.
func (s Set) Last(name string) (float64, bool) {
	values, ok := s[name]
	if !ok || len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}

// Parse classifies and decodes one raw payload.
//
// An empty body (or the literal null the database serves for an absent
// subtree) yields ErrEmptyPayload. An undecodable non-empty body yields
// ErrMalformedPayload. A body carrying an "error" key yields ErrRemote
// wrapping the server's message. Anything else is flattened into a Set:
// record keys are sorted lexicographically before flattening, and any
// value not representable as a number is coerced to 0.0.
func Parse(raw []byte) (Set, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if msg, ok := doc["error"]; ok {
		return nil, fmt.Errorf("%w: %s", ErrRemote, decodeErrorMessage(msg))
	}

	set := make(Set, len(doc))
	for name, rawRecords := range doc {
		set[name] = flatten(rawRecords)
	}
	return set, nil
}

// flatten turns one series object into its ordered samples. A value that
// is not an object (the original treated those as empty) flattens to nil.
func flatten(raw json.RawMessage) []float64 {
	var records map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil
	}

	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	// Record ids are push ids, which sort lexicographically in creation
	// order; sorting makes the flattening deterministic and chronological.
	sort.Strings(keys)

	values := make([]float64, 0, len(keys))
	for _, key := range keys {
		values = append(values, coerce(records[key]))
	}
	return values
}

// coerce applies the numeric coercion policy: non-numeric samples become
// 0.0 rather than failing the whole parse.
func coerce(v any) float64 {
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return f
}

func decodeErrorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
