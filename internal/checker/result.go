package checker

import (
	"bytes"
	"encoding/json"
)

// Result maps each selector to whether it matched. Keys keep the order in
// which they were first set; Check sets them in sorted order.
type Result struct {
	keys   []string
	values map[string]bool
}

// NewResult returns an empty Result.
func NewResult() *Result {
	return &Result{values: make(map[string]bool)}
}

// Set records present for selector. A repeated selector overwrites its value
// in place.
func (r *Result) Set(selector string, present bool) {
	if _, ok := r.values[selector]; !ok {
		r.keys = append(r.keys, selector)
	}
	r.values[selector] = present
}

// Get reports the recorded value for selector and whether it was set.
func (r *Result) Get(selector string) (present, ok bool) {
	present, ok = r.values[selector]
	return present, ok
}

// Keys returns a copy of the selectors in order.
func (r *Result) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len is the number of distinct selectors.
func (r *Result) Len() int { return len(r.keys) }

// Passed counts selectors that matched.
func (r *Result) Passed() int {
	n := 0
	for _, k := range r.keys {
		if r.values[k] {
			n++
		}
	}
	return n
}

// MarshalJSON encodes the result as an object in key order. HTML characters
// in selectors (">", "&") are not escaped.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	out := []byte{'{'}
	for i, k := range r.keys {
		if i > 0 {
			out = append(out, ',')
		}
		buf.Reset()
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		out = append(out, bytes.TrimRight(buf.Bytes(), "\n")...)
		out = append(out, ':')
		if r.values[k] {
			out = append(out, "true"...)
		} else {
			out = append(out, "false"...)
		}
	}
	out = append(out, '}')
	return out, nil
}
