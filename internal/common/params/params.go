// internal/common/params/params.go
package params

import (
	"encoding/json"
	"math"
)

// Bag is the untyped named-parameter bag handed to a worker as job
// variables. Readers return the zero value and false when the key is missing,
// null, or not coercible to the requested type; callers that need to
// distinguish "absent" from "present but wrong-typed" use Has together with
// the typed reader.
type Bag map[string]interface{}

// FromJSON decodes a job-variables payload into a Bag.
func FromJSON(data []byte) (Bag, error) {
	var bag Bag
	if err := json.Unmarshal(data, &bag); err != nil {
		return nil, err
	}
	if bag == nil {
		bag = Bag{}
	}
	return bag, nil
}

// Has reports whether key is present with a non-null value.
func (b Bag) Has(key string) bool {
	v, ok := b[key]
	return ok && v != nil
}

// Get returns the raw value, with ok=false for missing or null keys.
func (b Bag) Get(key string) (interface{}, bool) {
	v, ok := b[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String reads key as a string.
func (b Bag) String(key string) (string, bool) {
	v, ok := b.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool reads key as a bool.
func (b Bag) Bool(key string) (bool, bool) {
	v, ok := b.Get(key)
	if !ok {
		return false, false
	}
	t, ok := v.(bool)
	return t, ok
}

// Int reads key as an integer. JSON numbers arrive as float64; a
// whole-valued float narrows losslessly, anything fractional does not read
// as int.
func (b Bag) Int(key string) (int, bool) {
	v, ok := b.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
		return 0, false
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Float reads key as a float64, widening integer-valued sources losslessly.
func (b Bag) Float(key string) (float64, bool) {
	v, ok := b.Get(key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f, true
		}
		return 0, false
	default:
		return 0, false
	}
}
