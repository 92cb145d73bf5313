package buffer

import "sort"

// AttributeKey names a character attribute.
type AttributeKey string

const (
	// AttrForeground holds a color string understood by the host (ANSI index or hex).
	AttrForeground AttributeKey = "foreground"
	// AttrBackground holds a color string understood by the host.
	AttrBackground AttributeKey = "background"
	AttrBold       AttributeKey = "bold"
	AttrItalic     AttributeKey = "italic"
	AttrUnderline  AttributeKey = "underline"
	// AttrToken holds the syntax token type that produced the run, if any.
	AttrToken AttributeKey = "token"
)

// Attributes maps keys to attribute values.
//
// Values must be comparable (strings, bools, numbers). Attribute maps stored in
// a Storage are never mutated in place; edits produce new maps.
type Attributes map[AttributeKey]any

// Run is a maximal interval of characters sharing the same attributes.
type Run struct {
	Interval   Interval
	Attributes Attributes
}

// Keys returns the attribute keys in sorted order.
func (a Attributes) Keys() []AttributeKey {
	keys := make([]AttributeKey, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// String returns the string value of key, if set.
func (a Attributes) String(key AttributeKey) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Bool returns the bool value of key; unset keys read as false.
func (a Attributes) Bool(key AttributeKey) bool {
	v, _ := a[key].(bool)
	return v
}

func (a Attributes) clone() Attributes {
	if len(a) == 0 {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// merged returns a with every key of add set, or a itself when nothing changes.
func (a Attributes) merged(add Attributes) (Attributes, bool) {
	changed := false
	for k, v := range add {
		if cur, ok := a[k]; !ok || cur != v {
			changed = true
			break
		}
	}
	if !changed {
		return a, false
	}
	out := make(Attributes, len(a)+len(add))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range add {
		out[k] = v
	}
	return out, true
}

// without returns a minus key, or a itself when key is not set.
func (a Attributes) without(key AttributeKey) (Attributes, bool) {
	if _, ok := a[key]; !ok {
		return a, false
	}
	if len(a) == 1 {
		return nil, true
	}
	out := make(Attributes, len(a)-1)
	for k, v := range a {
		if k != key {
			out[k] = v
		}
	}
	return out, true
}

func attributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || w != v {
			return false
		}
	}
	return true
}
