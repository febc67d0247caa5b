// Package query parses and serializes URL query strings.
//
// A Map keeps keys in first-seen order and holds exactly one string per key:
// when a key repeats, the later value wins. Values are never coerced; callers
// decide what "true" or "42" means.
//
//	q := query.Parse("?tab=settings&share=true")
//	q.Get("tab")   // "settings"
//	q.Bool("share") // true
//	q.Encode()     // "tab=settings&share=true"
package query

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strings"
)

// Map is an ordered key → string mapping.
// The zero value is an empty map ready to use.
type Map struct {
	keys   []string
	values map[string]string
}

// New returns a Map holding the given key/value pairs in order.
// pairs must have even length; a trailing odd key maps to "".
func New(pairs ...string) Map {
	var m Map
	for i := 0; i < len(pairs); i += 2 {
		v := ""
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		m.Set(pairs[i], v)
	}
	return m
}

// Parse decodes a query string. A leading "?" is ignored, empty pieces are
// skipped, each piece is split on its first "=", "+" decodes to a space and
// %XX escapes are decoded. A piece without "=" maps its key to "".
// Malformed escapes are kept as written rather than reported.
func Parse(raw string) Map {
	raw = strings.TrimPrefix(raw, "?")

	var m Map
	for _, piece := range strings.Split(raw, "&") {
		if piece == "" {
			continue
		}
		k, v, _ := strings.Cut(piece, "=")
		m.Set(unescape(k), unescape(v))
	}
	return m
}

func unescape(s string) string {
	decoded, err := url.QueryUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// Encode serializes the map in key order. Parse(m.Encode()) equals m.
func (m Map) Encode() string {
	var b strings.Builder
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(m.values[k]))
	}
	return b.String()
}

// String implements fmt.Stringer.
func (m Map) String() string {
	return m.Encode()
}

// Get returns the value for key, or "" when absent.
func (m Map) Get(key string) string {
	return m.values[key]
}

// Lookup returns the value for key and whether it was present.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Bool reports whether key is present with the literal value "true".
func (m Map) Bool(key string) bool {
	return m.values[key] == "true"
}

// Set stores value under key. An existing key keeps its position.
func (m *Map) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Del removes key.
func (m *Map) Del(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Len returns the number of keys.
func (m Map) Len() int {
	return len(m.keys)
}

// Equal reports whether both maps hold the same keys, values and order.
func (m Map) Equal(other Map) bool {
	if len(m.keys) != len(other.keys) {
		return false
	}
	for i, k := range m.keys {
		if other.keys[i] != k || other.values[k] != m.values[k] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (m Map) Clone() Map {
	var c Map
	for _, k := range m.keys {
		c.Set(k, m.values[k])
	}
	return c
}

// ToMap returns the entries as a plain map.
func (m Map) ToMap() map[string]string {
	out := make(map[string]string, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// MarshalJSON encodes the map as a JSON object in key order.
func (m Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
