// Package doxygen holds an in-memory Doxygen configuration and translates it
// to and from the Doxyfile text dialect.
//
// Doxygen's grammar is not reimplemented: effective settings are obtained by
// asking the doxygen executable to dump them (see ReadConfig) and only that
// output needs to be parsed.
package doxygen

import "strings"

// Value is a Doxygen option value: a single text or an ordered list of texts.
type Value struct {
	items []string
	list  bool
}

// Scalar returns a single-text value.
func Scalar(s string) Value {
	return Value{items: []string{s}}
}

// List returns a list value holding items in order.
func List(items ...string) Value {
	return Value{items: append([]string{}, items...), list: true}
}

// IsList reports whether v is a list value.
func (v Value) IsList() bool { return v.list }

// Items returns the list elements. An empty scalar has no items.
func (v Value) Items() []string {
	if !v.list && (len(v.items) == 0 || v.items[0] == "") {
		return nil
	}
	return append([]string(nil), v.items...)
}

// String returns the scalar text, or the list elements joined by spaces.
func (v Value) String() string {
	return strings.Join(v.items, " ")
}

// Config is an ordered mapping from option name to Value. Overwriting an
// option keeps its original position.
type Config struct {
	keys   []string
	values map[string]Value
}

// New returns an empty configuration.
func New() *Config {
	return &Config{values: make(map[string]Value)}
}

// Len returns the number of options.
func (c *Config) Len() int { return len(c.keys) }

// Keys returns option names in insertion order.
func (c *Config) Keys() []string {
	return append([]string(nil), c.keys...)
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (Value, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Lookup returns the text of key, or "" when it is unset.
func (c *Config) Lookup(key string) string {
	return c.values[key].String()
}

// Set stores v under key.
func (c *Config) Set(key string, v Value) {
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = v
}

// SetString stores a scalar under key.
func (c *Config) SetString(key, s string) {
	c.Set(key, Scalar(s))
}

// Append adds items to the list under key, creating it when absent. A
// non-empty scalar becomes the first element of the list.
func (c *Config) Append(key string, items ...string) {
	existing, _ := c.Get(key)
	c.Set(key, List(append(existing.Items(), items...)...))
}

// Update overlays every option of other onto c, in other's order.
func (c *Config) Update(other *Config) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		c.Set(k, other.values[k])
	}
}

// Clone returns an independent copy of c.
func (c *Config) Clone() *Config {
	out := New()
	out.Update(c)
	return out
}
