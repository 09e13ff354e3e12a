package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Context maps placeholder keys to values.
type Context map[string]Value

// ParseContext decodes a JSON object into a Context.
func ParseContext(data []byte) (Context, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	fields, ok := v.AsObject()
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", v.Kind())
	}
	return Context(fields), nil
}

// Merge combines default values with template-declared values.
// Every declared key is kept unchanged; a default is added only when its
// key is absent from declared. Neither input is modified.
func Merge(defaults map[string]string, declared Context) Context {
	merged := make(Context, len(declared)+len(defaults))
	for k, v := range declared {
		merged[k] = v
	}
	for k, v := range defaults {
		if _, exists := declared[k]; !exists {
			merged[k] = String(v)
		}
	}
	return merged
}

// SnapshotOriginal returns a deep copy of ctx without reserved keys.
func SnapshotOriginal(ctx Context) Context {
	snapshot := make(Context, len(ctx))
	for k, v := range ctx {
		if IsReservedKey(k) {
			continue
		}
		snapshot[k] = v.Clone()
	}
	return snapshot
}

// IsReservedKey reports whether key is configuration-internal.
func IsReservedKey(key string) bool {
	return strings.HasPrefix(key, ReservedPrefix)
}

// Get returns the value for key.
func (c Context) Get(key string) (Value, bool) {
	v, ok := c[key]
	return v, ok
}

// Lookup resolves a dotted path such as "a.b.0" through nested objects and
// arrays. Numeric segments index arrays.
func (c Context) Lookup(path string) (Value, bool) {
	segments := strings.Split(path, ".")
	current, ok := c[segments[0]]
	if !ok {
		return Null(), false
	}
	for _, seg := range segments[1:] {
		switch current.Kind() {
		case KindObject:
			current, ok = current.Field(seg)
		case KindArray:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return Null(), false
			}
			current, ok = current.Index(idx)
		default:
			return Null(), false
		}
		if !ok {
			return Null(), false
		}
	}
	return current, true
}

// Keys returns the sorted keys.
func (c Context) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	for k, v := range c {
		out[k] = v.Clone()
	}
	return out
}

// Interface converts the context into a plain map.
func (c Context) Interface() map[string]interface{} {
	out := make(map[string]interface{}, len(c))
	for k, v := range c {
		out[k] = v.Interface()
	}
	return out
}
