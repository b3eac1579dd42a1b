// Package strictmap shows a substitutability violation: StrictMap
// satisfies Mapping but rejects nil values that Map accepts, so code
// written against Mapping breaks when handed a StrictMap.
package strictmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
)

var (
	ErrNilKey   = errors.New("key cannot be nil")
	ErrNilValue = errors.New("value cannot be nil")
)

type Mapping interface {
	Get(key any) (any, bool)
	Set(key, value any) error
	Delete(key any)
	Len() int
	Keys() []any
}

// Map is the general purpose Mapping. Set never fails. Keys come back in
// insertion order.
type Map struct {
	items map[any]any
	order []any
}

func NewMap() *Map {
	return &Map{items: make(map[any]any)}
}

func (m *Map) Get(key any) (any, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *Map) Set(key, value any) error {
	if _, ok := m.items[key]; !ok {
		m.order = append(m.order, key)
	}
	m.items[key] = value
	return nil
}

func (m *Map) Delete(key any) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	m.order = slices.DeleteFunc(m.order, func(k any) bool { return k == key })
}

func (m *Map) Len() int    { return len(m.items) }
func (m *Map) Keys() []any { return slices.Clone(m.order) }

// StrictMap refuses nil keys and values. Its Set has a stronger
// precondition than Mapping promises; this is intentional.
type StrictMap struct {
	Map
}

func NewStrictMap() *StrictMap {
	return &StrictMap{Map: *NewMap()}
}

func (s *StrictMap) Set(key, value any) error {
	if key == nil {
		return ErrNilKey
	}
	if value == nil {
		return fmt.Errorf("key %v: %w", key, ErrNilValue)
	}
	return s.Map.Set(key, value)
}

// ReplaceValues copies every member of the JSON object doc into m, in key
// order, logging each replacement to w.
func ReplaceValues(w io.Writer, m Mapping, doc string) error {
	var obj map[string]any
	if err := json.Unmarshal([]byte(doc), &obj); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		v := obj[k]
		if _, err := fmt.Fprintf(w, "... replacing key=%s with value=%s\n", k, render(v)); err != nil {
			return err
		}
		if err := m.Set(k, v); err != nil {
			return err
		}
	}
	return nil
}

func render(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
