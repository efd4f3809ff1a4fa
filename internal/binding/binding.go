// Package binding assigns sound groups to keyboard keys.
//
// Keys come from a fixed ordered set and are handed out in the order groups
// are admitted to the catalog: the first group gets the first key, and so
// on. Assignments are injective and held for the process lifetime. When the
// set is exhausted further groups stay unbound; the catalog reports and
// drops them.
package binding

import (
	"errors"
	"fmt"
)

// KeySet is the ordered bindable key set: ten digits then twenty-six
// letters, 36 slots. Command keys (quit, stop-all, toggles, …) never
// collide with it; they are all symbols or named keys.
const KeySet = "0123456789abcdefghijklmnopqrstuvwxyz"

var (
	// ErrNoFreeKey means every key in the set is already assigned.
	ErrNoFreeKey = errors.New("binding: no free key")

	// ErrNotFound means the name or key has no binding.
	ErrNotFound = errors.New("binding: not found")
)

// Binding is one key→group assignment.
type Binding struct {
	Key  rune
	Name string
}

// Table holds the key assignments. The zero value is unusable; construct
// with New. Failure to construct a Table is the one unrecoverable error in
// the program.
type Table struct {
	keys   []rune
	next   int
	byKey  map[rune]string
	byName map[string]rune
	order  []Binding
}

// New builds a table over the standard KeySet.
func New() (*Table, error) {
	return NewWithKeys(KeySet)
}

// NewWithKeys builds a table over a custom ordered key set. The set must be
// non-empty and free of duplicates.
func NewWithKeys(keys string) (*Table, error) {
	if keys == "" {
		return nil, errors.New("binding: empty key set")
	}
	rs := []rune(keys)
	seen := make(map[rune]bool, len(rs))
	for _, r := range rs {
		if seen[r] {
			return nil, fmt.Errorf("binding: duplicate key %q in key set", r)
		}
		seen[r] = true
	}
	return &Table{
		keys:   rs,
		byKey:  make(map[rune]string, len(rs)),
		byName: make(map[string]rune, len(rs)),
	}, nil
}

// Assign binds name to the next unused key and returns it. Assigning a name
// that already holds a key returns that key again. When the set is
// exhausted it returns ErrNoFreeKey.
func (t *Table) Assign(name string) (rune, error) {
	if k, ok := t.byName[name]; ok {
		return k, nil
	}
	if t.next >= len(t.keys) {
		return 0, fmt.Errorf("assigning key for %q: %w", name, ErrNoFreeKey)
	}
	k := t.keys[t.next]
	t.next++
	t.byKey[k] = name
	t.byName[name] = k
	t.order = append(t.order, Binding{Key: k, Name: name})
	return k, nil
}

// GroupName returns the group bound to key.
func (t *Table) GroupName(key rune) (string, bool) {
	name, ok := t.byKey[key]
	return name, ok
}

// Key returns the key bound to name, or ErrNotFound.
func (t *Table) Key(name string) (rune, error) {
	k, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("looking up key for %q: %w", name, ErrNotFound)
	}
	return k, nil
}

// Bound reports whether key has an assignment.
func (t *Table) Bound(key rune) bool {
	_, ok := t.byKey[key]
	return ok
}

// Bindings returns every assignment in assignment order.
func (t *Table) Bindings() []Binding {
	out := make([]Binding, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of assignments made.
func (t *Table) Len() int { return len(t.order) }

// Capacity returns the size of the key set.
func (t *Table) Capacity() int { return len(t.keys) }
