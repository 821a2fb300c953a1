// Package forms holds user-entered field values for the three registry forms.
// Stores perform no validation or coercion; values are kept as raw text.
package forms

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownField is returned when a field name does not belong to the form.
var ErrUnknownField = errors.New("unknown field")

// Field names as used by the presentation surface.
const (
	FieldAuthor = "author"
	FieldTitle  = "title"
	FieldCopies = "copies"
	FieldItemID = "itemId"
)

// AddItem is the add-item form.
type AddItem struct {
	Author string `json:"author"`
	Title  string `json:"title"`
	Copies string `json:"copies"`
}

// ItemRef is the check-out and return form.
type ItemRef struct {
	ItemID string `json:"itemId"`
}

// Store is one independent form. Updates are structural: setting a field
// preserves every other field.
type Store[T any] struct {
	mu      sync.RWMutex
	initial T
	cur     T
	set     func(v *T, name, value string) bool
}

func newStore[T any](initial T, set func(v *T, name, value string) bool) *Store[T] {
	return &Store[T]{initial: initial, cur: initial, set: set}
}

// Get returns a copy of the current values.
func (s *Store[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur
}

// Initial returns the shape Reset restores.
func (s *Store[T]) Initial() T { return s.initial }

// UpdateField sets name to value.
func (s *Store[T]) UpdateField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.cur
	if !s.set(&next, name, value) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	s.cur = next
	return nil
}

// Reset restores the initial shape.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	s.cur = s.initial
	s.mu.Unlock()
}

// NewAddItem returns an empty add-item form; copies starts at "0".
func NewAddItem() *Store[AddItem] {
	return newStore(AddItem{Copies: "0"}, func(v *AddItem, name, value string) bool {
		switch name {
		case FieldAuthor:
			v.Author = value
		case FieldTitle:
			v.Title = value
		case FieldCopies:
			v.Copies = value
		default:
			return false
		}
		return true
	})
}

// NewCheckout returns an empty check-out form.
func NewCheckout() *Store[ItemRef] { return newItemRef() }

// NewReturn returns an empty return form.
func NewReturn() *Store[ItemRef] { return newItemRef() }

func newItemRef() *Store[ItemRef] {
	return newStore(ItemRef{}, func(v *ItemRef, name, value string) bool {
		if name != FieldItemID {
			return false
		}
		v.ItemID = value
		return true
	})
}
