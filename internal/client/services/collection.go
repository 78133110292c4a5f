package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/folio/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotEditing   = errors.New("no entry is being edited")
	ErrOutOfRange   = errors.New("no entry at that position")
	ErrBusy         = errors.New("another save is in progress")
	ErrNotConfirmed = errors.New("deletion not confirmed")
)

// Entry is an element of an admin-edited collection.
type Entry[T any] interface {
	Key() models.ID
	WithKey(id models.ID) T
	Clone() T
}

// Collection is the editing discipline shared by the project and experience
// screens. The whole list is loaded once; Add, Update and Delete only touch
// the local copy; Save writes the whole list back in one call. A second admin
// saving in between is overwritten: the last Save wins.
type Collection[T Entry[T]] struct {
	mu      sync.Mutex
	items   []T
	buffer  *T
	editing int
	saving  bool

	load     func(ctx context.Context) ([]T, error)
	save     func(ctx context.Context, items []T) error
	newEntry func() T
}

// NewCollection wires a collection to its loader and saver. newEntry builds
// the blank entry that Add appends; it may be nil.
func NewCollection[T Entry[T]](
	load func(ctx context.Context) ([]T, error),
	save func(ctx context.Context, items []T) error,
	newEntry func() T,
) *Collection[T] {
	if newEntry == nil {
		newEntry = func() T {
			var zero T
			return zero
		}
	}
	return &Collection[T]{load: load, save: save, newEntry: newEntry, editing: -1}
}

// Load replaces the local list with the server's copy and drops any open
// buffer.
func (c *Collection[T]) Load(ctx context.Context) error {
	items, err := c.load(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.buffer, c.editing = nil, -1
	return nil
}

// Items returns a copy of the local list.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Add appends a blank entry with a temporary id and opens it for editing.
// It returns the new entry's position.
func (c *Collection[T]) Add() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := c.newEntry().WithKey(models.ID(uuid.NewString()))
	c.items = append(c.items, item)
	c.editing = len(c.items) - 1
	buf := item.Clone()
	c.buffer = &buf
	return c.editing
}

// Edit copies the entry at i into the buffer. The list itself is untouched
// until Update.
func (c *Collection[T]) Edit(i int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.items) {
		return ErrOutOfRange
	}
	buf := c.items[i].Clone()
	c.buffer, c.editing = &buf, i
	return nil
}

// Buffer returns a copy of the entry being edited.
func (c *Collection[T]) Buffer() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		var zero T
		return zero, false
	}
	return (*c.buffer).Clone(), true
}

// SetBuffer replaces the buffer contents.
func (c *Collection[T]) SetBuffer(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return ErrNotEditing
	}
	v = v.Clone()
	c.buffer = &v
	return nil
}

// Update writes the buffer back into the list and closes it. The target is
// found by id; entries without an id fall back to the edited position.
func (c *Collection[T]) Update() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer == nil {
		return ErrNotEditing
	}

	pos := c.editing
	if key := (*c.buffer).Key(); key != "" {
		for i, it := range c.items {
			if it.Key() == key {
				pos = i
				break
			}
		}
	}
	if pos < 0 || pos >= len(c.items) {
		return ErrOutOfRange
	}

	c.items[pos] = *c.buffer
	c.buffer, c.editing = nil, -1
	return nil
}

// Cancel closes the buffer without touching the list.
func (c *Collection[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.buffer, c.editing = nil, -1
}

// Delete removes the entry at i once confirm approves it. Nothing is sent to
// the server until Save.
func (c *Collection[T]) Delete(i int, confirm func(T) bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.items) {
		return ErrOutOfRange
	}
	if confirm == nil || !confirm(c.items[i].Clone()) {
		return ErrNotConfirmed
	}

	c.items = append(c.items[:i:i], c.items[i+1:]...)
	switch {
	case c.editing == i:
		c.buffer, c.editing = nil, -1
	case c.editing > i:
		c.editing--
	}
	return nil
}

// Save persists the current local list, replacing the server's copy.
func (c *Collection[T]) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrBusy
	}
	c.saving = true
	snapshot := cloneAll(c.items)
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	return c.save(ctx, snapshot)
}

func cloneAll[T Entry[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
