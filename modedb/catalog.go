// Package modedb keeps a catalog of display modes collected from several
// sources, dropping modes that only differ from a known one in their pixel
// clock.
package modedb

import (
	"errors"
	"fmt"
	"sync"

	"github.com/sarchlab/modeline/mode"
)

// ErrNotFound is returned when no entry has the requested ID.
var ErrNotFound = errors.New("mode not found")

// Entry is one mode of the catalog.
type Entry struct {
	ID     string           `json:"id" yaml:"id"`
	Source string           `json:"source" yaml:"source"`
	Mode   mode.DisplayMode `json:"mode" yaml:"mode"`
}

// Catalog is a de-duplicated, insertion-ordered collection of modes. It is
// safe for concurrent use.
type Catalog struct {
	lock    sync.RWMutex
	ids     IDGenerator
	store   Store
	entries []Entry
	index   map[string]int
}

// NewCatalog creates an empty catalog that lives in memory only.
func NewCatalog(ids IDGenerator) *Catalog {
	return &Catalog{
		ids:   ids,
		index: make(map[string]int),
	}
}

// OpenCatalog creates a catalog backed by a store. The entries already in the
// store are loaded and every new entry is forwarded to it.
func OpenCatalog(ids IDGenerator, store Store) (*Catalog, error) {
	c := NewCatalog(ids)
	c.store = store

	entries, err := store.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	for _, e := range entries {
		c.index[e.ID] = len(c.entries)
		c.entries = append(c.entries, e)
	}

	return c, nil
}

// Add inserts a copy of the mode. If an equivalent mode is already in the
// catalog, that entry is returned with added set to false. Modes whose sync
// marks are out of order are rejected.
func (c *Catalog) Add(
	source string,
	m *mode.DisplayMode,
) (entry Entry, added bool, err error) {
	if m == nil {
		return Entry{}, false, fmt.Errorf("add %s: %w", source, mode.ErrInvalidMode)
	}

	if err := m.Check(); err != nil {
		return Entry{}, false, fmt.Errorf("add %s: %w", source, err)
	}

	c.lock.Lock()
	defer c.lock.Unlock()

	for _, e := range c.entries {
		if mode.EqualNoClocks(&e.Mode, m) {
			return e, false, nil
		}
	}

	entry = Entry{
		ID:     c.nextID(),
		Source: source,
		Mode:   *m.Clone(),
	}

	c.index[entry.ID] = len(c.entries)
	c.entries = append(c.entries, entry)

	if c.store != nil {
		c.store.Insert(entry)
	}

	return entry, true, nil
}

func (c *Catalog) nextID() string {
	for {
		id := c.ids.Generate()
		if _, taken := c.index[id]; !taken {
			return id
		}
	}
}

// Get returns the entry with the ID.
func (c *Catalog) Get(id string) (Entry, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	i, ok := c.index[id]
	if !ok {
		return Entry{}, fmt.Errorf("get %s: %w", id, ErrNotFound)
	}

	return c.entries[i], nil
}

// List returns the entries in insertion order.
func (c *Catalog) List() []Entry {
	c.lock.RLock()
	defer c.lock.RUnlock()

	list := make([]Entry, len(c.entries))
	copy(list, c.entries)

	return list
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return len(c.entries)
}

// Remove deletes the entry with the ID.
func (c *Catalog) Remove(id string) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	i, ok := c.index[id]
	if !ok {
		return fmt.Errorf("remove %s: %w", id, ErrNotFound)
	}

	if c.store != nil {
		if err := c.store.Delete(id); err != nil {
			return fmt.Errorf("remove %s: %w", id, err)
		}
	}

	c.entries = append(c.entries[:i], c.entries[i+1:]...)

	delete(c.index, id)
	for j := i; j < len(c.entries); j++ {
		c.index[c.entries[j].ID] = j
	}

	return nil
}

// Import adds the modes of the entries, keeping their sources. It returns how
// many of them were new.
func (c *Catalog) Import(entries []Entry) (int, error) {
	added := 0

	for i := range entries {
		_, ok, err := c.Add(entries[i].Source, &entries[i].Mode)
		if err != nil {
			return added, err
		}

		if ok {
			added++
		}
	}

	return added, nil
}

// Flush writes buffered entries to the store, if there is one.
func (c *Catalog) Flush() error {
	if c.store == nil {
		return nil
	}

	return c.store.Flush()
}
