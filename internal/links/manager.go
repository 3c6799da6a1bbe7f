// Package links manages the saved link list. The whole list is written to a
// key-value store after every change and read once at startup.
package links

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/ytget/source-editor/internal/model"
)

// Storage keys
const (
	StorageKey        = "userLinks"
	CorruptStorageKey = StorageKey + ".corrupt"
)

// ErrCorruptStore is returned by Hydrate when the stored list cannot be parsed
var ErrCorruptStore = errors.New("stored link list is corrupt")

// Store is a string key-value store. Get returns "" for absent keys.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Manager holds the ordered link list
type Manager struct {
	mu       sync.RWMutex
	store    Store
	links    []model.Link
	newID    func() string
	onUpdate func([]model.Link)
}

// NewManager creates a manager with an empty list. Call Hydrate to read the
// stored list.
func NewManager(store Store) *Manager {
	return &Manager{
		store: store,
		newID: newLinkID,
	}
}

// newLinkID returns a time-ordered UUIDv7, falling back to a random UUID.
func newLinkID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// SetUpdateCallback sets the function called with the new list after every
// change
func (m *Manager) SetUpdateCallback(callback func([]model.Link)) {
	m.mu.Lock()
	m.onUpdate = callback
	m.mu.Unlock()
}

// Hydrate replaces the in-memory list with the stored one. An absent or empty
// value gives an empty list. A value that does not parse also gives an empty
// list; the raw value is copied to CorruptStorageKey and an error wrapping
// ErrCorruptStore is returned.
func (m *Manager) Hydrate() error {
	raw, err := m.store.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("read links: %w", err)
	}

	var loaded []model.Link
	var hydrateErr error
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			loaded = nil
			hydrateErr = fmt.Errorf("%w: %v", ErrCorruptStore, err)
			if err := m.store.Set(CorruptStorageKey, raw); err != nil {
				hydrateErr = fmt.Errorf("%w (backup failed: %v)", hydrateErr, err)
			}
		}
	}
	if loaded == nil {
		loaded = []model.Link{}
	}

	m.mu.Lock()
	m.links = loaded
	m.mu.Unlock()

	m.notify()
	return hydrateErr
}

// Links returns a copy of the list in insertion order
func (m *Manager) Links() []model.Link {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Link, len(m.links))
	copy(out, m.links)
	return out
}

// Len returns the number of links
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.links)
}

// Add appends text as a new link after trimming it. Blank text is ignored and
// reported with ok == false. The list is persisted after a successful append.
func (m *Manager) Add(text string) (link model.Link, ok bool, err error) {
	url := strings.TrimSpace(text)
	if url == "" {
		return model.Link{}, false, nil
	}

	link = model.Link{ID: m.newID(), URL: url}

	m.mu.Lock()
	m.links = append(m.links, link)
	err = m.persistLocked()
	m.mu.Unlock()

	m.notify()
	return link, true, err
}

// Delete removes the first link with id and persists the list. Unknown ids are
// ignored and reported with removed == false.
func (m *Manager) Delete(id string) (removed bool, err error) {
	m.mu.Lock()
	for i, link := range m.links {
		if link.ID == id {
			m.links = append(m.links[:i:i], m.links[i+1:]...)
			removed = true
			break
		}
	}
	if removed {
		err = m.persistLocked()
	}
	m.mu.Unlock()

	if removed {
		m.notify()
	}
	return removed, err
}

// persistLocked writes the full list. m.mu must be held.
func (m *Manager) persistLocked() error {
	data, err := json.Marshal(m.links)
	if err != nil {
		return fmt.Errorf("encode links: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save links: %w", err)
	}
	return nil
}

func (m *Manager) notify() {
	m.mu.RLock()
	callback := m.onUpdate
	links := make([]model.Link, len(m.links))
	copy(links, m.links)
	m.mu.RUnlock()

	if callback != nil {
		callback(links)
	}
}
