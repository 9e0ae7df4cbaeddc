package document

import (
	"path/filepath"
	"strconv"
	"sync"

	"github.com/dshills/tupshar/internal/cdl"
)

// Manager keeps the open documents of an application by absolute path.
type Manager struct {
	mu        sync.RWMutex
	documents map[string]*Document
	active    *Document
	order     []string
	counter   int

	resolver cdl.Resolver
	opts     []Option
}

// NewManager creates a manager. Every document it opens or creates uses
// resolver and opts.
func NewManager(resolver cdl.Resolver, opts ...Option) *Manager {
	return &Manager{
		documents: make(map[string]*Document),
		resolver:  resolver,
		opts:      opts,
	}
}

// Open opens the document at path, or returns it if it is already open.
func (m *Manager) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if d, ok := m.documents[absPath]; ok {
		m.active = d
		return d, nil
	}

	d, err := Open(absPath, m.resolver, m.opts...)
	if err != nil {
		return nil, err
	}
	m.add(absPath, d)
	return d, nil
}

// Create makes a new document. When path is not empty it becomes the save
// destination; otherwise the document is a scratch document.
func (m *Manager) Create(path string) (*Document, error) {
	key := ""
	if path != "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, err
		}
		key = abs
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	d := New(m.resolver, m.opts...)
	if key == "" {
		m.counter++
		key = "::scratch::" + strconv.Itoa(m.counter)
	} else {
		d.SetPath(key)
	}
	m.add(key, d)
	return d, nil
}

func (m *Manager) add(key string, d *Document) {
	if _, exists := m.documents[key]; !exists {
		m.order = append(m.order, key)
	}
	m.documents[key] = d
	m.active = d
}

// Close forgets the document at key.
func (m *Manager) Close(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.documents[key]
	if !ok {
		return ErrDocumentNotFound
	}
	delete(m.documents, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}

	if m.active == d {
		m.active = nil
		if len(m.order) > 0 {
			m.active = m.documents[m.order[len(m.order)-1]]
		}
	}
	return nil
}

// Active returns the active document, or nil.
func (m *Manager) Active() *Document {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// SetActive makes the document at key active.
func (m *Manager) SetActive(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.documents[key]
	if !ok {
		return ErrDocumentNotFound
	}
	m.active = d
	return nil
}

// Get returns the document at key.
func (m *Manager) Get(key string) (*Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.documents[key]
	return d, ok
}

// All returns the open documents in open order.
func (m *Manager) All() []*Document {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make([]*Document, 0, len(m.order))
	for _, k := range m.order {
		docs = append(docs, m.documents[k])
	}
	return docs
}

// Count returns the number of open documents.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.documents)
}

// Dirty returns the documents with unsaved changes.
func (m *Manager) Dirty() []*Document {
	var dirty []*Document
	for _, d := range m.All() {
		if d.IsModified() {
			dirty = append(dirty, d)
		}
	}
	return dirty
}

// SetResolver replaces the resolver of the manager and every open document.
func (m *Manager) SetResolver(r cdl.Resolver) {
	m.mu.Lock()
	m.resolver = r
	docs := make([]*Document, 0, len(m.documents))
	for _, d := range m.documents {
		docs = append(docs, d)
	}
	m.mu.Unlock()

	for _, d := range docs {
		d.SetResolver(r)
	}
}

// Next activates and returns the document after the active one, wrapping
// around.
func (m *Manager) Next() *Document {
	return m.step(1)
}

// Previous activates and returns the document before the active one.
func (m *Manager) Previous() *Document {
	return m.step(-1)
}

func (m *Manager) step(delta int) *Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.order) == 0 || m.active == nil {
		return nil
	}
	for i, k := range m.order {
		if m.documents[k] == m.active {
			n := len(m.order)
			m.active = m.documents[m.order[((i+delta)%n+n)%n]]
			break
		}
	}
	return m.active
}
