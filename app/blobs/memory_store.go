package blobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore keeps blobs in a map. Setting Err makes Put fail with it.
type MemoryStore struct {
	BaseURL string
	Err     error

	mutex sync.RWMutex
	blobs map[string]*Blob
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{BaseURL: baseURL, blobs: make(map[string]*Blob)}
}

func (m *MemoryStore) Put(ctx context.Context, data []byte, filename string) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.Err != nil {
		return "", m.Err
	}

	mime, err := sniffImage(data)
	if err != nil {
		return "", err
	}

	name := uuid.NewString() + mime.Extension()
	m.blobs[name] = &Blob{Name: name, ContentType: mime.String(), Data: data}
	return m.BaseURL + "/" + name, nil
}

func (m *MemoryStore) Fetch(ctx context.Context, name string) (*Blob, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	blob, ok := m.blobs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return blob, nil
}

// Len returns the number of stored blobs.
func (m *MemoryStore) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.blobs)
}
