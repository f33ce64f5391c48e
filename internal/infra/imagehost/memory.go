package imagehost

import (
	"context"
	"sync"
)

// Memory keeps uploads in process. Handler tests use it in place of a bucket.
type Memory struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{objects: map[string][]byte{}}
}

func (m *Memory) Put(ctx context.Context, objectName, contentType string, data []byte) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectName] = append([]byte(nil), data...)

	url := "https://img.test/" + objectName
	return Result{URL: url, ThumbnailURL: url, ProviderID: objectName}, nil
}

func (m *Memory) Delete(ctx context.Context, providerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, providerID)
	return nil
}

// Get returns a stored object.
func (m *Memory) Get(objectName string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectName]
	if !ok {
		return nil, errNotStored
	}
	return data, nil
}
