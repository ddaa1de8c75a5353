package storage

import (
	"context"
	"sync"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"
)

type memoryStorage struct {
	sync.RWMutex
	slots  map[string]string
	logger utilities.Logger
}

func NewMemory(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Storage
} {
	m := &memoryStorage{
		slots:  make(map[string]string),
		logger: utilities.NewNullLogger(),
	}
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			m.logger = p
		}
	}
	return m
}

func (m *memoryStorage) Configure(envs map[string]string) error {
	return nil
}

// Open doesn't reset the slots, a re-opened memory storage behaves like a
// restarted process reading the same slots
func (m *memoryStorage) Open(ctx context.Context) error {
	return nil
}

func (m *memoryStorage) Close(ctx context.Context) error {
	return nil
}

func (m *memoryStorage) Read(ctx context.Context, key string) (string, error) {
	m.RLock()
	defer m.RUnlock()

	value, ok := m.slots[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (m *memoryStorage) Write(ctx context.Context, key, value string) error {
	m.Lock()
	defer m.Unlock()

	m.slots[key] = value
	m.logger.Trace(ctx, "wrote slot: %s (%d bytes)", key, len(value))
	return nil
}

func (m *memoryStorage) Delete(ctx context.Context, key string) error {
	m.Lock()
	defer m.Unlock()

	delete(m.slots, key)
	return nil
}
