package storage

import (
	"context"

	"github.com/antonio-alexander/go-employee-store/internal"

	"github.com/pkg/errors"
)

// slot keys shared by everything persisted by the application
const (
	KeyEmployees         string = "employees"
	KeyPreferredLanguage string = "preferred-language"
)

const (
	TypeMemory      string = "memory"
	TypeFile        string = "file"
	TypeRedis       string = "redis"
	TypeMySql       string = "mysql"
	TypeStashMemory string = "stash-memory"
	TypeStashRedis  string = "stash-redis"
)

var ErrKeyNotFound = errors.New("key not found")

// Storage is a string valued key-value store, each key is a slot that's
// read and written in full
type Storage interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// New creates the storage backend named by storageType, parameters are
// passed through to the backend's constructor; an empty type creates a
// memory backend
func New(storageType string, parameters ...any) (interface {
	internal.Configurer
	internal.Opener
	Storage
}, error) {
	switch storageType {
	default:
		return nil, errors.Errorf("unsupported storage type: %s", storageType)
	case "", TypeMemory:
		return NewMemory(parameters...), nil
	case TypeFile:
		return NewFile(parameters...), nil
	case TypeRedis:
		return NewRedis(parameters...), nil
	case TypeMySql:
		return NewMySql(parameters...), nil
	case TypeStashMemory, TypeStashRedis:
		return NewStash(append(parameters, stashFromType(storageType))...), nil
	}
}
