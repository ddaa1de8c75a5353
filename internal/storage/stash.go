package storage

import (
	"context"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/antonio-alexander/go-stash"
	stashmemory "github.com/antonio-alexander/go-stash/memory"
	stashredis "github.com/antonio-alexander/go-stash/redis"
	"github.com/pkg/errors"
)

// slotValue adapts a slot's string value to the binary marshalling the
// stasher expects
type slotValue struct {
	value string
}

func (s *slotValue) MarshalBinary() ([]byte, error) {
	return []byte(s.value), nil
}

func (s *slotValue) UnmarshalBinary(data []byte) error {
	s.value = string(data)
	return nil
}

type stashStorage struct {
	logger utilities.Logger
	stash interface {
		stash.Configurer
		stash.Parameterizer
		stash.Initializer
		stash.Shutdowner
	}
	stash.Stasher
}

func stashFromType(storageType string) any {
	switch storageType {
	default:
		return stashmemory.New()
	case TypeStashRedis:
		return stashredis.New()
	}
}

func NewStash(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Storage
} {
	s := &stashStorage{logger: utilities.NewNullLogger()}
	for _, p := range parameters {
		switch p := p.(type) {
		case utilities.Logger:
			s.logger = p
		case interface {
			stash.Configurer
			stash.Parameterizer
			stash.Initializer
			stash.Shutdowner
			stash.Stasher
		}:
			s.stash = p
			s.Stasher = p
		}
	}
	if s.stash == nil {
		return NewStash(append(parameters, stashFromType(TypeStashMemory))...)
	}
	s.stash.SetParameters(parameters...)
	return s
}

func (s *stashStorage) Configure(envs map[string]string) error {
	return s.stash.Configure(envs)
}

func (s *stashStorage) Open(ctx context.Context) error {
	return s.stash.Initialize()
}

func (s *stashStorage) Close(ctx context.Context) error {
	return s.stash.Shutdown()
}

// Read can't tell a missing key from a failing stash, every read error is
// reported as ErrKeyNotFound (with the cause attached)
func (s *stashStorage) Read(ctx context.Context, key string) (string, error) {
	value := &slotValue{}
	if err := s.Stasher.Read(key, value); err != nil {
		s.logger.Trace(ctx, "stash miss for slot %s: %s", key, err)
		return "", errors.Wrap(ErrKeyNotFound, err.Error())
	}
	return value.value, nil
}

func (s *stashStorage) Write(ctx context.Context, key, value string) error {
	if _, err := s.Stasher.Write(key, &slotValue{value: value}); err != nil {
		return err
	}
	return nil
}

func (s *stashStorage) Delete(ctx context.Context, key string) error {
	if err := s.Stasher.Delete(key); err != nil {
		s.logger.Trace(ctx, "error while deleting slot %s: %s", key, err)
	}
	return nil
}
