package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/antonio-alexander/go-employee-store/internal"
	"github.com/antonio-alexander/go-employee-store/internal/utilities"

	"github.com/pkg/errors"
)

const defaultStorageFile string = "employee_store.json"

// fileStorage keeps every slot in a single json object on disk, the
// whole file is rewritten on each write
type fileStorage struct {
	sync.RWMutex
	config struct {
		file string
	}
	slots  map[string]string
	logger utilities.Logger
}

func NewFile(parameters ...any) interface {
	internal.Configurer
	internal.Opener
	Storage
} {
	f := &fileStorage{logger: utilities.NewNullLogger()}
	f.config.file = defaultStorageFile
	for _, parameter := range parameters {
		switch p := parameter.(type) {
		case utilities.Logger:
			f.logger = p
		}
	}
	return f
}

func (f *fileStorage) flush() error {
	bytes, err := json.MarshalIndent(f.slots, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.config.file), filepath.Base(f.config.file)+".*")
	if err != nil {
		return errors.Wrap(err, "error while creating temporary file")
	}
	if _, err := tmp.Write(bytes); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return errors.Wrap(err, "error while writing temporary file")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.config.file)
}

func (f *fileStorage) Configure(envs map[string]string) error {
	if file := envs["STORAGE_FILE"]; file != "" {
		f.config.file = file
	}
	return nil
}

func (f *fileStorage) Open(ctx context.Context) error {
	f.Lock()
	defer f.Unlock()

	f.slots = make(map[string]string)
	bytes, err := os.ReadFile(f.config.file)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Debug(ctx, "storage file %s doesn't exist, starting empty", f.config.file)
			return nil
		}
		return errors.Wrapf(err, "error while reading storage file %s", f.config.file)
	}
	if len(bytes) == 0 {
		return nil
	}
	if err := json.Unmarshal(bytes, &f.slots); err != nil {
		return errors.Wrapf(err, "error while parsing storage file %s", f.config.file)
	}
	return nil
}

func (f *fileStorage) Close(ctx context.Context) error {
	return nil
}

func (f *fileStorage) Read(ctx context.Context, key string) (string, error) {
	f.RLock()
	defer f.RUnlock()

	value, ok := f.slots[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

func (f *fileStorage) Write(ctx context.Context, key, value string) error {
	f.Lock()
	defer f.Unlock()

	previous, existed := f.slots[key]
	f.slots[key] = value
	if err := f.flush(); err != nil {
		if existed {
			f.slots[key] = previous
		} else {
			delete(f.slots, key)
		}
		return err
	}
	return nil
}

func (f *fileStorage) Delete(ctx context.Context, key string) error {
	f.Lock()
	defer f.Unlock()

	previous, existed := f.slots[key]
	if !existed {
		return nil
	}
	delete(f.slots, key)
	if err := f.flush(); err != nil {
		f.slots[key] = previous
		return err
	}
	return nil
}
