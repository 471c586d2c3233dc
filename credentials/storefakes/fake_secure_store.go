package storefakes

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-tasklist-client/credentials"
)

var _ credentials.SecureStore = (*FakeSecureStore)(nil)

// FakeSecureStore is an in-memory SecureStore with injectable failures.
type FakeSecureStore struct {
	values map[string]string
	lock   sync.RWMutex

	FailWrites  bool
	FailReads   bool
	FailDeletes bool
}

func NewFakeSecureStore() *FakeSecureStore {
	return &FakeSecureStore{
		values: make(map[string]string),
	}
}

func (fs *FakeSecureStore) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.FailWrites {
		return errors.New("secure store write failed")
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeSecureStore) Get(key string) (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if fs.FailReads {
		return "", errors.New("secure store read failed")
	}
	value, ok := fs.values[key]
	if !ok {
		return "", credentials.ErrNotFound
	}
	return value, nil
}

func (fs *FakeSecureStore) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.FailDeletes {
		return errors.New("secure store delete failed")
	}
	delete(fs.values, key)
	return nil
}

// Corrupt overwrites the value under key so it no longer parses as JSON.
func (fs *FakeSecureStore) Corrupt(key string) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.values[key] = "{not json"
}

// Len reports the number of stored entries.
func (fs *FakeSecureStore) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	return len(fs.values)
}
