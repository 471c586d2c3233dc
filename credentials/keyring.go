package credentials

import (
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

var _ SecureStore = (*keyringStore)(nil)

// keyringStore backs SecureStore with the operating system keyring.
type keyringStore struct {
	service string
}

// NewKeyringStore returns a SecureStore persisting to the OS keyring under
// the given service name.
func NewKeyringStore(service string) SecureStore {
	return &keyringStore{service: service}
}

func (ks *keyringStore) Set(key, value string) error {
	if err := keyring.Set(ks.service, key, value); err != nil {
		return errors.Wrap(err, "[keyringStore.Set] keyring.Set")
	}
	return nil
}

func (ks *keyringStore) Get(key string) (string, error) {
	value, err := keyring.Get(ks.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", errors.Wrap(err, "[keyringStore.Get] keyring.Get")
	}
	return value, nil
}

func (ks *keyringStore) Delete(key string) error {
	err := keyring.Delete(ks.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[keyringStore.Delete] keyring.Delete")
	}
	return nil
}
