package credentials

import "errors"

// ErrNotFound is returned by SecureStore.Get when no value exists under the key.
var ErrNotFound = errors.New("credential not found")

// SecureStore abstracts the platform secure key-value store (OS keychain,
// keystore, credential manager). Values are opaque strings; this package
// handles all serialization.
type SecureStore interface {
	Set(key, value string) error
	Get(key string) (string, error)
	Delete(key string) error
}
