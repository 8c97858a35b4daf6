package library

import "errors"

// Keys of the three persisted documents. Each holds one standalone JSON
// value; there is no cross-document transaction.
const (
	KeyMaterials   = "materials"
	KeyCurrentUser = "currentUser"
	KeyAccessLogs  = "materialAccessLogs"
)

// ErrKeyNotFound is returned by Store.Get when no document exists under
// the requested key.
var ErrKeyNotFound = errors.New("key not found")

// Store is the persistence boundary for the library: a small key/value
// document store. Every mutation in the service layer rewrites a whole
// document; there is no incremental update protocol, so last write wins
// if two processes share a store.
type Store interface {
	// Get returns the raw document stored under key.
	// Returns ErrKeyNotFound (possibly wrapped) when the key is absent.
	Get(key string) ([]byte, error)

	// Put overwrites the document stored under key.
	Put(key string, data []byte) error

	// Delete removes the document stored under key.
	// Deleting an absent key is a no-op.
	Delete(key string) error

	// ValidateSetup verifies that the store is accessible and properly configured.
	ValidateSetup() error

	// Close releases any resources held by the store.
	Close() error
}
