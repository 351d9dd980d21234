package repositories

import "github.com/dgraph-io/badger/v4"

// Open opens the badger store at the given path.
func Open(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	return badger.Open(opts)
}
