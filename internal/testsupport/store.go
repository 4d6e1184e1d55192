package testsupport

import (
	"context"
	"testing"

	"matchlock/internal/catalog"
	"matchlock/internal/config"
	"matchlock/internal/match"
)

// MustOpenStore opens a catalog.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedEntry inserts a catalog entry for tests using the provided store.
func SeedEntry(t testing.TB, store *catalog.Store, entry match.Entry) match.Entry {
	t.Helper()

	inserted, err := store.AddEntry(context.Background(), entry)
	if err != nil {
		t.Fatalf("store.AddEntry: %v", err)
	}
	return inserted
}
