package testsupport

import (
	"context"
	"testing"
	"time"

	"rinna/internal/config"
	"rinna/internal/item"
	"rinna/internal/store"
)

// MustOpenStore opens a store.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *store.Store {
	t.Helper()

	st, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		st.Close()
	})
	return st
}

// NewItem creates and persists a work item for tests using the provided store.
func NewItem(t testing.TB, st *store.Store, req item.CreateRequest) item.WorkItem {
	t.Helper()

	it, err := item.New(req, time.Now())
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	if err := st.Create(context.Background(), it); err != nil {
		t.Fatalf("store.Create: %v", err)
	}
	return it
}
