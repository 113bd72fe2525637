package sqlite

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/reposelink/reposelink/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "reposelink-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		if _, err := store.Get(ctx, "absent"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound, got %v", err)
		}
	})

	t.Run("put and get round trip", func(t *testing.T) {
		want := []byte(`{"user":null,"authenticated":false}`)
		if err := store.Put(ctx, "auth-storage", want); err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		got, err := store.Get(ctx, "auth-storage")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("value mismatch: got %q", got)
		}
	})

	t.Run("put overwrites", func(t *testing.T) {
		if err := store.Put(ctx, "auth-storage", []byte("v2")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, "auth-storage")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "v2" {
			t.Errorf("expected overwritten value, got %q", got)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.Delete(ctx, "auth-storage"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "auth-storage"); !errors.Is(err, storage.ErrKeyNotFound) {
			t.Fatalf("expected ErrKeyNotFound after delete, got %v", err)
		}
		// Deleting an absent key is not an error.
		if err := store.Delete(ctx, "auth-storage"); err != nil {
			t.Fatalf("Delete of absent key failed: %v", err)
		}
	})

	t.Run("values survive reopen", func(t *testing.T) {
		if err := store.Put(ctx, "persist", []byte("still here")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened, err := New(dbPath)
		if err != nil {
			t.Fatalf("reopen failed: %v", err)
		}
		defer reopened.Close()

		got, err := reopened.Get(ctx, "persist")
		if err != nil {
			t.Fatalf("Get after reopen failed: %v", err)
		}
		if string(got) != "still here" {
			t.Errorf("expected persisted value, got %q", got)
		}
	})
}
