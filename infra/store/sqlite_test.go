package store

import (
	"path/filepath"
	"testing"
)

func sqliteBackend(t *testing.T) *SQLiteBackend {
	t.Helper()
	backend, err := OpenSQLiteBackend(filepath.Join(t.TempDir(), "credentials.db"))
	if err != nil {
		t.Fatalf("opening sqlite backend: %v", err)
	}
	t.Cleanup(func() { backend.Close() })
	return backend
}

func TestSQLiteBackend_AbsentKeyIsEmptyNotError(t *testing.T) {
	backend := sqliteBackend(t)
	value, err := backend.Get("access_token")
	if err != nil {
		t.Fatalf("absent key should not error: %v", err)
	}
	if value != "" {
		t.Fatalf("expected empty value, got %q", value)
	}
}

func TestSQLiteBackend_SetOverwritesExisting(t *testing.T) {
	backend := sqliteBackend(t)

	if err := backend.Set("access_token", "first"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := backend.Set("access_token", "second"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, err := backend.Get("access_token")
	if err != nil || value != "second" {
		t.Fatalf("overwrite lost: %q, %v", value, err)
	}
}

func TestSQLiteBackend_DeleteIsIdempotent(t *testing.T) {
	backend := sqliteBackend(t)

	if err := backend.Set("instance_url", "https://example.test"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := backend.Delete("instance_url"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := backend.Delete("instance_url"); err != nil {
		t.Fatalf("repeat delete: %v", err)
	}
	if value, _ := backend.Get("instance_url"); value != "" {
		t.Fatalf("value survived delete: %q", value)
	}
}

func TestSQLiteBackend_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.db")

	backend, err := OpenSQLiteBackend(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := backend.Set("access_token", "tok"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLiteBackend(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	value, err := reopened.Get("access_token")
	if err != nil || value != "tok" {
		t.Fatalf("value lost across reopen: %q, %v", value, err)
	}
}

func TestCredentialStore_WorksOverSQLite(t *testing.T) {
	credentials := NewCredentialStore(sqliteBackend(t))

	if err := credentials.SetAccessToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := credentials.SetInstanceURL("https://example.test"); err != nil {
		t.Fatal(err)
	}
	if ok, err := credentials.IsAuthenticated(); err != nil || !ok {
		t.Fatalf("expected authenticated session: %v %v", ok, err)
	}
	if err := credentials.ClearAuth(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if ok, _ := credentials.IsAuthenticated(); ok {
		t.Fatal("session survived ClearAuth")
	}
}
