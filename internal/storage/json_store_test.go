package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "routine.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init json store: %v", err)
	}
	return store
}

func TestJSONStore_InitTwice(t *testing.T) {
	store := setupTestJSONStore(t)
	again := NewJSONStore(store.GetConfigPath())
	if err := again.Init(); err == nil || !strings.Contains(err.Error(), "already initialized") {
		t.Errorf("second Init() error = %v", err)
	}
}

func TestJSONStore_LoadMissing(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := store.Load(); err == nil || !strings.Contains(err.Error(), "myroutine init") {
		t.Errorf("Load() error = %v", err)
	}
	if _, _, err := store.Get("metas"); err != ErrNotLoaded {
		t.Errorf("Get() before Load error = %v, want ErrNotLoaded", err)
	}
}

func TestJSONStore_CRUD(t *testing.T) {
	store := setupTestJSONStore(t)

	if err := store.SetMany(map[string][]byte{
		"habitos": []byte(`[{"id":1,"nome":"Read"}]`),
		"theme":   []byte(`"dark"`),
	}); err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}

	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, ok, err := reloaded.Get("theme")
	if err != nil || !ok || string(v) != `"dark"` {
		t.Errorf("Get(theme) = %s, %v, %v", v, ok, err)
	}

	keys, _ := reloaded.Keys()
	if len(keys) != 2 || keys[0] != "habitos" || keys[1] != "theme" {
		t.Errorf("Keys() = %v", keys)
	}

	if err := reloaded.Remove("theme"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := reloaded.Get("theme"); ok {
		t.Error("theme still present after Remove")
	}
	if err := reloaded.Remove("never-set"); err != nil {
		t.Errorf("Remove of a missing key should be a no-op, got %v", err)
	}

	if err := reloaded.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if keys, _ := reloaded.Keys(); len(keys) != 0 {
		t.Errorf("Keys() after Clear = %v", keys)
	}
}

func TestJSONStore_SetManyIsAllOrNothing(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Set("metas", []byte(`[]`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	err := store.SetMany(map[string][]byte{
		"metas":   []byte(`[{"id":"g1"}]`),
		"habitos": []byte(`{broken`),
	})
	if err == nil {
		t.Fatal("expected invalid JSON to be rejected")
	}

	v, _, _ := store.Get("metas")
	if string(v) != `[]` {
		t.Errorf("metas = %s, want unchanged []", v)
	}
	if _, ok, _ := store.Get("habitos"); ok {
		t.Error("habitos should not have been written")
	}
}

func TestJSONStore_WriteFailureKeepsPreviousState(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
	store := setupTestJSONStore(t)
	if err := store.Set("theme", []byte(`"light"`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	dir := filepath.Dir(store.GetConfigPath())
	if err := os.Chmod(dir, 0500); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	defer os.Chmod(dir, 0700)

	if err := store.Set("theme", []byte(`"dark"`)); err == nil {
		t.Fatal("expected write into a read-only directory to fail")
	}
	v, _, _ := store.Get("theme")
	if string(v) != `"light"` {
		t.Errorf("theme = %s, want previous value", v)
	}
}
