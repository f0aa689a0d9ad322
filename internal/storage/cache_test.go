package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()

	cache, err := OpenCache(filepath.Join(t.TempDir(), "links.db"))
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestOpenCache_CreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "links.db")

	cache, err := OpenCache(path)
	if err != nil {
		t.Fatalf("OpenCache() error = %v", err)
	}
	defer cache.Close()

	if err := cache.Put("probe", nil); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected cache file to exist")
	}
}

func TestCache_PutGet(t *testing.T) {
	cache := openTestCache(t)

	links := []string{"Chile", "Pablo Neruda", "Nobel Prize in Literature"}
	if err := cache.Put("Gabriela Mistral", links); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := cache.Get("Gabriela Mistral", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() reported a miss for a stored entry")
	}
	if !reflect.DeepEqual(got, links) {
		t.Errorf("Get() = %v, want %v", got, links)
	}
}

func TestCache_GetMiss(t *testing.T) {
	cache := openTestCache(t)

	got, ok, err := cache.Get("Nobody", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Errorf("Get() = %v, want miss", got)
	}
}

func TestCache_EmptyLinkSet(t *testing.T) {
	cache := openTestCache(t)

	// A page with no links (or a missing page) stores an empty set
	if err := cache.Put("Stub", nil); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, err := cache.Get("Stub", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("empty link set should still be a hit")
	}
	if len(got) != 0 {
		t.Errorf("Get() = %v, want empty", got)
	}
}

func TestCache_PutReplaces(t *testing.T) {
	cache := openTestCache(t)

	if err := cache.Put("X", []string{"old"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if err := cache.Put("X", []string{"new"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok, _ := cache.Get("X", 0)
	if !ok || !reflect.DeepEqual(got, []string{"new"}) {
		t.Errorf("Get() = %v (hit=%v), want [new]", got, ok)
	}

	count, err := cache.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestCache_Expiry(t *testing.T) {
	cache := openTestCache(t)

	stale := time.Now().Add(-48 * time.Hour).Unix()
	if err := cache.putAt("Old", []string{"A"}, stale); err != nil {
		t.Fatalf("putAt() error = %v", err)
	}

	t.Run("within max age", func(t *testing.T) {
		_, ok, err := cache.Get("Old", 72*time.Hour)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Error("entry within max age should hit")
		}
	})

	t.Run("past max age", func(t *testing.T) {
		_, ok, err := cache.Get("Old", 24*time.Hour)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("expired entry should miss")
		}
	})

	t.Run("zero max age disables expiry", func(t *testing.T) {
		_, ok, err := cache.Get("Old", 0)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Error("zero max age should never expire")
		}
	})
}

func TestCache_CorruptEntryIsAMiss(t *testing.T) {
	cache := openTestCache(t)

	_, err := cache.db.Exec(
		`INSERT INTO pages (title, links_json, fetched_at) VALUES (?, ?, ?)`,
		"Broken", "{not json", time.Now().Unix(),
	)
	if err != nil {
		t.Fatalf("inserting corrupt row: %v", err)
	}

	_, ok, err := cache.Get("Broken", 0)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("corrupt entry should read as a miss, not a hit")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := openTestCache(t)

	for _, title := range []string{"A", "B", "C"} {
		if err := cache.Put(title, []string{"x"}); err != nil {
			t.Fatalf("Put(%s) error = %v", title, err)
		}
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}

	count, err := cache.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after Clear = %d, want 0", count)
	}
}
