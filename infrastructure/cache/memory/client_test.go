package memory

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	payload := []byte(`{"title":"Sample Article"}`)
	if err := cache.Set(ctx, "article:abc123", payload, time.Hour); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := cache.Get(ctx, "article:abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Get = %q, want %q", got, payload)
	}
}

func TestMemoryCache_GetMissingKey(t *testing.T) {
	cache := NewMemoryCache()

	got, err := cache.Get(context.Background(), "article:missing")
	if err == nil {
		t.Error("expected error for missing key")
	}
	if got != nil {
		t.Errorf("expected nil value, got %q", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "short", []byte("x"), 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	if _, err := cache.Get(ctx, "short"); err == nil {
		t.Error("expected error after TTL elapsed")
	}
}

func TestMemoryCache_ZeroTTLNeverExpires(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "forever", []byte("x"), 0)
	time.Sleep(25 * time.Millisecond)

	if _, err := cache.Get(ctx, "forever"); err != nil {
		t.Errorf("zero-TTL entry should persist: %v", err)
	}
}

func TestMemoryCache_Overwrite(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("old"), time.Hour)
	cache.Set(ctx, "k", []byte("new"), time.Hour)

	got, err := cache.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "new" {
		t.Errorf("Get = %q, want %q", got, "new")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	cache.Set(ctx, "k", []byte("v"), time.Hour)
	if err := cache.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("expected error after delete")
	}

	// Deleting an absent key is not an error.
	if err := cache.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemoryCache_ValueIsolation(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	original := []byte("immutable")
	cache.Set(ctx, "k", original, time.Hour)
	original[0] = 'X'

	first, _ := cache.Get(ctx, "k")
	if string(first) != "immutable" {
		t.Errorf("stored value mutated by caller: %q", first)
	}

	first[0] = 'Y'
	second, _ := cache.Get(ctx, "k")
	if string(second) != "immutable" {
		t.Errorf("stored value mutated through returned slice: %q", second)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := cache.Set(ctx, "k", []byte("v"), time.Hour); err == nil {
		t.Error("Set should fail with cancelled context")
	}
	if _, err := cache.Get(ctx, "k"); err == nil {
		t.Error("Get should fail with cancelled context")
	}
}
