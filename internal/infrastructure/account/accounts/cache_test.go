package accounts

import (
	"testing"
	"time"

	"github.com/astorrey/TackleHogs/internal/domain/user"
)

func TestPrincipalCacheHitAndExpiry(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(30*time.Millisecond, 10)
	principal := user.Principal{UserID: "angler-1", Email: "angler@example.com"}

	cache.Set("token-hash", principal)
	got, ok := cache.Get("token-hash")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.UserID != principal.UserID {
		t.Fatalf("user id = %q, want %q", got.UserID, principal.UserID)
	}

	time.Sleep(50 * time.Millisecond)
	if _, ok := cache.Get("token-hash"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestPrincipalCacheZeroTTLDisablesWrites(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(0, 10)
	cache.Set("token-hash", user.Principal{UserID: "angler-1"})
	if _, ok := cache.Get("token-hash"); ok {
		t.Fatal("zero ttl cache should not store entries")
	}
}

func TestPrincipalCacheEvictsAtCapacity(t *testing.T) {
	t.Parallel()

	cache := newPrincipalCache(time.Minute, 2)
	cache.Set("a", user.Principal{UserID: "angler-a"})
	cache.Set("b", user.Principal{UserID: "angler-b"})
	cache.Set("c", user.Principal{UserID: "angler-c"})

	if _, ok := cache.Get("c"); !ok {
		t.Fatal("latest entry should survive eviction")
	}

	count := 0
	for _, key := range []string{"a", "b", "c"} {
		if _, ok := cache.Get(key); ok {
			count++
		}
	}
	if count > 2 {
		t.Fatalf("cache holds %d entries, want at most 2", count)
	}
}
