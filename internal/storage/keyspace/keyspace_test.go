package keyspace

import (
	"testing"
	"time"

	"github.com/zuhaib786/FerroDB/internal/core/domain"
)

func withFixedClock(t *testing.T, ms int64) {
	t.Helper()
	old := nowMillis
	nowMillis = func() int64 { return ms }
	t.Cleanup(func() { nowMillis = old })
}

func TestSetGetRoundTrip(t *testing.T) {
	ks := New()
	ks.Set("foo", "bar", SetOpts{})
	v, ok, err := ks.Get("foo")
	if err != nil || !ok || v != "bar" {
		t.Fatalf("got v=%q ok=%v err=%v", v, ok, err)
	}
}

func TestGetMissingKey(t *testing.T) {
	ks := New()
	_, ok, err := ks.Get("nope")
	if err != nil || ok {
		t.Fatalf("expected ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestWrongTypeIsPure(t *testing.T) {
	ks := New()
	if _, err := ks.LPush("foo", "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := ks.Snapshot()

	_, _, err := ks.Get("foo")
	if err == nil || !domain.IsDomainError(err, "FERRO-TYPE-WRONGTYPE") {
		t.Fatalf("expected WRONGTYPE error, got %v", err)
	}

	after := ks.Snapshot()
	if len(before) != len(after) || before[0].List[0] != after[0].List[0] {
		t.Fatal("WRONGTYPE access must not mutate the keyspace")
	}
}

func TestExpireAndTTL(t *testing.T) {
	withFixedClock(t, 1_000_000)
	ks := New()
	ks.Set("foo", "bar", SetOpts{})

	if ttl := ks.TTL("foo"); ttl != -1*time.Second {
		t.Fatalf("expected no TTL, got %v", ttl)
	}
	if !ks.Expire("foo", 10*time.Second) {
		t.Fatal("expected Expire to succeed")
	}
	if ttl := ks.TTL("foo"); ttl != 10*time.Second {
		t.Fatalf("expected 10s TTL, got %v", ttl)
	}

	nowMillis = func() int64 { return 1_000_000 + 11_000 }
	if _, ok, _ := ks.Get("foo"); ok {
		t.Fatal("expected key to have passively expired")
	}
	if ttl := ks.TTL("foo"); ttl != -2*time.Second {
		t.Fatalf("expected -2 for missing key, got %v", ttl)
	}
}

func TestPersistClearsTTL(t *testing.T) {
	withFixedClock(t, 0)
	ks := New()
	ks.Set("foo", "bar", SetOpts{HasTTL: true, TTL: time.Minute})
	if !ks.Persist("foo") {
		t.Fatal("expected Persist to report a cleared TTL")
	}
	if ttl := ks.TTL("foo"); ttl != -1*time.Second {
		t.Fatalf("expected no TTL after Persist, got %v", ttl)
	}
	if ks.Persist("foo") {
		t.Fatal("second Persist call should report no TTL was cleared")
	}
}

func TestMSetMGetAtomicView(t *testing.T) {
	ks := New()
	ks.MSet(map[string]string{"a": "1", "b": "2"})
	values, found := ks.MGet([]string{"a", "b", "c"})
	if !found[0] || !found[1] || found[2] {
		t.Fatalf("unexpected found: %v", found)
	}
	if values[0] != "1" || values[1] != "2" {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestDelAndExists(t *testing.T) {
	ks := New()
	ks.Set("a", "1", SetOpts{})
	ks.Set("b", "2", SetOpts{})
	if n := ks.Exists("a", "b", "c"); n != 2 {
		t.Fatalf("expected 2 existing keys, got %d", n)
	}
	if n := ks.Del("a", "c"); n != 1 {
		t.Fatalf("expected 1 deleted key, got %d", n)
	}
	if n := ks.Exists("a"); n != 0 {
		t.Fatalf("expected a to be gone, got exists=%d", n)
	}
}

func TestDBSizeExpiresPassively(t *testing.T) {
	withFixedClock(t, 0)
	ks := New()
	ks.Set("a", "1", SetOpts{HasTTL: true, TTL: time.Second})
	ks.Set("b", "2", SetOpts{})

	nowMillis = func() int64 { return 2000 }
	if n := ks.DBSize(); n != 1 {
		t.Fatalf("expected 1 live key, got %d", n)
	}
}
