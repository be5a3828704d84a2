package httpcache

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestCache(ttl time.Duration) *OtterCache {
	return NewOtterCache(100, ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetSet(t *testing.T) {
	c := newTestCache(time.Minute)

	if _, ok := c.Get("/?zone=UTC"); ok {
		t.Fatal("Get() on empty cache reported a hit")
	}

	stored := c.Set("/?zone=UTC", "text/html; charset=utf-8", []byte("<p>grid</p>"))
	if stored.ETag == "" || stored.ETag[0] != '"' {
		t.Errorf("ETag = %q, want a quoted tag", stored.ETag)
	}

	got, ok := c.Get("/?zone=UTC")
	if !ok {
		t.Fatal("Get() after Set() missed")
	}
	if string(got.Data) != "<p>grid</p>" || got.ContentType != "text/html; charset=utf-8" {
		t.Errorf("Get() = %+v", got)
	}
	if got.ETag != stored.ETag {
		t.Errorf("ETag = %q, want %q", got.ETag, stored.ETag)
	}

	if _, ok := c.Get("/?zone=Asia/Tokyo"); ok {
		t.Error("Get() of another key reported a hit")
	}

	if n := c.Len(); n < 0 || n > 1 {
		t.Errorf("Len() = %d, want at most 1", n)
	}
}

func TestETagFollowsBody(t *testing.T) {
	c := newTestCache(time.Minute)

	a := c.Set("a", "text/csv", []byte("UTC,00:00"))
	b := c.Set("b", "text/csv", []byte("UTC,00:00"))
	d := c.Set("c", "text/csv", []byte("UTC,01:00"))

	if a.ETag != b.ETag {
		t.Errorf("same body produced different tags %q and %q", a.ETag, b.ETag)
	}
	if a.ETag == d.ETag {
		t.Errorf("different bodies produced the same tag %q", a.ETag)
	}
}

func TestExpiredEntryIsNotServed(t *testing.T) {
	c := newTestCache(time.Millisecond)
	c.Set("key", "text/plain", []byte("stale"))

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("Get() served an expired entry")
	}
}
