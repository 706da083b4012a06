package cache

import (
	"context"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "edgelist:missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	want := []byte{1, 2, 3, 4}
	if err := c.Set(ctx, "edgelist:k", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := c.Get(ctx, "edgelist:k")
	if err != nil || !ok {
		t.Fatalf("Get = ok=%v err=%v, want hit", ok, err)
	}
	if string(got) != string(want) {
		t.Errorf("Get = %v, want %v", got, want)
	}

	if err := c.Delete(ctx, "edgelist:k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "edgelist:k"); ok {
		t.Error("value survived Delete")
	}
	if err := c.Delete(ctx, "edgelist:k"); err != nil {
		t.Errorf("double Delete: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := c.Set(ctx, "edgelist:ttl", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, ok, _ := c.Get(ctx, "edgelist:ttl"); ok {
		t.Error("expired entry still served")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache returned a hit")
	}
}

func TestEdgeListKey(t *testing.T) {
	a := EdgeListKey(100, 500, 1, true, 42)
	b := EdgeListKey(100, 500, 1, true, 42)
	if a != b {
		t.Error("identical parameters produced different keys")
	}
	for _, other := range []string{
		EdgeListKey(101, 500, 1, true, 42),
		EdgeListKey(100, 501, 1, true, 42),
		EdgeListKey(100, 500, 2, true, 42),
		EdgeListKey(100, 500, 1, false, 42),
		EdgeListKey(100, 500, 1, true, 43),
	} {
		if other == a {
			t.Errorf("parameter change did not change key")
		}
	}
}
