package observability

import (
	"context"
	"testing"
	"time"
)

type countingBenchHooks struct {
	NoopBenchHooks
	batches int
}

func (h *countingBenchHooks) OnBatchStart(context.Context, string, int, int) {
	h.batches++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestHookRegistration(t *testing.T) {
	defer Reset()

	bh := &countingBenchHooks{}
	SetBenchHooks(bh)
	Bench().OnBatchStart(context.Background(), "run", 0, 10)
	Bench().OnBatchComplete(context.Background(), "run", 0, 0, time.Millisecond)
	if bh.batches != 1 {
		t.Errorf("batches = %d, want 1", bh.batches)
	}

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)
	Cache().OnCacheHit(context.Background(), "edgelist")
	Cache().OnCacheMiss(context.Background(), "edgelist")
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("hits/misses = %d/%d, want 1/1", ch.hits, ch.misses)
	}
}

func TestNilRegistrationKeepsCurrent(t *testing.T) {
	defer Reset()
	bh := &countingBenchHooks{}
	SetBenchHooks(bh)
	SetBenchHooks(nil)
	Bench().OnBatchStart(context.Background(), "run", 0, 1)
	if bh.batches != 1 {
		t.Error("nil registration replaced the active hooks")
	}
}

func TestReset(t *testing.T) {
	bh := &countingBenchHooks{}
	SetBenchHooks(bh)
	Reset()
	Bench().OnBatchStart(context.Background(), "run", 0, 1)
	if bh.batches != 0 {
		t.Error("Reset did not restore no-op hooks")
	}
}
