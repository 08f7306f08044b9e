package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestEngineStressConcurrentSubmit(t *testing.T) {
	engine := NewEngine(64)
	engine.Start()
	defer engine.Stop()

	const workers = 8
	const perWorker = 200
	total := workers * perWorker

	var running int32
	var overlap int32
	job := Job{Kind: "stress", Run: func(context.Context) error {
		if atomic.AddInt32(&running, 1) > 1 {
			atomic.StoreInt32(&overlap, 1)
		}
		atomic.AddInt32(&running, -1)
		return nil
	}}

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				if _, err := engine.Submit(job); err != nil {
					t.Errorf("submit failed: %v", err)
					return
				}
			}
		}()
	}

	deadline := time.After(5 * time.Second)
	var lastID uint64
	for received := 0; received < total; received++ {
		select {
		case <-deadline:
			t.Fatalf("timeout waiting outcomes: received=%d total=%d", received, total)
		case out := <-engine.C():
			if out.ID <= lastID {
				t.Fatalf("outcome ids out of order: %d after %d", out.ID, lastID)
			}
			lastID = out.ID
		}
	}
	wg.Wait()

	if atomic.LoadInt32(&overlap) != 0 {
		t.Fatal("jobs ran concurrently")
	}
	if lastID != uint64(total) {
		t.Fatalf("unexpected last id: got=%d want=%d", lastID, total)
	}
}
