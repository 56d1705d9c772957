package rbloom

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
)

// TestConcurrentHasAdd races many goroutines on HasAdd for one new element.
// The store serialises each request, so exactly one caller sees the element
// as new and every other caller sees it as present.
func TestConcurrentHasAdd(t *testing.T) {
	f := newTestFilter(t, NewMemoryStore())
	ctx := context.Background()

	var fresh atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := f.HasAdd(ctx, helloWorld)
			if err != nil {
				t.Errorf("HasAdd: %v", err)
				return
			}
			if !ok {
				fresh.Add(1)
			}
		}()
	}
	wg.Wait()

	if n := fresh.Load(); n != 1 {
		t.Errorf("%d callers saw the element as new, want 1", n)
	}
}

// TestConcurrentAddHas runs writers and readers against one filter. A reader
// may see an element before or after it is written, but once a writer's Add
// has returned the element must never read as absent.
func TestConcurrentAddHas(t *testing.T) {
	f := newTestFilter(t, NewMemoryStore())
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 100 {
				item := "w" + strconv.Itoa(w) + "-" + strconv.Itoa(i)
				if err := f.AddString(ctx, item); err != nil {
					t.Errorf("Add: %v", err)
					return
				}
				if ok, err := f.HasString(ctx, item); err != nil || !ok {
					t.Errorf("Has(%s) = %v, %v after Add", item, ok, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()
}
