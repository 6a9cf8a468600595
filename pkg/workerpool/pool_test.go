package workerpool_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shashiranjanraj/shopapp/pkg/workerpool"
)

func TestPool_SubmitAndExecute(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	const n = 100
	var count atomic.Int64

	var wg sync.WaitGroup
	wg.Add(n)

	for i := 0; i < n; i++ {
		err := pool.SubmitWait(func() {
			defer wg.Done()
			count.Add(1)
		})
		if err != nil {
			t.Fatalf("SubmitWait returned unexpected error: %v", err)
		}
	}

	wg.Wait()

	if got := count.Load(); got != n {
		t.Errorf("expected %d tasks to run, got %d", n, got)
	}
}

func TestPool_ErrPoolClosed(t *testing.T) {
	pool := workerpool.New(2)
	pool.Shutdown()
	pool.Shutdown()

	if err := pool.SubmitWait(func() {}); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed from SubmitWait, got %v", err)
	}
	if err := pool.Each(2, func(int) error { return nil }); !errors.Is(err, workerpool.ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed from Each, got %v", err)
	}
}

func TestPool_PanicRecovery(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)

	_ = pool.SubmitWait(func() {
		defer wg.Done()
		panic("intentional panic")
	})

	wg.Wait()

	normal := make(chan struct{})
	_ = pool.SubmitWait(func() { close(normal) })

	select {
	case <-normal:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not recover from panic, subsequent task never ran")
	}
}

func TestPool_EachPreservesIndexes(t *testing.T) {
	pool := workerpool.New(3)
	defer pool.Shutdown()

	out := make([]int, 20)
	err := pool.Each(len(out), func(i int) error {
		out[i] = i * i
		return nil
	})
	if err != nil {
		t.Fatalf("Each returned %v", err)
	}
	for i, v := range out {
		if v != i*i {
			t.Errorf("out[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestPool_EachReturnsLowestIndexError(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Shutdown()

	errLow := errors.New("low")
	err := pool.Each(10, func(i int) error {
		switch i {
		case 3:
			return errLow
		case 7:
			return errors.New("high")
		}
		return nil
	})
	if !errors.Is(err, errLow) {
		t.Errorf("expected %v, got %v", errLow, err)
	}
}

func TestPool_EachReportsPanic(t *testing.T) {
	pool := workerpool.New(2)
	defer pool.Shutdown()

	err := pool.Each(2, func(i int) error {
		if i == 1 {
			panic("boom")
		}
		return nil
	})
	if err == nil {
		t.Fatal("expected an error from a panicking task")
	}
}

func TestPool_NilRunsInline(t *testing.T) {
	var pool *workerpool.Pool

	var order []int
	err := pool.Each(3, func(i int) error {
		order = append(order, i)
		return nil
	})
	if err != nil {
		t.Fatalf("Each returned %v", err)
	}
	if len(order) != 3 || order[0] != 0 || order[2] != 2 {
		t.Errorf("unexpected order %v", order)
	}
	if pool.Size() != 0 {
		t.Errorf("nil pool size = %d", pool.Size())
	}
}

func TestPool_Shutdown_Drains(t *testing.T) {
	pool := workerpool.New(10)

	var ran atomic.Int64
	for i := 0; i < 50; i++ {
		_ = pool.SubmitWait(func() {
			time.Sleep(time.Millisecond)
			ran.Add(1)
		})
	}

	pool.Shutdown()
	if got := ran.Load(); got != 50 {
		t.Errorf("expected 50 tasks to finish before Shutdown returned, got %d", got)
	}
}
