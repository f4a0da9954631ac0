package txn

import (
	"sync"
	"testing"
)

func TestLockRegistryGetIsLazyAndStable(t *testing.T) {
	reg := NewLockRegistry()

	a := reg.Get("people")
	if a == nil {
		t.Fatal("expected a non-nil lock")
	}

	b := reg.Get("people")
	if a != b {
		t.Error("expected the same lock instance on a second Get for the same table")
	}

	c := reg.Get("orders")
	if c == a {
		t.Error("expected a different lock instance for a different table")
	}
}

func TestLockRegistryConcurrentGetSameTable(t *testing.T) {
	reg := NewLockRegistry()

	var wg sync.WaitGroup
	locks := make([]*sync.RWMutex, 50)
	for i := range locks {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks[i] = reg.Get("concurrent")
		}()
	}
	wg.Wait()

	first := locks[0]
	for i, l := range locks {
		if l != first {
			t.Fatalf("goroutine %d got a different lock instance than goroutine 0", i)
		}
	}
}

func TestLockRegistryWriteLockExcludesConcurrentWriter(t *testing.T) {
	reg := NewLockRegistry()
	lock := reg.Get("ledger")

	lock.Lock()
	acquired := make(chan struct{})
	go func() {
		second := reg.Get("ledger")
		second.Lock()
		close(acquired)
		second.Unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("expected the second writer to block while the first holds the lock")
	default:
	}
	lock.Unlock()
	<-acquired
}
