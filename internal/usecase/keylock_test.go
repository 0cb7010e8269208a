package usecase

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	locks := newKeyedMutex()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("example.com")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	locks := newKeyedMutex()

	unlockA := locks.Lock("a.com")
	// A different key must not block while a.com is held.
	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b.com")
		unlockB()
		close(done)
	}()
	<-done
	unlockA()
}

func TestKeyedMutexCleansUpEntries(t *testing.T) {
	locks := newKeyedMutex()

	for i := 0; i < 10; i++ {
		unlock := locks.Lock("example.com")
		unlock()
	}

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if n := len(locks.entries); n != 0 {
		t.Errorf("entries retained = %d, want 0", n)
	}
}
