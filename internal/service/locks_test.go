package service

import (
	"sync"
	"testing"
)

func TestUserLocksSerializeSameUser(t *testing.T) {
	l := newUserLocks()

	var (
		wg      sync.WaitGroup
		counter int
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(7)
			defer unlock()
			v := counter
			counter = v + 1
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("expected 50 increments, got %d", counter)
	}
	if l.size() != 0 {
		t.Errorf("expected no leftover locks, got %d", l.size())
	}
}

func TestUserLocksIndependentUsers(t *testing.T) {
	l := newUserLocks()

	unlockA := l.lock(1)
	unlockB := l.lock(2)

	if l.size() != 2 {
		t.Errorf("expected 2 locks, got %d", l.size())
	}

	unlockA()
	unlockB()

	if l.size() != 0 {
		t.Errorf("expected locks to be released, got %d", l.size())
	}
}
