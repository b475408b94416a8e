package service

import "sync"

// Throttle bounds the number of in-flight booking attempts per phone.
// Callers must pair every successful TryAcquire with exactly one Release
// on every exit path of the guarded operation.
type Throttle struct {
	mu     sync.Mutex
	counts map[string]int
	limit  int
}

func NewThrottle(limit int) *Throttle {
	return &Throttle{
		counts: make(map[string]int),
		limit:  limit,
	}
}

func (t *Throttle) TryAcquire(phone string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counts[phone] >= t.limit {
		return false
	}
	t.counts[phone]++
	return true
}

func (t *Throttle) Release(phone string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.counts[phone] <= 1 {
		// entries self-clean at zero so the map stays bounded
		delete(t.counts, phone)
		return
	}
	t.counts[phone]--
}

// InFlight reports the current count for a phone. Test helper.
func (t *Throttle) InFlight(phone string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[phone]
}
