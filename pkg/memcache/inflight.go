// pkg/memcache/inflight.go
package mem

import (
	"sync"
	"time"
)

// InFlightWindow marks keys as busy for the duration of an operation so
// two concurrent callers cannot both start it. Entries self-expire in
// case a caller never reports completion.
type InFlightWindow struct {
	mu   sync.Mutex
	data map[string]time.Time
	ttl  time.Duration
}

func NewInFlightWindow(ttl time.Duration) *InFlightWindow {
	return &InFlightWindow{
		data: make(map[string]time.Time),
		ttl:  ttl,
	}
}

// Begin reserves the key. Returns false if another caller already holds
// a live reservation.
func (w *InFlightWindow) Begin(key string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if expires, ok := w.data[key]; ok && time.Now().Before(expires) {
		return false
	}
	w.data[key] = time.Now().Add(w.ttl)
	return true
}

func (w *InFlightWindow) End(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.data, key)
}
