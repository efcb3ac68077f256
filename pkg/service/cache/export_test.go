package cache

import "time"

// SetNow replaces the memory store clock for expiry tests
func (x *Memory) SetNow(now func() time.Time) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.now = now
}
