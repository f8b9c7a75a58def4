package memcache_fx

import (
	"go.uber.org/fx"

	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
)

// Requests per client IP per minute across the whole API surface.
const requestsPerMinute = 120

var Module = fx.Provide(
	provideKeyedLimiter)

func provideKeyedLimiter() mem.KeyedLimiter {
	return mem.NewKeyedRateLimiter(requestsPerMinute)
}
