// Package cache provides a small key/value cache used to memoize price
// analytics responses. A Redis-backed implementation is used when a Redis
// address is configured, otherwise an in-process map serves the same role.
package cache

import "time"

// DefaultTTL is how long analytics entries stay fresh before they are
// recomputed from the offer data.
const DefaultTTL = 5 * time.Minute

type PriceCache interface {
	Get(key string) (string, bool)
	Set(key string, value string, ttl time.Duration) error
	Delete(key string) error
}
