// Package timeouts centralizes the context deadlines handlers put on
// store and storage calls.
//
// Tiers:
//   - Ping: health checks and connectivity probes
//   - Short: single-document reads (question by id, classroom by code)
//   - Medium: list queries, aggregations, ordinary writes
//   - Batch: answer submissions that upload attachments
package timeouts

import (
	"os"
	"sync"
	"time"
)

const (
	defaultPing   = 2 * time.Second
	defaultShort  = 5 * time.Second
	defaultMedium = 10 * time.Second
	defaultBatch  = 60 * time.Second
)

var (
	mu     sync.RWMutex
	ping   = defaultPing
	short  = defaultShort
	medium = defaultMedium
	batch  = defaultBatch
)

// Ping returns the deadline for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the deadline for single-document lookups.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the deadline for list queries and ordinary writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Batch returns the deadline for requests that move attachment data.
func Batch() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return batch
}

// ConfigureFromEnv overrides tiers from TIMEOUT_PING, TIMEOUT_SHORT,
// TIMEOUT_MEDIUM, and TIMEOUT_BATCH (time.ParseDuration syntax, e.g.
// "500ms", "30s"). Unset, malformed, and non-positive values keep the
// current tier. Returns how many tiers were overridden; called once
// from the startup hook.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()

	overridden := 0
	for name, tier := range map[string]*time.Duration{
		"TIMEOUT_PING":   &ping,
		"TIMEOUT_SHORT":  &short,
		"TIMEOUT_MEDIUM": &medium,
		"TIMEOUT_BATCH":  &batch,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			continue
		}
		*tier = d
		overridden++
	}
	return overridden
}

// reset restores the default tiers. Tests use this to undo ConfigureFromEnv.
func reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = defaultPing
	short = defaultShort
	medium = defaultMedium
	batch = defaultBatch
}
