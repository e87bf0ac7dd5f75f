package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
)

// testCryptoParams keeps Argon2id cheap enough for unit tests.
var testCryptoParams = crypto.Params{Time: 1, Memory: 8 * 1024, Threads: 1}

var testStart = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestStorages(t *testing.T) *store.ClientStorages {
	t.Helper()
	storages, err := store.NewClientStorages(
		context.Background(),
		config.ClientStorage{DB: config.ClientDB{DSN: ":memory:"}},
		logger.Nop(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })
	return storages
}

func newTestCrypto() crypto.Provider {
	return crypto.NewProvider(testCryptoParams)
}

func newTestClock() *clock.Manual {
	return clock.NewManual(testStart)
}

// recorder counts events published on a bus.
type recorder struct {
	mu       sync.Mutex
	counts   map[events.Topic]int
	payloads map[events.Topic][]any
}

func record(bus *events.Bus, topics ...events.Topic) *recorder {
	r := &recorder{
		counts:   make(map[events.Topic]int),
		payloads: make(map[events.Topic][]any),
	}
	for _, topic := range topics {
		bus.Subscribe(topic, func(p any) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.counts[topic]++
			r.payloads[topic] = append(r.payloads[topic], p)
		})
	}
	return r
}

func (r *recorder) count(topic events.Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[topic]
}

func (r *recorder) last(topic events.Topic) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.payloads[topic]
	if len(p) == 0 {
		return nil
	}
	return p[len(p)-1]
}
