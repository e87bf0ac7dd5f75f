// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events is the in-process publish/subscribe bus that the vault,
// key manager and token manager use to announce state changes to the rest
// of the application.
package events

import (
	"sync"

	"github.com/MKhiriev/notevault/internal/logger"
)

// Topic names an event.
type Topic string

const (
	VaultLocked             Topic = "vaultLocked"
	VaultUnlocked           Topic = "vaultUnlocked"
	TokenRefreshed          Topic = "tokenRefreshed"
	UserSessionExpired      Topic = "userSessionExpired"
	UserLoggedOut           Topic = "userLoggedOut"
	UserFetched             Topic = "userFetched"
	UserSubscriptionUpdated Topic = "userSubscriptionUpdated"
)

// Handler receives the payload passed to Publish.
type Handler func(payload any)

// Unsubscribe removes a previously registered handler. Calling it more than
// once is a no-op.
type Unsubscribe func()

type subscription struct {
	id      uint64
	handler Handler
}

// Bus dispatches events synchronously, in subscription order. A panicking
// handler is logged and does not prevent the remaining handlers from
// running.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
	logger *logger.Logger
}

// NewBus returns an empty Bus.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		subs:   make(map[Topic][]subscription),
		logger: log,
	}
}

// Subscribe registers handler for topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) Unsubscribe {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

// Publish calls every handler subscribed to topic with payload.
func (b *Bus) Publish(topic Topic, payload any) {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		b.dispatch(topic, s.handler, payload)
	}
}

func (b *Bus) dispatch(topic Topic, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("func", "Bus.Publish").
				Str("topic", string(topic)).
				Interface("panic", r).
				Msg("event handler panicked")
		}
	}()
	handler(payload)
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}
