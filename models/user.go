// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SubscriptionType is the plan of the account as reported by the API host.
type SubscriptionType int

const (
	SubscriptionBasic SubscriptionType = iota
	SubscriptionTrial
	SubscriptionBeta
	SubscriptionPremium
	SubscriptionPremiumExpired
	SubscriptionPremiumCanceled
)

// Subscription describes the current plan of the user.
type Subscription struct {
	Type     SubscriptionType `json:"type"`
	Provider int              `json:"provider"`

	// Expiry is the unix time in milliseconds at which the plan ends.
	Expiry int64 `json:"expiry"`
}

// User is the account record mirrored locally from the API host. Wrapped
// application keys live on it; their private parts are always ciphers.
type User struct {
	ID               string       `json:"id"`
	Email            string       `json:"email"`
	Salt             string       `json:"salt"`
	IsEmailConfirmed bool         `json:"isEmailConfirmed"`
	Subscription     Subscription `json:"subscription"`

	AttachmentsKey        *WrappedKey `json:"attachmentsKey,omitempty"`
	MonographPasswordsKey *WrappedKey `json:"monographPasswordsKey,omitempty"`
	InboxKeys             *WrappedKey `json:"inboxKeys,omitempty"`
}

// IsPremium reports whether the subscription grants premium features at now.
func (u User) IsPremium(now time.Time) bool {
	switch u.Subscription.Type {
	case SubscriptionTrial, SubscriptionBeta, SubscriptionPremium:
		return true
	case SubscriptionPremiumCanceled:
		return u.Subscription.Expiry > now.UnixMilli()
	default:
		return false
	}
}

// UserPatch is a partial update of the user record. Nil fields are left
// untouched by both the API host and the local copy.
type UserPatch struct {
	AttachmentsKey        *WrappedKey `json:"attachmentsKey,omitempty"`
	MonographPasswordsKey *WrappedKey `json:"monographPasswordsKey,omitempty"`
	InboxKeys             *WrappedKey `json:"inboxKeys,omitempty"`
}

// Apply returns u with the non-nil fields of p set.
func (p UserPatch) Apply(u User) User {
	if p.AttachmentsKey != nil {
		u.AttachmentsKey = p.AttachmentsKey
	}
	if p.MonographPasswordsKey != nil {
		u.MonographPasswordsKey = p.MonographPasswordsKey
	}
	if p.InboxKeys != nil {
		u.InboxKeys = p.InboxKeys
	}
	return u
}
