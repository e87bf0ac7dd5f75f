package service

import (
	"github.com/MKhiriev/notevault/internal/adapter"
	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/config"
	"github.com/MKhiriev/notevault/internal/crypto"
	"github.com/MKhiriev/notevault/internal/events"
	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/store"
)

type ClientServices struct {
	Tokens      TokenManager
	Users       UserManager
	Entitlement EntitlementChecker
	Keys        KeyManager
	Vault       Vault
	Content     ContentProcessor

	RefreshJob *TokenRefreshJob
}

func NewClientServices(
	localStore *store.ClientStorages,
	authAdapter adapter.AuthAdapter,
	cryptoProvider crypto.Provider,
	bus *events.Bus,
	clk clock.Clock,
	cfg *config.ClientConfig,
	log *logger.Logger,
) *ClientServices {
	tokens := NewTokenManager(localStore.KV, authAdapter, bus, clk, cfg.Security.TokenRefreshTimeout, log)
	users := NewUserService(localStore.KV, authAdapter, tokens, cryptoProvider, bus, log)
	entitlement := NewEntitlementService(users, clk, log)
	content := NewContentProcessor(localStore.Attachments, localStore.Relations, DefaultInlineAttachmentLimit, log)

	return &ClientServices{
		Tokens:      tokens,
		Users:       users,
		Entitlement: entitlement,
		Keys:        NewKeyManager(users, cryptoProvider, bus, log),
		Vault:       NewVault(localStore, cryptoProvider, entitlement, content, bus, clk, cfg.Security.VaultEraseAfter, log),
		Content:     content,
		RefreshJob:  NewTokenRefreshJob(tokens, clk, cfg.Workers.TokenRefreshInterval, log),
	}
}
