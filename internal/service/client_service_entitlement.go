package service

import (
	"context"

	"github.com/MKhiriev/notevault/internal/clock"
	"github.com/MKhiriev/notevault/internal/logger"
)

// Features checked against the subscription.
const (
	FeatureVaultAdd = "vaultAdd"
)

type entitlementService struct {
	users  UserManager
	clock  clock.Clock
	logger *logger.Logger
}

func NewEntitlementService(users UserManager, clk clock.Clock, log *logger.Logger) EntitlementChecker {
	return &entitlementService{users: users, clock: clk, logger: log}
}

func (e *entitlementService) IsPremium(ctx context.Context, feature string) (bool, error) {
	user, err := e.users.FetchUser(ctx)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	premium := user.IsPremium(e.clock.Now())
	if !premium {
		e.logger.Debug().
			Str("func", "entitlementService.IsPremium").
			Str("feature", feature).
			Msg("feature requires a premium subscription")
	}
	return premium, nil
}
