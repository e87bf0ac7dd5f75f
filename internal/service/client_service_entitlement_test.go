package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/notevault/internal/logger"
	"github.com/MKhiriev/notevault/internal/mock"
	"github.com/MKhiriev/notevault/models"
)

func TestEntitlementService_IsPremium(t *testing.T) {
	clk := newTestClock()
	future := clk.Now().Add(24 * time.Hour).UnixMilli()
	past := clk.Now().Add(-24 * time.Hour).UnixMilli()

	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{name: "signed out", user: nil, want: false},
		{name: "basic", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionBasic}}, want: false},
		{name: "trial", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionTrial}}, want: true},
		{name: "beta", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionBeta}}, want: true},
		{name: "premium", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionPremium}}, want: true},
		{name: "premium expired", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionPremiumExpired}}, want: false},
		{name: "canceled, still paid", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionPremiumCanceled, Expiry: future}}, want: true},
		{name: "canceled, ran out", user: &models.User{Subscription: models.Subscription{Type: models.SubscriptionPremiumCanceled, Expiry: past}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mock.NewMockUserManager(ctrl)
			users.EXPECT().FetchUser(gomock.Any()).Return(tt.user, nil)

			got, err := NewEntitlementService(users, clk, logger.Nop()).IsPremium(context.Background(), FeatureVaultAdd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntitlementService_NetworkErrorPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserManager(ctrl)
	boom := errors.New("offline")
	users.EXPECT().FetchUser(gomock.Any()).Return(nil, boom)

	got, err := NewEntitlementService(users, newTestClock(), logger.Nop()).IsPremium(context.Background(), FeatureVaultAdd)
	assert.ErrorIs(t, err, boom)
	assert.False(t, got)
}
