package usecases_test

import (
	"context"
	"testing"

	"brixium.backend/internal/domain/entities"
	domainerrors "brixium.backend/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmin_Users(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	all, err := env.admin.ListUsers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := env.admin.ListUsers(ctx, " builder ")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, bobID, found[0].ID)

	user, err := env.admin.GetUser(ctx, charlieID)
	require.NoError(t, err)
	assert.Equal(t, "Charlie Brown", user.Name)

	updated, err := env.admin.UpdateUser(ctx, charlieID, &entities.UpdateProfileInput{Name: "Charles Brown", Phone: strPtr("555-0103")})
	require.NoError(t, err)
	assert.Equal(t, "Charles Brown", updated.Name)
	assert.Equal(t, "555-0103", updated.Phone.String)

	_, err = env.admin.UpdateUser(ctx, charlieID, &entities.UpdateProfileInput{})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestAdmin_Dashboard(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.admin.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalUsers)
	// 50000.75 USD + 125000 EUR * 1.08 + 7800.50 NGN * 0.00067
	assert.Equal(t, "185005.98", stats.PlatformBalanceUSD)
	assert.Equal(t, 1, stats.PendingKYC)
	assert.Equal(t, 1, stats.PendingWithdrawals)
	assert.Equal(t, 2, stats.ActiveFeeRules)
	assert.False(t, stats.MaintenanceMode)
}
