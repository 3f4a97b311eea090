package service

import (
	"context"
	"testing"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/repository/testdb"
	"emoticore-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_GetProfile(t *testing.T) {
	svc := NewProfileService(unitofwork.NewRepositoryFactory(testdb.Open(t)))
	ctx := context.Background()
	userId := uuid.New()

	_, err := svc.GetProfile(ctx, uuid.Nil)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	first, err := svc.GetProfile(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, userId, first.Id)
	assert.Equal(t, constant.SubscriptionPlanFree, first.SubscriptionPlan)
	assert.Equal(t, constant.SubscriptionStatusActive, first.SubscriptionStatus)
	assert.Zero(t, first.DailyMessageCount)

	// Second read finds the lazily created row instead of inserting again
	second, err := svc.GetProfile(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, first.Id, second.Id)
}
