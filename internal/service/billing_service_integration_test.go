package service

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"emoticore-be/internal/constant"
	"emoticore-be/internal/dto"
	"emoticore-be/internal/entity"
	"emoticore-be/internal/model"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/repository/memory"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/pkg/billing"
	"emoticore-be/pkg/database"
	"emoticore-be/pkg/events"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingService_ConcurrentPaidReconcilePostgres(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}
	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, database.Options{MaxOpenConns: 8})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(db)
	plan := &entity.SubscriptionPlan{Name: "Premium Monthly", Slug: "race-" + uuid.NewString(), Price: 49000, Interval: constant.PlanIntervalMonth, IsActive: true}
	require.NoError(t, factory.NewUnitOfWork(ctx).SubscriptionRepository().CreatePlan(ctx, plan))

	var userIds []uuid.UUID
	t.Cleanup(func() {
		db.Where("user_id IN ?", userIds).Delete(&model.CheckoutOrder{})
		db.Where("id IN ?", userIds).Delete(&model.Profile{})
		db.Where("id = ?", plan.Id).Delete(&model.SubscriptionPlan{})
	})

	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		userId := uuid.New()
		userIds = append(userIds, userId)

		gateway := &fakeGateway{
			session:  &billing.CheckoutSession{Token: "snap-token"},
			validSig: true,
		}
		recorded := &recordingEvents{}
		svc := NewBillingService(factory, gateway, memory.NewPlanCache(time.Minute), &recordingMailer{}, recorded, logger.NewNopLogger(), "").(*billingService)
		svc.now = func() time.Time { return now }

		res, err := svc.CreateCheckout(ctx, userId, &dto.CreateCheckoutRequest{PlanId: plan.Id.String()})
		require.NoError(t, err)
		gateway.status = &billing.TransactionStatus{OrderId: res.SessionId.String(), TransactionId: "trx-poll", Outcome: billing.OutcomePaid}

		// Webhook and browser poll land together
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			<-start
			assert.NoError(t, svc.HandleNotification(ctx, paidNotification(res.SessionId)))
		}()
		go func() {
			defer wg.Done()
			<-start
			_, err := svc.CheckSession(ctx, userId, &dto.CheckSessionRequest{SessionId: res.SessionId.String()})
			assert.NoError(t, err)
		}()
		close(start)
		wg.Wait()

		activated := 0
		for _, typ := range recorded.types {
			if typ == events.TypeSubscriptionActivated {
				activated++
			}
		}
		assert.Equal(t, 1, activated)

		profile, err := factory.NewUnitOfWork(ctx).ProfileRepository().FindOne(ctx, specification.ByID{ID: userId})
		require.NoError(t, err)
		require.NotNil(t, profile)
		require.NotNil(t, profile.SubscriptionEndDate)
		assert.WithinDuration(t, now.AddDate(0, 1, 0), *profile.SubscriptionEndDate, time.Second)
	}
}
