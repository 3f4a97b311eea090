package database_test

import (
	"context"
	"log"
	"os"
	"testing"

	"emoticore-be/internal/entity"
	"emoticore-be/internal/model"
	"emoticore-be/internal/repository/specification"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPostgres(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, database.Options{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(model.All()...))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	userId := uuid.New()

	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	session := &entity.ChatSession{UserId: userId, Title: "integration"}
	require.NoError(t, uow.ChatSessionRepository().Create(ctx, session))
	require.NoError(t, uow.ChatMessageRepository().Create(ctx, &entity.ChatMessage{
		ChatSessionId: session.Id,
		UserId:        userId,
		Content:       "hello",
		Role:          "user",
	}))

	count, err := uow.ChatMessageRepository().Count(ctx, specification.ByChatSessionID{ChatSessionID: session.Id})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Rolled back on return so the shared database stays clean
}
