package specification

import (
	"testing"

	"emoticore-be/internal/model"
	"emoticore-be/internal/repository/testdb"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestApplyAll(t *testing.T) {
	db := testdb.Open(t)
	userId := uuid.New()

	dry := db.Session(&gorm.Session{DryRun: true})
	var sessions []model.ChatSession
	stmt := ApplyAll(dry, UserOwnedBy{UserID: userId}, nil, OrderBy{Field: "updated_at", Desc: true}).
		Find(&sessions).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, "user_id = ?")
	assert.Contains(t, sql, "ORDER BY updated_at DESC")
	assert.Contains(t, stmt.Vars, userId)
}

func TestFuncAdaptsScope(t *testing.T) {
	db := testdb.Open(t).Session(&gorm.Session{DryRun: true})

	var messages []model.ChatMessage
	stmt := ApplyAll(db, ByRole("assistant")).Find(&messages).Statement

	assert.Contains(t, stmt.SQL.String(), "role = ?")
	assert.Equal(t, []interface{}{"assistant"}, stmt.Vars)
}
