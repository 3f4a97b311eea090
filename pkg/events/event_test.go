package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewEvent(t *testing.T) {
	before := time.Now()
	e := NewEvent(TypeSubscriptionActivated, map[string]interface{}{"user_id": "u1"})

	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, TypeSubscriptionActivated, e.EventType())
	assert.Equal(t, "u1", e.Payload()["user_id"])
	assert.False(t, e.Timestamp().Before(before))

	other := NewEvent(TypeSubscriptionActivated, nil)
	assert.NotEqual(t, e.EventID(), other.EventID())
}
