package billing

import (
	"crypto/sha512"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeFromStatus(t *testing.T) {
	tests := []struct {
		status string
		fraud  string
		want   Outcome
	}{
		{"capture", "accept", OutcomePaid},
		{"capture", "challenge", OutcomePending},
		{"settlement", "", OutcomePaid},
		{"pending", "", OutcomePending},
		{"deny", "", OutcomeFailed},
		{"cancel", "", OutcomeFailed},
		{"expire", "", OutcomeFailed},
		{"refund", "", OutcomeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.fraud, func(t *testing.T) {
			assert.Equal(t, tt.want, OutcomeFromStatus(tt.status, tt.fraud))
		})
	}
}

func TestNotificationSignature(t *testing.T) {
	want := fmt.Sprintf("%x", sha512.Sum512([]byte("order-1"+"200"+"99000.00"+"server-key")))
	assert.Equal(t, want, NotificationSignature("order-1", "200", "99000.00", "server-key"))

	assert.True(t, VerifyNotificationSignature("order-1", "200", "99000.00", "server-key", want))
	assert.False(t, VerifyNotificationSignature("order-1", "200", "1.00", "server-key", want))
	assert.False(t, VerifyNotificationSignature("order-1", "200", "99000.00", "", want))
	assert.False(t, VerifyNotificationSignature("order-1", "200", "99000.00", "server-key", ""))
}
