package midtrans

import (
	"context"
	"testing"

	"emoticore-be/pkg/billing"

	"github.com/stretchr/testify/assert"
)

func TestGateway_VerifySignature(t *testing.T) {
	g := NewGateway("SB-Mid-server-test", false)
	sig := billing.NotificationSignature("order-1", "200", "99000.00", "SB-Mid-server-test")

	assert.True(t, g.VerifySignature("order-1", "200", "99000.00", sig))
	assert.False(t, g.VerifySignature("order-2", "200", "99000.00", sig))
}

func TestGateway_CanceledContext(t *testing.T) {
	g := NewGateway("SB-Mid-server-test", false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.CreateCheckout(ctx, billing.CheckoutRequest{OrderId: "o"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = g.GetStatus(ctx, "o")
	assert.ErrorIs(t, err, context.Canceled)
}
