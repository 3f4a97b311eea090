package midtrans

import (
	"context"
	"fmt"

	"emoticore-be/pkg/billing"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

type Gateway struct {
	serverKey string
	snap      snap.Client
	core      coreapi.Client
}

var _ billing.Gateway = &Gateway{}

func NewGateway(serverKey string, isProduction bool) *Gateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	g := &Gateway{serverKey: serverKey}
	g.snap.New(serverKey, env)
	g.core.New(serverKey, env)
	return g
}

// CreateCheckout opens a Snap transaction. The midtrans client has no
// context support, so ctx only guards against starting after cancellation.
func (g *Gateway) CreateCheckout(ctx context.Context, req billing.CheckoutRequest) (*billing.CheckoutSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderId,
			GrossAmt: req.GrossAmount,
		},
		CreditCard: &snap.CreditCardDetails{
			Secure: true,
		},
		Callbacks: &snap.Callbacks{
			Finish: req.FinishURL,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FullName,
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemId,
				Price: req.GrossAmount,
				Qty:   1,
				Name:  req.ItemName,
			},
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}

	resp, midErr := g.snap.CreateTransaction(snapReq)
	if midErr != nil {
		return nil, fmt.Errorf("%w: snap create transaction: %s", billing.ErrGateway, midErr.GetMessage())
	}

	return &billing.CheckoutSession{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

func (g *Gateway) GetStatus(ctx context.Context, orderId string) (*billing.TransactionStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, midErr := g.core.CheckTransaction(orderId)
	if midErr != nil {
		return nil, fmt.Errorf("%w: check transaction: %s", billing.ErrGateway, midErr.GetMessage())
	}

	return &billing.TransactionStatus{
		OrderId:           resp.OrderID,
		TransactionId:     resp.TransactionID,
		TransactionStatus: resp.TransactionStatus,
		FraudStatus:       resp.FraudStatus,
		StatusCode:        resp.StatusCode,
		GrossAmount:       resp.GrossAmount,
		Outcome:           billing.OutcomeFromStatus(resp.TransactionStatus, resp.FraudStatus),
	}, nil
}

func (g *Gateway) VerifySignature(orderId, statusCode, grossAmount, signature string) bool {
	return billing.VerifyNotificationSignature(orderId, statusCode, grossAmount, g.serverKey, signature)
}
