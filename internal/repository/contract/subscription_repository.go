package contract

import (
	"context"

	"emoticore-be/internal/entity"
	"emoticore-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.SubscriptionPlan) error
	FindOnePlan(ctx context.Context, specs ...specification.Specification) (*entity.SubscriptionPlan, error)
	FindAllPlans(ctx context.Context, specs ...specification.Specification) ([]*entity.SubscriptionPlan, error)

	// Checkout orders
	CreateOrder(ctx context.Context, order *entity.CheckoutOrder) error
	UpdateOrder(ctx context.Context, order *entity.CheckoutOrder) error
	// TransitionOrder writes the order's status fields only if the stored status
	// still equals from. It reports whether the row was changed.
	TransitionOrder(ctx context.Context, order *entity.CheckoutOrder, from string) (bool, error)
	FindOneOrder(ctx context.Context, specs ...specification.Specification) (*entity.CheckoutOrder, error)
}
