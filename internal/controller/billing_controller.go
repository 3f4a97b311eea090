package controller

import (
	"errors"

	"emoticore-be/internal/dto"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/pkg/serverutils"
	"emoticore-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const billingControllerModule = "BillingController"

type IBillingController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetPlans(ctx *fiber.Ctx) error
	CreateCheckout(ctx *fiber.Ctx) error
	CheckSession(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type billingController struct {
	service service.IBillingService
	logger  logger.ILogger
}

func NewBillingController(service service.IBillingService, sysLogger logger.ILogger) IBillingController {
	return &billingController{service: service, logger: sysLogger}
}

func (c *billingController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/subscription-plans", c.GetPlans)
	r.Post("/payment/notification", c.Webhook)

	// Protected Routes
	r.Post("/create-checkout-session", auth, c.CreateCheckout)
	r.Post("/check-session", auth, c.CheckSession)
}

func (c *billingController) GetPlans(ctx *fiber.Ctx) error {
	res, err := c.service.GetActivePlans(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success fetching plans", res))
}

func (c *billingController) CreateCheckout(ctx *fiber.Ctx) error {
	var req dto.CreateCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateCheckout(ctx.UserContext(), serverutils.CurrentUserID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Plan not found")
		}
		c.logger.Error(billingControllerModule, "Checkout failed", map[string]interface{}{
			"plan_id": req.PlanId,
			"error":   err.Error(),
		})
		return fiber.NewError(fiber.StatusBadGateway, "Unable to create checkout session")
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session created", res))
}

func (c *billingController) CheckSession(ctx *fiber.Ctx) error {
	var req dto.CheckSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CheckSession(ctx.UserContext(), serverutils.CurrentUserID(ctx), &req)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Checkout session not found")
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout session status", res))
}

// Webhook answers non-2xx on transient failures so the gateway retries.
func (c *billingController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.SendStatus(fiber.StatusBadRequest)
	}

	err := c.service.HandleNotification(ctx.UserContext(), &req)
	switch {
	case err == nil:
		return ctx.SendStatus(fiber.StatusOK)
	case errors.Is(err, service.ErrInvalidSignature):
		return ctx.SendStatus(fiber.StatusForbidden)
	case errors.Is(err, service.ErrOrderNotFound):
		return ctx.SendStatus(fiber.StatusNotFound)
	default:
		c.logger.Error(billingControllerModule, "Notification handling failed", map[string]interface{}{
			"order_id": req.OrderId,
			"error":    err.Error(),
		})
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
}
