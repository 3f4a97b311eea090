package controller

import (
	"errors"

	"emoticore-be/internal/pkg/serverutils"
	"emoticore-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IProfileController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetProfile(ctx *fiber.Ctx) error
}

type profileController struct {
	service service.IProfileService
}

func NewProfileController(service service.IProfileService) IProfileController {
	return &profileController{service: service}
}

func (c *profileController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	r.Get("/profile", auth, c.GetProfile)
}

func (c *profileController) GetProfile(ctx *fiber.Ctx) error {
	res, err := c.service.GetProfile(ctx.UserContext(), serverutils.CurrentUserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			return fiber.ErrUnauthorized
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get profile", res))
}
