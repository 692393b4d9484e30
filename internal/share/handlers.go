package share

import (
	"errors"

	"backend-routenav/internal/route"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, signer *TokenSigner, codes *CodeStore) {
	r.Post("/saved", func(c *fiber.Ctx) error {
		var req SavedRoute
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		saved, err := svc.Create(c.Context(), req)
		if errors.Is(err, route.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(saved)
	})

	r.Get("/saved", func(c *fiber.Ctx) error {
		userID := c.Query("user")
		if userID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "user required")
		}
		routes, err := svc.ListByUser(c.Context(), userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(routes)
	})

	r.Get("/saved/:id", func(c *fiber.Ctx) error {
		saved, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "saved route not found")
		}
		return c.JSON(saved)
	})

	r.Delete("/saved/:id", func(c *fiber.Ctx) error {
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/token", func(c *fiber.Ctx) error {
		var env Envelope
		if err := c.BodyParser(&env); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		token, err := signer.Sign(env)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{"token": token})
	})

	r.Get("/token/:token", func(c *fiber.Ctx) error {
		env, err := signer.Decode(c.Params("token"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(env)
	})

	r.Post("/code", func(c *fiber.Ctx) error {
		if codes == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "share codes unavailable")
		}
		var env Envelope
		if err := c.BodyParser(&env); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		code, err := codes.Create(c.Context(), env)
		if errors.Is(err, route.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"code": code})
	})

	r.Get("/code/:code", func(c *fiber.Ctx) error {
		if codes == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "share codes unavailable")
		}
		env, err := codes.Resolve(c.Context(), c.Params("code"))
		if errors.Is(err, route.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(env)
	})
}
