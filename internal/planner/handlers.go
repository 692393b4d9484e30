package planner

import (
	"errors"

	"backend-routenav/internal/geo"
	"backend-routenav/internal/route"

	"github.com/gofiber/fiber/v2"
)

// StatusForError maps the core error taxonomy onto HTTP statuses.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, route.ErrInvalidInput), errors.Is(err, geo.ErrInvalidCoordinate):
		return fiber.StatusBadRequest
	case errors.Is(err, route.ErrRouteCalculation):
		return fiber.StatusBadGateway
	case errors.Is(err, route.ErrLocationUnavailable):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/plan", func(c *fiber.Ctx) error {
		var req PlanRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		itinerary, err := svc.Plan(c.Context(), req)
		if err != nil {
			return fiber.NewError(StatusForError(err), err.Error())
		}
		return c.JSON(itinerary)
	})
}
