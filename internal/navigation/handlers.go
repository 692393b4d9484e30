package navigation

import (
	"errors"

	"backend-routenav/internal/planner"
	"backend-routenav/internal/route"

	"github.com/gofiber/fiber/v2"
)

type createSessionResponse struct {
	SessionID string          `json:"session_id"`
	Itinerary route.Itinerary `json:"itinerary"`
	Snapshot  Snapshot        `json:"snapshot"`
}

type commandRequest struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

func RegisterRoutes(r fiber.Router, plan *planner.Service, mgr *Manager) {
	r.Post("/sessions", func(c *fiber.Ctx) error {
		var req planner.PlanRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		itinerary, err := plan.Plan(c.Context(), req)
		if err != nil {
			return fiber.NewError(planner.StatusForError(err), err.Error())
		}

		id, err := mgr.Create(itinerary, req.Options)
		if err != nil {
			return fiber.NewError(planner.StatusForError(err), err.Error())
		}
		snap, _ := mgr.Snapshot(id)
		return c.Status(fiber.StatusCreated).JSON(createSessionResponse{
			SessionID: id,
			Itinerary: itinerary,
			Snapshot:  snap,
		})
	})

	r.Get("/sessions/:id", func(c *fiber.Ctx) error {
		snap, err := mgr.Snapshot(c.Params("id"))
		if errors.Is(err, ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(snap)
	})

	r.Get("/sessions/:id/itinerary", func(c *fiber.Ctx) error {
		itinerary, err := mgr.Itinerary(c.Params("id"))
		if errors.Is(err, ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(itinerary)
	})

	r.Post("/sessions/:id/position", func(c *fiber.Ctx) error {
		var pos Position
		if err := c.BodyParser(&pos); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := mgr.Submit(c.Params("id"), pos); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusAccepted)
	})

	r.Post("/sessions/:id/commands", func(c *fiber.Ctx) error {
		var req commandRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		snap, err := mgr.Apply(c.Params("id"), req.Action, req.Index)
		if errors.Is(err, ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if errors.Is(err, route.ErrInvalidInput) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(snap)
	})

	r.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		if err := mgr.Close(c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
