package station

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			return fiber.NewError(fiber.StatusBadRequest, "lat and lng required")
		}
		radiusKm, err := strconv.ParseFloat(c.Query("radius_km", "5"), 64)
		if err != nil || radiusKm <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid radius_km")
		}

		stations, err := svc.Nearby(c.Context(), lat, lng, radiusKm)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stations)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		st, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "station not found")
		}
		return c.JSON(st)
	})
}
