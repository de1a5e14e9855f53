package simulator

import (
	"errors"
	"math/rand"
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/auth"
	"github.com/gassdlindo/rastreioveicular/internal/tracking"

	"github.com/gofiber/fiber/v2"
)

const maxSimulatedPings = 1000

type walkRequest struct {
	Count    int     `json:"count"`
	Seed     int64   `json:"seed"`
	StartLat float64 `json:"start_lat"`
	StartLng float64 `json:"start_lng"`
}

// RegisterRoutes exposes track fabrication. Fabricated pings go through the
// normal ingest path, so broadcasts and alerts fire just like real ones.
func RegisterRoutes(r fiber.Router, pings *tracking.Service, authMiddleware fiber.Handler) {
	r.Post("/vehicles/:id/pings", authMiddleware, func(c *fiber.Ctx) error {
		var req walkRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Count <= 0 || req.Count > maxSimulatedPings {
			return fiber.NewError(fiber.StatusBadRequest, "count must be between 1 and 1000")
		}

		var rng *rand.Rand
		if req.Seed != 0 {
			rng = rand.New(rand.NewSource(req.Seed))
		}
		sim := New(rng)

		vehicleID := c.Params("id")
		userID := auth.UserID(c)
		recorded := make([]tracking.Ping, 0, req.Count)
		for _, sample := range sim.Walk(req.StartLat, req.StartLng, req.Count, time.Time{}) {
			ping, err := pings.RecordPing(c.Context(), vehicleID, userID, tracking.Ping{
				Lat:        sample.Lat,
				Lng:        sample.Lng,
				SpeedKmh:   sample.SpeedKmh,
				RecordedAt: sample.RecordedAt,
			})
			if err != nil {
				if errors.Is(err, tracking.ErrVehicleNotFound) {
					return fiber.NewError(fiber.StatusNotFound, err.Error())
				}
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
			recorded = append(recorded, ping)
		}
		return c.Status(fiber.StatusCreated).JSON(recorded)
	})
}
