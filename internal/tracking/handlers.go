package tracking

import (
	"errors"
	"time"

	"github.com/gassdlindo/rastreioveicular/internal/auth"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/vehicles/:id/pings", authMiddleware, func(c *fiber.Ctx) error {
		var req Ping
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.SpeedKmh < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "speed_kmh must be non-negative")
		}
		ping, err := svc.RecordPing(c.Context(), c.Params("id"), auth.UserID(c), req)
		if err != nil {
			if errors.Is(err, ErrVehicleNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(ping)
	})

	r.Get("/vehicles/:id/pings", authMiddleware, func(c *fiber.Ctx) error {
		q, err := historyQueryFromCtx(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		pings, err := svc.History(c.Context(), c.Params("id"), auth.UserID(c), q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(pings)
	})

	r.Get("/vehicles/:id/stats", authMiddleware, func(c *fiber.Ctx) error {
		q, err := historyQueryFromCtx(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		stats, err := svc.Statistics(c.Context(), c.Params("id"), auth.UserID(c), q)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(stats)
	})

	r.Get("/vehicles/:id/latest", authMiddleware, func(c *fiber.Ctx) error {
		ping, err := svc.Latest(c.Context(), c.Params("id"), auth.UserID(c))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "no pings recorded")
		}
		return c.JSON(ping)
	})
}

func historyQueryFromCtx(c *fiber.Ctx) (HistoryQuery, error) {
	var q HistoryQuery
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return HistoryQuery{}, errors.New("from must be RFC3339")
		}
		q.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return HistoryQuery{}, errors.New("to must be RFC3339")
		}
		q.To = t
	}
	q.Limit = c.QueryInt("limit")
	return q, nil
}
