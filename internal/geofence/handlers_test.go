package geofence

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func asUser(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", userID)
		return c.Next()
	}
}

func TestGeofenceHandlersCreateList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO geofences`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Depot", -23.5505, -46.6333, 500.0, true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectQuery(`FROM geofences WHERE user_id=\$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "lat", "lng", "radius_m", "active", "created_at"}).
			AddRow("gf-1", "user-1", "Depot", -23.5505, -46.6333, 500.0, true, time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/geofences"), NewService(mock), asUser("user-1"))

	body, _ := json.Marshal(Geofence{Name: "Depot", Lat: -23.5505, Lng: -46.6333, RadiusM: 500, Active: true})
	req := httptest.NewRequest(http.MethodPost, "/geofences/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/geofences/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
}

func TestGeofenceHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/geofences"), NewService(nil), asUser("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/geofences/", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for missing radius")
	}
}

func TestGeofenceHandlersNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, lat, lng, radius_m, active, created_at`).
		WithArgs("missing", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "lat", "lng", "radius_m", "active", "created_at"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/geofences"), NewService(mock), asUser("user-1"))

	req := httptest.NewRequest(http.MethodGet, "/geofences/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestGeofenceHandlersUpdateDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, lat, lng, radius_m, active, created_at`).
		WithArgs("gf-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "lat", "lng", "radius_m", "active", "created_at"}).
			AddRow("gf-1", "user-1", "Depot", -23.5505, -46.6333, 500.0, true, time.Now()))
	mock.ExpectExec(`UPDATE geofences`).
		WithArgs("gf-1", "user-1", "Depot", -23.5505, -46.6333, 900.0, true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`DELETE FROM geofences`).
		WithArgs("gf-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/geofences"), NewService(mock), asUser("user-1"))

	// active omitted from the patch stays true
	body := []byte(`{"radius_m":900}`)
	req := httptest.NewRequest(http.MethodPut, "/geofences/gf-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/geofences/gf-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}
