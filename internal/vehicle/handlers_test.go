package vehicle

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

func TestVehicleHandlersCreateListGet(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	createdAt := time.Now()
	mock.ExpectQuery(`INSERT INTO vehicles`).
		WithArgs(pgxmock.AnyArg(), "user-1", "Van 12", "ABC1D23", "", 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(createdAt, createdAt))

	mock.ExpectQuery(`SELECT id, user_id, name, plate, model`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "plate", "model", "speed_limit_kmh", "created_at", "updated_at"}).
			AddRow("veh-1", "user-1", "Van 12", "ABC1D23", "", 0.0, createdAt, createdAt))

	mock.ExpectQuery(`SELECT id, user_id, name, plate, model`).
		WithArgs("veh-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "plate", "model", "speed_limit_kmh", "created_at", "updated_at"}).
			AddRow("veh-1", "user-1", "Van 12", "ABC1D23", "", 0.0, createdAt, createdAt))

	app := fiber.New()
	RegisterRoutes(app.Group("/vehicles"), NewService(mock), asUser("user-1"))

	body, _ := json.Marshal(Vehicle{Name: "Van 12", Plate: "ABC1D23"})
	req := httptest.NewRequest(http.MethodPost, "/vehicles/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/vehicles/", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/vehicles/veh-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get status: %v", err)
	}
}

func TestVehicleHandlersBadRequest(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/vehicles"), NewService(nil), asUser("user-1"))

	req := httptest.NewRequest(http.MethodPost, "/vehicles/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestVehicleHandlersNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, plate, model`).
		WithArgs("missing", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "plate", "model", "speed_limit_kmh", "created_at", "updated_at"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/vehicles"), NewService(mock), asUser("user-1"))

	req := httptest.NewRequest(http.MethodGet, "/vehicles/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found")
	}
}

func TestVehicleHandlersUpdateDelete(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, user_id, name, plate, model`).
		WithArgs("veh-1", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "plate", "model", "speed_limit_kmh", "created_at", "updated_at"}).
			AddRow("veh-1", "user-1", "Van 12", "ABC1D23", "", 0.0, time.Now(), time.Now()))
	mock.ExpectExec(`UPDATE vehicles`).
		WithArgs("veh-1", "user-1", "Van 13", "ABC1D23", "", 0.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	mock.ExpectExec(`DELETE FROM vehicles`).
		WithArgs("veh-1", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	app := fiber.New()
	RegisterRoutes(app.Group("/vehicles"), NewService(mock), asUser("user-1"))

	body, _ := json.Marshal(Vehicle{Name: "Van 13"})
	req := httptest.NewRequest(http.MethodPut, "/vehicles/veh-1", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: %v", err)
	}

	req = httptest.NewRequest(http.MethodDelete, "/vehicles/veh-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status: %v", err)
	}
}
