package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/medilink-hq/medilink-api/roles"
)

// stubIdentity injects resolved identity locals the way Protected does after
// a successful token check.
func stubIdentity(role roles.Role, verified bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		c.Locals("role", role)
		c.Locals("verified", verified)
		return c.Next()
	}
}

func ok(c *fiber.Ctx) error {
	return c.SendString("ok")
}

func doRequest(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestVerifiedGate(t *testing.T) {
	cases := []struct {
		name     string
		role     roles.Role
		verified bool
		want     int
	}{
		{"unverified patient passes", roles.RolePatient, false, http.StatusOK},
		{"unverified student passes", roles.RoleStudent, false, http.StatusOK},
		{"unverified doctor blocked", roles.RoleDoctor, false, http.StatusForbidden},
		{"verified doctor passes", roles.RoleDoctor, true, http.StatusOK},
		{"unverified lab staff blocked", roles.RoleLabStaff, false, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", stubIdentity(tc.role, tc.verified), Verified(), ok)

			resp := doRequest(t, app, "/x")
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestVerifiedWithoutIdentity(t *testing.T) {
	app := fiber.New()
	app.Get("/x", Verified(), ok)

	resp := doRequest(t, app, "/x")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestRequireAreaRedirectsToOwnDashboard(t *testing.T) {
	app := fiber.New()
	app.Get("/doctor", stubIdentity(roles.RolePatient, true), RequireArea(roles.RoleDoctor), ok)

	resp := doRequest(t, app, "/doctor")
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}

	var body struct {
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RedirectTo != "/patient/dashboard" {
		t.Errorf("redirect_to = %q, want /patient/dashboard", body.RedirectTo)
	}
}

func TestRequireAreaMatch(t *testing.T) {
	app := fiber.New()
	app.Get("/doctor", stubIdentity(roles.RoleDoctor, true), RequireArea(roles.RoleDoctor), ok)

	resp := doRequest(t, app, "/doctor")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", stubIdentity(roles.RoleDoctor, true), RequireRole(roles.RoleAdmin), ok)

	resp := doRequest(t, app, "/admin")
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}

	app2 := fiber.New()
	app2.Get("/admin", stubIdentity(roles.RoleAdmin, true), RequireRole(roles.RoleAdmin), ok)
	resp = doRequest(t, app2, "/admin")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
