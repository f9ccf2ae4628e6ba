package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/auth"
)

func newTestApp(g *Generator) *fiber.App {
	app := fiber.New()
	app.Get("/me", NewAuthMiddleware(g), func(c *fiber.Ctx) error {
		identity, _ := IdentityFrom(c)
		return c.SendString(identity.UserID.String())
	})
	app.Get("/recruiters", NewAuthMiddleware(g), RequireRole(auth.RoleRecruiter), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	g := NewGenerator("secret", "jobboard", time.Hour)
	app := newTestApp(g)
	seeker := auth.User{ID: uuid.New(), Role: auth.RoleJobSeeker}
	token, err := g.Generate(context.Background(), seeker)
	require.NoError(t, err)

	cases := []struct {
		name   string
		path   string
		header string
		status int
	}{
		{"missing header", "/me", "", http.StatusUnauthorized},
		{"bearer token", "/me", "Bearer " + token, http.StatusOK},
		{"bare token", "/me", token, http.StatusOK},
		{"bad token", "/me", "Bearer nope", http.StatusUnauthorized},
		{"empty bearer", "/me", "Bearer ", http.StatusUnauthorized},
		{"wrong role", "/recruiters", "Bearer " + token, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}
