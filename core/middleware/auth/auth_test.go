package auth

import (
	"net/http/httptest"
	"testing"

	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	mgr := session.NewManager(session.NewStore(session.StoreConfig{}), "token")

	app := fiber.New()
	app.Get("/login", func(c *fiber.Ctx) error {
		_, err := mgr.Authorize(c)
		return err
	})

	executed := false
	protected := app.Group("/", New(Config{Sessions: mgr}))
	protected.Get("/secret", func(c *fiber.Ctx) error {
		executed = true
		return c.SendString("secret")
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/secret", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
		assert.False(t, executed)
	})

	t.Run("Authenticated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/login", nil))
		require.NoError(t, err)
		cookies := resp.Cookies()
		require.NotEmpty(t, cookies)

		req := httptest.NewRequest("GET", "/secret", nil)
		req.AddCookie(cookies[0])
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.True(t, executed)
	})
}
