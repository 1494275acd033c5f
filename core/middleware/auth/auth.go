package auth

import (
	"reservation-portal/core/session"

	"github.com/gofiber/fiber/v2"
)

// Config configures the gate.
type Config struct {
	// Sessions decodes the request's session.
	Sessions *session.Manager
	// RedirectTo is where unauthenticated requests are sent. Defaults to "/".
	RedirectTo string
}

// New returns a handler that lets authenticated sessions through and
// redirects everything else without running the protected handler.
func New(cfg Config) fiber.Handler {
	target := cfg.RedirectTo
	if target == "" {
		target = "/"
	}
	return func(c *fiber.Ctx) error {
		snap, err := cfg.Sessions.Load(c)
		if err != nil || !snap.IsAuthenticated() {
			return c.Redirect(target, fiber.StatusFound)
		}
		return c.Next()
	}
}
