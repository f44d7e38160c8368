package handlers

import (
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/config"

	"github.com/gofiber/fiber/v2"
)

// RegistrationCookie carries the pending registration key between
// register and verify. API clients may send it as RegistrationHeader.
const (
	RegistrationCookie = "registration_session"
	RegistrationHeader = "X-Registration-Session"
)

// setCookie sets an HTTP-only cookie with the configured attributes
func setCookie(c *fiber.Ctx, cfg config.CookieConfig, name, value string, maxAge time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: cfg.SameSite,
		Domain:   cfg.Domain,
	})
}

// clearCookie expires a cookie
func clearCookie(c *fiber.Ctx, cfg config.CookieConfig, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   cfg.Secure,
		HTTPOnly: true,
		SameSite: cfg.SameSite,
		Domain:   cfg.Domain,
	})
}
