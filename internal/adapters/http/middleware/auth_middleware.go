package middleware

import (
	"strings"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Cookie names for the two session kinds
const (
	StudentCookie = "student_token"
	AdminCookie   = "admin_token"
)

const (
	studentSessionKey = "studentSession"
	adminSessionKey   = "adminSession"
)

// SessionParser validates session tokens
type SessionParser interface {
	ParseStudentSession(token string) (*domain.StudentSession, error)
	ParseAdminSession(token string) (*domain.AdminSession, error)
}

// tokenFrom reads the named cookie, falling back to a Bearer header
func tokenFrom(c *fiber.Ctx, cookie string) string {
	if token := c.Cookies(cookie); token != "" {
		return token
	}
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// StudentAuth requires a voter session
func StudentAuth(parser SessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c, StudentCookie)
		if token == "" {
			return response.Unauthorized(c, "Login required")
		}

		session, err := parser.ParseStudentSession(token)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired session")
		}

		c.Locals(studentSessionKey, session)
		return c.Next()
	}
}

// AdminAuth requires an administrator session. A voter session never
// satisfies it.
func AdminAuth(parser SessionParser) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFrom(c, AdminCookie)
		if token == "" {
			return response.Unauthorized(c, "Admin login required")
		}

		session, err := parser.ParseAdminSession(token)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired admin session")
		}

		c.Locals(adminSessionKey, session)
		return c.Next()
	}
}

// StudentSession returns the voter session set by StudentAuth, or nil
func StudentSession(c *fiber.Ctx) *domain.StudentSession {
	session, _ := c.Locals(studentSessionKey).(*domain.StudentSession)
	return session
}

// AdminSession returns the admin session set by AdminAuth, or nil
func AdminSession(c *fiber.Ctx) *domain.AdminSession {
	session, _ := c.Locals(adminSessionKey).(*domain.AdminSession)
	return session
}
