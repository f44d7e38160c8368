package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/core/domain"

	"github.com/gofiber/fiber/v2"
)

type stubParser struct{}

func (stubParser) ParseStudentSession(token string) (*domain.StudentSession, error) {
	if token != "student" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.StudentSession{StudentID: 1, RollNumber: "CS101"}, nil
}

func (stubParser) ParseAdminSession(token string) (*domain.AdminSession, error) {
	if token != "admin" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.AdminSession{AdminID: 1, Username: "Raju"}, nil
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/student", StudentAuth(stubParser{}), func(c *fiber.Ctx) error {
		return c.SendString(StudentSession(c).RollNumber)
	})
	app.Get("/admin", AdminAuth(stubParser{}), func(c *fiber.Ctx) error {
		return c.SendString(AdminSession(c).Username)
	})
	return app
}

func TestSessionMiddleware(t *testing.T) {
	app := newAuthApp()

	cases := []struct {
		name   string
		path   string
		cookie string
		value  string
		bearer string
		want   int
	}{
		{"no token", "/student", "", "", "", fiber.StatusUnauthorized},
		{"student cookie", "/student", StudentCookie, "student", "", fiber.StatusOK},
		{"student bearer", "/student", "", "", "student", fiber.StatusOK},
		{"bad token", "/student", StudentCookie, "junk", "", fiber.StatusUnauthorized},
		{"admin cookie", "/admin", AdminCookie, "admin", "", fiber.StatusOK},
		{"student token on admin route", "/admin", "", "", "student", fiber.StatusUnauthorized},
		{"student cookie ignored by admin gate", "/admin", StudentCookie, "student", "", fiber.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.path, nil)
			if tc.cookie != "" {
				req.Header.Set("Cookie", tc.cookie+"="+tc.value)
			}
			if tc.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tc.bearer)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestAuthRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Post("/login", AuthRateLimiter(2), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i, want := range []int{fiber.StatusOK, fiber.StatusOK, fiber.StatusTooManyRequests} {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != want {
			t.Errorf("request %d: status = %d, want %d", i+1, resp.StatusCode, want)
		}
	}

	open := fiber.New()
	open.Post("/login", AuthRateLimiter(0), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	for i := 0; i < 20; i++ {
		resp, _ := open.Test(httptest.NewRequest("POST", "/login", nil))
		if resp.StatusCode != fiber.StatusOK {
			t.Fatalf("disabled limiter rejected request %d", i+1)
		}
	}
}

func TestCustomErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusTeapot, "short and stout") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, _ := app.Test(httptest.NewRequest("GET", "/teapot", nil))
	if resp.StatusCode != fiber.StatusTeapot {
		t.Errorf("status = %d, want 418", resp.StatusCode)
	}
	resp, _ = app.Test(httptest.NewRequest("GET", "/boom", nil))
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Errorf("status = %d, want 500", resp.StatusCode)
	}
}

func TestCacheHeaders(t *testing.T) {
	app := fiber.New()
	app.Get("/private", NoCacheHeaders(), func(c *fiber.Ctx) error { return c.SendString("x") })
	app.Get("/public", PublicCacheHeaders(time.Hour), func(c *fiber.Ctx) error { return c.SendString("x") })

	resp, _ := app.Test(httptest.NewRequest("GET", "/private", nil))
	if got := resp.Header.Get("Cache-Control"); got != "no-store, no-cache, must-revalidate" {
		t.Errorf("private Cache-Control = %q", got)
	}
	resp, _ = app.Test(httptest.NewRequest("GET", "/public", nil))
	if got := resp.Header.Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("public Cache-Control = %q", got)
	}
}
