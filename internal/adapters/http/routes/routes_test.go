package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Raju-02-19/college-voting-system/internal/adapters/http/middleware"
	"github.com/Raju-02-19/college-voting-system/internal/adapters/storage"
	"github.com/Raju-02-19/college-voting-system/internal/config"
	"github.com/Raju-02-19/college-voting-system/internal/core/domain"
	"github.com/Raju-02-19/college-voting-system/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

type testServer struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := testutil.SetupTestDB(t)
	uploadDir := t.TempDir()
	images, err := storage.NewLocalImageStore(uploadDir)
	if err != nil {
		t.Fatalf("NewLocalImageStore: %v", err)
	}

	cfg := &config.Config{
		AppMode:      "dev",
		SecretKey:    "test-secret",
		Session:      config.SessionConfig{TTL: time.Hour},
		Cookie:       config.CookieConfig{SameSite: "lax"},
		Mail:         config.MailConfig{FallbackDisplay: true},
		Registration: config.RegistrationConfig{CodeTTL: 15 * time.Minute, MaxAttempts: 5},
		UploadDir:    uploadDir,
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	Setup(app, db, cfg, Options{
		Roster:   testutil.TestRoster(),
		Images:   images,
		HashCost: testutil.TestPasswordCost,
	})

	return &testServer{app: app, db: db, uploadDir: uploadDir}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (*http.Response, envelope) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (*http.Response, envelope) {
	t.Helper()

	resp, err := s.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (s *testServer) studentToken(t *testing.T, roll, pw string) string {
	t.Helper()

	resp, env := s.do(t, "POST", "/api/v1/auth/login", fiber.Map{"roll_number": roll, "password": pw}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("login status = %d (%s)", resp.StatusCode, env.Error)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	json.Unmarshal(env.Data, &data)
	if cookieValue(resp, middleware.StudentCookie) == "" {
		t.Error("login should set the student cookie")
	}
	return data.AccessToken
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()

	testutil.CreateTestAdmin(t, s.db, "Raju", "Raju@02")
	resp, env := s.do(t, "POST", "/api/v1/admin/auth/login", fiber.Map{"username": "Raju", "password": "Raju@02"}, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("admin login status = %d (%s)", resp.StatusCode, env.Error)
	}
	var data struct {
		AccessToken string `json:"access_token"`
	}
	json.Unmarshal(env.Data, &data)
	return data.AccessToken
}

func TestElectionOverHTTP(t *testing.T) {
	s := newTestServer(t)

	// Register
	resp, env := s.do(t, "POST", "/api/v1/auth/register", fiber.Map{
		"roll_number": "cs101", "email": "a@b.com", "password": "Abcdef",
	}, nil)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("register status = %d (%s)", resp.StatusCode, env.Error)
	}
	var reg struct {
		Registration struct {
			MailSent bool   `json:"mail_sent"`
			OTP      string `json:"otp"`
		} `json:"registration"`
		Session string `json:"registration_session"`
	}
	json.Unmarshal(env.Data, &reg)
	if reg.Registration.MailSent || reg.Registration.OTP == "" {
		t.Fatalf("expected disclosed code, got %+v", reg)
	}
	if cookieValue(resp, "registration_session") != reg.Session {
		t.Error("registration cookie should carry the session key")
	}

	// Wrong code, then the right one
	hdr := map[string]string{"X-Registration-Session": reg.Session}
	resp, env = s.do(t, "POST", "/api/v1/auth/verify", fiber.Map{"otp": "0000"}, hdr)
	if resp.StatusCode != fiber.StatusBadRequest || env.Code != "invalid_code" {
		t.Fatalf("wrong code: status = %d code = %q", resp.StatusCode, env.Code)
	}
	resp, env = s.do(t, "POST", "/api/v1/auth/verify", fiber.Map{"otp": reg.Registration.OTP}, hdr)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("verify status = %d (%s)", resp.StatusCode, env.Error)
	}

	// Login and vote
	token := s.studentToken(t, "CS101", "Abcdef")

	resp, env = s.do(t, "GET", "/api/v1/auth/me", nil, bearer(token))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}

	ballot := fiber.Map{"president": "X", "vice_president": "Y", "secretary": "Z", "treasurer": "W"}
	resp, env = s.do(t, "POST", "/api/v1/ballot", ballot, bearer(token))
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("vote status = %d (%s)", resp.StatusCode, env.Error)
	}
	resp, env = s.do(t, "POST", "/api/v1/ballot", ballot, bearer(token))
	if resp.StatusCode != fiber.StatusConflict || env.Code != "already_voted" {
		t.Fatalf("second vote: status = %d code = %q", resp.StatusCode, env.Code)
	}

	resp, env = s.do(t, "GET", "/api/v1/ballot/status", nil, bearer(token))
	var status struct {
		HasVoted bool `json:"has_voted"`
		Ballot   *struct {
			Selections map[string]string `json:"selections"`
		} `json:"ballot"`
	}
	json.Unmarshal(env.Data, &status)
	if resp.StatusCode != fiber.StatusOK || !status.HasVoted {
		t.Errorf("status = %d has_voted = %v", resp.StatusCode, status.HasVoted)
	}
	if status.Ballot == nil || status.Ballot.Selections["Vice President"] != "Y" {
		t.Errorf("status should include the cast ballot, got %+v", status.Ballot)
	}

	// Results
	testutil.CreateTestCandidate(t, s.db, "X", domain.OfficePresident)
	admin := s.adminToken(t)
	resp, env = s.do(t, "GET", "/api/v1/admin/results", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("results status = %d", resp.StatusCode)
	}
	var results struct {
		TotalBallots int64 `json:"total_ballots"`
		Offices      []struct {
			Office     string `json:"office"`
			Candidates []struct {
				Name  string `json:"name"`
				Votes int64  `json:"votes"`
			} `json:"candidates"`
		} `json:"offices"`
	}
	json.Unmarshal(env.Data, &results)
	if results.TotalBallots != 1 || len(results.Offices) != 4 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if c := results.Offices[0].Candidates; len(c) != 1 || c[0].Name != "X" || c[0].Votes != 1 {
		t.Errorf("President tally = %+v", c)
	}
}

func TestRegisterErrors(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateTestStudent(t, s.db, "CS102", "Abcdef")

	cases := []struct {
		name   string
		body   fiber.Map
		status int
		code   string
	}{
		{"weak password", fiber.Map{"roll_number": "CS101", "email": "a@b.com", "password": "abc"}, fiber.StatusBadRequest, "validation"},
		{"not on roster", fiber.Map{"roll_number": "ZZ999", "email": "z@z.com", "password": "Abcdef"}, fiber.StatusForbidden, "not_eligible"},
		{"already registered", fiber.Map{"roll_number": "CS102", "email": "c@d.com", "password": "Abcdef"}, fiber.StatusConflict, "already_registered"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, env := s.do(t, "POST", "/api/v1/auth/register", tc.body, nil)
			if resp.StatusCode != tc.status || env.Code != tc.code {
				t.Errorf("status = %d code = %q; want %d %q", resp.StatusCode, env.Code, tc.status, tc.code)
			}
		})
	}

	resp, env := s.do(t, "POST", "/api/v1/auth/verify", fiber.Map{"otp": "1234"}, nil)
	if resp.StatusCode != fiber.StatusBadRequest || env.Code != "no_pending_registration" {
		t.Errorf("verify without session: status = %d code = %q", resp.StatusCode, env.Code)
	}
}

func TestSessionGates(t *testing.T) {
	s := newTestServer(t)
	testutil.CreateTestStudent(t, s.db, "CS101", "Abcdef")
	student := s.studentToken(t, "CS101", "Abcdef")

	resp, _ := s.do(t, "POST", "/api/v1/ballot", fiber.Map{"president": "X"}, nil)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("anonymous vote: status = %d", resp.StatusCode)
	}

	for _, path := range []string{"/api/v1/admin/results", "/api/v1/admin/students", "/api/v1/admin/candidates", "/api/v1/admin/roster"} {
		resp, _ := s.do(t, "GET", path, nil, bearer(student))
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("%s with voter token: status = %d", path, resp.StatusCode)
		}
	}

	admin := s.adminToken(t)
	resp, _ = s.do(t, "GET", "/api/v1/ballot", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("ballot with admin token: status = %d", resp.StatusCode)
	}

	resp, env := s.do(t, "POST", "/api/v1/ballot", fiber.Map{"president": "X"}, bearer(student))
	if resp.StatusCode != fiber.StatusBadRequest || env.Code != "incomplete_ballot" {
		t.Errorf("incomplete ballot: status = %d code = %q", resp.StatusCode, env.Code)
	}
}

func TestAdminCandidateLifecycle(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "Asha")
	w.WriteField("position", "vice president")
	part, _ := w.CreateFormFile("image", "../my photo.PNG")
	part.Write([]byte("\x89PNG fake"))
	w.Close()

	req := httptest.NewRequest("POST", "/api/v1/admin/candidates", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+admin)
	resp, env := s.send(t, req)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("add candidate status = %d (%s)", resp.StatusCode, env.Error)
	}

	var candidate struct {
		ID       uint    `json:"id"`
		Position string  `json:"position"`
		Image    *string `json:"image"`
	}
	json.Unmarshal(env.Data, &candidate)
	if candidate.Position != "Vice President" || candidate.Image == nil || !strings.HasSuffix(*candidate.Image, "_my_photo.PNG") {
		t.Fatalf("unexpected candidate: %+v", candidate)
	}
	stored := filepath.Join(s.uploadDir, *candidate.Image)
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("portrait not stored: %v", err)
	}

	resp, _ = s.do(t, "GET", "/images/"+*candidate.Image, nil, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("portrait fetch status = %d", resp.StatusCode)
	}

	resp, env = s.do(t, "GET", "/api/v1/admin/candidates?position=vice_president", nil, bearer(admin))
	var filtered []struct {
		Name string `json:"name"`
	}
	json.Unmarshal(env.Data, &filtered)
	if resp.StatusCode != fiber.StatusOK || len(filtered) != 1 || filtered[0].Name != "Asha" {
		t.Errorf("filtered list status = %d candidates = %+v", resp.StatusCode, filtered)
	}
	resp, env = s.do(t, "GET", "/api/v1/admin/candidates?position=president", nil, bearer(admin))
	filtered = nil
	json.Unmarshal(env.Data, &filtered)
	if resp.StatusCode != fiber.StatusOK || len(filtered) != 0 {
		t.Errorf("president list status = %d candidates = %+v", resp.StatusCode, filtered)
	}
	resp, env = s.do(t, "GET", "/api/v1/admin/candidates?position=dean", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusBadRequest || env.Code != "validation" {
		t.Errorf("unknown position: status = %d code = %q", resp.StatusCode, env.Code)
	}

	resp, _ = s.do(t, "DELETE", "/api/v1/admin/candidates/999", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusNotFound {
		t.Errorf("delete missing candidate status = %d", resp.StatusCode)
	}

	resp, _ = s.do(t, "DELETE", "/api/v1/admin/candidates/1", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("delete status = %d", resp.StatusCode)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("portrait should be removed, stat err = %v", err)
	}
}

func TestAdminStudents(t *testing.T) {
	s := newTestServer(t)
	admin := s.adminToken(t)
	st := testutil.CreateTestStudent(t, s.db, "CS101", "Abcdef")
	testutil.CreateTestStudent(t, s.db, "CS102", "Abcdef")

	resp, env := s.do(t, "GET", "/api/v1/admin/students?page=1&limit=1", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("list status = %d", resp.StatusCode)
	}
	var page struct {
		Items []struct {
			RollNumber string `json:"roll_number"`
		} `json:"items"`
		Meta struct {
			Total   int64 `json:"total"`
			HasNext bool  `json:"has_next"`
		} `json:"meta"`
	}
	json.Unmarshal(env.Data, &page)
	if len(page.Items) != 1 || page.Items[0].RollNumber != "CS101" || page.Meta.Total != 2 || !page.Meta.HasNext {
		t.Errorf("unexpected page: %+v", page)
	}

	resp, _ = s.do(t, "DELETE", "/api/v1/admin/students/abc", nil, bearer(admin))
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("bad id status = %d", resp.StatusCode)
	}
	resp, _ = s.do(t, "DELETE", "/api/v1/admin/students/"+strconv.FormatUint(uint64(st.ID), 10), nil, bearer(admin))
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp, env = s.do(t, "GET", "/api/v1/admin/roster", nil, bearer(admin))
	var roster struct {
		Total int `json:"total"`
	}
	json.Unmarshal(env.Data, &roster)
	if resp.StatusCode != fiber.StatusOK || roster.Total != 3 {
		t.Errorf("roster status = %d total = %d", resp.StatusCode, roster.Total)
	}
}
