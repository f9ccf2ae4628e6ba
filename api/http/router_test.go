package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apihttp "github.com/artem13815/jobboard/api/http"
	"github.com/artem13815/jobboard/api/http/handlers"
	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/events"
	"github.com/artem13815/jobboard/pkg/health"
	"github.com/artem13815/jobboard/pkg/job"
	"github.com/artem13815/jobboard/pkg/notification"
	"github.com/artem13815/jobboard/pkg/repository/memory"
	"github.com/artem13815/jobboard/pkg/security/jwt"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	bus := events.NewBus()
	tokens := jwt.NewGenerator("test-secret", "jobboard-test", time.Hour)

	authUC := auth.NewAuthService(store.Users(), tokens, auth.WithBcryptCost(bcrypt.MinCost))
	jobUC := job.NewService(store.Jobs(), bus)
	appUC := application.NewService(store.Applications(), store.Jobs(), store.Users(), bus)
	noteUC := notification.NewService(store.Notifications())

	return apihttp.NewApp(apihttp.Handlers{
		Auth:          handlers.NewAuthHandler(authUC),
		Jobs:          handlers.NewJobHandler(jobUC),
		Applications:  handlers.NewApplicationHandler(appUC),
		Notifications: handlers.NewNotificationHandler(noteUC),
		Health:        handlers.NewHealthHandler(health.NewService()),
	}, jwt.NewAuthMiddleware(tokens), "*")
}

type client struct {
	t   *testing.T
	app *fiber.App
}

func (c client) do(method, path, token string, body any) (int, map[string]any) {
	status, raw := c.raw(method, path, token, body)
	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (c client) list(method, path, token string) (int, []map[string]any) {
	status, raw := c.raw(method, path, token, nil)
	var out []map[string]any
	if status == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(raw, &out))
	}
	return status, out
}

func (c client) raw(method, path, token string, body any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, raw
}

// signup registers a user and returns a session token.
func (c client) signup(name, role string) string {
	c.t.Helper()
	status, _ := c.do("POST", "/api/auth/register", "", map[string]string{
		"name": name, "email": name + "@example.com", "password": "secret123", "role": role,
	})
	require.Equal(c.t, http.StatusCreated, status)
	status, body := c.do("POST", "/api/auth/login", "", map[string]string{
		"email": name + "@example.com", "password": "secret123",
	})
	require.Equal(c.t, http.StatusOK, status)
	return body["token"].(string)
}

func (c client) postJob(token string) string {
	c.t.Helper()
	status, body := c.do("POST", "/api/jobs", token, map[string]any{
		"title": "Backend Engineer", "company": "Acme", "location": "Remote", "description": "...",
		"skills": []string{"Go", " go ", "SQL"},
	})
	require.Equal(c.t, http.StatusCreated, status)
	return body["id"].(string)
}

func TestApplyAndApprove(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	recruiter := c.signup("rita", "recruiter")
	seeker := c.signup("sam", "job-seeker")
	jobID := c.postJob(recruiter)

	status, app := c.do("POST", "/api/applications/apply", seeker, map[string]string{"jobId": jobID, "portfolioLink": "http://x"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "pending", app["status"])
	assert.Equal(t, "http://x", app["portfolioLink"])
	appID := app["id"].(string)

	status, notes := c.list("GET", "/api/notifications", recruiter)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notes, 1)
	assert.Equal(t, "application", notes[0]["type"])
	assert.Contains(t, notes[0]["message"], "Backend Engineer")

	status, posted := c.do("GET", "/api/jobs/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, posted["applicants"], 1)
	assert.Equal(t, []any{"Go", "SQL"}, posted["skills"])
	assert.Equal(t, "rita", posted["postedBy"].(map[string]any)["name"])

	status, apps := c.list("GET", "/api/applications/job/"+jobID+"?status=pending", recruiter)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, apps, 1)
	assert.Equal(t, "sam", apps[0]["applicant"].(map[string]any)["name"])

	status, decided := c.do("PATCH", "/api/applications/"+appID+"/status", recruiter, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", decided["status"])

	status, notes = c.list("GET", "/api/notifications", seeker)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, notes, 1)
	assert.Equal(t, "approval", notes[0]["type"])
	assert.Contains(t, notes[0]["message"], "approved")

	status, _ = c.do("PATCH", "/api/applications/"+appID+"/status", recruiter, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, status)

	status, mine := c.list("GET", "/api/applications/my-applications", seeker)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, mine, 1)
	assert.Equal(t, "Backend Engineer", mine[0]["job"].(map[string]any)["title"])
}

func TestApplyTwice(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	recruiter := c.signup("rita", "recruiter")
	seeker := c.signup("sam", "job-seeker")
	jobID := c.postJob(recruiter)

	status, _ := c.do("POST", "/api/applications/apply", seeker, map[string]string{"jobId": jobID})
	require.Equal(t, http.StatusCreated, status)
	status, body := c.do("POST", "/api/applications/apply", seeker, map[string]string{"jobId": jobID})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, body["message"])

	_, apps := c.list("GET", "/api/applications/job/"+jobID, recruiter)
	assert.Len(t, apps, 1)
	status, count := c.do("GET", "/api/notifications/unread-count", recruiter, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, count["count"])
}

func TestRoleGates(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	recruiter := c.signup("rita", "recruiter")
	other := c.signup("otto", "recruiter")
	seeker := c.signup("sam", "job-seeker")
	jobID := c.postJob(recruiter)

	status, _ := c.do("POST", "/api/jobs", seeker, map[string]string{"title": "t", "company": "c", "location": "l", "description": "d"})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do("POST", "/api/applications/apply", recruiter, map[string]string{"jobId": jobID})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do("PUT", "/api/auth/update-profile", recruiter, map[string]any{"skills": []string{"go"}})
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do("GET", "/api/applications/job/"+jobID, other, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = c.do("GET", "/api/applications/job/"+jobID+"?status=bogus", other, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = c.do("GET", "/api/applications/job/6f1c1f5e-8a6e-4d6c-9f43-0b7c1b1b2a10", recruiter, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = c.do("GET", "/api/applications/job/"+jobID+"?status=bogus", recruiter, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = c.do("GET", "/api/notifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = c.do("GET", "/api/notifications", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestAuthFlows(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	token := c.signup("sam", "job-seeker")

	status, body := c.do("POST", "/api/auth/register", "", map[string]string{
		"name": "sam", "email": "SAM@example.com", "password": "x", "role": "job-seeker",
	})
	assert.Equal(t, http.StatusConflict, status)
	assert.NotEmpty(t, body["message"])

	status, body = c.do("POST", "/api/auth/register", "", map[string]string{
		"name": "x", "email": "x@example.com", "password": "x", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "role")

	status, body = c.do("POST", "/api/auth/login", "", map[string]string{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "user not found", body["message"])

	status, body = c.do("POST", "/api/auth/login", "", map[string]string{"email": "sam@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid credentials", body["message"])

	status, body = c.do("PUT", "/api/auth/update-profile", token, map[string]any{
		"contact":   "+100",
		"dob":       "1995-04-01",
		"education": []map[string]string{{"level": "BSc", "instituteName": "MIT"}},
		"skills":    []string{"Go", "go", " SQL "},
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1995-04-01", body["dob"])
	assert.Equal(t, []any{"Go", "SQL"}, body["skills"])

	status, body = c.do("PUT", "/api/auth/update-profile", token, map[string]any{
		"education": []map[string]string{{"level": "BSc"}},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "instituteName")

	status, body = c.do("GET", "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "sam@example.com", body["email"])
	assert.NotContains(t, body, "passwordHash")
}

func TestJobsListAndLookup(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	recruiter := c.signup("rita", "recruiter")
	c.postJob(recruiter)

	status, jobs := c.list("GET", "/api/jobs?company=acme", "")
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, jobs, 1)

	status, jobs = c.list("GET", "/api/jobs?location=berlin", "")
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, jobs)

	status, _ = c.do("GET", "/api/jobs/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = c.do("GET", "/api/jobs/6f1c1f5e-8a6e-4d6c-9f43-0b7c1b1b2a10", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNotificationsMarkAllRead(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	recruiter := c.signup("rita", "recruiter")
	seeker := c.signup("sam", "job-seeker")
	jobID := c.postJob(recruiter)
	status, _ := c.do("POST", "/api/applications/apply", seeker, map[string]string{"jobId": jobID})
	require.Equal(t, http.StatusCreated, status)

	status, body := c.do("PATCH", "/api/notifications/mark-all-read", recruiter, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, body["updated"])

	status, body = c.do("PATCH", "/api/notifications/mark-all-read", recruiter, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 0, body["updated"])

	_, notes := c.list("GET", "/api/notifications", recruiter)
	for _, n := range notes {
		assert.Equal(t, true, n["isRead"])
	}
}

func TestHealthAndMetrics(t *testing.T) {
	c := client{t: t, app: newTestApp(t)}
	status, body := c.do("GET", "/api/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	status, raw := c.raw("GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(raw), "go_goroutines")
}
