package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reefclean/config"
	"reefclean/internal/app"
	"reefclean/internal/handlers"
	"reefclean/internal/models"
	"reefclean/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-test-secret-that-is-long-enough"

type harness struct {
	app      *app.App
	server   *fiber.App
	admin    *models.User
	crewA    *models.User
	crewB    *models.User
	vessel   *models.Vessel
	sections []models.VesselSection
	job      *models.CleaningJob
}

func newHarness(t *testing.T) harness {
	t.Helper()

	db := testutil.NewDB(t)
	a := app.Build(db, config.Config{JWTSecret: testSecret, JWTIssuer: "reefclean"})

	server := fiber.New()
	require.NoError(t, handlers.Router(server, a))

	owner := testutil.SeedClient(t, db, "Test Marina")
	vessel := testutil.SeedVessel(t, db, owner.ID, "Sea Breeze")
	sections := testutil.SeedSections(t, db, vessel.ID, "Hull", "Deck", "Cabin")
	crewA := testutil.SeedUser(t, db, models.RoleCrew, "Carl Crew")

	job := &models.CleaningJob{VesselID: vessel.ID, AssignedTo: &crewA.ID}
	require.NoError(t, db.SQL.Create(job).Error)
	for _, section := range sections {
		require.NoError(t, db.SQL.Create(&models.SectionProgress{
			CleaningJobID:   job.ID,
			VesselSectionID: section.ID,
		}).Error)
	}

	return harness{
		app:      a,
		server:   server,
		admin:    testutil.SeedUser(t, db, models.RoleAdmin, "Ada Admin"),
		crewA:    crewA,
		crewB:    testutil.SeedUser(t, db, models.RoleCrew, "Cora Crew"),
		vessel:   vessel,
		sections: sections,
		job:      job,
	}
}

func (h harness) token(t *testing.T, user *models.User) string {
	t.Helper()

	token, err := h.app.Services.Token.Issue(user.ID, time.Hour)
	require.NoError(t, err)
	return token
}

func (h harness) do(t *testing.T, method, path string, user *models.User, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if user != nil {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+h.token(t, user))
	}

	resp, err := h.server.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestRouter_Health(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/health", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", decode(t, resp)["status"])
}

func TestRouter_GetJobWithoutTokenIsUnauthenticated(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/jobs/"+h.job.ID.String(), nil, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, resp)["kind"])
}

func TestRouter_InvalidTokenIsUnauthenticated(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer not-a-token")
	resp, err := h.server.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decode(t, resp)["kind"])

	req = httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Token abc")
	resp, err = h.server.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_GetJobOwnership(t *testing.T) {
	h := newHarness(t)
	path := "/api/jobs/" + h.job.ID.String()

	resp := h.do(t, http.MethodGet, path, h.crewA, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	job := decode(t, resp)["job"].(map[string]any)
	assert.Equal(t, h.job.ID.String(), job["id"])
	assert.Equal(t, float64(0), job["overallPercent"])
	assert.Equal(t, float64(3), job["totalSections"])

	resp = h.do(t, http.MethodGet, path, h.crewB, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", decode(t, resp)["kind"])

	resp = h.do(t, http.MethodGet, path, h.admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_UnknownJobIsNotFound(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/jobs/"+uuid.NewString(), h.admin, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode(t, resp)["kind"])
}

func TestRouter_MalformedIDIsValidationFailure(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/jobs/not-a-uuid", h.admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "VALIDATION_FAILED", body["kind"])
	fields := body["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "id", fields[0].(map[string]any)["field"])
}

func TestRouter_CrewCannotUseAdminRoutes(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/clients", h.crewA, map[string]any{"name": "Harbor Club"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = h.do(t, http.MethodGet, "/api/reports/summary?from=2026-01-01&to=2026-12-31", h.crewA, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_UpsertProgress(t *testing.T) {
	h := newHarness(t)
	payload := map[string]any{
		"cleaningJobId":   h.job.ID,
		"vesselSectionId": h.sections[0].ID,
		"percent":         50,
	}

	resp := h.do(t, http.MethodPut, "/api/progress", h.crewA, payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	progress := decode(t, resp)["progress"].(map[string]any)
	assert.Equal(t, float64(50), progress["percent"])

	resp = h.do(t, http.MethodPut, "/api/progress", h.crewB, payload)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	payload["percent"] = 101
	resp = h.do(t, http.MethodPut, "/api/progress", h.crewA, payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].([]any)
	assert.Equal(t, "percent", fields[0].(map[string]any)["field"])
}

func TestRouter_InvalidBody(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodPost, "/api/jobs", bytes.NewBufferString("{"))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+h.token(t, h.admin))
	resp, err := h.server.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", decode(t, resp)["kind"])
}

func TestRouter_CreateJobAndMine(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodPost, "/api/jobs", h.admin, map[string]any{
		"vesselId":   h.vessel.ID,
		"assignedTo": h.crewB.ID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	job := decode(t, resp)["job"].(map[string]any)
	assert.Equal(t, "DRAFT", job["status"])
	assert.Equal(t, float64(3), job["totalSections"])

	resp = h.do(t, http.MethodGet, "/api/jobs/mine", h.crewB, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	jobs := decode(t, resp)["jobs"].([]any)
	require.Len(t, jobs, 1)
	assert.Equal(t, job["id"], jobs[0].(map[string]any)["id"])
}

func TestRouter_StatusTransition(t *testing.T) {
	h := newHarness(t)
	path := "/api/jobs/" + h.job.ID.String() + "/status"

	resp := h.do(t, http.MethodPatch, path, h.crewA, map[string]any{"status": "DONE"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := decode(t, resp)["fields"].([]any)
	assert.Equal(t, "status", fields[0].(map[string]any)["field"])

	resp = h.do(t, http.MethodPatch, path, h.crewA, map[string]any{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	job := decode(t, resp)["job"].(map[string]any)
	assert.Equal(t, "IN_PROGRESS", job["status"])
	assert.NotEmpty(t, job["startedAt"])
}

func TestRouter_ExportSummary(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/reports/summary/export?from=2020-01-01&to=2099-12-31", h.admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		resp.Header.Get(fiber.HeaderContentType),
	)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "attachment")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestRouter_SummaryRequiresDates(t *testing.T) {
	h := newHarness(t)

	resp := h.do(t, http.MethodGet, "/api/reports/summary?to=bad", h.admin, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	fields := decode(t, resp)["fields"].([]any)
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.(map[string]any)["field"].(string))
	}
	assert.ElementsMatch(t, []string{"from", "to"}, names)
}

func TestRouter_TraceIDEchoed(t *testing.T) {
	h := newHarness(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Trace-ID", "trace-123")
	resp, err := h.server.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "trace-123", resp.Header.Get("X-Trace-ID"))

	resp = h.do(t, http.MethodGet, "/api/health", nil, nil)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}
