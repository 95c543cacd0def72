package web_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/models"
	"github.com/dukex/approved-premises/pkg/pages"
	"github.com/dukex/approved-premises/pkg/persistence/file"
	"github.com/dukex/approved-premises/pkg/services"
	"github.com/dukex/approved-premises/pkg/session/memory"
	"github.com/dukex/approved-premises/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t      *testing.T
	app    *fiber.App
	cookie *http.Cookie
}

func setupTestApp(t *testing.T) *testClient {
	t.Helper()

	catalog, err := form.DefaultCatalog()
	require.NoError(t, err)

	journeys := services.NewJourneys(services.Deps{
		Registry: pages.MustRegistry(),
		Backend:  file.NewPersistence(t.TempDir()),
		Catalog:  catalog,
		Logger:   slog.Default(),
	}, nil)

	handlers := web.NewHandlers(journeys, memory.NewStore(), validator.New(validator.WithRequiredStructEnabled()), slog.Default())

	app := fiber.New()
	web.Mount(app, handlers)

	return &testClient{t: t, app: app}
}

func (tc *testClient) do(method, path, contentType, body string) *http.Response {
	tc.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer test-token")
	req.Header.Set("X-User-Id", "user-1")

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if tc.cookie != nil {
		req.AddCookie(tc.cookie)
	}

	resp, err := tc.app.Test(req)
	require.NoError(tc.t, err)

	for _, c := range resp.Cookies() {
		if c.Name == web.SessionCookie {
			tc.cookie = c
		}
	}

	tc.t.Cleanup(func() {
		err := resp.Body.Close()
		if err != nil {
			tc.t.Logf("Failed to close response body: %v", err)
		}
	})

	return resp
}

func (tc *testClient) postForm(path string, values url.Values) *http.Response {
	return tc.do(http.MethodPost, path, fiber.MIMEApplicationForm, values.Encode())
}

func (tc *testClient) createApplication() string {
	tc.t.Helper()

	resp := tc.do(http.MethodPost, "/applications", fiber.MIMEApplicationJSON, `{"crn":"X320741","name":"Robert Brown"}`)
	require.Equal(tc.t, http.StatusCreated, resp.StatusCode)

	var summary web.ArtifactSummary
	require.NoError(tc.t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(tc.t, "/applications/"+summary.ID, resp.Header.Get("Location"))

	return summary.ID
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	return out
}

func TestHandlers_HealthCheck(t *testing.T) {
	tc := setupTestApp(t)

	resp := tc.do(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](t, resp)
	assert.Equal(t, "healthy", body["status"])
}

func TestHandlers_RequireToken(t *testing.T) {
	tc := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader(`{"crn":"X1"}`))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)

	resp, err := tc.app.Test(req)
	require.NoError(t, err)

	defer func() {
		err := resp.Body.Close()
		if err != nil {
			t.Logf("Failed to close response body: %v", err)
		}
	}()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandlers_CreateArtifact(t *testing.T) {
	tests := []struct {
		name           string
		journey        string
		body           string
		expectedStatus int
	}{
		{name: "application", journey: "applications", body: `{"crn":"X320741"}`, expectedStatus: http.StatusCreated},
		{name: "placement application", journey: "placement-applications", body: `{"crn":"X320741"}`, expectedStatus: http.StatusCreated},
		{name: "missing crn", journey: "applications", body: `{"name":"Robert"}`, expectedStatus: http.StatusBadRequest},
		{name: "malformed crn", journey: "applications", body: `{"crn":"X 1"}`, expectedStatus: http.StatusBadRequest},
		{name: "unknown journey", journey: "referrals", body: `{"crn":"X320741"}`, expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := setupTestApp(t)

			resp := tc.do(http.MethodPost, "/"+tt.journey, fiber.MIMEApplicationJSON, tt.body)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestHandlers_ShowPage(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()

	resp := tc.do(http.MethodGet, "/applications/"+id+"/tasks/basic-information/pages/sentence-type", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decode[web.PageView](t, resp)
	assert.Equal(t, "applications/pages/basic-information/sentence-type", view.View)
	assert.Equal(t, "sentence-type", view.Page)
	assert.Equal(t, "Which of the following best describes the sentence type?", view.Title)
	assert.Empty(t, view.Errors)
}

func TestHandlers_ShowUnknownPage(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()

	resp := tc.do(http.MethodGet, "/applications/"+id+"/tasks/basic-information/pages/unknown-page", "", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	problem := decode[map[string]any](t, resp)
	assert.Equal(t, "unknown_page", problem["type"])
	assert.Contains(t, problem["detail"], "unknown-page")
}

func TestHandlers_ShowPageOfMissingArtifact(t *testing.T) {
	tc := setupTestApp(t)

	resp := tc.do(http.MethodGet, "/applications/does-not-exist/tasks/basic-information/pages/sentence-type", "", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandlers_SavePageRedirectsToNextPage(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()

	resp := tc.postForm("/applications/"+id+"/tasks/basic-information/pages/sentence-type",
		url.Values{"sentenceType": {"life"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/applications/"+id+"/tasks/basic-information/pages/release-type", resp.Header.Get("Location"))

	resp = tc.postForm("/applications/"+id+"/tasks/basic-information/pages/release-type",
		url.Values{"releaseType": {"licence"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/applications/"+id+"/tasks/basic-information/pages/release-date", resp.Header.Get("Location"))

	resp = tc.do(http.MethodGet, "/applications/"+id+"/tasks/basic-information/pages/sentence-type", "", "")
	view := decode[web.PageView](t, resp)
	assert.Equal(t, "life", view.Body["sentenceType"])
}

func TestHandlers_SavePageWithErrors(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()
	path := "/applications/" + id + "/tasks/basic-information/pages/sentence-type"

	resp := tc.postForm(path, url.Values{"sentenceType": {""}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, path, resp.Header.Get("Location"))

	resp = tc.do(http.MethodGet, path, "", "")
	view := decode[web.PageView](t, resp)
	assert.Equal(t, map[string]string{"sentenceType": "You must choose a sentence type"}, view.Errors)
	require.Len(t, view.ErrorSummary, 1)
	assert.Equal(t, "#sentenceType", view.ErrorSummary[0].Href)

	resp = tc.do(http.MethodGet, path, "", "")
	view = decode[web.PageView](t, resp)
	assert.Empty(t, view.Errors, "flash is shown once")
}

func TestHandlers_SavePageWithEveryBoxUnchecked(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()
	path := "/applications/" + id + "/tasks/basic-information/pages/placement-purpose"

	resp := tc.postForm(path, url.Values{"placementPurposes": {"publicProtection"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp = tc.postForm(path, url.Values{"_csrf": {"tok"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, path, resp.Header.Get("Location"))

	resp = tc.do(http.MethodGet, path, "", "")
	view := decode[web.PageView](t, resp)
	assert.Equal(t, map[string]string{"placementPurposes": "You must choose at least one placement purpose"}, view.Errors)
}

func TestHandlers_TaskListAndSubmission(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()

	resp := tc.postForm("/applications/"+id+"/tasks/check-your-answers/pages/review", url.Values{"reviewed": {"1"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/applications/"+id, resp.Header.Get("Location"))

	resp = tc.do(http.MethodGet, "/applications/"+id, "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[web.TaskListView](t, resp)
	assert.Equal(t, "applications/show", list.View)
	assert.Equal(t, models.ArtifactStatusInProgress, list.Artifact.Status)
	require.NotEmpty(t, list.Sections)

	resp = tc.do(http.MethodPost, "/applications/"+id+"/submission", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	submitted := decode[web.ArtifactSummary](t, resp)
	assert.Equal(t, models.ArtifactStatusSubmitted, submitted.Status)

	resp = tc.postForm("/applications/"+id+"/tasks/basic-information/pages/sentence-type",
		url.Values{"sentenceType": {"life"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestHandlers_WithdrawArtifact(t *testing.T) {
	tc := setupTestApp(t)
	id := tc.createApplication()

	resp := tc.do(http.MethodPost, "/applications/"+id+"/withdrawal", fiber.MIMEApplicationJSON, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = tc.do(http.MethodPost, "/applications/"+id+"/withdrawal", fiber.MIMEApplicationJSON, `{"reason":"duplicate_application"}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = tc.do(http.MethodPost, "/applications/"+id+"/withdrawal", fiber.MIMEApplicationJSON, `{"reason":"duplicate_application"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}
