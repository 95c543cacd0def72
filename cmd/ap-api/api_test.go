package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dukex/approved-premises/pkg/form"
	"github.com/dukex/approved-premises/pkg/pages"
	"github.com/dukex/approved-premises/pkg/persistence/file"
	"github.com/dukex/approved-premises/pkg/services"
	"github.com/dukex/approved-premises/pkg/session/memory"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	catalog, err := form.DefaultCatalog()
	require.NoError(t, err)

	journeys := services.NewJourneys(services.Deps{
		Registry: pages.MustRegistry(),
		Backend:  file.NewPersistence(t.TempDir()),
		Catalog:  catalog,
	}, nil)

	return NewAPI(slog.Default(), journeys, memory.NewStore()).App()
}

func TestAPI_Endpoints(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "root", path: "/", expectedStatus: http.StatusOK, expectedBody: "Approved Premises API"},
		{name: "liveness", path: "/livez", expectedStatus: http.StatusOK, expectedBody: "OK"},
		{name: "health", path: "/health", expectedStatus: http.StatusOK},
		{name: "questionnaire requires a token", path: "/applications/123", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := setupTestApp(t)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)

			defer func() {
				err := resp.Body.Close()
				if err != nil {
					t.Logf("Failed to close response body: %v", err)
				}
			}()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				assert.Equal(t, tt.expectedBody, string(body))
			}
		})
	}
}
