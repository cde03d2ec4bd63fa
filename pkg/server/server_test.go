package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stu-tools/rent-atlas/pkg/models/api"
	"github.com/stu-tools/rent-atlas/pkg/services/analysis"
	"github.com/stu-tools/rent-atlas/pkg/store/memory"
)

func setupServer(t *testing.T, staticDir string) *httptest.Server {
	t.Helper()

	s := memory.New()
	require.NoError(t, memory.Seed(context.Background(), s))

	config := Config{
		Addr:            ":8000",
		ShutdownTimeout: 10 * time.Second,
		StaticDir:       staticDir,
		Dependencies: Dependencies{
			Store:    s,
			Analysis: analysis.NewService(s),
			Logger:   zerolog.New(zerolog.NewTestWriter(t)),
		},
	}

	testServer := httptest.NewServer(ConfigureRouter(config))
	t.Cleanup(testServer.Close)
	return testServer
}

func TestWebAPI_Endpoints(t *testing.T) {
	testServer := setupServer(t, "")

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		check          func(t *testing.T, body []byte)
	}{
		{
			name:           "health",
			path:           "/api/health",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response api.Health
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "healthy", response.Status)
			},
		},
		{
			name:           "list seeded properties",
			path:           "/api/properties",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response []api.Property
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response, 2)

				names := []string{response[0].Name, response[1].Name}
				assert.ElementsMatch(t, []string{"Campus View Apartments", "University Heights"}, names)
				assert.Len(t, response[0].Floorplans, 4)
			},
		},
		{
			name:           "list seeded analyses",
			path:           "/api/analyses",
			expectedStatus: http.StatusOK,
			check: func(t *testing.T, body []byte) {
				var response []api.Analysis
				require.NoError(t, json.Unmarshal(body, &response))
				require.Len(t, response, 1)
				assert.Len(t, response[0].Scenarios, 3)
			},
		},
		{
			name:           "unknown api route stays 404",
			path:           "/api/nope",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(testServer.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			if tt.check != nil {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				tt.check(t, body)
			}
		})
	}
}

func TestWebAPI_CalculateFlow(t *testing.T) {
	testServer := setupServer(t, "")

	resp, err := http.Get(testServer.URL + "/api/analyses")
	require.NoError(t, err)
	defer resp.Body.Close()

	var analyses []api.Analysis
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&analyses))
	require.Len(t, analyses, 1)
	require.NotEmpty(t, analyses[0].Scenarios)
	scenarioID := analyses[0].Scenarios[0].ID

	calcResp, err := http.Get(testServer.URL + "/api/scenarios/" + scenarioID + "/calculate")
	require.NoError(t, err)
	defer calcResp.Body.Close()

	require.Equal(t, http.StatusOK, calcResp.StatusCode)
	var scenario api.Scenario
	require.NoError(t, json.NewDecoder(calcResp.Body).Decode(&scenario))
	require.NotNil(t, scenario.Results)
	assert.Greater(t, scenario.Results.TotalAnnualRevenue, 0.0)
}

func TestWebAPI_CORSPreflight(t *testing.T) {
	testServer := setupServer(t, "")

	req, err := http.NewRequest(http.MethodOptions, testServer.URL+"/api/properties", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestWebAPI_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o644))

	testServer := setupServer(t, dir)

	t.Run("real file is served", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/app.js")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "console.log")
	})

	t.Run("client route falls back to index", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/analyses/some-client-route")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Contains(t, string(body), "<html>app</html>")
	})

	t.Run("api paths never fall back", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/nope")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
