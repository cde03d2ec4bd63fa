package rentroll

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stu-tools/rent-atlas/pkg/models/api"
	"github.com/stu-tools/rent-atlas/pkg/models/domain"
	records "github.com/stu-tools/rent-atlas/pkg/models/store"
	"github.com/stu-tools/rent-atlas/pkg/services/analysis"
	"github.com/stu-tools/rent-atlas/pkg/store/memory"
)

type mockAnalysisService struct {
	mock.Mock
}

func (m *mockAnalysisService) CalculateScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	args := m.Called(ctx, scenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Scenario), args.Error(1)
}

func (m *mockAnalysisService) CompareScenarios(ctx context.Context, scenarioID, baselineScenarioID string) ([]domain.WaterfallStep, error) {
	args := m.Called(ctx, scenarioID, baselineScenarioID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WaterfallStep), args.Error(1)
}

func (m *mockAnalysisService) DuplicateAnalysis(ctx context.Context, analysisID, newName string) (*domain.Analysis, error) {
	args := m.Called(ctx, analysisID, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Analysis), args.Error(1)
}

func setupRouter(t *testing.T, svc analysis.Service) (*chi.Mux, *memory.Store) {
	t.Helper()
	s := memory.New()
	h := NewHandler(s, svc)
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r, s
}

func TestHealth(t *testing.T) {
	r, _ := setupRouter(t, new(mockAnalysisService))

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response api.Health
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
}

func TestCreateAndGetProperty(t *testing.T) {
	r, _ := setupRouter(t, new(mockAnalysisService))

	body := `{"name":"Campus View Apartments","address":"123 University Ave","total_units":240}`
	req := httptest.NewRequest("POST", "/properties", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var created api.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 240, created.TotalUnits)

	req = httptest.NewRequest("GET", "/properties/"+created.ID, nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var fetched api.Property
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "Campus View Apartments", fetched.Name)
	assert.Empty(t, fetched.Floorplans)
}

func TestGetProperty_NotFound(t *testing.T) {
	r, _ := setupRouter(t, new(mockAnalysisService))

	req := httptest.NewRequest("GET", "/properties/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateFloorplan(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "successful creation",
			body:           `{"property_id":"prop-1","name":"A1 - Studio","unit_type":"Studio","unit_count":40,"square_footage":450,"base_rent":1200,"amenity_rent":50}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown property",
			body:           `{"property_id":"missing","name":"A1 - Studio"}`,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed body",
			body:           `{"property_id":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, s := setupRouter(t, new(mockAnalysisService))
			require.NoError(t, s.Properties().Put(context.Background(), records.Property{ID: "prop-1"}))

			req := httptest.NewRequest("POST", "/floorplans", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var fp api.Floorplan
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&fp))
				assert.Equal(t, "prop-1", fp.PropertyID)
				assert.Equal(t, 1200.0, fp.BaseRent)
			}
		})
	}
}

func TestCreateAnalysis_DefaultOccupancy(t *testing.T) {
	r, s := setupRouter(t, new(mockAnalysisService))
	require.NoError(t, s.Properties().Put(context.Background(), records.Property{ID: "prop-1"}))

	t.Run("omitted rate falls back to default", func(t *testing.T) {
		body := `{"property_id":"prop-1","name":"Fall 2024 Analysis"}`
		req := httptest.NewRequest("POST", "/analyses", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var response api.Analysis
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 0.95, response.OccupancyRate)
	})

	t.Run("explicit rate wins", func(t *testing.T) {
		body := `{"property_id":"prop-1","name":"Summer 2025","occupancy_rate":0.8}`
		req := httptest.NewRequest("POST", "/analyses", strings.NewReader(body))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var response api.Analysis
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 0.8, response.OccupancyRate)
	})
}

func TestDuplicateAnalysis(t *testing.T) {
	t.Run("missing new_name", func(t *testing.T) {
		r, _ := setupRouter(t, new(mockAnalysisService))

		req := httptest.NewRequest("POST", "/analyses/an-1/duplicate", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delegates to the service", func(t *testing.T) {
		svc := new(mockAnalysisService)
		svc.On("DuplicateAnalysis", mock.Anything, "an-1", "Spring 2025").Return(
			&domain.Analysis{ID: "an-2", Name: "Spring 2025", ParentAnalysisID: "an-1"},
			nil,
		)
		r, _ := setupRouter(t, svc)

		req := httptest.NewRequest("POST", "/analyses/an-1/duplicate?new_name=Spring+2025", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var response api.Analysis
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "an-2", response.ID)
		assert.Equal(t, "an-1", response.ParentAnalysisID)
		svc.AssertExpectations(t)
	})
}

func TestUpdateScenario_ClearsCachedResults(t *testing.T) {
	r, s := setupRouter(t, new(mockAnalysisService))
	ctx := context.Background()

	created := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Analyses().Put(ctx, records.Analysis{ID: "an-1"}))
	require.NoError(t, s.Scenarios().Put(ctx, records.Scenario{
		ID: "scn-1", AnalysisID: "an-1", Name: "Baseline", ConcessionType: "none",
		Results:   &records.ScenarioResults{TotalAnnualRevenue: 570000},
		CreatedAt: created,
	}))

	body := `{"analysis_id":"an-1","name":"Baseline v2","base_rent_pct_adj":0.02,"concession_type":"none"}`
	req := httptest.NewRequest("PUT", "/scenarios/scn-1", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response api.Scenario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "Baseline v2", response.Name)
	assert.Nil(t, response.Results)
	assert.Equal(t, created, response.CreatedAt)

	stored, err := s.Scenarios().Get(ctx, "scn-1")
	require.NoError(t, err)
	assert.Nil(t, stored.Results)
}

func TestCreateScenario_DefaultsConcessionType(t *testing.T) {
	r, s := setupRouter(t, new(mockAnalysisService))
	require.NoError(t, s.Analyses().Put(context.Background(), records.Analysis{ID: "an-1"}))

	body := `{"analysis_id":"an-1","name":"Baseline"}`
	req := httptest.NewRequest("POST", "/scenarios", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response api.Scenario
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, "none", response.ConcessionType)
}

func TestCalculateScenario(t *testing.T) {
	tests := []struct {
		name           string
		setupMock      func(*mockAnalysisService)
		expectedStatus int
	}{
		{
			name: "successful calculation",
			setupMock: func(m *mockAnalysisService) {
				m.On("CalculateScenario", mock.Anything, "scn-1").Return(
					&domain.Scenario{
						ID:      "scn-1",
						Name:    "Baseline",
						Results: &domain.ScenarioResults{TotalAnnualRevenue: 570000},
					},
					nil,
				)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "no floorplans",
			setupMock: func(m *mockAnalysisService) {
				m.On("CalculateScenario", mock.Anything, "scn-1").Return(nil, analysis.ErrNoFloorplans)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "service failure",
			setupMock: func(m *mockAnalysisService) {
				m.On("CalculateScenario", mock.Anything, "scn-1").Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAnalysisService)
			tt.setupMock(svc)
			r, _ := setupRouter(t, svc)

			req := httptest.NewRequest("GET", "/scenarios/scn-1/calculate", nil)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var response api.Scenario
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
				require.NotNil(t, response.Results)
				assert.Equal(t, 570000.0, response.Results.TotalAnnualRevenue)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetWaterfall(t *testing.T) {
	t.Run("missing baseline parameter", func(t *testing.T) {
		r, _ := setupRouter(t, new(mockAnalysisService))

		req := httptest.NewRequest("GET", "/scenarios/scn-1/waterfall", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("successful decomposition", func(t *testing.T) {
		svc := new(mockAnalysisService)
		svc.On("CompareScenarios", mock.Anything, "scn-1", "scn-base").Return(
			[]domain.WaterfallStep{
				{Label: "Baseline", Value: 570000, Type: domain.StepBase},
				{Label: "Base Rent Adj", Value: 27360, Type: domain.StepDelta},
				{Label: "Amenity Rent Adj", Value: 0, Type: domain.StepDelta},
				{Label: "Concessions", Value: 0, Type: domain.StepDelta},
				{Label: "Final", Value: 597360, Type: domain.StepFinal},
			},
			nil,
		)
		r, _ := setupRouter(t, svc)

		req := httptest.NewRequest("GET", "/scenarios/scn-1/waterfall?baseline_scenario_id=scn-base", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var response api.WaterfallResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Len(t, response.Waterfall, 5)
		assert.Equal(t, "Baseline", response.Waterfall[0].Label)
		assert.Equal(t, "base", response.Waterfall[0].Type)
		assert.Equal(t, "final", response.Waterfall[4].Type)
		svc.AssertExpectations(t)
	})

	t.Run("mismatched analyses", func(t *testing.T) {
		svc := new(mockAnalysisService)
		svc.On("CompareScenarios", mock.Anything, "scn-1", "scn-foreign").
			Return(nil, analysis.ErrAnalysisMismatch)
		r, _ := setupRouter(t, svc)

		req := httptest.NewRequest("GET", "/scenarios/scn-1/waterfall?baseline_scenario_id=scn-foreign", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertExpectations(t)
	})
}
