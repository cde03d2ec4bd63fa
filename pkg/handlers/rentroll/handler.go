// Package rentroll exposes the property/analysis/scenario API. Handlers are
// thin: decode, delegate to the store or the analysis service, encode.
package rentroll

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stu-tools/rent-atlas/pkg/models/api"
	records "github.com/stu-tools/rent-atlas/pkg/models/store"
	"github.com/stu-tools/rent-atlas/pkg/services/analysis"
	"github.com/stu-tools/rent-atlas/pkg/store"
)

const defaultOccupancyRate = 0.95

type Handler struct {
	store    store.Store
	analysis analysis.Service
	now      func() time.Time
}

func NewHandler(s store.Store, svc analysis.Service) *Handler {
	return &Handler{store: s, analysis: svc, now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Get("/properties", h.ListProperties)
	r.Get("/properties/{propertyID}", h.GetProperty)
	r.Post("/properties", h.CreateProperty)

	r.Post("/floorplans", h.CreateFloorplan)
	r.Put("/floorplans/{floorplanID}", h.UpdateFloorplan)
	r.Delete("/floorplans/{floorplanID}", h.DeleteFloorplan)

	r.Get("/analyses", h.ListAnalyses)
	r.Get("/analyses/{analysisID}", h.GetAnalysis)
	r.Post("/analyses", h.CreateAnalysis)
	r.Post("/analyses/{analysisID}/duplicate", h.DuplicateAnalysis)

	r.Post("/scenarios", h.CreateScenario)
	r.Put("/scenarios/{scenarioID}", h.UpdateScenario)
	r.Get("/scenarios/{scenarioID}/calculate", h.CalculateScenario)
	r.Get("/scenarios/{scenarioID}/waterfall", h.GetWaterfall)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, api.Health{Status: "healthy"})
}

func (h *Handler) ListProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	props, err := h.store.Properties().List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]api.Property, 0, len(props))
	for _, p := range props {
		floorplans, err := h.store.Floorplans().ListByProperty(ctx, p.ID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		response = append(response, propertyToAPI(p, floorplans))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "propertyID")

	prop, err := h.store.Properties().Get(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	floorplans, err := h.store.Floorplans().ListByProperty(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, propertyToAPI(*prop, floorplans))
}

func (h *Handler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateProperty
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	now := h.now().UTC()
	rec := records.Property{
		ID:         uuid.New().String(),
		Name:       req.Name,
		Address:    req.Address,
		TotalUnits: req.TotalUnits,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.store.Properties().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, propertyToAPI(rec, nil))
}

func (h *Handler) CreateFloorplan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateFloorplan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.store.Properties().Get(ctx, req.PropertyID); err != nil {
		h.writeError(w, r, err)
		return
	}

	rec := floorplanFromRequest(uuid.New().String(), req)
	if err := h.store.Floorplans().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, floorplanToAPI(rec))
}

func (h *Handler) UpdateFloorplan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "floorplanID")

	var req api.CreateFloorplan
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.store.Floorplans().Get(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	rec := floorplanFromRequest(id, req)
	if err := h.store.Floorplans().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, floorplanToAPI(rec))
}

func (h *Handler) DeleteFloorplan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "floorplanID")

	if err := h.store.Floorplans().Delete(ctx, id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, api.Message{Message: "Floorplan deleted"})
}

func (h *Handler) ListAnalyses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	analyses, err := h.store.Analyses().List(ctx)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := make([]api.Analysis, 0, len(analyses))
	for _, a := range analyses {
		scenarios, err := h.store.Scenarios().ListByAnalysis(ctx, a.ID)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		response = append(response, analysisToAPI(a, scenarios))
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "analysisID")

	rec, err := h.store.Analyses().Get(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	scenarios, err := h.store.Scenarios().ListByAnalysis(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, analysisToAPI(*rec, scenarios))
}

func (h *Handler) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateAnalysis
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.store.Properties().Get(ctx, req.PropertyID); err != nil {
		h.writeError(w, r, err)
		return
	}

	occupancy := defaultOccupancyRate
	if req.OccupancyRate != nil {
		occupancy = *req.OccupancyRate
	}

	now := h.now().UTC()
	rec := records.Analysis{
		ID:            uuid.New().String(),
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		Description:   req.Description,
		OccupancyRate: occupancy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := h.store.Analyses().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, analysisToAPI(rec, nil))
}

func (h *Handler) DuplicateAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "analysisID")

	newName := r.URL.Query().Get("new_name")
	if newName == "" {
		http.Error(w, "missing 'new_name' query parameter", http.StatusBadRequest)
		return
	}

	duplicated, err := h.analysis.DuplicateAnalysis(ctx, id, newName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, domainAnalysisToAPI(*duplicated))
}

func (h *Handler) CreateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateScenario
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, err := h.store.Analyses().Get(ctx, req.AnalysisID); err != nil {
		h.writeError(w, r, err)
		return
	}

	rec := scenarioFromRequest(uuid.New().String(), req, h.now().UTC())
	if err := h.store.Scenarios().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, scenarioToAPI(rec))
}

func (h *Handler) UpdateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenarioID")

	var req api.CreateScenario
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	existing, err := h.store.Scenarios().Get(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Replacing parameters invalidates any cached results.
	rec := scenarioFromRequest(id, req, existing.CreatedAt)
	if err := h.store.Scenarios().Put(ctx, rec); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, scenarioToAPI(rec))
}

func (h *Handler) CalculateScenario(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenarioID")

	scenario, err := h.analysis.CalculateScenario(ctx, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(ctx, w, http.StatusOK, domainScenarioToAPI(*scenario))
}

func (h *Handler) GetWaterfall(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "scenarioID")

	baselineID := r.URL.Query().Get("baseline_scenario_id")
	if baselineID == "" {
		http.Error(w, "missing 'baseline_scenario_id' query parameter", http.StatusBadRequest)
		return
	}

	steps, err := h.analysis.CompareScenarios(ctx, id, baselineID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response := api.WaterfallResponse{Waterfall: make([]api.WaterfallStep, 0, len(steps))}
	for _, step := range steps {
		response.Waterfall = append(response.Waterfall, api.WaterfallStep{
			Label: step.Label,
			Value: step.Value,
			Type:  string(step.Type),
		})
	}
	writeJSON(ctx, w, http.StatusOK, response)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, analysis.ErrNoFloorplans):
		http.Error(w, "no floorplans found for property", http.StatusBadRequest)
	case errors.Is(err, analysis.ErrAnalysisMismatch):
		http.Error(w, "scenarios must belong to the same analysis", http.StatusBadRequest)
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
