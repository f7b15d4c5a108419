// Package handler exposes the data service as a JSON HTTP API.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/nishanthbasava/quantra-finance-hub/internal/ledger"
	"github.com/nishanthbasava/quantra-finance-hub/internal/quant"
	"github.com/nishanthbasava/quantra-finance-hub/internal/scenario"
	"github.com/nishanthbasava/quantra-finance-hub/internal/service"
)

type Handler struct {
	svc *service.DataService
	log *logrus.Logger
}

func NewHandler(svc *service.DataService, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Router wires all API routes.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")

	r.HandleFunc("/api/seed", h.SeedInfo).Methods("GET")
	r.HandleFunc("/api/seed/lock", h.ToggleLock).Methods("POST")
	r.HandleFunc("/api/seed/regenerate", h.Regenerate).Methods("POST")

	r.HandleFunc("/api/snapshot", h.Snapshot).Methods("GET")
	r.HandleFunc("/api/transactions", h.Transactions).Methods("GET")
	r.HandleFunc("/api/forecast", h.Forecast).Methods("GET")

	r.HandleFunc("/api/scenarios", h.ListScenarios).Methods("GET")
	r.HandleFunc("/api/scenarios", h.AddScenario).Methods("POST")
	r.HandleFunc("/api/scenarios/parse", h.ParseScenario).Methods("POST")
	r.HandleFunc("/api/scenarios/{id}", h.RemoveScenario).Methods("DELETE")
	r.HandleFunc("/api/suggestions", h.Suggestions).Methods("GET")

	r.HandleFunc("/api/vault", h.Vault).Methods("GET")
	r.HandleFunc("/api/assistant/context", h.AssistantContext).Methods("GET")
	return r
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SeedInfo returns the current seed state
func (h *Handler) SeedInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.SeedInfo()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}

// ToggleLock flips session-seed locking
func (h *Handler) ToggleLock(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.ToggleLock()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}

// Regenerate discards the synthetic identity
func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Regenerate()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, info)
}

// Snapshot returns the aggregated dashboard view for a time range
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	timeRange := ledger.ParseTimeRange(r.URL.Query().Get("range"))
	snap, err := h.svc.Snapshot(timeRange)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

// Transactions returns explorer results with filters and sorting
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	timeRange := ledger.ParseTimeRange(q.Get("range"))
	filters := ledger.Filters{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Account:  q.Get("account"),
		DateFrom: q.Get("from"),
		DateTo:   q.Get("to"),
	}
	sortBy := ledger.SortByDate
	if q.Get("sort") == string(ledger.SortByAmount) {
		sortBy = ledger.SortByAmount
	}
	ascending := q.Get("dir") != "desc"

	txns, err := h.svc.Transactions(timeRange, filters, sortBy, ascending)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"transactions": txns,
		"count":        len(txns),
	})
}

// Forecast runs the quant model for a metric, range and optional scenario
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	metric := quant.ParseMetric(q.Get("metric"))
	timeRange := ledger.ParseTimeRange(q.Get("range"))

	out, err := h.svc.Forecast(metric, timeRange, q.Get("scenario"))
	switch {
	case errors.Is(err, service.ErrScenarioNotFound):
		h.writeError(w, http.StatusNotFound, err)
		return
	case errors.Is(err, service.ErrSuperseded):
		h.writeError(w, http.StatusConflict, err)
		return
	case err != nil:
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

// ListScenarios returns saved scenarios in creation order
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.Scenarios())
}

type addScenarioRequest struct {
	Name   string          `json:"name"`
	Type   scenario.Type   `json:"type"`
	Params json.RawMessage `json:"params"`
}

// AddScenario saves a new scenario definition
func (h *Handler) AddScenario(w http.ResponseWriter, r *http.Request) {
	var req addScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	params, err := scenario.DecodeParams(req.Type, req.Params)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	def, err := h.svc.AddScenario(req.Name, params)
	if errors.Is(err, service.ErrScenarioLimit) {
		h.writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, def)
}

type parseScenarioRequest struct {
	Text string `json:"text"`
}

// ParseScenario interprets free-form text into a saved scenario
func (h *Handler) ParseScenario(w http.ResponseWriter, r *http.Request) {
	var req parseScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	def, err := h.svc.ParseScenario(req.Text)
	if errors.Is(err, service.ErrScenarioLimit) {
		h.writeError(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if def == nil {
		// Recognized as plain conversation, not a scenario.
		h.writeJSON(w, http.StatusOK, map[string]any{"matched": false})
		return
	}
	h.writeJSON(w, http.StatusCreated, map[string]any{"matched": true, "scenario": def})
}

// RemoveScenario deletes a saved scenario
func (h *Handler) RemoveScenario(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.svc.RemoveScenario(id); err != nil {
		h.writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Suggestions returns scenario impact summaries and the next prompt
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, question, err := h.svc.Suggestions()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"suggestions":  suggestions,
		"nextQuestion": question,
	})
}

// Vault returns the read-only verification payload
func (h *Handler) Vault(w http.ResponseWriter, r *http.Request) {
	payload, err := h.svc.Vault()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, payload)
}

// AssistantContext returns the assistant grounding payload
func (h *Handler) AssistantContext(w http.ResponseWriter, r *http.Request) {
	timeRange := ledger.ParseTimeRange(r.URL.Query().Get("range"))
	ctx, err := h.svc.AssistantContext(timeRange)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, ctx)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Error("[api] failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.log.WithError(err).WithField("status", status).Warn("[api] request failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
