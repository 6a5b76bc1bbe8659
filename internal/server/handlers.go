package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/rustyeddy/tradejournal/stats"
)

// GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"name":    "tradejournal",
		"version": s.cfg.Version,
	})
}

// GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// filtered lists trades matching the request's filter query.
func (s *Server) filtered(w http.ResponseWriter, r *http.Request) ([]journal.TradeRecord, bool) {
	opts, err := filter.ParseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	trades, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.fail(w, err, "list trades")
		return nil, false
	}
	return filter.Apply(trades, opts), true
}

// GET /trades?pair=&status=&dateFrom=...
func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.filtered(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, trades)
}

// GET /trades/recent?limit=N
func (s *Server) handleRecentTrades(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	trades, ok := s.filtered(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, stats.Recent(trades, limit))
}

// POST /trades
func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var c journal.Candidate
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.Images == nil {
		c.Images = []string{}
	}

	rec, err := s.cfg.Store.Create(r.Context(), c)
	if err != nil {
		s.fail(w, err, "create trade")
		return
	}
	s.writeJSON(w, http.StatusCreated, rec)
}

// GET /trades/{nro}
func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	nro, ok := s.nro(w, r)
	if !ok {
		return
	}
	rec, err := s.cfg.Store.Get(r.Context(), nro)
	if err != nil {
		s.fail(w, err, "get trade")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// PUT /trades/{nro}
func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	nro, ok := s.nro(w, r)
	if !ok {
		return
	}
	var p journal.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.cfg.Store.Update(r.Context(), nro, p)
	if err != nil {
		s.fail(w, err, "update trade")
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// DELETE /trades/{nro}
func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	nro, ok := s.nro(w, r)
	if !ok {
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), nro); err != nil {
		s.fail(w, err, "delete trade")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /trades/export.csv
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.filtered(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	if err := journal.WriteCSV(w, trades); err != nil {
		s.log.Error().Err(err).Msg("Failed to write CSV export")
	}
}

// GET /trades/export.json
func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.filtered(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.json"`)
	if err := journal.WriteBackup(w, trades, s.cfg.Now()); err != nil {
		s.log.Error().Err(err).Msg("Failed to write JSON export")
	}
}

// GET /stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	trades, ok := s.filtered(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, stats.Compute(trades))
}

// GET /pairs
func (s *Server) handlePairs(w http.ResponseWriter, r *http.Request) {
	trades, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.fail(w, err, "list trades")
		return
	}
	s.writeJSON(w, http.StatusOK, stats.Pairs(trades))
}

// GET /risk?capital=N
func (s *Server) handleRisk(w http.ResponseWriter, r *http.Request) {
	capital, ok := s.capital(w, r)
	if !ok {
		return
	}
	trades, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.fail(w, err, "list trades")
		return
	}
	s.writeJSON(w, http.StatusOK, risk.Summarize(trades, capital))
}

type riskCheckRequest struct {
	journal.Candidate
	Units float64 `json:"units"`
}

// POST /risk/check?capital=N
func (s *Server) handleRiskCheck(w http.ResponseWriter, r *http.Request) {
	capital, ok := s.capital(w, r)
	if !ok {
		return
	}
	var req riskCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	trades, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.fail(w, err, "list trades")
		return
	}
	s.writeJSON(w, http.StatusOK, risk.Evaluate(s.cfg.Policy, req.Candidate, req.Units, trades, capital))
}

func (s *Server) capital(w http.ResponseWriter, r *http.Request) (float64, bool) {
	raw := r.URL.Query().Get("capital")
	if raw == "" {
		return s.cfg.InitialCapital, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid capital")
		return 0, false
	}
	return v, true
}

func (s *Server) nro(w http.ResponseWriter, r *http.Request) (int, bool) {
	nro, err := strconv.Atoi(chi.URLParam(r, "nro"))
	if err != nil || nro <= 0 {
		s.writeError(w, http.StatusBadRequest, "invalid trade number")
		return 0, false
	}
	return nro, true
}

// fail maps store errors onto HTTP statuses.
func (s *Server) fail(w http.ResponseWriter, err error, op string) {
	switch {
	case journal.IsValidationError(err):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, journal.ErrNotFound):
		s.writeError(w, http.StatusNotFound, journal.ErrNotFound.Error())
	default:
		s.log.Error().Err(err).Str("op", op).Msg("Request failed")
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
