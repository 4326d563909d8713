package http

import (
	"log/slog"
	"net/http"
)

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	if cached, hit := s.overviewCache.Get(userID); hit {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	overview, err := s.engine.Overview(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Overview computation failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.overviewCache.Set(userID, overview)
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = "month"
	}

	analysis, err := s.engine.SpendingAnalysisForPeriod(r.Context(), userID, period)
	if err != nil {
		slog.ErrorContext(r.Context(), "Spending analysis failed", "user_id", userID, "period", period, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	recommendations, err := s.engine.BudgetRecommendations(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Recommendation computation failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, recommendations)
}

func (s *Server) handleFinancialHealth(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	health, err := s.engine.FinancialHealth(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Health scoring failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, health)
}

func (s *Server) handlePredictions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	prediction, err := s.engine.Predictions(r.Context(), userID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Prediction computation failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, prediction)
}
