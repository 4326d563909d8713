package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"fintrack/internal/core"
)

type budgetRequest struct {
	Category       string     `json:"category"`
	BudgetedAmount core.Money `json:"budgetedAmount"`
	Period         string     `json:"period"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	AlertThreshold float64    `json:"alertThreshold"`
	IsActive       *bool      `json:"isActive"`
}

type budgetResponse struct {
	ID             string     `json:"id"`
	Category       string     `json:"category"`
	BudgetedAmount core.Money `json:"budgetedAmount"`
	SpentAmount    core.Money `json:"spentAmount"`
	Period         string     `json:"period"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        time.Time  `json:"endDate"`
	AlertThreshold float64    `json:"alertThreshold"`
	IsActive       bool       `json:"isActive"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		Category:       b.Category,
		BudgetedAmount: b.BudgetedAmount,
		SpentAmount:    b.SpentAmount,
		Period:         string(b.Period),
		StartDate:      b.StartDate,
		EndDate:        b.EndDate,
		AlertThreshold: b.AlertThreshold,
		IsActive:       b.IsActive,
	}
}

func (req budgetRequest) toBudget(userID, id string) core.Budget {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	threshold := req.AlertThreshold
	if threshold == 0 {
		threshold = 80
	}
	return core.Budget{
		ID:             id,
		UserID:         userID,
		Category:       req.Category,
		BudgetedAmount: req.BudgetedAmount,
		Period:         core.Period(req.Period),
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		AlertThreshold: threshold,
		IsActive:       active,
	}
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	budgets, err := s.store.FindActiveByUser(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]budgetResponse, len(budgets))
	for i, b := range budgets {
		responses[i] = toBudgetResponse(b)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"budgets": responses,
		"count":   len(responses),
	})
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	b, err := s.store.GetBudget(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(*b))
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.budgets.Create(r.Context(), req.toBudget(userID, ""))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	var req budgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.budgets.Update(r.Context(), req.toBudget(userID, r.PathValue("id"))); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	if err := s.budgets.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	w.WriteHeader(http.StatusNoContent)
}

// handleReconcile runs a synchronous full recompute of the user's budget
// spent amounts, bypassing the async trigger path.
func (s *Server) handleReconcile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	if err := s.reconciler.Recalculate(r.Context(), userID); err != nil {
		slog.ErrorContext(r.Context(), "Synchronous reconcile failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.invalidateOverview(userID)
	writeJSON(w, http.StatusOK, map[string]string{"status": "reconciled"})
}
