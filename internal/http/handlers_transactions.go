package http

import (
	"encoding/json"
	"net/http"
	"time"

	"fintrack/internal/core"
)

// transactionRequest is the write DTO. Amount is in currency units and may
// be a JSON number or a quoted decimal string.
type transactionRequest struct {
	Date     time.Time  `json:"date"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Note     string     `json:"note"`
}

type transactionResponse struct {
	ID       string     `json:"id"`
	Date     time.Time  `json:"date"`
	Type     string     `json:"type"`
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
	Note     string     `json:"note,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Date:     t.Date,
		Type:     string(t.Type),
		Category: t.Category,
		Amount:   t.Amount,
		Note:     t.Note,
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	// Defaults to the last 30 days when no range is given.
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	query := r.URL.Query()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from date")
			return
		}
		from = parsed
	}
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to date")
			return
		}
		to = parsed
	}

	transactions, err := s.store.FindByUserAndDateRange(r.Context(), userID, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	responses := make([]transactionResponse, len(transactions))
	for i, t := range transactions {
		responses[i] = toTransactionResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": responses,
		"count":        len(responses),
	})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	t, err := s.store.GetTransaction(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(*t))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.transactions.Create(r.Context(), core.Transaction{
		UserID:   userID,
		Date:     req.Date,
		Type:     core.TransactionType(req.Type),
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.transactions.Update(r.Context(), core.Transaction{
		ID:       r.PathValue("id"),
		UserID:   userID,
		Date:     req.Date,
		Type:     core.TransactionType(req.Type),
		Category: req.Category,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "missing X-User-ID header")
		return
	}

	if err := s.transactions.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}

	s.invalidateOverview(userID)
	w.WriteHeader(http.StatusNoContent)
}
