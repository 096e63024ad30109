package employee

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/earned-wage-access/internal/core/datamodel/transaction"
	"github.com/frahmantamala/earned-wage-access/internal/transport"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger),
		Service:     svc,
	}
}

// Me handles GET /api/v1/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	profile, err := h.Service.Profile(identity.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, profile)
}

// Limit handles GET /api/v1/me/limit
func (h *Handler) Limit(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	limit, err := h.Service.GetAvailableLimit(identity.EmployeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, LimitResponse{EmployeeID: identity.EmployeeID, AvailableLimit: limit})
}

// Transactions handles GET /api/v1/me/transactions
func (h *Handler) Transactions(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	history := h.Service.GetTransactionHistory(identity.EmployeeID)
	if history == nil {
		history = []transaction.Record{}
	}
	h.WriteData(w, http.StatusOK, HistoryResponse{Transactions: history})
}
