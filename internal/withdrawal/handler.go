package withdrawal

import (
	"log/slog"
	"net/http"
	"strconv"

	errors "github.com/frahmantamala/earned-wage-access/internal"
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

// Withdraw handles POST /api/v1/me/withdrawals
func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	var req WithdrawRequest
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.HandleError(w, appErr)
		return
	}

	result, err := h.Service.Withdraw(r.Context(), identity.EmployeeID, req.Amount)
	if err != nil {
		h.Logger.Warn("Withdraw: service error", "employee_id", identity.EmployeeID, "amount", req.Amount, "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, result)
}

// Quote handles GET /api/v1/me/withdrawals/quote?amount=
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil {
		h.HandleError(w, errors.ErrInvalidAmount)
		return
	}

	quote, err := h.Service.Quote(identity.EmployeeID, amount)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, quote)
}
