package banklink

import (
	"log/slog"
	"net/http"
	"strings"

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

// ListBanks handles GET /api/v1/banks
func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	h.WriteData(w, http.StatusOK, Banks())
}

// LookupAccount handles GET /api/v1/bank-accounts/lookup
func (h *Handler) LookupAccount(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Identity(w, r); !ok {
		return
	}

	bankCode := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("bank_code")))
	accountNo := strings.TrimSpace(r.URL.Query().Get("account_no"))

	name, err := h.Service.LookupAccountHolder(r.Context(), bankCode, accountNo)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, LookupResponse{
		BankCode:    bankCode,
		BankName:    BankName(bankCode),
		AccountNo:   accountNo,
		AccountName: name,
	})
}

// LinkAccount handles POST /api/v1/me/bank-link
func (h *Handler) LinkAccount(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	var req LinkRequest
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.HandleError(w, appErr)
		return
	}

	link, err := h.Service.Link(r.Context(), identity.EmployeeID, req.BankCode, req.AccountNo, req.AccountName)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, LinkResponse{
		BankCode:    link.BankCode,
		BankName:    BankName(link.BankCode),
		AccountNo:   link.AccountNo,
		AccountName: link.AccountName,
	})
}
