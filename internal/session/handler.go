package session

import (
	"context"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/earned-wage-access/internal"
	"github.com/frahmantamala/earned-wage-access/internal/transport"
	"github.com/frahmantamala/earned-wage-access/pkg/logger"
)

type ServiceAPI interface {
	IdentifyEmployee(code string) (Challenge, error)
	VerifyOneTimeCode(ctx context.Context, challengeID, code string) (Session, error)
	Logout(sessionID string)
}

type Resolver interface {
	Resolve(token string) (*errors.Identity, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Resolver Resolver
}

func NewHandler(svc ServiceAPI, resolver Resolver, lg *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Resolver:    resolver,
	}
}

// Identify handles POST /api/v1/auth/identify
func (h *Handler) Identify(w http.ResponseWriter, r *http.Request) {
	var req IdentifyRequest
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.HandleError(w, appErr)
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	challenge, err := h.Service.IdentifyEmployee(req.EmployeeCode)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, challenge)
}

// Verify handles POST /api/v1/auth/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if appErr := h.DecodeJSON(r, &req); appErr != nil {
		h.HandleError(w, appErr)
		return
	}
	if err := req.Validate(); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	sess, err := h.Service.VerifyOneTimeCode(r.Context(), req.ChallengeID, req.Code)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, sess)
}

// Logout handles POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.Identity(w, r)
	if !ok {
		return
	}

	h.Service.Logout(identity.SessionID)
	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware resolves the bearer token into the caller's identity.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.HandleError(w, errors.NewUnauthorizedError("missing authorization token", errors.ErrCodeInvalidToken))
			return
		}

		identity, err := h.Resolver.Resolve(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err)
			h.HandleServiceError(w, err)
			return
		}

		ctx := errors.ContextWithIdentity(r.Context(), identity)
		ctx = logger.With(ctx, "employee_id", identity.EmployeeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
