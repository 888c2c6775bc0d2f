package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/tranyenminhbd/docuflow/internal"
	"github.com/tranyenminhbd/docuflow/internal/transport"
	"github.com/tranyenminhbd/docuflow/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Error("token refresh failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	h.Service.Logout(session)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the restored session for the bearer of the token. The client
// uses this on startup to decide between the console and the public reader.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user": session.User,
		"role": session.Role,
	})
}

// AuthMiddleware requires a valid bearer token and attaches a freshly
// restored session to the request context. Restoration hits the live user
// store on every request, so deleting or suspending an account invalidates
// its outstanding tokens immediately.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Error("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		session, err := h.Service.RestoreSession(claims.UserID)
		if err != nil {
			h.Logger.Error("session restore failed", "user_id", claims.UserID, "error", err)
			h.WriteError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if session == nil {
			h.WriteError(w, http.StatusUnauthorized, "session no longer valid")
			return
		}

		ctx := ContextWithSession(r.Context(), session)
		ctx = internal.ContextWithUserID(ctx, session.User.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthMiddleware attaches a session when a valid token is present
// but lets anonymous requests through. Public reader endpoints use it to
// widen visibility for staff without requiring sign-in.
func (h *Handler) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		session, err := h.Service.RestoreSession(claims.UserID)
		if err != nil || session == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := ContextWithSession(r.Context(), session)
		ctx = internal.ContextWithUserID(ctx, session.User.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
