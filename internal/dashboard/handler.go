package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/tranyenminhbd/docuflow/internal/auth"
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

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFromContext(r.Context())

	summary, err := h.Service.Summarize(session)
	if err != nil {
		h.Logger.Error("failed to build dashboard summary", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
