package activity

import (
	"log/slog"
	"net/http"

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

// Recent serves the activity log for the dashboard, most recent first.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.Recent()
	if err != nil {
		h.Logger.Error("failed to load activity log", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
	})
}
