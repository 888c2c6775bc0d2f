package backup

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/transport"
	"github.com/tranyenminhbd/docuflow/pkg/logger"
)

// maxBackupSize caps uploaded backups at 32 MiB.
const maxBackupSize = 32 << 20

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

func actorName(r *http.Request) string {
	session, _ := auth.SessionFromContext(r.Context())
	return session.UserName()
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.Export()
	if err != nil {
		h.Logger.Error("failed to export backup", "error", err)
		h.WriteAppError(w, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="docuflow-backup.json"`)
	h.WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) Restore(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBackupSize))
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	if err := h.Service.Restore(actorName(r), raw); err != nil {
		h.Logger.Error("failed to restore backup", "error", err)
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reset(actorName(r)); err != nil {
		h.Logger.Error("failed to reset data", "error", err)
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
