package views

import (
	"log/slog"
	"net/http"

	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/transport"
	"github.com/tranyenminhbd/docuflow/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
}

func NewHandler() *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{BaseHandler: transport.NewBaseHandler(lg)}
}

// Resolve answers which screen the client should render for the given
// navigation state. Mounted behind the optional auth middleware so anonymous
// callers resolve too.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := Request{
		View:        q.Get("view"),
		HasFilter:   q.Get("category") != "" || q.Get("department") != "",
		SearchQuery: q.Get("search"),
		DocumentID:  q.Get("document_id"),
	}

	session, signedIn := auth.SessionFromContext(r.Context())

	target := Resolve(req, signedIn, session.RoleOrNil())

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"target": target,
	})
}
