package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tranyenminhbd/docuflow/internal/auth"
	"github.com/tranyenminhbd/docuflow/internal/transport"
	"github.com/tranyenminhbd/docuflow/pkg/logger"
)

// maxLogoSize caps logo uploads at 2 MiB.
const maxLogoSize = 2 << 20

type Handler struct {
	*transport.BaseHandler
	Service   ServiceAPI
	uploadDir string
}

func NewHandler(svc ServiceAPI, uploadDir string) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		uploadDir:   uploadDir,
	}
}

func actorName(r *http.Request) string {
	session, _ := auth.SessionFromContext(r.Context())
	return session.UserName()
}

// Get is public: the reader needs the company name and theme before login.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.Service.Get()
	if err != nil {
		h.Logger.Error("failed to load app config", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cfg)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var dto UpdateConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cfg, err := h.Service.Update(actorName(r), dto)
	if err != nil {
		h.Logger.Error("failed to update app config", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cfg)
}

// UploadLogo accepts a multipart image upload and stores it under the
// configured upload directory.
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxLogoSize); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "missing logo file")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".svg", ".webp":
	default:
		h.WriteError(w, http.StatusBadRequest, "unsupported logo format")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.Logger.Error("failed to create upload dir", "dir", h.uploadDir, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	name := fmt.Sprintf("logo-%s%s", uuid.New().String(), ext)
	path := filepath.Join(h.uploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		h.Logger.Error("failed to create logo file", "path", path, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, maxLogoSize)); err != nil {
		h.Logger.Error("failed to write logo file", "path", path, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	cfg, err := h.Service.SetLogo(actorName(r), "/uploads/"+name)
	if err != nil {
		h.Logger.Error("failed to save logo url", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cfg)
}
