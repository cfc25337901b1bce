package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/traineval/internal/adapters/share"
	service "github.com/okian/traineval/internal/app"
)

// QR code size bounds in pixels.
const (
	minQRSize = 64
	maxQRSize = 1024
)

// ShareDependencies is the slice of the service the share routes use.
type ShareDependencies interface {
	Share(ctx context.Context) (service.ShareInfo, error)
}

// ShareHandler serves share links for the active report.
type ShareHandler struct {
	deps ShareDependencies
}

// NewShareHandler creates a new share handler.
func NewShareHandler(deps ShareDependencies) *ShareHandler {
	return &ShareHandler{deps: deps}
}

// HandleShare handles GET /share.
func (h *ShareHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	const op = "api.share"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	info, err := h.deps.Share(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// HandleQRCode handles GET /share/qr[?size=n] with a PNG of the share link.
func (h *ShareHandler) HandleQRCode(w http.ResponseWriter, r *http.Request) {
	const op = "api.share_qr"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	size := share.DefaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, ok := parsePositive(raw)
		if !ok || n < minQRSize || n > maxQRSize {
			err := fmt.Errorf("size must be between %d and %d", minQRSize, maxQRSize)
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		size = n
	}

	info, err := h.deps.Share(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	png, err := share.QRCode(info.Link, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.ImageFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
