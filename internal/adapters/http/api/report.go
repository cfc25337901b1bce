package api

import (
	"bytes"
	"context"
	"net/http"

	"github.com/okian/traineval/internal/adapters/render"
	"github.com/okian/traineval/internal/adapters/share"
	service "github.com/okian/traineval/internal/app"
)

// ReportDependencies is the slice of the service the report routes use.
type ReportDependencies interface {
	Report(ctx context.Context) (service.Report, error)
	DecodeReport(ctx context.Context, token string) (service.Report, error)
}

// ReportHandler serves the summary report, live or from a share token.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// load returns the shared report when ?d= is present, else the live one.
// An empty d is a broken link, not a request for the live report.
func (h *ReportHandler) load(r *http.Request) (service.Report, error) {
	q := r.URL.Query()
	if !q.Has("d") {
		return h.deps.Report(r.Context())
	}
	token := q.Get("d")
	if token == "" {
		return service.Report{}, share.ErrInvalidToken
	}
	return h.deps.DecodeReport(r.Context(), token)
}

// HandleReport handles GET /report[?d=token].
func (h *ReportHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.report"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	rep, err := h.load(r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleCharts handles GET /report/charts[?d=token] with an HTML chart page.
func (h *ReportHandler) HandleCharts(w http.ResponseWriter, r *http.Request) {
	const op = "api.report_charts"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	rep, err := h.load(r)
	if err != nil {
		writeFailure(w, op, err)
		return
	}

	var buf bytes.Buffer
	if err := render.ChartsPage(&buf, rep.Participant.Name, rep.Summary); err != nil {
		writeError(w, http.StatusInternalServerError, "render_failed", WrapKind(op, ErrRender, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
