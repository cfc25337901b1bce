// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/traineval/internal/adapters/share"
	service "github.com/okian/traineval/internal/app"
	"github.com/okian/traineval/internal/domain/evaluation"
	"github.com/okian/traineval/internal/domain/registry"
)

// maxBodyBytes bounds request bodies; photos and logos travel as data URLs.
const maxBodyBytes = 8 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	TrainingDependencies
	ParticipantDependencies
	EvaluationDependencies
	ReportDependencies
	ShareDependencies
	ResetDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	trainingHandler     *TrainingHandler
	participantsHandler *ParticipantsHandler
	evaluationsHandler  *EvaluationsHandler
	reportHandler       *ReportHandler
	shareHandler        *ShareHandler
	resetHandler        *ResetHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		trainingHandler:     NewTrainingHandler(deps),
		participantsHandler: NewParticipantsHandler(deps),
		evaluationsHandler:  NewEvaluationsHandler(deps),
		reportHandler:       NewReportHandler(deps),
		shareHandler:        NewShareHandler(deps),
		resetHandler:        NewResetHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/training", MetricsMiddleware(s.trainingHandler.HandleTraining, "training"))
	mux.HandleFunc("/participants", MetricsMiddleware(s.participantsHandler.HandleCollection, "participants"))
	mux.HandleFunc("/participants/", MetricsMiddleware(s.participantsHandler.HandleItem, "participant"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandleList, "evaluations"))
	mux.HandleFunc("/evaluations/", MetricsMiddleware(s.evaluationsHandler.HandleDay, "evaluation_day"))
	mux.HandleFunc("/report", MetricsMiddleware(s.reportHandler.HandleReport, "report"))
	mux.HandleFunc("/report/charts", MetricsMiddleware(s.reportHandler.HandleCharts, "report_charts"))
	mux.HandleFunc("/share", MetricsMiddleware(s.shareHandler.HandleShare, "share"))
	mux.HandleFunc("/share/qr", MetricsMiddleware(s.shareHandler.HandleQRCode, "share_qr"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.resetHandler.HandleReset, "reset"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps domain errors to a status code and error code.
func writeFailure(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	writeError(w, status, code, Wrap(op, err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, share.ErrInvalidToken):
		return http.StatusUnprocessableEntity, "invalid_link"
	case errors.Is(err, service.ErrNoActiveParticipant):
		return http.StatusConflict, "no_active_participant"
	case errors.Is(err, registry.ErrParticipantNotFound), errors.Is(err, evaluation.ErrUnknownDay):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// decodeBody reads a JSON body into v, rejecting unknown fields.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// pathSegments splits the path after prefix, e.g. "/participants/abc/activate"
// with prefix "/participants/" gives ["abc", "activate"].
func pathSegments(path, prefix string) []string {
	rest := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

func methodNotAllowed(w http.ResponseWriter, op string, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
}

func parsePositive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
