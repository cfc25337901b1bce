package api

import (
	"context"
	"net/http"

	service "github.com/okian/traineval/internal/app"
	"github.com/okian/traineval/internal/domain/model"
)

// TrainingDependencies is the slice of the service the training routes use.
type TrainingDependencies interface {
	Training(ctx context.Context) (model.TrainingRecord, error)
	UpdateTraining(ctx context.Context, patch service.TrainingPatch) (model.TrainingRecord, error)
}

// TrainingHandler serves the training metadata.
type TrainingHandler struct {
	deps TrainingDependencies
}

// NewTrainingHandler creates a new training handler.
func NewTrainingHandler(deps TrainingDependencies) *TrainingHandler {
	return &TrainingHandler{deps: deps}
}

// HandleTraining handles GET and PATCH /training.
func (h *TrainingHandler) HandleTraining(w http.ResponseWriter, r *http.Request) {
	const op = "api.training"
	switch r.Method {
	case http.MethodGet:
		rec, err := h.deps.Training(r.Context())
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodPatch:
		var patch service.TrainingPatch
		if err := decodeBody(w, r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		rec, err := h.deps.UpdateTraining(r.Context(), patch)
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPatch)
	}
}
