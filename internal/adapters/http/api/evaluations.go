package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/traineval/internal/domain/model"
)

// EvaluationDependencies is the slice of the service the evaluation routes use.
type EvaluationDependencies interface {
	Evaluations(ctx context.Context) ([]model.DailyEvaluation, error)
	SetSubscore(ctx context.Context, day int, c model.Competency, pos, value int) (model.DailyEvaluation, error)
	SetScores(ctx context.Context, day int, c model.Competency, values model.SubtopicScores) (model.DailyEvaluation, error)
	SetPresence(ctx context.Context, day int, present bool) (model.DailyEvaluation, error)
}

// scoreRequest writes either one cell (Position and Value) or a whole
// competency (Scores).
type scoreRequest struct {
	Competency string                `json:"competency"`
	Position   *int                  `json:"position,omitempty"`
	Value      *int                  `json:"value,omitempty"`
	Scores     *model.SubtopicScores `json:"scores,omitempty"`
}

type presenceRequest struct {
	Present *bool `json:"present"`
}

// EvaluationsHandler serves the active participant's daily evaluations.
type EvaluationsHandler struct {
	deps EvaluationDependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps EvaluationDependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// HandleList handles GET /evaluations.
func (h *EvaluationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluations"
	if r.Method != http.MethodGet {
		methodNotAllowed(w, op, http.MethodGet)
		return
	}
	evals, err := h.deps.Evaluations(r.Context())
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	if evals == nil {
		evals = []model.DailyEvaluation{}
	}
	writeJSON(w, http.StatusOK, evals)
}

// HandleDay handles PUT /evaluations/{day}/scores and PUT /evaluations/{day}/presence.
func (h *EvaluationsHandler) HandleDay(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluation_day"
	segs := pathSegments(r.URL.Path, "/evaluations/")
	if len(segs) != 2 {
		http.NotFound(w, r)
		return
	}
	day, ok := parsePositive(segs[0])
	if !ok {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, fmt.Errorf("invalid day %q", segs[0])))
		return
	}
	if r.Method != http.MethodPut {
		methodNotAllowed(w, op, http.MethodPut)
		return
	}

	var (
		updated model.DailyEvaluation
		err     error
	)
	switch segs[1] {
	case "scores":
		updated, err = h.putScores(w, r, day)
	case "presence":
		updated, err = h.putPresence(w, r, day)
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		if errors.Is(err, ErrBadRequest) {
			writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
			return
		}
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *EvaluationsHandler) putScores(w http.ResponseWriter, r *http.Request, day int) (model.DailyEvaluation, error) {
	var req scoreRequest
	if err := decodeBody(w, r, &req); err != nil {
		return model.DailyEvaluation{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	c := model.Competency(req.Competency)
	switch {
	case req.Scores != nil && req.Position == nil && req.Value == nil:
		return h.deps.SetScores(r.Context(), day, c, *req.Scores)
	case req.Scores == nil && req.Position != nil && req.Value != nil:
		return h.deps.SetSubscore(r.Context(), day, c, *req.Position, *req.Value)
	default:
		return model.DailyEvaluation{}, fmt.Errorf("%w: send either position and value or scores", ErrBadRequest)
	}
}

func (h *EvaluationsHandler) putPresence(w http.ResponseWriter, r *http.Request, day int) (model.DailyEvaluation, error) {
	var req presenceRequest
	if err := decodeBody(w, r, &req); err != nil {
		return model.DailyEvaluation{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	if req.Present == nil {
		return model.DailyEvaluation{}, fmt.Errorf("%w: present is required", ErrBadRequest)
	}
	return h.deps.SetPresence(r.Context(), day, *req.Present)
}
