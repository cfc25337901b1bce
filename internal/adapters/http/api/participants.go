package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/registry"
)

// ParticipantDependencies is the slice of the service the participant routes use.
type ParticipantDependencies interface {
	Participants(ctx context.Context) ([]model.Participant, error)
	Participant(ctx context.Context, id string) (model.Participant, error)
	ActiveParticipant(ctx context.Context) (model.Participant, error)
	AddParticipant(ctx context.Context, name string, age int, photo string) (model.Participant, error)
	UpdateParticipant(ctx context.Context, id string, patch registry.Patch) (model.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error
	SwitchActiveParticipant(ctx context.Context, id string) (model.Participant, error)
}

// participantRequest is the body of POST /participants and PATCH /participants/{id}.
type participantRequest struct {
	Name  *string `json:"name"`
	Age   *int    `json:"age"`
	Photo *string `json:"photo"`
}

// participantList is the body of GET /participants.
type participantList struct {
	Participants []model.Participant `json:"participants"`
	ActiveID     string              `json:"activeId,omitempty"`
}

// ParticipantsHandler serves the participant registry.
type ParticipantsHandler struct {
	deps ParticipantDependencies
}

// NewParticipantsHandler creates a new participants handler.
func NewParticipantsHandler(deps ParticipantDependencies) *ParticipantsHandler {
	return &ParticipantsHandler{deps: deps}
}

// HandleCollection handles GET and POST /participants.
func (h *ParticipantsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	const op = "api.participants"
	switch r.Method {
	case http.MethodGet:
		list, err := h.deps.Participants(r.Context())
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		resp := participantList{Participants: list}
		if active, err := h.deps.ActiveParticipant(r.Context()); err == nil {
			resp.ActiveID = active.ID
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		var req participantRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		if req.Name == nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errors.New("name is required")))
			return
		}
		var age int
		if req.Age != nil {
			age = *req.Age
		}
		var photo string
		if req.Photo != nil {
			photo = *req.Photo
		}
		p, err := h.deps.AddParticipant(r.Context(), *req.Name, age, photo)
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusCreated, p)
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPost)
	}
}

// HandleItem handles /participants/{id} and POST /participants/{id}/activate.
// The id "active" addresses the active participant on GET.
func (h *ParticipantsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	const op = "api.participant"
	segs := pathSegments(r.URL.Path, "/participants/")
	switch {
	case len(segs) == 1:
		h.handleOne(w, r, op, segs[0])
	case len(segs) == 2 && segs[1] == "activate":
		if r.Method != http.MethodPost {
			methodNotAllowed(w, op, http.MethodPost)
			return
		}
		p, err := h.deps.SwitchActiveParticipant(r.Context(), segs[0])
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	default:
		http.NotFound(w, r)
	}
}

func (h *ParticipantsHandler) handleOne(w http.ResponseWriter, r *http.Request, op, id string) {
	switch r.Method {
	case http.MethodGet:
		var (
			p   model.Participant
			err error
		)
		if id == "active" {
			p, err = h.deps.ActiveParticipant(r.Context())
		} else {
			p, err = h.deps.Participant(r.Context(), id)
		}
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodPatch:
		var req participantRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		p, err := h.deps.UpdateParticipant(r.Context(), id, registry.Patch{Name: req.Name, Age: req.Age, Photo: req.Photo})
		if err != nil {
			writeFailure(w, op, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	case http.MethodDelete:
		if err := h.deps.DeleteParticipant(r.Context(), id); err != nil {
			writeFailure(w, op, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, op, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
