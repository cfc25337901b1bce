// Package registry keeps the ordered list of participants under evaluation.
package registry

import (
	"fmt"
	"strings"

	"github.com/okian/traineval/internal/domain/model"
)

// Patch carries optional participant changes; nil fields are left alone.
type Patch struct {
	Name  *string `json:"name,omitempty"`
	Age   *int    `json:"age,omitempty"`
	Photo *string `json:"photo,omitempty"`
}

// Registry is an insertion-ordered participant collection. It is not safe
// for concurrent use; callers serialise access.
type Registry struct {
	participants []model.Participant
	newID        func() string
}

// New returns an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{newID: defaultID}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlaceholderName stands in for a stored participant whose name is blank,
// so the entry and its evaluations stay reachable.
const PlaceholderName = "Participant"

// Restore replaces the contents with ps, dropping entries without an id and
// normalising names and ages. Repeated ids are rejected.
func (r *Registry) Restore(ps []model.Participant) error {
	seen := make(map[string]struct{}, len(ps))
	out := make([]model.Participant, 0, len(ps))
	for _, p := range ps {
		if p.ID == "" {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		seen[p.ID] = struct{}{}
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			p.Name = PlaceholderName
		}
		p.Age = model.ClampAge(p.Age)
		out = append(out, p)
	}
	r.participants = out
	return nil
}

// Add creates a participant with a fresh id and appends it.
func (r *Registry) Add(name string, age int, photo string) (model.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Participant{}, ErrInvalidName
	}
	p := model.Participant{
		ID:    r.newID(),
		Name:  name,
		Age:   model.ClampAge(age),
		Photo: photo,
	}
	r.participants = append(r.participants, p)
	return p, nil
}

func (r *Registry) index(id string) int {
	for i, p := range r.participants {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Get looks a participant up by id.
func (r *Registry) Get(id string) (model.Participant, bool) {
	i := r.index(id)
	if i < 0 {
		return model.Participant{}, false
	}
	return r.participants[i], true
}

// Contains reports whether id is registered.
func (r *Registry) Contains(id string) bool {
	return r.index(id) >= 0
}

// Update applies patch to the participant with id. The participant is left
// unchanged when the patch is invalid.
func (r *Registry) Update(id string, patch Patch) (model.Participant, error) {
	i := r.index(id)
	if i < 0 {
		return model.Participant{}, fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	p := r.participants[i]
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return model.Participant{}, ErrInvalidName
		}
		p.Name = name
	}
	if patch.Age != nil {
		p.Age = model.ClampAge(*patch.Age)
	}
	if patch.Photo != nil {
		p.Photo = *patch.Photo
	}
	r.participants[i] = p
	return p, nil
}

// Remove deletes the participant with id, keeping the order of the rest.
func (r *Registry) Remove(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrParticipantNotFound, id)
	}
	r.participants = append(r.participants[:i], r.participants[i+1:]...)
	return nil
}

// List returns a copy of the participants in insertion order.
func (r *Registry) List() []model.Participant {
	out := make([]model.Participant, len(r.participants))
	copy(out, r.participants)
	return out
}

// First returns the earliest registered participant.
func (r *Registry) First() (model.Participant, bool) {
	if len(r.participants) == 0 {
		return model.Participant{}, false
	}
	return r.participants[0], true
}

// Len returns the number of participants.
func (r *Registry) Len() int {
	return len(r.participants)
}
