package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/registry"
	"github.com/okian/traineval/pkg/logger"
	"github.com/okian/traineval/pkg/metrics"
)

// Participants lists the registered participants in insertion order.
func (s *Service) Participants(_ context.Context) ([]model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.registry.List(), nil
}

// Participant returns one participant by id.
func (s *Service) Participant(_ context.Context, id string) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.Participant{}, ErrNotStarted
	}
	p, ok := s.registry.Get(id)
	if !ok {
		return model.Participant{}, fmt.Errorf("%w: %s", registry.ErrParticipantNotFound, id)
	}
	return p, nil
}

// ActiveParticipant returns the participant currently being evaluated.
func (s *Service) ActiveParticipant(_ context.Context) (model.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.Participant{}, ErrNotStarted
	}
	return s.activeParticipant()
}

func (s *Service) activeParticipant() (model.Participant, error) {
	if s.active == "" {
		return model.Participant{}, ErrNoActiveParticipant
	}
	p, ok := s.registry.Get(s.active)
	if !ok {
		return model.Participant{}, ErrNoActiveParticipant
	}
	return p, nil
}

// AddParticipant registers a participant. The first participant added while
// none is active becomes active.
func (s *Service) AddParticipant(ctx context.Context, name string, age int, photo string) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Participant{}, ErrNotStarted
	}

	prev := s.registry.List()
	p, err := s.registry.Add(name, age, photo)
	if err != nil {
		return model.Participant{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.repo.SaveParticipants(ctx, s.registry.List()); err != nil {
		_ = s.registry.Restore(prev)
		return model.Participant{}, err
	}
	if s.active == "" {
		if err := s.activate(ctx, p.ID); err != nil {
			return p, err
		}
	}

	metrics.RecordMutation("add_participant")
	s.updateGauges()
	s.logger.Info(ctx, "participant added", logger.String("participant", p.ID))
	return p, nil
}

// UpdateParticipant applies patch to a participant.
func (s *Service) UpdateParticipant(ctx context.Context, id string, patch registry.Patch) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Participant{}, ErrNotStarted
	}

	prev := s.registry.List()
	p, err := s.registry.Update(id, patch)
	if err != nil {
		if errors.Is(err, registry.ErrInvalidName) {
			return model.Participant{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return model.Participant{}, err
	}
	if err := s.repo.SaveParticipants(ctx, s.registry.List()); err != nil {
		_ = s.registry.Restore(prev)
		return model.Participant{}, err
	}

	metrics.RecordMutation("update_participant")
	return p, nil
}

// DeleteParticipant removes a participant and discards its evaluations.
// Deleting the active participant moves the pointer to the first remaining
// participant, or clears it.
func (s *Service) DeleteParticipant(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	prev := s.registry.List()
	if err := s.registry.Remove(id); err != nil {
		return err
	}
	if err := s.repo.SaveParticipants(ctx, s.registry.List()); err != nil {
		_ = s.registry.Restore(prev)
		return err
	}
	if err := s.repo.DeleteEvaluations(ctx, id); err != nil {
		return err
	}
	if id == s.active {
		next := ""
		if first, ok := s.registry.First(); ok {
			next = first.ID
		}
		if err := s.activate(ctx, next); err != nil {
			return err
		}
	}

	metrics.RecordMutation("delete_participant")
	s.updateGauges()
	s.logger.Info(ctx, "participant deleted", logger.String("participant", id))
	return nil
}

// SwitchActiveParticipant selects the participant to evaluate, reconciling
// its stored evaluations with the current day count and start date.
func (s *Service) SwitchActiveParticipant(ctx context.Context, id string) (model.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.Participant{}, ErrNotStarted
	}

	p, ok := s.registry.Get(id)
	if !ok {
		return model.Participant{}, fmt.Errorf("%w: %s", registry.ErrParticipantNotFound, id)
	}
	if err := s.activate(ctx, id); err != nil {
		return model.Participant{}, err
	}

	metrics.RecordMutation("switch_participant")
	s.logger.Debug(ctx, "active participant switched", logger.String("participant", id))
	return p, nil
}
