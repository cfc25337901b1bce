package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/traineval/internal/domain/evaluation"
	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/pkg/metrics"
)

// Evaluations returns a copy of the active participant's daily evaluations.
func (s *Service) Evaluations(_ context.Context) ([]model.DailyEvaluation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	if s.active == "" {
		return nil, ErrNoActiveParticipant
	}
	return model.CloneEvaluations(s.evals), nil
}

// SetSubscore writes one clamped sub-score of the active participant.
func (s *Service) SetSubscore(ctx context.Context, day int, c model.Competency, pos, value int) (model.DailyEvaluation, error) {
	return s.edit(ctx, "set_subscore", day, func(evals []model.DailyEvaluation) error {
		return evaluation.SetSubscore(evals, day, c, pos, value)
	})
}

// SetScores replaces the sub-score triple of one competency on day.
func (s *Service) SetScores(ctx context.Context, day int, c model.Competency, values model.SubtopicScores) (model.DailyEvaluation, error) {
	return s.edit(ctx, "set_scores", day, func(evals []model.DailyEvaluation) error {
		return evaluation.SetScores(evals, day, c, values)
	})
}

// SetPresence records attendance for day; scores are kept.
func (s *Service) SetPresence(ctx context.Context, day int, present bool) (model.DailyEvaluation, error) {
	return s.edit(ctx, "set_presence", day, func(evals []model.DailyEvaluation) error {
		return evaluation.SetPresence(evals, day, present)
	})
}

// edit applies fn to a copy of the active evaluations and commits it once
// persisted.
func (s *Service) edit(ctx context.Context, op string, day int, fn func([]model.DailyEvaluation) error) (model.DailyEvaluation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.DailyEvaluation{}, ErrNotStarted
	}
	if s.active == "" {
		return model.DailyEvaluation{}, ErrNoActiveParticipant
	}

	evals := model.CloneEvaluations(s.evals)
	if err := fn(evals); err != nil {
		if errors.Is(err, evaluation.ErrUnknownDay) {
			return model.DailyEvaluation{}, err
		}
		return model.DailyEvaluation{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.repo.SaveEvaluations(ctx, s.active, evals); err != nil {
		return model.DailyEvaluation{}, err
	}
	s.evals = evals

	metrics.RecordMutation(op)
	return evals[day-1], nil
}
