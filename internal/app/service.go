// Package service provides the evaluation service: the single writer of
// training state, used by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/traineval/internal/adapters/repository"
	"github.com/okian/traineval/internal/domain/evaluation"
	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/internal/domain/registry"
	"github.com/okian/traineval/pkg/logger"
	"github.com/okian/traineval/pkg/metrics"
)

// DefaultShareOrigin is used for share links when no origin is configured.
const DefaultShareOrigin = "http://localhost:8080"

// legacyParticipantName names an imported legacy candidate that had no name.
const legacyParticipantName = registry.PlaceholderName

// TrainingPatch carries optional training changes; nil fields are left alone.
// The day count is applied before the dates.
type TrainingPatch struct {
	Name         *string      `json:"name,omitempty"`
	Location     *string      `json:"location,omitempty"`
	Instructors  *string      `json:"instructors,omitempty"`
	Organization *string      `json:"organization,omitempty"`
	Logo         *string      `json:"logo,omitempty"`
	Theme        *model.Theme `json:"theme,omitempty"`
	DayCount     *int         `json:"dayCount,omitempty"`
	StartDate    *string      `json:"startDate,omitempty"`
	EndDate      *string      `json:"endDate,omitempty"`
}

// Service owns the training record, the participant registry and the active
// participant's evaluations. Every mutation is written through to the
// repository before it returns.
type Service struct {
	mu sync.RWMutex

	// Core components
	repo         *repository.Repository
	registry     *registry.Registry
	registryOpts []registry.Option

	// State
	training model.TrainingRecord
	active   string
	evals    []model.DailyEvaluation
	started  bool

	// Configuration
	maxDays     int
	shareOrigin string

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		training:    model.DefaultTrainingRecord(),
		maxDays:     model.DefaultMaxDays,
		shareOrigin: DefaultShareOrigin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads persisted state, importing the legacy record on first run.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.repo == nil {
		s.repo = repository.New(repository.NewMemoryStorage(),
			repository.WithLogger(s.logger),
			repository.WithMaxDays(s.maxDays),
		)
	}
	s.registry = registry.New(s.registryOpts...)

	s.logger.Info(ctx, "starting evaluation service...")
	if err := s.load(ctx); err != nil {
		return fmt.Errorf("loading state: %w", err)
	}

	s.started = true
	s.updateGauges()
	s.logger.Info(ctx, "evaluation service started",
		logger.Int("participants", s.registry.Len()),
		logger.Int("dayCount", s.training.DayCount),
		logger.Bool("activeParticipant", s.active != ""),
	)
	return nil
}

// Stop marks the service stopped. State is already persisted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "evaluation service stopped")
}

func (s *Service) load(ctx context.Context) error {
	has, err := s.repo.HasTraining(ctx)
	if err != nil {
		return err
	}
	if !has {
		imported, err := s.importLegacy(ctx)
		if err != nil || imported {
			return err
		}
	}

	rec, err := s.repo.LoadTraining(ctx)
	if err != nil {
		return err
	}
	rec.DayCount = model.ClampDayCount(rec.DayCount, s.maxDays)
	rec.TotalHours = model.TotalHours(rec.DayCount)
	s.training = rec

	ps, err := s.repo.LoadParticipants(ctx)
	if err != nil {
		return err
	}
	if err := s.registry.Restore(ps); err != nil {
		s.logger.Warn(ctx, "discarding participant list", logger.Error(err))
		_ = s.registry.Restore(nil)
	}

	active, err := s.repo.LoadActive(ctx)
	if err != nil {
		return err
	}
	if active != "" && !s.registry.Contains(active) {
		s.logger.Warn(ctx, "active participant no longer exists", logger.String("participant", active))
		active = ""
	}
	if active == "" {
		if first, ok := s.registry.First(); ok {
			active = first.ID
		}
	}
	return s.activate(ctx, active)
}

func (s *Service) importLegacy(ctx context.Context) (bool, error) {
	imp, ok, err := s.repo.LoadLegacy(ctx)
	if err != nil || !ok {
		return false, err
	}

	s.training = imp.Training
	name := imp.Candidate.Name
	if name == "" {
		name = legacyParticipantName
	}
	p, err := s.registry.Add(name, imp.Candidate.Age, imp.Candidate.Photo)
	if err != nil {
		return false, err
	}
	if err := s.repo.SaveTraining(ctx, s.training); err != nil {
		return false, err
	}
	if err := s.repo.SaveParticipants(ctx, s.registry.List()); err != nil {
		return false, err
	}
	if err := s.repo.SaveEvaluations(ctx, p.ID, imp.Evaluations); err != nil {
		return false, err
	}
	if err := s.activate(ctx, p.ID); err != nil {
		return false, err
	}
	s.logger.Info(ctx, "imported legacy record",
		logger.String("participant", p.ID),
		logger.Int("days", len(imp.Evaluations)),
		logger.Bool("migrated", imp.Migrated),
	)
	return true, nil
}

// activate makes id the active participant, reconciling its stored
// evaluations with the current training. An empty id clears the pointer.
func (s *Service) activate(ctx context.Context, id string) error {
	if id == "" {
		if err := s.repo.SaveActive(ctx, ""); err != nil {
			return err
		}
		s.active, s.evals = "", nil
		return nil
	}
	stored, err := s.repo.LoadEvaluations(ctx, id)
	if err != nil {
		return err
	}
	evals := evaluation.Reconcile(stored, s.training.DayCount, s.training.StartDate)
	if err := s.repo.SaveEvaluations(ctx, id, evals); err != nil {
		return err
	}
	if err := s.repo.SaveActive(ctx, id); err != nil {
		return err
	}
	s.active, s.evals = id, evals
	return nil
}

func (s *Service) updateGauges() {
	metrics.UpdateParticipants(s.registry.Len())
	metrics.UpdateEvaluationDays(s.training.DayCount)
}

func (s *Service) trainingView() model.TrainingRecord {
	rec := s.training
	if rec.Theme != nil {
		theme := *rec.Theme
		rec.Theme = &theme
	}
	rec.ActiveParticipantID = s.active
	return rec
}

// Training returns the training record with the active participant id.
func (s *Service) Training(_ context.Context) (model.TrainingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return model.TrainingRecord{}, ErrNotStarted
	}
	return s.trainingView(), nil
}

// UpdateTraining applies patch and persists the training record and, when a
// participant is active, its reconciled evaluations.
func (s *Service) UpdateTraining(ctx context.Context, patch TrainingPatch) (model.TrainingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return model.TrainingRecord{}, ErrNotStarted
	}

	rec := s.trainingView()
	evals := model.CloneEvaluations(s.evals)
	setString(&rec.Name, patch.Name)
	setString(&rec.Location, patch.Location)
	setString(&rec.Instructors, patch.Instructors)
	setString(&rec.Organization, patch.Organization)
	setString(&rec.Logo, patch.Logo)
	if patch.Theme != nil {
		if patch.Theme.IsZero() {
			rec.Theme = nil
		} else {
			theme := *patch.Theme
			rec.Theme = &theme
		}
	}
	if patch.DayCount != nil {
		evals = evaluation.SetDayCount(&rec, evals, *patch.DayCount, s.maxDays)
	}
	if patch.StartDate != nil {
		var err error
		if evals, err = evaluation.SetStartDate(&rec, evals, *patch.StartDate); err != nil {
			return model.TrainingRecord{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	if patch.EndDate != nil {
		if err := evaluation.SetEndDate(&rec, *patch.EndDate); err != nil {
			return model.TrainingRecord{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}

	if err := s.repo.SaveTraining(ctx, rec); err != nil {
		return model.TrainingRecord{}, err
	}
	s.training = rec
	if s.active != "" {
		if err := s.repo.SaveEvaluations(ctx, s.active, evals); err != nil {
			return model.TrainingRecord{}, err
		}
		s.evals = evals
	}

	metrics.RecordMutation("update_training")
	s.updateGauges()
	s.logger.Debug(ctx, "training updated", logger.Int("dayCount", rec.DayCount))
	return s.trainingView(), nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// SetDayCount resizes the training; see evaluation.SetDayCount.
func (s *Service) SetDayCount(ctx context.Context, n int) (model.TrainingRecord, error) {
	return s.UpdateTraining(ctx, TrainingPatch{DayCount: &n})
}

// SetStartDate sets or clears the start date.
func (s *Service) SetStartDate(ctx context.Context, date string) (model.TrainingRecord, error) {
	return s.UpdateTraining(ctx, TrainingPatch{StartDate: &date})
}

// SetEndDate sets or clears the end date only.
func (s *Service) SetEndDate(ctx context.Context, date string) (model.TrainingRecord, error) {
	return s.UpdateTraining(ctx, TrainingPatch{EndDate: &date})
}

// Reset wipes every persisted record and returns to the default training.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}

	if err := s.repo.Reset(ctx); err != nil {
		return err
	}
	s.training = model.DefaultTrainingRecord()
	_ = s.registry.Restore(nil)
	s.active, s.evals = "", nil
	if err := s.repo.SaveTraining(ctx, s.training); err != nil {
		return err
	}

	metrics.RecordMutation("reset")
	s.updateGauges()
	s.logger.Info(ctx, "state reset to defaults")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"maxDays":     s.maxDays,
		"shareOrigin": s.shareOrigin,
	}
	if s.started {
		stats["participants"] = s.registry.Len()
		stats["dayCount"] = s.training.DayCount
		stats["activeParticipant"] = s.active
		stats["evaluationDays"] = len(s.evals)
		s.updateGauges()
	}
	return stats
}
