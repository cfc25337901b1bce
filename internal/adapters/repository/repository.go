package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/okian/traineval/internal/domain/model"
	"github.com/okian/traineval/pkg/logger"
	"github.com/okian/traineval/pkg/metrics"
)

// Record kinds, used in keys, logs and metric labels.
const (
	RecordTraining     = "training"
	RecordParticipants = "participants"
	RecordActive       = "active-participant"
	RecordEvaluations  = "evaluations"
	RecordLegacy       = "legacy"
)

// Repository reads and writes the independent training records. Unreadable
// documents fall back to their defaults; only storage failures are returned.
type Repository struct {
	storage   Storage
	namespace string
	legacyKey string
	maxDays   int
	log       logger.Logger
}

// New returns a Repository over storage.
func New(storage Storage, opts ...Option) *Repository {
	r := &Repository{
		storage:   storage,
		namespace: DefaultNamespace,
		legacyKey: DefaultLegacyKey,
		maxDays:   model.DefaultMaxDays,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Key returns the namespaced key of a record kind.
func (r *Repository) Key(record string) string {
	return r.namespace + ":" + record
}

// EvaluationsKey returns the key holding one participant's evaluations.
func (r *Repository) EvaluationsKey(participantID string) string {
	return r.Key(RecordEvaluations) + ":" + participantID
}

// LegacyKey returns the key of the combined legacy record.
func (r *Repository) LegacyKey() string {
	return r.legacyKey
}

// read fetches key. found is false when the key is absent.
func (r *Repository) read(ctx context.Context, record, key string) (raw []byte, found bool, err error) {
	raw, err = r.storage.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		metrics.RecordStorageError(record, "get")
		return nil, false, fmt.Errorf("%w: get %s: %v", ErrStorage, key, err)
	}
	return raw, true, nil
}

func (r *Repository) write(ctx context.Context, record, key string, doc any) error {
	start := time.Now()
	raw, err := json.Marshal(doc)
	if err != nil {
		metrics.RecordStorageError(record, "encode")
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, record, err)
	}
	if err := r.storage.Set(ctx, key, raw); err != nil {
		metrics.RecordStorageError(record, "set")
		r.log.Error(ctx, "storage write failed", logger.String("key", key), logger.Error(err))
		return fmt.Errorf("%w: set %s: %v", ErrStorage, key, err)
	}
	metrics.RecordStorageWrite(record, float64(time.Since(start).Milliseconds()))
	return nil
}

func (r *Repository) fallback(ctx context.Context, record, key string, err error) {
	metrics.RecordStorageFallback(record)
	r.log.Warn(ctx, "unreadable record, using defaults",
		logger.String("record", record),
		logger.String("key", key),
		logger.Error(err),
	)
}

// HasTraining reports whether a training record has been written.
func (r *Repository) HasTraining(ctx context.Context) (bool, error) {
	_, found, err := r.read(ctx, RecordTraining, r.Key(RecordTraining))
	return found, err
}

// LoadTraining returns the stored training record, or the default record
// when it is missing or unreadable.
func (r *Repository) LoadTraining(ctx context.Context) (model.TrainingRecord, error) {
	key := r.Key(RecordTraining)
	raw, found, err := r.read(ctx, RecordTraining, key)
	if err != nil || !found {
		return model.DefaultTrainingRecord(), err
	}
	var doc trainingDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.fallback(ctx, RecordTraining, key, err)
		return model.DefaultTrainingRecord(), nil
	}
	rec := doc.TrainingRecord
	rec.DayCount = model.ClampDayCount(rec.DayCount, r.maxDays)
	rec.TotalHours = model.TotalHours(rec.DayCount)
	if doc.SchemaVersion == 0 {
		if err := r.SaveTraining(ctx, rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// SaveTraining writes the training record.
func (r *Repository) SaveTraining(ctx context.Context, rec model.TrainingRecord) error {
	return r.write(ctx, RecordTraining, r.Key(RecordTraining), trainingDoc{
		SchemaVersion:  CurrentSchemaVersion,
		TrainingRecord: rec,
	})
}

// LoadParticipants returns the stored participant list, empty when missing
// or unreadable.
func (r *Repository) LoadParticipants(ctx context.Context) ([]model.Participant, error) {
	key := r.Key(RecordParticipants)
	raw, found, err := r.read(ctx, RecordParticipants, key)
	if err != nil || !found {
		return []model.Participant{}, err
	}
	var doc participantsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.fallback(ctx, RecordParticipants, key, err)
		return []model.Participant{}, nil
	}
	if doc.Participants == nil {
		doc.Participants = []model.Participant{}
	}
	return doc.Participants, nil
}

// SaveParticipants writes the participant list.
func (r *Repository) SaveParticipants(ctx context.Context, ps []model.Participant) error {
	if ps == nil {
		ps = []model.Participant{}
	}
	return r.write(ctx, RecordParticipants, r.Key(RecordParticipants), participantsDoc{
		SchemaVersion: CurrentSchemaVersion,
		Participants:  ps,
	})
}

// LoadActive returns the active participant id, empty when unset.
func (r *Repository) LoadActive(ctx context.Context) (string, error) {
	key := r.Key(RecordActive)
	raw, found, err := r.read(ctx, RecordActive, key)
	if err != nil || !found {
		return "", err
	}
	var doc activeDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.fallback(ctx, RecordActive, key, err)
		return "", nil
	}
	return strings.TrimSpace(doc.ParticipantID), nil
}

// SaveActive writes the active participant id. An empty id removes the key.
func (r *Repository) SaveActive(ctx context.Context, id string) error {
	key := r.Key(RecordActive)
	if id == "" {
		return r.remove(ctx, RecordActive, key)
	}
	return r.write(ctx, RecordActive, key, activeDoc{SchemaVersion: CurrentSchemaVersion, ParticipantID: id})
}

// LoadEvaluations returns a participant's stored evaluations, migrating
// legacy scalar scores. Missing or unreadable blobs yield nil.
func (r *Repository) LoadEvaluations(ctx context.Context, participantID string) ([]model.DailyEvaluation, error) {
	key := r.EvaluationsKey(participantID)
	raw, found, err := r.read(ctx, RecordEvaluations, key)
	if err != nil || !found {
		return nil, err
	}
	var doc evaluationsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		r.fallback(ctx, RecordEvaluations, key, err)
		return nil, nil
	}
	version := resolveVersion(doc.SchemaVersion, doc.Evaluations, string(model.Safety))
	evals, err := decodeDays(doc.Evaluations, version, competencyKeys())
	if err != nil {
		r.fallback(ctx, RecordEvaluations, key, err)
		return nil, nil
	}
	if doc.SchemaVersion == CurrentSchemaVersion {
		return evals, nil
	}
	if IsLegacyShape(version) {
		metrics.RecordLegacyMigration()
		r.log.Info(ctx, "migrated scalar scores",
			logger.String("participant", participantID),
			logger.Int("days", len(evals)),
		)
	}
	if err := r.SaveEvaluations(ctx, participantID, evals); err != nil {
		return evals, err
	}
	return evals, nil
}

// SaveEvaluations writes a participant's evaluations.
func (r *Repository) SaveEvaluations(ctx context.Context, participantID string, evals []model.DailyEvaluation) error {
	if evals == nil {
		evals = []model.DailyEvaluation{}
	}
	return r.write(ctx, RecordEvaluations, r.EvaluationsKey(participantID), currentEvaluationsDoc{
		SchemaVersion: CurrentSchemaVersion,
		Evaluations:   evals,
	})
}

// DeleteEvaluations discards a participant's evaluations.
func (r *Repository) DeleteEvaluations(ctx context.Context, participantID string) error {
	return r.remove(ctx, RecordEvaluations, r.EvaluationsKey(participantID))
}

func (r *Repository) remove(ctx context.Context, record, key string) error {
	if err := r.storage.Delete(ctx, key); err != nil {
		metrics.RecordStorageError(record, "delete")
		return fmt.Errorf("%w: delete %s: %v", ErrStorage, key, err)
	}
	return nil
}

// LoadLegacy reads the combined legacy record. ok is false when there is
// nothing to import or the record is unreadable. The record is left in place.
func (r *Repository) LoadLegacy(ctx context.Context) (imp LegacyImport, ok bool, err error) {
	raw, found, err := r.read(ctx, RecordLegacy, r.legacyKey)
	if err != nil || !found {
		return LegacyImport{}, false, err
	}
	imp, err = parseLegacy(raw, r.maxDays)
	if err != nil {
		r.fallback(ctx, RecordLegacy, r.legacyKey, err)
		return LegacyImport{}, false, nil
	}
	if imp.Migrated {
		metrics.RecordLegacyMigration()
	}
	return imp, true, nil
}

// Reset deletes every namespaced key and the legacy record.
func (r *Repository) Reset(ctx context.Context) error {
	keys, err := r.storage.Keys(ctx, r.namespace+":")
	if err != nil {
		metrics.RecordStorageError("all", "keys")
		return fmt.Errorf("%w: list keys: %v", ErrStorage, err)
	}
	keys = append(keys, r.legacyKey)
	for _, k := range keys {
		if err := r.remove(ctx, "all", k); err != nil {
			return err
		}
	}
	r.log.Info(ctx, "storage reset", logger.Int("keys", len(keys)))
	return nil
}
