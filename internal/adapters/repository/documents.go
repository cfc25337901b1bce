package repository

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/okian/traineval/internal/domain/model"
)

// Schema versions of persisted documents.
const (
	// SchemaVersionScalar stores one number per competency.
	SchemaVersionScalar = 1
	// SchemaVersionTriple stores three sub-scores per competency.
	SchemaVersionTriple = 2
	// CurrentSchemaVersion is stamped on every write.
	CurrentSchemaVersion = SchemaVersionTriple
)

type trainingDoc struct {
	SchemaVersion int `json:"schemaVersion"`
	model.TrainingRecord
}

type participantsDoc struct {
	SchemaVersion int                 `json:"schemaVersion"`
	Participants  []model.Participant `json:"participants"`
}

type activeDoc struct {
	SchemaVersion int    `json:"schemaVersion"`
	ParticipantID string `json:"participantId"`
}

// storedDay is a daily evaluation as found on disk. Scores stay raw until
// the document version is known.
type storedDay struct {
	Day     int                        `json:"day"`
	Present *bool                      `json:"present"`
	Scores  map[string]json.RawMessage `json:"scores"`
	Date    string                     `json:"date,omitempty"`
}

type evaluationsDoc struct {
	SchemaVersion int         `json:"schemaVersion"`
	Evaluations   []storedDay `json:"evaluations"`
}

type currentEvaluationsDoc struct {
	SchemaVersion int                     `json:"schemaVersion"`
	Evaluations   []model.DailyEvaluation `json:"evaluations"`
}

// decodeDays converts stored days into the current model. keys maps stored
// competency keys to the taxonomy; unknown keys are ignored and missing
// competencies score zero.
func decodeDays(days []storedDay, version int, keys map[string]model.Competency) ([]model.DailyEvaluation, error) {
	out := make([]model.DailyEvaluation, 0, len(days))
	for i, d := range days {
		e := model.NewDailyEvaluation(i + 1)
		if d.Present != nil {
			e.Present = *d.Present
		}
		e.Date = d.Date
		for k, raw := range d.Scores {
			c, ok := keys[k]
			if !ok {
				continue
			}
			triple, err := decodeTriple(raw, version)
			if err != nil {
				return nil, fmt.Errorf("day %d %s: %w", i+1, k, err)
			}
			e.Scores.Set(c, triple)
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeTriple(raw json.RawMessage, version int) (model.SubtopicScores, error) {
	if version == SchemaVersionScalar {
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			return model.SubtopicScores{}, err
		}
		return MigrateScalar(v), nil
	}
	var vals []float64
	if err := json.Unmarshal(raw, &vals); err != nil {
		return model.SubtopicScores{}, err
	}
	var out model.SubtopicScores
	for pos := 0; pos < model.SubtopicCount && pos < len(vals); pos++ {
		out[pos] = model.ClampScore(int(math.Round(vals[pos])))
	}
	return out, nil
}

func competencyKeys() map[string]model.Competency {
	out := make(map[string]model.Competency, len(model.Competencies()))
	for _, c := range model.Competencies() {
		out[string(c)] = c
	}
	return out
}
