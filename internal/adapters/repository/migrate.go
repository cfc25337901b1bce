package repository

import (
	"encoding/json"
	"math"

	"github.com/okian/traineval/internal/domain/model"
)

// DefaultLegacyKey is the combined single-participant record written by the
// first release.
const DefaultLegacyKey = "adventure-training-eval-v1"

// legacySafetyKey is the combined record's key for model.Safety.
const legacySafetyKey = "seguranca"

// legacyCompetencyKeys maps the combined record's competency keys.
var legacyCompetencyKeys = map[string]model.Competency{
	"seguranca":     model.Safety,
	"tecnica":       model.Technical,
	"comunicacao":   model.Communication,
	"aptidaoFisica": model.PhysicalFitness,
	"lideranca":     model.Leadership,
	"operacional":   model.Operational,
}

// IsLegacyShape reports whether a document written at version must be
// upcast before use.
func IsLegacyShape(version int) bool {
	return version < CurrentSchemaVersion
}

// MigrateScalar replicates a legacy single score into every sub-score, so
// the old competency score survives as the new uniform average.
func MigrateScalar(v float64) model.SubtopicScores {
	return model.Uniform(model.ClampScore(int(math.Round(v))))
}

// resolveVersion returns the declared version of a document, or for an
// unversioned document the version implied by the safety score of the
// earliest day that carries one. safetyKey is the stored key of that
// competency. It is only consulted once; the document is stamped on the
// next write.
func resolveVersion(declared int, days []storedDay, safetyKey string) int {
	if declared > 0 {
		return declared
	}
	for _, d := range days {
		raw, ok := d.Scores[safetyKey]
		if !ok {
			continue
		}
		if isJSONNumber(raw) {
			return SchemaVersionScalar
		}
		return SchemaVersionTriple
	}
	return CurrentSchemaVersion
}

func isJSONNumber(raw json.RawMessage) bool {
	var n json.Number
	return json.Unmarshal(raw, &n) == nil
}

type legacyCandidate struct {
	Name  string `json:"nome"`
	Age   int    `json:"idade,omitempty"`
	Photo string `json:"fotoBase64,omitempty"`
}

type legacyDay struct {
	Day     int                        `json:"dia"`
	Present *bool                      `json:"presente"`
	Scores  map[string]json.RawMessage `json:"pontuacoes"`
	Date    string                     `json:"data,omitempty"`
}

// legacyRecord is the combined training+candidate+evaluations document.
type legacyRecord struct {
	TrainingName string          `json:"nomeTreinamento"`
	Location     string          `json:"local"`
	DayCount     int             `json:"dias"`
	TotalHours   int             `json:"totalHoras"`
	Candidate    legacyCandidate `json:"candidato"`
	Logo         string          `json:"logoBase64,omitempty"`
	Evaluations  []legacyDay     `json:"avaliacoes"`
	Theme        *model.Theme    `json:"tema,omitempty"`
}

// LegacyImport is the state recovered from a combined legacy record.
type LegacyImport struct {
	Training    model.TrainingRecord
	Candidate   model.Participant
	Evaluations []model.DailyEvaluation
	// Migrated is true when scalar scores were upcast.
	Migrated bool
}

func (l legacyRecord) days() []storedDay {
	out := make([]storedDay, 0, len(l.Evaluations))
	for _, d := range l.Evaluations {
		out = append(out, storedDay{Day: d.Day, Present: d.Present, Scores: d.Scores, Date: d.Date})
	}
	return out
}

func parseLegacy(raw []byte, maxDays int) (LegacyImport, error) {
	var rec legacyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return LegacyImport{}, err
	}
	days := rec.days()
	version := resolveVersion(0, days, legacySafetyKey)
	evals, err := decodeDays(days, version, legacyCompetencyKeys)
	if err != nil {
		return LegacyImport{}, err
	}

	training := model.DefaultTrainingRecord()
	training.Name = rec.TrainingName
	training.Location = rec.Location
	dayCount := rec.DayCount
	if dayCount < 1 {
		dayCount = len(evals)
	}
	training.DayCount = model.ClampDayCount(dayCount, maxDays)
	training.TotalHours = model.TotalHours(training.DayCount)
	training.Logo = rec.Logo
	if rec.Theme != nil && !rec.Theme.IsZero() {
		theme := *rec.Theme
		training.Theme = &theme
	}

	return LegacyImport{
		Training: training,
		Candidate: model.Participant{
			Name:  rec.Candidate.Name,
			Age:   model.ClampAge(rec.Candidate.Age),
			Photo: rec.Candidate.Photo,
		},
		Evaluations: evals,
		Migrated:    IsLegacyShape(version),
	}, nil
}
