// Package model contains the evaluation domain types shared between layers.
package model

// Competency identifies one of the fixed evaluation dimensions.
type Competency string

// The six competencies, in their canonical order.
const (
	Safety          Competency = "safety"
	Technical       Competency = "technical"
	Communication   Competency = "communication"
	PhysicalFitness Competency = "physical-fitness"
	Leadership      Competency = "leadership"
	Operational     Competency = "operational"
)

// Subtopics per competency and the valid sub-score range.
const (
	SubtopicCount = 3
	MinScore      = 0
	MaxScore      = 10
)

var competencies = [...]Competency{Safety, Technical, Communication, PhysicalFitness, Leadership, Operational}

var competencyLabels = map[Competency]string{
	Safety:          "Safety",
	Technical:       "Technical",
	Communication:   "Communication",
	PhysicalFitness: "Physical Fitness",
	Leadership:      "Leadership",
	Operational:     "Operational",
}

var subtopicLabels = map[Competency][SubtopicCount]string{
	Safety:          {"Prevention", "PPE", "Procedures"},
	Technical:       {"Knowledge", "Execution", "Efficiency"},
	Communication:   {"Clarity", "Assertiveness", "Consistency"},
	PhysicalFitness: {"Endurance", "Strength", "Agility"},
	Leadership:      {"Motivation", "Conflict Management", "Decision Making"},
	Operational:     {"Planning", "Rigging", "Operation"},
}

// Competencies returns the competencies in canonical order. The slice is a copy.
func Competencies() []Competency {
	out := make([]Competency, len(competencies))
	copy(out, competencies[:])
	return out
}

// Valid reports whether c is one of the six known competencies.
func (c Competency) Valid() bool {
	_, ok := competencyLabels[c]
	return ok
}

// Label returns the human readable name.
func (c Competency) Label() string {
	if l, ok := competencyLabels[c]; ok {
		return l
	}
	return string(c)
}

// Subtopics returns the labels of the three sub-topics in positional order.
func (c Competency) Subtopics() [SubtopicCount]string {
	return subtopicLabels[c]
}

// ParseCompetency converts a key into a Competency.
func ParseCompetency(s string) (Competency, bool) {
	c := Competency(s)
	return c, c.Valid()
}

// ClampScore bounds a sub-score to [MinScore, MaxScore].
func ClampScore(v int) int {
	switch {
	case v < MinScore:
		return MinScore
	case v > MaxScore:
		return MaxScore
	default:
		return v
	}
}
