package model

// SubtopicScores holds the three positional sub-scores of a competency.
type SubtopicScores [SubtopicCount]int

// Values returns the sub-scores as floats for averaging.
func (s SubtopicScores) Values() []float64 {
	return []float64{float64(s[0]), float64(s[1]), float64(s[2])}
}

// Clamped returns s with every sub-score bounded to [MinScore, MaxScore].
func (s SubtopicScores) Clamped() SubtopicScores {
	for i := range s {
		s[i] = ClampScore(s[i])
	}
	return s
}

// Uniform returns a triple with v in every position.
func Uniform(v int) SubtopicScores {
	return SubtopicScores{v, v, v}
}

// Scores is the 6x3 score matrix of one training day. Every competency is
// always present.
type Scores struct {
	Safety          SubtopicScores `json:"safety"`
	Technical       SubtopicScores `json:"technical"`
	Communication   SubtopicScores `json:"communication"`
	PhysicalFitness SubtopicScores `json:"physical-fitness"`
	Leadership      SubtopicScores `json:"leadership"`
	Operational     SubtopicScores `json:"operational"`
}

func (s *Scores) slot(c Competency) *SubtopicScores {
	switch c {
	case Safety:
		return &s.Safety
	case Technical:
		return &s.Technical
	case Communication:
		return &s.Communication
	case PhysicalFitness:
		return &s.PhysicalFitness
	case Leadership:
		return &s.Leadership
	case Operational:
		return &s.Operational
	}
	return nil
}

// Get returns the sub-scores for c. Unknown competencies yield zeros.
func (s Scores) Get(c Competency) SubtopicScores {
	if p := s.slot(c); p != nil {
		return *p
	}
	return SubtopicScores{}
}

// Set replaces the sub-scores for c. It reports false for unknown competencies.
func (s *Scores) Set(c Competency, v SubtopicScores) bool {
	p := s.slot(c)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// SetCell writes a single clamped sub-score. It reports false when c or pos is invalid.
func (s *Scores) SetCell(c Competency, pos, value int) bool {
	p := s.slot(c)
	if p == nil || pos < 0 || pos >= SubtopicCount {
		return false
	}
	p[pos] = ClampScore(value)
	return true
}

// Clamp bounds every sub-score of every competency in place.
func (s *Scores) Clamp() {
	for _, c := range competencies {
		p := s.slot(c)
		*p = p.Clamped()
	}
}

// AnyNonZero reports whether at least one sub-score is above zero.
func (s Scores) AnyNonZero() bool {
	for _, c := range competencies {
		for _, v := range s.Get(c) {
			if v > 0 {
				return true
			}
		}
	}
	return false
}

// DailyEvaluation is one training day: attendance plus the score matrix.
// Day always equals 1 + its position in the owning sequence.
type DailyEvaluation struct {
	Day     int    `json:"day"`
	Present bool   `json:"present"`
	Scores  Scores `json:"scores"`
	// Date is a display label derived from the training start date.
	Date string `json:"date,omitempty"`
}

// NewDailyEvaluation returns an unscored day marked present.
func NewDailyEvaluation(day int) DailyEvaluation {
	return DailyEvaluation{Day: day, Present: true}
}

// CloneEvaluations returns a copy of evals that shares no memory with it.
func CloneEvaluations(evals []DailyEvaluation) []DailyEvaluation {
	if evals == nil {
		return nil
	}
	out := make([]DailyEvaluation, len(evals))
	copy(out, evals)
	return out
}

// NormalizeEvaluations renumbers evals by position and clamps every
// sub-score. Use it on evaluations read from outside the process.
func NormalizeEvaluations(evals []DailyEvaluation) {
	for i := range evals {
		evals[i].Day = i + 1
		evals[i].Scores.Clamp()
	}
}
