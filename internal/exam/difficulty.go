package exam

// Difficulty is an empirical difficulty tier derived from a question's
// population-wide correct-rate.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

var difficultyNames = map[Difficulty]string{
	DifficultyEasy:   "easy",
	DifficultyMedium: "medium",
	DifficultyHard:   "hard",
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// Difficulty cut points over the correct-rate: at or above easyCut the
// question is easy, below hardCut it is hard, medium in between.
const (
	easyCut = 0.70
	hardCut = 0.30
)

// difficultyFor buckets a correct-rate into a tier. A question with no
// population data yet deliberately defaults to medium rather than to either
// extreme.
func difficultyFor(correctRate *float64) Difficulty {
	if correctRate == nil {
		return DifficultyMedium
	}
	switch {
	case *correctRate >= easyCut:
		return DifficultyEasy
	case *correctRate < hardCut:
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// QuestionBreakdown is one question annotated with its difficulty tier and
// the student's outcome on it.
type QuestionBreakdown struct {
	Number      int        `json:"number"`
	Area        Area       `json:"area"`
	Label       string     `json:"label,omitempty"`
	CorrectRate *float64   `json:"correct_rate,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
	Answer      string     `json:"answer,omitempty"`
	Expected    string     `json:"expected"`
	Answered    bool       `json:"answered"`
	Correct     bool       `json:"correct"`
}

// TierTotals counts a student's outcomes within one difficulty tier.
type TierTotals struct {
	Total   int `json:"total"`
	Correct int `json:"correct"`
	Wrong   int `json:"wrong"`
}

// Breakdown is the full stratification of an exam for one student.
type Breakdown struct {
	Questions []QuestionBreakdown       `json:"questions"`
	Totals    map[Difficulty]TierTotals `json:"totals"`
	Wrong     []QuestionBreakdown       `json:"wrong"`
}

// Stratify buckets every question into a difficulty tier from its empirical
// correct-rate and scores the student's answers against the key. Questions,
// key and answers are positionally aligned; a missing or empty answer counts
// as wrong and is flagged unanswered. Wrong holds the review list: every
// question the student did not get right, in exam order.
func Stratify(stats []QuestionStat, key []string, answers []string) Breakdown {
	b := Breakdown{
		Questions: make([]QuestionBreakdown, 0, len(stats)),
		Totals:    make(map[Difficulty]TierTotals),
	}

	for i, q := range stats {
		var expected, answer string
		if i < len(key) {
			expected = key[i]
		}
		if i < len(answers) {
			answer = answers[i]
		}

		qb := QuestionBreakdown{
			Number:      q.Number,
			Area:        q.Area,
			Label:       q.Label,
			CorrectRate: q.CorrectRate,
			Difficulty:  difficultyFor(q.CorrectRate),
			Answer:      answer,
			Expected:    expected,
			Answered:    answer != "",
			Correct:     answer != "" && answer == expected,
		}
		b.Questions = append(b.Questions, qb)

		totals := b.Totals[qb.Difficulty]
		totals.Total++
		if qb.Correct {
			totals.Correct++
		} else {
			totals.Wrong++
		}
		b.Totals[qb.Difficulty] = totals

		if !qb.Correct {
			b.Wrong = append(b.Wrong, qb)
		}
	}

	return b
}
