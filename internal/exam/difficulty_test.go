package exam_test

import (
	"testing"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
)

func TestStratify_CutPoints(t *testing.T) {
	stats := []exam.QuestionStat{
		{Number: 1, Area: exam.AreaMatematica, CorrectRate: score(0.90)},
		{Number: 2, Area: exam.AreaMatematica, CorrectRate: score(0.50)},
		{Number: 3, Area: exam.AreaMatematica, CorrectRate: score(0.10)},
	}

	b := exam.Stratify(stats, []string{"A", "B", "C"}, []string{"A", "B", "C"})

	want := []exam.Difficulty{exam.DifficultyEasy, exam.DifficultyMedium, exam.DifficultyHard}
	for i, q := range b.Questions {
		if q.Difficulty != want[i] {
			t.Errorf("question %d difficulty = %v, want %v", q.Number, q.Difficulty, want[i])
		}
	}
}

func TestStratify_CutPointEdges(t *testing.T) {
	tests := []struct {
		name string
		rate *float64
		want exam.Difficulty
	}{
		{"at-easy-cut", score(0.70), exam.DifficultyEasy},
		{"just-below-easy-cut", score(0.69), exam.DifficultyMedium},
		{"at-hard-cut", score(0.30), exam.DifficultyMedium},
		{"just-below-hard-cut", score(0.29), exam.DifficultyHard},
		{"no-population-data", nil, exam.DifficultyMedium},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := []exam.QuestionStat{{Number: 1, CorrectRate: tt.rate}}
			b := exam.Stratify(stats, []string{"A"}, []string{"A"})
			if got := b.Questions[0].Difficulty; got != tt.want {
				t.Errorf("difficulty = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStratify_TierTotals(t *testing.T) {
	stats := []exam.QuestionStat{
		{Number: 1, CorrectRate: score(0.90)},
		{Number: 2, CorrectRate: score(0.80)},
		{Number: 3, CorrectRate: score(0.50)},
		{Number: 4, CorrectRate: score(0.10)},
	}
	key := []string{"A", "B", "C", "D"}
	answers := []string{"A", "E", "C", ""}

	b := exam.Stratify(stats, key, answers)

	easy := b.Totals[exam.DifficultyEasy]
	if easy.Total != 2 || easy.Correct != 1 || easy.Wrong != 1 {
		t.Errorf("easy totals = %+v, want {2 1 1}", easy)
	}
	medium := b.Totals[exam.DifficultyMedium]
	if medium.Total != 1 || medium.Correct != 1 {
		t.Errorf("medium totals = %+v, want total 1 correct 1", medium)
	}
	hard := b.Totals[exam.DifficultyHard]
	if hard.Total != 1 || hard.Wrong != 1 {
		t.Errorf("hard totals = %+v, want total 1 wrong 1", hard)
	}
}

func TestStratify_WrongList(t *testing.T) {
	stats := []exam.QuestionStat{
		{Number: 1, Area: exam.AreaLinguagens, Label: "interpretacao", CorrectRate: score(0.90)},
		{Number: 2, Area: exam.AreaLinguagens, Label: "gramatica", CorrectRate: score(0.20)},
		{Number: 3, Area: exam.AreaLinguagens, Label: "literatura", CorrectRate: score(0.60)},
	}

	b := exam.Stratify(stats, []string{"A", "B", "C"}, []string{"A", "D", ""})

	if len(b.Wrong) != 2 {
		t.Fatalf("len(Wrong) = %d, want 2", len(b.Wrong))
	}
	if b.Wrong[0].Number != 2 || b.Wrong[0].Difficulty != exam.DifficultyHard {
		t.Errorf("Wrong[0] = %+v, want question 2 hard", b.Wrong[0])
	}
	if b.Wrong[1].Number != 3 || b.Wrong[1].Answered {
		t.Errorf("Wrong[1] = %+v, want question 3 unanswered", b.Wrong[1])
	}
}

func TestStratify_ShortAnswerSheet(t *testing.T) {
	// A student who stopped early still gets a full breakdown; the missing
	// tail counts as wrong and unanswered.
	stats := []exam.QuestionStat{
		{Number: 1, CorrectRate: score(0.50)},
		{Number: 2, CorrectRate: score(0.50)},
	}

	b := exam.Stratify(stats, []string{"A", "B"}, []string{"A"})

	if len(b.Questions) != 2 {
		t.Fatalf("len(Questions) = %d, want 2", len(b.Questions))
	}
	if b.Questions[1].Answered {
		t.Error("question 2 should be unanswered")
	}
	if b.Questions[1].Correct {
		t.Error("question 2 should not be correct")
	}
}
