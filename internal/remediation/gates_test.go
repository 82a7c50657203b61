package remediation_test

import (
	"testing"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/remediation"
)

func catalog() []remediation.Item {
	return []remediation.Item{
		{ID: "mat-basico", Area: exam.AreaMatematica, Min: 0, Max: 300, Order: 1, Content: "mod/mat/basico"},
		{ID: "mat-intermediario", Area: exam.AreaMatematica, Min: 300, Max: 600, Order: 2, Content: "mod/mat/intermediario"},
		{ID: "mat-avancado", Area: exam.AreaMatematica, Min: 600, Order: 3, Content: "mod/mat/avancado"},
	}
}

func TestResolve(t *testing.T) {
	plan := remediation.Resolve(450, catalog())

	if len(plan.Unlocked) != 1 || plan.Unlocked[0].ID != "mat-intermediario" {
		t.Fatalf("Unlocked = %+v, want exactly mat-intermediario", plan.Unlocked)
	}
	if len(plan.Locked) != 1 || plan.Locked[0].ID != "mat-avancado" {
		t.Fatalf("Locked = %+v, want exactly mat-avancado", plan.Locked)
	}
	if plan.Locked[0].PointsToUnlock != 150 {
		t.Errorf("PointsToUnlock = %v, want 150", plan.Locked[0].PointsToUnlock)
	}
	if plan.Next == nil || plan.Next.Min != 600 || plan.Next.PointsNeeded != 150 {
		t.Errorf("Next = %+v, want min 600 needing 150", plan.Next)
	}
	if plan.Mastered {
		t.Error("Mastered should be false with a locked band remaining")
	}
}

func TestResolve_GateEdges(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		wantUnlocked string
	}{
		{"at-lower-bound", 300, "mat-intermediario"},
		{"just-below-upper-bound", 599.9, "mat-intermediario"},
		{"at-upper-bound", 600, "mat-avancado"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := remediation.Resolve(tt.score, catalog())
			if len(plan.Unlocked) != 1 || plan.Unlocked[0].ID != tt.wantUnlocked {
				t.Errorf("Unlocked = %+v, want %s", plan.Unlocked, tt.wantUnlocked)
			}
		})
	}
}

func TestResolve_UnboundedTopBand(t *testing.T) {
	plan := remediation.Resolve(900, catalog())

	if len(plan.Unlocked) != 1 || plan.Unlocked[0].ID != "mat-avancado" {
		t.Errorf("Unlocked = %+v, want mat-avancado", plan.Unlocked)
	}
	if len(plan.Locked) != 0 {
		t.Errorf("Locked = %+v, want none", plan.Locked)
	}
	if plan.Next != nil {
		t.Errorf("Next = %+v, want nil", plan.Next)
	}
}

func TestResolve_Mastery(t *testing.T) {
	// All bands bounded and the score above every upper bound: mastery,
	// not an error and not an empty-handed plan.
	items := []remediation.Item{
		{ID: "a", Area: exam.AreaNatureza, Min: 0, Max: 400, Content: "mod/a"},
		{ID: "b", Area: exam.AreaNatureza, Min: 400, Max: 700, Content: "mod/b"},
	}

	plan := remediation.Resolve(850, items)

	if !plan.Mastered {
		t.Error("Mastered should be true above every gate")
	}
	if len(plan.Unlocked) != 0 || len(plan.Locked) != 0 {
		t.Errorf("partitions = %+v / %+v, want both empty", plan.Unlocked, plan.Locked)
	}
	if plan.Next != nil {
		t.Errorf("Next = %+v, want nil", plan.Next)
	}
}

func TestResolve_OutgrownBandsExcluded(t *testing.T) {
	plan := remediation.Resolve(450, catalog())

	for _, item := range plan.Unlocked {
		if item.ID == "mat-basico" {
			t.Error("outgrown band mat-basico should not be unlocked")
		}
	}
	for _, item := range plan.Locked {
		if item.ID == "mat-basico" {
			t.Error("outgrown band mat-basico should not be locked")
		}
	}
}

func TestResolve_NextIsNearestHigherBand(t *testing.T) {
	items := []remediation.Item{
		{ID: "a", Area: exam.AreaHumanas, Min: 0, Max: 200, Content: "mod/a"},
		{ID: "b", Area: exam.AreaHumanas, Min: 500, Max: 700, Content: "mod/b"},
		{ID: "c", Area: exam.AreaHumanas, Min: 700, Content: "mod/c"},
	}

	plan := remediation.Resolve(250, items)

	if plan.Next == nil || plan.Next.Min != 500 {
		t.Fatalf("Next = %+v, want min 500", plan.Next)
	}
	if plan.Next.PointsNeeded != 250 {
		t.Errorf("PointsNeeded = %v, want 250", plan.Next.PointsNeeded)
	}
	if len(plan.Unlocked) != 0 {
		t.Errorf("Unlocked = %+v, want none between bands", plan.Unlocked)
	}
}
