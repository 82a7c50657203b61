package remediation

import "errors"

// ErrCatalogCoverage reports that the catalog has no items for an area the
// student has a score in. Surfaced to the caller, never silently defaulted.
var ErrCatalogCoverage = errors.New("remediation catalog does not cover area")

// LockedItem is a catalog item the student has not yet reached.
type LockedItem struct {
	Item
	PointsToUnlock float64 `json:"points_to_unlock"`
}

// NextTarget is the lower bound of the nearest band above the student's
// current score.
type NextTarget struct {
	Min          float64 `json:"min"`
	PointsNeeded float64 `json:"points_needed"`
}

// Plan is the adaptive partition of one area's catalog for one score.
// Items whose whole gate lies below the score appear in neither partition:
// the student has outgrown them. Mastered is set when the score is at or
// above every gate in the catalog, which is a valid end state, not an error.
type Plan struct {
	Unlocked []Item       `json:"unlocked"`
	Locked   []LockedItem `json:"locked"`
	Next     *NextTarget  `json:"next,omitempty"`
	Mastered bool         `json:"mastered"`
}

// Resolve partitions a catalog (sorted ascending by gate lower bound) against
// the student's current score. An item is unlocked when the score falls
// inside its gate [min, max), locked when the score is still below min.
func Resolve(score float64, items []Item) Plan {
	var plan Plan
	for _, item := range items {
		switch {
		case score < item.Min:
			plan.Locked = append(plan.Locked, LockedItem{
				Item:           item,
				PointsToUnlock: item.Min - score,
			})
			if plan.Next == nil || item.Min < plan.Next.Min {
				plan.Next = &NextTarget{
					Min:          item.Min,
					PointsNeeded: item.Min - score,
				}
			}
		case !item.Bounded() || score < item.Max:
			plan.Unlocked = append(plan.Unlocked, item)
		}
	}

	plan.Mastered = len(items) > 0 && len(plan.Unlocked) == 0 && len(plan.Locked) == 0
	return plan
}
