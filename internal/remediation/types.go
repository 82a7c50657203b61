// Package remediation holds the study-material catalog and the adaptive
// gate resolver that partitions it by the student's current TRI score.
package remediation

import (
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
)

// Item is one piece of remediation material loaded from a catalog file.
// The gate [Min, Max) is the score band in which the item is the
// recommended material; Max == 0 means the band is unbounded above.
// Content is an opaque reference (URL or identifier) resolved by the caller.
type Item struct {
	ID      string    `yaml:"id" json:"id"`
	Area    exam.Area `yaml:"area" json:"area"`
	Title   string    `yaml:"title" json:"title"`
	Min     float64   `yaml:"min" json:"min"`
	Max     float64   `yaml:"max,omitempty" json:"max,omitempty"`
	Order   int       `yaml:"order" json:"order"`
	Content string    `yaml:"content" json:"content"`
}

// Bounded reports whether the item's gate has an upper bound.
func (i Item) Bounded() bool {
	return i.Max > 0
}

// catalogFile is the on-disk shape of one catalog YAML file.
type catalogFile struct {
	Area  exam.Area `yaml:"area"`
	Items []Item    `yaml:"items"`
}
