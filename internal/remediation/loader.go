package remediation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
)

// Loader loads and caches the remediation catalog from a directory tree of
// YAML files, one or more files per subject area.
type Loader struct {
	rootDir string
	items   map[exam.Area][]Item
	mu      sync.RWMutex
}

// NewLoader creates a loader and reads every catalog file under rootDir.
func NewLoader(rootDir string) (*Loader, error) {
	l := &Loader{
		rootDir: rootDir,
		items:   make(map[exam.Area][]Item),
	}

	if err := l.loadAll(); err != nil {
		return nil, fmt.Errorf("loading remediation catalog: %w", err)
	}

	total := 0
	for _, items := range l.items {
		total += len(items)
	}
	slog.Info("remediation catalog loaded", "areas", len(l.items), "items", total)
	return l, nil
}

// ItemsFor returns the catalog items for an area, sorted ascending by gate
// lower bound.
func (l *Loader) ItemsFor(area exam.Area) ([]Item, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	items, ok := l.items[area]
	return items, ok
}

// PlanFor resolves the adaptive plan for a student's current score in an
// area. An area the student has a score in but the catalog does not cover
// is a configuration fault, reported as ErrCatalogCoverage.
func (l *Loader) PlanFor(area exam.Area, score float64) (Plan, error) {
	items, ok := l.ItemsFor(area)
	if !ok || len(items) == 0 {
		return Plan{}, fmt.Errorf("area %q: %w", area, ErrCatalogCoverage)
	}
	return Resolve(score, items), nil
}

func (l *Loader) loadAll() error {
	err := filepath.Walk(l.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadFile(path)
	})
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for area := range l.items {
		items := l.items[area]
		sort.Slice(items, func(i, j int) bool {
			if items[i].Min != items[j].Min {
				return items[i].Min < items[j].Min
			}
			return items[i].Order < items[j].Order
		})
		l.items[area] = items
	}
	return nil
}

func (l *Loader) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, item := range file.Items {
		if item.Area == "" {
			item.Area = file.Area
		}
		if err := validateItem(item); err != nil {
			return fmt.Errorf("%s item %d: %w", path, i, err)
		}
		l.mu.Lock()
		l.items[item.Area] = append(l.items[item.Area], item)
		l.mu.Unlock()
	}
	return nil
}

func validateItem(item Item) error {
	if item.ID == "" {
		return fmt.Errorf("missing id")
	}
	if item.Area == "" {
		return fmt.Errorf("missing area")
	}
	if item.Content == "" {
		return fmt.Errorf("missing content reference")
	}
	if item.Min < 0 {
		return fmt.Errorf("negative gate lower bound %v", item.Min)
	}
	if item.Bounded() && item.Max <= item.Min {
		return fmt.Errorf("inverted gate [%v, %v)", item.Min, item.Max)
	}
	return nil
}
