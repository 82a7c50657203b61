package roster

import (
	"sync"
	"testing"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/student"
)

func lockTableSize(r *Reconciler) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}

func TestReconcile_LockTableDrainsAfterBatch(t *testing.T) {
	r := NewReconciler(student.NewMemoryDirectory())

	rows := make([]Row, 0, 200)
	for i := 0; i < 200; i++ {
		rows = append(rows, Row{
			Name:      "Aluno",
			Matricula: string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Class:     "3A",
		})
	}
	r.Reconcile(t.Context(), "escola-001", rows)

	if got := lockTableSize(r); got != 0 {
		t.Errorf("lock table size after batch = %d, want 0", got)
	}
}

func TestReconcile_ConcurrentBatchesSameMatricula(t *testing.T) {
	dir := student.NewMemoryDirectory()
	r := NewReconciler(dir)
	rows := []Row{{Name: "Ana", Matricula: "001", Class: "3A"}}

	results := make([]Result, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Reconcile(t.Context(), "escola-001", rows)
		}(i)
	}
	wg.Wait()

	created := results[0].Summary.Created + results[1].Summary.Created
	updated := results[0].Summary.Updated + results[1].Summary.Updated
	if created != 1 || updated != 1 {
		t.Errorf("created/updated across batches = %d/%d, want 1/1", created, updated)
	}

	if got := lockTableSize(r); got != 0 {
		t.Errorf("lock table size after concurrent batches = %d, want 0", got)
	}
}
