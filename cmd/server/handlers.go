package main

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/remediation"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/report"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/roster"
)

const maxRosterBytes = 10 << 20 // 10MB

// server bundles the engine components behind the JSON surface.
type server struct {
	reconciler *roster.Reconciler
	builder    *report.Builder
}

// handleRosterImport reconciles a JSON roster payload against one school's
// directory. The response carries the one-time credentials for created
// accounts; this is their single display pass and they are never logged.
func (s *server) handleRosterImport(w http.ResponseWriter, r *http.Request) {
	school := r.PathValue("school")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRosterBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	rows, err := roster.ParseJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := s.reconciler.Reconcile(r.Context(), school, rows)
	writeJSON(w, http.StatusOK, result)
}

func (s *server) handleStudentReport(w http.ResponseWriter, r *http.Request) {
	rep, err := s.builder.Build(r.Context(),
		r.PathValue("school"),
		r.PathValue("class"),
		r.PathValue("student"),
		r.PathValue("exam"),
	)
	switch {
	case errors.Is(err, report.ErrResultNotFound):
		writeError(w, http.StatusNotFound, "no result for student and exam")
		return
	case errors.Is(err, remediation.ErrCatalogCoverage):
		slog.Error("remediation catalog gap", "error", err)
		writeError(w, http.StatusInternalServerError, "remediation catalog misconfigured")
		return
	case err != nil:
		slog.Error("report build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
