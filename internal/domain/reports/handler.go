package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reports/{kind}", buildHandler(svc))
}

type reportEnvelope struct {
	Kind        Kind      `json:"kind"`
	GeneratedAt time.Time `json:"generated_at"`
	Columns     []Column  `json:"columns"`
	Data        Report    `json:"data"`
}

// buildHandler godoc
// @Summary Genera un reporte por tipo
// @Description Kinds: farm-summary, all-insemination, all-calving, health-summary, expense-summary, pregnant-cows, milk-production, cattle-list.
// @Tags reports
// @Produce json
// @Param kind path string true "Tipo de reporte"
// @Success 200 {object} reportEnvelope
// @Failure 404 {string} string "kind desconocido"
// @Router /reports/{kind} [get]
func buildHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := Kind(chi.URLParam(r, "kind"))

		rep, err := svc.Build(r.Context(), kind)
		if err != nil {
			if errors.Is(err, ErrUnknownKind) {
				http.Error(w, "unknown report kind", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, reportEnvelope{
			Kind:        kind,
			GeneratedAt: time.Now().UTC(),
			Columns:     rep.ColumnSet(),
			Data:        rep,
		})
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
