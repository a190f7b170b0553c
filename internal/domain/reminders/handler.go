package reminders

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/dates"
)

// El panel de overview muestra a lo sumo 5.
const defaultLimit = 5

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reminders", listRemindersHandler(svc))
}

type reminderResponse struct {
	Type       Type       `json:"type"`
	AnimalID   string     `json:"animal_id"`
	AnimalName string     `json:"animal_name"`
	Due        dates.Date `json:"date"`
	Days       int        `json:"days"`
	Severity   Severity   `json:"severity"`
	Message    string     `json:"message"`
}

// listRemindersHandler godoc
// @Summary Recordatorios próximos
// @Description Partos estimados y desparasitaciones con vencimiento dentro de la ventana, ordenados por días restantes.
// @Tags reminders
// @Produce json
// @Param limit query int false "Máximo de recordatorios (default 5, 0 = todos)"
// @Success 200 {array} reminderResponse
// @Router /reminders [get]
func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultLimit
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				limit = n
			}
		}

		items, err := svc.Upcoming(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if limit > 0 && len(items) > limit {
			items = items[:limit]
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, reminderResponse{
				Type:       rem.Type,
				AnimalID:   rem.AnimalID,
				AnimalName: rem.AnimalName,
				Due:        rem.Due,
				Days:       rem.Days,
				Severity:   rem.Severity,
				Message:    rem.Message,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
