package milk

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/domain/animals"
	"dairy-admin/internal/platform/dates"
	"dairy-admin/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/milk-records", func(mr chi.Router) {
		mr.Post("/", createRecordHandler(svc))
		mr.Get("/", listRecordsHandler(svc))
		mr.Get("/summary", summaryHandler(svc))
	})
}

type createRecordRequest struct {
	Date     string `json:"date" validate:"required"`
	AnimalID string `json:"animal_id"`

	MorningLiters float64 `json:"morning_liters" validate:"gte=0"`
	MorningFat    float64 `json:"morning_fat" validate:"gte=0"`
	MorningSNF    float64 `json:"morning_snf" validate:"gte=0"`

	EveningLiters float64 `json:"evening_liters" validate:"gte=0"`
	EveningFat    float64 `json:"evening_fat" validate:"gte=0"`
	EveningSNF    float64 `json:"evening_snf" validate:"gte=0"`

	Rate  float64 `json:"rate" validate:"gte=0"`
	Notes string  `json:"notes"`
}

type recordResponse struct {
	ID       string     `json:"id"`
	Date     dates.Date `json:"date"`
	AnimalID string     `json:"animal_id,omitempty"`

	MorningLiters float64 `json:"morning_liters"`
	MorningFat    float64 `json:"morning_fat"`
	MorningSNF    float64 `json:"morning_snf"`

	EveningLiters float64 `json:"evening_liters"`
	EveningFat    float64 `json:"evening_fat"`
	EveningSNF    float64 `json:"evening_snf"`

	Rate  float64 `json:"rate"`
	Notes string  `json:"notes"`

	// Derivados del servidor
	TotalLiters float64 `json:"total_liters"`
	AvgFat      float64 `json:"avg_fat"`
	AvgSNF      float64 `json:"avg_snf"`
	Revenue     float64 `json:"revenue"`

	CreatedAt time.Time `json:"created_at"`
}

// createRecordHandler godoc
// @Summary Registrar producción diaria
// @Description Crea un registro de leche (turnos mañana/tarde). Totales, promedios y facturación los calcula el servidor.
// @Tags milk
// @Accept json
// @Produce json
// @Param payload body createRecordRequest true "Producción; date en YYYY-MM-DD"
// @Success 201 {object} recordResponse
// @Failure 400 {string} string "invalid json / litros o fecha inválidos"
// @Router /milk-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		d, err := dates.Parse(req.Date)
		if err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.Create(r.Context(), CreateInput{
			Date:          d,
			AnimalID:      req.AnimalID,
			MorningLiters: req.MorningLiters,
			MorningFat:    req.MorningFat,
			MorningSNF:    req.MorningSNF,
			EveningLiters: req.EveningLiters,
			EveningFat:    req.EveningFat,
			EveningSNF:    req.EveningSNF,
			Rate:          req.Rate,
			Notes:         req.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, animals.ErrNotFound):
				http.Error(w, "animal not found", http.StatusNotFound)
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]recordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sum, err := svc.Summarize(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"records":      sum.Records,
			"total_liters": sum.TotalLiters,
			"revenue":      sum.Revenue,
			"avg_fat":      sum.AvgFat,
			"avg_snf":      sum.AvgSNF,
		})
	}
}

func parseFilter(r *http.Request) (Filter, error) {
	f := Filter{AnimalID: r.URL.Query().Get("animal_id")}

	from, err := dates.ParseOptional(r.URL.Query().Get("from"))
	if err != nil {
		return Filter{}, dates.ErrBadDate
	}
	to, err := dates.ParseOptional(r.URL.Query().Get("to"))
	if err != nil {
		return Filter{}, dates.ErrBadDate
	}
	f.From = from
	f.To = to
	return f, nil
}

func toRecordResponse(r Record) recordResponse {
	return recordResponse{
		ID:            r.ID,
		Date:          r.Date,
		AnimalID:      r.AnimalID,
		MorningLiters: r.MorningLiters,
		MorningFat:    r.MorningFat,
		MorningSNF:    r.MorningSNF,
		EveningLiters: r.EveningLiters,
		EveningFat:    r.EveningFat,
		EveningSNF:    r.EveningSNF,
		Rate:          r.Rate,
		Notes:         r.Notes,
		TotalLiters:   r.TotalLiters(),
		AvgFat:        r.AvgFat(),
		AvgSNF:        r.AvgSNF(),
		Revenue:       r.Revenue(),
		CreatedAt:     r.CreatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
