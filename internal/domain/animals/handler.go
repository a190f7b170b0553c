package animals

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/dates"
	"dairy-admin/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// rutas planas: lifecycle también cuelga bajo /cows/{animalID} y dos
	// Route sobre el mismo prefijo chocan al montar
	r.Post("/cows", createAnimalHandler(svc))
	r.Get("/cows", listAnimalsHandler(svc))
	r.Get("/cows/counts", countsHandler(svc))

	r.Get("/cows/{animalID}", getAnimalHandler(svc))
	r.Patch("/cows/{animalID}", updateAnimalHandler(svc))

	// Transiciones explícitas de estado
	r.Post("/cows/{animalID}/pregnancy", confirmPregnancyHandler(svc))
	r.Post("/cows/{animalID}/dry", markDryHandler(svc))
	r.Post("/cows/{animalID}/recover", markRecoveredHandler(svc))
}

type createAnimalRequest struct {
	Name        string `json:"name" validate:"required"`
	Species     string `json:"species" validate:"required,oneof=cow buffalo"`
	BirthDate   string `json:"birth_date"` // YYYY-MM-DD opcional
	EntryDate   string `json:"entry_date"` // YYYY-MM-DD opcional
	Source      string `json:"source"`
	HealthNotes string `json:"health_notes"`
}

type animalResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Species Species `json:"species"`
	Status  Status  `json:"status"`

	BirthDate *dates.Date `json:"birth_date,omitempty"`
	EntryDate *dates.Date `json:"entry_date,omitempty"`
	Source    string      `json:"source"`

	HealthNotes string `json:"health_notes"`

	PregnancyStatus      bool        `json:"pregnancy_status"`
	LastInseminationDate *dates.Date `json:"last_insemination_date,omitempty"`
	ExpectedCalvingDate  *dates.Date `json:"expected_calving_date,omitempty"`
	DryStartDate         *dates.Date `json:"dry_start_date,omitempty"`

	CurrentDailyMilk float64 `json:"current_daily_milk"`
	TotalMilk        float64 `json:"total_milk"`
	TotalCalvings    int     `json:"total_calvings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type updateAnimalRequest struct {
	// Punteros para PATCH real: nil = no tocar. Fechas con "" limpian.
	Name        *string  `json:"name"`
	Source      *string  `json:"source"`
	HealthNotes *string  `json:"health_notes"`
	BirthDate   *string  `json:"birth_date"`
	EntryDate   *string  `json:"entry_date"`
	MilkRate    *float64 `json:"current_daily_milk"`
}

// createAnimalHandler godoc
// @Summary Registrar animal
// @Description Da de alta una vaca o búfala en el hato. Requiere rol admin.
// @Tags cows
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal; fechas en YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / datos inválidos"
// @Router /cows [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bd, err := dates.ParseOptional(req.BirthDate)
		if err != nil {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		ed, err := dates.ParseOptional(req.EntryDate)
		if err != nil {
			http.Error(w, "entry_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			Species:     req.Species,
			BirthDate:   bd,
			EntryDate:   ed,
			Source:      req.Source,
			HealthNotes: req.HealthNotes,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// listAnimalsHandler godoc
// @Summary Listar el hato
// @Tags cows
// @Produce json
// @Param species query string false "Filtrar por especie (cow|buffalo)"
// @Param status query string false "Filtrar por estado (active|pregnant|dry|sick)"
// @Success 200 {array} animalResponse
// @Router /cows [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := Filter{}
		if v := r.URL.Query().Get("species"); v != "" {
			sp := Species(v)
			if !ValidSpecies(sp) {
				http.Error(w, "unknown species", http.StatusBadRequest)
				return
			}
			f.Species = sp
		}
		if v := r.URL.Query().Get("status"); v != "" {
			st := Status(v)
			if !ValidStatus(st) {
				http.Error(w, "unknown status", http.StatusBadRequest)
				return
			}
			f.Status = st
		}

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]animalResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAnimalResponse(a))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func countsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.Counts(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"total":    c.Total,
			"cows":     c.Cows,
			"buffalo":  c.Buffalo,
			"active":   c.Active,
			"pregnant": c.Pregnant,
			"dry":      c.Dry,
			"sick":     c.Sick,
		})
	}
}

func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.GetByID(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		var req updateAnimalRequest
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		updated, err := svc.UpdateProfile(r.Context(), chi.URLParam(r, "animalID"), UpdateProfileInput{
			Name:        req.Name,
			Source:      req.Source,
			HealthNotes: req.HealthNotes,
			BirthDate:   req.BirthDate,
			EntryDate:   req.EntryDate,
			MilkRate:    req.MilkRate,
		})
		if err != nil {
			respondDomainErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(updated))
	}
}

type confirmPregnancyRequest struct {
	ExpectedCalvingDate string `json:"expected_calving_date" validate:"required"`
}

// confirmPregnancyHandler godoc
// @Summary Confirmar preñez
// @Description Marca al animal como preñado con fecha estimada de parto. Acción explícita del admin; el estado nunca se deriva del historial.
// @Tags cows
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body confirmPregnancyRequest true "Fecha estimada de parto (YYYY-MM-DD)"
// @Success 200 {object} animalResponse
// @Router /cows/{animalID}/pregnancy [post]
func confirmPregnancyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req confirmPregnancyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		expected, err := dates.Parse(req.ExpectedCalvingDate)
		if err != nil {
			http.Error(w, "expected_calving_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		a, err := svc.ConfirmPregnancy(r.Context(), chi.URLParam(r, "animalID"), expected)
		if err != nil {
			respondDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

type markDryRequest struct {
	Reason string `json:"reason"`
}

func markDryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req markDryRequest
		if r.Body != nil {
			// body opcional; solo trae el motivo
			_ = json.NewDecoder(r.Body).Decode(&req)
		}

		a, err := svc.MarkDry(r.Context(), chi.URLParam(r, "animalID"), req.Reason)
		if err != nil {
			respondDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func markRecoveredHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := svc.MarkRecovered(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			respondDomainErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		ID:                   a.ID,
		Name:                 a.Name,
		Species:              a.Species,
		Status:               a.Status,
		BirthDate:            a.BirthDate,
		EntryDate:            a.EntryDate,
		Source:               a.Source,
		HealthNotes:          a.HealthNotes,
		PregnancyStatus:      a.PregnancyStatus,
		LastInseminationDate: a.LastInseminationDate,
		ExpectedCalvingDate:  a.ExpectedCalvingDate,
		DryStartDate:         a.DryStartDate,
		CurrentDailyMilk:     a.CurrentDailyMilk,
		TotalMilk:            a.TotalMilk,
		TotalCalvings:        a.TotalCalvings,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}

func respondDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, "invalid state transition", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
