package lifecycle

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
	// rutas planas bajo /cows/{animalID}: el prefijo lo comparte animals
	r.Get("/cows/{animalID}/history", historyHandler(svc))

	r.Post("/cows/{animalID}/insemination", recordInseminationHandler(svc))
	r.Post("/cows/{animalID}/crossing", confirmCrossingHandler(svc))
	r.Post("/cows/{animalID}/calving", recordCalvingHandler(svc))
	r.Post("/cows/{animalID}/deworming", recordDewormingHandler(svc))
	r.Post("/cows/{animalID}/sickness", recordSicknessHandler(svc))
}

type inseminationRequest struct {
	Date                string  `json:"date" validate:"required"`
	SemenType           string  `json:"semen_type"`
	Technician          string  `json:"technician"`
	Cost                float64 `json:"cost" validate:"gte=0"`
	Notes               string  `json:"notes"`
	AcknowledgePrevious bool    `json:"acknowledge_previous"`
}

type inseminationResponse struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	Date       dates.Date `json:"date"`
	SemenType  string     `json:"semen_type"`
	Technician string     `json:"technician"`
	Cost       float64    `json:"cost"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

// recordInseminationHandler godoc
// @Summary Registrar inseminación
// @Description Apendea una inseminación al log del animal. Si ya existe una previa, el admin debe mandar acknowledge_previous=true (descarte explícito del semen anterior); si no, responde 409.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body inseminationRequest true "Datos; date en YYYY-MM-DD"
// @Success 201 {object} inseminationResponse
// @Failure 404 {string} string "animal not found"
// @Failure 409 {string} string "inseminación previa sin confirmar"
// @Router /cows/{animalID}/insemination [post]
func recordInseminationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req inseminationRequest
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

		rec, err := svc.RecordInsemination(r.Context(), chi.URLParam(r, "animalID"), InseminationInput{
			Date:                d,
			SemenType:           req.SemenType,
			Technician:          req.Technician,
			Cost:                req.Cost,
			Notes:               req.Notes,
			AcknowledgePrevious: req.AcknowledgePrevious,
		})
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, inseminationResponse{
			ID:         rec.ID,
			AnimalID:   rec.AnimalID,
			Date:       rec.Date,
			SemenType:  rec.SemenType,
			Technician: rec.Technician,
			Cost:       rec.Cost,
			Notes:      rec.Notes,
			CreatedAt:  rec.CreatedAt,
		})
	}
}

type crossingRequest struct {
	Date string `json:"date" validate:"required"`
}

func confirmCrossingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req crossingRequest
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

		a, err := svc.ConfirmCrossing(r.Context(), chi.URLParam(r, "animalID"), d)
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"id":                     a.ID,
			"status":                 a.Status,
			"pregnancy_status":       a.PregnancyStatus,
			"last_insemination_date": a.LastInseminationDate,
		})
	}
}

type calvingRequest struct {
	Date       string  `json:"date" validate:"required"`
	CalfGender string  `json:"calf_gender"`
	CalfName   string  `json:"calf_name"`
	CalfStatus string  `json:"calf_status"` // alive|dead|sold, default alive
	CalfWeight float64 `json:"calf_weight" validate:"gte=0"`
	Notes      string  `json:"notes"`
}

type calvingResponse struct {
	ID         string     `json:"id"`
	AnimalID   string     `json:"animal_id"`
	Date       dates.Date `json:"date"`
	CalfGender string     `json:"calf_gender"`
	CalfName   string     `json:"calf_name"`
	CalfStatus CalfStatus `json:"calf_status"`
	CalfWeight float64    `json:"calf_weight"`
	Notes      string     `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
}

func recordCalvingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req calvingRequest
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

		rec, err := svc.RecordCalving(r.Context(), chi.URLParam(r, "animalID"), CalvingInput{
			Date:       d,
			CalfGender: req.CalfGender,
			CalfName:   req.CalfName,
			CalfStatus: CalfStatus(req.CalfStatus),
			CalfWeight: req.CalfWeight,
			Notes:      req.Notes,
		})
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, calvingResponse{
			ID:         rec.ID,
			AnimalID:   rec.AnimalID,
			Date:       rec.Date,
			CalfGender: rec.CalfGender,
			CalfName:   rec.CalfName,
			CalfStatus: rec.CalfStatus,
			CalfWeight: rec.CalfWeight,
			Notes:      rec.Notes,
			CreatedAt:  rec.CreatedAt,
		})
	}
}

type dewormingRequest struct {
	Date     string  `json:"date" validate:"required"`
	Medicine string  `json:"medicine" validate:"required"`
	Dosage   string  `json:"dosage"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	NextDue  string  `json:"next_due"` // YYYY-MM-DD opcional
	Notes    string  `json:"notes"`
}

type dewormingResponse struct {
	ID        string      `json:"id"`
	AnimalID  string      `json:"animal_id"`
	Date      dates.Date  `json:"date"`
	Medicine  string      `json:"medicine"`
	Dosage    string      `json:"dosage"`
	Cost      float64     `json:"cost"`
	NextDue   *dates.Date `json:"next_due,omitempty"`
	Notes     string      `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`
}

func recordDewormingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dewormingRequest
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
		nextDue, err := dates.ParseOptional(req.NextDue)
		if err != nil {
			http.Error(w, "next_due must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		rec, err := svc.RecordDeworming(r.Context(), chi.URLParam(r, "animalID"), DewormingInput{
			Date:     d,
			Medicine: req.Medicine,
			Dosage:   req.Dosage,
			Cost:     req.Cost,
			NextDue:  nextDue,
			Notes:    req.Notes,
		})
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, dewormingResponse{
			ID:        rec.ID,
			AnimalID:  rec.AnimalID,
			Date:      rec.Date,
			Medicine:  rec.Medicine,
			Dosage:    rec.Dosage,
			Cost:      rec.Cost,
			NextDue:   rec.NextDue,
			Notes:     rec.Notes,
			CreatedAt: rec.CreatedAt,
		})
	}
}

type sicknessRequest struct {
	Date      string  `json:"date" validate:"required"`
	Condition string  `json:"condition" validate:"required"`
	Treatment string  `json:"treatment"`
	Cost      float64 `json:"cost" validate:"gte=0"`
	Notes     string  `json:"notes"`
}

type sicknessResponse struct {
	ID        string     `json:"id"`
	AnimalID  string     `json:"animal_id"`
	Date      dates.Date `json:"date"`
	Condition string     `json:"condition"`
	Treatment string     `json:"treatment"`
	Cost      float64    `json:"cost"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// recordSicknessHandler godoc
// @Summary Registrar enfermedad
// @Description Apendea el registro, fuerza status=sick y con cost > 0 crea el gasto de medicina ligado al animal.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body sicknessRequest true "Datos; date en YYYY-MM-DD"
// @Success 201 {object} sicknessResponse
// @Failure 404 {string} string "animal not found"
// @Router /cows/{animalID}/sickness [post]
func recordSicknessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sicknessRequest
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

		rec, err := svc.RecordSickness(r.Context(), chi.URLParam(r, "animalID"), SicknessInput{
			Date:      d,
			Condition: req.Condition,
			Treatment: req.Treatment,
			Cost:      req.Cost,
			Notes:     req.Notes,
		})
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, sicknessResponse{
			ID:        rec.ID,
			AnimalID:  rec.AnimalID,
			Date:      rec.Date,
			Condition: rec.Condition,
			Treatment: rec.Treatment,
			Cost:      rec.Cost,
			Notes:     rec.Notes,
			CreatedAt: rec.CreatedAt,
		})
	}
}

type historyResponse struct {
	Inseminations []inseminationResponse `json:"insemination_records"`
	Calvings      []calvingResponse      `json:"calving_records"`
	Dewormings    []dewormingResponse    `json:"deworming_records"`
	Sicknesses    []sicknessResponse     `json:"sickness_records"`
}

func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := svc.History(r.Context(), chi.URLParam(r, "animalID"))
		if err != nil {
			respondLifecycleErr(w, err)
			return
		}

		out := historyResponse{
			Inseminations: make([]inseminationResponse, 0, len(h.Inseminations)),
			Calvings:      make([]calvingResponse, 0, len(h.Calvings)),
			Dewormings:    make([]dewormingResponse, 0, len(h.Dewormings)),
			Sicknesses:    make([]sicknessResponse, 0, len(h.Sicknesses)),
		}
		for _, rec := range h.Inseminations {
			out.Inseminations = append(out.Inseminations, inseminationResponse{
				ID: rec.ID, AnimalID: rec.AnimalID, Date: rec.Date, SemenType: rec.SemenType,
				Technician: rec.Technician, Cost: rec.Cost, Notes: rec.Notes, CreatedAt: rec.CreatedAt,
			})
		}
		for _, rec := range h.Calvings {
			out.Calvings = append(out.Calvings, calvingResponse{
				ID: rec.ID, AnimalID: rec.AnimalID, Date: rec.Date, CalfGender: rec.CalfGender,
				CalfName: rec.CalfName, CalfStatus: rec.CalfStatus, CalfWeight: rec.CalfWeight,
				Notes: rec.Notes, CreatedAt: rec.CreatedAt,
			})
		}
		for _, rec := range h.Dewormings {
			out.Dewormings = append(out.Dewormings, dewormingResponse{
				ID: rec.ID, AnimalID: rec.AnimalID, Date: rec.Date, Medicine: rec.Medicine,
				Dosage: rec.Dosage, Cost: rec.Cost, NextDue: rec.NextDue, Notes: rec.Notes, CreatedAt: rec.CreatedAt,
			})
		}
		for _, rec := range h.Sicknesses {
			out.Sicknesses = append(out.Sicknesses, sicknessResponse{
				ID: rec.ID, AnimalID: rec.AnimalID, Date: rec.Date, Condition: rec.Condition,
				Treatment: rec.Treatment, Cost: rec.Cost, Notes: rec.Notes, CreatedAt: rec.CreatedAt,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func respondLifecycleErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPriorInsemination):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, animals.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, animals.ErrNotFound):
		http.Error(w, "animal not found", http.StatusNotFound)
	case errors.Is(err, animals.ErrBadState):
		http.Error(w, "invalid state transition", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
