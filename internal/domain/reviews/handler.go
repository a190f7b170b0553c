package reviews

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/validate"
)

// RegisterAdminRoutes cuelga la moderación (grupo admin del router).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	// rutas planas: POST /reviews es público y un Route acá chocaría con él
	r.Get("/reviews", listAllHandler(svc))
	r.Put("/reviews/{reviewID}/approve", approveHandler(svc))
	r.Put("/reviews/{reviewID}/reject", rejectHandler(svc))
	r.Put("/reviews/{reviewID}/feature", featureHandler(svc))
	r.Delete("/reviews/{reviewID}", deleteHandler(svc))
}

// RegisterPublicRoutes: alta de reseñas y listado de aprobadas, sin auth.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/reviews", submitHandler(svc))
	r.Get("/reviews/approved", listApprovedHandler(svc))
}

type submitReviewRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Text         string `json:"text"`
	Location     string `json:"location"`
}

type reviewResponse struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customer_name"`
	Rating       int        `json:"rating"`
	Text         string     `json:"text"`
	Location     string     `json:"location"`
	Status       Status     `json:"status"`
	IsApproved   bool       `json:"is_approved"`
	IsFeatured   bool       `json:"is_featured"`
	CreatedAt    time.Time  `json:"created_at"`
	ModeratedAt  *time.Time `json:"moderated_at,omitempty"`
}

func submitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitReviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rv, err := svc.Submit(r.Context(), SubmitInput{
			CustomerName: req.CustomerName,
			Rating:       req.Rating,
			Text:         req.Text,
			Location:     req.Location,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusCreated, toReviewResponse(rv))
	}
}

func listAllHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeList(w, items)
	}
}

func listApprovedHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListApproved(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeList(w, items)
	}
}

func approveHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv, err := svc.Approve(r.Context(), chi.URLParam(r, "reviewID"))
		if err != nil {
			respondReviewErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReviewResponse(rv))
	}
}

func rejectHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rv, err := svc.Reject(r.Context(), chi.URLParam(r, "reviewID"))
		if err != nil {
			respondReviewErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReviewResponse(rv))
	}
}

type featureRequest struct {
	Featured bool `json:"featured"`
}

// featureHandler godoc
// @Summary Destacar/quitar destaque de una reseña
// @Description Solo reseñas aprobadas; sobre una pending responde 409.
// @Tags reviews
// @Accept json
// @Produce json
// @Param reviewID path string true "ID de la reseña"
// @Param payload body featureRequest true "featured true/false"
// @Success 200 {object} reviewResponse
// @Failure 409 {string} string "la reseña no está aprobada"
// @Router /reviews/{reviewID}/feature [put]
func featureHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req featureRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rv, err := svc.SetFeatured(r.Context(), chi.URLParam(r, "reviewID"), req.Featured)
		if err != nil {
			respondReviewErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReviewResponse(rv))
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "reviewID")); err != nil {
			respondReviewErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondReviewErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "review not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, "review not in a valid state for that action", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeList(w http.ResponseWriter, items []Review) {
	out := make([]reviewResponse, 0, len(items))
	for _, rv := range items {
		out = append(out, toReviewResponse(rv))
	}
	writeJSON(w, http.StatusOK, out)
}

func toReviewResponse(rv Review) reviewResponse {
	return reviewResponse{
		ID:           rv.ID,
		CustomerName: rv.CustomerName,
		Rating:       rv.Rating,
		Text:         rv.Text,
		Location:     rv.Location,
		Status:       rv.Status,
		IsApproved:   rv.IsApproved(),
		IsFeatured:   rv.IsFeatured,
		CreatedAt:    rv.CreatedAt,
		ModeratedAt:  rv.ModeratedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
