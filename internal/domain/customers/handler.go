package customers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/customers", func(rr chi.Router) {
		rr.Post("/", createHandler(svc))
		rr.Get("/", listHandler(svc))
		rr.Get("/{customerID}", getHandler(svc))
	})
}

type createCustomerRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Area      string    `json:"area"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCustomerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Area:    req.Area,
		})
		if err != nil {
			respondCustomerErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toCustomerResponse(c))
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]customerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCustomerResponse(c))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := svc.GetByID(r.Context(), chi.URLParam(r, "customerID"))
		if err != nil {
			respondCustomerErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func respondCustomerErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "customer not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toCustomerResponse(c Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Area:      c.Area,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
