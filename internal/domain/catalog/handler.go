package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/validate"
)

// RegisterAdminRoutes: gestión de productos y reservas especiales.
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	// rutas planas: GET /products y POST /special-reservations son públicos
	// y un Route acá chocaría con ellos
	r.Post("/products", createProductHandler(svc))
	r.Put("/products/{productID}", updateProductHandler(svc))
	r.Delete("/products/{productID}", deactivateProductHandler(svc))

	r.Get("/special-reservations", listReservationsHandler(svc))
	r.Get("/special-reservations/{reservationID}", getReservationHandler(svc))
	r.Delete("/special-reservations/{reservationID}", deleteReservationHandler(svc))
	r.Put("/special-reservations/{reservationID}/status", updateDeliveryHandler(svc))
	r.Put("/special-reservations/{reservationID}/payment", updatePaymentHandler(svc))
}

// RegisterPublicRoutes: catálogo para el sitio y alta de reservas del cliente.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Get("/products", listProductsHandler(svc))
	r.Get("/categories", categoriesHandler(svc))
	r.Post("/special-reservations", createReservationHandler(svc))
}

type productRequest struct {
	Name            string  `json:"name" validate:"required"`
	Category        string  `json:"category" validate:"required"`
	Unit            string  `json:"unit"`
	Price           float64 `json:"price" validate:"gte=0"`
	Stock           float64 `json:"stock" validate:"gte=0"`
	IsSpecial       bool    `json:"is_special"`
	AdvanceBookable bool    `json:"advance_bookable"`
}

type productPatchRequest struct {
	Name            *string  `json:"name"`
	Category        *string  `json:"category"`
	Unit            *string  `json:"unit"`
	Price           *float64 `json:"price"`
	Stock           *float64 `json:"stock"`
	IsSpecial       *bool    `json:"is_special"`
	AdvanceBookable *bool    `json:"advance_bookable"`
}

type productResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Unit            string    `json:"unit"`
	Price           float64   `json:"price"`
	Stock           float64   `json:"stock"`
	IsSpecial       bool      `json:"is_special"`
	AdvanceBookable bool      `json:"advance_bookable"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// createProductHandler godoc
// @Summary Alta de producto
// @Tags catalog
// @Accept json
// @Produce json
// @Param payload body productRequest true "Producto"
// @Success 201 {object} productResponse
// @Router /products [post]
func createProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.CreateProduct(r.Context(), ProductInput{
			Name:            req.Name,
			Category:        req.Category,
			Unit:            req.Unit,
			Price:           req.Price,
			Stock:           req.Stock,
			IsSpecial:       req.IsSpecial,
			AdvanceBookable: req.AdvanceBookable,
		})
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toProductResponse(p))
	}
}

func updateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req productPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), ProductPatch{
			Name:            req.Name,
			Category:        req.Category,
			Unit:            req.Unit,
			Price:           req.Price,
			Stock:           req.Stock,
			IsSpecial:       req.IsSpecial,
			AdvanceBookable: req.AdvanceBookable,
		})
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toProductResponse(p))
	}
}

func deactivateProductHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeactivateProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
			respondCatalogErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listProductsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := ProductFilter{Category: r.URL.Query().Get("category")}
		// el sitio público solo ve productos activos
		f.OnlyActive = r.URL.Query().Get("include_inactive") != "true"

		items, err := svc.ListProducts(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]productResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProductResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func categoriesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cats, err := svc.Categories(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"categories": cats})
	}
}

type reservationRequest struct {
	CustomerID    string  `json:"customer_id" validate:"required"`
	ProductID     string  `json:"product_id" validate:"required"`
	Quantity      float64 `json:"quantity" validate:"gt=0"`
	Deposit       float64 `json:"deposit" validate:"gte=0"`
	PaymentMethod string  `json:"payment_method"`
	Notes         string  `json:"notes"`
}

type reservationResponse struct {
	ID             string         `json:"id"`
	CustomerID     string         `json:"customer_id"`
	ProductID      string         `json:"product_id"`
	Quantity       float64        `json:"quantity"`
	Deposit        float64        `json:"deposit"`
	Total          float64        `json:"total"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentStatus  PaymentStatus  `json:"payment_status"`
	DeliveryStatus DeliveryStatus `json:"delivery_status"`
	Notes          string         `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"`
}

func createReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sr, err := svc.CreateReservation(r.Context(), ReservationInput{
			CustomerID:    req.CustomerID,
			ProductID:     req.ProductID,
			Quantity:      req.Quantity,
			Deposit:       req.Deposit,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		})
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toReservationResponse(sr))
	}
}

func listReservationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListReservations(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		out := make([]reservationResponse, 0, len(items))
		for _, sr := range items {
			out = append(out, toReservationResponse(sr))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sr, err := svc.GetReservation(r.Context(), chi.URLParam(r, "reservationID"))
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(sr))
	}
}

type deliveryStatusRequest struct {
	Status DeliveryStatus `json:"status" validate:"required,oneof=pending confirmed delivered cancelled"`
}

func updateDeliveryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deliveryStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sr, err := svc.UpdateDeliveryStatus(r.Context(), chi.URLParam(r, "reservationID"), req.Status)
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(sr))
	}
}

type reservationPaymentRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,oneof=pending deposit_paid paid"`
	Deposit       *float64      `json:"deposit"`
}

func updatePaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reservationPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		sr, err := svc.UpdatePayment(r.Context(), chi.URLParam(r, "reservationID"), req.PaymentStatus, req.Deposit)
		if err != nil {
			respondCatalogErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toReservationResponse(sr))
	}
}

func deleteReservationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.DeleteReservation(r.Context(), chi.URLParam(r, "reservationID")); err != nil {
			respondCatalogErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func respondCatalogErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, "operation not allowed in current state", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toProductResponse(p Product) productResponse {
	return productResponse{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		Unit:            p.Unit,
		Price:           p.Price,
		Stock:           p.Stock,
		IsSpecial:       p.IsSpecial,
		AdvanceBookable: p.AdvanceBookable,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toReservationResponse(sr SpecialReservation) reservationResponse {
	return reservationResponse{
		ID:             sr.ID,
		CustomerID:     sr.CustomerID,
		ProductID:      sr.ProductID,
		Quantity:       sr.Quantity,
		Deposit:        sr.Deposit,
		Total:          sr.Total,
		PaymentMethod:  sr.PaymentMethod,
		PaymentStatus:  sr.PaymentStatus,
		DeliveryStatus: sr.DeliveryStatus,
		Notes:          sr.Notes,
		CreatedAt:      sr.CreatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
