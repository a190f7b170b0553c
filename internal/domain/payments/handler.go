package payments

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/validate"
)

// RegisterAdminRoutes cuelga las rutas de moderación (grupo admin del router).
func RegisterAdminRoutes(r chi.Router, svc *Service) {
	// rutas planas: POST /payments es público y un Route acá chocaría con él
	r.Get("/payments/pending", listPendingHandler(svc))
	r.Put("/payments/{paymentID}/status", decideHandler(svc))

	r.Get("/payments/settings", getSettingsHandler(svc))
	r.Put("/payments/settings", putSettingsHandler(svc))
}

// RegisterPublicRoutes: el alta del pago la hace el cliente, sin rol admin.
func RegisterPublicRoutes(r chi.Router, svc *Service) {
	r.Post("/payments", submitPaymentHandler(svc))
}

type submitPaymentRequest struct {
	CustomerID    string  `json:"customer_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	BillMonth     string  `json:"bill_month" validate:"required"`
	TransactionID string  `json:"transaction_id"`
	Screenshot    string  `json:"screenshot"`
}

type paymentResponse struct {
	ID              string     `json:"id"`
	CustomerID      string     `json:"customer_id"`
	Amount          float64    `json:"amount"`
	BillMonth       string     `json:"bill_month"`
	TransactionID   string     `json:"transaction_id"`
	Screenshot      string     `json:"screenshot,omitempty"`
	Status          Status     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
}

func submitPaymentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req submitPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		p, err := svc.Submit(r.Context(), SubmitInput{
			CustomerID:    req.CustomerID,
			Amount:        req.Amount,
			BillMonth:     req.BillMonth,
			TransactionID: req.TransactionID,
			Screenshot:    req.Screenshot,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPaymentResponse(p))
	}
}

func listPendingHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Pending(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]paymentResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPaymentResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

type decideRequest struct {
	Status Status `json:"status" validate:"required,oneof=approved rejected"`
	Reason string `json:"reason"` // obligatorio al rechazar
}

// decideHandler godoc
// @Summary Aprobar o rechazar un pago
// @Description pending -> approved | rejected (terminales). Al aprobar se intenta marcar pagada la factura del (cliente, mes); si eso falla la aprobación queda igual y solo se loguea. Rechazar exige reason.
// @Tags payments
// @Accept json
// @Produce json
// @Param paymentID path string true "ID del pago"
// @Param payload body decideRequest true "Decisión"
// @Success 200 {object} paymentResponse
// @Failure 404 {string} string "payment not found"
// @Failure 409 {string} string "el pago ya fue decidido"
// @Router /payments/{paymentID}/status [put]
func decideHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decideRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id := chi.URLParam(r, "paymentID")

		var (
			p   Payment
			err error
		)
		if req.Status == StatusApproved {
			p, err = svc.Approve(r.Context(), id)
		} else {
			p, err = svc.Reject(r.Context(), id, req.Reason)
		}
		if err != nil {
			respondPaymentErr(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPaymentResponse(p))
	}
}

type settingsRequest struct {
	UPIID        string `json:"upi_id" validate:"required"`
	PayeeName    string `json:"payee_name"`
	Instructions string `json:"instructions"`
}

type settingsResponse struct {
	UPIID        string    `json:"upi_id"`
	PayeeName    string    `json:"payee_name"`
	Instructions string    `json:"instructions"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := svc.GetSettings(r.Context())
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "settings not configured", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			UPIID:        cfg.UPIID,
			PayeeName:    cfg.PayeeName,
			Instructions: cfg.Instructions,
			UpdatedAt:    cfg.UpdatedAt,
		})
	}
}

func putSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req settingsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		cfg, err := svc.PutSettings(r.Context(), SettingsInput{
			UPIID:        req.UPIID,
			PayeeName:    req.PayeeName,
			Instructions: req.Instructions,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			UPIID:        cfg.UPIID,
			PayeeName:    cfg.PayeeName,
			Instructions: cfg.Instructions,
			UpdatedAt:    cfg.UpdatedAt,
		})
	}
}

func respondPaymentErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "payment not found", http.StatusNotFound)
	case errors.Is(err, ErrBadState):
		http.Error(w, "payment already decided", http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toPaymentResponse(p Payment) paymentResponse {
	return paymentResponse{
		ID:              p.ID,
		CustomerID:      p.CustomerID,
		Amount:          p.Amount,
		BillMonth:       p.BillMonth,
		TransactionID:   p.TransactionID,
		Screenshot:      p.Screenshot,
		Status:          p.Status,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt,
		DecidedAt:       p.DecidedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
