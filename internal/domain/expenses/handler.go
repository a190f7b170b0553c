package expenses

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dairy-admin/internal/platform/dates"
	"dairy-admin/internal/platform/validate"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/expenses", func(er chi.Router) {
		er.Post("/", createExpenseHandler(svc))
		er.Get("/", listExpensesHandler(svc))
		er.Get("/summary", expenseTotalsHandler(svc))
	})
}

type createExpenseRequest struct {
	Date        string  `json:"date" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
	AnimalID    string  `json:"animal_id"`
}

type expenseResponse struct {
	ID          string     `json:"id"`
	Date        dates.Date `json:"date"`
	Category    Category   `json:"category"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	AnimalID    string     `json:"animal_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// createExpenseHandler godoc
// @Summary Registrar gasto
// @Tags expenses
// @Accept json
// @Produce json
// @Param payload body createExpenseRequest true "Gasto; date en YYYY-MM-DD, category del enum cerrado"
// @Success 201 {object} expenseResponse
// @Failure 400 {string} string "invalid json / categoría o fecha inválida"
// @Router /expenses [post]
func createExpenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createExpenseRequest
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

		e, err := svc.Create(r.Context(), CreateInput{
			Date:        d,
			Category:    Category(req.Category),
			Amount:      req.Amount,
			Description: req.Description,
			AnimalID:    req.AnimalID,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toExpenseResponse(e))
	}
}

func listExpensesHandler(svc *Service) http.HandlerFunc {
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

		out := make([]expenseResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toExpenseResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func expenseTotalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := parseFilter(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		totals, grand, err := svc.TotalsByCategory(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"by_category": totals,
			"total":       grand,
		})
	}
}

func parseFilter(r *http.Request) (Filter, error) {
	f := Filter{
		Category: Category(r.URL.Query().Get("category")),
		AnimalID: r.URL.Query().Get("animal_id"),
	}

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

func toExpenseResponse(e Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID,
		Date:        e.Date,
		Category:    e.Category,
		Amount:      e.Amount,
		Description: e.Description,
		AnimalID:    e.AnimalID,
		CreatedAt:   e.CreatedAt,
	}
}

// writeJSON duplicado a propósito por módulo (ver animals/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
