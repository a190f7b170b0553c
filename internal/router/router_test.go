package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dairy-admin/internal/router"
)

const adminID = "admin-1"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	res := router.New(router.Options{})
	ts := httptest.NewServer(res.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_AdminRoutesRequireAuth(t *testing.T) {
	ts := newTestServer(t)

	// sin claims => 401
	st, _ := doReq(t, ts.URL, "GET", "/cows", "", nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without debug user, got %d", st)
	}

	// con usuario dev => 200
	st, body := doReq(t, ts.URL, "GET", "/cows", adminID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 with debug user, got %d body=%s", st, string(body))
	}

	// el health check no pide nada
	st, _ = doReq(t, ts.URL, "GET", "/health", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
}

func TestHTTP_EndToEnd_HerdAndReminders(t *testing.T) {
	ts := newTestServer(t)

	// 1) Admin registra una vaca
	cowID := createCow(t, ts.URL, map[string]any{
		"name":    "Ganga",
		"species": "cow",
	})

	// 2) Confirma preñez con parto estimado en 3 días
	due := time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	{
		st, body := doReq(t, ts.URL, "POST", "/cows/"+cowID+"/pregnancy", adminID, map[string]any{
			"expected_calving_date": due,
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 confirm pregnancy, got %d body=%s", st, string(body))
		}
		var resp struct {
			Status          string `json:"status"`
			PregnancyStatus bool   `json:"pregnancy_status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "pregnant" || !resp.PregnancyStatus {
			t.Fatalf("unexpected animal after pregnancy: %s", string(body))
		}
	}

	// 3) El parto cae dentro de la ventana => aparece el recordatorio
	{
		st, body := doReq(t, ts.URL, "GET", "/reminders", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminders, got %d body=%s", st, string(body))
		}
		var items []struct {
			Type       string `json:"type"`
			AnimalID   string `json:"animal_id"`
			AnimalName string `json:"animal_name"`
			Days       int    `json:"days"`
			Severity   string `json:"severity"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("json unmarshal reminders: %v body=%s", err, string(body))
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 reminder, got %d body=%s", len(items), string(body))
		}
		rem := items[0]
		if rem.Type != "calving" || rem.AnimalID != cowID || rem.AnimalName != "Ganga" {
			t.Fatalf("unexpected reminder: %+v", rem)
		}
		if rem.Days != 3 || rem.Severity != "info" {
			t.Fatalf("unexpected urgency: %+v", rem)
		}
	}

	// 4) El resumen del hato refleja la preñez
	{
		st, body := doReq(t, ts.URL, "GET", "/cows/counts", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 counts, got %d body=%s", st, string(body))
		}
		var counts struct {
			Total    int `json:"total"`
			Pregnant int `json:"pregnant"`
		}
		_ = json.Unmarshal(body, &counts)
		if counts.Total != 1 || counts.Pregnant != 1 {
			t.Fatalf("unexpected counts: %s", string(body))
		}
	}
}

func TestHTTP_EndToEnd_ReviewModeration(t *testing.T) {
	ts := newTestServer(t)

	// 1) Cliente manda reseña sin autenticarse
	var reviewID string
	{
		st, body := doReq(t, ts.URL, "POST", "/reviews", "", map[string]any{
			"customer_name": "Asha",
			"rating":        5,
			"text":          "excelente leche",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit review, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			IsApproved bool   `json:"is_approved"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Status != "pending" || resp.IsApproved {
			t.Fatalf("unexpected submitted review: %s", string(body))
		}
		reviewID = resp.ID
	}

	// 2) Todavía no sale en la vidriera pública
	{
		st, body := doReq(t, ts.URL, "GET", "/reviews/approved", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approved list, got %d", st)
		}
		var items []any
		_ = json.Unmarshal(body, &items)
		if len(items) != 0 {
			t.Fatalf("expected empty approved list, got %s", string(body))
		}
	}

	// 3) La moderación exige admin
	{
		st, _ := doReq(t, ts.URL, "PUT", "/reviews/"+reviewID+"/approve", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 approve without auth, got %d", st)
		}
	}

	// 4) Admin aprueba y la reseña aparece pública
	{
		st, body := doReq(t, ts.URL, "PUT", "/reviews/"+reviewID+"/approve", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/reviews/approved", "", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 approved list, got %d", st)
		}
		var items []struct {
			ID         string `json:"id"`
			IsApproved bool   `json:"is_approved"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != reviewID || !items[0].IsApproved {
			t.Fatalf("unexpected approved list: %s", string(body))
		}
	}
}

func TestHTTP_EndToEnd_LifecycleExpenses(t *testing.T) {
	ts := newTestServer(t)

	cowID := createCow(t, ts.URL, map[string]any{
		"name":    "Lali",
		"species": "buffalo",
	})

	// Enfermedad con costo genera el gasto veterinario
	{
		st, body := doReq(t, ts.URL, "POST", "/cows/"+cowID+"/sickness", adminID, map[string]any{
			"date":      "2024-03-05",
			"condition": "mastitis",
			"treatment": "antibiótico",
			"cost":      120.5,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 sickness, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/expenses?category=medicine", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 expenses, got %d body=%s", st, string(body))
		}
		var items []struct {
			Category string  `json:"category"`
			Amount   float64 `json:"amount"`
			AnimalID string  `json:"animal_id"`
		}
		if err := json.Unmarshal(body, &items); err != nil {
			t.Fatalf("json unmarshal expenses: %v body=%s", err, string(body))
		}
		if len(items) != 1 || items[0].Amount != 120.5 || items[0].AnimalID != cowID {
			t.Fatalf("unexpected medicine expenses: %s", string(body))
		}
	}

	// El animal queda enfermo y el historial registra el evento
	{
		st, body := doReq(t, ts.URL, "GET", "/cows/"+cowID, adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get cow, got %d", st)
		}
		var resp struct {
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.Status != "sick" {
			t.Fatalf("expected sick status, got %s", string(body))
		}
	}
}

func TestHTTP_PaymentSubmitAndApprove(t *testing.T) {
	ts := newTestServer(t)

	// Cliente sube el comprobante sin auth
	var paymentID string
	{
		st, body := doReq(t, ts.URL, "POST", "/payments", "", map[string]any{
			"customer_id":    "cust-1",
			"amount":         1500,
			"bill_month":     "2024-03",
			"transaction_id": "TXN123",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 submit payment, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.ID == "" || resp.Status != "pending" {
			t.Fatalf("unexpected submitted payment: %s", string(body))
		}
		paymentID = resp.ID
	}

	// Aparece en la cola de pendientes del admin
	{
		st, body := doReq(t, ts.URL, "GET", "/payments/pending", adminID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pending payments, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(body, &items)
		if len(items) != 1 || items[0].ID != paymentID {
			t.Fatalf("unexpected pending queue: %s", string(body))
		}
	}

	// Admin aprueba; repetir la decisión es conflicto
	{
		st, body := doReq(t, ts.URL, "PUT", "/payments/"+paymentID+"/status", adminID, map[string]any{
			"status": "approved",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 approve payment, got %d body=%s", st, string(body))
		}
		st, _ = doReq(t, ts.URL, "PUT", "/payments/"+paymentID+"/status", adminID, map[string]any{
			"status": "approved",
		})
		if st != http.StatusConflict {
			t.Fatalf("expected 409 on repeated decision, got %d", st)
		}
	}
}

func createCow(t *testing.T, baseURL string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/cows", adminID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create cow, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create cow: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
