package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"nativus/models"

	"github.com/gin-gonic/gin"
)

// helper to perform requests with auth token
func performRequest(r http.Handler, method, path string, body io.Reader, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewBuffer(b)
}

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	jwtSecret = []byte("test-secret")
	loginAttempts = newClientLimiter(1000, 1000) // throttling is tested separately
	initDB(filepath.Join(t.TempDir(), "test.db"))
	r := gin.New()
	r.Use(requestMetrics())
	setupRoutes(r)
	return r
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	resp := performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": username, "password": password}), "")
	if resp.Code != 200 && resp.Code != 409 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": username, "password": password}), "")
	if resp.Code != 200 {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	token, _ := loginResp["token"].(string)
	if token == "" {
		t.Fatalf("empty token in login response: %+v", loginResp)
	}
	return token
}

func TestFullFlow(t *testing.T) {
	r := setupTestServer(t)

	// 1. Register + login
	token := loginAs(t, r, "operator", "pass123")

	// 2. Duplicate registration conflicts
	resp := performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": "operator", "password": "pass123"}), "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate register got %d", resp.Code)
	}

	// 3. Wrong password rejected
	resp = performRequest(r, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": "operator", "password": "nope99"}), "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password got %d", resp.Code)
	}

	// 4. Create a customer and round-trip every field through the listing
	custReq := map[string]any{
		"name": "Ada Lovelace", "email": "ada@example.com", "phone": "+1-555-0100",
		"city": "London", "country": "UK", "shopify_customer_id": "shp_123",
		"note": "VIP", "created_date": "2024-01-05",
	}
	resp = performRequest(r, http.MethodPost, "/customers", jsonBody(t, custReq), token)
	if resp.Code != 200 {
		t.Fatalf("create customer failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/customers", nil, token)
	if resp.Code != 200 {
		t.Fatalf("list customers failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var custList struct {
		Customers []models.Customer `json:"customers"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &custList)
	if len(custList.Customers) != 1 {
		t.Fatalf("expected 1 customer got %d", len(custList.Customers))
	}
	got := custList.Customers[0]
	if got.Name != "Ada Lovelace" || got.Email != "ada@example.com" || got.Phone != "+1-555-0100" ||
		got.City != "London" || got.Country != "UK" || got.ShopifyCustomerID != "shp_123" ||
		got.Note != "VIP" || got.CreatedDate.Format(dayFormat) != "2024-01-05" {
		t.Fatalf("customer did not round-trip: %+v", got)
	}

	// 5. Create an order against the customer
	orderReq := map[string]any{
		"order_number": "ORD-1", "order_date": "2024-01-06", "customer_id": got.ID,
		"total_amount": 50.0, "payment_status": "Pending", "fulfillment_status": "Unfulfilled",
		"sales_channel": "Online Store",
	}
	resp = performRequest(r, http.MethodPost, "/orders", jsonBody(t, orderReq), token)
	if resp.Code != 200 {
		t.Fatalf("create order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var created struct {
		ID uint `json:"id"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &created)

	// 6. Update the order
	orderReq["payment_status"] = "Paid"
	orderReq["fulfillment_status"] = "Fulfilled"
	resp = performRequest(r, http.MethodPut, "/orders/1", jsonBody(t, orderReq), token)
	if resp.Code != 200 {
		t.Fatalf("update order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var updated models.Order
	_ = json.Unmarshal(resp.Body.Bytes(), &updated)
	if updated.PaymentStatus != "Paid" {
		t.Fatalf("expected Paid after update got %q", updated.PaymentStatus)
	}

	// 7. Expense and task entries
	resp = performRequest(r, http.MethodPost, "/expenses", jsonBody(t, map[string]any{"amount": 20.0, "type": "expense", "entry_date": "2024-01-07"}), token)
	if resp.Code != 200 {
		t.Fatalf("create expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/tasks", jsonBody(t, map[string]any{"title": "Follow up", "due_date": "2024-01-08"}), token)
	if resp.Code != 200 {
		t.Fatalf("create task failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 8. Dashboard reflects the records
	resp = performRequest(r, http.MethodGet, "/dashboard", nil, token)
	if resp.Code != 200 {
		t.Fatalf("dashboard failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var dash struct {
		Stats basicStats `json:"stats"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &dash)
	if dash.Stats.TotalCustomers != 1 || dash.Stats.TotalOrders != 1 || dash.Stats.OpenTasks != 1 {
		t.Fatalf("unexpected dashboard stats: %+v", dash.Stats)
	}
	if dash.Stats.TotalExpense != 20.0 || dash.Stats.Net != -20.0 {
		t.Fatalf("unexpected expense totals: %+v", dash.Stats)
	}

	// 9. Delete removes the record from listings
	resp = performRequest(r, http.MethodDelete, "/tasks/1", nil, token)
	if resp.Code != 200 {
		t.Fatalf("delete task failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodGet, "/tasks", nil, token)
	var taskList struct {
		Tasks []models.Task `json:"tasks"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &taskList)
	if len(taskList.Tasks) != 0 {
		t.Fatalf("expected no tasks after delete got %d", len(taskList.Tasks))
	}

	// 10. Refresh token rotation
	resp = performRequest(r, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": "operator", "password": "pass123"}), "")
	var loginResp map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &loginResp)
	refresh, _ := loginResp["refresh_token"].(string)
	resp = performRequest(r, http.MethodPost, "/refresh", jsonBody(t, map[string]string{"refresh_token": refresh}), "")
	if resp.Code != 200 {
		t.Fatalf("refresh failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	// old token is revoked after rotation
	resp = performRequest(r, http.MethodPost, "/refresh", jsonBody(t, map[string]string{"refresh_token": refresh}), "")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for reused refresh token got %d", resp.Code)
	}

	// 11. Metrics exposition includes the record gauges
	resp = performRequest(r, http.MethodGet, "/metrics", nil, "")
	if resp.Code != 200 {
		t.Fatalf("metrics failed status=%d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "nativus_records_customers_total") {
		t.Fatal("metrics exposition missing record gauges")
	}

	// 12. Unauthorized access to protected endpoint should be 401
	unauth := performRequest(r, http.MethodGet, "/customers", nil, "")
	if unauth.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthorized list got %d", unauth.Code)
	}
}

func TestValidationRejections(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	cases := []struct {
		name string
		path string
		body map[string]any
	}{
		{"negative order amount", "/orders", map[string]any{"order_number": "ORD-X", "total_amount": -5.0}},
		{"bad payment status", "/orders", map[string]any{"order_number": "ORD-X", "total_amount": 5.0, "payment_status": "Maybe"}},
		{"bad expense type", "/expenses", map[string]any{"amount": 5.0, "type": "loan"}},
		{"negative expense amount", "/expenses", map[string]any{"amount": -5.0}},
		{"bad task status", "/tasks", map[string]any{"title": "x", "status": "Someday"}},
		{"bad task priority", "/tasks", map[string]any{"title": "x", "priority": "Urgent"}},
		{"malformed customer date", "/customers", map[string]any{"name": "x", "created_date": "05/01/2024"}},
	}
	for _, tc := range cases {
		resp := performRequest(r, http.MethodPost, tc.path, jsonBody(t, tc.body), token)
		if resp.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400 got %d body=%s", tc.name, resp.Code, resp.Body.String())
		}
	}

	// nothing was persisted
	resp := performRequest(r, http.MethodGet, "/dashboard", nil, token)
	var dash struct {
		Stats basicStats `json:"stats"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &dash)
	if dash.Stats.TotalCustomers != 0 || dash.Stats.TotalOrders != 0 || dash.Stats.OpenTasks != 0 {
		t.Fatalf("rejected requests must not change state: %+v", dash.Stats)
	}
}

func TestRegisterStatusCodes(t *testing.T) {
	r := setupTestServer(t)

	// short password is a validation failure, not a conflict
	resp := performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": "operator", "password": "abc"}), "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short password got %d body=%s", resp.Code, resp.Body.String())
	}

	// whitespace-only username likewise
	resp = performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": "   ", "password": "pass123"}), "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank username got %d body=%s", resp.Code, resp.Body.String())
	}

	// nothing was created by the rejected attempts
	resp = performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": "operator", "password": "pass123"}), "")
	if resp.Code != 200 {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// a taken username is the only conflict
	resp = performRequest(r, http.MethodPost, "/register", jsonBody(t, map[string]string{"username": "operator", "password": "pass456"}), "")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate register got %d body=%s", resp.Code, resp.Body.String())
	}
}

func TestOperatorSeed(t *testing.T) {
	t.Setenv("OPERATOR_USER", "seeded")
	t.Setenv("OPERATOR_PASSWORD", "seedpass")
	r := setupTestServer(t)

	// login works without a prior /register call
	resp := performRequest(r, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": "seeded", "password": "seedpass"}), "")
	if resp.Code != 200 {
		t.Fatalf("login as seeded operator failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// seeding again leaves the account alone
	seedOperator()
	resp = performRequest(r, http.MethodPost, "/login", jsonBody(t, map[string]string{"username": "seeded", "password": "seedpass"}), "")
	if resp.Code != 200 {
		t.Fatalf("login after reseed failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestMetricsTodayGauges(t *testing.T) {
	r := setupTestServer(t)
	token := loginAs(t, r, "operator", "pass123")

	// order and entries dated today (omitted dates default to today)
	resp := performRequest(r, http.MethodPost, "/orders", jsonBody(t, map[string]any{"order_number": "ORD-NOW", "total_amount": 50.0}), token)
	if resp.Code != 200 {
		t.Fatalf("create order failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/expenses", jsonBody(t, map[string]any{"amount": 100.0, "type": "income"}), token)
	if resp.Code != 200 {
		t.Fatalf("create income failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/expenses", jsonBody(t, map[string]any{"amount": 40.0, "type": "expense"}), token)
	if resp.Code != 200 {
		t.Fatalf("create expense failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	// one order dated yesterday must not count
	resp = performRequest(r, http.MethodPost, "/orders", jsonBody(t, map[string]any{"order_number": "ORD-OLD", "order_date": today().AddDate(0, 0, -1).Format(dayFormat), "total_amount": 10.0}), token)
	if resp.Code != 200 {
		t.Fatalf("create old order failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	resp = performRequest(r, http.MethodGet, "/metrics", nil, "")
	if resp.Code != 200 {
		t.Fatalf("metrics failed status=%d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		"nativus_records_orders_today 1",
		"nativus_records_income_today 100",
		"nativus_records_expense_today 40",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics exposition missing %q", want)
		}
	}
}
