package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reposelink/reposelink/internal/auth"
	"github.com/reposelink/reposelink/internal/models"
	"github.com/reposelink/reposelink/internal/realtime"
	"github.com/reposelink/reposelink/internal/session"
	"github.com/reposelink/reposelink/internal/storage/memory"
)

// setupTestServer builds the full API over zero-latency stores.
func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	sessions, err := session.New(context.Background(), session.Config{KV: memory.New()})
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	store := realtime.New(realtime.Config{})
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	srv := NewServer(sessions, store, jwtManager, nil)
	ts := httptest.NewServer(srv.Router())
	return ts, ts.Close
}

// doJSON sends a JSON request and decodes the response body into out (if
// out is non-nil), returning the status code.
func doJSON(t *testing.T, method, url, token string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

// login authenticates with the seeded demo account and returns the token.
func login(t *testing.T, baseURL string) string {
	t.Helper()

	var resp authResponse
	status := doJSON(t, http.MethodPost, baseURL+"/api/v1/auth/login", "",
		map[string]string{"email": "demo@reposelink.com", "password": "demo123"}, &resp)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	if resp.Token == "" {
		t.Fatal("login: expected a token")
	}
	return resp.Token
}

func TestLoginEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	t.Run("valid credentials", func(t *testing.T) {
		var resp authResponse
		status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "",
			map[string]string{"email": "demo@reposelink.com", "password": "demo123"}, &resp)
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if resp.User == nil || resp.User.Email != "demo@reposelink.com" {
			t.Errorf("unexpected user: %+v", resp.User)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/login", "",
			map[string]string{"email": "demo@reposelink.com", "password": "wrong"}, nil)
		if status != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", status)
		}
	})
}

func TestRegisterEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	body := map[string]string{
		"email":     "owner@newhome.co.za",
		"password":  "secret123",
		"firstName": "Lerato",
		"lastName":  "Mokoena",
		"company":   "Sunset Funerals",
		"phone":     "+27 10 555 1234",
	}

	var resp authResponse
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/register", "", body, &resp); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if resp.User.Plan != models.PlanFree {
		t.Errorf("plan: expected free, got %s", resp.User.Plan)
	}

	// Same email again conflicts.
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/register", "", body, nil); status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
}

func TestAuthRequired(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients", "", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients", "not-a-token", nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", status)
	}
}

func TestClientLifecycle(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, ts.URL)

	// Login seeds the demo dataset.
	var clients []models.Client
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients", token, nil, &clients); status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if len(clients) != 3 {
		t.Fatalf("expected 3 seeded clients, got %d", len(clients))
	}

	// Create.
	var created models.Client
	status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/clients", token, map[string]any{
		"fullName":    "Peter Botha",
		"email":       "family@email.com",
		"dateOfBirth": "1950-06-01",
		"serviceType": "burial",
		"status":      "consultation",
		"totalAmount": 4000,
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", status)
	}
	if created.OwnerID == "" {
		t.Error("expected owner to be stamped from the session")
	}

	// Update.
	var updated models.Client
	status = doJSON(t, http.MethodPatch, ts.URL+"/api/v1/clients/"+created.ID, token,
		map[string]any{"status": "planning"}, &updated)
	if status != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", status)
	}
	if updated.Status != models.StatusPlanning {
		t.Errorf("status: expected planning, got %s", updated.Status)
	}

	// Record a payment against it.
	var payment models.Payment
	status = doJSON(t, http.MethodPost, ts.URL+"/api/v1/payments", token, map[string]any{
		"clientId":  created.ID,
		"amount":    500,
		"method":    "cash",
		"status":    "completed",
		"reference": "CASH-T-001",
	}, &payment)
	if status != http.StatusCreated {
		t.Fatalf("payment: expected 201, got %d", status)
	}

	var clientPayments []models.Payment
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients/"+created.ID+"/payments", token, nil, &clientPayments); status != http.StatusOK {
		t.Fatalf("client payments: expected 200, got %d", status)
	}
	if len(clientPayments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(clientPayments))
	}

	// Delete cascades.
	if status := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/clients/"+created.ID, token, nil, nil); status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients/"+created.ID, token, nil, nil); status != http.StatusNotFound {
		t.Fatalf("get deleted: expected 404, got %d", status)
	}
	clientPayments = nil
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/clients/"+created.ID+"/payments", token, nil, &clientPayments); status != http.StatusOK {
		t.Fatalf("client payments: expected 200, got %d", status)
	}
	if len(clientPayments) != 0 {
		t.Errorf("expected cascade to remove payments, got %d", len(clientPayments))
	}

	t.Run("invalid input", func(t *testing.T) {
		status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/clients", token,
			map[string]any{"fullName": "", "serviceType": "burial", "status": "consultation"}, nil)
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", status)
		}
	})
}

func TestNotificationEndpoints(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, ts.URL)

	var count map[string]int
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/notifications/unread-count", token, nil, &count); status != http.StatusOK {
		t.Fatalf("unread-count: expected 200, got %d", status)
	}
	// Login seeds the welcome notification.
	if count["count"] != 1 {
		t.Fatalf("expected 1 unread notification, got %d", count["count"])
	}

	var feed []models.Notification
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/notifications", token, nil, &feed); status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if len(feed) != 1 || feed[0].Title != "Welcome to ReposeLink" {
		t.Fatalf("unexpected feed: %+v", feed)
	}

	if status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/notifications/"+feed[0].ID+"/read", token, nil, nil); status != http.StatusOK {
		t.Fatalf("mark read: expected 200, got %d", status)
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/notifications/unread-count", token, nil, &count); status != http.StatusOK {
		t.Fatalf("unread-count: expected 200, got %d", status)
	}
	if count["count"] != 0 {
		t.Errorf("expected 0 unread after read, got %d", count["count"])
	}

	if status := doJSON(t, http.MethodDelete, ts.URL+"/api/v1/notifications", token, nil, nil); status != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", status)
	}
	feed = nil
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/notifications", token, nil, &feed); status != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", status)
	}
	if len(feed) != 0 {
		t.Errorf("expected empty feed after clear, got %d", len(feed))
	}
}

func TestDashboardAndSync(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, ts.URL)

	var dashboard dashboardResponse
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/dashboard/stats", token, nil, &dashboard); status != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", status)
	}
	if dashboard.Stats.TotalClients != 3 {
		t.Errorf("total clients: expected 3, got %d", dashboard.Stats.TotalClients)
	}
	// Seed revenue: 3000 + 2000 + 5200 + 1000 completed payments.
	if dashboard.Stats.Revenue != 11200 {
		t.Errorf("revenue: expected 11200, got %v", dashboard.Stats.Revenue)
	}
	if len(dashboard.Upcoming) != 1 {
		t.Errorf("expected 1 upcoming service, got %d", len(dashboard.Upcoming))
	}

	var syncStatus realtime.SyncStatus
	if status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/sync", token, nil, &syncStatus); status != http.StatusOK {
		t.Fatalf("sync: expected 200, got %d", status)
	}
	if !syncStatus.Online {
		t.Error("expected online status from static probe")
	}
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/sync/status", token, nil, &syncStatus); status != http.StatusOK {
		t.Fatalf("sync status: expected 200, got %d", status)
	}
}

func TestPlansEndpoint(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()

	var plans []planInfo
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/plans", "", nil, &plans); status != http.StatusOK {
		t.Fatalf("plans: expected 200, got %d", status)
	}
	if len(plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(plans))
	}
	want := map[models.Plan]float64{
		models.PlanFree:         0,
		models.PlanProfessional: 299,
		models.PlanPremium:      599,
	}
	for _, p := range plans {
		if want[p.Plan] != p.Price {
			t.Errorf("plan %s: expected %v, got %v", p.Plan, want[p.Plan], p.Price)
		}
	}
}

func TestCurrentUserEndpoints(t *testing.T) {
	ts, cleanup := setupTestServer(t)
	defer cleanup()
	token := login(t, ts.URL)

	var user models.User
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/auth/me", token, nil, &user); status != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if user.Email != "demo@reposelink.com" {
		t.Errorf("unexpected user: %s", user.Email)
	}

	var updated models.User
	status := doJSON(t, http.MethodPatch, ts.URL+"/api/v1/auth/me", token,
		map[string]string{"company": "Updated Memorials"}, &updated)
	if status != http.StatusOK {
		t.Fatalf("update me: expected 200, got %d", status)
	}
	if updated.Company != "Updated Memorials" {
		t.Errorf("company: got %q", updated.Company)
	}

	if status := doJSON(t, http.MethodPost, ts.URL+"/api/v1/auth/logout", token, nil, nil); status != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", status)
	}
	// The JWT stays valid (stateless) but the session user is gone.
	if status := doJSON(t, http.MethodGet, ts.URL+"/api/v1/auth/me", token, nil, nil); status != http.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", status)
	}
}
