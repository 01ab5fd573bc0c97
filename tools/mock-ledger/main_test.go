package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	domain "github.com/jpmardones/despensa/pkg/types"
)

func loadTestFixture(t *testing.T) *transactionsResponse {
	t.Helper()
	path := filepath.Join("testdata", "transactions.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var resp transactionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return &resp
}

func newTransactionsRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	req.SetPathValue("userID", "u1")
	req.Header.Set("Authorization", "Bearer mock-token")
	return req
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture.Transactions) == 0 {
		t.Fatal("expected transactions in fixture")
	}
	if fixture.Total != len(fixture.Transactions) {
		t.Errorf("total=%d, want %d", fixture.Total, len(fixture.Transactions))
	}
	for _, tx := range fixture.Transactions {
		if len(tx.Items) == 0 {
			t.Errorf("transaction %s has no items", tx.ID)
		}
	}
}

func TestTransactionsHandler_MissingAuth(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := transactionsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/users/u1/transactions", http.NoBody)
	req.SetPathValue("userID", "u1")
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusUnauthorized)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp["error"] != "invalid_token" {
		t.Errorf("error=%s, want invalid_token", resp["error"])
	}
}

func TestTransactionsHandler_AllTransactions(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := transactionsHandler(testLogger(), fixture)
	w := httptest.NewRecorder()

	handler(w, newTransactionsRequest("/users/u1/transactions"))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}

	var resp transactionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Total != len(fixture.Transactions) {
		t.Errorf("total=%d, want %d", resp.Total, len(fixture.Transactions))
	}
	if len(resp.Transactions) != len(fixture.Transactions) {
		t.Errorf("transactions=%d, want %d", len(resp.Transactions), len(fixture.Transactions))
	}
	if resp.Next != "" {
		t.Error("expected empty next when all transactions returned")
	}
}

func TestTransactionsHandler_Limit(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := transactionsHandler(testLogger(), fixture)
	w := httptest.NewRecorder()

	handler(w, newTransactionsRequest("/users/u1/transactions?limit=2"))

	var resp transactionsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Transactions) != 2 {
		t.Errorf("transactions=%d, want 2", len(resp.Transactions))
	}
	if resp.Total != len(fixture.Transactions) {
		t.Errorf("total=%d, want %d", resp.Total, len(fixture.Transactions))
	}
	if resp.Next == "" {
		t.Error("expected non-empty next for truncated response")
	}
	// Newest-first order from the fixture is preserved.
	if resp.Transactions[0].ID != fixture.Transactions[0].ID {
		t.Errorf("first transaction=%s, want %s", resp.Transactions[0].ID, fixture.Transactions[0].ID)
	}
}

func TestTransactionsHandler_EmptyFixture(t *testing.T) {
	empty := &transactionsResponse{}
	handler := transactionsHandler(testLogger(), empty)
	w := httptest.NewRecorder()

	handler(w, newTransactionsRequest("/users/u1/transactions"))

	var raw struct {
		Transactions []domain.Transaction `json:"transactions"`
		Total        int                  `json:"total"`
	}
	if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if raw.Total != 0 {
		t.Errorf("total=%d, want 0", raw.Total)
	}
	if raw.Transactions == nil {
		t.Error("expected empty array, got nil")
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
