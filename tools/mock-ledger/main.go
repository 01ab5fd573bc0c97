// Package main implements a mock grocery-ledger API server for local
// development. It serves canned transactions from a JSON fixture to
// simulate the ledger transactions endpoint without requiring real
// ledger credentials.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	domain "github.com/jpmardones/despensa/pkg/types"
)

type transactionsResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Total        int                  `json:"total"`
	Next         string               `json:"next"`
}

func main() {
	port := flag.Int("port", 8090, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-ledger/testdata/transactions.json", "path to transactions fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "transactions", len(fixture.Transactions))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{userID}/transactions", transactionsHandler(logger, fixture))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock ledger server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*transactionsResponse, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp transactionsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &resp, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func transactionsHandler(logger *slog.Logger, fixture *transactionsResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Require a Bearer token to be present (don't verify it).
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") == "" {
			logger.Warn("transactions request missing Bearer token")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{
				"error":             "invalid_token",
				"error_description": "bearer token missing or empty",
			})
			return
		}

		userID := r.PathValue("userID")

		limit := 50
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
				limit = v
			}
		}

		txs := fixture.Transactions
		total := len(txs)
		if limit < len(txs) {
			txs = txs[:limit]
		}

		next := ""
		if limit < total {
			next = fmt.Sprintf("/users/%s/transactions?offset=%d&limit=%d", userID, limit, limit)
		}

		resp := transactionsResponse{
			Transactions: txs,
			Total:        total,
			Next:         next,
		}

		// Return empty array instead of null when no results.
		if resp.Transactions == nil {
			resp.Transactions = []domain.Transaction{}
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("transactions", "user", userID, "returned", len(txs), "total", total, "limit", limit)
	}
}
