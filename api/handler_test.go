package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud-portal/core/admission"
	"cloud-portal/core/types"
	"cloud-portal/db"
	"cloud-portal/internal/errors"
)

func newTestServer(t *testing.T, maxInstances int) *Server {
	t.Helper()

	store, err := db.Open(":memory:")
	require.NoError(t, err)

	tariffs := &types.Tariffs{
		Computation: types.ComputationTariff{
			MaxInstances: maxInstances,
			Tiers: []types.RAMTier{
				{SizeGb: 16, MonthlyPrice: decimal.NewFromInt(10), MinStorageTb: 1},
				{SizeGb: 32, MonthlyPrice: decimal.NewFromInt(20), MinStorageTb: 2},
				{SizeGb: 64, MonthlyPrice: decimal.NewFromInt(40), MinStorageTb: 4},
			},
		},
		Storage: types.StorageTariff{
			PricePerTbMonth: decimal.NewFromInt(2),
			MinTbPerOrder:   1,
			MaxGlobalTb:     100,
		},
		DataTransfer: types.DataTransferTariff{
			BasePrice:       decimal.NewFromInt(1),
			BaseTierGb:      10,
			Tier1Gb:         20,
			Tier1Multiplier: 0.8,
			Tier2Multiplier: 0.5,
			MaxGb:           5000,
		},
		Currency: types.CurrencyEUR,
	}
	require.NoError(t, store.SeedTariffs(context.Background(), tariffs))

	users := map[string]*types.User{
		"tok-alice": {ID: 1, Email: "alice@example.com", Name: "Alice"},
		"tok-bob":   {ID: 2, Email: "bob@example.com", Name: "Bob"},
	}
	auth := AuthenticatorFunc(func(ctx context.Context, token string) (*types.User, error) {
		if user, ok := users[token]; ok {
			return user, nil
		}
		return nil, errors.Unauthorized("unknown API token")
	})

	controller := admission.NewController(store, store, admission.Policy{})
	return NewServer(controller, auth, "test")
}

func doJSON(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/version", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestQuoteEndpoint(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodPost, "/api/quote", "", QuoteRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	require.Equal(t, http.StatusOK, rec.Code)

	var quote QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, "13.00", quote.Monthly)
	assert.Equal(t, "1.00", quote.DataTransfer)
	assert.Equal(t, "EUR", quote.Currency)
}

func TestQuoteEndpointRejections(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodPost, "/api/quote", "", QuoteRequest{RAMGb: 24, StorageTb: 1, DataGb: 10})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_RAM_SIZE", errorCode(t, rec))

	rec = doJSON(t, s, http.MethodPost, "/api/quote", "", QuoteRequest{RAMGb: 64, StorageTb: 1, DataGb: 10})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STORAGE", errorCode(t, rec))

	rec = doJSON(t, s, http.MethodPost, "/api/quote", "", QuoteRequest{RAMGb: 16, StorageTb: 1, DataGb: 9000})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "DATA_CEILING_EXCEEDED", errorCode(t, rec))
}

func TestOrdersRequireAuth(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodPost, "/api/orders", "", OrderRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/orders", "tok-nobody", OrderRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodPost, "/api/orders", "tok-alice", OrderRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.OrderID)
	assert.Equal(t, "13.00", created.TotalPrice)
	assert.Equal(t, 1, created.Months)

	// Listing is scoped to the caller.
	rec = doJSON(t, s, http.MethodGet, "/api/orders", "tok-bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listing struct {
		Orders []OrderResponse `json:"orders"`
		Count  int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Zero(t, listing.Count)

	rec = doJSON(t, s, http.MethodGet, "/api/orders", "tok-alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, 1, listing.Count)

	// Only the owner may cancel.
	path := fmt.Sprintf("/api/orders/%d", created.OrderID)
	rec = doJSON(t, s, http.MethodDelete, path, "tok-bob", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "NOT_OWNER", errorCode(t, rec))

	rec = doJSON(t, s, http.MethodDelete, path, "tok-alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The order is gone now.
	rec = doJSON(t, s, http.MethodDelete, path, "tok-alice", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", errorCode(t, rec))
}

func TestSubmitOrderCapacityConflict(t *testing.T) {
	s := newTestServer(t, 1)

	rec := doJSON(t, s, http.MethodPost, "/api/orders", "tok-alice", OrderRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/api/orders", "tok-bob", OrderRequest{RAMGb: 16, StorageTb: 1, DataGb: 10})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NO_COMPUTATION_CAPACITY", errorCode(t, rec))
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodPost, "/api/orders", "tok-alice", OrderRequest{RAMGb: 32, StorageTb: 2, DataGb: 30})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/status", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, 1, status.UsedComputationInstances)
	assert.Equal(t, 4, status.MaxInstances)
	assert.Equal(t, float64(2), status.UsedStorageTb)
	assert.Equal(t, float64(30), status.UsedDataGb)
}

func TestTariffsEndpoint(t *testing.T) {
	s := newTestServer(t, 4)

	rec := doJSON(t, s, http.MethodGet, "/api/tariffs", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var tariffs TariffsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tariffs))
	require.Len(t, tariffs.Computation.Tiers, 3)
	assert.Equal(t, "10.00", tariffs.Computation.Tiers[0].MonthlyPrice)
	assert.Equal(t, "2.00", tariffs.Storage.PricePerTbMonth)
	assert.Equal(t, float64(5000), tariffs.DataTransfer.MaxGb)
}

func TestMalformedBodyRejected(t *testing.T) {
	s := newTestServer(t, 4)

	req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, rec))
}
