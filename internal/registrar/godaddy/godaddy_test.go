package godaddy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainmgr/internal/registrar"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(Options{
		APIKey:    "k",
		APISecret: "s",
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_MissingCredentials(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{APIKey: "k"})
	require.Error(t, err)
	_, err = NewClient(Options{APISecret: "s"})
	require.Error(t, err)
}

func TestClient_CheckAvailability(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/domains/available", r.URL.Path)
		assert.Equal(t, "example.com", r.URL.Query().Get("domain"))
		assert.Equal(t, "sso-key k:s", r.Header.Get("Authorization"))

		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{
			"domain":"example.com",
			"available":true,
			"definitive":true,
			"price":10990000,
			"currency":"USD",
			"period":1
		}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).CheckAvailability(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com", got.Domain)
	assert.True(t, got.Available)
	assert.True(t, got.Definitive)
	assert.InDelta(t, 10.99, got.Price, 1e-9)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, 1, got.Period)
}

// Two identical calls against an unchanged upstream must agree.
func TestClient_CheckAvailability_Repeatable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"domain":"example.com","available":false}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	first, err := c.CheckAvailability(context.Background(), "example.com")
	require.NoError(t, err)
	second, err := c.CheckAvailability(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, first.Available, second.Available)
}

func TestClient_CheckAvailability_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":"UNSUPPORTED_TLD","message":"tld is not supported"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).CheckAvailability(context.Background(), "example.nope")
	var apiErr *registrar.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "UNSUPPORTED_TLD", apiErr.Code)
	assert.Equal(t, "tld is not supported", apiErr.Message)
}

func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(t, srv.URL).CheckAvailability(context.Background(), "example.com")
	var netErr *registrar.NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Error(t, errors.Unwrap(netErr))
}

func TestClient_Suggest_Empty(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/domains/suggest", r.URL.Path)
		assert.Equal(t, "example", r.URL.Query().Get("query"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Suggest(context.Background(), "example", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClient_Search_FiltersTLDs(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "io,dev", r.URL.Query().Get("tlds"))
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`[
			{"domain":"acme.io","price":39990000},
			{"domain":"acme.xyz","price":1990000},
			{"domain":"acme.dev","price":14990000}
		]`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Search(context.Background(), "acme", []string{"io", "dev"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "acme.io", got[0].Domain)
	assert.InDelta(t, 39.99, got[0].Price, 1e-9)
	assert.Equal(t, "acme.dev", got[1].Domain)
}

func TestClient_Purchase(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/domains/purchase", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":123456,"itemCount":1,"total":21980000,"currency":"USD"}`))
	}))
	defer srv.Close()

	order := registrar.PurchaseOrder{
		Domain:    "example.com",
		Years:     2,
		Privacy:   true,
		AutoRenew: false,
		Contact: registrar.ContactInfo{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			Email:        "ada@example.com",
			Phone:        "+14155550100",
			AddressLine1: "1 Main St",
			City:         "Springfield",
			State:        "IL",
			PostalCode:   "62701",
			Country:      "us",
		},
	}

	got, err := newTestClient(t, srv.URL).Purchase(context.Background(), order)
	require.NoError(t, err)
	assert.Equal(t, "123456", got.OrderID)
	assert.Equal(t, 1, got.ItemCount)
	assert.InDelta(t, 21.98, got.Total, 1e-9)
	assert.Empty(t, got.PaymentURL)

	// The wire body must contain exactly the documented keys.
	wantKeys := []string{
		"domain", "consent", "period", "renewAuto", "privacy",
		"contactAdmin", "contactBilling", "contactRegistrant", "contactTech",
	}
	require.Len(t, gotBody, len(wantKeys))
	for _, k := range wantKeys {
		assert.Contains(t, gotBody, k)
	}

	assert.Equal(t, "example.com", gotBody["domain"])
	assert.Equal(t, float64(2), gotBody["period"])
	assert.Equal(t, false, gotBody["renewAuto"])
	assert.Equal(t, true, gotBody["privacy"])

	consent, ok := gotBody["consent"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"DNRA"}, consent["agreementKeys"])
	assert.NotEmpty(t, consent["agreedBy"])
	assert.NotZero(t, consent["agreedAt"])

	reg, ok := gotBody["contactRegistrant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Ada", reg["nameFirst"])
	assert.Equal(t, "Lovelace", reg["nameLast"])
	mailing, ok := reg["addressMailing"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "US", mailing["country"])
	assert.Equal(t, "62701", mailing["postalCode"])

	// Registrant fills every contact block.
	assert.Equal(t, gotBody["contactRegistrant"], gotBody["contactAdmin"])
	assert.Equal(t, gotBody["contactRegistrant"], gotBody["contactBilling"])
	assert.Equal(t, gotBody["contactRegistrant"], gotBody["contactTech"])
}

func TestClient_Purchase_UpstreamValidation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{
			"code":"INVALID_BODY",
			"message":"request body doesn't fulfill schema",
			"fields":[{"path":"contactAdmin.phone","code":"INVALID_PHONE","message":"invalid phone format"}]
		}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Purchase(context.Background(), registrar.PurchaseOrder{Domain: "example.com", Years: 1})
	var apiErr *registrar.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_BODY", apiErr.Code)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "contactAdmin.phone", apiErr.Fields[0].Path)
	assert.Equal(t, "INVALID_PHONE", apiErr.Fields[0].Code)
	assert.Contains(t, apiErr.Error(), "invalid phone format")
}

func TestClient_Purchase_PendingPayment(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":"ord-991","paymentUrl":"upi://pay?pa=registrar@bank&am=10.99"}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).Purchase(context.Background(), registrar.PurchaseOrder{Domain: "example.com", Years: 1})
	require.NoError(t, err)
	assert.Equal(t, "ord-991", got.OrderID)
	assert.Equal(t, "upi://pay?pa=registrar@bank&am=10.99", got.PaymentURL)
}

func TestClient_OrderStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/orders/123456", r.URL.Path)
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write([]byte(`{"orderId":123456,"status":"COMPLETED","createdAt":"2026-08-01T12:00:00Z","total":10990000,"currency":"USD"}`))
	}))
	defer srv.Close()

	got, err := newTestClient(t, srv.URL).OrderStatus(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "123456", got.OrderID)
	assert.Equal(t, "COMPLETED", got.Status)
	assert.InDelta(t, 10.99, got.Total, 1e-9)
}
