package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/api/v1", Timeout: 5 * time.Second}, nil)
	require.NoError(t, err)
	return client, server
}

func TestNewClient(t *testing.T) {
	t.Run("requires base URL", func(t *testing.T) {
		_, err := NewClient(Config{}, nil)
		assert.Error(t, err)
	})

	t.Run("rejects relative base URL", func(t *testing.T) {
		_, err := NewClient(Config{BaseURL: "/api/v1"}, nil)
		assert.Error(t, err)
	})

	t.Run("accepts absolute base URL", func(t *testing.T) {
		client, err := NewClient(Config{BaseURL: "http://localhost:8080/api/v1"}, nil)
		require.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestListDecodesEnvelope(t *testing.T) {
	var gotPath, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"items": []map[string]interface{}{
				{"id": "pv-1", "code": "HD001", "status": "PENDING_APPROVAL", "amount": "1500000"},
			},
			"total": 1,
			"page":  1,
			"size":  20,
			"pages": 1,
		})
	})

	q := ListQuery{Page: 1, Size: 20, Search: "HD001", Filters: map[string]string{"status": "PENDING_APPROVAL"}}
	page, err := client.Accounting().ListPaymentVouchers(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/accounting/payment-vouchers", gotPath)
	assert.Contains(t, gotQuery, "status=PENDING_APPROVAL")
	assert.Contains(t, gotQuery, "search=HD001")
	require.Len(t, page.Items, 1)
	assert.Equal(t, "HD001", page.Items[0].Code)
	assert.Equal(t, "PENDING_APPROVAL", page.Items[0].Status)
	assert.Equal(t, int64(1), page.Total)
}

func TestBearerTokenForwarded(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"items": []interface{}{}, "total": 0})
	})

	ctx := WithToken(context.Background(), "token-123")
	_, err := client.CRM().ListConversations(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)

	_, err = client.CRM().ListConversations(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestCreateSendsUniqueIdempotencyKey(t *testing.T) {
	var keys []string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("X-Idempotency-Key"))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "cat-1", "name": "Linh kiện"})
	})

	payload := CategoryPayload{Name: "Linh kiện"}
	_, err := client.Warehouse().CreateCategory(context.Background(), payload)
	require.NoError(t, err)
	_, err = client.Warehouse().CreateCategory(context.Background(), payload)
	require.NoError(t, err)

	require.Len(t, keys, 2)
	assert.NotEmpty(t, keys[0])
	assert.NotEmpty(t, keys[1])
	assert.NotEqual(t, keys[0], keys[1])
}

func TestActionPostsToSubPath(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "pv-1", "status": "APPROVED"})
	})

	voucher, err := client.Accounting().TransitionPaymentVoucher(context.Background(), "pv-1", "approve")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/v1/accounting/payment-vouchers/pv-1/approve", gotPath)
	assert.Equal(t, "APPROVED", voucher.Status)
}

func TestErrorEnvelopes(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "structured error",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":{"code":"ERR_INVALID_TRANSITION","message":"voucher already paid"}}`,
			wantCode:    "ERR_INVALID_TRANSITION",
			wantMessage: "voucher already paid",
		},
		{
			name:        "detail error",
			status:      http.StatusNotFound,
			body:        `{"detail":"voucher not found"}`,
			wantMessage: "voucher not found",
		},
		{
			name:        "empty body leaves message empty",
			status:      http.StatusBadGateway,
			body:        "",
			wantMessage: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Accounting().GetPaymentVoucher(context.Background(), "pv-404")
			require.Error(t, err)

			apiErr, ok := AsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestAuthErrorDetection(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"token expired"}`))
	})

	_, err := client.HRM().ListBonuses(context.Background(), ListQuery{})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.IsAuth())
	assert.False(t, apiErr.IsNotFound())
}

func TestContextCancellation(t *testing.T) {
	started := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.MES().ListRoutings(ctx, ListQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListQueryNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       ListQuery
		wantPage int
		wantSize int
	}{
		{"zero values get defaults", ListQuery{}, 1, 20},
		{"negative page clamped", ListQuery{Page: -3, Size: 10}, 1, 10},
		{"oversized page size clamped", ListQuery{Page: 2, Size: 500}, 2, 100},
		{"in range untouched", ListQuery{Page: 7, Size: 50}, 7, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantSize, got.Size)
		})
	}
}

func TestListQueryValuesSkipsEmptyFilters(t *testing.T) {
	q := ListQuery{Page: 1, Size: 20, Filters: map[string]string{"status": "", "severity": "HIGH"}}
	values := q.Values()
	assert.Equal(t, "HIGH", values.Get("severity"))
	_, hasStatus := values["status"]
	assert.False(t, hasStatus)
}

func TestLoginSkipsToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"token":      "issued-token",
			"expires_at": time.Now().Add(time.Hour).Format(time.RFC3339),
		})
	})

	session, err := client.Auth().Login(context.Background(), Credentials{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "issued-token", session.Token)
}
