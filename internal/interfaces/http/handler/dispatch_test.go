package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderItem(id, code, status string) map[string]any {
	return map[string]any{
		"id":           id,
		"code":         code,
		"origin":       "Kho Hà Nội",
		"destination":  "Kho Đà Nẵng",
		"cargo":        "Thép cuộn",
		"status":       status,
		"scheduled_at": time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC),
	}
}

func TestAssignOrderSendsVehicleAndDriver(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/dispatch/orders/do-1", http.StatusOK,
		orderItem("do-1", "VC001", "PENDING"))

	var gotAssignment map[string]string
	backend.mux.HandleFunc("PUT /dispatch/orders/do-1/assign", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotAssignment))
		_ = writeJSON(w, orderItem("do-1", "VC001", "ASSIGNED"))
	})
	backend.handle(http.MethodGet, "/dispatch/orders", http.StatusOK,
		listEnvelope([]map[string]any{orderItem("do-1", "VC001", "ASSIGNED")}, 1))

	engine := newScreenRouter(t, NewDispatchHandler(backend.client(t), DefaultScreenConfig()))

	body := `{"vehicle_id":"vh-7","driver_id":"dr-3"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/orders/do-1/actions/assign", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]string{"vehicle_id": "vh-7", "driver_id": "dr-3"}, gotAssignment)
	assert.Equal(t, 1, backend.callCount(http.MethodGet, "/dispatch/orders"))
}

func TestAssignOrderMissingDriverRejected(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/dispatch/orders/do-1", http.StatusOK,
		orderItem("do-1", "VC001", "PENDING"))

	engine := newScreenRouter(t, NewDispatchHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/orders/do-1/actions/assign",
		strings.NewReader(`{"vehicle_id":"vh-7"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, backend.callCount(http.MethodPut, "/dispatch/orders/do-1/assign"))
}

func TestAssignDeliveredOrderRejected(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/dispatch/orders/do-2", http.StatusOK,
		orderItem("do-2", "VC002", "DELIVERED"))

	engine := newScreenRouter(t, NewDispatchHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/orders/do-2/actions/assign",
		strings.NewReader(`{"vehicle_id":"vh-7","driver_id":"dr-3"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decodeScreen(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ERR_INVALID_TRANSITION", env.Error.Code)
}

func TestOrderLifecycleActions(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/dispatch/orders", http.StatusOK,
		listEnvelope([]map[string]any{
			orderItem("do-1", "VC001", "ASSIGNED"),
			orderItem("do-2", "VC002", "IN_TRANSIT"),
		}, 2))

	engine := newScreenRouter(t, NewDispatchHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dispatch/orders", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeScreen(t, rec)
	require.Len(t, env.Data.Rows, 2)

	names := func(row int) []string {
		out := make([]string, 0, 2)
		for _, a := range env.Data.Rows[row].Actions {
			if a.Kind == "transition" {
				out = append(out, a.Name)
			}
		}
		return out
	}
	assert.Equal(t, []string{"dispatch", "cancel"}, names(0))
	assert.Equal(t, []string{"deliver"}, names(1))
}
