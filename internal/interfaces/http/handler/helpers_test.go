package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/interfaces/http/middleware"
	"github.com/erp/console/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend is an in-memory stand-in for the ERP REST backend. It
// counts requests per method and path so tests can assert how often
// the gateway reached upstream.
type fakeBackend struct {
	t   *testing.T
	mux *http.ServeMux
	srv *httptest.Server

	mu    sync.Mutex
	calls map[string]int
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		t:     t,
		mux:   http.NewServeMux(),
		calls: make(map[string]int),
	}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls[r.Method+" "+r.URL.Path]++
		b.mu.Unlock()
		b.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

// handle registers a JSON responder for a method and path.
func (b *fakeBackend) handle(method, path string, status int, body any) {
	b.mux.HandleFunc(method+" "+path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	})
}

func (b *fakeBackend) callCount(method, path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method+" "+path]
}

func (b *fakeBackend) client(t *testing.T) *erp.Client {
	t.Helper()
	client, err := erp.NewClient(erp.Config{
		BaseURL: b.srv.URL,
		Timeout: 2 * time.Second,
	}, nil)
	require.NoError(t, err)
	return client
}

// listEnvelope wraps items in the paginated shape the backend serves.
func listEnvelope(items any, total int) map[string]any {
	return map[string]any{
		"items": items,
		"total": total,
		"page":  1,
		"size":  20,
		"pages": 1,
	}
}

// newScreenRouter mounts a registrar behind the localizer middleware,
// the way the real server wires screens.
func newScreenRouter(t *testing.T, registrars ...router.RouteRegistrar) *gin.Engine {
	t.Helper()
	bundle, err := intl.NewBundle()
	require.NoError(t, err)

	engine := gin.New()
	engine.Use(middleware.Localizer(bundle))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	for _, registrar := range registrars {
		r.Register(registrar)
	}
	r.Setup()
	return engine
}

// screenEnvelope mirrors the response shape the frontend renders.
type screenEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Columns     []string `json:"columns"`
		Rows        []struct {
			ID    string            `json:"id"`
			Cells map[string]string `json:"cells"`
			Badge *struct {
				Status string `json:"status"`
				Label  string `json:"label"`
				Color  string `json:"color"`
			} `json:"badge"`
			Actions []struct {
				Kind  string `json:"kind"`
				Name  string `json:"name"`
				Label string `json:"label"`
			} `json:"actions"`
		} `json:"rows"`
		Unavailable bool `json:"unavailable"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		Total    int64 `json:"total"`
		Page     int   `json:"page"`
		PageSize int   `json:"page_size"`
	} `json:"meta"`
}

func writeJSON(w http.ResponseWriter, body any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(body)
}

func decodeScreen(t *testing.T, rec *httptest.ResponseRecorder) screenEnvelope {
	t.Helper()
	var env screenEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}
