package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conversationItem(id, subject, status string) map[string]any {
	return map[string]any{
		"id":              id,
		"customer_name":   "Nguyễn Văn Bình",
		"channel":         "ZALO",
		"subject":         subject,
		"assignee":        "Trần Thị Hoa",
		"status":          status,
		"last_message_at": time.Date(2026, 4, 2, 14, 45, 0, 0, time.UTC),
	}
}

func messageItem(id, sender, content string) map[string]any {
	return map[string]any{
		"id":              id,
		"conversation_id": "cv-1",
		"sender":          sender,
		"content":         content,
		"sent_at":         time.Date(2026, 4, 2, 14, 45, 0, 0, time.UTC),
	}
}

func TestListConversationsForwardsChannelFilter(t *testing.T) {
	backend := newFakeBackend(t)
	var gotQuery string
	backend.mux.HandleFunc("GET /crm/conversations", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = writeJSON(w, listEnvelope([]map[string]any{
			conversationItem("cv-1", "Hỏi về đơn hàng", "OPEN"),
		}, 1))
	})

	engine := newScreenRouter(t, NewCRMHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/api/v1/crm/conversations?channel=ZALO&status=OPEN", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, gotQuery, "channel=ZALO")
	assert.Contains(t, gotQuery, "status=OPEN")

	env := decodeScreen(t, rec)
	assert.Equal(t, conversationColumns, env.Data.Columns)
	require.Len(t, env.Data.Rows, 1)

	open := env.Data.Rows[0]
	assert.Equal(t, "02/04/2026 14:45", open.Cells["last_message_at"])
	require.NotNil(t, open.Badge)
	assert.Equal(t, "Đang mở", open.Badge.Label)
	assert.Equal(t, "blue", open.Badge.Color)

	names := make([]string, 0, len(open.Actions))
	for _, a := range open.Actions {
		if a.Kind == "transition" {
			names = append(names, a.Name)
		}
	}
	assert.Equal(t, []string{"resolve", "close"}, names)
}

func TestListMessagesRendersThread(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/crm/conversations/cv-1/messages", http.StatusOK,
		listEnvelope([]map[string]any{
			messageItem("ms-1", "Nguyễn Văn Bình", "Đơn hàng của tôi đến khi nào?"),
			messageItem("ms-2", "Trần Thị Hoa", "Dự kiến giao trong ngày mai ạ."),
		}, 2))

	engine := newScreenRouter(t, NewCRMHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/crm/conversations/cv-1/messages", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeScreen(t, rec)
	assert.Equal(t, messageColumns, env.Data.Columns)
	require.Len(t, env.Data.Rows, 2)
	assert.Equal(t, "Đơn hàng của tôi đến khi nào?", env.Data.Rows[0].Cells["content"])
	// Thread rows are read-only, no row badge either.
	assert.Empty(t, env.Data.Rows[0].Actions)
	assert.Nil(t, env.Data.Rows[0].Badge)
}

func TestPostMessageRefreshesThreadOnce(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodPost, "/crm/conversations/cv-1/messages", http.StatusCreated,
		messageItem("ms-3", "Trần Thị Hoa", "Đã gửi kèm mã vận đơn."))
	backend.handle(http.MethodGet, "/crm/conversations/cv-1/messages", http.StatusOK,
		listEnvelope([]map[string]any{
			messageItem("ms-3", "Trần Thị Hoa", "Đã gửi kèm mã vận đơn."),
		}, 1))

	engine := newScreenRouter(t, NewCRMHandler(backend.client(t), DefaultScreenConfig()))

	body := `{"sender":"Trần Thị Hoa","content":"Đã gửi kèm mã vận đơn."}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm/conversations/cv-1/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, backend.callCount(http.MethodPost, "/crm/conversations/cv-1/messages"))
	assert.Equal(t, 1, backend.callCount(http.MethodGet, "/crm/conversations/cv-1/messages"))

	env := decodeScreen(t, rec)
	require.Len(t, env.Data.Rows, 1)
	assert.Equal(t, "ms-3", env.Data.Rows[0].ID)
}

func TestPostMessageEmptyContentRejectedLocally(t *testing.T) {
	backend := newFakeBackend(t)
	engine := newScreenRouter(t, NewCRMHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/crm/conversations/cv-1/messages",
		strings.NewReader(`{"sender":"Trần Thị Hoa"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, backend.callCount(http.MethodPost, "/crm/conversations/cv-1/messages"))
}

func TestReopenClosedConversation(t *testing.T) {
	backend := newFakeBackend(t)
	backend.handle(http.MethodGet, "/crm/conversations/cv-2", http.StatusOK,
		conversationItem("cv-2", "Khiếu nại chất lượng", "CLOSED"))
	backend.handle(http.MethodPost, "/crm/conversations/cv-2/reopen", http.StatusOK,
		conversationItem("cv-2", "Khiếu nại chất lượng", "OPEN"))
	backend.handle(http.MethodGet, "/crm/conversations", http.StatusOK,
		listEnvelope([]map[string]any{
			conversationItem("cv-2", "Khiếu nại chất lượng", "OPEN"),
		}, 1))

	engine := newScreenRouter(t, NewCRMHandler(backend.client(t), DefaultScreenConfig()))

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/crm/conversations/cv-2/actions/reopen", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, backend.callCount(http.MethodPost, "/crm/conversations/cv-2/reopen"))

	// A closed conversation cannot be resolved again without reopening.
	rec = httptest.NewRecorder()
	backend.handle(http.MethodGet, "/crm/conversations/cv-3", http.StatusOK,
		conversationItem("cv-3", "Đổi địa chỉ giao", "CLOSED"))
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost,
		"/api/v1/crm/conversations/cv-3/actions/resolve", nil))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, 0, backend.callCount(http.MethodPost, "/crm/conversations/cv-3/resolve"))
}
