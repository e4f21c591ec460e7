package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/erp/console/internal/domain/status"
	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/interfaces/http/dto"
	"github.com/erp/console/internal/presentation/format"
)

// CRMHandler serves the conversation and message screens.
type CRMHandler struct {
	BaseHandler
	client erp.CRMClient
	cfg    ScreenConfig
}

// NewCRMHandler creates a new CRM screens handler
func NewCRMHandler(client *erp.Client, cfg ScreenConfig) *CRMHandler {
	return &CRMHandler{client: client.CRM(), cfg: cfg}
}

// RegisterRoutes registers the CRM screen routes
func (h *CRMHandler) RegisterRoutes(rg *gin.RouterGroup) {
	conversations := rg.Group("/crm/conversations")
	{
		conversations.GET("", h.ListConversations)
		conversations.POST("", h.CreateConversation)
		conversations.PUT("/:id", h.UpdateConversation)
		conversations.POST("/:id/actions/:action", h.TransitionConversation)
		conversations.GET("/:id/messages", h.ListMessages)
		conversations.POST("/:id/messages", h.PostMessage)
	}
}

var conversationColumns = []string{"customer", "channel", "subject", "assignee", "status", "last_message_at"}

func (h *CRMHandler) conversationRows(ctx context.Context, items []erp.Conversation) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		badge := format.StatusBadge(ctx, status.Status(item.Status))
		var lastMessage string
		if item.LastMessageAt != nil {
			lastMessage = format.DateTime(*item.LastMessageAt)
		}
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"customer":        item.CustomerName,
				"channel":         item.Channel,
				"subject":         item.Subject,
				"assignee":        item.Assignee,
				"last_message_at": lastMessage,
			},
			Badge:   &badge,
			Actions: rowActions(ctx, status.Conversations, status.Status(item.Status)),
		})
	}
	return rows
}

// ListConversations renders the conversation list screen. The channel
// filter is forwarded verbatim alongside status and search.
func (h *CRMHandler) ListConversations(c *gin.Context) {
	q := bindListQuery(c)
	if channel := c.Query("channel"); channel != "" {
		q = q.WithFilter("channel", channel)
	}
	serveList(c, &h.BaseHandler, h.cfg, conversationColumns, q,
		h.client.ListConversations, h.conversationRows)
}

func (h *CRMHandler) CreateConversation(c *gin.Context) {
	var req dto.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.CreateConversation(c.Request.Context(), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, conversationColumns, http.StatusCreated,
		h.client.ListConversations, h.conversationRows)
}

func (h *CRMHandler) UpdateConversation(c *gin.Context) {
	var req dto.ConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	if _, err := h.client.UpdateConversation(c.Request.Context(), c.Param("id"), req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, conversationColumns, http.StatusOK,
		h.client.ListConversations, h.conversationRows)
}

func (h *CRMHandler) TransitionConversation(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	name := c.Param("action")

	conversation, err := h.client.GetConversation(ctx, id)
	if err != nil {
		h.HandleUpstreamError(c, err)
		return
	}
	if !status.Conversations.CanPerform(status.Status(conversation.Status), status.Action(name)) {
		h.InvalidTransition(c)
		return
	}

	if _, err := h.client.TransitionConversation(ctx, id, name); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	refreshAfterMutation(c, &h.BaseHandler, h.cfg, conversationColumns, http.StatusOK,
		h.client.ListConversations, h.conversationRows)
}

var messageColumns = []string{"sender", "content", "sent_at"}

func (h *CRMHandler) messageRows(ctx context.Context, items []erp.Message) []dto.Row {
	rows := make([]dto.Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, dto.Row{
			ID: item.ID,
			Cells: map[string]string{
				"sender":  item.Sender,
				"content": item.Content,
				"sent_at": format.DateTime(item.SentAt),
			},
			Actions: []dto.RowAction{},
		})
	}
	return rows
}

// ListMessages renders the message thread of a conversation
func (h *CRMHandler) ListMessages(c *gin.Context) {
	id := c.Param("id")
	fetch := func(ctx context.Context, q erp.ListQuery) (*erp.Page[erp.Message], error) {
		return h.client.ListMessages(ctx, id, q)
	}
	serveList(c, &h.BaseHandler, h.cfg, messageColumns, bindListQuery(c), fetch, h.messageRows)
}

// PostMessage appends a message to the thread and refreshes it once
func (h *CRMHandler) PostMessage(c *gin.Context) {
	var req dto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	id := c.Param("id")
	if _, err := h.client.PostMessage(c.Request.Context(), id, req.ToPayload()); err != nil {
		h.HandleUpstreamError(c, err)
		return
	}

	fetch := func(ctx context.Context, q erp.ListQuery) (*erp.Page[erp.Message], error) {
		return h.client.ListMessages(ctx, id, q)
	}
	refreshAfterMutation(c, &h.BaseHandler, h.cfg, messageColumns, http.StatusCreated, fetch, h.messageRows)
}
