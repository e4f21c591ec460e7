package erp

import (
	"context"
	"time"
)

// CRMClient covers customer conversations and their messages.
type CRMClient struct {
	c *Client
}

func (c *Client) CRM() CRMClient {
	return CRMClient{c: c}
}

// Conversation is a customer support thread.
type Conversation struct {
	ID            string     `json:"id"`
	CustomerName  string     `json:"customer_name"`
	Channel       string     `json:"channel"`
	Subject       string     `json:"subject"`
	Assignee      string     `json:"assignee"`
	Status        string     `json:"status"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ConversationPayload struct {
	CustomerName string `json:"customer_name"`
	Channel      string `json:"channel"`
	Subject      string `json:"subject"`
	Assignee     string `json:"assignee,omitempty"`
}

// Message is one entry in a conversation thread.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Content        string    `json:"content"`
	SentAt         time.Time `json:"sent_at"`
}

type MessagePayload struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

func (c CRMClient) ListConversations(ctx context.Context, q ListQuery) (*Page[Conversation], error) {
	return list[Conversation](ctx, c.c, "conversations", "/crm/conversations", q)
}

func (c CRMClient) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	return get[Conversation](ctx, c.c, "conversations", "/crm/conversations/"+id)
}

func (c CRMClient) CreateConversation(ctx context.Context, p ConversationPayload) (*Conversation, error) {
	return create[Conversation](ctx, c.c, "conversations", "/crm/conversations", p)
}

func (c CRMClient) UpdateConversation(ctx context.Context, id string, p ConversationPayload) (*Conversation, error) {
	return update[Conversation](ctx, c.c, "conversations", "/crm/conversations/"+id, p)
}

// TransitionConversation posts resolve, close or reopen.
func (c CRMClient) TransitionConversation(ctx context.Context, id, name string) (*Conversation, error) {
	return action[Conversation](ctx, c.c, "conversations", "/crm/conversations/"+id, name)
}

func (c CRMClient) ListMessages(ctx context.Context, conversationID string, q ListQuery) (*Page[Message], error) {
	return list[Message](ctx, c.c, "messages", "/crm/conversations/"+conversationID+"/messages", q)
}

func (c CRMClient) PostMessage(ctx context.Context, conversationID string, p MessagePayload) (*Message, error) {
	return create[Message](ctx, c.c, "messages", "/crm/conversations/"+conversationID+"/messages", p)
}
