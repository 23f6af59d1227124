// Package chat implements one-to-one conversations between a customer and a
// provider: the inbox summary list, conversation bootstrap, message history,
// sending, and a live subscription feeding the in-memory session.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/homefix/homefix-api/internal/platform/logging"
)

// Service errors
var (
	ErrNotFound     = errors.New("conversation not found")
	ErrEmptyMessage = errors.New("message is empty")
)

const unknownName = "Unknown"

// Conversation links one customer with one provider. Pairs are not unique by
// construction; Ensure reuses the first match it finds.
type Conversation struct {
	ID         string
	CustomerID string
	ProviderID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.CustomerID == userID || c.ProviderID == userID
}

// Counterpart returns the other party's user id.
func (c *Conversation) Counterpart(userID string) string {
	if c.CustomerID == userID {
		return c.ProviderID
	}
	return c.CustomerID
}

// Message is a single chat message.
type Message struct {
	ID             string
	ConversationID string
	SenderID       string
	Content        string
	CreatedAt      time.Time
}

// Summary is one inbox row: the conversation joined with the counterpart's
// name and the most recent message.
type Summary struct {
	ConversationID  string
	CounterpartID   string
	CounterpartName string
	LastMessage     string
	LastMessageAt   time.Time
	UpdatedAt       time.Time
}

// Subscription is a live feed of messages appended to one conversation.
// Close tears the feed down; it is safe to call more than once.
type Subscription interface {
	Events() <-chan Message
	Close()
}

// Store is the persistence surface the chat service runs over.
type Store interface {
	// ConversationsForUser returns conversations where the user is either
	// party, most recently updated first.
	ConversationsForUser(ctx context.Context, userID string) ([]Conversation, error)
	// ConversationByID returns a conversation or ErrNotFound.
	ConversationByID(ctx context.Context, id string) (*Conversation, error)
	// ConversationForPair returns the first conversation for the exact
	// customer/provider pair, or ErrNotFound.
	ConversationForPair(ctx context.Context, customerID, providerID string) (*Conversation, error)
	// CreateConversation creates a conversation for the pair.
	CreateConversation(ctx context.Context, customerID, providerID string) (*Conversation, error)
	// Messages returns a conversation's messages in ascending send order.
	Messages(ctx context.Context, conversationID string) ([]Message, error)
	// LatestMessages resolves the newest message per conversation id.
	LatestMessages(ctx context.Context, conversationIDs []string) (map[string]Message, error)
	// InsertMessage appends a message and bumps the conversation timestamp.
	InsertMessage(ctx context.Context, conversationID, senderID, content string) (*Message, error)
	// ProfileNames batch-resolves display names keyed by user id.
	ProfileNames(ctx context.Context, userIDs []string) (map[string]string, error)
	// Subscribe opens a live feed of messages appended after the call.
	Subscribe(ctx context.Context, conversationID string) (Subscription, error)
}

// Service is the conversation API consumed by the HTTP layer and sessions.
type Service interface {
	// Summaries builds the inbox for a user. Reads fail soft; the worst
	// case is an empty or partially-labeled inbox.
	Summaries(ctx context.Context, userID string) []Summary
	// Ensure returns the conversation for the pair, creating one when none
	// exists. The second result reports whether it was created.
	Ensure(ctx context.Context, customerID, providerID string) (*Conversation, bool, error)
	// Conversation returns a conversation by id, or ErrNotFound.
	Conversation(ctx context.Context, id string) (*Conversation, error)
	// History returns the full message history, oldest first.
	History(ctx context.Context, conversationID string) ([]Message, error)
	// Send appends a trimmed message. Content that trims to nothing is
	// rejected with ErrEmptyMessage before any write is issued.
	Send(ctx context.Context, conversationID, senderID, content string) (*Message, error)
	// Subscribe opens a live message feed for a conversation.
	Subscribe(ctx context.Context, conversationID string) (Subscription, error)
}

// Chat implements Service over a Store.
type Chat struct {
	store Store
}

// New constructs a Chat service.
func New(store Store) *Chat {
	return &Chat{store: store}
}

// Summaries builds the inbox list for a user.
func (c *Chat) Summaries(ctx context.Context, userID string) []Summary {
	convs, err := c.store.ConversationsForUser(ctx, userID)
	if err != nil {
		logging.LogWarn(ctx, "conversation list fetch failed", zap.String("user_id", userID), zap.Error(err))
		return []Summary{}
	}
	if len(convs) == 0 {
		return []Summary{}
	}

	counterparts := make([]string, len(convs))
	convIDs := make([]string, len(convs))
	for i, conv := range convs {
		counterparts[i] = conv.Counterpart(userID)
		convIDs[i] = conv.ID
	}

	// Both joins fail soft to empty maps; rows then carry defaults.
	names, err := c.store.ProfileNames(ctx, counterparts)
	if err != nil {
		logging.LogWarn(ctx, "counterpart name fetch failed", zap.Error(err))
		names = nil
	}
	latest, err := c.store.LatestMessages(ctx, convIDs)
	if err != nil {
		logging.LogWarn(ctx, "latest message fetch failed", zap.Error(err))
		latest = nil
	}

	out := make([]Summary, len(convs))
	for i, conv := range convs {
		counterpart := counterparts[i]
		name := names[counterpart]
		if name == "" {
			name = unknownName
		}
		row := Summary{
			ConversationID:  conv.ID,
			CounterpartID:   counterpart,
			CounterpartName: name,
			UpdatedAt:       conv.UpdatedAt,
		}
		if msg, ok := latest[conv.ID]; ok {
			row.LastMessage = msg.Content
			row.LastMessageAt = msg.CreatedAt
		}
		out[i] = row
	}
	return out
}

// Ensure returns the conversation for the pair, creating it when absent.
// When duplicates exist for a pair the first match wins; duplicates are
// never merged.
func (c *Chat) Ensure(ctx context.Context, customerID, providerID string) (*Conversation, bool, error) {
	conv, err := c.store.ConversationForPair(ctx, customerID, providerID)
	if err == nil {
		return conv, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	conv, err = c.store.CreateConversation(ctx, customerID, providerID)
	if err != nil {
		return nil, false, err
	}
	logging.LogAuditEvent(ctx, "create", customerID, "conversation", conv.ID, "success",
		map[string]any{"provider_id": providerID})
	return conv, true, nil
}

// Conversation returns a conversation by id.
func (c *Chat) Conversation(ctx context.Context, id string) (*Conversation, error) {
	return c.store.ConversationByID(ctx, id)
}

// History returns the full message history, oldest first.
func (c *Chat) History(ctx context.Context, conversationID string) ([]Message, error) {
	return c.store.Messages(ctx, conversationID)
}

// Send appends a message. Whitespace-only content is rejected before any
// store call.
func (c *Chat) Send(ctx context.Context, conversationID, senderID, content string) (*Message, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	return c.store.InsertMessage(ctx, conversationID, senderID, trimmed)
}

// Subscribe opens a live message feed for a conversation.
func (c *Chat) Subscribe(ctx context.Context, conversationID string) (Subscription, error) {
	return c.store.Subscribe(ctx, conversationID)
}

// Compile-time interface check
var _ Service = (*Chat)(nil)
