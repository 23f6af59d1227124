package conversations

import "github.com/homefix/homefix-api/internal/platform/timeutil"

// Conversation links the caller with a counterpart.
type Conversation struct {
	ID         string        `json:"id" doc:"Conversation identifier"`
	CustomerID string        `json:"customerId" doc:"Customer user id"`
	ProviderID string        `json:"providerId" doc:"Provider user id"`
	CreatedAt  timeutil.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt  timeutil.Time `json:"updatedAt" doc:"Last activity time"`
}

// Summary is one inbox row.
type Summary struct {
	ConversationID  string         `json:"conversationId" doc:"Conversation identifier"`
	CounterpartID   string         `json:"counterpartId" doc:"The other party's user id"`
	CounterpartName string         `json:"counterpartName" doc:"The other party's display name" example:"Ahmad Khan"`
	LastMessage     string         `json:"lastMessage" doc:"Newest message content, empty when none"`
	LastMessageAt   *timeutil.Time `json:"lastMessageAt,omitempty" doc:"Newest message time"`
	UpdatedAt       timeutil.Time  `json:"updatedAt" doc:"Last activity time"`
}

// StreamError is an error event on the live stream. Stream failures arrive
// in-band because the SSE response is already open when they occur.
type StreamError struct {
	Message string `json:"message" doc:"What went wrong"`
}

// Message is a single chat message.
type Message struct {
	ID             string        `json:"id" doc:"Message identifier"`
	ConversationID string        `json:"conversationId" doc:"Conversation identifier"`
	SenderID       string        `json:"senderId" doc:"Sender user id"`
	Content        string        `json:"content" doc:"Message text"`
	CreatedAt      timeutil.Time `json:"createdAt" doc:"Send time"`
}
