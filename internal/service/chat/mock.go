package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockSubscription is a channel-backed Subscription for tests.
type MockSubscription struct {
	events chan Message

	mu     sync.Mutex
	closes int
}

// NewMockSubscription creates a subscription tests can push into.
func NewMockSubscription() *MockSubscription {
	return &MockSubscription{events: make(chan Message, subscriptionBuffer)}
}

func (m *MockSubscription) Events() <-chan Message { return m.events }

// Push delivers a message to the subscriber.
func (m *MockSubscription) Push(msg Message) {
	m.events <- msg
}

// Close counts calls and closes the event channel on the first one.
func (m *MockSubscription) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	if m.closes == 1 {
		close(m.events)
	}
}

// CloseCalls returns how many times Close has been called.
func (m *MockSubscription) CloseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

// MockStore implements Store with in-memory fixtures.
type MockStore struct {
	mu    sync.Mutex
	Convs []Conversation
	Msgs  map[string][]Message
	Names map[string]string

	Err       error
	NamesErr  error
	LatestErr error
	InsertErr error
	SubErr    error

	Sub *MockSubscription

	InsertCalls int
	createdSeq  int
}

func (m *MockStore) ConversationsForUser(_ context.Context, userID string) ([]Conversation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Conversation
	for _, conv := range m.Convs {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *MockStore) ConversationByID(_ context.Context, id string) (*Conversation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Convs {
		if m.Convs[i].ID == id {
			conv := m.Convs[i]
			return &conv, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) ConversationForPair(_ context.Context, customerID, providerID string) (*Conversation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Convs {
		if m.Convs[i].CustomerID == customerID && m.Convs[i].ProviderID == providerID {
			conv := m.Convs[i]
			return &conv, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStore) CreateConversation(_ context.Context, customerID, providerID string) (*Conversation, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createdSeq++
	now := time.Now().UTC()
	conv := Conversation{
		ID:         fmt.Sprintf("conv-%d", m.createdSeq),
		CustomerID: customerID,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.Convs = append(m.Convs, conv)
	return &conv, nil
}

func (m *MockStore) Messages(_ context.Context, conversationID string) ([]Message, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := make([]Message, len(m.Msgs[conversationID]))
	copy(msgs, m.Msgs[conversationID])
	return msgs, nil
}

func (m *MockStore) LatestMessages(_ context.Context, conversationIDs []string) (map[string]Message, error) {
	if m.LatestErr != nil {
		return nil, m.LatestErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]Message)
	for _, convID := range conversationIDs {
		msgs := m.Msgs[convID]
		if len(msgs) == 0 {
			continue
		}
		latest := msgs[0]
		for _, msg := range msgs[1:] {
			if msg.CreatedAt.After(latest.CreatedAt) {
				latest = msg
			}
		}
		out[convID] = latest
	}
	return out, nil
}

func (m *MockStore) InsertMessage(_ context.Context, conversationID, senderID, content string) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return nil, m.InsertErr
	}
	now := time.Now().UTC()
	msg := Message{
		ID:             fmt.Sprintf("msg-%d", m.InsertCalls),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}
	if m.Msgs == nil {
		m.Msgs = make(map[string][]Message)
	}
	m.Msgs[conversationID] = append(m.Msgs[conversationID], msg)
	for i := range m.Convs {
		if m.Convs[i].ID == conversationID {
			m.Convs[i].UpdatedAt = now
		}
	}
	// Echo to the subscriber, mirroring the listener-driven view update.
	if m.Sub != nil {
		m.Sub.Push(msg)
	}
	return &msg, nil
}

func (m *MockStore) ProfileNames(_ context.Context, userIDs []string) (map[string]string, error) {
	if m.NamesErr != nil {
		return nil, m.NamesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]string)
	for _, id := range userIDs {
		if name, ok := m.Names[id]; ok && name != "" {
			out[id] = name
		}
	}
	return out, nil
}

func (m *MockStore) Subscribe(_ context.Context, _ string) (Subscription, error) {
	if m.SubErr != nil {
		return nil, m.SubErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Sub == nil {
		m.Sub = NewMockSubscription()
	}
	return m.Sub, nil
}

// MockChatService implements Service over a MockStore for handler and
// session tests.
type MockChatService struct {
	Store *MockStore

	HistoryErr error
	SendErr    error
	SubErr     error

	mu        sync.Mutex
	SendCalls int
}

// NewMockChatService creates a mock service with an empty store.
func NewMockChatService() *MockChatService {
	return &MockChatService{Store: &MockStore{Msgs: make(map[string][]Message)}}
}

func (m *MockChatService) Summaries(ctx context.Context, userID string) []Summary {
	return New(m.Store).Summaries(ctx, userID)
}

func (m *MockChatService) Ensure(ctx context.Context, customerID, providerID string) (*Conversation, bool, error) {
	return New(m.Store).Ensure(ctx, customerID, providerID)
}

func (m *MockChatService) Conversation(ctx context.Context, id string) (*Conversation, error) {
	return m.Store.ConversationByID(ctx, id)
}

func (m *MockChatService) History(ctx context.Context, conversationID string) ([]Message, error) {
	if m.HistoryErr != nil {
		return nil, m.HistoryErr
	}
	return m.Store.Messages(ctx, conversationID)
}

func (m *MockChatService) Send(ctx context.Context, conversationID, senderID, content string) (*Message, error) {
	m.mu.Lock()
	m.SendCalls++
	sendErr := m.SendErr
	m.mu.Unlock()
	if sendErr != nil {
		return nil, sendErr
	}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}
	return m.Store.InsertMessage(ctx, conversationID, senderID, trimmed)
}

func (m *MockChatService) Subscribe(ctx context.Context, conversationID string) (Subscription, error) {
	if m.SubErr != nil {
		return nil, m.SubErr
	}
	return m.Store.Subscribe(ctx, conversationID)
}

// Compile-time interface checks
var (
	_ Store        = (*MockStore)(nil)
	_ Service      = (*MockChatService)(nil)
	_ Subscription = (*MockSubscription)(nil)
)
