package chat

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/homefix/homefix-api/internal/platform/logging"
)

const (
	conversationsCollection = "conversations"
	messagesCollection      = "messages"
	profilesCollection      = "profiles"

	// subscriptionBuffer absorbs bursts while the consumer catches up.
	subscriptionBuffer = 64
)

type firestoreConversation struct {
	CustomerID string    `firestore:"customer_id"`
	ProviderID string    `firestore:"provider_id"`
	CreatedAt  time.Time `firestore:"created_at"`
	UpdatedAt  time.Time `firestore:"updated_at"`
}

type firestoreMessage struct {
	ConversationID string    `firestore:"conversation_id"`
	SenderID       string    `firestore:"sender_id"`
	Content        string    `firestore:"content"`
	CreatedAt      time.Time `firestore:"created_at"`
}

// FirestoreStore implements Store over the conversations and messages
// collections.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed chat store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// ConversationsForUser matches the user on either side of the conversation,
// most recently updated first.
func (s *FirestoreStore) ConversationsForUser(ctx context.Context, userID string) ([]Conversation, error) {
	it := s.client.Collection(conversationsCollection).
		WhereEntity(firestore.OrFilter{
			Filters: []firestore.EntityFilter{
				firestore.PropertyFilter{Path: "customer_id", Operator: "==", Value: userID},
				firestore.PropertyFilter{Path: "provider_id", Operator: "==", Value: userID},
			},
		}).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)
	defer it.Stop()

	var out []Conversation
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fc firestoreConversation
		if err := doc.DataTo(&fc); err != nil {
			return nil, err
		}
		out = append(out, conversationFromDoc(doc.Ref.ID, fc))
	}
	return out, nil
}

// ConversationByID returns a conversation or ErrNotFound.
func (s *FirestoreStore) ConversationByID(ctx context.Context, id string) (*Conversation, error) {
	doc, err := s.client.Collection(conversationsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fc firestoreConversation
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	conv := conversationFromDoc(doc.Ref.ID, fc)
	return &conv, nil
}

// ConversationForPair returns the first match for the exact pair, or
// ErrNotFound.
func (s *FirestoreStore) ConversationForPair(ctx context.Context, customerID, providerID string) (*Conversation, error) {
	it := s.client.Collection(conversationsCollection).
		Where("customer_id", "==", customerID).
		Where("provider_id", "==", providerID).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	doc, err := it.Next()
	if err == iterator.Done {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var fc firestoreConversation
	if err := doc.DataTo(&fc); err != nil {
		return nil, err
	}
	conv := conversationFromDoc(doc.Ref.ID, fc)
	return &conv, nil
}

// CreateConversation creates a conversation document for the pair.
func (s *FirestoreStore) CreateConversation(ctx context.Context, customerID, providerID string) (*Conversation, error) {
	now := time.Now().UTC()
	ref := s.client.Collection(conversationsCollection).NewDoc()
	_, err := ref.Create(ctx, firestoreConversation{
		CustomerID: customerID,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}
	return &Conversation{
		ID:         ref.ID,
		CustomerID: customerID,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Messages returns a conversation's messages in ascending send order.
func (s *FirestoreStore) Messages(ctx context.Context, conversationID string) ([]Message, error) {
	it := s.client.Collection(messagesCollection).
		Where("conversation_id", "==", conversationID).
		OrderBy("created_at", firestore.Asc).
		Documents(ctx)
	defer it.Stop()

	var out []Message
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var fm firestoreMessage
		if err := doc.DataTo(&fm); err != nil {
			return nil, err
		}
		out = append(out, messageFromDoc(doc.Ref.ID, fm))
	}
	return out, nil
}

// LatestMessages issues one newest-first single-result query per conversation.
func (s *FirestoreStore) LatestMessages(ctx context.Context, conversationIDs []string) (map[string]Message, error) {
	out := make(map[string]Message, len(conversationIDs))
	for _, convID := range conversationIDs {
		it := s.client.Collection(messagesCollection).
			Where("conversation_id", "==", convID).
			OrderBy("created_at", firestore.Desc).
			Limit(1).
			Documents(ctx)
		doc, err := it.Next()
		if err == iterator.Done {
			it.Stop()
			continue
		}
		if err != nil {
			it.Stop()
			return nil, err
		}
		var fm firestoreMessage
		if err := doc.DataTo(&fm); err != nil {
			it.Stop()
			return nil, err
		}
		out[convID] = messageFromDoc(doc.Ref.ID, fm)
		it.Stop()
	}
	return out, nil
}

// InsertMessage appends the message and bumps the conversation timestamp so
// the inbox resorts.
func (s *FirestoreStore) InsertMessage(ctx context.Context, conversationID, senderID, content string) (*Message, error) {
	now := time.Now().UTC()
	ref := s.client.Collection(messagesCollection).NewDoc()
	_, err := ref.Create(ctx, firestoreMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	})
	if err != nil {
		logging.LogAuditEvent(ctx, "create", senderID, "message", ref.ID, "failure", nil)
		return nil, err
	}

	_, err = s.client.Collection(conversationsCollection).Doc(conversationID).Update(ctx, []firestore.Update{
		{Path: "updated_at", Value: now},
	})
	if err != nil {
		// The message is already stored; a stale inbox timestamp is the
		// only consequence.
		logging.LogWarn(ctx, "conversation timestamp bump failed",
			zap.String("conversation_id", conversationID), zap.Error(err))
	}

	logging.LogAuditEvent(ctx, "create", senderID, "message", ref.ID, "success",
		map[string]any{"conversation_id": conversationID})
	return &Message{
		ID:             ref.ID,
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      now,
	}, nil
}

// ProfileNames batch-resolves display names keyed by user id.
func (s *FirestoreStore) ProfileNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if len(userIDs) == 0 {
		return map[string]string{}, nil
	}
	refs := make([]*firestore.DocumentRef, len(userIDs))
	for i, id := range userIDs {
		refs[i] = s.client.Collection(profilesCollection).Doc(id)
	}
	docs, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(docs))
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		if v, err := doc.DataAt("full_name"); err == nil {
			if name, ok := v.(string); ok && name != "" {
				out[doc.Ref.ID] = name
			}
		}
	}
	return out, nil
}

// firestoreSubscription adapts a query snapshot listener to Subscription.
type firestoreSubscription struct {
	events chan Message
	cancel context.CancelFunc
	once   sync.Once
}

func (s *firestoreSubscription) Events() <-chan Message { return s.events }

// Close cancels the listener. Subsequent calls are no-ops.
func (s *firestoreSubscription) Close() {
	s.once.Do(s.cancel)
}

// Subscribe opens a snapshot listener on the conversation's messages. The
// first snapshot replays the documents already on record and is skipped;
// history is loaded separately. Only additions after that are emitted.
func (s *FirestoreStore) Subscribe(ctx context.Context, conversationID string) (Subscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &firestoreSubscription{
		events: make(chan Message, subscriptionBuffer),
		cancel: cancel,
	}

	it := s.client.Collection(messagesCollection).
		Where("conversation_id", "==", conversationID).
		OrderBy("created_at", firestore.Asc).
		Snapshots(ctx)

	go func() {
		defer close(sub.events)
		defer it.Stop()

		first := true
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logging.LogWarn(ctx, "message listener stopped",
						zap.String("conversation_id", conversationID), zap.Error(err))
				}
				return
			}
			if first {
				first = false
				continue
			}
			for _, change := range snap.Changes {
				if change.Kind != firestore.DocumentAdded {
					continue
				}
				var fm firestoreMessage
				if err := change.Doc.DataTo(&fm); err != nil {
					logging.LogWarn(ctx, "message decode failed",
						zap.String("doc_id", change.Doc.Ref.ID), zap.Error(err))
					continue
				}
				select {
				case sub.events <- messageFromDoc(change.Doc.Ref.ID, fm):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return sub, nil
}

func conversationFromDoc(id string, fc firestoreConversation) Conversation {
	return Conversation{
		ID:         id,
		CustomerID: fc.CustomerID,
		ProviderID: fc.ProviderID,
		CreatedAt:  fc.CreatedAt,
		UpdatedAt:  fc.UpdatedAt,
	}
}

func messageFromDoc(id string, fm firestoreMessage) Message {
	return Message{
		ID:             id,
		ConversationID: fm.ConversationID,
		SenderID:       fm.SenderID,
		Content:        fm.Content,
		CreatedAt:      fm.CreatedAt,
	}
}

// Compile-time interface check
var _ Store = (*FirestoreStore)(nil)
