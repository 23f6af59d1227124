package conversations

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/sse"

	"github.com/homefix/homefix-api/internal/platform/auth"
	"github.com/homefix/homefix-api/internal/platform/timeutil"
	chatsvc "github.com/homefix/homefix-api/internal/service/chat"
)

// Register registers conversation and message endpoints. All routes require
// authentication; conversation access is limited to the two participants, and
// a conversation the caller is not part of is indistinguishable from a
// missing one.
func Register(api huma.API, svc chatsvc.Service) {
	bearer := []map[string][]string{
		{"bearerAuth": {}},
	}

	huma.Register(api, huma.Operation{
		OperationID: "list-conversations",
		Method:      http.MethodGet,
		Path:        "/conversations",
		Summary:     "List the caller's conversations",
		Description: "Returns the inbox: each conversation joined with the counterpart's name and the newest message.",
		Tags:        []string{"Conversations"},
		Security:    bearer,
	}, func(ctx context.Context, _ *ListInput) (*ListOutput, error) {
		user := auth.UserFromContext(ctx)

		rows := svc.Summaries(ctx, user.UID)
		out := make([]Summary, len(rows))
		for i, r := range rows {
			row := Summary{
				ConversationID:  r.ConversationID,
				CounterpartID:   r.CounterpartID,
				CounterpartName: r.CounterpartName,
				LastMessage:     r.LastMessage,
				UpdatedAt:       timeutil.Time{Time: r.UpdatedAt},
			}
			if !r.LastMessageAt.IsZero() {
				row.LastMessageAt = &timeutil.Time{Time: r.LastMessageAt}
			}
			out[i] = row
		}
		return &ListOutput{Body: ListData{Conversations: out}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "ensure-conversation",
		Method:        http.MethodPost,
		Path:          "/conversations",
		Summary:       "Open a conversation with a provider",
		Description:   "Returns the existing conversation for the pair, or creates one. Responds 201 on creation, 200 on reuse.",
		Tags:          []string{"Conversations"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
	}, func(ctx context.Context, input *EnsureInput) (*EnsureOutput, error) {
		user := auth.UserFromContext(ctx)

		conv, created, err := svc.Ensure(ctx, user.UID, input.Body.ProviderID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		return &EnsureOutput{Status: status, Body: toHTTPConversation(conv)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-messages",
		Method:      http.MethodGet,
		Path:        "/conversations/{id}/messages",
		Summary:     "Get a conversation's message history",
		Description: "Returns the full history in ascending send order.",
		Tags:        []string{"Conversations"},
		Security:    bearer,
	}, func(ctx context.Context, input *MessagesInput) (*MessagesOutput, error) {
		user := auth.UserFromContext(ctx)

		if err := requireMembership(ctx, svc, input.ID, user.UID); err != nil {
			return nil, err
		}
		msgs, err := svc.History(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("internal error")
		}
		out := make([]Message, len(msgs))
		for i, m := range msgs {
			out[i] = toHTTPMessage(m)
		}
		return &MessagesOutput{Body: MessagesData{Messages: out}}, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "stream-messages",
		Method:      http.MethodGet,
		Path:        "/conversations/{id}/stream",
		Summary:     "Stream a conversation live",
		Description: "Server-sent events: the full history first, then each new message as the realtime listener delivers it. The stream ends when the client disconnects.",
		Tags:        []string{"Conversations"},
		Security:    bearer,
	}, map[string]any{
		"message": Message{},
		"error":   StreamError{},
	}, func(ctx context.Context, input *StreamInput, send sse.Sender) {
		user := auth.UserFromContext(ctx)

		// The response is already streaming, so access failures arrive as an
		// error event. Non-members get the same one as a missing id.
		conv, err := svc.Conversation(ctx, input.ID)
		if err != nil || !conv.HasParticipant(user.UID) {
			_ = send.Data(StreamError{Message: "conversation not found"})
			return
		}

		history, err := svc.History(ctx, input.ID)
		if err != nil {
			_ = send.Data(StreamError{Message: "internal error"})
			return
		}
		for _, m := range history {
			if err := send.Data(toHTTPMessage(m)); err != nil {
				return
			}
		}

		sub, err := svc.Subscribe(ctx, input.ID)
		if err != nil {
			_ = send.Data(StreamError{Message: "internal error"})
			return
		}
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Events():
				if !ok {
					return
				}
				if err := send.Data(toHTTPMessage(msg)); err != nil {
					return
				}
			}
		}
	})

	huma.Register(api, huma.Operation{
		OperationID:   "send-message",
		Method:        http.MethodPost,
		Path:          "/conversations/{id}/messages",
		Summary:       "Send a message",
		Description:   "Appends a trimmed message to the conversation. Whitespace-only content is rejected.",
		Tags:          []string{"Conversations"},
		DefaultStatus: http.StatusCreated,
		Security:      bearer,
	}, func(ctx context.Context, input *SendInput) (*SendOutput, error) {
		user := auth.UserFromContext(ctx)

		if err := requireMembership(ctx, svc, input.ID, user.UID); err != nil {
			return nil, err
		}
		msg, err := svc.Send(ctx, input.ID, user.UID, input.Body.Content)
		if err != nil {
			if errors.Is(err, chatsvc.ErrEmptyMessage) {
				return nil, huma.Error422UnprocessableEntity("message must not be empty")
			}
			return nil, huma.Error500InternalServerError("internal error")
		}
		return &SendOutput{Body: toHTTPMessage(*msg)}, nil
	})
}

// requireMembership resolves the conversation and checks the caller is one of
// the two participants. Non-members get the same 404 as a missing id.
func requireMembership(ctx context.Context, svc chatsvc.Service, conversationID, userID string) error {
	conv, err := svc.Conversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, chatsvc.ErrNotFound) {
			return huma.Error404NotFound("conversation not found")
		}
		return huma.Error500InternalServerError("internal error")
	}
	if !conv.HasParticipant(userID) {
		return huma.Error404NotFound("conversation not found")
	}
	return nil
}

func toHTTPConversation(c *chatsvc.Conversation) Conversation {
	return Conversation{
		ID:         c.ID,
		CustomerID: c.CustomerID,
		ProviderID: c.ProviderID,
		CreatedAt:  timeutil.Time{Time: c.CreatedAt},
		UpdatedAt:  timeutil.Time{Time: c.UpdatedAt},
	}
}

func toHTTPMessage(m chatsvc.Message) Message {
	return Message{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderID:       m.SenderID,
		Content:        m.Content,
		CreatedAt:      timeutil.Time{Time: m.CreatedAt},
	}
}
