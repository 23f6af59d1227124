package chat

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/homefix/homefix-api/internal/platform/logging"
)

// State is the lifecycle phase of a Session.
type State string

// Session states. Sending is a transient phase entered only from Live.
const (
	StateIdle           State = "idle"
	StateLoadingHistory State = "loading_history"
	StateLive           State = "live"
	StateSending        State = "sending"
)

// Session holds one open conversation view: the message list, the unsent
// draft, and the live subscription appending to the list. A Session is
// single-conversation and single-user; create one per open chat.
type Session struct {
	svc            Service
	conversationID string
	userID         string

	mu       sync.Mutex
	state    State
	messages []Message
	draft    string
	sub      Subscription
	closed   bool

	closeOnce sync.Once
	pumpDone  chan struct{}
}

// NewSession creates an Idle session. Call Open to load history and go live.
func NewSession(svc Service, conversationID, userID string) *Session {
	return &Session{
		svc:            svc,
		conversationID: conversationID,
		userID:         userID,
		state:          StateIdle,
		pumpDone:       make(chan struct{}),
	}
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Messages returns a snapshot copy of the message list in arrival order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// SetDraft replaces the unsent draft text.
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// Draft returns the unsent draft text.
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Open loads history and attaches the live subscription, moving the session
// to Live. Both stages fail soft: a history error yields an empty list, a
// subscription error yields a Live session without a live tail. Open is a
// no-op unless the session is Idle.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.state != StateIdle {
		s.mu.Unlock()
		return nil
	}
	s.state = StateLoadingHistory
	s.mu.Unlock()

	history, err := s.svc.History(ctx, s.conversationID)
	if err != nil {
		logging.LogWarn(ctx, "history load failed",
			zap.String("conversation_id", s.conversationID), zap.Error(err))
		history = nil
	}

	sub, err := s.svc.Subscribe(ctx, s.conversationID)
	if err != nil {
		logging.LogWarn(ctx, "subscription open failed",
			zap.String("conversation_id", s.conversationID), zap.Error(err))
		sub = nil
	}

	s.mu.Lock()
	if s.closed {
		// Closed while loading; the stale view is discarded.
		s.mu.Unlock()
		if sub != nil {
			sub.Close()
		}
		close(s.pumpDone)
		return nil
	}
	s.messages = history
	s.sub = sub
	s.state = StateLive
	s.mu.Unlock()

	if sub != nil {
		go s.pump(sub)
	} else {
		close(s.pumpDone)
	}
	return nil
}

// pump appends subscribed messages in arrival order. No re-sort and no
// dedup; the list mirrors exactly what the listener delivered.
func (s *Session) pump(sub Subscription) {
	defer close(s.pumpDone)
	for msg := range sub.Events() {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		s.messages = append(s.messages, msg)
		s.mu.Unlock()
	}
}

// Send submits the current draft. A draft that trims to nothing is rejected
// with ErrEmptyMessage before any state change or network call. On success
// the draft is cleared; the message itself arrives through the subscription
// echo rather than a local append. On failure the draft is kept so the user
// can retry. The session must be Live.
func (s *Session) Send(ctx context.Context) (*Message, error) {
	s.mu.Lock()
	if s.closed || s.state != StateLive {
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	draft := s.draft
	if strings.TrimSpace(draft) == "" {
		s.mu.Unlock()
		return nil, ErrEmptyMessage
	}
	s.state = StateSending
	s.mu.Unlock()

	msg, err := s.svc.Send(ctx, s.conversationID, s.userID, draft)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.state = StateLive
	}
	if err != nil {
		return nil, err
	}
	s.draft = ""
	return msg, nil
}

// Close tears the session down. The subscription is closed exactly once no
// matter how many times Close is called or which state the session is in.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		wasIdle := s.state == StateIdle
		s.closed = true
		s.state = StateIdle
		sub := s.sub
		s.sub = nil
		s.mu.Unlock()

		if sub != nil {
			sub.Close()
			<-s.pumpDone
		} else if wasIdle {
			// Never opened; nothing to drain.
			close(s.pumpDone)
		}
	})
}
