package chat

import (
	"context"
	"errors"
	"testing"
	"time"
)

func liveSession(t *testing.T) (*Session, *MockChatService) {
	t.Helper()
	svc := NewMockChatService()
	svc.Store.Convs = []Conversation{{ID: "c1", CustomerID: "cust1", ProviderID: "prov1"}}
	svc.Store.Msgs["c1"] = []Message{
		{ID: "m1", ConversationID: "c1", SenderID: "prov1", Content: "hello"},
	}

	sess := NewSession(svc, "c1", "cust1")
	if err := sess.Open(context.Background()); err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(sess.Close)
	return sess, svc
}

// waitForMessages polls until the session holds want messages or the
// deadline passes.
func waitForMessages(t *testing.T, sess *Session, want int) []Message {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		msgs := sess.Messages()
		if len(msgs) >= want {
			return msgs
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d messages, have %d", want, len(sess.Messages()))
	return nil
}

func TestSessionOpenLoadsHistoryAndGoesLive(t *testing.T) {
	sess, _ := liveSession(t)

	if got := sess.State(); got != StateLive {
		t.Fatalf("expected Live, got %q", got)
	}
	msgs := sess.Messages()
	if len(msgs) != 1 || msgs[0].Content != "hello" {
		t.Errorf("history not loaded: %+v", msgs)
	}
}

func TestSessionOpenHistoryFailureStillGoesLive(t *testing.T) {
	svc := NewMockChatService()
	svc.HistoryErr = errors.New("store down")

	sess := NewSession(svc, "c1", "cust1")
	if err := sess.Open(context.Background()); err != nil {
		t.Fatalf("open must fail soft, got %v", err)
	}
	defer sess.Close()

	if got := sess.State(); got != StateLive {
		t.Errorf("expected Live, got %q", got)
	}
	if len(sess.Messages()) != 0 {
		t.Errorf("expected empty history, got %v", sess.Messages())
	}
}

func TestSessionOpenSubscribeFailureStillGoesLive(t *testing.T) {
	svc := NewMockChatService()
	svc.SubErr = errors.New("listener down")

	sess := NewSession(svc, "c1", "cust1")
	if err := sess.Open(context.Background()); err != nil {
		t.Fatalf("open must fail soft, got %v", err)
	}

	if got := sess.State(); got != StateLive {
		t.Errorf("expected Live without a live tail, got %q", got)
	}
	sess.Close()
}

func TestSessionSendClearsDraft(t *testing.T) {
	sess, svc := liveSession(t)

	sess.SetDraft("  I need a plumber  ")
	msg, err := sess.Send(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Content != "I need a plumber" {
		t.Errorf("expected trimmed content, got %q", msg.Content)
	}
	if sess.Draft() != "" {
		t.Errorf("draft must clear on success, got %q", sess.Draft())
	}
	if got := sess.State(); got != StateLive {
		t.Errorf("expected Live after send, got %q", got)
	}
	// The sent message reaches the view through the subscription echo.
	msgs := waitForMessages(t, sess, 2)
	if msgs[1].ID != msg.ID {
		t.Errorf("sent message not delivered: %+v", msgs)
	}
	if svc.SendCalls != 1 {
		t.Errorf("expected one send call, got %d", svc.SendCalls)
	}
}

func TestSessionSendRejectsWhitespaceWithoutCall(t *testing.T) {
	sess, svc := liveSession(t)

	for _, draft := range []string{"", "   ", "\t\n"} {
		sess.SetDraft(draft)
		if _, err := sess.Send(context.Background()); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("draft %q: expected ErrEmptyMessage, got %v", draft, err)
		}
		if got := sess.State(); got != StateLive {
			t.Errorf("draft %q: state must stay Live, got %q", draft, got)
		}
	}
	if svc.SendCalls != 0 {
		t.Errorf("whitespace drafts must not reach the service, got %d calls", svc.SendCalls)
	}
}

func TestSessionSendFailureKeepsDraft(t *testing.T) {
	sess, svc := liveSession(t)
	svc.SendErr = errors.New("network down")

	sess.SetDraft("retry me")
	if _, err := sess.Send(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if sess.Draft() != "retry me" {
		t.Errorf("draft must survive a failed send, got %q", sess.Draft())
	}
	if got := sess.State(); got != StateLive {
		t.Errorf("expected Live after failed send, got %q", got)
	}
	if len(sess.Messages()) != 1 {
		t.Errorf("failed send must not append, got %v", sess.Messages())
	}
}

func TestSessionAppendsSubscribedMessages(t *testing.T) {
	sess, svc := liveSession(t)

	svc.Store.Sub.Push(Message{ID: "m2", ConversationID: "c1", SenderID: "prov1", Content: "arriving at 5"})
	msgs := waitForMessages(t, sess, 2)
	if msgs[1].Content != "arriving at 5" {
		t.Errorf("subscribed message not appended: %+v", msgs)
	}
}

func TestSessionAppendsInArrivalOrder(t *testing.T) {
	sess, svc := liveSession(t)

	// Events are appended exactly as delivered, with no re-sort.
	svc.Store.Sub.Push(Message{ID: "m3", ConversationID: "c1", SenderID: "prov1", Content: "third"})
	svc.Store.Sub.Push(Message{ID: "m2", ConversationID: "c1", SenderID: "prov1", Content: "second"})
	msgs := waitForMessages(t, sess, 3)
	if msgs[1].ID != "m3" || msgs[2].ID != "m2" {
		t.Errorf("expected arrival order m3 then m2, got %+v", msgs)
	}
}

func TestSessionCloseTearsDownOnce(t *testing.T) {
	sess, svc := liveSession(t)

	sess.Close()
	sess.Close()
	if got := svc.Store.Sub.CloseCalls(); got != 1 {
		t.Errorf("subscription must close exactly once, got %d", got)
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("expected Idle after close, got %q", got)
	}
}

func TestSessionOpenAfterCloseIsNoOp(t *testing.T) {
	svc := NewMockChatService()
	sess := NewSession(svc, "c1", "cust1")
	sess.Close()

	if err := sess.Open(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("closed session must stay Idle, got %q", got)
	}
	if svc.Store.Sub != nil {
		t.Error("closed session must not subscribe")
	}
}

func TestSessionSendWhenNotLive(t *testing.T) {
	svc := NewMockChatService()
	sess := NewSession(svc, "c1", "cust1")

	sess.SetDraft("too early")
	if _, err := sess.Send(context.Background()); err == nil {
		t.Error("expected error before Open")
	}
	if svc.SendCalls != 0 {
		t.Errorf("idle session must not reach the service, got %d calls", svc.SendCalls)
	}
}
