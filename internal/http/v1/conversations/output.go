package conversations

// ListData is the inbox response body.
type ListData struct {
	Conversations []Summary `json:"conversations" doc:"Inbox rows, most recent activity first"`
}

// ListOutput wraps the inbox response.
type ListOutput struct {
	Body ListData
}

// EnsureOutput wraps the opened conversation. Status is 201 when the
// conversation was created, 200 when an existing one was reused.
type EnsureOutput struct {
	Status int
	Body   Conversation
}

// MessagesData is the history response body.
type MessagesData struct {
	Messages []Message `json:"messages" doc:"Messages in ascending send order"`
}

// MessagesOutput wraps the history response.
type MessagesOutput struct {
	Body MessagesData
}

// SendOutput wraps the stored message.
type SendOutput struct {
	Body Message
}
