package conversations

// ListInput has no parameters; the caller's whole inbox is returned.
type ListInput struct{}

// EnsureInput opens or reuses a conversation with a provider.
type EnsureInput struct {
	Body struct {
		ProviderID string `json:"providerId" minLength:"1" doc:"Provider to converse with"`
	}
}

// MessagesInput identifies a conversation's history.
type MessagesInput struct {
	ID string `path:"id" doc:"Conversation identifier"`
}

// StreamInput identifies the conversation to stream live.
type StreamInput struct {
	ID string `path:"id" doc:"Conversation identifier"`
}

// SendInput appends a message to a conversation.
type SendInput struct {
	ID   string `path:"id" doc:"Conversation identifier"`
	Body struct {
		Content string `json:"content" maxLength:"4000" doc:"Message text"`
	}
}
