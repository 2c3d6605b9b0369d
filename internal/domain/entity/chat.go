package entity

// ChatRequest is the inbound payload for the chat endpoints.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatReply is the successful response body.
type ChatReply struct {
	Reply string `json:"reply"`
}

// ErrorEnvelope is the structured error body returned for any failed
// request, carrying a correlation id that matches the server logs.
type ErrorEnvelope struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id"`
}

// ExtractRequest is the inbound payload for flight-manifest extraction.
type ExtractRequest struct {
	Email string `json:"email"`
}
