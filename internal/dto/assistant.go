package dto

// ChatMessage is one turn of the assistant conversation.
type ChatMessage struct {
	Role string `json:"role" binding:"required,oneof=user model"`
	Text string `json:"text" binding:"required"`
}

// ChatRequest sends a message plus prior turns to the virtual assistant.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history"`
}

// ChatResponse carries the assistant reply, possibly Markdown-formatted.
// Fallback is true when the upstream call failed and Reply is the canned
// error string.
type ChatResponse struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}
