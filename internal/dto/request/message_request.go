package request

// SendMessageRequest represents a chat message. Media messages use the
// tagged body forms [gif:<url>] and [image:<data-url>]; the length
// policy lives in the message service, which exempts media bodies.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// TypingRequest represents a typing heartbeat or an explicit stop.
type TypingRequest struct {
	Typing *bool `json:"typing" binding:"required"`
}
