package dto

// ChatResponse is the body of a successful POST /api/chat.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// ChatErrorResponse is the body of a failed POST /api/chat.
type ChatErrorResponse struct {
	Error string `json:"error"`
}
