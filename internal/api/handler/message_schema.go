package handler

// createMessageRequest is the POST /messages body. Any client-supplied
// author or timestamp field is ignored: both are server-assigned.
type createMessageRequest struct {
	Content string   `json:"content" validate:"required"`
	Tags    []string `json:"tags"`
}

// createdResponse acknowledges a successful creation.
type createdResponse struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errormessage"`
	ID           string `json:"id"`
}

// ackResponse acknowledges a successful operation with no payload.
type ackResponse struct {
	Error        bool   `json:"error"`
	ErrorMessage string `json:"errormessage"`
}
