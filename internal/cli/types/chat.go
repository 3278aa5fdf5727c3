package types

// ChatRequest is the body of POST /api/chat
type ChatRequest struct {
	Message string `json:"message"`
}

// AnalyzeImageRequest is the body of POST /api/analyze-image
type AnalyzeImageRequest struct {
	Image string `json:"image"` // data URL encoded image
	Query string `json:"query"`
}

// ChatResponse is returned by both endpoints. Response is nil when the
// backend omitted it; Error is set by the backend on failures.
type ChatResponse struct {
	Response *string `json:"response,omitempty"`
	Error    string  `json:"error,omitempty"`
}
