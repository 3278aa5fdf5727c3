package domain

import (
	"context"
)

// Flow identifies one of the two submission request paths
type Flow string

const (
	// FlowText sends the message to the text chat endpoint
	FlowText Flow = "text"
	// FlowImage sends the attachment and query to the image analysis endpoint
	FlowImage Flow = "image"
)

// User-visible fixed strings
const (
	// DefaultImageQuery replaces an empty message when an image is attached
	DefaultImageQuery = "Please analyze this image"

	TextApology  = "Sorry, something went wrong. Please try again."
	ImageApology = "Sorry, something went wrong with the image analysis. Please try again."

	PlaceholderDefault   = "Type your health question here..."
	PlaceholderWithImage = "Ask about this image or type a health question..."
)

// Apology returns the fixed message shown when a request of this flow fails
func (f Flow) Apology() string {
	if f == FlowImage {
		return ImageApology
	}
	return TextApology
}

// ChatBackend is the remote chat service consumed by a session
type ChatBackend interface {
	// Chat sends a text message and returns the assistant reply
	Chat(ctx context.Context, message string) (string, error)

	// AnalyzeImage sends a data URL encoded image with a query and returns the assistant reply
	AnalyzeImage(ctx context.Context, image, query string) (string, error)
}

type requestIDKey struct{}

// WithRequestID attaches a submission ID to ctx so transports can forward it
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the submission ID carried by ctx, if any
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
