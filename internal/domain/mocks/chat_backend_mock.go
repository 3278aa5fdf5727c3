package mocks

import (
	"context"
	"sync"
)

// MockChatBackend is a mock implementation of domain.ChatBackend
type MockChatBackend struct {
	ChatFunc         func(ctx context.Context, message string) (string, error)
	AnalyzeImageFunc func(ctx context.Context, image, query string) (string, error)

	mu           sync.Mutex
	ChatCalls    []string
	AnalyzeCalls []AnalyzeCall
}

// AnalyzeCall records the arguments of one AnalyzeImage call
type AnalyzeCall struct {
	Image string
	Query string
}

// Chat mocks the Chat method
func (m *MockChatBackend) Chat(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.ChatCalls = append(m.ChatCalls, message)
	m.mu.Unlock()

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, message)
	}
	return "", nil
}

// AnalyzeImage mocks the AnalyzeImage method
func (m *MockChatBackend) AnalyzeImage(ctx context.Context, image, query string) (string, error) {
	m.mu.Lock()
	m.AnalyzeCalls = append(m.AnalyzeCalls, AnalyzeCall{Image: image, Query: query})
	m.mu.Unlock()

	if m.AnalyzeImageFunc != nil {
		return m.AnalyzeImageFunc(ctx, image, query)
	}
	return "", nil
}

// Calls returns the total number of backend calls
func (m *MockChatBackend) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ChatCalls) + len(m.AnalyzeCalls)
}
