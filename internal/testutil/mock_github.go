// Package testutil provides testing utilities for the GitHub client.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// MockGitHub is a configurable mock GitHub API server for testing. It
// records every request it receives so tests can assert call counts and
// inspect GraphQL request bodies.
type MockGitHub struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Queued responses for POST /graphql, served in order. When the queue
	// is exhausted the last entry is repeated.
	graphqlQueue []MockResponse

	// Tracking
	RequestCount      int
	GraphQLCount      int
	GraphQLBodies     []string
	LastRequestHeader http.Header
}

// NewMockGitHub creates a new mock GitHub API server.
func NewMockGitHub() *MockGitHub {
	mock := &MockGitHub{
		handlers: make(map[string]func(w http.ResponseWriter, r *http.Request)),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.mu.Unlock()

		if r.URL.Path == "/graphql" && r.Method == http.MethodPost {
			mock.graphqlHandler(w, r)
			return
		}

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockGitHub) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockGitHub) Close() {
	m.server.Close()
}

// Reset clears all tracking counters and queued responses.
func (m *MockGitHub) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.GraphQLCount = 0
	m.GraphQLBodies = nil
	m.graphqlQueue = nil
	m.LastRequestHeader = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockGitHub) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a simple response for a path.
func (m *MockGitHub) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if resp.Headers["Content-Type"] == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// QueueGraphQL appends responses to the GraphQL response queue.
func (m *MockGitHub) QueueGraphQL(resps ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphqlQueue = append(m.graphqlQueue, resps...)
}

// GetRequestCount returns the total number of requests made to the server.
func (m *MockGitHub) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetGraphQLCount returns the number of POST /graphql requests.
func (m *MockGitHub) GetGraphQLCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.GraphQLCount
}

// GetGraphQLBodies returns the recorded GraphQL request bodies, in order.
func (m *MockGitHub) GetGraphQLBodies() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.GraphQLBodies...)
}

// graphqlHandler records the request body and serves the next queued
// response. Without queued responses it returns an empty data object.
func (m *MockGitHub) graphqlHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.GraphQLCount++
	m.GraphQLBodies = append(m.GraphQLBodies, string(body))
	idx := m.GraphQLCount - 1
	var resp MockResponse
	switch {
	case len(m.graphqlQueue) == 0:
		resp = MockResponse{StatusCode: http.StatusOK, Body: `{"data": {}}`}
	case idx < len(m.graphqlQueue):
		resp = m.graphqlQueue[idx]
	default:
		resp = m.graphqlQueue[len(m.graphqlQueue)-1]
	}
	m.mu.Unlock()

	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	if resp.Headers["Content-Type"] == "" {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// defaultHandler returns a 404 in the GitHub API error shape.
func (m *MockGitHub) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"message": "Not Found"}`))
}

// NewUserResponse creates a 200 OK response with a REST user body.
func NewUserResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewGraphQLData creates a 200 OK GraphQL response with the given data
// document (pass the full JSON for the "data" value).
func NewGraphQLData(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": ` + data + `}`,
	}
}

// NewGraphQLErrors creates a 200 OK GraphQL response carrying only errors.
func NewGraphQLErrors(messages ...string) MockResponse {
	body := `{"data": null, "errors": [`
	for i, msg := range messages {
		if i > 0 {
			body += ", "
		}
		body += `{"message": "` + msg + `"}`
	}
	body += `]}`
	return MockResponse{StatusCode: http.StatusOK, Body: body}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"message": "Internal server error"}`,
	}
}
