package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/harvest/pkg/harvest"
)

const (
	testEmail    = "user@example.com"
	testPassword = "secret"
)

// xmlServer serves canned XML bodies keyed by request URI and counts hits.
type xmlServer struct {
	*httptest.Server

	mu     sync.Mutex
	routes map[string]route
	hits   map[string]int
}

type route struct {
	status int
	body   string
}

func newXMLServer(t *testing.T) *xmlServer {
	t.Helper()

	srv := &xmlServer{
		routes: make(map[string]route),
		hits:   make(map[string]int),
	}

	srv.Server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		user, pass, ok := request.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, testEmail, user)
		assert.Equal(t, testPassword, pass)
		assert.Equal(t, "application/xml", request.Header.Get("Accept"))

		srv.mu.Lock()
		srv.hits[request.URL.RequestURI()]++
		handler, found := srv.routes[request.URL.RequestURI()]
		srv.mu.Unlock()

		if !found {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		writer.Header().Set("Content-Type", "application/xml")
		writer.WriteHeader(handler.status)
		_, _ = writer.Write([]byte(handler.body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func (s *xmlServer) handle(uri, body string) {
	s.handleStatus(uri, http.StatusOK, body)
}

func (s *xmlServer) handleStatus(uri string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.routes[uri] = route{status: status, body: body}
}

func (s *xmlServer) hitCount(uri string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[uri]
}

func newTestClient(t *testing.T, baseURL string, mutate ...func(*harvest.Config)) *Client {
	t.Helper()

	config := &harvest.Config{
		BaseURL:  baseURL,
		Email:    testEmail,
		Password: testPassword,
	}

	for _, fn := range mutate {
		fn(config)
	}

	client, err := New(context.Background(), config)
	require.NoError(t, err)

	return client
}

// TestGetOperation represents a single-entity fetch test case.
type TestGetOperation struct {
	Name         string
	ID           any
	ExpectedPath string
	Body         string
	Expected     string
}

// RunGetTests runs a series of single-entity fetch tests against a typed
// accessor.
func RunGetTests(
	t *testing.T,
	tests []TestGetOperation,
	getFunc func(*Client) func(context.Context, any, ...harvest.FetchOption) (*harvest.Entity, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			t.Parallel()

			server := newXMLServer(t)
			server.handle(testCase.ExpectedPath, testCase.Body)

			client := newTestClient(t, server.URL)

			entity, err := getFunc(client)(context.Background(), testCase.ID)
			require.NoError(t, err)
			assert.Equal(t, testCase.Expected, entity.String())
			assert.Equal(t, 1, server.hitCount(testCase.ExpectedPath))
		})
	}
}

func collect(t *testing.T, seq func(yield func(*harvest.Entity, error) bool)) []*harvest.Entity {
	t.Helper()

	var entities []*harvest.Entity

	for entity, err := range seq {
		require.NoError(t, err)

		entities = append(entities, entity)
	}

	return entities
}
