package api

import (
	"io"
	"strings"
	"sync"

	fhttp "github.com/bogdanfinn/fhttp"
)

// mockHTTPClient is an HTTPDoer whose responses come from doFunc
type mockHTTPClient struct {
	doFunc func(req *fhttp.Request) (*fhttp.Response, error)

	mu        sync.Mutex
	requests  []*fhttp.Request
	idleClose int
}

func (m *mockHTTPClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	return m.doFunc(req)
}

func (m *mockHTTPClient) CloseIdleConnections() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.idleClose++
}

func (m *mockHTTPClient) requestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// jsonResponse builds a response with the given status and body
func jsonResponse(status int, body string) *fhttp.Response {
	return &fhttp.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(fhttp.Header),
	}
}

// routeByProp answers based on the list/prop parameter of the request
func routeByProp(routes map[string]string) func(req *fhttp.Request) (*fhttp.Response, error) {
	return func(req *fhttp.Request) (*fhttp.Response, error) {
		q := req.URL.Query()
		key := q.Get("list")
		if key == "" {
			key = q.Get("prop")
		}
		body, ok := routes[key]
		if !ok {
			return jsonResponse(200, `{"batchcomplete":true,"query":{}}`), nil
		}
		return jsonResponse(200, body), nil
	}
}

func newTestClient(hc HTTPDoer, opts ...ClientOption) *WikiClient {
	all := append([]ClientOption{
		WithHTTPClient(hc),
		WithEndpoint("https://test.invalid/w/api.php"),
		WithRateLimit(0, 0),
	}, opts...)
	client, err := NewClient(all...)
	if err != nil {
		panic(err)
	}
	return client
}
