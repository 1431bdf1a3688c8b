package api

import (
	"context"
	"sync"

	"github.com/diogo/wikichat/internal/models"
)

// MockWikiClient is a mock implementation of WikiClientInterface for testing.
// The *Func fields, when set, take precedence over the fixed return values.
type MockWikiClient struct {
	// Mock return values
	SearchVal  []models.SearchResult
	SearchErr  error
	PageVal    *models.Page
	PageErr    error
	SummaryVal string
	SummaryErr error
	Lang       string

	SearchFunc  func(ctx context.Context, query string) ([]models.SearchResult, error)
	SummaryFunc func(ctx context.Context, title string, sentences int) (string, error)

	// Call counters/recorders
	mu            sync.Mutex
	SearchCalls   int
	PageCalls     int
	SummaryCalls  int
	LastQuery     string
	LastSentences int
	CloseCalled   bool
}

// Ensure MockWikiClient implements WikiClientInterface
var _ WikiClientInterface = (*MockWikiClient)(nil)

func (m *MockWikiClient) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.LastQuery = query
	fn := m.SearchFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, query)
	}
	return m.SearchVal, m.SearchErr
}

func (m *MockWikiClient) Page(ctx context.Context, title string) (*models.Page, error) {
	m.mu.Lock()
	m.PageCalls++
	m.mu.Unlock()

	if m.PageErr != nil {
		return nil, m.PageErr
	}
	if m.PageVal != nil {
		return m.PageVal, nil
	}
	return &models.Page{Title: title}, nil
}

func (m *MockWikiClient) Summary(ctx context.Context, title string, sentences int) (string, error) {
	m.mu.Lock()
	m.SummaryCalls++
	m.LastSentences = sentences
	fn := m.SummaryFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, title, sentences)
	}
	return m.SummaryVal, m.SummaryErr
}

func (m *MockWikiClient) Language() string {
	if m.Lang == "" {
		return models.DefaultLanguage
	}
	return m.Lang
}

func (m *MockWikiClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns the search, page and summary call counts
func (m *MockWikiClient) Calls() (search, page, summary int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SearchCalls, m.PageCalls, m.SummaryCalls
}
