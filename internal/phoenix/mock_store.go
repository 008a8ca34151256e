package phoenix

import "time"

// MockStore is a mock implementation of TraceStore for testing
type MockStore struct {
	Traces      []Trace
	ListErr     error
	Records     map[string]map[string]any
	GetErr      error
	LastSince   time.Time
	LastTraceID string
}

// Ensure MockStore implements TraceStore
var _ TraceStore = (*MockStore)(nil)

func (m *MockStore) ListTraces(since time.Time, limit int) ([]Trace, error) {
	m.LastSince = since
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if len(m.Traces) > limit {
		return m.Traces[:limit], nil
	}
	return m.Traces, nil
}

func (m *MockStore) GetTrace(id string) (map[string]any, error) {
	m.LastTraceID = id
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Records[id], nil
}
