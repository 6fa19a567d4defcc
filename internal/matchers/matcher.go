package matchers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
)

//go:generate mockgen -source=matcher.go -destination=./mocks/matcher_mock.go -package=mocks
type Matcher interface {
	// Register compiles filter for documents of index/collection and returns
	// its filter id. Registering the same triple twice returns the same id.
	Register(ctx context.Context, index, collection string, filter map[string]any) (string, error)
	// Test returns the ids of the registered filters that body matches, in
	// registration order. It returns an empty list when nothing matches.
	Test(ctx context.Context, index, collection, id string, body map[string]any) ([]string, error)
}

type registeredFilter struct {
	id    string
	match predicate
}

type scope struct {
	index      string
	collection string
}

type documentMatcher struct {
	mu      sync.RWMutex
	filters map[scope][]registeredFilter
}

// NewMatcher returns an in-process matcher evaluating filters against
// decoded JSON documents.
func NewMatcher() Matcher {
	return &documentMatcher{filters: make(map[scope][]registeredFilter)}
}

func (m *documentMatcher) Register(ctx context.Context, index, collection string, filter map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	match, err := compileFilter(filter)
	if err != nil {
		return "", err
	}
	id, err := filterID(index, collection, filter)
	if err != nil {
		return "", errInvalidFilter("not serializable: %v", err)
	}

	key := scope{index: index, collection: collection}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, registered := range m.filters[key] {
		if registered.id == id {
			return id, nil
		}
	}
	m.filters[key] = append(m.filters[key], registeredFilter{id: id, match: match})
	return id, nil
}

func (m *documentMatcher) Test(ctx context.Context, index, collection, id string, body map[string]any) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	registered := m.filters[scope{index: index, collection: collection}]
	m.mu.RUnlock()

	doc := document{id: id, body: body}
	matched := make([]string, 0, len(registered))
	for _, filter := range registered {
		if filter.match(doc) {
			matched = append(matched, filter.id)
		}
	}
	return matched, nil
}

// filterID hashes the scope with the filter's canonical JSON form
// (encoding/json sorts object keys).
func filterID(index, collection string, filter map[string]any) (string, error) {
	canonical, err := json.Marshal(filter)
	if err != nil {
		return "", err
	}
	if len(filter) == 0 {
		canonical = []byte("{}")
	}

	hash := sha256.New()
	hash.Write([]byte(index))
	hash.Write([]byte{0})
	hash.Write([]byte(collection))
	hash.Write([]byte{0})
	hash.Write(canonical)
	return hex.EncodeToString(hash.Sum(nil)[:12]), nil
}
