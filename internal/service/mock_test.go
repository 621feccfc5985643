package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cosmic-community/homeplate-home-food-delivery-platform/internal/cosmic"
)

// --- Mock implementations ---

// mockStore implements ContentStore. Each fn returns a raw JSON document
// that is decoded into out, mirroring what the real client does. Nil fns
// panic so we catch accidental calls.
type mockStore struct {
	mu sync.Mutex

	findFn      func(q cosmic.Query) (string, error)
	findOneFn   func(objectType, slug string) (string, error)
	insertOneFn func(objectType string, obj map[string]any) (string, error)
	updateOneFn func(id string, patch map[string]any) (string, error)

	queries []cosmic.Query
}

func (m *mockStore) Find(ctx context.Context, q cosmic.Query, out any) error {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	raw, err := m.findFn(q)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockStore) FindOne(ctx context.Context, objectType, slug string, depth int, out any) error {
	raw, err := m.findOneFn(objectType, slug)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockStore) InsertOne(ctx context.Context, objectType string, obj any, out any) error {
	raw, err := m.insertOneFn(objectType, roundTrip(obj))
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

func (m *mockStore) UpdateOne(ctx context.Context, id string, patch any, out any) error {
	raw, err := m.updateOneFn(id, roundTrip(patch))
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), out)
}

// roundTrip re-encodes v as the generic map the content store would see.
func roundTrip(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	return m
}

// byType answers Find queries from a map of object type to JSON array.
// Types missing from the map are not found.
func byType(docs map[string]string) func(q cosmic.Query) (string, error) {
	return func(q cosmic.Query) (string, error) {
		raw, ok := docs[q.Type]
		if !ok {
			return "", cosmic.ErrNotFound
		}
		return raw, nil
	}
}
