package noteindex

import (
	"context"
	"strconv"
	"testing"

	"github.com/kailas-cloud/notedex/internal/db"
	domidx "github.com/kailas-cloud/notedex/internal/domain/noteindex"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	delFn         func(ctx context.Context, key string) error
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn func(ctx context.Context, name string) (bool, error)
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms)
	return repo, ms
}

func domidxWithFilters(t *testing.T, id int, filters map[string][]string) domidx.NoteIndex {
	t.Helper()
	sid := strconv.Itoa(id)
	return domidx.Reconstruct(
		sid, "ext-"+sid, "note "+sid, "user-1",
		1700000000, 1700000100, nil, filters, 1700000200,
	)
}

func testIndex(t *testing.T) domidx.NoteIndex {
	t.Helper()
	return domidx.Reconstruct(
		"1", "ext-1", "grocery run", "user-1",
		1700000000, 1700000100,
		[]domidx.DisplayField{
			{Name: "status", Values: []string{"open"}, Tag: "cart", Order: 0},
		},
		map[string][]string{
			"status": {"open"},
			"tags":   {"errand", "food"},
		},
		1700000200,
	)
}
