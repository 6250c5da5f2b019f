package note

import (
	"context"
	"testing"

	"github.com/kailas-cloud/notedex/internal/db"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hgetAllFn     func(ctx context.Context, key string) (map[string]string, error)
	delFn         func(ctx context.Context, key string) error
	existsFn      func(ctx context.Context, key string) (bool, error)
	incrFn        func(ctx context.Context, key string) (int64, error)
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

func (m *mockStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	if m.hgetAllFn != nil {
		return m.hgetAllFn(ctx, key)
	}
	return map[string]string{}, nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Incr(ctx context.Context, key string) (int64, error) {
	if m.incrFn != nil {
		return m.incrFn(ctx, key)
	}
	return 1, nil
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

func testNote(t *testing.T) domnote.Note {
	t.Helper()
	reg := fieldtype.NewRegistry(fieldtype.Options{})

	unit, err := attribute.New("unit", "kg")
	if err != nil {
		t.Fatalf("build attribute: %v", err)
	}
	weight, err := domnote.NewField(reg, "weight", fieldtype.Number, attribute.Set{unit}, []string{"72.5"})
	if err != nil {
		t.Fatalf("build field: %v", err)
	}
	status, err := domnote.NewField(reg, "status", fieldtype.Text, nil, []string{"in progress"})
	if err != nil {
		t.Fatalf("build field: %v", err)
	}

	display, err := domnote.NewDisplayField("weight", []string{"72.5"}, "scale", 0)
	if err != nil {
		t.Fatalf("build display field: %v", err)
	}

	n, err := domnote.New(
		1, "ext-1", "workout log", "user-1",
		[]domnote.Field{weight, status},
		[]domnote.DisplayField{display},
		1700000000, 1700000100,
	)
	if err != nil {
		t.Fatalf("build note: %v", err)
	}
	return n
}
