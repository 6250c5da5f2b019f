package note

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/notedex/internal/clock"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
	"github.com/kailas-cloud/notedex/internal/domain/search/page"
)

type mockNoteRepo struct {
	nextID    int64
	nextIDErr error

	upserted   []domnote.Note
	upsertErr  error
	created    bool
	getNote    domnote.Note
	getErr     error
	listSlice  page.Slice[domnote.Note]
	listErr    error
	deletedIDs []string
	deleteErr  error
}

func (m *mockNoteRepo) NextID(context.Context) (int64, error) {
	return m.nextID, m.nextIDErr
}

func (m *mockNoteRepo) Upsert(_ context.Context, n domnote.Note) (bool, error) {
	if m.upsertErr != nil {
		return false, m.upsertErr
	}
	m.upserted = append(m.upserted, n)
	return m.created, nil
}

func (m *mockNoteRepo) Get(context.Context, string) (domnote.Note, error) {
	return m.getNote, m.getErr
}

func (m *mockNoteRepo) List(context.Context, string, page.Pageable) (page.Slice[domnote.Note], error) {
	return m.listSlice, m.listErr
}

func (m *mockNoteRepo) Delete(_ context.Context, externalID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedIDs = append(m.deletedIDs, externalID)
	return nil
}

type mockIndexer struct {
	projected  []domnote.Note
	projectErr error
	removedIDs []string
	removeErr  error
}

func (m *mockIndexer) CreateFromNote(_ context.Context, n domnote.Note) error {
	if m.projectErr != nil {
		return m.projectErr
	}
	m.projected = append(m.projected, n)
	return nil
}

func (m *mockIndexer) DeleteByNoteID(_ context.Context, id string) error {
	if m.removeErr != nil {
		return m.removeErr
	}
	m.removedIDs = append(m.removedIDs, id)
	return nil
}

func newTestService(repo *mockNoteRepo, idx *mockIndexer) *Service {
	reg := fieldtype.NewRegistry(fieldtype.Options{})
	clk := clock.Fixed{T: time.Unix(1700000500, 0)}
	svc := New(repo, idx, reg, clk)
	return svc.WithIDGenerator(func() string { return "ext-fixed" })
}

func testInput() NoteInput {
	return NoteInput{
		Title: "workout log",
		Fields: []FieldInput{
			{
				Name:       "weight",
				Type:       "NUMBER",
				Attributes: map[string][]string{"unit": {"kg"}},
				Values:     []string{"72.5"},
			},
			{Name: "status", Type: "TEXT", Values: []string{"in progress"}},
		},
		DisplayFields: []DisplayFieldInput{
			{Name: "weight", Values: []string{"72.5"}, Icon: "scale", Order: 0},
		},
	}
}

func TestService_Create(t *testing.T) {
	repo := &mockNoteRepo{nextID: 7}
	idx := &mockIndexer{}
	svc := newTestService(repo, idx)

	n, err := svc.Create(context.Background(), "user-1", testInput())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if n.ID() != 7 {
		t.Errorf("ID() = %d, want 7", n.ID())
	}
	if n.ExternalID() != "ext-fixed" {
		t.Errorf("ExternalID() = %q", n.ExternalID())
	}
	if n.Owner() != "user-1" {
		t.Errorf("Owner() = %q", n.Owner())
	}
	if n.CreatedAt() != 1700000500 || n.ModifiedAt() != 1700000500 {
		t.Errorf("timestamps = %d/%d, want 1700000500", n.CreatedAt(), n.ModifiedAt())
	}
	if len(n.Fields()) != 2 {
		t.Fatalf("len(Fields()) = %d, want 2", len(n.Fields()))
	}

	if len(repo.upserted) != 1 {
		t.Fatalf("upserted %d notes, want 1", len(repo.upserted))
	}
	if len(idx.projected) != 1 {
		t.Fatalf("projected %d notes, want 1", len(idx.projected))
	}
	if idx.projected[0].ExternalID() != repo.upserted[0].ExternalID() {
		t.Error("projected note differs from persisted note")
	}
}

func TestService_Create_UnknownFieldType(t *testing.T) {
	svc := newTestService(&mockNoteRepo{nextID: 1}, &mockIndexer{})

	in := testInput()
	in.Fields[0].Type = "HOLOGRAM"

	_, err := svc.Create(context.Background(), "user-1", in)
	if err == nil {
		t.Fatal("expected error for unknown field type")
	}
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	if verr.Field != "weight" {
		t.Errorf("Field = %q, want %q", verr.Field, "weight")
	}
}

func TestService_Create_InvalidValues(t *testing.T) {
	svc := newTestService(&mockNoteRepo{nextID: 1}, &mockIndexer{})

	in := testInput()
	in.Fields[0].Values = []string{"not-a-number"}

	_, err := svc.Create(context.Background(), "user-1", in)
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestService_Create_EmptyTitle(t *testing.T) {
	svc := newTestService(&mockNoteRepo{nextID: 1}, &mockIndexer{})

	in := testInput()
	in.Title = ""

	_, err := svc.Create(context.Background(), "user-1", in)
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestService_Create_ProjectionError(t *testing.T) {
	repo := &mockNoteRepo{nextID: 1}
	idx := &mockIndexer{projectErr: errors.New("index down")}
	svc := newTestService(repo, idx)

	_, err := svc.Create(context.Background(), "user-1", testInput())
	if err == nil {
		t.Fatal("expected projection error")
	}
	if len(repo.upserted) != 1 {
		t.Errorf("note should be persisted before projection fails")
	}
}

func TestService_Update(t *testing.T) {
	existing := existingNote(t, 7, "ext-1", "user-1")
	repo := &mockNoteRepo{getNote: existing}
	idx := &mockIndexer{}
	svc := newTestService(repo, idx)

	in := testInput()
	in.Title = "workout log v2"

	n, err := svc.Update(context.Background(), "user-1", "ext-1", in)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if n.ID() != existing.ID() {
		t.Errorf("ID() = %d, want %d", n.ID(), existing.ID())
	}
	if n.CreatedAt() != existing.CreatedAt() {
		t.Errorf("CreatedAt() = %d, want %d", n.CreatedAt(), existing.CreatedAt())
	}
	if n.ModifiedAt() != 1700000500 {
		t.Errorf("ModifiedAt() = %d, want 1700000500", n.ModifiedAt())
	}
	if n.Title() != "workout log v2" {
		t.Errorf("Title() = %q", n.Title())
	}
	if len(idx.projected) != 1 {
		t.Errorf("projected %d notes, want 1", len(idx.projected))
	}
}

func TestService_Update_NotOwner(t *testing.T) {
	repo := &mockNoteRepo{getNote: existingNote(t, 7, "ext-1", "user-2")}
	svc := newTestService(repo, &mockIndexer{})

	_, err := svc.Update(context.Background(), "user-1", "ext-1", testInput())
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.upserted) != 0 {
		t.Error("no write expected on ownership mismatch")
	}
}

func TestService_Get(t *testing.T) {
	existing := existingNote(t, 7, "ext-1", "user-1")
	svc := newTestService(&mockNoteRepo{getNote: existing}, &mockIndexer{})

	n, err := svc.Get(context.Background(), "user-1", "ext-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if n.ExternalID() != existing.ExternalID() || n.Title() != existing.Title() {
		t.Error("returned note differs from stored note")
	}
}

func TestService_Get_NotFound(t *testing.T) {
	repo := &mockNoteRepo{getErr: domain.ErrNoteNotFound}
	svc := newTestService(repo, &mockIndexer{})

	_, err := svc.Get(context.Background(), "user-1", "missing")
	if !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestService_Get_NotOwner(t *testing.T) {
	repo := &mockNoteRepo{getNote: existingNote(t, 7, "ext-1", "user-2")}
	svc := newTestService(repo, &mockIndexer{})

	_, err := svc.Get(context.Background(), "user-1", "ext-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestService_List(t *testing.T) {
	existing := existingNote(t, 7, "ext-1", "user-1")
	repo := &mockNoteRepo{listSlice: page.NewSlice([]domnote.Note{existing}, 20)}
	svc := newTestService(repo, &mockIndexer{})

	p, err := page.New(1, 20, "created_at", page.Desc)
	if err != nil {
		t.Fatalf("page.New() error = %v", err)
	}
	slice, err := svc.List(context.Background(), "user-1", p)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(slice.Items) != 1 || slice.HasNext {
		t.Errorf("slice = %d items, hasNext %v", len(slice.Items), slice.HasNext)
	}
}

func TestService_Delete(t *testing.T) {
	repo := &mockNoteRepo{getNote: existingNote(t, 7, "ext-1", "user-1")}
	idx := &mockIndexer{}
	svc := newTestService(repo, idx)

	if err := svc.Delete(context.Background(), "user-1", "ext-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.deletedIDs) != 1 || repo.deletedIDs[0] != "ext-1" {
		t.Errorf("deletedIDs = %v", repo.deletedIDs)
	}
	if len(idx.removedIDs) != 1 || idx.removedIDs[0] != "7" {
		t.Errorf("removedIDs = %v, want [7]", idx.removedIDs)
	}
}

func TestService_Delete_NotOwner(t *testing.T) {
	repo := &mockNoteRepo{getNote: existingNote(t, 7, "ext-1", "user-2")}
	idx := &mockIndexer{}
	svc := newTestService(repo, idx)

	err := svc.Delete(context.Background(), "user-1", "ext-1")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.deletedIDs) != 0 || len(idx.removedIDs) != 0 {
		t.Error("no delete expected on ownership mismatch")
	}
}

func existingNote(t *testing.T, id int64, externalID, owner string) domnote.Note {
	t.Helper()
	n, err := domnote.New(id, externalID, "workout log", owner, nil, nil, 1700000000, 1700000100)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return n
}
