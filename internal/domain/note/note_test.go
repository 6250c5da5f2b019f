package note

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/notedex/internal/domain"
	"github.com/kailas-cloud/notedex/internal/domain/note/attribute"
	"github.com/kailas-cloud/notedex/internal/domain/note/fieldtype"
)

var testRegistry = fieldtype.NewRegistry(fieldtype.Options{})

func makeField(t *testing.T, name string, key fieldtype.Type, values ...string) Field {
	t.Helper()
	f, err := NewField(testRegistry, name, key, nil, values)
	if err != nil {
		t.Fatalf("NewField(%q): %v", name, err)
	}
	return f
}

func TestNewField_Valid(t *testing.T) {
	f := makeField(t, "mood", fieldtype.Text, "good")
	if f.Name() != "mood" {
		t.Errorf("Name() = %q, want mood", f.Name())
	}
	if f.Type() != fieldtype.Text {
		t.Errorf("Type() = %q, want TEXT", f.Type())
	}
	if len(f.Values()) != 1 || f.Values()[0] != "good" {
		t.Errorf("Values() = %v, want [good]", f.Values())
	}
}

func TestNewField_ValidationError(t *testing.T) {
	_, err := NewField(testRegistry, "when", fieldtype.Date, nil, []string{"01-01-2020"})
	if err == nil {
		t.Fatal("expected error for non-ISO date")
	}
	if !errors.Is(err, domain.ErrValidationFailed) {
		t.Errorf("expected ErrValidationFailed, got %v", err)
	}

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %T", err)
	}
	if verr.Field != "when" {
		t.Errorf("Field = %q, want when", verr.Field)
	}
	if len(verr.Reasons) == 0 {
		t.Error("expected at least one reason")
	}
}

func TestNewField_CollectsAllFailures(t *testing.T) {
	attrs, err := attribute.NewSet(
		mustAttr(t, "values", "only"),
		mustAttr(t, "allowAddValue", "maybe"),
	)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}

	_, err = NewField(testRegistry, "tags", fieldtype.DropDown, attrs, nil)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *domain.ValidationError, got %v", err)
	}
	// Option count and allowAddValue literal both failed.
	if len(verr.Reasons) < 2 {
		t.Errorf("expected multiple reasons, got %v", verr.Reasons)
	}
}

func mustAttr(t *testing.T, key string, values ...string) attribute.Attribute {
	t.Helper()
	a, err := attribute.New(key, values...)
	if err != nil {
		t.Fatalf("attribute.New(%q): %v", key, err)
	}
	return a
}

func TestNewField_NameRules(t *testing.T) {
	if _, err := NewField(testRegistry, "", fieldtype.Text, nil, []string{"v"}); err == nil {
		t.Error("empty field name accepted")
	}
	long := strings.Repeat("n", MaxFieldNameLength+1)
	if _, err := NewField(testRegistry, long, fieldtype.Text, nil, []string{"v"}); err == nil {
		t.Error("over-long field name accepted")
	}
}

func TestNewField_UnknownTypePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unregistered type key")
		}
	}()
	_, _ = NewField(testRegistry, "x", "VIDEO", nil, []string{"v"})
}

func TestNew_Valid(t *testing.T) {
	fields := []Field{makeField(t, "mood", fieldtype.Text, "good")}
	displays := []DisplayField{
		ReconstructDisplayField("mood", []string{"good"}, "face", 1),
		ReconstructDisplayField("first", []string{"x"}, "star", 0),
	}

	n, err := New(7, "ext-7", "daily log", "user-1", fields, displays, 100, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID() != 7 || n.Owner() != "user-1" {
		t.Errorf("identity mismatch: id=%d owner=%q", n.ID(), n.Owner())
	}

	// Display fields come back sorted by the authoritative order value.
	got := n.DisplayFields()
	if got[0].Name() != "first" || got[1].Name() != "mood" {
		t.Errorf("display order = [%s %s], want [first mood]", got[0].Name(), got[1].Name())
	}
}

func TestNew_Invalid(t *testing.T) {
	f := makeField(t, "mood", fieldtype.Text, "good")

	tests := []struct {
		name string
		run  func() error
	}{
		{"zero id", func() error {
			_, err := New(0, "e", "t", "o", nil, nil, 0, 0)
			return err
		}},
		{"empty external id", func() error {
			_, err := New(1, "", "t", "o", nil, nil, 0, 0)
			return err
		}},
		{"empty title", func() error {
			_, err := New(1, "e", "", "o", nil, nil, 0, 0)
			return err
		}},
		{"over-long title", func() error {
			_, err := New(1, "e", strings.Repeat("t", MaxTitleLength+1), "o", nil, nil, 0, 0)
			return err
		}},
		{"empty owner", func() error {
			_, err := New(1, "e", "t", "", nil, nil, 0, 0)
			return err
		}},
		{"duplicate field names", func() error {
			_, err := New(1, "e", "t", "o", []Field{f, f}, nil, 0, 0)
			return err
		}},
	}

	for _, tt := range tests {
		if tt.run() == nil {
			t.Errorf("%s: accepted", tt.name)
		}
	}
}
