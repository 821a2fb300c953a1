package forms

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddItemInitialShape(t *testing.T) {
	s := NewAddItem()
	if diff := cmp.Diff(AddItem{Author: "", Title: "", Copies: "0"}, s.Get()); diff != "" {
		t.Fatalf("initial shape (-want +got):\n%s", diff)
	}
}

func TestUpdateFieldPreservesOthers(t *testing.T) {
	s := NewAddItem()
	if err := s.UpdateField(FieldAuthor, "A"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.UpdateField(FieldTitle, "T"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.UpdateField(FieldCopies, "3"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if diff := cmp.Diff(AddItem{Author: "A", Title: "T", Copies: "3"}, s.Get()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

// Every field ends up equal to the last edit applied to it, whatever the interleaving.
func TestLastEditWinsPerField(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	fields := []string{FieldAuthor, FieldTitle, FieldCopies}
	values := []string{"", "x", "12", "abc", " spaced "}
	for round := 0; round < 50; round++ {
		s := NewAddItem()
		want := s.Get()
		for i := 0; i < 20; i++ {
			f := fields[rng.Intn(len(fields))]
			v := values[rng.Intn(len(values))]
			if err := s.UpdateField(f, v); err != nil {
				t.Fatalf("update: %v", err)
			}
			switch f {
			case FieldAuthor:
				want.Author = v
			case FieldTitle:
				want.Title = v
			case FieldCopies:
				want.Copies = v
			}
		}
		if diff := cmp.Diff(want, s.Get()); diff != "" {
			t.Fatalf("round %d (-want +got):\n%s", round, diff)
		}
	}
}

func TestNoCoercion(t *testing.T) {
	s := NewAddItem()
	_ = s.UpdateField(FieldCopies, "three")
	if got := s.Get().Copies; got != "three" {
		t.Fatalf("copies coerced to %q", got)
	}
}

func TestUnknownField(t *testing.T) {
	s := NewCheckout()
	err := s.UpdateField("author", "A")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if s.Get() != (ItemRef{}) {
		t.Fatalf("failed update mutated the form")
	}
}

func TestResetRestoresInitial(t *testing.T) {
	s := NewAddItem()
	_ = s.UpdateField(FieldAuthor, "A")
	_ = s.UpdateField(FieldCopies, "9")
	s.Reset()
	if diff := cmp.Diff(s.Initial(), s.Get()); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	co, ret := NewCheckout(), NewReturn()
	_ = co.UpdateField(FieldItemID, "42")
	if ret.Get().ItemID != "" {
		t.Fatalf("return form changed by check-out edit")
	}
	ret.Reset()
	if co.Get().ItemID != "42" {
		t.Fatalf("check-out form changed by return reset")
	}
}
