package parent

import (
	"testing"

	"github.com/google/uuid"
)

func TestFromIDs(t *testing.T) {
	programID := uuid.New()
	projectID := uuid.New()
	taskID := uuid.New()

	t.Run("ExactlyOne", func(t *testing.T) {
		ref, err := FromIDs(&programID, nil, nil)
		if err != nil {
			t.Fatalf("FromIDs failed: %v", err)
		}
		if ref.Kind() != KindProgram || ref.ID() != programID {
			t.Errorf("unexpected ref: %v", ref)
		}

		ref, err = FromIDs(nil, nil, &taskID)
		if err != nil {
			t.Fatalf("FromIDs failed: %v", err)
		}
		if ref.Kind() != KindTask {
			t.Errorf("unexpected kind: %v", ref.Kind())
		}
	})

	t.Run("None", func(t *testing.T) {
		if _, err := FromIDs(nil, nil, nil); err == nil {
			t.Error("expected error when no parent is set")
		}
	})

	t.Run("Multiple", func(t *testing.T) {
		if _, err := FromIDs(&programID, &projectID, nil); err == nil {
			t.Error("expected error when two parents are set")
		}
	})
}

func TestRefValidate(t *testing.T) {
	if err := (Ref{}).Validate(); err == nil {
		t.Error("zero ref should not validate")
	}
	if err := ForProject(uuid.Nil).Validate(); err == nil {
		t.Error("nil id should not validate")
	}
	if err := ForProject(uuid.New()).Validate(); err != nil {
		t.Errorf("valid ref failed validation: %v", err)
	}
}
