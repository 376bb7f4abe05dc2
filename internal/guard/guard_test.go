package guard

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestAuthorize(t *testing.T) {
	owner := uuid.New()

	t.Run("owner is allowed", func(t *testing.T) {
		if err := Authorize(owner, owner); err != nil {
			t.Errorf("Authorize = %v, want nil", err)
		}
	})

	t.Run("anyone else is denied", func(t *testing.T) {
		if err := Authorize(owner, uuid.New()); !errors.Is(err, ErrAccessDenied) {
			t.Errorf("Authorize = %v, want ErrAccessDenied", err)
		}
	})
}
