package guard

import (
	"errors"

	"github.com/google/uuid"
)

// ErrAccessDenied is returned when an entity exists but does not belong to
// the requesting user. Handlers surface it without leaking entity details.
var ErrAccessDenied = errors.New("access denied")

// Authorize checks that the resolved owner of an entity is the requester.
func Authorize(ownerID, requesterID uuid.UUID) error {
	if ownerID != requesterID {
		return ErrAccessDenied
	}
	return nil
}
