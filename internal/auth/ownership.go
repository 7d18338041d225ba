package auth

import (
	"fmt"

	"github.com/dom/postboard/internal/domain"
	"github.com/google/uuid"
)

// Authorize allows a mutation only when the caller owns the resource. Both ids
// are compared in canonical form. Callers must have already confirmed the
// resource exists.
func Authorize(identity Identity, ownerID uuid.UUID) error {
	callerID, err := uuid.Parse(identity.UserID)
	if err != nil || callerID != ownerID {
		return fmt.Errorf("%w: owner %s, caller %q", domain.ErrForbidden, ownerID, identity.UserID)
	}
	return nil
}
