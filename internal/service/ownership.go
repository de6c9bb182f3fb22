package service

import (
	"github.com/google/uuid"

	"bazaar/internal/errors"
)

// checkOwnership allows the operation only when the principal owns the
// resource. Both product and order mutations go through this single check.
func checkOwnership(principalID, ownerID uuid.UUID) error {
	if principalID != ownerID {
		return errors.ErrNotOwner
	}
	return nil
}
