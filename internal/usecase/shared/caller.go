package shared

import (
	"promo-slot-engine/internal/domain/user"

	"github.com/google/uuid"
)

// Caller is the explicit authorization context passed into every operation.
// Nothing in the engine reads identity from ambient request state.
type Caller struct {
	UserID     uuid.UUID
	MerchantID uuid.UUID
	Role       user.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role.IsAdmin()
}

// CanActFor reports whether the caller may create or mutate resources owned
// by the given merchant.
func (c Caller) CanActFor(merchantID uuid.UUID) bool {
	return c.IsAdmin() || c.MerchantID == merchantID
}
