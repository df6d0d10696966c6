package domain

import (
	"time"

	"github.com/google/uuid"
)

// Waiver is a signed liability waiver attached to a booking. The waiver
// template itself lives on the company record (Company.WaiverText).
type Waiver struct {
	ID          uuid.UUID  `json:"id"`
	CompanyID   uuid.UUID  `json:"company_id"`
	BookingID   uuid.UUID  `json:"booking_id"`
	SignerName  string     `json:"signer_name"`
	SignerEmail string     `json:"signer_email"`
	Signed      bool       `json:"signed"`
	SignedAt    *time.Time `json:"signed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
