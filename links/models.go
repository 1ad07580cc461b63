package links

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the persisted share_links row.
type Record struct {
	bun.BaseModel `bun:"table:share_links"`

	ID        uuid.UUID  `bun:"id,pk,type:uuid"`
	MemberID  uuid.UUID  `bun:"member_id,notnull,type:uuid"`
	TicketID  uuid.UUID  `bun:"ticket_id,type:uuid,nullzero"`
	Kind      string     `bun:"kind,notnull"`
	JTI       string     `bun:"jti,notnull"`
	Status    string     `bun:"status,notnull"`
	IssuedAt  *time.Time `bun:"issued_at,nullzero"`
	ExpiresAt *time.Time `bun:"expires_at,nullzero"`
	UsedAt    *time.Time `bun:"used_at,nullzero"`
	CreatedAt time.Time  `bun:"created_at"`
	UpdatedAt time.Time  `bun:"updated_at"`
}
