package activity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// LogEntry models the persisted row in activity_log. Rows are append-only;
// the repository exposes no update or delete operation.
type LogEntry struct {
	bun.BaseModel `bun:"table:activity_log"`

	ID         uuid.UUID `bun:",pk,type:uuid"`
	MemberID   uuid.UUID `bun:"member_id,type:uuid"`
	TicketID   uuid.UUID `bun:"ticket_id,type:uuid,nullzero"`
	ActionType string    `bun:"action_type"`
	Timestamp  time.Time `bun:"timestamp"`
}
