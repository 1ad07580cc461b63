package ticket

import (
	"time"

	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the persisted row in tickets.
type Record struct {
	bun.BaseModel `bun:"table:tickets"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	MemberID  uuid.UUID `bun:"member_id,type:uuid"`
	EventName string    `bun:"event_name"`
	EventDate time.Time `bun:"event_date"`
	Quantity  int       `bun:"quantity"`
	Intent    string    `bun:"intent"`
	Status    string    `bun:"status"`
	CreatedAt time.Time `bun:"created_at"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// FromTicket converts a domain ticket into the Bun model so transports can
// reuse the conversion.
func FromTicket(ticket *types.Ticket) *Record {
	return fromDomain(ticket)
}

// ToTicket converts the Bun model into the domain ticket.
func ToTicket(rec *Record) *types.Ticket {
	return toDomain(rec)
}
