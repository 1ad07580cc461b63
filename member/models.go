package member

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Record models the persisted row in members.
type Record struct {
	bun.BaseModel `bun:"table:members"`

	ID        uuid.UUID      `bun:",pk,type:uuid"`
	UserID    uuid.UUID      `bun:"user_id,type:uuid"`
	Tier      string         `bun:"membership_tier"`
	Status    string         `bun:"status"`
	JoinDate  time.Time      `bun:"join_date"`
	Benefits  map[string]any `bun:"benefits,type:jsonb,nullzero"`
	CreatedAt time.Time      `bun:"created_at"`
	UpdatedAt time.Time      `bun:"updated_at"`
}
