package types

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ShareLinkKind classifies signed portal links.
type ShareLinkKind string

const (
	// ShareLinkKindShare lets a member share a posting outside the portal.
	ShareLinkKindShare ShareLinkKind = "share"
	// ShareLinkKindDeleteConfirm guards destructive deletes behind a
	// single-use emailed confirmation.
	ShareLinkKindDeleteConfirm ShareLinkKind = "delete_confirm"
)

// ShareLinkStatus tracks the lifecycle of an issued link.
type ShareLinkStatus string

const (
	ShareLinkStatusIssued  ShareLinkStatus = "issued"
	ShareLinkStatusUsed    ShareLinkStatus = "used"
	ShareLinkStatusRevoked ShareLinkStatus = "revoked"
)

// ShareLink records an issued signed link so single-use links can be
// consumed exactly once.
type ShareLink struct {
	ID        uuid.UUID
	MemberID  uuid.UUID
	TicketID  uuid.UUID
	Kind      ShareLinkKind
	JTI       string
	Status    ShareLinkStatus
	IssuedAt  time.Time
	ExpiresAt time.Time
	UsedAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShareLinkRepository persists issued link records.
type ShareLinkRepository interface {
	CreateLink(ctx context.Context, link ShareLink) (*ShareLink, error)
	GetLinkByJTI(ctx context.Context, kind ShareLinkKind, jti string) (*ShareLink, error)
	ConsumeLink(ctx context.Context, kind ShareLinkKind, jti string) error
}

var (
	// ErrLinkJTIRequired indicates a link operation omitted the JTI.
	ErrLinkJTIRequired = errors.New("go-tickets: link jti required")
	// ErrLinkNotFound indicates no issued link matches the token.
	ErrLinkNotFound = errors.New("go-tickets: link not found")
	// ErrLinkConsumed indicates a single-use link was already used.
	ErrLinkConsumed = errors.New("go-tickets: link already used")
)
