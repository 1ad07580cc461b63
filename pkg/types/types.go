package types

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MembershipTier represents the portal membership levels.
type MembershipTier string

const (
	TierBasic   MembershipTier = "basic"
	TierPremium MembershipTier = "premium"
	TierVIP     MembershipTier = "vip"
)

// Valid reports whether the tier is one of the known levels.
func (t MembershipTier) Valid() bool {
	switch t {
	case TierBasic, TierPremium, TierVIP:
		return true
	default:
		return false
	}
}

// MemberStatus captures the account standing shown on the dashboard. Values
// beyond the two common ones are stored verbatim.
type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "active"
	MemberStatusPending MemberStatus = "pending"
)

// TicketIntent is the disposition a member wants for a posted ticket.
type TicketIntent string

const (
	IntentSwap   TicketIntent = "swap"
	IntentDonate TicketIntent = "donate"
)

// Valid reports whether the intent is one of the two accepted values.
func (i TicketIntent) Valid() bool {
	return i == IntentSwap || i == IntentDonate
}

// TicketStatusAvailable is assigned to every newly posted ticket. The status
// column is otherwise treated as opaque text.
const TicketStatusAvailable = "available"

// Member mirrors the persisted members row. UserID references the external
// identity supplied by the auth provider; exactly one member exists per
// external identity.
type Member struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Tier      MembershipTier
	Status    MemberStatus
	JoinDate  time.Time
	Benefits  map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Ticket is a postable offer of event tickets. A ticket always belongs to the
// member that created it and is never transferred.
type Ticket struct {
	ID        uuid.UUID
	MemberID  uuid.UUID
	EventName string
	EventDate time.Time
	Quantity  int
	Intent    TicketIntent
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ActivityEntry is an immutable audit record of a member action. TicketID is
// uuid.Nil for actions that are not ticket-scoped. Entries are never updated
// or deleted once written.
type ActivityEntry struct {
	ID         uuid.UUID
	MemberID   uuid.UUID
	TicketID   uuid.UUID
	ActionType string
	Timestamp  time.Time
}

// TicketSummary is the snapshot of ticket fields attached to activity feed
// items at read time.
type TicketSummary struct {
	ID        uuid.UUID
	EventName string
	EventDate time.Time
	Quantity  int
	Intent    TicketIntent
}

// ActivityFeedItem pairs an entry with a best-effort ticket snapshot. Ticket
// is nil when the entry has no ticket reference or the ticket has since been
// deleted; the entry itself is always returned.
type ActivityFeedItem struct {
	Entry  ActivityEntry
	Ticket *TicketSummary
}

// IntentFilter narrows ticket listings. The empty value means "all".
type IntentFilter string

const (
	IntentFilterAll    IntentFilter = "all"
	IntentFilterSwap   IntentFilter = "swap"
	IntentFilterDonate IntentFilter = "donate"
)

// Valid reports whether the filter value is recognized.
func (f IntentFilter) Valid() bool {
	switch f {
	case "", IntentFilterAll, IntentFilterSwap, IntentFilterDonate:
		return true
	default:
		return false
	}
}

// Intent returns the concrete intent the filter selects, or "" for all.
func (f IntentFilter) Intent() TicketIntent {
	switch f {
	case IntentFilterSwap:
		return IntentSwap
	case IntentFilterDonate:
		return IntentDonate
	default:
		return ""
	}
}

// Pagination supports bounded listings across the portal views.
type Pagination struct {
	Limit  int
	Offset int
}

// TicketOwnership selects which side of the tickets page a listing serves.
type TicketOwnership string

const (
	// OwnershipMine lists tickets posted by the acting member.
	OwnershipMine TicketOwnership = "mine"
	// OwnershipOthers lists tickets posted by everyone else.
	OwnershipOthers TicketOwnership = "others"
)

// TicketFilter scopes repository listings to a member plus optional intent.
// Ownership and intent are pushed into the storage query rather than applied
// in memory over a full scan.
type TicketFilter struct {
	MemberID   uuid.UUID
	Intent     IntentFilter
	Pagination Pagination
}

// TicketListFilter is the query-layer input for the tickets page.
type TicketListFilter struct {
	MemberID   uuid.UUID
	Ownership  TicketOwnership
	Intent     IntentFilter
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (TicketListFilter) Type() string {
	return "query.ticket.list"
}

// Validate implements gocommand.Message.
func (filter TicketListFilter) Validate() error {
	if filter.MemberID == uuid.Nil {
		return ErrMemberIDRequired
	}
	if !filter.Intent.Valid() {
		return ErrInvalidIntentFilter
	}
	return nil
}

// TicketPage represents a paginated ticket listing.
type TicketPage struct {
	Tickets    []Ticket
	Total      int
	NextOffset int
	HasMore    bool
}

// ActivityFeedFilter scopes the activity feed to a member.
type ActivityFeedFilter struct {
	MemberID   uuid.UUID
	Pagination Pagination
}

// Type implements gocommand.Message for query inputs.
func (ActivityFeedFilter) Type() string {
	return "query.activity.feed"
}

// Validate implements gocommand.Message.
func (filter ActivityFeedFilter) Validate() error {
	if filter.MemberID == uuid.Nil {
		return ErrMemberIDRequired
	}
	return nil
}

// ActivityFeed is a paginated, enriched slice of the member's audit trail.
type ActivityFeed struct {
	Items      []ActivityFeedItem
	Total      int
	NextOffset int
	HasMore    bool
}

// MemberStatsFilter scopes aggregate queries to a member.
type MemberStatsFilter struct {
	MemberID uuid.UUID
}

// Type implements gocommand.Message for query inputs.
func (MemberStatsFilter) Type() string {
	return "query.member.stats"
}

// Validate implements gocommand.Message.
func (filter MemberStatsFilter) Validate() error {
	if filter.MemberID == uuid.Nil {
		return ErrMemberIDRequired
	}
	return nil
}

// MemberStats summarizes a member's postings. Counts are recomputed fresh on
// every request; nothing here is cached.
type MemberStats struct {
	TotalTickets  int
	SwapCount     int
	DonationCount int
}

// DashboardFilter drives the dashboard summary query.
type DashboardFilter struct {
	MemberID    uuid.UUID
	RecentLimit int
}

// Type implements gocommand.Message for query inputs.
func (DashboardFilter) Type() string {
	return "query.member.dashboard"
}

// Validate implements gocommand.Message.
func (filter DashboardFilter) Validate() error {
	if filter.MemberID == uuid.Nil {
		return ErrMemberIDRequired
	}
	return nil
}

// DashboardSummary carries everything the dashboard view renders: the member
// card, their ticket count, and the newest postings across all members.
type DashboardSummary struct {
	Member        Member
	TicketCount   int
	RecentTickets []Ticket
}

// TicketEvent is emitted after ticket mutations.
type TicketEvent struct {
	Ticket     Ticket
	Action     string
	MemberID   uuid.UUID
	OccurredAt time.Time
}

// TierEvent is emitted after a self-service tier change.
type TierEvent struct {
	MemberID   uuid.UUID
	FromTier   MembershipTier
	ToTier     MembershipTier
	OccurredAt time.Time
}

// Hooks groups optional callbacks invoked after key workflows complete.
type Hooks struct {
	AfterTicketChange func(context.Context, TicketEvent)
	AfterTierChange   func(context.Context, TierEvent)
	AfterActivity     func(context.Context, ActivityEntry)
}

// MemberRepository resolves and mutates member records. Creation happens at
// registration time outside this module; members are never deleted here.
type MemberRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Member, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Member, error)
	UpdateTier(ctx context.Context, id uuid.UUID, tier MembershipTier) (*Member, error)
}

// TicketRepository persists ticket postings. All listings are newest-first by
// creation time.
type TicketRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	Create(ctx context.Context, ticket *Ticket) (*Ticket, error)
	Update(ctx context.Context, ticket *Ticket) (*Ticket, error)
	Delete(ctx context.Context, ticket *Ticket) error
	ListOwned(ctx context.Context, filter TicketFilter) (TicketPage, error)
	ListOthers(ctx context.Context, filter TicketFilter) (TicketPage, error)
	ListRecent(ctx context.Context, limit int) ([]Ticket, error)
	CountByIntent(ctx context.Context, memberID uuid.UUID) (MemberStats, error)
}

// ActivitySink is the minimal DI contract for appending activity. Keep it
// limited to Log so hosts can swap sinks without breaking changes.
type ActivitySink interface {
	Log(ctx context.Context, entry ActivityEntry) error
}

// ActivityRepository exposes read-side access to the audit trail.
type ActivityRepository interface {
	ListRecent(ctx context.Context, filter ActivityFeedFilter) (ActivityFeed, error)
	GetEntry(ctx context.Context, id uuid.UUID) (*ActivityEntry, error)
}

// Clock abstracts time retrieval for deterministic testing.
type Clock interface {
	Now() time.Time
}

// IDGenerator abstracts UUID creation.
type IDGenerator interface {
	UUID() uuid.UUID
}

// Logger captures basic logging hooks used by the service.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Error(msg string, err error, fields ...any)
}

// SystemClock defers to time.Now for production usage.
type SystemClock struct{}

// Now returns the current UTC time.
func (SystemClock) Now() time.Time { return time.Now().UTC() }

// UUIDGenerator produces UUIDv4 identifiers.
type UUIDGenerator struct{}

// UUID returns a randomly generated UUID.
func (UUIDGenerator) UUID() uuid.UUID { return uuid.New() }

// NopLogger discards all log lines.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, ...any) {}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Error implements Logger.
func (NopLogger) Error(string, error, ...any) {}

// NormalizeActionType lowercases and trims free-text action classifications.
func NormalizeActionType(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}

var (
	// ErrMemberIDRequired indicates a member identifier was omitted.
	ErrMemberIDRequired = errors.New("go-tickets: member id required")
	// ErrTicketIDRequired indicates a ticket identifier was omitted.
	ErrTicketIDRequired = errors.New("go-tickets: ticket id required")
	// ErrEntryIDRequired indicates an activity entry identifier was omitted.
	ErrEntryIDRequired = errors.New("go-tickets: activity entry id required")
	// ErrInvalidIntentFilter indicates an unrecognized intent filter value.
	ErrInvalidIntentFilter = errors.New("go-tickets: intent filter must be all, swap, or donate")
	// ErrServiceNotReady indicates the service has not been properly configured.
	ErrServiceNotReady = errors.New("go-tickets: service not ready")
	// ErrMissingMemberRepository occurs when no member repository was supplied.
	ErrMissingMemberRepository = errors.New("go-tickets: missing member repository")
	// ErrMissingTicketRepository occurs when no ticket repository was supplied.
	ErrMissingTicketRepository = errors.New("go-tickets: missing ticket repository")
	// ErrMissingActivitySink occurs when no activity sink was supplied.
	ErrMissingActivitySink = errors.New("go-tickets: missing activity sink")
	// ErrMissingActivityRepository occurs when no activity repository was supplied.
	ErrMissingActivityRepository = errors.New("go-tickets: missing activity repository")
)
