package activity

import (
	"context"
	"errors"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed activity repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*LogEntry]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

// Repository persists activity entries and serves the enriched feed. It
// implements both ActivitySink and ActivityRepository.
type Repository struct {
	store repository.Repository[*LogEntry]
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default activity repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("activity: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*LogEntry]{
			NewRecord: func() *LogEntry { return &LogEntry{} },
			GetID: func(entry *LogEntry) uuid.UUID {
				if entry == nil {
					return uuid.Nil
				}
				return entry.ID
			},
			SetID: func(entry *LogEntry, id uuid.UUID) {
				if entry != nil {
					entry.ID = id
				}
			},
		})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}

	return &Repository{
		store: repo,
		db:    cfg.DB,
		clock: clock,
		idGen: idGen,
	}, nil
}

var (
	_ types.ActivitySink       = (*Repository)(nil)
	_ types.ActivityRepository = (*Repository)(nil)
)

// Log appends one immutable entry. Identifier and timestamp are assigned
// server-side when the caller leaves them zero.
func (r *Repository) Log(ctx context.Context, entry types.ActivityEntry) error {
	rec := fromDomain(entry)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = r.clock.Now()
	}
	_, err := r.store.Create(ctx, rec)
	return err
}

// GetEntry returns a single entry by id, or nil when no row exists.
func (r *Repository) GetEntry(ctx context.Context, id uuid.UUID) (*types.ActivityEntry, error) {
	if id == uuid.Nil {
		return nil, types.ErrEntryIDRequired
	}
	rec, err := r.store.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	entry := toDomain(rec)
	return &entry, nil
}

// ListRecent returns the member's newest entries, enriched with a snapshot of
// the referenced tickets. Enrichment runs as one batched lookup over the
// distinct ticket ids in the page; entries whose ticket has been deleted come
// back without a snapshot, never dropped.
func (r *Repository) ListRecent(ctx context.Context, filter types.ActivityFeedFilter) (types.ActivityFeed, error) {
	if filter.MemberID == uuid.Nil {
		return types.ActivityFeed{}, types.ErrMemberIDRequired
	}
	pagination := normalizePagination(filter.Pagination, 50, 200)
	criteria := []repository.SelectCriteria{
		func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("member_id = ?", filter.MemberID).
				OrderExpr("timestamp DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
		},
	}

	rows, total, err := r.store.List(ctx, criteria...)
	if err != nil {
		return types.ActivityFeed{}, err
	}

	summaries, err := r.ticketSummaries(ctx, rows)
	if err != nil {
		return types.ActivityFeed{}, err
	}

	items := make([]types.ActivityFeedItem, 0, len(rows))
	for _, row := range rows {
		item := types.ActivityFeedItem{Entry: toDomain(row)}
		if summary, ok := summaries[row.TicketID]; ok {
			snapshot := summary
			item.Ticket = &snapshot
		}
		items = append(items, item)
	}
	return types.ActivityFeed{
		Items:      items,
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func (r *Repository) ticketSummaries(ctx context.Context, rows []*LogEntry) (map[uuid.UUID]types.TicketSummary, error) {
	if r.db == nil {
		// Enrichment is best-effort; a bare store still serves the feed.
		return nil, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if row.TicketID == uuid.Nil {
			continue
		}
		if _, ok := seen[row.TicketID]; ok {
			continue
		}
		seen[row.TicketID] = struct{}{}
		ids = append(ids, row.TicketID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	type ticketRow struct {
		ID        uuid.UUID `bun:"id"`
		EventName string    `bun:"event_name"`
		EventDate time.Time `bun:"event_date"`
		Quantity  int       `bun:"quantity"`
		Intent    string    `bun:"intent"`
	}
	var tickets []ticketRow
	err := r.db.NewSelect().
		Table("tickets").
		Column("id", "event_name", "event_date", "quantity", "intent").
		Where("id IN (?)", bun.In(ids)).
		Scan(ctx, &tickets)
	if err != nil {
		return nil, err
	}

	out := make(map[uuid.UUID]types.TicketSummary, len(tickets))
	for _, row := range tickets {
		out[row.ID] = types.TicketSummary{
			ID:        row.ID,
			EventName: row.EventName,
			EventDate: row.EventDate,
			Quantity:  row.Quantity,
			Intent:    types.TicketIntent(row.Intent),
		}
	}
	return out, nil
}

func fromDomain(entry types.ActivityEntry) *LogEntry {
	return &LogEntry{
		ID:         entry.ID,
		MemberID:   entry.MemberID,
		TicketID:   entry.TicketID,
		ActionType: entry.ActionType,
		Timestamp:  entry.Timestamp,
	}
}

func toDomain(entry *LogEntry) types.ActivityEntry {
	if entry == nil {
		return types.ActivityEntry{}
	}
	return types.ActivityEntry{
		ID:         entry.ID,
		MemberID:   entry.MemberID,
		TicketID:   entry.TicketID,
		ActionType: entry.ActionType,
		Timestamp:  entry.Timestamp,
	}
}

// FromActivityEntry converts a domain entry into the Bun model so transports
// can reuse the conversion.
func FromActivityEntry(entry types.ActivityEntry) *LogEntry {
	return fromDomain(entry)
}

// ToActivityEntry converts the Bun model into the domain entry.
func ToActivityEntry(entry *LogEntry) types.ActivityEntry {
	return toDomain(entry)
}

func normalizePagination(p types.Pagination, def, max int) types.Pagination {
	if p.Limit <= 0 {
		p.Limit = def
	}
	if p.Limit > max {
		p.Limit = max
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
