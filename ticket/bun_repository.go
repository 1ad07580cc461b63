package ticket

import (
	"context"
	"errors"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RepositoryConfig wires the Bun-backed ticket repository.
type RepositoryConfig struct {
	DB         *bun.DB
	Repository repository.Repository[*Record]
	Clock      types.Clock
	IDGen      types.IDGenerator
}

// Repository implements types.TicketRepository using Bun. Ownership and
// intent filters run inside the storage query; nothing is filtered in memory.
type Repository struct {
	store repository.Repository[*Record]
	db    *bun.DB
	clock types.Clock
	idGen types.IDGenerator
}

// NewRepository constructs the default ticket repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if cfg.Repository == nil && cfg.DB == nil {
		return nil, errors.New("ticket: db or repository required")
	}
	repo := cfg.Repository
	if repo == nil {
		repo = repository.NewRepository(cfg.DB, repository.ModelHandlers[*Record]{
			NewRecord: func() *Record { return &Record{} },
			GetID: func(rec *Record) uuid.UUID {
				if rec == nil {
					return uuid.Nil
				}
				return rec.ID
			},
			SetID: func(rec *Record, id uuid.UUID) {
				if rec != nil {
					rec.ID = id
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

var _ types.TicketRepository = (*Repository)(nil)

// GetByID returns the ticket for the supplied identifier, or nil when no row
// exists.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*types.Ticket, error) {
	if id == uuid.Nil {
		return nil, types.ErrTicketIDRequired
	}
	rec, err := r.store.GetByID(ctx, id.String())
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toDomain(rec), nil
}

// Create persists a new posting with server-assigned id and timestamps.
func (r *Repository) Create(ctx context.Context, ticket *types.Ticket) (*types.Ticket, error) {
	rec := fromDomain(ticket)
	if rec.ID == uuid.Nil {
		rec.ID = r.idGen.UUID()
	}
	now := r.clock.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	if rec.Status == "" {
		rec.Status = types.TicketStatusAvailable
	}
	created, err := r.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(created), nil
}

// Update rewrites the mutable posting fields and bumps updated_at.
func (r *Repository) Update(ctx context.Context, ticket *types.Ticket) (*types.Ticket, error) {
	if ticket == nil || ticket.ID == uuid.Nil {
		return nil, types.ErrTicketIDRequired
	}
	rec := fromDomain(ticket)
	rec.UpdatedAt = r.clock.Now()
	updated, err := r.store.Update(ctx, rec)
	if err != nil {
		return nil, err
	}
	return toDomain(updated), nil
}

// Delete removes the posting row. Activity entries referencing it stay in
// place as dangling but valid historical references.
func (r *Repository) Delete(ctx context.Context, ticket *types.Ticket) error {
	if ticket == nil || ticket.ID == uuid.Nil {
		return types.ErrTicketIDRequired
	}
	return r.store.Delete(ctx, fromDomain(ticket))
}

// ListOwned returns the member's postings, newest-first.
func (r *Repository) ListOwned(ctx context.Context, filter types.TicketFilter) (types.TicketPage, error) {
	if filter.MemberID == uuid.Nil {
		return types.TicketPage{}, types.ErrMemberIDRequired
	}
	return r.list(ctx, filter, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("member_id = ?", filter.MemberID)
	})
}

// ListOthers returns postings from everyone but the member, newest-first.
func (r *Repository) ListOthers(ctx context.Context, filter types.TicketFilter) (types.TicketPage, error) {
	if filter.MemberID == uuid.Nil {
		return types.TicketPage{}, types.ErrMemberIDRequired
	}
	return r.list(ctx, filter, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("member_id != ?", filter.MemberID)
	})
}

// ListRecent returns the newest postings across all members for the dashboard
// slice.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]types.Ticket, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, _, err := r.store.List(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("created_at DESC").Limit(limit)
	})
	if err != nil {
		return nil, err
	}
	return toDomainSlice(rows), nil
}

// CountByIntent aggregates the member's postings grouped by intent in a
// single query.
func (r *Repository) CountByIntent(ctx context.Context, memberID uuid.UUID) (types.MemberStats, error) {
	if memberID == uuid.Nil {
		return types.MemberStats{}, types.ErrMemberIDRequired
	}
	if r.db == nil {
		return types.MemberStats{}, errors.New("ticket: stats requires bun DB")
	}
	query := r.db.NewSelect().
		Table("tickets").
		ColumnExpr("COUNT(*) AS total").
		ColumnExpr("intent").
		Where("member_id = ?", memberID).
		Group("intent")

	type row struct {
		Intent string `bun:"intent"`
		Total  int    `bun:"total"`
	}
	var rows []row
	if err := query.Scan(ctx, &rows); err != nil {
		return types.MemberStats{}, err
	}
	stats := types.MemberStats{}
	for _, rec := range rows {
		switch types.TicketIntent(rec.Intent) {
		case types.IntentSwap:
			stats.SwapCount += rec.Total
		case types.IntentDonate:
			stats.DonationCount += rec.Total
		}
		stats.TotalTickets += rec.Total
	}
	return stats, nil
}

func (r *Repository) list(ctx context.Context, filter types.TicketFilter, ownership repository.SelectCriteria) (types.TicketPage, error) {
	pagination := normalizePagination(filter.Pagination, 50, 200)
	criteria := []repository.SelectCriteria{
		ownership,
		func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.OrderExpr("created_at DESC").
				Limit(pagination.Limit).
				Offset(pagination.Offset)
			if intent := filter.Intent.Intent(); intent != "" {
				q = q.Where("intent = ?", string(intent))
			}
			return q
		},
	}

	rows, total, err := r.store.List(ctx, criteria...)
	if err != nil {
		return types.TicketPage{}, err
	}
	return types.TicketPage{
		Tickets:    toDomainSlice(rows),
		Total:      total,
		NextOffset: pagination.Offset + pagination.Limit,
		HasMore:    pagination.Offset+pagination.Limit < total,
	}, nil
}

func fromDomain(ticket *types.Ticket) *Record {
	if ticket == nil {
		return &Record{}
	}
	return &Record{
		ID:        ticket.ID,
		MemberID:  ticket.MemberID,
		EventName: ticket.EventName,
		EventDate: ticket.EventDate,
		Quantity:  ticket.Quantity,
		Intent:    string(ticket.Intent),
		Status:    ticket.Status,
		CreatedAt: ticket.CreatedAt,
		UpdatedAt: ticket.UpdatedAt,
	}
}

func toDomain(rec *Record) *types.Ticket {
	if rec == nil {
		return nil
	}
	return &types.Ticket{
		ID:        rec.ID,
		MemberID:  rec.MemberID,
		EventName: rec.EventName,
		EventDate: rec.EventDate,
		Quantity:  rec.Quantity,
		Intent:    types.TicketIntent(rec.Intent),
		Status:    rec.Status,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func toDomainSlice(rows []*Record) []types.Ticket {
	out := make([]types.Ticket, 0, len(rows))
	for _, row := range rows {
		if ticket := toDomain(row); ticket != nil {
			out = append(out, *ticket)
		}
	}
	return out
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
