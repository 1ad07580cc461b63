package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
)

// TicketListQuery serves both sides of the tickets page: the member's own
// postings and everyone else's. Ownership and intent narrowing happen in the
// storage query, never over an in-memory scan.
type TicketListQuery struct {
	repo types.TicketRepository
}

// NewTicketListQuery constructs the listing query helper.
func NewTicketListQuery(repo types.TicketRepository) *TicketListQuery {
	return &TicketListQuery{repo: repo}
}

var _ gocommand.Querier[types.TicketListFilter, types.TicketPage] = (*TicketListQuery)(nil)

// Query fetches a page of tickets for the requested ownership side.
func (q *TicketListQuery) Query(ctx context.Context, filter types.TicketListFilter) (types.TicketPage, error) {
	if q == nil || q.repo == nil {
		return types.TicketPage{}, types.ErrMissingTicketRepository
	}
	if err := filter.Validate(); err != nil {
		return types.TicketPage{}, err
	}

	scoped := types.TicketFilter{
		MemberID:   filter.MemberID,
		Intent:     filter.Intent,
		Pagination: filter.Pagination,
	}
	if filter.Ownership == types.OwnershipOthers {
		return q.repo.ListOthers(ctx, scoped)
	}
	return q.repo.ListOwned(ctx, scoped)
}
