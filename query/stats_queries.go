package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
)

// MemberStatsQuery aggregates a member's posting counts for the profile
// widgets. Counts come straight from a grouped storage query on every call.
type MemberStatsQuery struct {
	repo types.TicketRepository
}

// NewMemberStatsQuery constructs the stats helper.
func NewMemberStatsQuery(repo types.TicketRepository) *MemberStatsQuery {
	return &MemberStatsQuery{repo: repo}
}

var _ gocommand.Querier[types.MemberStatsFilter, types.MemberStats] = (*MemberStatsQuery)(nil)

// Query returns total, swap, and donation counts for the member. The total
// always equals the sum of the two intent counts.
func (q *MemberStatsQuery) Query(ctx context.Context, filter types.MemberStatsFilter) (types.MemberStats, error) {
	if q == nil || q.repo == nil {
		return types.MemberStats{}, types.ErrMissingTicketRepository
	}
	if err := filter.Validate(); err != nil {
		return types.MemberStats{}, err
	}
	return q.repo.CountByIntent(ctx, filter.MemberID)
}

// DashboardQuery assembles the dashboard view: the member card, their total
// posting count, and the newest postings across all members.
type DashboardQuery struct {
	members  types.MemberRepository
	tickets  types.TicketRepository
	sanitize func(types.Member) types.Member
}

// DashboardOption customizes the dashboard query.
type DashboardOption func(*DashboardQuery)

// WithMemberSanitizer masks the member card before it leaves the query. The
// benefits map can carry voucher codes that must not reach rendered views.
func WithMemberSanitizer(fn func(types.Member) types.Member) DashboardOption {
	return func(q *DashboardQuery) {
		if fn != nil {
			q.sanitize = fn
		}
	}
}

// NewDashboardQuery constructs the dashboard helper.
func NewDashboardQuery(members types.MemberRepository, tickets types.TicketRepository, opts ...DashboardOption) *DashboardQuery {
	q := &DashboardQuery{members: members, tickets: tickets}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

var _ gocommand.Querier[types.DashboardFilter, types.DashboardSummary] = (*DashboardQuery)(nil)

// Query returns the dashboard summary. A member row is required; the recent
// list may be empty when no postings exist yet.
func (q *DashboardQuery) Query(ctx context.Context, filter types.DashboardFilter) (types.DashboardSummary, error) {
	if q == nil || q.members == nil {
		return types.DashboardSummary{}, types.ErrMissingMemberRepository
	}
	if q.tickets == nil {
		return types.DashboardSummary{}, types.ErrMissingTicketRepository
	}
	if err := filter.Validate(); err != nil {
		return types.DashboardSummary{}, err
	}

	member, err := q.members.GetByID(ctx, filter.MemberID)
	if err != nil {
		return types.DashboardSummary{}, err
	}
	if member == nil {
		return types.DashboardSummary{}, ErrMemberNotFound
	}

	stats, err := q.tickets.CountByIntent(ctx, filter.MemberID)
	if err != nil {
		return types.DashboardSummary{}, err
	}

	recent, err := q.tickets.ListRecent(ctx, filter.RecentLimit)
	if err != nil {
		return types.DashboardSummary{}, err
	}

	card := *member
	if q.sanitize != nil {
		card = q.sanitize(card)
	}
	return types.DashboardSummary{
		Member:        card,
		TicketCount:   stats.TotalTickets,
		RecentTickets: recent,
	}, nil
}
