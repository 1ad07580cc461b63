package query

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
)

// ActivityFeedQuery renders the member's recent activity, enriched with
// ticket snapshots resolved in a single batched lookup.
type ActivityFeedQuery struct {
	repo types.ActivityRepository
}

// NewActivityFeedQuery constructs the feed query helper.
func NewActivityFeedQuery(repo types.ActivityRepository) *ActivityFeedQuery {
	return &ActivityFeedQuery{repo: repo}
}

var _ gocommand.Querier[types.ActivityFeedFilter, types.ActivityFeed] = (*ActivityFeedQuery)(nil)

// Query fetches a page of the member's audit trail, newest first.
func (q *ActivityFeedQuery) Query(ctx context.Context, filter types.ActivityFeedFilter) (types.ActivityFeed, error) {
	if q == nil || q.repo == nil {
		return types.ActivityFeed{}, types.ErrMissingActivityRepository
	}
	if err := filter.Validate(); err != nil {
		return types.ActivityFeed{}, err
	}
	return q.repo.ListRecent(ctx, filter)
}
