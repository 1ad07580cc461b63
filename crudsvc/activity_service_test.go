package crudsvc

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-tickets/activity"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestActivityServiceCreateAttributesToActingMember(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	logCmd := &stubActivityLogCmd{}
	svc := NewActivityService(ActivityServiceConfig{
		Resolver:   &stubResolver{member: member},
		LogCommand: logCmd,
	})

	ctx := newTestCrudContext(context.Background())
	created, err := svc.Create(ctx, &activity.LogEntry{
		MemberID:   uuid.New(), // ignored, entries belong to the acting member
		TicketID:   uuid.New(),
		ActionType: "  Created  ",
	})
	require.NoError(t, err)
	require.Equal(t, member.ID, logCmd.lastInput.MemberID)
	require.Equal(t, member.ID, created.MemberID)
	require.Equal(t, "created", created.ActionType)
}

func TestActivityServiceIsAppendOnly(t *testing.T) {
	svc := NewActivityService(ActivityServiceConfig{
		Resolver: &stubResolver{member: &types.Member{ID: uuid.New()}},
	})
	ctx := newTestCrudContext(context.Background())

	_, err := svc.Update(ctx, &activity.LogEntry{})
	require.Error(t, err)

	require.Error(t, svc.Delete(ctx, &activity.LogEntry{}))
	require.Error(t, svc.DeleteBatch(ctx, nil))
}

func TestActivityServiceIndexScopedToMember(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	feed := &stubFeedQuery{
		result: types.ActivityFeed{
			Items: []types.ActivityFeedItem{{
				Entry: types.ActivityEntry{
					ID:         uuid.New(),
					MemberID:   member.ID,
					ActionType: "created",
					Timestamp:  time.Now().UTC(),
				},
			}},
			Total: 1,
		},
	}
	svc := NewActivityService(ActivityServiceConfig{
		Resolver:  &stubResolver{member: member},
		FeedQuery: feed,
	})

	ctx := newTestCrudContext(context.Background())
	ctx.queries["limit"] = "25"

	entries, total, err := svc.Index(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, entries, 1)
	require.Equal(t, member.ID, feed.lastFilter.MemberID)
	require.Equal(t, 25, feed.lastFilter.Pagination.Limit)
}

func TestActivityServiceShowDeniesForeignEntries(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	mine := &types.ActivityEntry{ID: uuid.New(), MemberID: member.ID, ActionType: "created"}
	foreign := &types.ActivityEntry{ID: uuid.New(), MemberID: uuid.New(), ActionType: "created"}
	svc := NewActivityService(ActivityServiceConfig{
		Resolver: &stubResolver{member: member},
		Repository: &stubActivityLookup{entries: map[uuid.UUID]*types.ActivityEntry{
			mine.ID:    mine,
			foreign.ID: foreign,
		}},
	})
	ctx := newTestCrudContext(context.Background())

	found, err := svc.Show(ctx, mine.ID.String(), nil)
	require.NoError(t, err)
	require.Equal(t, member.ID, found.MemberID)

	_, err = svc.Show(ctx, foreign.ID.String(), nil)
	require.Error(t, err)
}

type stubActivityLogCmd struct {
	lastInput command.ActivityLogInput
	err       error
}

func (s *stubActivityLogCmd) Execute(_ context.Context, input command.ActivityLogInput) error {
	s.lastInput = input
	return s.err
}

type stubFeedQuery struct {
	lastFilter types.ActivityFeedFilter
	result     types.ActivityFeed
}

func (s *stubFeedQuery) Query(_ context.Context, filter types.ActivityFeedFilter) (types.ActivityFeed, error) {
	s.lastFilter = filter
	return s.result, nil
}

type stubActivityLookup struct {
	entries map[uuid.UUID]*types.ActivityEntry
}

func (s *stubActivityLookup) ListRecent(context.Context, types.ActivityFeedFilter) (types.ActivityFeed, error) {
	return types.ActivityFeed{}, nil
}

func (s *stubActivityLookup) GetEntry(_ context.Context, id uuid.UUID) (*types.ActivityEntry, error) {
	return s.entries[id], nil
}
