package benefits

import (
	"context"
	"testing"

	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolverMemberOverridesTierDefaults(t *testing.T) {
	members := &stubMembers{}
	resolver, err := NewResolver(ResolverConfig{Members: members})
	require.NoError(t, err)

	member := &types.Member{
		ID:   uuid.New(),
		Tier: types.TierBasic,
		Benefits: map[string]any{
			"monthly_posts": 10,
		},
	}

	resolved, err := resolver.ResolveFor(member)
	require.NoError(t, err)
	require.Equal(t, 10, resolved["monthly_posts"])
	require.Equal(t, false, resolved["priority_swap"])
}

func TestResolverTierDefaultsFillGaps(t *testing.T) {
	members := &stubMembers{}
	resolver, err := NewResolver(ResolverConfig{Members: members})
	require.NoError(t, err)

	resolved, err := resolver.ResolveFor(&types.Member{
		ID:   uuid.New(),
		Tier: types.TierVIP,
	})
	require.NoError(t, err)
	require.Equal(t, -1, resolved["monthly_posts"])
	require.Equal(t, true, resolved["priority_swap"])
	require.Equal(t, true, resolved["concierge"])
}

func TestResolverUnknownTierYieldsMemberMapOnly(t *testing.T) {
	members := &stubMembers{}
	resolver, err := NewResolver(ResolverConfig{Members: members})
	require.NoError(t, err)

	resolved, err := resolver.ResolveFor(&types.Member{
		ID:   uuid.New(),
		Tier: "legacy",
		Benefits: map[string]any{
			"grandfathered": true,
		},
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"grandfathered": true}, resolved)
}

func TestResolverResolveLoadsMember(t *testing.T) {
	member := &types.Member{
		ID:   uuid.New(),
		Tier: types.TierPremium,
	}
	members := &stubMembers{byID: map[uuid.UUID]*types.Member{member.ID: member}}
	resolver, err := NewResolver(ResolverConfig{Members: members})
	require.NoError(t, err)

	resolved, err := resolver.Resolve(context.Background(), member.ID)
	require.NoError(t, err)
	require.Equal(t, 20, resolved["monthly_posts"])

	_, err = resolver.Resolve(context.Background(), uuid.New())
	require.Error(t, err)

	_, err = resolver.Resolve(context.Background(), uuid.Nil)
	require.ErrorIs(t, err, types.ErrMemberIDRequired)
}

type stubMembers struct {
	byID map[uuid.UUID]*types.Member
}

func (s *stubMembers) GetByID(_ context.Context, id uuid.UUID) (*types.Member, error) {
	return s.byID[id], nil
}

func (s *stubMembers) GetByUserID(context.Context, uuid.UUID) (*types.Member, error) {
	return nil, nil
}

func (s *stubMembers) UpdateTier(context.Context, uuid.UUID, types.MembershipTier) (*types.Member, error) {
	return nil, nil
}
