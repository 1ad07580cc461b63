package benefits

import (
	"context"
	"fmt"

	opts "github.com/goliatone/go-options"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// ResolverConfig wires dependencies for the benefits resolver.
type ResolverConfig struct {
	Members  types.MemberRepository
	Defaults map[types.MembershipTier]map[string]any
}

// Resolver merges tier defaults with the member's stored benefits map via
// go-options. The stored map wins on conflicts; tier defaults fill in the
// entitlements a membership level always carries.
type Resolver struct {
	members  types.MemberRepository
	defaults map[types.MembershipTier]map[string]any
}

// NewResolver constructs a benefits resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Members == nil {
		return nil, types.ErrMissingMemberRepository
	}
	defaults := cfg.Defaults
	if defaults == nil {
		defaults = DefaultTierBenefits()
	}
	return &Resolver{
		members:  cfg.Members,
		defaults: defaults,
	}, nil
}

// DefaultTierBenefits returns the baseline entitlements per tier.
func DefaultTierBenefits() map[types.MembershipTier]map[string]any {
	return map[types.MembershipTier]map[string]any{
		types.TierBasic: {
			"monthly_posts": 5,
			"priority_swap": false,
		},
		types.TierPremium: {
			"monthly_posts": 20,
			"priority_swap": true,
		},
		types.TierVIP: {
			"monthly_posts": -1,
			"priority_swap": true,
			"concierge":     true,
		},
	}
}

// Resolve returns the effective benefits map for the member.
func (r *Resolver) Resolve(ctx context.Context, memberID uuid.UUID) (map[string]any, error) {
	if memberID == uuid.Nil {
		return nil, types.ErrMemberIDRequired
	}
	member, err := r.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, fmt.Errorf("go-tickets: member %s not found", memberID)
	}
	return r.ResolveFor(member)
}

// ResolveFor merges the tier defaults under the member's stored benefits.
func (r *Resolver) ResolveFor(member *types.Member) (map[string]any, error) {
	if member == nil {
		return nil, types.ErrMemberIDRequired
	}

	tierScope := opts.NewScope("tier", opts.ScopePrioritySystem,
		opts.WithScopeLabel("Tier Defaults"))
	memberScope := opts.NewScope("member", opts.ScopePriorityUser,
		opts.WithScopeLabel("Member Benefits"))

	tierLayer := opts.NewLayer(tierScope, cloneMap(r.defaults[member.Tier]),
		opts.WithSnapshotID[map[string]any](tierScope.Name))
	memberLayer := opts.NewLayer(memberScope, cloneMap(member.Benefits),
		opts.WithSnapshotID[map[string]any](memberScope.Name))

	stack, err := opts.NewStack(tierLayer, memberLayer)
	if err != nil {
		return nil, err
	}
	merged, err := stack.Merge()
	if err != nil {
		return nil, err
	}
	return cloneMap(merged.Value), nil
}

func cloneMap(src map[string]any) map[string]any {
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
