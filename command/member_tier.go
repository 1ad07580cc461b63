package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// MemberTierChangeInput captures a self-service tier change.
type MemberTierChangeInput struct {
	MemberID uuid.UUID
	Tier     types.MembershipTier
	Result   *types.Member
}

// Type implements gocommand.Message.
func (MemberTierChangeInput) Type() string {
	return "command.member.tier_change"
}

// Validate implements gocommand.Message.
func (input MemberTierChangeInput) Validate() error {
	switch {
	case input.MemberID == uuid.Nil:
		return ErrMemberIDRequired
	case !input.Tier.Valid():
		return ErrTierInvalid
	default:
		return nil
	}
}

// MemberTierChangeCommand changes a member's own tier. Members can only
// change their own tier; the id comes from principal resolution, never from
// the request payload.
type MemberTierChangeCommand struct {
	repo   types.MemberRepository
	clock  types.Clock
	sink   types.ActivitySink
	hooks  types.Hooks
	logger types.Logger
}

// MemberTierChangeCommandConfig wires dependencies for the tier command.
type MemberTierChangeCommandConfig struct {
	Repository types.MemberRepository
	Clock      types.Clock
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Logger     types.Logger
}

// NewMemberTierChangeCommand constructs the tier change handler.
func NewMemberTierChangeCommand(cfg MemberTierChangeCommandConfig) *MemberTierChangeCommand {
	return &MemberTierChangeCommand{
		repo:   cfg.Repository,
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Activity),
		hooks:  safeHooks(cfg.Hooks),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[MemberTierChangeInput] = (*MemberTierChangeCommand)(nil)

// Execute applies the tier change and appends a member-scoped audit entry.
// Setting the same tier again is a no-op write but still audited.
func (c *MemberTierChangeCommand) Execute(ctx context.Context, input MemberTierChangeInput) error {
	if c == nil || c.repo == nil {
		return types.ErrMissingMemberRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	current, err := c.repo.GetByID(ctx, input.MemberID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrMemberNotFound
	}
	fromTier := current.Tier

	updated, err := c.repo.UpdateTier(ctx, input.MemberID, input.Tier)
	if err != nil {
		return err
	}
	if updated == nil {
		return ErrMemberNotFound
	}

	entry := types.ActivityEntry{
		MemberID:   updated.ID,
		ActionType: "tier_changed",
		Timestamp:  now(c.clock),
	}
	logActivity(ctx, c.sink, c.logger, entry)
	emitActivityHook(ctx, c.hooks, entry)
	emitTierHook(ctx, c.hooks, types.TierEvent{
		MemberID:   updated.ID,
		FromTier:   fromTier,
		ToTier:     updated.Tier,
		OccurredAt: entry.Timestamp,
	})

	if input.Result != nil {
		*input.Result = *updated
	}
	return nil
}
