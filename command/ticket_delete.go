package command

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// TicketDeleteInput identifies the posting to remove.
type TicketDeleteInput struct {
	TicketID uuid.UUID
	MemberID uuid.UUID
}

// Type implements gocommand.Message.
func (TicketDeleteInput) Type() string {
	return "command.ticket.delete"
}

// Validate implements gocommand.Message.
func (input TicketDeleteInput) Validate() error {
	switch {
	case input.TicketID == uuid.Nil:
		return ErrTicketIDRequired
	case input.MemberID == uuid.Nil:
		return ErrMemberIDRequired
	default:
		return nil
	}
}

// TicketDeleteCommand removes a posting after verifying ownership. The
// audit entry survives the delete; its ticket reference simply stops
// resolving in enriched feeds.
type TicketDeleteCommand struct {
	repo   types.TicketRepository
	clock  types.Clock
	sink   types.ActivitySink
	hooks  types.Hooks
	logger types.Logger
}

// TicketDeleteCommandConfig wires dependencies for the delete command.
type TicketDeleteCommandConfig struct {
	Repository types.TicketRepository
	Clock      types.Clock
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Logger     types.Logger
}

// NewTicketDeleteCommand constructs the delete handler.
func NewTicketDeleteCommand(cfg TicketDeleteCommandConfig) *TicketDeleteCommand {
	return &TicketDeleteCommand{
		repo:   cfg.Repository,
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Activity),
		hooks:  safeHooks(cfg.Hooks),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[TicketDeleteInput] = (*TicketDeleteCommand)(nil)

// Execute deletes the posting. The activity entry is appended after the
// delete commits, still carrying the ticket id for later grouping.
func (c *TicketDeleteCommand) Execute(ctx context.Context, input TicketDeleteInput) error {
	if c == nil || c.repo == nil {
		return types.ErrMissingTicketRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	current, err := c.repo.GetByID(ctx, input.TicketID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrTicketNotFound
	}
	if current.MemberID != input.MemberID {
		return ErrNotTicketOwner
	}

	if err := c.repo.Delete(ctx, current); err != nil {
		return err
	}

	entry := types.ActivityEntry{
		MemberID:   current.MemberID,
		TicketID:   current.ID,
		ActionType: "deleted",
		Timestamp:  now(c.clock),
	}
	logActivity(ctx, c.sink, c.logger, entry)
	emitActivityHook(ctx, c.hooks, entry)
	emitTicketHook(ctx, c.hooks, types.TicketEvent{
		Ticket:     *current,
		Action:     "deleted",
		MemberID:   current.MemberID,
		OccurredAt: entry.Timestamp,
	})

	return nil
}
