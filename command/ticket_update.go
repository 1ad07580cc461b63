package command

import (
	"context"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// TicketUpdateInput captures an edit of an existing posting. The edit form
// always submits the full field set, so every field is required.
type TicketUpdateInput struct {
	TicketID  uuid.UUID
	MemberID  uuid.UUID
	EventName string
	EventDate time.Time
	Quantity  int
	Intent    types.TicketIntent
	Result    *types.Ticket
}

// Type implements gocommand.Message.
func (TicketUpdateInput) Type() string {
	return "command.ticket.update"
}

// Validate implements gocommand.Message.
func (input TicketUpdateInput) Validate() error {
	switch {
	case input.TicketID == uuid.Nil:
		return ErrTicketIDRequired
	case input.MemberID == uuid.Nil:
		return ErrMemberIDRequired
	case strings.TrimSpace(input.EventName) == "":
		return ErrEventNameRequired
	case input.EventDate.IsZero():
		return ErrEventDateRequired
	case input.Quantity < 1:
		return ErrQuantityInvalid
	case !input.Intent.Valid():
		return ErrIntentInvalid
	default:
		return nil
	}
}

// TicketUpdateCommand edits a posting after verifying ownership.
type TicketUpdateCommand struct {
	repo   types.TicketRepository
	clock  types.Clock
	sink   types.ActivitySink
	hooks  types.Hooks
	logger types.Logger
}

// TicketUpdateCommandConfig wires dependencies for the update command.
type TicketUpdateCommandConfig struct {
	Repository types.TicketRepository
	Clock      types.Clock
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Logger     types.Logger
}

// NewTicketUpdateCommand constructs the update handler.
func NewTicketUpdateCommand(cfg TicketUpdateCommandConfig) *TicketUpdateCommand {
	return &TicketUpdateCommand{
		repo:   cfg.Repository,
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Activity),
		hooks:  safeHooks(cfg.Hooks),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[TicketUpdateInput] = (*TicketUpdateCommand)(nil)

// Execute applies the edit. Ownership is checked before any write; a ticket
// owned by another member fails with ErrNotTicketOwner regardless of how
// valid the payload is.
func (c *TicketUpdateCommand) Execute(ctx context.Context, input TicketUpdateInput) error {
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

	current.EventName = strings.TrimSpace(input.EventName)
	current.EventDate = input.EventDate
	current.Quantity = input.Quantity
	current.Intent = input.Intent

	updated, err := c.repo.Update(ctx, current)
	if err != nil {
		return err
	}

	entry := types.ActivityEntry{
		MemberID:   updated.MemberID,
		TicketID:   updated.ID,
		ActionType: "updated",
		Timestamp:  now(c.clock),
	}
	logActivity(ctx, c.sink, c.logger, entry)
	emitActivityHook(ctx, c.hooks, entry)
	emitTicketHook(ctx, c.hooks, types.TicketEvent{
		Ticket:     *updated,
		Action:     "updated",
		MemberID:   updated.MemberID,
		OccurredAt: entry.Timestamp,
	})

	if input.Result != nil {
		*input.Result = *updated
	}
	return nil
}
