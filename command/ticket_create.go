package command

import (
	"context"
	"strings"
	"time"

	gocommand "github.com/goliatone/go-command"
	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// TicketCreateInput captures a new ticket posting. MemberID is the resolved
// acting member, never a caller-supplied value.
type TicketCreateInput struct {
	MemberID  uuid.UUID
	EventName string
	EventDate time.Time
	Quantity  int
	Intent    types.TicketIntent
	Result    *types.Ticket
}

// Type implements gocommand.Message.
func (TicketCreateInput) Type() string {
	return "command.ticket.create"
}

// Validate implements gocommand.Message.
func (input TicketCreateInput) Validate() error {
	switch {
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

// TicketCreateCommand posts a ticket on behalf of the acting member.
type TicketCreateCommand struct {
	repo   types.TicketRepository
	gate   featuregate.FeatureGate
	clock  types.Clock
	sink   types.ActivitySink
	hooks  types.Hooks
	logger types.Logger
}

// TicketCreateCommandConfig wires dependencies for the create command.
type TicketCreateCommandConfig struct {
	Repository types.TicketRepository
	Gate       featuregate.FeatureGate
	Clock      types.Clock
	Activity   types.ActivitySink
	Hooks      types.Hooks
	Logger     types.Logger
}

// NewTicketCreateCommand constructs the create handler.
func NewTicketCreateCommand(cfg TicketCreateCommandConfig) *TicketCreateCommand {
	return &TicketCreateCommand{
		repo:   cfg.Repository,
		gate:   cfg.Gate,
		clock:  safeClock(cfg.Clock),
		sink:   safeActivitySink(cfg.Activity),
		hooks:  safeHooks(cfg.Hooks),
		logger: safeLogger(cfg.Logger),
	}
}

var _ gocommand.Commander[TicketCreateInput] = (*TicketCreateCommand)(nil)

// Execute validates the posting, stores it with status "available", and
// appends the paired audit entry.
func (c *TicketCreateCommand) Execute(ctx context.Context, input TicketCreateInput) error {
	if c == nil || c.repo == nil {
		return types.ErrMissingTicketRepository
	}
	if err := input.Validate(); err != nil {
		return err
	}

	enabled, err := featureEnabled(ctx, c.gate, featureTicketPost, input.MemberID)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrPostingDisabled
	}

	ticket := &types.Ticket{
		MemberID:  input.MemberID,
		EventName: strings.TrimSpace(input.EventName),
		EventDate: input.EventDate,
		Quantity:  input.Quantity,
		Intent:    input.Intent,
		Status:    types.TicketStatusAvailable,
	}
	created, err := c.repo.Create(ctx, ticket)
	if err != nil {
		return err
	}

	entry := types.ActivityEntry{
		MemberID:   created.MemberID,
		TicketID:   created.ID,
		ActionType: "created",
		Timestamp:  now(c.clock),
	}
	logActivity(ctx, c.sink, c.logger, entry)
	emitActivityHook(ctx, c.hooks, entry)
	emitTicketHook(ctx, c.hooks, types.TicketEvent{
		Ticket:     *created,
		Action:     "created",
		MemberID:   created.MemberID,
		OccurredAt: entry.Timestamp,
	})

	if input.Result != nil {
		*input.Result = *created
	}
	return nil
}
