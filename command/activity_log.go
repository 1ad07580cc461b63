package command

import (
	"context"
	"strings"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// ActivityLogInput captures a direct audit append for callers that perform
// side effects outside the ticket commands.
type ActivityLogInput struct {
	MemberID   uuid.UUID
	TicketID   uuid.UUID
	ActionType string
}

// Type implements gocommand.Message.
func (ActivityLogInput) Type() string {
	return "command.activity.log"
}

// Validate implements gocommand.Message.
func (input ActivityLogInput) Validate() error {
	switch {
	case input.MemberID == uuid.Nil:
		return ErrMemberIDRequired
	case strings.TrimSpace(input.ActionType) == "":
		return ErrActionTypeRequired
	default:
		return nil
	}
}

// ActivityLogCommand appends an audit entry. Unlike the implicit appends on
// ticket mutations, a failed append here is returned to the caller.
type ActivityLogCommand struct {
	sink  types.ActivitySink
	clock types.Clock
	hooks types.Hooks
}

// ActivityLogCommandConfig wires dependencies for the log command.
type ActivityLogCommandConfig struct {
	Activity types.ActivitySink
	Clock    types.Clock
	Hooks    types.Hooks
}

// NewActivityLogCommand constructs the log handler.
func NewActivityLogCommand(cfg ActivityLogCommandConfig) *ActivityLogCommand {
	return &ActivityLogCommand{
		sink:  safeActivitySink(cfg.Activity),
		clock: safeClock(cfg.Clock),
		hooks: safeHooks(cfg.Hooks),
	}
}

var _ gocommand.Commander[ActivityLogInput] = (*ActivityLogCommand)(nil)

// Execute appends the entry with a normalized action type.
func (c *ActivityLogCommand) Execute(ctx context.Context, input ActivityLogInput) error {
	if c == nil || c.sink == nil {
		return types.ErrMissingActivitySink
	}
	if err := input.Validate(); err != nil {
		return err
	}

	entry := types.ActivityEntry{
		MemberID:   input.MemberID,
		TicketID:   input.TicketID,
		ActionType: types.NormalizeActionType(input.ActionType),
		Timestamp:  now(c.clock),
	}
	if err := c.sink.Log(ctx, entry); err != nil {
		return err
	}
	emitActivityHook(ctx, c.hooks, entry)
	return nil
}
