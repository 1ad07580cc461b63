package command

import (
	"context"
	"time"

	"github.com/goliatone/go-tickets/pkg/types"
)

func safeClock(clock types.Clock) types.Clock {
	if clock != nil {
		return clock
	}
	return types.SystemClock{}
}

func safeLogger(logger types.Logger) types.Logger {
	if logger != nil {
		return logger
	}
	return types.NopLogger{}
}

func safeHooks(hooks types.Hooks) types.Hooks {
	return hooks
}

func safeActivitySink(sink types.ActivitySink) types.ActivitySink {
	return sink
}

func now(clock types.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now()
}

// logActivity appends the audit entry for a completed mutation. Appends are
// not transactional with the mutation; a failed append leaves the mutation in
// place and is surfaced through the logger.
func logActivity(ctx context.Context, sink types.ActivitySink, logger types.Logger, entry types.ActivityEntry) {
	if sink == nil {
		return
	}
	if err := sink.Log(ctx, entry); err != nil && logger != nil {
		logger.Error("activity append failed", err,
			"member_id", entry.MemberID.String(),
			"action_type", entry.ActionType,
		)
	}
}

func emitTicketHook(ctx context.Context, hooks types.Hooks, event types.TicketEvent) {
	if hooks.AfterTicketChange == nil {
		return
	}
	hooks.AfterTicketChange(ctx, event)
}

func emitTierHook(ctx context.Context, hooks types.Hooks, event types.TierEvent) {
	if hooks.AfterTierChange == nil {
		return
	}
	hooks.AfterTierChange(ctx, event)
}

func emitActivityHook(ctx context.Context, hooks types.Hooks, entry types.ActivityEntry) {
	if hooks.AfterActivity == nil {
		return
	}
	hooks.AfterActivity(ctx, entry)
}
