package crudsvc

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// mapCommandError lifts command sentinels into the rich error taxonomy so
// transports render the right status codes.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, command.ErrNotTicketOwner):
		return goerrors.Wrap(err, goerrors.CategoryAuthz, "go-tickets: ticket belongs to another member").
			WithCode(goerrors.CodeForbidden)
	case errors.Is(err, command.ErrTicketNotFound):
		return goerrors.Wrap(err, goerrors.CategoryNotFound, "go-tickets: ticket not found").
			WithCode(goerrors.CodeNotFound)
	case errors.Is(err, command.ErrPostingDisabled):
		return goerrors.Wrap(err, goerrors.CategoryAuthz, "go-tickets: ticket posting disabled").
			WithCode(goerrors.CodeForbidden)
	}
	return err
}

func queryUUID(ctx crud.Context, key string) uuid.UUID {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func queryInt(ctx crud.Context, key string, def int) int {
	if value := ctx.Query(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return def
}

func queryTime(ctx crud.Context, key string) (time.Time, bool) {
	raw := strings.TrimSpace(ctx.Query(key))
	if raw == "" {
		return time.Time{}, false
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

func parseIntentFilter(ctx crud.Context, key string) types.IntentFilter {
	raw := strings.ToLower(strings.TrimSpace(ctx.Query(key)))
	return types.IntentFilter(raw)
}

func parseOwnership(ctx crud.Context, key string) types.TicketOwnership {
	switch strings.ToLower(strings.TrimSpace(ctx.Query(key))) {
	case string(types.OwnershipOthers):
		return types.OwnershipOthers
	default:
		return types.OwnershipMine
	}
}
