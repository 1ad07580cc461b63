package identity

import (
	"context"

	auth "github.com/goliatone/go-auth"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

const (
	textCodePrincipalMissing = "PRINCIPAL_MISSING"
	textCodePrincipalInvalid = "PRINCIPAL_INVALID"
	textCodeMemberMissing    = "MEMBER_NOT_PROVISIONED"
)

// ActorFromContext is a thin wrapper around go-auth helpers so callers do not
// need to import auth directly when they only need the actor payload.
func ActorFromContext(ctx context.Context) (*auth.ActorContext, bool) {
	return auth.ActorFromContext(ctx)
}

// ResolvePrincipal extracts the external identity from the request context.
// It reads the actor stored by go-auth middleware, falling back to JWT claims
// when the ContextEnricher hook was not configured. The absence of a
// principal is an authentication failure, never a silent default.
func ResolvePrincipal(ctx context.Context) (uuid.UUID, error) {
	if ctx == nil {
		return uuid.Nil, errNoPrincipal()
	}

	if actor, ok := auth.ActorFromContext(ctx); ok && actor != nil {
		return parsePrincipal(actor.ActorID)
	}

	if claims, ok := auth.GetClaims(ctx); ok && claims != nil {
		if actor := auth.ActorContextFromClaims(claims); actor != nil {
			return parsePrincipal(actor.ActorID)
		}
	}

	return uuid.Nil, errNoPrincipal()
}

// ResolvePrincipalFromRouter extracts the external identity from router
// contexts using go-auth helpers.
func ResolvePrincipalFromRouter(ctx router.Context) (uuid.UUID, error) {
	if ctx == nil {
		return uuid.Nil, errNoPrincipal()
	}
	if actor, ok := auth.ActorFromRouterContext(ctx); ok && actor != nil {
		return parsePrincipal(actor.ActorID)
	}
	return ResolvePrincipal(ctx.Context())
}

func parsePrincipal(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("go-tickets: principal id is not a valid identifier", errors.CategoryAuth).
			WithCode(errors.CodeUnauthorized).
			WithTextCode(textCodePrincipalInvalid)
	}
	return id, nil
}

func errNoPrincipal() error {
	return errors.New("go-tickets: no authenticated principal on request", errors.CategoryAuth).
		WithCode(errors.CodeUnauthorized).
		WithTextCode(textCodePrincipalMissing)
}
