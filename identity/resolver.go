package identity

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// ResolverConfig wires the member lookup used for principal resolution.
type ResolverConfig struct {
	Members types.MemberRepository
}

// Resolver maps an authenticated principal to exactly one member record. It
// has no side effects: members are provisioned at registration time by an
// external collaborator, never here.
type Resolver struct {
	members types.MemberRepository
}

// NewResolver constructs the resolver.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.Members == nil {
		return nil, types.ErrMissingMemberRepository
	}
	return &Resolver{members: cfg.Members}, nil
}

// Resolve returns the member linked to the principal on the context. It
// fails closed and keeps the two failure modes distinct: a missing principal
// is an authentication failure (redirect to sign-in), a missing member row
// means provisioning has not completed (not found).
func (r *Resolver) Resolve(ctx context.Context) (*types.Member, error) {
	userID, err := ResolvePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return r.ResolveUser(ctx, userID)
}

// ResolveUser returns the member linked to the supplied external identity.
func (r *Resolver) ResolveUser(ctx context.Context, userID uuid.UUID) (*types.Member, error) {
	if userID == uuid.Nil {
		return nil, errNoPrincipal()
	}
	member, err := r.members.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, errors.New("go-tickets: no member provisioned for principal", errors.CategoryNotFound).
			WithCode(errors.CodeNotFound).
			WithTextCode(textCodeMemberMissing)
	}
	return member, nil
}

// IsNoPrincipal reports whether the error represents a missing or invalid
// authenticated principal, the condition that triggers a sign-in redirect.
func IsNoPrincipal(err error) bool {
	if err == nil {
		return false
	}
	var rich *errors.Error
	if errors.As(err, &rich) {
		return rich.Category == errors.CategoryAuth
	}
	return false
}
