package command

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/google/uuid"
)

const featureTicketPost = "tickets.post"

func featureEnabled(ctx context.Context, gate featuregate.FeatureGate, key string, memberID uuid.UUID) (bool, error) {
	if gate == nil {
		return true, nil
	}
	if memberID == uuid.Nil {
		return gate.Enabled(ctx, key)
	}
	chain := featuregate.ScopeChain{
		{Kind: featuregate.ScopeUser, ID: memberID.String()},
		{Kind: featuregate.ScopeSystem},
	}
	return gate.Enabled(ctx, key, featuregate.WithScopeChain(chain))
}
