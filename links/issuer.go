package links

import (
	"context"
	"errors"
	"strings"

	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

const (
	// RouteTicketShare names the securelink route used for share URLs.
	RouteTicketShare = "ticket.share"
	// RouteTicketDelete names the securelink route used for delete
	// confirmations.
	RouteTicketDelete = "ticket.delete"
)

// IssuerConfig wires dependencies for the link issuer.
type IssuerConfig struct {
	Manager types.SecureLinkManager
	Links   types.ShareLinkRepository
	Clock   types.Clock
	IDGen   types.IDGenerator
}

// Issuer mints signed portal links and records each issuance so single-use
// links can be consumed exactly once.
type Issuer struct {
	manager types.SecureLinkManager
	links   types.ShareLinkRepository
	clock   types.Clock
	idGen   types.IDGenerator
}

// NewIssuer constructs the link issuer.
func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	if cfg.Manager == nil {
		return nil, errors.New("links: securelink manager required")
	}
	if cfg.Links == nil {
		return nil, errors.New("links: repository required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = types.SystemClock{}
	}
	idGen := cfg.IDGen
	if idGen == nil {
		idGen = types.UUIDGenerator{}
	}
	return &Issuer{
		manager: cfg.Manager,
		links:   cfg.Links,
		clock:   clock,
		idGen:   idGen,
	}, nil
}

// IssueShare mints a signed share URL for a posting.
func (i *Issuer) IssueShare(ctx context.Context, memberID, ticketID uuid.UUID) (string, error) {
	return i.issue(ctx, RouteTicketShare, types.ShareLinkKindShare, memberID, ticketID)
}

// IssueDeleteConfirm mints a single-use delete confirmation link.
func (i *Issuer) IssueDeleteConfirm(ctx context.Context, memberID, ticketID uuid.UUID) (string, error) {
	return i.issue(ctx, RouteTicketDelete, types.ShareLinkKindDeleteConfirm, memberID, ticketID)
}

func (i *Issuer) issue(ctx context.Context, route string, kind types.ShareLinkKind, memberID, ticketID uuid.UUID) (string, error) {
	if memberID == uuid.Nil {
		return "", types.ErrMemberIDRequired
	}
	if ticketID == uuid.Nil {
		return "", types.ErrTicketIDRequired
	}

	jti := i.idGen.UUID().String()
	now := i.clock.Now()
	url, err := i.manager.Generate(route, types.SecureLinkPayload{
		"jti":       jti,
		"kind":      string(kind),
		"member_id": memberID.String(),
		"ticket_id": ticketID.String(),
	})
	if err != nil {
		return "", err
	}

	_, err = i.links.CreateLink(ctx, types.ShareLink{
		MemberID:  memberID,
		TicketID:  ticketID,
		Kind:      kind,
		JTI:       jti,
		Status:    types.ShareLinkStatusIssued,
		IssuedAt:  now,
		ExpiresAt: now.Add(i.manager.GetExpiration()),
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// Redeem validates a token and consumes its registry record. Share links are
// reusable until expiry; delete confirmations are single-use.
func (i *Issuer) Redeem(ctx context.Context, token string) (*types.ShareLink, error) {
	payload, err := i.manager.Validate(token)
	if err != nil {
		return nil, err
	}
	jti, _ := payload["jti"].(string)
	if strings.TrimSpace(jti) == "" {
		return nil, types.ErrLinkJTIRequired
	}
	kind := types.ShareLinkKind("")
	if raw, ok := payload["kind"].(string); ok {
		kind = types.ShareLinkKind(raw)
	}

	link, err := i.links.GetLinkByJTI(ctx, kind, jti)
	if err != nil {
		return nil, err
	}
	if link == nil {
		return nil, types.ErrLinkNotFound
	}
	if link.Status == types.ShareLinkStatusUsed {
		return nil, types.ErrLinkConsumed
	}

	if kind == types.ShareLinkKindDeleteConfirm {
		if err := i.links.ConsumeLink(ctx, kind, jti); err != nil {
			return nil, err
		}
		link.Status = types.ShareLinkStatusUsed
	}
	return link, nil
}
