package links

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestIssuerIssueShareRecordsLink(t *testing.T) {
	manager := &stubSecureLinkManager{url: "https://portal.test/share?token=abc"}
	store := newMemoryLinkRepo()
	issuer, err := NewIssuer(IssuerConfig{Manager: manager, Links: store})
	require.NoError(t, err)

	memberID := uuid.New()
	ticketID := uuid.New()
	url, err := issuer.IssueShare(context.Background(), memberID, ticketID)
	require.NoError(t, err)
	require.Equal(t, manager.url, url)
	require.Equal(t, RouteTicketShare, manager.lastRoute)

	require.Len(t, store.links, 1)
	for _, link := range store.links {
		require.Equal(t, types.ShareLinkKindShare, link.Kind)
		require.Equal(t, memberID, link.MemberID)
		require.Equal(t, ticketID, link.TicketID)
		require.Equal(t, types.ShareLinkStatusIssued, link.Status)
		require.False(t, link.ExpiresAt.IsZero())
	}
}

func TestIssuerIssueValidation(t *testing.T) {
	issuer, err := NewIssuer(IssuerConfig{
		Manager: &stubSecureLinkManager{},
		Links:   newMemoryLinkRepo(),
	})
	require.NoError(t, err)

	_, err = issuer.IssueShare(context.Background(), uuid.Nil, uuid.New())
	require.ErrorIs(t, err, types.ErrMemberIDRequired)

	_, err = issuer.IssueDeleteConfirm(context.Background(), uuid.New(), uuid.Nil)
	require.ErrorIs(t, err, types.ErrTicketIDRequired)
}

func TestIssuerRedeemShareIsReusable(t *testing.T) {
	manager := &stubSecureLinkManager{}
	store := newMemoryLinkRepo()
	issuer, err := NewIssuer(IssuerConfig{Manager: manager, Links: store})
	require.NoError(t, err)

	_, err = issuer.IssueShare(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	manager.validatePayload = map[string]any{
		"jti":  store.lastJTI,
		"kind": string(types.ShareLinkKindShare),
	}

	for i := 0; i < 2; i++ {
		link, err := issuer.Redeem(context.Background(), "token")
		require.NoError(t, err)
		require.Equal(t, types.ShareLinkStatusIssued, link.Status)
	}
}

func TestIssuerRedeemDeleteConfirmIsSingleUse(t *testing.T) {
	manager := &stubSecureLinkManager{}
	store := newMemoryLinkRepo()
	issuer, err := NewIssuer(IssuerConfig{Manager: manager, Links: store})
	require.NoError(t, err)

	_, err = issuer.IssueDeleteConfirm(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	manager.validatePayload = map[string]any{
		"jti":  store.lastJTI,
		"kind": string(types.ShareLinkKindDeleteConfirm),
	}

	link, err := issuer.Redeem(context.Background(), "token")
	require.NoError(t, err)
	require.Equal(t, types.ShareLinkStatusUsed, link.Status)

	_, err = issuer.Redeem(context.Background(), "token")
	require.ErrorIs(t, err, types.ErrLinkConsumed)
}

func TestIssuerRedeemUnknownJTI(t *testing.T) {
	manager := &stubSecureLinkManager{
		validatePayload: map[string]any{
			"jti":  uuid.NewString(),
			"kind": string(types.ShareLinkKindShare),
		},
	}
	issuer, err := NewIssuer(IssuerConfig{Manager: manager, Links: newMemoryLinkRepo()})
	require.NoError(t, err)

	_, err = issuer.Redeem(context.Background(), "token")
	require.ErrorIs(t, err, types.ErrLinkNotFound)
}

type stubSecureLinkManager struct {
	url             string
	lastRoute       string
	validatePayload map[string]any
}

func (s *stubSecureLinkManager) Generate(route string, _ ...types.SecureLinkPayload) (string, error) {
	s.lastRoute = route
	if s.url == "" {
		return "https://portal.test/link", nil
	}
	return s.url, nil
}

func (s *stubSecureLinkManager) Validate(string) (map[string]any, error) {
	return s.validatePayload, nil
}

func (s *stubSecureLinkManager) GetAndValidate(func(string) string) (types.SecureLinkPayload, error) {
	return types.SecureLinkPayload(s.validatePayload), nil
}

func (s *stubSecureLinkManager) GetExpiration() time.Duration {
	return time.Hour
}

type memoryLinkRepo struct {
	links   map[string]*types.ShareLink
	lastJTI string
}

func newMemoryLinkRepo() *memoryLinkRepo {
	return &memoryLinkRepo{links: map[string]*types.ShareLink{}}
}

func (r *memoryLinkRepo) CreateLink(_ context.Context, link types.ShareLink) (*types.ShareLink, error) {
	copy := link
	if copy.ID == uuid.Nil {
		copy.ID = uuid.New()
	}
	r.links[copy.JTI] = &copy
	r.lastJTI = copy.JTI
	out := copy
	return &out, nil
}

func (r *memoryLinkRepo) GetLinkByJTI(_ context.Context, kind types.ShareLinkKind, jti string) (*types.ShareLink, error) {
	link, ok := r.links[jti]
	if !ok || (kind != "" && link.Kind != kind) {
		return nil, nil
	}
	copy := *link
	return &copy, nil
}

func (r *memoryLinkRepo) ConsumeLink(_ context.Context, kind types.ShareLinkKind, jti string) error {
	link, ok := r.links[jti]
	if !ok || (kind != "" && link.Kind != kind) {
		return types.ErrLinkNotFound
	}
	if link.Status != types.ShareLinkStatusIssued {
		return types.ErrLinkConsumed
	}
	link.Status = types.ShareLinkStatusUsed
	return nil
}
