package crudsvc

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/goliatone/go-tickets/ticket"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestTicketServiceCreateAttributesToActingMember(t *testing.T) {
	member := &types.Member{ID: uuid.New(), Tier: types.TierBasic, Status: types.MemberStatusActive}
	createCmd := &stubTicketCreateCmd{}
	svc := NewTicketService(TicketServiceConfig{
		Resolver:      &stubResolver{member: member},
		CreateCommand: createCmd,
	})

	ctx := newTestCrudContext(context.Background())
	record := &ticket.Record{
		MemberID:  uuid.New(), // client-supplied owner is ignored
		EventName: "Lakers vs Warriors",
		EventDate: time.Now().UTC().Add(48 * time.Hour),
		Quantity:  2,
		Intent:    string(types.IntentSwap),
	}

	created, err := svc.Create(ctx, record)
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, 1, createCmd.calls)
	require.Equal(t, member.ID, createCmd.lastInput.MemberID)
	require.Equal(t, "Lakers vs Warriors", createCmd.lastInput.EventName)
	require.Equal(t, types.IntentSwap, createCmd.lastInput.Intent)
}

func TestTicketServiceIndexParsesQueryParams(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	list := &stubTicketListQuery{}
	svc := NewTicketService(TicketServiceConfig{
		Resolver:  &stubResolver{member: member},
		ListQuery: list,
	})

	ctx := newTestCrudContext(context.Background())
	ctx.queries["ownership"] = "others"
	ctx.queries["intent"] = "donate"
	ctx.queries["limit"] = "10"
	ctx.queries["offset"] = "20"

	_, _, err := svc.Index(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, member.ID, list.lastFilter.MemberID)
	require.Equal(t, types.OwnershipOthers, list.lastFilter.Ownership)
	require.Equal(t, types.IntentFilterDonate, list.lastFilter.Intent)
	require.Equal(t, 10, list.lastFilter.Pagination.Limit)
	require.Equal(t, 20, list.lastFilter.Pagination.Offset)
}

func TestTicketServiceIndexDefaultsToOwnTickets(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	list := &stubTicketListQuery{}
	svc := NewTicketService(TicketServiceConfig{
		Resolver:  &stubResolver{member: member},
		ListQuery: list,
	})

	_, _, err := svc.Index(newTestCrudContext(context.Background()), nil)
	require.NoError(t, err)
	require.Equal(t, types.OwnershipMine, list.lastFilter.Ownership)
}

func TestTicketServiceShow(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	existing := &types.Ticket{ID: uuid.New(), MemberID: uuid.New(), EventName: "Opera Night"}
	svc := NewTicketService(TicketServiceConfig{
		Resolver:   &stubResolver{member: member},
		Repository: &stubTicketLookup{tickets: map[uuid.UUID]*types.Ticket{existing.ID: existing}},
	})
	ctx := newTestCrudContext(context.Background())

	found, err := svc.Show(ctx, existing.ID.String(), nil)
	require.NoError(t, err)
	require.Equal(t, "Opera Night", found.EventName)

	_, err = svc.Show(ctx, "not-a-uuid", nil)
	require.Error(t, err)

	_, err = svc.Show(ctx, uuid.NewString(), nil)
	require.Error(t, err)
}

func TestTicketServiceUpdateForeignTicketIsForbidden(t *testing.T) {
	member := &types.Member{ID: uuid.New()}
	svc := NewTicketService(TicketServiceConfig{
		Resolver:      &stubResolver{member: member},
		UpdateCommand: &stubTicketUpdateCmd{err: command.ErrNotTicketOwner},
	})

	_, err := svc.Update(newTestCrudContext(context.Background()), &ticket.Record{
		ID:        uuid.New(),
		EventName: "Opera Night",
		EventDate: time.Now().UTC().Add(time.Hour),
		Quantity:  1,
		Intent:    string(types.IntentSwap),
	})
	require.ErrorIs(t, err, command.ErrNotTicketOwner)

	var rich *goerrors.Error
	require.ErrorAs(t, err, &rich)
	require.Equal(t, goerrors.CategoryAuthz, rich.Category)
}

func TestTicketServiceRequiresResolver(t *testing.T) {
	svc := NewTicketService(TicketServiceConfig{
		CreateCommand: &stubTicketCreateCmd{},
	})
	_, err := svc.Create(newTestCrudContext(context.Background()), &ticket.Record{})
	require.Error(t, err)
}

type stubResolver struct {
	member *types.Member
	err    error
}

func (s *stubResolver) Resolve(context.Context) (*types.Member, error) {
	return s.member, s.err
}

type stubTicketCreateCmd struct {
	calls     int
	lastInput command.TicketCreateInput
	err       error
}

func (s *stubTicketCreateCmd) Execute(_ context.Context, input command.TicketCreateInput) error {
	s.calls++
	s.lastInput = input
	if s.err != nil {
		return s.err
	}
	if input.Result != nil {
		*input.Result = types.Ticket{
			ID:        uuid.New(),
			MemberID:  input.MemberID,
			EventName: input.EventName,
			EventDate: input.EventDate,
			Quantity:  input.Quantity,
			Intent:    input.Intent,
			Status:    types.TicketStatusAvailable,
		}
	}
	return nil
}

type stubTicketUpdateCmd struct {
	err error
}

func (s *stubTicketUpdateCmd) Execute(_ context.Context, input command.TicketUpdateInput) error {
	if s.err != nil {
		return s.err
	}
	if input.Result != nil {
		*input.Result = types.Ticket{ID: input.TicketID, MemberID: input.MemberID}
	}
	return nil
}

type stubTicketListQuery struct {
	lastFilter types.TicketListFilter
	result     types.TicketPage
}

func (s *stubTicketListQuery) Query(_ context.Context, filter types.TicketListFilter) (types.TicketPage, error) {
	s.lastFilter = filter
	return s.result, nil
}

type stubTicketLookup struct {
	tickets map[uuid.UUID]*types.Ticket
}

func (s *stubTicketLookup) GetByID(_ context.Context, id uuid.UUID) (*types.Ticket, error) {
	return s.tickets[id], nil
}

func (s *stubTicketLookup) Create(_ context.Context, ticket *types.Ticket) (*types.Ticket, error) {
	return ticket, nil
}

func (s *stubTicketLookup) Update(_ context.Context, ticket *types.Ticket) (*types.Ticket, error) {
	return ticket, nil
}

func (s *stubTicketLookup) Delete(context.Context, *types.Ticket) error {
	return nil
}

func (s *stubTicketLookup) ListOwned(context.Context, types.TicketFilter) (types.TicketPage, error) {
	return types.TicketPage{}, nil
}

func (s *stubTicketLookup) ListOthers(context.Context, types.TicketFilter) (types.TicketPage, error) {
	return types.TicketPage{}, nil
}

func (s *stubTicketLookup) ListRecent(context.Context, int) ([]types.Ticket, error) {
	return nil, nil
}

func (s *stubTicketLookup) CountByIntent(context.Context, uuid.UUID) (types.MemberStats, error) {
	return types.MemberStats{}, nil
}

type testCrudContext struct {
	ctx     context.Context
	queries map[string]string
}

func newTestCrudContext(ctx context.Context) *testCrudContext {
	return &testCrudContext{
		ctx:     ctx,
		queries: map[string]string{},
	}
}

func (t *testCrudContext) UserContext() context.Context {
	return t.ctx
}

func (t *testCrudContext) Params(string, ...string) string {
	return ""
}

func (t *testCrudContext) BodyParser(out any) error {
	return nil
}

func (t *testCrudContext) Query(key string, defaultValue ...string) string {
	if v, ok := t.queries[key]; ok {
		return v
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

func (t *testCrudContext) QueryValues(key string) []string {
	if v, ok := t.queries[key]; ok {
		return []string{v}
	}
	return nil
}

func (t *testCrudContext) QueryInt(string, ...int) int {
	return 0
}

func (t *testCrudContext) Queries() map[string]string {
	return t.queries
}

func (t *testCrudContext) Body() []byte {
	return nil
}

func (t *testCrudContext) Status(int) crud.Response {
	return t
}

func (t *testCrudContext) JSON(any, ...string) error {
	return nil
}

func (t *testCrudContext) SendStatus(int) error {
	return nil
}
