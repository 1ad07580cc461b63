package crudsvc

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/goliatone/go-tickets/ticket"
	"github.com/google/uuid"
)

// MemberResolver maps the authenticated principal on a request context to
// its member record.
type MemberResolver interface {
	Resolve(ctx context.Context) (*types.Member, error)
}

// TicketServiceConfig wires dependencies for the CRUD-backed ticket service.
type TicketServiceConfig struct {
	Resolver      MemberResolver
	CreateCommand gocommand.Commander[command.TicketCreateInput]
	UpdateCommand gocommand.Commander[command.TicketUpdateInput]
	DeleteCommand gocommand.Commander[command.TicketDeleteInput]
	ListQuery     gocommand.Querier[types.TicketListFilter, types.TicketPage]
	Repository    types.TicketRepository
}

// TicketService adapts the ticket command/query layer to a go-crud
// controller. Every operation resolves the acting member from the request
// context; client-supplied member ids are ignored.
type TicketService struct {
	resolver  MemberResolver
	createCmd gocommand.Commander[command.TicketCreateInput]
	updateCmd gocommand.Commander[command.TicketUpdateInput]
	deleteCmd gocommand.Commander[command.TicketDeleteInput]
	list      gocommand.Querier[types.TicketListFilter, types.TicketPage]
	repo      types.TicketRepository
	emitter   ActivityEmitter
	logger    types.Logger
}

// NewTicketService constructs the adapter.
func NewTicketService(cfg TicketServiceConfig, opts ...ServiceOption) *TicketService {
	options := applyOptions(opts)
	return &TicketService{
		resolver:  cfg.Resolver,
		createCmd: cfg.CreateCommand,
		updateCmd: cfg.UpdateCommand,
		deleteCmd: cfg.DeleteCommand,
		list:      cfg.ListQuery,
		repo:      cfg.Repository,
		emitter:   options.emitter,
		logger:    options.logger,
	}
}

func (s *TicketService) Create(ctx crud.Context, record *ticket.Record) (*ticket.Record, error) {
	if s.createCmd == nil {
		return nil, goerrors.New("ticket posting disabled", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, err
	}

	var created types.Ticket
	input := command.TicketCreateInput{
		MemberID:  member.ID,
		EventName: record.EventName,
		EventDate: record.EventDate,
		Quantity:  record.Quantity,
		Intent:    types.TicketIntent(record.Intent),
		Result:    &created,
	}
	if err := s.createCmd.Execute(ctx.UserContext(), input); err != nil {
		return nil, mapCommandError(err)
	}
	s.emit(ctx.UserContext(), types.ActivityEntry{
		MemberID:   created.MemberID,
		TicketID:   created.ID,
		ActionType: "created",
		Timestamp:  created.CreatedAt,
	})
	return ticket.FromTicket(&created), nil
}

func (s *TicketService) CreateBatch(ctx crud.Context, records []*ticket.Record) ([]*ticket.Record, error) {
	created := make([]*ticket.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}
	return created, nil
}

func (s *TicketService) Update(ctx crud.Context, record *ticket.Record) (*ticket.Record, error) {
	if s.updateCmd == nil {
		return nil, notSupported(crud.OpUpdate)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, err
	}

	var updated types.Ticket
	input := command.TicketUpdateInput{
		TicketID:  record.ID,
		MemberID:  member.ID,
		EventName: record.EventName,
		EventDate: record.EventDate,
		Quantity:  record.Quantity,
		Intent:    types.TicketIntent(record.Intent),
		Result:    &updated,
	}
	if err := s.updateCmd.Execute(ctx.UserContext(), input); err != nil {
		return nil, mapCommandError(err)
	}
	s.emit(ctx.UserContext(), types.ActivityEntry{
		MemberID:   updated.MemberID,
		TicketID:   updated.ID,
		ActionType: "updated",
		Timestamp:  updated.UpdatedAt,
	})
	return ticket.FromTicket(&updated), nil
}

func (s *TicketService) UpdateBatch(ctx crud.Context, records []*ticket.Record) ([]*ticket.Record, error) {
	updated := make([]*ticket.Record, 0, len(records))
	for _, record := range records {
		rec, err := s.Update(ctx, record)
		if err != nil {
			return nil, err
		}
		updated = append(updated, rec)
	}
	return updated, nil
}

func (s *TicketService) Delete(ctx crud.Context, record *ticket.Record) error {
	if s.deleteCmd == nil {
		return notSupported(crud.OpDelete)
	}
	member, err := s.member(ctx)
	if err != nil {
		return err
	}
	input := command.TicketDeleteInput{
		TicketID: record.ID,
		MemberID: member.ID,
	}
	if err := s.deleteCmd.Execute(ctx.UserContext(), input); err != nil {
		return mapCommandError(err)
	}
	s.emit(ctx.UserContext(), types.ActivityEntry{
		MemberID:   member.ID,
		TicketID:   record.ID,
		ActionType: "deleted",
	})
	return nil
}

func (s *TicketService) DeleteBatch(ctx crud.Context, records []*ticket.Record) error {
	for _, record := range records {
		if err := s.Delete(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *TicketService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*ticket.Record, int, error) {
	if s.list == nil {
		return nil, 0, goerrors.New("ticket listing unavailable", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := types.TicketListFilter{
		MemberID:  member.ID,
		Ownership: parseOwnership(ctx, "ownership"),
		Intent:    parseIntentFilter(ctx, "intent"),
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 50),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	page, err := s.list.Query(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, err
	}

	records := make([]*ticket.Record, 0, len(page.Tickets))
	for i := range page.Tickets {
		records = append(records, ticket.FromTicket(&page.Tickets[i]))
	}
	return records, page.Total, nil
}

func (s *TicketService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*ticket.Record, error) {
	if s.repo == nil {
		return nil, notSupported(crud.OpRead)
	}
	if _, err := s.member(ctx); err != nil {
		return nil, err
	}
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, goerrors.New("go-tickets: invalid ticket id", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	found, err := s.repo.GetByID(ctx.UserContext(), ticketID)
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, goerrors.New("go-tickets: ticket not found", goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	}
	return ticket.FromTicket(found), nil
}

func (s *TicketService) member(ctx crud.Context) (*types.Member, error) {
	if s.resolver == nil {
		return nil, goerrors.New("go-tickets: member resolver not configured", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	return s.resolver.Resolve(ctx.UserContext())
}

func (s *TicketService) emit(ctx context.Context, entry types.ActivityEntry) {
	if s.emitter == nil {
		return
	}
	if err := s.emitter.Emit(ctx, entry); err != nil && s.logger != nil {
		s.logger.Error("activity emitter failed", err)
	}
}
