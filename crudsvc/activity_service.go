package crudsvc

import (
	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-tickets/activity"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/google/uuid"
)

// ActivityServiceConfig wires dependencies for the CRUD-backed activity
// service.
type ActivityServiceConfig struct {
	Resolver   MemberResolver
	LogCommand gocommand.Commander[command.ActivityLogInput]
	FeedQuery  gocommand.Querier[types.ActivityFeedFilter, types.ActivityFeed]
	Repository types.ActivityRepository
}

// ActivityService adapts the activity command/query layer to a go-crud
// controller. The log is append-only: updates and deletes are rejected for
// every caller.
type ActivityService struct {
	resolver MemberResolver
	logCmd   gocommand.Commander[command.ActivityLogInput]
	feed     gocommand.Querier[types.ActivityFeedFilter, types.ActivityFeed]
	repo     types.ActivityRepository
	logger   types.Logger
}

// NewActivityService constructs the adapter.
func NewActivityService(cfg ActivityServiceConfig, opts ...ServiceOption) *ActivityService {
	options := applyOptions(opts)
	return &ActivityService{
		resolver: cfg.Resolver,
		logCmd:   cfg.LogCommand,
		feed:     cfg.FeedQuery,
		repo:     cfg.Repository,
		logger:   options.logger,
	}
}

func (s *ActivityService) Create(ctx crud.Context, record *activity.LogEntry) (*activity.LogEntry, error) {
	if s.logCmd == nil {
		return nil, goerrors.New("activity logging disabled", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, err
	}

	// Entries are always attributed to the acting member.
	input := command.ActivityLogInput{
		MemberID:   member.ID,
		TicketID:   record.TicketID,
		ActionType: record.ActionType,
	}
	if err := s.logCmd.Execute(ctx.UserContext(), input); err != nil {
		return nil, err
	}
	record.MemberID = member.ID
	record.ActionType = types.NormalizeActionType(record.ActionType)
	return record, nil
}

func (s *ActivityService) CreateBatch(ctx crud.Context, records []*activity.LogEntry) ([]*activity.LogEntry, error) {
	created := make([]*activity.LogEntry, 0, len(records))
	for _, record := range records {
		rec, err := s.Create(ctx, record)
		if err != nil {
			return nil, err
		}
		created = append(created, rec)
	}
	return created, nil
}

func (s *ActivityService) Update(crud.Context, *activity.LogEntry) (*activity.LogEntry, error) {
	return nil, notSupported(crud.OpUpdate)
}

func (s *ActivityService) UpdateBatch(crud.Context, []*activity.LogEntry) ([]*activity.LogEntry, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

func (s *ActivityService) Delete(crud.Context, *activity.LogEntry) error {
	return notSupported(crud.OpDelete)
}

func (s *ActivityService) DeleteBatch(crud.Context, []*activity.LogEntry) error {
	return notSupported(crud.OpDeleteBatch)
}

func (s *ActivityService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*activity.LogEntry, int, error) {
	if s.feed == nil {
		return nil, 0, goerrors.New("activity feed query unavailable", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, 0, err
	}

	filter := types.ActivityFeedFilter{
		MemberID: member.ID,
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 50),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	page, err := s.feed.Query(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*activity.LogEntry, 0, len(page.Items))
	for _, item := range page.Items {
		entries = append(entries, activity.FromActivityEntry(item.Entry))
	}
	return entries, page.Total, nil
}

func (s *ActivityService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*activity.LogEntry, error) {
	if s.repo == nil {
		return nil, notSupported(crud.OpRead)
	}
	member, err := s.member(ctx)
	if err != nil {
		return nil, err
	}
	entryID, err := uuid.Parse(id)
	if err != nil {
		return nil, goerrors.New("go-tickets: invalid entry id", goerrors.CategoryValidation).WithCode(goerrors.CodeBadRequest)
	}
	entry, err := s.repo.GetEntry(ctx.UserContext(), entryID)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.MemberID != member.ID {
		return nil, goerrors.New("go-tickets: activity entry not found", goerrors.CategoryNotFound).WithCode(goerrors.CodeNotFound)
	}
	return activity.FromActivityEntry(*entry), nil
}

func (s *ActivityService) member(ctx crud.Context) (*types.Member, error) {
	if s.resolver == nil {
		return nil, goerrors.New("go-tickets: member resolver not configured", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	return s.resolver.Resolve(ctx.UserContext())
}
