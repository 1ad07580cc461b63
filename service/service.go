package service

import (
	"context"

	featuregate "github.com/goliatone/go-featuregate/gate"
	"github.com/goliatone/go-tickets/benefits"
	"github.com/goliatone/go-tickets/command"
	"github.com/goliatone/go-tickets/identity"
	"github.com/goliatone/go-tickets/member"
	"github.com/goliatone/go-tickets/pkg/types"
	"github.com/goliatone/go-tickets/query"
)

// Service is the entry point for go-tickets. It wires repositories, hooks,
// and command/query facades supplied by the host application. Every
// dependency arrives through Config; nothing reaches for ambient globals.
type Service struct {
	cfg          Config
	commands     Commands
	queries      Queries
	activityRepo types.ActivityRepository
	resolver     *identity.Resolver
	benefits     BenefitsResolver
}

// Commands exposes the service command handlers.
type Commands struct {
	TicketCreate     *command.TicketCreateCommand
	TicketUpdate     *command.TicketUpdateCommand
	TicketDelete     *command.TicketDeleteCommand
	MemberTierChange *command.MemberTierChangeCommand
	LogActivity      *command.ActivityLogCommand
}

// Queries exposes read-model helpers.
type Queries struct {
	TicketList   *query.TicketListQuery
	ActivityFeed *query.ActivityFeedQuery
	MemberStats  *query.MemberStatsQuery
	Dashboard    *query.DashboardQuery
}

// Config captures all required dependencies so callers can provide their own
// instances (bun.DB repositories, hooks, feature gates, etc.).
type Config struct {
	MemberRepository   types.MemberRepository
	TicketRepository   types.TicketRepository
	ActivitySink       types.ActivitySink
	ActivityRepository types.ActivityRepository
	FeatureGate        featuregate.FeatureGate
	BenefitsResolver   BenefitsResolver
	Hooks              types.Hooks
	Clock              types.Clock
	IDGenerator        types.IDGenerator
	Logger             types.Logger
}

// BenefitsResolver computes the effective benefits map for a member.
type BenefitsResolver interface {
	ResolveFor(member *types.Member) (map[string]any, error)
}

// New constructs a Service from the supplied configuration.
func New(cfg Config) *Service {
	norm := normalizeConfig(cfg)

	actRepo := norm.ActivityRepository
	if actRepo == nil {
		if sinkRepo, ok := norm.ActivitySink.(types.ActivityRepository); ok {
			actRepo = sinkRepo
		}
	}

	benefitsResolver := norm.BenefitsResolver
	if benefitsResolver == nil && norm.MemberRepository != nil {
		if resolver, err := benefits.NewResolver(benefits.ResolverConfig{
			Members: norm.MemberRepository,
		}); err == nil {
			benefitsResolver = resolver
		} else if norm.Logger != nil {
			norm.Logger.Error("go-tickets: benefits resolver initialization failed", err)
		}
	}

	var resolver *identity.Resolver
	if norm.MemberRepository != nil {
		if r, err := identity.NewResolver(identity.ResolverConfig{
			Members: norm.MemberRepository,
		}); err == nil {
			resolver = r
		} else if norm.Logger != nil {
			norm.Logger.Error("go-tickets: identity resolver initialization failed", err)
		}
	}

	s := &Service{
		cfg:          norm,
		activityRepo: actRepo,
		resolver:     resolver,
		benefits:     benefitsResolver,
	}
	s.commands = s.buildCommands()
	s.queries = s.buildQueries()
	return s
}

func normalizeConfig(cfg Config) Config {
	if cfg.Clock == nil {
		cfg.Clock = types.SystemClock{}
	}
	if cfg.IDGenerator == nil {
		cfg.IDGenerator = types.UUIDGenerator{}
	}
	if cfg.Logger == nil {
		cfg.Logger = types.NopLogger{}
	}
	return cfg
}

// Commands returns the command facade.
func (s *Service) Commands() Commands {
	return s.commands
}

// Queries returns the query facade.
func (s *Service) Queries() Queries {
	return s.queries
}

// Identity returns the principal-to-member resolver so transports can share
// the same resolution path the service uses.
func (s *Service) Identity() *identity.Resolver {
	if s == nil {
		return nil
	}
	return s.resolver
}

// Benefits returns the configured benefits resolver.
func (s *Service) Benefits() BenefitsResolver {
	if s == nil {
		return nil
	}
	return s.benefits
}

// ActivitySink returns the configured sink so transports can emit audit
// entries for auxiliary workflows (e.g. CRUD controllers).
func (s *Service) ActivitySink() types.ActivitySink {
	if s == nil {
		return nil
	}
	return s.cfg.ActivitySink
}

// Ready reports whether the service has the required dependencies wired in.
func (s *Service) Ready() bool {
	return s != nil &&
		s.cfg.MemberRepository != nil &&
		s.cfg.TicketRepository != nil &&
		s.cfg.ActivitySink != nil &&
		s.activityRepo != nil
}

// HealthCheck surfaces missing configuration to upstream transports before
// they start serving requests.
func (s *Service) HealthCheck(ctx context.Context) error {
	if !s.Ready() {
		return types.ErrServiceNotReady
	}
	if s.cfg.MemberRepository == nil {
		return types.ErrMissingMemberRepository
	}
	if s.cfg.TicketRepository == nil {
		return types.ErrMissingTicketRepository
	}
	if s.cfg.ActivitySink == nil {
		return types.ErrMissingActivitySink
	}
	if s.activityRepo == nil {
		return types.ErrMissingActivityRepository
	}
	return nil
}

func (s *Service) buildCommands() Commands {
	return Commands{
		TicketCreate: command.NewTicketCreateCommand(command.TicketCreateCommandConfig{
			Repository: s.cfg.TicketRepository,
			Gate:       s.cfg.FeatureGate,
			Clock:      s.cfg.Clock,
			Activity:   s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Logger:     s.cfg.Logger,
		}),
		TicketUpdate: command.NewTicketUpdateCommand(command.TicketUpdateCommandConfig{
			Repository: s.cfg.TicketRepository,
			Clock:      s.cfg.Clock,
			Activity:   s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Logger:     s.cfg.Logger,
		}),
		TicketDelete: command.NewTicketDeleteCommand(command.TicketDeleteCommandConfig{
			Repository: s.cfg.TicketRepository,
			Clock:      s.cfg.Clock,
			Activity:   s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Logger:     s.cfg.Logger,
		}),
		MemberTierChange: command.NewMemberTierChangeCommand(command.MemberTierChangeCommandConfig{
			Repository: s.cfg.MemberRepository,
			Clock:      s.cfg.Clock,
			Activity:   s.cfg.ActivitySink,
			Hooks:      s.cfg.Hooks,
			Logger:     s.cfg.Logger,
		}),
		LogActivity: command.NewActivityLogCommand(command.ActivityLogCommandConfig{
			Activity: s.cfg.ActivitySink,
			Clock:    s.cfg.Clock,
			Hooks:    s.cfg.Hooks,
		}),
	}
}

func (s *Service) buildQueries() Queries {
	return Queries{
		TicketList:   query.NewTicketListQuery(s.cfg.TicketRepository),
		ActivityFeed: query.NewActivityFeedQuery(s.activityRepo),
		MemberStats:  query.NewMemberStatsQuery(s.cfg.TicketRepository),
		Dashboard: query.NewDashboardQuery(s.cfg.MemberRepository, s.cfg.TicketRepository,
			query.WithMemberSanitizer(func(m types.Member) types.Member {
				return member.SanitizeBenefits(member.DefaultMasker(), m)
			})),
	}
}
