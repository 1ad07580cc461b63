package tickets

import "github.com/goliatone/go-tickets/service"

// Re-export the service package entry point so consumers can do `tickets.New(...)`
// without importing internal wiring helpers.
type (
	Service          = service.Service
	Config           = service.Config
	Commands         = service.Commands
	Queries          = service.Queries
	BenefitsResolver = service.BenefitsResolver
)

// New constructs the go-tickets runtime using the provided configuration.
func New(cfg Config) *Service {
	return service.New(cfg)
}
