package migrations

import (
	tickets "github.com/goliatone/go-tickets"
)

func init() {
	Register(tickets.GetMigrationsFS())
}
