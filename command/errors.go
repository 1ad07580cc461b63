package command

import (
	"errors"

	"github.com/goliatone/go-tickets/pkg/types"
)

var (
	// ErrMemberIDRequired occurs when a command omits the acting member.
	ErrMemberIDRequired = types.ErrMemberIDRequired
	// ErrTicketIDRequired occurs when a ticket command omits the ticket id.
	ErrTicketIDRequired = types.ErrTicketIDRequired
	// ErrEventNameRequired indicates the posting lacks an event name.
	ErrEventNameRequired = errors.New("go-tickets: event name required")
	// ErrEventDateRequired indicates the posting lacks an event date.
	ErrEventDateRequired = errors.New("go-tickets: event date required")
	// ErrQuantityInvalid indicates the ticket quantity is not a positive integer.
	ErrQuantityInvalid = errors.New("go-tickets: quantity must be at least 1")
	// ErrIntentInvalid indicates an unrecognized ticket intent.
	ErrIntentInvalid = errors.New("go-tickets: intent must be swap or donate")
	// ErrTierInvalid indicates an unrecognized membership tier.
	ErrTierInvalid = errors.New("go-tickets: tier must be basic, premium, or vip")
	// ErrTicketNotFound indicates the requested ticket does not exist.
	ErrTicketNotFound = errors.New("go-tickets: ticket not found")
	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = errors.New("go-tickets: member not found")
	// ErrNotTicketOwner indicates the acting member does not own the ticket.
	ErrNotTicketOwner = errors.New("go-tickets: ticket belongs to another member")
	// ErrActionTypeRequired indicates an activity entry lacks an action type.
	ErrActionTypeRequired = errors.New("go-tickets: activity action type required")
	// ErrPostingDisabled indicates ticket posting is disabled via feature gate.
	ErrPostingDisabled = errors.New("go-tickets: ticket posting disabled")
)
