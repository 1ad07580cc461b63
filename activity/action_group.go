package activity

import "github.com/goliatone/go-tickets/pkg/types"

// ActionGroup is the closed presentation grouping for free-text action
// types. Unknown classifications fall through to ActionGroupOther.
type ActionGroup string

const (
	ActionGroupCreated ActionGroup = "created"
	ActionGroupUpdated ActionGroup = "updated"
	ActionGroupDeleted ActionGroup = "deleted"
	ActionGroupOther   ActionGroup = "other"
)

// GroupFor classifies an action type into its presentation group. The
// aliases (posted/edited/cancelled) come from older writers that logged
// view-specific verbs.
func GroupFor(actionType string) ActionGroup {
	switch types.NormalizeActionType(actionType) {
	case "created", "posted":
		return ActionGroupCreated
	case "updated", "edited":
		return ActionGroupUpdated
	case "deleted", "cancelled":
		return ActionGroupDeleted
	default:
		return ActionGroupOther
	}
}
