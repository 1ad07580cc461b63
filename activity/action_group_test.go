package activity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupFor(t *testing.T) {
	cases := map[string]ActionGroup{
		"created":      ActionGroupCreated,
		"posted":       ActionGroupCreated,
		"  Updated  ":  ActionGroupUpdated,
		"edited":       ActionGroupUpdated,
		"deleted":      ActionGroupDeleted,
		"CANCELLED":    ActionGroupDeleted,
		"tier_changed": ActionGroupOther,
		"":             ActionGroupOther,
	}
	for input, expected := range cases {
		require.Equal(t, expected, GroupFor(input), "input %q", input)
	}
}
